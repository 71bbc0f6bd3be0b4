// Package kitchen envía las comandas de cada venta a la pantalla de cocina.
package kitchen

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/jhoicas/PuntoVenta-api/internal/application/ports"
)

var _ ports.KitchenNotifier = (*HTTPNotifier)(nil)

// HTTPNotifier publica la comanda como JSON con POST a la URL de la pantalla de cocina.
type HTTPNotifier struct {
	url        string
	httpClient *http.Client
}

// NewHTTPNotifier construye el adaptador. timeout acota cada llamada además del contexto.
func NewHTTPNotifier(url string, timeout time.Duration) *HTTPNotifier {
	if timeout <= 0 {
		timeout = 3 * time.Second
	}
	return &HTTPNotifier{url: url, httpClient: &http.Client{Timeout: timeout}}
}

// Notify envía la comanda. Cualquier respuesta fuera de 2xx es error.
func (n *HTTPNotifier) Notify(ctx context.Context, order ports.KitchenOrder) error {
	body, err := json.Marshal(order)
	if err != nil {
		return fmt.Errorf("cocina: serializar comanda: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, n.url, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("cocina: crear request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := n.httpClient.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return fmt.Errorf("cocina: timeout o cancelación: %w", ctx.Err())
		}
		return fmt.Errorf("cocina: llamada HTTP fallida: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		raw, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return fmt.Errorf("cocina: HTTP %d: %s", resp.StatusCode, bytes.TrimSpace(raw))
	}
	_, _ = io.Copy(io.Discard, resp.Body)
	return nil
}

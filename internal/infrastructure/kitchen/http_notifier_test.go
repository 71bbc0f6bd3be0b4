package kitchen_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/PuntoVenta-api/internal/application/ports"
	"github.com/jhoicas/PuntoVenta-api/internal/infrastructure/kitchen"
)

func TestHTTPNotifier_EnviaComanda(t *testing.T) {
	var got ports.KitchenOrder
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		w.WriteHeader(http.StatusAccepted)
	}))
	defer srv.Close()

	order := ports.KitchenOrder{
		SaleID:    "venta-1",
		CreatedAt: time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC),
		Items:     []ports.KitchenItem{{Name: "Hamburguesa", Quantity: 2, Choices: map[string]string{"Carne": "2"}}},
	}
	err := kitchen.NewHTTPNotifier(srv.URL, time.Second).Notify(context.Background(), order)
	require.NoError(t, err)
	assert.Equal(t, order.SaleID, got.SaleID)
	assert.Equal(t, order.Items, got.Items)
}

func TestHTTPNotifier_RespuestaNo2xxEsError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "sin papel", http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	err := kitchen.NewHTTPNotifier(srv.URL, time.Second).Notify(context.Background(), ports.KitchenOrder{SaleID: "x"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "503")
	assert.Contains(t, err.Error(), "sin papel")
}

func TestHTTPNotifier_Timeout(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-r.Context().Done():
		case <-time.After(2 * time.Second):
		}
	}))
	defer srv.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()
	err := kitchen.NewHTTPNotifier(srv.URL, time.Second).Notify(ctx, ports.KitchenOrder{SaleID: "x"})
	assert.Error(t, err)
}

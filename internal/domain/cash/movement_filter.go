package cash

import (
	"sort"
	"time"

	"github.com/jhoicas/PuntoVenta-api/internal/domain/entity"
)

// MovementFilter criterio de filtrado del log de caja. Campos vacíos no filtran.
type MovementFilter struct {
	Types        []string
	Denomination int64
	From         *time.Time
	To           *time.Time
}

// Match indica si el movimiento cumple el filtro.
func (f MovementFilter) Match(m *entity.CashMovement) bool {
	if len(f.Types) > 0 {
		ok := false
		for _, t := range f.Types {
			if t == m.Type {
				ok = true
				break
			}
		}
		if !ok {
			return false
		}
	}
	if f.Denomination > 0 && !m.Touches(f.Denomination) {
		return false
	}
	if f.From != nil && m.CreatedAt.Before(*f.From) {
		return false
	}
	if f.To != nil && m.CreatedAt.After(*f.To) {
		return false
	}
	return true
}

// Apply filtra movements (en orden de inserción) y devuelve el resultado del más reciente al
// más antiguo. Ante un CreatedAt repetido, el último insertado va primero, igual que ListRecent.
func (f MovementFilter) Apply(movements []*entity.CashMovement) []*entity.CashMovement {
	out := make([]*entity.CashMovement, 0, len(movements))
	for i := len(movements) - 1; i >= 0; i-- {
		if m := movements[i]; m != nil && f.Match(m) {
			out = append(out, m)
		}
	}
	SortRecentFirst(out)
	return out
}

// SortRecentFirst ordena por CreatedAt descendente; los empates conservan el orden recibido.
func SortRecentFirst(movements []*entity.CashMovement) {
	sort.SliceStable(movements, func(i, j int) bool {
		return movements[i].CreatedAt.After(movements[j].CreatedAt)
	})
}

// Package memory implementa los puertos de persistencia en memoria. Se usa en desarrollo
// (STORE_DRIVER=memory) y en las pruebas de los casos de uso.
package memory

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/jhoicas/PuntoVenta-api/internal/domain"
	"github.com/jhoicas/PuntoVenta-api/internal/domain/entity"
	"github.com/jhoicas/PuntoVenta-api/internal/domain/repository"
)

var _ repository.TxRunner = (*Store)(nil)

type state struct {
	bills     map[int64]entity.DenominationBill
	movements []entity.CashMovement
	materials map[string]entity.RawMaterial
	links     map[string][]entity.RecipeLink // product_id -> enlaces
	products  map[string]entity.Product
	combos    map[string]entity.Combo
	sales     map[string]entity.Sale
}

func newState() *state {
	return &state{
		bills:     make(map[int64]entity.DenominationBill),
		materials: make(map[string]entity.RawMaterial),
		links:     make(map[string][]entity.RecipeLink),
		products:  make(map[string]entity.Product),
		combos:    make(map[string]entity.Combo),
		sales:     make(map[string]entity.Sale),
	}
}

// clone copia el estado para poder restaurarlo en un rollback. Los movimientos, ventas y
// enlaces nunca se mutan en sitio, así que basta con copiar los contenedores.
func (s *state) clone() *state {
	c := newState()
	for k, v := range s.bills {
		c.bills[k] = v
	}
	c.movements = append(make([]entity.CashMovement, 0, len(s.movements)), s.movements...)
	for k, v := range s.materials {
		c.materials[k] = v
	}
	for k, v := range s.links {
		c.links[k] = v
	}
	for k, v := range s.products {
		c.products[k] = v
	}
	for k, v := range s.combos {
		c.combos[k] = v
	}
	for k, v := range s.sales {
		c.sales[k] = v
	}
	return c
}

// Store almacenamiento en memoria. Un solo mutex protege todo; TxRunner.Run lo mantiene
// tomado durante toda la transacción.
type Store struct {
	mu  sync.Mutex
	st  *state
	now func() time.Time
}

// New crea un almacenamiento vacío.
func New() *Store {
	return &Store{st: newState(), now: time.Now}
}

// Repositories devuelve repositorios fuera de transacción (cada operación toma el mutex).
// No deben usarse dentro de Run.
func (s *Store) Repositories() repository.Repositories {
	return s.bind(false)
}

// Run ejecuta fn con repositorios atados a la transacción. Si fn falla el estado se restaura.
func (s *Store) Run(ctx context.Context, fn func(repos repository.Repositories) error) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("%w: %v", domain.ErrStoreUnavailable, err)
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	backup := s.st.clone()
	if err := fn(s.bind(true)); err != nil {
		s.st = backup
		return err
	}
	return nil
}

func (s *Store) bind(inTx bool) repository.Repositories {
	v := view{s: s, inTx: inTx}
	return repository.Repositories{
		Denominations: &DenominationRepo{v},
		Movements:     &CashMovementRepo{v},
		RawMaterials:  &RawMaterialRepo{v},
		RecipeLinks:   &RecipeLinkRepo{v},
		Products:      &ProductRepo{v},
		Combos:        &ComboRepo{v},
		Sales:         &SaleRepo{v},
	}
}

type view struct {
	s    *Store
	inTx bool
}

func (v view) do(ctx context.Context, fn func(st *state) error) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("%w: %v", domain.ErrStoreUnavailable, err)
	}
	if !v.inTx {
		v.s.mu.Lock()
		defer v.s.mu.Unlock()
	}
	return fn(v.s.st)
}

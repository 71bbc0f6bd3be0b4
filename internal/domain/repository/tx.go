package repository

import "context"

// Repositories agrupa los repositorios atados a una misma transacción.
type Repositories struct {
	Denominations DenominationRepository
	Movements     CashMovementRepository
	RawMaterials  RawMaterialRepository
	RecipeLinks   RecipeLinkRepository
	Products      ProductRepository
	Combos        ComboRepository
	Sales         SaleRepository
}

// TxRunner ejecuta fn dentro de una transacción con repositorios atados a ella.
// Si fn devuelve error se hace rollback y nada de lo escrito persiste.
type TxRunner interface {
	Run(ctx context.Context, fn func(repos Repositories) error) error
}

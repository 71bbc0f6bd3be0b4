package postgres

import (
	"context"
	"fmt"
)

// schema crea las colecciones si no existen. Las cantidades de billetes son enteros; existencias
// y costos son NUMERIC para soportar gramos y costos fraccionarios.
var schema = []string{
	`CREATE TABLE IF NOT EXISTS denominations (
		denomination BIGINT PRIMARY KEY CHECK (denomination > 0),
		quantity     BIGINT NOT NULL DEFAULT 0 CHECK (quantity >= 0),
		updated_at   TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,
	`CREATE TABLE IF NOT EXISTS cash_movements (
		id         UUID PRIMARY KEY,
		seq        BIGSERIAL UNIQUE,
		type       VARCHAR(20) NOT NULL,
		bills_in   JSONB NOT NULL DEFAULT '{}',
		bills_out  JSONB NOT NULL DEFAULT '{}',
		sale_id    UUID NULL,
		notes      TEXT NOT NULL DEFAULT '',
		created_at TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,
	`CREATE INDEX IF NOT EXISTS idx_cash_movements_created ON cash_movements (created_at)`,
	`CREATE TABLE IF NOT EXISTS raw_materials (
		id            UUID PRIMARY KEY,
		name          VARCHAR(200) NOT NULL UNIQUE,
		unit          VARCHAR(10) NOT NULL,
		stock         NUMERIC(18,4) NOT NULL DEFAULT 0 CHECK (stock >= 0),
		cost_per_unit NUMERIC(18,4) NOT NULL DEFAULT 0,
		min_stock     NUMERIC(18,4) NOT NULL DEFAULT 0,
		created_at    TIMESTAMPTZ NOT NULL DEFAULT now(),
		updated_at    TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,
	`CREATE TABLE IF NOT EXISTS products (
		id                 VARCHAR(64) PRIMARY KEY,
		name               VARCHAR(200) NOT NULL,
		category           VARCHAR(100) NOT NULL DEFAULT '',
		price              NUMERIC(18,2) NOT NULL DEFAULT 0,
		production_cost    NUMERIC(18,4) NOT NULL DEFAULT 0,
		uses_raw_materials BOOLEAN NOT NULL DEFAULT false,
		stock              BIGINT NOT NULL DEFAULT 0,
		active             BOOLEAN NOT NULL DEFAULT true,
		created_at         TIMESTAMPTZ NOT NULL DEFAULT now(),
		updated_at         TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,
	`CREATE TABLE IF NOT EXISTS recipe_links (
		id                   VARCHAR(64) PRIMARY KEY,
		product_id           VARCHAR(64) NOT NULL REFERENCES products(id) ON DELETE CASCADE,
		raw_material_id      UUID NOT NULL REFERENCES raw_materials(id),
		quantity             NUMERIC(18,4) NOT NULL DEFAULT 0,
		removable            BOOLEAN NOT NULL DEFAULT false,
		is_variable          BOOLEAN NOT NULL DEFAULT false,
		min_quantity         NUMERIC(18,4) NOT NULL DEFAULT 0,
		max_quantity         NUMERIC(18,4) NOT NULL DEFAULT 0,
		default_quantity     NUMERIC(18,4) NOT NULL DEFAULT 0,
		price_per_extra_unit NUMERIC(18,2) NOT NULL DEFAULT 0,
		linked_to            VARCHAR(64) NOT NULL DEFAULT '',
		linked_multiplier    NUMERIC(18,4) NOT NULL DEFAULT 0,
		position             INT NOT NULL DEFAULT 0
	)`,
	`CREATE INDEX IF NOT EXISTS idx_recipe_links_product ON recipe_links (product_id)`,
	`CREATE INDEX IF NOT EXISTS idx_recipe_links_raw_material ON recipe_links (raw_material_id)`,
	`CREATE TABLE IF NOT EXISTS combos (
		id             UUID PRIMARY KEY,
		name           VARCHAR(200) NOT NULL,
		price_type     VARCHAR(20) NOT NULL,
		fixed_price    NUMERIC(18,2) NOT NULL DEFAULT 0,
		discount_type  VARCHAR(20) NOT NULL DEFAULT '',
		discount_value NUMERIC(18,2) NOT NULL DEFAULT 0,
		slots          JSONB NOT NULL DEFAULT '[]',
		active         BOOLEAN NOT NULL DEFAULT true,
		created_at     TIMESTAMPTZ NOT NULL DEFAULT now(),
		updated_at     TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,
	`CREATE TABLE IF NOT EXISTS sales (
		id           UUID PRIMARY KEY,
		items        JSONB NOT NULL,
		total        NUMERIC(18,2) NOT NULL,
		paid         BIGINT NOT NULL,
		change       BIGINT NOT NULL,
		bills_in     JSONB NOT NULL DEFAULT '{}',
		change_bills JSONB NOT NULL DEFAULT '{}',
		notes        TEXT NOT NULL DEFAULT '',
		created_at   TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,
	`CREATE INDEX IF NOT EXISTS idx_sales_created ON sales (created_at)`,
}

// EnsureSchema crea tablas e índices que falten. Es idempotente.
func EnsureSchema(ctx context.Context, q Querier) error {
	for i, stmt := range schema {
		if _, err := q.Exec(ctx, stmt); err != nil {
			return storeErr(fmt.Sprintf("schema (%d)", i+1), err)
		}
	}
	return nil
}

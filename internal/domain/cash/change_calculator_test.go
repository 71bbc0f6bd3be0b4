package cash_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/PuntoVenta-api/internal/domain"
	"github.com/jhoicas/PuntoVenta-api/internal/domain/cash"
	"github.com/jhoicas/PuntoVenta-api/internal/domain/entity"
)

func oneOfEach(denominations ...int64) []entity.DenominationBill {
	out := make([]entity.DenominationBill, 0, len(denominations))
	for _, d := range denominations {
		out = append(out, entity.DenominationBill{Denomination: d, Quantity: 1})
	}
	return out
}

func TestComputeChange_DesgloseVoraz(t *testing.T) {
	pool := oneOfEach(20000, 10000, 5000, 2000, 1000, 500, 200, 100)

	got, err := cash.ComputeChange(27300, pool)
	require.NoError(t, err)
	assert.Equal(t, entity.BillCounts{20000: 1, 5000: 1, 2000: 1, 200: 1, 100: 1}, got)
	assert.Equal(t, int64(27300), got.Total())
}

func TestComputeChange_MontoInalcanzable(t *testing.T) {
	pool := oneOfEach(20000, 10000, 5000, 2000, 1000, 500, 200, 100)

	got, err := cash.ComputeChange(27250, pool)
	assert.Nil(t, got)
	assert.ErrorIs(t, err, domain.ErrInsufficientChange)
}

func TestComputeChange_CeroDevuelveVacio(t *testing.T) {
	got, err := cash.ComputeChange(0, nil)
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestComputeChange_MontoNegativo(t *testing.T) {
	_, err := cash.ComputeChange(-100, oneOfEach(100))
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestComputeChange_RespetaExistencias(t *testing.T) {
	pool := []entity.DenominationBill{
		{Denomination: 10000, Quantity: 1},
		{Denomination: 2000, Quantity: 10},
	}
	got, err := cash.ComputeChange(18000, pool)
	require.NoError(t, err)
	assert.Equal(t, entity.BillCounts{10000: 1, 2000: 4}, got)
	for d, q := range got {
		for _, b := range pool {
			if b.Denomination == d {
				assert.LessOrEqual(t, q, b.Quantity)
			}
		}
	}
}

func TestComputeChange_NoModificaEntrada(t *testing.T) {
	pool := []entity.DenominationBill{{Denomination: 1000, Quantity: 5}}
	_, err := cash.ComputeChange(3000, pool)
	require.NoError(t, err)
	assert.Equal(t, int64(5), pool[0].Quantity)
}

// Con denominaciones no canónicas el voraz puede fallar aunque exista solución.
func TestComputeChange_NoCanonicoFalla(t *testing.T) {
	pool := []entity.DenominationBill{
		{Denomination: 400, Quantity: 1},
		{Denomination: 300, Quantity: 2},
	}
	_, err := cash.ComputeChange(600, pool)
	assert.ErrorIs(t, err, domain.ErrInsufficientChange)
}

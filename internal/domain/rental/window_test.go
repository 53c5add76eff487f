package rental_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/plate-rental-api/internal/domain/rental"
	"github.com/jhoicas/plate-rental-api/pkg/money"
)

// Mismo escenario del mes completo, refacturado desde el 16: 16 días (16–31), 4000.
func TestClampToWindow_TruncaPeriodoInclusivo(t *testing.T) {
	periods, _, _ := calc(t, []rental.Record{rec("2025-01-01", "U-1", 50)}, nil, "2025-01-31", "5")

	clamped := rental.ClampToWindow(periods, day(t, "2025-01-16"), money.MustParse("5"))

	require.Len(t, clamped, 1)
	p := clamped[0]
	assert.Equal(t, day(t, "2025-01-16"), p.Start)
	assert.Equal(t, day(t, "2025-01-31"), p.End)
	assert.True(t, p.InclusiveEnd, "el fin inclusivo se conserva")
	assert.Equal(t, 16, p.Days)
	assert.Equal(t, money.MustParse("4000"), p.Rent)
	assert.Equal(t, 50, p.Quantity)
	assert.Equal(t, "U-1", p.ReferenceID)
	assert.Equal(t, rental.KindIssue, p.CauseType)

	assert.Equal(t, day(t, "2025-01-01"), periods[0].Start, "la lista original no se modifica")
	assert.Equal(t, 31, periods[0].Days)
}

func TestClampToWindow_DescartaConservaYTrunca(t *testing.T) {
	periods, _, _ := calc(t,
		[]rental.Record{rec("2025-01-01", "U-1", 10), rec("2025-01-05", "U-2", 5), rec("2025-01-25", "U-3", 3)},
		[]rental.Record{rec("2025-01-10", "J-1", 8), rec("2025-01-20", "J-2", 7)},
		"2025-01-31", "2")
	require.Len(t, periods, 4)

	clamped := rental.ClampToWindow(periods, day(t, "2025-01-08"), money.MustParse("2"))

	require.Len(t, clamped, 3)
	assert.Equal(t, day(t, "2025-01-08"), clamped[0].Start)
	assert.Equal(t, day(t, "2025-01-11"), clamped[0].End)
	assert.False(t, clamped[0].InclusiveEnd)
	assert.Equal(t, 3, clamped[0].Days, "8, 9 y 10")
	assert.Equal(t, money.MustParse("90"), clamped[0].Rent, "15 × 3 × 2")
	assert.Equal(t, periods[2], clamped[1], "periodo posterior sin cambios")
	assert.Equal(t, periods[3], clamped[2])
	assert.Equal(t, money.MustParse("272"), rental.TotalRent(clamped))
}

func TestClampToWindow_FinExclusivoIgualAInicioSeDescarta(t *testing.T) {
	periods, _, _ := calc(t,
		[]rental.Record{rec("2025-01-01", "U-1", 10), rec("2025-01-05", "U-2", 5)},
		[]rental.Record{rec("2025-01-10", "J-1", 8)},
		"2025-01-31", "1")
	require.Len(t, periods, 3)

	clamped := rental.ClampToWindow(periods, day(t, "2025-01-11"), money.MustParse("1"))

	require.Len(t, clamped, 1, "el periodo que termina (exclusivo) el 11 ya no factura días")
	assert.Equal(t, periods[2], clamped[0])
}

func TestClampToWindow_DesdeElUltimoDiaYDespues(t *testing.T) {
	periods, _, _ := calc(t, []rental.Record{rec("2025-01-01", "U-1", 50)}, nil, "2025-01-31", "5")

	last := rental.ClampToWindow(periods, day(t, "2025-01-31"), money.MustParse("5"))
	require.Len(t, last, 1)
	assert.Equal(t, 1, last[0].Days)
	assert.Equal(t, money.MustParse("250"), last[0].Rent)

	after := rental.ClampToWindow(periods, day(t, "2025-02-01"), money.MustParse("5"))
	assert.Empty(t, after)
}

func TestClampToWindow_IntervaloDeSiglos(t *testing.T) {
	periods, _, _ := calc(t, []rental.Record{rec("0205-01-01", "U-1", 2)}, nil, "2025-01-01", "1")

	clamped := rental.ClampToWindow(periods, day(t, "1000-01-01"), money.MustParse("1"))

	require.Len(t, clamped, 1)
	assert.Equal(t, day(t, "1000-01-01"), clamped[0].Start)
	assert.Equal(t, 374375, clamped[0].Days)
	assert.Equal(t, money.MustParse("748750"), clamped[0].Rent, "2 × 374375 × 1")
}

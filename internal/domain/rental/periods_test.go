package rental_test

import (
	"math/rand"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/plate-rental-api/internal/domain/rental"
	"github.com/jhoicas/plate-rental-api/pkg/money"
)

func calc(t *testing.T, issues, returns []rental.Record, billDate, rate string) ([]rental.Period, int, *rental.Reporter) {
	t.Helper()
	rep := rental.NewReporter(zerolog.Nop())
	events := rental.Normalize(issues, returns, rep)
	periods, closing := rental.CalculatePeriods(events, day(t, billDate), money.MustParse(rate), rep)
	return periods, closing, rep
}

// 50 unidades el 1 de enero, facturado el 31 a 5/día: 31 días inclusive, 7750.
func TestCalculatePeriods_MesCompletoInclusivo(t *testing.T) {
	periods, closing, rep := calc(t, []rental.Record{rec("2025-01-01", "U-1", 50)}, nil, "2025-01-31", "5")

	require.Len(t, periods, 1)
	p := periods[0]
	assert.Equal(t, day(t, "2025-01-01"), p.Start)
	assert.Equal(t, day(t, "2025-01-31"), p.End)
	assert.True(t, p.InclusiveEnd)
	assert.Equal(t, 50, p.Quantity)
	assert.Equal(t, 31, p.Days)
	assert.Equal(t, money.MustParse("7750"), p.Rent)
	assert.Equal(t, rental.KindIssue, p.CauseType)
	assert.Equal(t, "U-1", p.ReferenceID)
	assert.Equal(t, 50, closing)
	assert.Empty(t, rep.Diagnostics())
}

func TestCalculatePeriods_FacturadoElMismoDiaDeLaEntrega(t *testing.T) {
	periods, _, _ := calc(t, []rental.Record{rec("2025-03-10", "U-1", 12)}, nil, "2025-03-10", "2.5")

	require.Len(t, periods, 1)
	assert.Equal(t, 1, periods[0].Days)
	assert.Equal(t, money.MustParse("30"), periods[0].Rent, "12 × 1 × 2.5")
}

func TestCalculatePeriods_EntregaYDevolucionMismoDiaSinSaldoPrevio(t *testing.T) {
	periods, closing, rep := calc(t,
		[]rental.Record{rec("2025-01-05", "U-1", 10)},
		[]rental.Record{rec("2025-01-05", "J-1", 10)},
		"2025-01-31", "5")

	assert.Empty(t, periods, "netear el mismo día no genera periodo")
	assert.Equal(t, money.Zero, rental.TotalRent(periods))
	assert.Equal(t, 0, closing)
	assert.Empty(t, rep.Diagnostics(), "el orden entrega→devolución evita saldo negativo")
}

func TestCalculatePeriods_EntregaYDevolucionMismoDiaConSaldoPrevio(t *testing.T) {
	periods, _, _ := calc(t,
		[]rental.Record{rec("2025-01-01", "U-1", 10), rec("2025-01-10", "U-2", 5)},
		[]rental.Record{rec("2025-01-10", "J-1", 5)},
		"2025-01-31", "1")

	require.Len(t, periods, 2)
	assert.Equal(t, 10, periods[0].Quantity)
	assert.Equal(t, 9, periods[0].Days)
	assert.Equal(t, 10, periods[1].Quantity, "la cantidad no cambia")
	assert.Equal(t, 5, periods[1].IssueQty)
	assert.Equal(t, 5, periods[1].ReturnQty)
	assert.Equal(t, "U-2", periods[1].ReferenceID)
	assert.Equal(t, money.MustParse("310"), rental.TotalRent(periods), "10 × 31 × 1 sin importar el corte")
}

func TestCalculatePeriods_DevolucionSeFacturaElDiaQueOcurre(t *testing.T) {
	periods, closing, _ := calc(t,
		[]rental.Record{rec("2025-01-01", "U-1", 10)},
		[]rental.Record{rec("2025-01-05", "J-1", 10)},
		"2025-01-31", "1")

	require.Len(t, periods, 1)
	assert.Equal(t, day(t, "2025-01-06"), periods[0].End)
	assert.False(t, periods[0].InclusiveEnd)
	assert.Equal(t, 5, periods[0].Days, "del 1 al 5 inclusive")
	assert.Equal(t, 0, closing)
}

func TestCalculatePeriods_DevolucionSinEntregaSeRecortaACero(t *testing.T) {
	periods, closing, rep := calc(t,
		[]rental.Record{rec("2025-01-10", "U-1", 4)},
		[]rental.Record{rec("2025-01-02", "J-1", 3), rec("2025-01-20", "J-2", 9)},
		"2025-01-31", "1")

	require.Len(t, periods, 1)
	assert.Equal(t, 4, periods[0].Quantity)
	assert.Equal(t, day(t, "2025-01-21"), periods[0].End)
	assert.Equal(t, 0, closing)
	assert.Equal(t, []rental.DiagnosticCode{rental.DiagNegativeBalance, rental.DiagNegativeBalance},
		codes(rep.Diagnostics()))
}

func TestCalculatePeriods_VariosTramosYHuecoSinSaldo(t *testing.T) {
	periods, closing, _ := calc(t,
		[]rental.Record{rec("2025-01-01", "U-1", 10), rec("2025-01-05", "U-2", 5), rec("2025-01-25", "U-3", 3)},
		[]rental.Record{rec("2025-01-10", "J-1", 8), rec("2025-01-20", "J-2", 7)},
		"2025-01-31", "2")

	require.Len(t, periods, 4)
	want := []struct {
		start, end string
		qty, days  int
	}{
		{"2025-01-01", "2025-01-05", 10, 4},
		{"2025-01-05", "2025-01-11", 15, 6},
		{"2025-01-11", "2025-01-21", 7, 10},
		{"2025-01-25", "2025-01-31", 3, 7},
	}
	for i, w := range want {
		assert.Equal(t, day(t, w.start), periods[i].Start, "periodo %d", i)
		assert.Equal(t, day(t, w.end), periods[i].End, "periodo %d", i)
		assert.Equal(t, w.qty, periods[i].Quantity, "periodo %d", i)
		assert.Equal(t, w.days, periods[i].Days, "periodo %d", i)
	}
	assert.Equal(t, rental.KindReturn, periods[2].CauseType)
	assert.Equal(t, "J-1", periods[2].ReferenceID)
	assert.Equal(t, money.MustParse("442"), rental.TotalRent(periods), "221 unidades-día × 2")
	assert.Equal(t, 3, closing)
}

func TestCalculatePeriods_FechaDeFacturaAMitadDePeriodo(t *testing.T) {
	periods, _, _ := calc(t,
		[]rental.Record{rec("2025-01-01", "U-1", 10), rec("2025-02-20", "U-2", 10)},
		nil, "2025-02-10", "1")

	require.Len(t, periods, 1, "la entrega posterior a la factura no cuenta")
	assert.Equal(t, day(t, "2025-02-10"), periods[0].End)
	assert.True(t, periods[0].InclusiveEnd)
	assert.Equal(t, 41, periods[0].Days)
}

func TestCalculatePeriods_DevolucionEnLaFechaDeFactura(t *testing.T) {
	periods, closing, rep := calc(t,
		[]rental.Record{rec("2025-01-01", "U-1", 50)},
		[]rental.Record{rec("2025-01-31", "J-1", 10)},
		"2025-01-31", "5")

	require.Len(t, periods, 1)
	assert.Equal(t, 31, periods[0].Days, "el día 31 se factura completo con 50")
	assert.Equal(t, money.MustParse("7750"), periods[0].Rent)
	assert.Equal(t, 40, closing, "la devolución ya cuenta en el saldo de cierre")
	assert.Equal(t, []rental.DiagnosticCode{rental.DiagEmptyPeriod}, codes(rep.Diagnostics()))
}

// Los periodos no se solapan, tienen días > 0 y cubren exactamente los días con saldo > 0.
// Se contrasta contra una simulación día a día independiente.
func TestCalculatePeriods_PropiedadSinHuecosNiSolapes(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	base := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	rate := money.MustParse("1.75")

	for iter := 0; iter < 200; iter++ {
		var issues, returns []rental.Record
		nIssues, nReturns := rng.Intn(12)+1, rng.Intn(12)
		for i := 0; i < nIssues; i++ {
			d := base.AddDate(0, 0, rng.Intn(40)).Format(rental.DateLayout)
			issues = append(issues, rec(d, "U", rng.Intn(20)+1))
		}
		for i := 0; i < nReturns; i++ {
			d := base.AddDate(0, 0, rng.Intn(40)).Format(rental.DateLayout)
			returns = append(returns, rec(d, "J", rng.Intn(20)+1))
		}
		billDate := base.AddDate(0, 0, rng.Intn(45))

		rep := rental.NewReporter(zerolog.Nop())
		events := rental.Normalize(issues, returns, rep)
		periods, closing := rental.CalculatePeriods(events, billDate, rate, rep)

		for i, p := range periods {
			require.Greater(t, p.Days, 0)
			require.Greater(t, p.Quantity, 0)
			if i > 0 {
				require.False(t, p.Start.Before(periods[i-1].End), "solape en iteración %d", iter)
			}
			if i < len(periods)-1 {
				require.False(t, p.InclusiveEnd, "solo el último periodo es inclusivo")
			}
		}

		unitDays, want := simulateDaily(events, billDate)
		got := 0
		for _, p := range periods {
			got += p.Quantity * p.Days
		}
		require.Equal(t, unitDays, got, "unidades-día en iteración %d", iter)
		require.Equal(t, rate.MulInt(int64(unitDays)), rental.TotalRent(periods))
		require.Equal(t, want, closing, "saldo de cierre en iteración %d", iter)
	}
}

// simulateDaily aplica los eventos día a día (entregas antes que devoluciones, saldo nunca
// negativo) y acumula el saldo de cada día hasta billDate inclusive.
func simulateDaily(events []rental.Event, billDate time.Time) (unitDays, closing int) {
	var inWindow []rental.Event
	for _, ev := range events {
		if !ev.Date.After(billDate) {
			inWindow = append(inWindow, ev)
		}
	}
	if len(inWindow) == 0 {
		return 0, 0
	}
	first := inWindow[0].EffectiveDate
	last := billDate
	if end := inWindow[len(inWindow)-1].EffectiveDate; end.After(last) {
		last = end
	}
	balance := 0
	for d := first; !d.After(last); d = d.AddDate(0, 0, 1) {
		for _, kind := range []rental.Kind{rental.KindIssue, rental.KindReturn} {
			for _, ev := range inWindow {
				if !ev.EffectiveDate.Equal(d) || ev.Kind != kind {
					continue
				}
				if kind == rental.KindIssue {
					balance += ev.Quantity
				} else {
					balance -= ev.Quantity
					if balance < 0 {
						balance = 0
					}
				}
			}
		}
		if !d.After(billDate) {
			unitDays += balance
		}
	}
	return unitDays, balance
}

// Más de 292 años entre entrega y factura: time.Duration saturaría en 106752 días.
func TestCalculatePeriods_IntervaloDeSiglos(t *testing.T) {
	periods, closing, rep := calc(t, []rental.Record{rec("0205-01-01", "U-1", 1)}, nil, "2025-01-01", "1")

	require.Len(t, periods, 1)
	assert.Equal(t, 664743, periods[0].Days)
	assert.Equal(t, money.MustParse("664743"), periods[0].Rent)
	assert.Equal(t, money.MustParse("664743.00"), rental.TotalRent(periods))
	assert.Equal(t, 1, closing)
	assert.Empty(t, rep.Diagnostics())
}

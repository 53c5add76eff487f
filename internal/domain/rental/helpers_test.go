package rental_test

import (
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/plate-rental-api/internal/domain/rental"
	"github.com/jhoicas/plate-rental-api/pkg/money"
)

// ── helpers ───────────────────────────────────────────────────────────────────

func rec(date, ref string, qty ...int) rental.Record {
	q := map[string]int{}
	sizes := []string{"9x12", "9x15", "9x18"}
	for i, n := range qty {
		q[sizes[i]] = n
	}
	return rental.Record{Date: date, ReferenceID: ref, Quantities: q}
}

func day(t *testing.T, s string) time.Time {
	t.Helper()
	d, err := rental.ParseDate(s)
	require.NoError(t, err)
	return d
}

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func decPtr(s string) *decimal.Decimal {
	d := dec(s)
	return &d
}

func amt(s string) rental.LineItem { return rental.LineItem{Amount: money.MustParse(s)} }

func newEngine() *rental.Engine {
	return rental.NewEngine(zerolog.Nop(), money.MustParse("0.50"))
}

func codes(ds []rental.Diagnostic) []rental.DiagnosticCode {
	out := make([]rental.DiagnosticCode, 0, len(ds))
	for _, d := range ds {
		out = append(out, d.Code)
	}
	return out
}

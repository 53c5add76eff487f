package rental

import (
	"time"

	"github.com/jhoicas/plate-rental-api/pkg/money"
)

// ClampToWindow restringe la facturación a partir de from (refacturación parcial).
//
//   - periodos cuyo último día facturado es anterior a from: se descartan;
//   - periodos que empiezan en from o después: sin cambios;
//   - el periodo que cruza from: empieza en from y se recalculan días y renta,
//     conservando cantidad, causa, referencia y si su fin es inclusivo.
//
// El slice de entrada no se modifica.
func ClampToWindow(periods []Period, from time.Time, rate money.Money) []Period {
	from = Day(from)
	out := make([]Period, 0, len(periods))
	for _, p := range periods {
		switch {
		case p.LastDay().Before(from):
			continue
		case !p.Start.Before(from):
			out = append(out, p)
		default:
			p.Start = from
			p.Days = daysBetween(from, p.End)
			if p.InclusiveEnd {
				p.Days++
			}
			p.Rent = periodRent(p.Quantity, p.Days, rate)
			out = append(out, p)
		}
	}
	return out
}

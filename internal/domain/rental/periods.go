package rental

import (
	"fmt"
	"time"

	"github.com/jhoicas/plate-rental-api/pkg/money"
)

type bucket struct {
	date   time.Time
	events []Event
}

// groupByEffectiveDate agrupa por fecha efectiva los eventos con Date <= billDate.
// Los grupos salen en orden ascendente y, dentro de cada uno, entregas antes que devoluciones.
func groupByEffectiveDate(events []Event, billDate time.Time) []bucket {
	var buckets []bucket
	for _, ev := range SortByEffectiveDate(events) {
		if ev.Date.After(billDate) {
			continue
		}
		n := len(buckets)
		if n > 0 && buckets[n-1].date.Equal(ev.EffectiveDate) {
			buckets[n-1].events = append(buckets[n-1].events, ev)
			continue
		}
		buckets = append(buckets, bucket{date: ev.EffectiveDate, events: []Event{ev}})
	}
	return buckets
}

// CalculatePeriods recorre los eventos por fecha efectiva manteniendo el saldo real y emite
// un periodo por cada tramo con saldo > 0. Devuelve también el saldo de cierre.
//
// El último periodo termina en billDate inclusive. Una devolución mayor que el saldo lo deja
// en cero con diagnóstico; un periodo de cero días se descarta con diagnóstico.
func CalculatePeriods(events []Event, billDate time.Time, rate money.Money, r *Reporter) ([]Period, int) {
	billDate = Day(billDate)
	buckets := groupByEffectiveDate(events, billDate)

	var periods []Period
	balance := 0
	for i, b := range buckets {
		var issued, returned int
		var firstIssue, firstReturn string
		for _, ev := range b.events {
			switch ev.Kind {
			case KindIssue:
				if issued == 0 {
					firstIssue = ev.ReferenceID
				}
				issued += ev.Quantity
				balance += ev.Quantity
			case KindReturn:
				if returned == 0 {
					firstReturn = ev.ReferenceID
				}
				returned += ev.Quantity
				if ev.Quantity > balance {
					r.Warn(Diagnostic{
						Code:        DiagNegativeBalance,
						Date:        b.date,
						ReferenceID: ev.ReferenceID,
						Message:     fmt.Sprintf("devolución de %d supera el saldo %d; saldo ajustado a 0", ev.Quantity, balance),
					})
					balance = 0
					continue
				}
				balance -= ev.Quantity
			}
		}
		if balance <= 0 {
			continue
		}

		p := Period{Start: b.date, Quantity: balance}
		if i+1 < len(buckets) {
			p.End = buckets[i+1].date
			p.Days = daysBetween(p.Start, p.End)
		} else {
			p.End = billDate
			p.InclusiveEnd = true
			p.Days = daysBetween(p.Start, p.End) + 1
		}
		if p.Days <= 0 {
			r.Warn(Diagnostic{
				Code:    DiagEmptyPeriod,
				Date:    b.date,
				Message: fmt.Sprintf("periodo desde %s sin días facturables omitido", dateKey(b.date)),
			})
			continue
		}

		if issued > 0 {
			p.CauseType, p.ReferenceID = KindIssue, firstIssue
		} else {
			p.CauseType, p.ReferenceID = KindReturn, firstReturn
		}
		if issued > 0 && returned > 0 {
			p.IssueQty, p.ReturnQty = issued, returned
		}
		p.Rent = periodRent(p.Quantity, p.Days, rate)
		periods = append(periods, p)
	}
	return periods, balance
}

func periodRent(quantity, days int, rate money.Money) money.Money {
	return rate.MulInt(int64(quantity) * int64(days))
}

// TotalRent suma la renta de los periodos en unidades menores.
func TotalRent(periods []Period) money.Money {
	rents := make([]money.Money, len(periods))
	for i, p := range periods {
		rents[i] = p.Rent
	}
	return money.Sum(rents...)
}

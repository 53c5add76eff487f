package rental

import (
	"fmt"
	"sort"
)

// Normalize convierte los challans de entrega y devolución en eventos ordenados por
// (EffectiveDate, Priority).
//
// Una devolución cambia el saldo al día siguiente de su fecha, salvo que exista una entrega
// en la misma fecha: entonces surte efecto el mismo día y ambas se netean.
// Registros con fecha ilegible, alguna subcantidad negativa o cantidad total <= 0 se
// descartan con diagnóstico.
func Normalize(issues, returns []Record, r *Reporter) []Event {
	events := make([]Event, 0, len(issues)+len(returns))
	issueDays := make(map[string]struct{}, len(issues))

	for _, rec := range issues {
		ev, ok := toEvent(rec, KindIssue, r)
		if !ok {
			continue
		}
		issueDays[dateKey(ev.Date)] = struct{}{}
		ev.EffectiveDate = ev.Date
		events = append(events, ev)
	}

	for _, rec := range returns {
		ev, ok := toEvent(rec, KindReturn, r)
		if !ok {
			continue
		}
		if _, sameDay := issueDays[dateKey(ev.Date)]; sameDay {
			ev.EffectiveDate = ev.Date
		} else {
			ev.EffectiveDate = addDays(ev.Date, 1)
		}
		events = append(events, ev)
	}

	return SortByEffectiveDate(events)
}

func toEvent(rec Record, kind Kind, r *Reporter) (Event, bool) {
	date, err := ParseDate(rec.Date)
	if err != nil {
		r.Warn(Diagnostic{
			Code:        DiagInvalidDate,
			ReferenceID: rec.ReferenceID,
			Message:     fmt.Sprintf("%s con fecha ilegible %q omitido", kind, rec.Date),
		})
		return Event{}, false
	}
	if size, neg := rec.NegativeSize(); neg {
		r.Warn(Diagnostic{
			Code:        DiagNonPositiveQuantity,
			Date:        date,
			ReferenceID: rec.ReferenceID,
			Message:     fmt.Sprintf("%s con cantidad negativa en %s (%d) omitido", kind, size, rec.Quantities[size]),
		})
		return Event{}, false
	}
	qty := rec.Total()
	if qty <= 0 {
		r.Warn(Diagnostic{
			Code:        DiagNonPositiveQuantity,
			Date:        date,
			ReferenceID: rec.ReferenceID,
			Message:     fmt.Sprintf("%s con cantidad %d omitido", kind, qty),
		})
		return Event{}, false
	}
	return Event{
		Date:        date,
		Kind:        kind,
		Quantity:    qty,
		ReferenceID: rec.ReferenceID,
		Priority:    kind.Priority(),
	}, true
}

// SortByEffectiveDate devuelve una copia ordenada por (EffectiveDate, Priority).
// Es la vista que usa el cálculo de periodos.
func SortByEffectiveDate(events []Event) []Event {
	out := append([]Event(nil), events...)
	sort.SliceStable(out, func(i, j int) bool {
		if !out[i].EffectiveDate.Equal(out[j].EffectiveDate) {
			return out[i].EffectiveDate.Before(out[j].EffectiveDate)
		}
		return out[i].Priority < out[j].Priority
	})
	return out
}

// SortByTransactionDate devuelve una copia ordenada por (Date, Priority).
// Es la vista que usa el libro de saldos.
func SortByTransactionDate(events []Event) []Event {
	out := append([]Event(nil), events...)
	sort.SliceStable(out, func(i, j int) bool {
		if !out[i].Date.Equal(out[j].Date) {
			return out[i].Date.Before(out[j].Date)
		}
		return out[i].Priority < out[j].Priority
	})
	return out
}

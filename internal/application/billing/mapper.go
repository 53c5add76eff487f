package billing

import (
	"strings"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/plate-rental-api/internal/application/dto"
	"github.com/jhoicas/plate-rental-api/internal/domain/entity"
	"github.com/jhoicas/plate-rental-api/internal/domain/rental"
	"github.com/jhoicas/plate-rental-api/pkg/money"
)

func toRecords(in []dto.ChallanRequest) []rental.Record {
	out := make([]rental.Record, 0, len(in))
	for _, c := range in {
		out = append(out, rental.Record{Date: c.Date, ReferenceID: c.Number, Quantities: c.Quantities})
	}
	return out
}

func toLineItems(in []dto.AmountItem) []rental.LineItem {
	if len(in) == 0 {
		return nil
	}
	out := make([]rental.LineItem, 0, len(in))
	for _, it := range in {
		out = append(out, rental.LineItem{Label: it.Label, Amount: money.FromDecimal(it.Amount)})
	}
	return out
}

// challansToRecords separa los challans almacenados en entregas y devoluciones.
// Los de tipo desconocido se devuelven aparte para que el llamador los registre.
func challansToRecords(challans []*entity.Challan) (issues, returns []rental.Record, unknown []string) {
	for _, c := range challans {
		q := make(map[string]int, len(c.Items))
		for _, it := range c.Items {
			q[it.Size] += it.Quantity
		}
		rec := rental.Record{Date: c.Date.Format(rental.DateLayout), ReferenceID: c.Number, Quantities: q}
		switch c.Type {
		case entity.ChallanTypeIssue:
			issues = append(issues, rec)
		case entity.ChallanTypeReturn:
			returns = append(returns, rec)
		default:
			unknown = append(unknown, c.Number)
		}
	}
	return issues, returns, unknown
}

// normDate devuelve la fecha en formato YYYY-MM-DD si se puede interpretar; si no, tal cual.
func normDate(s string) string {
	if strings.TrimSpace(s) == "" {
		return ""
	}
	d, err := rental.ParseDate(s)
	if err != nil {
		return s
	}
	return d.Format(rental.DateLayout)
}

func toBillResponse(res *rental.BillResult, billDate, fromDate string, rate decimal.Decimal) *dto.BillResponse {
	resp := &dto.BillResponse{
		BillDate:           normDate(billDate),
		FromDate:           normDate(fromDate),
		DailyRate:          money.FromDecimal(rate),
		Periods:            make([]dto.PeriodResponse, 0, len(res.Periods)),
		ClosingBalance:     res.ClosingBalance,
		TotalRent:          res.TotalRent,
		ExtraChargesTotal:  res.ExtraChargesTotal,
		DiscountsTotal:     res.DiscountsTotal,
		PaymentsTotal:      res.PaymentsTotal,
		ServiceChargeTotal: res.ServiceChargeTotal,
		GrandTotal:         res.GrandTotal,
		DueAmount:          res.DueAmount,
	}
	for _, p := range res.Periods {
		resp.Periods = append(resp.Periods, dto.PeriodResponse{
			StartDate:    p.Start.Format(rental.DateLayout),
			EndDate:      p.End.Format(rental.DateLayout),
			InclusiveEnd: p.InclusiveEnd,
			Quantity:     p.Quantity,
			Days:         p.Days,
			Rent:         p.Rent,
			CauseType:    string(p.CauseType),
			ReferenceID:  p.ReferenceID,
			IssueQty:     p.IssueQty,
			ReturnQty:    p.ReturnQty,
		})
	}
	for _, l := range res.Ledger {
		resp.Ledger = append(resp.Ledger, dto.LedgerEntryResponse{
			TransactionDate: l.TransactionDate.Format(rental.DateLayout),
			EffectiveDate:   l.EffectiveDate.Format(rental.DateLayout),
			BalanceBefore:   l.BalanceBefore,
			SignedQuantity:  l.SignedQuantity,
			BalanceAfter:    l.BalanceAfter,
			Kind:            string(l.Kind),
			ReferenceID:     l.ReferenceID,
		})
	}
	for _, d := range res.Diagnostics {
		item := dto.DiagnosticResponse{Code: string(d.Code), ReferenceID: d.ReferenceID, Message: d.Message}
		if !d.Date.IsZero() {
			item.Date = d.Date.Format(rental.DateLayout)
		}
		resp.Diagnostics = append(resp.Diagnostics, item)
	}
	return resp
}

func toBillLines(billID string, periods []rental.Period) []*entity.BillLine {
	lines := make([]*entity.BillLine, 0, len(periods))
	for _, p := range periods {
		lines = append(lines, &entity.BillLine{
			BillID:       billID,
			StartDate:    p.Start,
			EndDate:      p.End,
			InclusiveEnd: p.InclusiveEnd,
			Quantity:     p.Quantity,
			Days:         p.Days,
			Rent:         p.Rent.Decimal(),
			CauseType:    string(p.CauseType),
			ReferenceID:  p.ReferenceID,
			IssueQty:     p.IssueQty,
			ReturnQty:    p.ReturnQty,
		})
	}
	return lines
}

// storedBillResponse reconstruye la respuesta desde lo persistido (sin libro ni diagnósticos).
func storedBillResponse(b *entity.Bill, lines []*entity.BillLine) *dto.BillResponse {
	resp := &dto.BillResponse{
		ID:                 b.ID,
		Number:             b.Number,
		ClientID:           b.ClientID,
		BillDate:           b.BillDate.Format(rental.DateLayout),
		DailyRate:          money.FromDecimal(b.DailyRate),
		Periods:            make([]dto.PeriodResponse, 0, len(lines)),
		ClosingBalance:     b.ClosingBalance,
		TotalRent:          money.FromDecimal(b.TotalRent),
		ExtraChargesTotal:  money.FromDecimal(b.ExtraChargesTotal),
		DiscountsTotal:     money.FromDecimal(b.DiscountsTotal),
		PaymentsTotal:      money.FromDecimal(b.PaymentsTotal),
		ServiceChargeTotal: money.FromDecimal(b.ServiceChargeTotal),
		GrandTotal:         money.FromDecimal(b.GrandTotal),
		DueAmount:          money.FromDecimal(b.DueAmount),
	}
	if b.FromDate != nil {
		resp.FromDate = b.FromDate.Format(rental.DateLayout)
	}
	for _, l := range lines {
		resp.Periods = append(resp.Periods, dto.PeriodResponse{
			StartDate:    l.StartDate.Format(rental.DateLayout),
			EndDate:      l.EndDate.Format(rental.DateLayout),
			InclusiveEnd: l.InclusiveEnd,
			Quantity:     l.Quantity,
			Days:         l.Days,
			Rent:         money.FromDecimal(l.Rent),
			CauseType:    l.CauseType,
			ReferenceID:  l.ReferenceID,
			IssueQty:     l.IssueQty,
			ReturnQty:    l.ReturnQty,
		})
	}
	return resp
}

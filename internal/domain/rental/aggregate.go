package rental

import "github.com/jhoicas/plate-rental-api/pkg/money"

// Charges importes adicionales de la factura.
type Charges struct {
	ExtraCharges []LineItem
	Discounts    []LineItem
	Payments     []LineItem
	ServiceRate  money.Money // por unidad y periodo
}

// Aggregate combina la renta con cargos, descuentos, pagos y cargo de servicio.
//
//	GrandTotal = TotalRent + ExtraCharges + ServiceCharge - Discounts
//	DueAmount  = GrandTotal - Payments
func Aggregate(periods []Period, totalRent money.Money, c Charges) Totals {
	t := Totals{
		TotalRent:         totalRent,
		ExtraChargesTotal: sumItems(c.ExtraCharges),
		DiscountsTotal:    sumItems(c.Discounts),
		PaymentsTotal:     sumItems(c.Payments),
	}
	for _, p := range periods {
		t.ServiceChargeTotal = t.ServiceChargeTotal.Add(c.ServiceRate.MulInt(int64(p.Quantity)))
	}
	t.GrandTotal = t.TotalRent.
		Add(t.ExtraChargesTotal).
		Add(t.ServiceChargeTotal).
		Sub(t.DiscountsTotal)
	t.DueAmount = t.GrandTotal.Sub(t.PaymentsTotal)
	return t
}

func sumItems(items []LineItem) money.Money {
	amounts := make([]money.Money, len(items))
	for i, it := range items {
		amounts[i] = it.Amount
	}
	return money.Sum(amounts...)
}

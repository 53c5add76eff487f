package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Bill cabecera de una factura de alquiler ya calculada.
type Bill struct {
	ID                 string
	ClientID           string
	Number             string
	BillDate           time.Time
	FromDate           *time.Time // nil = facturación desde el primer movimiento
	DailyRate          decimal.Decimal
	TotalRent          decimal.Decimal
	ExtraChargesTotal  decimal.Decimal
	DiscountsTotal     decimal.Decimal
	PaymentsTotal      decimal.Decimal
	ServiceChargeTotal decimal.Decimal
	GrandTotal         decimal.Decimal
	DueAmount          decimal.Decimal
	ClosingBalance     int
	CreatedAt          time.Time
}

// BillLine periodo facturado dentro de una factura.
type BillLine struct {
	ID           string
	BillID       string
	StartDate    time.Time
	EndDate      time.Time
	InclusiveEnd bool
	Quantity     int
	Days         int
	Rent         decimal.Decimal
	CauseType    string
	ReferenceID  string
	IssueQty     int // entregado el día de inicio cuando se netea con una devolución
	ReturnQty    int
}

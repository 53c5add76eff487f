package dto

import (
	"github.com/shopspring/decimal"

	"github.com/jhoicas/plate-rental-api/pkg/money"
)

// ChallanRequest challan de entrega o devolución enviado en el cuerpo de la petición.
// Quantities: medida -> cantidad (>= 0); las medidas ausentes cuentan como 0.
type ChallanRequest struct {
	Date       string         `json:"date" validate:"required"`
	Number     string         `json:"number"`
	Quantities map[string]int `json:"quantities" validate:"required,min=1,dive,gte=0"`
}

// AmountItem cargo extra, descuento o pago.
type AmountItem struct {
	Label  string          `json:"label"`
	Amount decimal.Decimal `json:"amount" validate:"gte=0"`
}

// CalculateBillRequest body para POST /api/bills/calculate (sin persistencia).
type CalculateBillRequest struct {
	Issues       []ChallanRequest `json:"issues" validate:"dive"`
	Returns      []ChallanRequest `json:"returns" validate:"dive"`
	BillDate     string           `json:"bill_date" validate:"required"`
	FromDate     string           `json:"from_date,omitempty"`
	DailyRate    decimal.Decimal  `json:"daily_rate" validate:"gte=0"`
	ServiceRate  *decimal.Decimal `json:"service_rate,omitempty" validate:"omitempty,gte=0"`
	ExtraCharges []AmountItem     `json:"extra_charges" validate:"dive"`
	Discounts    []AmountItem     `json:"discounts" validate:"dive"`
	Payments     []AmountItem     `json:"payments" validate:"dive"`
}

// GenerateBillRequest body para POST /api/clients/:id/bills.
// DailyRate opcional: si va vacío se usa la tarifa del cliente.
type GenerateBillRequest struct {
	BillDate     string           `json:"bill_date" validate:"required"`
	FromDate     string           `json:"from_date,omitempty"`
	DailyRate    *decimal.Decimal `json:"daily_rate,omitempty" validate:"omitempty,gte=0"`
	ServiceRate  *decimal.Decimal `json:"service_rate,omitempty" validate:"omitempty,gte=0"`
	ExtraCharges []AmountItem     `json:"extra_charges" validate:"dive"`
	Discounts    []AmountItem     `json:"discounts" validate:"dive"`
	Payments     []AmountItem     `json:"payments" validate:"dive"`
}

// BatchPreviewRequest body para POST /api/bills/preview.
// Sin ClientIDs se calcula la primera página de clientes.
type BatchPreviewRequest struct {
	ClientIDs []string `json:"client_ids" validate:"omitempty,max=200,dive,required"`
	BillDate  string   `json:"bill_date" validate:"required"`
}

// PeriodResponse periodo facturado (una fila de la factura).
type PeriodResponse struct {
	StartDate    string      `json:"start_date"`
	EndDate      string      `json:"end_date"`
	InclusiveEnd bool        `json:"inclusive_end"`
	Quantity     int         `json:"quantity"`
	Days         int         `json:"days"`
	Rent         money.Money `json:"rent"`
	CauseType    string      `json:"cause_type"`
	ReferenceID  string      `json:"reference_id,omitempty"`
	IssueQty     int         `json:"issue_qty,omitempty"`
	ReturnQty    int         `json:"return_qty,omitempty"`
}

// LedgerEntryResponse fila del libro de saldos (auditoría).
type LedgerEntryResponse struct {
	TransactionDate string `json:"transaction_date"`
	EffectiveDate   string `json:"effective_date"`
	BalanceBefore   int    `json:"balance_before"`
	SignedQuantity  int    `json:"signed_quantity"`
	BalanceAfter    int    `json:"balance_after"`
	Kind            string `json:"kind"`
	ReferenceID     string `json:"reference_id,omitempty"`
}

// DiagnosticResponse advertencia de integridad de datos.
type DiagnosticResponse struct {
	Code        string `json:"code"`
	Date        string `json:"date,omitempty"`
	ReferenceID string `json:"reference_id,omitempty"`
	Message     string `json:"message"`
}

// BillResponse factura calculada (y persistida si ID no está vacío).
type BillResponse struct {
	ID                 string                `json:"id,omitempty"`
	Number             string                `json:"number,omitempty"`
	ClientID           string                `json:"client_id,omitempty"`
	BillDate           string                `json:"bill_date"`
	FromDate           string                `json:"from_date,omitempty"`
	DailyRate          money.Money           `json:"daily_rate"`
	Periods            []PeriodResponse      `json:"periods"`
	Ledger             []LedgerEntryResponse `json:"ledger,omitempty"`
	Diagnostics        []DiagnosticResponse  `json:"diagnostics,omitempty"`
	ClosingBalance     int                   `json:"closing_balance"`
	TotalRent          money.Money           `json:"total_rent"`
	ExtraChargesTotal  money.Money           `json:"extra_charges_total"`
	DiscountsTotal     money.Money           `json:"discounts_total"`
	PaymentsTotal      money.Money           `json:"payments_total"`
	ServiceChargeTotal money.Money           `json:"service_charge_total"`
	GrandTotal         money.Money           `json:"grand_total"`
	DueAmount          money.Money           `json:"due_amount"`
}

// BatchPreviewItem resultado de la vista previa de un cliente.
// Error no vacío indica que ese cliente no pudo calcularse (el resto sí).
type BatchPreviewItem struct {
	ClientID       string      `json:"client_id"`
	ClientName     string      `json:"client_name,omitempty"`
	ClosingBalance int         `json:"closing_balance"`
	TotalRent      money.Money `json:"total_rent"`
	GrandTotal     money.Money `json:"grand_total"`
	Warnings       int         `json:"warnings"`
	Error          string      `json:"error,omitempty"`
}

// Package rental implementa el motor de periodos de facturación de alquiler de placas:
// convierte las entregas (udhar) y devoluciones (jama) de un cliente en periodos contiguos
// con cantidad constante y su renta, más los totales de la factura.
//
// El motor es una función pura de sus entradas: no consulta almacenamiento, no persiste
// y no guarda estado entre llamadas.
package rental

import (
	"sort"
	"time"

	"github.com/jhoicas/plate-rental-api/pkg/money"
)

// Kind tipo de evento de inventario.
type Kind string

// Tipos de evento.
const (
	KindIssue  Kind = "issue"  // entrega al cliente (udhar)
	KindReturn Kind = "return" // devolución al depósito (jama)
)

// Priority desempate cuando dos eventos comparten fecha: entregas antes que devoluciones.
func (k Kind) Priority() int {
	if k == KindIssue {
		return 1
	}
	return 2
}

func (k Kind) sign() int {
	if k == KindIssue {
		return 1
	}
	return -1
}

// Record challan crudo tal como lo entrega el llamador.
// Quantities guarda las subcantidades por medida; una clave ausente cuenta como 0.
type Record struct {
	Date        string         // YYYY-MM-DD
	ReferenceID string         // número de challan
	Quantities  map[string]int // medida -> cantidad
}

// Total suma todas las subcantidades del registro.
func (r Record) Total() int {
	total := 0
	for _, q := range r.Quantities {
		total += q
	}
	return total
}

// NegativeSize devuelve la primera medida con subcantidad negativa, si existe.
func (r Record) NegativeSize() (string, bool) {
	sizes := make([]string, 0, len(r.Quantities))
	for size, q := range r.Quantities {
		if q < 0 {
			sizes = append(sizes, size)
		}
	}
	if len(sizes) == 0 {
		return "", false
	}
	sort.Strings(sizes)
	return sizes[0], true
}

// Event evento de inventario normalizado.
type Event struct {
	Date          time.Time // fecha real de la transacción
	EffectiveDate time.Time // fecha en la que cambia el saldo facturable
	Kind          Kind
	Quantity      int
	ReferenceID   string
	Priority      int
}

// LedgerEntry fila del libro de saldos (solo auditoría/visualización).
type LedgerEntry struct {
	TransactionDate time.Time `json:"transaction_date"`
	EffectiveDate   time.Time `json:"effective_date"`
	BalanceBefore   int       `json:"balance_before"`
	SignedQuantity  int       `json:"signed_quantity"`
	BalanceAfter    int       `json:"balance_after"`
	Kind            Kind      `json:"kind"`
	ReferenceID     string    `json:"reference_id"`
}

// Period rango máximo de fechas con cantidad constante > 0.
//
// End es exclusivo (inicio del siguiente periodo) salvo en el último periodo, donde End es
// la fecha de factura y se factura incluida (InclusiveEnd = true, Days = diferencia + 1).
type Period struct {
	Start        time.Time
	End          time.Time
	Quantity     int
	Days         int
	Rent         money.Money
	CauseType    Kind
	ReferenceID  string
	IssueQty     int // solo si el día de apertura hubo entregas y devoluciones
	ReturnQty    int
	InclusiveEnd bool
}

// LastDay último día facturado del periodo.
func (p Period) LastDay() time.Time {
	if p.InclusiveEnd {
		return p.End
	}
	return addDays(p.End, -1)
}

// LineItem cargo extra, descuento o pago ya expresado como importe.
type LineItem struct {
	Label  string
	Amount money.Money
}

// Totals totales agregados de la factura.
type Totals struct {
	TotalRent          money.Money
	ExtraChargesTotal  money.Money
	DiscountsTotal     money.Money
	PaymentsTotal      money.Money
	ServiceChargeTotal money.Money
	GrandTotal         money.Money
	DueAmount          money.Money
}

// BillResult resultado completo de un cálculo.
type BillResult struct {
	Events         []Event
	Ledger         []LedgerEntry
	Periods        []Period
	ClosingBalance int
	Diagnostics    []Diagnostic
	Totals
}

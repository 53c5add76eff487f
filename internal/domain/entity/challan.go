package entity

import "time"

// Tipos de challan.
const (
	ChallanTypeIssue  = "ISSUE"  // udhar: salida del depósito hacia el cliente
	ChallanTypeReturn = "RETURN" // jama: devolución del cliente al depósito
)

// Challan documento de entrega o devolución de placas.
type Challan struct {
	ID        string
	ClientID  string
	Number    string
	Type      string
	Date      time.Time
	Items     []ChallanItem
	CreatedAt time.Time
}

// ChallanItem cantidad de una medida dentro del challan.
type ChallanItem struct {
	Size     string
	Quantity int
}

package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Client representa un cliente que alquila placas.
type Client struct {
	ID        string
	Name      string
	Phone     string
	DailyRate decimal.Decimal // tarifa por placa y día
	CreatedAt time.Time
	UpdatedAt time.Time
}

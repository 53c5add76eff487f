package dto

import "github.com/jhoicas/plate-rental-api/pkg/money"

// ClientResponse cliente de alquiler con su tarifa diaria.
type ClientResponse struct {
	ID        string      `json:"id"`
	Name      string      `json:"name"`
	Phone     string      `json:"phone,omitempty"`
	DailyRate money.Money `json:"daily_rate"`
}

// ClientListResponse página de clientes.
type ClientListResponse struct {
	Items []ClientResponse `json:"items"`
	Page  PageResponse     `json:"page"`
}

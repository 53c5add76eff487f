package repository

import (
	"context"
	"time"

	"github.com/jhoicas/plate-rental-api/internal/domain/entity"
)

// ChallanRepository define el puerto de lectura de challans de entrega/devolución.
type ChallanRepository interface {
	// ListByClient devuelve los challans del cliente con fecha <= until, con sus ítems, por fecha.
	ListByClient(ctx context.Context, clientID string, until time.Time) ([]*entity.Challan, error)
}

package repository

import (
	"context"

	"github.com/jhoicas/plate-rental-api/internal/domain/entity"
)

// BillRepository define el puerto de persistencia para facturas y sus periodos.
type BillRepository interface {
	Create(ctx context.Context, bill *entity.Bill) error
	CreateLines(ctx context.Context, lines []*entity.BillLine) error
	GetByID(ctx context.Context, id string) (*entity.Bill, error)
	ListLines(ctx context.Context, billID string) ([]*entity.BillLine, error)
}

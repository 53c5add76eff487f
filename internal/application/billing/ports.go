package billing

import (
	"context"

	"github.com/jhoicas/plate-rental-api/internal/domain/repository"
)

// BillingTxRunner ejecuta fn dentro de una transacción; fn recibe un BillRepository atado a ella.
// Si fn devuelve error no queda nada persistido.
type BillingTxRunner interface {
	RunBilling(ctx context.Context, fn func(bills repository.BillRepository) error) error
}

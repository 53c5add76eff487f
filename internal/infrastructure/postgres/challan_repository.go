package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jhoicas/plate-rental-api/internal/domain/entity"
	"github.com/jhoicas/plate-rental-api/internal/domain/repository"
)

var _ repository.ChallanRepository = (*ChallanRepo)(nil)

// ChallanRepo implementación de ChallanRepository.
type ChallanRepo struct {
	q Querier
}

// NewChallanRepository construye el adaptador. Pasar pool o tx (Querier).
func NewChallanRepository(q Querier) *ChallanRepo {
	return &ChallanRepo{q: q}
}

// ListByClient devuelve los challans del cliente hasta until (inclusive) con sus ítems.
// Un challan sin ítems se devuelve con Items vacío.
func (r *ChallanRepo) ListByClient(ctx context.Context, clientID string, until time.Time) ([]*entity.Challan, error) {
	query := `
		SELECT c.id, c.client_id, c.number, c.type, c.date, c.created_at, i.size, i.quantity
		FROM challans c
		LEFT JOIN challan_items i ON i.challan_id = c.id
		WHERE c.client_id = $1 AND c.date <= $2
		ORDER BY c.date, c.type, c.number, c.id, i.size`
	rows, err := r.q.Query(ctx, query, clientID, until)
	if err != nil {
		return nil, fmt.Errorf("list challans: %w", err)
	}
	defer rows.Close()

	var out []*entity.Challan
	byID := make(map[string]*entity.Challan)
	for rows.Next() {
		var (
			c    entity.Challan
			size *string
			qty  *int
		)
		if err := rows.Scan(&c.ID, &c.ClientID, &c.Number, &c.Type, &c.Date, &c.CreatedAt, &size, &qty); err != nil {
			return nil, fmt.Errorf("scan challan: %w", err)
		}
		cur, ok := byID[c.ID]
		if !ok {
			cur = &c
			byID[c.ID] = cur
			out = append(out, cur)
		}
		if size != nil && qty != nil {
			cur.Items = append(cur.Items, entity.ChallanItem{Size: *size, Quantity: *qty})
		}
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate challans: %w", err)
	}
	return out, nil
}

package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/plate-rental-api/internal/domain"
	"github.com/jhoicas/plate-rental-api/internal/domain/entity"
	"github.com/jhoicas/plate-rental-api/internal/domain/repository"
)

var _ repository.BillRepository = (*BillRepo)(nil)

// BillRepo implementación de BillRepository (usable con pool o tx).
type BillRepo struct {
	q Querier
}

// NewBillRepository construye el adaptador. Pasar pool o tx (Querier).
func NewBillRepository(q Querier) *BillRepo {
	return &BillRepo{q: q}
}

// Create persiste la cabecera de la factura. Un número repetido devuelve domain.ErrDuplicate.
func (r *BillRepo) Create(ctx context.Context, bill *entity.Bill) error {
	if bill.ID == "" {
		bill.ID = uuid.New().String()
	}
	query := `
		INSERT INTO bills (id, client_id, number, bill_date, from_date, daily_rate,
		                   total_rent, extra_charges_total, discounts_total, payments_total,
		                   service_charge_total, grand_total, due_amount, closing_balance, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)`
	_, err := r.q.Exec(ctx, query,
		bill.ID, bill.ClientID, bill.Number, bill.BillDate, bill.FromDate, bill.DailyRate,
		bill.TotalRent, bill.ExtraChargesTotal, bill.DiscountsTotal, bill.PaymentsTotal,
		bill.ServiceChargeTotal, bill.GrandTotal, bill.DueAmount, bill.ClosingBalance, bill.CreatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("bill number %s: %w", bill.Number, domain.ErrDuplicate)
		}
		return fmt.Errorf("insert bill: %w", err)
	}
	return nil
}

// CreateLines persiste los periodos de la factura en un único batch.
func (r *BillRepo) CreateLines(ctx context.Context, lines []*entity.BillLine) error {
	if len(lines) == 0 {
		return nil
	}
	query := `
		INSERT INTO bill_lines (id, bill_id, start_date, end_date, inclusive_end, quantity, days, rent,
		                        cause_type, reference_id, issue_qty, return_qty)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`
	batch := &pgx.Batch{}
	for _, line := range lines {
		if line.ID == "" {
			line.ID = uuid.New().String()
		}
		batch.Queue(query,
			line.ID, line.BillID, line.StartDate, line.EndDate, line.InclusiveEnd,
			line.Quantity, line.Days, line.Rent, line.CauseType, nullIfEmpty(line.ReferenceID),
			line.IssueQty, line.ReturnQty,
		)
	}
	br := r.q.SendBatch(ctx, batch)
	for range lines {
		if _, err := br.Exec(); err != nil {
			_ = br.Close()
			return fmt.Errorf("insert bill line: %w", err)
		}
	}
	if err := br.Close(); err != nil {
		return fmt.Errorf("close bill lines batch: %w", err)
	}
	return nil
}

// GetByID obtiene la cabecera de una factura; (nil, nil) si no existe.
func (r *BillRepo) GetByID(ctx context.Context, id string) (*entity.Bill, error) {
	query := `
		SELECT id, client_id, number, bill_date, from_date, daily_rate,
		       total_rent, extra_charges_total, discounts_total, payments_total,
		       service_charge_total, grand_total, due_amount, closing_balance, created_at
		FROM bills WHERE id = $1`
	var b entity.Bill
	err := r.q.QueryRow(ctx, query, id).Scan(
		&b.ID, &b.ClientID, &b.Number, &b.BillDate, &b.FromDate, &b.DailyRate,
		&b.TotalRent, &b.ExtraChargesTotal, &b.DiscountsTotal, &b.PaymentsTotal,
		&b.ServiceChargeTotal, &b.GrandTotal, &b.DueAmount, &b.ClosingBalance, &b.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get bill: %w", err)
	}
	return &b, nil
}

// ListLines devuelve los periodos de la factura en orden cronológico.
func (r *BillRepo) ListLines(ctx context.Context, billID string) ([]*entity.BillLine, error) {
	query := `
		SELECT id, bill_id, start_date, end_date, inclusive_end, quantity, days, rent,
		       cause_type, reference_id, issue_qty, return_qty
		FROM bill_lines WHERE bill_id = $1 ORDER BY start_date`
	rows, err := r.q.Query(ctx, query, billID)
	if err != nil {
		return nil, fmt.Errorf("list bill lines: %w", err)
	}
	defer rows.Close()

	var out []*entity.BillLine
	for rows.Next() {
		var (
			l   entity.BillLine
			ref *string
		)
		if err := rows.Scan(&l.ID, &l.BillID, &l.StartDate, &l.EndDate, &l.InclusiveEnd,
			&l.Quantity, &l.Days, &l.Rent, &l.CauseType, &ref, &l.IssueQty, &l.ReturnQty); err != nil {
			return nil, fmt.Errorf("scan bill line: %w", err)
		}
		l.ReferenceID = derefStr(ref)
		out = append(out, &l)
	}
	return out, rows.Err()
}

package billing_test

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/plate-rental-api/internal/application/billing"
	"github.com/jhoicas/plate-rental-api/internal/domain"
	"github.com/jhoicas/plate-rental-api/internal/domain/entity"
	"github.com/jhoicas/plate-rental-api/internal/domain/rental"
	"github.com/jhoicas/plate-rental-api/internal/domain/repository"
	"github.com/jhoicas/plate-rental-api/pkg/money"
)

// ──────────────────────────────────────────────────────────────────────────────
// Repositorios en memoria
// ──────────────────────────────────────────────────────────────────────────────

type fakeClients struct {
	byID map[string]*entity.Client
}

func (f *fakeClients) GetByID(_ context.Context, id string) (*entity.Client, error) {
	return f.byID[id], nil
}

func (f *fakeClients) List(_ context.Context, limit, offset int) ([]*entity.Client, error) {
	var out []*entity.Client
	for _, c := range f.byID {
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	if offset >= len(out) {
		return nil, nil
	}
	out = out[offset:]
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

type fakeChallans struct {
	byClient map[string][]*entity.Challan
	err      error
}

func (f *fakeChallans) ListByClient(_ context.Context, clientID string, until time.Time) ([]*entity.Challan, error) {
	if f.err != nil {
		return nil, f.err
	}
	var out []*entity.Challan
	for _, c := range f.byClient[clientID] {
		if !c.Date.After(until) {
			out = append(out, c)
		}
	}
	return out, nil
}

type fakeBills struct {
	mu        sync.Mutex
	bills     map[string]*entity.Bill
	lines     map[string][]*entity.BillLine
	failLines error
}

func newFakeBills() *fakeBills {
	return &fakeBills{bills: map[string]*entity.Bill{}, lines: map[string][]*entity.BillLine{}}
}

func (f *fakeBills) Create(_ context.Context, bill *entity.Bill) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, b := range f.bills {
		if b.Number == bill.Number {
			return fmt.Errorf("bill number %s: %w", bill.Number, domain.ErrDuplicate)
		}
	}
	cp := *bill
	f.bills[bill.ID] = &cp
	return nil
}

func (f *fakeBills) CreateLines(_ context.Context, lines []*entity.BillLine) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failLines != nil {
		return f.failLines
	}
	for _, l := range lines {
		if l.ID == "" {
			l.ID = uuid.New().String()
		}
		cp := *l
		f.lines[l.BillID] = append(f.lines[l.BillID], &cp)
	}
	return nil
}

func (f *fakeBills) GetByID(_ context.Context, id string) (*entity.Bill, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.bills[id], nil
}

func (f *fakeBills) ListLines(_ context.Context, billID string) ([]*entity.BillLine, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.lines[billID], nil
}

func (f *fakeBills) count() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.bills)
}

// fakeTx trabaja sobre una copia del almacén y solo la publica si fn no falla.
type fakeTx struct {
	store *fakeBills
}

func (tx *fakeTx) RunBilling(ctx context.Context, fn func(bills repository.BillRepository) error) error {
	tx.store.mu.Lock()
	staging := newFakeBills()
	staging.failLines = tx.store.failLines
	for k, v := range tx.store.bills {
		staging.bills[k] = v
	}
	for k, v := range tx.store.lines {
		staging.lines[k] = v
	}
	tx.store.mu.Unlock()

	if err := fn(staging); err != nil {
		return err
	}

	tx.store.mu.Lock()
	defer tx.store.mu.Unlock()
	tx.store.bills = staging.bills
	tx.store.lines = staging.lines
	return nil
}

// ── fixture ───────────────────────────────────────────────────────────────────

type fixture struct {
	clients  *fakeClients
	challans *fakeChallans
	bills    *fakeBills
	uc       *billing.GenerateBillUseCase
}

func date(s string) time.Time {
	d, err := rental.ParseDate(s)
	if err != nil {
		panic(err)
	}
	return d
}

func challan(number, kind, day string, qty int) *entity.Challan {
	return &entity.Challan{
		ID:     uuid.New().String(),
		Number: number,
		Type:   kind,
		Date:   date(day),
		Items:  []entity.ChallanItem{{Size: "9x12", Quantity: qty}},
	}
}

// newFixture: c1 (tarifa 5) recibe 50 el 1 de enero, devuelve 20 el 20 y recibe 99 en febrero;
// c2 (tarifa 2) recibe 10 el 10 de enero.
func newFixture() *fixture {
	clients := &fakeClients{byID: map[string]*entity.Client{
		"c1": {ID: "c1", Name: "Constructora Uno", DailyRate: decimal.NewFromInt(5)},
		"c2": {ID: "c2", Name: "Obras Dos", DailyRate: decimal.NewFromInt(2)},
	}}
	challans := &fakeChallans{byClient: map[string][]*entity.Challan{
		"c1": {
			challan("U-1", entity.ChallanTypeIssue, "2025-01-01", 50),
			challan("J-1", entity.ChallanTypeReturn, "2025-01-20", 20),
			challan("U-2", entity.ChallanTypeIssue, "2025-02-05", 99),
		},
		"c2": {challan("U-7", entity.ChallanTypeIssue, "2025-01-10", 10)},
	}}
	bills := newFakeBills()
	engine := rental.NewEngine(zerolog.Nop(), money.Zero)
	uc := billing.NewGenerateBillUseCase(&fakeTx{store: bills}, clients, challans, bills, engine, zerolog.Nop(),
		billing.GenerateOptions{NumberPrefix: "BR-", PreviewConcurrency: 2})
	return &fixture{clients: clients, challans: challans, bills: bills, uc: uc}
}

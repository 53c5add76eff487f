package billing

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/jhoicas/plate-rental-api/internal/application/dto"
	"github.com/jhoicas/plate-rental-api/internal/domain"
	"github.com/jhoicas/plate-rental-api/internal/domain/entity"
	"github.com/jhoicas/plate-rental-api/internal/domain/rental"
	"github.com/jhoicas/plate-rental-api/internal/domain/repository"
	"github.com/jhoicas/plate-rental-api/pkg/money"
)

const previewPageSize = 200

// GenerateOptions parámetros de numeración y de la vista previa por lotes.
type GenerateOptions struct {
	NumberPrefix       string
	PreviewConcurrency int
}

// GenerateBillUseCase factura a clientes con sus challans almacenados.
type GenerateBillUseCase struct {
	txRunner    BillingTxRunner
	clientRepo  repository.ClientRepository
	challanRepo repository.ChallanRepository
	billRepo    repository.BillRepository
	engine      *rental.Engine
	log         zerolog.Logger
	opts        GenerateOptions
}

// NewGenerateBillUseCase construye el caso de uso.
func NewGenerateBillUseCase(
	txRunner BillingTxRunner,
	clientRepo repository.ClientRepository,
	challanRepo repository.ChallanRepository,
	billRepo repository.BillRepository,
	engine *rental.Engine,
	log zerolog.Logger,
	opts GenerateOptions,
) *GenerateBillUseCase {
	if opts.PreviewConcurrency <= 0 {
		opts.PreviewConcurrency = 1
	}
	return &GenerateBillUseCase{
		txRunner:    txRunner,
		clientRepo:  clientRepo,
		challanRepo: challanRepo,
		billRepo:    billRepo,
		engine:      engine,
		log:         log,
		opts:        opts,
	}
}

// Generate calcula la factura del cliente hasta in.BillDate y guarda cabecera y periodos
// en una sola transacción.
func (uc *GenerateBillUseCase) Generate(ctx context.Context, clientID string, in dto.GenerateBillRequest) (*dto.BillResponse, error) {
	if strings.TrimSpace(clientID) == "" {
		return nil, fmt.Errorf("%w: cliente requerido", domain.ErrInvalidInput)
	}
	billDate, err := rental.ParseDate(in.BillDate)
	if err != nil {
		return nil, fmt.Errorf("%w: %w: %q", domain.ErrInvalidInput, domain.ErrInvalidBillDate, in.BillDate)
	}
	client, err := uc.clientRepo.GetByID(ctx, clientID)
	if err != nil {
		return nil, fmt.Errorf("get client: %w", err)
	}
	if client == nil {
		return nil, domain.ErrNotFound
	}

	rate := client.DailyRate
	if in.DailyRate != nil {
		rate = *in.DailyRate
	}
	res, err := uc.run(ctx, client, billDate, rental.Input{
		BillDate:     in.BillDate,
		DailyRate:    rate,
		FromDate:     in.FromDate,
		ServiceRate:  in.ServiceRate,
		ExtraCharges: toLineItems(in.ExtraCharges),
		Discounts:    toLineItems(in.Discounts),
		Payments:     toLineItems(in.Payments),
	})
	if err != nil {
		return nil, err
	}

	bill := &entity.Bill{
		ID:                 uuid.New().String(),
		ClientID:           client.ID,
		Number:             billNumber(uc.opts.NumberPrefix, billDate, client.ID),
		BillDate:           billDate,
		DailyRate:          money.FromDecimal(rate).Decimal(),
		TotalRent:          res.TotalRent.Decimal(),
		ExtraChargesTotal:  res.ExtraChargesTotal.Decimal(),
		DiscountsTotal:     res.DiscountsTotal.Decimal(),
		PaymentsTotal:      res.PaymentsTotal.Decimal(),
		ServiceChargeTotal: res.ServiceChargeTotal.Decimal(),
		GrandTotal:         res.GrandTotal.Decimal(),
		DueAmount:          res.DueAmount.Decimal(),
		ClosingBalance:     res.ClosingBalance,
		CreatedAt:          time.Now().UTC(),
	}
	if strings.TrimSpace(in.FromDate) != "" {
		// el motor ya validó la fecha
		from, _ := rental.ParseDate(in.FromDate)
		bill.FromDate = &from
	}
	lines := toBillLines(bill.ID, res.Periods)

	err = uc.txRunner.RunBilling(ctx, func(bills repository.BillRepository) error {
		if err := bills.Create(ctx, bill); err != nil {
			return err
		}
		return bills.CreateLines(ctx, lines)
	})
	if err != nil {
		return nil, err
	}

	uc.log.Info().
		Str("bill_id", bill.ID).
		Str("number", bill.Number).
		Str("client_id", client.ID).
		Str("grand_total", res.GrandTotal.String()).
		Int("periods", len(lines)).
		Msg("factura generada")

	resp := toBillResponse(res, in.BillDate, in.FromDate, rate)
	resp.ID = bill.ID
	resp.Number = bill.Number
	resp.ClientID = client.ID
	return resp, nil
}

// GetBill devuelve una factura guardada con sus periodos.
func (uc *GenerateBillUseCase) GetBill(ctx context.Context, id string) (*dto.BillResponse, error) {
	if strings.TrimSpace(id) == "" {
		return nil, fmt.Errorf("%w: id requerido", domain.ErrInvalidInput)
	}
	bill, err := uc.billRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get bill: %w", err)
	}
	if bill == nil {
		return nil, domain.ErrNotFound
	}
	lines, err := uc.billRepo.ListLines(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("list bill lines: %w", err)
	}
	return storedBillResponse(bill, lines), nil
}

// PreviewBatch calcula en paralelo (sin persistir) la factura de varios clientes a una misma fecha.
// El orden del resultado sigue al de in.ClientIDs. Un cliente inexistente o con datos inválidos
// se informa en su ítem; un fallo de almacenamiento aborta el lote.
func (uc *GenerateBillUseCase) PreviewBatch(ctx context.Context, in dto.BatchPreviewRequest) ([]dto.BatchPreviewItem, error) {
	billDate, err := rental.ParseDate(in.BillDate)
	if err != nil {
		return nil, fmt.Errorf("%w: %w: %q", domain.ErrInvalidInput, domain.ErrInvalidBillDate, in.BillDate)
	}

	type target struct {
		id     string
		client *entity.Client
	}
	var targets []target
	if len(in.ClientIDs) == 0 {
		clients, err := uc.clientRepo.List(ctx, previewPageSize, 0)
		if err != nil {
			return nil, fmt.Errorf("list clients: %w", err)
		}
		for _, c := range clients {
			targets = append(targets, target{id: c.ID, client: c})
		}
	} else {
		for _, id := range in.ClientIDs {
			targets = append(targets, target{id: id})
		}
	}

	items := make([]dto.BatchPreviewItem, len(targets))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(uc.opts.PreviewConcurrency)
	for i, t := range targets {
		g.Go(func() error {
			item, err := uc.previewOne(gctx, t.id, t.client, billDate, in.BillDate)
			if err != nil {
				return err
			}
			items[i] = item
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return items, nil
}

func (uc *GenerateBillUseCase) previewOne(ctx context.Context, id string, client *entity.Client, billDate time.Time, rawBillDate string) (dto.BatchPreviewItem, error) {
	item := dto.BatchPreviewItem{ClientID: id}
	if client == nil {
		c, err := uc.clientRepo.GetByID(ctx, id)
		if err != nil {
			return item, fmt.Errorf("get client %s: %w", id, err)
		}
		if c == nil {
			item.Error = domain.ErrNotFound.Error()
			return item, nil
		}
		client = c
	}
	item.ClientName = client.Name

	res, err := uc.run(ctx, client, billDate, rental.Input{BillDate: rawBillDate, DailyRate: client.DailyRate})
	if err != nil {
		if errors.Is(err, domain.ErrInvalidInput) {
			item.Error = err.Error()
			return item, nil
		}
		return item, err
	}
	item.ClosingBalance = res.ClosingBalance
	item.TotalRent = res.TotalRent
	item.GrandTotal = res.GrandTotal
	item.Warnings = len(res.Diagnostics)
	return item, nil
}

// run carga los challans del cliente hasta billDate y ejecuta el motor.
func (uc *GenerateBillUseCase) run(ctx context.Context, client *entity.Client, billDate time.Time, in rental.Input) (*rental.BillResult, error) {
	challans, err := uc.challanRepo.ListByClient(ctx, client.ID, billDate)
	if err != nil {
		return nil, fmt.Errorf("list challans: %w", err)
	}
	issues, returns, unknown := challansToRecords(challans)
	for _, number := range unknown {
		uc.log.Warn().Str("client_id", client.ID).Str("challan", number).Msg("challan con tipo desconocido omitido")
	}
	in.Issues = issues
	in.Returns = returns
	return uc.engine.Calculate(in)
}

// billNumber arma <prefijo><yyyymmdd>-<id corto del cliente>.
func billNumber(prefix string, billDate time.Time, clientID string) string {
	short := strings.ToUpper(strings.ReplaceAll(clientID, "-", ""))
	if len(short) > 8 {
		short = short[:8]
	}
	return prefix + billDate.Format("20060102") + "-" + short
}

package rental

import (
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/plate-rental-api/internal/domain"
	"github.com/jhoicas/plate-rental-api/pkg/money"
)

// Input entradas de un cálculo de factura para un cliente.
type Input struct {
	Issues       []Record
	Returns      []Record
	BillDate     string           // obligatorio, YYYY-MM-DD
	DailyRate    decimal.Decimal  // por unidad y día
	FromDate     string           // opcional: refacturar desde esta fecha
	ServiceRate  *decimal.Decimal // opcional: nil usa la tarifa por defecto del motor
	ExtraCharges []LineItem
	Discounts    []LineItem
	Payments     []LineItem
}

// Engine ejecuta el pipeline normalizar → libro → periodos → ventana → totales.
// Solo guarda configuración inmutable; es seguro para uso concurrente.
type Engine struct {
	log                zerolog.Logger
	defaultServiceRate money.Money
}

// NewEngine construye el motor.
func NewEngine(log zerolog.Logger, defaultServiceRate money.Money) *Engine {
	return &Engine{log: log, defaultServiceRate: defaultServiceRate}
}

// Calculate calcula la factura. Solo falla si un escalar obligatorio está mal formado;
// los problemas por registro o por periodo se devuelven en BillResult.Diagnostics.
func (e *Engine) Calculate(in Input) (*BillResult, error) {
	billDate, err := parseRequiredDate(in.BillDate)
	if err != nil {
		return nil, fmt.Errorf("%w: %w: %q", domain.ErrInvalidInput, domain.ErrInvalidBillDate, in.BillDate)
	}
	var from *time.Time
	if strings.TrimSpace(in.FromDate) != "" {
		f, err := ParseDate(in.FromDate)
		if err != nil {
			return nil, fmt.Errorf("%w: %w: %q", domain.ErrInvalidInput, domain.ErrInvalidFromDate, in.FromDate)
		}
		from = &f
	}
	if in.DailyRate.IsNegative() {
		return nil, fmt.Errorf("%w: %w: tarifa diaria %s", domain.ErrInvalidInput, domain.ErrInvalidRate, in.DailyRate)
	}
	serviceRate := e.defaultServiceRate
	if in.ServiceRate != nil {
		if in.ServiceRate.IsNegative() {
			return nil, fmt.Errorf("%w: %w: cargo de servicio %s", domain.ErrInvalidInput, domain.ErrInvalidRate, in.ServiceRate)
		}
		serviceRate = money.FromDecimal(*in.ServiceRate)
	}
	rate := money.FromDecimal(in.DailyRate)

	rep := NewReporter(e.log.With().Str("bill_date", dateKey(billDate)).Logger())
	events := Normalize(in.Issues, in.Returns, rep)
	ledger := BuildLedger(events)
	periods, closing := CalculatePeriods(events, billDate, rate, rep)
	if from != nil {
		periods = ClampToWindow(periods, *from, rate)
	}

	totals := Aggregate(periods, TotalRent(periods), Charges{
		ExtraCharges: in.ExtraCharges,
		Discounts:    in.Discounts,
		Payments:     in.Payments,
		ServiceRate:  serviceRate,
	})

	return &BillResult{
		Events:         events,
		Ledger:         ledger,
		Periods:        periods,
		ClosingBalance: closing,
		Diagnostics:    rep.Diagnostics(),
		Totals:         totals,
	}, nil
}

func parseRequiredDate(s string) (time.Time, error) {
	if strings.TrimSpace(s) == "" {
		return time.Time{}, fmt.Errorf("fecha vacía")
	}
	return ParseDate(s)
}

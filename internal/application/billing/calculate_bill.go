package billing

import (
	"context"

	"github.com/jhoicas/plate-rental-api/internal/application/dto"
	"github.com/jhoicas/plate-rental-api/internal/domain/rental"
)

// CalculateBillUseCase calcula una factura con los challans del cuerpo de la petición, sin persistir.
type CalculateBillUseCase struct {
	engine *rental.Engine
}

// NewCalculateBillUseCase construye el caso de uso.
func NewCalculateBillUseCase(engine *rental.Engine) *CalculateBillUseCase {
	return &CalculateBillUseCase{engine: engine}
}

// Calculate ejecuta el motor. Los errores de escalares obligatorios envuelven domain.ErrInvalidInput.
func (uc *CalculateBillUseCase) Calculate(_ context.Context, in dto.CalculateBillRequest) (*dto.BillResponse, error) {
	res, err := uc.engine.Calculate(rental.Input{
		Issues:       toRecords(in.Issues),
		Returns:      toRecords(in.Returns),
		BillDate:     in.BillDate,
		DailyRate:    in.DailyRate,
		FromDate:     in.FromDate,
		ServiceRate:  in.ServiceRate,
		ExtraCharges: toLineItems(in.ExtraCharges),
		Discounts:    toLineItems(in.Discounts),
		Payments:     toLineItems(in.Payments),
	})
	if err != nil {
		return nil, err
	}
	return toBillResponse(res, in.BillDate, in.FromDate, in.DailyRate), nil
}

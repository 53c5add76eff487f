package rental

import (
	"time"

	"github.com/rs/zerolog"
)

// DiagnosticCode clasifica las advertencias de integridad de datos.
type DiagnosticCode string

// Códigos de diagnóstico. Ninguno aborta el cálculo.
const (
	DiagInvalidDate         DiagnosticCode = "invalid_date"
	DiagNonPositiveQuantity DiagnosticCode = "non_positive_quantity"
	DiagNegativeBalance     DiagnosticCode = "negative_balance"
	DiagEmptyPeriod         DiagnosticCode = "empty_period"
)

// Diagnostic advertencia recuperable producida durante el cálculo.
type Diagnostic struct {
	Code        DiagnosticCode `json:"code"`
	Date        time.Time      `json:"date,omitempty"`
	ReferenceID string         `json:"reference_id,omitempty"`
	Message     string         `json:"message"`
}

// Reporter acumula diagnósticos y los registra como warnings en zerolog.
// Se crea uno por cálculo; no es seguro para uso concurrente.
type Reporter struct {
	log   zerolog.Logger
	items []Diagnostic
}

// NewReporter crea un colector atado al logger dado.
func NewReporter(log zerolog.Logger) *Reporter {
	return &Reporter{log: log}
}

// Warn registra un diagnóstico.
func (r *Reporter) Warn(d Diagnostic) {
	if r == nil {
		return
	}
	r.items = append(r.items, d)
	ev := r.log.Warn().Str("code", string(d.Code))
	if !d.Date.IsZero() {
		ev = ev.Str("date", dateKey(d.Date))
	}
	if d.ReferenceID != "" {
		ev = ev.Str("reference_id", d.ReferenceID)
	}
	ev.Msg(d.Message)
}

// Diagnostics copia de los diagnósticos acumulados.
func (r *Reporter) Diagnostics() []Diagnostic {
	if r == nil || len(r.items) == 0 {
		return nil
	}
	out := make([]Diagnostic, len(r.items))
	copy(out, r.items)
	return out
}

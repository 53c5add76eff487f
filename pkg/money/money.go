// Package money representa importes monetarios como enteros en unidades menores
// (paise/centavos). Toda la aritmética de facturación pasa por este tipo; la conversión
// a decimal solo ocurre en los bordes (entrada de tarifas, respuestas JSON).
package money

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// Exponent cantidad de decimales de la unidad menor (2 = paise/centavos).
const Exponent = 2

var minorPerMajor = decimal.New(1, Exponent)

// Money importe en unidades menores.
type Money int64

// Zero importe nulo.
const Zero Money = 0

// FromMinor construye un importe a partir de unidades menores.
func FromMinor(minor int64) Money { return Money(minor) }

// FromDecimal convierte un decimal en unidades mayores redondeando a la unidad menor
// más cercana (mitades se alejan de cero).
func FromDecimal(d decimal.Decimal) Money {
	return Money(d.Mul(minorPerMajor).Round(0).IntPart())
}

// Parse interpreta un importe en unidades mayores ("12.50").
func Parse(s string) (Money, error) {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return Zero, fmt.Errorf("money: importe %q: %w", s, err)
	}
	return FromDecimal(d), nil
}

// MustParse como Parse pero entra en pánico; solo para constantes y tests.
func MustParse(s string) Money {
	m, err := Parse(s)
	if err != nil {
		panic(err)
	}
	return m
}

// Add suma dos importes.
func (m Money) Add(o Money) Money { return m + o }

// Sub resta o de m.
func (m Money) Sub(o Money) Money { return m - o }

// MulInt multiplica el importe por un entero (cantidad × días). Exacto en unidades menores.
func (m Money) MulInt(n int64) Money { return m * Money(n) }

// Decimal devuelve el importe en unidades mayores.
func (m Money) Decimal() decimal.Decimal { return decimal.New(int64(m), -Exponent) }

// String formatea con dos decimales fijos.
func (m Money) String() string { return m.Decimal().StringFixed(Exponent) }

// Sum suma una lista de importes.
func Sum(ms ...Money) Money {
	var total Money
	for _, m := range ms {
		total += m
	}
	return total
}

// MarshalJSON serializa como string decimal ("7750.00") para no perder precisión en clientes JS.
func (m Money) MarshalJSON() ([]byte, error) {
	return []byte(`"` + m.String() + `"`), nil
}

// UnmarshalJSON acepta número o string decimal.
func (m *Money) UnmarshalJSON(b []byte) error {
	var d decimal.Decimal
	if err := d.UnmarshalJSON(b); err != nil {
		return fmt.Errorf("money: %w", err)
	}
	*m = FromDecimal(d)
	return nil
}

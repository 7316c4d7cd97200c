package valueobject

import (
	"fmt"
	"math"

	"github.com/JULEEP/securitybackend/internal/pkg/apperror"
)

// MaxAmount наибольшее значение, помещающееся в DECIMAL(10,2).
const MaxAmount = 99999999.99

// Amount денежная сумма с точностью до центов.
type Amount float64

// NewAmount проверяет сумму и округляет её до двух знаков.
func NewAmount(field string, value float64) (Amount, error) {
	if math.IsNaN(value) || math.IsInf(value, 0) {
		return 0, apperror.Validation(fmt.Sprintf("Invalid %s", field), field)
	}
	if value < 0 {
		return 0, apperror.Validation(fmt.Sprintf("%s cannot be negative", field), field)
	}
	if value > MaxAmount {
		return 0, apperror.Validation(fmt.Sprintf("%s exceeds %.2f", field, MaxAmount), field)
	}
	return Amount(math.Round(value*100) / 100), nil
}

func (a Amount) Float64() float64 {
	return float64(a)
}

func (a Amount) String() string {
	return fmt.Sprintf("%.2f", float64(a))
}

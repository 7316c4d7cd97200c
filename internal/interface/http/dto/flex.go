package dto

import (
	"bytes"
	"encoding/json"
	"math"
	"strconv"
	"strings"

	"github.com/JULEEP/securitybackend/internal/pkg/apperror"
)

// FlexInt64 принимает число или строку с числом: "5" и 5 равнозначны.
// null и пустая строка дают 0, то есть "не задано".
type FlexInt64 int64

func (f *FlexInt64) UnmarshalJSON(data []byte) error {
	raw, ok := unquoteNumber(data)
	if !ok {
		return apperror.Validation("Invalid numeric value: " + string(data))
	}
	if raw == "" {
		*f = 0
		return nil
	}
	n, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return apperror.Validation("Invalid integer value: " + raw)
	}
	*f = FlexInt64(n)
	return nil
}

// FlexFloat64 как FlexInt64, но для сумм.
type FlexFloat64 float64

func (f *FlexFloat64) UnmarshalJSON(data []byte) error {
	raw, ok := unquoteNumber(data)
	if !ok {
		return apperror.Validation("Invalid numeric value: "+string(data), "amount")
	}
	if raw == "" {
		*f = 0
		return nil
	}
	n, err := strconv.ParseFloat(raw, 64)
	if err != nil || math.IsNaN(n) || math.IsInf(n, 0) {
		return apperror.Validation("Invalid amount", "amount")
	}
	*f = FlexFloat64(n)
	return nil
}

// unquoteNumber достаёт текст числа из JSON-числа, строки или null.
func unquoteNumber(data []byte) (string, bool) {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		return "", true
	}
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return "", false
		}
		return strings.TrimSpace(s), true
	}
	if len(data) > 0 && (data[0] == '-' || (data[0] >= '0' && data[0] <= '9')) {
		return string(data), true
	}
	return "", false
}

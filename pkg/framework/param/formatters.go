package param

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Common parameter formatters and parsers

// FixedFormatter returns a formatter printing the raw value with the given
// number of decimals.
func FixedFormatter(decimals int) func(float32) string {
	return func(value float32) string {
		return strconv.FormatFloat(float64(value), 'f', decimals, 32)
	}
}

// FloatParser parses a plain decimal number. Non-finite values, hex floats
// and digit separators are rejected.
func FloatParser(str string) (float32, error) {
	s := strings.TrimSpace(str)
	if strings.ContainsAny(s, "_xX") {
		return 0, fmt.Errorf("not a decimal number: %q", str)
	}
	v, err := strconv.ParseFloat(s, 32)
	if err != nil {
		return 0, err
	}
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, fmt.Errorf("non-finite value: %s", str)
	}
	return float32(v), nil
}

// DecibelFormatter formats dB values
func DecibelFormatter(db float32) string {
	if db <= -60 {
		return "-∞ dB"
	}
	return fmt.Sprintf("%.1f dB", db)
}

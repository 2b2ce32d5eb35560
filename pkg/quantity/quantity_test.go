package quantity_test

import (
	"math"
	"testing"

	"github.com/equinor/radix-training-console/pkg/quantity"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		kind     quantity.Kind
		expected int64
	}{
		{name: "whole cores", input: "4", kind: quantity.CPU, expected: 4000},
		{name: "millicores", input: "500m", kind: quantity.CPU, expected: 500},
		{name: "fractional cores", input: "1.5", kind: quantity.CPU, expected: 1500},
		{name: "zero cpu", input: "0", kind: quantity.CPU, expected: 0},
		{name: "plain bytes", input: "1024", kind: quantity.Memory, expected: 1024},
		{name: "kibibytes", input: "1Ki", kind: quantity.Memory, expected: 1024},
		{name: "mebibytes", input: "512Mi", kind: quantity.Memory, expected: 512 * 1024 * 1024},
		{name: "gibibytes", input: "16Gi", kind: quantity.Memory, expected: 17179869184},
		{name: "tebibytes", input: "2Ti", kind: quantity.Memory, expected: 2 << 40},
		{name: "fractional gibibytes", input: "1.5Gi", kind: quantity.Memory, expected: 1610612736},
		{name: "milli bytes round up", input: "1500m", kind: quantity.Memory, expected: 2},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			actual, err := quantity.Parse(tt.input, tt.kind)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, actual)
		})
	}
}

func TestParse_Invalid(t *testing.T) {
	tests := []struct {
		name  string
		input string
		kind  quantity.Kind
	}{
		{name: "empty", input: "", kind: quantity.CPU},
		{name: "letters", input: "abc", kind: quantity.Memory},
		{name: "negative cpu", input: "-1", kind: quantity.CPU},
		{name: "memory suffix on cpu", input: "4Gi", kind: quantity.CPU},
		{name: "decimal SI suffix", input: "16G", kind: quantity.Memory},
		{name: "exponent", input: "1e3", kind: quantity.Memory},
		{name: "suffix only", input: "Gi", kind: quantity.Memory},
		{name: "two points", input: "1.2.3", kind: quantity.CPU},
		{name: "whitespace", input: " 4", kind: quantity.CPU},
		{name: "trailing garbage", input: "16Gi!", kind: quantity.Memory},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := quantity.Parse(tt.input, tt.kind)
			assert.ErrorIs(t, err, quantity.ErrInvalidQuantity)
		})
	}
}

func TestFormat(t *testing.T) {
	assert.Equal(t, "4", quantity.Format(4000, quantity.CPU))
	assert.Equal(t, "250m", quantity.Format(250, quantity.CPU))
	assert.Equal(t, "16Gi", quantity.Format(17179869184, quantity.Memory))
	assert.Equal(t, "1536Mi", quantity.Format(1610612736, quantity.Memory))
	assert.Equal(t, "1000", quantity.Format(1000, quantity.Memory))
	assert.Equal(t, "0", quantity.Format(0, quantity.Memory))
}

func TestFormat_RoundTrip(t *testing.T) {
	values := []int64{0, 1, 7, 999, 1000, 1001, 1024, 1536, 4000, 1 << 20, 3 << 30, 5 << 40, 123456789}
	for _, kind := range []quantity.Kind{quantity.CPU, quantity.Memory} {
		for _, v := range values {
			formatted := quantity.Format(v, kind)
			parsed, err := quantity.Parse(formatted, kind)
			require.NoError(t, err, "kind %s value %d formatted %q", kind, v, formatted)
			assert.Equal(t, v, parsed, "kind %s formatted %q", kind, formatted)
		}
	}
}

func TestMustParse_Panics(t *testing.T) {
	assert.Panics(t, func() { quantity.MustParse("lots", quantity.Memory) })
	assert.Equal(t, int64(1<<30), quantity.MustParse("1Gi", quantity.Memory))
}

func TestCoresFromMillicores(t *testing.T) {
	assert.Equal(t, 16.0, quantity.CoresFromMillicores(16000))
	assert.Equal(t, 0.5, quantity.CoresFromMillicores(500))
}

func TestMul(t *testing.T) {
	tests := []struct {
		name    string
		a, b    int64
		product int64
		ok      bool
	}{
		{name: "small", a: 4, b: 16 << 30, product: 64 << 30, ok: true},
		{name: "zero", a: 0, b: math.MaxInt64, product: 0, ok: true},
		{name: "at limit", a: 1<<23 - 1, b: 1 << 40, product: math.MaxInt64 - (1 << 40) + 1, ok: true},
		{name: "overflow", a: 1 << 23, b: 1 << 40, ok: false},
		{name: "max times two", a: math.MaxInt64, b: 2, ok: false},
		{name: "negative", a: -1, b: 2, ok: false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			product, ok := quantity.Mul(tt.a, tt.b)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.product, product)
		})
	}
}

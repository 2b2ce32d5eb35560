package quantity

import (
	"errors"
	"fmt"
	"math"
	"slices"
	"strconv"

	"k8s.io/apimachinery/pkg/api/resource"
)

// Kind of resource a quantity describes
type Kind int

const (
	// CPU quantities are canonicalised to millicores
	CPU Kind = iota
	// Memory quantities are canonicalised to bytes
	Memory
)

// ErrInvalidQuantity is returned when a string is not a recognised quantity for its kind
var ErrInvalidQuantity = errors.New("invalid quantity")

var suffixes = map[Kind][]string{
	CPU:    {"", "m"},
	Memory: {"", "m", "Ki", "Mi", "Gi", "Ti"},
}

type binarySuffix struct {
	suffix     string
	multiplier int64
}

// largest first
var binarySuffixes = []binarySuffix{
	{"Ti", 1 << 40},
	{"Gi", 1 << 30},
	{"Mi", 1 << 20},
	{"Ki", 1 << 10},
}

func (k Kind) String() string {
	switch k {
	case CPU:
		return "cpu"
	case Memory:
		return "memory"
	default:
		return "unknown"
	}
}

// Parse parses s into the canonical unit of kind: millicores for CPU, bytes for memory.
// Memory values with a fractional byte are rounded up.
func Parse(s string, kind Kind) (int64, error) {
	allowed, ok := suffixes[kind]
	if !ok {
		return 0, fmt.Errorf("%w: unsupported kind %d", ErrInvalidQuantity, kind)
	}
	number, suffix := splitSuffix(s)
	if !isDecimal(number) {
		return 0, fmt.Errorf("%w: %q is not a %s quantity", ErrInvalidQuantity, s, kind)
	}
	if !slices.Contains(allowed, suffix) {
		return 0, fmt.Errorf("%w: unsupported %s suffix %q in %q", ErrInvalidQuantity, kind, suffix, s)
	}
	q, err := resource.ParseQuantity(s)
	if err != nil {
		return 0, fmt.Errorf("%w: %v", ErrInvalidQuantity, err)
	}
	if kind == CPU {
		return q.MilliValue(), nil
	}
	return q.Value(), nil
}

// MustParse is like Parse but panics on error. Use it for constants only.
func MustParse(s string, kind Kind) int64 {
	v, err := Parse(s, kind)
	if err != nil {
		panic(err)
	}
	return v
}

// Format renders a canonical value of kind so that Parse(Format(v, kind), kind) == v for v >= 0
func Format(value int64, kind Kind) string {
	switch kind {
	case CPU:
		if value%1000 == 0 {
			return strconv.FormatInt(value/1000, 10)
		}
		return strconv.FormatInt(value, 10) + "m"
	default:
		if value != 0 {
			for _, s := range binarySuffixes {
				if value%s.multiplier == 0 {
					return strconv.FormatInt(value/s.multiplier, 10) + s.suffix
				}
			}
		}
		return strconv.FormatInt(value, 10)
	}
}

// Mul multiplies two non-negative canonical values. ok is false when the product overflows int64.
func Mul(a, b int64) (product int64, ok bool) {
	if a < 0 || b < 0 {
		return 0, false
	}
	if a == 0 || b == 0 {
		return 0, true
	}
	if a > math.MaxInt64/b {
		return 0, false
	}
	return a * b, true
}

// CoresFromMillicores converts a millicore value to (possibly fractional) cores
func CoresFromMillicores(millicores int64) float64 {
	return float64(millicores) / 1000
}

func splitSuffix(s string) (number, suffix string) {
	for i, r := range s {
		if (r < '0' || r > '9') && r != '.' {
			return s[:i], s[i:]
		}
	}
	return s, ""
}

// isDecimal reports whether s is an unsigned decimal with at least one digit and at most one point
func isDecimal(s string) bool {
	digits, points := 0, 0
	for _, r := range s {
		switch {
		case r == '.':
			points++
		case r >= '0' && r <= '9':
			digits++
		default:
			return false
		}
	}
	return digits > 0 && points <= 1
}

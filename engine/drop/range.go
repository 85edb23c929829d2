package drop

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// ErrBadRange is wrapped by quantity range parse failures.
var ErrBadRange = errors.New("bad quantity range")

// Rand is the random source rolls draw from.
type Rand interface {
	// Intn returns a uniform int in [0,n).
	Intn(n int) int
	// Float64 returns a uniform float in [0,1).
	Float64() float64
}

// Range is an inclusive quantity range.
type Range struct {
	Min int
	Max int
}

// One is the default quantity.
var One = Range{Min: 1, Max: 1}

// Exactly returns [n,n].
func Exactly(n int) Range { return Range{Min: n, Max: n} }

// ParseRange reads "2" or "1-3". Bounds must be non-negative and ordered.
func ParseRange(s string) (Range, error) {
	s = strings.TrimSpace(s)
	lo, hi, isRange := strings.Cut(s, "-")
	a, err := strconv.Atoi(strings.TrimSpace(lo))
	if err != nil {
		return Range{}, fmt.Errorf("%q: %w", s, ErrBadRange)
	}
	b := a
	if isRange {
		if b, err = strconv.Atoi(strings.TrimSpace(hi)); err != nil {
			return Range{}, fmt.Errorf("%q: %w", s, ErrBadRange)
		}
	}
	if a < 0 || b < a {
		return Range{}, fmt.Errorf("%q: want 0 <= min <= max: %w", s, ErrBadRange)
	}
	return Range{Min: a, Max: b}, nil
}

// Roll draws uniformly from [Min,Max]. Each call is an independent draw.
func (r Range) Roll(rng Rand) int {
	if r.Max <= r.Min {
		return r.Min
	}
	return r.Min + rng.Intn(r.Max-r.Min+1)
}

func (r Range) String() string {
	if r.Min == r.Max {
		return strconv.Itoa(r.Min)
	}
	return strconv.Itoa(r.Min) + "-" + strconv.Itoa(r.Max)
}

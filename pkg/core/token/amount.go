// Package token implements fixed-point token quantities. The ledger accounts
// token values in millionths of a whole unit, all client-side arithmetic and
// formatting works on that representation.
package token

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/vesna-dev/vesna-go/pkg/io"
)

const (
	// AmountPrecision is the number of decimal places in an Amount.
	AmountPrecision = 6
	decimals        = 1000000
)

// Amount represents a non-negative fixed-point token quantity with
// precision 10^-6.
type Amount uint64

// Rate is a price expressed in buy-token millionths per whole sell-token
// unit. It shares the Amount representation.
type Rate = Amount

// String implements the Stringer interface.
func (a Amount) String() string {
	buf := new(strings.Builder)
	val := uint64(a)
	str := strconv.FormatUint(val/decimals, 10)
	buf.WriteString(str)
	val %= decimals
	if val > 0 {
		buf.WriteRune('.')
		str = strconv.FormatUint(val, 10)
		for i := len(str); i < AmountPrecision; i++ {
			buf.WriteRune('0')
		}
		buf.WriteString(strings.TrimRight(str, "0"))
	}
	return buf.String()
}

// IntegralValue returns the whole-unit part of the amount.
func (a Amount) IntegralValue() uint64 {
	return uint64(a) / decimals
}

// FractionalValue returns the millionths part of the amount.
func (a Amount) FractionalValue() uint32 {
	return uint32(uint64(a) % decimals)
}

// AmountFromUint64 returns an Amount of the given number of whole units.
func AmountFromUint64(val uint64) Amount {
	return Amount(val * decimals)
}

// AmountFromString parses s which must be a non-negative fixed point number
// with at most six decimal places.
func AmountFromString(s string) (Amount, error) {
	whole, frac, hasFrac := strings.Cut(s, ".")
	if whole == "" {
		return 0, fmt.Errorf("invalid amount %q", s)
	}
	w, err := strconv.ParseUint(whole, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid amount %q: %w", s, err)
	}
	var f uint64
	if hasFrac {
		if frac == "" || len(frac) > AmountPrecision {
			return 0, fmt.Errorf("invalid amount %q: at most %d decimal places allowed",
				s, AmountPrecision)
		}
		f, err = strconv.ParseUint(frac, 10, 64)
		if err != nil {
			return 0, fmt.Errorf("invalid amount %q: %w", s, err)
		}
		for i := len(frac); i < AmountPrecision; i++ {
			f *= 10
		}
	}
	if w > (math.MaxUint64-f)/decimals {
		return 0, fmt.Errorf("amount %q is out of range", s)
	}
	return Amount(w*decimals + f), nil
}

// UnmarshalJSON implements the json unmarshaller interface.
func (a *Amount) UnmarshalJSON(data []byte) error {
	if len(data) > 2 {
		if data[0] == '"' && data[len(data)-1] == '"' {
			data = data[1 : len(data)-1]
		}
	}
	return a.setFromString(string(data))
}

// UnmarshalYAML implements the yaml unmarshaler interface.
func (a *Amount) UnmarshalYAML(unmarshal func(any) error) error {
	var s string
	err := unmarshal(&s)
	if err != nil {
		return err
	}
	return a.setFromString(s)
}

func (a *Amount) setFromString(s string) error {
	p, err := AmountFromString(s)
	if err != nil {
		return err
	}
	*a = p
	return nil
}

// MarshalJSON implements the json marshaller interface.
func (a Amount) MarshalJSON() ([]byte, error) {
	return []byte(`"` + a.String() + `"`), nil
}

// MarshalYAML implements the yaml marshaller interface.
func (a Amount) MarshalYAML() (any, error) {
	return a.String(), nil
}

// DecodeBinary implements the io.Serializable interface.
func (a *Amount) DecodeBinary(r *io.BinReader) {
	*a = Amount(r.ReadU64LE())
}

// EncodeBinary implements the io.Serializable interface.
func (a *Amount) EncodeBinary(w *io.BinWriter) {
	w.WriteU64LE(uint64(*a))
}

// Add implements the Amount addition operator.
func (a Amount) Add(g Amount) Amount {
	return a + g
}

// Sub implements the Amount subtraction operator.
func (a Amount) Sub(g Amount) Amount {
	return a - g
}

// LessThan implements the Amount < operator.
func (a Amount) LessThan(g Amount) bool {
	return a < g
}

// GreaterThan implements the Amount > operator.
func (a Amount) GreaterThan(g Amount) bool {
	return a > g
}

// Equal implements the Amount == operator.
func (a Amount) Equal(g Amount) bool {
	return a == g
}

// Compare performs three-way comparison between a and g.
//   - -1 implies a < g.
//   - 0 implies a = g.
//   - 1 implies a > g.
func (a Amount) Compare(g Amount) int {
	switch {
	case a < g:
		return -1
	case a > g:
		return 1
	default:
		return 0
	}
}

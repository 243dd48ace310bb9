package token

import (
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vesna-dev/vesna-go/internal/testserdes"
)

func TestAmountFromUint64(t *testing.T) {
	values := []uint64{9000, 100000000, 5, 10945}

	for _, val := range values {
		assert.Equal(t, Amount(val*decimals), AmountFromUint64(val))
		assert.Equal(t, val, AmountFromUint64(val).IntegralValue())
		assert.Equal(t, uint32(0), AmountFromUint64(val).FractionalValue())
	}
}

func TestAmountAdd(t *testing.T) {
	a := AmountFromUint64(1)
	b := AmountFromUint64(2)

	c := a.Add(b)
	expected := uint64(3)
	assert.Equal(t, strconv.FormatUint(expected, 10), c.String())
}

func TestAmountSub(t *testing.T) {
	a := AmountFromUint64(42)
	b := AmountFromUint64(34)

	c := a.Sub(b)
	assert.Equal(t, uint64(8), c.IntegralValue())
	assert.Equal(t, uint32(0), c.FractionalValue())
}

func TestAmountFromString(t *testing.T) {
	ivalues := []string{"9000", "100000000", "5", "10945", "20.45", "0.000001"}
	for _, val := range ivalues {
		n, err := AmountFromString(val)
		assert.Nil(t, err)
		assert.Equal(t, val, n.String())
	}

	// Trailing zeroes are not preserved.
	n, err := AmountFromString("901.2300")
	require.NoError(t, err)
	assert.Equal(t, "901.23", n.String())

	val := "123456789.654321"
	n, err = AmountFromString(val)
	require.NoError(t, err)
	assert.Equal(t, Amount(123456789654321), n)
	assert.Equal(t, val, n.String())
}

func TestAmountFromStringErrors(t *testing.T) {
	evalues := []string{
		"",
		"junk",
		"-42",
		"-0.1",
		"12.",
		".12",
		"0.1234567",
		"20.45.43",
		"99999999999999999999",
		"18446744073709.551616",
	}
	for _, val := range evalues {
		_, err := AmountFromString(val)
		assert.Error(t, err, "value %q", val)
	}

	// The largest representable amount still parses.
	n, err := AmountFromString("18446744073709.551615")
	require.NoError(t, err)
	assert.Equal(t, Amount(18446744073709551615), n)
}

func TestAmountJSON(t *testing.T) {
	u64 := AmountFromUint64(123)
	s, err := u64.MarshalJSON()
	assert.Nil(t, err)
	assert.Equal(t, []byte(`"123"`), s)

	testserdes.MarshalUnmarshalJSON(t, &u64, new(Amount))

	frac := Amount(123000001)
	testserdes.MarshalUnmarshalJSON(t, &frac, new(Amount))

	var a Amount
	assert.Error(t, a.UnmarshalJSON([]byte("junk")))
}

func TestAmountYAML(t *testing.T) {
	a := Amount(123456789)
	testserdes.MarshalUnmarshalYAML(t, &a, new(Amount))
}

func TestAmountSerializable(t *testing.T) {
	a := Amount(42000001)
	testserdes.EncodeDecodeBinary(t, &a, new(Amount))
}

func TestAmountCompare(t *testing.T) {
	a := AmountFromUint64(7)
	b := AmountFromUint64(8)
	assert.True(t, a.LessThan(b))
	assert.True(t, b.GreaterThan(a))
	assert.True(t, a.Equal(a))
	assert.Equal(t, -1, a.Compare(b))
	assert.Equal(t, 1, b.Compare(a))
	assert.Equal(t, 0, a.Compare(a))
}

package compute

import (
	"encoding/json"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNumber_Arithmetic(t *testing.T) {
	tests := []struct {
		name string
		got  Number
		want Number
	}{
		{"int add", Add(Int(5), Int(3)), Int(8)},
		{"mixed add promotes", Add(Int(1), Float(0.5)), Float(1.5)},
		{"int subtract", Sub(Int(10), Int(4)), Int(6)},
		{"float subtract", Sub(Float(1.5), Int(1)), Float(0.5)},
		{"int multiply", Mul(Int(6), Int(7)), Int(42)},
		{"int power", Pow(Int(2), Int(8)), Int(256)},
		{"zero exponent", Pow(Int(7), Int(0)), Int(1)},
		{"negative exponent", Pow(Int(2), Int(-1)), Float(0.5)},
		{"fractional exponent", Pow(Int(9), Float(0.5)), Float(3)},
		{"quotient is float", Quo(Int(15), Int(3)), Float(5)},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want.Kind(), tc.got.Kind())
			assert.Equal(t, tc.want.Float64(), tc.got.Float64())
		})
	}
}

func TestNumber_IntegerOverflowWraps(t *testing.T) {
	assert.Equal(t, Int(math.MinInt64), Add(Int(math.MaxInt64), Int(1)))
	assert.Equal(t, Int(0), Pow(Int(2), Int(64)))
}

func TestNumber_PowFollowsMathPow(t *testing.T) {
	got := Pow(Int(0), Int(-1))
	assert.True(t, math.IsInf(got.Float64(), 1))
	assert.False(t, got.IsFinite())

	assert.True(t, math.IsNaN(Pow(Int(-8), Float(1.0/3)).Float64()))
}

func TestNumber_IsZero(t *testing.T) {
	assert.True(t, Int(0).IsZero())
	assert.True(t, Float(0).IsZero())
	assert.True(t, Float(math.Copysign(0, -1)).IsZero())
	assert.False(t, Float(1e-300).IsZero())
	assert.True(t, Number{}.IsZero(), "zero value is Int(0)")
}

func TestNumber_Compare(t *testing.T) {
	assert.Equal(t, -1, Compare(Int(1), Int(2)))
	assert.Equal(t, 1, Compare(Float(2.5), Int(2)))
	assert.Equal(t, 0, Compare(Int(3), Float(3)))
	assert.Equal(t, 1, Compare(Int(math.MaxInt64), Int(math.MaxInt64-1)))
}

func TestNumber_String(t *testing.T) {
	tests := map[string]Number{
		"42":    Int(42),
		"-7":    Int(-7),
		"5.0":   Float(5),
		"0.5":   Float(0.5),
		"256.0": Float(256),
		"1e+21": Float(1e21),
		"1e-07": Float(1e-7),
		"+Inf":  Float(math.Inf(1)),
		"NaN":   Float(math.NaN()),
	}
	for want, n := range tests {
		assert.Equal(t, want, n.String())
	}
}

func TestNumber_MarshalJSON(t *testing.T) {
	data, err := json.Marshal([]Number{Int(8), Float(5), Float(0.25), Float(math.Inf(-1))})
	require.NoError(t, err)
	assert.JSONEq(t, `[8, 5.0, 0.25, "-Inf"]`, string(data))
	assert.Equal(t, `[8,5.0,0.25,"-Inf"]`, string(data))
}

func TestNumber_UnmarshalJSON(t *testing.T) {
	tests := []struct {
		in   string
		kind Kind
		want float64
	}{
		{"8", KindInt, 8},
		{"-3", KindInt, -3},
		{"8.0", KindFloat, 8},
		{"1e3", KindFloat, 1000},
		{"2.5E-1", KindFloat, 0.25},
		{"9223372036854775808", KindFloat, 9223372036854775808},
	}

	for _, tc := range tests {
		t.Run(tc.in, func(t *testing.T) {
			var n Number
			require.NoError(t, json.Unmarshal([]byte(tc.in), &n))
			assert.Equal(t, tc.kind, n.Kind())
			assert.Equal(t, tc.want, n.Float64())
		})
	}
}

func TestNumber_UnmarshalJSONRejectsNonNumbers(t *testing.T) {
	for _, in := range []string{`"5"`, `true`, `null`, `1e999`} {
		var n Number
		assert.ErrorIs(t, json.Unmarshal([]byte(in), &n), ErrInvalidNumber, "input %s", in)
	}
}

func TestNumber_JSONRoundTripKeepsKind(t *testing.T) {
	in := []Number{Int(1), Float(2), Float(-0.125), Int(math.MinInt64)}

	data, err := json.Marshal(in)
	require.NoError(t, err)

	var out []Number
	require.NoError(t, json.Unmarshal(data, &out))
	assert.Equal(t, in, out)
}

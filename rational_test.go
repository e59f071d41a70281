package quotient

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRational_NewNormalizes(t *testing.T) {
	for _, tc := range []struct {
		name     string
		p, q     int64
		wantNum  int64
		wantDen  int64
		wantErrK Kind
	}{
		{name: "already reduced", p: 3, q: 4, wantNum: 3, wantDen: 4},
		{name: "reduces gcd", p: 6, q: 8, wantNum: 3, wantDen: 4},
		{name: "negative denominator moves sign", p: 3, q: -4, wantNum: -3, wantDen: 4},
		{name: "both negative cancels", p: -6, q: -8, wantNum: 3, wantDen: 4},
		{name: "zero numerator normalizes denominator to 1", p: 0, q: 5, wantNum: 0, wantDen: 1},
		{name: "division by zero", p: 1, q: 0, wantErrK: DivisionByZero},
	} {
		t.Run(tc.name, func(t *testing.T) {
			r, err := NewRational(tc.p, tc.q)
			if tc.wantErrK != 0 {
				require.Error(t, err)
				assert.True(t, errIsKind(err, tc.wantErrK))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.wantNum, r.Numerator)
			assert.Equal(t, tc.wantDen, r.Denominator)
		})
	}
}

func TestRational_Arithmetic(t *testing.T) {
	half := IntRational(1)
	half, _ = half.Div(IntRational(2))
	third := IntRational(1)
	third, _ = third.Div(IntRational(3))

	sum, err := half.Add(third)
	require.NoError(t, err)
	assert.Equal(t, "5/6", sum.String())

	diff, err := half.Sub(third)
	require.NoError(t, err)
	assert.Equal(t, "1/6", diff.String())

	prod, err := half.Mul(third)
	require.NoError(t, err)
	assert.Equal(t, "1/6", prod.String())

	quot, err := half.Div(third)
	require.NoError(t, err)
	assert.Equal(t, "3/2", quot.String())

	_, err = IntRational(1).Div(IntRational(0))
	assert.True(t, errIsKind(err, DivisionByZero))
}

func TestRational_CompareCrossMultiplies(t *testing.T) {
	a, _ := NewRational(1, 3)
	b, _ := NewRational(2, 5)
	less, err := a.Less(b)
	require.NoError(t, err)
	assert.True(t, less)

	assert.True(t, a.Equal(a))
	assert.False(t, a.Equal(b))
}

func TestRational_OverflowDetected(t *testing.T) {
	big := IntRational(1<<62 + 1)
	_, err := big.Mul(big)
	assert.True(t, errIsKind(err, NumericOverflow))
}

func TestParseRational(t *testing.T) {
	for _, tc := range []struct {
		token   string
		wantOK  bool
		wantStr string
	}{
		{token: "42", wantOK: true, wantStr: "42"},
		{token: "-42", wantOK: true, wantStr: "-42"},
		{token: "3/4", wantOK: true, wantStr: "3/4"},
		{token: "-3/4", wantOK: true, wantStr: "-3/4"},
		{token: "6/8", wantOK: true, wantStr: "3/4"},
		{token: "hello", wantOK: false},
		{token: "", wantOK: false},
		{token: "3/", wantOK: false},
		{token: "/3", wantOK: false},
	} {
		t.Run(tc.token, func(t *testing.T) {
			r, isNumber, err := ParseRational(tc.token)
			if !tc.wantOK {
				assert.False(t, isNumber)
				return
			}
			require.NoError(t, err)
			require.True(t, isNumber)
			assert.Equal(t, tc.wantStr, r.String())
		})
	}
}

// errIsKind is a small test helper: it casts directly to *Error rather
// than going through errors.Is; api_test.go checks the rendered Status
// strings instead.
func errIsKind(err error, k Kind) bool {
	e, ok := err.(*Error)
	return ok && e.Kind == k
}

package currency

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConvertSameCurrency(t *testing.T) {
	got, err := Convert(12.34, USD, USD)
	require.NoError(t, err)
	assert.Equal(t, 12.34, got)

	got, err = Convert(5000, CDF, CDF)
	require.NoError(t, err)
	assert.Equal(t, 5000.0, got)
}

func TestConvertUSDToCDF(t *testing.T) {
	got, err := Convert(1, USD, CDF)
	require.NoError(t, err)
	assert.Equal(t, 2200.0, got)

	// Whole-franc rounding.
	got, err = Convert(0.0001, USD, CDF)
	require.NoError(t, err)
	assert.Equal(t, 0.0, got)
}

func TestConvertCDFToUSD(t *testing.T) {
	got, err := Convert(2200, CDF, USD)
	require.NoError(t, err)
	assert.Equal(t, 1.0, got)

	got, err = Convert(1100, CDF, USD)
	require.NoError(t, err)
	assert.Equal(t, 0.5, got)
}

func TestConvertUnsupportedPair(t *testing.T) {
	_, err := Convert(10, USD, Code("EUR"))
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrUnsupportedCurrency)

	_, err = Convert(10, Code("XAF"), CDF)
	assert.ErrorIs(t, err, ErrUnsupportedCurrency)
}

func TestConvertRoundTrip(t *testing.T) {
	// USD -> CDF -> USD stays within rounding tolerance for non-negative
	// amounts.
	for _, x := range []float64{0, 0.01, 0.99, 1, 12.5, 49.99, 100, 1234.56, 99999.99} {
		cdf, err := Convert(x, USD, CDF)
		require.NoError(t, err)
		back, err := Convert(cdf, CDF, USD)
		require.NoError(t, err)
		assert.InDeltaf(t, x, back, 0.01, "round trip for %v", x)
	}
}

func TestFormatUSD(t *testing.T) {
	assert.Equal(t, "$0.00", Format(0, USD))
	assert.Equal(t, "$12.50", Format(12.5, USD))
	assert.Equal(t, "$2.00", Format(1.999, USD))
}

func TestFormatCDF(t *testing.T) {
	assert.Equal(t, "0 FC", Format(0, CDF))
	assert.Equal(t, "2,200 FC", Format(2200, CDF))
	assert.Equal(t, "1,234,567 FC", Format(1234567.4, CDF))
}

func TestFormatMalformedAmounts(t *testing.T) {
	assert.Equal(t, "$0.00", Format(math.NaN(), USD))
	assert.Equal(t, "0 FC", Format(math.NaN(), CDF))
	assert.Equal(t, "$0.00", Format(math.Inf(1), USD))
	assert.Equal(t, "0 FC", Format(math.Inf(-1), CDF))
}

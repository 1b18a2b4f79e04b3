package oned

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ericlevine/upcean"
)

func TestCheckStandardUPCEANChecksum(t *testing.T) {
	tests := []struct {
		digits string
		want   error
	}{
		{"036000291452", nil},
		{"4006381333931", nil},
		{"96385074", nil},
		{"0", nil},
		{"036000291451", upcean.ErrChecksum},
		{"4006381333932", upcean.ErrChecksum},
		{"", upcean.ErrFormat},
		{"03600029145A", upcean.ErrFormat},
		{"0360002914x2", upcean.ErrFormat},
	}
	for _, tc := range tests {
		err := CheckStandardUPCEANChecksum(tc.digits)
		if tc.want == nil {
			assert.NoError(t, err, "%q", tc.digits)
		} else {
			assert.ErrorIs(t, err, tc.want, "%q", tc.digits)
		}
	}
}

func TestGetStandardUPCEANChecksum(t *testing.T) {
	tests := []struct {
		digits string
		want   int
	}{
		{"590123412345", 7},
		{"1234567890", 5},
		{"03600029145", 2},
		{"", 0},
		{"99999999999999999999999999999999999999999999999999", 0},
	}
	for _, tc := range tests {
		got, err := GetStandardUPCEANChecksum(tc.digits)
		require.NoError(t, err, "%q", tc.digits)
		assert.Equal(t, tc.want, got, "%q", tc.digits)
	}

	_, err := GetStandardUPCEANChecksum("12a")
	assert.ErrorIs(t, err, upcean.ErrFormat)
}

func TestChecksumCatchesEverySingleDigitError(t *testing.T) {
	for _, valid := range []string{"036000291452", "4006381333931", "96385074"} {
		for i := range valid {
			for d := byte('0'); d <= '9'; d++ {
				if d == valid[i] {
					continue
				}
				mutated := valid[:i] + string(d) + valid[i+1:]
				assert.ErrorIs(t, CheckStandardUPCEANChecksum(mutated), upcean.ErrChecksum, "%q", mutated)
			}
		}
	}
}

func TestReaderChecksumLengths(t *testing.T) {
	upca := NewUPCAReader()
	assert.NoError(t, upca.CheckChecksum("036000291452"))
	assert.ErrorIs(t, upca.CheckChecksum("036000291451"), upcean.ErrChecksum)
	assert.ErrorIs(t, upca.CheckChecksum("12345678901"), upcean.ErrFormat)

	ean13 := NewEAN13Reader()
	assert.NoError(t, ean13.CheckChecksum("4006381333931"))
	assert.ErrorIs(t, ean13.CheckChecksum("036000291452"), upcean.ErrFormat)
	assert.ErrorIs(t, ean13.CheckChecksum("12345678901"), upcean.ErrFormat)

	ean8 := NewEAN8Reader()
	assert.NoError(t, ean8.CheckChecksum("96385074"))
	assert.ErrorIs(t, ean8.CheckChecksum("4006381333931"), upcean.ErrFormat)

	upce := NewUPCEReader()
	assert.NoError(t, upce.CheckChecksum("01234565"))
	assert.ErrorIs(t, upce.CheckChecksum("01234566"), upcean.ErrChecksum)
	assert.ErrorIs(t, upce.CheckChecksum("0123456"), upcean.ErrFormat)
}

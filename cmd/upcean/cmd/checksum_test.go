package cmd

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestChecksumValidate(t *testing.T) {
	out, _, err := run(t, "", "checksum", "036000291452", "4006381333931")
	require.NoError(t, err)
	assert.Equal(t, 2, strings.Count(out, "valid"))

	out, _, err = run(t, "", "checksum", "036000291452", "036000291451")
	assert.ErrorContains(t, err, "1 of 2 codes failed the check")
	assert.Contains(t, out, "bad check digit")
}

func TestChecksumFormatLength(t *testing.T) {
	out, _, err := run(t, "", "checksum", "--format", "upca", "12345678901")
	assert.Error(t, err)
	assert.Contains(t, out, "format error")

	_, _, err = run(t, "", "checksum", "--format", "upca", "036000291452")
	require.NoError(t, err)

	_, _, err = run(t, "", "checksum", "--format", "ean13", "036000291452")
	assert.Error(t, err)

	_, _, err = run(t, "", "checksum", "--format", "upce", "01234565")
	require.NoError(t, err)
}

func TestChecksumCompute(t *testing.T) {
	out, _, err := run(t, "", "checksum", "--compute", "03600029145", "400638133393")
	require.NoError(t, err)
	assert.Equal(t, "036000291452\n4006381333931\n", out)

	out, _, err = run(t, "", "checksum", "--compute", "--format", "upce", "0123456")
	require.NoError(t, err)
	assert.Equal(t, "01234565\n", out)

	_, _, err = run(t, "", "checksum", "--compute", "--format", "ean8", "123")
	assert.ErrorContains(t, err, "format error")

	_, _, err = run(t, "", "checksum", "--compute", "12a")
	assert.ErrorContains(t, err, "format error")
}

type brokenWriter struct{}

func (brokenWriter) Write([]byte) (int, error) {
	return 0, errors.New("broken pipe")
}

func TestChecksumComputeWriteError(t *testing.T) {
	var stderr bytes.Buffer
	err := runTo(t, brokenWriter{}, &stderr, "", "checksum", "--compute", "03600029145")
	assert.ErrorContains(t, err, "broken pipe")
}

package cli

import (
	"bufio"
	"bytes"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetSimpleText(t *testing.T) {
	var out bytes.Buffer
	r := bufio.NewReader(strings.NewReader("  hello world \n"))

	got, err := GetSimpleText(r, "Enter value", &out)

	require.NoError(t, err)
	assert.Equal(t, "hello world", got)
	assert.Equal(t, "Enter value\n> ", out.String())
}

func TestGetSimpleText_PartialLineAtEOF(t *testing.T) {
	var out bytes.Buffer
	r := bufio.NewReader(strings.NewReader("no newline"))

	got, err := GetSimpleText(r, "Enter value", &out)

	require.NoError(t, err)
	assert.Equal(t, "no newline", got)
}

func TestGetSimpleText_EmptyInputReturnsEOF(t *testing.T) {
	var out bytes.Buffer
	r := bufio.NewReader(strings.NewReader(""))

	_, err := GetSimpleText(r, "Enter value", &out)

	assert.ErrorIs(t, err, io.EOF)
}

func TestGetInt(t *testing.T) {
	var out bytes.Buffer
	r := bufio.NewReader(strings.NewReader("42\n"))

	got, err := GetInt(r, "Quantity", &out)

	require.NoError(t, err)
	assert.Equal(t, 42, got)
}

func TestGetInt_NotANumber(t *testing.T) {
	var out bytes.Buffer
	r := bufio.NewReader(strings.NewReader("many\n"))

	_, err := GetInt(r, "Quantity", &out)

	assert.Error(t, err)
}

func TestGetFloat(t *testing.T) {
	var out bytes.Buffer
	r := bufio.NewReader(strings.NewReader("12.5\n"))

	got, err := GetFloat(r, "Weight", &out)

	require.NoError(t, err)
	assert.Equal(t, 12.5, got)
}

func TestGetPassword(t *testing.T) {
	orig := readPassword
	readPassword = func(int) ([]byte, error) { return []byte("s3cret"), nil }
	defer func() { readPassword = orig }()

	var out bytes.Buffer
	got, err := GetPassword(&out)

	require.NoError(t, err)
	assert.Equal(t, "s3cret", got)
	assert.Contains(t, out.String(), "Enter password")
}

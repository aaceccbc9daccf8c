package cli

import (
	"bufio"
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func rdr(s string) *bufio.Reader {
	return bufio.NewReader(strings.NewReader(s))
}

func TestGetSimpleText(t *testing.T) {
	var out bytes.Buffer
	got, err := GetSimpleText(rdr("hello world\n"), "Name?", &out)
	require.NoError(t, err)
	assert.Equal(t, "hello world", got)
	assert.Equal(t, "Name?\n> ", out.String())
}

func TestGetSimpleTextEOF(t *testing.T) {
	var out bytes.Buffer
	got, err := GetSimpleText(rdr("lastline"), "Name?", &out)
	require.NoError(t, err)
	assert.Equal(t, "lastline", got)

	_, err = GetSimpleText(rdr(""), "Name?", &out)
	require.Error(t, err)
}

func TestGetSecret(t *testing.T) {
	old := readPassword
	defer func() { readPassword = old }()

	readPassword = func(int) ([]byte, error) { return []byte("tok"), nil }
	var out bytes.Buffer
	got, err := GetSecret("Admin token", &out)
	require.NoError(t, err)
	assert.Equal(t, []byte("tok"), got)
	assert.Equal(t, "Admin token: \n", out.String())

	readPassword = func(int) ([]byte, error) { return nil, errors.New("boom") }
	_, err = GetSecret("Admin token", &out)
	require.Error(t, err)
}

func TestGetOptionalText(t *testing.T) {
	var out bytes.Buffer
	got, changed, err := GetOptionalText(rdr("\n"), "Phone", "0811", &out)
	require.NoError(t, err)
	assert.False(t, changed)
	assert.Equal(t, "0811", got)

	got, changed, err = GetOptionalText(rdr("0822\n"), "Phone", "0811", &out)
	require.NoError(t, err)
	assert.True(t, changed)
	assert.Equal(t, "0822", got)
}

func TestGetInt(t *testing.T) {
	var out bytes.Buffer
	for in, want := range map[string]int64{"50000\n": 50000, "1.500.000\n": 1500000, "2,500\n": 2500} {
		got, err := GetInt(rdr(in), "Amount", &out)
		require.NoError(t, err)
		assert.Equal(t, want, got)
	}
	_, err := GetInt(rdr("lots\n"), "Amount", &out)
	require.Error(t, err)
}

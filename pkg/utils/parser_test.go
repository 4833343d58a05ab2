package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStrToDecimal(t *testing.T) {
	d, err := StrToDecimal(" 0.01 ")
	require.NoError(t, err)
	assert.Equal(t, "0.01", DecimalToStr(d))

	d, err = StrToDecimal("0.1")
	require.NoError(t, err)
	sum := d.Add(d).Add(d)
	assert.Equal(t, "0.3", DecimalToStr(sum))

	_, err = StrToDecimal("abc")
	assert.Error(t, err)
	_, err = StrToDecimal("")
	assert.Error(t, err)
}

func TestTruncateStr(t *testing.T) {
	assert.Equal(t, "abc", TruncateStr("abc", 10))
	assert.Equal(t, "ab", TruncateStr("abc", 2))
	assert.Equal(t, "", TruncateStr("abc", 0))
	assert.Equal(t, "héll", TruncateStr("héllo", 4))
}

func TestNormalizeKey(t *testing.T) {
	assert.Equal(t, "apikey", NormalizeKey("API_KEY"))
	assert.Equal(t, "apikey", NormalizeKey("apiKey"))
	assert.Equal(t, "apisecret", NormalizeKey("api_secret"))
}

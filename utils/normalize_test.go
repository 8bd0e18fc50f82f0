package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsValidPAN(t *testing.T) {
	assert.True(t, IsValidPAN("ABCDE1234F"))
	assert.True(t, IsValidPAN("abcde1234f"))

	assert.False(t, IsValidPAN(""))
	assert.False(t, IsValidPAN("ABCDE1234"))
	assert.False(t, IsValidPAN("ABCDE12345"))
	assert.False(t, IsValidPAN("1BCDE1234F"))
	assert.False(t, IsValidPAN("ABCD12345E"))
	assert.False(t, IsValidPAN("ABCDE1234FX"))
}

func TestIsValidTAN(t *testing.T) {
	assert.True(t, IsValidTAN("MUMA12345D"))
	assert.True(t, IsValidTAN("muma12345d"))

	assert.False(t, IsValidTAN(""))
	assert.False(t, IsValidTAN("ABCDE1234F"))
	assert.False(t, IsValidTAN("MUMA1234D"))
	assert.False(t, IsValidTAN("MUMA123456"))
}

func TestNormalizeAmount(t *testing.T) {
	assert.Equal(t, 1200000, NormalizeAmount("12,00,000"))
	assert.Equal(t, 1200000, NormalizeAmount("₹12,00,000"))
	assert.Equal(t, 50000, NormalizeAmount(" 50,000 "))
	assert.Equal(t, 50000, NormalizeAmount("50000.75"))
	assert.Equal(t, 0, NormalizeAmount(""))
	assert.Equal(t, 0, NormalizeAmount("N/A"))
}

func TestNormalizeName(t *testing.T) {
	assert.Equal(t, "Rajesh Kumar Sharma", NormalizeName("RAJESH KUMAR SHARMA"))
	assert.Equal(t, "Rajesh Kumar Sharma", NormalizeName("  rajesh   kumar sharma "))
	assert.Equal(t, "", NormalizeName(""))
	// First letters outside ASCII must uppercase as runes, not bytes.
	assert.Equal(t, "Élodie D'souza", NormalizeName("élodie d'souza"))
}

func TestNormalizePAN(t *testing.T) {
	assert.Equal(t, "ABCDE1234F", NormalizePAN(" abcde1234f "))
}

package normalize_test

import (
	"testing"

	"card-ledger/core/normalize"

	"github.com/stretchr/testify/assert"
)

func TestExpansion(t *testing.T) {
	tests := []struct {
		name   string
		raw    string
		want   string
		wantOK bool
	}{
		{"Lowercase", "hbp01", "hBP01", true},
		{"Uppercase", "HBP01", "hBP01", true},
		{"Missing prefix", "bp01", "hBP01", true},
		{"Inner spaces", "  h bp 01 ", "hBP01", true},
		{"Starter deck", "hsd01", "hSD01", true},
		{"Prefix only", "h", "h", true},
		{"Short", "hb", "hB", true},
		{"Empty", "", "", false},
		{"Whitespace", "   ", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := normalize.Expansion(tt.raw)
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestExpansion_Idempotent(t *testing.T) {
	inputs := []string{"hbp01", "HBP01", "bp01", "x", "hY01", " hbp 02", "ÄBC", "h", "hh"}
	for _, in := range inputs {
		once, ok := normalize.Expansion(in)
		assert.True(t, ok, in)
		twice, ok := normalize.Expansion(once)
		assert.True(t, ok, in)
		assert.Equal(t, once, twice, in)
	}
}

func TestCardCode(t *testing.T) {
	assert.Equal(t, "hBP01-001", normalize.CardCode("hbp01-001"))
	assert.Equal(t, "hBP01-001", normalize.CardCode("HBP01-001"))
	assert.Equal(t, "hBP01-001", normalize.CardCode(" HBP01 -001 "))
	assert.Equal(t, "", normalize.CardCode(""))
	assert.Equal(t, "", normalize.CardCode("   "))

	once := normalize.CardCode("HsD01-010")
	assert.Equal(t, once, normalize.CardCode(once))
}

func TestRulesDiffer(t *testing.T) {
	exp, _ := normalize.Expansion("xbp01")
	assert.Equal(t, "hXBP01", exp)
	assert.Equal(t, "xBP01", normalize.CardCode("xbp01"))
}

func TestSearchKey(t *testing.T) {
	assert.Equal(t, "hbp01-001", normalize.SearchKey("hBP01 -\u3000001"))
}

func TestRarity(t *testing.T) {
	assert.Equal(t, "P", normalize.Rarity(" p "))
	assert.Equal(t, "OSR", normalize.Rarity("osr"))
}

func TestExpansionList(t *testing.T) {
	assert.Equal(t, []string{"hBP01", "hSD01"}, normalize.ExpansionList("HBP01, hsd01,,hbp01 , "))
	assert.Empty(t, normalize.ExpansionList(" , "))
}

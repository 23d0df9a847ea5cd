package unit

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rulego/nl2sql/lexer"
	"github.com/rulego/nl2sql/token"
)

func TestLookup(t *testing.T) {
	tests := []struct {
		word string
		want float64
	}{
		{"g", 1},
		{"gram", 1},
		{"grams", 1},
		{"mg", 0.001},
		{"milligrams", 0.001},
		{"MG", 0.001},
		{"kg", 1000},
		{"Kilograms", 1000},
		{"mcg", 1e-6},
		{"tonnes", 1e6},
		{"pounds", 453.59237},
		{"oz", 28.349523125},
	}
	for _, tt := range tests {
		t.Run(tt.word, func(t *testing.T) {
			scale, ok := Lookup(tt.word)
			require.True(t, ok)
			assert.Equal(t, tt.want, scale)
		})
	}
}

func TestLookupMiss(t *testing.T) {
	for _, word := range []string{"protein", "meter", ""} {
		_, ok := Lookup(word)
		assert.False(t, ok, word)
	}
}

func TestNormalizeReplacesUnits(t *testing.T) {
	tokens := Normalize(lexer.Tokenize("protein below 29 mg"))
	require.Len(t, tokens, 4)
	assert.True(t, tokens[3].IsVariant(token.FamilyUnit, token.Mass))
	assert.Equal(t, 0.001, tokens[3].Number())
	assert.Equal(t, "protein", tokens[0].Text())
}

// 只替换普通单词标记，引号片段保持原样
func TestNormalizeSkipsQuoted(t *testing.T) {
	tokens := Normalize(lexer.Tokenize("show 'mg' now"))
	require.Len(t, tokens, 3)
	assert.True(t, tokens[1].IsVariant(token.FamilyText, token.Quoted))
	assert.Equal(t, "mg", tokens[1].Text())
}

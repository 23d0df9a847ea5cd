package numeral

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rulego/nl2sql/lexer"
	"github.com/rulego/nl2sql/token"
)

func fold(t *testing.T, text string) []token.Token {
	t.Helper()
	return Normalize(lexer.Tokenize(text))
}

func singleNumber(t *testing.T, text string) float64 {
	t.Helper()
	tokens := fold(t, text)
	require.Len(t, tokens, 1)
	require.True(t, tokens[0].IsVariant(token.FamilyNumber, token.Cardinal))
	return tokens[0].Number()
}

func TestFoldBasicNumbers(t *testing.T) {
	tests := []struct {
		text string
		want float64
	}{
		{"twenty nine", 29},
		{"one hundred", 100},
		{"two thousand", 2000},
		{"zero", 0},
		{"nineteen", 19},
		{"ninety nine", 99},
		{"two hundred five", 205},
		{"one hundred twenty three", 123},
	}
	for _, tt := range tests {
		t.Run(tt.text, func(t *testing.T) {
			assert.Equal(t, tt.want, singleNumber(t, tt.text))
		})
	}
}

// 数量级融合：挂起组先融合再被更大的乘数词放大
func TestFoldMagnitudeFusion(t *testing.T) {
	tests := []struct {
		text string
		want float64
	}{
		{"two hundred thousand", 200000},
		{"one hundred twenty three thousand", 123000},
		{"one thousand five hundred", 1500},
		{"one million three thousand", 1003000},
		{"twenty one hundred", 2100},
		{"two thousand million", 2e9},
	}
	for _, tt := range tests {
		t.Run(tt.text, func(t *testing.T) {
			assert.Equal(t, tt.want, singleNumber(t, tt.text))
		})
	}
}

// 累计值 ≥ 20 时序数词做除法而不是乘法
func TestFoldOrdinalDivides(t *testing.T) {
	assert.InDelta(t, 29.0/3, singleNumber(t, "twenty nine third"), 1e-9)
	assert.Equal(t, 30.0, singleNumber(t, "sixty half"))
}

// 累计值不足 20 时序数词播种新的分数值
func TestFoldOrdinalSeedsFraction(t *testing.T) {
	assert.InDelta(t, 1.0/3, singleNumber(t, "one third"), 1e-9)
	// 纯分数词没有累计也播种
	assert.Equal(t, 0.5, singleNumber(t, "half"))
	assert.Equal(t, 0.25, singleNumber(t, "quarter"))
}

// 没有任何累计时独立出现的序数词保持为序数标记
func TestBareOrdinalToken(t *testing.T) {
	tokens := fold(t, "show third")
	require.Len(t, tokens, 2)
	assert.True(t, tokens[1].IsVariant(token.FamilyNumber, token.Ordinal))
	assert.Equal(t, 3.0, tokens[1].Number())
}

func TestFoldDecimalMarker(t *testing.T) {
	assert.InDelta(t, 3.14, singleNumber(t, "three point one four"), 1e-9)
	assert.InDelta(t, 0.5, singleNumber(t, "point five"), 1e-9)
}

func TestFoldSpecialWords(t *testing.T) {
	assert.True(t, math.IsInf(singleNumber(t, "infinity"), 1))
	assert.True(t, math.IsNaN(singleNumber(t, "nan")))
}

func TestDigitTextPromoted(t *testing.T) {
	assert.Equal(t, 29.0, singleNumber(t, "29"))
	assert.Equal(t, 29.5, singleNumber(t, "29.5"))
}

// 非数词单词关闭累计，单词本身原样通过
func TestAccumulationClosesOnPlainWord(t *testing.T) {
	tokens := fold(t, "twenty nine mg")
	require.Len(t, tokens, 2)
	assert.Equal(t, 29.0, tokens[0].Number())
	assert.Equal(t, "mg", tokens[1].Text())
}

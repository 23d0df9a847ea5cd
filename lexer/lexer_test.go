package lexer

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/rulego/nl2sql/token"
)

func TestTokenizeWords(t *testing.T) {
	tokens := Tokenize("show food with ascorbic acid")
	values := make([]string, 0, len(tokens))
	for _, tok := range tokens {
		assert.True(t, tok.IsVariant(token.FamilyText, token.Word))
		values = append(values, tok.Text())
	}
	assert.Equal(t, []string{"show", "food", "with", "ascorbic", "acid"}, values)
}

func TestTokenizePunctuation(t *testing.T) {
	tokens := Tokenize("sum: protein, fat (x)")
	values := make([]string, 0, len(tokens))
	for _, tok := range tokens {
		values = append(values, tok.Text())
	}
	assert.Equal(t, []string{"sum", ":", "protein", ",", "fat", "(", "x", ")"}, values)
}

func TestTokenizeQuoted(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"single", "show 'food name' now", "food name"},
		{"double", `show "food name" now`, "food name"},
		{"backtick", "show `food name` now", "food name"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tokens := Tokenize(tt.input)
			assert.Len(t, tokens, 3)
			assert.True(t, tokens[1].IsVariant(token.FamilyText, token.Quoted))
			assert.Equal(t, tt.want, tokens[1].Text())
		})
	}
}

// 同种引号闭合：双引号不会闭合单引号开启的片段
func TestTokenizeQuoteKindsDoNotMix(t *testing.T) {
	tokens := Tokenize(`'a "b" c' d`)
	assert.Len(t, tokens, 2)
	assert.Equal(t, `a "b" c`, tokens[0].Text())
	assert.Equal(t, "d", tokens[1].Text())
}

// 未闭合的引号静默回退为普通文本，这是约定的宽松行为而不是错误
func TestTokenizeUnterminatedQuote(t *testing.T) {
	tokens := Tokenize("show 'food name")
	values := make([]string, 0, len(tokens))
	for _, tok := range tokens {
		assert.True(t, tok.IsVariant(token.FamilyText, token.Word))
		values = append(values, tok.Text())
	}
	assert.Equal(t, []string{"show", "food", "name"}, values)
}

// 对已经按单空格分隔的 ASCII 文本，切分再拼接是幂等的
func TestTokenizeRejoinIdempotent(t *testing.T) {
	input := "show food where protein < 20 , fat > 1"
	tokens := Tokenize(input)
	parts := make([]string, 0, len(tokens))
	for _, tok := range tokens {
		parts = append(parts, tok.Text())
	}
	rejoined := strings.Join(parts, " ")
	assert.Equal(t, input, rejoined)

	again := Tokenize(rejoined)
	assert.Equal(t, tokens, again)
}

func TestTokenizeEmpty(t *testing.T) {
	assert.Empty(t, Tokenize(""))
	assert.Empty(t, Tokenize("   \t\n"))
}

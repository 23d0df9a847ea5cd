package condition

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestTranslate 测试 WHERE 片段到 expr 表达式的翻译
func TestTranslate(t *testing.T) {
	tests := []struct {
		name   string
		clause string
		want   string
	}{
		{
			name:   "比较",
			clause: `("ASCORBIC ACID" < 0.029)`,
			want:   `( $env["ASCORBIC ACID"] < 0.029 )`,
		},
		{
			name:   "等于换成双等号",
			clause: `("A" = 1)`,
			want:   `( $env["A"] == 1 )`,
		},
		{
			name:   "不等号",
			clause: `("A" <> 1)`,
			want:   `( $env["A"] != 1 )`,
		},
		{
			name:   "逻辑词",
			clause: `(("A" > 1) AND NOT ("B" < 2)) OR TRUE`,
			want:   `( ( $env["A"] > 1 ) && ! ( $env["B"] < 2 ) ) || true`,
		},
		{
			name:   "LIKE 改写为函数调用",
			clause: `("NAME" LIKE 'lean%')`,
			want:   `( like_match($env["NAME"], 'lean%') )`,
		},
		{
			name:   "BETWEEN 改写为区间比较",
			clause: `("P" BETWEEN 10 AND 20)`,
			want:   `( ($env["P"] >= 10 && $env["P"] <= 20) )`,
		},
		{
			name:   "NULL 换成 nil",
			clause: `("A" = NULL)`,
			want:   `( $env["A"] == nil )`,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Translate(tt.clause))
		})
	}
}

// TestCompileFilter 测试行过滤器的编译和求值
func TestCompileFilter(t *testing.T) {
	filter, err := CompileFilter(`("PROTEIN" > 20)`)
	require.NoError(t, err)

	assert.True(t, filter.Evaluate(map[string]interface{}{"PROTEIN": 23.5}))
	assert.False(t, filter.Evaluate(map[string]interface{}{"PROTEIN": 3.0}))
}

func TestCompileFilterLike(t *testing.T) {
	filter, err := CompileFilter(`("NAME" LIKE 'lean%')`)
	require.NoError(t, err)

	assert.True(t, filter.Evaluate(map[string]interface{}{"NAME": "lean beef"}))
	assert.False(t, filter.Evaluate(map[string]interface{}{"NAME": "fatty beef"}))
}

func TestCompileFilterBoolean(t *testing.T) {
	filter, err := CompileFilter(`(("A" > 1) AND ("B" < 2))`)
	require.NoError(t, err)

	assert.True(t, filter.Evaluate(map[string]interface{}{"A": 2, "B": 1}))
	assert.False(t, filter.Evaluate(map[string]interface{}{"A": 0, "B": 1}))
}

// 空片段编译为恒真条件
func TestCompileFilterEmpty(t *testing.T) {
	filter, err := CompileFilter("  ")
	require.NoError(t, err)
	assert.True(t, filter.Evaluate(map[string]interface{}{}))
}

// TestExprConditionInvalid 测试无效表达式在编译期报错
func TestExprConditionInvalid(t *testing.T) {
	cond, err := NewExprCondition("age >")
	assert.Error(t, err)
	assert.Nil(t, cond)
}

// TestLikePattern 测试 LIKE 通配符匹配
func TestLikePattern(t *testing.T) {
	tests := []struct {
		text    string
		pattern string
		want    bool
	}{
		{"John Smith", "John%", true},
		{"John", "John%", true},
		{"Johnny", "J_hn%", true},
		{"Johan", "J_hn", false},
		{"user@gmail.com", "%@gmail.com", true},
		{"", "%", true},
		{"abc", "", false},
	}
	for _, tt := range tests {
		t.Run(tt.text+"/"+tt.pattern, func(t *testing.T) {
			assert.Equal(t, tt.want, matchesLikePattern(tt.text, tt.pattern))
		})
	}
}

package nl2sql

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rulego/nl2sql/entity"
)

// 食物成分领域的实体解析回调
func foodMatcher(words []string) (*entity.Match, error) {
	if len(words) >= 2 && words[0] == "ascorbic" && words[1] == "acid" {
		return &entity.Match{Type: "column", Value: "ASCORBIC ACID", Length: 2}, nil
	}
	switch words[0] {
	case "food":
		return &entity.Match{Type: "table", Value: "FOOD", Length: 1}, nil
	case "protein":
		return &entity.Match{Type: "column", Value: "PROTEIN", Length: 1}, nil
	}
	return nil, nil
}

func TestToInformalSQL(t *testing.T) {
	conv := New(WithDiscardLog())
	got, err := conv.ToInformalSQL(
		"show food with ascorbic acid less than twenty nine mg", foodMatcher)
	require.NoError(t, err)
	assert.Equal(t,
		`SELECT "ASCORBIC ACID" FROM "FOOD" WHERE ("ASCORBIC ACID" < 0.029)`,
		got)
}

// 不提供实体匹配回调时未识别单词按字面保留，不崩溃
func TestToInformalSQLNilMatcher(t *testing.T) {
	conv := New(WithDiscardLog())
	got, err := conv.ToInformalSQL("show food with protein above twenty", nil)
	require.NoError(t, err)
	assert.Equal(t, `SELECT * FROM "null"`, got)
}

// 非正式输出直接喂给正式化，两段衔接
func TestInformalThenFormal(t *testing.T) {
	conv := New(WithDiscardLog())
	informal, err := conv.ToInformalSQL(
		"show food with ascorbic acid less than twenty nine mg", foodMatcher)
	require.NoError(t, err)

	resolver := func(name, clause, hint, from string) ([]string, error) {
		if clause == "from" {
			return []string{"compositions"}, nil
		}
		return []string{"vitamin_c"}, nil
	}
	formal, err := conv.ToFormalSQL(informal, resolver)
	require.NoError(t, err)
	assert.Equal(t,
		`SELECT "vitamin_c" FROM "compositions" WHERE ("vitamin_c" < 0.029) AND TRUE`,
		formal)
}

func TestToFormalSQLAppliesLimits(t *testing.T) {
	conv := New(
		WithDiscardLog(),
		WithDefaultLimit(100),
		WithTableLimits(map[string]int{"compositions": 10}),
	)
	resolver := func(name, clause, hint, from string) ([]string, error) {
		if clause == "from" {
			return []string{"compositions"}, nil
		}
		return []string{"c"}, nil
	}
	got, err := conv.ToFormalSQL(`SELECT "a" FROM "food" LIMIT 50`, resolver)
	require.NoError(t, err)
	assert.Contains(t, got, "LIMIT 10")
}

func TestCompileRowFilter(t *testing.T) {
	conv := New(WithDiscardLog())
	filter, err := conv.CompileRowFilter(
		`SELECT "name" FROM "FOOD" WHERE ("PROTEIN" > 20) ORDER BY "PROTEIN" LIMIT 5`)
	require.NoError(t, err)

	assert.True(t, filter.Evaluate(map[string]interface{}{"PROTEIN": 23.5}))
	assert.False(t, filter.Evaluate(map[string]interface{}{"PROTEIN": 3.0}))
}

// 没有WHERE子句编译为恒真过滤器
func TestCompileRowFilterNoWhere(t *testing.T) {
	conv := New(WithDiscardLog())
	filter, err := conv.CompileRowFilter(`SELECT "name" FROM "FOOD"`)
	require.NoError(t, err)
	assert.True(t, filter.Evaluate(map[string]interface{}{}))
}

func TestExtractWhere(t *testing.T) {
	tests := []struct {
		sql  string
		want string
	}{
		{`SELECT "a" FROM "t" WHERE ("x" > 1)`, `("x" > 1)`},
		{`SELECT "a" FROM "t" WHERE ("x" > 1) GROUP BY "a"`, `("x" > 1)`},
		{`SELECT "a" FROM "t" WHERE ("x" > 1) LIMIT 5`, `("x" > 1)`},
		// 引号里的关键字不截断
		{`SELECT "a" FROM "t" WHERE ("limit x" > 1)`, `("limit x" > 1)`},
		{`SELECT "a" FROM "t"`, ``},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, extractWhere(tt.sql), tt.sql)
	}
}

func TestConvenienceFunctions(t *testing.T) {
	informal, err := ConvertToInformalSQL(
		"show protein from food", foodMatcher, WithDiscardLog())
	require.NoError(t, err)
	assert.Equal(t, `SELECT "PROTEIN" FROM "FOOD"`, informal)

	resolver := func(name, clause, hint, from string) ([]string, error) {
		if clause == "from" {
			return []string{"t"}, nil
		}
		return []string{"p"}, nil
	}
	formal, err := ConvertToFormalSQL(informal, resolver, WithDiscardLog())
	require.NoError(t, err)
	assert.Equal(t, `SELECT "p" FROM "t" WHERE TRUE AND TRUE`, formal)
}

func TestDefaultTableOption(t *testing.T) {
	conv := New(WithDiscardLog(), WithDefaultTable("FOOD"))
	got, err := conv.ToInformalSQL("show protein", foodMatcher)
	require.NoError(t, err)
	assert.Equal(t, `SELECT "PROTEIN" FROM "FOOD"`, got)
}

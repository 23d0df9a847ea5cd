package grammar

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xwb1989/sqlparser"
)

func TestParseSelect(t *testing.T) {
	sel, err := ParseSelect(`SELECT "food name", "calcium" FROM "apples"`)
	require.NoError(t, err)
	require.Len(t, sel.SelectExprs, 2)
	require.Len(t, sel.From, 1)
}

func TestParseSelectRejectsNonSelect(t *testing.T) {
	input := "UPDATE t SET a = 1"
	_, err := ParseSelect(input)
	var unsupported *UnsupportedStatementError
	require.True(t, errors.As(err, &unsupported))
	assert.Equal(t, input, unsupported.SQL)
}

// 双引号标识符换成反引号后才能过解析器的方言，
// 序列化时统一写回双引号
func TestSerializeRoundTrip(t *testing.T) {
	tests := []string{
		`SELECT "a" FROM "t"`,
		`SELECT "food name", "calcium" FROM "apples"`,
		`SELECT "a" FROM "t" WHERE TRUE AND TRUE`,
		`SELECT "a" FROM "t" WHERE ("a" < 0.029)`,
		`SELECT "a" FROM "t" GROUP BY "a" HAVING ("a" > 1) ORDER BY "a" DESC LIMIT 10`,
		`SELECT "a" FROM "t" WHERE "name" LIKE 'lean%'`,
		`SELECT "a" AS "alias" FROM "t"`,
		`SELECT DISTINCT "a" FROM "t"`,
	}
	for _, sql := range tests {
		t.Run(sql, func(t *testing.T) {
			sel, err := ParseSelect(sql)
			require.NoError(t, err)
			assert.Equal(t, sql, Serialize(sel))
		})
	}
}

func TestParseValueExpr(t *testing.T) {
	node, err := ParseValueExpr(`"a" + 1`)
	require.NoError(t, err)
	_, ok := node.(*sqlparser.BinaryExpr)
	assert.True(t, ok)

	node, err = ParseValueExpr(`'literal'`)
	require.NoError(t, err)
	_, ok = node.(*sqlparser.SQLVal)
	assert.True(t, ok)
}

// 文本检索操作符借道 <> 解析，树上还原为 @@
func TestParseValueExprSearchOperator(t *testing.T) {
	node, err := ParseValueExpr(`"tsvector" @@ 'apples'`)
	require.NoError(t, err)
	cmp, ok := node.(*sqlparser.ComparisonExpr)
	require.True(t, ok)
	assert.Equal(t, "@@", cmp.Operator)
	assert.Equal(t, `"tsvector" @@ 'apples'`, Serialize(node))
}

func TestParseValueExprError(t *testing.T) {
	_, err := ParseValueExpr(`((`)
	assert.Error(t, err)
}

func TestNormalizeIdentQuotes(t *testing.T) {
	assert.Equal(t, "SELECT `a` FROM `t`", normalizeIdentQuotes(`SELECT "a" FROM "t"`))
	// 单引号字符串里的双引号保持原样
	assert.Equal(t, `SELECT 'he said "hi"' FROM `+"`t`", normalizeIdentQuotes(`SELECT 'he said "hi"' FROM "t"`))
}

func TestUpperKeywords(t *testing.T) {
	assert.Equal(t, `SELECT "a" FROM "t" WHERE TRUE`, upperKeywords(`select "a" from "t" where true`))
	// 引号里的词不受影响
	assert.Equal(t, `SELECT "select" FROM 'from'`, upperKeywords(`select "select" from 'from'`))
}

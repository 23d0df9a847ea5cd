package formal

import (
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rulego/nl2sql/grammar"
	"github.com/rulego/nl2sql/logger"
)

func convert(t *testing.T, sql string, resolve ResolveFunc, opts Options) string {
	t.Helper()
	out, err := Convert(sql, resolve, opts, logger.NewDiscardLogger())
	require.NoError(t, err)
	return out
}

// 每列解析为 column、每表解析为 table 的平凡解析器
func trivialResolver(name, clause, hint, from string) ([]string, error) {
	if clause == "from" {
		return []string{"table"}, nil
	}
	return []string{"column"}, nil
}

func TestConvertNoHints(t *testing.T) {
	got := convert(t, `SELECT "food name", "calcium" FROM "apples"`, trivialResolver, Options{})
	assert.Equal(t, `SELECT "column", "column" FROM "table" WHERE TRUE AND TRUE`, got)
}

// 多值结果在 SELECT 列表里扇出成兄弟列
func TestConvertFanOut(t *testing.T) {
	resolver := func(name, clause, hint, from string) ([]string, error) {
		if clause == "from" {
			return []string{"compositions"}, nil
		}
		return []string{"ca", "ca_e"}, nil
	}
	got := convert(t, `SELECT "calcium", "calcium" FROM "apples"`, resolver, Options{})
	assert.Equal(t, `SELECT "ca", "ca_e", "ca", "ca_e" FROM "compositions" WHERE TRUE AND TRUE`, got)
}

// FROM 解析出的谓词拼进 WHERE 骨架；没有表时回退到字面表名 null，
// 配置了缺省表时回退到缺省表
func TestConvertFromPredicateSplice(t *testing.T) {
	resolver := func(name, clause, hint, from string) ([]string, error) {
		if clause == "from" {
			return []string{`"tsvector" @@ 'apples'`}, nil
		}
		return []string{"column"}, nil
	}
	got := convert(t, `SELECT "calcium" FROM "apples"`, resolver, Options{})
	assert.Equal(t, `SELECT "column" FROM "null" WHERE TRUE AND (FALSE OR ("tsvector" @@ 'apples'))`, got)

	got = convert(t, `SELECT "calcium" FROM "apples"`, resolver, Options{DefaultTable: "compositions"})
	assert.Equal(t, `SELECT "column" FROM "compositions" WHERE TRUE AND (FALSE OR ("tsvector" @@ 'apples'))`, got)
}

func TestConvertSpliceDeepensOrChain(t *testing.T) {
	resolver := func(name, clause, hint, from string) ([]string, error) {
		if clause == "from" {
			return []string{`"tsvector" @@ 'a'`, `"tsvector" @@ 'b'`}, nil
		}
		return []string{"column"}, nil
	}
	// 后拼接的谓词在 OR 链左支上加深，离 FALSE 哨位更近
	got := convert(t, `SELECT "calcium" FROM "apples"`, resolver, Options{})
	assert.Equal(t,
		`SELECT "column" FROM "null" WHERE TRUE AND (FALSE OR ("tsvector" @@ 'b') OR ("tsvector" @@ 'a'))`,
		got)
}

// 恒等解析器下重跑一遍输出不再变化
func TestConvertIdempotent(t *testing.T) {
	identity := func(name, clause, hint, from string) ([]string, error) {
		return []string{`"` + name + `"`}, nil
	}
	first := convert(t, `SELECT "food name", "calcium" FROM "apples"`, identity, Options{})
	second := convert(t, first, identity, Options{})
	assert.Equal(t, first, second)
}

func TestConvertLimitCapping(t *testing.T) {
	opts := Options{DefaultLimit: 50, TableLimits: map[string]int{"table": 10}}

	got := convert(t, `SELECT "a" FROM "t" LIMIT 100`, trivialResolver, opts)
	assert.Contains(t, got, "LIMIT 10")

	got = convert(t, `SELECT "a" FROM "t" LIMIT 5`, trivialResolver, opts)
	assert.Contains(t, got, "LIMIT 5")

	got = convert(t, `SELECT "a" FROM "t"`, trivialResolver, Options{DefaultLimit: 50})
	assert.Contains(t, got, "LIMIT 50")

	got = convert(t, `SELECT "a" FROM "t"`, trivialResolver, Options{})
	assert.NotContains(t, got, "LIMIT")
}

// sum 提示折叠为嵌套加法，无别名的计算列用表达式文本做别名
func TestConvertSumFold(t *testing.T) {
	resolver := func(name, clause, hint, from string) ([]string, error) {
		if clause == "from" {
			return []string{"t"}, nil
		}
		assert.Equal(t, "sum", hint)
		assert.Equal(t, "protein", name)
		return []string{"p1", "p2", "p3"}, nil
	}
	got := convert(t, `SELECT "sum:protein" FROM "x"`, resolver, Options{})
	assert.Equal(t,
		`SELECT ("p1" + "p2" + "p3") AS "(""p1"" + ""p2"" + ""p3"")" FROM "t" WHERE TRUE AND TRUE`,
		got)
}

// avg 复用加法折叠再除以个数；标量位置不扇出，取第一个值
func TestConvertAvgInScalarPosition(t *testing.T) {
	resolver := func(name, clause, hint, from string) ([]string, error) {
		switch {
		case clause == "from":
			return []string{"t"}, nil
		case hint == "avg":
			return []string{"p1", "p2"}, nil
		default:
			return []string{"ca", "ca_e"}, nil
		}
	}
	got := convert(t, `SELECT "calcium" FROM "x" WHERE "avg:protein" > 1`, resolver, Options{})
	assert.Equal(t,
		`SELECT "ca", "ca_e" FROM "t" WHERE (("p1" + "p2") / 2 > 1) AND TRUE`,
		got)
}

// 标量位置的空结果代入 NULL
func TestConvertEmptyScalarResolvesNull(t *testing.T) {
	resolver := func(name, clause, hint, from string) ([]string, error) {
		switch clause {
		case "from":
			return []string{"t"}, nil
		case "where":
			return nil, nil
		default:
			return []string{"a"}, nil
		}
	}
	got := convert(t, `SELECT "a" FROM "x" WHERE "missing" < 1`, resolver, Options{})
	assert.Equal(t, `SELECT "a" FROM "t" WHERE (NULL < 1) AND TRUE`, got)
}

// 显式 all: 扇出时每列标注 "原名: 解析名"
func TestConvertAllHintAliases(t *testing.T) {
	resolver := func(name, clause, hint, from string) ([]string, error) {
		if clause == "from" {
			return []string{"t"}, nil
		}
		assert.Equal(t, "all", hint)
		return []string{"ca", "ca_e"}, nil
	}
	got := convert(t, `SELECT "all:calcium" FROM "x"`, resolver, Options{})
	assert.Equal(t,
		`SELECT "ca" AS "calcium: ca", "ca_e" AS "calcium: ca_e" FROM "t" WHERE TRUE AND TRUE`,
		got)
}

// 回调收到的 from 参数是逗号拼接的已解析表清单
func TestConvertPassesResolvedTables(t *testing.T) {
	var mu sync.Mutex
	var seen []string
	resolver := func(name, clause, hint, from string) ([]string, error) {
		if clause == "from" {
			return []string{"t1", "t2"}, nil
		}
		mu.Lock()
		seen = append(seen, from)
		mu.Unlock()
		return []string{"c"}, nil
	}
	convert(t, `SELECT "a" FROM "x" WHERE "b" = 1`, resolver, Options{})
	for _, from := range seen {
		assert.Equal(t, "t1,t2", from)
	}
	assert.NotEmpty(t, seen)
}

func TestConvertCallbackErrorAborts(t *testing.T) {
	wantErr := errors.New("resolver down")
	resolver := func(name, clause, hint, from string) ([]string, error) {
		if clause == "from" {
			return []string{"t"}, nil
		}
		return nil, wantErr
	}
	_, err := Convert(`SELECT "a" FROM "x"`, resolver, Options{}, logger.NewDiscardLogger())
	assert.ErrorIs(t, err, wantErr)
}

func TestConvertRejectsNonSelect(t *testing.T) {
	_, err := Convert("DELETE FROM t", trivialResolver, Options{}, logger.NewDiscardLogger())
	var unsupported *grammar.UnsupportedStatementError
	assert.True(t, errors.As(err, &unsupported))
}

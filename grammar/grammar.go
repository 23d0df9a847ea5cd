/*
 * Copyright 2025 The RuleGo Authors.
 *
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *     http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

// Package grammar 封装外部 SQL 语法解析器和序列化器。
// 非正式 SQL 用双引号包标识符，而解析器的方言把双引号当字符串，
// 解析前先把单引号字符串之外的双引号换成反引号；序列化时再用
// 自定义格式化器把标识符统一写回双引号，并把关键字转大写。
// 文本检索操作符 @@ 不在解析器的语法里，解析值表达式时临时
// 换成 <>，解析完成后在语法树上还原。
package grammar

import (
	"fmt"
	"strings"

	"github.com/xwb1989/sqlparser"
)

// ParseSelect 解析一条非正式 SQL，只接受 SELECT 语句
func ParseSelect(sql string) (*sqlparser.Select, error) {
	stmt, err := sqlparser.Parse(normalizeIdentQuotes(sql))
	if err != nil {
		return nil, fmt.Errorf("parse informal sql: %w", err)
	}
	sel, ok := stmt.(*sqlparser.Select)
	if !ok {
		return nil, &UnsupportedStatementError{SQL: sql}
	}
	return sel, nil
}

// ParseValueExpr 把一段 SQL 表达式文本解析为表达式节点，
// 借道 "SELECT <expr>" 的投影位
func ParseValueExpr(expr string) (sqlparser.Expr, error) {
	search := strings.Contains(expr, "@@")
	text := expr
	if search {
		text = strings.ReplaceAll(text, "@@", "<>")
	}
	stmt, err := sqlparser.Parse("SELECT " + normalizeIdentQuotes(text))
	if err != nil {
		return nil, fmt.Errorf("parse value expression %q: %w", expr, err)
	}
	sel, ok := stmt.(*sqlparser.Select)
	if !ok || len(sel.SelectExprs) != 1 {
		return nil, fmt.Errorf("value expression %q did not parse to a single expression", expr)
	}
	aliased, ok := sel.SelectExprs[0].(*sqlparser.AliasedExpr)
	if !ok {
		return nil, fmt.Errorf("value expression %q did not parse to a single expression", expr)
	}
	node := aliased.Expr
	if search {
		restoreSearchOperator(node)
	}
	return node, nil
}

// restoreSearchOperator 把替身 <>（解析后是 !=）还原为 @@
func restoreSearchOperator(node sqlparser.Expr) {
	_ = sqlparser.Walk(func(n sqlparser.SQLNode) (bool, error) {
		if cmp, ok := n.(*sqlparser.ComparisonExpr); ok && cmp.Operator == sqlparser.NotEqualStr {
			cmp.Operator = "@@"
		}
		return true, nil
	}, node)
}

// Serialize 把语法树渲染回 SQL 文本，标识符双引号、关键字大写
func Serialize(node sqlparser.SQLNode) string {
	buf := sqlparser.NewTrackedBuffer(formatIdentifiers)
	buf.Myprintf("%v", node)
	return upperKeywords(buf.String())
}

func formatIdentifiers(buf *sqlparser.TrackedBuffer, node sqlparser.SQLNode) {
	switch n := node.(type) {
	case sqlparser.ColIdent:
		writeQuoted(buf, n.String())
	case sqlparser.TableIdent:
		writeQuoted(buf, n.String())
	default:
		node.Format(buf)
	}
}

func writeQuoted(buf *sqlparser.TrackedBuffer, name string) {
	buf.WriteString(`"` + strings.ReplaceAll(name, `"`, `""`) + `"`)
}

// normalizeIdentQuotes 把单引号字符串之外的双引号换成反引号
func normalizeIdentQuotes(sql string) string {
	var b strings.Builder
	b.Grow(len(sql))
	inString := false
	for i := 0; i < len(sql); i++ {
		c := sql[i]
		switch {
		case c == '\'':
			inString = !inString
			b.WriteByte(c)
		case c == '"' && !inString:
			b.WriteByte('`')
		default:
			b.WriteByte(c)
		}
	}
	return b.String()
}

// keywords 是序列化后需要转大写的 SQL 关键字
var keywords = map[string]bool{
	"select": true, "from": true, "where": true, "having": true,
	"group": true, "order": true, "by": true, "limit": true, "offset": true,
	"and": true, "or": true, "not": true, "in": true, "like": true,
	"between": true, "as": true, "asc": true, "desc": true,
	"distinct": true, "is": true, "null": true, "true": true, "false": true,
	"union": true, "exists": true, "case": true, "when": true,
	"then": true, "else": true, "end": true,
}

// upperKeywords 把引号之外的小写关键字转成大写
func upperKeywords(sql string) string {
	var b strings.Builder
	b.Grow(len(sql))
	for i := 0; i < len(sql); {
		c := sql[i]
		if c == '\'' || c == '"' || c == '`' {
			j := closeQuote(sql, i)
			b.WriteString(sql[i:j])
			i = j
			continue
		}
		if isIdentByte(c) {
			j := i
			for j < len(sql) && isIdentByte(sql[j]) {
				j++
			}
			word := sql[i:j]
			if keywords[word] {
				word = strings.ToUpper(word)
			}
			b.WriteString(word)
			i = j
			continue
		}
		b.WriteByte(c)
		i++
	}
	return b.String()
}

func closeQuote(sql string, start int) int {
	q := sql[start]
	for j := start + 1; j < len(sql); j++ {
		if sql[j] == q {
			return j + 1
		}
	}
	return len(sql)
}

func isIdentByte(c byte) bool {
	return c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z' || c >= '0' && c <= '9' || c == '_'
}

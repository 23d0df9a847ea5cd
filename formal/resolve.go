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

// resolve.go 是列引用替换的递归部分：表达式子树重建、
// 回调返回值到节点的归类、sum/avg 折叠和 SELECT 列表的扇出。
package formal

import (
	"strconv"
	"strings"

	"github.com/xwb1989/sqlparser"

	"github.com/rulego/nl2sql/grammar"
)

// splitHint 从列的逻辑名里剥出聚合提示前缀
func splitHint(name string) (hint, bare string) {
	for _, h := range []string{"all", "sum", "avg"} {
		if strings.HasPrefix(name, h+":") {
			return h, strings.TrimSpace(name[len(h)+1:])
		}
	}
	return "", name
}

// resolveColumns 解析 SELECT 列表。多值的无提示或 all: 列
// 扇出成多个兄弟列，sum/avg 折叠成单个表达式。
func resolveColumns(exprs sqlparser.SelectExprs, from string, resolve ResolveFunc) (sqlparser.SelectExprs, error) {
	out := make(sqlparser.SelectExprs, 0, len(exprs))
	for _, se := range exprs {
		aliased, ok := se.(*sqlparser.AliasedExpr)
		if !ok {
			out = append(out, se)
			continue
		}
		resolved, err := resolveSelectExpr(aliased, from, resolve)
		if err != nil {
			return nil, err
		}
		out = append(out, resolved...)
	}
	return out, nil
}

func resolveSelectExpr(ae *sqlparser.AliasedExpr, from string, resolve ResolveFunc) ([]sqlparser.SelectExpr, error) {
	col, ok := ae.Expr.(*sqlparser.ColName)
	if !ok {
		// 计算表达式：标量位逐叶替换，未加别名时用表达式自身的文本做别名
		expr, err := resolveExpr(ae.Expr, "columns", from, resolve)
		if err != nil {
			return nil, err
		}
		alias := ae.As
		if alias.IsEmpty() {
			alias = sqlparser.NewColIdent(grammar.Serialize(expr))
		}
		return []sqlparser.SelectExpr{&sqlparser.AliasedExpr{Expr: expr, As: alias}}, nil
	}

	hint, name := splitHint(col.Name.String())
	values, err := resolve(name, "columns", hint, from)
	if err != nil {
		return nil, err
	}
	nodes, err := valueNodes(values)
	if err != nil {
		return nil, err
	}

	switch hint {
	case "sum":
		return []sqlparser.SelectExpr{aliasedFold(foldSum(nodes), ae.As)}, nil
	case "avg":
		return []sqlparser.SelectExpr{aliasedFold(foldAvg(nodes), ae.As)}, nil
	}

	if len(nodes) == 0 {
		return []sqlparser.SelectExpr{&sqlparser.AliasedExpr{Expr: &sqlparser.NullVal{}, As: ae.As}}, nil
	}
	// 显式别名的源列保留别名，只取第一个值
	if !ae.As.IsEmpty() {
		return []sqlparser.SelectExpr{&sqlparser.AliasedExpr{Expr: nodes[0], As: ae.As}}, nil
	}

	out := make([]sqlparser.SelectExpr, 0, len(nodes))
	for i, node := range nodes {
		next := &sqlparser.AliasedExpr{Expr: node}
		switch {
		case hint == "all":
			// 显式 all: 扇出时每列标注 "原名: 解析名"
			next.As = sqlparser.NewColIdent(name + ": " + rawName(values[i]))
		case isComputed(node):
			next.As = sqlparser.NewColIdent(grammar.Serialize(node))
		}
		out = append(out, next)
	}
	return out, nil
}

func aliasedFold(expr sqlparser.Expr, as sqlparser.ColIdent) *sqlparser.AliasedExpr {
	if as.IsEmpty() {
		as = sqlparser.NewColIdent(grammar.Serialize(expr))
	}
	return &sqlparser.AliasedExpr{Expr: expr, As: as}
}

// resolveExpr 重建一棵表达式子树，把每个列引用叶子换成解析结果。
// 标量位置只取多值结果的第一个，空结果代入 NULL。
func resolveExpr(e sqlparser.Expr, clause, from string, resolve ResolveFunc) (sqlparser.Expr, error) {
	switch n := e.(type) {
	case *sqlparser.ColName:
		return resolveColumnScalar(n, clause, from, resolve)
	case *sqlparser.AndExpr:
		l, r, err := resolvePair(n.Left, n.Right, clause, from, resolve)
		if err != nil {
			return nil, err
		}
		return &sqlparser.AndExpr{Left: l, Right: r}, nil
	case *sqlparser.OrExpr:
		l, r, err := resolvePair(n.Left, n.Right, clause, from, resolve)
		if err != nil {
			return nil, err
		}
		return &sqlparser.OrExpr{Left: l, Right: r}, nil
	case *sqlparser.NotExpr:
		inner, err := resolveExpr(n.Expr, clause, from, resolve)
		if err != nil {
			return nil, err
		}
		return &sqlparser.NotExpr{Expr: inner}, nil
	case *sqlparser.ParenExpr:
		inner, err := resolveExpr(n.Expr, clause, from, resolve)
		if err != nil {
			return nil, err
		}
		return &sqlparser.ParenExpr{Expr: inner}, nil
	case *sqlparser.ComparisonExpr:
		l, r, err := resolvePair(n.Left, n.Right, clause, from, resolve)
		if err != nil {
			return nil, err
		}
		return &sqlparser.ComparisonExpr{Operator: n.Operator, Left: l, Right: r, Escape: n.Escape}, nil
	case *sqlparser.BinaryExpr:
		l, r, err := resolvePair(n.Left, n.Right, clause, from, resolve)
		if err != nil {
			return nil, err
		}
		return &sqlparser.BinaryExpr{Operator: n.Operator, Left: l, Right: r}, nil
	case *sqlparser.UnaryExpr:
		inner, err := resolveExpr(n.Expr, clause, from, resolve)
		if err != nil {
			return nil, err
		}
		return &sqlparser.UnaryExpr{Operator: n.Operator, Expr: inner}, nil
	case *sqlparser.RangeCond:
		left, err := resolveExpr(n.Left, clause, from, resolve)
		if err != nil {
			return nil, err
		}
		lo, hi, err := resolvePair(n.From, n.To, clause, from, resolve)
		if err != nil {
			return nil, err
		}
		return &sqlparser.RangeCond{Operator: n.Operator, Left: left, From: lo, To: hi}, nil
	case *sqlparser.IsExpr:
		inner, err := resolveExpr(n.Expr, clause, from, resolve)
		if err != nil {
			return nil, err
		}
		return &sqlparser.IsExpr{Operator: n.Operator, Expr: inner}, nil
	case *sqlparser.FuncExpr:
		args := make(sqlparser.SelectExprs, 0, len(n.Exprs))
		for _, arg := range n.Exprs {
			aliased, ok := arg.(*sqlparser.AliasedExpr)
			if !ok {
				args = append(args, arg)
				continue
			}
			inner, err := resolveExpr(aliased.Expr, clause, from, resolve)
			if err != nil {
				return nil, err
			}
			args = append(args, &sqlparser.AliasedExpr{Expr: inner, As: aliased.As})
		}
		return &sqlparser.FuncExpr{Qualifier: n.Qualifier, Name: n.Name, Distinct: n.Distinct, Exprs: args}, nil
	default:
		// 字面量和其他节点原样保留
		return e, nil
	}
}

func resolvePair(a, b sqlparser.Expr, clause, from string, resolve ResolveFunc) (sqlparser.Expr, sqlparser.Expr, error) {
	l, err := resolveExpr(a, clause, from, resolve)
	if err != nil {
		return nil, nil, err
	}
	r, err := resolveExpr(b, clause, from, resolve)
	if err != nil {
		return nil, nil, err
	}
	return l, r, nil
}

func resolveColumnScalar(col *sqlparser.ColName, clause, from string, resolve ResolveFunc) (sqlparser.Expr, error) {
	hint, name := splitHint(col.Name.String())
	values, err := resolve(name, clause, hint, from)
	if err != nil {
		return nil, err
	}
	nodes, err := valueNodes(values)
	if err != nil {
		return nil, err
	}
	switch hint {
	case "sum":
		return foldSum(nodes), nil
	case "avg":
		return foldAvg(nodes), nil
	}
	if len(nodes) == 0 {
		return &sqlparser.NullVal{}, nil
	}
	return nodes[0], nil
}

func resolveOrderBy(orderBy sqlparser.OrderBy, from string, resolve ResolveFunc) (sqlparser.OrderBy, error) {
	out := make(sqlparser.OrderBy, 0, len(orderBy))
	for _, o := range orderBy {
		expr, err := resolveExpr(o.Expr, "orderBy", from, resolve)
		if err != nil {
			return nil, err
		}
		out = append(out, &sqlparser.Order{Expr: expr, Direction: o.Direction})
	}
	return out, nil
}

func resolveGroupBy(groupBy sqlparser.GroupBy, from string, resolve ResolveFunc) (sqlparser.GroupBy, error) {
	out := make(sqlparser.GroupBy, 0, len(groupBy))
	for _, e := range groupBy {
		expr, err := resolveExpr(e, "groupBy", from, resolve)
		if err != nil {
			return nil, err
		}
		out = append(out, expr)
	}
	return out, nil
}

// valueNodes 把回调返回的文本逐个归类为节点
func valueNodes(values []string) ([]sqlparser.Expr, error) {
	nodes := make([]sqlparser.Expr, 0, len(values))
	for _, v := range values {
		node, err := valueNode(v)
		if err != nil {
			return nil, err
		}
		nodes = append(nodes, node)
	}
	return nodes, nil
}

// valueNode 按文法归类一个返回值：空值/布尔/数字/字符串字面量、
// 裸的或带引号的标识符，其余交给外部语法解析器当表达式处理
func valueNode(v string) (sqlparser.Expr, error) {
	s := strings.TrimSpace(v)
	if s == "" {
		return &sqlparser.NullVal{}, nil
	}
	switch strings.ToLower(s) {
	case "null":
		return &sqlparser.NullVal{}, nil
	case "true":
		return sqlparser.BoolVal(true), nil
	case "false":
		return sqlparser.BoolVal(false), nil
	}
	if isInteger(s) {
		return sqlparser.NewIntVal([]byte(s)), nil
	}
	if _, err := strconv.ParseFloat(s, 64); err == nil {
		return sqlparser.NewFloatVal([]byte(s)), nil
	}
	if len(s) >= 2 && s[0] == '\'' && s[len(s)-1] == '\'' {
		inner := strings.ReplaceAll(s[1:len(s)-1], "''", "'")
		return sqlparser.NewStrVal([]byte(inner)), nil
	}
	if name, ok := identifierName(s); ok {
		return &sqlparser.ColName{Name: sqlparser.NewColIdent(name)}, nil
	}
	return grammar.ParseValueExpr(s)
}

// identifierName 判断文本是否为裸标识符或双引号标识符，返回裸名字
func identifierName(s string) (string, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return "", false
	}
	if s[0] == '"' {
		if len(s) < 2 || s[len(s)-1] != '"' {
			return "", false
		}
		inner := s[1 : len(s)-1]
		if strings.Contains(strings.ReplaceAll(inner, `""`, ``), `"`) {
			return "", false
		}
		return strings.ReplaceAll(inner, `""`, `"`), true
	}
	for i := 0; i < len(s); i++ {
		c := s[i]
		letter := c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z' || c == '_'
		if i == 0 && !letter {
			return "", false
		}
		if !letter && !(c >= '0' && c <= '9') {
			return "", false
		}
	}
	return s, true
}

func isInteger(s string) bool {
	_, err := strconv.Atoi(s)
	return err == nil
}

// isComputed 判断节点是否为计算表达式（相对列引用和字面量）
func isComputed(node sqlparser.Expr) bool {
	switch node.(type) {
	case *sqlparser.ColName, *sqlparser.SQLVal, *sqlparser.NullVal, sqlparser.BoolVal:
		return false
	default:
		return true
	}
}

// foldSum 左结合折叠为嵌套加法：空值取 0，单值保持原样，
// 多值整体加括号
func foldSum(nodes []sqlparser.Expr) sqlparser.Expr {
	if len(nodes) == 0 {
		return sqlparser.NewIntVal([]byte("0"))
	}
	if len(nodes) == 1 {
		return nodes[0]
	}
	expr := nodes[0]
	for _, n := range nodes[1:] {
		expr = &sqlparser.BinaryExpr{Operator: sqlparser.PlusStr, Left: expr, Right: n}
	}
	return &sqlparser.ParenExpr{Expr: expr}
}

// foldAvg 复用加法折叠再除以个数；空值代入 NULL
func foldAvg(nodes []sqlparser.Expr) sqlparser.Expr {
	if len(nodes) == 0 {
		return &sqlparser.NullVal{}
	}
	return &sqlparser.BinaryExpr{
		Operator: sqlparser.DivStr,
		Left:     foldSum(nodes),
		Right:    sqlparser.NewIntVal([]byte(strconv.Itoa(len(nodes)))),
	}
}

// rawName 取别名标注用的解析名：标识符剥引号，其余原文
func rawName(v string) string {
	if name, ok := identifierName(v); ok {
		return name
	}
	return strings.TrimSpace(v)
}

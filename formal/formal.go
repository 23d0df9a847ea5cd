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

// Package formal 把非正式 SQL 正式化：解析成语法树后，
// 每个表、列引用都经过调用方提供的解析回调替换成具体的值或表达式。
// FROM 先串行解析（后续解析需要完整的表清单），列、WHERE、HAVING、
// ORDER BY、GROUP BY 五个子树相互独立，并发解析，全部完成后才改写树；
// 任何一次回调失败都使整个转换失败，不产生半解析的树。
package formal

import (
	"strconv"
	"strings"

	"github.com/xwb1989/sqlparser"
	"golang.org/x/sync/errgroup"

	"github.com/rulego/nl2sql/grammar"
	"github.com/rulego/nl2sql/logger"
)

// ResolveFunc 是调用方提供的名字解析回调。
// clause 是 from/columns/where/having/orderBy/groupBy 之一，
// hint 是 all/sum/avg 之一或空，from 是逗号拼接的已解析表清单。
// 返回值每项是一个字面量、标识符或 SQL 表达式文本。
type ResolveFunc func(name, clause, hint, from string) ([]string, error)

// Options 是正式化的调用方配置
type Options struct {
	// DefaultTable FROM 解析不出任何表时的缺省表
	DefaultTable string
	// DefaultLimit 全局最大行数，0 表示不限制
	DefaultLimit int
	// TableLimits 表级最大行数，优先于 DefaultLimit
	TableLimits map[string]int
}

// Convert 执行一次正式化转换
func Convert(sql string, resolve ResolveFunc, opts Options, log logger.Logger) (string, error) {
	if log == nil {
		log = logger.GetDefault()
	}
	sel, err := grammar.ParseSelect(sql)
	if err != nil {
		return "", err
	}

	tables, predicates, err := resolveFrom(sel, resolve)
	if err != nil {
		return "", err
	}
	if len(tables) == 0 && opts.DefaultTable != "" {
		tables = []string{opts.DefaultTable}
	}
	if len(tables) == 0 {
		// 约定的回退：用字面表名 null
		tables = []string{"null"}
	}
	from := strings.Join(tables, ",")
	log.Debug("formalize: tables=%v, %d from predicates", tables, len(predicates))

	// 五个子树并发解析，替换结果先收进局部变量，Wait 之后再改写树
	var (
		columns sqlparser.SelectExprs
		where   sqlparser.Expr
		having  sqlparser.Expr
		orderBy sqlparser.OrderBy
		groupBy sqlparser.GroupBy
	)
	var g errgroup.Group
	g.Go(func() error {
		var err error
		columns, err = resolveColumns(sel.SelectExprs, from, resolve)
		return err
	})
	if sel.Where != nil {
		g.Go(func() error {
			var err error
			where, err = resolveExpr(sel.Where.Expr, "where", from, resolve)
			return err
		})
	}
	if sel.Having != nil {
		g.Go(func() error {
			var err error
			having, err = resolveExpr(sel.Having.Expr, "having", from, resolve)
			return err
		})
	}
	if len(sel.OrderBy) > 0 {
		g.Go(func() error {
			var err error
			orderBy, err = resolveOrderBy(sel.OrderBy, from, resolve)
			return err
		})
	}
	if len(sel.GroupBy) > 0 {
		g.Go(func() error {
			var err error
			groupBy, err = resolveGroupBy(sel.GroupBy, from, resolve)
			return err
		})
	}
	if err := g.Wait(); err != nil {
		return "", err
	}

	sel.SelectExprs = columns
	if sel.Where != nil {
		sel.Where.Expr = where
	}
	if sel.Having != nil {
		sel.Having.Expr = having
	}
	sel.OrderBy = orderBy
	sel.GroupBy = groupBy
	sel.From = buildFrom(tables)

	ensureWhereSkeleton(sel)
	for _, p := range predicates {
		spliceIntoWhere(sel, p)
	}
	applyLimit(sel, tables, opts)

	return grammar.Serialize(sel), nil
}

// resolveFrom 串行扫描 FROM 子句。每个表名经回调解析，
// 返回的标识符进表清单，其余解析为谓词表达式，稍后拼进 WHERE。
func resolveFrom(sel *sqlparser.Select, resolve ResolveFunc) ([]string, []sqlparser.Expr, error) {
	var tables []string
	var predicates []sqlparser.Expr
	for _, expr := range sel.From {
		aliased, ok := expr.(*sqlparser.AliasedTableExpr)
		if !ok {
			continue
		}
		name, ok := aliased.Expr.(sqlparser.TableName)
		if !ok {
			continue
		}
		values, err := resolve(name.Name.String(), "from", "", "")
		if err != nil {
			return nil, nil, err
		}
		for _, v := range values {
			if ident, ok := identifierName(v); ok {
				tables = append(tables, ident)
				continue
			}
			p, err := grammar.ParseValueExpr(v)
			if err != nil {
				return nil, nil, err
			}
			predicates = append(predicates, p)
		}
	}
	return tables, predicates, nil
}

func buildFrom(tables []string) sqlparser.TableExprs {
	from := make(sqlparser.TableExprs, 0, len(tables))
	for _, t := range tables {
		from = append(from, &sqlparser.AliasedTableExpr{
			Expr: sqlparser.TableName{Name: sqlparser.NewTableIdent(t)},
		})
	}
	return from
}

// ensureWhereSkeleton 保证 WHERE 是 "TRUE AND TRUE" 骨架：
// 右侧的 TRUE 是谓词拼接的哨位。已有 WHERE 时整体括号化挂到左侧；
// 已经是骨架（右侧是哨位或已拼接的 OR 链）时原样保留，
// 这是正式化可以幂等重入的关键。
func ensureWhereSkeleton(sel *sqlparser.Select) {
	skeleton := func() *sqlparser.AndExpr {
		return &sqlparser.AndExpr{Left: sqlparser.BoolVal(true), Right: sqlparser.BoolVal(true)}
	}
	if sel.Where == nil {
		sel.Where = sqlparser.NewWhere(sqlparser.WhereStr, skeleton())
		return
	}
	if isSkeleton(sel.Where.Expr) {
		return
	}
	left, ok := sel.Where.Expr.(*sqlparser.ParenExpr)
	if !ok {
		left = &sqlparser.ParenExpr{Expr: sel.Where.Expr}
	}
	sel.Where.Expr = &sqlparser.AndExpr{Left: left, Right: sqlparser.BoolVal(true)}
}

func isSkeleton(e sqlparser.Expr) bool {
	and, ok := e.(*sqlparser.AndExpr)
	if !ok {
		return false
	}
	if b, ok := and.Right.(sqlparser.BoolVal); ok && bool(b) {
		return true
	}
	return isSpliceChain(and.Right)
}

// isSpliceChain 识别已拼接的谓词链：最左端哨位为 FALSE 的 OR 链
func isSpliceChain(e sqlparser.Expr) bool {
	if p, ok := e.(*sqlparser.ParenExpr); ok {
		return isSpliceChain(p.Expr)
	}
	or, ok := e.(*sqlparser.OrExpr)
	if !ok {
		return false
	}
	left := sqlparser.Expr(or)
	for {
		switch n := left.(type) {
		case *sqlparser.OrExpr:
			left = n.Left
		case *sqlparser.ParenExpr:
			left = n.Expr
		case sqlparser.BoolVal:
			return !bool(n)
		default:
			return false
		}
	}
}

// spliceIntoWhere 把一个 FROM 谓词拼进 WHERE 骨架：
// 首次把右侧哨位换成 FALSE OR (谓词)，之后在 OR 链的左支上加深
func spliceIntoWhere(sel *sqlparser.Select, p sqlparser.Expr) {
	and := sel.Where.Expr.(*sqlparser.AndExpr)
	wrapped := &sqlparser.ParenExpr{Expr: p}
	if b, ok := and.Right.(sqlparser.BoolVal); ok && bool(b) {
		and.Right = &sqlparser.ParenExpr{
			Expr: &sqlparser.OrExpr{Left: sqlparser.BoolVal(false), Right: wrapped},
		}
		return
	}
	paren, ok := and.Right.(*sqlparser.ParenExpr)
	if !ok {
		return
	}
	if or, ok := paren.Expr.(*sqlparser.OrExpr); ok {
		or.Left = &sqlparser.OrExpr{Left: or.Left, Right: wrapped}
	}
}

// applyLimit 收紧或注入 LIMIT：表级上限优先，其次全局上限
func applyLimit(sel *sqlparser.Select, tables []string, opts Options) {
	max := 0
	if len(tables) > 0 {
		if v, ok := opts.TableLimits[tables[0]]; ok {
			max = v
		}
	}
	if max == 0 {
		max = opts.DefaultLimit
	}
	if max == 0 {
		return
	}
	limitVal := func(n int) *sqlparser.Limit {
		return &sqlparser.Limit{Rowcount: sqlparser.NewIntVal([]byte(strconv.Itoa(n)))}
	}
	if sel.Limit == nil || sel.Limit.Rowcount == nil {
		sel.Limit = limitVal(max)
		return
	}
	if v, ok := sel.Limit.Rowcount.(*sqlparser.SQLVal); ok && v.Type == sqlparser.IntVal {
		if n, err := strconv.Atoi(string(v.Val)); err == nil && n > max {
			sel.Limit = limitVal(max)
		}
	}
}

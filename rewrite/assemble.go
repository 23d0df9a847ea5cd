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

// assemble.go 把累加器里的子句片段装配成一条非正式 SQL
package rewrite

import (
	"strconv"
	"strings"
)

// Options 是装配器需要的调用方配置
type Options struct {
	// DefaultTable 没有收集到任何 FROM 目标时的缺省表
	DefaultTable string
	// HintColumns 聚合提示到缺省列清单的映射
	HintColumns map[string][]string
}

// Assemble 推导最终投影列并拼出 SQL 文本。
// 投影推导顺序：显式 SELECT 列优先；没有显式列时用 ORDER BY 表达式
// （去掉方向）补齐，且只在没有 GROUP BY 时并入出现过的普通列；
// 非通配情况下再并入提示对应的缺省列和 GROUP BY 列；仍为空则取通配。
func (st *State) Assemble(opts Options) string {
	cols := append([]string(nil), st.Columns...)
	wildcard := false
	for _, c := range cols {
		if c == "*" {
			wildcard = true
		}
	}

	if len(cols) == 0 {
		for _, f := range st.OrderBy {
			cols = appendUnique(cols, stripDirection(f))
		}
		if len(st.GroupBy) == 0 {
			for _, c := range st.ColumnsUsed {
				cols = appendUnique(cols, c)
			}
		}
	}
	if !wildcard {
		for _, h := range st.Hints {
			for _, c := range opts.HintColumns[h] {
				cols = appendUnique(cols, quoteIdent(c))
			}
		}
		for _, g := range st.GroupBy {
			cols = appendUnique(cols, g)
		}
	}
	if len(cols) == 0 {
		cols = []string{"*"}
	}

	from := st.From
	if len(from) == 0 {
		if opts.DefaultTable != "" {
			from = []string{quoteIdent(opts.DefaultTable)}
		} else {
			// 约定的回退：没有表也没有缺省配置时用字面表名 null
			from = []string{quoteIdent("null")}
		}
	}

	var b strings.Builder
	b.WriteString("SELECT ")
	if st.Distinct {
		b.WriteString("DISTINCT ")
	}
	b.WriteString(strings.Join(cols, ", "))
	b.WriteString(" FROM ")
	b.WriteString(strings.Join(from, ", "))
	if w := stripConnector(st.Where); w != "" {
		b.WriteString(" WHERE ")
		b.WriteString(w)
	}
	if len(st.GroupBy) > 0 {
		b.WriteString(" GROUP BY ")
		b.WriteString(strings.Join(st.GroupBy, ", "))
	}
	if h := stripConnector(st.Having); h != "" {
		b.WriteString(" HAVING ")
		b.WriteString(h)
	}
	if len(st.OrderBy) > 0 {
		b.WriteString(" ORDER BY ")
		b.WriteString(strings.Join(st.OrderBy, ", "))
	}
	if st.Limit > 0 {
		b.WriteString(" LIMIT ")
		b.WriteString(strconv.Itoa(st.Limit))
	}
	return b.String()
}

// stripConnector 去掉累加字符串开头的 AND / OR 连接词
func stripConnector(s string) string {
	s = strings.TrimSpace(s)
	s = strings.TrimPrefix(s, "AND ")
	s = strings.TrimPrefix(s, "OR ")
	return s
}

// stripDirection 去掉 ORDER BY 片段尾部的方向和空值排序标注
func stripDirection(fragment string) string {
	for _, suffix := range []string{" NULLS FIRST", " NULLS LAST", " DESC", " ASC"} {
		fragment = strings.TrimSuffix(fragment, suffix)
	}
	return fragment
}

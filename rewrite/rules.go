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

// rules.go 是全部重写阶段的规则表。
// 阶段顺序：空值排序线索 → 数值折叠 → LIMIT 提取 → 字面量归一
// → 表达式折叠 → ORDER BY → GROUP BY → HAVING → WHERE → FROM → SELECT。
// 子句阶段使用"重发前导关键字"技巧串联同一子句的多个片段：
// 规则消费片段后把关键字标记重新发射回流里，固定点迭代让下一个
// 片段在下一轮被同一组规则接住，孤立的关键字最后由清理规则吞掉。
package rewrite

import (
	"strings"

	"github.com/rulego/nl2sql/token"
)

var stages = buildStages()

func buildStages() []Stage {
	return []Stage{
		stageNullOrder(),
		stageNumbers(),
		stageLimit(),
		stageValues(),
		stageExpressions(),
		stageOrderBy(),
		stageGroupBy(),
		stageHaving(),
		stageWhere(),
		stageFrom(),
		stageSelect(),
	}
}

// "null first" / "nulls last" 在任何数值或表达式折叠之前换成排序线索标记
func stageNullOrder() Stage {
	rules := []Rule{
		{
			Pattern: []Matcher{
				match(token.FamilyKeyword, token.Null),
				matchText(token.FamilyKeyword, token.Limit, "first"),
			},
			Action: func(st *State, w []token.Token) []token.Token {
				return []token.Token{token.NewKeyword(token.NullsOrder, "NULLS FIRST")}
			},
		},
		{
			Pattern: []Matcher{
				match(token.FamilyKeyword, token.Null),
				matchText(token.FamilyKeyword, token.Limit, "last"),
			},
			Action: func(st *State, w []token.Token) []token.Token {
				return []token.Token{token.NewKeyword(token.NullsOrder, "NULLS LAST")}
			},
		},
	}
	return Stage{Name: "nullorder", Substages: []Substage{{Rules: rules}}}
}

// 基数 ÷ 序数、基数 × 单位，迭代到固定点
func stageNumbers() Stage {
	rules := []Rule{
		{
			Pattern: []Matcher{
				match(token.FamilyNumber, token.Cardinal),
				match(token.FamilyNumber, token.Ordinal),
			},
			Action: func(st *State, w []token.Token) []token.Token {
				return []token.Token{token.NewCardinal(w[0].Number() / w[1].Number())}
			},
		},
		{
			Pattern: []Matcher{
				match(token.FamilyNumber, token.Cardinal),
				match(token.FamilyUnit, token.Mass),
			},
			Action: func(st *State, w []token.Token) []token.Token {
				return []token.Token{token.NewCardinal(w[0].Number() * w[1].Number())}
			},
		},
	}
	return Stage{Name: "numbers", Substages: []Substage{{Rules: rules, Repeat: true}}}
}

// LIMIT 提取。方向词（top/lowest 的隐含方向或紧邻的 DESC）
// 不直接进 ORDER BY，而是置位 Reverse，由 ORDER BY 阶段反转升降序。
func stageLimit() Stage {
	setLimit := func(st *State, n float64, hint string) {
		st.Limit = int(n)
		if hint == "DESC" {
			st.Reverse = true
		}
	}
	rules := []Rule{
		{
			Pattern: []Matcher{
				match(token.FamilyKeyword, token.Desc),
				match(token.FamilyKeyword, token.Limit),
				match(token.FamilyNumber, token.Cardinal),
			},
			Action: func(st *State, w []token.Token) []token.Token {
				setLimit(st, w[2].Number(), "DESC")
				return nil
			},
		},
		{
			Pattern: []Matcher{
				match(token.FamilyKeyword, token.Limit),
				match(token.FamilyNumber, token.Cardinal),
				match(token.FamilyKeyword, token.Desc),
			},
			Action: func(st *State, w []token.Token) []token.Token {
				setLimit(st, w[1].Number(), "DESC")
				return nil
			},
		},
		{
			Pattern: []Matcher{
				match(token.FamilyKeyword, token.Limit),
				match(token.FamilyNumber, token.Cardinal),
			},
			Action: func(st *State, w []token.Token) []token.Token {
				setLimit(st, w[1].Number(), w[0].Hint)
				return nil
			},
		},
	}
	return Stage{Name: "limit", Substages: []Substage{{Rules: rules}}}
}

// 字面量归一：NULL、数值、字符串、列实体都换成已渲染的值标记，
// 聚合提示前缀直接写进列的逻辑名（"sum:PROTEIN"），由正式化阶段解析
func stageValues() Stage {
	hintColumn := func(st *State, hint string, col token.Token) []token.Token {
		st.addHint(hint)
		return []token.Token{token.NewValue(quoteIdent(hint + ":" + col.Text()))}
	}
	rules := []Rule{
		{
			Pattern: []Matcher{
				match(token.FamilyKeyword, token.Hint),
				matchText(token.FamilyText, token.Word, ":"),
				match(token.FamilyEntity, token.Column),
			},
			Action: func(st *State, w []token.Token) []token.Token {
				return hintColumn(st, w[0].Text(), w[2])
			},
		},
		{
			Pattern: []Matcher{
				match(token.FamilyKeyword, token.All),
				matchText(token.FamilyText, token.Word, ":"),
				match(token.FamilyEntity, token.Column),
			},
			Action: func(st *State, w []token.Token) []token.Token {
				return hintColumn(st, "all", w[2])
			},
		},
		{
			Pattern: []Matcher{
				match(token.FamilyKeyword, token.Hint),
				match(token.FamilyEntity, token.Column),
			},
			Action: func(st *State, w []token.Token) []token.Token {
				return hintColumn(st, w[0].Text(), w[1])
			},
		},
		{
			Pattern: []Matcher{
				match(token.FamilyKeyword, token.All),
				match(token.FamilyEntity, token.Column),
			},
			Action: func(st *State, w []token.Token) []token.Token {
				return hintColumn(st, "all", w[1])
			},
		},
		{
			Pattern: []Matcher{match(token.FamilyKeyword, token.Null)},
			Action: func(st *State, w []token.Token) []token.Token {
				return []token.Token{token.NewValue("NULL")}
			},
		},
		{
			Pattern: []Matcher{match(token.FamilyNumber, token.Cardinal)},
			Action: func(st *State, w []token.Token) []token.Token {
				return []token.Token{token.NewValue(renderNumber(w[0].Number()))}
			},
		},
		{
			Pattern: []Matcher{match(token.FamilyText, token.Quoted)},
			Action: func(st *State, w []token.Token) []token.Token {
				return []token.Token{token.NewValue(quoteString(w[0].Text()))}
			},
		},
		{
			Pattern: []Matcher{match(token.FamilyEntity, token.Column)},
			Action: func(st *State, w []token.Token) []token.Token {
				rendered := quoteIdent(w[0].Text())
				st.addColumnUsed(rendered)
				if w[0].Hint != "" {
					st.addHint(w[0].Hint)
				}
				// 保留所属表提示，供 "protein groups" 的表推断使用
				tok := token.NewValue(rendered)
				tok.Hint = w[0].Hint
				return []token.Token{tok}
			},
		},
	}
	return Stage{Name: "values", Substages: []Substage{{Rules: rules}}}
}

// 表达式折叠。子阶段顺序就是优先级阶梯：括号、函数调用、乘方、
// 乘除模、加减、一元、比较（含 BETWEEN 三元）、AND 链、OR 链。
// 整个阶段迭代到固定点，NOT 之类依赖后续折叠结果的组合在下一轮接上。
func stageExpressions() Stage {
	binary := func(st *State, w []token.Token) []token.Token {
		return []token.Token{token.NewExpr("(" + w[0].Text() + " " + w[1].Text() + " " + w[2].Text() + ")")}
	}
	compare := func(st *State, w []token.Token) []token.Token {
		return []token.Token{token.NewBoolean("(" + w[0].Text() + " " + w[1].Text() + " " + w[2].Text() + ")")}
	}
	substages := []Substage{
		{Repeat: true, Rules: []Rule{
			{
				Pattern: []Matcher{
					match(token.FamilyBracket, token.Open),
					match(token.FamilyExpression, token.Any),
					match(token.FamilyBracket, token.Close),
				},
				Action: func(st *State, w []token.Token) []token.Token {
					return []token.Token{w[1]}
				},
			},
		}},
		{Repeat: true, Rules: []Rule{
			{
				Pattern: []Matcher{
					match(token.FamilyFunction, token.Call),
					match(token.FamilyBracket, token.Open),
					scalar(),
					match(token.FamilySeparator, token.Comma),
					scalar(),
					match(token.FamilyBracket, token.Close),
				},
				Action: func(st *State, w []token.Token) []token.Token {
					return []token.Token{token.NewExpr(w[0].Text() + "(" + w[2].Text() + ", " + w[4].Text() + ")")}
				},
			},
			{
				Pattern: []Matcher{
					match(token.FamilyFunction, token.Call),
					match(token.FamilyBracket, token.Open),
					scalar(),
					match(token.FamilyBracket, token.Close),
				},
				Action: func(st *State, w []token.Token) []token.Token {
					return []token.Token{token.NewExpr(w[0].Text() + "(" + w[2].Text() + ")")}
				},
			},
			{
				Pattern: []Matcher{match(token.FamilyFunction, token.Call), scalar()},
				Action: func(st *State, w []token.Token) []token.Token {
					return []token.Token{token.NewExpr(w[0].Text() + "(" + w[1].Text() + ")")}
				},
			},
		}},
		{Repeat: true, Rules: []Rule{
			{Pattern: []Matcher{scalar(), operator("^"), scalar()}, Action: binary},
		}},
		{Repeat: true, Rules: []Rule{
			{Pattern: []Matcher{scalar(), operator("*", "/", "%"), scalar()}, Action: binary},
		}},
		{Repeat: true, Rules: []Rule{
			{Pattern: []Matcher{scalar(), operator("+", "-"), scalar()}, Action: binary},
		}},
		{Repeat: true, Rules: []Rule{
			{
				Pattern: []Matcher{matchText(token.FamilyOperator, token.Unary, "-"), scalar()},
				Action: func(st *State, w []token.Token) []token.Token {
					return []token.Token{token.NewExpr("(-" + w[1].Text() + ")")}
				},
			},
			{
				Pattern: []Matcher{matchText(token.FamilyOperator, token.Unary, "NOT"), boolean()},
				Action: func(st *State, w []token.Token) []token.Token {
					return []token.Token{token.NewBoolean("(NOT " + w[1].Text() + ")")}
				},
			},
		}},
		{Repeat: true, Rules: []Rule{
			{
				Pattern: []Matcher{
					scalar(),
					match(token.FamilyOperator, token.Ternary),
					scalar(),
					operator("AND"),
					scalar(),
				},
				Action: func(st *State, w []token.Token) []token.Token {
					return []token.Token{token.NewBoolean(
						"(" + w[0].Text() + " BETWEEN " + w[2].Text() + " AND " + w[4].Text() + ")")}
				},
			},
			{
				Pattern: []Matcher{scalar(), operator("=", "<", ">", "<=", ">=", "<>", "LIKE"), scalar()},
				Action:  compare,
			},
		}},
		{Repeat: true, Rules: []Rule{
			{
				Pattern: []Matcher{boolean(), operator("AND"), boolean()},
				Action: func(st *State, w []token.Token) []token.Token {
					return []token.Token{token.NewBoolean("(" + w[0].Text() + " AND " + w[2].Text() + ")")}
				},
			},
		}},
		{Repeat: true, Rules: []Rule{
			{
				Pattern: []Matcher{boolean(), operator("OR"), boolean()},
				Action: func(st *State, w []token.Token) []token.Token {
					return []token.Token{token.NewBoolean("(" + w[0].Text() + " OR " + w[2].Text() + ")")}
				},
			},
		}},
	}
	return Stage{Name: "expressions", Substages: substages, Repeat: true}
}

func stageOrderBy() Stage {
	orderBy := match(token.FamilyKeyword, token.OrderBy)
	add := func(st *State, expr token.Token, dir, nulls string) []token.Token {
		st.addOrderBy(st.orderFragment(expr.Text(), dir, nulls))
		return []token.Token{token.NewKeyword(token.OrderBy, "ORDER BY")}
	}
	rules := []Rule{
		{
			Pattern: []Matcher{orderBy, scalar(), match(token.FamilyKeyword, token.Desc), match(token.FamilyKeyword, token.NullsOrder)},
			Action: func(st *State, w []token.Token) []token.Token {
				return add(st, w[1], "DESC", w[3].Text())
			},
		},
		{
			Pattern: []Matcher{orderBy, scalar(), match(token.FamilyKeyword, token.Asc), match(token.FamilyKeyword, token.NullsOrder)},
			Action: func(st *State, w []token.Token) []token.Token {
				return add(st, w[1], "ASC", w[3].Text())
			},
		},
		{
			Pattern: []Matcher{orderBy, scalar(), match(token.FamilyKeyword, token.Desc)},
			Action: func(st *State, w []token.Token) []token.Token {
				return add(st, w[1], "DESC", "")
			},
		},
		{
			Pattern: []Matcher{orderBy, scalar(), match(token.FamilyKeyword, token.Asc)},
			Action: func(st *State, w []token.Token) []token.Token {
				return add(st, w[1], "ASC", "")
			},
		},
		{
			Pattern: []Matcher{orderBy, scalar(), match(token.FamilyKeyword, token.NullsOrder)},
			Action: func(st *State, w []token.Token) []token.Token {
				return add(st, w[1], "", w[2].Text())
			},
		},
		// 尾随比较符暗示方向："order by protein >" 取降序
		{
			Pattern: []Matcher{orderBy, scalar(), operator(">")},
			Action: func(st *State, w []token.Token) []token.Token {
				return add(st, w[1], "DESC", "")
			},
		},
		{
			Pattern: []Matcher{orderBy, scalar(), operator("<")},
			Action: func(st *State, w []token.Token) []token.Token {
				return add(st, w[1], "ASC", "")
			},
		},
		{
			Pattern: []Matcher{orderBy, scalar(), match(token.FamilySeparator, token.Comma)},
			Action: func(st *State, w []token.Token) []token.Token {
				return add(st, w[1], "", "")
			},
		},
		{
			Pattern: []Matcher{orderBy, scalar()},
			Action: func(st *State, w []token.Token) []token.Token {
				return add(st, w[1], "", "")
			},
		},
		{
			Pattern: []Matcher{orderBy},
			Action:  func(st *State, w []token.Token) []token.Token { return nil },
		},
	}
	return Stage{Name: "orderby", Substages: []Substage{{Rules: rules, Repeat: true}}}
}

func stageGroupBy() Stage {
	groupBy := match(token.FamilyKeyword, token.GroupBy)
	rules := []Rule{
		{
			Pattern: []Matcher{groupBy, scalar(), match(token.FamilySeparator, token.Comma)},
			Action: func(st *State, w []token.Token) []token.Token {
				st.addGroupBy(w[1].Text())
				return []token.Token{token.NewKeyword(token.GroupBy, "GROUP BY")}
			},
		},
		{
			Pattern: []Matcher{groupBy, scalar()},
			Action: func(st *State, w []token.Token) []token.Token {
				st.addGroupBy(w[1].Text())
				return []token.Token{token.NewKeyword(token.GroupBy, "GROUP BY")}
			},
		},
		{
			Pattern: []Matcher{groupBy},
			Action:  func(st *State, w []token.Token) []token.Token { return nil },
		},
		// "protein groups"：按该列分组，并从列的所属表提示推断 FROM
		{
			Pattern: []Matcher{scalar(), match(token.FamilyKeyword, token.Groups)},
			Action: func(st *State, w []token.Token) []token.Token {
				st.addGroupBy(w[0].Text())
				if w[0].Hint != "" {
					st.addFrom(quoteIdent(w[0].Hint))
				}
				return nil
			},
		},
	}
	return Stage{Name: "groupby", Substages: []Substage{{Rules: rules, Repeat: true}}}
}

func stageHaving() Stage {
	return clauseStage("having", token.Having, "HAVING",
		func(st *State, fragment string) { st.Having += fragment })
}

func stageWhere() Stage {
	return clauseStage("where", token.Where, "WHERE",
		func(st *State, fragment string) { st.Where += fragment })
}

// clauseStage 生成 WHERE / HAVING 共用的布尔片段累加阶段。
// 片段带着 " AND " / " OR " 连接词累加，装配时去掉开头的连接词。
func clauseStage(name string, v token.Variant, keyword string, accumulate func(*State, string)) Stage {
	clause := match(token.FamilyKeyword, v)
	reemit := func() []token.Token {
		return []token.Token{token.NewKeyword(v, keyword)}
	}
	rules := []Rule{
		{
			Pattern: []Matcher{clause, operator("OR"), boolean()},
			Action: func(st *State, w []token.Token) []token.Token {
				accumulate(st, " OR "+w[2].Text())
				return reemit()
			},
		},
		{
			Pattern: []Matcher{clause, operator("AND"), boolean()},
			Action: func(st *State, w []token.Token) []token.Token {
				accumulate(st, " AND "+w[2].Text())
				return reemit()
			},
		},
		{
			Pattern: []Matcher{clause, matchText(token.FamilyOperator, token.Unary, "NOT"), boolean()},
			Action: func(st *State, w []token.Token) []token.Token {
				accumulate(st, " AND NOT "+w[2].Text())
				return reemit()
			},
		},
		{
			Pattern: []Matcher{clause, boolean()},
			Action: func(st *State, w []token.Token) []token.Token {
				accumulate(st, " AND "+w[1].Text())
				return reemit()
			},
		},
		{
			Pattern: []Matcher{clause},
			Action:  func(st *State, w []token.Token) []token.Token { return nil },
		},
	}
	return Stage{Name: name, Substages: []Substage{{Rules: rules, Repeat: true}}}
}

func stageFrom() Stage {
	rules := []Rule{
		{
			Pattern: []Matcher{match(token.FamilyEntity, token.Table)},
			Action: func(st *State, w []token.Token) []token.Token {
				st.addFrom(quoteIdent(w[0].Text()))
				return nil
			},
		},
		// 行实体的值进 FROM，正式化时由解析回调换成谓词
		{
			Pattern: []Matcher{match(token.FamilyEntity, token.Row)},
			Action: func(st *State, w []token.Token) []token.Token {
				st.addFrom(quoteIdent(w[0].Text()))
				return nil
			},
		},
		{
			Pattern: []Matcher{match(token.FamilyKeyword, token.All), matchText(token.FamilyText, token.Word, "fields")},
			Action: func(st *State, w []token.Token) []token.Token {
				st.addColumn("*")
				return nil
			},
		},
		{
			Pattern: []Matcher{match(token.FamilyKeyword, token.All), matchText(token.FamilyText, token.Word, "columns")},
			Action: func(st *State, w []token.Token) []token.Token {
				st.addColumn("*")
				return nil
			},
		},
		{
			Pattern: []Matcher{match(token.FamilyKeyword, token.From)},
			Action:  func(st *State, w []token.Token) []token.Token { return nil },
		},
	}
	return Stage{Name: "from", Substages: []Substage{{Rules: rules}}}
}

func stageSelect() Stage {
	sel := match(token.FamilyKeyword, token.Select)
	reemit := func() []token.Token {
		return []token.Token{token.NewKeyword(token.Select, "SELECT")}
	}
	rules := []Rule{
		{
			Pattern: []Matcher{sel, match(token.FamilyKeyword, token.Distinct)},
			Action: func(st *State, w []token.Token) []token.Token {
				st.Distinct = true
				return reemit()
			},
		},
		// ALL 限定是 SQL 的默认语义，吞掉即可
		{
			Pattern: []Matcher{sel, match(token.FamilyKeyword, token.All)},
			Action: func(st *State, w []token.Token) []token.Token {
				return reemit()
			},
		},
		{
			Pattern: []Matcher{sel, scalar(), match(token.FamilyKeyword, token.As), match(token.FamilyText, token.Word)},
			Action: func(st *State, w []token.Token) []token.Token {
				st.addColumn(w[1].Text() + " AS " + quoteIdent(w[3].Text()))
				return reemit()
			},
		},
		{
			Pattern: []Matcher{sel, scalar(), match(token.FamilyKeyword, token.As), scalar()},
			Action: func(st *State, w []token.Token) []token.Token {
				st.addColumn(w[1].Text() + " AS " + quoteIdent(unquote(w[3].Text())))
				return reemit()
			},
		},
		{
			Pattern: []Matcher{sel, scalar(), match(token.FamilySeparator, token.Comma)},
			Action: func(st *State, w []token.Token) []token.Token {
				st.addColumn(w[1].Text())
				return reemit()
			},
		},
		{
			Pattern: []Matcher{sel, scalar(), operator("AND")},
			Action: func(st *State, w []token.Token) []token.Token {
				st.addColumn(w[1].Text())
				return reemit()
			},
		},
		{
			Pattern: []Matcher{sel, scalar()},
			Action: func(st *State, w []token.Token) []token.Token {
				st.addColumn(w[1].Text())
				return reemit()
			},
		},
		{
			Pattern: []Matcher{sel},
			Action:  func(st *State, w []token.Token) []token.Token { return nil },
		},
	}
	return Stage{Name: "select", Substages: []Substage{{Rules: rules, Repeat: true}}}
}

// orderFragment 渲染一个 ORDER BY 片段。Reverse 置位时反转方向；
// 升序是默认语义，不显式标注。
func (st *State) orderFragment(expr, dir, nulls string) string {
	if st.Reverse {
		if dir == "DESC" {
			dir = "ASC"
		} else {
			dir = "DESC"
		}
	}
	if dir == "ASC" {
		dir = ""
	}
	fragment := expr
	if dir != "" {
		fragment += " " + dir
	}
	if nulls != "" {
		fragment += " " + nulls
	}
	return fragment
}

// unquote 剥掉值文本外层的单引号或双引号，用于别名归一
func unquote(s string) string {
	if len(s) >= 2 {
		if (s[0] == '\'' && s[len(s)-1] == '\'') || (s[0] == '"' && s[len(s)-1] == '"') {
			inner := s[1 : len(s)-1]
			inner = strings.ReplaceAll(inner, "''", "'")
			inner = strings.ReplaceAll(inner, `""`, `"`)
			return inner
		}
	}
	return s
}

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

// translate.go 把非正式 SQL 的 WHERE 片段翻译成 expr 表达式：
// 双引号标识符变成 $env 查找，SQL 的比较和逻辑词换成 expr 语法，
// LIKE 和 BETWEEN 改写为函数调用和区间比较。
package condition

import (
	"strconv"
	"strings"
)

// CompileFilter 把非正式 WHERE 片段编译为可复用的行过滤器。
// 空片段编译为恒真条件。
func CompileFilter(clause string) (Condition, error) {
	if strings.TrimSpace(clause) == "" {
		return NewExprCondition("true")
	}
	return NewExprCondition(Translate(clause))
}

// Translate 返回等价的 expr 表达式文本
func Translate(clause string) string {
	toks := scanClause(clause)
	var out []string
	for i := 0; i < len(toks); i++ {
		t := toks[i]
		up := strings.ToUpper(t.text)
		switch {
		case t.kind == clauseWord && up == "LIKE" && len(out) > 0 && i+1 < len(toks):
			prev := out[len(out)-1]
			out[len(out)-1] = "like_match(" + prev + ", " + operand(toks[i+1]) + ")"
			i++
		case t.kind == clauseWord && up == "BETWEEN" && len(out) > 0 && i+3 < len(toks):
			prev := out[len(out)-1]
			lo, hi := operand(toks[i+1]), operand(toks[i+3])
			out[len(out)-1] = "(" + prev + " >= " + lo + " && " + prev + " <= " + hi + ")"
			i += 3
		default:
			out = append(out, operand(t))
		}
	}
	return strings.Join(out, " ")
}

func operand(t clauseToken) string {
	switch t.kind {
	case clauseIdent:
		return "$env[" + strconv.Quote(t.text) + "]"
	case clauseString:
		return t.text
	case clauseWord:
		switch strings.ToUpper(t.text) {
		case "AND":
			return "&&"
		case "OR":
			return "||"
		case "NOT":
			return "!"
		case "TRUE":
			return "true"
		case "FALSE":
			return "false"
		case "NULL":
			return "nil"
		}
		return t.text
	case clauseOp:
		switch t.text {
		case "=":
			return "=="
		case "<>":
			return "!="
		}
		return t.text
	}
	return t.text
}

type clauseKind int

const (
	clauseWord clauseKind = iota
	clauseIdent
	clauseString
	clauseOp
	clauseOther
)

type clauseToken struct {
	kind clauseKind
	text string
}

// scanClause 把 WHERE 片段切成翻译单元
func scanClause(clause string) []clauseToken {
	var toks []clauseToken
	for i := 0; i < len(clause); {
		c := clause[i]
		switch {
		case c == ' ' || c == '\t' || c == '\n':
			i++
		case c == '\'':
			j := closeQuote(clause, i, '\'')
			toks = append(toks, clauseToken{clauseString, clause[i:j]})
			i = j
		case c == '"':
			j := closeQuote(clause, i, '"')
			inner := strings.ReplaceAll(clause[i+1:j-1], `""`, `"`)
			toks = append(toks, clauseToken{clauseIdent, inner})
			i = j
		case isWordByte(c):
			j := i
			for j < len(clause) && isWordByte(clause[j]) {
				j++
			}
			// 小数点并入数字
			if j < len(clause) && clause[j] == '.' && j+1 < len(clause) && isDigitByte(clause[j+1]) {
				j++
				for j < len(clause) && isDigitByte(clause[j]) {
					j++
				}
			}
			toks = append(toks, clauseToken{clauseWord, clause[i:j]})
			i = j
		case strings.IndexByte("<>=!", c) >= 0:
			j := i + 1
			for j < len(clause) && strings.IndexByte("<>=!", clause[j]) >= 0 {
				j++
			}
			toks = append(toks, clauseToken{clauseOp, clause[i:j]})
			i = j
		default:
			toks = append(toks, clauseToken{clauseOther, string(c)})
			i++
		}
	}
	return toks
}

func closeQuote(s string, start int, q byte) int {
	for j := start + 1; j < len(s); j++ {
		if s[j] == q {
			// 翻倍的引号是转义
			if j+1 < len(s) && s[j+1] == q {
				j++
				continue
			}
			return j + 1
		}
	}
	return len(s)
}

func isWordByte(c byte) bool {
	return c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z' || c >= '0' && c <= '9' || c == '_'
}

func isDigitByte(c byte) bool {
	return c >= '0' && c <= '9'
}

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

package nl2sql

import (
	"strings"

	"github.com/rulego/nl2sql/condition"
	"github.com/rulego/nl2sql/entity"
	"github.com/rulego/nl2sql/formal"
	"github.com/rulego/nl2sql/lexer"
	"github.com/rulego/nl2sql/logger"
	"github.com/rulego/nl2sql/numeral"
	"github.com/rulego/nl2sql/rewrite"
	"github.com/rulego/nl2sql/unit"
	"github.com/rulego/nl2sql/vocab"
)

// Converter 是英文问句到SQL两段式转换的主要接口。
// 它封装了词法切分、数词归一、单位换算、保留词标注、实体解析、
// 规则改写以及正式化拼接等核心功能。
//
// 使用示例:
//
//	conv := nl2sql.New(nl2sql.WithDefaultTable("FOOD"))
//	informal, err := conv.ToInformalSQL("show food with protein above twenty", matcher)
//	formal, err := conv.ToFormalSQL(informal, resolver)
type Converter struct {
	defaultTable string
	hintColumns  map[string][]string
	defaultLimit int
	tableLimits  map[string]int
	log          logger.Logger
}

// New 创建一个新的Converter实例。
// 支持通过可选的Option参数进行配置。
//
// 示例:
//
//	// 创建默认实例
//	conv := nl2sql.New()
//
//	// 带缺省表和行数上限的实例
//	conv := nl2sql.New(
//	    nl2sql.WithDefaultTable("compositions"),
//	    nl2sql.WithDefaultLimit(100),
//	)
func New(options ...Option) *Converter {
	c := &Converter{}
	for _, option := range options {
		option(c)
	}
	if c.log == nil {
		c.log = logger.GetDefault()
	}
	return c
}

// ToInformalSQL 把一句英文问句转换为非正式SQL。
// 转换依次经过词法切分、数词折叠、质量单位换算、保留词标注、
// 领域实体解析和定点规则改写，最后拼出带双引号标识符的SELECT语句。
//
// match 是领域实体解析回调，按未识别单词窗口返回表、列、行匹配；
// 各个单词段并发解析，任何一段出错则整句失败。
//
// 参数:
//   - text: 英文问句，例如 "show food with ascorbic acid less than twenty nine mg"
//   - match: 实体解析回调，传nil时所有未识别单词按字面保留
//
// 返回值:
//   - string: 非正式SQL，例如 SELECT "ASCORBIC ACID" FROM "FOOD" WHERE ("ASCORBIC ACID" < 0.029)
//   - error: 实体解析回调返回的错误
func (c *Converter) ToInformalSQL(text string, match entity.MatchFunc) (string, error) {
	tokens := lexer.Tokenize(text)
	tokens = numeral.Normalize(tokens)
	tokens = unit.Normalize(tokens)
	tokens = vocab.Tag(tokens)

	tokens, err := entity.Resolve(tokens, match)
	if err != nil {
		return "", err
	}

	opts := rewrite.Options{
		DefaultTable: c.defaultTable,
		HintColumns:  c.hintColumns,
	}
	return rewrite.Run(tokens, opts, c.log), nil
}

// ToFormalSQL 把非正式SQL正式化为可执行的SELECT语句。
// 语句先由SQL语法解析为AST，再逐子句调用resolve回调把非正式的
// 表名、列名替换为真实模式里的名字；SELECT列表里的多值结果扇出
// 为兄弟列，sum和avg提示折叠为算术表达式，FROM解析出的谓词拼进
// WHERE骨架，最后按配置收紧LIMIT。
//
// 同一条语句重复正式化输出不再变化，因此调用方可以安全重放。
//
// 参数:
//   - sql: 非正式SQL，通常是ToInformalSQL的输出
//   - resolve: 名字解析回调，按 (name, clause, hint, from) 返回候选值
//
// 返回值:
//   - string: 正式SQL
//   - error: 语法错误或回调错误
func (c *Converter) ToFormalSQL(sql string, resolve formal.ResolveFunc) (string, error) {
	opts := formal.Options{
		DefaultTable: c.defaultTable,
		DefaultLimit: c.defaultLimit,
		TableLimits:  c.tableLimits,
	}
	return formal.Convert(sql, resolve, opts, c.log)
}

// CompileRowFilter 把非正式SQL的WHERE子句编译为可复用的行过滤器。
// 没有WHERE子句的语句编译为恒真过滤器。
//
// 示例:
//
//	filter, _ := conv.CompileRowFilter(`SELECT "a" FROM "t" WHERE ("PROTEIN" > 20)`)
//	ok := filter.Evaluate(map[string]interface{}{"PROTEIN": 23.5}) // true
func (c *Converter) CompileRowFilter(informalSQL string) (condition.Condition, error) {
	return condition.CompileFilter(extractWhere(informalSQL))
}

// ConvertToInformalSQL 是一次性非正式转换的便捷方法
func ConvertToInformalSQL(text string, match entity.MatchFunc, options ...Option) (string, error) {
	return New(options...).ToInformalSQL(text, match)
}

// ConvertToFormalSQL 是一次性正式化的便捷方法
func ConvertToFormalSQL(sql string, resolve formal.ResolveFunc, options ...Option) (string, error) {
	return New(options...).ToFormalSQL(sql, resolve)
}

// extractWhere 摘出WHERE子句文本，到下一个子句关键字为止。
// 扫描时跳过单引号字符串和双引号标识符，避免误判引号里的关键字。
func extractWhere(sql string) string {
	upper := strings.ToUpper(sql)
	start := -1
	end := len(sql)
	for i := 0; i < len(sql); {
		switch sql[i] {
		case '\'', '"':
			i = skipQuoted(sql, i)
		default:
			if !isWordEdge(upper, i) {
				i++
				continue
			}
			switch {
			case start < 0 && strings.HasPrefix(upper[i:], "WHERE "):
				start = i + len("WHERE ")
				i = start
			case start >= 0 && (strings.HasPrefix(upper[i:], "GROUP BY ") ||
				strings.HasPrefix(upper[i:], "HAVING ") ||
				strings.HasPrefix(upper[i:], "ORDER BY ") ||
				strings.HasPrefix(upper[i:], "LIMIT ")):
				return strings.TrimSpace(sql[start:i])
			default:
				i++
			}
		}
	}
	if start < 0 {
		return ""
	}
	return strings.TrimSpace(sql[start:end])
}

// skipQuoted 返回引号区域之后的下标，翻倍的引号是转义
func skipQuoted(s string, start int) int {
	q := s[start]
	for j := start + 1; j < len(s); j++ {
		if s[j] == q {
			if j+1 < len(s) && s[j+1] == q {
				j++
				continue
			}
			return j + 1
		}
	}
	return len(s)
}

// isWordEdge 判断下标处是不是一个单词的开头
func isWordEdge(s string, i int) bool {
	if i == 0 {
		return true
	}
	c := s[i-1]
	return !(c >= 'A' && c <= 'Z' || c >= 'a' && c <= 'z' || c >= '0' && c <= '9' || c == '_')
}

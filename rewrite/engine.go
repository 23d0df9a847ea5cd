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

// engine.go 是规则引擎的驱动器：从左到右扫描标记流，
// 窗口命中模式时执行动作、拼接替换标记，然后从替换之后继续扫描。
// 子阶段可以标记为固定点（重复到一轮不再减少标记数），
// 阶段同理。阶段顺序固定且语义相关，后面的阶段假设前面的归一化已经完成。
package rewrite

import (
	"strings"

	"github.com/rulego/nl2sql/token"
)

// Matcher 匹配窗口里的一个标记：先按类型（族或精确变体），
// 再按可选的值谓词
type Matcher struct {
	Type token.Type
	Cond func(token.Token) bool
}

func (m Matcher) matches(tok token.Token) bool {
	if !m.Type.Matches(tok.Type) {
		return false
	}
	return m.Cond == nil || m.Cond(tok)
}

// Rule 是一条模式到动作的重写规则。动作消费命中的窗口，
// 返回零个、一个或多个替换标记。
type Rule struct {
	Pattern []Matcher
	Action  func(st *State, window []token.Token) []token.Token
}

// Substage 是一组按序尝试的规则。Repeat 置位时重复整个子阶段，
// 直到一轮结束后标记数不再减少。
type Substage struct {
	Rules  []Rule
	Repeat bool
}

// Stage 是一组按序执行的子阶段，至少执行一遍；
// Repeat 置位时整个阶段也迭代到固定点。
type Stage struct {
	Name      string
	Substages []Substage
	Repeat    bool
}

func (s Substage) apply(st *State, tokens []token.Token) []token.Token {
	for {
		before := len(tokens)
		tokens = scan(st, s.Rules, tokens)
		if !s.Repeat || len(tokens) >= before {
			return tokens
		}
	}
}

func (s Stage) apply(st *State, tokens []token.Token) []token.Token {
	for {
		before := len(tokens)
		for _, sub := range s.Substages {
			tokens = sub.apply(st, tokens)
		}
		if !s.Repeat || len(tokens) >= before {
			return tokens
		}
	}
}

// scan 对标记流做一轮从左到右的规则应用。
// 同一位置按规则声明顺序尝试，命中即停；替换产物不在本轮重扫。
func scan(st *State, rules []Rule, tokens []token.Token) []token.Token {
	out := make([]token.Token, 0, len(tokens))
	for i := 0; i < len(tokens); {
		rule, ok := matchAt(rules, tokens, i)
		if !ok {
			out = append(out, tokens[i])
			i++
			continue
		}
		n := len(rule.Pattern)
		out = append(out, rule.Action(st, tokens[i:i+n])...)
		i += n
	}
	return out
}

func matchAt(rules []Rule, tokens []token.Token, at int) (Rule, bool) {
	for _, r := range rules {
		n := len(r.Pattern)
		if at+n > len(tokens) {
			continue
		}
		hit := true
		for k, m := range r.Pattern {
			if !m.matches(tokens[at+k]) {
				hit = false
				break
			}
		}
		if hit {
			return r, true
		}
	}
	return Rule{}, false
}

// 模式构造辅助

func match(f token.Family, v token.Variant) Matcher {
	return Matcher{Type: token.Type{Family: f, Variant: v}}
}

// matchText 在类型之上再要求标记文本等于 value（大小写不敏感）
func matchText(f token.Family, v token.Variant, value string) Matcher {
	return Matcher{
		Type: token.Type{Family: f, Variant: v},
		Cond: func(t token.Token) bool { return strings.EqualFold(t.Text(), value) },
	}
}

// scalar 匹配任意标量表达式（值或已折叠表达式）
func scalar() Matcher {
	return Matcher{
		Type: token.Type{Family: token.FamilyExpression, Variant: token.Any},
		Cond: token.Token.IsScalar,
	}
}

// boolean 匹配布尔表达式
func boolean() Matcher {
	return match(token.FamilyExpression, token.Boolean)
}

// operator 匹配值在给定集合内的二元操作符
func operator(values ...string) Matcher {
	return Matcher{
		Type: token.Type{Family: token.FamilyOperator, Variant: token.Binary},
		Cond: func(t token.Token) bool {
			for _, v := range values {
				if t.Text() == v {
					return true
				}
			}
			return false
		},
	}
}

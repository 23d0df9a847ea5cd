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

// Package entity 用调用方提供的匹配回调识别文本里的表、列、行实体。
// 连续的普通单词构成一个 run；不同 run 相互独立、并发解析，
// 同一 run 内严格串行（每次调用依赖上一次消费了几个单词）。
// 结果按原始位置拼回，与完成顺序无关。
package entity

import (
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/rulego/nl2sql/token"
)

// Match 是匹配回调的一次命中结果
type Match struct {
	// Type 的首字母决定实体类型：t 表、c 列、r 行，大小写不敏感。
	// 其他首字母静默降级为无类型，产出普通单词标记。
	Type   string
	Value  string
	Length int
	// Hint 可选，列实体所属的表名
	Hint string
}

// MatchFunc 是调用方提供的实体匹配回调。
// 入参是 run 内剩余的单词序列；返回 nil 表示未命中，
// 此时恰好消费一个单词作为字面文本。
type MatchFunc func(words []string) (*Match, error)

// segment 是原始标记流的一段：要么是待解析的单词 run，要么是直通标记
type segment struct {
	run  []string
	pass token.Token
}

// Resolve 对标记流做实体识别。任何一次回调失败都会使整个解析失败，
// 不返回部分结果。match 为 nil 时不做识别，标记流原样返回。
func Resolve(tokens []token.Token, match MatchFunc) ([]token.Token, error) {
	if match == nil {
		// 没有匹配回调时所有单词按字面保留
		return tokens, nil
	}
	segments := split(tokens)
	results := make([][]token.Token, len(segments))

	var g errgroup.Group
	for i, seg := range segments {
		if seg.run == nil {
			results[i] = []token.Token{seg.pass}
			continue
		}
		i, run := i, seg.run
		g.Go(func() error {
			resolved, err := resolveRun(run, match)
			if err != nil {
				return err
			}
			results[i] = resolved
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	out := make([]token.Token, 0, len(tokens))
	for _, r := range results {
		out = append(out, r...)
	}
	return out, nil
}

func split(tokens []token.Token) []segment {
	var segments []segment
	var run []string
	flush := func() {
		if len(run) > 0 {
			segments = append(segments, segment{run: run})
			run = nil
		}
	}
	for _, tok := range tokens {
		if tok.IsVariant(token.FamilyText, token.Word) {
			run = append(run, tok.Text())
			continue
		}
		flush()
		segments = append(segments, segment{pass: tok})
	}
	flush()
	return segments
}

// resolveRun 在一个 run 内串行消费单词
func resolveRun(words []string, match MatchFunc) ([]token.Token, error) {
	var out []token.Token
	for i := 0; i < len(words); {
		m, err := match(words[i:])
		if err != nil {
			return nil, err
		}
		if m == nil {
			out = append(out, token.NewWord(words[i]))
			i++
			continue
		}
		length := m.Length
		if length < 1 {
			length = 1
		}
		if length > len(words)-i {
			length = len(words) - i
		}
		out = append(out, entityToken(m))
		i += length
	}
	return out, nil
}

func entityToken(m *Match) token.Token {
	var letter byte
	if t := strings.ToLower(m.Type); t != "" {
		letter = t[0]
	}
	switch letter {
	case 't':
		return token.NewEntity(token.Table, m.Value, m.Hint)
	case 'c':
		return token.NewEntity(token.Column, m.Value, m.Hint)
	case 'r':
		return token.NewEntity(token.Row, m.Value, m.Hint)
	default:
		// 未知类型字母静默降级为普通文本
		return token.NewWord(m.Value)
	}
}

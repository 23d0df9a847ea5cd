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

// Package vocab 把已知的英文保留词重新标注为关键字、运算符或函数标记。
// 先按多词短语匹配（长短语优先），再查单词表；两者都不命中的单词
// 原样通过。只有普通单词标记参与匹配，引号片段和已归一化的
// 数值标记不会被改写。
package vocab

import (
	"strings"

	"github.com/rulego/nl2sql/token"
)

type phrase struct {
	words []string
	tok   token.Token
}

// Tag 对标记流做保留词标注
func Tag(tokens []token.Token) []token.Token {
	out := make([]token.Token, 0, len(tokens))
	for i := 0; i < len(tokens); {
		if !tokens[i].IsVariant(token.FamilyText, token.Word) {
			out = append(out, tokens[i])
			i++
			continue
		}
		if p, ok := matchPhrase(tokens, i); ok {
			out = append(out, p.tok)
			i += len(p.words)
			continue
		}
		w := strings.ToLower(tokens[i].Text())
		if tagged, ok := singles[w]; ok {
			out = append(out, tagged)
		} else {
			out = append(out, tokens[i])
		}
		i++
	}
	return out
}

func matchPhrase(tokens []token.Token, at int) (phrase, bool) {
	for _, p := range phrases {
		if at+len(p.words) > len(tokens) {
			continue
		}
		matched := true
		for j, w := range p.words {
			tok := tokens[at+j]
			if !tok.IsVariant(token.FamilyText, token.Word) || strings.ToLower(tok.Text()) != w {
				matched = false
				break
			}
		}
		if matched {
			return p, true
		}
	}
	return phrase{}, false
}

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

// Package unit 把质量单位单词替换为携带克换算系数的 Mass 标记。
// 查找顺序：原词 → 去复数 → 小写 → 小写去复数，命中即停；
// 未命中的单词原样通过。
package unit

import (
	"strings"

	"github.com/jinzhu/inflection"

	"github.com/rulego/nl2sql/token"
)

// masses 映射单位名或缩写到相对克的换算系数
var masses = map[string]float64{
	"g":    1,
	"gram": 1,

	"kg":       1000,
	"kilo":     1000,
	"kilogram": 1000,

	"mg":        0.001,
	"milligram": 0.001,

	"ug":        1e-6,
	"µg":        1e-6,
	"mcg":       1e-6,
	"microgram": 1e-6,

	"ng":       1e-9,
	"nanogram": 1e-9,

	"t":     1e6,
	"ton":   1e6,
	"tonne": 1e6,

	"lb":    453.59237,
	"pound": 453.59237,

	"oz":    28.349523125,
	"ounce": 28.349523125,

	"stone": 6350.29318,
}

// Lookup 按查找顺序在单位表里解析一个单词，返回换算系数
func Lookup(word string) (float64, bool) {
	for _, candidate := range candidates(word) {
		if scale, ok := masses[candidate]; ok {
			return scale, true
		}
	}
	return 0, false
}

func candidates(word string) []string {
	out := []string{word}
	if singular := inflection.Singular(word); singular != word {
		out = append(out, singular)
	}
	lower := strings.ToLower(word)
	if lower != word {
		out = append(out, lower)
		if singular := inflection.Singular(lower); singular != lower {
			out = append(out, singular)
		}
	}
	return out
}

// Normalize 对标记流做单位替换，只作用于普通单词标记
func Normalize(tokens []token.Token) []token.Token {
	out := make([]token.Token, 0, len(tokens))
	for _, tok := range tokens {
		if tok.IsVariant(token.FamilyText, token.Word) {
			if scale, ok := Lookup(tok.Text()); ok {
				out = append(out, token.NewMass(scale))
				continue
			}
		}
		out = append(out, tok)
	}
	return out
}

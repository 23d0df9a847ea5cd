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

// Package numeral 把连续的数词标记折叠为单个数值标记。
// 内部维护一个小型数量级分组栈：乘数词（hundred/thousand/million）
// 会先吸收累计数量级严格小于它的挂起组，再做乘法；
// "two hundred" 因此先融合成 200，随后才被 "thousand" 放大。
package numeral

import (
	"math"
	"strconv"
	"strings"

	"github.com/rulego/nl2sql/token"
)

// group 是一个部分累计的数量级分组：数值、数量级、累计数量级
type group struct {
	value float64
	order int
	acc   int
}

type accumulator struct {
	groups []group
	active bool

	// 小数前缀状态：decimal marker 之后逐位拼接
	frac       bool
	fracValue  float64
	fracDigits int
}

func (a *accumulator) reset() {
	a.groups = a.groups[:0]
	a.active = false
	a.frac = false
	a.fracValue = 0
	a.fracDigits = 0
}

// total 把所有挂起组和小数前缀合并为当前累计值
func (a *accumulator) total() float64 {
	var sum float64
	for _, g := range a.groups {
		sum += g.value
	}
	return sum + a.fracValue
}

// pushCardinal 接收一个基数词
func (a *accumulator) pushCardinal(w wordInfo) {
	a.active = true

	if a.frac {
		a.pushFraction(w.value)
		return
	}

	if !w.multiplier {
		a.groups = append(a.groups, group{value: w.value, order: w.order, acc: w.order})
		return
	}

	// 乘数词：吸收累计数量级严格小于该词数量级的挂起组
	var sum float64
	for len(a.groups) > 0 && a.groups[len(a.groups)-1].acc < w.order {
		sum += a.groups[len(a.groups)-1].value
		a.groups = a.groups[:len(a.groups)-1]
	}
	if sum == 0 {
		if len(a.groups) > 0 {
			// 累计数量级不低于新词：未知的数量级融合，乘入挂起组（宽松行为）
			top := &a.groups[len(a.groups)-1]
			top.value *= w.value
			top.acc += w.order
			return
		}
		// 裸的 "hundred"/"thousand"
		sum = 1
	}
	a.groups = append(a.groups, group{
		value: sum * w.value,
		order: w.order,
		acc:   w.order + orderOf(sum),
	})
}

// pushOrdinal 接收一个序数词。累计值 ≥ 20 时按分数语义整体相除，
// 否则播种一个新的分数值。
func (a *accumulator) pushOrdinal(divisor float64) {
	t := a.total()
	var v float64
	if t >= 20 {
		v = t / divisor
	} else {
		v = 1 / divisor
	}
	a.reset()
	a.groups = append(a.groups, group{value: v})
	a.active = true
}

// markDecimal 结束整数部分，开启小数前缀
func (a *accumulator) markDecimal() {
	t := a.total()
	a.reset()
	a.groups = append(a.groups, group{value: t, order: orderOf(t), acc: orderOf(t)})
	a.frac = true
	a.active = true
}

// pushFraction 在小数前缀上逐位追加
func (a *accumulator) pushFraction(v float64) {
	digits := 1
	if v >= 10 {
		digits = len(strconv.FormatFloat(v, 'f', 0, 64))
	}
	a.fracDigits += digits
	a.fracValue += v / math.Pow(10, float64(a.fracDigits))
}

// close 结束累计并产出一个基数标记
func (a *accumulator) close() (token.Token, bool) {
	if !a.active {
		return token.Token{}, false
	}
	v := a.total()
	a.reset()
	return token.NewCardinal(v), true
}

// Normalize 对标记流做数词折叠。
// 非数词单词、非文本标记或流结束都会关闭当前累计；
// 畸形的数词组合不会报错，只会按原样留在流里。
func Normalize(tokens []token.Token) []token.Token {
	out := make([]token.Token, 0, len(tokens))
	var acc accumulator

	flush := func() {
		if tok, ok := acc.close(); ok {
			out = append(out, tok)
		}
	}

	for _, tok := range tokens {
		if !tok.IsVariant(token.FamilyText, token.Word) {
			flush()
			out = append(out, tok)
			continue
		}

		w := strings.ToLower(tok.Text())
		if special, ok := specials[w]; ok {
			flush()
			out = append(out, token.NewCardinal(special))
			continue
		}
		switch {
		case decimalMarkers[w]:
			acc.markDecimal()
		default:
			if info, ok := cardinals[w]; ok {
				acc.pushCardinal(info)
				continue
			}
			if div, ok := ordinals[w]; ok {
				if acc.active || fractions[w] {
					acc.pushOrdinal(div)
				} else {
					out = append(out, token.NewOrdinal(div))
				}
				continue
			}
			if f, err := strconv.ParseFloat(w, 64); err == nil {
				flush()
				out = append(out, token.NewCardinal(f))
				continue
			}
			flush()
			out = append(out, tok)
		}
	}
	flush()
	return out
}

func orderOf(v float64) int {
	if v < 1 {
		return 0
	}
	return int(math.Floor(math.Log10(v)))
}

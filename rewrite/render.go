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

// render.go 把标记值渲染为非正式 SQL 文本片段
package rewrite

import (
	"math"
	"strconv"
	"strings"
)

// quoteIdent 用双引号包裹标识符，内部双引号翻倍转义
func quoteIdent(name string) string {
	return `"` + strings.ReplaceAll(name, `"`, `""`) + `"`
}

// quoteString 用单引号包裹字符串字面量，内部单引号翻倍转义
func quoteString(s string) string {
	return "'" + strings.ReplaceAll(s, "'", "''") + "'"
}

// renderNumber 把数值渲染为十进制文本。
// 先收敛到 12 位有效数字，消除单位换算引入的浮点误差，
// 29 * 0.001 因此渲染为 0.029 而不是 0.028999999999999998。
func renderNumber(v float64) string {
	return strconv.FormatFloat(roundSig(v), 'f', -1, 64)
}

func roundSig(v float64) float64 {
	if v == 0 || math.IsInf(v, 0) || math.IsNaN(v) {
		return v
	}
	r, err := strconv.ParseFloat(strconv.FormatFloat(v, 'g', 12, 64), 64)
	if err != nil {
		return v
	}
	return r
}

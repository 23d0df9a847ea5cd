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

package rewrite

// State 是贯穿所有规则动作的可变累加器。每次转换独占一个实例，
// 规则动作向里面收集子句片段，最后由装配器拼成非正式 SQL。
type State struct {
	// Columns 显式 SELECT 列，已渲染为 SQL 文本
	Columns []string
	// From 目标表
	From []string
	// GroupBy / OrderBy 子句片段
	GroupBy []string
	OrderBy []string
	// Where / Having 以 " AND x" / " OR x" 形式累加的字符串
	Where  string
	Having string
	// Limit 为 0 表示未设置
	Limit int
	// ColumnsUsed 出现过的普通列引用，没有显式 SELECT 列时充当隐式投影
	ColumnsUsed []string
	// Reverse 由 LIMIT 方向词置位，反转 ORDER BY 的升降序
	Reverse  bool
	Distinct bool
	// Hints 观察到的聚合提示和列所属表提示，按出现顺序去重
	Hints []string
}

func NewState() *State {
	return &State{}
}

func (st *State) addColumn(c string)     { st.Columns = appendUnique(st.Columns, c) }
func (st *State) addFrom(f string)       { st.From = appendUnique(st.From, f) }
func (st *State) addGroupBy(g string)    { st.GroupBy = appendUnique(st.GroupBy, g) }
func (st *State) addOrderBy(o string)    { st.OrderBy = appendUnique(st.OrderBy, o) }
func (st *State) addColumnUsed(c string) { st.ColumnsUsed = appendUnique(st.ColumnsUsed, c) }
func (st *State) addHint(h string)       { st.Hints = appendUnique(st.Hints, h) }

// appendUnique 保序去重追加
func appendUnique(list []string, v string) []string {
	for _, item := range list {
		if item == v {
			return list
		}
	}
	return append(list, v)
}

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

/*
Package nl2sql 把英文问句转换为SQL，分非正式和正式两个阶段。

非正式阶段把自然语言变成结构上合法、名字上随意的SELECT语句：
数词折叠（"twenty nine" 变 29）、质量单位换算到克、保留词标注、
领域实体并发解析，再经过定点规则改写拼出带双引号标识符的SQL。
正式阶段把非正式SQL解析为AST，通过调用方的解析回调把随意的
表名列名替换为真实模式里的名字，多值结果在SELECT列表扇出，
sum和avg提示折叠为算术表达式，最后按配置收紧LIMIT。

# 核心特性

• 两段式转换 - 非正式SQL可展示给用户确认，再正式化执行
• 并发解析 - 实体解析和子句正式化都通过回调并发进行
• 幂等正式化 - 正式SQL重新正式化输出不变，可安全重放
• 行过滤器 - WHERE子句可编译为内存行过滤器预筛数据

# 入门示例

	package main

	import (
		"fmt"

		"github.com/rulego/nl2sql"
		"github.com/rulego/nl2sql/entity"
	)

	func main() {
		conv := nl2sql.New(nl2sql.WithDefaultTable("FOOD"))

		// 领域实体解析回调，按单词窗口识别表和列
		matcher := func(words []string) (*entity.Match, error) {
			switch words[0] {
			case "food":
				return &entity.Match{Type: "table", Value: "FOOD", Length: 1}, nil
			case "protein":
				return &entity.Match{Type: "column", Value: "PROTEIN", Length: 1}, nil
			}
			return nil, nil
		}

		informal, err := conv.ToInformalSQL(
			"show food with protein above twenty", matcher)
		if err != nil {
			panic(err)
		}
		// SELECT "PROTEIN" FROM "FOOD" WHERE ("PROTEIN" > 20)
		fmt.Println(informal)
	}

正式化把非正式名字换成真实模式名：

	resolver := func(name, clause, hint, from string) ([]string, error) {
		// 查询模式元数据，返回候选名字或字面值
		return []string{"protein_g"}, nil
	}
	formal, err := conv.ToFormalSQL(informal, resolver)

# 包结构

  - lexer: 把问句切成单词、数字和引号字符串记号
  - numeral: 英文数词折叠为数字，序数词表示除法
  - unit: 质量单位换算到克
  - vocab: SQL保留词和操作符短语标注
  - entity: 领域实体的并发窗口解析
  - rewrite: 定点规则改写引擎和非正式SQL拼装
  - grammar: SELECT语句解析和带引号标识符的序列化
  - formal: AST正式化、扇出、折叠、WHERE骨架拼接
  - condition: WHERE子句编译为内存行过滤器
  - logger: 日志接口和默认实现
*/
package nl2sql

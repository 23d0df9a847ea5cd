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

// Package rewrite 实现级联重写管线：固定顺序的阶段依次吃掉
// 标记流里的语法线索，把子句片段收进累加器，最后装配出非正式 SQL。
package rewrite

import (
	"github.com/rulego/nl2sql/logger"
	"github.com/rulego/nl2sql/token"
)

// Run 对已完成实体识别的标记流执行全部重写阶段并装配结果。
// 阶段结束后残留的标记被丢弃，装配只依赖累加器。
func Run(tokens []token.Token, opts Options, log logger.Logger) string {
	if log == nil {
		log = logger.GetDefault()
	}
	st := NewState()
	for _, stage := range stages {
		tokens = stage.apply(st, tokens)
		log.Debug("rewrite stage %s done, %d tokens remain", stage.Name, len(tokens))
	}
	return st.Assemble(opts)
}

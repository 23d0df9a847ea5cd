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
	"io"

	"github.com/rulego/nl2sql/logger"
)

// Option 表示对Converter默认行为的修改配置。
// 通过函数式选项模式，用户可以灵活地配置转换器的各种行为。
type Option func(*Converter)

// WithDefaultTable 设置缺省表名。
// 当问句没有提到任何表时，非正式SQL的FROM子句回退到这个表；
// 正式化阶段FROM解析不出表时同样回退。
//
// 示例:
//
//	conv := nl2sql.New(nl2sql.WithDefaultTable("compositions"))
func WithDefaultTable(table string) Option {
	return func(c *Converter) {
		c.defaultTable = table
	}
}

// WithHintColumns 设置聚合提示对应的缺省投影列。
// 当SELECT列表为空且问句带有sum、avg等聚合提示时，
// 按提示名补上这里配置的列。
//
// 示例:
//
//	conv := nl2sql.New(nl2sql.WithHintColumns(map[string][]string{
//	    "sum": {"name"},
//	    "avg": {"name"},
//	}))
func WithHintColumns(hints map[string][]string) Option {
	return func(c *Converter) {
		c.hintColumns = hints
	}
}

// WithDefaultLimit 设置正式化阶段的缺省行数上限。
// 没有LIMIT子句的语句会被注入这个上限，0表示不注入。
//
// 示例:
//
//	conv := nl2sql.New(nl2sql.WithDefaultLimit(100))
func WithDefaultLimit(limit int) Option {
	return func(c *Converter) {
		c.defaultLimit = limit
	}
}

// WithTableLimits 按表设置行数上限，优先于缺省上限。
// 已有的LIMIT超过上限时被收紧，不超过时保持不变。
//
// 示例:
//
//	conv := nl2sql.New(nl2sql.WithTableLimits(map[string]int{
//	    "compositions": 500,
//	}))
func WithTableLimits(limits map[string]int) Option {
	return func(c *Converter) {
		c.tableLimits = limits
	}
}

// WithLogger 设置自定义日志记录器。
// 允许用户提供自己的日志实现，支持不同的日志后端和格式。
//
// 示例:
//
//	customLogger := logger.NewLogger(logger.DEBUG, os.Stderr)
//	conv := nl2sql.New(nl2sql.WithLogger(customLogger))
func WithLogger(log logger.Logger) Option {
	return func(c *Converter) {
		c.log = log
	}
}

// WithLogLevel 设置日志级别。
// 这是设置日志级别的便捷方法，使用默认的日志输出目标。
//
// 示例:
//
//	conv := nl2sql.New(nl2sql.WithLogLevel(logger.DEBUG))
func WithLogLevel(level logger.Level) Option {
	return func(c *Converter) {
		logger.GetDefault().SetLevel(level)
	}
}

// WithLogOutput 设置日志输出目标。
// 允许用户指定日志输出到文件、标准输出或其他io.Writer。
//
// 示例:
//
//	logFile, _ := os.OpenFile("nl2sql.log", os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
//	conv := nl2sql.New(nl2sql.WithLogOutput(logFile, logger.INFO))
func WithLogOutput(output io.Writer, level logger.Level) Option {
	return func(c *Converter) {
		c.log = logger.NewLogger(level, output)
	}
}

// WithDiscardLog 禁用所有日志输出。
// 这是完全关闭日志的便捷方法。
//
// 示例:
//
//	conv := nl2sql.New(nl2sql.WithDiscardLog())
func WithDiscardLog() Option {
	return func(c *Converter) {
		c.log = logger.NewDiscardLogger()
	}
}

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

// Package logger 是 nl2sql 的日志抽象：分级过滤，输出目标可配置。
// 转换管道的各个阶段通过 Debug 打印改写轨迹。
package logger

import (
	"fmt"
	"io"
	"log"
	"os"
	"time"
)

// Level 日志级别
type Level int

const (
	// DEBUG 调试级别，输出阶段轨迹
	DEBUG Level = iota
	// INFO 信息级别
	INFO
	// WARN 警告级别
	WARN
	// ERROR 错误级别
	ERROR
	// OFF 关闭日志
	OFF
)

// String 返回级别的字符串表示
func (l Level) String() string {
	switch l {
	case DEBUG:
		return "DEBUG"
	case INFO:
		return "INFO"
	case WARN:
		return "WARN"
	case ERROR:
		return "ERROR"
	case OFF:
		return "OFF"
	default:
		return "UNKNOWN"
	}
}

// Logger 是日志记录接口，参数按 fmt 格式化
type Logger interface {
	Debug(format string, args ...interface{})
	Info(format string, args ...interface{})
	Warn(format string, args ...interface{})
	Error(format string, args ...interface{})
	// SetLevel 调整级别，低于级别的日志被丢弃
	SetLevel(level Level)
}

type defaultLogger struct {
	level  Level
	logger *log.Logger
}

// NewLogger 创建一个写到 output 的分级日志器。
//
// 示例:
//
//	log := logger.NewLogger(logger.INFO, os.Stdout)
//	log.Info("conversion started")
func NewLogger(level Level, output io.Writer) Logger {
	return &defaultLogger{
		level: level,
		// 时间戳和级别标签自己拼，不用标准库前缀
		logger: log.New(output, "", 0),
	}
}

func (l *defaultLogger) Debug(format string, args ...interface{}) {
	if l.level <= DEBUG {
		l.log(DEBUG, format, args...)
	}
}

func (l *defaultLogger) Info(format string, args ...interface{}) {
	if l.level <= INFO {
		l.log(INFO, format, args...)
	}
}

func (l *defaultLogger) Warn(format string, args ...interface{}) {
	if l.level <= WARN {
		l.log(WARN, format, args...)
	}
}

func (l *defaultLogger) Error(format string, args ...interface{}) {
	if l.level <= ERROR {
		l.log(ERROR, format, args...)
	}
}

func (l *defaultLogger) SetLevel(level Level) {
	l.level = level
}

func (l *defaultLogger) log(level Level, format string, args ...interface{}) {
	if l.level == OFF {
		return
	}
	timestamp := time.Now().Format("2006-01-02 15:04:05.000")
	l.logger.Println(fmt.Sprintf("[%s] [%s] %s", timestamp, level.String(), fmt.Sprintf(format, args...)))
}

// discardLogger 丢弃所有日志
type discardLogger struct{}

// NewDiscardLogger 创建一个丢弃所有输出的日志器，用于安静场景
func NewDiscardLogger() Logger {
	return &discardLogger{}
}

func (d *discardLogger) Debug(format string, args ...interface{}) {}
func (d *discardLogger) Info(format string, args ...interface{})  {}
func (d *discardLogger) Warn(format string, args ...interface{})  {}
func (d *discardLogger) Error(format string, args ...interface{}) {}
func (d *discardLogger) SetLevel(level Level)                     {}

var defaultInstance Logger = NewLogger(INFO, os.Stdout)

// SetDefault 设置全局默认日志器
func SetDefault(logger Logger) {
	defaultInstance = logger
}

// GetDefault 返回全局默认日志器，
// 转换入口在没有显式配置日志器时回退到它
func GetDefault() Logger {
	return defaultInstance
}

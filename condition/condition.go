package condition

import (
	"fmt"

	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"
)

// Condition 是编译好的行过滤器，env 通常是一行数据的 map
type Condition interface {
	Evaluate(env interface{}) bool
}

type ExprCondition struct {
	program *vm.Program
}

// NewExprCondition 把 expr 表达式编译为过滤器。
// 注册 like_match 自定义函数做 LIKE 匹配，允许未定义变量，
// 这样缺少某列的行按不匹配处理而不是报错。
func NewExprCondition(expression string) (Condition, error) {
	options := []expr.Option{
		expr.Function("like_match", func(params ...any) (any, error) {
			if len(params) != 2 {
				return false, fmt.Errorf("like_match function requires 2 parameters")
			}
			text, ok1 := params[0].(string)
			pattern, ok2 := params[1].(string)
			if !ok1 || !ok2 {
				return false, fmt.Errorf("like_match function requires string parameters")
			}
			return matchesLikePattern(text, pattern), nil
		}),
		expr.AllowUndefinedVariables(),
		expr.AsBool(),
	}

	program, err := expr.Compile(expression, options...)
	if err != nil {
		return nil, err
	}
	return &ExprCondition{program: program}, nil
}

// Evaluate 对一行数据求值，求值出错按不匹配处理
func (ec *ExprCondition) Evaluate(env interface{}) bool {
	result, err := expr.Run(ec.program, env)
	if err != nil {
		return false
	}
	b, ok := result.(bool)
	return ok && b
}

// matchesLikePattern 实现SQL的LIKE模式匹配：
// % 匹配任意字符序列（含空），_ 匹配单个字符
func matchesLikePattern(text, pattern string) bool {
	return likeMatch(text, pattern, 0, 0)
}

func likeMatch(text, pattern string, ti, pi int) bool {
	if pi >= len(pattern) {
		return ti >= len(text)
	}
	if ti >= len(text) {
		// 文本耗尽后模式剩余部分必须全是 %
		for i := pi; i < len(pattern); i++ {
			if pattern[i] != '%' {
				return false
			}
		}
		return true
	}

	switch pattern[pi] {
	case '%':
		// 先试匹配零个字符，再逐个扩大窗口
		if likeMatch(text, pattern, ti, pi+1) {
			return true
		}
		for i := ti; i < len(text); i++ {
			if likeMatch(text, pattern, i+1, pi+1) {
				return true
			}
		}
		return false
	case '_':
		return likeMatch(text, pattern, ti+1, pi+1)
	default:
		return text[ti] == pattern[pi] && likeMatch(text, pattern, ti+1, pi+1)
	}
}

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

// token.go 定义了两级标记模型：词法单元按"族 + 变体"分类。
// 重写规则既可以按族匹配（族内任意变体），也可以按精确变体匹配，
// 这种双粒度是规则表保持声明式的关键。
package token

import "github.com/spf13/cast"

// Family 表示标记所属的族
type Family uint8

const (
	FamilyNone Family = iota
	// FamilyText 普通文本族：单词和引号包裹的片段
	FamilyText
	// FamilyNumber 数字族：基数词和序数词
	FamilyNumber
	// FamilyUnit 计量单位族
	FamilyUnit
	// FamilyEntity 实体族：表、列、行引用
	FamilyEntity
	// FamilyBracket 括号族
	FamilyBracket
	// FamilySeparator 分隔符族
	FamilySeparator
	// FamilyOperator 操作符族：一元、二元、三元
	FamilyOperator
	// FamilyFunction 函数族
	FamilyFunction
	// FamilyKeyword 关键字族
	FamilyKeyword
	// FamilyExpression 表达式族：已折叠的表达式、值、布尔表达式
	FamilyExpression
)

// Variant 表示族内的精确变体。Any 表示按族粒度匹配。
type Variant uint8

const (
	Any Variant = iota

	// FamilyText
	Word
	Quoted

	// FamilyNumber
	Cardinal
	Ordinal

	// FamilyUnit
	Mass

	// FamilyEntity
	Table
	Column
	Row

	// FamilyBracket
	Open
	Close

	// FamilySeparator
	Comma

	// FamilyOperator
	Unary
	Binary
	Ternary

	// FamilyFunction
	Call

	// FamilyKeyword
	Select
	From
	Where
	Having
	GroupBy
	OrderBy
	Limit
	Distinct
	All
	As
	Null
	Asc
	Desc
	NullsOrder
	Hint
	Groups

	// FamilyExpression
	Expr
	Value
	Boolean
)

// Type 是标记的两级类型标签
type Type struct {
	Family  Family
	Variant Variant
}

// Matches 判断 other 是否落入 t 描述的类别。
// t.Variant 为 Any 时按族匹配，否则要求变体也一致。
func (t Type) Matches(other Type) bool {
	if t.Family != other.Family {
		return false
	}
	return t.Variant == Any || t.Variant == other.Variant
}

// Is 判断类型是否属于给定的族
func (t Type) Is(f Family) bool {
	return t.Family == f
}

// Token 是一个词法单元。Value 可以是文本、数值或布尔值，
// Hint 是可选的附加信息（列实体的所属表、limit 词隐含的排序方向等）。
type Token struct {
	Type  Type
	Value interface{}
	Hint  string
}

// Text 以字符串形式返回标记值
func (t Token) Text() string {
	return cast.ToString(t.Value)
}

// Number 以 float64 形式返回标记值，非数值返回 0
func (t Token) Number() float64 {
	return cast.ToFloat64(t.Value)
}

// Is 判断标记是否属于给定的族
func (t Token) Is(f Family) bool {
	return t.Type.Family == f
}

// IsVariant 判断标记是否为给定族的精确变体
func (t Token) IsVariant(f Family, v Variant) bool {
	return t.Type.Family == f && t.Type.Variant == v
}

// 常用构造函数。词法器、归一化器和规则动作都通过它们生成标记。

// NewWord 构造一个普通单词标记
func NewWord(s string) Token {
	return Token{Type: Type{FamilyText, Word}, Value: s}
}

// NewQuoted 构造一个引号片段标记
func NewQuoted(s string) Token {
	return Token{Type: Type{FamilyText, Quoted}, Value: s}
}

// NewCardinal 构造一个基数标记
func NewCardinal(v float64) Token {
	return Token{Type: Type{FamilyNumber, Cardinal}, Value: v}
}

// NewOrdinal 构造一个序数标记，值为除数（third -> 3）
func NewOrdinal(v float64) Token {
	return Token{Type: Type{FamilyNumber, Ordinal}, Value: v}
}

// NewMass 构造一个质量单位标记，值为相对克的换算系数
func NewMass(scale float64) Token {
	return Token{Type: Type{FamilyUnit, Mass}, Value: scale}
}

// NewEntity 构造一个实体标记
func NewEntity(v Variant, value, hint string) Token {
	return Token{Type: Type{FamilyEntity, v}, Value: value, Hint: hint}
}

// NewKeyword 构造一个关键字标记
func NewKeyword(v Variant, value string) Token {
	return Token{Type: Type{FamilyKeyword, v}, Value: value}
}

// NewOperator 构造一个操作符标记
func NewOperator(v Variant, op string) Token {
	return Token{Type: Type{FamilyOperator, v}, Value: op}
}

// NewFunction 构造一个函数标记
func NewFunction(name string) Token {
	return Token{Type: Type{FamilyFunction, Call}, Value: name}
}

// NewValue 构造一个已渲染为 SQL 文本的值标记
func NewValue(sql string) Token {
	return Token{Type: Type{FamilyExpression, Value}, Value: sql}
}

// NewExpr 构造一个已折叠的标量表达式标记
func NewExpr(sql string) Token {
	return Token{Type: Type{FamilyExpression, Expr}, Value: sql}
}

// NewBoolean 构造一个布尔表达式标记
func NewBoolean(sql string) Token {
	return Token{Type: Type{FamilyExpression, Boolean}, Value: sql}
}

// NewBracket 构造一个括号标记
func NewBracket(v Variant, s string) Token {
	return Token{Type: Type{FamilyBracket, v}, Value: s}
}

// NewSeparator 构造一个分隔符标记
func NewSeparator(s string) Token {
	return Token{Type: Type{FamilySeparator, Comma}, Value: s}
}

// IsScalar 判断标记是否为可参与标量运算的表达式（值或已折叠表达式）
func (t Token) IsScalar() bool {
	return t.Type.Family == FamilyExpression &&
		(t.Type.Variant == Value || t.Type.Variant == Expr)
}

// IsBoolean 判断标记是否为布尔表达式
func (t Token) IsBoolean() bool {
	return t.IsVariant(FamilyExpression, Boolean)
}

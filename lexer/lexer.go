// Package lexer 将原始英文文本切分为扁平的标记序列：
// 连续的单词字符合并为一个 Text 标记，成对引号（' " `）之间的内容
// 合并为一个 Quoted 标记，其余非空白字符各自成为单字符 Text 标记。
// 空白只起分隔作用，不产生标记。
package lexer

import (
	"unicode"

	"github.com/rulego/nl2sql/token"
)

// Lexer 逐字符扫描输入文本
type Lexer struct {
	input   []rune
	pos     int
	readPos int
	ch      rune
}

// New 创建一个词法器
func New(input string) *Lexer {
	l := &Lexer{input: []rune(input)}
	l.readChar()
	return l
}

// Tokenize 扫描整段文本并返回全部标记。
// 序列是有限且有序的；重扫时总是从完整字符串重新开始。
func Tokenize(input string) []token.Token {
	l := New(input)
	var tokens []token.Token
	for {
		tok, ok := l.next()
		if !ok {
			break
		}
		tokens = append(tokens, tok)
	}
	return tokens
}

func (l *Lexer) next() (token.Token, bool) {
	l.skipWhitespace()

	switch {
	case l.ch == 0:
		return token.Token{}, false
	case isQuote(l.ch):
		if tok, ok := l.readQuoted(l.ch); ok {
			return tok, true
		}
		// 未闭合的引号静默回退为普通文本模式：
		// 丢弃引号字符本身，从下一个字符继续。
		l.readChar()
		return l.next()
	case isWordChar(l.ch):
		return token.NewWord(l.readWord()), true
	default:
		ch := l.ch
		l.readChar()
		// 标点和 SQL 语法字符以单字符 Text 标记进入流
		return token.NewWord(string(ch)), true
	}
}

func (l *Lexer) readChar() {
	if l.readPos >= len(l.input) {
		l.ch = 0
	} else {
		l.ch = l.input[l.readPos]
	}
	l.pos = l.readPos
	l.readPos++
}

func (l *Lexer) skipWhitespace() {
	for l.ch == ' ' || l.ch == '\t' || l.ch == '\n' || l.ch == '\r' {
		l.readChar()
	}
}

func (l *Lexer) readWord() string {
	start := l.pos
	for isWordChar(l.ch) {
		l.readChar()
	}
	// 纯数字后紧跟小数点和数字时并入同一标记，
	// 这样 "29.5" 之类的文本才能被数词归一化识别为浮点数
	if l.ch == '.' && allDigits(l.input[start:l.pos]) && isDigit(l.peek()) {
		l.readChar()
		for isDigit(l.ch) {
			l.readChar()
		}
	}
	return string(l.input[start:l.pos])
}

func (l *Lexer) peek() rune {
	if l.readPos >= len(l.input) {
		return 0
	}
	return l.input[l.readPos]
}

func allDigits(rs []rune) bool {
	if len(rs) == 0 {
		return false
	}
	for _, r := range rs {
		if !isDigit(r) {
			return false
		}
	}
	return true
}

func isDigit(ch rune) bool {
	return ch >= '0' && ch <= '9'
}

// readQuoted 读取由 quote 开启的片段。开启引号必须由同一字符闭合；
// 找不到闭合引号时返回 false，由调用方回退。
func (l *Lexer) readQuoted(quote rune) (token.Token, bool) {
	closing := -1
	for i := l.readPos; i < len(l.input); i++ {
		if l.input[i] == quote {
			closing = i
			break
		}
	}
	if closing < 0 {
		return token.Token{}, false
	}

	value := string(l.input[l.readPos:closing])
	for l.pos < closing+1 && l.ch != 0 {
		l.readChar()
	}
	return token.NewQuoted(value), true
}

func isWordChar(ch rune) bool {
	return unicode.IsLetter(ch) || unicode.IsDigit(ch) || ch == '_'
}

func isQuote(ch rune) bool {
	return ch == '\'' || ch == '"' || ch == '`'
}

// words.go 是保留词表：纯数据，不含任何匹配逻辑
package vocab

import "github.com/rulego/nl2sql/token"

// phrases 是多词短语表，按词数从长到短匹配。
// 同一个前缀的长短语必须排在短语之前（"to the power of" 在 "power" 前）。
var phrases = []phrase{
	{[]string{"to", "the", "power", "of"}, token.NewOperator(token.Binary, "^")},
	{[]string{"greater", "than", "or", "equal", "to"}, token.NewOperator(token.Binary, ">=")},
	{[]string{"less", "than", "or", "equal", "to"}, token.NewOperator(token.Binary, "<=")},

	{[]string{"less", "than"}, token.NewOperator(token.Binary, "<")},
	{[]string{"greater", "than"}, token.NewOperator(token.Binary, ">")},
	{[]string{"more", "than"}, token.NewOperator(token.Binary, ">")},
	{[]string{"at", "least"}, token.NewOperator(token.Binary, ">=")},
	{[]string{"at", "most"}, token.NewOperator(token.Binary, "<=")},
	{[]string{"is", "not"}, token.NewOperator(token.Binary, "<>")},
	{[]string{"not", "equal"}, token.NewOperator(token.Binary, "<>")},
	{[]string{"divided", "by"}, token.NewOperator(token.Binary, "/")},

	{[]string{"order", "by"}, token.NewKeyword(token.OrderBy, "ORDER BY")},
	{[]string{"ordered", "by"}, token.NewKeyword(token.OrderBy, "ORDER BY")},
	{[]string{"sorted", "by"}, token.NewKeyword(token.OrderBy, "ORDER BY")},
	{[]string{"sort", "by"}, token.NewKeyword(token.OrderBy, "ORDER BY")},
	{[]string{"group", "by"}, token.NewKeyword(token.GroupBy, "GROUP BY")},
	{[]string{"grouped", "by"}, token.NewKeyword(token.GroupBy, "GROUP BY")},

	// 标点对：拆成单字符标记的复合运算符在这里拼回
	{[]string{"<", "="}, token.NewOperator(token.Binary, "<=")},
	{[]string{">", "="}, token.NewOperator(token.Binary, ">=")},
	{[]string{"<", ">"}, token.NewOperator(token.Binary, "<>")},
	{[]string{"!", "="}, token.NewOperator(token.Binary, "<>")},
}

// singles 是单词表，键为小写单词或单字符标点
var singles = map[string]token.Token{
	// 子句关键字
	"show":    token.NewKeyword(token.Select, "SELECT"),
	"select":  token.NewKeyword(token.Select, "SELECT"),
	"display": token.NewKeyword(token.Select, "SELECT"),
	"list":    token.NewKeyword(token.Select, "SELECT"),
	"find":    token.NewKeyword(token.Select, "SELECT"),
	"get":     token.NewKeyword(token.Select, "SELECT"),

	"from": token.NewKeyword(token.From, "FROM"),
	"in":   token.NewKeyword(token.From, "FROM"),

	"where": token.NewKeyword(token.Where, "WHERE"),
	"with":  token.NewKeyword(token.Where, "WHERE"),
	"whose": token.NewKeyword(token.Where, "WHERE"),

	"having": token.NewKeyword(token.Having, "HAVING"),

	"limit":  token.NewKeyword(token.Limit, "limit"),
	"first":  token.NewKeyword(token.Limit, "first"),
	"top":    hinted(token.NewKeyword(token.Limit, "top"), "DESC"),
	"bottom": hinted(token.NewKeyword(token.Limit, "bottom"), "ASC"),
	"lowest": hinted(token.NewKeyword(token.Limit, "lowest"), "ASC"),
	"last":   hinted(token.NewKeyword(token.Limit, "last"), "ASC"),

	"distinct":  token.NewKeyword(token.Distinct, "DISTINCT"),
	"unique":    token.NewKeyword(token.Distinct, "DISTINCT"),
	"different": token.NewKeyword(token.Distinct, "DISTINCT"),

	"all":   token.NewKeyword(token.All, "all"),
	"every": token.NewKeyword(token.All, "all"),
	"each":  token.NewKeyword(token.All, "all"),

	"as":     token.NewKeyword(token.As, "AS"),
	"called": token.NewKeyword(token.As, "AS"),
	"named":  token.NewKeyword(token.As, "AS"),

	"null":    token.NewKeyword(token.Null, "NULL"),
	"nulls":   token.NewKeyword(token.Null, "NULL"),
	"nothing": token.NewKeyword(token.Null, "NULL"),
	"none":    token.NewKeyword(token.Null, "NULL"),
	"nil":     token.NewKeyword(token.Null, "NULL"),

	"ascending":  token.NewKeyword(token.Asc, "ASC"),
	"asc":        token.NewKeyword(token.Asc, "ASC"),
	"increasing": token.NewKeyword(token.Asc, "ASC"),
	"descending": token.NewKeyword(token.Desc, "DESC"),
	"desc":       token.NewKeyword(token.Desc, "DESC"),
	"decreasing": token.NewKeyword(token.Desc, "DESC"),

	"groups": token.NewKeyword(token.Groups, "groups"),

	// 聚合提示词
	"sum":     token.NewKeyword(token.Hint, "sum"),
	"total":   token.NewKeyword(token.Hint, "sum"),
	"average": token.NewKeyword(token.Hint, "avg"),
	"mean":    token.NewKeyword(token.Hint, "avg"),
	"avg":     token.NewKeyword(token.Hint, "avg"),

	// 布尔字面量
	"true":  token.NewBoolean("TRUE"),
	"yes":   token.NewBoolean("TRUE"),
	"false": token.NewBoolean("FALSE"),
	"no":    token.NewBoolean("FALSE"),

	// 逻辑运算
	"and": token.NewOperator(token.Binary, "AND"),
	"or":  token.NewOperator(token.Binary, "OR"),
	"not": token.NewOperator(token.Unary, "NOT"),

	// 比较与算术
	"is":        token.NewOperator(token.Binary, "="),
	"equals":    token.NewOperator(token.Binary, "="),
	"equal":     token.NewOperator(token.Binary, "="),
	"above":     token.NewOperator(token.Binary, ">"),
	"exceeds":   token.NewOperator(token.Binary, ">"),
	"below":     token.NewOperator(token.Binary, "<"),
	"under":     token.NewOperator(token.Binary, "<"),
	"like":      token.NewOperator(token.Binary, "LIKE"),
	"between":   token.NewOperator(token.Ternary, "BETWEEN"),
	"plus":      token.NewOperator(token.Binary, "+"),
	"minus":     token.NewOperator(token.Binary, "-"),
	"times":     token.NewOperator(token.Binary, "*"),
	"over":      token.NewOperator(token.Binary, "/"),
	"mod":       token.NewOperator(token.Binary, "%"),
	"modulo":    token.NewOperator(token.Binary, "%"),
	"negative":  token.NewOperator(token.Unary, "-"),

	// 函数
	"count":   token.NewFunction("COUNT"),
	"min":     token.NewFunction("MIN"),
	"minimum": token.NewFunction("MIN"),
	"max":     token.NewFunction("MAX"),
	"maximum": token.NewFunction("MAX"),
	"length":  token.NewFunction("LENGTH"),
	"abs":     token.NewFunction("ABS"),
	"round":   token.NewFunction("ROUND"),
	"sqrt":    token.NewFunction("SQRT"),

	// 标点
	"(": token.NewBracket(token.Open, "("),
	")": token.NewBracket(token.Close, ")"),
	",": token.NewSeparator(","),
	"<": token.NewOperator(token.Binary, "<"),
	">": token.NewOperator(token.Binary, ">"),
	"=": token.NewOperator(token.Binary, "="),
	"+": token.NewOperator(token.Binary, "+"),
	"-": token.NewOperator(token.Binary, "-"),
	"*": token.NewOperator(token.Binary, "*"),
	"/": token.NewOperator(token.Binary, "/"),
	"%": token.NewOperator(token.Binary, "%"),
	"^": token.NewOperator(token.Binary, "^"),
}

func hinted(tok token.Token, hint string) token.Token {
	tok.Hint = hint
	return tok
}

// words.go 是数词归一化使用的纯数据表
package numeral

import "math"

// wordInfo 描述一个基数词：数值、十进制数量级，以及是否为乘数词
// （hundred/thousand/million 这类把已累计的值放大的词）
type wordInfo struct {
	value      float64
	order      int
	multiplier bool
}

var cardinals = map[string]wordInfo{
	"zero":  {0, 0, false},
	"one":   {1, 0, false},
	"two":   {2, 0, false},
	"three": {3, 0, false},
	"four":  {4, 0, false},
	"five":  {5, 0, false},
	"six":   {6, 0, false},
	"seven": {7, 0, false},
	"eight": {8, 0, false},
	"nine":  {9, 0, false},

	"ten":       {10, 1, false},
	"eleven":    {11, 1, false},
	"twelve":    {12, 1, false},
	"thirteen":  {13, 1, false},
	"fourteen":  {14, 1, false},
	"fifteen":   {15, 1, false},
	"sixteen":   {16, 1, false},
	"seventeen": {17, 1, false},
	"eighteen":  {18, 1, false},
	"nineteen":  {19, 1, false},

	"twenty":  {20, 1, false},
	"thirty":  {30, 1, false},
	"forty":   {40, 1, false},
	"fifty":   {50, 1, false},
	"sixty":   {60, 1, false},
	"seventy": {70, 1, false},
	"eighty":  {80, 1, false},
	"ninety":  {90, 1, false},

	"hundred":  {100, 2, true},
	"thousand": {1000, 3, true},
	"million":  {1e6, 6, true},
	"billion":  {1e9, 9, true},
	"trillion": {1e12, 12, true},
}

// ordinals 映射序数词到除数：third 表示三分之一
var ordinals = map[string]float64{
	"half":       2,
	"third":      3,
	"quarter":    4,
	"fourth":     4,
	"fifth":      5,
	"sixth":      6,
	"seventh":    7,
	"eighth":     8,
	"ninth":      9,
	"tenth":      10,
	"twentieth":  20,
	"hundredth":  100,
	"thousandth": 1000,
}

// fractions 是纯分数词：即使没有任何累计也播种一个分数值。
// 其余序数词（third、fifth）在没有累计时可能是名次，保持为序数标记。
var fractions = map[string]bool{
	"half":    true,
	"quarter": true,
}

// decimalMarkers 结束整数部分并开启小数前缀
var decimalMarkers = map[string]bool{
	"point":   true,
	"dot":     true,
	"decimal": true,
}

// specials 立即产出终止数值标记并中断累计
var specials = map[string]float64{
	"infinity": math.Inf(1),
	"nan":      math.NaN(),
}

package xstitch

import (
	"strconv"
	"strings"
)

// symbolGlyphs are the legend symbols handed out first, in order. They
// are chosen to stay distinguishable when printed small inside a grid
// cell, and contain no hexadecimal digit so they never collide with the
// overflow symbols.
var symbolGlyphs = []string{
	"●", "■", "▲", "◆", "★", "♥", "♣", "♠", "✚", "✖",
	"○", "□", "△", "◇", "☆", "♡", "▼", "◐", "◑", "◩",
	"◒", "◓", "▣", "▤", "▥", "▦", "G", "H", "J", "K",
	"L", "M", "N", "P", "R", "S", "T", "U", "V", "W",
	"X", "Y", "Z", "#", "%", "&", "@", "=", "+", "?",
}

// SymbolFor returns the legend symbol of the i-th distinct color. Once
// the glyphs run out, symbols continue as upper-case hexadecimal
// numbers counted from zero.
func SymbolFor(i int) string {
	if i < 0 {
		return ""
	}
	if i < len(symbolGlyphs) {
		return symbolGlyphs[i]
	}
	return hexSymbol(i - len(symbolGlyphs))
}

func hexSymbol(n int) string {
	return strings.ToUpper(strconv.FormatInt(int64(n), 16))
}

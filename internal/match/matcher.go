// # internal/match/matcher.go
package match

import (
	"strings"

	"dora/internal/parser"
)

// Mode selects how a search pattern is applied to an occurrence.
type Mode string

const (
	// ModeStructural matches when the target name appears anywhere inside
	// the expression: a search for int finds List[int] and int alone.
	ModeStructural Mode = "structural"
	// ModeSubstring matches when the pattern is a substring of the
	// rendered display name.
	ModeSubstring Mode = "substring"
	// ModeExact matches when the pattern equals the display name.
	ModeExact Mode = "exact"
)

func ParseMode(s string) (Mode, bool) {
	switch Mode(s) {
	case ModeStructural, ModeSubstring, ModeExact:
		return Mode(s), true
	case "":
		return ModeStructural, true
	}
	return "", false
}

// Contains reports whether the expression structurally contains the target
// type name. Pure recursion over the closed variant set; terminates because
// expression depth is finite.
func Contains(e *parser.Expr, target string) bool {
	if e == nil {
		return false
	}

	switch e.Kind {
	case parser.KindName:
		return e.Name == target
	case parser.KindAttribute:
		// Qualification is ignored for matching, preserved for display.
		return e.Name == target
	case parser.KindConstant:
		// None in annotations like int | None is a constant node.
		return e.Name == target
	case parser.KindSubscript:
		if Contains(e.Value, target) {
			return true
		}
		return anyContains(e.Args, target)
	case parser.KindTuple, parser.KindList:
		return anyContains(e.Args, target)
	case parser.KindBinOp:
		// int | None union annotations.
		if e.Name != "|" {
			return false
		}
		return Contains(e.Left, target) || Contains(e.Right, target)
	case parser.KindCall:
		if Contains(e.Value, target) {
			return true
		}
		return anyContains(e.Args, target)
	}
	return false
}

// Occurrence applies the pattern in the given mode. An empty pattern
// matches everything.
func Occurrence(occ parser.Occurrence, pattern string, mode Mode) bool {
	if pattern == "" {
		return true
	}
	switch mode {
	case ModeSubstring:
		return strings.Contains(occ.Symbol, pattern)
	case ModeExact:
		return occ.Symbol == pattern
	default:
		return Contains(occ.Expr, pattern)
	}
}

func anyContains(args []*parser.Expr, target string) bool {
	for _, a := range args {
		if Contains(a, target) {
			return true
		}
	}
	return false
}

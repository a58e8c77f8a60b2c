// # internal/parser/types.go
package parser

import (
	"time"
)

type File struct {
	Path        string
	Lines       []string // Raw source lines for snippet rendering
	Imports     []Import
	Occurrences []Occurrence
	ParsedAt    time.Time
}

type Import struct {
	Module     string // Dotted module path as written
	Alias      string // Optional alias for "import x as y"
	Items      []ImportItem
	IsRelative bool
	Level      int // Number of leading dots for relative imports
	Location   Location
}

type ImportItem struct {
	Name  string
	Alias string
}

// Occurrence is one discovered type/symbol reference.
type Occurrence struct {
	File       string
	Line       int // 1-based
	Column     int // 0-based
	EndColumn  int // end of the matched span; Column+1 when unknown
	Symbol     string
	Kind       ExprKind
	SourceLine string
	Expr       *Expr
}

type Location struct {
	File   string
	Line   int
	Column int
}

// ExprKind is the closed set of syntactic categories an occurrence can have.
// Unrecognized node kinds map to KindUnknown instead of failing.
type ExprKind int

const (
	KindUnknown ExprKind = iota
	KindName
	KindCall
	KindAttribute
	KindSubscript
	KindConstant
	KindBinOp
	KindUnaryOp
	KindList
	KindTuple
	KindDict
	KindLambda
	KindCompare
	KindBoolOp
	KindIfExp
)

func (k ExprKind) String() string {
	switch k {
	case KindName:
		return "Name"
	case KindCall:
		return "Call"
	case KindAttribute:
		return "Attribute"
	case KindSubscript:
		return "Subscript"
	case KindConstant:
		return "Constant"
	case KindBinOp:
		return "BinOp"
	case KindUnaryOp:
		return "UnaryOp"
	case KindList:
		return "List"
	case KindTuple:
		return "Tuple"
	case KindDict:
		return "Dict"
	case KindLambda:
		return "Lambda"
	case KindCompare:
		return "Compare"
	case KindBoolOp:
		return "BoolOp"
	case KindIfExp:
		return "IfExp"
	default:
		return "Unknown"
	}
}

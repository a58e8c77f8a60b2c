// # internal/parser/expr.go
package parser

import (
	"strings"

	sitter "github.com/tree-sitter/go-tree-sitter"
)

// Expr is the language-independent expression model. Every syntax node that
// can appear in a type position is converted into one of the closed ExprKind
// variants, so matching and display rendering are exhaustive case analyses
// instead of open-ended dispatch over grammar node kinds.
type Expr struct {
	Kind  ExprKind
	Name  string // identifier, trailing attribute member, literal text, or operator
	Value *Expr  // attribute object, subscript base, call target, unary/lambda operand
	Left  *Expr
	Right *Expr
	Args  []*Expr // subscript arguments, call arguments, collection elements

	Line      int // 1-based
	Column    int // 0-based
	EndColumn int
}

// BuildExpr converts a tree-sitter python node into the Expr model.
// Returns nil for nodes with no expression meaning (comments, keywords).
func BuildExpr(node *sitter.Node, source []byte) *Expr {
	if node == nil {
		return nil
	}

	switch node.Kind() {
	case "type", "parenthesized_expression", "interpolation":
		// Transparent wrappers: positions come from the inner expression.
		for i := uint(0); i < node.NamedChildCount(); i++ {
			if e := BuildExpr(node.NamedChild(i), source); e != nil {
				return e
			}
		}
		return nil
	case "keyword_argument":
		return BuildExpr(node.ChildByFieldName("value"), source)
	}

	e := &Expr{
		Line:      int(node.StartPosition().Row) + 1,
		Column:    int(node.StartPosition().Column),
		EndColumn: int(node.StartPosition().Column) + 1,
	}
	if node.EndPosition().Row == node.StartPosition().Row {
		e.EndColumn = int(node.EndPosition().Column)
	}

	switch node.Kind() {
	case "identifier":
		e.Kind = KindName
		e.Name = text(node, source)

	case "attribute":
		e.Kind = KindAttribute
		if attr := node.ChildByFieldName("attribute"); attr != nil {
			e.Name = text(attr, source)
		}
		e.Value = BuildExpr(node.ChildByFieldName("object"), source)

	case "subscript":
		e.Kind = KindSubscript
		e.Value = BuildExpr(node.ChildByFieldName("value"), source)
		for i := uint(0); i < node.NamedChildCount(); i++ {
			child := node.NamedChild(i)
			if valueNode := node.ChildByFieldName("value"); valueNode != nil && child.StartByte() == valueNode.StartByte() {
				continue
			}
			if arg := BuildExpr(child, source); arg != nil {
				e.Args = append(e.Args, arg)
			}
		}

	case "generic_type":
		// A subscripted type in annotation position parses as generic_type
		// wrapping an identifier or attribute plus a type_parameter list,
		// not as a subscript node.
		e.Kind = KindSubscript
		for i := uint(0); i < node.NamedChildCount(); i++ {
			child := node.NamedChild(i)
			if child.Kind() == "type_parameter" {
				for j := uint(0); j < child.NamedChildCount(); j++ {
					if arg := BuildExpr(child.NamedChild(j), source); arg != nil {
						e.Args = append(e.Args, arg)
					}
				}
				continue
			}
			if e.Value == nil {
				e.Value = BuildExpr(child, source)
			}
		}

	case "call":
		e.Kind = KindCall
		e.Value = BuildExpr(node.ChildByFieldName("function"), source)
		if args := node.ChildByFieldName("arguments"); args != nil {
			for i := uint(0); i < args.NamedChildCount(); i++ {
				if arg := BuildExpr(args.NamedChild(i), source); arg != nil {
					e.Args = append(e.Args, arg)
				}
			}
		}

	case "string", "concatenated_string", "integer", "float":
		e.Kind = KindConstant
		e.Name = text(node, source)
	case "true":
		e.Kind = KindConstant
		e.Name = "True"
	case "false":
		e.Kind = KindConstant
		e.Name = "False"
	case "none":
		e.Kind = KindConstant
		e.Name = "None"
	case "ellipsis":
		e.Kind = KindConstant
		e.Name = "..."

	case "binary_operator":
		e.Kind = KindBinOp
		if op := node.ChildByFieldName("operator"); op != nil {
			e.Name = text(op, source)
		}
		e.Left = BuildExpr(node.ChildByFieldName("left"), source)
		e.Right = BuildExpr(node.ChildByFieldName("right"), source)

	case "unary_operator", "not_operator":
		e.Kind = KindUnaryOp
		if op := node.ChildByFieldName("operator"); op != nil {
			e.Name = text(op, source)
		}
		if arg := node.ChildByFieldName("argument"); arg != nil {
			e.Value = BuildExpr(arg, source)
		}

	case "list", "set":
		e.Kind = KindList
		e.Args = namedChildExprs(node, source)

	case "tuple", "expression_list":
		e.Kind = KindTuple
		e.Args = namedChildExprs(node, source)

	case "dictionary":
		e.Kind = KindDict
		for i := uint(0); i < node.NamedChildCount(); i++ {
			pair := node.NamedChild(i)
			if pair.Kind() != "pair" {
				continue
			}
			if k := BuildExpr(pair.ChildByFieldName("key"), source); k != nil {
				e.Args = append(e.Args, k)
			}
			if v := BuildExpr(pair.ChildByFieldName("value"), source); v != nil {
				e.Args = append(e.Args, v)
			}
		}

	case "lambda":
		e.Kind = KindLambda
		e.Value = BuildExpr(node.ChildByFieldName("body"), source)

	case "comparison_operator":
		e.Kind = KindCompare
		e.Args = namedChildExprs(node, source)

	case "boolean_operator":
		e.Kind = KindBoolOp
		if op := node.ChildByFieldName("operator"); op != nil {
			e.Name = text(op, source)
		}
		e.Left = BuildExpr(node.ChildByFieldName("left"), source)
		e.Right = BuildExpr(node.ChildByFieldName("right"), source)

	case "conditional_expression":
		e.Kind = KindIfExp
		e.Args = namedChildExprs(node, source)

	default:
		e.Kind = KindUnknown
		e.Name = node.Kind()
	}

	return e
}

// Display renders the fully qualified form of a composite type expression,
// e.g. Outer[Inner] or pkg.Type, matching the original source syntax.
// Kinds with no type-level rendering yield "".
func (e *Expr) Display() string {
	if e == nil {
		return ""
	}
	switch e.Kind {
	case KindName:
		return e.Name
	case KindAttribute:
		base := e.Value.Display()
		if base == "" {
			return e.Name
		}
		return base + "." + e.Name
	case KindSubscript:
		return e.Value.Display() + "[" + joinDisplays(e.Args) + "]"
	case KindTuple, KindList:
		return joinDisplays(e.Args)
	case KindConstant:
		return e.Name
	case KindCall:
		return e.Value.Display()
	case KindBinOp:
		left, right := e.Left.Display(), e.Right.Display()
		if left == "" || right == "" {
			return ""
		}
		return left + " " + e.Name + " " + right
	default:
		return ""
	}
}

// Parts returns the immediate constituents of a composite type expression,
// mirroring the decomposition the matcher applies. Leaf kinds have none.
func (e *Expr) Parts() []*Expr {
	if e == nil {
		return nil
	}
	switch e.Kind {
	case KindSubscript:
		parts := make([]*Expr, 0, len(e.Args)+1)
		if e.Value != nil {
			parts = append(parts, e.Value)
		}
		return append(parts, e.Args...)
	case KindTuple, KindList:
		return e.Args
	case KindBinOp:
		var parts []*Expr
		if e.Left != nil {
			parts = append(parts, e.Left)
		}
		if e.Right != nil {
			parts = append(parts, e.Right)
		}
		return parts
	case KindCall:
		parts := make([]*Expr, 0, len(e.Args)+1)
		if e.Value != nil {
			parts = append(parts, e.Value)
		}
		return append(parts, e.Args...)
	default:
		return nil
	}
}

// Head returns the leading identifier of an expression, the name whose
// import origin determines where a composite reference was defined.
func (e *Expr) Head() string {
	if e == nil {
		return ""
	}
	switch e.Kind {
	case KindName:
		return e.Name
	case KindAttribute, KindSubscript, KindCall, KindUnaryOp, KindLambda:
		return e.Value.Head()
	default:
		return ""
	}
}

func namedChildExprs(node *sitter.Node, source []byte) []*Expr {
	var out []*Expr
	for i := uint(0); i < node.NamedChildCount(); i++ {
		if e := BuildExpr(node.NamedChild(i), source); e != nil {
			out = append(out, e)
		}
	}
	return out
}

func joinDisplays(args []*Expr) string {
	parts := make([]string, 0, len(args))
	for _, a := range args {
		parts = append(parts, a.Display())
	}
	return strings.Join(parts, ", ")
}

func text(node *sitter.Node, source []byte) string {
	return string(source[node.StartByte():node.EndByte()])
}

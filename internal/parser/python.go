// # internal/parser/python.go
package parser

import (
	"strings"
	"time"

	sitter "github.com/tree-sitter/go-tree-sitter"
)

// PythonIndexer walks one parsed file and emits the ordered list of
// type/expression occurrences, plus the file's import statements.
type PythonIndexer struct {
	// EmitParts controls whether a composite type expression (List[int],
	// int | None) is emitted together with its decomposed parts or alone.
	EmitParts bool
}

// exprNodeKinds are the grammar nodes recorded as standalone expressions.
var exprNodeKinds = map[string]bool{
	"identifier":             true,
	"call":                   true,
	"attribute":              true,
	"subscript":              true,
	"string":                 true,
	"concatenated_string":    true,
	"integer":                true,
	"float":                  true,
	"true":                   true,
	"false":                  true,
	"none":                   true,
	"binary_operator":        true,
	"unary_operator":         true,
	"not_operator":           true,
	"list":                   true,
	"set":                    true,
	"tuple":                  true,
	"dictionary":             true,
	"lambda":                 true,
	"comparison_operator":    true,
	"boolean_operator":       true,
	"conditional_expression": true,
}

func (x *PythonIndexer) Extract(root *sitter.Node, source []byte, filePath string) (*File, error) {
	file := &File{
		Path:     filePath,
		Lines:    strings.Split(string(source), "\n"),
		ParsedAt: time.Now(),
	}

	x.walk(root, source, file)
	file.Occurrences = dedupe(file.Occurrences)

	return file, nil
}

func (x *PythonIndexer) walk(node *sitter.Node, source []byte, file *File) {
	switch node.Kind() {
	case "import_statement":
		x.extractImport(node, source, file)
		return
	case "import_from_statement":
		x.extractFromImport(node, source, file)
		return
	case "future_import_statement":
		return

	case "type":
		// Annotation position: parameter/return/variable annotations all
		// arrive wrapped in a type node. Emitted with decomposition, so
		// the generic walk must not descend into it again.
		x.emitType(node, source, file)
		return

	case "class_definition":
		if name := node.ChildByFieldName("name"); name != nil {
			x.emit(name, source, file)
		}
		if supers := node.ChildByFieldName("superclasses"); supers != nil {
			for i := uint(0); i < supers.NamedChildCount(); i++ {
				x.emitType(supers.NamedChild(i), source, file)
			}
		}
		if body := node.ChildByFieldName("body"); body != nil {
			x.walk(body, source, file)
		}
		return

	default:
		if exprNodeKinds[node.Kind()] && !suppressedIdentifier(node) {
			x.emit(node, source, file)
		}
	}

	for i := uint(0); i < node.ChildCount(); i++ {
		x.walk(node.Child(i), source, file)
	}
}

// emit records a single expression occurrence.
func (x *PythonIndexer) emit(node *sitter.Node, source []byte, file *File) {
	if e := BuildExpr(node, source); e != nil {
		file.Occurrences = append(file.Occurrences, occurrenceFor(e, file))
	}
}

// emitType records a type-position expression and, when EmitParts is set,
// its recursively decomposed constituents.
func (x *PythonIndexer) emitType(node *sitter.Node, source []byte, file *File) {
	e := BuildExpr(node, source)
	if e == nil {
		return
	}
	x.emitExprTree(e, file)
}

func (x *PythonIndexer) emitExprTree(e *Expr, file *File) {
	file.Occurrences = append(file.Occurrences, occurrenceFor(e, file))
	if !x.EmitParts {
		return
	}
	for _, part := range e.Parts() {
		x.emitExprTree(part, file)
	}
}

func occurrenceFor(e *Expr, file *File) Occurrence {
	occ := Occurrence{
		File:      file.Path,
		Line:      e.Line,
		Column:    e.Column,
		EndColumn: e.EndColumn,
		Kind:      e.Kind,
		Expr:      e,
	}
	occ.Symbol = e.Display()
	if occ.Symbol == "" {
		occ.Symbol = e.Kind.String()
	}
	if occ.Line-1 >= 0 && occ.Line-1 < len(file.Lines) {
		occ.SourceLine = file.Lines[occ.Line-1]
	}
	return occ
}

// suppressedIdentifier reports identifiers that name things rather than
// reference them: parameter names, attribute members, keyword-argument keys.
func suppressedIdentifier(node *sitter.Node) bool {
	if node.Kind() != "identifier" {
		return false
	}
	parent := node.Parent()
	if parent == nil {
		return false
	}

	switch parent.Kind() {
	case "parameters", "lambda_parameters", "typed_parameter",
		"default_parameter", "typed_default_parameter":
		return true
	case "attribute":
		attr := parent.ChildByFieldName("attribute")
		return attr != nil && attr.StartByte() == node.StartByte()
	case "keyword_argument":
		name := parent.ChildByFieldName("name")
		return name != nil && name.StartByte() == node.StartByte()
	}
	return false
}

func (x *PythonIndexer) extractImport(node *sitter.Node, source []byte, file *File) {
	for i := uint(0); i < node.NamedChildCount(); i++ {
		child := node.NamedChild(i)

		switch child.Kind() {
		case "dotted_name", "identifier":
			file.Imports = append(file.Imports, Import{
				Module:   text(child, source),
				Location: location(child, file.Path),
			})
		case "aliased_import":
			imp := Import{Location: location(child, file.Path)}
			if name := child.ChildByFieldName("name"); name != nil {
				imp.Module = text(name, source)
			}
			if alias := child.ChildByFieldName("alias"); alias != nil {
				imp.Alias = text(alias, source)
			}
			file.Imports = append(file.Imports, imp)
		}
	}
}

func (x *PythonIndexer) extractFromImport(node *sitter.Node, source []byte, file *File) {
	imp := Import{Location: location(node, file.Path)}

	moduleNode := node.ChildByFieldName("module_name")
	if moduleNode != nil {
		if moduleNode.Kind() == "relative_import" {
			imp.IsRelative = true
			relText := text(moduleNode, source)
			trimmed := strings.TrimLeft(relText, ".")
			imp.Level = len(relText) - len(trimmed)
			imp.Module = trimmed
		} else {
			imp.Module = text(moduleNode, source)
		}
	}

	for i := uint(0); i < node.NamedChildCount(); i++ {
		child := node.NamedChild(i)
		if moduleNode != nil && child.StartByte() == moduleNode.StartByte() {
			continue
		}

		switch child.Kind() {
		case "dotted_name", "identifier":
			imp.Items = append(imp.Items, ImportItem{Name: text(child, source)})
		case "aliased_import":
			item := ImportItem{}
			if name := child.ChildByFieldName("name"); name != nil {
				item.Name = text(name, source)
			}
			if alias := child.ChildByFieldName("alias"); alias != nil {
				item.Alias = text(alias, source)
			}
			imp.Items = append(imp.Items, item)
		}
	}

	file.Imports = append(file.Imports, imp)
}

func location(node *sitter.Node, filePath string) Location {
	return Location{
		File:   filePath,
		Line:   int(node.StartPosition().Row) + 1,
		Column: int(node.StartPosition().Column),
	}
}

type occurrenceKey struct {
	line, column int
	symbol       string
	kind         ExprKind
}

// dedupe drops repeated records of the same span, keeping the first.
// Annotation decomposition and the generic expression walk can both reach
// the same node.
func dedupe(occs []Occurrence) []Occurrence {
	seen := make(map[occurrenceKey]bool, len(occs))
	out := occs[:0]
	for _, occ := range occs {
		key := occurrenceKey{occ.Line, occ.Column, occ.Symbol, occ.Kind}
		if seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, occ)
	}
	return out
}

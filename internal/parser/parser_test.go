// # internal/parser/parser_test.go
package parser

import (
	"testing"
)

func newTestParser(emitParts bool) *Parser {
	p := NewParser(NewGrammarLoader())
	p.RegisterIndexer("python", &PythonIndexer{EmitParts: emitParts})
	return p
}

func findOccurrence(occs []Occurrence, symbol string, kind ExprKind) *Occurrence {
	for i := range occs {
		if occs[i].Symbol == symbol && occs[i].Kind == kind {
			return &occs[i]
		}
	}
	return nil
}

func TestImportExtraction(t *testing.T) {
	p := newTestParser(false)

	code := `import os
import sys as system
from auth.utils import login as auth_login
from . import local_mod
from ..parent import parent_mod
`
	file, err := p.ParseFile("test.py", []byte(code))
	if err != nil {
		t.Fatal(err)
	}

	if len(file.Imports) != 5 {
		t.Fatalf("Expected 5 imports, got %d", len(file.Imports))
	}

	if file.Imports[0].Module != "os" {
		t.Errorf("Expected module os, got %s", file.Imports[0].Module)
	}

	if file.Imports[1].Module != "sys" || file.Imports[1].Alias != "system" {
		t.Errorf("Expected sys as system, got %s as %s", file.Imports[1].Module, file.Imports[1].Alias)
	}

	imp := file.Imports[2]
	if imp.Module != "auth.utils" {
		t.Errorf("Expected module auth.utils, got %s", imp.Module)
	}
	if len(imp.Items) != 1 || imp.Items[0].Name != "login" || imp.Items[0].Alias != "auth_login" {
		t.Errorf("Expected item login as auth_login, got %+v", imp.Items)
	}

	rel := file.Imports[3]
	if !rel.IsRelative || rel.Level != 1 || rel.Module != "" {
		t.Errorf("Expected level-1 relative import, got %+v", rel)
	}
	if len(rel.Items) != 1 || rel.Items[0].Name != "local_mod" {
		t.Errorf("Expected item local_mod, got %+v", rel.Items)
	}

	parent := file.Imports[4]
	if !parent.IsRelative || parent.Level != 2 || parent.Module != "parent" {
		t.Errorf("Expected level-2 relative import of parent, got %+v", parent)
	}
}

func TestImportStatementsEmitNoOccurrences(t *testing.T) {
	p := newTestParser(false)

	file, err := p.ParseFile("test.py", []byte("from b import Widget\nimport os\n"))
	if err != nil {
		t.Fatal(err)
	}

	if len(file.Occurrences) != 0 {
		t.Errorf("Expected no occurrences from import statements, got %d: %+v",
			len(file.Occurrences), file.Occurrences)
	}
}

func TestAnnotationExtraction(t *testing.T) {
	p := newTestParser(false)

	code := `from typing import Dict

def handler(x: Dict[str, int]) -> None:
    return None
`
	file, err := p.ParseFile("test.py", []byte(code))
	if err != nil {
		t.Fatal(err)
	}

	occ := findOccurrence(file.Occurrences, "Dict[str, int]", KindSubscript)
	if occ == nil {
		t.Fatalf("Dict[str, int] annotation not found in %+v", file.Occurrences)
	}
	if occ.Line != 3 {
		t.Errorf("Expected line 3, got %d", occ.Line)
	}
	if occ.Column != 15 {
		t.Errorf("Expected column 15 (0-based), got %d", occ.Column)
	}
	if occ.EndColumn != 29 {
		t.Errorf("Expected end column 29, got %d", occ.EndColumn)
	}
	if occ.SourceLine != "def handler(x: Dict[str, int]) -> None:" {
		t.Errorf("Unexpected source line %q", occ.SourceLine)
	}

	ret := findOccurrence(file.Occurrences, "None", KindConstant)
	if ret == nil {
		t.Fatal("None return annotation not found")
	}
	if ret.Line != 3 {
		t.Errorf("Expected return annotation on line 3, got %d", ret.Line)
	}

	// Without EmitParts the subscript components stay folded into the
	// composite annotation.
	if part := findOccurrence(file.Occurrences, "str", KindName); part != nil {
		t.Errorf("Did not expect decomposed part str, got %+v", part)
	}
}

func TestAnnotationDecomposition(t *testing.T) {
	p := newTestParser(true)

	code := `def handler(x: Dict[str, int]) -> None:
    pass
`
	file, err := p.ParseFile("test.py", []byte(code))
	if err != nil {
		t.Fatal(err)
	}

	if findOccurrence(file.Occurrences, "Dict[str, int]", KindSubscript) == nil {
		t.Error("Composite annotation missing")
	}
	for _, symbol := range []string{"Dict", "str", "int"} {
		part := findOccurrence(file.Occurrences, symbol, KindName)
		if part == nil {
			t.Errorf("Decomposed part %s missing", symbol)
			continue
		}
		if part.Line != 1 {
			t.Errorf("Part %s on line %d, expected 1", symbol, part.Line)
		}
	}
}

func TestParameterNamesSuppressed(t *testing.T) {
	p := newTestParser(false)

	code := `def f(x: int, y=2):
    return x
`
	file, err := p.ParseFile("test.py", []byte(code))
	if err != nil {
		t.Fatal(err)
	}

	for _, occ := range file.Occurrences {
		if occ.Line == 1 && (occ.Symbol == "x" || occ.Symbol == "y") {
			t.Errorf("Parameter name %s emitted at %d:%d", occ.Symbol, occ.Line, occ.Column)
		}
	}

	// The use of x in the body is a real reference.
	use := findOccurrence(file.Occurrences, "x", KindName)
	if use == nil {
		t.Fatal("Body reference to x not found")
	}
	if use.Line != 2 {
		t.Errorf("Expected body reference on line 2, got %d", use.Line)
	}
}

func TestAttributeMemberSuppressed(t *testing.T) {
	p := newTestParser(false)

	file, err := p.ParseFile("test.py", []byte("value = obj.attr\n"))
	if err != nil {
		t.Fatal(err)
	}

	if findOccurrence(file.Occurrences, "obj.attr", KindAttribute) == nil {
		t.Error("Attribute occurrence obj.attr missing")
	}
	if findOccurrence(file.Occurrences, "obj", KindName) == nil {
		t.Error("Attribute object obj missing")
	}
	if occ := findOccurrence(file.Occurrences, "attr", KindName); occ != nil {
		t.Errorf("Attribute member emitted standalone: %+v", occ)
	}
}

func TestClassDefinition(t *testing.T) {
	p := newTestParser(false)

	code := `class Widget(Base):
    pass
`
	file, err := p.ParseFile("test.py", []byte(code))
	if err != nil {
		t.Fatal(err)
	}

	name := findOccurrence(file.Occurrences, "Widget", KindName)
	if name == nil {
		t.Fatal("Class name Widget not emitted")
	}
	if name.Line != 1 || name.Column != 6 {
		t.Errorf("Widget at %d:%d, expected 1:6", name.Line, name.Column)
	}

	if findOccurrence(file.Occurrences, "Base", KindName) == nil {
		t.Error("Superclass Base not emitted")
	}
}

func TestUnionAnnotation(t *testing.T) {
	p := newTestParser(false)

	file, err := p.ParseFile("test.py", []byte("x: int | None = None\n"))
	if err != nil {
		t.Fatal(err)
	}

	occ := findOccurrence(file.Occurrences, "int | None", KindBinOp)
	if occ == nil {
		t.Fatalf("Union annotation not found in %+v", file.Occurrences)
	}
	if occ.Column != 3 {
		t.Errorf("Expected column 3, got %d", occ.Column)
	}
}

func TestDuplicateSpansCollapse(t *testing.T) {
	p := newTestParser(true)

	file, err := p.ParseFile("test.py", []byte("x: int = 5\n"))
	if err != nil {
		t.Fatal(err)
	}

	count := 0
	for _, occ := range file.Occurrences {
		if occ.Symbol == "int" && occ.Kind == KindName && occ.Line == 1 && occ.Column == 3 {
			count++
		}
	}
	if count != 1 {
		t.Errorf("Expected annotation int exactly once, got %d", count)
	}
}

func TestSyntaxErrorRejected(t *testing.T) {
	p := newTestParser(false)

	if _, err := p.ParseFile("broken.py", []byte("def f(:\n")); err == nil {
		t.Error("Expected error for unparseable source")
	}
}

func TestInvalidUTF8Rejected(t *testing.T) {
	p := newTestParser(false)

	if _, err := p.ParseFile("bad.py", []byte{0xff, 0xfe, 0x00}); err == nil {
		t.Error("Expected error for invalid UTF-8 source")
	}
}

func TestUnsupportedExtension(t *testing.T) {
	p := newTestParser(false)

	if _, err := p.ParseFile("main.go", []byte("package main\n")); err == nil {
		t.Error("Expected error for non-Python file")
	}
}

// # internal/render/formatter_test.go
package render

import (
	"bytes"
	"testing"

	"dora/internal/parser"
	"dora/internal/resolver"
	"dora/internal/traverse"
)

func TestBlockFormat(t *testing.T) {
	var buf bytes.Buffer
	f := NewFormatter(&buf, ColorNever)

	f.WriteResults([]traverse.Result{{
		Occurrence: parser.Occurrence{
			File:       "a.py",
			Line:       3,
			Column:     15,
			EndColumn:  29,
			Symbol:     "Dict[str, int]",
			Kind:       parser.KindSubscript,
			SourceLine: "def handler(x: Dict[str, int]) -> None:",
		},
	}})

	want := "a.py:3:15\n" +
		"               Dict[str, int] (Subscript)\n" +
		"               v\n" +
		"def handler(x: Dict[str, int]) -> None:\n" +
		"\n"
	if buf.String() != want {
		t.Errorf("Block output mismatch.\nGot:\n%q\nWant:\n%q", buf.String(), want)
	}
}

func TestBlockFormatWithLocalOrigin(t *testing.T) {
	var buf bytes.Buffer
	f := NewFormatter(&buf, ColorNever)

	f.WriteResults([]traverse.Result{{
		Occurrence: parser.Occurrence{
			File:       "a.py",
			Line:       3,
			Column:     9,
			EndColumn:  15,
			Symbol:     "Widget",
			Kind:       parser.KindName,
			SourceLine: "def f(x: Widget) -> None:",
		},
		Origin: &resolver.Origin{Kind: resolver.OriginLocal, Path: "/src/pkg/b.py"},
	}})

	want := "a.py:3:9\n" +
		"         Widget (Name) from b.py\n" +
		"         v\n" +
		"def f(x: Widget) -> None:\n" +
		"\n"
	if buf.String() != want {
		t.Errorf("Block output mismatch.\nGot:\n%q\nWant:\n%q", buf.String(), want)
	}
}

func TestBlockFormatWithPackageInfo(t *testing.T) {
	var buf bytes.Buffer
	f := NewFormatter(&buf, ColorNever)

	f.WriteResults([]traverse.Result{{
		Occurrence: parser.Occurrence{
			File:       "app.py",
			Line:       5,
			Column:     7,
			EndColumn:  19,
			Symbol:     "pd.DataFrame",
			Kind:       parser.KindAttribute,
			SourceLine: "frame: pd.DataFrame = load()",
		},
		Origin: &resolver.Origin{
			Kind:    resolver.OriginExternal,
			Package: &resolver.PackageInfo{Name: "pandas", Description: "Data structures for data analysis"},
		},
	}})

	want := "app.py:5:7\n" +
		"       pd.DataFrame (Attribute) from pandas\n" +
		"       └─ pandas: Data structures for data analysis\n" +
		"       v\n" +
		"frame: pd.DataFrame = load()\n" +
		"\n"
	if buf.String() != want {
		t.Errorf("Block output mismatch.\nGot:\n%q\nWant:\n%q", buf.String(), want)
	}
}

func TestColorAutoOffForNonTerminal(t *testing.T) {
	var buf bytes.Buffer
	f := NewFormatter(&buf, ColorAuto)
	if f.color {
		t.Error("Auto mode should disable color for a plain buffer")
	}
}

func TestExprTextClamping(t *testing.T) {
	if got := exprText("x: int", 3, 6); got != "int" {
		t.Errorf("exprText = %q", got)
	}
	// End column beyond the line falls back to the remainder.
	if got := exprText("x: int", 3, 99); got != "int" {
		t.Errorf("exprText with overlong end = %q", got)
	}
	if got := exprText("short", 99, 100); got != "" {
		t.Errorf("exprText with out-of-range start = %q", got)
	}
}

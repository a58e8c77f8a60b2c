// # internal/resolver/resolver.go
package resolver

import (
	"os"
	"path/filepath"
	"strings"

	"dora/internal/parser"
)

type OriginKind string

const (
	OriginLocal      OriginKind = "local"
	OriginStandard   OriginKind = "standard"
	OriginExternal   OriginKind = "external"
	OriginUnresolved OriginKind = "unresolved"
)

type PackageInfo struct {
	Name        string
	Description string
}

// Origin is the resolved provenance of an imported name: a local defining
// file, or a package classification when no file can be found.
type Origin struct {
	Kind    OriginKind
	Path    string // defining file, set for local origins
	Package *PackageInfo
}

// Label is the display form used in "from" annotations.
func (o *Origin) Label() string {
	if o == nil {
		return ""
	}
	if o.Kind == OriginLocal {
		return o.Path
	}
	if o.Package != nil {
		return o.Package.Name
	}
	return string(o.Kind)
}

// PackageInfo is nil-safe access to the origin's package description.
func (o *Origin) PackageInfo() *PackageInfo {
	if o == nil {
		return nil
	}
	return o.Package
}

// AliasEntry is one import binding: alias -> (qualified name, origin).
type AliasEntry struct {
	Qualified string
	Origin    Origin
}

type Resolver struct {
	stdlib   map[string]bool
	registry PackageRegistry
}

func NewResolver(registry PackageRegistry, extraStdlib []string) *Resolver {
	stdlib := make(map[string]bool, len(pythonStdlib)+len(extraStdlib))
	for k := range pythonStdlib {
		stdlib[k] = true
	}
	for _, name := range extraStdlib {
		name = strings.TrimSpace(name)
		if name != "" {
			stdlib[strings.Split(name, ".")[0]] = true
		}
	}
	if registry == nil {
		registry = StaticRegistry{}
	}
	return &Resolver{stdlib: stdlib, registry: registry}
}

// Aliases builds the file's alias map. Built before expression scanning so
// occurrences discovered later can resolve their origin immediately.
// Resolution never fails: a miss yields an unresolved origin.
func (r *Resolver) Aliases(file *parser.File) map[string]AliasEntry {
	aliases := make(map[string]AliasEntry)
	dir := filepath.Dir(file.Path)

	for _, imp := range file.Imports {
		if len(imp.Items) == 0 {
			if imp.Module == "" {
				continue
			}
			alias := imp.Alias
			if alias == "" {
				// import a.b binds the first path segment.
				alias = strings.Split(imp.Module, ".")[0]
			}
			aliases[alias] = AliasEntry{
				Qualified: imp.Module,
				Origin:    r.classify(imp.Module, dir),
			}
			continue
		}

		for _, item := range imp.Items {
			alias := item.Alias
			if alias == "" {
				alias = item.Name
			}
			qualified := item.Name
			if imp.Module != "" {
				qualified = imp.Module + "." + item.Name
			}
			aliases[alias] = AliasEntry{
				Qualified: qualified,
				Origin:    r.itemOrigin(imp, item, dir),
			}
		}
	}

	return aliases
}

// classify maps a dotted module path onto local / standard / external /
// unresolved. Local resolution joins the importing file's directory with
// the dotted segments.
func (r *Resolver) classify(module, dir string) Origin {
	head := strings.Split(module, ".")[0]
	if r.stdlib[head] {
		return Origin{
			Kind:    OriginStandard,
			Package: &PackageInfo{Name: head, Description: "Python standard library"},
		}
	}

	if path, ok := moduleFile(dir, module); ok {
		return Origin{Kind: OriginLocal, Path: path}
	}

	if info, ok := r.registry.Describe(module); ok {
		return Origin{Kind: OriginExternal, Package: &info}
	}
	return Origin{Kind: OriginUnresolved}
}

func (r *Resolver) itemOrigin(imp parser.Import, item parser.ImportItem, dir string) Origin {
	if !imp.IsRelative {
		return r.classify(imp.Module, dir)
	}

	base := dir
	for l := 1; l < imp.Level; l++ {
		base = filepath.Dir(base)
	}

	// from . import x resolves each item as its own module; from .m import x
	// resolves the shared module m.
	target := imp.Module
	if target == "" {
		target = item.Name
	}
	if path, ok := moduleFile(base, target); ok {
		return Origin{Kind: OriginLocal, Path: path}
	}
	return Origin{Kind: OriginUnresolved}
}

// moduleFile maps a dotted module name under dir to an existing source
// file, trying module.py then package __init__.py.
func moduleFile(dir, module string) (string, bool) {
	if module == "" {
		return "", false
	}
	segments := strings.Split(module, ".")
	base := filepath.Join(dir, filepath.Join(segments...))

	for _, candidate := range []string{base + ".py", filepath.Join(base, "__init__.py")} {
		if info, err := os.Stat(candidate); err == nil && !info.IsDir() {
			return candidate, true
		}
	}
	return "", false
}

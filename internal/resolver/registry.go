// # internal/resolver/registry.go
package resolver

import "strings"

// PackageRegistry is the optional descriptive-enrichment collaborator: it
// only supplies display metadata for external packages. A lookup miss never
// affects whether an occurrence is reported.
type PackageRegistry interface {
	Describe(module string) (PackageInfo, bool)
}

// StaticRegistry maps a top-level package name to a short description.
type StaticRegistry map[string]string

func (r StaticRegistry) Describe(module string) (PackageInfo, bool) {
	head := strings.Split(module, ".")[0]
	desc, ok := r[head]
	if !ok {
		return PackageInfo{}, false
	}
	return PackageInfo{Name: head, Description: desc}, true
}

// Merge overlays extra entries, returning a new registry.
func (r StaticRegistry) Merge(extra map[string]string) StaticRegistry {
	merged := make(StaticRegistry, len(r)+len(extra))
	for k, v := range r {
		merged[k] = v
	}
	for k, v := range extra {
		merged[k] = v
	}
	return merged
}

// DefaultRegistry knows a handful of widespread PyPI packages.
func DefaultRegistry() StaticRegistry {
	return StaticRegistry{
		"numpy":      "Fundamental package for array computing",
		"pandas":     "Data structures for data analysis",
		"requests":   "HTTP library",
		"flask":      "Web application framework",
		"django":     "Web framework",
		"pytest":     "Testing framework",
		"scipy":      "Scientific computing library",
		"matplotlib": "Plotting library",
		"sqlalchemy": "SQL toolkit and ORM",
		"pydantic":   "Data validation library",
		"click":      "Command line interface toolkit",
		"yaml":       "YAML parser and emitter (PyYAML)",
		"boto3":      "AWS SDK for Python",
		"aiohttp":    "Async HTTP client/server",
		"fastapi":    "Web framework for building APIs",
	}
}

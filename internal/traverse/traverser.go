// # internal/traverse/traverser.go
package traverse

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"go.opentelemetry.io/otel/attribute"

	"dora/internal/match"
	"dora/internal/observability"
	"dora/internal/parser"
	"dora/internal/resolver"
)

// Result is one matched occurrence together with its resolved origin.
type Result struct {
	parser.Occurrence
	Origin *resolver.Origin
}

// State is the per-search traversal state: the visited set guarantees each
// file is parsed and indexed at most once, the accumulator preserves
// depth-first discovery order. Owned exclusively by one Search call;
// nothing survives past it.
type State struct {
	visited map[string]bool
	results []Result
}

func NewState() *State {
	return &State{visited: make(map[string]bool)}
}

func (s *State) Visited(path string) bool { return s.visited[path] }

func (s *State) Results() []Result { return s.results }

// Traverser orchestrates parsing, import resolution and matching across the
// root files and every local file reachable through resolved imports.
// Single-threaded, synchronous, depth-first.
type Traverser struct {
	parser   *parser.Parser
	resolver *resolver.Resolver
	diag     io.Writer
}

func New(p *parser.Parser, r *resolver.Resolver, diag io.Writer) *Traverser {
	if diag == nil {
		diag = os.Stderr
	}
	return &Traverser{parser: p, resolver: r, diag: diag}
}

// Search runs one traversal over the given roots. An empty pattern matches
// everything. Results are ordered by file discovery order and, within a
// file, by syntax-tree order.
func (t *Traverser) Search(ctx context.Context, roots []string, pattern string, mode match.Mode) []Result {
	ctx, span := observability.Tracer.Start(ctx, "traverse.Search")
	span.SetAttributes(
		attribute.Int("roots", len(roots)),
		attribute.String("pattern", pattern),
	)
	defer span.End()

	start := time.Now()
	st := NewState()
	for _, root := range roots {
		t.SearchFrom(ctx, st, root, pattern, mode)
	}
	observability.SearchDuration.Observe(time.Since(start).Seconds())

	return st.results
}

// SearchFrom traverses one root into an existing state, allowing callers to
// merge several roots into a single de-duplicated result set.
func (t *Traverser) SearchFrom(ctx context.Context, st *State, path, pattern string, mode match.Mode) {
	if abs, err := filepath.Abs(path); err == nil {
		path = abs
	}
	t.visit(ctx, st, path, pattern, mode)
}

func (t *Traverser) visit(ctx context.Context, st *State, path, pattern string, mode match.Mode) {
	if st.visited[path] {
		return
	}
	st.visited[path] = true

	content, err := os.ReadFile(path)
	if err != nil {
		observability.ParseFailures.Inc()
		fmt.Fprintf(t.diag, "%s: %v\n", path, err)
		return
	}

	start := time.Now()
	file, err := t.parser.ParseFile(path, content)
	observability.ParseDuration.Observe(time.Since(start).Seconds())
	if err != nil {
		observability.ParseFailures.Inc()
		fmt.Fprintf(t.diag, "%s: %v\n", path, err)
		return
	}
	observability.FilesParsed.Inc()

	// Alias map first, so occurrences resolve their origin immediately.
	aliases := t.resolver.Aliases(file)

	var follow []string
	for _, occ := range file.Occurrences {
		res := Result{Occurrence: occ}

		// Only the head symbol of a composite expression is resolvable
		// through the alias map.
		if head := occ.Expr.Head(); head != "" {
			if entry, ok := aliases[head]; ok {
				origin := entry.Origin
				res.Origin = &origin
			}
		}

		if !match.Occurrence(occ, pattern, mode) {
			continue
		}

		st.results = append(st.results, res)
		observability.OccurrencesFound.Inc()

		if res.Origin != nil && res.Origin.Kind == resolver.OriginLocal {
			next := res.Origin.Path
			if abs, err := filepath.Abs(next); err == nil {
				next = abs
			}
			if !st.visited[next] {
				follow = append(follow, next)
			}
		}
	}

	// Own passing occurrences first, then recursive contributions, in
	// discovery order. The visited set terminates circular imports.
	for _, next := range follow {
		t.visit(ctx, st, next, pattern, mode)
	}
}

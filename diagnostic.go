package rulescrape

import "fmt"

// Scope identifies the granularity at which a problem was absorbed.
type Scope string

// Diagnostic scopes, from coarsest to finest.
const (
	ScopePage     Scope = "page"
	ScopeTable    Scope = "table"
	ScopeRow      Scope = "row"
	ScopeField    Scope = "field"
	ScopeDocument Scope = "document"
	ScopeOutput   Scope = "output"
)

// Diagnostic describes a non-fatal problem a stage recovered from.
// Target is the offending URL or text snippet.
type Diagnostic struct {
	Scope  Scope
	Target string
	Err    error
}

func (d Diagnostic) String() string {
	return fmt.Sprintf("%s %q: %v", d.Scope, d.Target, d.Err)
}

// ExtractResult holds the rules decoded from the listing page along with
// the problems skipped along the way.
type ExtractResult struct {
	Rules       []*Rule
	Diagnostics []Diagnostic
}

// EnrichResult holds enriched copies of the input rules.
type EnrichResult struct {
	Rules       []*Rule
	Diagnostics []Diagnostic
}

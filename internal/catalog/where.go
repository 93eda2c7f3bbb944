package catalog

import (
	"fmt"

	"github.com/go-logr/logr"
	"github.com/google/cel-go/cel"
	celext "github.com/google/cel-go/ext"

	"github.com/interpretive-systems/poslookup/internal/search"
)

// Predicate is a compiled CEL expression over a single record bound to the
// variable "item", e.g. `item.price < 10.0` or `has(item.phone)`.
type Predicate struct {
	expr string
	prg  cel.Program
}

func newEnv() (*cel.Env, error) {
	return cel.NewEnv(
		cel.Variable("item", cel.MapType(cel.StringType, cel.DynType)),
		celext.Strings(),
		celext.Math(),
	)
}

// Compile parses and type-checks expr. Expressions that cannot yield a bool
// are rejected.
func Compile(expr string) (*Predicate, error) {
	env, err := newEnv()
	if err != nil {
		return nil, fmt.Errorf("failed to create CEL environment: %w", err)
	}
	ast, issues := env.Compile(expr)
	if issues != nil && issues.Err() != nil {
		return nil, fmt.Errorf("compile %q: %w", expr, issues.Err())
	}
	switch out := ast.OutputType().String(); out {
	case "bool", "dyn":
	default:
		return nil, fmt.Errorf("compile %q: result is %s, want bool", expr, out)
	}
	prg, err := env.Program(ast)
	if err != nil {
		return nil, fmt.Errorf("program %q: %w", expr, err)
	}
	return &Predicate{expr: expr, prg: prg}, nil
}

// String returns the source expression.
func (p *Predicate) String() string {
	return p.expr
}

// Match evaluates the predicate against item.
func (p *Predicate) Match(item search.Item) (bool, error) {
	out, _, err := p.prg.Eval(map[string]any{"item": map[string]any(item)})
	if err != nil {
		return false, fmt.Errorf("eval %q: %w", p.expr, err)
	}
	b, ok := out.Value().(bool)
	if !ok {
		return false, fmt.Errorf("eval %q: result is %T, want bool", p.expr, out.Value())
	}
	return b, nil
}

// Filter keeps the records the predicate accepts. Records the expression
// cannot be evaluated against, for example because a field is missing, are
// dropped.
func (p *Predicate) Filter(items []search.Item, log logr.Logger) []search.Item {
	if log.GetSink() == nil {
		log = logr.Discard()
	}
	out := make([]search.Item, 0, len(items))
	var dropped int
	for _, it := range items {
		ok, err := p.Match(it)
		if err != nil {
			dropped++
			continue
		}
		if ok {
			out = append(out, it)
		}
	}
	if dropped > 0 {
		log.V(1).Info("records dropped by where clause", "expr", p.expr, "dropped", dropped)
	}
	return out
}

// Where compiles expr and filters items with it. An empty expression keeps
// every record.
func Where(items []search.Item, expr string) ([]search.Item, error) {
	if expr == "" {
		return items, nil
	}
	p, err := Compile(expr)
	if err != nil {
		return nil, err
	}
	return p.Filter(items, logr.Discard()), nil
}

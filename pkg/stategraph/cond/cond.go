package cond

import (
	"errors"
	"fmt"
	"strings"
)

// Operator compares two resolved values.
type Operator func(left, right any) bool

// ErrEmptyExpression is returned by Compile for a blank expression.
var ErrEmptyExpression = errors.New("empty expression")

// Evaluator evaluates condition expressions, optionally extended with
// custom binary operators.
type Evaluator struct {
	custom map[string]Operator
}

// Option configures an Evaluator.
type Option func(*Evaluator)

// WithOperator registers a custom binary operator under name.
// Custom operators are matched as space-delimited words, after the
// built-in operators.
func WithOperator(name string, fn Operator) Option {
	return func(e *Evaluator) {
		if e.custom == nil {
			e.custom = make(map[string]Operator)
		}
		e.custom[name] = fn
	}
}

// New creates an Evaluator.
func New(opts ...Option) *Evaluator {
	e := &Evaluator{}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Evaluate evaluates expr against the given state map.
func (e *Evaluator) Evaluate(expr string, state map[string]any) (bool, error) {
	expr = strings.TrimSpace(expr)
	if expr == "" {
		return false, ErrEmptyExpression
	}
	return e.eval(expr, state), nil
}

// Compile validates the shape of expr and returns a closure evaluating it
// per call. Blank expressions, operators missing an operand, and dangling
// negations are rejected here rather than silently evaluating false at
// run time.
func (e *Evaluator) Compile(expr string) (func(state map[string]any) bool, error) {
	expr = strings.TrimSpace(expr)
	if expr == "" {
		return nil, ErrEmptyExpression
	}
	if err := e.check(expr); err != nil {
		return nil, err
	}
	return func(state map[string]any) bool {
		return e.eval(expr, state)
	}, nil
}

// Eval evaluates expr with the default evaluator (no custom operators).
func Eval(expr string, state map[string]any) (bool, error) {
	return New().Evaluate(expr, state)
}

// Compile compiles expr with the default evaluator.
func Compile(expr string) (func(state map[string]any) bool, error) {
	return New().Compile(expr)
}

// builtins lists the built-in operators in match order; two-character
// operators come first so ">=" is never split as ">".
var builtins = []struct {
	token string
	fn    Operator
}{
	{"==", equals},
	{"!=", notEquals},
	{">=", func(l, r any) bool { return ToFloat64(l) >= ToFloat64(r) }},
	{"<=", func(l, r any) bool { return ToFloat64(l) <= ToFloat64(r) }},
	{">", func(l, r any) bool { return ToFloat64(l) > ToFloat64(r) }},
	{"<", func(l, r any) bool { return ToFloat64(l) < ToFloat64(r) }},
	{" contains ", contains},
}

func equals(left, right any) bool {
	return fmt.Sprintf("%v", left) == fmt.Sprintf("%v", right)
}

func notEquals(left, right any) bool {
	return !equals(left, right)
}

func contains(left, right any) bool {
	return strings.Contains(fmt.Sprintf("%v", left), fmt.Sprintf("%v", right))
}

// check walks the same grammar as eval and rejects shapes eval would only
// degrade on silently: empty subexpressions and binary operators with a
// missing side. Bare identifiers pass; they evaluate as truthiness.
func (e *Evaluator) check(expr string) error {
	expr = strings.TrimSpace(expr)
	if expr == "" {
		return fmt.Errorf("%w in subexpression", ErrEmptyExpression)
	}

	if inner, ok := strings.CutPrefix(expr, "not "); ok {
		return e.check(inner)
	}
	if inner, ok := strings.CutPrefix(expr, "!"); ok && !strings.HasPrefix(inner, "=") {
		return e.check(inner)
	}

	if left, right, ok := strings.Cut(expr, " and "); ok {
		if err := e.check(left); err != nil {
			return err
		}
		return e.check(right)
	}
	if left, right, ok := strings.Cut(expr, " or "); ok {
		if err := e.check(left); err != nil {
			return err
		}
		return e.check(right)
	}

	for _, op := range builtins {
		if left, right, ok := strings.Cut(expr, op.token); ok {
			if strings.TrimSpace(left) == "" || strings.TrimSpace(right) == "" {
				return fmt.Errorf("operator %q needs two operands in %q", strings.TrimSpace(op.token), expr)
			}
			return nil
		}
	}
	for name := range e.custom {
		if left, right, ok := strings.Cut(expr, " "+name+" "); ok {
			if strings.TrimSpace(left) == "" || strings.TrimSpace(right) == "" {
				return fmt.Errorf("operator %q needs two operands in %q", name, expr)
			}
			return nil
		}
	}
	return nil
}

// eval walks the expression recursively: negation prefixes, then the
// first and/or split, then binary operators, then bare truthiness.
func (e *Evaluator) eval(expr string, state map[string]any) bool {
	expr = strings.TrimSpace(expr)
	if expr == "" {
		return false
	}

	if inner, ok := strings.CutPrefix(expr, "not "); ok {
		return !e.eval(inner, state)
	}
	if inner, ok := strings.CutPrefix(expr, "!"); ok && !strings.HasPrefix(inner, "=") {
		return !e.eval(inner, state)
	}

	if left, right, ok := strings.Cut(expr, " and "); ok {
		return e.eval(left, state) && e.eval(right, state)
	}
	if left, right, ok := strings.Cut(expr, " or "); ok {
		return e.eval(left, state) || e.eval(right, state)
	}

	for _, op := range builtins {
		if left, right, ok := strings.Cut(expr, op.token); ok {
			return op.fn(
				Resolve(left, state),
				Resolve(right, state),
			)
		}
	}

	for name, fn := range e.custom {
		if left, right, ok := strings.Cut(expr, " "+name+" "); ok {
			return fn(
				Resolve(left, state),
				Resolve(right, state),
			)
		}
	}

	return IsTruthy(Resolve(expr, state))
}

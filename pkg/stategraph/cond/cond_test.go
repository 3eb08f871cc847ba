package cond

import (
	"fmt"
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEval_Comparisons(t *testing.T) {
	state := map[string]any{
		"status":  "active",
		"count":   5,
		"ratio":   2.5,
		"message": "disk error: out of space",
		"name":    "",
	}

	tests := []struct {
		expr string
		want bool
	}{
		{"status == 'active'", true},
		{`status == "active"`, true},
		{"status == 'inactive'", false},
		{"status != 'inactive'", true},
		{"count > 3", true},
		{"count > 5", false},
		{"count >= 5", true},
		{"count < 10", true},
		{"count <= 4", false},
		{"ratio > 2", true},
		{"message contains 'error'", true},
		{"message contains 'warning'", false},
		{"name != ''", false},
		{"count == 5", true},
	}

	for _, tt := range tests {
		t.Run(tt.expr, func(t *testing.T) {
			got, err := Eval(tt.expr, state)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestEval_LogicalOperators(t *testing.T) {
	state := map[string]any{
		"ready":   true,
		"blocked": false,
		"count":   5,
	}

	tests := []struct {
		expr string
		want bool
	}{
		{"ready and count > 0", true},
		{"ready and count > 10", false},
		{"blocked or ready", true},
		{"blocked or count > 10", false},
		{"not blocked", true},
		{"not ready", false},
		{"!blocked", true},
		{"not blocked and count >= 5", true},
	}

	for _, tt := range tests {
		t.Run(tt.expr, func(t *testing.T) {
			got, err := Eval(tt.expr, state)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestEval_Truthiness(t *testing.T) {
	state := map[string]any{
		"flag":      true,
		"zero":      0,
		"text":      "hello",
		"empty":     "",
		"nothing":   nil,
		"remainder": 0.5,
	}

	tests := []struct {
		expr string
		want bool
	}{
		{"flag", true},
		{"zero", false},
		{"text", true},
		{"empty", false},
		{"nothing", false},
		{"remainder", true},
		{"true", true},
		{"false", false},
	}

	for _, tt := range tests {
		t.Run(tt.expr, func(t *testing.T) {
			got, err := Eval(tt.expr, state)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestEval_EmptyExpression(t *testing.T) {
	_, err := Eval("", nil)
	assert.ErrorIs(t, err, ErrEmptyExpression)

	_, err = Eval("   ", nil)
	assert.ErrorIs(t, err, ErrEmptyExpression)
}

func TestCompile(t *testing.T) {
	approved, err := Compile("decision == 'approve'")
	require.NoError(t, err)

	assert.True(t, approved(map[string]any{"decision": "approve"}))
	assert.False(t, approved(map[string]any{"decision": "reject"}))
	assert.False(t, approved(nil))
}

func TestCompile_Empty(t *testing.T) {
	_, err := Compile("  ")
	assert.ErrorIs(t, err, ErrEmptyExpression)
}

func TestCompile_MalformedShapes(t *testing.T) {
	malformed := []string{
		"count >=",
		"== 'approve'",
		"status !=",
		"retries < 3 and == 'x'",
		"not a or >= 2",
		"!",
	}
	for _, expr := range malformed {
		_, err := Compile(expr)
		assert.Error(t, err, "expression %q", expr)
	}

	// Bare identifiers stay legal; they evaluate as truthiness.
	wellFormed := []string{
		"ready",
		"not ready",
		"a and b",
		"count >= 3 or done",
	}
	for _, expr := range wellFormed {
		_, err := Compile(expr)
		assert.NoError(t, err, "expression %q", expr)
	}
}

func TestEvaluator_CompileChecksCustomOperators(t *testing.T) {
	e := New(WithOperator("matches", func(left, right any) bool {
		matched, _ := regexp.MatchString(fmt.Sprint(right), fmt.Sprint(left))
		return matched
	}))

	_, err := e.Compile("name matches '^ord-'")
	assert.NoError(t, err)
}

func TestEvaluator_CustomOperator(t *testing.T) {
	e := New(WithOperator("matches", func(left, right any) bool {
		matched, _ := regexp.MatchString(fmt.Sprint(right), fmt.Sprint(left))
		return matched
	}))

	got, err := e.Evaluate("name matches '^ord-'", map[string]any{"name": "ord-42"})
	require.NoError(t, err)
	assert.True(t, got)

	got, err = e.Evaluate("name matches '^inv-'", map[string]any{"name": "ord-42"})
	require.NoError(t, err)
	assert.False(t, got)
}

func TestResolve(t *testing.T) {
	state := map[string]any{"status": "active", "n": 7}

	assert.Equal(t, "hello", Resolve("'hello'", state))
	assert.Equal(t, "hello", Resolve(`"hello"`, state))
	assert.Equal(t, true, Resolve("true", state))
	assert.Equal(t, false, Resolve("FALSE", state))
	assert.Nil(t, Resolve("null", state))
	assert.Equal(t, int64(42), Resolve("42", state))
	assert.Equal(t, 3.14, Resolve("3.14", state))
	assert.Equal(t, "active", Resolve("status", state))
	assert.Equal(t, 7, Resolve("n", state))
	// Unknown identifier falls back to its own name.
	assert.Equal(t, "unknown", Resolve("unknown", state))
	assert.Equal(t, "", Resolve("", state))
}

func TestToFloat64(t *testing.T) {
	assert.Equal(t, 5.0, ToFloat64(5))
	assert.Equal(t, 5.0, ToFloat64(int64(5)))
	assert.Equal(t, 2.5, ToFloat64(2.5))
	assert.Equal(t, 2.5, ToFloat64(float32(2.5)))
	assert.Equal(t, 1.5, ToFloat64("1.5"))
	assert.Equal(t, 0.0, ToFloat64(nil))
	assert.Equal(t, 0.0, ToFloat64(struct{}{}))
}

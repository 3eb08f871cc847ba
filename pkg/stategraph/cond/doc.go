/*
Package cond evaluates condition expressions against workflow state.

# Overview

cond implements the small expression language used to guard edges: a
comparison or truthiness check over values resolved from a state map,
combinable with and/or/not.

# Expression Syntax

	<expr> := <comparison>
	        | <expr> 'and' <expr>
	        | <expr> 'or' <expr>
	        | 'not' <expr>
	        | '!' <expr>
	        | <value>

	<comparison> := <value> <op> <value>
	<op> := '==' | '!=' | '<' | '>' | '<=' | '>=' | 'contains'
	<value> := 'string' | "string" | number | true | false | null | identifier

Equality operators compare the string form of both sides; ordering
operators compare numerically. contains is a substring test. Identifiers
resolve against the state map; an unknown identifier resolves to its own
name as a string.

# Examples

	state := map[string]any{"status": "active", "count": 5}

	ok, _ := cond.Eval("status == 'active'", state)          // true
	ok, _ = cond.Eval("count > 10", state)                   // false
	ok, _ = cond.Eval("status == 'active' and count > 0", state)

Compile an expression once and reuse it per evaluation:

	approved, err := cond.Compile("decision == 'approve'")
	if err != nil {
	    // malformed expression
	}
	approved(state)

# Custom Operators

	e := cond.New(
	    cond.WithOperator("matches", func(left, right any) bool {
	        matched, _ := regexp.MatchString(fmt.Sprint(right), fmt.Sprint(left))
	        return matched
	    }),
	)
	ok, _ := e.Evaluate("name matches '^ord-'", state)

# Truthiness

A bare value evaluates to its truthiness: nil and null are false, bools
are themselves, strings are true when non-empty, numbers are true when
non-zero, everything else is true.
*/
package cond

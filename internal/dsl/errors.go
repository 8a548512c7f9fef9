package dsl

import "fmt"

// SyntaxError reports a pattern that does not match the grammar (spec
// §7 "Parse failure"). Kept in the teacher's Kind/Message shape
// (dsl.SyntaxError in ritamzico/pgraph).
type SyntaxError struct {
	Kind    string
	Message string
}

func (e SyntaxError) Error() string {
	return fmt.Sprintf("syntax error (%v): %v", e.Kind, e.Message)
}

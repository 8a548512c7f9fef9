package graph

import "fmt"

// Error is this package's error taxonomy, kept in the teacher's
// Kind/Message shape (graph.GraphError in ritamzico/pgraph) rather than a
// growing zoo of sentinel error values. The store itself never returns
// one — every Store method is total per spec — but callers building on
// top of it (serialization, in particular) reuse this shape for their
// own validation failures.
type Error struct {
	Kind    string
	Message string
}

func (e Error) Error() string {
	return fmt.Sprintf("graph error (%v): %v", e.Kind, e.Message)
}

package graph

import "testing"

func TestAddNodeAndGetNode(t *testing.T) {
	s := New()
	s.AddNode(Node{ID: "a", Type: "Person", Label: "Alice", Properties: map[string]Value{"age": Int(30)}})

	got, ok := s.GetNode("a")
	if !ok {
		t.Fatal("expected node a to exist")
	}
	if got.Type != "Person" || got.Label != "Alice" {
		t.Errorf("got %+v", got)
	}
	if got.Properties["age"].I != 30 {
		t.Errorf("age = %v, want 30", got.Properties["age"].I)
	}
}

func TestAddNodeReplacesWholesale(t *testing.T) {
	s := New()
	s.AddNode(Node{ID: "a", Type: "Person", Label: "Alice", Properties: map[string]Value{"age": Int(30)}})
	s.AddNode(Node{ID: "a", Type: "Person", Label: "Alice2"})

	got, _ := s.GetNode("a")
	if got.Label != "Alice2" {
		t.Errorf("Label = %q, want %q", got.Label, "Alice2")
	}
	if _, ok := got.Properties["age"]; ok {
		t.Error("expected properties dropped on wholesale replace")
	}
}

func TestAddNodeClonesProperties(t *testing.T) {
	s := New()
	props := map[string]Value{"age": Int(30)}
	s.AddNode(Node{ID: "a", Properties: props})
	props["age"] = Int(99)

	got, _ := s.GetNode("a")
	if got.Properties["age"].I != 30 {
		t.Error("mutation of caller's map leaked into the store")
	}
}

func TestHasNodeAndGetNodeMissing(t *testing.T) {
	s := New()
	if s.HasNode("x") {
		t.Error("expected no node x")
	}
	if _, ok := s.GetNode("x"); ok {
		t.Error("expected GetNode(x) to report false")
	}
}

func TestRemoveNodeRemovesIncidentEdges(t *testing.T) {
	s := New()
	s.AddNode(Node{ID: "a"})
	s.AddNode(Node{ID: "b"})
	s.AddNode(Node{ID: "c"})
	s.AddEdge("a", "KNOWS", "b", nil)
	s.AddEdge("c", "KNOWS", "a", nil)

	s.RemoveNode("a")

	if s.HasNode("a") {
		t.Error("expected node a removed")
	}
	if s.HasEdge("a", "KNOWS", "b") {
		t.Error("expected outgoing edge removed")
	}
	if s.HasEdge("c", "KNOWS", "a") {
		t.Error("expected incoming edge removed")
	}
	if len(s.OutNeighbors("c", "KNOWS")) != 0 {
		t.Error("expected c's KNOWS adjacency cleared of a")
	}
}

func TestRemoveNodeUnknownIsNoOp(t *testing.T) {
	s := New()
	s.RemoveNode("nope")
	if len(s.Nodes()) != 0 {
		t.Error("expected store to remain empty")
	}
}

func TestAddEdgeAndAdjacency(t *testing.T) {
	s := New()
	s.AddNode(Node{ID: "a"})
	s.AddNode(Node{ID: "b"})
	s.AddEdge("a", "KNOWS", "b", map[string]Value{"since": Int(2020)})

	if !s.HasEdge("a", "KNOWS", "b") {
		t.Fatal("expected edge a-KNOWS->b")
	}
	e, ok := s.GetEdge("a", "KNOWS", "b")
	if !ok {
		t.Fatal("GetEdge failed")
	}
	if e.Properties["since"].I != 2020 {
		t.Errorf("since = %v, want 2020", e.Properties["since"].I)
	}

	out := s.OutNeighbors("a", "KNOWS")
	if len(out) != 1 || out[0] != "b" {
		t.Errorf("OutNeighbors(a, KNOWS) = %v, want [b]", out)
	}
	in := s.InNeighbors("b", "KNOWS")
	if len(in) != 1 || in[0] != "a" {
		t.Errorf("InNeighbors(b, KNOWS) = %v, want [a]", in)
	}
}

func TestAddEdgeReplacesWholesale(t *testing.T) {
	s := New()
	s.AddEdge("a", "KNOWS", "b", map[string]Value{"since": Int(2020)})
	s.AddEdge("a", "KNOWS", "b", nil)

	e, _ := s.GetEdge("a", "KNOWS", "b")
	if _, ok := e.Properties["since"]; ok {
		t.Error("expected properties dropped on wholesale edge replace")
	}
}

func TestAddEdgeAgainstUnknownNodesStillIndexes(t *testing.T) {
	s := New()
	s.AddEdge("ghost1", "KNOWS", "ghost2", nil)
	if !s.HasEdge("ghost1", "KNOWS", "ghost2") {
		t.Error("store does not enforce referential integrity; edge should still be indexed")
	}
}

func TestRemoveEdge(t *testing.T) {
	s := New()
	s.AddEdge("a", "KNOWS", "b", nil)
	s.RemoveEdge("a", "KNOWS", "b")
	if s.HasEdge("a", "KNOWS", "b") {
		t.Error("expected edge removed")
	}
	if len(s.OutNeighbors("a", "KNOWS")) != 0 {
		t.Error("expected adjacency cleared")
	}
}

func TestRemoveEdgeUnknownIsNoOp(t *testing.T) {
	s := New()
	s.RemoveEdge("a", "KNOWS", "b")
	if len(s.Edges()) != 0 {
		t.Error("expected store to remain empty")
	}
}

func TestOutTypesAndInTypes(t *testing.T) {
	s := New()
	s.AddEdge("a", "KNOWS", "b", nil)
	s.AddEdge("a", "MANAGES", "c", nil)

	outTypes := s.OutTypes("a")
	if len(outTypes) != 2 {
		t.Errorf("OutTypes(a) = %v, want 2 entries", outTypes)
	}
	inTypes := s.InTypes("b")
	if len(inTypes) != 1 || inTypes[0] != "KNOWS" {
		t.Errorf("InTypes(b) = %v, want [KNOWS]", inTypes)
	}
}

func TestOutNeighborsUnknownIsEmptyNotNil(t *testing.T) {
	s := New()
	got := s.OutNeighbors("nope", "KNOWS")
	if got == nil {
		t.Error("expected non-nil empty slice")
	}
	if len(got) != 0 {
		t.Errorf("expected empty, got %v", got)
	}
}

func TestNodesAndEdgesEnumerate(t *testing.T) {
	s := New()
	s.AddNode(Node{ID: "a"})
	s.AddNode(Node{ID: "b"})
	s.AddEdge("a", "KNOWS", "b", nil)

	if len(s.Nodes()) != 2 {
		t.Errorf("Nodes() = %d, want 2", len(s.Nodes()))
	}
	if len(s.Edges()) != 1 {
		t.Errorf("Edges() = %d, want 1", len(s.Edges()))
	}
}

func TestEdgeKeyDistinguishesParallelEdges(t *testing.T) {
	s := New()
	s.AddEdge("a", "KNOWS", "b", map[string]Value{"x": Int(1)})
	s.AddEdge("a", "MANAGES", "b", map[string]Value{"x": Int(2)})

	eKnows, _ := s.GetEdge("a", "KNOWS", "b")
	eManages, _ := s.GetEdge("a", "MANAGES", "b")
	if eKnows.Properties["x"].I == eManages.Properties["x"].I {
		t.Error("expected distinct edges for distinct types between the same endpoints")
	}
}

// Package serialization implements the bit-exact JSON format spec §6
// describes: nodes/edges/optional metadata, with the structural
// validation §6/§7 require on deserialize. Grounded on the teacher's
// WriteJSON/ReadJSON/SaveJSON/LoadJSON shape, generalized from its
// probabilistic-graph wire format to the plain property-graph one.
package serialization

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/orinthal/pgraph/internal/graph"
)

const formatVersion = "1.0"

// FormatError reports a structural JSON violation (spec §6/§7):
// unknown version, duplicate node ids, dangling edge endpoints, missing
// required fields, or an empty id/src/dst/type.
type FormatError struct {
	Kind    string
	Message string
}

func (e FormatError) Error() string {
	return fmt.Sprintf("format error (%v): %v", e.Kind, e.Message)
}

type wireNode struct {
	ID         string                  `json:"id"`
	Type       string                  `json:"type"`
	Label      string                  `json:"label"`
	Properties map[string]graph.Value `json:"properties,omitempty"`
}

type wireEdge struct {
	Src        string                  `json:"src"`
	Type       string                  `json:"type"`
	Dst        string                  `json:"dst"`
	Properties map[string]graph.Value `json:"properties,omitempty"`
}

type wireMetadata struct {
	NodeCount    int    `json:"nodeCount"`
	EdgeCount    int    `json:"edgeCount"`
	SerializedAt string `json:"serializedAt"`
}

type wireGraph struct {
	Version  string        `json:"version"`
	Nodes    []wireNode    `json:"nodes"`
	Edges    []wireEdge    `json:"edges"`
	Metadata *wireMetadata `json:"metadata,omitempty"`
}

// WriteJSON encodes store to w in the spec §6 wire format, stamping
// metadata with the given serializedAt timestamp (callers pass this in
// rather than this package calling time.Now, so tests control the
// timestamp). Nodes and edges are written in the store's iteration
// order, which is unspecified.
func WriteJSON(store *graph.Store, w io.Writer, serializedAt string) error {
	nodes := store.Nodes()
	edges := store.Edges()

	wg := wireGraph{
		Version: formatVersion,
		Nodes:   make([]wireNode, len(nodes)),
		Edges:   make([]wireEdge, len(edges)),
		Metadata: &wireMetadata{
			NodeCount:    len(nodes),
			EdgeCount:    len(edges),
			SerializedAt: serializedAt,
		},
	}
	for i, n := range nodes {
		wg.Nodes[i] = wireNode{ID: n.ID, Type: n.Type, Label: n.Label, Properties: n.Properties}
	}
	for i, e := range edges {
		wg.Edges[i] = wireEdge{Src: e.Src, Type: e.Type, Dst: e.Dst, Properties: e.Properties}
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(wg)
}

// ReadJSON decodes r into a fresh Store, applying spec §6/§7's
// deserialization validation: unknown version, duplicate node ids,
// dangling edge endpoints, missing required fields, and empty
// id/src/dst/type are all rejected with a FormatError. metadata is
// write-only and ignored here even if present.
func ReadJSON(r io.Reader) (*graph.Store, error) {
	var wg wireGraph
	if err := json.NewDecoder(r).Decode(&wg); err != nil {
		return nil, FormatError{Kind: "InvalidJSON", Message: err.Error()}
	}

	if wg.Version != formatVersion {
		return nil, FormatError{Kind: "UnknownVersion", Message: fmt.Sprintf("unsupported version %q", wg.Version)}
	}

	store := graph.New()
	seen := make(map[string]bool, len(wg.Nodes))

	for _, n := range wg.Nodes {
		if n.ID == "" {
			return nil, FormatError{Kind: "MissingField", Message: "node with empty id"}
		}
		if n.Type == "" {
			return nil, FormatError{Kind: "MissingField", Message: fmt.Sprintf("node %q missing type", n.ID)}
		}
		if n.Label == "" {
			return nil, FormatError{Kind: "MissingField", Message: fmt.Sprintf("node %q missing label", n.ID)}
		}
		if seen[n.ID] {
			return nil, FormatError{Kind: "DuplicateID", Message: fmt.Sprintf("duplicate node id %q", n.ID)}
		}
		seen[n.ID] = true
		store.AddNode(graph.Node{ID: n.ID, Type: n.Type, Label: n.Label, Properties: n.Properties})
	}

	for _, e := range wg.Edges {
		if e.Src == "" || e.Dst == "" || e.Type == "" {
			return nil, FormatError{Kind: "MissingField", Message: "edge missing src, dst, or type"}
		}
		if !seen[e.Src] {
			return nil, FormatError{Kind: "DanglingEdge", Message: fmt.Sprintf("edge references unknown src %q", e.Src)}
		}
		if !seen[e.Dst] {
			return nil, FormatError{Kind: "DanglingEdge", Message: fmt.Sprintf("edge references unknown dst %q", e.Dst)}
		}
		store.AddEdge(e.Src, e.Type, e.Dst, e.Properties)
	}

	return store, nil
}

// SaveJSON writes store to a JSON file at path.
func SaveJSON(store *graph.Store, path, serializedAt string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating file %s: %w", path, err)
	}
	defer f.Close()
	return WriteJSON(store, f, serializedAt)
}

// LoadJSON reads a Store from a JSON file at path.
func LoadJSON(path string) (*graph.Store, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening file %s: %w", path, err)
	}
	defer f.Close()
	return ReadJSON(f)
}

package graph

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// ValueKind tags the dynamic scalar union a Node or Edge property holds.
type ValueKind int

const (
	NullVal ValueKind = iota
	BoolVal
	IntVal
	FloatVal
	StringVal
	ListVal
)

// Value is the tagged scalar union properties are stored as. Only the
// field matching Kind is meaningful; List holds a sequence of further
// Values. UnmarshalJSON does not reject nested arrays, so a List may
// itself contain Lists.
type Value struct {
	Kind ValueKind
	B    bool
	I    int64
	F    float64
	S    string
	List []Value
}

func Null() Value             { return Value{Kind: NullVal} }
func Bool(b bool) Value       { return Value{Kind: BoolVal, B: b} }
func Int(i int64) Value       { return Value{Kind: IntVal, I: i} }
func Float(f float64) Value   { return Value{Kind: FloatVal, F: f} }
func String(s string) Value   { return Value{Kind: StringVal, S: s} }
func List(vs []Value) Value   { return Value{Kind: ListVal, List: vs} }

// AsText renders any scalar's string form, used by the case-insensitive
// substring operator and by string comparison operators.
func (v Value) AsText() string {
	switch v.Kind {
	case StringVal:
		return v.S
	case IntVal:
		return strconv.FormatInt(v.I, 10)
	case FloatVal:
		return strconv.FormatFloat(v.F, 'g', -1, 64)
	case BoolVal:
		return strconv.FormatBool(v.B)
	case NullVal:
		return ""
	default:
		return fmt.Sprintf("%v", v)
	}
}

func (v Value) String() string {
	switch v.Kind {
	case NullVal:
		return "null"
	case StringVal:
		return v.S
	case ListVal:
		parts := make([]string, len(v.List))
		for i, e := range v.List {
			parts[i] = e.String()
		}
		return "[" + strings.Join(parts, ", ") + "]"
	default:
		return v.AsText()
	}
}

// MarshalJSON renders the value as a plain JSON scalar/array — no Kind
// tag — so a property map round-trips through the bit-exact format
// spec.md §6 describes rather than through this type's internal shape.
func (v Value) MarshalJSON() ([]byte, error) {
	switch v.Kind {
	case NullVal:
		return []byte("null"), nil
	case BoolVal:
		return json.Marshal(v.B)
	case IntVal:
		return json.Marshal(v.I)
	case FloatVal:
		return json.Marshal(v.F)
	case StringVal:
		return json.Marshal(v.S)
	case ListVal:
		return json.Marshal(v.List)
	default:
		return []byte("null"), nil
	}
}

// UnmarshalJSON parses a plain JSON scalar/array into the narrowest
// matching Value kind — an integral JSON number becomes IntVal, never
// FloatVal (spec §9: "parsers emit the narrowest tag").
func (v *Value) UnmarshalJSON(data []byte) error {
	var raw any
	dec := json.NewDecoder(strings.NewReader(string(data)))
	dec.UseNumber()
	if err := dec.Decode(&raw); err != nil {
		return err
	}
	parsed, err := fromAny(raw)
	if err != nil {
		return err
	}
	*v = parsed
	return nil
}

func fromAny(raw any) (Value, error) {
	switch t := raw.(type) {
	case nil:
		return Null(), nil
	case bool:
		return Bool(t), nil
	case string:
		return String(t), nil
	case json.Number:
		if i, err := t.Int64(); err == nil {
			return Int(i), nil
		}
		f, err := t.Float64()
		if err != nil {
			return Value{}, err
		}
		return Float(f), nil
	case []any:
		list := make([]Value, len(t))
		for i, e := range t {
			v, err := fromAny(e)
			if err != nil {
				return Value{}, err
			}
			list[i] = v
		}
		return List(list), nil
	default:
		return Value{}, fmt.Errorf("graph: unsupported property value type %T", raw)
	}
}

// isNumeric reports whether the value participates in numeric comparison.
func (v Value) isNumeric() bool {
	return v.Kind == IntVal || v.Kind == FloatVal
}

func (v Value) asFloat() float64 {
	if v.Kind == IntVal {
		return float64(v.I)
	}
	return v.F
}

// typeRank implements the cross-type order from spec §4.7 step 5:
// numeric < string < boolean < null.
func (v Value) typeRank() int {
	switch {
	case v.isNumeric():
		return 0
	case v.Kind == StringVal:
		return 1
	case v.Kind == BoolVal:
		return 2
	default:
		return 3
	}
}

// Equal reports scalar-union equality: numeric compares across Int/Float,
// string/bool/null compare within their own kind, lists compare elementwise.
func Equal(a, b Value) bool {
	switch {
	case a.isNumeric() && b.isNumeric():
		return a.asFloat() == b.asFloat()
	case a.Kind == StringVal && b.Kind == StringVal:
		return a.S == b.S
	case a.Kind == BoolVal && b.Kind == BoolVal:
		return a.B == b.B
	case a.Kind == NullVal && b.Kind == NullVal:
		return true
	case a.Kind == ListVal && b.Kind == ListVal:
		if len(a.List) != len(b.List) {
			return false
		}
		for i := range a.List {
			if !Equal(a.List[i], b.List[i]) {
				return false
			}
		}
		return true
	default:
		return false
	}
}

// Compare orders two values for ORDER BY and relational operators. ok is
// false when the two values are not meaningfully ordered against each
// other by any rule below (callers treat that as "no match").
func Compare(a, b Value) (cmp int, ok bool) {
	switch {
	case a.isNumeric() && b.isNumeric():
		switch {
		case a.asFloat() < b.asFloat():
			return -1, true
		case a.asFloat() > b.asFloat():
			return 1, true
		default:
			return 0, true
		}
	case a.Kind == StringVal && b.Kind == StringVal:
		return strings.Compare(a.S, b.S), true
	case a.Kind == BoolVal && b.Kind == BoolVal:
		switch {
		case a.B == b.B:
			return 0, true
		case !a.B && b.B:
			return -1, true
		default:
			return 1, true
		}
	case a.Kind == NullVal && b.Kind == NullVal:
		return 0, true
	default:
		// Mixed types: fall back to the type rank so values of different
		// ranks still order against each other. List and Null share the
		// last rank, so those pairs (and two lists) stay unordered.
		ra, rb := a.typeRank(), b.typeRank()
		if ra == rb {
			return 0, false
		}
		if ra < rb {
			return -1, true
		}
		return 1, true
	}
}

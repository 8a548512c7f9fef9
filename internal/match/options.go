package match

// Options carries the seeding parameters and the one execution tunable
// every entry point accepts (spec §4.7/§7, SPEC_FULL.md §6/§9). Its zero
// value means "no anchor, default hop cap" — equivalent to omitting
// every optional argument in the language-neutral surface spec.md §6
// describes.
type Options struct {
	// StartID anchors the query at a single node id. Mutually exclusive
	// with StartIDs; supplying both is a ValidationError.
	StartID *string

	// StartIDs anchors the query at any of the given node ids. An empty
	// (but non-nil) slice is equivalent to omitting it.
	StartIDs []string

	// StartType restricts anchor search to node-segment positions whose
	// typeTag equals *StartType, skipping earlier positions that do not.
	StartType *string

	// MaxHops overrides the engine-wide default cap (10) that a
	// variable-length segment without an explicit max is bounded by.
	// Zero means "use the default".
	MaxHops int

	// Debug opts into the spec §7 "MAY log silently-empty outcomes for
	// debugging" hook: when set, Run logs (via the standard library
	// "log" package) the reason a query collapsed to zero rows without
	// raising an error — an unresolved seed id, or a WHERE clause that
	// filtered every candidate binding. Off by default; it never
	// affects return values, only what reaches the log.
	Debug bool
}

// WithMaxHops returns a copy of o with MaxHops set, for call sites that
// prefer building Options by chaining rather than a struct literal.
func (o Options) WithMaxHops(n int) Options {
	o.MaxHops = n
	return o
}

func (o Options) effectiveMaxHops() int {
	if o.MaxHops <= 0 {
		return defaultMaxHops
	}
	return o.MaxHops
}

const defaultMaxHops = 10

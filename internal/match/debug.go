package match

import "log"

// debugf is the spec §7 logging hook: "Implementations MAY log
// silently-empty outcomes for debugging but must not affect return
// semantics." It is a no-op unless the caller set Options.Debug, and
// every call site below logs a reason the result collapsed to empty
// rather than contributing to what gets returned.
func debugf(opts Options, format string, args ...any) {
	if !opts.Debug {
		return
	}
	log.Printf("pgraph: "+format, args...)
}

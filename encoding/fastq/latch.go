package fastq

// deflineLatch enforces that the first successful
// classification of a file's defline locks in its Variant for all
// subsequent lines, unless mixedDeflines forces per-line re-detection.
// This replaces the reference implementation's pattern of rebinding a
// regex slot on first match: instead of mutating the
// grammar at runtime, the latch is a single stored tag plus the static
// matchVariant dispatch table in defline.go.
type deflineLatch struct {
	mixed   bool
	latched Variant
}

func (l *deflineLatch) classify(line string) (Defline, bool) {
	hint := UNDEFINED
	if !l.mixed {
		hint = l.latched
	}
	d, ok := classify(line, hint)
	if ok && !l.mixed && l.latched == UNDEFINED && d.Variant != UNDEFINED {
		l.latched = d.Variant
	}
	return d, ok
}

package frames

// Choice is the result of picking from one sequence. OK is false when the
// sequence was empty.
type Choice[T any] struct {
	Value T
	OK    bool
}

// BalancedIndex picks element i mod len(v) from every sequence v, so
// animations of different lengths can share one tick counter without
// special-casing the mismatch. Empty sequences yield a Choice with OK unset.
func BalancedIndex[T any](i int, seqs [][]T) []Choice[T] {
	out := make([]Choice[T], len(seqs))
	for n, seq := range seqs {
		if len(seq) == 0 {
			continue
		}
		idx := i % len(seq)
		if idx < 0 {
			idx += len(seq)
		}
		out[n] = Choice[T]{Value: seq[idx], OK: true}
	}
	return out
}

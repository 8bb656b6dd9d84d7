package catalog

import "bazaar-engine/internal/domain"

// Merge concatenates per-source batches into one browsable collection.
// Batches arrive in the view's declared source order and records keep
// their fetch order within a batch, so the result is stable across
// recomputations. No dedupe: ids are scoped per source, and the same id
// from two origins is two listings.
func Merge(batches ...[]domain.Record) []domain.Record {
	n := 0
	for _, b := range batches {
		n += len(b)
	}
	out := make([]domain.Record, 0, n)
	for _, b := range batches {
		for _, r := range b {
			if r.Kind == domain.KindUnknown {
				// ingestion tags records; sniff only as a last resort
				r.Kind = domain.InferKind(r)
			}
			out = append(out, r)
		}
	}
	return out
}

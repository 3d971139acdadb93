package pipeline

import "github.com/custodia-labs/vitae/internal/core/domain"

// Evaluate scores a recommendation against the ground-truth relevant set.
// Both sides are compared by document ID and duplicates count once.
//
//	precision = |recommended ∩ relevant| / |recommended|   (0 when recommended is empty)
//	recall    = |recommended ∩ relevant| / |relevant|      (0 when relevant is empty)
//	f1        = 2pr / (p + r)                              (0 when both are 0)
func Evaluate(recommended, relevant []string) domain.Evaluation {
	rec := toSet(recommended)
	rel := toSet(relevant)

	hits := 0
	for id := range rec {
		if _, ok := rel[id]; ok {
			hits++
		}
	}

	var eval domain.Evaluation
	if len(rec) > 0 {
		eval.Precision = float64(hits) / float64(len(rec))
	}
	if len(rel) > 0 {
		eval.Recall = float64(hits) / float64(len(rel))
	}
	if eval.Precision+eval.Recall > 0 {
		eval.F1 = 2 * eval.Precision * eval.Recall / (eval.Precision + eval.Recall)
	}
	return eval
}

// IDs returns the IDs of docs in order.
func IDs(docs []domain.Document) []string {
	ids := make([]string, len(docs))
	for i := range docs {
		ids[i] = docs[i].ID
	}
	return ids
}

func toSet(ids []string) map[string]struct{} {
	set := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		set[id] = struct{}{}
	}
	return set
}

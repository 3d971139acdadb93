package domain

// Evaluation holds retrieval-quality metrics for one recommendation
// measured against a ground-truth relevant set.
type Evaluation struct {
	// Precision is |recommended ∩ relevant| / |recommended|.
	Precision float64 `json:"precision"`

	// Recall is |recommended ∩ relevant| / |relevant|.
	Recall float64 `json:"recall"`

	// F1 is the harmonic mean of Precision and Recall.
	F1 float64 `json:"f1"`
}

package domain

// RankedDocument pairs a document with its cosine similarity to a query.
type RankedDocument struct {
	Document Document `json:"document"`
	Score    float64  `json:"score"`
}

// TailorResult is the generation set produced by one tailoring run.
type TailorResult struct {
	// GroupID identifies the new generation set.
	GroupID string `json:"group_id"`

	// JobDescription is the stored job posting.
	JobDescription Document `json:"job_description"`

	// Resume is the stored copy of the best-matching résumé.
	Resume Document `json:"resume"`

	// CoverLetter is the generated letter.
	CoverLetter Document `json:"cover_letter"`
}

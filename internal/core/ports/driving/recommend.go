package driving

import (
	"context"

	"github.com/custodia-labs/vitae/internal/core/domain"
)

// RecommendService ranks stored résumés against job descriptions.
type RecommendService interface {
	// DefaultK returns the configured number of résumés to recommend.
	DefaultK() int

	// Recommend returns the k résumés most similar to the job description.
	// k is clamped to [0, number of résumés]. An empty corpus yields an
	// empty slice, not an error.
	Recommend(ctx context.Context, jobDescription string, k int) ([]domain.Document, error)

	// Rank is Recommend with similarity scores.
	Rank(ctx context.Context, jobDescription string, k int) ([]domain.RankedDocument, error)

	// Evaluate recommends k résumés and scores them against the relevant IDs.
	Evaluate(ctx context.Context, jobDescription string, k int, relevantIDs []string) (domain.Evaluation, error)

	// Tailor picks the best résumé and asks the text generator for a cover
	// letter, storing all three as a new generation set.
	Tailor(ctx context.Context, jobDescription string) (*domain.TailorResult, error)

	// LastSnapshot returns the snapshot written by the last recommendation.
	LastSnapshot(ctx context.Context) (*domain.Snapshot, error)
}

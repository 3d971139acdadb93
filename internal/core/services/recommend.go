package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/custodia-labs/vitae/internal/core/domain"
	"github.com/custodia-labs/vitae/internal/core/pipeline"
	"github.com/custodia-labs/vitae/internal/core/ports/driven"
	"github.com/custodia-labs/vitae/internal/core/ports/driving"
	"github.com/custodia-labs/vitae/internal/logger"
)

// Ensure RecommendService implements the interface.
var _ driving.RecommendService = (*RecommendService)(nil)

// RecommendConfig configures the pipeline driver.
type RecommendConfig struct {
	// TopK is the number of résumés returned when the caller has no preference.
	TopK int

	// Trainer fits the retrieval model. Nil means pipeline.PassThrough.
	Trainer pipeline.Trainer
}

// DefaultRecommendConfig returns the driver defaults.
func DefaultRecommendConfig() RecommendConfig {
	return RecommendConfig{
		TopK:    domain.DefaultAppSettings().Recommend.TopK,
		Trainer: pipeline.PassThrough{},
	}
}

// RecommendService runs the retrieval pipeline over stored résumés.
type RecommendService struct {
	store     driven.DocumentStore
	embedder  driven.EmbeddingService
	snapshots driven.SnapshotStore
	generator driven.TextGenerator
	cfg       RecommendConfig
}

// NewRecommendService creates a new pipeline driver.
// snapshots and generator are optional: without a snapshot store no
// snapshot is written, and without a generator Tailor is disabled.
func NewRecommendService(
	store driven.DocumentStore,
	embedder driven.EmbeddingService,
	snapshots driven.SnapshotStore,
	generator driven.TextGenerator,
	cfg RecommendConfig,
) *RecommendService {
	if cfg.Trainer == nil {
		cfg.Trainer = pipeline.PassThrough{}
	}
	if cfg.TopK <= 0 {
		cfg.TopK = DefaultRecommendConfig().TopK
	}
	return &RecommendService{
		store:     store,
		embedder:  embedder,
		snapshots: snapshots,
		generator: generator,
		cfg:       cfg,
	}
}

// DefaultK returns the configured number of résumés to recommend.
func (s *RecommendService) DefaultK() int {
	return s.cfg.TopK
}

// Recommend returns the k résumés most similar to the job description.
func (s *RecommendService) Recommend(ctx context.Context, jobDescription string, k int) ([]domain.Document, error) {
	ranked, err := s.Rank(ctx, jobDescription, k)
	if err != nil {
		return nil, err
	}
	docs := make([]domain.Document, len(ranked))
	for i := range ranked {
		docs[i] = ranked[i].Document
	}
	return docs, nil
}

// Rank loads every résumé, cleans and embeds it, fits the model, and ranks
// the résumés against the job description. The fitted state is written as a
// snapshot. An empty corpus yields an empty slice and no snapshot.
func (s *RecommendService) Rank(ctx context.Context, jobDescription string, k int) ([]domain.RankedDocument, error) {
	if s.embedder == nil {
		return nil, domain.ErrEmbeddingUnavailable
	}

	logger.Section("Recommend")
	resumes, err := s.store.GetByType(ctx, domain.DocumentTypeResume)
	if err != nil {
		return nil, fmt.Errorf("loading resumes: %w", err)
	}
	if len(resumes) == 0 {
		logger.Info("No résumés stored, nothing to rank")
		return []domain.RankedDocument{}, nil
	}

	// vectors[i] is derived from cleaned[i], which is a copy of resumes[i].
	cleaned := pipeline.Clean(resumes)
	vectors, _ := pipeline.Ingest(ctx, s.embedder, cleaned)
	model, err := s.cfg.Trainer.Train(ctx, vectors)
	if err != nil {
		return nil, fmt.Errorf("training: %w", err)
	}

	query := pipeline.NormaliseText(jobDescription)
	ranked := pipeline.Rank(ctx, s.embedder, query, model, resumes, k)

	ids := make([]string, len(ranked))
	for i := range ranked {
		ids[i] = ranked[i].Document.ID
	}
	logger.Info("Top %d of %d résumés: %s", len(ranked), len(resumes), strings.Join(ids, ", "))

	s.saveSnapshot(ctx, model, resumes)
	return ranked, nil
}

// Evaluate recommends k résumés and scores them against the relevant IDs.
func (s *RecommendService) Evaluate(
	ctx context.Context, jobDescription string, k int, relevantIDs []string,
) (domain.Evaluation, error) {
	docs, err := s.Recommend(ctx, jobDescription, k)
	if err != nil {
		return domain.Evaluation{}, err
	}
	eval := pipeline.Evaluate(pipeline.IDs(docs), relevantIDs)
	logger.Info("Precision %.3f, recall %.3f, F1 %.3f", eval.Precision, eval.Recall, eval.F1)
	return eval, nil
}

// Tailor picks the résumé closest to the job description, asks the text
// generator for a cover letter, and stores the job description, a copy of
// the résumé and the letter as a new generation set.
func (s *RecommendService) Tailor(ctx context.Context, jobDescription string) (*domain.TailorResult, error) {
	if s.generator == nil {
		return nil, domain.ErrGeneratorUnavailable
	}
	if strings.TrimSpace(jobDescription) == "" {
		return nil, fmt.Errorf("%w: job description is empty", domain.ErrInvalidInput)
	}

	ranked, err := s.Rank(ctx, jobDescription, 1)
	if err != nil {
		return nil, err
	}
	if len(ranked) == 0 {
		return nil, domain.ErrNoResume
	}
	best := ranked[0].Document

	logger.Section("Tailor")
	logger.Info("Generating cover letter from résumé %s with %s", best.ID, s.generator.ModelName())
	letter, err := s.generator.Generate(ctx, jobDescription, best.Text())
	if err != nil {
		return nil, fmt.Errorf("generating cover letter: %w", err)
	}

	groupID := NewGroupID()
	jd, err := NewDocument(domain.DocumentTypeJobDescription, jobDescription, strings.TrimSpace(jobDescription), groupID)
	if err != nil {
		return nil, err
	}
	resume, err := NewDocument(domain.DocumentTypeResume, best.RawContent, best.StructuredContent, groupID)
	if err != nil {
		return nil, err
	}
	resume.Embedding = append([]float32(nil), best.Embedding...)
	coverLetter, err := NewDocument(domain.DocumentTypeCoverLetter, letter, letter, groupID)
	if err != nil {
		return nil, err
	}

	for _, doc := range []*domain.Document{jd, resume, coverLetter} {
		if _, err := s.store.Save(ctx, doc); err != nil {
			return nil, fmt.Errorf("saving %s: %w", doc.Type, err)
		}
	}
	logger.Info("Stored generation set %s", groupID)

	return &domain.TailorResult{
		GroupID:        groupID,
		JobDescription: *jd,
		Resume:         *resume,
		CoverLetter:    *coverLetter,
	}, nil
}

// LastSnapshot returns the snapshot written by the last recommendation.
func (s *RecommendService) LastSnapshot(ctx context.Context) (*domain.Snapshot, error) {
	if s.snapshots == nil {
		return nil, domain.ErrSnapshotNotFound
	}
	return s.snapshots.Load(ctx)
}

// saveSnapshot persists the fitted state. Failures are logged, not returned:
// the snapshot is derived data.
func (s *RecommendService) saveSnapshot(ctx context.Context, vectors pipeline.Matrix, docs []domain.Document) {
	if s.snapshots == nil {
		return
	}
	snap := &domain.Snapshot{
		CreatedAt:  time.Now().UTC(),
		Model:      s.embedder.ModelName(),
		Embeddings: vectors,
		Documents:  docs,
	}
	if err := s.snapshots.Save(ctx, snap); err != nil {
		logger.Error("saving snapshot to %s: %v", s.snapshots.Path(), err)
		return
	}
	logger.Debug("Snapshot of %d documents written to %s", snap.Len(), s.snapshots.Path())
}

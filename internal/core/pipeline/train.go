package pipeline

import "context"

// Trainer fits a retrieval model on the corpus vectors and returns the
// vectors Predict should compare against.
type Trainer interface {
	Train(ctx context.Context, vectors Matrix) (Matrix, error)
}

// PassThrough is the Trainer used today: the corpus vectors are the model.
type PassThrough struct{}

var _ Trainer = PassThrough{}

// Train returns vectors unchanged.
func (PassThrough) Train(_ context.Context, vectors Matrix) (Matrix, error) {
	return vectors, nil
}

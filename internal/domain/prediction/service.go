package prediction

import (
	"context"
	"fmt"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"

	"github.com/livercare/livercare/internal/platform/classifier"
	"github.com/livercare/livercare/internal/platform/metrics"
	"github.com/livercare/livercare/internal/platform/telemetry"
)

// Model is a loaded stage classifier.
type Model interface {
	Name() string
	Covers(names []string) error
	Predict(row classifier.Row) (classifier.Prediction, error)
}

const (
	modelFirst    = "first"
	modelFollowup = "followup"
)

type Service struct {
	first    Model
	followup Model
	metrics  metrics.Recorder
}

// NewService checks that each model accepts every column of its report
// schema. A model that does not is a startup error.
func NewService(first, followup Model, rec metrics.Recorder) (*Service, error) {
	if err := first.Covers(FirstReportSchema); err != nil {
		return nil, fmt.Errorf("first report model %q: %w", first.Name(), err)
	}
	if err := followup.Covers(FollowupReportSchema); err != nil {
		return nil, fmt.Errorf("followup report model %q: %w", followup.Name(), err)
	}
	if rec == nil {
		rec = metrics.Nop{}
	}
	return &Service{first: first, followup: followup, metrics: rec}, nil
}

func (s *Service) PredictFirst(ctx context.Context, f FirstReportFeatures) (*Result, error) {
	if err := f.Validate(); err != nil {
		return nil, err
	}
	return s.predict(ctx, modelFirst, s.first, f.Row())
}

func (s *Service) PredictFollowup(ctx context.Context, f FollowupReportFeatures) (*Result, error) {
	if err := f.Validate(); err != nil {
		return nil, err
	}
	return s.predict(ctx, modelFollowup, s.followup, f.Row())
}

func (s *Service) predict(ctx context.Context, kind string, m Model, row classifier.Row) (*Result, error) {
	_, span := telemetry.Tracer().Start(ctx, "prediction."+kind)
	defer span.End()
	span.SetAttributes(attribute.String("model.name", m.Name()))

	start := time.Now()
	p, err := m.Predict(row)
	if err != nil {
		span.SetStatus(codes.Error, "predict failed")
		return nil, fmt.Errorf("%s report model: %w", kind, err)
	}
	s.metrics.RecordPrediction(kind, p.Label, time.Since(start))
	span.SetAttributes(attribute.String("prediction.label", p.Label))

	return &Result{PredictedStage: p.Label, StageProbabilities: p.Probabilities}, nil
}

package competency

import (
	"context"
	"sync"

	"github.com/competency/backend/internal/domain/competency"
	"github.com/competency/backend/internal/domain/shared"
	"github.com/competency/backend/internal/infrastructure/telemetry"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// ActivityService owns the session's activity collection and the derived
// score aggregate. All mutations follow the same cycle: validate, apply to
// a copy, persist the whole collection durably, and only then commit the
// copy in memory and recompute scores. A failed persist leaves state
// untouched.
//
// The mutex serializes the read-modify-persist cycle across request
// goroutines; the original design assumed a single exclusive session, and
// this is the serialization extension a multi-writer deployment requires.
type ActivityService struct {
	mu      sync.Mutex
	catalog *competency.Catalog
	repo    competency.ActivityRepository
	logger  *zap.Logger
	target  decimal.Decimal

	activities []competency.Activity
	scores     competency.ScoreAggregate
}

// NewActivityService creates an ActivityService bound to a catalog, a
// durable activity repository and a progression target
func NewActivityService(
	catalog *competency.Catalog,
	repo competency.ActivityRepository,
	target decimal.Decimal,
	logger *zap.Logger,
) *ActivityService {
	return &ActivityService{
		catalog: catalog,
		repo:    repo,
		logger:  logger,
		target:  target,
		scores:  competency.ZeroScoreAggregate(),
	}
}

// Load restores the activity collection from the durable store and
// recomputes the score aggregate. Called once at startup.
func (s *ActivityService) Load(ctx context.Context) error {
	ctx, span := telemetry.StartSpan(ctx, "competency.activities.load")
	defer span.End()

	activities, err := s.repo.Load(ctx)
	if err != nil {
		telemetry.RecordError(span, err)
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.activities = activities
	s.scores = competency.Recompute(s.activities, s.catalog)

	s.logger.Info("Activity collection restored",
		zap.Int("count", len(activities)),
		zap.String("total_score", s.scores.Total.String()),
	)
	return nil
}

// Register validates and scores a submission, appends it to the collection,
// persists, and recomputes the aggregate. Returns a *ValidationError when
// the submission is structurally invalid.
func (s *ActivityService) Register(ctx context.Context, req RegisterActivityRequest) (*ActivityResponse, error) {
	ctx, span := telemetry.StartSpan(ctx, "competency.activities.register",
		telemetry.WithAttribute("item_id", req.ItemID))
	defer span.End()

	item := s.catalog.FindByID(req.ItemID)
	input := competency.ActivityInput{
		PeriodStart:   req.PeriodStart,
		PeriodEnd:     req.PeriodEnd,
		Quantity:      req.Quantity,
		Description:   req.Description,
		DocumentCount: req.DocumentCount,
	}

	if result := competency.Validate(item, input); !result.Valid() {
		return nil, NewValidationError(result.FieldErrors)
	}

	// Points are frozen here; later catalog changes never touch them.
	points := competency.ComputePoints(item, input)
	activity := competency.NewActivity(item.ID, input, points)

	s.mu.Lock()
	defer s.mu.Unlock()

	updated := make([]competency.Activity, len(s.activities), len(s.activities)+1)
	copy(updated, s.activities)
	updated = append(updated, *activity)

	if err := s.persist(ctx, updated); err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}
	s.commit(updated)

	s.logger.Info("Activity registered",
		zap.String("activity_id", activity.ID.String()),
		zap.Int("item_id", item.ID),
		zap.String("points", points.String()),
	)

	resp := ToActivityResponse(activity, s.catalog)
	return &resp, nil
}

// UpdateStatus applies a review decision. An unknown ID is a logged no-op
// rather than an error, an accepted leniency of the original workflow.
func (s *ActivityService) UpdateStatus(ctx context.Context, id string, req UpdateStatusRequest) error {
	ctx, span := telemetry.StartSpan(ctx, "competency.activities.update_status",
		telemetry.WithAttribute("activity_id", id))
	defer span.End()

	s.mu.Lock()
	defer s.mu.Unlock()

	idx := s.indexOf(id)
	if idx < 0 {
		s.logger.Warn("Status update for unknown activity ignored", zap.String("activity_id", id))
		return nil
	}

	updated := make([]competency.Activity, len(s.activities))
	copy(updated, s.activities)
	if err := updated[idx].UpdateStatus(competency.ActivityStatus(req.Status), req.Comment); err != nil {
		return err
	}

	if err := s.persist(ctx, updated); err != nil {
		telemetry.RecordError(span, err)
		return err
	}
	s.commit(updated)

	s.logger.Info("Activity status updated",
		zap.String("activity_id", id),
		zap.String("status", req.Status),
	)
	return nil
}

// Delete removes an activity when present; an unknown ID is a no-op and
// does not touch the durable store
func (s *ActivityService) Delete(ctx context.Context, id string) error {
	ctx, span := telemetry.StartSpan(ctx, "competency.activities.delete",
		telemetry.WithAttribute("activity_id", id))
	defer span.End()

	s.mu.Lock()
	defer s.mu.Unlock()

	idx := s.indexOf(id)
	if idx < 0 {
		return nil
	}

	updated := make([]competency.Activity, 0, len(s.activities)-1)
	updated = append(updated, s.activities[:idx]...)
	updated = append(updated, s.activities[idx+1:]...)

	if err := s.persist(ctx, updated); err != nil {
		telemetry.RecordError(span, err)
		return err
	}
	s.commit(updated)

	s.logger.Info("Activity deleted", zap.String("activity_id", id))
	return nil
}

// List returns the activities in insertion order, resolved against the
// catalog for display
func (s *ActivityService) List(_ context.Context) []ActivityResponse {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]ActivityResponse, len(s.activities))
	for i := range s.activities {
		out[i] = ToActivityResponse(&s.activities[i], s.catalog)
	}
	return out
}

// Scores returns the current derived score aggregate
func (s *ActivityService) Scores(_ context.Context) ScoreResponse {
	s.mu.Lock()
	defer s.mu.Unlock()
	return ToScoreResponse(s.scores, s.target)
}

// indexOf returns the position of an activity by ID, or -1.
// Caller must hold the mutex.
func (s *ActivityService) indexOf(id string) int {
	for i := range s.activities {
		if s.activities[i].ID.String() == id {
			return i
		}
	}
	return -1
}

// persist writes the full updated collection to the durable store.
// Caller must hold the mutex.
func (s *ActivityService) persist(ctx context.Context, updated []competency.Activity) error {
	if err := s.repo.Save(ctx, updated); err != nil {
		s.logger.Error("Failed to persist activity collection", zap.Error(err))
		return shared.ErrPersistenceFailure
	}
	return nil
}

// commit swaps in the persisted collection and recomputes the aggregate
// from scratch. Caller must hold the mutex.
func (s *ActivityService) commit(updated []competency.Activity) {
	s.activities = updated
	s.scores = competency.Recompute(s.activities, s.catalog)
}

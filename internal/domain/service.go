package domain

import (
	"context"

	"github.com/google/uuid"
)

// SessionRepository captures persistence operations for sessions.
type SessionRepository interface {
	List(ctx context.Context, typeFilter string) ([]Session, error)
	Get(ctx context.Context, id string) (*Session, error)
	Create(ctx context.Context, session Session) error
	Update(ctx context.Context, id string, patch Patch) (bool, error)
	Delete(ctx context.Context, id string) (bool, error)
	Ping(ctx context.Context) error
}

// Patch describes a partial update; nil fields are left untouched.
type Patch struct {
	Date     *string
	Distance *float64
	Type     *string
}

// CreateInput carries the create payload from the API layer. Distance is nil
// when the field was absent from the request body.
type CreateInput struct {
	ID       string
	Date     string
	Distance *float64
	Type     string
}

// UpdateInput carries the partial-update payload; nil fields were absent.
type UpdateInput struct {
	Date     *string
	Distance *float64
	Type     *string
}

// Service orchestrates session workflows over the repository.
type Service struct {
	repo SessionRepository
}

// NewService constructs a Service.
func NewService(repo SessionRepository) *Service {
	return &Service{repo: repo}
}

// Ping reports database liveness.
func (s *Service) Ping(ctx context.Context) error {
	return s.repo.Ping(ctx)
}

// List returns all sessions ordered by date ascending. A non-empty typeFilter
// is normalized and must be a valid activity type.
func (s *Service) List(ctx context.Context, typeFilter string) ([]Session, error) {
	filter := ""
	if typeFilter != "" {
		filter = NormalizeType(typeFilter)
		if !ValidType(filter) {
			return nil, invalidf("type must be one of swim, run")
		}
	}
	return s.repo.List(ctx, filter)
}

// Get retrieves a single session by id.
func (s *Service) Get(ctx context.Context, id string) (*Session, error) {
	session, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if session == nil {
		return nil, ErrNotFound
	}
	return session, nil
}

// Create validates and persists a new session, generating an id when the
// client did not supply one.
func (s *Service) Create(ctx context.Context, input CreateInput) (*Session, error) {
	if input.Date == "" {
		return nil, invalidf("date is required")
	}
	if input.Distance == nil {
		return nil, invalidf("distance is required")
	}
	if !ValidDistance(*input.Distance) {
		return nil, invalidf("distance must be a finite number greater than zero")
	}
	activityType := NormalizeType(input.Type)
	if !ValidType(activityType) {
		return nil, invalidf("type must be one of swim, run")
	}

	session := Session{
		ID:       input.ID,
		Date:     input.Date,
		Distance: *input.Distance,
		Type:     activityType,
	}
	if session.ID == "" {
		session.ID = uuid.NewString()
	}

	if err := s.repo.Create(ctx, session); err != nil {
		return nil, err
	}
	return &session, nil
}

// Update applies a partial update. Every supplied field is validated before
// the row is touched; the persisted row is re-read and returned afterwards.
func (s *Service) Update(ctx context.Context, id string, input UpdateInput) (*Session, error) {
	var patch Patch

	if input.Date != nil {
		if *input.Date == "" {
			return nil, invalidf("date must be non-empty")
		}
		patch.Date = input.Date
	}
	if input.Distance != nil {
		if !ValidDistance(*input.Distance) {
			return nil, invalidf("distance must be a finite number greater than zero")
		}
		patch.Distance = input.Distance
	}
	if input.Type != nil {
		activityType := NormalizeType(*input.Type)
		if !ValidType(activityType) {
			return nil, invalidf("type must be one of swim, run")
		}
		patch.Type = &activityType
	}

	if patch.Date == nil && patch.Distance == nil && patch.Type == nil {
		return nil, invalidf("at least one of date, distance, type is required")
	}

	matched, err := s.repo.Update(ctx, id, patch)
	if err != nil {
		return nil, err
	}
	if !matched {
		return nil, ErrNotFound
	}
	return s.Get(ctx, id)
}

// Delete removes a session by id.
func (s *Service) Delete(ctx context.Context, id string) error {
	matched, err := s.repo.Delete(ctx, id)
	if err != nil {
		return err
	}
	if !matched {
		return ErrNotFound
	}
	return nil
}

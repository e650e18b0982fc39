package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/tally-dev/tally/internal/id"
	"github.com/tally-dev/tally/internal/logging"
	"github.com/tally-dev/tally/internal/model"
)

// DefaultKey is the slot key holding the expense collection.
const DefaultKey = "household_expenses"

var (
	// ErrNotFound is returned when no record has the requested id.
	ErrNotFound = errors.New("expense not found")
	// ErrCorrupt is returned when the stored collection cannot be decoded.
	ErrCorrupt = errors.New("stored expenses are corrupt")
)

// Store persists the whole expense collection as one blob in a Slot. Every
// mutation reloads, modifies, and rewrites the full collection; a Store is
// meant for a single writer.
type Store struct {
	slot   Slot
	key    string
	logger *slog.Logger
	now    func() time.Time
	newID  func() string
}

// Option configures a Store.
type Option func(*Store)

// WithKey overrides the slot key.
func WithKey(key string) Option {
	return func(s *Store) { s.key = key }
}

// WithLogger sets the logger used for load and save failures.
func WithLogger(l *slog.Logger) Option {
	return func(s *Store) { s.logger = l }
}

// WithClock sets the time source for CreatedAt/UpdatedAt.
func WithClock(now func() time.Time) Option {
	return func(s *Store) { s.now = now }
}

// WithIDFunc sets the identifier generator.
func WithIDFunc(f func() string) Option {
	return func(s *Store) { s.newID = f }
}

// New creates a Store over slot.
func New(slot Slot, opts ...Option) *Store {
	s := &Store{
		slot:   slot,
		key:    DefaultKey,
		logger: logging.Discard(),
		now:    time.Now,
		newID:  id.New,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// LoadAll returns the stored collection in stored order. A missing blob is an
// empty collection. On any failure the returned slice is empty (never nil) and
// the error says why; ErrCorrupt marks undecodable data.
func (s *Store) LoadAll(ctx context.Context) ([]model.Expense, error) {
	data, err := s.slot.Get(ctx, s.key)
	if errors.Is(err, ErrSlotEmpty) {
		return []model.Expense{}, nil
	}
	if err != nil {
		s.logger.Error("failed to load expenses", "key", s.key, "error", err)
		return []model.Expense{}, fmt.Errorf("loading expenses: %w", err)
	}
	if len(strings.TrimSpace(string(data))) == 0 {
		return []model.Expense{}, nil
	}

	var records []model.Expense
	if err := json.Unmarshal(data, &records); err != nil {
		s.logger.Error("failed to decode expenses", "key", s.key, "bytes", len(data), "error", err)
		return []model.Expense{}, fmt.Errorf("%w: %v", ErrCorrupt, err)
	}
	if records == nil {
		records = []model.Expense{}
	}
	return records, nil
}

// SaveAll replaces the stored collection with records in one write.
func (s *Store) SaveAll(ctx context.Context, records []model.Expense) error {
	if records == nil {
		records = []model.Expense{}
	}
	data, err := json.Marshal(records)
	if err != nil {
		s.logger.Error("failed to encode expenses", "key", s.key, "error", err)
		return fmt.Errorf("encoding expenses: %w", err)
	}
	if err := s.slot.Put(ctx, s.key, data); err != nil {
		s.logger.Error("failed to save expenses", "key", s.key, "count", len(records), "error", err)
		return fmt.Errorf("saving expenses: %w", err)
	}
	s.logger.Debug("saved expenses", "key", s.key, "count", len(records))
	return nil
}

// Create validates input, assigns an id and timestamps, and appends the new
// record to the stored collection.
func (s *Store) Create(ctx context.Context, input model.NewExpense) (model.Expense, error) {
	if err := input.Validate(); err != nil {
		return model.Expense{}, err
	}

	records, err := s.LoadAll(ctx)
	if err != nil {
		return model.Expense{}, err
	}

	now := s.now().UTC()
	e := model.Expense{
		ID:          s.newID(),
		Description: strings.TrimSpace(input.Description),
		Amount:      input.Amount,
		Category:    input.Category,
		Date:        input.Date,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	records = append(records, e)
	if err := s.SaveAll(ctx, records); err != nil {
		return model.Expense{}, err
	}
	return e, nil
}

// CreateAll appends every input in one write. Nothing is stored unless all
// inputs are valid.
func (s *Store) CreateAll(ctx context.Context, inputs []model.NewExpense) ([]model.Expense, error) {
	for i, input := range inputs {
		if err := input.Validate(); err != nil {
			return nil, fmt.Errorf("expense %d: %w", i+1, err)
		}
	}

	records, err := s.LoadAll(ctx)
	if err != nil {
		return nil, err
	}

	now := s.now().UTC()
	created := make([]model.Expense, 0, len(inputs))
	for _, input := range inputs {
		created = append(created, model.Expense{
			ID:          s.newID(),
			Description: strings.TrimSpace(input.Description),
			Amount:      input.Amount,
			Category:    input.Category,
			Date:        input.Date,
			CreatedAt:   now,
			UpdatedAt:   now,
		})
	}
	if len(created) == 0 {
		return created, nil
	}

	records = append(records, created...)
	if err := s.SaveAll(ctx, records); err != nil {
		return nil, err
	}
	return created, nil
}

// Get returns the record with the given id.
func (s *Store) Get(ctx context.Context, expenseID string) (model.Expense, error) {
	records, err := s.LoadAll(ctx)
	if err != nil {
		return model.Expense{}, err
	}
	i := indexOf(records, expenseID)
	if i < 0 {
		return model.Expense{}, fmt.Errorf("%w: %s", ErrNotFound, expenseID)
	}
	return records[i], nil
}

// Update merges patch over the record with the given id and refreshes
// UpdatedAt. The stored collection is untouched when the id is unknown.
func (s *Store) Update(ctx context.Context, expenseID string, patch model.Patch) (model.Expense, error) {
	if err := patch.Validate(); err != nil {
		return model.Expense{}, err
	}

	records, err := s.LoadAll(ctx)
	if err != nil {
		return model.Expense{}, err
	}

	i := indexOf(records, expenseID)
	if i < 0 {
		return model.Expense{}, fmt.Errorf("%w: %s", ErrNotFound, expenseID)
	}

	updated := patch.Apply(records[i])
	updated.UpdatedAt = s.now().UTC()
	if updated.UpdatedAt.Before(updated.CreatedAt) {
		updated.UpdatedAt = updated.CreatedAt
	}
	records[i] = updated

	if err := s.SaveAll(ctx, records); err != nil {
		return model.Expense{}, err
	}
	return updated, nil
}

// Delete removes the record with the given id and reports whether one was
// removed. Nothing is written when the id is unknown.
func (s *Store) Delete(ctx context.Context, expenseID string) (bool, error) {
	records, err := s.LoadAll(ctx)
	if err != nil {
		return false, err
	}

	i := indexOf(records, expenseID)
	if i < 0 {
		return false, nil
	}

	records = append(records[:i], records[i+1:]...)
	if err := s.SaveAll(ctx, records); err != nil {
		return false, err
	}
	return true, nil
}

func indexOf(records []model.Expense, expenseID string) int {
	for i, r := range records {
		if r.ID == expenseID {
			return i
		}
	}
	return -1
}

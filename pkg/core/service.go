package core

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"sync"
)

// Service owns the in-memory task list and keeps it in step with the Repository.
//
// Every mutation is persisted before it returns, and observers are notified only
// after a successful save. If the save fails the mutation is undone, so the list
// in memory always equals the list in storage.
//
// Service is meant to be driven from a single goroutine (the UI loop). The mutex
// only protects against a background Reload racing a mutation.
type Service struct {
	mu        sync.Mutex
	repo      Repository
	logger    *slog.Logger
	tasks     []Task
	observers []subscription
	nextSubID int
}

type subscription struct {
	id  int
	obs Observer
}

// NewService creates a new Service. The list starts empty until Open is called.
func NewService(repo Repository, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Service{repo: repo, logger: logger}
}

// Open loads the persisted list, replacing whatever is in memory.
// Observers already subscribed receive Reset.
func (s *Service) Open(ctx context.Context) error {
	tasks, err := s.repo.Load(ctx)
	if err != nil {
		return fmt.Errorf("failed to load tasks: %w", err)
	}

	s.mu.Lock()
	s.tasks = tasks
	s.mu.Unlock()

	s.logger.Debug("task list loaded", "count", len(tasks))
	s.notify(func(o Observer) { o.Reset(len(tasks)) })
	return nil
}

// Reload re-reads the repository after an external change and resets observers.
// Observers are not notified when the stored list equals the one in memory,
// which is the case for changes this Service saved itself.
func (s *Service) Reload(ctx context.Context) error {
	// Held across the load so a concurrent mutation cannot be overwritten
	// by an older copy of the list.
	s.mu.Lock()
	tasks, err := s.repo.Load(ctx)
	if err != nil {
		s.mu.Unlock()
		return fmt.Errorf("failed to load tasks: %w", err)
	}
	if slices.Equal(s.tasks, tasks) {
		s.mu.Unlock()
		return nil
	}
	s.tasks = tasks
	s.mu.Unlock()

	s.logger.Debug("task list reloaded", "count", len(tasks))
	s.notify(func(o Observer) { o.Reset(len(tasks)) })
	return nil
}

// Subscribe registers obs for change notifications. The returned func unregisters it.
func (s *Service) Subscribe(obs Observer) (unsubscribe func()) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.nextSubID++
	id := s.nextSubID
	s.observers = append(s.observers, subscription{id: id, obs: obs})

	return func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		s.observers = slices.DeleteFunc(s.observers, func(sub subscription) bool {
			return sub.id == id
		})
	}
}

// Len returns the number of tasks.
func (s *Service) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.tasks)
}

// At returns the task at position i.
func (s *Service) At(i int) (Task, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := checkRange(i, len(s.tasks)); err != nil {
		return Task{}, err
	}
	return s.tasks[i], nil
}

// Tasks returns a copy of the list.
func (s *Service) Tasks() []Task {
	s.mu.Lock()
	defer s.mu.Unlock()
	return slices.Clone(s.tasks)
}

// Add appends t and persists the list. It returns the new task's position.
func (s *Service) Add(ctx context.Context, t Task) (int, error) {
	s.mu.Lock()
	next := append(slices.Clone(s.tasks), t)
	if err := s.commitLocked(ctx, next); err != nil {
		s.mu.Unlock()
		return -1, err
	}
	index := len(next) - 1
	s.mu.Unlock()

	s.logger.Debug("task added", "index", index, "count", index+1)
	s.notify(func(o Observer) { o.Inserted(index) })
	return index, nil
}

// Update replaces the task at position i and persists the list.
// An out-of-range position is reported as ErrOutOfRange.
func (s *Service) Update(ctx context.Context, i int, t Task) error {
	s.mu.Lock()
	if err := checkRange(i, len(s.tasks)); err != nil {
		s.mu.Unlock()
		return err
	}
	next := slices.Clone(s.tasks)
	next[i] = t
	if err := s.commitLocked(ctx, next); err != nil {
		s.mu.Unlock()
		return err
	}
	s.mu.Unlock()

	s.logger.Debug("task updated", "index", i)
	s.notify(func(o Observer) { o.Changed(i) })
	return nil
}

// Remove deletes the task at position i and persists the list.
// Every later task moves down by one position.
func (s *Service) Remove(ctx context.Context, i int) error {
	s.mu.Lock()
	if err := checkRange(i, len(s.tasks)); err != nil {
		s.mu.Unlock()
		return err
	}
	next := slices.Delete(slices.Clone(s.tasks), i, i+1)
	if err := s.commitLocked(ctx, next); err != nil {
		s.mu.Unlock()
		return err
	}
	n := len(next)
	s.mu.Unlock()

	s.logger.Debug("task removed", "index", i, "count", n)
	s.notify(func(o Observer) {
		o.Removed(i)
		o.RangeChanged(i, n-i)
	})
	return nil
}

// Submit validates a form and applies it as an add or an update.
// A blank description returns ErrEmptyDescription and leaves the list untouched.
func (s *Service) Submit(ctx context.Context, f *Form) (int, error) {
	t, err := f.Task()
	if err != nil {
		return -1, err
	}
	if !f.IsEdit() {
		return s.Add(ctx, t)
	}
	if err := s.Update(ctx, f.Position, t); err != nil {
		return -1, err
	}
	return f.Position, nil
}

// commitLocked persists next and, on success, makes it the current list.
func (s *Service) commitLocked(ctx context.Context, next []Task) error {
	if err := s.repo.Save(ctx, next); err != nil {
		if errors.Is(err, ErrReadOnly) {
			return err
		}
		return fmt.Errorf("failed to save tasks: %w", err)
	}
	s.tasks = next
	return nil
}

func (s *Service) notify(fn func(Observer)) {
	s.mu.Lock()
	subs := slices.Clone(s.observers)
	s.mu.Unlock()

	for _, sub := range subs {
		fn(sub.obs)
	}
}

func checkRange(i, n int) error {
	if i < 0 || i >= n {
		return fmt.Errorf("%w: position %d, length %d", ErrOutOfRange, i, n)
	}
	return nil
}

package task

import (
	"context"
	"log"
	"time"

	domain "github.com/example/study-task-manager/domain/task"
)

// CreateInput carries the client-supplied fields of a new task.
type CreateInput struct {
	Title       string
	Description string
	Status      string
	ImageURL    string
}

// Service implements owner-scoped task operations.
type Service struct {
	repo *Repository
	now  func() time.Time
}

// NewService creates a new task service.
func NewService(repo *Repository) *Service {
	return &Service{
		repo: repo,
		now:  time.Now,
	}
}

// List returns every task owned by ownerID, most recent first.
func (s *Service) List(ctx context.Context, ownerID uint) ([]domain.Task, error) {
	if ownerID == 0 {
		return nil, domain.ErrOwnerRequired
	}
	return s.repo.ListByOwner(ctx, ownerID)
}

// Create stores a new task for ownerID. Empty optional fields fall back to
// their defaults.
func (s *Service) Create(ctx context.Context, ownerID uint, in CreateInput) (*domain.Task, error) {
	if ownerID == 0 {
		return nil, domain.ErrOwnerRequired
	}
	if in.Title == "" {
		return nil, domain.ErrTitleRequired
	}

	status := in.Status
	if status == "" {
		status = string(domain.StatusPending)
	}

	var imageURL *string
	if in.ImageURL != "" {
		url := in.ImageURL
		imageURL = &url
	}

	now := s.now()
	task := &domain.Task{
		Title:       in.Title,
		Description: in.Description,
		Status:      status,
		ImageURL:    imageURL,
		UserID:      ownerID,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := s.repo.Create(ctx, task); err != nil {
		return nil, err
	}

	warnUnknownStatus(task)
	log.Printf("[task] Created task %d for user %d (%s)", task.ID, ownerID, domain.Status(task.Status).Label())
	return task, nil
}

// Get returns the task if ownerID owns it.
func (s *Service) Get(ctx context.Context, ownerID, id uint) (*domain.Task, error) {
	if ownerID == 0 {
		return nil, domain.ErrOwnerRequired
	}
	return s.repo.FindByOwner(ctx, id, ownerID)
}

// Update applies patch to the caller's task and returns the result.
// Concurrent updates are last-write-wins.
func (s *Service) Update(ctx context.Context, ownerID, id uint, patch domain.Patch) (*domain.Task, error) {
	task, err := s.Get(ctx, ownerID, id)
	if err != nil {
		return nil, err
	}

	if patch.Empty() {
		return task, nil
	}

	previous := task.Status
	patch.Apply(task)
	task.UpdatedAt = s.now()

	if err := s.repo.UpdateFields(ctx, task); err != nil {
		return nil, err
	}

	if task.Status != previous {
		warnUnknownStatus(task)
		log.Printf("[task] Task %d moved from %s to %s",
			task.ID, domain.Status(previous).Label(), domain.Status(task.Status).Label())
	}
	return task, nil
}

// Delete permanently removes the caller's task.
func (s *Service) Delete(ctx context.Context, ownerID, id uint) error {
	if ownerID == 0 {
		return domain.ErrOwnerRequired
	}
	if err := s.repo.DeleteByOwner(ctx, id, ownerID); err != nil {
		return err
	}
	log.Printf("[task] Deleted task %d for user %d", id, ownerID)
	return nil
}

func warnUnknownStatus(task *domain.Task) {
	if !domain.Status(task.Status).Known() {
		log.Printf("[task] Task %d stored with non-standard status %q", task.ID, task.Status)
	}
}

package task

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	domain "github.com/example/study-task-manager/domain/task"
	"github.com/go-monolith/mono"
	"github.com/go-monolith/mono/pkg/helper"
)

// TaskPort is the interface other modules use to reach the task module.
// Every call acts on behalf of ownerID.
type TaskPort interface {
	List(ctx context.Context, ownerID uint) ([]domain.Task, error)
	Create(ctx context.Context, ownerID uint, in CreateInput) (*domain.Task, error)
	Get(ctx context.Context, ownerID, id uint) (*domain.Task, error)
	Update(ctx context.Context, ownerID, id uint, patch domain.Patch) (*domain.Task, error)
	Delete(ctx context.Context, ownerID, id uint) error
}

// TaskAdapter implements TaskPort using the service container.
type TaskAdapter struct {
	container mono.ServiceContainer
}

var _ TaskPort = (*TaskAdapter)(nil)

// The service itself satisfies the port, which lets tests skip the bus.
var _ TaskPort = (*Service)(nil)

// NewTaskAdapter creates a new TaskAdapter.
func NewTaskAdapter(container mono.ServiceContainer) *TaskAdapter {
	return &TaskAdapter{
		container: container,
	}
}

// List returns the owner's tasks.
func (a *TaskAdapter) List(ctx context.Context, ownerID uint) ([]domain.Task, error) {
	req := ListTasksRequest{OwnerID: ownerID}
	var resp ListTasksResponse
	if err := callService(ctx, a.container, "list-tasks", &req, &resp); err != nil {
		return nil, err
	}
	if resp.Tasks == nil {
		resp.Tasks = []domain.Task{}
	}
	return resp.Tasks, nil
}

// Create stores a new task owned by ownerID.
func (a *TaskAdapter) Create(ctx context.Context, ownerID uint, in CreateInput) (*domain.Task, error) {
	req := CreateTaskRequest{
		OwnerID:     ownerID,
		Title:       in.Title,
		Description: in.Description,
		Status:      in.Status,
		ImageURL:    in.ImageURL,
	}
	var resp domain.Task
	if err := callService(ctx, a.container, "create-task", &req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// Get fetches one of the owner's tasks.
func (a *TaskAdapter) Get(ctx context.Context, ownerID, id uint) (*domain.Task, error) {
	req := GetTaskRequest{ID: id, OwnerID: ownerID}
	var resp domain.Task
	if err := callService(ctx, a.container, "get-task", &req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// Update applies a partial update to one of the owner's tasks.
func (a *TaskAdapter) Update(ctx context.Context, ownerID, id uint, patch domain.Patch) (*domain.Task, error) {
	req := UpdateTaskRequest{ID: id, OwnerID: ownerID, Patch: patch}
	var resp domain.Task
	if err := callService(ctx, a.container, "update-task", &req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// Delete removes one of the owner's tasks.
func (a *TaskAdapter) Delete(ctx context.Context, ownerID, id uint) error {
	req := DeleteTaskRequest{ID: id, OwnerID: ownerID}
	var resp DeleteTaskResponse
	return callService(ctx, a.container, "delete-task", &req, &resp)
}

// callService sends req to a request-reply service and decodes the reply
// into resp.
func callService[Req, Resp any](ctx context.Context, container mono.ServiceContainer, service string, req *Req, resp *Resp) error {
	if err := helper.CallRequestReplyService(
		ctx,
		container,
		service,
		json.Marshal,
		json.Unmarshal,
		req,
		resp,
	); err != nil {
		return mapServiceError(service, err)
	}
	return nil
}

// mapServiceError restores the sentinel errors whose text crossed the bus.
func mapServiceError(service string, err error) error {
	msg := err.Error()

	switch {
	case strings.Contains(msg, domain.ErrTaskNotFound.Error()):
		return domain.ErrTaskNotFound
	case strings.Contains(msg, domain.ErrTitleRequired.Error()):
		return domain.ErrTitleRequired
	case strings.Contains(msg, domain.ErrOwnerRequired.Error()):
		return domain.ErrOwnerRequired
	}

	return fmt.Errorf("%s request failed: %w", service, err)
}

package task

import (
	domain "github.com/example/study-task-manager/domain/task"
)

// CreateTaskRequest represents a create task request.
type CreateTaskRequest struct {
	OwnerID     uint   `json:"owner_id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Status      string `json:"status"`
	ImageURL    string `json:"image_url"`
}

// ListTasksRequest represents a list tasks request.
type ListTasksRequest struct {
	OwnerID uint `json:"owner_id"`
}

// ListTasksResponse represents a list tasks response.
type ListTasksResponse struct {
	Tasks []domain.Task `json:"tasks"`
}

// GetTaskRequest represents a get task request.
type GetTaskRequest struct {
	ID      uint `json:"id"`
	OwnerID uint `json:"owner_id"`
}

// UpdateTaskRequest represents an update task request. Fields missing from
// Patch are left untouched.
type UpdateTaskRequest struct {
	ID      uint         `json:"id"`
	OwnerID uint         `json:"owner_id"`
	Patch   domain.Patch `json:"patch"`
}

// DeleteTaskRequest represents a delete task request.
type DeleteTaskRequest struct {
	ID      uint `json:"id"`
	OwnerID uint `json:"owner_id"`
}

// DeleteTaskResponse represents a delete task response.
type DeleteTaskResponse struct {
	Deleted bool `json:"deleted"`
}

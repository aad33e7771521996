package api

import (
	"errors"
	"log"

	domain "github.com/example/study-task-manager/domain/task"
	"github.com/example/study-task-manager/domain/user"
	"github.com/example/study-task-manager/modules/task"
	"github.com/gofiber/fiber/v2"
)

// TaskHandlers serves the /api/tasks routes. Every handler acts only on the
// caller's own tasks.
type TaskHandlers struct {
	tasks task.TaskPort
}

// NewTaskHandlers creates a new TaskHandlers instance.
func NewTaskHandlers(tasks task.TaskPort) *TaskHandlers {
	return &TaskHandlers{tasks: tasks}
}

// List returns the caller's tasks, most recent first.
func (h *TaskHandlers) List(c *fiber.Ctx, caller *user.Claims) error {
	tasks, err := h.tasks.List(c.UserContext(), caller.UserID)
	if err != nil {
		log.Printf("[api] Failed to list tasks for user %d: %v", caller.UserID, err)
		return internalError(c)
	}
	if tasks == nil {
		tasks = []domain.Task{}
	}
	return c.JSON(tasks)
}

// Create stores a new task owned by the caller.
func (h *TaskHandlers) Create(c *fiber.Ctx, caller *user.Claims) error {
	var req CreateTaskRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}

	if req.Title == "" {
		return badRequest(c, "Title is required")
	}

	created, err := h.tasks.Create(c.UserContext(), caller.UserID, task.CreateInput{
		Title:       req.Title,
		Description: req.Description,
		Status:      req.Status,
		ImageURL:    req.ImageURL,
	})
	if err != nil {
		if errors.Is(err, domain.ErrTitleRequired) {
			return badRequest(c, "Title is required")
		}
		log.Printf("[api] Failed to create task for user %d: %v", caller.UserID, err)
		return internalError(c)
	}

	return c.Status(fiber.StatusCreated).JSON(created)
}

// Get returns one of the caller's tasks.
func (h *TaskHandlers) Get(c *fiber.Ctx, caller *user.Claims) error {
	id, err := domain.ParseID(c.Params("id"))
	if err != nil {
		return badRequest(c, "Invalid id")
	}

	found, err := h.tasks.Get(c.UserContext(), caller.UserID, id)
	if err != nil {
		if errors.Is(err, domain.ErrTaskNotFound) {
			return notFound(c)
		}
		log.Printf("[api] Failed to get task %d for user %d: %v", id, caller.UserID, err)
		return internalError(c)
	}

	return c.JSON(found)
}

// Update applies a partial update. Fields absent from the body keep their
// values; see domain.Patch for the per-field rules.
func (h *TaskHandlers) Update(c *fiber.Ctx, caller *user.Claims) error {
	id, err := domain.ParseID(c.Params("id"))
	if err != nil {
		return badRequest(c, "Invalid id")
	}

	var patch domain.Patch
	if err := c.BodyParser(&patch); err != nil {
		return badRequest(c, "Invalid request body")
	}

	updated, err := h.tasks.Update(c.UserContext(), caller.UserID, id, patch)
	if err != nil {
		if errors.Is(err, domain.ErrTaskNotFound) {
			return notFound(c)
		}
		log.Printf("[api] Failed to update task %d for user %d: %v", id, caller.UserID, err)
		return rawError(c, err)
	}

	return c.JSON(updated)
}

// Delete permanently removes one of the caller's tasks.
func (h *TaskHandlers) Delete(c *fiber.Ctx, caller *user.Claims) error {
	id, err := domain.ParseID(c.Params("id"))
	if err != nil {
		return badRequest(c, "Invalid id")
	}

	if err := h.tasks.Delete(c.UserContext(), caller.UserID, id); err != nil {
		if errors.Is(err, domain.ErrTaskNotFound) {
			return notFound(c)
		}
		log.Printf("[api] Failed to delete task %d for user %d: %v", id, caller.UserID, err)
		return rawError(c, err)
	}

	return c.JSON(OKResponse{OK: true})
}

func notFound(c *fiber.Ctx) error {
	return c.Status(fiber.StatusNotFound).JSON(ErrorResponse{
		Error:   "not_found",
		Message: "Not found",
	})
}

// rawError echoes the error text to the client. Existing clients display it.
func rawError(c *fiber.Ctx, err error) error {
	return c.Status(fiber.StatusInternalServerError).JSON(ErrorResponse{
		Error:   "internal_error",
		Message: err.Error(),
	})
}

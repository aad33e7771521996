package api

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"

	"github.com/example/study-task-manager/modules/auth"
	"github.com/example/study-task-manager/modules/task"
	"github.com/go-monolith/mono"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/utils"
	"github.com/gofiber/storage/redis/v3"
)

// APIModule is the HTTP API module.
type APIModule struct {
	app          *fiber.App
	config       Config
	authAdapter  auth.AuthPort
	taskAdapter  task.TaskPort
	redisStorage *redis.Storage
}

// Compile-time interface checks.
var _ mono.Module = (*APIModule)(nil)
var _ mono.DependentModule = (*APIModule)(nil)
var _ mono.HealthCheckableModule = (*APIModule)(nil)

// NewModule creates a new APIModule configured from the environment.
func NewModule() *APIModule {
	return &APIModule{
		config: LoadConfig(),
	}
}

// Name returns the module name.
func (m *APIModule) Name() string {
	return "api"
}

// Dependencies returns the list of module dependencies.
func (m *APIModule) Dependencies() []string {
	return []string{"auth", "task"}
}

// SetDependencyServiceContainer receives service containers from dependencies.
func (m *APIModule) SetDependencyServiceContainer(dependency string, container mono.ServiceContainer) {
	switch dependency {
	case "auth":
		m.authAdapter = auth.NewAuthAdapter(container)
	case "task":
		m.taskAdapter = task.NewTaskAdapter(container)
	}
}

// Start initializes the Fiber HTTP server.
func (m *APIModule) Start(_ context.Context) error {
	if m.authAdapter == nil {
		return fmt.Errorf("auth dependency not set")
	}
	if m.taskAdapter == nil {
		return fmt.Errorf("task dependency not set")
	}

	var storage fiber.Storage
	if m.config.RedisAddr != "" {
		redisStorage, err := newRedisStorage(m.config.RedisAddr)
		if err != nil {
			return err
		}
		m.redisStorage = redisStorage
		storage = redisStorage
	}

	m.app = newApp(m.authAdapter, m.taskAdapter, m.config, storage)

	go func() {
		if err := m.app.Listen(m.config.Addr); err != nil {
			log.Printf("[api] HTTP server error: %v", err)
		}
	}()

	log.Printf("[api] HTTP server started on %s", m.config.Addr)
	return nil
}

// Stop shuts down the Fiber HTTP server.
func (m *APIModule) Stop(_ context.Context) error {
	var errs []error
	if m.app != nil {
		log.Println("[api] Shutting down HTTP server...")
		errs = append(errs, m.app.Shutdown())
	}
	if m.redisStorage != nil {
		errs = append(errs, m.redisStorage.Close())
	}
	return errors.Join(errs...)
}

// Health returns the health status of the module.
func (m *APIModule) Health(_ context.Context) mono.HealthStatus {
	rateLimitStore := "memory"
	if m.redisStorage != nil {
		rateLimitStore = "redis"
	}
	return mono.HealthStatus{
		Healthy: m.app != nil,
		Message: "operational",
		Details: map[string]any{
			"addr":             m.config.Addr,
			"rate_limit_store": rateLimitStore,
		},
	}
}

// newApp builds the Fiber application with all routes. A nil storage keeps
// rate-limit counters in memory.
func newApp(authPort auth.AuthPort, taskPort task.TaskPort, config Config, storage fiber.Storage) *fiber.App {
	app := fiber.New(fiber.Config{
		DisableStartupMessage: true,
		ErrorHandler:          customErrorHandler,
	})

	app.Use(recover.New())
	app.Use(logger.New(logger.Config{
		Format: "[${time}] ${status} - ${latency} ${method} ${path}\n",
	}))
	app.Use(cors.New())

	handlers := NewHandlers(authPort, config.CookieSecure)
	taskHandlers := NewTaskHandlers(taskPort)
	session := SessionMiddleware(authPort)

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status": "healthy",
			"module": "api",
		})
	})

	api := app.Group("/api")

	authRoutes := api.Group("/auth", newRateLimiter(config, storage))
	authRoutes.Post("/register", handlers.Register)
	authRoutes.Post("/login", handlers.Login)
	authRoutes.Post("/refresh", handlers.Refresh)
	authRoutes.Post("/logout", handlers.Logout)
	authRoutes.Get("/session", session, authenticated(handlers.Session))

	// Session is checked before any id or body validation.
	tasks := api.Group("/tasks", session)
	tasks.Get("/", authenticated(taskHandlers.List))
	tasks.Post("/", authenticated(taskHandlers.Create))
	tasks.Get("/:id", authenticated(taskHandlers.Get))
	tasks.Put("/:id", authenticated(taskHandlers.Update))
	tasks.Delete("/:id", authenticated(taskHandlers.Delete))

	return app
}

// customErrorHandler renders Fiber errors in the API's error shape.
func customErrorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	message := "An error occurred"

	var e *fiber.Error
	if errors.As(err, &e) {
		code = e.Code
		message = e.Message
	} else {
		log.Printf("[api] Unhandled error on %s %s: %v", c.Method(), c.Path(), err)
	}

	return c.Status(code).JSON(ErrorResponse{
		Error:   errorCode(code),
		Message: message,
	})
}

// errorCode returns the snake_case label used in ErrorResponse.Error.
func errorCode(status int) string {
	switch status {
	case fiber.StatusInternalServerError:
		return "internal_error"
	case fiber.StatusTooManyRequests:
		return "too_many_requests"
	}
	label := strings.ToLower(utils.StatusMessage(status))
	if label == "" {
		return "internal_error"
	}
	return strings.ReplaceAll(label, " ", "_")
}

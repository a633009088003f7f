// Package httpapi exposes the task service over HTTP/JSON. It is the single
// entry point for the presentation layer: authentication happens in the
// requireAuth middleware, and every /api handler receives the caller's
// identity from there.
package httpapi

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/dkoval/tasktrack/internal/logging"
	"github.com/dkoval/tasktrack/internal/server/services"
	"github.com/labstack/echo/v4"
)

const shutdownTimeout = 5 * time.Second

type Server struct {
	address   string
	users     *services.UserService
	tasks     *services.TaskService
	logger    logging.Logger
	jwtSecret []byte
}

func NewServer(a string, l logging.Logger, us *services.UserService, ts *services.TaskService, secretKey string) (*Server, error) {
	return &Server{
		address:   a,
		logger:    l.With("module", "httpapi"),
		users:     us,
		tasks:     ts,
		jwtSecret: []byte(secretKey),
	}, nil
}

// routes builds the echo instance with all endpoints registered. Split out
// from Run so tests can drive handlers without a listening socket.
func (s *Server) routes() *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	e.POST("/register", s.register)
	e.POST("/login", s.login)

	api := e.Group("/api", s.requireAuth)
	api.GET("/tasks", s.listActiveTasks)
	api.GET("/tasks/archived", s.listArchivedTasks)
	api.POST("/tasks", s.createTask)
	api.PATCH("/tasks/:id", s.patchTask)
	api.PUT("/tasks/:id/complete", s.completeTask)
	api.PUT("/tasks/:id/uncomplete", s.uncompleteTask)
	api.PUT("/tasks/:id/archive", s.archiveTask)
	api.PUT("/tasks/:id/restore", s.restoreTask)
	api.DELETE("/tasks/:id", s.deleteTask)
	api.PUT("/profile", s.updateProfile)

	return e
}

func (s *Server) Run(ctx context.Context) error {

	e := s.routes()

	go func() {
		<-ctx.Done()
		s.logger.Info(ctx, "Stopping HTTP server...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := e.Shutdown(shutdownCtx); err != nil {
			s.logger.Error(ctx, "shutdown error", "error", err.Error())
		}
	}()

	s.logger.Info(ctx, "Starting HTTP server", "address", s.address)

	if err := e.Start(s.address); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}

	return nil
}

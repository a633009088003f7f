package httpapi

import (
	"errors"
	"net/http"
	"time"

	"github.com/dkoval/tasktrack/internal/common"
	"github.com/dkoval/tasktrack/internal/server/models"
	"github.com/dkoval/tasktrack/internal/server/query"
	"github.com/dkoval/tasktrack/internal/server/services"
	"github.com/labstack/echo/v4"
)

type credentialsRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type createTaskRequest struct {
	Text     string          `json:"text"`
	Category models.Category `json:"category"`
	Priority models.Priority `json:"priority"`
	DueDate  *time.Time      `json:"dueDate"`
}

type patchTaskRequest struct {
	Completed *bool `json:"completed"`
}

type profileRequest struct {
	Nickname string `json:"nickname"`
}

func (s *Server) register(c echo.Context) error {
	var req credentialsRequest
	if err := c.Bind(&req); err != nil {
		return s.writeError(c, common.ErrorValidation)
	}

	user, err := s.users.Register(c.Request().Context(), req.Username, req.Password)
	if err != nil {
		return s.writeError(c, err)
	}

	return c.JSON(http.StatusCreated, echo.Map{"userId": user.ID})
}

func (s *Server) login(c echo.Context) error {
	var req credentialsRequest
	if err := c.Bind(&req); err != nil {
		return s.writeError(c, common.ErrorValidation)
	}

	token, user, err := s.users.Login(c.Request().Context(), req.Username, req.Password)
	if err != nil {
		return s.writeError(c, err)
	}

	return c.JSON(http.StatusOK, echo.Map{"token": token, "user": user})
}

func (s *Server) listActiveTasks(c echo.Context) error {
	return s.listTasks(c, false)
}

func (s *Server) listArchivedTasks(c echo.Context) error {
	return s.listTasks(c, true)
}

func (s *Server) listTasks(c echo.Context, archived bool) error {
	identity := identityFrom(c)

	p := services.ListParams{
		Filter: query.Filter{Archived: archived},
		SortBy: query.SortKey(c.QueryParam("sortBy")),
		Order:  query.Order(c.QueryParam("order")),
	}
	if v := c.QueryParam("category"); v != "" {
		category := models.Category(v)
		p.Filter.Category = &category
	}
	if v := c.QueryParam("priority"); v != "" {
		priority := models.Priority(v)
		p.Filter.Priority = &priority
	}

	list, err := s.tasks.List(c.Request().Context(), identity.UserID, p)
	if err != nil {
		return s.writeError(c, err)
	}

	return c.JSON(http.StatusOK, list)
}

func (s *Server) createTask(c echo.Context) error {
	identity := identityFrom(c)

	var req createTaskRequest
	if err := c.Bind(&req); err != nil {
		return s.writeError(c, common.ErrorValidation)
	}

	task, err := s.tasks.Create(c.Request().Context(), identity.UserID,
		req.Text, req.Category, req.Priority, req.DueDate)
	if err != nil {
		return s.writeError(c, err)
	}

	return c.JSON(http.StatusCreated, task)
}

func (s *Server) patchTask(c echo.Context) error {
	identity := identityFrom(c)

	var req patchTaskRequest
	if err := c.Bind(&req); err != nil || req.Completed == nil {
		return s.writeError(c, common.ErrorValidation)
	}

	if err := s.tasks.SetCompleted(c.Request().Context(), identity.UserID, c.Param("id"), *req.Completed); err != nil {
		return s.writeError(c, err)
	}

	return c.JSON(http.StatusOK, echo.Map{"message": "Task updated successfully"})
}

func (s *Server) completeTask(c echo.Context) error {
	identity := identityFrom(c)
	if err := s.tasks.SetCompleted(c.Request().Context(), identity.UserID, c.Param("id"), true); err != nil {
		return s.writeError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "Task completed successfully"})
}

func (s *Server) uncompleteTask(c echo.Context) error {
	identity := identityFrom(c)
	if err := s.tasks.SetCompleted(c.Request().Context(), identity.UserID, c.Param("id"), false); err != nil {
		return s.writeError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "Task uncompleted successfully"})
}

func (s *Server) archiveTask(c echo.Context) error {
	identity := identityFrom(c)
	if err := s.tasks.Archive(c.Request().Context(), identity.UserID, c.Param("id")); err != nil {
		return s.writeError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "Task archived successfully"})
}

func (s *Server) restoreTask(c echo.Context) error {
	identity := identityFrom(c)
	if err := s.tasks.Restore(c.Request().Context(), identity.UserID, c.Param("id")); err != nil {
		return s.writeError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "Task restored successfully"})
}

func (s *Server) deleteTask(c echo.Context) error {
	identity := identityFrom(c)
	if err := s.tasks.Delete(c.Request().Context(), identity.UserID, c.Param("id")); err != nil {
		return s.writeError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "Task deleted successfully"})
}

func (s *Server) updateProfile(c echo.Context) error {
	identity := identityFrom(c)

	var req profileRequest
	if err := c.Bind(&req); err != nil {
		return s.writeError(c, common.ErrorValidation)
	}

	if err := s.users.UpdateNickname(c.Request().Context(), identity.UserID, req.Nickname); err != nil {
		return s.writeError(c, err)
	}

	return c.JSON(http.StatusOK, echo.Map{"message": "Profile updated successfully"})
}

// writeError maps service errors onto HTTP statuses. Validation failures keep
// their message so the caller can fix the request; internal failures are
// logged with full detail but answered with a generic body.
func (s *Server) writeError(c echo.Context, err error) error {
	switch {
	case errors.Is(err, common.ErrorValidation):
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	case errors.Is(err, common.ErrorUnauthorized):
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid credentials"})
	case errors.Is(err, common.ErrorMissingToken),
		errors.Is(err, common.ErrorInvalidToken),
		errors.Is(err, common.ErrorTokenExpired):
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": err.Error()})
	case errors.Is(err, common.ErrorNotFound):
		return c.JSON(http.StatusNotFound, echo.Map{"error": "not found"})
	case errors.Is(err, common.ErrorAlreadyExists):
		return c.JSON(http.StatusConflict, echo.Map{"error": "username already taken"})
	default:
		s.logger.Error(c.Request().Context(), "request failed",
			"method", c.Request().Method, "path", c.Path(), "error", err.Error())
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "internal error"})
	}
}

package httpapi

import (
	"context"
	"errors"
	"net/http"

	"github.com/dmitrijs2005/racfadmin/internal/common"
	"github.com/dmitrijs2005/racfadmin/internal/logging"
	"github.com/dmitrijs2005/racfadmin/internal/models"
	"github.com/gin-gonic/gin"
)

const (
	msgInvalidPayload = "Invalid user payload"
	msgNotFound       = "User not found"
	msgUnexpected     = "Unexpected server error"
)

// UserService is what the handlers need from the user store.
type UserService interface {
	List(ctx context.Context) ([]models.UserRecord, error)
	Create(ctx context.Context, p models.CreateUserPayload) (models.UserRecord, error)
	Update(ctx context.Context, id string, p models.UpdateUserPayload) (models.UserRecord, error)
	Delete(ctx context.Context, id string) error
}

type errorResponse struct {
	Message string  `json:"message"`
	Issues  []issue `json:"issues,omitempty"`
}

type issue struct {
	Message string `json:"message"`
	Path    string `json:"path"`
}

type handler struct {
	users  UserService
	logger logging.Logger
}

// NewRouter builds the gin engine with the /api routes and /metrics.
func NewRouter(us UserService, l logging.Logger, m *Metrics) *gin.Engine {
	h := &handler{users: us, logger: l}

	router := gin.New()
	router.Use(m.Middleware(), h.recovery(), requestLogger(l), corsMiddleware())

	router.GET("/metrics", gin.WrapH(m.Handler()))

	api := router.Group("/api")
	{
		api.GET("/health", h.health)
		api.GET("/users", h.listUsers)
		api.POST("/users", h.createUser)
		api.PUT("/users/:id", h.updateUser)
		api.DELETE("/users/:id", h.deleteUser)
	}
	return router
}

func (h *handler) health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func (h *handler) listUsers(c *gin.Context) {
	users, err := h.users.List(c.Request.Context())
	if err != nil {
		h.fail(c, err)
		return
	}
	if users == nil {
		users = []models.UserRecord{}
	}
	c.JSON(http.StatusOK, users)
}

func (h *handler) createUser(c *gin.Context) {
	var p models.CreateUserPayload
	if err := c.ShouldBindJSON(&p); err != nil {
		badBody(c, err)
		return
	}

	rec, err := h.users.Create(c.Request.Context(), p)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, rec)
}

func (h *handler) updateUser(c *gin.Context) {
	var p models.UpdateUserPayload
	if err := c.ShouldBindJSON(&p); err != nil {
		badBody(c, err)
		return
	}

	rec, err := h.users.Update(c.Request.Context(), c.Param("id"), p)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, rec)
}

func (h *handler) deleteUser(c *gin.Context) {
	if err := h.users.Delete(c.Request.Context(), c.Param("id")); err != nil {
		h.fail(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func badBody(c *gin.Context, err error) {
	c.JSON(http.StatusBadRequest, errorResponse{
		Message: msgInvalidPayload,
		Issues:  []issue{{Message: err.Error(), Path: ""}},
	})
}

func validationIssues(err error) ([]issue, bool) {
	var all common.ValidationErrors
	if errors.As(err, &all) {
		issues := make([]issue, 0, len(all))
		for _, v := range all {
			issues = append(issues, issue{Message: v.Message, Path: v.Field})
		}
		return issues, true
	}
	var one *common.ValidationError
	if errors.As(err, &one) {
		return []issue{{Message: one.Message, Path: one.Field}}, true
	}
	return nil, false
}

// fail maps a service error to its status code. Anything unrecognized is a
// 500 whose body carries no internal detail.
func (h *handler) fail(c *gin.Context, err error) {
	if issues, ok := validationIssues(err); ok {
		c.JSON(http.StatusBadRequest, errorResponse{Message: msgInvalidPayload, Issues: issues})
		return
	}

	var dup *common.DuplicateUserError
	switch {
	case errors.As(err, &dup):
		c.JSON(http.StatusConflict, errorResponse{Message: dup.Error()})
	case errors.Is(err, common.ErrNotFound):
		c.JSON(http.StatusNotFound, errorResponse{Message: msgNotFound})
	default:
		h.logger.Error(c.Request.Context(), "request failed", "method", c.Request.Method, "path", c.Request.URL.Path, "error", err)
		c.JSON(http.StatusInternalServerError, errorResponse{Message: msgUnexpected})
	}
}

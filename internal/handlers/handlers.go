package handlers

import (
	"context"
	"net/http"

	"github.com/01moynul/agencyhub/internal/auth"
	"github.com/01moynul/agencyhub/internal/logger"
	"github.com/01moynul/agencyhub/internal/models"
	"github.com/01moynul/agencyhub/internal/storage"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// PricePlanRepository is implemented by database.PricePlanStore.
type PricePlanRepository interface {
	Create(ctx context.Context, plan *models.PricePlan) error
	List(ctx context.Context) ([]*models.PricePlan, error)
	Get(ctx context.Context, id string) (*models.PricePlan, error)
	Delete(ctx context.Context, id string) (bool, error)
}

// ProjectRepository is implemented by database.ProjectStore.
type ProjectRepository interface {
	Create(ctx context.Context, project *models.Project) error
	List(ctx context.Context) ([]*models.Project, error)
	Get(ctx context.Context, id string) (*models.Project, error)
	Delete(ctx context.Context, id string) (bool, error)
}

// QueryRepository is implemented by database.QueryStore.
type QueryRepository interface {
	Create(ctx context.Context, q *models.Query) error
	ListWithPlans(ctx context.Context) ([]*models.QueryWithPlan, error)
	Delete(ctx context.Context, id string) (bool, error)
}

// QueryNotifier sends the mails that follow a new inquiry.
type QueryNotifier interface {
	QuerySubmitted(ctx context.Context, q *models.Query, plan *models.PricePlan) error
}

// Pinger reports datastore liveness.
type Pinger interface {
	PingContext(ctx context.Context) error
}

// Handlers struct holds all dependencies for our handlers.
type Handlers struct {
	Prices   PricePlanRepository
	Projects ProjectRepository
	Queries  QueryRepository
	Images   storage.ImageStore
	Notifier QueryNotifier
	Tokens   *auth.TokenManager
	Admin    auth.AdminCredentials
	DB       Pinger
	Log      *zap.Logger

	MaxUploadBytes int64
}

func (h *Handlers) log(c *gin.Context) *zap.Logger {
	return logger.FromContext(c, h.Log)
}

// fail writes the error envelope used by every endpoint.
func fail(c *gin.Context, status int, message string) {
	c.JSON(status, gin.H{"success": false, "message": message})
}

// serverError logs err and answers with a generic 500.
func (h *Handlers) serverError(c *gin.Context, message string, err error) {
	h.log(c).Error(message, zap.Error(err))
	_ = c.Error(err)
	fail(c, http.StatusInternalServerError, message)
}

// HealthCheck is the handler for GET /api/health
func (h *Handlers) HealthCheck(c *gin.Context) {
	if h.DB != nil {
		if err := h.DB.PingContext(c.Request.Context()); err != nil {
			h.log(c).Warn("health check failed", zap.Error(err))
			c.JSON(http.StatusServiceUnavailable, gin.H{"success": false, "status": "degraded"})
			return
		}
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "status": "ok"})
}

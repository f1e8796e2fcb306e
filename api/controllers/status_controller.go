package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/wrenko/ragsend-go/backend"
	"github.com/wrenko/ragsend-go/notify"
	"github.com/wrenko/ragsend-go/tasks"
	"github.com/wrenko/ragsend-go/tool"
	"github.com/wrenko/ragsend-go/types"
)

// StatusController reports runtime state and the intake policy.
type StatusController struct {
	cfg       *types.AppConfig
	store     *tasks.Store
	queue     *notify.Queue
	client    *backend.Client
	wsEnabled bool
}

func NewStatusController(cfg *types.AppConfig, store *tasks.Store, queue *notify.Queue, client *backend.Client, wsEnabled bool) *StatusController {
	return &StatusController{cfg: cfg, store: store, queue: queue, client: client, wsEnabled: wsEnabled}
}

// HandleStatus reports whether the console and its backend are up.
// GET /api/console/v1/status
func (sc *StatusController) HandleStatus(c *gin.Context) {
	backendStatus := "unreachable"
	if sc.client != nil {
		if hs, err := sc.client.Health(c.Request.Context()); err == nil {
			backendStatus = hs.Status
		}
	}
	c.JSON(http.StatusOK, gin.H{
		"running":           true,
		"backend_url":       sc.cfg.BackendURL,
		"backend_status":    backendStatus,
		"tasks":             sc.store.Len(),
		"notifications":     sc.queue.Len(),
		"notify_ws_enabled": sc.wsEnabled,
	})
}

// HandlePolicy tells the frontend what intake will accept so it can
// pre-filter the file picker.
// GET /api/console/v1/policy
func (sc *StatusController) HandlePolicy(c *gin.Context) {
	c.JSON(http.StatusOK, tool.FastReturnSuccessWithData(gin.H{
		"allowedTypes": sc.cfg.AllowedTypes,
		"maxBytes":     sc.cfg.MaxFileBytes,
	}))
}

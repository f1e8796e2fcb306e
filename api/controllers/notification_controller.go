package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/wrenko/ragsend-go/notify"
	"github.com/wrenko/ragsend-go/tool"
	"github.com/wrenko/ragsend-go/types"
)

// NotificationController exposes the toast queue.
type NotificationController struct {
	queue *notify.Queue
}

func NewNotificationController(queue *notify.Queue) *NotificationController {
	return &NotificationController{queue: queue}
}

// HandleList returns the visible notifications, newest first.
// GET /api/console/v1/notifications
func (nc *NotificationController) HandleList(c *gin.Context) {
	c.JSON(http.StatusOK, tool.FastReturnSuccessWithData(nc.queue.Snapshot()))
}

// HandlePush enqueues a caller-supplied notification.
// POST /api/console/v1/notifications
func (nc *NotificationController) HandlePush(c *gin.Context) {
	var body types.Notification
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, tool.FastReturnError("Invalid request body: "+err.Error()))
		return
	}
	if body.Title == "" && body.Message == "" {
		c.JSON(http.StatusBadRequest, tool.FastReturnError("title or message is required"))
		return
	}
	switch body.Kind {
	case types.NotifySuccess, types.NotifyError, types.NotifyWarning, types.NotifyInfo:
	default:
		body.Kind = types.NotifyInfo
	}
	if body.DurationMs < 0 {
		body.DurationMs = 0
	}
	// The queue assigns IDs; a client-sent one is ignored.
	body.ID = ""
	id := nc.queue.Push(body)
	c.JSON(http.StatusOK, tool.FastReturnSuccessWithData(gin.H{"id": id}))
}

// HandleDismiss removes one notification. Unknown IDs are fine, the
// toast may have expired on its own already.
// DELETE /api/console/v1/notifications/:id
func (nc *NotificationController) HandleDismiss(c *gin.Context) {
	nc.queue.Dismiss(c.Param("id"))
	c.JSON(http.StatusOK, tool.FastReturnSuccess())
}

// HandleClear empties the queue.
// DELETE /api/console/v1/notifications
func (nc *NotificationController) HandleClear(c *gin.Context) {
	nc.queue.Clear()
	c.JSON(http.StatusOK, tool.FastReturnSuccess())
}

package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/wrenko/ragsend-go/tasks"
	"github.com/wrenko/ragsend-go/tool"
	"github.com/wrenko/ragsend-go/uploader"
)

// TasksController exposes the upload task list and its lifecycle actions.
type TasksController struct {
	store *tasks.Store
	orch  *uploader.Orchestrator
}

func NewTasksController(store *tasks.Store, orch *uploader.Orchestrator) *TasksController {
	return &TasksController{store: store, orch: orch}
}

// HandleList returns every task in insertion order.
// GET /api/console/v1/tasks
func (tc *TasksController) HandleList(c *gin.Context) {
	c.JSON(http.StatusOK, tool.FastReturnSuccessWithData(tc.store.Snapshot()))
}

// HandleRetry relaunches a failed task under its existing ID.
// POST /api/console/v1/tasks/:id/retry
func (tc *TasksController) HandleRetry(c *gin.Context) {
	switch tc.orch.Retry(c.Param("id")) {
	case uploader.RetryStarted:
		c.JSON(http.StatusOK, tool.FastReturnSuccess())
	case uploader.RetryNotFailed:
		c.JSON(http.StatusConflict, tool.FastReturnError("Task is not in error state"))
	default:
		c.JSON(http.StatusNotFound, tool.FastReturnError("Task not found"))
	}
}

// HandleRemove deletes a task from the list. An in-flight transfer is
// not aborted; its late result is dropped.
// DELETE /api/console/v1/tasks/:id
func (tc *TasksController) HandleRemove(c *gin.Context) {
	id := c.Param("id")
	if !tc.store.Remove(id) {
		c.JSON(http.StatusNotFound, tool.FastReturnError("Task not found"))
		return
	}
	tc.orch.Forget(id)
	c.JSON(http.StatusOK, tool.FastReturnSuccess())
}

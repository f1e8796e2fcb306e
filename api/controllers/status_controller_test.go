package controllers

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/wrenko/ragsend-go/notify"
	"github.com/wrenko/ragsend-go/tasks"
	"github.com/wrenko/ragsend-go/types"
)

// setupStatusRouter creates a test router with the status and policy endpoints
func setupStatusRouter(cfg *types.AppConfig, store *tasks.Store, queue *notify.Queue) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()

	ctrl := NewStatusController(cfg, store, queue, nil, false)
	console := router.Group("/api/console/v1")
	{
		console.GET("/status", ctrl.HandleStatus)
		console.GET("/policy", ctrl.HandlePolicy)
	}

	return router
}

// TestStatusReport tests the status payload with no backend client
func TestStatusReport(t *testing.T) {
	cfg := &types.AppConfig{BackendURL: "http://127.0.0.1:8000"}
	store := tasks.NewStore()
	queue := notify.New(5)
	store.Add(types.UploadTask{ID: "t1", File: types.FileMeta{Name: "a.pdf"}, DomainID: "dom-1", Status: types.TaskQueued})
	queue.Push(types.Notification{Kind: types.NotifyInfo, Title: "hello"})
	router := setupStatusRouter(cfg, store, queue)

	w := doRequest(router, "GET", "/api/console/v1/status")
	if w.Code != http.StatusOK {
		t.Fatalf("Expected status code 200, got %d", w.Code)
	}
	var response map[string]interface{}
	if err := json.Unmarshal(w.Body.Bytes(), &response); err != nil {
		t.Fatalf("Failed to parse response: %v", err)
	}
	if response["running"] != true {
		t.Errorf("Expected running true, got %v", response["running"])
	}
	if response["backend_url"] != "http://127.0.0.1:8000" {
		t.Errorf("Unexpected backend_url: %v", response["backend_url"])
	}
	if response["backend_status"] != "unreachable" {
		t.Errorf("Expected backend_status unreachable without a client, got %v", response["backend_status"])
	}
	if response["tasks"] != float64(1) {
		t.Errorf("Expected 1 task, got %v", response["tasks"])
	}
	if response["notifications"] != float64(1) {
		t.Errorf("Expected 1 notification, got %v", response["notifications"])
	}
	if response["notify_ws_enabled"] != false {
		t.Errorf("Expected notify_ws_enabled false, got %v", response["notify_ws_enabled"])
	}
}

// TestPolicyReport tests the intake policy payload
func TestPolicyReport(t *testing.T) {
	cfg := &types.AppConfig{
		AllowedTypes: []string{"pdf", "docx", "txt", "md", "rtf"},
		MaxFileBytes: 10485760,
	}
	router := setupStatusRouter(cfg, tasks.NewStore(), notify.New(5))

	w := doRequest(router, "GET", "/api/console/v1/policy")
	if w.Code != http.StatusOK {
		t.Fatalf("Expected status code 200, got %d", w.Code)
	}
	var response map[string]interface{}
	if err := json.Unmarshal(w.Body.Bytes(), &response); err != nil {
		t.Fatalf("Failed to parse response: %v", err)
	}
	data, _ := response["data"].(map[string]interface{})
	allowed, _ := data["allowedTypes"].([]interface{})
	if len(allowed) != 5 || allowed[0] != "pdf" {
		t.Errorf("Unexpected allowedTypes: %v", allowed)
	}
	if data["maxBytes"] != float64(10485760) {
		t.Errorf("Expected maxBytes 10485760, got %v", data["maxBytes"])
	}
}

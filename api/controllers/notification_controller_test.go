package controllers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/wrenko/ragsend-go/notify"
)

// setupNotificationRouter creates a test router with the notification endpoints
func setupNotificationRouter(queue *notify.Queue) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()

	ctrl := NewNotificationController(queue)
	console := router.Group("/api/console/v1")
	{
		console.GET("/notifications", ctrl.HandleList)
		console.POST("/notifications", ctrl.HandlePush)
		console.DELETE("/notifications/:id", ctrl.HandleDismiss)
		console.DELETE("/notifications", ctrl.HandleClear)
	}

	return router
}

func postNotification(router *gin.Engine, body string) *httptest.ResponseRecorder {
	req, _ := http.NewRequest("POST", "/api/console/v1/notifications", bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	req.RemoteAddr = "127.0.0.1:12345"
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func listNotifications(t *testing.T, router *gin.Engine) []interface{} {
	t.Helper()
	w := doRequest(router, "GET", "/api/console/v1/notifications")
	if w.Code != http.StatusOK {
		t.Fatalf("Expected status code 200 from list, got %d", w.Code)
	}
	var response map[string]interface{}
	if err := json.Unmarshal(w.Body.Bytes(), &response); err != nil {
		t.Fatalf("Failed to parse response: %v", err)
	}
	items, _ := response["data"].([]interface{})
	return items
}

// TestNotificationPushAndList tests pushing a toast and reading it back
func TestNotificationPushAndList(t *testing.T) {
	queue := notify.New(5)
	router := setupNotificationRouter(queue)

	w := postNotification(router, `{"kind":"info","title":"Heads up","message":"Backend restarting","durationMs":0}`)
	if w.Code != http.StatusOK {
		t.Fatalf("Expected status code 200, got %d: %s", w.Code, w.Body.String())
	}
	var response map[string]interface{}
	if err := json.Unmarshal(w.Body.Bytes(), &response); err != nil {
		t.Fatalf("Failed to parse response: %v", err)
	}
	data, _ := response["data"].(map[string]interface{})
	id, _ := data["id"].(string)
	if id == "" {
		t.Fatal("Response should contain the assigned notification id")
	}

	items := listNotifications(t, router)
	if len(items) != 1 {
		t.Fatalf("Expected 1 notification, got %d", len(items))
	}
	item := items[0].(map[string]interface{})
	if item["id"] != id {
		t.Errorf("Expected listed id %s, got %v", id, item["id"])
	}
	if item["title"] != "Heads up" {
		t.Errorf("Expected title Heads up, got %v", item["title"])
	}
}

// TestNotificationPushRequiresContent tests that an empty toast is rejected
func TestNotificationPushRequiresContent(t *testing.T) {
	queue := notify.New(5)
	router := setupNotificationRouter(queue)

	w := postNotification(router, `{"kind":"info"}`)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("Expected status code 400, got %d", w.Code)
	}
	var response map[string]interface{}
	if err := json.Unmarshal(w.Body.Bytes(), &response); err != nil {
		t.Fatalf("Failed to parse response: %v", err)
	}
	if response["error"] != "title or message is required" {
		t.Errorf("Unexpected error message: %v", response["error"])
	}
}

// TestNotificationPushUnknownKind tests that a bogus kind falls back to info
func TestNotificationPushUnknownKind(t *testing.T) {
	queue := notify.New(5)
	router := setupNotificationRouter(queue)

	w := postNotification(router, `{"kind":"sparkle","title":"Odd one"}`)
	if w.Code != http.StatusOK {
		t.Fatalf("Expected status code 200, got %d", w.Code)
	}
	items := listNotifications(t, router)
	if len(items) != 1 {
		t.Fatalf("Expected 1 notification, got %d", len(items))
	}
	if kind := items[0].(map[string]interface{})["kind"]; kind != "info" {
		t.Errorf("Expected kind info, got %v", kind)
	}
}

// TestNotificationDismissUnknown tests that dismissing a missing ID still succeeds
func TestNotificationDismissUnknown(t *testing.T) {
	queue := notify.New(5)
	router := setupNotificationRouter(queue)

	w := doRequest(router, "DELETE", "/api/console/v1/notifications/already-gone")
	if w.Code != http.StatusOK {
		t.Errorf("Expected status code 200, got %d", w.Code)
	}
}

// TestNotificationClear tests emptying the queue
func TestNotificationClear(t *testing.T) {
	queue := notify.New(5)
	router := setupNotificationRouter(queue)

	postNotification(router, `{"title":"one"}`)
	postNotification(router, `{"title":"two"}`)
	if len(listNotifications(t, router)) != 2 {
		t.Fatal("Expected 2 notifications before clear")
	}

	w := doRequest(router, "DELETE", "/api/console/v1/notifications")
	if w.Code != http.StatusOK {
		t.Fatalf("Expected status code 200, got %d", w.Code)
	}
	if items := listNotifications(t, router); len(items) != 0 {
		t.Errorf("Expected empty queue after clear, got %d", len(items))
	}
}

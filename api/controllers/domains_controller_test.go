package controllers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/wrenko/ragsend-go/share"
	"github.com/wrenko/ragsend-go/types"
)

type fakeDomainLister struct {
	domains []types.Domain
	err     error
}

func (f *fakeDomainLister) ListDomains(ctx context.Context) ([]types.Domain, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.domains, nil
}

// setupDomainsRouter creates a test router with the domains endpoint
func setupDomainsRouter(lister share.DomainLister) *gin.Engine {
	gin.SetMode(gin.TestMode)
	share.InvalidateDomains() // other tests may have primed the cache
	router := gin.New()

	ctrl := NewDomainsController(lister)
	console := router.Group("/api/console/v1")
	{
		console.GET("/domains", ctrl.HandleList)
	}

	return router
}

// TestDomainsList tests fetching the domain directory
func TestDomainsList(t *testing.T) {
	lister := &fakeDomainLister{domains: []types.Domain{
		{ID: "dom-1", Name: "Contracts"},
		{ID: "dom-2", Name: "Invoices"},
	}}
	router := setupDomainsRouter(lister)

	w := doRequest(router, "GET", "/api/console/v1/domains")
	if w.Code != http.StatusOK {
		t.Fatalf("Expected status code 200, got %d", w.Code)
	}
	var response map[string]interface{}
	if err := json.Unmarshal(w.Body.Bytes(), &response); err != nil {
		t.Fatalf("Failed to parse response: %v", err)
	}
	items, _ := response["data"].([]interface{})
	if len(items) != 2 {
		t.Fatalf("Expected 2 domains, got %d", len(items))
	}
	first := items[0].(map[string]interface{})
	if first["name"] != "Contracts" {
		t.Errorf("Expected first domain Contracts, got %v", first["name"])
	}
}

// TestDomainsRefreshBypassesCache tests that ?refresh=1 refetches
func TestDomainsRefreshBypassesCache(t *testing.T) {
	lister := &fakeDomainLister{domains: []types.Domain{{ID: "dom-1", Name: "Contracts"}}}
	router := setupDomainsRouter(lister)

	doRequest(router, "GET", "/api/console/v1/domains")
	lister.domains = append(lister.domains, types.Domain{ID: "dom-2", Name: "Invoices"})

	// Cached response still has one entry.
	w := doRequest(router, "GET", "/api/console/v1/domains")
	var response map[string]interface{}
	if err := json.Unmarshal(w.Body.Bytes(), &response); err != nil {
		t.Fatalf("Failed to parse response: %v", err)
	}
	if items, _ := response["data"].([]interface{}); len(items) != 1 {
		t.Errorf("Expected cached list with 1 domain, got %d", len(items))
	}

	w = doRequest(router, "GET", "/api/console/v1/domains?refresh=1")
	if err := json.Unmarshal(w.Body.Bytes(), &response); err != nil {
		t.Fatalf("Failed to parse response: %v", err)
	}
	if items, _ := response["data"].([]interface{}); len(items) != 2 {
		t.Errorf("Expected refreshed list with 2 domains, got %d", len(items))
	}
}

// TestDomainsBackendDown tests the 502 when the backend is unreachable
func TestDomainsBackendDown(t *testing.T) {
	lister := &fakeDomainLister{err: errors.New("connection refused")}
	router := setupDomainsRouter(lister)

	w := doRequest(router, "GET", "/api/console/v1/domains")
	if w.Code != http.StatusBadGateway {
		t.Fatalf("Expected status code 502, got %d", w.Code)
	}
	var response map[string]interface{}
	if err := json.Unmarshal(w.Body.Bytes(), &response); err != nil {
		t.Fatalf("Failed to parse response: %v", err)
	}
	msg, _ := response["error"].(string)
	if !strings.HasPrefix(msg, "Failed to fetch domains: ") {
		t.Errorf("Unexpected error message: %q", msg)
	}
}

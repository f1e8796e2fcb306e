package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/wrenko/ragsend-go/share"
	"github.com/wrenko/ragsend-go/tool"
)

// DomainsController serves the backend's domain directory.
type DomainsController struct {
	lister share.DomainLister
}

func NewDomainsController(lister share.DomainLister) *DomainsController {
	return &DomainsController{lister: lister}
}

// HandleList returns the domains, cached briefly so the picker does
// not hammer the backend. ?refresh=1 bypasses the cache.
// GET /api/console/v1/domains
func (dc *DomainsController) HandleList(c *gin.Context) {
	if refresh := c.Query("refresh"); refresh == "1" || refresh == "true" {
		share.InvalidateDomains()
	}
	domains, err := share.Domains(c.Request.Context(), dc.lister)
	if err != nil {
		c.JSON(http.StatusBadGateway, tool.FastReturnError("Failed to fetch domains: "+err.Error()))
		return
	}
	c.JSON(http.StatusOK, tool.FastReturnSuccessWithData(domains))
}

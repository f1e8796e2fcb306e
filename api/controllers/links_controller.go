package controllers

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/skip2/go-qrcode"

	"github.com/wrenko/ragsend-go/intake"
	"github.com/wrenko/ragsend-go/share"
	"github.com/wrenko/ragsend-go/tool"
	"github.com/wrenko/ragsend-go/types"
)

const (
	defaultQRSize = 200
	maxQRSize     = 512
)

// LinksController manages intake links, the short-lived URLs other
// devices can drop files on.
type LinksController struct {
	pipeline *intake.Pipeline
	cfg      *types.AppConfig
}

func NewLinksController(pipeline *intake.Pipeline, cfg *types.AppConfig) *LinksController {
	return &LinksController{pipeline: pipeline, cfg: cfg}
}

// HandleCreate mints a link bound to a domain.
// POST /api/console/v1/intake-links (JSON: domainId, label)
func (lc *LinksController) HandleCreate(c *gin.Context) {
	var body struct {
		DomainID string `json:"domainId"`
		Label    string `json:"label"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, tool.FastReturnError("Invalid request body: "+err.Error()))
		return
	}
	body.DomainID = strings.TrimSpace(body.DomainID)
	if body.DomainID == "" {
		c.JSON(http.StatusBadRequest, tool.FastReturnError("Missing required field: domainId"))
		return
	}
	link := share.CreateIntakeLink(body.DomainID, body.Label, lc.cfg.PublicBaseURL, lc.cfg.Port)
	c.JSON(http.StatusOK, tool.FastReturnSuccessWithData(link))
}

// HandleList returns the links that have not expired yet.
// GET /api/console/v1/intake-links
func (lc *LinksController) HandleList(c *gin.Context) {
	c.JSON(http.StatusOK, tool.FastReturnSuccessWithData(share.ListIntakeLinks()))
}

// HandleClose expires a link early.
// DELETE /api/console/v1/intake-links/:id
func (lc *LinksController) HandleClose(c *gin.Context) {
	if !share.CloseIntakeLink(c.Param("id")) {
		c.JSON(http.StatusNotFound, tool.FastReturnError("Link not found or expired"))
		return
	}
	c.JSON(http.StatusOK, tool.FastReturnSuccess())
}

// HandleQR renders the link URL as a PNG QR code. Accepts the
// api.qrserver.com size syntax: ?size=200x200 or ?size=200.
// GET /api/console/v1/intake-links/:id/qr
func (lc *LinksController) HandleQR(c *gin.Context) {
	link, ok := share.ResolveIntakeLink(c.Param("id"))
	if !ok {
		c.JSON(http.StatusNotFound, tool.FastReturnError("Link not found or expired"))
		return
	}
	size := parseQRSize(c.Query("size"))
	if size <= 0 {
		size = defaultQRSize
	}
	if size > maxQRSize {
		size = maxQRSize
	}
	png, err := qrcode.Encode(link.URL, qrcode.Medium, size)
	if err != nil {
		c.JSON(http.StatusInternalServerError, tool.FastReturnError("Failed to encode QR code: "+err.Error()))
		return
	}
	c.Data(http.StatusOK, "image/png", png)
}

// HandleDrop accepts a file batch posted against a link. This is the
// one upload route reachable from other devices; everything else stays
// behind the loopback guard.
// POST /i/:linkId
func (lc *LinksController) HandleDrop(c *gin.Context) {
	link, ok := share.ResolveIntakeLink(c.Param("linkId"))
	if !ok {
		c.JSON(http.StatusNotFound, tool.FastReturnError("Link not found or expired"))
		return
	}
	form, err := c.MultipartForm()
	if err != nil {
		c.JSON(http.StatusBadRequest, tool.FastReturnError("Invalid multipart form: "+err.Error()))
		return
	}
	headers := form.File["files"]
	if len(headers) == 0 {
		c.JSON(http.StatusBadRequest, tool.FastReturnError("files is required and must not be empty"))
		return
	}
	batch, err := spoolBatch(c, headers)
	if err != nil {
		c.JSON(http.StatusInternalServerError, tool.FastReturnError("Failed to save file: "+err.Error()))
		return
	}
	created, rejected := lc.pipeline.Submit(link.DomainID, "", batch)
	c.JSON(http.StatusOK, tool.FastReturnSuccessWithData(intakeResult(created, rejected)))
}

// parseQRSize parses "200x200" or "200" into a pixel dimension.
func parseQRSize(s string) int {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0
	}
	if idx := strings.Index(s, "x"); idx > 0 {
		s = strings.TrimSpace(s[:idx])
	}
	n, err := strconv.Atoi(s)
	if err != nil || n <= 0 {
		return 0
	}
	return n
}

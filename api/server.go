package api

import (
	"fmt"
	"net/http"
	"sync"

	"github.com/charmbracelet/log"
	"github.com/gin-gonic/gin"

	"github.com/wrenko/ragsend-go/api/controllers"
	"github.com/wrenko/ragsend-go/api/middlewares"
	"github.com/wrenko/ragsend-go/api/notifyhub"
	"github.com/wrenko/ragsend-go/backend"
	"github.com/wrenko/ragsend-go/intake"
	"github.com/wrenko/ragsend-go/notify"
	"github.com/wrenko/ragsend-go/tasks"
	"github.com/wrenko/ragsend-go/tool"
	"github.com/wrenko/ragsend-go/types"
	"github.com/wrenko/ragsend-go/uploader"
)

// Deps carries everything the routes need. Wiring happens in main so
// tests can assemble a server around fakes.
type Deps struct {
	Config       *types.AppConfig
	Store        *tasks.Store
	Queue        *notify.Queue
	Pipeline     *intake.Pipeline
	Orchestrator *uploader.Orchestrator
	Client       *backend.Client
	Hub          *notifyhub.Hub // nil disables the events socket
}

// Server is the console HTTP API.
type Server struct {
	port   int
	deps   Deps
	engine *gin.Engine
	server *http.Server
	mu     sync.RWMutex
}

func NewServer(port int, deps Deps) *Server {
	return &Server{port: port, deps: deps}
}

func (s *Server) setupRoutes() *gin.Engine {
	if tool.DefaultLogger.GetLevel() == log.DebugLevel {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}
	engine := gin.Default()
	engine.Use(middlewares.AllowAllCORS())
	engine.Use(gin.Recovery())

	intakeCtrl := controllers.NewIntakeController(s.deps.Pipeline)
	tasksCtrl := controllers.NewTasksController(s.deps.Store, s.deps.Orchestrator)
	notifyCtrl := controllers.NewNotificationController(s.deps.Queue)
	linksCtrl := controllers.NewLinksController(s.deps.Pipeline, s.deps.Config)
	domainsCtrl := controllers.NewDomainsController(s.deps.Client)
	statusCtrl := controllers.NewStatusController(s.deps.Config, s.deps.Store, s.deps.Queue, s.deps.Client, s.deps.Hub != nil)

	console := engine.Group("/api/console/v1", middlewares.OnlyAllowLocal)
	{
		console.POST("/intake", intakeCtrl.HandleIntake) // Validate a file batch and start uploads
		console.GET("/tasks", tasksCtrl.HandleList)      // Task list in insertion order
		console.POST("/tasks/:id/retry", tasksCtrl.HandleRetry)
		console.DELETE("/tasks/:id", tasksCtrl.HandleRemove)
		console.GET("/notifications", notifyCtrl.HandleList)
		console.POST("/notifications", notifyCtrl.HandlePush)
		console.DELETE("/notifications/:id", notifyCtrl.HandleDismiss)
		console.DELETE("/notifications", notifyCtrl.HandleClear)
		console.GET("/domains", domainsCtrl.HandleList) // Backend domain directory, ?refresh=1 busts the cache
		console.GET("/policy", statusCtrl.HandlePolicy) // Allowed types and max size for the picker
		console.GET("/status", statusCtrl.HandleStatus)
		console.POST("/intake-links", linksCtrl.HandleCreate)
		console.GET("/intake-links", linksCtrl.HandleList)
		console.DELETE("/intake-links/:id", linksCtrl.HandleClose)
		console.GET("/intake-links/:id/qr", linksCtrl.HandleQR) // QR code PNG (same params as api.qrserver.com)
		if s.deps.Hub != nil {
			console.GET("/events", notifyhub.HandleEventsWS(s.deps.Hub, s.deps.Store, s.deps.Queue))
		}
	}

	// The drop route stays outside the loopback guard so phones on the
	// LAN can post files against an intake link.
	engine.POST("/i/:linkId", linksCtrl.HandleDrop)

	return engine
}

// Start starts the HTTP server
func (s *Server) Start() error {
	engine := s.setupRoutes()

	s.mu.Lock()
	s.engine = engine
	s.server = &http.Server{
		Addr:    fmt.Sprintf(":%d", s.port),
		Handler: engine,
	}
	s.mu.Unlock()

	tool.DefaultLogger.Infof("Starting console API on http://0.0.0.0:%d", s.port)
	return s.server.ListenAndServe()
}

package main

import (
	"context"
	"flag"
	"os"
	"time"

	"golang.org/x/time/rate"

	"github.com/wrenko/ragsend-go/api"
	"github.com/wrenko/ragsend-go/api/notifyhub"
	"github.com/wrenko/ragsend-go/backend"
	"github.com/wrenko/ragsend-go/intake"
	"github.com/wrenko/ragsend-go/notify"
	"github.com/wrenko/ragsend-go/push"
	"github.com/wrenko/ragsend-go/share"
	"github.com/wrenko/ragsend-go/tasks"
	"github.com/wrenko/ragsend-go/tool"
	"github.com/wrenko/ragsend-go/uploader"
)

func main() {
	cfg := tool.SetFlags()

	appCfg, err := tool.LoadConfig(cfg.UseConfigPath)
	if err != nil {
		tool.DefaultLogger.Fatalf("Failed to load config: %v", err)
	}
	if cfg.UsePort > 0 {
		appCfg.Port = cfg.UsePort
	}
	if cfg.UseBackendURL != "" {
		appCfg.BackendURL = cfg.UseBackendURL
	}
	if cfg.SkipNotifyWS {
		appCfg.NotifyWS = false
	}
	tool.CurrentConfig = appCfg

	// initialize logger
	tool.InitLogger()
	tool.SetLogMode(cfg.Log)
	tool.SetRequestTimeout(time.Duration(appCfg.RequestTimeoutSeconds) * time.Second)

	notify.DefaultMaxVisible = appCfg.MaxToasts
	notify.SuccessDurationMs = appCfg.SuccessToastMs
	notify.ErrorDurationMs = appCfg.ErrorToastMs
	share.SetLinkTTL(time.Duration(appCfg.IntakeLinkTTLSeconds) * time.Second)
	share.SetDomainTTL(time.Duration(appCfg.DomainCacheTTLSeconds) * time.Second)

	// Build the client after the timeout override so it picks up the
	// configured request timeout.
	client := backend.NewClient(appCfg.BackendURL)

	if cfg.UsePush {
		opts := push.Options{
			DomainRef: cfg.UseDomain,
			Metadata:  cfg.UseMetadata,
			Files:     flag.Args(),
		}
		if err := push.Run(context.Background(), client, &appCfg, opts); err != nil {
			tool.DefaultLogger.Errorf("Push failed: %v", err)
			os.Exit(1)
		}
		return
	}

	store := tasks.NewStore()
	queue := notify.New(appCfg.MaxToasts)
	orch := uploader.New(client, store, queue)
	pipeline := intake.NewPipeline(intake.PolicyFromConfig(&appCfg), store, queue, orch)

	var hub *notifyhub.Hub
	if appCfg.NotifyWS {
		hub = notifyhub.New()
		limiter := rate.NewLimiter(rate.Every(100*time.Millisecond), 1)
		go hub.RunSnapshotPump(context.Background(), store, queue, limiter)
	}

	server := api.NewServer(appCfg.Port, api.Deps{
		Config:       &appCfg,
		Store:        store,
		Queue:        queue,
		Pipeline:     pipeline,
		Orchestrator: orch,
		Client:       client,
		Hub:          hub,
	})
	go func() {
		if err := server.Start(); err != nil {
			tool.DefaultLogger.Fatalf("Console API startup failed: %v", err)
		}
	}()

	select {}
}

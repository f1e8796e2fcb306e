package tool

import "flag"

// Config holds runtime overrides from CLI flags.
type Config struct {
	Log           string
	UseConfigPath string
	UsePort       int
	UseBackendURL string
	UseDomain     string
	UseMetadata   string
	UsePush       bool // if true, upload the positional file arguments and exit.
	SkipNotifyWS  bool // if true, do not expose the events websocket.
}

// SetFlags parses CLI flags and returns the override config.
func SetFlags() Config {
	var cfg Config
	flag.StringVar(&cfg.Log, "log", "", "log mode: dev|prod")
	flag.StringVar(&cfg.UseConfigPath, "useConfigPath", "", "override config file path")
	flag.IntVar(&cfg.UsePort, "usePort", 0, "override console API port")
	flag.StringVar(&cfg.UseBackendURL, "useBackendURL", "", "override document backend base URL")
	flag.StringVar(&cfg.UseDomain, "domain", "", "domain ID or name for push mode")
	flag.StringVar(&cfg.UseMetadata, "metadata", "", "metadata JSON attached to pushed documents")
	flag.BoolVar(&cfg.UsePush, "push", false, "one-shot mode: upload the given files and exit")
	flag.BoolVar(&cfg.SkipNotifyWS, "skipNotifyWS", false, "if true, do not expose the events websocket")
	flag.Parse()
	return cfg
}

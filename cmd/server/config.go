package main

import (
	"flag"
	"os"
	"strings"
	"time"

	"github.com/benbeisheim/chessbot-backend/internal/service"
)

type config struct {
	addr                string
	origins             string
	matchmakingInterval time.Duration
	debug               bool
}

// parseConfig reads flags from args, falling back to CHESSBOT_* environment
// variables for their defaults.
func parseConfig(args []string) (config, error) {
	var cfg config
	fs := flag.NewFlagSet("server", flag.ContinueOnError)
	fs.StringVar(&cfg.addr, "addr", getenv("CHESSBOT_ADDR", ":3000"), "listen address")
	fs.StringVar(&cfg.origins, "origins", getenv("CHESSBOT_ORIGINS", "http://localhost:5173"), "comma-separated allowed CORS and websocket origins")
	fs.DurationVar(&cfg.matchmakingInterval, "matchmaking-interval", getdur("CHESSBOT_MATCHMAKING_INTERVAL", service.DefaultMatchmakingInterval), "how often queued players are paired")
	fs.BoolVar(&cfg.debug, "debug", getenb("CHESSBOT_DEBUG", false), "debug logging")
	if err := fs.Parse(args); err != nil {
		return config{}, err
	}
	return cfg, nil
}

func (cfg config) originList() []string {
	var out []string
	for _, o := range strings.Split(cfg.origins, ",") {
		if o = strings.TrimSpace(o); o != "" {
			out = append(out, o)
		}
	}
	return out
}

func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getenb(key string, def bool) bool {
	if v := os.Getenv(key); v != "" {
		switch strings.ToLower(strings.TrimSpace(v)) {
		case "1", "true", "t", "yes", "y", "on":
			return true
		case "0", "false", "f", "no", "n", "off":
			return false
		}
	}
	return def
}

func getdur(key string, def time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(strings.TrimSpace(v)); err == nil {
			return d
		}
	}
	return def
}

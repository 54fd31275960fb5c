package main

import (
	"flag"
	"log"
	"log/slog"
	"os"

	"github.com/gin-gonic/gin"

	"github.com/cristianadrielbraun/qrstyle/internal/config"
	"github.com/cristianadrielbraun/qrstyle/internal/handlers"
	"github.com/cristianadrielbraun/qrstyle/internal/render"
)

func main() {
	configPath := flag.String("config", "", "path to a TOML config file (defaults to $"+config.EnvConfigFile+")")
	debug := flag.Bool("debug", false, "log render details")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatal(err)
	}
	if *debug {
		cfg.Debug = true
	}
	if cfg.Debug {
		render.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug})))
	}

	gin.SetMode(cfg.GinMode)
	r := gin.New()
	r.Use(gin.Logger())
	r.Use(gin.Recovery())
	r.MaxMultipartMemory = cfg.MaxLogoBytes

	handlers.New(cfg).Register(r)

	log.Printf("qrstyle listening on %s (encoder %s)", cfg.Addr, cfg.Encoder)
	if err := r.Run(cfg.Addr); err != nil {
		log.Fatal(err)
	}
}

package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"

	"github.com/df07/go-whitted-raytracer/pkg/scene"
	"github.com/df07/go-whitted-raytracer/web/server"
	_ "gocloud.dev/blob/gcsblob" // gs:// textures and scene files
)

func main() {
	port := flag.Int("port", 8080, "Port to serve on")
	staticDir := flag.String("static", "static", "Directory of static files served at /")
	sceneDir := flag.String("scenes", "../scenes", "Directory of scene files offered next to the built-in scenes")
	textureMaxWidth := flag.Int("texture-max-width", 2048, "Downscale environment maps wider than this (0 keeps full size)")
	consoleSize := flag.Int("console-size", 200, "Number of log messages kept for /api/console")
	logLevel := flag.String("log-level", "info", "Log level: debug, info, warn or error")
	flag.Parse()

	var level slog.Level
	if err := level.UnmarshalText([]byte(*logLevel)); err != nil {
		fmt.Fprintf(os.Stderr, "Invalid log level %q: %v\n", *logLevel, err)
		os.Exit(2)
	}

	console := server.NewConsole(*consoleSize)
	stderr := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})
	logger := slog.New(console.Handler(level, stderr))
	slog.SetDefault(logger)

	webServer := server.NewServer(server.Config{
		Port:      *port,
		StaticDir: *staticDir,
		SceneDir:  *sceneDir,
		Logger:    logger,
		Console:   console,
		Scene: scene.Options{
			Logger:          logger,
			TextureMaxWidth: *textureMaxWidth,
		},
	})

	logger.Info("Whitted Raytracer Web Server", "visit", fmt.Sprintf("http://localhost:%d", *port))
	if err := webServer.Start(); err != nil {
		logger.Error("server stopped", "error", err)
		os.Exit(1)
	}
}

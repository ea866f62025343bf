package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"net/url"
	"os"
	"path"
	"path/filepath"
	"strings"
	"time"

	"github.com/df07/go-whitted-raytracer/pkg/loaders"
	"github.com/df07/go-whitted-raytracer/pkg/renderer"
	"github.com/df07/go-whitted-raytracer/pkg/scene"
	"github.com/pkg/errors"
	_ "gocloud.dev/blob/gcsblob" // gs:// output and textures
	"golang.org/x/sync/errgroup"
)

// config holds the parsed command line
type config struct {
	scenes     []string
	out        string
	sceneDir   string
	bounces    int // negative keeps the scene's budget
	width      int // zero keeps the scene's resolution
	height     int
	jobs       int
	sceneOpts  scene.Options
	listScenes bool
}

func main() {
	sceneList := flag.String("scene", "planes", "Comma-separated built-in scene names or scene files (.yaml, .yml, .json)")
	out := flag.String("out", "output", "Output directory or bucket URL (file://, gs://, mem://)")
	sceneDir := flag.String("scenes", "scenes", "Directory searched for scene files by -list")
	bounces := flag.Int("bounces", -1, "Reflection bounce budget (-1 uses the scene's)")
	width := flag.Int("width", 0, "Image width in pixels (0 uses the scene's)")
	height := flag.Int("height", 0, "Image height in pixels (0 uses the scene's)")
	jobs := flag.Int("jobs", 2, "Number of scenes rendered at once")
	background := flag.String("background", "", "Environment map for the background scene (path or bucket URL)")
	textureMaxWidth := flag.Int("texture-max-width", 0, "Downscale environment maps wider than this (0 keeps full size)")
	seed := flag.Uint64("seed", 0, "Seed for random scenes (0 uses the scene default)")
	logLevel := flag.String("log-level", "info", "Log level: debug, info, warn or error")
	list := flag.Bool("list", false, "List available scenes and exit")
	help := flag.Bool("help", false, "Show help information")
	flag.Parse()

	if *help {
		fmt.Println("Whitted Raytracer")
		fmt.Println("Usage: raytracer [options]")
		fmt.Println()
		fmt.Println("Options:")
		flag.PrintDefaults()
		fmt.Println()
		fmt.Printf("Built-in scenes: %s\n", strings.Join(scene.Names(), ", "))
		fmt.Println()
		fmt.Println("Output will be saved to <out>/<scene>/render_<timestamp>.png")
		return
	}

	var level slog.Level
	if err := level.UnmarshalText([]byte(*logLevel)); err != nil {
		fmt.Fprintf(os.Stderr, "Invalid log level %q: %v\n", *logLevel, err)
		os.Exit(2)
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

	cfg := config{
		scenes:     parseSceneList(*sceneList),
		out:        *out,
		sceneDir:   *sceneDir,
		bounces:    *bounces,
		width:      *width,
		height:     *height,
		jobs:       *jobs,
		listScenes: *list,
		sceneOpts: scene.Options{
			Logger:            logger,
			BackgroundTexture: *background,
			TextureMaxWidth:   *textureMaxWidth,
			Seed:              *seed,
		},
	}

	if cfg.listScenes {
		if err := printScenes(cfg.sceneDir); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		return
	}

	if err := run(context.Background(), cfg, logger); err != nil {
		logger.Error("render failed", "error", err)
		os.Exit(1)
	}
}

// parseSceneList splits a comma-separated list, dropping blanks and duplicates
func parseSceneList(s string) []string {
	var scenes []string
	seen := make(map[string]bool)
	for _, name := range strings.Split(s, ",") {
		name = strings.TrimSpace(name)
		if name == "" || seen[name] {
			continue
		}
		seen[name] = true
		scenes = append(scenes, name)
	}
	return scenes
}

func printScenes(dir string) error {
	groups, err := scene.ListAllScenes(dir)
	if err != nil {
		return err
	}
	for _, group := range groups {
		fmt.Printf("%s:\n", group.Name)
		for _, info := range group.Scenes {
			fmt.Printf("  %-40s %s\n", info.ID, info.Description)
		}
	}
	return nil
}

// run renders every requested scene. Scenes render concurrently up to the
// job limit, each on a single goroutine.
func run(ctx context.Context, cfg config, logger *slog.Logger) error {
	if len(cfg.scenes) == 0 {
		return errors.New("no scenes requested")
	}
	if cfg.jobs < 1 {
		return errors.Errorf("jobs must be at least 1, got %d", cfg.jobs)
	}

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(cfg.jobs)
	for _, name := range cfg.scenes {
		g.Go(func() error {
			location, err := renderScene(ctx, cfg, name, logger)
			if err != nil {
				return errors.Wrapf(err, "scene %q", name)
			}
			fmt.Printf("Render saved as %s\n", location)
			return nil
		})
	}
	return g.Wait()
}

// renderScene renders one scene and writes it under cfg.out, returning the
// location of the image
func renderScene(ctx context.Context, cfg config, name string, logger *slog.Logger) (string, error) {
	s, err := scene.Load(ctx, name, cfg.sceneOpts)
	if err != nil {
		return "", err
	}

	rt := renderer.NewRaytracer(s, logger.With("scene", s.Name))
	if cfg.bounces >= 0 {
		rt.SetBounces(cfg.bounces)
	}
	screen, err := applyResolution(rt.Screen(), cfg.width, cfg.height)
	if err != nil {
		return "", err
	}
	rt.SetScreen(screen)

	img, stats := rt.Render(ctx)
	logger.Info("rendered",
		"scene", s.Name,
		"render_id", stats.RenderID,
		"surfaces", s.GetPrimitiveCount(),
		"lights", s.GetLightTypes(),
		"summary", stats.String())

	location, err := outputLocation(cfg.out, outputName(name), time.Now())
	if err != nil {
		return "", err
	}
	if err := loaders.WriteImage(ctx, location, img); err != nil {
		return "", err
	}
	return location, nil
}

// applyResolution overrides the pixel size of screen. When only one side is
// given the other keeps the screen's aspect ratio.
func applyResolution(screen renderer.Screen, width, height int) (renderer.Screen, error) {
	switch {
	case width > 0 && height > 0:
		screen = screen.WithResolution(width, height)
	case width > 0:
		screen = screen.WithResolution(width, max(1, width*screen.Height/screen.Width))
	case height > 0:
		screen = screen.WithResolution(max(1, height*screen.Width/screen.Height), height)
	case width < 0 || height < 0:
		return screen, errors.Errorf("resolution must be positive, got %dx%d", width, height)
	}
	return screen, screen.Validate()
}

// outputName is the directory a scene's renders are written to: the
// built-in name, or the base name of a scene file
func outputName(sceneName string) string {
	if !scene.IsSceneFile(sceneName) {
		return strings.ToLower(sceneName)
	}
	base := path.Base(filepath.ToSlash(sceneName))
	return strings.TrimSuffix(base, path.Ext(base))
}

// outputLocation returns <out>/<scene>/render_<timestamp>.png, keeping any
// bucket URL scheme and query of out
func outputLocation(out, sceneName string, now time.Time) (string, error) {
	filename := fmt.Sprintf("render_%s.png", now.Format("20060102_150405"))
	if !strings.Contains(out, "://") {
		return filepath.Join(out, sceneName, filename), nil
	}

	u, err := url.Parse(out)
	if err != nil {
		return "", errors.Wrapf(err, "parsing output location %q", out)
	}
	u.Path = path.Join("/", u.Path, sceneName, filename)
	return u.String(), nil
}

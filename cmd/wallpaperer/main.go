// Command wallpaperer places a small image with a solid background onto a
// canvas of any size, filled with the detected background color.
//
// Usage:
//
//	wallpaperer [flags] <input> [position]
//	wallpaperer mcp
//
// Examples:
//
//	wallpaperer -size fullhd logo.png center
//	wallpaperer -size 2560x1440 -color "#102030" -output wall.jpg art.png br
//	wallpaperer -rotate 15 -scale-rel-canvas 0.5 sprite.png
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"strings"

	"github.com/ironsheep/wallpaperer/internal/imaging"
	"github.com/ironsheep/wallpaperer/internal/server"
)

// Version information - set by ldflags during build
var (
	Version   = "dev"
	BuildTime = "unknown"
	GitCommit = "unknown"
)

func main() {
	// Configure logging to stderr (stdout carries MCP protocol in mcp mode)
	log.SetOutput(os.Stderr)
	log.SetFlags(log.Ldate | log.Ltime | log.Lshortfile)

	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func debugEnabled() bool {
	return os.Getenv("WALLPAPERER_LOG_LEVEL") == "debug"
}

func run(args []string, stdout, stderr io.Writer) int {
	if len(args) > 0 {
		switch args[0] {
		case "version":
			printVersion(stdout)
			return 0
		case "mcp":
			if debugEnabled() {
				log.Printf("wallpaperer MCP server v%s (built %s, commit %s)", Version, BuildTime, GitCommit)
			}
			if err := server.New(Version).Run(); err != nil {
				log.Printf("Server error: %v", err)
				return 1
			}
			return 0
		}
	}

	cfg, err := parseFlags(args, stderr)
	if errors.Is(err, flag.ErrHelp) {
		return 0
	}
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}

	switch {
	case cfg.showVersion:
		printVersion(stdout)
		return 0
	case cfg.listSizes:
		printSizes(stdout)
		return 0
	}

	if err := generate(cfg, stdout); err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}
	return 0
}

type config struct {
	input   string
	output  string
	quality int
	opts    imaging.Options

	showVersion bool
	listSizes   bool
}

func parseFlags(args []string, stderr io.Writer) (*config, error) {
	var (
		colorStr   string
		size       string
		output     string
		rotate     float64
		scaleImage float64
		scaleCanv  float64
		dontIgnore bool
		dontCrop   bool
		simple     bool
		tolerance  int
		quality    int
		version    bool
		listSizes  bool
	)

	fs := flag.NewFlagSet("wallpaperer", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.StringVar(&colorStr, "color", "", "Canvas color (#RRGGBB, #RGB or a color name); skips detection")
	fs.StringVar(&size, "size", "", "Canvas size: WIDTHxHEIGHT or a preset (see -list-sizes); default is the input size")
	fs.StringVar(&output, "output", "output.png", "Output file (.png, .jpg or .bmp)")
	fs.Float64Var(&rotate, "rotate", 0, "Rotate the image clockwise by this many degrees")
	fs.Float64Var(&scaleImage, "scale-rel-image", 0, "Scale the image by this factor of its own size")
	fs.Float64Var(&scaleCanv, "scale-rel-canvas", 0, "Scale the image height to this fraction of the canvas height")
	fs.BoolVar(&dontIgnore, "dont-ignore", false, "Count border sides of one solid color when detecting the background")
	fs.BoolVar(&dontCrop, "dont-crop", false, "Do not shrink an image larger than the canvas; clip it instead")
	fs.BoolVar(&simple, "simple", false, "Detect the background from the four corners only (fast on huge images)")
	fs.IntVar(&tolerance, "tolerance", 0, "Per-channel difference (0-255) under which border colors count as equal")
	fs.IntVar(&quality, "quality", 95, "JPEG quality (1-100)")
	fs.BoolVar(&version, "version", false, "Print version information")
	fs.BoolVar(&listSizes, "list-sizes", false, "List size presets")
	fs.Usage = func() {
		fmt.Fprintln(stderr, "Usage: wallpaperer [flags] <input> [position]")
		fmt.Fprintln(stderr, "       wallpaperer mcp")
		fmt.Fprintln(stderr)
		fmt.Fprintf(stderr, "Positions: %s (default center)\n", strings.Join(imaging.AnchorNames(), ", "))
		fmt.Fprintln(stderr)
		fmt.Fprintln(stderr, "Flags:")
		fs.PrintDefaults()
		fmt.Fprintln(stderr)
		fmt.Fprintln(stderr, "Environment variables:")
		fmt.Fprintln(stderr, "  WALLPAPERER_LOG_LEVEL=debug    Enable debug logging")
	}

	if err := fs.Parse(args); err != nil {
		return nil, err
	}

	cfg := &config{
		output:      output,
		quality:     quality,
		opts:        imaging.DefaultOptions(),
		showVersion: version,
		listSizes:   listSizes,
	}
	if version || listSizes {
		return cfg, nil
	}

	rest := fs.Args()
	if len(rest) < 1 || len(rest) > 2 {
		fs.Usage()
		return nil, fmt.Errorf("expected <input> [position], got %d arguments", len(rest))
	}
	cfg.input = rest[0]

	if len(rest) == 2 {
		anchor, err := imaging.ParseAnchor(rest[1])
		if err != nil {
			return nil, err
		}
		cfg.opts.Anchor = anchor
	}

	if colorStr != "" {
		c, err := imaging.ParseColor(colorStr)
		if err != nil {
			return nil, err
		}
		cfg.opts.Color = &c
	}

	if tolerance < 0 || tolerance > 255 {
		return nil, fmt.Errorf("tolerance must be within 0-255, got %d", tolerance)
	}

	cfg.opts.Size = size
	cfg.opts.Sampler.KeepCoveredEdges = dontIgnore
	cfg.opts.Sampler.Tolerance = uint8(tolerance)
	if simple {
		cfg.opts.Sampler.Mode = imaging.Simple
	}
	cfg.opts.Transform = imaging.TransformOptions{
		Rotation:       rotate,
		ScaleRelImage:  scaleImage,
		ScaleRelCanvas: scaleCanv,
		NoCrop:         dontCrop,
	}
	if err := cfg.opts.Transform.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func generate(cfg *config, stdout io.Writer) error {
	src, err := imaging.Open(cfg.input)
	if err != nil {
		return err
	}

	res, err := imaging.Generate(src, cfg.opts)
	if err != nil {
		return err
	}

	if debugEnabled() {
		if res.Detected != nil {
			log.Printf("detected background %s (%s, %d/%d votes, ignored edges %v)",
				res.Detected.Color.Hex, res.Detected.Mode, res.Detected.Votes, res.Detected.Sampled, res.Detected.IgnoredEdges)
		}
		log.Printf("canvas %s, foreground %s at (%d,%d), anchor %s",
			res.Canvas, res.Foreground, res.Offset.X, res.Offset.Y, cfg.opts.Anchor)
	}

	if err := imaging.Save(cfg.output, res.Image, cfg.quality); err != nil {
		return err
	}

	fmt.Fprintf(stdout, "Wrote %s (%s, background %s)\n",
		cfg.output, res.Canvas, imaging.NewColorResult(res.Background).Hex)
	return nil
}

func printVersion(w io.Writer) {
	fmt.Fprintf(w, "wallpaperer %s\n", Version)
	fmt.Fprintf(w, "  Build time: %s\n", BuildTime)
	fmt.Fprintf(w, "  Git commit: %s\n", GitCommit)
}

func printSizes(w io.Writer) {
	presets := imaging.Presets()
	for _, name := range imaging.PresetNames() {
		fmt.Fprintf(w, "%-16s %s\n", name, presets[name])
	}
}

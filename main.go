package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"time"

	"touchtris/client"
	"touchtris/input"
	"touchtris/pb"
	"touchtris/simulator"
	"touchtris/terminal"

	"github.com/eiannone/keyboard"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"
)

const (
	// the terminal emulates a 320x240 panel, one "[]" per 10x10 block.
	termCols   = 64
	termRows   = 24
	termScaleX = 5
	termScaleY = 10
	keyBuffer  = 20
)

type config struct {
	mode           string
	scheme         input.Scheme
	orientation    input.Orientation
	width, height  int
	dropInterval   time.Duration
	restartToTitle bool
	seed           uint64
	mirror         string
	debug          bool
}

// parseFlags reports usage and invalid values on stderr.
func parseFlags(args []string, stderr io.Writer) (*config, error) {
	fs := flag.NewFlagSet("touchtris", flag.ContinueOnError)
	fs.SetOutput(stderr)
	c := &config{}
	var scheme, orientation string
	fs.StringVar(&c.mode, "mode", "terminal", "where to play: terminal or window")
	fs.StringVar(&scheme, "scheme", "trizone", "touch layout: trizone or quadrant")
	fs.StringVar(&orientation, "orientation", "landscape", "screen orientation: landscape or portrait")
	fs.IntVar(&c.width, "width", 320, "window mode panel width")
	fs.IntVar(&c.height, "height", 240, "window mode panel height")
	fs.DurationVar(&c.dropInterval, "drop", 500*time.Millisecond, "gravity interval")
	fs.BoolVar(&c.restartToTitle, "restart-to-title", false, "go back to the title screen after game over")
	fs.Uint64Var(&c.seed, "seed", 0, "piece sequence seed, 0 picks one at random")
	fs.StringVar(&c.mirror, "mirror", "", "address of a mirror relay to publish the board to")
	fs.BoolVar(&c.debug, "debug", false, "enable debug logs")
	if err := fs.Parse(args); err != nil {
		return nil, err
	}

	var err error
	c.scheme, err = input.ParseScheme(scheme)
	if err == nil {
		c.orientation, err = input.ParseOrientation(orientation)
	}
	if err == nil && c.mode != "terminal" && c.mode != "window" {
		err = fmt.Errorf("unknown mode %q", c.mode)
	}
	if err != nil {
		fmt.Fprintf(stderr, "invalid flags: %v\n", err)
		fs.Usage()
		return nil, err
	}
	return c, nil
}

func main() {
	cfg, err := parseFlags(os.Args[1:], os.Stderr)
	if errors.Is(err, flag.ErrHelp) {
		return
	}
	if err != nil {
		os.Exit(2)
	}
	level := slog.LevelInfo
	if cfg.debug {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := run(ctx, cfg, logger); err != nil && !errors.Is(err, context.Canceled) {
		logger.Error("touchtris stopped", slog.String("error", err.Error()))
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg *config, logger *slog.Logger) error {
	opts := &client.Options{
		Scheme:         cfg.scheme,
		Orientation:    cfg.orientation,
		DropInterval:   cfg.dropInterval,
		RestartToTitle: cfg.restartToTitle,
		Seed:           cfg.seed,
	}
	if cfg.mirror != "" {
		conn, err := grpc.NewClient(cfg.mirror, grpc.WithTransportCredentials(insecure.NewCredentials()))
		if err != nil {
			return fmt.Errorf("unable to connect to the mirror relay: %w", err)
		}
		defer conn.Close()
		m := client.NewMirror(pb.NewMirrorClient(conn), logger)
		if err := m.Start(ctx); err != nil {
			return err
		}
		defer m.Close()
		opts.Mirror = m
	}

	if cfg.mode == "window" {
		return runWindow(ctx, cfg, logger, opts)
	}
	return runTerminal(ctx, logger, opts)
}

func runTerminal(ctx context.Context, logger *slog.Logger, opts *client.Options) error {
	screen := terminal.NewScreen(os.Stdout, termCols, termRows, termScaleX, termScaleY)
	restore, err := screen.Start(int(os.Stdin.Fd()))
	if err != nil {
		return err
	}
	defer restore()

	events, err := keyboard.GetKeys(keyBuffer)
	if err != nil {
		return fmt.Errorf("unable to read the keyboard: %w", err)
	}
	defer keyboard.Close()

	c, err := client.New(logger, screen, nil, opts)
	if err != nil {
		return err
	}
	keys := terminal.NewKeys(events, c.Mapper(), logger)
	c.Attach(keys)

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	go func() {
		select {
		case <-keys.Done():
			cancel()
		case <-ctx.Done():
		}
	}()
	return c.Run(ctx)
}

func runWindow(ctx context.Context, cfg *config, logger *slog.Logger, opts *client.Options) error {
	fb := simulator.NewFramebuffer(cfg.width, cfg.height)
	var pointer simulator.Pointer
	c, err := client.New(logger, fb, &pointer, opts)
	if err != nil {
		return err
	}
	interval := opts.FrameInterval
	if interval <= 0 {
		interval = client.DefaultFrameInterval
	}
	return simulator.Run(ctx, fb, &pointer, &simulator.Options{TPS: int(time.Second / interval)}, c.Step)
}

package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/zeromicro/go-zero/core/logx"

	"github.com/dm/meshify/internal/client"
	"github.com/dm/meshify/internal/engine"
	"github.com/dm/meshify/internal/tui"
)

var (
	version   = "dev"
	commit    = "unknown"
	buildTime = "unknown"
)

func main() {
	var (
		configPath  string
		viewName    string
		serve       bool
		once        bool
		format      string
		showVersion bool
	)

	flag.StringVar(&configPath, "config", "", "config file (default is $HOME/.config/meshify/config.yml)")
	flag.StringVar(&viewName, "view", "", "view to open or poll: "+strings.Join(engine.Names(), ", "))
	flag.BoolVar(&serve, "serve", false, "run headless and relay snapshots over HTTP")
	flag.BoolVar(&once, "once", false, "poll once, print the snapshots and exit")
	flag.StringVar(&format, "format", "json", "output format for --once: json or yaml")
	flag.BoolVar(&showVersion, "version", false, "print version information")
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "usage: meshify [--config path] [--view name] [--serve] [--once [--format json|yaml]] [--version]\n\n")
		fmt.Fprintf(os.Stderr, "examples:\n")
		fmt.Fprintf(os.Stderr, "  meshify\n")
		fmt.Fprintf(os.Stderr, "  meshify --view linkerd\n")
		fmt.Fprintf(os.Stderr, "  meshify --once --format yaml --view dashboard\n")
		fmt.Fprintf(os.Stderr, "  MESHIFY_BACKEND_URL=https://meshery.example.com meshify --serve\n\n")
		flag.PrintDefaults()
	}
	flag.Parse()

	if showVersion {
		fmt.Printf("meshify %s (commit %s, built %s)\n", version, commit, buildTime)
		return
	}
	if len(flag.Args()) > 0 {
		fmt.Fprintf(os.Stderr, "error: unexpected argument %q\n", flag.Arg(0))
		flag.Usage()
		os.Exit(1)
	}
	if serve && once {
		fmt.Fprintln(os.Stderr, "error: --serve and --once are mutually exclusive")
		os.Exit(1)
	}

	cfg, err := loadCLIConfig(configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}
	if err := setupLogging(cfg, !serve && !once); err != nil {
		fmt.Fprintf(os.Stderr, "Error setting up logging: %v\n", err)
		os.Exit(1)
	}
	defer logx.Close()

	if err := run(cfg, viewName, serve, once, format); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		logx.Close()
		os.Exit(1)
	}
}

func run(cfg cliConfig, viewName string, serve, once bool, format string) error {
	views := engine.Views(cfg.Endpoints)
	selected := views
	if viewName != "" {
		v, err := engine.Lookup(views, viewName)
		if err != nil {
			return err
		}
		selected = []engine.View{v}
	}

	c, err := client.NewDefaultClient(client.ClientConfig{
		BaseURL:            cfg.BackendURL,
		Username:           cfg.Username,
		Password:           cfg.Password,
		Token:              cfg.Token,
		InsecureSkipVerify: cfg.Insecure,
		RequestTimeout:     cfg.RequestTimeout,
	})
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	switch {
	case once:
		if err := c.Ping(ctx); err != nil {
			logx.Errorf("backend %s not reachable, expect demo data: %v", c.BaseURL(), err)
		}
		return runOnce(ctx, selected, onceOptions{
			Fetcher:       c,
			Timeout:       cfg.RequestTimeout,
			MaxConcurrent: cfg.MaxConcurrent,
			Format:        format,
		}, os.Stdout)
	case serve:
		return runServe(ctx, selected, serveOptions{
			Fetcher:       c,
			Interval:      cfg.PollInterval,
			Timeout:       cfg.RequestTimeout,
			MaxConcurrent: cfg.MaxConcurrent,
			HistorySize:   cfg.HistorySize,
			Addr:          cfg.APIAddr,
		})
	default:
		return runTUI(ctx, views, viewName, cfg, c)
	}
}

func runTUI(ctx context.Context, views []engine.View, viewName string, cfg cliConfig, c *client.DefaultClient) error {
	app := tui.NewApp(tui.Options{
		Views: views,
		Start: tui.PollerStarter(ctx, tui.PollerOptions{
			Fetcher:       c,
			Interval:      cfg.PollInterval,
			Timeout:       cfg.RequestTimeout,
			MaxConcurrent: cfg.MaxConcurrent,
		}),
		Interval:    cfg.PollInterval,
		BaseURL:     c.BaseURL(),
		InitialView: viewName,
		HistorySize: cfg.HistorySize,
	})
	defer app.Shutdown()

	p := tea.NewProgram(app, tea.WithAltScreen(), tea.WithContext(ctx))
	if _, err := p.Run(); err != nil {
		if errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
			return nil
		}
		if strings.Contains(err.Error(), "TTY") || strings.Contains(err.Error(), "/dev/tty") {
			return fmt.Errorf("TUI requires a real terminal")
		}
		return fmt.Errorf("error running TUI: %w", err)
	}
	return nil
}

package main

import (
	"context"
	"flag"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"golang.design/x/hotkey/mainthread"

	"markestedt/menukeys/config"
	"markestedt/menukeys/platform"
)

func main() {
	// Global hotkeys and the tray need the main thread on macOS
	mainthread.Init(run)
}

func run() {
	configFlag := flag.String("config", "", "path to config.toml (default: user config dir)")
	debug := flag.Bool("debug", false, "enable debug logging")
	flag.Parse()

	// Setup logging
	level := slog.LevelInfo
	if *debug {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: level,
	}))
	slog.SetDefault(logger)

	configPath := *configFlag
	if configPath == "" {
		var err error
		if configPath, err = config.ConfigPath(); err != nil {
			slog.Error("Failed to resolve config path", "error", err)
			os.Exit(1)
		}
	}

	// Load configuration
	cfg, err := config.Load(configPath)
	if err != nil {
		slog.Error("Failed to load config", "error", err)
		os.Exit(1)
	}
	slog.Info("Configuration loaded", "path", configPath)

	// Create agent
	agent, err := NewAgent(cfg, configPath, logger)
	if err != nil {
		slog.Error("Failed to create agent", "error", err)
		os.Exit(1)
	}

	// Launched as the handler of a menukeys:// link
	agent.URLs().Dispatch(platform.URLArgs(flag.Args(), cfg.Menu.URLScheme))

	// Setup signal handling for graceful shutdown
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	done := make(chan error, 1)
	go func() {
		done <- agent.Run(ctx)
		cancel()
	}()

	if tray := agent.Tray(); tray != nil {
		go func() {
			select {
			case <-tray.WaitForQuit():
				cancel()
			case <-ctx.Done():
				tray.Stop()
			}
		}()
		tray.Run()
		cancel()
	}

	err = <-done
	if cerr := agent.Close(); cerr != nil {
		slog.Error("Failed to release resources", "error", cerr)
	}
	if err != nil {
		slog.Error("Agent error", "error", err)
		os.Exit(1)
	}

	slog.Info("menukeys stopped")
}

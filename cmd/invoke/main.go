// cmd/invoke/main.go
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/ammerola/inventory-voice/internal/adapters/inventoryapi"
	"github.com/ammerola/inventory-voice/internal/core/domain"
	"github.com/ammerola/inventory-voice/internal/core/ports"
	"github.com/ammerola/inventory-voice/internal/core/services"
	"github.com/ammerola/inventory-voice/internal/pkg/config"
	"github.com/ammerola/inventory-voice/internal/pkg/logger"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	os.Exit(run(ctx, os.Args[1:], os.Stdout, os.Stderr))
}

// run executes one invocation and returns the process exit code
func run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("invoke", flag.ContinueOnError)
	fs.SetOutput(stderr)

	toolName := fs.String("tool", "", "name of the tool to invoke")
	toolArgs := fs.String("args", "{}", "tool arguments as a JSON object")
	list := fs.Bool("list", false, "print the tool catalog and exit")
	timeout := fs.Duration("timeout", 0, "overall timeout (defaults to the API timeout)")
	logLevel := fs.String("log-level", "warn", "log level written to stderr")

	if err := fs.Parse(args); err != nil {
		return 2
	}

	l := logger.NewLogger(&logger.LogConfig{Level: *logLevel, Format: "text"}, stderr)

	cfg, err := config.Load(l.Logger)
	if err != nil {
		fmt.Fprintf(stderr, "configuration error: %v\n", err)
		return 1
	}

	client := inventoryapi.NewClient(inventoryapi.Config{
		BaseURL:         cfg.InventoryAPI.BaseURL,
		Timeout:         cfg.InventoryAPI.Timeout,
		RequestIDHeader: cfg.Security.RequestIDHeader,
	}, l.Logger)

	registry := services.NewRegistry(services.NewInventoryTools(client, l.Logger), l.Logger)

	if *list {
		return printCatalog(registry, stdout, stderr)
	}

	if *toolName == "" {
		fmt.Fprintln(stderr, "missing -tool (use -list to see available tools)")
		fs.Usage()
		return 2
	}

	if *timeout <= 0 {
		*timeout = cfg.InventoryAPI.Timeout + 5*time.Second
	}
	ctx, cancel := context.WithTimeout(ctx, *timeout)
	defer cancel()

	result, err := registry.Invoke(ctx, *toolName, json.RawMessage(*toolArgs))
	if err != nil {
		l.Debug("invocation failed", slog.String("tool", *toolName), slog.String("error", err.Error()))
		fmt.Fprintln(stderr, err.Error())
		return 1
	}

	fmt.Fprintln(stdout, result)
	return 0
}

func printCatalog(registry ports.ToolRegistry, stdout, stderr io.Writer) int {
	enc := json.NewEncoder(stdout)
	enc.SetIndent("", "  ")
	catalog := struct {
		Instructions string        `json:"instructions"`
		Tools        []domain.Tool `json:"tools"`
	}{
		Instructions: registry.Instructions(),
		Tools:        registry.Definitions(),
	}
	if err := enc.Encode(catalog); err != nil {
		fmt.Fprintf(stderr, "encode catalog: %v\n", err)
		return 1
	}
	return 0
}

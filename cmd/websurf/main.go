// Package main is the websurf command: it connects to a remote browser,
// runs the web-surfing agent against a task, and prints the answer.
//
// The remote endpoint comes from PLAYWRIGHT_SERVER_URL. A ws:// or
// wss:// URL connects to a Playwright automation server; an http:// or
// https:// URL attaches to a browser's remote debugging endpoint. There
// is no local browser fallback.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/entrhq/websurf/pkg/agent"
	"github.com/entrhq/websurf/pkg/browser"
	appconfig "github.com/entrhq/websurf/pkg/config"
	"github.com/entrhq/websurf/pkg/executor/console"
	"github.com/entrhq/websurf/pkg/llm/openai"
)

const version = "0.1.0"

// CLIConfig holds command-line configuration.
type CLIConfig struct {
	APIKey       string
	BaseURL      string
	Model        string
	Task         string
	StartPage    string
	InitScript   string
	Instructions string
	MaxTurns     int
	Timeout      time.Duration
	ShowThinking bool
	ShowUsage    bool
	ShowVersion  bool
}

func main() {
	cliConfig := parseFlags()

	if cliConfig.ShowVersion {
		fmt.Printf("websurf v%s\n", version)
		return
	}

	ctx, cancel := context.WithCancel(context.Background())

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sigChan
		fmt.Fprintln(os.Stderr, "\nshutting down...")
		cancel()
	}()

	if err := run(ctx, cliConfig); err != nil {
		cancel()
		fmt.Fprintf(os.Stderr, "websurf: %v\n", err)
		os.Exit(1)
	}
	cancel()
}

func parseFlags() *CLIConfig {
	cliConfig := &CLIConfig{}

	flag.StringVar(&cliConfig.APIKey, "api-key", os.Getenv("OPENAI_API_KEY"), "OpenAI API key")
	flag.StringVar(&cliConfig.BaseURL, "base-url", os.Getenv("OPENAI_BASE_URL"), "OpenAI-compatible API base URL")
	flag.StringVar(&cliConfig.Model, "model", "", "Vision-capable model to use (default from config)")
	flag.StringVar(&cliConfig.Task, "task", "", "The task to complete (required)")
	flag.StringVar(&cliConfig.StartPage, "start-page", "", "URL to open before the first turn (default from config)")
	flag.StringVar(&cliConfig.InitScript, "init-script", "", "Path to "+browser.InitScriptName+" (default: working directory, then executable directory)")
	flag.StringVar(&cliConfig.Instructions, "instructions", "", "Extra instructions prepended to the system prompt")
	flag.IntVar(&cliConfig.MaxTurns, "max-turns", 0, "Turn budget for the run (default from config)")
	flag.DurationVar(&cliConfig.Timeout, "timeout", 10*time.Minute, "Overall run timeout")
	flag.BoolVar(&cliConfig.ShowThinking, "show-thinking", true, "Render the agent's reasoning")
	flag.BoolVar(&cliConfig.ShowUsage, "show-usage", false, "Render per-turn token usage")
	flag.BoolVar(&cliConfig.ShowVersion, "version", false, "Show version and exit")

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "websurf - web-surfing agent for remote browsers\n\n")
		fmt.Fprintf(os.Stderr, "Usage: websurf -task \"...\" [options]\n\n")
		fmt.Fprintf(os.Stderr, "Environment:\n")
		fmt.Fprintf(os.Stderr, "  %s  remote browser endpoint (required)\n", appconfig.EnvServerURL)
		fmt.Fprintf(os.Stderr, "  %s                headless mode, default true (ws transport only)\n", appconfig.EnvHeadless)
		fmt.Fprintf(os.Stderr, "  %s                   automation client verbosity, passed through\n\n", appconfig.EnvDebug)
		fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nExamples:\n")
		fmt.Fprintf(os.Stderr, "  PLAYWRIGHT_SERVER_URL=ws://localhost:3001 websurf -task \"What won best picture in 2020?\"\n")
		fmt.Fprintf(os.Stderr, "  PLAYWRIGHT_SERVER_URL=http://localhost:9222 websurf -task \"...\" -start-page https://duckduckgo.com/\n")
	}

	flag.Parse()

	// A bare positional argument also works as the task.
	if cliConfig.Task == "" && flag.NArg() > 0 {
		cliConfig.Task = strings.Join(flag.Args(), " ")
	}
	return cliConfig
}

func run(ctx context.Context, cliConfig *CLIConfig) error {
	if strings.TrimSpace(cliConfig.Task) == "" {
		flag.Usage()
		return fmt.Errorf("a task is required")
	}

	if err := appconfig.Initialize(""); err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}
	surf := appconfig.GetSurf()

	// CLI flags override persisted settings.
	model := surf.Model()
	if cliConfig.Model != "" {
		model = cliConfig.Model
	}
	startPage := surf.StartPage()
	if cliConfig.StartPage != "" {
		startPage = cliConfig.StartPage
	}
	maxTurns := surf.MaxTurns()
	if cliConfig.MaxTurns > 0 {
		maxTurns = cliConfig.MaxTurns
	}

	connCfg, err := appconfig.ConnectionFromEnv()
	if err != nil {
		return err
	}

	initScript, err := browser.ResolveInitScript(cliConfig.InitScript)
	if err != nil {
		return err
	}

	connector, err := browser.NewConnector(connCfg.Debug)
	if err != nil {
		return err
	}
	defer connector.Close()

	width, height := surf.Viewport()
	sessionOpts := browser.SessionOptions{
		InitScriptPath: initScript,
		Viewport:       &browser.Viewport{Width: width, Height: height},
		DownloadsDir:   surf.DownloadsDir(),
	}
	if allowlist := appconfig.GetDomainAllowlist(); allowlist != nil && len(allowlist.Patterns()) > 0 {
		sessionOpts.AllowURL = allowlist.CheckURL
	}

	session, err := connector.CreateSession(connCfg, sessionOpts)
	if err != nil {
		return err
	}
	defer session.Close()

	if err := session.Navigate(startPage, "domcontentloaded"); err != nil {
		return fmt.Errorf("failed to open start page: %w", err)
	}

	providerOpts := []openai.ProviderOption{openai.WithModel(model)}
	if cliConfig.BaseURL != "" {
		providerOpts = append(providerOpts, openai.WithBaseURL(cliConfig.BaseURL))
	}
	provider, err := openai.NewProvider(cliConfig.APIKey, providerOpts...)
	if err != nil {
		return fmt.Errorf("failed to create LLM provider: %w", err)
	}

	surferOpts := []agent.Option{
		agent.WithMaxTurns(maxTurns),
		agent.WithPageTextLimit(surf.PageTextLimit()),
	}
	if cliConfig.Instructions != "" {
		surferOpts = append(surferOpts, agent.WithCustomInstructions(cliConfig.Instructions))
	}
	surfer := agent.NewWebSurfer(provider, session, surferOpts...)

	executor := console.NewExecutor(surfer,
		console.WithShowThinking(cliConfig.ShowThinking),
		console.WithShowUsage(cliConfig.ShowUsage),
		console.WithArtifacts(surf.DebugDir()),
	)

	if cliConfig.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, cliConfig.Timeout)
		defer cancel()
	}

	if _, err := executor.Run(ctx, cliConfig.Task); err != nil {
		return err
	}
	return nil
}

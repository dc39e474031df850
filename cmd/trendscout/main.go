package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"trendscout/internal/cmdlog"
	"trendscout/internal/config"
	"trendscout/internal/discovery"
	"trendscout/internal/llm"
	"trendscout/internal/logging"
	"trendscout/internal/metrics"
	"trendscout/internal/scraper"
	"trendscout/internal/store/sqlite"
	"trendscout/internal/theme"
)

const defaultConfigPath = "./trendscout.yaml"

func main() {
	cmd := ""
	if len(os.Args) > 1 {
		cmd = os.Args[1]
	}
	commands := map[string]func([]string) error{
		"init":       cmdInit,
		"search":     cmdSearch,
		"creators":   cmdCreators,
		"deepdive":   cmdDeepDive,
		"similar":    cmdSimilar,
		"discover":   cmdDiscover,
		"transcript": cmdTranscript,
		"repurpose":  cmdRepurpose,
		"serve":      cmdServe,
		"watch":      cmdWatch,
	}
	run, ok := commands[cmd]
	if !ok {
		printHelp()
		return
	}
	if err := run(os.Args[2:]); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		if hint := remediation(err); hint != "" {
			fmt.Fprintln(os.Stderr, hint)
		}
		os.Exit(1)
	}
}

func printHelp() {
	theme.PrintBanner()
	fmt.Println("Usage: trendscout <command> [options]")
	fmt.Println("Commands:")
	fmt.Println("  init        Create a config file at ./trendscout.yaml")
	fmt.Println("  search      Search TikTok (or an Instagram hashtag) and rank the results")
	fmt.Println("  creators    Aggregate stored videos into creator summaries")
	fmt.Println("  deepdive    Summarise one TikTok creator's recent videos")
	fmt.Println("  similar     Find Instagram accounts similar to a seed account")
	fmt.Println("  discover    Turn this week's trending hashtags into search keywords")
	fmt.Println("  transcript  Transcribe a video")
	fmt.Println("  repurpose   Rewrite a video's transcript into a new short-form script")
	fmt.Println("  serve       Serve the JSON API")
	fmt.Println("  watch       Periodically re-run searches for configured keywords")
}

func remediation(err error) string {
	switch {
	case errors.Is(err, scraper.ErrSearchUnavailable), errors.Is(err, scraper.ErrProfileUnavailable):
		if os.Getenv("APIFY_API_TOKEN") == "" {
			return "hint: set APIFY_API_TOKEN in .env"
		}
	case errors.Is(err, config.ErrMissingCredential), errors.Is(err, llm.ErrNoProvider):
		return "hint: set GEMINI_API_KEY, OPENAI_API_KEY or ANTHROPIC_API_KEY in .env"
	}
	return ""
}

// env is what every command needs after flags are parsed.
type env struct {
	cfg config.Config
	ctx context.Context
}

// setup loads .env and the config file, applies the log level and returns a context
// cancelled on SIGINT/SIGTERM.
func setup(cfgPath string) (env, context.CancelFunc, error) {
	config.LoadDotEnv()
	cfg, err := config.Load(cfgPath)
	if err != nil {
		return env{}, nil, err
	}
	logging.SetOutput(os.Stderr)
	logging.SetLevel(cfg.LogLevel)
	metrics.StartServer(cfg.Server.MetricsAddr)
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	return env{cfg: cfg, ctx: ctx}, cancel, nil
}

func (e env) apify() *scraper.ApifyClient { return scraper.NewApifyClient(e.cfg.Apify) }

func (e env) tiktok() *scraper.ApifyTikTok {
	return scraper.NewApifyTikTok(e.apify(), e.cfg.Apify.TikTokActor)
}

func (e env) instagram() *scraper.ApifyInstagram {
	return scraper.NewApifyInstagram(e.apify(), e.cfg.Apify.InstagramActor, e.cfg.Apify.RelatedActor, e.cfg.Similar.SeedPostLimit)
}

func (e env) openDB() (*sqlite.DB, error) { return sqlite.Open(e.cfg.Storage.DBPath) }

// generator builds the LLM client for the configured (or detected) provider.
func (e env) generator() (llm.Generator, error) {
	p, err := llm.ParseProvider(e.cfg.LLM.ResolveProvider())
	if err != nil {
		return nil, err
	}
	return llm.New(e.ctx, p, e.cfg.LLM)
}

// discoverer wires the Creative Center source, the LLM and the optional Redis cache.
// The returned close func releases the cache.
func (e env) discoverer() (*discovery.Discoverer, func(), error) {
	gen, err := e.generator()
	if err != nil {
		return nil, nil, err
	}
	d := &discovery.Discoverer{
		Source:   discovery.NewCreativeCenter("", e.cfg.Discovery.RPS, e.cfg.Discovery.Burst),
		Gen:      gen,
		CacheTTL: e.cfg.Discovery.CacheTTL,
		Limit:    e.cfg.Discovery.Limit,
	}
	closeFn := func() {}
	if e.cfg.Redis.URL != "" {
		c, err := discovery.NewRedisCache(e.cfg.Redis.URL)
		if err != nil {
			logging.Warn("redis_cache_disabled", map[string]any{"error": err.Error()})
		} else {
			d.Cache = c
			closeFn = func() { _ = c.Close() }
		}
	}
	return d, closeFn, nil
}

func printJSON(v any) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func splitList(s string) []string {
	var out []string
	for _, p := range strings.Split(s, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

func cmdInit(args []string) error {
	fs := flag.NewFlagSet("init", flag.ExitOnError)
	path := fs.String("path", defaultConfigPath, "path to write config")
	_ = fs.Parse(args)
	return cmdlog.Run("init", func(string) error {
		if err := config.Save(*path, config.Default()); err != nil {
			return err
		}
		abs, _ := filepath.Abs(*path)
		theme.PrintBanner()
		fmt.Println("Config written to:", abs)
		fmt.Println("Secrets are read from .env: APIFY_API_TOKEN, GEMINI_API_KEY, OPENAI_API_KEY, ANTHROPIC_API_KEY, REDIS_URL")
		return nil
	})
}

package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"fortio.org/log"
	"github.com/spf13/cobra"

	"github.com/ironsheep/palette-tools-mcp/internal/imaging"
	"github.com/ironsheep/palette-tools-mcp/internal/server"
)

// Version information - set by ldflags during build
var (
	Version   = "dev"
	BuildTime = "unknown"
	GitCommit = "unknown"
)

const (
	envLogLevel     = "PALETTE_MCP_LOG_LEVEL"
	envFetchTimeout = "PALETTE_MCP_FETCH_TIMEOUT"
)

var rootCmd = &cobra.Command{
	Use:   "palette-tools-mcp",
	Short: "MCP server for dominant-color palette extraction",
	Long: `palette-tools-mcp extracts dominant-color palettes from images and
formats them as hex, rgb, cmyk or hsl.

It communicates via MCP protocol over stdin/stdout. Configure it in your
MCP client; logs are written to stderr.

Environment variables:
  PALETTE_MCP_LOG_LEVEL=debug      Default for --log-level
  PALETTE_MCP_FETCH_TIMEOUT=10s    Default for --fetch-timeout`,
	SilenceUsage: true,
	RunE:         runServer,
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("palette-tools-mcp %s\n", Version)
		fmt.Printf("  Build time: %s\n", BuildTime)
		fmt.Printf("  Git commit: %s\n", GitCommit)
	},
}

func init() {
	rootCmd.Flags().String("log-level", envOr(envLogLevel, "info"), "Log level: debug, verbose, info, warning, error")
	rootCmd.Flags().Duration("fetch-timeout", envDuration(envFetchTimeout, server.DefaultFetchTimeout), "Timeout for palette_extract_url fetches (negative disables)")
	rootCmd.Flags().Int64("max-fetch-bytes", imaging.DefaultMaxFetchBytes, "Maximum size of a fetched image body")
	rootCmd.Version = Version
	rootCmd.AddCommand(versionCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func runServer(cmd *cobra.Command, args []string) error {
	logLevel, _ := cmd.Flags().GetString("log-level")
	fetchTimeout, _ := cmd.Flags().GetDuration("fetch-timeout")
	maxFetchBytes, _ := cmd.Flags().GetInt64("max-fetch-bytes")

	if err := log.SetLogLevelStr(logLevel); err != nil {
		return fmt.Errorf("invalid --log-level %q: %w", logLevel, err)
	}
	log.Infof("Palette MCP Server v%s (built %s, commit %s)", Version, BuildTime, GitCommit)
	log.Debugf("Fetch timeout %v, max fetch bytes %d", fetchTimeout, maxFetchBytes)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	srv := server.New(server.Config{
		Fetcher:      imaging.NewHTTPFetcher(&http.Client{}, maxFetchBytes),
		FetchTimeout: fetchTimeout,
	})

	// A blocked stdin read does not observe ctx, so shutdown on signal does
	// not wait for Run to return.
	errCh := make(chan error, 1)
	go func() { errCh <- srv.Run(ctx) }()

	select {
	case err := <-errCh:
		if err != nil && ctx.Err() == nil {
			return fmt.Errorf("server error: %w", err)
		}
	case <-ctx.Done():
		log.Infof("Received shutdown signal")
	}
	log.Infof("Palette MCP Server stopped")
	return nil
}

// envOr returns the environment variable key, or def when it is unset.
func envOr(key, def string) string {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		return v
	}
	return def
}

// envDuration parses key as a time.Duration, or as whole seconds when it is
// a bare integer. Unset or malformed values yield def.
func envDuration(key string, def time.Duration) time.Duration {
	v := envOr(key, "")
	if v == "" {
		return def
	}
	if d, err := time.ParseDuration(v); err == nil {
		return d
	}
	if n, err := strconv.Atoi(v); err == nil {
		return time.Duration(n) * time.Second
	}
	return def
}

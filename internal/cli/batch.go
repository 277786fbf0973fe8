package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/anoncheck/anoncheck/internal/verify"
	"github.com/anoncheck/anoncheck/internal/worker"
)

var (
	concurrency  int
	outputDir    string
	batchTimeout time.Duration
	checkTimeout time.Duration
	// noFooter and the HTTP/NER flags are defined in check.go and shared here
)

// batchCmd represents the batch command
var batchCmd = &cobra.Command{
	Use:   "batch <file>",
	Short: "Audit multiple documents from a file in parallel",
	Long: `Batch audits multiple documents concurrently:
- Read targets from input file (one file path or URL per line)
- Process targets in parallel with configurable worker count
- Generate individual reports for each document

Example:
  anoncheck batch targets.txt
  anoncheck batch targets.txt --concurrency 10 --output-dir ./reports
  anoncheck batch targets.txt --ner openai`,
	Args: cobra.ExactArgs(1),
	RunE: runBatch,
}

func init() {
	rootCmd.AddCommand(batchCmd)

	// Concurrency flags
	batchCmd.Flags().IntVar(&concurrency, "concurrency", runtime.NumCPU(), "number of concurrent workers")
	batchCmd.Flags().StringVar(&outputDir, "output-dir", "./anoncheck-reports", "output directory for reports")
	batchCmd.Flags().DurationVar(&batchTimeout, "timeout", 10*time.Minute, "total timeout for batch processing")

	// Inherit flags from check command
	batchCmd.Flags().DurationVar(&checkTimeout, "check-timeout", 30*time.Second, "timeout for individual checks")
	batchCmd.Flags().StringVar(&userAgent, "ua", "anoncheck/0.2 (+https://github.com/anoncheck/anoncheck)", "HTTP User-Agent")
	batchCmd.Flags().BoolVar(&ignoreRobots, "ignore-robots", false, "skip robots.txt checks for remote documents")
	batchCmd.Flags().StringVar(&httpProxy, "http-proxy", "", "HTTP proxy URL (overrides HTTP_PROXY env var)")
	batchCmd.Flags().StringVar(&httpsProxy, "https-proxy", "", "HTTPS proxy URL (overrides HTTPS_PROXY env var)")
	batchCmd.Flags().BoolVar(&noFooter, "no-footer", false, "disable footer in Markdown reports")
	batchCmd.Flags().StringVar(&wordsFile, "words", "", "disallowed words JSON file (default: embedded list)")
	batchCmd.Flags().StringVar(&entitiesFile, "allowed-entities", "", "allowed entities JSON file (default: embedded list)")

	// NER flags
	batchCmd.Flags().BoolVar(&nerEnabled, "ner", false, "enable named-entity recognition")
	batchCmd.Flags().StringVar(&nerProvider, "ner-provider", "openai", "NER provider (openai, anthropic, ollama)")
	batchCmd.Flags().StringVar(&nerModel, "ner-model", "", "NER model name (provider default if empty)")
	batchCmd.Flags().BoolVar(&noCache, "no-cache", false, "disable the NER result cache")
}

func runBatch(cmd *cobra.Command, args []string) error {
	file := args[0]
	ctx, cancel := context.WithTimeout(context.Background(), batchTimeout)
	defer cancel()

	fmt.Fprintf(os.Stderr, "\n")
	fmt.Fprintf(os.Stderr, "═══════════════════════════════════════════════════════════\n")
	fmt.Fprintf(os.Stderr, "  Anoncheck Batch Processing\n")
	fmt.Fprintf(os.Stderr, "═══════════════════════════════════════════════════════════\n")
	fmt.Fprintf(os.Stderr, "\n")
	fmt.Fprintf(os.Stderr, "  Input file:   %s\n", file)
	fmt.Fprintf(os.Stderr, "  Workers:      %d\n", concurrency)
	fmt.Fprintf(os.Stderr, "  Output dir:   %s\n", outputDir)
	fmt.Fprintf(os.Stderr, "  Timeout:      %v\n", batchTimeout)
	fmt.Fprintf(os.Stderr, "\n")

	cfg, err := buildConfig(cmd.Flags())
	if err != nil {
		return err
	}

	// The flag wins when set; otherwise a workers value from the config
	// file applies, with the CPU-count flag default as the fallback.
	switch {
	case cmd.Flags().Changed("concurrency"):
		cfg.Concurrency.Workers = concurrency
	case viper.IsSet("concurrency.workers"):
		concurrency = cfg.Concurrency.Workers
	default:
		cfg.Concurrency.Workers = concurrency
	}

	if cfg.NER.Provider != "" {
		fmt.Fprintf(os.Stderr, "  NER:          %s/%s\n\n", cfg.NER.Provider, cfg.NER.Model)
	}

	// Create output directory
	if err := os.MkdirAll(outputDir, 0o755); err != nil {
		return fmt.Errorf("create output directory: %w", err)
	}

	verifier, err := verify.NewVerifier(cfg)
	if err != nil {
		return err
	}

	processor := worker.NewBatchProcessor(verifier, concurrency)

	fmt.Fprintf(os.Stderr, "⚙️  Reading targets from file...\n")
	results, err := processor.ProcessFile(ctx, file)
	if err != nil {
		return fmt.Errorf("process file: %w", err)
	}

	fmt.Fprintf(os.Stderr, "✓ Loaded %d targets\n", len(results))
	fmt.Fprintf(os.Stderr, "\n")

	renderer := verify.NewRenderer(cfg.Output.IncludeFooter)

	successCount := 0
	failureCount := 0
	cleanCount := 0

	for _, result := range results {
		if result.Error != nil {
			failureCount++
			fmt.Fprintf(os.Stderr, "✗ %s: %v\n", result.Target, result.Error)
			continue
		}

		successCount++
		if result.Report.Clean() {
			cleanCount++
		}

		slug := sanitizeFilename(result.Report.Subject)
		jsonPath := filepath.Join(outputDir, slug+".json")
		mdPath := filepath.Join(outputDir, slug+".md")

		if err := renderer.RenderJSON(result.Report, jsonPath); err != nil {
			fmt.Fprintf(os.Stderr, "✗ %s: failed to write JSON: %v\n", result.Target, err)
			continue
		}
		if err := renderer.RenderMarkdown(result.Report, mdPath); err != nil {
			fmt.Fprintf(os.Stderr, "✗ %s: failed to write Markdown: %v\n", result.Target, err)
			continue
		}

		fmt.Fprintf(os.Stderr, "✓ %s (risk: %s, %d findings)\n",
			result.Report.Subject, result.Report.Risk.Level, result.Report.Risk.Findings)
	}

	// Summary
	fmt.Fprintf(os.Stderr, "\n")
	fmt.Fprintf(os.Stderr, "═══════════════════════════════════════════════════════════\n")
	fmt.Fprintf(os.Stderr, "  Batch Complete\n")
	fmt.Fprintf(os.Stderr, "═══════════════════════════════════════════════════════════\n")
	fmt.Fprintf(os.Stderr, "\n")
	fmt.Fprintf(os.Stderr, "  Total:     %d documents\n", len(results))
	fmt.Fprintf(os.Stderr, "  Success:   %d (%d clean)\n", successCount, cleanCount)
	fmt.Fprintf(os.Stderr, "  Failures:  %d\n", failureCount)
	fmt.Fprintf(os.Stderr, "  Output:    %s\n", outputDir)
	fmt.Fprintf(os.Stderr, "\n")

	return nil
}

// sanitizeFilename sanitizes a string for use as a filename
func sanitizeFilename(s string) string {
	replacer := strings.NewReplacer(
		"/", "_",
		"\\", "_",
		":", "_",
		"*", "_",
		"?", "_",
		"\"", "_",
		"<", "_",
		">", "_",
		"|", "_",
		" ", "-",
	)
	s = replacer.Replace(s)

	// Limit length
	if len(s) > 100 {
		s = s[:100]
	}

	if s == "" {
		s = "report"
	}

	return s
}

package cli

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/anoncheck/anoncheck/internal/model"
	"github.com/anoncheck/anoncheck/internal/verify"
)

var (
	outJSON      string
	outMD        string
	timeout      time.Duration
	userAgent    string
	maxBytes     int64
	noCache      bool
	noFooter     bool
	ignoreRobots bool
	httpProxy    string
	httpsProxy   string
	wordsFile    string
	entitiesFile string
	nerEnabled   bool
	nerProvider  string
	nerModel     string
)

// checkCmd represents the check command
var checkCmd = &cobra.Command{
	Use:   "check <file-or-url>",
	Short: "Audit a single document and generate an anonymity report",
	Long: `Check audits one document:
- Find subject-verb pairs that do not agree after pronoun substitution
- Find disallowed words that survived anonymization
- Optionally recognize named entities and diff them against the allow-list

Example:
  anoncheck check report.docx
  anoncheck check notes.txt --json report.json --md report.md
  anoncheck check https://example.com/profile --ner openai`,
	Args: cobra.ExactArgs(1),
	RunE: runCheck,
}

func init() {
	rootCmd.AddCommand(checkCmd)

	// Output flags
	checkCmd.Flags().StringVar(&outJSON, "json", "", "output JSON path (optional)")
	checkCmd.Flags().StringVar(&outMD, "md", "", "output Markdown path (optional)")
	checkCmd.Flags().BoolVar(&noFooter, "no-footer", false, "disable footer in Markdown reports")

	// HTTP flags
	checkCmd.Flags().DurationVar(&timeout, "timeout", 30*time.Second, "overall check timeout")
	checkCmd.Flags().StringVar(&userAgent, "ua", "anoncheck/0.2 (+https://github.com/anoncheck/anoncheck)", "HTTP User-Agent")
	checkCmd.Flags().Int64Var(&maxBytes, "max-bytes", 2_000_000, "max response bytes to read")
	checkCmd.Flags().BoolVar(&ignoreRobots, "ignore-robots", false, "skip robots.txt checks for remote documents")
	checkCmd.Flags().StringVar(&httpProxy, "http-proxy", "", "HTTP proxy URL (overrides HTTP_PROXY env var)")
	checkCmd.Flags().StringVar(&httpsProxy, "https-proxy", "", "HTTPS proxy URL (overrides HTTPS_PROXY env var)")

	// Word list flags
	checkCmd.Flags().StringVar(&wordsFile, "words", "", "disallowed words JSON file (default: embedded list)")
	checkCmd.Flags().StringVar(&entitiesFile, "allowed-entities", "", "allowed entities JSON file (default: embedded list)")

	// NER flags
	checkCmd.Flags().BoolVar(&nerEnabled, "ner", false, "enable named-entity recognition")
	checkCmd.Flags().StringVar(&nerProvider, "ner-provider", "openai", "NER provider (openai, anthropic, ollama)")
	checkCmd.Flags().StringVar(&nerModel, "ner-model", "", "NER model name (provider default if empty)")
	checkCmd.Flags().BoolVar(&noCache, "no-cache", false, "disable the NER result cache")
}

func runCheck(cmd *cobra.Command, args []string) error {
	target := args[0]

	cfg, err := buildConfig(cmd.Flags())
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(context.Background(), cfg.HTTP.Timeout)
	defer cancel()

	verifier, err := verify.NewVerifier(cfg)
	if err != nil {
		return err
	}

	report, err := verifier.CheckDocument(ctx, target)
	if err != nil {
		return fmt.Errorf("check failed: %w", err)
	}

	renderer := verify.NewRenderer(cfg.Output.IncludeFooter)

	if outJSON != "" {
		if err := renderer.RenderJSON(report, outJSON); err != nil {
			return fmt.Errorf("render JSON: %w", err)
		}
		if verbose {
			fmt.Fprintf(os.Stderr, "✓ Wrote JSON: %s\n", outJSON)
		}
	}

	if outMD != "" {
		if err := renderer.RenderMarkdown(report, outMD); err != nil {
			return fmt.Errorf("render markdown: %w", err)
		}
		if verbose {
			fmt.Fprintf(os.Stderr, "✓ Wrote Markdown: %s\n", outMD)
		}
	}

	renderer.RenderSummary(report)

	return nil
}

// buildConfig layers the configuration: defaults, then the config file
// and ANONCHECK_* environment (via viper), then flags the user set
// explicitly on the command line.
func buildConfig(flags *pflag.FlagSet) (*model.Config, error) {
	cfg := model.DefaultConfig()
	if err := viper.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("parse config file: %w", err)
	}

	// On batch the per-check HTTP timeout flag is named check-timeout;
	// plain --timeout is the total batch deadline there.
	timeoutFlag := "timeout"
	if flags.Lookup("check-timeout") != nil {
		timeoutFlag = "check-timeout"
	}
	if flags.Changed(timeoutFlag) {
		if d, err := flags.GetDuration(timeoutFlag); err == nil {
			cfg.HTTP.Timeout = d
		}
	}
	if flags.Changed("ua") {
		cfg.HTTP.UserAgent = userAgent
	}
	if flags.Changed("max-bytes") {
		cfg.HTTP.MaxBodyBytes = maxBytes
	}
	if flags.Changed("http-proxy") {
		cfg.HTTP.HTTPProxy = httpProxy
	}
	if flags.Changed("https-proxy") {
		cfg.HTTP.HTTPSProxy = httpsProxy
	}
	if flags.Changed("ignore-robots") {
		cfg.HTTP.IgnoreRobots = ignoreRobots
	}
	if flags.Changed("no-cache") {
		cfg.Cache.Enabled = !noCache
	}
	if flags.Changed("words") {
		cfg.Lists.DisallowedWordsFile = wordsFile
	}
	if flags.Changed("allowed-entities") {
		cfg.Lists.AllowedEntitiesFile = entitiesFile
	}
	if flags.Changed("no-footer") {
		cfg.Output.IncludeFooter = !noFooter
	}
	cfg.Output.Verbose = verbose

	switch {
	case nerEnabled:
		if flags.Changed("ner-provider") || cfg.NER.Provider == "" {
			cfg.NER.Provider = nerProvider
		}
		if flags.Changed("ner-model") {
			cfg.NER.Model = nerModel
		}
	case flags.Changed("ner"):
		// An explicit --ner=false wins over a provider from the file.
		cfg.NER.Provider = ""
	}

	if err := resolveNERKey(cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

// resolveNERKey pulls provider credentials from the environment; keys
// are never read from the config file.
func resolveNERKey(cfg *model.Config) error {
	switch strings.ToLower(cfg.NER.Provider) {
	case "":
		return nil
	case "openai":
		cfg.NER.APIKey = os.Getenv("OPENAI_API_KEY")
		if cfg.NER.APIKey == "" {
			return fmt.Errorf("OPENAI_API_KEY environment variable not set")
		}
	case "anthropic", "claude":
		cfg.NER.APIKey = os.Getenv("ANTHROPIC_API_KEY")
		if cfg.NER.APIKey == "" {
			return fmt.Errorf("ANTHROPIC_API_KEY environment variable not set")
		}
	case "ollama":
		// Ollama needs no API key
		if cfg.NER.BaseURL == "" {
			cfg.NER.BaseURL = os.Getenv("OLLAMA_BASE_URL")
		}
	}
	return nil
}

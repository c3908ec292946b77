package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/isnadlab/silsila/internal/cache"
	"github.com/isnadlab/silsila/internal/correct"
	"github.com/isnadlab/silsila/internal/match"
	"github.com/isnadlab/silsila/internal/model"
	"github.com/isnadlab/silsila/internal/oracle"
	"github.com/isnadlab/silsila/internal/store"
	"github.com/isnadlab/silsila/internal/worker"
)

var (
	fixProvider string
	fixModel    string
	fixLimit    int
	fixNoCache  bool
)

// fixCmd represents the fix command
var fixCmd = &cobra.Command{
	Use:   "fix",
	Short: "Correct mismatched chains from the secondary source and the oracle",
	Long: `Fix works through the mismatch queue. For each record it first
tries to resolve every secondary-source name through the strict matcher
(manual aliases take precedence); when that fails it asks the oracle
for the correct chain and validates every suggested name the same way.
A chain is only rewritten when every position resolved.

The loop is checkpointed by record ID and rate limited, so it can be
interrupted and resumed. Unfixable records are re-queued with their
best partial resolution.

Rewrites chains.json and writes unfixable.json.

Example:
  silsila fix
  silsila fix --provider openai --model gpt-4o-mini --limit 200`,
	RunE: runFix,
}

func init() {
	rootCmd.AddCommand(fixCmd)

	fixCmd.Flags().StringVar(&fixProvider, "provider", "", "oracle provider (openai; empty disables the oracle tier)")
	fixCmd.Flags().StringVar(&fixModel, "model", "", "oracle model name")
	fixCmd.Flags().IntVar(&fixLimit, "limit", 0, "stop after this many mismatches (0 = all)")
	fixCmd.Flags().BoolVar(&fixNoCache, "no-cache", false, "disable the oracle response cache")
}

func runFix(cmd *cobra.Command, args []string) error {
	cfg := loadConfig()
	if fixProvider != "" {
		cfg.Oracle.Provider = fixProvider
	}
	if fixModel != "" {
		cfg.Oracle.Model = fixModel
	}
	if fixNoCache {
		cfg.Cache.Enabled = false
	}

	st, err := store.New(cfg.Data.Dir, cfg.Output.Indent)
	if err != nil {
		return err
	}
	narrators, err := st.LoadNarrators()
	if err != nil {
		return fmt.Errorf("run 'silsila build' first: %w", err)
	}
	chains, err := st.LoadChains()
	if err != nil {
		return fmt.Errorf("run 'silsila build' first: %w", err)
	}
	mismatches, err := st.LoadMismatches(store.MismatchesFile)
	if err != nil {
		return fmt.Errorf("run 'silsila reconcile' first: %w", err)
	}
	if fixLimit > 0 && fixLimit < len(mismatches) {
		mismatches = mismatches[:fixLimit]
	}

	aliases, err := store.LoadAliases(cfg.Data.AliasPath)
	if err != nil {
		return err
	}

	matcher := narratorMatcher(narrators, cfg)
	matcher.SetAliases(aliases)

	provider, err := oracle.NewProvider(oracle.ConfigFromModel(cfg.Oracle))
	if err != nil {
		return err
	}
	if provider != nil && cfg.Output.Verbose {
		fmt.Fprintf(os.Stderr, "oracle: %s (%s)\n", provider.Name(), cfg.Oracle.Model)
	}

	var responses cache.Cache
	if cfg.Cache.Enabled {
		responses = cache.NewLayeredCache(cfg.Cache.TTL, cfg.Cache.Dir, cfg.Cache.TTL)
	}

	// One token per delay interval; the extra per-request delay is the
	// politeness floor
	rps := 2.0
	if cfg.Oracle.RequestDelay > 0 {
		rps = 1.0 / cfg.Oracle.RequestDelay.Seconds()
	}
	limiter := worker.NewLimiter(rps, 1)

	checkpoint, err := store.LoadCheckpoint(cfg.Checkpoint.Path)
	if err != nil {
		return err
	}

	corrector := correct.New(matcher, chains, provider, responses, limiter, checkpoint, correct.Config{
		RequestDelay: cfg.Oracle.RequestDelay,
		MaxRetries:   cfg.Oracle.MaxRetries,
		RetryDelay:   cfg.Oracle.RetryDelay,
		SaveEvery:    cfg.Checkpoint.SaveEvery,
		CacheTTL:     cfg.Cache.TTL,
		Verbose:      cfg.Output.Verbose,
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	report, unfixable, err := corrector.Run(ctx, mismatches)
	if err != nil {
		return fmt.Errorf("correction loop: %w", err)
	}

	if err := st.SaveChains(chains); err != nil {
		return err
	}
	if unfixable == nil {
		unfixable = []model.Mismatch{}
	}
	if err := st.SaveMismatches(store.UnfixableFile, unfixable); err != nil {
		return err
	}

	fmt.Printf("Run:                  %s\n", report.RunID)
	fmt.Printf("Queue:                %d\n", report.Total)
	fmt.Printf("Skipped (checkpoint): %d\n", report.Skipped)
	fmt.Printf("Fixed from secondary: %d\n", report.FixedFromSecondary)
	fmt.Printf("Fixed from oracle:    %d\n", report.FixedFromOracle)
	fmt.Printf("Unfixable:            %d\n", report.Unfixable)
	return nil
}

// narratorMatcher builds the strict matcher over canonical narrator
// names, candidates keyed by narrator ID.
func narratorMatcher(narrators []model.Narrator, cfg *model.Config) *match.Matcher {
	keys := make([]string, 0, len(narrators))
	candidates := make([]int, 0, len(narrators))
	for _, n := range narrators {
		keys = append(keys, n.CanonicalName)
		candidates = append(candidates, n.ID)
	}
	return match.New(match.Config{
		Threshold:    cfg.Match.Threshold,
		Strict:       true,
		MinPrefixLen: cfg.Match.MinPrefixLen,
		MinAnyLen:    cfg.Match.MinAnyLen,
	}, keys, candidates)
}

package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/isnadlab/silsila/internal/bioindex"
	"github.com/isnadlab/silsila/internal/enrich"
	"github.com/isnadlab/silsila/internal/match"
	"github.com/isnadlab/silsila/internal/store"
)

var enrichBiography string

// enrichCmd represents the enrich command
var enrichCmd = &cobra.Command{
	Use:   "enrich",
	Short: "Match narrators against the biography table and attach attributes",
	Long: `Enrich builds the multi-key biography index, resolves every
canonical narrator through the identity matcher, and copies grade,
parents, teachers, students and birth/death data onto the matched
entries. Unmatched narrators are flagged for research.

Rewrites narrators.json and writes match_report.json.`,
	RunE: runEnrich,
}

func init() {
	rootCmd.AddCommand(enrichCmd)

	enrichCmd.Flags().StringVar(&enrichBiography, "biography", "", "biography CSV (overrides config)")
}

func runEnrich(cmd *cobra.Command, args []string) error {
	cfg := loadConfig()
	if enrichBiography != "" {
		cfg.Data.BiographyPath = enrichBiography
	}

	st, err := store.New(cfg.Data.Dir, cfg.Output.Indent)
	if err != nil {
		return err
	}
	narrators, err := st.LoadNarrators()
	if err != nil {
		return fmt.Errorf("run 'silsila build' first: %w", err)
	}

	bios, err := store.LoadBiographies(cfg.Data.BiographyPath)
	if err != nil {
		return fmt.Errorf("load biographies: %w", err)
	}
	index := bioindex.Build(bios)

	matchCfg := match.Config{
		Threshold:    cfg.Match.Threshold,
		MinPrefixLen: cfg.Match.MinPrefixLen,
		MinAnyLen:    cfg.Match.MinAnyLen,
	}
	report := enrich.Run(narrators, index, matchCfg)

	if err := st.SaveNarrators(narrators); err != nil {
		return err
	}
	if err := st.SaveJSON(store.ReportFile, report); err != nil {
		return err
	}

	fmt.Printf("Biography entries: %d (index keys: %d)\n", len(bios), index.Len())
	fmt.Printf("Narrators:         %d\n", report.Total)
	fmt.Printf("Matched:           %d\n", report.Matched)
	fmt.Printf("Filtered:          %d\n", report.Filtered)
	fmt.Printf("Unmatched:         %d\n", report.Unmatched)
	fmt.Printf("Match rate:        %.1f%%\n", report.MatchRate*100)
	return nil
}

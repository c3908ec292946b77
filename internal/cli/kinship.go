package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/isnadlab/silsila/internal/bioindex"
	"github.com/isnadlab/silsila/internal/kinship"
	"github.com/isnadlab/silsila/internal/store"
)

// kinshipCmd represents the kinship command
var kinshipCmd = &cobra.Command{
	Use:   "kinship",
	Short: "Resolve kinship references from chain context",
	Long: `Kinship scans every chain for relative references (his father,
his grandfather, ...) and resolves each occurrence from the narrator at
the preceding position: an embedded name wins, then the preceding
narrator's patronymic, then the biography table's parent field. A
consensus resolution is aggregated per reference across all chains.

Rewrites narrators.json and writes kinship_resolutions.json.`,
	RunE: runKinship,
}

func init() {
	rootCmd.AddCommand(kinshipCmd)
}

func runKinship(cmd *cobra.Command, args []string) error {
	cfg := loadConfig()

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

	// The parent-field map is optional context; a missing biography CSV
	// just weakens the last resolution tier.
	knownFathers := map[string]string{}
	if bios, err := store.LoadBiographies(cfg.Data.BiographyPath); err == nil {
		knownFathers = bioindex.Build(bios).KnownFathers()
	} else if cfg.Output.Verbose {
		fmt.Fprintf(os.Stderr, "biographies unavailable: %v\n", err)
	}

	names := make([]string, len(narrators))
	for _, n := range narrators {
		if n.ID >= 0 && n.ID < len(names) {
			names[n.ID] = n.CanonicalName
		}
	}

	resolver := kinship.NewResolver(names, knownFathers)
	resolutions, stats := resolver.ResolveAll(chains)
	kinship.Enrich(narrators, resolutions)

	if err := st.SaveNarrators(narrators); err != nil {
		return err
	}
	if err := st.SaveJSON(store.KinshipFile, resolutions); err != nil {
		return err
	}

	fmt.Printf("Kinship occurrences: %d\n", stats.TotalReferences)
	fmt.Printf("Resolved:            %d\n", stats.Resolved)
	fmt.Printf("Unresolved:          %d\n", stats.Unresolved)
	for kind, count := range stats.ByKind {
		fmt.Printf("  %-12s %d\n", kind, count)
	}
	return nil
}

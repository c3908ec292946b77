package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/isnadlab/silsila/internal/chain"
	"github.com/isnadlab/silsila/internal/store"
)

var (
	buildDataset string
	buildLimit   int
)

// buildCmd represents the build command
var buildCmd = &cobra.Command{
	Use:   "build",
	Short: "Build canonical narrators and deduplicated chains from the raw dataset",
	Long: `Build reads the raw chain dataset, parses each record's narrator
list, clusters spelling variants into canonical identities, and interns
every resolved sequence into a deduplicated chain table.

Writes narrators.json, chains.json and records.json into the data
directory.

Example:
  silsila build
  silsila build --dataset datasets/sanadset.csv --limit 10000`,
	RunE: runBuild,
}

func init() {
	rootCmd.AddCommand(buildCmd)

	buildCmd.Flags().StringVar(&buildDataset, "dataset", "", "raw chain dataset CSV (overrides config)")
	buildCmd.Flags().IntVar(&buildLimit, "limit", 0, "stop after this many records (0 = all)")
}

func runBuild(cmd *cobra.Command, args []string) error {
	cfg := loadConfig()
	if buildDataset != "" {
		cfg.Data.DatasetPath = buildDataset
	}

	rows, err := store.LoadRawRecords(cfg.Data.DatasetPath)
	if err != nil {
		return fmt.Errorf("load dataset: %w", err)
	}

	builder := chain.NewBuilder()
	var malformed int
	for i, row := range rows {
		if buildLimit > 0 && i >= buildLimit {
			break
		}

		names, err := chain.ParseNameList(row.Chain)
		if err != nil {
			malformed++
			if cfg.Output.Verbose {
				fmt.Fprintf(os.Stderr, "skip %s %d: %v\n", row.Collection, row.Number, err)
			}
			continue
		}
		builder.AddRecord(store.RecordID(row.Collection, row.Number), names)
	}

	st, err := store.New(cfg.Data.Dir, cfg.Output.Indent)
	if err != nil {
		return err
	}
	if err := st.SaveNarrators(builder.Narrators()); err != nil {
		return err
	}
	if err := st.SaveChains(builder.Chains()); err != nil {
		return err
	}
	if err := st.SaveRecords(builder.Records()); err != nil {
		return err
	}

	stats := builder.Stats()
	fmt.Printf("Rows read:       %d\n", len(rows))
	fmt.Printf("Malformed rows:  %d\n", malformed)
	fmt.Printf("Records linked:  %d\n", stats.Records)
	fmt.Printf("Narrators:       %d\n", stats.Narrators)
	fmt.Printf("Unique chains:   %d\n", stats.Chains)
	return nil
}

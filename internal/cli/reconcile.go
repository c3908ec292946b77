package cli

import (
	"fmt"
	"os"
	"sort"

	"github.com/spf13/cobra"

	"github.com/isnadlab/silsila/internal/bioindex"
	"github.com/isnadlab/silsila/internal/model"
	"github.com/isnadlab/silsila/internal/reconcile"
	"github.com/isnadlab/silsila/internal/store"
)

var reconcileSecondary string

// reconcileCmd represents the reconcile command
var reconcileCmd = &cobra.Command{
	Use:   "reconcile",
	Short: "Compare primary chains against the secondary encoding",
	Long: `Reconcile joins every record to its row in the independent
secondary chain encoding by (source, number), decodes the secondary
scholar indices through the biography table, and compares the two name
sequences position by position. Disagreements are written as the
mismatch queue for 'silsila fix'.

Writes mismatches.json.`,
	RunE: runReconcile,
}

func init() {
	rootCmd.AddCommand(reconcileCmd)

	reconcileCmd.Flags().StringVar(&reconcileSecondary, "secondary", "", "secondary chain CSV (overrides config)")
}

func runReconcile(cmd *cobra.Command, args []string) error {
	cfg := loadConfig()
	if reconcileSecondary != "" {
		cfg.Data.SecondaryPath = reconcileSecondary
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
	recordMap, err := st.LoadRecords()
	if err != nil {
		return fmt.Errorf("run 'silsila build' first: %w", err)
	}

	records := make([]model.Record, 0, len(recordMap))
	for id, chainID := range recordMap {
		collection, number, ok := store.ParseRecordID(id)
		if !ok {
			fmt.Fprintf(os.Stderr, "warning: malformed record id %q\n", id)
			continue
		}
		records = append(records, model.Record{
			ID:         id,
			Collection: collection,
			Number:     number,
			ChainID:    chainID,
		})
	}
	// Map iteration order is random; keep the queue diffable
	sort.Slice(records, func(i, j int) bool { return records[i].ID < records[j].ID })

	secondary, err := store.LoadSecondaryChains(cfg.Data.SecondaryPath)
	if err != nil {
		return fmt.Errorf("load secondary chains: %w", err)
	}

	bios, err := store.LoadBiographies(cfg.Data.BiographyPath)
	if err != nil {
		return fmt.Errorf("load biographies: %w", err)
	}
	index := bioindex.Build(bios)

	r := reconcile.New(narrators, chains, index)
	mismatches, stats := r.Run(records, secondary)

	if err := st.SaveMismatches(store.MismatchesFile, mismatches); err != nil {
		return err
	}

	fmt.Printf("Records:            %d\n", stats.Records)
	fmt.Printf("Compared:           %d\n", stats.Compared)
	fmt.Printf("Matched:            %d\n", stats.Matched)
	fmt.Printf("Length mismatches:  %d\n", stats.LengthMismatches)
	fmt.Printf("Name mismatches:    %d\n", stats.PositionMismatches)
	fmt.Printf("Missing secondary:  %d\n", stats.MissingSecondary)
	fmt.Printf("Empty secondary:    %d\n", stats.EmptySecondary)
	return nil
}

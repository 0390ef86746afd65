package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
)

var ingestCmd = &cobra.Command{
	Use:   "ingest [file...]",
	Short: "Index one or more local documents",
	Long: `Parses each file into text, table and image fragments, summarises
and embeds every fragment, and writes the result to the vector store.
Each file gets a fresh document id, so re-ingesting a file indexes it
again rather than replacing the earlier copy.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runIngest,
}

func init() {
	rootCmd.AddCommand(ingestCmd)
}

func runIngest(cmd *cobra.Command, args []string) error {
	a, err := buildApp(cfg)
	if err != nil {
		return err
	}
	defer a.Close()

	for _, path := range args {
		data, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("reading %s: %w", path, err)
		}

		filename := filepath.Base(path)
		documentID, err := a.Ingestor.Ingest(cmd.Context(), filename, data)
		if err != nil {
			return fmt.Errorf("ingesting %s: %w", path, err)
		}

		cmd.Printf("%s indexed as %s\n", filename, documentID)
	}

	return nil
}

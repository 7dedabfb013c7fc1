package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/vytor/nihaocards/internal/importer"
	"github.com/vytor/nihaocards/internal/repository/sqlite"
	"github.com/vytor/nihaocards/internal/services"
)

var importCmd = &cobra.Command{
	Use:   "import-cards <file.xlsx|file.csv>",
	Short: "Load the card catalog from a spreadsheet",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		database, err := openDB(cmd)
		if err != nil {
			return err
		}
		defer database.Close()

		cfg := importer.DefaultConfig()
		cfg.SheetName, _ = cmd.Flags().GetString("sheet")
		if row, _ := cmd.Flags().GetInt("start-row"); row > 0 {
			cfg.StartRow = row
		}

		catalog := services.NewCatalogService(sqlite.NewCardRepository(database.DB), cfg)
		result, err := catalog.ImportFile(cmd.Context(), args[0])
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "processed=%d created=%d updated=%d skipped=%d\n",
			result.TotalProcessed, result.Created, result.Updated, result.Skipped)
		for _, e := range result.Errors {
			fmt.Fprintln(out, "  "+e)
		}
		return nil
	},
}

func init() {
	importCmd.Flags().String("sheet", "", "Sheet name (default: first sheet)")
	importCmd.Flags().Int("start-row", 0, "First data row, 1-based (default: 2)")
}

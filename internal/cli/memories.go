package cli

import (
	"encoding/json"
	"os"

	"github.com/spf13/cobra"

	"iva/internal/memory"
)

var memoriesIdentity string

var memoriesCmd = &cobra.Command{
	Use:   "memories",
	Short: "Dump the stored node records for an identity",
	RunE: func(cmd *cobra.Command, args []string) error {
		ns := memory.Namespace{Identity: memoriesIdentity, Kind: "memories"}
		entries, err := app.Store.List(cmd.Context(), ns)
		if err != nil {
			return err
		}

		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(entries)
	},
}

func init() {
	memoriesCmd.Flags().StringVar(&memoriesIdentity, "identity", "default", "identity whose records to list")
}

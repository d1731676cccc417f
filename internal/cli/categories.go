package cli

import (
	"fmt"

	"github.com/ppiankov/stepshape/internal/model"
	"github.com/spf13/cobra"
)

var categoriesCmd = &cobra.Command{
	Use:   "categories",
	Short: "List algorithm categories accepted by --exclude",
	Run: func(cmd *cobra.Command, args []string) {
		out := cmd.OutOrStdout()
		for _, c := range model.Categories() {
			fmt.Fprintf(out, "%-20s %s\n", c, c.HeadKey())
		}
	},
}

func init() {
	rootCmd.AddCommand(categoriesCmd)
}

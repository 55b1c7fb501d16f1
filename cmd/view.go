package cmd

import (
	"github.com/alexiusacademia/gocoil/internal/viewer"
	"github.com/spf13/cobra"
)

var viewCmd = &cobra.Command{
	Use:   "view",
	Short: "Open the layout in a desktop window",
	Long: `Open an interactive window showing the bobbin cross-section.

Keys:
  E      edit an input
  O      open a design file
  R      redraw (re-reads the open file)
  U      toggle millimetres / inches
  W      toggle copper / aluminum
  Esc/Q  quit

Examples:
  gocoil view
  gocoil view -f coil.json`,
	RunE: func(cmd *cobra.Command, args []string) error {
		design, err := resolveDesign(cmd)
		if err != nil {
			return err
		}
		return viewer.New(design.Inputs, designFile, design.Units, logger).Run()
	},
}

func init() {
	rootCmd.AddCommand(viewCmd)
	addDesignFlags(viewCmd)
}

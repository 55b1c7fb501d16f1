package cmd

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/alexiusacademia/gocoil/internal/coil"
	"github.com/spf13/cobra"
)

var convertTo string

var convertCmd = &cobra.Command{
	Use:   "convert",
	Short: "Print a design in millimetres or inches",
	Long: `Convert every linear dimension of a design (diameters, lengths,
strand size, margin and lead slot) to the target unit. Counts and
factors are unchanged, and the layout computed from either file is the same.

Examples:
  # Print the reference design in inches
  gocoil convert --to in

  # Show a metric design file in inches
  gocoil convert -f coil.json --to in`,
	RunE: runConvert,
}

func init() {
	rootCmd.AddCommand(convertCmd)
	addDesignFlags(convertCmd)

	convertCmd.Flags().StringVar(&convertTo, "to", "", "Target unit: mm or in [required]")
	convertCmd.MarkFlagRequired("to")
}

func runConvert(cmd *cobra.Command, args []string) error {
	design, err := resolveDesign(cmd)
	if err != nil {
		return err
	}
	to, err := coil.ParseUnit(convertTo)
	if err != nil {
		return err
	}
	logger.Debug("converting design", "from", design.Units, "to", to)

	return writeDesign(cmd.OutOrStdout(), design, to)
}

// writeDesign encodes design with its lengths expressed in unit
func writeDesign(w io.Writer, design *coil.Design, unit coil.Unit) error {
	out := coil.Design{
		Name:        design.Name,
		Description: design.Description,
		Units:       unit,
		Inputs:      design.Inputs.InUnit(unit),
	}

	data, err := json.MarshalIndent(out, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding design: %w", err)
	}
	_, err = fmt.Fprintln(w, string(data))
	return err
}

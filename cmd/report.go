package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"stackaudit/internal/report"
	consts "stackaudit/internal/shared/constants"
)

var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Re-render a saved audit dump as the sectioned text report",
	RunE: func(cmd *cobra.Command, args []string) error {
		input, _ := cmd.Flags().GetString("input")
		output, _ := cmd.Flags().GetString("output")

		if input == "" {
			return fmt.Errorf("--input is required")
		}

		data, err := os.ReadFile(input)
		if err != nil {
			return fmt.Errorf("read audit dump: %w", err)
		}

		snap, err := report.ParseJSON(data)
		if err != nil {
			return err
		}

		text := report.RenderText(snap)
		if output == "" {
			fmt.Print(text)
			return nil
		}
		if err := os.WriteFile(output, []byte(text), consts.DefaultFilePerm); err != nil {
			return fmt.Errorf("write report: %w", err)
		}
		fmt.Printf("Report written: %s\n", output)
		return nil
	},
}

func init() {
	reportCmd.Flags().StringP("input", "i", "", "path to a saved audit JSON dump")
	reportCmd.Flags().StringP("output", "o", "", "write the text report here instead of stdout")
}

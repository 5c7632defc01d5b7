package cmd

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/smith-xyz/golang-tara/pkg/utils"
)

func newCheckCommand(o *options) *cobra.Command {
	return &cobra.Command{
		Use:   "check",
		Short: "Parse the project and report all problems",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := o.newSession(cmd, false)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			fmt.Fprintln(out, titleStyle.Render("Checking..."))

			t, err := s.parse(cmd.Context(), true)
			if err != nil {
				return err
			}
			if err := summarize(out, s.collector); err != nil {
				return err
			}
			fmt.Fprintf(out, "Parsed %d asset(s), %d damage scenario(s), %d control(s) and %d attack tree(s)\n",
				len(t.Assets), len(t.DamageScenarios), len(t.Controls), len(t.AttackTrees))
			return nil
		},
	}
}

// summarize prints the issue counts and fails when errors were logged.
// The issues themselves were already printed by the logger.
func summarize(w io.Writer, collector *utils.Collector) error {
	errs, warnings := collector.Errors(), collector.Warnings()
	if len(warnings) > 0 {
		fmt.Fprintln(w, warningStyle.Render(fmt.Sprintf("%d warning(s)", len(warnings))))
	}
	if len(errs) > 0 {
		fmt.Fprintln(w, errorStyle.Render(fmt.Sprintf("%d error(s)", len(errs))))
		return fmt.Errorf("found %d error(s)", len(errs))
	}
	fmt.Fprintln(w, successStyle.Render("No errors found"))
	return nil
}

// listFiles prints written paths, one per line.
func listFiles(w io.Writer, verb string, files []string) {
	for _, f := range files {
		fmt.Fprintln(w, verb, fileStyle.Render(f))
	}
}

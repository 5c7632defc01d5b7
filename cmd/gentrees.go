package cmd

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/smith-xyz/golang-tara/pkg/stubs"
)

func newGenTreesCommand(o *options) *cobra.Command {
	return &cobra.Command{
		Use:   "gentrees",
		Short: "Create attack tree stubs for every threat and control",
		Long: `gentrees writes one attack tree file per asset security property and one
circumvention tree per control into AttackTrees. Existing trees are kept.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := o.newSession(cmd, false)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			fmt.Fprintln(out, titleStyle.Render("Parsing input files..."))

			t, err := s.parse(cmd.Context(), false)
			if err != nil {
				return err
			}
			if s.collector.HasErrors() {
				_ = summarize(out, s.collector)
				return errors.New("errors found during parsing, fix them before generating attack trees")
			}

			fmt.Fprintln(out, titleStyle.Render("Generating attack trees..."))
			written, err := stubs.NewAttackTreeStubGenerator(s.writer, s.logger).UpdateStubs(t, s.config.ProjectDir)
			if err != nil {
				return err
			}
			if err := s.save(); err != nil {
				return err
			}
			listFiles(out, "created", written)
			fmt.Fprintln(out, successStyle.Render(fmt.Sprintf("%d attack tree stub(s) created", len(written))))
			return nil
		},
	}
}

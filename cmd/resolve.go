package cmd

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/smith-xyz/golang-tara/pkg/attacktree"
	"github.com/smith-xyz/golang-tara/pkg/markdown"
	"github.com/smith-xyz/golang-tara/pkg/output"
	"github.com/smith-xyz/golang-tara/pkg/utils"
)

func newResolveCommand(o *options) *cobra.Command {
	var withoutControls bool
	cmd := &cobra.Command{
		Use:   "resolve <tree-id>[,<tree-id>...]",
		Short: "Print attack trees with all ratings computed",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var ids []string
			for _, arg := range args {
				ids = append(ids, utils.ParseCommaDelimited(arg)...)
			}
			if len(ids) == 0 {
				return errors.New("no attack tree ID given")
			}

			s, err := o.newSession(cmd, false)
			if err != nil {
				return err
			}
			t, err := s.parse(cmd.Context(), true)
			if err != nil {
				return err
			}
			if s.collector.HasErrors() {
				_ = summarize(cmd.ErrOrStderr(), s.collector)
				return errors.New("errors found during parsing, fix them before resolving attack trees")
			}

			eval := t.NewEvaluator(s.logger, s.config.EvaluatorOptions()...)
			resolve := eval.Resolve
			if withoutControls {
				resolve = eval.ResolveWithoutControls
			}

			builder := markdown.NewDocumentBuilder()
			for _, id := range ids {
				tree, ok := t.AttackTree(id)
				if !ok {
					return fmt.Errorf("attack tree %s not found", id)
				}
				resolved, err := timed(s, "resolve "+id, func() (*attacktree.ResolvedTree, error) {
					return resolve(tree)
				})
				if err != nil {
					return err
				}
				builder.WithSection(resolved.ID, 0)
				if resolved.Description != "" {
					builder.WithParagraph(resolved.Description)
				}
				builder.WithTable(output.ResolvedTreeTable(resolved))
			}
			fmt.Fprint(cmd.OutOrStdout(), markdown.Write(builder.Build()))
			return nil
		},
	}
	cmd.Flags().BoolVar(&withoutControls, "without-controls", false, "Ignore all security controls")
	return cmd
}

package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/smith-xyz/golang-tara/pkg/version"
)

func newVersionCommand() *cobra.Command {
	var short, asYAML bool
	cmd := &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			switch {
			case asYAML:
				encoder := yaml.NewEncoder(out)
				encoder.SetIndent(2)
				if err := encoder.Encode(version.GetBuildInfo()); err != nil {
					return err
				}
				return encoder.Close()
			case short:
				fmt.Fprintln(out, version.GetVersionWithCommit())
			default:
				fmt.Fprintln(out, version.GetFullVersionString())
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&short, "short", false, "Print only the version")
	cmd.Flags().BoolVar(&asYAML, "yaml", false, "Print the build information as YAML")
	return cmd
}

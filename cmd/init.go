package cmd

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/smith-xyz/golang-tara/pkg/stubs"
)

// defaultInitDir is the directory init creates when none is given.
const defaultInitDir = "tara"

func newInitCommand(o *options) *cobra.Command {
	return &cobra.Command{
		Use:   "init [directory]",
		Short: "Create the stub files of a new TARA project",
		Long: `init writes the system description, the method description and empty
input tables into the directory (default "tara" below --dir). Existing
files are kept.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := o.newSession(cmd, true)
			if err != nil {
				return err
			}
			dir := defaultInitDir
			if len(args) == 1 {
				dir = args[0]
			}
			if !filepath.IsAbs(dir) {
				dir = filepath.Join(o.dir, dir)
			}
			out := cmd.OutOrStdout()
			fmt.Fprintln(out, titleStyle.Render("Initializing..."))

			written, err := stubs.InitProject(s.writer, s.logger, dir)
			if err != nil {
				return err
			}
			if err := s.save(); err != nil {
				return err
			}
			listFiles(out, "created", written)
			if len(written) == 0 {
				fmt.Fprintln(out, "All files already exist")
			}
			return nil
		},
	}
}

package cmd

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/smith-xyz/golang-tara/pkg/markdown"
	"github.com/smith-xyz/golang-tara/pkg/output"
)

func newGenerateCommand(o *options) *cobra.Command {
	var exportFormat string
	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Generate the threat scenario document and the TARA report",
		Long: `generate rates every threat with and without controls and writes the
threat scenario table and the report with all resolved attack trees. With
--export the analysis is also written as JSON or YAML.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := o.newSession(cmd, false)
			if err != nil {
				return err
			}
			if exportFormat == "" {
				exportFormat = s.config.Output.ExportFormat
			}
			var format output.Format
			if exportFormat != "" {
				if format, err = output.ParseFormat(exportFormat); err != nil {
					return err
				}
			}

			out := cmd.OutOrStdout()
			fmt.Fprintln(out, titleStyle.Render("Generating..."))

			t, err := s.parse(cmd.Context(), true)
			if err != nil {
				return err
			}
			if s.collector.HasErrors() {
				_ = summarize(out, s.collector)
				return errors.New("errors found during parsing, fix them before generating the document")
			}

			analyzer := output.NewAnalyzer(s.logger, s.config.EvaluatorOptions()...)
			analysis, err := timed(s, "analyze", func() (*output.Analysis, error) {
				return analyzer.Analyze(t), nil
			})
			if err != nil {
				return err
			}
			if s.collector.HasErrors() {
				_ = summarize(out, s.collector)
				return errors.New("errors found during TARA generation")
			}

			files := []struct {
				path string
				doc  *markdown.Document
			}{
				{s.config.ThreatScenariosPath(), output.ThreatScenarioDocument(analysis.ThreatScenarios)},
				{s.config.ReportPath(), output.ReportDocument(analysis)},
			}
			var written []string
			for _, f := range files {
				if err := s.writer.WriteFile(f.path, markdown.Write(f.doc)); err != nil {
					return err
				}
				written = append(written, f.path)
			}

			if format != "" {
				exporter := output.NewExporter(s.logger, analyzer, format)
				file := s.config.ExportPath(format.Extension())
				if err := exporter.WriteFile(s.writer, file, output.NewReport(s.config.ProjectName(), analysis)); err != nil {
					return err
				}
				written = append(written, file)
			}

			if err := s.save(); err != nil {
				return err
			}
			listFiles(out, "wrote", written)
			fmt.Fprintln(out, successStyle.Render(fmt.Sprintf("%d threat scenario(s) rated", len(analysis.ThreatScenarios))))
			return nil
		},
	}
	cmd.Flags().StringVarP(&exportFormat, "export", "e", "", "Also export the analysis (json, yaml)")
	return cmd
}

package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"github.com/maastricht-university/mfa-pipeline/clients"
	"github.com/maastricht-university/mfa-pipeline/corpus"
	"github.com/maastricht-university/mfa-pipeline/orchestrator"
	"github.com/maastricht-university/mfa-pipeline/report"
	"github.com/maastricht-university/mfa-pipeline/ui"
)

func newSetupCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "setup",
		Short: "Verify the aligner installation and download models",
		RunE: func(cmd *cobra.Command, args []string) error {
			ui.Header("MFA Setup")
			printDependencyTable()

			p := orchestrator.NewPipeline(conf, log)
			info, err := p.Setup(cmd.Context())
			if err != nil {
				return err
			}
			ui.Success("MFA environment is ready (%s)", info.MFAVersion)
			ui.Info("Next steps: mfa-pipeline prepare, then align, then analyze")
			return nil
		},
	}
}

func printDependencyTable() {
	statuses := clients.CheckBinaries(clients.DefaultRequirements(conf.MFA.Binary))
	t := table.NewWriter()
	t.SetOutputMirror(os.Stdout)
	t.AppendHeader(table.Row{"Dependency", "Command", "Available", "Detail"})
	for _, s := range statuses {
		avail := "yes"
		if !s.Available {
			avail = "no"
			if s.Optional {
				avail = "no (optional)"
			}
		}
		t.AppendRow(table.Row{s.Name, s.Command, avail, s.Detail})
	}
	t.Render()
	fmt.Println()
}

func newPrepareCmd() *cobra.Command {
	var validate bool
	cmd := &cobra.Command{
		Use:   "prepare",
		Short: "Stage audio/transcript pairs into the aligner corpus layout",
		RunE: func(cmd *cobra.Command, args []string) error {
			ui.Header("Data Preparation")

			p := orchestrator.NewPipeline(conf, log)
			res, err := p.Prepare(cmd.Context())
			if res != nil {
				printPrepareSummary(res.Stats)
			}
			if err != nil {
				return err
			}
			ui.Success("Data preparation complete, corpus at %s", res.CorpusDir)

			if validate {
				ui.Header("Validating Corpus")
				if err := p.Validate(cmd.Context()); err != nil {
					ui.Warn("validation completed with warnings: %v", err)
				} else {
					ui.Success("Corpus validation successful")
				}
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&validate, "validate", false, "run mfa validate after preparation")
	return cmd
}

func printPrepareSummary(s corpus.Stats) {
	ui.Header("Preparation Summary")
	fmt.Printf("Total files processed: %d\n", s.Total)
	ui.Success("Successfully prepared: %d", s.Prepared)
	if s.Failed > 0 {
		ui.Failure("Failed: %d", s.Failed)
	}
	if s.MissingTranscripts > 0 {
		ui.Warn("Missing transcripts: %d", s.MissingTranscripts)
	}
	if s.AudioIssues > 0 {
		ui.Warn("Audio issues: %d", s.AudioIssues)
	}
}

func newAlignCmd() *cobra.Command {
	var opts orchestrator.AlignOptions
	cmd := &cobra.Command{
		Use:   "align",
		Short: "Run forced alignment over the prepared corpus",
		RunE: func(cmd *cobra.Command, args []string) error {
			ui.Header("Forced Alignment")

			p := orchestrator.NewPipeline(conf, log)
			entry, err := p.Align(cmd.Context(), opts)
			if err != nil {
				return err
			}
			ui.Success("Alignment completed in %.2f seconds (%.2f minutes)",
				entry.DurationSeconds, entry.DurationMinutes)
			ui.Info("Generated %d TextGrid files in %s", entry.Outputs.TextGridCount, conf.TextGridDir())
			return nil
		},
	}
	cmd.Flags().BoolVar(&opts.SkipValidation, "skip-validation", false, "skip corpus validation")
	cmd.Flags().BoolVar(&opts.Clean, "clean", false, "clean temporary files after alignment")
	cmd.Flags().BoolVar(&opts.Verbose, "verbose", false, "verbose aligner output")
	cmd.Flags().StringVar(&opts.Dictionary, "dictionary", "", "pronunciation dictionary (default from config)")
	cmd.Flags().StringVar(&opts.AcousticModel, "acoustic-model", "", "acoustic model (default from config)")
	return cmd
}

func newAnalyzeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "analyze",
		Short: "Analyze aligned TextGrids and write the reports",
		RunE: func(cmd *cobra.Command, args []string) error {
			ui.Header("TextGrid Analysis")

			p := orchestrator.NewPipeline(conf, log)
			res, err := p.Analyze()
			if err != nil {
				return err
			}
			if n := len(res.Diagnostics); n > 0 {
				ui.Warn("%d of %d files could not be parsed and were skipped", n, res.FilesFound)
			}
			ui.Success("Analysis complete")
			ui.Info("Generated files:")
			fmt.Printf("  - %s\n", filepath.Join(conf.Paths.Outputs, report.JSONName))
			fmt.Printf("  - %s\n", filepath.Join(conf.Paths.Outputs, report.TextName))
			fmt.Printf("  - %s\n", conf.VisualizationDir())
			return nil
		},
	}
}

func newRunCmd() *cobra.Command {
	var opts orchestrator.AlignOptions
	cmd := &cobra.Command{
		Use:   "run",
		Short: "Run the full pipeline: prepare, align, analyze",
		RunE: func(cmd *cobra.Command, args []string) error {
			ui.Header("MFA Complete Pipeline")

			p := orchestrator.NewPipeline(conf, log)
			if _, err := p.Run(cmd.Context(), opts); err != nil {
				return err
			}
			ui.Success("All pipeline stages completed")
			return nil
		},
	}
	cmd.Flags().BoolVar(&opts.SkipValidation, "skip-validation", false, "skip corpus validation")
	return cmd
}

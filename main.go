package main

import (
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	cfg "github.com/maastricht-university/mfa-pipeline/config"
	"github.com/maastricht-university/mfa-pipeline/ui"
)

var (
	cfgPath string
	conf    *cfg.Root
	log     = logrus.New()
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		ui.Failure("%v", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "mfa-pipeline",
		Short:         "Forced alignment pipeline around the Montreal Forced Aligner",
		Long:          "Prepares audio/transcript corpora, runs MFA forced alignment, and analyzes the produced TextGrid annotations.",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			var err error
			conf, err = cfg.Load(cfgPath)
			if err != nil {
				return err
			}
			level, err := logrus.ParseLevel(conf.Pipeline.LogLvl)
			if err != nil {
				level = logrus.InfoLevel
			}
			log.SetLevel(level)
			return nil
		},
	}
	root.PersistentFlags().StringVar(&cfgPath, "config", "", "path to config.yaml")
	root.AddCommand(
		newSetupCmd(),
		newPrepareCmd(),
		newAlignCmd(),
		newAnalyzeCmd(),
		newRunCmd(),
	)
	return root
}

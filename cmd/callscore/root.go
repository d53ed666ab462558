package main

import (
	"github.com/spf13/cobra"

	"github.com/skillsenselab/callscore/config"
	"github.com/skillsenselab/callscore/logger"
	"github.com/skillsenselab/callscore/validation"
)

var (
	cfgFile string
	cfg     config.Config
)

var rootCmd = &cobra.Command{
	Use:   "callscore",
	Short: "Analyze and score recorded collection calls",
	Long: `callscore turns a recorded two-party call into a structured, scored
report: speaker-attributed turns, inferred collector/debtor roles,
extracted payment entities, and a four-dimension rubric score.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
		if err := config.Load(&cfg, config.WithConfigFile(cfgFile)); err != nil {
			return err
		}
		cfg.ApplyDefaults()
		if err := validation.Validate(&cfg); err != nil {
			return err
		}
		logger.Init(cfg.Logging)
		logger.RegisterDefaults("pipeline", "attribution", "analysis", "provider", "report")
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "path to config file")
	rootCmd.AddCommand(analyzeCmd, versionCmd)
}

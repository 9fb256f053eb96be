package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"stackaudit/internal/config"
)

var (
	cfgFile  string
	logger   *zap.SugaredLogger
	auditCfg *config.Config
)

var rootCmd = &cobra.Command{
	Use:   "stackaudit",
	Short: "One-shot health audit of a deployed multi-service stack",
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		// init config
		if cfgFile != "" {
			viper.SetConfigFile(cfgFile)
		} else {
			viper.AddConfigPath("$HOME")
			viper.AddConfigPath(".")
			viper.SetConfigName(".stackaudit")
			viper.SetConfigType("yaml")
		}
		config.SetDefaults(viper.GetViper())
		viper.SetEnvPrefix("STACKAUDIT")
		viper.AutomaticEnv()

		_ = viper.ReadInConfig()

		cfg, err := config.Load(viper.GetViper())
		if err != nil {
			return err
		}

		// Make paths absolute for clarity in logs and reports.
		if abs, err := filepath.Abs(cfg.ProjectRoot); err == nil {
			cfg.ProjectRoot = abs
		}
		if abs, err := filepath.Abs(cfg.ResultsDir); err == nil {
			cfg.ResultsDir = abs
		}
		auditCfg = cfg

		// init logger
		l, _ := zap.NewProduction()
		logger = l.Sugar()
		logger.Infof("project_root=%s results_dir=%s", cfg.ProjectRoot, cfg.ResultsDir)

		return nil
	},
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.stackaudit.yaml)")

	rootCmd.AddCommand(auditCmd)
	rootCmd.AddCommand(reportCmd)
	rootCmd.AddCommand(catalogCmd)
	rootCmd.AddCommand(versionCmd)
}

// Package cmd wires the cobra command tree for cloum.
package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"cloum/internal/config"
	"cloum/internal/domain"
	"cloum/internal/execx"
	"cloum/internal/logging"
	"cloum/internal/ui"
)

var cfgFile string
var verbose bool

// Build information
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

// SetVersionInfo updates the build information variables
func SetVersionInfo(v, c, d string) {
	version = v
	commit = c
	date = d
	rootCmd.Version = v
}

// commandRunner executes provider CLIs. Tests swap in a scripted runner.
//
//nolint:gochecknoglobals // Swapped by tests for subprocess-free runs
var commandRunner domain.CommandRunner = execx.NewSystem()

// SetCommandRunner replaces the subprocess runner, returning a restore
// function. Test-only.
func SetCommandRunner(runner domain.CommandRunner) func() {
	previous := commandRunner
	commandRunner = runner
	return func() { commandRunner = previous }
}

//nolint:gochecknoglobals // Cobra CLI pattern for root command
var rootCmd = &cobra.Command{
	Use:   "cloum",
	Short: "Manage Kubernetes cluster connections across GCP, AWS, and Azure",
	Long: `Cloum keeps a list of named Kubernetes clusters across GCP (GKE), AWS (EKS),
and Azure (AKS), and connects kubectl to them by driving each provider's
official CLI: credential refresh, context switching, and registry login.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute runs the root command, printing failures as 'Error: ...' on
// stderr with exit code 1.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		if strings.HasPrefix(err.Error(), "unknown command") {
			_ = rootCmd.Help()
		}
		os.Exit(1)
	}
}

//nolint:gochecknoinits // Cobra CLI pattern for command registration
func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "clusters file (default is <user-config-dir>/cloum/clusters.json)")
	rootCmd.PersistentFlags().BoolVar(&verbose, "verbose", false, "enable debug logging")
	rootCmd.SetVersionTemplate("cloum version {{.Version}}\n")
	rootCmd.Version = version
}

func initConfig() {
	if cfgFile != "" {
		viper.Set("config", cfgFile)
	}

	viper.SetEnvPrefix("cloum")
	viper.AutomaticEnv()

	logging.SetVerbose(verbose)
}

// clustersPath resolves the clusters file from --config, CLOUM_CONFIG, or
// the platform default.
func clustersPath() (string, error) {
	if path := viper.GetString("config"); path != "" {
		return path, nil
	}
	return config.DefaultPath()
}

// getStore creates a store bound to the resolved clusters file. Commands
// only see the domain interface.
func getStore() (domain.ClusterStore, error) {
	path, err := clustersPath()
	if err != nil {
		return nil, err
	}
	return config.NewStore(path, logging.Get()), nil
}

func stdoutPrinter(cmd *cobra.Command) *ui.Printer {
	return ui.NewPrinter(cmd.OutOrStdout())
}

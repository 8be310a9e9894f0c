package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"runtime/pprof"
	"syscall"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/lumipallolabs/pollwatch/internal/core"
	"github.com/lumipallolabs/pollwatch/internal/history"
	"github.com/lumipallolabs/pollwatch/internal/logging"
	"github.com/lumipallolabs/pollwatch/internal/stats"
	"github.com/lumipallolabs/pollwatch/internal/ui"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	home, _           = os.UserHomeDir()
	defaultConfigPath = filepath.Join(home, ".pollwatch", "config.json")
	configFileName    = "config"
	defaultInterval   = time.Second
)

var rootCmd = &cobra.Command{
	Use:   "pollwatch [path]",
	Short: "Watch a file or directory tree for changes by polling",
	Long: `pollwatch polls a file or directory tree at a fixed interval and reports
every file that was created, modified or erased since the previous poll.

Without a path it watches the last target, or the current directory.`,
	Args: cobra.MaximumNArgs(1),
	PreRunE: func(cmd *cobra.Command, args []string) error {
		return loadConfig(cmd)
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := buildConfig(args)
		if err != nil {
			return err
		}
		cmd.SilenceUsage = true

		ctrl := core.NewController(cfg)
		defer ctrl.Stop()

		if viper.GetBool("plain") {
			return runPlain(cmd.Context(), ctrl, cmd.OutOrStdout())
		}
		return runTUI(cmd.Context(), ctrl)
	},
}

func init() {
	rootCmd.Flags().SortFlags = false
	rootCmd.Flags().DurationP("interval", "i", defaultInterval, "Time between polls")
	rootCmd.Flags().StringSliceP("ignore", "x", nil, "Glob of paths to skip, relative to the target (repeatable)")
	rootCmd.Flags().Bool("same-device", false, "Do not descend into other filesystems")
	rootCmd.Flags().Bool("plain", false, "Print one line per change instead of the interactive view")
	rootCmd.Flags().Bool("no-history", false, "Do not save or load session history")
	rootCmd.Flags().Bool("no-types", false, "Do not detect the content type of changed files")
	rootCmd.PersistentFlags().StringP("config", "c", defaultConfigPath, "pollwatch config file")
}

func main() {
	// Enable CPU profiling if CPUPROFILE env var is set
	if cpuProfile := os.Getenv("CPUPROFILE"); cpuProfile != "" {
		f, err := os.Create(cpuProfile)
		if err != nil {
			log.Fatal("could not create CPU profile: ", err)
		}
		defer f.Close()
		if err := pprof.StartCPUProfile(f); err != nil {
			log.Fatal("could not start CPU profile: ", err)
		}
		defer pprof.StopCPUProfile()
		log.Printf("CPU profiling enabled, writing to %s", cpuProfile)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		stop()
		os.Exit(1)
	}
}

func loadConfig(cmd *cobra.Command) error {
	if cmd.Flag("config").Changed {
		configFilePath, _ := cmd.Flags().GetString("config")
		viper.SetConfigFile(configFilePath)
	} else {
		viper.AddConfigPath(filepath.Join(home, ".pollwatch"))
		viper.AddConfigPath(filepath.Join(home, ".config", "pollwatch"))
		viper.SetConfigName(configFileName)
		viper.SetConfigType("json")
	}

	if err := viper.ReadInConfig(); err != nil {
		enoent := errors.Is(err, os.ErrNotExist)
		_, ok := err.(viper.ConfigFileNotFoundError)
		if !enoent && !ok {
			return fmt.Errorf("config read '%s': %w", viper.ConfigFileUsed(), err)
		}
	}

	viper.BindPFlag("interval", cmd.Flags().Lookup("interval"))
	viper.BindPFlag("ignore", cmd.Flags().Lookup("ignore"))
	viper.BindPFlag("same_device", cmd.Flags().Lookup("same-device"))
	viper.BindPFlag("plain", cmd.Flags().Lookup("plain"))
	viper.BindPFlag("no_history", cmd.Flags().Lookup("no-history"))
	viper.BindPFlag("no_types", cmd.Flags().Lookup("no-types"))

	viper.SetEnvPrefix("POLLWATCH")
	viper.AutomaticEnv()

	return nil
}

// buildConfig turns the merged flags, config file and environment into a
// controller configuration
func buildConfig(args []string) (core.Config, error) {
	interval := viper.GetDuration("interval")
	if interval < 0 {
		return core.Config{}, fmt.Errorf("interval must not be negative, got %s", interval)
	}

	cfg := core.Config{
		Interval:    interval,
		Ignore:      viper.GetStringSlice("ignore"),
		SameDevice:  viper.GetBool("same_device"),
		DetectTypes: !viper.GetBool("no_types"),
		StatsPath:   stats.DefaultPath(),
	}
	if !viper.GetBool("no_history") {
		cfg.HistoryDir = history.DefaultDir()
	}
	cfg.Target = resolveTarget(args, viper.GetString("target"), cfg.StatsPath)

	logging.Debug.Info("config", "file", viper.ConfigFileUsed(), "target", cfg.Target, "interval", cfg.Interval)
	return cfg, nil
}

// resolveTarget picks the path to watch: the argument, then the configured
// target, then the last watched target, then the working directory
func resolveTarget(args []string, configured, statsPath string) string {
	if len(args) > 0 && args[0] != "" {
		return args[0]
	}
	if configured != "" {
		return configured
	}
	if statsPath != "" {
		m := stats.NewManager(statsPath)
		if err := m.Load(); err == nil && m.LastTarget() != "" {
			return m.LastTarget()
		}
	}
	return "."
}

func runTUI(ctx context.Context, ctrl *core.Controller) error {
	p := tea.NewProgram(
		ui.NewApp(ctrl),
		tea.WithAltScreen(),
		tea.WithContext(ctx),
	)

	if _, err := p.Run(); err != nil && !errors.Is(err, tea.ErrProgramKilled) {
		return fmt.Errorf("ui: %w", err)
	}
	return nil
}

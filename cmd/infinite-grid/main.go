package main

import (
	"fmt"
	"os"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/idfusion/infinite-grid/internal/config"
	"github.com/idfusion/infinite-grid/internal/grid"
	"github.com/idfusion/infinite-grid/internal/history"
	"github.com/idfusion/infinite-grid/internal/scrollhost"
	"github.com/idfusion/infinite-grid/internal/simulate"
	"github.com/idfusion/infinite-grid/internal/snapshot"
	"github.com/idfusion/infinite-grid/internal/storage"
	"github.com/idfusion/infinite-grid/internal/tui"
)

//nolint:gochecknoglobals // Cobra requires package-level vars for flag bindings in current structure.
var (
	// Version metadata populated at build time via -ldflags.
	releaseVersion = "dev"
	commit         = "none"
	date           = "unknown"

	// Used for flags.
	configFile string
	verbose    bool
	jsonOutput bool
	noRecord   bool
	viewWidth  float64
	viewHeight float64
	pngPath    string

	rootCmd = &cobra.Command{
		Use:   "infinite-grid",
		Short: "An infinite, lazily populated tile grid you can scroll in any direction.",
		Long:  `Tiles are created on demand as the viewport approaches uncovered regions and are never discarded. Explore the grid interactively in the terminal, or replay scripted scroll moves headlessly.`,
	}
)

//nolint:gochecknoinits // Cobra command wiring performed in init in current structure.
func init() {
	// Route logs to stderr to avoid polluting stdout, especially for --json output.
	logrus.SetOutput(os.Stderr)

	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable detailed logging output")
	rootCmd.PersistentFlags().StringVar(&configFile, "config", config.DefaultPath, "Path to the YAML configuration file")

	exploreCmd.Flags().BoolVar(&noRecord, "no-record", false, "Do not add this session to the history")

	simulateCmd.Flags().BoolVar(&jsonOutput, "json", false, "Output the report in JSON format instead of text")
	simulateCmd.Flags().BoolVar(&noRecord, "no-record", false, "Do not add this session to the history")
	simulateCmd.Flags().Float64Var(&viewWidth, "width", 390, "Viewport width in screen units")
	simulateCmd.Flags().Float64Var(&viewHeight, "height", 844, "Viewport height in screen units")
	simulateCmd.Flags().StringVar(&pngPath, "png", "", "Optional: write a PNG coverage map of the allocated tiles")

	rootCmd.AddCommand(exploreCmd)
	rootCmd.AddCommand(simulateCmd)
	rootCmd.AddCommand(sessionsCmd)
	rootCmd.AddCommand(configCmd)

	sessionsCmd.AddCommand(sessionsResetCmd)
	configCmd.AddCommand(configShowCmd)

	// Built-in version flag: set version string and a custom template.
	rootCmd.Version = releaseVersion
	rootCmd.Annotations = map[string]string{"commit": commit, "date": date}
	rootCmd.SetVersionTemplate("{{printf \"%s %s\\ncommit: %s\\ndate: %s\\n\" .DisplayName .Version (index .Annotations \"commit\") (index .Annotations \"date\")}}")
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		logrus.Fatal(err)
	}
}

// loadConfig applies the log level and loads the configuration, exiting on error.
func loadConfig() config.Config {
	if verbose {
		logrus.SetLevel(logrus.DebugLevel)
	} else if jsonOutput {
		logrus.SetLevel(logrus.WarnLevel)
	}
	cfg, err := config.Load(configFile)
	if err != nil {
		logrus.Fatalf("Unable to load config: %v", err)
	}
	return cfg
}

func recordSession(cfg config.Config, mode string, startedAt time.Time, stats grid.Stats) {
	if noRecord {
		return
	}
	k, err := history.NewKeeper(cfg.StorageFile)
	if err != nil {
		logrus.Warnf("Unable to open session history: %v", err)
		return
	}
	if err := k.Record(storage.NewSessionRecord(mode, startedAt, cfg.Grid.TileSize, stats)); err != nil {
		logrus.Warnf("Unable to record session: %v", err)
	}
}

//nolint:gochecknoglobals // Cobra command is defined at package scope in current structure.
var exploreCmd = &cobra.Command{
	Use:   "explore",
	Short: "Scroll the grid interactively in the terminal",
	Long:  "Open the grid in the terminal. Arrow keys or hjkl scroll, HJKL jump a whole tile, c re-centres on the reference tile.",
	Run: func(cmd *cobra.Command, args []string) {
		cfg := loadConfig()
		startedAt := time.Now()
		stats, err := tui.Run(cmd.Context(), cfg)
		if err != nil {
			logrus.Fatalf("TUI mode failed: %v", err)
		}
		recordSession(cfg, "explore", startedAt, stats)
		fmt.Fprintf(os.Stdout, "Explored %d tiles, last centre %s\n", stats.Tiles, stats.Centre)
	},
}

//nolint:gochecknoglobals // Cobra command is defined at package scope in current structure.
var simulateCmd = &cobra.Command{
	Use:   "simulate [MOVE...]",
	Short: "Replay scroll moves headlessly and report the tiles allocated",
	Long: `Replay scroll moves against an in-memory viewport and report each step.
A move is a direction with an optional tile count (left, right:3, up, d:2) or a raw "dx,dy" offset in screen units.`,
	Run: func(cmd *cobra.Command, args []string) {
		cfg := loadConfig()
		moves, err := scrollhost.ParseMoves(args, cfg.Grid.TileSize)
		if err != nil {
			logrus.Fatal(err)
		}

		sim := simulate.New(cfg.Grid, grid.Size{Width: viewWidth, Height: viewHeight}, logrus.WithField("component", "grid"))
		defer sim.Close()
		report := sim.Run(moves)

		if err := simulate.PrintReport(os.Stdout, report, jsonOutput); err != nil {
			logrus.Fatal(err)
		}
		if pngPath != "" {
			centre, ok := sim.Controller().Centre()
			opts := snapshot.Options{Reference: cfg.Grid.Reference, Centre: centre, HasCentre: ok}
			if err := snapshot.SavePNG(pngPath, sim.Controller().Tiles(), opts); err != nil {
				logrus.Fatalf("Unable to write snapshot: %v", err)
			}
			logrus.Infof("Wrote coverage map to %s", pngPath)
		}
		recordSession(cfg, "simulate", report.StartedAt, report.Stats)
	},
}

//nolint:gochecknoglobals // Cobra command is defined at package scope in current structure.
var sessionsCmd = &cobra.Command{
	Use:   "sessions",
	Short: "Show the history of exploration sessions",
	Long:  "Show recorded sessions. Only summaries are kept; tiles are never persisted.",
	Run: func(cmd *cobra.Command, args []string) {
		cfg := loadConfig()
		k, err := history.NewKeeper(cfg.StorageFile)
		if err != nil {
			logrus.Fatal(err)
		}
		k.View(os.Stdout)
	},
}

//nolint:gochecknoglobals // Cobra command is defined at package scope in current structure.
var sessionsResetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Clear the session history",
	Run: func(cmd *cobra.Command, args []string) {
		cfg := loadConfig()
		k, err := history.NewKeeper(cfg.StorageFile)
		if err != nil {
			logrus.Fatal(err)
		}
		if err := k.Reset(); err != nil {
			logrus.Fatal(err)
		}
		fmt.Fprintln(os.Stdout, "Session history cleared")
	},
}

//nolint:gochecknoglobals // Cobra command is defined at package scope in current structure.
var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Inspect configuration",
}

//nolint:gochecknoglobals // Cobra command is defined at package scope in current structure.
var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the effective configuration as YAML",
	Run: func(cmd *cobra.Command, args []string) {
		cfg := loadConfig()
		out, err := cfg.Marshal()
		if err != nil {
			logrus.Fatal(err)
		}
		_, _ = os.Stdout.Write(out)
	},
}

func main() {
	Execute()
}

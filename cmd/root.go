package cmd

import (
	"fmt"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/tebeka/atexit"

	"github.com/inference-sim/pagesim/sim"
	"github.com/inference-sim/pagesim/sim/export"
)

var (
	// CLI flags for a simulation run
	logLevel   string   // Log verbosity level
	policyName string   // Eviction policy (FIFO, LRU, Optimal)
	frames     int      // Number of resident frames
	refsArg    string   // Reference string, whitespace or comma separated
	refsFile   string   // File holding the reference string
	configPath string   // YAML run configuration
	outPaths   []string // Export files; format inferred from extension
	quiet      bool     // Suppress the step table
)

// rootCmd is the base command for the CLI
var rootCmd = &cobra.Command{
	Use:   "pagesim",
	Short: "Page-replacement simulator (FIFO, LRU, Optimal)",
}

// runCmd executes one simulation using parameters from CLI flags and the optional config file
var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Simulate a reference string under one eviction policy",
	Run: func(cmd *cobra.Command, args []string) {
		setupLogging(logLevel)

		cfg := &RunConfig{}
		if configPath != "" {
			loaded, err := LoadRunConfig(configPath)
			if err != nil {
				logrus.Fatalf("%v", err)
			}
			cfg = loaded
		}
		applyRunFlags(cmd, cfg)
		if err := cfg.Validate(); err != nil {
			logrus.Fatalf("Invalid run configuration: %v", err)
		}

		refs, err := cfg.ResolveReferences()
		if err != nil {
			logrus.Fatalf("Could not read references: %v", err)
		}

		runID := export.NewRunID()
		log := logrus.WithField("run", runID)
		log.Infof("Starting %s simulation with %d frames over %d references", cfg.PolicyName(), cfg.FrameCount(), len(refs))

		res, err := sim.RunNamed(cfg.PolicyName(), refs, cfg.FrameCount())
		if err != nil {
			logrus.Fatalf("Simulation failed: %v", err)
		}

		if !quiet {
			PrintSteps(os.Stdout, res)
		}
		PrintSummary(os.Stdout, res)

		for _, path := range cfg.Outputs {
			if err := export.WriteFile(path, runID, res); err != nil {
				logrus.Fatalf("Export to %s failed: %v", path, err)
			}
			log.Infof("Wrote %s", path)
		}

		log.Info("Simulation complete.")
	},
}

// policiesCmd lists the recognized eviction policies
var policiesCmd = &cobra.Command{
	Use:   "policies",
	Short: "List the available eviction policies",
	Run: func(cmd *cobra.Command, args []string) {
		for _, p := range sim.Policies() {
			fmt.Fprintln(cmd.OutOrStdout(), p)
		}
	},
}

// setupLogging parses level and applies it to the standard logger.
func setupLogging(level string) {
	lvl, err := logrus.ParseLevel(level)
	if err != nil {
		logrus.Fatalf("Invalid log level: %s", level)
	}
	logrus.SetLevel(lvl)
}

// applyRunFlags overlays explicitly set flags onto cfg. Flags left at their
// defaults only fill keys the config file left out; a key present in the file,
// even with a zero value, is kept for Validate to judge.
func applyRunFlags(cmd *cobra.Command, cfg *RunConfig) {
	flags := cmd.Flags()
	if flags.Changed("policy") || cfg.Policy == nil {
		name := policyName
		cfg.Policy = &name
	}
	if flags.Changed("frames") || cfg.Frames == nil {
		n := frames
		cfg.Frames = &n
	}
	if flags.Changed("refs") || flags.Changed("refs-file") {
		cfg.References = nil
		cfg.ReferenceString = refsArg
		cfg.ReferencesFile = refsFile
	}
	if flags.Changed("out") {
		cfg.Outputs = outPaths
	}
}

// Execute runs the CLI root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		atexit.Exit(1)
	}
	atexit.Exit(0)
}

// init sets up CLI flags and subcommands
func init() {
	// logrus.Fatalf exits through ExitFunc; route it through atexit so open
	// exporters are closed first.
	logrus.StandardLogger().ExitFunc = atexit.Exit

	loadDotEnv(".env")

	rootCmd.PersistentFlags().StringVar(&logLevel, "log", envString("PAGESIM_LOG_LEVEL", "error"), "Log level (trace, debug, info, warn, error, fatal, panic)")

	runCmd.Flags().StringVar(&policyName, "policy", envString("PAGESIM_POLICY", "FIFO"), "Eviction policy (FIFO, LRU, Optimal)")
	runCmd.Flags().IntVar(&frames, "frames", envInt("PAGESIM_FRAMES", 3), "Number of resident frames")
	runCmd.Flags().StringVar(&refsArg, "refs", "", "Page reference string, e.g. \"7 0 1 2 0 3\"")
	runCmd.Flags().StringVar(&refsFile, "refs-file", "", "File containing the page reference string ('#' starts a comment line)")
	runCmd.Flags().StringVar(&configPath, "config", "", "YAML run configuration; explicit flags override it")
	runCmd.Flags().StringSliceVar(&outPaths, "out", nil, "Export files (.csv, .json, .yaml, .db; add .lz4 or .sz to compress)")
	runCmd.Flags().BoolVar(&quiet, "quiet", false, "Only print the summary, not the step table")

	serveCmd.Flags().StringVar(&serveAddr, "addr", envString("PAGESIM_ADDR", ":8080"), "Listen address for the HTTP API")
	serveCmd.Flags().BoolVar(&openBrowser, "open", false, "Open the API index in a browser once listening")

	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(policiesCmd)
	rootCmd.AddCommand(serveCmd)
}

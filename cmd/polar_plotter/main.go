package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/user/polar_plotter/internal/config"
	"github.com/user/polar_plotter/internal/layout"
	"github.com/user/polar_plotter/internal/style"
	"github.com/user/polar_plotter/internal/viewer"
)

var (
	// Global flags
	verbose    bool
	configPath string
	viewerKind string
	saveMode   string
	outputPath string
	pdfPath    string
	fontDirs   []string

	logger *zap.Logger
)

var rootCmd = &cobra.Command{
	Use:   "polar_plotter [csv]",
	Short: "Plot an aerodynamic polar as a 2x2 diagnostic figure",
	Long: `Loads a polar table (AoA, Cl, Cd and optional cm_x<pos> columns) from CSV
or XLSX and shows lift, drag, the drag polar and the moment curves in one
figure. The figure can be saved as a 300 DPI PNG and as a PDF report.

Without a file argument the program asks for one (Enter selects polar.csv).`,
	Args:          cobra.MaximumNArgs(1),
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		zcfg := zap.NewProductionConfig()
		zcfg.Level = zap.NewAtomicLevelAt(zapcore.WarnLevel)
		if verbose {
			zcfg.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
		}
		var err error
		logger, err = zcfg.Build()
		if err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
	},
	RunE: runPlotter,
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose logging")
	rootCmd.Flags().StringVarP(&configPath, "config", "c", "polar_plotter.yaml", "YAML config file")
	rootCmd.Flags().StringVar(&viewerKind, "viewer", "", "Figure viewer: window, webview or none")
	rootCmd.Flags().StringVar(&saveMode, "save", "", "Save the figure: ask, yes or no")
	rootCmd.Flags().StringVarP(&outputPath, "output", "o", "", "PNG output path (default polar_completa.png)")
	rootCmd.Flags().StringVar(&pdfPath, "pdf", "", "Also write a PDF report to this path")
	rootCmd.Flags().StringSliceVar(&fontDirs, "font-dir", nil, "Directories scanned for TTF/OTF fonts")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		if !errors.Is(err, errLoadFailed) {
			fmt.Fprintln(os.Stderr, err)
		}
		os.Exit(1)
	}
}

func runPlotter(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		logger.Warn("failed to read .env", zap.Error(err))
	}

	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}
	applyFlags(cmd, args, &cfg)
	if err := cfg.Validate(); err != nil {
		return err
	}

	v, err := viewer.New(cfg.Viewer, logger)
	if err != nil {
		return err
	}
	var prober layout.ScreenProber
	if cfg.Viewer != viewer.KindNone {
		prober = viewer.NewWindow(logger)
	}

	fonts := style.DiscoverFonts(cfg.FontDirs, logger)
	app := NewApp(cfg, logger, os.Stdin, os.Stdout, fonts, v, prober)
	return app.Run(ctx)
}

// applyFlags lets explicitly set flags override the loaded config.
func applyFlags(cmd *cobra.Command, args []string, cfg *config.Config) {
	if len(args) == 1 {
		cfg.Input = args[0]
	}
	flags := cmd.Flags()
	if flags.Changed("viewer") {
		cfg.Viewer = viewerKind
	}
	if flags.Changed("save") {
		cfg.Save = saveMode
	}
	if flags.Changed("output") {
		cfg.Output = outputPath
	}
	if flags.Changed("pdf") {
		cfg.PDFOutput = pdfPath
	}
	if flags.Changed("font-dir") {
		cfg.FontDirs = fontDirs
	}
}

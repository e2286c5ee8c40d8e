package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"go.uber.org/zap"

	"github.com/user/polar_plotter/internal/analysis"
	"github.com/user/polar_plotter/internal/config"
	"github.com/user/polar_plotter/internal/console"
	"github.com/user/polar_plotter/internal/layout"
	"github.com/user/polar_plotter/internal/parser"
	"github.com/user/polar_plotter/internal/report"
	"github.com/user/polar_plotter/internal/style"
	"github.com/user/polar_plotter/internal/viewer"
)

// errLoadFailed marks a load failure whose diagnostic was already printed.
var errLoadFailed = errors.New("polar data could not be loaded")

const noSerifWarning = "No se encontraron fuentes serif, usando fuentes por defecto"

// App runs one load, plot, show and save cycle.
type App struct {
	cfg      config.Config
	logger   *zap.Logger
	out      io.Writer
	prompter *console.Prompter
	fonts    style.Catalog
	viewer   viewer.Viewer
	prober   layout.ScreenProber
}

// NewApp wires an App. prober may be nil, in which case the figure uses
// the configured size limits.
func NewApp(cfg config.Config, logger *zap.Logger, in io.Reader, out io.Writer,
	fonts style.Catalog, v viewer.Viewer, prober layout.ScreenProber) *App {
	return &App{
		cfg:      cfg,
		logger:   logger,
		out:      out,
		prompter: console.NewPrompter(in, out),
		fonts:    fonts,
		viewer:   v,
		prober:   prober,
	}
}

func (a *App) sendStatus(message string, fields ...zap.Field) {
	a.logger.Debug(message, fields...)
}

// Run executes the pipeline. Only a failed load or a failed save is
// returned as an error; a missing display is logged and skipped.
func (a *App) Run(ctx context.Context) error {
	console.Banner(a.out)

	path := a.cfg.Input
	if path == "" {
		var err error
		if path, err = a.prompter.AskPath(); err != nil {
			return err
		}
	}

	params := style.Configure(a.fonts, a.cfg.Style, a.logger)
	if params.FontFamily != "serif" {
		console.Warnings(a.out, []string{noSerifWarning})
	}

	a.sendStatus("loading polar data", zap.String("path", path))
	table, err := parser.Load(path)
	if err != nil {
		console.LoadError(a.out, path, err)
		a.logger.Error("failed to load polar data", zap.String("path", path), zap.Error(err))
		return fmt.Errorf("%w: %v", errLoadFailed, err)
	}
	console.Loaded(a.out, table)
	console.Warnings(a.out, table.Warnings)
	if ignored := table.IgnoredMomentColumns(); len(ignored) > 0 {
		a.logger.Warn("moment columns outside the chord stations are not plotted", zap.Strings("columns", ignored))
		console.Warnings(a.out, []string{fmt.Sprintf("columnas de momento no graficadas: %s", strings.Join(ignored, ", "))})
	}

	summary, err := analysis.Summarize(table)
	if err != nil {
		a.logger.Warn("failed to summarize polar", zap.Error(err))
	} else {
		console.Warnings(a.out, summary.AnalysisErrors)
		a.sendStatus("polar summary",
			zap.Float64("max_cl", summary.MaxCl.Value),
			zap.Float64("min_cd", summary.MinCd.Value),
			zap.Int("moment_stations", summary.MomentStations))
	}

	size, err := layout.FigureSize(a.prober, a.cfg.Limits)
	if err != nil {
		a.logger.Info("screen size unavailable, using default figure size",
			zap.Stringer("size", size), zap.Error(err))
	}

	fig, err := report.NewFigure(table, params)
	if err != nil {
		return fmt.Errorf("failed to build figure: %w", err)
	}

	a.sendStatus("showing figure", zap.Stringer("size", size), zap.Int("dpi", params.FigureDPI))
	if err := a.viewer.Show(ctx, fig.Image(size, params.FigureDPI), fig.Title); err != nil {
		a.logger.Warn("figure could not be displayed", zap.Error(err))
	}

	if a.shouldSave() {
		if err := fig.SavePNG(a.cfg.Output, size, params.SaveDPI); err != nil {
			return err
		}
		console.Saved(a.out, a.cfg.Output)
	}

	if a.cfg.PDFOutput != "" {
		if err := a.writePDF(table, summary, fig, size, params); err != nil {
			return err
		}
		fmt.Fprintf(a.out, "Informe PDF generado: %s\n", a.cfg.PDFOutput)
	}
	return nil
}

func (a *App) shouldSave() bool {
	switch a.cfg.Save {
	case config.SaveYes:
		return true
	case config.SaveNo:
		return false
	default:
		return a.prompter.AskSave()
	}
}

func (a *App) writePDF(table *parser.PolarTable, summary *analysis.Summary, fig *report.Figure, size layout.Size, params style.Params) error {
	if summary == nil {
		return fmt.Errorf("cannot build PDF report without a summary")
	}
	figPNG, err := fig.PNG(size, params.SaveDPI)
	if err != nil {
		return err
	}
	in := report.PDFInput{
		Table:      table,
		Summary:    summary,
		FigurePNG:  figPNG,
		FigureSize: [2]float64{size.Width, size.Height},
	}
	if len(fig.Curves) > 0 {
		heat, err := report.CreateMomentHeatmap(table, fig.Curves)
		if err != nil {
			a.logger.Warn("skipping moment heatmap", zap.Error(err))
		} else {
			in.HeatmapPNG = heat
		}
	}
	a.sendStatus("writing PDF report", zap.String("path", a.cfg.PDFOutput))
	if err := report.BuildPDFReport(a.cfg.PDFOutput, in, a.logger); err != nil {
		return fmt.Errorf("failed to write PDF report: %w", err)
	}
	return nil
}

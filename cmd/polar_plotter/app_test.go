package main

import (
	"bytes"
	"context"
	"errors"
	"image"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gonum.org/v1/plot/font/liberation"

	"github.com/user/polar_plotter/internal/config"
	"github.com/user/polar_plotter/internal/layout"
	"github.com/user/polar_plotter/internal/style"
	"github.com/user/polar_plotter/internal/viewer"
)

const polarCSV = `AoA,Cl,Cd,cm_x0.00,cm_x0.32,cm_x0.50
-5,-0.35,0.0120,-0.010,0.020,0.0
0,0.20,0.0080,-0.020,0.030,0.0
5,0.75,0.0110,-0.030,0.040,0.0
10,1.20,0.0210,-0.045,0.055,0.0
`

type fakeViewer struct {
	calls int
	title string
	size  image.Point
	err   error
}

func (f *fakeViewer) Show(_ context.Context, img image.Image, title string) error {
	f.calls++
	f.title = title
	f.size = img.Bounds().Size()
	return f.err
}

func testConfig(t *testing.T) config.Config {
	t.Helper()
	dir := t.TempDir()
	csvPath := filepath.Join(dir, "polar.csv")
	require.NoError(t, os.WriteFile(csvPath, []byte(polarCSV), 0o644))

	cfg := config.Default()
	cfg.Input = csvPath
	cfg.Output = filepath.Join(dir, config.DefaultOutput)
	cfg.Style.FigureDPI = 20
	cfg.Style.SaveDPI = 30
	return cfg
}

func newTestApp(cfg config.Config, stdin string, v viewer.Viewer, out *bytes.Buffer) *App {
	fonts := style.Catalog{Faces: liberation.Collection()}
	return NewApp(cfg, zap.NewNop(), strings.NewReader(stdin), out, fonts, v, layout.Fixed{Width: 800, Height: 600})
}

func TestRunShowsAndSaves(t *testing.T) {
	cfg := testConfig(t)
	v := &fakeViewer{}
	var out bytes.Buffer

	require.NoError(t, newTestApp(cfg, "s\n", v, &out).Run(context.Background()))

	assert.Equal(t, 1, v.calls)
	assert.Equal(t, "Análisis de Polar Aerodinámica", v.title)
	assert.Equal(t, image.Pt(160, 120), v.size)

	f, err := os.Open(cfg.Output)
	require.NoError(t, err)
	defer f.Close()
	img, err := png.DecodeConfig(f)
	require.NoError(t, err)
	assert.Equal(t, 240, img.Width)
	assert.Equal(t, 180, img.Height)

	text := out.String()
	assert.Contains(t, text, "Generador de Polares Aerodinámicas")
	assert.Contains(t, text, "Dimensiones: (4, 6)")
	assert.Contains(t, text, "Rango de ángulos: -5° a 10°")
	assert.Contains(t, text, "columnas de momento no graficadas: cm_x0.50")
	assert.Contains(t, text, "Gráfica guardada exitosamente")
}

func TestRunSkipsSave(t *testing.T) {
	for _, answer := range []string{"n\n", "\n", "si\n", ""} {
		cfg := testConfig(t)
		var out bytes.Buffer
		require.NoError(t, newTestApp(cfg, answer, &fakeViewer{}, &out).Run(context.Background()))
		assert.NoFileExists(t, cfg.Output, "answer %q", answer)
		assert.NotContains(t, out.String(), "Gráfica guardada")
	}
}

func TestRunSaveModes(t *testing.T) {
	cfg := testConfig(t)
	cfg.Save = config.SaveYes
	require.NoError(t, newTestApp(cfg, "", &fakeViewer{}, new(bytes.Buffer)).Run(context.Background()))
	assert.FileExists(t, cfg.Output)

	cfg = testConfig(t)
	cfg.Save = config.SaveNo
	var out bytes.Buffer
	require.NoError(t, newTestApp(cfg, "s\n", &fakeViewer{}, &out).Run(context.Background()))
	assert.NoFileExists(t, cfg.Output)
	assert.NotContains(t, out.String(), "¿Deseas guardar")
}

func TestRunPromptsForPath(t *testing.T) {
	cfg := testConfig(t)
	csvPath := cfg.Input
	cfg.Input = ""
	v := &fakeViewer{}
	var out bytes.Buffer

	require.NoError(t, newTestApp(cfg, csvPath+"\nn\n", v, &out).Run(context.Background()))
	assert.Equal(t, 1, v.calls)
	assert.Contains(t, out.String(), "Ingresa el nombre del archivo CSV")
}

func TestRunMissingFile(t *testing.T) {
	cfg := testConfig(t)
	cfg.Input = filepath.Join(t.TempDir(), "nope.csv")
	v := &fakeViewer{}
	var out bytes.Buffer

	err := newTestApp(cfg, "s\n", v, &out).Run(context.Background())
	require.Error(t, err)
	assert.True(t, errors.Is(err, errLoadFailed))
	assert.Zero(t, v.calls)
	assert.Contains(t, out.String(), "Error: No se encontró el archivo "+cfg.Input)
	assert.NoFileExists(t, cfg.Output)
}

func TestRunMissingColumn(t *testing.T) {
	cfg := testConfig(t)
	require.NoError(t, os.WriteFile(cfg.Input, []byte("AoA,Cd\n0,0.01\n"), 0o644))
	v := &fakeViewer{}
	var out bytes.Buffer

	err := newTestApp(cfg, "", v, &out).Run(context.Background())
	assert.ErrorIs(t, err, errLoadFailed)
	assert.Zero(t, v.calls)
	assert.Contains(t, out.String(), "Error al cargar el archivo:")
}

func TestRunHeaderOnlyShowsEmptyAxes(t *testing.T) {
	cfg := testConfig(t)
	require.NoError(t, os.WriteFile(cfg.Input, []byte("AoA,Cl,Cd\n"), 0o644))
	v := &fakeViewer{}
	var out bytes.Buffer

	require.NoError(t, newTestApp(cfg, "n\n", v, &out).Run(context.Background()))
	assert.Equal(t, 1, v.calls)
	assert.Contains(t, out.String(), "Dimensiones: (0, 3)")
	assert.Contains(t, out.String(), "Advertencia: no data rows found")
}

func TestRunWithMissingValues(t *testing.T) {
	cfg := testConfig(t)
	cfg.Save = config.SaveYes
	data := "\ufeffAoA,Cl,Cd,cm_x0.16\n-5,-0.3,0.012,\n0,NaN,0.008,-0.02\n5,0.7,0.011,-0.03\n"
	require.NoError(t, os.WriteFile(cfg.Input, []byte(data), 0o644))
	v := &fakeViewer{}
	var out bytes.Buffer

	require.NoError(t, newTestApp(cfg, "", v, &out).Run(context.Background()))
	assert.Equal(t, 1, v.calls)
	assert.Contains(t, out.String(), "row 2 has missing values, skipped")
	assert.FileExists(t, cfg.Output)
}

func TestRunHeadlessStillSaves(t *testing.T) {
	cfg := testConfig(t)
	cfg.Save = config.SaveYes
	v := &fakeViewer{err: viewer.ErrNoDisplay}
	fonts := style.Catalog{Faces: liberation.Collection()}
	app := NewApp(cfg, zap.NewNop(), strings.NewReader(""), new(bytes.Buffer), fonts, v, nil)

	require.NoError(t, app.Run(context.Background()))
	// no prober: the figure falls back to the 10x8 inch limit
	assert.Equal(t, image.Pt(200, 160), v.size)
	assert.FileExists(t, cfg.Output)
}

func TestRunWritesPDF(t *testing.T) {
	cfg := testConfig(t)
	cfg.Save = config.SaveNo
	cfg.PDFOutput = filepath.Join(t.TempDir(), "polar.pdf")
	var out bytes.Buffer

	require.NoError(t, newTestApp(cfg, "", &fakeViewer{}, &out).Run(context.Background()))
	data, err := os.ReadFile(cfg.PDFOutput)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(data, []byte("%PDF-")))
	assert.Contains(t, out.String(), "Informe PDF generado")
}

func TestApplyFlags(t *testing.T) {
	cfg := config.Default()
	require.NoError(t, rootCmd.Flags().Set("viewer", "none"))
	require.NoError(t, rootCmd.Flags().Set("save", "yes"))
	t.Cleanup(func() {
		rootCmd.Flags().Lookup("viewer").Changed = false
		rootCmd.Flags().Lookup("save").Changed = false
		viewerKind, saveMode = "", ""
	})

	applyFlags(rootCmd, []string{"naca.csv"}, &cfg)
	assert.Equal(t, "naca.csv", cfg.Input)
	assert.Equal(t, "none", cfg.Viewer)
	assert.Equal(t, config.SaveYes, cfg.Save)
	assert.Equal(t, config.DefaultOutput, cfg.Output)
}

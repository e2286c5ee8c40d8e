package console

import (
	"bytes"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/user/polar_plotter/internal/parser"
)

func TestAskPath(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"default on enter", "\n", parser.DefaultCSV},
		{"default on eof", "", parser.DefaultCSV},
		{"trimmed", "  naca2412.csv  \n", "naca2412.csv"},
		{"windows line ending", "polar2.csv\r\n", "polar2.csv"},
		{"no trailing newline", "last.csv", "last.csv"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var out bytes.Buffer
			got, err := NewPrompter(strings.NewReader(tt.input), &out).AskPath()
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, pathPrompt, out.String())
		})
	}
}

func TestAskSave(t *testing.T) {
	tests := []struct {
		input string
		want  bool
	}{
		{"s\n", true},
		{"S\n", true},
		{"s", true},
		{"s\r\n", true},
		{"n\n", false},
		{"\n", false},
		{"si\n", false},
		{" s\n", false},
		{"y\n", false},
		{"", false},
	}
	for _, tt := range tests {
		t.Run(fmt.Sprintf("%q", tt.input), func(t *testing.T) {
			var out bytes.Buffer
			assert.Equal(t, tt.want, NewPrompter(strings.NewReader(tt.input), &out).AskSave())
			assert.True(t, strings.HasPrefix(out.String(), savePrompt))
		})
	}
}

func TestPromptsShareReader(t *testing.T) {
	p := NewPrompter(strings.NewReader("data.csv\ns\n"), new(bytes.Buffer))
	path, err := p.AskPath()
	require.NoError(t, err)
	assert.Equal(t, "data.csv", path)
	assert.True(t, p.AskSave())
}

func TestBanner(t *testing.T) {
	var out bytes.Buffer
	Banner(&out)
	assert.Contains(t, out.String(), BannerTitle)
	assert.Contains(t, out.String(), strings.Repeat("=", 40))
}

func TestLoadError(t *testing.T) {
	var out bytes.Buffer
	LoadError(&out, "missing.csv", fmt.Errorf("%w: missing.csv", parser.ErrNotFound))
	assert.Contains(t, out.String(), "Error: No se encontró el archivo missing.csv")

	out.Reset()
	LoadError(&out, "bad.csv", errors.New("boom"))
	assert.Contains(t, out.String(), "Error al cargar el archivo: boom")
}

func TestLoaded(t *testing.T) {
	table := parser.NewPolarTable("polar.csv")
	table.Columns = []string{"AoA", "Cl", "Cd"}
	table.AoA = []float64{-5, 0, 12.5}
	table.Cl = []float64{-0.3, 0.2, 1.3}
	table.Cd = []float64{0.01, 0.008, 0.03}

	var out bytes.Buffer
	Loaded(&out, table)
	assert.Contains(t, out.String(), "Dimensiones: (3, 3)")
	assert.Contains(t, out.String(), `Columnas: ["AoA" "Cl" "Cd"]`)
	assert.Contains(t, out.String(), "Rango de ángulos: -5° a 12.5°")
}

func TestWarningsAndSaved(t *testing.T) {
	var out bytes.Buffer
	Warnings(&out, []string{"row 3: skipped", "column cm_x0.50 ignored"})
	Saved(&out, "polar_completa.png")
	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	require.Len(t, lines, 3)
	assert.Contains(t, lines[0], "Advertencia: row 3: skipped")
	assert.Equal(t, "Gráfica guardada exitosamente como 'polar_completa.png'", lines[2])
}

// Package console is the interactive shell around the plotter: the banner,
// the two prompts and the diagnostic lines printed to the user.
package console

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/user/polar_plotter/internal/parser"
)

const (
	BannerTitle = "Generador de Polares Aerodinámicas"
	pathPrompt  = "Ingresa el nombre del archivo CSV (presiona Enter para 'polar.csv'): "
	savePrompt  = "\n¿Deseas guardar las gráficas? (s/n): "
	saveAnswer  = "s"
)

var (
	titleStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#5f87ff"))
	ruleStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#808080"))
	errorStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#ff5f5f"))
	warnStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#ffaf00"))
)

// Prompter reads answers from in and writes prompts to out.
type Prompter struct {
	in  *bufio.Reader
	out io.Writer
}

// NewPrompter reads answers line by line from in.
func NewPrompter(in io.Reader, out io.Writer) *Prompter {
	return &Prompter{in: bufio.NewReader(in), out: out}
}

// readLine returns the next line without its line ending. A final line
// without a newline is returned with a nil error.
func (p *Prompter) readLine() (string, error) {
	line, err := p.in.ReadString('\n')
	if err != nil && !(errors.Is(err, io.EOF) && line != "") {
		return "", err
	}
	return strings.TrimRight(line, "\r\n"), nil
}

// AskPath asks for the data file. Empty input selects parser.DefaultCSV.
func (p *Prompter) AskPath() (string, error) {
	fmt.Fprint(p.out, pathPrompt)
	line, err := p.readLine()
	if err != nil && !errors.Is(err, io.EOF) {
		return "", fmt.Errorf("failed to read file name: %w", err)
	}
	path := strings.TrimSpace(line)
	if path == "" {
		return parser.DefaultCSV, nil
	}
	return path, nil
}

// AskSave asks whether to save the figure. Only "s", in any case, means yes.
func (p *Prompter) AskSave() bool {
	fmt.Fprint(p.out, savePrompt)
	line, err := p.readLine()
	if err != nil {
		fmt.Fprintln(p.out)
		return false
	}
	return strings.ToLower(line) == saveAnswer
}

// Banner prints the program title over a rule of '='.
func Banner(w io.Writer) {
	fmt.Fprintln(w, titleStyle.Render(BannerTitle))
	fmt.Fprintln(w, ruleStyle.Render(strings.Repeat("=", 40)))
}

// LoadError prints the message for a failed load of path.
func LoadError(w io.Writer, path string, err error) {
	if parser.IsNotFound(err) {
		fmt.Fprintln(w, errorStyle.Render(fmt.Sprintf("Error: No se encontró el archivo %s", path)))
		return
	}
	fmt.Fprintln(w, errorStyle.Render(fmt.Sprintf("Error al cargar el archivo: %v", err)))
}

// Loaded prints the size, columns and angle range of t.
func Loaded(w io.Writer, t *parser.PolarTable) {
	fmt.Fprintf(w, "Datos cargados exitosamente. Dimensiones: (%d, %d)\n", t.Rows(), len(t.Columns))
	fmt.Fprintf(w, "Columnas: %q\n", t.Columns)
	if t.Rows() > 0 {
		lo, hi := t.AngleRange()
		fmt.Fprintf(w, "Rango de ángulos: %g° a %g°\n", lo, hi)
	}
}

// Warnings prints non-fatal load problems, one per line.
func Warnings(w io.Writer, warnings []string) {
	for _, msg := range warnings {
		fmt.Fprintln(w, warnStyle.Render("Advertencia: "+msg))
	}
}

// Saved confirms the figure was written to path.
func Saved(w io.Writer, path string) {
	fmt.Fprintf(w, "Gráfica guardada exitosamente como '%s'\n", path)
}

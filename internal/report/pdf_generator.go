package report

import (
	"bytes"
	"fmt"
	"math"

	"github.com/jung-kurt/gofpdf"
	"go.uber.org/zap"

	"github.com/user/polar_plotter/internal/analysis"
	"github.com/user/polar_plotter/internal/parser"
)

const (
	inchToMm               = 25.4
	pdfPageWidthLandscape  = 11 * inchToMm // Letter landscape
	pdfPageHeightLandscape = 8.5 * inchToMm
	pdfMargin              = 0.5 * inchToMm
	pdfContentWidth        = pdfPageWidthLandscape - (2 * pdfMargin)
)

// pdfStyler holds reusable styling and state for PDF generation
type pdfStyler struct {
	pdf         *gofpdf.Fpdf
	styles      map[string]func()
	lineHeight  float64
	currentY    float64 // manually tracked Y position for flowing content
	pageHeight  float64
	contentTopY float64
	logger      *zap.Logger
	translate   func(string) string
}

func newPDFStyler(pdf *gofpdf.Fpdf, logger *zap.Logger) *pdfStyler {
	s := &pdfStyler{
		pdf:         pdf,
		styles:      make(map[string]func()),
		lineHeight:  6, // mm
		pageHeight:  pdfPageHeightLandscape - pdfMargin,
		contentTopY: pdfMargin,
		logger:      logger,
		translate:   pdf.UnicodeTranslatorFromDescriptor(""),
	}
	s.currentY = s.contentTopY
	s.defineStyles()
	return s
}

func (s *pdfStyler) defineStyles() {
	s.styles["h1"] = func() {
		s.pdf.SetFont("Times", "B", 16)
		s.pdf.SetTextColor(0, 0, 0)
	}
	s.styles["h2"] = func() {
		s.pdf.SetFont("Times", "B", 13)
		s.pdf.SetTextColor(0, 0, 0)
	}
	s.styles["normal"] = func() {
		s.pdf.SetFont("Times", "", 10)
		s.pdf.SetTextColor(0, 0, 0)
	}
	s.styles["tableHeader"] = func() {
		s.pdf.SetFont("Times", "B", 9)
		s.pdf.SetFillColor(200, 200, 200)
		s.pdf.SetTextColor(0, 0, 0)
	}
	s.styles["tableCell"] = func() {
		s.pdf.SetFont("Times", "", 9)
		s.pdf.SetTextColor(50, 50, 50)
	}
}

func (s *pdfStyler) applyStyle(styleName string) {
	if fn, ok := s.styles[styleName]; ok {
		fn()
	} else {
		s.styles["normal"]()
	}
}

func (s *pdfStyler) newPage() {
	s.pdf.AddPage()
	s.currentY = s.contentTopY
}

func (s *pdfStyler) checkAddPage(neededHeight float64) {
	if s.currentY+neededHeight > s.pageHeight {
		s.newPage()
	}
}

func (s *pdfStyler) writeParagraph(text string, styleName string, align string) {
	s.applyStyle(styleName)
	s.checkAddPage(s.lineHeight)
	s.pdf.SetXY(pdfMargin, s.currentY)
	s.pdf.MultiCell(pdfContentWidth, s.lineHeight, s.tr(text), "", align, false)
	s.currentY = s.pdf.GetY() + 1
}

func (s *pdfStyler) addSpacer(height float64) {
	s.checkAddPage(height)
	s.currentY += height
}

// tr converts UTF-8 text to the code page of the core fonts.
func (s *pdfStyler) tr(text string) string {
	return s.translate(text)
}

func (s *pdfStyler) addImage(imageBytes []byte, imageName string, width float64, height float64, caption string) {
	s.pdf.RegisterImageOptionsReader(imageName, gofpdf.ImageOptions{ImageType: "PNG"}, bytes.NewReader(imageBytes))
	if s.pdf.Err() {
		s.logger.Warn("failed to register image", zap.String("image", imageName), zap.Error(s.pdf.Error()))
		return
	}

	if width > pdfContentWidth {
		ratio := pdfContentWidth / width
		width = pdfContentWidth
		height *= ratio
	}
	captionHeight := 0.0
	if caption != "" {
		captionHeight = s.lineHeight + 1
	}
	s.checkAddPage(height + captionHeight)

	x := pdfMargin + (pdfContentWidth-width)/2
	s.pdf.ImageOptions(imageName, x, s.currentY, width, height, false, gofpdf.ImageOptions{ImageType: "PNG"}, 0, "")
	s.currentY += height

	if caption != "" {
		s.addSpacer(1)
		s.writeParagraph(caption, "normal", "C")
	}
	s.addSpacer(2)
}

func (s *pdfStyler) writeTable(headers []string, widthsRel []float64, rows [][]string) {
	widths := make([]float64, len(widthsRel))
	var total float64
	for i, rel := range widthsRel {
		widths[i] = rel * pdfContentWidth
		total += widths[i]
	}
	left := pdfMargin + (pdfContentWidth-total)/2

	header := func() {
		s.applyStyle("tableHeader")
		x := left
		for i, h := range headers {
			s.pdf.SetXY(x, s.currentY)
			s.pdf.CellFormat(widths[i], s.lineHeight, s.tr(h), "1", 0, "C", true, 0, "")
			x += widths[i]
		}
		s.currentY += s.lineHeight
	}

	s.checkAddPage(2 * s.lineHeight)
	header()
	for _, row := range rows {
		if s.currentY+s.lineHeight > s.pageHeight {
			s.newPage()
			header()
		}
		s.applyStyle("tableCell")
		x := left
		for i, cell := range row {
			s.pdf.SetXY(x, s.currentY)
			s.pdf.CellFormat(widths[i], s.lineHeight, s.tr(cell), "1", 0, "C", false, 0, "")
			x += widths[i]
		}
		s.currentY += s.lineHeight
	}
}

func summaryRows(sum *analysis.Summary) [][]string {
	rows := [][]string{
		{"Filas", fmt.Sprintf("%d", sum.Rows)},
		{"Columnas", fmt.Sprintf("%d", sum.Columns)},
		{"Rango de ángulos", fmt.Sprintf("%g° a %g°", sum.MinAoA, sum.MaxAoA)},
		{"Cl máximo", fmt.Sprintf("%.4f (%g°)", sum.MaxCl.Value, sum.MaxCl.AoA)},
		{"Cd mínimo", fmt.Sprintf("%.4f (%g°)", sum.MinCd.Value, sum.MinCd.AoA)},
	}
	if sum.HasLiftToDrag {
		rows = append(rows, []string{"Cl/Cd máximo", fmt.Sprintf("%.2f (%g°)", sum.MaxLiftToDrag.Value, sum.MaxLiftToDrag.AoA)})
	}
	rows = append(rows, []string{"Estaciones de momento", fmt.Sprintf("%d", sum.MomentStations)})
	return rows
}

// PDFInput bundles what goes into the PDF report.
type PDFInput struct {
	Table      *parser.PolarTable
	Summary    *analysis.Summary
	FigurePNG  []byte
	FigureSize [2]float64 // inches, for the aspect ratio
	HeatmapPNG []byte     // optional
}

// BuildPDFReport writes a landscape Letter report: the figure on the first
// page, then the summary, the moment heatmap and the data table.
func BuildPDFReport(path string, in PDFInput, logger *zap.Logger) error {
	if in.Table == nil || in.Summary == nil {
		return fmt.Errorf("no polar data to report")
	}

	pdf := gofpdf.New("L", "mm", "Letter", "")
	pdf.SetMargins(pdfMargin, pdfMargin, pdfMargin)
	pdf.SetAutoPageBreak(false, pdfMargin)
	pdf.SetTitle("Polar aerodinámica", true)

	styler := newPDFStyler(pdf, logger)
	styler.newPage()
	styler.writeParagraph(FigureTitle, "h1", "C")
	styler.writeParagraph(fmt.Sprintf("Archivo: %s", in.Table.Source), "normal", "C")
	styler.addSpacer(2)

	if len(in.FigurePNG) > 0 {
		aspect := 0.8
		if in.FigureSize[0] > 0 {
			aspect = in.FigureSize[1] / in.FigureSize[0]
		}
		height := styler.pageHeight - styler.currentY - 4
		width := math.Min(pdfContentWidth, height/aspect)
		styler.addImage(in.FigurePNG, "figure", width, width*aspect, "")
	}

	styler.newPage()
	styler.writeParagraph("Resumen", "h2", "L")
	styler.writeTable([]string{"Magnitud", "Valor"}, []float64{0.3, 0.3}, summaryRows(in.Summary))
	styler.addSpacer(5)

	if len(in.HeatmapPNG) > 0 {
		width := pdfContentWidth * 0.8
		styler.addImage(in.HeatmapPNG, "heatmap", width, width/2, "Coeficiente de momento por estación de cuerda")
	}

	styler.newPage()
	styler.writeParagraph("Datos", "h2", "L")
	rows := make([][]string, 0, in.Table.Rows())
	for i := range in.Table.AoA {
		ld := "-"
		if in.Table.Cd[i] != 0 {
			ld = fmt.Sprintf("%.2f", in.Table.Cl[i]/in.Table.Cd[i])
		}
		rows = append(rows, []string{
			fmt.Sprintf("%g", in.Table.AoA[i]),
			fmt.Sprintf("%.4f", in.Table.Cl[i]),
			fmt.Sprintf("%.5f", in.Table.Cd[i]),
			ld,
		})
	}
	styler.writeTable([]string{"AoA [°]", "Cl", "Cd", "Cl/Cd"}, []float64{0.15, 0.15, 0.15, 0.15}, rows)

	return pdf.OutputFileAndClose(path)
}

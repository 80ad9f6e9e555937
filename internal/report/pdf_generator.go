package report

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/jung-kurt/gofpdf"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"

	"github.com/user/eigenplot_go/internal/analysis"
)

const (
	pdfPageWidth    = 210.0 // A4 portrait, mm
	pdfMargin       = 12.7
	pdfContentWidth = pdfPageWidth - (2 * pdfMargin)
	pdfLineHeight   = 6.0
)

// Supported artifact formats.
const (
	FormatPDF = "pdf"
	FormatPNG = "png"
)

// pdfStyler keeps the named text styles of a document.
type pdfStyler struct {
	pdf    *gofpdf.Fpdf
	styles map[string]func()
}

func newPDFStyler(pdf *gofpdf.Fpdf) *pdfStyler {
	s := &pdfStyler{pdf: pdf, styles: make(map[string]func())}
	s.styles["h1"] = func() {
		s.pdf.SetFont("Arial", "B", 16)
		s.pdf.SetTextColor(0, 0, 0)
	}
	s.styles["normal"] = func() {
		s.pdf.SetFont("Arial", "", 10)
		s.pdf.SetTextColor(0, 0, 0)
	}
	s.styles["caption"] = func() {
		s.pdf.SetFont("Arial", "I", 9)
		s.pdf.SetTextColor(80, 80, 80)
	}
	s.styles["tableHeader"] = func() {
		s.pdf.SetFont("Arial", "B", 9)
		s.pdf.SetFillColor(200, 200, 200)
		s.pdf.SetTextColor(0, 0, 0)
	}
	s.styles["tableCell"] = func() {
		s.pdf.SetFont("Arial", "", 9)
		s.pdf.SetTextColor(50, 50, 50)
	}
	return s
}

func (s *pdfStyler) applyStyle(name string) {
	if fn, ok := s.styles[name]; ok {
		fn()
		return
	}
	s.styles["normal"]()
}

func (s *pdfStyler) writeParagraph(text, style, align string) {
	s.applyStyle(style)
	s.pdf.SetX(pdfMargin)
	s.pdf.MultiCell(pdfContentWidth, pdfLineHeight, text, "", align, false)
	s.pdf.Ln(1)
}

func (s *pdfStyler) writeTable(headers []string, rows [][]string) {
	colWidth := pdfContentWidth / float64(len(headers))
	s.applyStyle("tableHeader")
	s.pdf.SetX(pdfMargin)
	for _, h := range headers {
		s.pdf.CellFormat(colWidth, pdfLineHeight, h, "1", 0, "C", true, 0, "")
	}
	s.pdf.Ln(-1)

	s.applyStyle("tableCell")
	for _, row := range rows {
		s.pdf.SetX(pdfMargin)
		for _, cell := range row {
			s.pdf.CellFormat(colWidth, pdfLineHeight, cell, "1", 0, "C", false, 0, "")
		}
		s.pdf.Ln(-1)
	}
}

// BuildPDF lays out the chart image, its source and the limits used.
func BuildPDF(c *Chart, png []byte) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(pdfMargin, pdfMargin, pdfMargin)
	pdf.SetTitle(c.Title, true)
	pdf.AddPage()

	styler := newPDFStyler(pdf)
	styler.writeParagraph(c.Title, "h1", "C")
	if c.Source != "" {
		styler.writeParagraph(fmt.Sprintf("Data directory: %s", c.Source), "normal", "L")
	}
	mode := "automatic limits"
	if c.Manual {
		mode = fmt.Sprintf("manual limits, amplitude factor %g", c.Amplitude)
	}
	styler.writeParagraph(fmt.Sprintf("Mode: %s", mode), "normal", "L")

	pdf.RegisterImageOptionsReader("chart", gofpdf.ImageOptions{ImageType: "PNG"}, bytes.NewReader(png))
	imgWidth := pdfContentWidth
	imgHeight := imgWidth * float64(c.height/c.width)
	pdf.ImageOptions("chart", pdfMargin, pdf.GetY()+2, imgWidth, imgHeight, true, gofpdf.ImageOptions{ImageType: "PNG"}, 0, "")
	pdf.Ln(2)

	styler.writeParagraph("Axis limits", "caption", "L")
	styler.writeTable(
		[]string{"Panel", "x min", "x max", "y min", "y max"},
		[][]string{limitsRow("Potential", c.Panel1), limitsRow("Spread", c.Panel2)},
	)

	if err := pdf.Error(); err != nil {
		return nil, errors.Wrap(err, "building PDF")
	}
	buf := new(bytes.Buffer)
	if err := pdf.Output(buf); err != nil {
		return nil, errors.Wrap(err, "rendering PDF")
	}
	return buf.Bytes(), nil
}

func limitsRow(name string, l analysis.Limits) []string {
	row := []string{name}
	for _, v := range l.Array() {
		row = append(row, fmt.Sprintf("%.4g", v))
	}
	return row
}

// ArtifactPath joins dir, base and the extension of format.
func ArtifactPath(dir, base, format string) string {
	return filepath.Join(dir, base+"."+format)
}

// WriteArtifact renders c completely in memory and then writes it to path, so
// a failed render leaves no file behind.
func WriteArtifact(path, format string, c *Chart) error {
	format = strings.ToLower(format)
	if format != FormatPDF && format != FormatPNG {
		return errors.Errorf("unsupported output format %q", format)
	}

	png, err := c.PNG()
	if err != nil {
		return err
	}
	out := png
	if format == FormatPDF {
		if out, err = BuildPDF(c, png); err != nil {
			return err
		}
	}

	if err := os.WriteFile(path, out, 0644); err != nil {
		return errors.Wrapf(err, "writing %s", path)
	}
	log.WithFields(log.Fields{"path": path, "bytes": len(out)}).Debug("Artifact written")
	return nil
}

package report

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/phpdave11/gofpdf"

	"github.com/terra-clan/ia-booster/internal/models"
)

type pdfColor struct {
	R int
	G int
	B int
}

func (c pdfColor) setText(pdf *gofpdf.Fpdf) { pdf.SetTextColor(c.R, c.G, c.B) }
func (c pdfColor) setDraw(pdf *gofpdf.Fpdf) { pdf.SetDrawColor(c.R, c.G, c.B) }

var (
	pdfBrand    = pdfColor{R: 59, G: 130, B: 246} // blue-500
	pdfTextMain = pdfColor{R: 0, G: 0, B: 0}
	pdfTextMute = pdfColor{R: 100, G: 100, B: 100}
	pdfTextBody = pdfColor{R: 60, G: 60, B: 60}
	pdfFooter   = pdfColor{R: 150, G: 150, B: 150}
	pdfHigh     = pdfColor{R: 220, G: 38, B: 38}
	pdfMedium   = pdfColor{R: 245, G: 158, B: 11}
	pdfLow      = pdfColor{R: 34, G: 197, B: 94}
)

func priorityColor(p models.Priority) pdfColor {
	switch p {
	case models.PriorityHigh:
		return pdfHigh
	case models.PriorityMedium:
		return pdfMedium
	default:
		return pdfLow
	}
}

const (
	pdfMargin       = 20.0
	pdfFamily       = "Helvetica"
	pdfBottomMargin = 30.0
)

func ensurePageSpace(pdf *gofpdf.Fpdf, minBottom float64) {
	_, pageH := pdf.GetPageSize()
	if pdf.GetY() > pageH-minBottom {
		pdf.AddPage()
	}
}

// PDF renders the analysis as an A4 document. All text is reduced to ASCII
// so the built-in Helvetica font can be used.
func PDF(result models.AnalysisResult, opts Options) ([]byte, error) {
	opts = opts.withDefaults()

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(pdfMargin, pdfMargin, pdfMargin)
	pdf.SetAutoPageBreak(true, pdfBottomMargin)
	pdf.SetTitle(SafeText("Rapport IA Booster - "+opts.Company), false)
	pdf.SetAuthor("IA Booster", false)
	pdf.SetCreator("ia-booster", false)
	pdf.SetCreationDate(opts.GeneratedAt)

	pdf.SetFooterFunc(func() {
		w, h := pdf.GetPageSize()
		pdfFooter.setText(pdf)
		pdf.SetFont(pdfFamily, "", 9)
		pdf.SetXY(pdfMargin, h-15)
		pdf.CellFormat(w-2*pdfMargin, 5, fmt.Sprintf("Page %d", pdf.PageNo()), "", 0, "R", false, 0, "")
	})

	pdf.AddPage()
	pageW, _ := pdf.GetPageSize()
	contentW := pageW - 2*pdfMargin

	// Header
	pdfBrand.setText(pdf)
	pdf.SetFont(pdfFamily, "B", 24)
	pdf.SetXY(pdfMargin, 22)
	pdf.CellFormat(contentW, 10, "IA BOOSTER", "", 1, "L", false, 0, "")

	pdfTextMute.setText(pdf)
	pdf.SetFont(pdfFamily, "", 12)
	pdf.CellFormat(contentW, 7, SafeText("Rapport généré le "+opts.GeneratedAt.Format(frenchDateShape)), "", 1, "L", false, 0, "")
	pdf.Ln(10)

	pdfTextMain.setText(pdf)
	pdf.SetFont(pdfFamily, "B", 18)
	pdf.MultiCell(contentW, 8, SafeText("Plan d'optimisation IA pour "+opts.Company), "", "L", false)

	if opts.Sector != "" {
		pdfTextMute.setText(pdf)
		pdf.SetFont(pdfFamily, "", 12)
		pdf.CellFormat(contentW, 7, SafeText("Secteur: "+opts.Sector), "", 1, "L", false, 0, "")
	}
	pdf.Ln(8)

	// Summary
	pdfTextMain.setText(pdf)
	pdf.SetFont(pdfFamily, "B", 14)
	pdf.CellFormat(contentW, 8, SafeText("Résumé de l'analyse"), "", 1, "L", false, 0, "")
	pdf.Ln(2)

	pdf.SetFont(pdfFamily, "", 11)
	summary := []string{
		fmt.Sprintf("Score d'optimisation IA: %d/100", result.Score),
		"Temps économisé estimé: " + result.AverageTimeSaved,
		fmt.Sprintf("Domaines identifiés: %d", len(result.Domains)),
	}
	for _, line := range summary {
		pdf.SetX(pdfMargin + 5)
		pdf.CellFormat(contentW-5, 7, SafeText(line), "", 1, "L", false, 0, "")
	}
	pdf.Ln(8)

	// Recommendations
	pdfBrand.setDraw(pdf)
	pdf.SetLineWidth(0.3)
	pdf.Line(pdfMargin, pdf.GetY(), pageW-pdfMargin, pdf.GetY())
	pdf.Ln(4)

	pdfTextMain.setText(pdf)
	pdf.SetFont(pdfFamily, "B", 14)
	pdf.CellFormat(contentW, 8, SafeText("Recommandations personnalisées"), "", 1, "L", false, 0, "")
	pdf.Ln(4)

	if len(result.Recommendations) == 0 {
		pdfTextBody.setText(pdf)
		pdf.SetFont(pdfFamily, "", 10)
		pdf.MultiCell(contentW, 5, SafeText("Aucune recommandation prioritaire pour le moment."), "", "L", false)
	}

	for i, rec := range result.Recommendations {
		ensurePageSpace(pdf, 70)

		priorityColor(rec.Priority).setText(pdf)
		pdf.SetFont(pdfFamily, "B", 12)
		title := fmt.Sprintf("%d. %s (%s)", i+1, rec.Domain, strings.ToUpper(string(rec.Priority)))
		pdf.CellFormat(contentW, 7, SafeText(title), "", 1, "L", false, 0, "")
		pdf.Ln(1)

		pdfTextBody.setText(pdf)
		pdf.SetFont(pdfFamily, "", 10)
		pdf.SetX(pdfMargin + 5)
		pdf.MultiCell(contentW-5, 5, SafeText(rec.Description), "", "L", false)
		pdf.Ln(2)

		if rec.Impact != "" {
			pdfLow.setText(pdf)
			pdf.SetX(pdfMargin + 5)
			pdf.MultiCell(contentW-5, 5, SafeText("Impact: "+rec.Impact), "", "L", false)
			pdf.Ln(2)
		}

		tools := limitTools(rec.Tools)
		if len(tools) > 0 {
			pdfTextMain.setText(pdf)
			pdf.SetFont(pdfFamily, "B", 10)
			pdf.SetX(pdfMargin + 5)
			pdf.CellFormat(contentW-5, 6, SafeText("Outils recommandés:"), "", 1, "L", false, 0, "")
		}
		for _, tool := range tools {
			pdfTextBody.setText(pdf)
			pdf.SetFont(pdfFamily, "B", 9)
			line := "- " + tool.Name
			if tool.Price != "" {
				line += " - " + tool.Price
			}
			pdf.SetX(pdfMargin + 10)
			pdf.CellFormat(contentW-10, 5, SafeText(line), "", 1, "L", false, 0, "")

			if tool.Description != "" {
				pdf.SetFont(pdfFamily, "", 9)
				pdf.SetX(pdfMargin + 12)
				pdf.MultiCell(contentW-12, 4, SafeText(tool.Description), "", "L", false)
			}
			pdf.Ln(1)
		}
		pdf.Ln(6)
	}

	// Closing lines
	ensurePageSpace(pdf, 50)
	pdf.Ln(6)
	pdfFooter.setText(pdf)
	pdf.SetFont(pdfFamily, "", 10)
	pdf.MultiCell(contentW, 5, SafeText(footerLine), "", "L", false)
	pdf.CellFormat(contentW, 6, "Pour plus d'informations: "+contactEmail, "", 1, "L", false, 0, "")

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("failed to render pdf: %w", err)
	}
	return buf.Bytes(), nil
}

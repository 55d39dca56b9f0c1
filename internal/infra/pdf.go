package infra

// pdf.go — daily production report rendering with go-pdf/fpdf.
// A4 portrait with:
//   - Title header with generation timestamp
//   - Summary cards (collections, references, produced, forecast, overall %)
//   - Per-collection table with a drawn progress bar per row
//   - Overdue stage table (capped upstream)
//   - Paginated footer
//
// The output file is saved to storagePath/relatorio_{data}.pdf.

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/ValdirGR/pcpflorlinda2026-sub000/internal/analytics"

	"github.com/go-pdf/fpdf"
)

// RelatorioPDF renders analytics.Relatorio documents to disk. It
// implements service.GeradorPDF.
type RelatorioPDF struct {
	storagePath string
}

func NewRelatorioPDF(storagePath string) *RelatorioPDF {
	return &RelatorioPDF{storagePath: storagePath}
}

func (g *RelatorioPDF) Gerar(rel *analytics.Relatorio) (string, error) {
	if err := os.MkdirAll(g.storagePath, 0755); err != nil {
		return "", fmt.Errorf("pdf: create storage dir: %w", err)
	}

	fileName := fmt.Sprintf("relatorio_%s.pdf", rel.GeradoEm.Format("2006-01-02"))
	filePath := filepath.Join(g.storagePath, fileName)

	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(12, 12, 12)
	pdf.AliasNbPages("")
	pdf.SetFooterFunc(func() {
		pdf.SetY(-12)
		pdf.SetFont("Helvetica", "I", 7)
		pdf.CellFormat(0, 5, fmt.Sprintf("Página %d de {nb}", pdf.PageNo()), "", 0, "C", false, 0, "")
	})
	pdf.AddPage()

	pageW, _ := pdf.GetPageSize()
	contentW := pageW - 24

	// ── Header ───────────────────────────────────────────────────────────────
	pdf.SetFont("Helvetica", "B", 15)
	pdf.CellFormat(contentW, 8, "Relatório Diário de Produção", "", 1, "C", false, 0, "")
	pdf.SetFont("Helvetica", "", 9)
	pdf.CellFormat(contentW, 5, "Gerado em "+rel.GeradoEm.Format("02/01/2006 15:04"), "", 1, "C", false, 0, "")
	pdf.Ln(4)

	// ── Summary cards ────────────────────────────────────────────────────────
	cards := []struct {
		rotulo string
		valor  string
	}{
		{"Coleções", fmt.Sprintf("%d", rel.Resumo.TotalColecoes)},
		{"Referências", fmt.Sprintf("%d", rel.Resumo.TotalReferencias)},
		{"Produzido", fmt.Sprintf("%d", rel.Resumo.TotalProduzido)},
		{"Previsto", fmt.Sprintf("%d", rel.Resumo.TotalPrevisto)},
		{"Geral", fmt.Sprintf("%d%%", rel.Resumo.PercentualGeral)},
	}
	cardW := contentW / float64(len(cards))
	pdf.SetFont("Helvetica", "", 8)
	for _, c := range cards {
		pdf.CellFormat(cardW, 5, c.rotulo, "TLR", 0, "C", false, 0, "")
	}
	pdf.Ln(-1)
	pdf.SetFont("Helvetica", "B", 11)
	for _, c := range cards {
		pdf.CellFormat(cardW, 7, c.valor, "BLR", 0, "C", false, 0, "")
	}
	pdf.Ln(12)

	// ── Collection table ─────────────────────────────────────────────────────
	pdf.SetFont("Helvetica", "B", 10)
	pdf.CellFormat(contentW, 6, "Coleções", "", 1, "L", false, 0, "")

	colNome := contentW * 0.34
	colNum := contentW * 0.13
	colBarra := contentW * 0.40

	pdf.SetFont("Helvetica", "B", 8)
	pdf.CellFormat(colNome, 6, "Coleção", "B", 0, "L", false, 0, "")
	pdf.CellFormat(colNum, 6, "Produzido", "B", 0, "R", false, 0, "")
	pdf.CellFormat(colNum, 6, "Previsto", "B", 0, "R", false, 0, "")
	pdf.CellFormat(colBarra, 6, "Progresso", "B", 1, "C", false, 0, "")

	pdf.SetFont("Helvetica", "", 8)
	for _, c := range rel.Colecoes {
		pdf.CellFormat(colNome, 7, c.Nome, "", 0, "L", false, 0, "")
		pdf.CellFormat(colNum, 7, fmt.Sprintf("%d", c.Produzido), "", 0, "R", false, 0, "")
		pdf.CellFormat(colNum, 7, fmt.Sprintf("%d", c.Previsto), "", 0, "R", false, 0, "")

		x, y := pdf.GetXY()
		barW := colBarra - 18
		pdf.SetFillColor(230, 230, 230)
		pdf.Rect(x+2, y+1.5, barW, 4, "F")
		pdf.SetFillColor(86, 156, 84)
		pdf.Rect(x+2, y+1.5, barW*float64(c.Percentual)/100, 4, "F")
		pdf.SetXY(x+barW+4, y)
		pdf.CellFormat(12, 7, fmt.Sprintf("%d%%", c.Percentual), "", 1, "R", false, 0, "")
	}
	pdf.Ln(6)

	// ── Overdue stages ───────────────────────────────────────────────────────
	pdf.SetFont("Helvetica", "B", 10)
	pdf.CellFormat(contentW, 6, "Etapas Atrasadas", "", 1, "L", false, 0, "")

	if len(rel.EtapasAtrasadas) == 0 {
		pdf.SetFont("Helvetica", "I", 8)
		pdf.CellFormat(contentW, 6, "Nenhuma etapa atrasada.", "", 1, "L", false, 0, "")
	} else {
		colRef := contentW * 0.32
		colEtapa := contentW * 0.22
		colColec := contentW * 0.20
		colPrazo := contentW * 0.14
		colDias := contentW * 0.12

		pdf.SetFont("Helvetica", "B", 8)
		pdf.CellFormat(colRef, 6, "Referência", "B", 0, "L", false, 0, "")
		pdf.CellFormat(colEtapa, 6, "Etapa", "B", 0, "L", false, 0, "")
		pdf.CellFormat(colColec, 6, "Coleção", "B", 0, "L", false, 0, "")
		pdf.CellFormat(colPrazo, 6, "Prazo", "B", 0, "C", false, 0, "")
		pdf.CellFormat(colDias, 6, "Dias", "B", 1, "R", false, 0, "")

		pdf.SetFont("Helvetica", "", 8)
		for _, e := range rel.EtapasAtrasadas {
			ref := e.ReferenciaCodigo
			if e.ReferenciaNome != "" {
				ref += " - " + e.ReferenciaNome
			}
			if len(ref) > 40 {
				ref = ref[:39] + "…"
			}
			pdf.CellFormat(colRef, 6, ref, "", 0, "L", false, 0, "")
			pdf.CellFormat(colEtapa, 6, e.Etapa, "", 0, "L", false, 0, "")
			pdf.CellFormat(colColec, 6, e.Colecao, "", 0, "L", false, 0, "")
			pdf.CellFormat(colPrazo, 6, e.Prazo.Format("02/01/2006"), "", 0, "C", false, 0, "")
			pdf.CellFormat(colDias, 6, fmt.Sprintf("%d", e.DiasAtraso), "", 1, "R", false, 0, "")
		}
	}

	if err := pdf.OutputFileAndClose(filePath); err != nil {
		return "", fmt.Errorf("pdf: write file: %w", err)
	}

	return filePath, nil
}

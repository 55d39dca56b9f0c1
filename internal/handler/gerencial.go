package handler

import (
	"fmt"
	"net/http"
	"time"

	"github.com/ValdirGR/pcpflorlinda2026-sub000/internal/apierror"
	"github.com/ValdirGR/pcpflorlinda2026-sub000/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
	"github.com/xuri/excelize/v2"
)

type GerencialHandler struct{ svc service.DashboardService }

func NewGerencialHandler(svc service.DashboardService) *GerencialHandler {
	return &GerencialHandler{svc: svc}
}

// Exportar writes the management panel as an XLSX download, one row per
// collection plus the weekly series flattened into columns.
func (h *GerencialHandler) Exportar(c *gin.Context) {
	resp, err := h.svc.Gerencial(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, apierror.New("Erro ao montar painel gerencial"))
		return
	}

	f := excelize.NewFile()
	defer f.Close()

	const sheet = "Gerencial"
	f.SetSheetName("Sheet1", sheet)

	headerStyle, _ := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Size: 11},
		Fill: excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{"#D9E1F2"}},
		Border: []excelize.Border{
			{Type: "bottom", Color: "#8EA9DB", Style: 2},
		},
	})

	headers := []string{"Coleção", "Status", "Meta", "Produzido", "Percentual", "Capacidade", "Ritmo Necessário"}
	for i, head := range headers {
		col, _ := excelize.ColumnNumberToName(i + 1)
		cell := col + "1"
		f.SetCellValue(sheet, cell, head)
		f.SetCellStyle(sheet, cell, cell, headerStyle)
	}
	f.SetColWidth(sheet, "A", "A", 32)
	f.SetColWidth(sheet, "F", "G", 24)

	for i := range resp.Colecoes {
		col := &resp.Colecoes[i]
		row := i + 2
		f.SetCellValue(sheet, fmt.Sprintf("A%d", row), col.Nome)
		f.SetCellValue(sheet, fmt.Sprintf("B%d", row), col.Status)
		f.SetCellValue(sheet, fmt.Sprintf("C%d", row), col.Meta)
		f.SetCellValue(sheet, fmt.Sprintf("D%d", row), col.Produzido)
		f.SetCellValue(sheet, fmt.Sprintf("E%d", row), fmt.Sprintf("%d%%", col.Percentual))
		if col.Capacidade != nil {
			f.SetCellValue(sheet, fmt.Sprintf("F%d", row), col.Capacidade.Classificacao)
			f.SetCellValue(sheet, fmt.Sprintf("G%d", row), col.Capacidade.RitmoNecessario.StringFixed(1))
		}
	}

	filename := fmt.Sprintf("gerencial_%s.xlsx", time.Now().Format("2006-01-02"))
	c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Header("Content-Disposition", "attachment; filename=\""+filename+"\"")
	c.Header("Content-Transfer-Encoding", "binary")

	if err := f.Write(c.Writer); err != nil {
		log.Warn().Err(err).Msg("falha ao escrever planilha gerencial")
	}
}

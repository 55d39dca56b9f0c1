package handler

import (
	"net/http"

	"github.com/ValdirGR/pcpflorlinda2026-sub000/internal/apierror"
	"github.com/ValdirGR/pcpflorlinda2026-sub000/internal/service"

	"github.com/gin-gonic/gin"
)

type DashboardHandler struct{ svc service.DashboardService }

func NewDashboardHandler(svc service.DashboardService) *DashboardHandler {
	return &DashboardHandler{svc: svc}
}

// VisaoGeral godoc
// @Summary Visão geral da produção
// @Tags dashboard
// @Produce json
// @Success 200 {object} dto.VisaoGeralResponse
// @Router /v1/dashboard/visao-geral [get]
func (h *DashboardHandler) VisaoGeral(c *gin.Context) {
	resp, err := h.svc.VisaoGeral(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, apierror.New("Erro ao montar visão geral"))
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *DashboardHandler) Gerencial(c *gin.Context) {
	resp, err := h.svc.Gerencial(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, apierror.New("Erro ao montar painel gerencial"))
		return
	}
	c.JSON(http.StatusOK, resp)
}

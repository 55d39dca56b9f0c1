package handler

import (
	"net/http"

	"github.com/ValdirGR/pcpflorlinda2026-sub000/internal/apierror"
	"github.com/ValdirGR/pcpflorlinda2026-sub000/internal/dto"
	"github.com/ValdirGR/pcpflorlinda2026-sub000/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type ProducaoHandler struct{ svc service.ProducaoService }

func NewProducaoHandler(svc service.ProducaoService) *ProducaoHandler {
	return &ProducaoHandler{svc: svc}
}

// ── Etapas ───────────────────────────────────────────────────────────────────

func (h *ProducaoHandler) CriarEtapa(c *gin.Context) {
	var req dto.CriarEtapaRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.CriarEtapa(c.Request.Context(), usuarioID(c), req)
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}
	c.JSON(http.StatusCreated, resp)
}

func (h *ProducaoHandler) ListarEtapas(c *gin.Context) {
	referenciaID, err := uuid.Parse(c.Query("referencia_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("referencia_id inválido"))
		return
	}
	resp, err := h.svc.ListarEtapas(c.Request.Context(), referenciaID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, apierror.New("Erro ao listar etapas"))
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *ProducaoHandler) AtualizarEtapa(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	var req dto.AtualizarEtapaRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.AtualizarEtapa(c.Request.Context(), usuarioID(c), id, req)
	if err != nil {
		c.JSON(http.StatusNotFound, apierror.New(err.Error()))
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *ProducaoHandler) ExcluirEtapa(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	if err := h.svc.ExcluirEtapa(c.Request.Context(), usuarioID(c), id); err != nil {
		c.JSON(http.StatusNotFound, apierror.New(err.Error()))
		return
	}
	c.Status(http.StatusNoContent)
}

// ── Lançamentos ──────────────────────────────────────────────────────────────

func (h *ProducaoHandler) RegistrarLancamento(c *gin.Context) {
	var req dto.RegistrarLancamentoRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.RegistrarLancamento(c.Request.Context(), usuarioID(c), req)
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}
	c.JSON(http.StatusCreated, resp)
}

func (h *ProducaoHandler) ListarLancamentos(c *gin.Context) {
	referenciaID, err := uuid.Parse(c.Query("referencia_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("referencia_id inválido"))
		return
	}
	resp, err := h.svc.ListarLancamentos(c.Request.Context(), referenciaID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, apierror.New("Erro ao listar lançamentos"))
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *ProducaoHandler) LimparLancamentos(c *gin.Context) {
	referenciaID, err := uuid.Parse(c.Param("referencia_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("referencia_id inválido"))
		return
	}
	if err := h.svc.LimparLancamentos(c.Request.Context(), usuarioID(c), referenciaID); err != nil {
		c.JSON(http.StatusNotFound, apierror.New(err.Error()))
		return
	}
	c.Status(http.StatusNoContent)
}

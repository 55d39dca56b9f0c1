package handler

import (
	"net/http"

	"github.com/ValdirGR/pcpflorlinda2026-sub000/internal/apierror"
	"github.com/ValdirGR/pcpflorlinda2026-sub000/internal/dto"
	"github.com/ValdirGR/pcpflorlinda2026-sub000/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type ReferenciasHandler struct {
	svc      service.ReferenciaService
	producao service.ProducaoService
}

func NewReferenciasHandler(svc service.ReferenciaService, producao service.ProducaoService) *ReferenciasHandler {
	return &ReferenciasHandler{svc: svc, producao: producao}
}

func (h *ReferenciasHandler) Criar(c *gin.Context) {
	var req dto.CriarReferenciaRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.Criar(c.Request.Context(), usuarioID(c), req)
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}
	c.JSON(http.StatusCreated, resp)
}

func (h *ReferenciasHandler) Listar(c *gin.Context) {
	if colecao := c.Query("colecao_id"); colecao != "" {
		colecaoID, err := uuid.Parse(colecao)
		if err != nil {
			c.JSON(http.StatusBadRequest, apierror.New("colecao_id inválido"))
			return
		}
		resp, err := h.svc.ListarPorColecao(c.Request.Context(), colecaoID)
		if err != nil {
			c.JSON(http.StatusInternalServerError, apierror.New("Erro ao listar referências"))
			return
		}
		c.JSON(http.StatusOK, resp)
		return
	}

	page, limit := pagination(c)
	resp, err := h.svc.Listar(c.Request.Context(), page, limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, apierror.New("Erro ao listar referências"))
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *ReferenciasHandler) Buscar(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	resp, err := h.svc.Buscar(c.Request.Context(), id)
	if err != nil {
		c.JSON(http.StatusNotFound, apierror.New(err.Error()))
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *ReferenciasHandler) Atualizar(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	var req dto.AtualizarReferenciaRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.Atualizar(c.Request.Context(), usuarioID(c), id, req)
	if err != nil {
		c.JSON(http.StatusNotFound, apierror.New(err.Error()))
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *ReferenciasHandler) Excluir(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	if err := h.svc.Excluir(c.Request.Context(), usuarioID(c), id); err != nil {
		c.JSON(http.StatusConflict, apierror.New(err.Error()))
		return
	}
	c.Status(http.StatusNoContent)
}

// Reconciliar audits the cached produced total of a reference against
// its entry log and repairs any drift.
func (h *ReferenciasHandler) Reconciliar(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	resp, err := h.producao.ReconciliarQuantidade(c.Request.Context(), usuarioID(c), id)
	if err != nil {
		c.JSON(http.StatusNotFound, apierror.New(err.Error()))
		return
	}
	c.JSON(http.StatusOK, resp)
}

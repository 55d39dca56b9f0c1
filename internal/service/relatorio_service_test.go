package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/ValdirGR/pcpflorlinda2026-sub000/internal/analytics"
	"github.com/ValdirGR/pcpflorlinda2026-sub000/internal/model"
	"github.com/ValdirGR/pcpflorlinda2026-sub000/internal/repository"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ── Stubs ─────────────────────────────────────────────────────────────────────

// fakeMailer records sends and fails for configured recipients.
type fakeMailer struct {
	enviados []string
	falhaEm  map[string]bool
}

func (m *fakeMailer) Enviar(para, _, _, _ string) error {
	if m.falhaEm[para] {
		return errors.New("smtp: connection refused")
	}
	m.enviados = append(m.enviados, para)
	return nil
}

type fakePDF struct {
	gerado bool
}

func (p *fakePDF) Gerar(_ *analytics.Relatorio) (string, error) {
	p.gerado = true
	return "/tmp/relatorio.pdf", nil
}

// stubColecaoRepo is an in-memory ColecaoRepository.
type stubColecaoRepo struct {
	colecoes []model.Colecao
	refCount map[uuid.UUID]int64
}

func (r *stubColecaoRepo) Create(_ context.Context, c *model.Colecao) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	r.colecoes = append(r.colecoes, *c)
	return nil
}

func (r *stubColecaoRepo) FindByID(_ context.Context, id uuid.UUID) (*model.Colecao, error) {
	for i := range r.colecoes {
		if r.colecoes[i].ID == id {
			return &r.colecoes[i], nil
		}
	}
	return nil, errors.New("not found")
}

func (r *stubColecaoRepo) List(_ context.Context, incluirDesabilitadas bool) ([]model.Colecao, error) {
	if incluirDesabilitadas {
		return r.colecoes, nil
	}
	return r.ativas(), nil
}

func (r *stubColecaoRepo) ListAtivas(_ context.Context) ([]model.Colecao, error) {
	return r.ativas(), nil
}

func (r *stubColecaoRepo) ativas() []model.Colecao {
	var out []model.Colecao
	for _, c := range r.colecoes {
		if c.Status != model.ColecaoDesabilitada {
			out = append(out, c)
		}
	}
	return out
}

func (r *stubColecaoRepo) Update(_ context.Context, c *model.Colecao) error {
	for i := range r.colecoes {
		if r.colecoes[i].ID == c.ID {
			r.colecoes[i] = *c
			return nil
		}
	}
	return errors.New("not found")
}

func (r *stubColecaoRepo) Desabilitar(_ context.Context, id uuid.UUID) error {
	for i := range r.colecoes {
		if r.colecoes[i].ID == id {
			r.colecoes[i].Status = model.ColecaoDesabilitada
			return nil
		}
	}
	return errors.New("not found")
}

func (r *stubColecaoRepo) Delete(_ context.Context, id uuid.UUID) error {
	for i := range r.colecoes {
		if r.colecoes[i].ID == id {
			r.colecoes = append(r.colecoes[:i], r.colecoes[i+1:]...)
			return nil
		}
	}
	return nil
}

func (r *stubColecaoRepo) CountReferencias(_ context.Context, id uuid.UUID) (int64, error) {
	return r.refCount[id], nil
}

var _ repository.ColecaoRepository = (*stubColecaoRepo)(nil)

// ── Fixtures ──────────────────────────────────────────────────────────────────

// segunda is a fixed Monday so the weekday gate lets the report through.
var segunda = time.Date(2026, 3, 9, 7, 0, 0, 0, time.Local)

func buildRelatorioSvc(destinatarios []string, falhaEm map[string]bool) (*relatorioService, *fakeMailer, *fakePDF) {
	colecaoRep := &stubColecaoRepo{colecoes: []model.Colecao{
		{
			ID:     uuid.New(),
			Nome:   "Verão 2026",
			Codigo: "VER26",
			Status: model.ColecaoNormal,
			Referencias: []model.Referencia{
				{Codigo: "REF-001", Nome: "Vestido Midi", QuantidadeProduzida: 80, QuantidadePrevista: 100},
				{Codigo: "REF-002", Nome: "Saia Plissada", QuantidadeProduzida: 30, QuantidadePrevista: 50, Status: model.ReferenciaFinalizada},
			},
		},
	}}
	etapaRep := &stubEtapaRepo{}
	mailer := &fakeMailer{falhaEm: falhaEm}
	pdf := &fakePDF{}
	svc := NewRelatorioService(colecaoRep, etapaRep, mailer, pdf, destinatarios).(*relatorioService)
	svc.agora = func() time.Time { return segunda }
	return svc, mailer, pdf
}

// ── Tests ─────────────────────────────────────────────────────────────────────

func TestMontarRelatorio(t *testing.T) {
	svc, _, _ := buildRelatorioSvc([]string{"pcp@fabrica.com"}, nil)

	rel, err := svc.Montar(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 1, rel.Resumo.TotalColecoes)
	assert.Equal(t, 2, rel.Resumo.TotalReferencias)
	assert.Equal(t, 110, rel.Resumo.TotalProduzido)
	assert.Equal(t, 150, rel.Resumo.TotalPrevisto)
	assert.Equal(t, 73, rel.Resumo.PercentualGeral)
	assert.Equal(t, segunda, rel.GeradoEm)
}

func TestEnviarDiarioTodosDestinatarios(t *testing.T) {
	svc, mailer, pdf := buildRelatorioSvc([]string{"a@fabrica.com", "b@fabrica.com"}, nil)

	resp, err := svc.EnviarDiario(context.Background())
	require.NoError(t, err)

	assert.False(t, resp.Ignorado)
	assert.Equal(t, 2, resp.Enviados)
	assert.Zero(t, resp.Falhas)
	assert.True(t, pdf.gerado)
	assert.Equal(t, []string{"a@fabrica.com", "b@fabrica.com"}, mailer.enviados)
}

func TestEnviarDiarioFalhaParcialContabiliza(t *testing.T) {
	svc, mailer, _ := buildRelatorioSvc(
		[]string{"a@fabrica.com", "b@fabrica.com", "c@fabrica.com"},
		map[string]bool{"b@fabrica.com": true},
	)

	resp, err := svc.EnviarDiario(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 2, resp.Enviados)
	assert.Equal(t, 1, resp.Falhas)
	require.Len(t, resp.Detalhes, 3)
	assert.False(t, resp.Detalhes[1].Enviado)
	assert.NotEmpty(t, resp.Detalhes[1].Erro)
	// b's failure must not stop c
	assert.Contains(t, mailer.enviados, "c@fabrica.com")
}

func TestEnviarDiarioIgnoraFimDeSemana(t *testing.T) {
	svc, mailer, pdf := buildRelatorioSvc([]string{"a@fabrica.com"}, nil)
	sabado := time.Date(2026, 3, 7, 7, 0, 0, 0, time.Local)
	svc.agora = func() time.Time { return sabado }

	resp, err := svc.EnviarDiario(context.Background())
	require.NoError(t, err)

	assert.True(t, resp.Ignorado)
	assert.Equal(t, "fim de semana", resp.Motivo)
	assert.Empty(t, mailer.enviados)
	assert.False(t, pdf.gerado)
}

func TestEnviarDiarioSemDestinatarios(t *testing.T) {
	svc, mailer, _ := buildRelatorioSvc(nil, nil)

	resp, err := svc.EnviarDiario(context.Background())
	require.NoError(t, err)

	assert.True(t, resp.Ignorado)
	assert.Empty(t, mailer.enviados)
}

package router

import (
	"strings"
	"time"

	"github.com/ValdirGR/pcpflorlinda2026-sub000/internal/config"
	"github.com/ValdirGR/pcpflorlinda2026-sub000/internal/handler"
	"github.com/ValdirGR/pcpflorlinda2026-sub000/internal/infra"
	"github.com/ValdirGR/pcpflorlinda2026-sub000/internal/middleware"
	"github.com/ValdirGR/pcpflorlinda2026-sub000/internal/repository"
	"github.com/ValdirGR/pcpflorlinda2026-sub000/internal/service"
	"github.com/ValdirGR/pcpflorlinda2026-sub000/internal/worker"

	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// Deps exposes the pieces main needs beyond the HTTP engine: the report
// service feeds the worker pool and the dispatcher feeds the cron.
type Deps struct {
	RelatorioSvc service.RelatorioService
	Dispatcher   *worker.Dispatcher
}

// New wires all dependencies and returns a configured Gin engine.
// Dependency graph: Handler ← Service ← Repository ← DB/Redis
func New(cfg *config.Config, db *gorm.DB, rdb *redis.Client) (*gin.Engine, *Deps) {
	if cfg.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()

	// Global middleware chain (order matters)
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger())
	r.Use(middleware.Recovery())
	r.Use(middleware.CORS())
	r.Use(middleware.ErrorHandler())
	r.Use(middleware.RateLimiter(1000, time.Minute)) // 1000 req/min per IP

	// ── Infrastructure ───────────────────────────────────────────────────────
	mailer := infra.NewMailer(cfg)
	pdf := infra.NewRelatorioPDF(cfg.PDFStoragePath)

	// ── Repositories ─────────────────────────────────────────────────────────
	usuarioRepo := repository.NewUsuarioRepository(db)
	colecaoRepo := repository.NewColecaoRepository(db)
	referenciaRepo := repository.NewReferenciaRepository(db)
	etapaRepo := repository.NewEtapaRepository(db)
	lancamentoRepo := repository.NewLancamentoRepository(db)
	logRepo := repository.NewLogRepository(db)

	// ── Services ─────────────────────────────────────────────────────────────
	authSvc := service.NewAuthService(usuarioRepo, cfg)
	logSvc := service.NewLogService(logRepo)
	colecaoSvc := service.NewColecaoService(colecaoRepo, logSvc)
	referenciaSvc := service.NewReferenciaService(referenciaRepo, colecaoRepo, etapaRepo, logSvc)
	producaoSvc := service.NewProducaoService(referenciaRepo, etapaRepo, lancamentoRepo, logSvc)
	dashboardSvc := service.NewDashboardService(colecaoRepo, referenciaRepo, etapaRepo, lancamentoRepo, rdb)

	destinatarios := splitDestinatarios(cfg.ReportRecipients)
	relatorioSvc := service.NewRelatorioService(colecaoRepo, etapaRepo, mailer, pdf, destinatarios)

	// Worker dispatcher — injected into handlers that enqueue async jobs
	dispatcher := worker.NewDispatcher(rdb)

	// ── Handlers ─────────────────────────────────────────────────────────────
	authH := handler.NewAuthHandler(authSvc)
	usuariosH := handler.NewUsuariosHandler(authSvc)
	colecoesH := handler.NewColecoesHandler(colecaoSvc)
	referenciasH := handler.NewReferenciasHandler(referenciaSvc, producaoSvc)
	producaoH := handler.NewProducaoHandler(producaoSvc)
	dashboardH := handler.NewDashboardHandler(dashboardSvc)
	tvH := handler.NewTVHandler(dashboardSvc)
	gerencialH := handler.NewGerencialHandler(dashboardSvc)
	relatorioH := handler.NewRelatorioHandler(relatorioSvc, dispatcher, cfg.CronSecret)
	logsH := handler.NewLogsHandler(logSvc)

	// ── Routes ───────────────────────────────────────────────────────────────

	// Public
	r.GET("/health", handler.Health(db, rdb))

	// Auth (public)
	auth := r.Group("/v1/auth")
	{
		auth.POST("/login", middleware.LoginRateLimiter(), authH.Login)
		auth.POST("/refresh", authH.Refresh)
	}

	// Cron trigger — authenticated by shared secret, not by user token
	r.POST("/v1/relatorio/diario", relatorioH.Disparar)

	// Protected routes
	jwtMW := middleware.JWTAuth(cfg.JWTSecret)
	v1 := r.Group("/v1", jwtMW)
	{
		// Roles: operador, gerente, admin — declared per-endpoint
		leitura := middleware.RequireRole("operador", "gerente", "admin")
		escrita := middleware.RequireRole("gerente", "admin")
		somenteAdmin := middleware.RequireRole("admin")

		colecoes := v1.Group("/colecoes")
		{
			colecoes.GET("", leitura, colecoesH.Listar)
			colecoes.GET("/:id", leitura, colecoesH.Buscar)
			colecoes.POST("", escrita, colecoesH.Criar)
			colecoes.PUT("/:id", escrita, colecoesH.Atualizar)
			colecoes.PATCH("/:id/desabilitar", escrita, colecoesH.Desabilitar)
			colecoes.DELETE("/:id", somenteAdmin, colecoesH.Excluir)
		}

		referencias := v1.Group("/referencias")
		{
			referencias.GET("", leitura, referenciasH.Listar)
			referencias.GET("/:id", leitura, referenciasH.Buscar)
			referencias.POST("", escrita, referenciasH.Criar)
			referencias.PUT("/:id", escrita, referenciasH.Atualizar)
			referencias.POST("/:id/reconciliar", escrita, referenciasH.Reconciliar)
			referencias.DELETE("/:id", somenteAdmin, referenciasH.Excluir)
		}

		etapas := v1.Group("/etapas")
		{
			etapas.GET("", leitura, producaoH.ListarEtapas)
			etapas.POST("", escrita, producaoH.CriarEtapa)
			etapas.PUT("/:id", escrita, producaoH.AtualizarEtapa)
			etapas.DELETE("/:id", somenteAdmin, producaoH.ExcluirEtapa)
		}

		lancamentos := v1.Group("/lancamentos")
		{
			lancamentos.GET("", leitura, producaoH.ListarLancamentos)
			// Operators on the factory floor record production entries.
			lancamentos.POST("", leitura, producaoH.RegistrarLancamento)
			lancamentos.DELETE("/referencia/:referencia_id", somenteAdmin, producaoH.LimparLancamentos)
		}

		dashboard := v1.Group("/dashboard")
		{
			dashboard.GET("/visao-geral", leitura, dashboardH.VisaoGeral)
			dashboard.GET("/gerencial", escrita, dashboardH.Gerencial)
		}

		v1.GET("/gerencial/export", escrita, gerencialH.Exportar)
		v1.GET("/relatorio", escrita, relatorioH.Montar)
		v1.GET("/logs", somenteAdmin, logsH.Listar)

		usuarios := v1.Group("/usuarios", somenteAdmin)
		{
			usuarios.POST("", usuariosH.Criar)
			usuarios.GET("", usuariosH.Listar)
			usuarios.PUT("/:id", usuariosH.Atualizar)
			usuarios.DELETE("/:id", usuariosH.Desativar)
			usuarios.PATCH("/:id/reativar", usuariosH.Reativar)
		}
	}

	// TV panel — read-only snapshot for the factory-floor display, no auth
	// (the endpoint exposes aggregates only and the TVs have no keyboard).
	r.GET("/v1/tv", tvH.Painel)
	r.GET("/v1/tv/ws", tvH.Stream)

	// Swagger UI — only enabled outside production
	if cfg.Env != "production" {
		r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	return r, &Deps{RelatorioSvc: relatorioSvc, Dispatcher: dispatcher}
}

func splitDestinatarios(raw string) []string {
	var out []string
	for _, d := range strings.Split(raw, ",") {
		if d = strings.TrimSpace(d); d != "" {
			out = append(out, d)
		}
	}
	return out
}

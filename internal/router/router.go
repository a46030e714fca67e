package router

import (
	"time"

	"comanda/internal/config"
	"comanda/internal/handler"
	"comanda/internal/infra"
	"comanda/internal/metrics"
	"comanda/internal/middleware"
	"comanda/internal/repository"
	"comanda/internal/service"
	"comanda/internal/worker"

	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// New wires all dependencies and returns a configured Gin engine.
// Dependency graph: Handler ← Service ← Repository ← DB/Redis
//
// rdb may be nil (tests): the engine then runs without the menu cache and
// without receipt jobs.
func New(cfg *config.Config, db *gorm.DB, rdb *redis.Client, mailerCB *infra.CircuitBreaker, m *metrics.Metrics) *gin.Engine {
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()

	// Global middleware chain (order matters)
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger())
	r.Use(middleware.Recovery())
	r.Use(middleware.CORS(cfg.IsProduction(), cfg.CORSAllowedOrigins))
	r.Use(middleware.ErrorHandler())
	r.Use(middleware.NewRateLimiter(1000, time.Minute, "").Middleware()) // 1000 req/min per IP

	// ── Repositories ─────────────────────────────────────────────────────────
	usuarioRepo := repository.NewUsuarioRepository(db)
	productoRepo := repository.NewProductoRepository(db)
	mesaRepo := repository.NewMesaRepository(db)
	clienteRepo := repository.NewClienteRepository(db)
	pedidoRepo := repository.NewPedidoRepository(db)
	ventaRepo := repository.NewVentaRepository(db)
	movimientoStockRepo := repository.NewMovimientoStockRepository(db)

	// ── Services ─────────────────────────────────────────────────────────────
	var (
		cache    service.Cache
		recibos  service.ReciboEnqueuer
		menuTTL  = time.Duration(cfg.MenuCacheTTLSeconds) * time.Second
		redisCmd redis.Cmdable
	)
	if rdb != nil {
		redisCmd = rdb
		cache = infra.NewRedisCache(rdb, "comanda:")
		// Worker dispatcher — the order engine enqueues receipts after commit
		recibos = worker.NewDispatcher(rdb)
	}

	authSvc := service.NewAuthService(usuarioRepo, cfg)
	inventarioSvc := service.NewInventarioService(productoRepo, movimientoStockRepo)
	mesaSvc := service.NewMesaService(mesaRepo, pedidoRepo)
	clienteSvc := service.NewClienteService(clienteRepo)
	ventaSvc := service.NewVentaService(ventaRepo)
	menuSvc := service.NewMenuService(mesaSvc, productoRepo, cache, menuTTL)
	pedidoSvc := service.NewPedidoService(pedidoRepo, inventarioSvc, mesaSvc, clienteSvc, ventaSvc, m, recibos, menuSvc)

	// ── Handlers ─────────────────────────────────────────────────────────────
	authH := handler.NewAuthHandler(authSvc)
	pedidosH := handler.NewPedidosHandler(pedidoSvc)
	ventasH := handler.NewVentasHandler(ventaSvc)
	inventarioH := handler.NewInventarioHandler(inventarioSvc)
	menuH := handler.NewMenuHandler(menuSvc)

	// ── Routes ───────────────────────────────────────────────────────────────

	r.GET("/health", handler.Health(db, redisCmd, mailerCB))
	if cfg.MetricsEnabled && m != nil {
		r.GET("/metrics", gin.WrapH(m.Handler()))
	}

	// Auth (public)
	auth := r.Group("/v1/auth")
	{
		auth.POST("/pin", middleware.LoginRateLimiter(), authH.LoginPin)
	}

	// QR table ordering — tenant from X-Tenant-ID, rate limited per IP
	publicLimit := middleware.NewRateLimiter(cfg.PublicRateLimit, time.Minute, "").Middleware()
	public := r.Group("/v1/public", middleware.PublicTenant(), publicLimit)
	{
		public.GET("/mesas/:uuid/menu", menuH.Obtener)
		public.POST("/pedidos", pedidosH.CrearPublico)
	}

	// Protected routes — tenant from the staff JWT
	jwtMW := middleware.JWTAuth(cfg.JWTSecret)

	mesero := r.Group("/v1/mesero", jwtMW, middleware.RequireRole("mesero", "administrador"))
	{
		mesero.POST("/pedidos", pedidosH.CrearMesero)
		mesero.GET("/pedidos/:id", pedidosH.Obtener)
		mesero.PUT("/pedidos/:id/cliente", pedidosH.ActualizarCliente)
		mesero.GET("/pedidos/:id/recibo", pedidosH.Recibo)
		mesero.GET("/mesas/:id/pedido", pedidosH.AbiertoDeMesa)
	}

	admin := r.Group("/v1/admin", jwtMW, middleware.RequireRole("administrador"))
	{
		admin.POST("/pedidos", pedidosH.CrearAdmin)
		admin.GET("/pedidos/:id", pedidosH.Obtener)
		admin.PUT("/pedidos/:id", pedidosH.Actualizar)
		admin.PATCH("/pedidos/:id/estado", pedidosH.ActualizarEstado)

		admin.GET("/ventas", ventasH.Listar)
		admin.GET("/ventas/:id", ventasH.Obtener)

		admin.GET("/inventario/movimientos", inventarioH.ListarMovimientos)

		admin.POST("/usuarios", authH.CrearUsuario)
	}

	// Swagger UI — only enabled outside production
	if !cfg.IsProduction() {
		r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	return r
}

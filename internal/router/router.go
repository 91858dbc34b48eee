package router

import (
	"time"

	"github.com/VictorCubas/GROUP-TOURS-APP-sub000/internal/config"
	"github.com/VictorCubas/GROUP-TOURS-APP-sub000/internal/handler"
	"github.com/VictorCubas/GROUP-TOURS-APP-sub000/internal/middleware"
	"github.com/VictorCubas/GROUP-TOURS-APP-sub000/internal/repository"
	"github.com/VictorCubas/GROUP-TOURS-APP-sub000/internal/service"
	"github.com/VictorCubas/GROUP-TOURS-APP-sub000/internal/worker"

	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// New wires all dependencies and returns a configured Gin engine.
// Dependency graph: Handler ← Service ← Repository ← DB/Redis
func New(cfg *config.Config, db *gorm.DB, rdb *redis.Client, dispatcher *worker.Dispatcher) *gin.Engine {
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

	// ── Repositories ─────────────────────────────────────────────────────────
	usuarioRepo := repository.NewUsuarioRepository(db)
	personaRepo := repository.NewPersonaRepository(db)
	monedaRepo := repository.NewMonedaRepository(db)
	paqueteRepo := repository.NewPaqueteRepository(db)
	reservaRepo := repository.NewReservaRepository(db)
	cajaRepo := repository.NewCajaRepository(db)
	comprobanteRepo := repository.NewComprobanteRepository(db)
	facturacionRepo := repository.NewFacturacionRepository(db)
	voucherRepo := repository.NewVoucherRepository(db)
	secuenciaRepo := repository.NewSecuenciaRepository(db)

	// ── Services ─────────────────────────────────────────────────────────────
	authSvc := service.NewAuthService(usuarioRepo, personaRepo, cfg)
	personaSvc := service.NewPersonaService(personaRepo)
	monedaSvc := service.NewMonedaService(monedaRepo, rdb, time.Duration(cfg.CotizacionCacheTTL)*time.Minute)
	paqueteSvc := service.NewPaqueteService(paqueteRepo, monedaRepo)
	cajaSvc := service.NewCajaService(cajaRepo, facturacionRepo, personaRepo, secuenciaRepo, cfg.PDFStoragePath)
	voucherSvc := service.NewVoucherService(voucherRepo, dispatcher, cfg.PDFStoragePath)
	reservaSvc := service.NewReservaService(reservaRepo, paqueteRepo, personaRepo, comprobanteRepo, facturacionRepo, voucherSvc, secuenciaRepo)
	comprobanteSvc := service.NewComprobanteService(comprobanteRepo, reservaRepo, reservaSvc, cajaSvc, monedaSvc, secuenciaRepo, dispatcher, cfg.PDFStoragePath)
	facturacionSvc := service.NewFacturacionService(facturacionRepo, personaRepo, reservaSvc, secuenciaRepo, dispatcher, cfg.PDFStoragePath)

	// ── Handlers ─────────────────────────────────────────────────────────────
	authH := handler.NewAuthHandler(authSvc)
	usuariosH := handler.NewUsuariosHandler(authSvc)
	personasH := handler.NewPersonaHandler(personaSvc)
	monedasH := handler.NewMonedaHandler(monedaSvc)
	paquetesH := handler.NewPaqueteHandler(paqueteSvc)
	reservasH := handler.NewReservaHandler(reservaSvc, voucherSvc)
	cajasH := handler.NewCajaHandler(cajaSvc)
	comprobantesH := handler.NewComprobanteHandler(comprobanteSvc)
	facturacionH := handler.NewFacturacionHandler(facturacionSvc)
	vouchersH := handler.NewVoucherHandler(voucherSvc)

	// ── Routes ───────────────────────────────────────────────────────────────

	// Public
	r.GET("/health", handler.Health(db, rdb))

	// Auth (public)
	auth := r.Group("/v1/auth")
	{
		auth.POST("/login", middleware.LoginRateLimiter(), authH.Login)
		auth.POST("/refresh", authH.Refresh)
	}

	// Voucher verification — scanned at the gate, no auth required
	r.GET("/v1/vouchers/verificar/:codigo", vouchersH.Verificar)

	// Protected routes
	jwtMW := middleware.JWTAuth(cfg.JWTSecret)
	todos := middleware.RequireRole("administrador", "vendedor", "cajero")
	v1 := r.Group("/v1", jwtMW)
	{
		// Personas — vendedores load clients and passengers
		v1.GET("/personas", todos, personasH.List)
		v1.GET("/personas/empleados", todos, personasH.ListEmpleados)
		v1.GET("/personas/:id", todos, personasH.Obtener)
		personas := v1.Group("/personas", middleware.RequireRole("administrador", "vendedor"))
		{
			personas.POST("", personasH.Crear)
			personas.PUT("/:id", personasH.Actualizar)
		}

		// Monedas y cotizaciones
		v1.GET("/monedas", todos, monedasH.List)
		v1.GET("/monedas/:id/cotizaciones", todos, monedasH.ListCotizaciones)
		v1.POST("/monedas/convertir", todos, monedasH.Convertir)
		monedas := v1.Group("/monedas", middleware.RequireRole("administrador"))
		{
			monedas.POST("", monedasH.Crear)
			monedas.POST("/cotizaciones", monedasH.RegistrarCotizacion)
		}

		// Paquetes y salidas — catálogo visible para todos, escritura administrador
		v1.GET("/paquetes", todos, paquetesH.List)
		v1.GET("/paquetes/habitaciones", todos, paquetesH.ListHabitaciones)
		v1.GET("/paquetes/:id", todos, paquetesH.Obtener)
		v1.GET("/paquetes/:id/salidas", todos, paquetesH.ListSalidas)
		paquetes := v1.Group("/paquetes", middleware.RequireRole("administrador"))
		{
			paquetes.POST("", paquetesH.Crear)
			paquetes.POST("/salidas", paquetesH.CrearSalida)
		}

		// Reservas
		v1.GET("/reservas", todos, reservasH.List)
		v1.GET("/reservas/:id", todos, reservasH.Obtener)
		v1.GET("/reservas/:id/vouchers", todos, reservasH.ListVouchers)
		v1.GET("/reservas/:id/montos-cancelacion", todos, reservasH.MontosCancelacion)
		reservas := v1.Group("/reservas", middleware.RequireRole("administrador", "vendedor"))
		{
			reservas.POST("", reservasH.Crear)
			reservas.POST("/:id/pasajeros", reservasH.AgregarPasajero)
			reservas.PUT("/pasajeros/:id", reservasH.AsignarPasajero)
			reservas.POST("/:id/cancelar", reservasH.Cancelar)
		}

		// Comprobantes de pago — operación de caja
		v1.GET("/comprobantes", todos, comprobantesH.List)
		v1.GET("/comprobantes/:id", todos, comprobantesH.Obtener)
		v1.GET("/comprobantes/:id/pdf", todos, comprobantesH.DescargarPDF)
		comprobantes := v1.Group("/comprobantes", middleware.RequireRole("administrador", "cajero"))
		{
			comprobantes.POST("", comprobantesH.Crear)
			comprobantes.POST("/:id/anular", comprobantesH.Anular)
		}

		// Cajas, aperturas, movimientos y cierres
		v1.GET("/cajas", todos, cajasH.ListCajas)
		v1.GET("/cajas/resumen", middleware.RequireRole("administrador"), cajasH.ResumenGeneral)
		v1.GET("/cajas/:id", todos, cajasH.ObtenerCaja)
		v1.GET("/cajas/tengo-abierta", todos, cajasH.TengoCajaAbierta)
		v1.GET("/cajas/aperturas", todos, cajasH.ListAperturas)
		v1.GET("/cajas/aperturas/:id", todos, cajasH.ObtenerApertura)
		v1.GET("/cajas/aperturas/:id/movimientos", todos, cajasH.ListMovimientos)
		v1.GET("/cajas/cierres", todos, cajasH.ListCierres)
		v1.GET("/cajas/cierres/:id", todos, cajasH.ObtenerCierre)
		v1.GET("/cajas/cierres/:id/pdf", todos, cajasH.DescargarCierrePDF)
		cajas := v1.Group("/cajas", middleware.RequireRole("administrador", "cajero"))
		{
			cajas.POST("/abrir", cajasH.Abrir)
			cajas.POST("/movimientos", cajasH.RegistrarMovimiento)
			cajas.POST("/cerrar", cajasH.Cerrar)
		}
		v1.POST("/cajas", middleware.RequireRole("administrador"), cajasH.CrearCaja)
		v1.POST("/cajas/cierres/:id/autorizar", middleware.RequireRole("administrador"), cajasH.AutorizarCierre)

		// Facturación electrónica
		v1.GET("/facturacion/facturas", todos, facturacionH.ListFacturas)
		v1.GET("/facturacion/facturas/:id", todos, facturacionH.ObtenerFactura)
		v1.GET("/facturacion/facturas/:id/kude", todos, facturacionH.DescargarKude)
		v1.GET("/facturacion/tipos-impuesto", todos, facturacionH.ListTiposImpuesto)
		facturar := v1.Group("/facturacion", middleware.RequireRole("administrador", "cajero"))
		{
			facturar.POST("/facturas", facturacionH.EmitirFactura)
			facturar.POST("/notas-credito", facturacionH.EmitirNotaCredito)
		}
		fact := v1.Group("/facturacion", middleware.RequireRole("administrador"))
		{
			fact.PUT("/empresa", facturacionH.GuardarEmpresa)
			fact.GET("/empresa", facturacionH.ObtenerEmpresa)
			fact.POST("/establecimientos", facturacionH.CrearEstablecimiento)
			fact.GET("/establecimientos", facturacionH.ListEstablecimientos)
			fact.POST("/puntos-expedicion", facturacionH.CrearPuntoExpedicion)
			fact.GET("/establecimientos/:id/puntos-expedicion", facturacionH.ListPuntosExpedicion)
			fact.POST("/timbrados", facturacionH.CrearTimbrado)
			fact.GET("/timbrados", facturacionH.ListTimbrados)
			fact.PUT("/configuracion", facturacionH.GuardarConfiguracion)
			fact.GET("/configuracion", facturacionH.ObtenerConfiguracion)
		}

		// Vouchers
		v1.GET("/vouchers/:id", todos, vouchersH.Obtener)
		v1.GET("/vouchers/:id/pdf", todos, vouchersH.DescargarPDF)

		// Usuarios — administrador only
		usuarios := v1.Group("/usuarios", middleware.RequireRole("administrador"))
		{
			usuarios.POST("", usuariosH.Crear)
			usuarios.GET("", usuariosH.Listar)
			usuarios.PUT("/:id", usuariosH.Actualizar)
			usuarios.DELETE("/:id", usuariosH.Desactivar)
			usuarios.PATCH("/:id/reactivar", usuariosH.Reactivar)
		}
	}

	// Swagger UI — only enabled outside production
	if cfg.Env != "production" {
		r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	return r
}

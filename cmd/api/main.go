// Regenera docs/ a partir de las anotaciones de los handlers.
//go:generate go run github.com/swaggo/swag/cmd/swag@v1.16.6 init -g main.go -d ./,../../internal/interfaces/http,../../internal/application/dto -o ../../docs --outputTypes go --overridesFile ../../.swaggo

package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/Shreyas100100/Expense-Tracker/docs"
	"github.com/Shreyas100100/Expense-Tracker/internal/application/analytics"
	"github.com/Shreyas100100/Expense-Tracker/internal/application/auth"
	"github.com/Shreyas100100/Expense-Tracker/internal/application/billing"
	"github.com/Shreyas100100/Expense-Tracker/internal/application/catalog"
	"github.com/Shreyas100100/Expense-Tracker/internal/application/ports"
	"github.com/Shreyas100100/Expense-Tracker/internal/domain/repository"
	infraamqp "github.com/Shreyas100100/Expense-Tracker/internal/infrastructure/amqp"
	"github.com/Shreyas100100/Expense-Tracker/internal/infrastructure/memory"
	infrapdf "github.com/Shreyas100100/Expense-Tracker/internal/infrastructure/pdf"
	"github.com/Shreyas100100/Expense-Tracker/internal/infrastructure/postgres"
	httpRouter "github.com/Shreyas100100/Expense-Tracker/internal/interfaces/http"
	"github.com/Shreyas100100/Expense-Tracker/pkg/config"
	"github.com/Shreyas100100/Expense-Tracker/pkg/logger"
)

// storage repositorios y runner de transacciones del backend elegido.
type storage struct {
	users     repository.UserRepository
	customers repository.CustomerRepository
	items     repository.ItemRepository
	bills     repository.BillRepository
	payments  repository.PaymentRepository
	txRunner  billing.LedgerTxRunner
	close     func()
}

// @title                       Shop Ledger API
// @version                     1.0
// @description                 Clientes, menú, facturas y pagos de un pequeño negocio.
// @BasePath                    /
// @securityDefinitions.apikey  BearerAuth
// @in                          header
// @name                        Authorization
func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: cfg.Log.Level,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Str("storage", cfg.Storage.Driver).
		Msg("iniciando aplicación")

	loc, err := cfg.App.Location()
	if err != nil {
		log.Fatal().Err(err).Msg("zona horaria")
	}

	ctx := context.Background()
	store, err := openStorage(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("almacenamiento")
	}
	defer store.close()

	// Eventos del libro: solo si hay broker configurado
	var events ports.EventPublisher
	if cfg.AMQP.Enabled() {
		pub, err := infraamqp.NewPublisher(cfg.AMQP.URL, cfg.AMQP.Exchange)
		if err != nil {
			log.Fatal().Err(err).Msg("conexión a RabbitMQ")
		}
		defer pub.Close()
		events = pub
		log.Info().Str("exchange", cfg.AMQP.Exchange).Msg("publicación de eventos activa")
	}

	authUC := auth.NewAuthUseCase(store.users, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	})
	itemUC := catalog.NewItemUseCase(store.items)
	customerUC := billing.NewCustomerUseCase(store.customers, store.bills, store.payments, store.txRunner, events)
	billUC := billing.NewBillUseCase(store.txRunner, store.customers, store.items, store.bills, events, loc)
	paymentUC := billing.NewPaymentUseCase(store.txRunner, store.customers, store.bills, store.payments, events, loc)

	// PDF: estado de cuenta del cliente
	statementUC := billing.NewStatementUseCase(
		store.customers, store.bills, store.payments,
		infrapdf.NewMarotoStatementGenerator(cfg.App.Name), loc,
	)
	historyUC := analytics.NewHistoryUseCase(store.customers, store.bills, store.payments, loc)
	dashboardUC := analytics.NewDashboardUseCase(store.customers, store.bills, store.payments, loc)

	metrics := httpRouter.NewMetrics("shop_ledger")

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())
	app.Use(httpRouter.RequestLogger(log.Component("http")))
	app.Use(metrics.Middleware())

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath:    "/",
		FileContent: []byte(docs.SwaggerInfo.ReadDoc()),
		Path:        "docs",
		Title:       "Shop Ledger API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})
	app.Get("/metrics", metrics.Handler())

	httpRouter.Router(app, httpRouter.RouterDeps{
		AuthUC:      authUC,
		ItemUC:      itemUC,
		CustomerUC:  customerUC,
		BillUC:      billUC,
		PaymentUC:   paymentUC,
		StatementUC: statementUC,
		HistoryUC:   historyUC,
		DashboardUC: dashboardUC,
		JWTSecret:   cfg.JWT.Secret,
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("aplicación detenida")
}

func openStorage(ctx context.Context, cfg *config.Config, log *logger.Logger) (*storage, error) {
	if cfg.Storage.Driver == config.StorageDriverMemory {
		log.Warn().Msg("almacenamiento en memoria: los datos se pierden al reiniciar")
		s := memory.NewStore()
		return &storage{
			users:     s.Users(),
			customers: s.Customers(),
			items:     s.Items(),
			bills:     s.Bills(),
			payments:  s.Payments(),
			txRunner:  s,
			close:     func() {},
		}, nil
	}

	if cfg.DB.Migrate {
		if err := postgres.RunMigrations(cfg.DB); err != nil {
			return nil, err
		}
		log.Info().Msg("migraciones aplicadas")
	}
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		return nil, err
	}
	return &storage{
		users:     postgres.NewUserRepository(pool),
		customers: postgres.NewCustomerRepository(pool),
		items:     postgres.NewItemRepository(pool),
		bills:     postgres.NewBillRepository(pool),
		payments:  postgres.NewPaymentRepository(pool),
		txRunner:  postgres.NewTxRunner(pool),
		close:     pool.Close,
	}, nil
}

package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/jhoicas/product-service/internal/application/usecase"
	"github.com/jhoicas/product-service/internal/domain/repository"
	"github.com/jhoicas/product-service/internal/infrastructure/memory"
	"github.com/jhoicas/product-service/internal/infrastructure/postgres"
	httpRouter "github.com/jhoicas/product-service/internal/interfaces/http"
	"github.com/jhoicas/product-service/pkg/config"
	"github.com/jhoicas/product-service/pkg/logger"
)

// storage repositorios y runner de transacciones del driver elegido.
type storage struct {
	categories repository.CategoryRepository
	products   repository.ProductRepository
	tags       repository.TagRepository
	txRunner   usecase.TxRunner
	close      func()
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:     cfg.App.Env,
		Level:   cfg.App.LogLevel,
		Service: cfg.App.Name,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Str("store", cfg.Store.Driver).
		Bool("auth", cfg.JWT.Enabled()).
		Msg("iniciando aplicación")

	ctx := context.Background()
	store, err := openStorage(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("inicializar almacenamiento")
	}
	defer store.close()

	categoryUC := usecase.NewCategoryUseCase(store.categories, store.txRunner)
	productUC := usecase.NewProductUseCase(store.products, store.txRunner)
	tagUC := usecase.NewTagUseCase(store.tags, store.txRunner)

	app := httpRouter.NewApp(cfg.App.Name, httpRouter.RouterDeps{
		CategoryUC: categoryUC,
		ProductUC:  productUC,
		TagUC:      tagUC,
		JWTSecret:  cfg.JWT.Secret,
		Log:        log,
	})

	// Swagger UI en local: http://localhost:<port>/docs
	if _, err := os.Stat(cfg.App.DocsPath); err == nil {
		app.Use(swagger.New(swagger.Config{
			BasePath: "/",
			FilePath: cfg.App.DocsPath,
			Path:     "docs",
			Title:    "Product Service API",
		}))
	} else {
		log.Warn().Str("path", cfg.App.DocsPath).Msg("swagger.json no encontrado, /docs deshabilitado")
	}

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

// openStorage abre el driver configurado. Con postgres aplica las migraciones
// pendientes si DB_AUTO_MIGRATE está activo.
func openStorage(ctx context.Context, cfg *config.Config, log *logger.Logger) (*storage, error) {
	if cfg.Store.Driver == config.StoreDriverMemory {
		s := memory.NewStore()
		log.Warn().Msg("almacenamiento en memoria: los datos se pierden al reiniciar")
		return &storage{
			categories: s.Categories(),
			products:   s.Products(),
			tags:       s.Tags(),
			txRunner:   memory.NewTxRunner(s),
			close:      func() {},
		}, nil
	}

	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		return nil, err
	}
	if cfg.DB.AutoMigrate {
		m, err := postgres.NewMigrator(pool, log)
		if err != nil {
			pool.Close()
			return nil, err
		}
		err = m.Up()
		_ = m.Close()
		if err != nil {
			pool.Close()
			return nil, err
		}
	}
	return &storage{
		categories: postgres.NewCategoryRepository(pool),
		products:   postgres.NewProductRepository(pool),
		tags:       postgres.NewTagRepository(pool),
		txRunner:   postgres.NewTxRunner(pool),
		close:      pool.Close,
	}, nil
}

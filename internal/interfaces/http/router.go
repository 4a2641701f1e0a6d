package http

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/jhoicas/product-service/docs"
	"github.com/jhoicas/product-service/internal/application/usecase"
	"github.com/jhoicas/product-service/pkg/logger"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	CategoryUC *usecase.CategoryUseCase
	ProductUC  *usecase.ProductUseCase
	TagUC      *usecase.TagUseCase
	// JWTSecret vacío deja las rutas de escritura sin autenticación.
	JWTSecret string
	Log       *logger.Logger
}

// NewApp construye la aplicación Fiber con el manejador central de errores,
// los middlewares comunes y todas las rutas.
func NewApp(appName string, deps RouterDeps) *fiber.App {
	app := fiber.New(fiber.Config{
		AppName:      appName,
		ErrorHandler: ErrorHandler(deps.Log),
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())
	app.Use(requestid.New())
	app.Use(RequestLogger(deps.Log))
	Router(app, deps)
	return app
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	app.Get("/health", Health)
	app.Get("/openapi.json", func(c *fiber.Ctx) error {
		c.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSONCharsetUTF8)
		return c.SendString(docs.SwaggerInfo.ReadDoc())
	})

	// write antepone auth + rol a los handlers de escritura cuando hay secreto.
	write := func(h fiber.Handler) []fiber.Handler {
		if deps.JWTSecret == "" {
			return []fiber.Handler{h}
		}
		return []fiber.Handler{AuthMiddleware(deps.JWTSecret), RequireRole(RoleAdmin, RoleEditor), h}
	}

	// Categories
	categories := app.Group("/categories")
	categoryHandler := NewCategoryHandler(deps.CategoryUC)
	categories.Get("/", categoryHandler.List)
	categories.Get("/:name", categoryHandler.GetByName)
	categories.Post("/", write(categoryHandler.Create)...)
	categories.Delete("/:name", write(categoryHandler.Delete)...)

	// Products
	products := app.Group("/products")
	productHandler := NewProductHandler(deps.ProductUC, deps.CategoryUC)
	products.Get("/", productHandler.List)
	products.Get("/search/tags", productHandler.SearchByTags)
	products.Get("/search/all-tags", productHandler.SearchByAllTags)
	products.Get("/search/tag-pattern", productHandler.SearchByTagPattern)
	products.Post("/search", productHandler.Search)
	products.Get("/name/:name", productHandler.GetByName)
	products.Get("/category/:name", productHandler.ListByCategory)
	products.Get("/:id", productHandler.GetByID)
	products.Post("/", write(productHandler.Create)...)
	products.Put("/", write(productHandler.Update)...)
	products.Delete("/", write(productHandler.Delete)...)
	products.Patch("/inventory", write(productHandler.AdjustInventory)...)
	products.Post("/:id/tags", write(productHandler.AddTags)...)
	products.Delete("/:id/tags", write(productHandler.RemoveTags)...)

	// Tags (search antes de :name)
	tags := app.Group("/tags")
	tagHandler := NewTagHandler(deps.TagUC)
	tags.Get("/", tagHandler.List)
	tags.Get("/search", tagHandler.Search)
	tags.Get("/:name", tagHandler.GetByName)
	tags.Post("/", write(tagHandler.Create)...)
	tags.Delete("/:id", write(tagHandler.Delete)...)
}

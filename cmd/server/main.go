package main

import (
	"context"
	"log"
	"time"

	"github.com/gofiber/contrib/otelfiber/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/template/html/v2"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"itemboard/internal/api"
	"itemboard/internal/config"
	"itemboard/internal/repository"
	"itemboard/internal/s3"
	"itemboard/internal/service"
	"itemboard/internal/token"
	"itemboard/internal/tracing"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}

	api.SetupGlobalLogger("itemboard")

	shutdownTracer, err := tracing.InitTracerProvider("itemboard")
	if err != nil {
		log.Fatalf("Failed to initialize OpenTelemetry: %v", err)
	}
	defer func() {
		if err := shutdownTracer(context.Background()); err != nil {
			log.Printf("Error shutting down tracer provider: %v", err)
		}
	}()

	client := connectMongo(cfg)
	defer func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := client.Disconnect(ctx); err != nil {
			log.Printf("Error disconnecting from MongoDB: %v", err)
		}
	}()

	db := client.Database(cfg.MongoDB)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	if err := repository.EnsureUserIndexes(ctx, db); err != nil {
		cancel()
		log.Fatalf("Failed to create user indexes: %v", err)
	}
	cancel()

	var presigner *s3.FilePresigner
	if cfg.S3.Endpoint != "" {
		presigner, err = s3.NewFilePresigner(cfg.S3)
		if err != nil {
			log.Fatalf("Failed to initialize S3 presigner: %v", err)
		}
		log.Println("Successfully initialized S3 presigner.")
	}

	tokens := token.NewService(cfg.JWTSecret, cfg.TokenTTL)

	userRepo := repository.NewMongoUserRepository(db)
	itemRepo := repository.NewMongoItemRepository(db)

	authService := service.NewAuthService(userRepo, tokens)
	userService := service.NewUserService(userRepo)
	itemService := service.NewItemService(itemRepo)

	authHandler := api.NewAuthHandler(authService, tokens)
	userHandler := api.NewUserHandler(userService, presigner)
	itemHandler := api.NewItemHandler(itemService)
	pages := api.NewPageHandler()

	engine := html.New("./views", ".html")

	app := fiber.New(fiber.Config{
		Views:        engine,
		ErrorHandler: api.ErrorHandler,
	})
	app.Use(otelfiber.Middleware())
	app.Use(api.PrometheusMiddleware())

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": "itemboard"})
	})
	app.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))

	apiRoutes := app.Group("/api")
	apiRoutes.Post("/register", authHandler.Register)
	apiRoutes.Post("/login", authHandler.Login)
	apiRoutes.Post("/logout", authHandler.Logout)

	userRoutes := apiRoutes.Group("/user", api.AuthRequired(tokens))
	userRoutes.Get("/", userHandler.GetProfile)
	userRoutes.Patch("/", userHandler.UpdateProfile)
	userRoutes.Post("/avatar/upload-url", userHandler.GetAvatarUploadURL)

	itemRoutes := apiRoutes.Group("/items", api.AuthRequired(tokens))
	itemRoutes.Get("/", itemHandler.List)
	itemRoutes.Post("/", itemHandler.Create)

	itemRoute := apiRoutes.Group("/item", api.AuthRequired(tokens))
	itemRoute.Get("/:id", itemHandler.Get)
	itemRoute.Patch("/:id", itemHandler.Update)
	itemRoute.Delete("/:id", itemHandler.Delete)

	app.Get("/", pages.Landing)
	app.Get("/login", api.RedirectIfAuthenticated(tokens), pages.Login)
	app.Get("/register", api.RedirectIfAuthenticated(tokens), pages.Register)

	dashboard := app.Group("/dashboard", api.RequireAuth(tokens))
	dashboard.Get("/", pages.Dashboard)
	dashboard.Get("/items", pages.Items)
	dashboard.Get("/add-item", pages.AddItem)
	dashboard.Get("/items/:id", pages.ItemDetail)

	app.Get("/profile", api.RequireAuth(tokens), pages.Profile)

	app.Use(pages.NotFound)

	log.Printf("Listening itemboard on port %s", cfg.Port)
	log.Fatal(app.Listen(":" + cfg.Port))
}

func connectMongo(cfg *config.Config) *mongo.Client {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.MongoURI))
	if err != nil {
		log.Fatalf("Failed to connect to MongoDB: %v", err)
	}

	if err := client.Ping(ctx, nil); err != nil {
		log.Fatalf("Failed to ping MongoDB: %v", err)
	}

	log.Println("Successfully connected to MongoDB.")
	return client
}

package FiberConfig

import (
	"log"

	"NanYang/Controllers"
	"NanYang/LocalCache"
	"NanYang/Models"
	"NanYang/Stats"
	"NanYang/middleware"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/compress"
	"github.com/gofiber/fiber/v2/middleware/cors"
)

func SetupRoutes(app *fiber.App, cacheDir string) {
	// Derived rule maps, rebuilt on every config write
	doc, err := Models.LoadConfigDocument(Models.DB)
	if err != nil {
		log.Println("config load failed, starting with defaults:", err)
	}
	rules := Models.NewRuleState(doc)

	// Row sources, primary first
	store := Models.NewScheduleStore(Models.DB)
	cache := LocalCache.New(cacheDir)
	scheduleHandler := Controllers.NewScheduleHandler(store, cache, rules)

	engine := &Stats.Engine{
		Fetcher: &Stats.RowFetcher{
			Primary:  store,
			Cache:    cache,
			Snapshot: scheduleHandler,
			Excluded: rules.IsExcluded,
		},
	}

	dashboardHandler := Controllers.NewDashboardHandler(engine, rules)
	configHandler := Controllers.NewConfigHandler(Models.DB, rules)

	// API group
	api := app.Group("/api")

	// Dashboard routes
	dashboard := api.Group("/dashboard")
	dashboard.Get("/stats", dashboardHandler.GetDashboardStats)
	dashboard.Get("/export", dashboardHandler.ExportDashboardStats)

	// Schedule routes
	schedule := api.Group("/schedule")
	schedule.Get("/", scheduleHandler.GetSchedule)
	schedule.Put("/", scheduleHandler.SaveSchedule)

	// Config routes
	config := api.Group("/config")
	config.Get("/", configHandler.GetConfig)
	config.Put("/", configHandler.UpdateConfig)
	config.Put("/tyre-counts", configHandler.UpdateTyreCounts)
	config.Put("/ton-rules", configHandler.UpdateTonRules)
	config.Put("/plates", configHandler.UpdatePlates)

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})
}

func FiberConfig(listenAddr, cacheDir string) {
	log.Println("Server Up...")
	app := fiber.New()
	app.Use(middleware.RequestLogger())
	app.Use(compress.New(compress.Config{
		Level: compress.LevelBestCompression, // 2
	}))
	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowMethods: "GET,POST,PUT,DELETE,OPTIONS,PATCH",
		AllowHeaders: "Origin, Content-Type, Accept, Authorization, X-Requested-With",
		MaxAge:       300, // Max age for preflight requests caching (5 minutes)
	}))

	SetupRoutes(app, cacheDir)

	if err := app.Listen(listenAddr); err != nil {
		log.Fatal(err)
	}
}

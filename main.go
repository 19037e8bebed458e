package main

import (
	"context"
	"net/http"
	"os"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/jatin-wig/Food-Delivery-Customer-Support/chatbot"
	"github.com/jatin-wig/Food-Delivery-Customer-Support/config"
	"github.com/jatin-wig/Food-Delivery-Customer-Support/handlers"
	"github.com/jatin-wig/Food-Delivery-Customer-Support/llm"
	"github.com/jatin-wig/Food-Delivery-Customer-Support/middleware"
	"github.com/jatin-wig/Food-Delivery-Customer-Support/orders"
	"github.com/jatin-wig/Food-Delivery-Customer-Support/routes"
	"github.com/jatin-wig/Food-Delivery-Customer-Support/sessions"
	"github.com/jatin-wig/Food-Delivery-Customer-Support/tickets"
)

func main() {
	log, err := zap.NewProduction()
	if err != nil {
		panic(err)
	}
	defer log.Sync()

	settings := config.Load()

	// Set Gin mode
	if os.Getenv("GIN_MODE") == "" {
		gin.SetMode(gin.ReleaseMode)
	}

	db, err := config.InitDB(settings.DBPath)
	if err != nil {
		log.Fatal("failed to initialize database", zap.Error(err))
	}
	log.Info("database connected and migrated", zap.String("path", settings.DBPath))

	menu, err := config.LoadMenu(settings.MenuPath)
	if err != nil {
		log.Fatal("failed to load menu", zap.String("path", settings.MenuPath), zap.Error(err))
	}

	orderStore := orders.NewStore(db)
	sessionStore := sessions.NewStore()
	ticketStore := tickets.NewStore(db)

	// Without an API key the deterministic rules still work; only the
	// generative fallback degrades to its fixed reply.
	var generator llm.Generator
	var classifier llm.Classifier
	if settings.GeminiAPIKey != "" {
		gemini, err := llm.NewGemini(context.Background(), settings.GeminiAPIKey, settings.GeminiModel, log)
		if err != nil {
			log.Fatal("failed to create gemini client", zap.Error(err))
		}
		generator, classifier = gemini, gemini
	} else {
		log.Warn("GEMINI_API_KEY not set, generative replies disabled")
		generator, classifier = llm.Unavailable{}, llm.Unavailable{}
	}

	router := chatbot.NewRouter(orderStore, sessionStore, generator, log)

	h := &handlers.Handlers{
		Orders:     orderStore,
		Sessions:   sessionStore,
		Tickets:    ticketStore,
		Router:     router,
		Classifier: classifier,
		Menu:       menu,
		Log:        log,
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.RequestLogger(log))

	// CORS middleware for frontend integration
	r.Use(func(c *gin.Context) {
		c.Header("Access-Control-Allow-Origin", "*")
		c.Header("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		c.Header("Access-Control-Allow-Headers", "Origin, Content-Type, Authorization")
		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}
		c.Next()
	})

	routes.SetupRoutes(r, h)

	log.Info("server running", zap.String("port", settings.Port))
	if err := r.Run(":" + settings.Port); err != nil {
		log.Fatal("failed to start server", zap.Error(err))
	}
}

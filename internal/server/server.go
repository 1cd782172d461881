// Package server exposes the habit service over an authenticated JSON API.
package server

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"

	"github.com/julianstephens/habitflow/internal/constants"
	"github.com/julianstephens/habitflow/internal/habits"
)

// Options configures the HTTP server.
type Options struct {
	JWTSecret    string
	AllowOrigins []string
}

// Server wires the fiber app to the habit service.
type Server struct {
	app    *fiber.App
	svc    *habits.Service
	secret string
}

// New builds the app and registers every route. svc is rebound to the token
// subject on each request.
func New(svc *habits.Service, opts Options) *Server {
	app := fiber.New(fiber.Config{
		AppName:               constants.AppName,
		ErrorHandler:          errorHandler,
		DisableStartupMessage: true,
	})

	origins := "*"
	if len(opts.AllowOrigins) > 0 {
		origins = strings.Join(opts.AllowOrigins, ",")
	}
	app.Use(cors.New(cors.Config{
		AllowOrigins: origins,
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
		AllowMethods: "GET,POST,PUT,PATCH,DELETE,OPTIONS",
	}))
	app.Use(requestLogger())

	s := &Server{
		app:    app,
		svc:    svc,
		secret: opts.JWTSecret,
	}
	s.routes()
	return s
}

func (s *Server) routes() {
	s.app.Get("/healthz", s.health)

	api := s.app.Group("/api", authMiddleware(s.secret))
	api.Get("/habits", s.listHabits)
	api.Post("/habits", s.createHabit)
	api.Get("/habits/:id", s.getHabit)
	api.Patch("/habits/:id", s.updateHabit)
	api.Delete("/habits/:id", s.deleteHabit)
	api.Get("/habits/:id/stats", s.habitStats)
	api.Get("/habits/:id/week", s.habitWeek)
	api.Get("/habits/:id/calendar", s.habitCalendar)
	api.Post("/habits/:id/progress/:date/toggle", s.toggleProgress)
	api.Put("/habits/:id/progress/:date", s.setProgress)
	api.Get("/progress", s.listProgress)
	api.Get("/dashboard", s.dashboard)
	api.Get("/export", s.export)
	api.Post("/import", s.importData)
}

// App returns the underlying fiber app.
func (s *Server) App() *fiber.App {
	return s.app
}

// Listen serves until Shutdown is called.
func (s *Server) Listen(addr string) error {
	return s.app.Listen(addr)
}

func (s *Server) Shutdown() error {
	return s.app.Shutdown()
}

func (s *Server) service(c *fiber.Ctx) *habits.Service {
	return s.svc.WithOwner(ownerOf(c))
}

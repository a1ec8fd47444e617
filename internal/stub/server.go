package stub

import (
	"log"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/parking-reservation-dashboard/internal/config"
)

// Server wires the store, the token middleware and every route of the
// backend contract onto one echo instance. Tests mount Handler() on an
// httptest server; cmd/stubserver runs Start directly.
type Server struct {
	cfg  config.StubConfig
	db   *Store
	echo *echo.Echo
}

// New builds a Server and seeds the two well-known demo accounts: the
// admin (admin@gmail.com / admin@1234) and a first user
// (user1@gmail.com / user@1234).
func New(cfg config.StubConfig) *Server {
	s := &Server{cfg: cfg, db: NewStore(), echo: echo.New()}
	s.echo.HideBanner = true
	s.seed()
	s.routes()
	return s
}

// Store exposes the backing store so tests can arrange state directly.
func (s *Server) Store() *Store { return s.db }

// Handler returns the server as a plain http.Handler.
func (s *Server) Handler() http.Handler { return s.echo }

// Start begins serving on the given address and blocks.
func (s *Server) Start(addr string) error { return s.echo.Start(addr) }

func (s *Server) seed() {
	seedUser := func(email, uname, password string, roles []string) {
		hash, err := hashPassword(password, s.cfg.BcryptCost)
		if err != nil {
			log.Fatalf("stub: seed hash: %v", err)
		}
		if _, err := s.db.CreateUser(email, uname, hash, roles); err != nil {
			log.Fatalf("stub: seed user %s: %v", email, err)
		}
	}
	seedUser("admin@gmail.com", "Admin", "admin@1234", []string{"admin"})
	seedUser("user1@gmail.com", "User 1", "user@1234", []string{"user"})
}

func (s *Server) routes() {
	e := s.echo
	e.GET("/healthz", func(c echo.Context) error { return c.String(http.StatusOK, "ok") })

	e.POST("/api/login", s.handleLogin)
	e.POST("/api/register", s.handleRegister)

	admin := e.Group("/api/admin", s.authRequired(), requireRole("admin"))
	admin.GET("/parking-lots", s.handleAdminLots)
	admin.POST("/parking-lots", s.handleCreateLot)
	admin.PUT("/parking-lots/:id", s.handleUpdateLot)
	admin.DELETE("/parking-lots/:id", s.handleDeleteLot)
	admin.GET("/parking-lots/:id/spots", s.handleLotSpots)
	admin.GET("/users", s.handleRoster)
	admin.GET("/summary", s.handleSummary)
	admin.GET("/revenue-summary", s.handleRevenueSummary)

	user := e.Group("/api/user", s.authRequired(), requireRole("user"))
	user.GET("/parking-lots", s.handleUserLots)
	user.GET("/reservations", s.handleReservations)
	user.POST("/reserve-parking", s.handleReserve)
	user.POST("/vacate-parking", s.handleVacate)
	user.POST("/payment/:id", s.handlePay)
	user.GET("/reports", s.handleReports)
}

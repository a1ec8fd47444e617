package stub

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/parking-reservation-dashboard/internal/model"
	"golang.org/x/crypto/bcrypt"
)

// handleLogin implements POST /api/login. The response nests the user
// under response.user, which is the shape the dashboard's auth client
// expects.
func (s *Server) handleLogin(c echo.Context) error {
	var req model.LoginRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "Email and password are required"})
	}
	req.Email = strings.ToLower(strings.TrimSpace(req.Email))
	if req.Email == "" || req.Password == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "Email and password are required"})
	}

	u := s.db.FindUser(req.Email)
	if u == nil || !verifyPassword(u.PasswordHash, req.Password) {
		return c.JSON(http.StatusUnauthorized, echo.Map{"message": "Invalid email or password"})
	}

	token, err := newAuthToken(s.cfg.JWTSecret, u, s.cfg.TokenTTLMin)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "Internal server error"})
	}
	return c.JSON(http.StatusOK, echo.Map{
		"response": echo.Map{
			"user": model.AuthUser{
				Email:               u.Email,
				Uname:               u.Uname,
				Roles:               u.Roles,
				AuthenticationToken: token,
			},
		},
	})
}

// handleRegister implements POST /api/register. New accounts always get
// the plain "user" role; admins are only ever seeded.
func (s *Server) handleRegister(c echo.Context) error {
	var req model.RegisterRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "Missing email, username, or password"})
	}
	req.Email = strings.ToLower(strings.TrimSpace(req.Email))
	if req.Email == "" || req.Uname == "" || req.Password == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "Missing email, username, or password"})
	}

	hash, err := hashPassword(req.Password, s.cfg.BcryptCost)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "Internal server error"})
	}
	if _, err := s.db.CreateUser(req.Email, req.Uname, hash, []string{"user"}); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "User already exists"})
	}
	return c.JSON(http.StatusCreated, echo.Map{"message": "User registered successfully"})
}

// hashPassword returns a bcrypt hash using the given cost.
func hashPassword(plain string, cost int) (string, error) {
	b, err := bcrypt.GenerateFromPassword([]byte(plain), cost)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// verifyPassword safely compares bcrypt hash and plain password.
func verifyPassword(hash, plain string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(plain)) == nil
}

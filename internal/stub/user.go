package stub

import (
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/parking-reservation-dashboard/internal/model"
)

// GET /api/user/parking-lots
func (s *Server) handleUserLots(c echo.Context) error {
	return c.JSON(http.StatusOK, echo.Map{"parking_lots": s.db.LotsView()})
}

// GET /api/user/reservations
func (s *Server) handleReservations(c echo.Context) error {
	u := currentUser(c)
	return c.JSON(http.StatusOK, echo.Map{"reservations": s.db.ReservationsView(u.ID)})
}

// POST /api/user/reserve-parking
func (s *Server) handleReserve(c echo.Context) error {
	u := currentUser(c)
	var req model.BookingRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "Invalid request body"})
	}
	if req.VehicleNumber == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "Vehicle number is required"})
	}
	r, err := s.db.Reserve(u.ID, req.LotID, req.VehicleNumber, time.Now())
	if err != nil {
		return jsonError(c, err)
	}
	return c.JSON(http.StatusCreated, echo.Map{
		"message":        "Parking spot reserved successfully",
		"lot_id":         req.LotID,
		"spot_id":        r.SpotID,
		"vehicle_number": r.Vehicle,
		"timestamp":      r.ParkedAt,
	})
}

// POST /api/user/vacate-parking
func (s *Server) handleVacate(c echo.Context) error {
	u := currentUser(c)
	r, err := s.db.Vacate(u.ID, time.Now())
	if err != nil {
		return jsonError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{
		"message":        "Spot vacated successfully. Please complete payment.",
		"reservation_id": r.ID,
		"final_cost":     r.Cost,
		"vacated_at":     r.LeftAt,
	})
}

// POST /api/user/payment/:id
func (s *Server) handlePay(c echo.Context) error {
	u := currentUser(c)
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id <= 0 {
		return c.JSON(http.StatusNotFound, echo.Map{"message": "Reservation not found or does not belong to user"})
	}
	p, err := s.db.Pay(u.ID, id)
	if err != nil {
		return jsonError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{
		"message":    "Payment successful!",
		"payment_id": p.ID,
	})
}

// GET /api/user/reports
func (s *Server) handleReports(c echo.Context) error {
	u := currentUser(c)
	return c.JSON(http.StatusOK, echo.Map{"reports": s.db.ReportsView(u.ID, time.Now())})
}

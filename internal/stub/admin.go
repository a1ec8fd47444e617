package stub

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/parking-reservation-dashboard/internal/model"
)

// jsonError maps a store refusal onto its HTTP response. Anything that
// is not an *apiError is treated as an internal error.
func jsonError(c echo.Context, err error) error {
	var ae *apiError
	if errors.As(err, &ae) {
		return c.JSON(ae.Code, echo.Map{"message": ae.Message})
	}
	return c.JSON(http.StatusInternalServerError, echo.Map{"message": "Internal server error"})
}

func lotIDParam(c echo.Context) (int, error) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id <= 0 {
		return 0, errf(404, "Parking lot not found")
	}
	return id, nil
}

// GET /api/admin/parking-lots
func (s *Server) handleAdminLots(c echo.Context) error {
	return c.JSON(http.StatusOK, echo.Map{"parking_lots": s.db.LotsView()})
}

// POST /api/admin/parking-lots
func (s *Server) handleCreateLot(c echo.Context) error {
	var form model.LotForm
	if err := c.Bind(&form); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "Invalid request body"})
	}
	lot := s.db.CreateLot(form)
	return c.JSON(http.StatusCreated, echo.Map{
		"message": "Parking Lot created successfully",
		"lot_id":  lot.ID,
	})
}

// PUT /api/admin/parking-lots/:id
func (s *Server) handleUpdateLot(c echo.Context) error {
	id, err := lotIDParam(c)
	if err != nil {
		return jsonError(c, err)
	}
	var form model.LotForm
	if err := c.Bind(&form); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "Invalid request body"})
	}
	if err := s.db.UpdateLot(id, form); err != nil {
		return jsonError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "Parking lot updated successfully."})
}

// DELETE /api/admin/parking-lots/:id
func (s *Server) handleDeleteLot(c echo.Context) error {
	id, err := lotIDParam(c)
	if err != nil {
		return jsonError(c, err)
	}
	if err := s.db.DeleteLot(id); err != nil {
		return jsonError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "Parking lot and its spots deleted successfully"})
}

// GET /api/admin/parking-lots/:id/spots
func (s *Server) handleLotSpots(c echo.Context) error {
	id, err := lotIDParam(c)
	if err != nil {
		return jsonError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"spots": s.db.SpotsView(id)})
}

// GET /api/admin/users
func (s *Server) handleRoster(c echo.Context) error {
	return c.JSON(http.StatusOK, echo.Map{"users": s.db.RosterView()})
}

// GET /api/admin/summary
func (s *Server) handleSummary(c echo.Context) error {
	return c.JSON(http.StatusOK, s.db.SummaryView())
}

// GET /api/admin/revenue-summary
func (s *Server) handleRevenueSummary(c echo.Context) error {
	return c.JSON(http.StatusOK, echo.Map{"lots": s.db.RevenueView()})
}

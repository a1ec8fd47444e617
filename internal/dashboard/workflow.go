package dashboard

import (
	"time"

	"github.com/iliyamo/parking-reservation-dashboard/internal/model"
)

// WorkflowPhase is the lifecycle of a modal workflow. Booking uses
// Closed → Open → Submitted → Closed; vacate uses Closed → Open →
// Confirmed → Closed, where Confirmed is the deliberate pause that
// keeps the final cost on screen until the user dismisses it.
type WorkflowPhase int

const (
	PhaseClosed WorkflowPhase = iota
	PhaseOpen
	PhaseSubmitted
	PhaseConfirmed
)

// BookingWorkflow is the booking modal's state. VehicleNumber is typed
// by the user while the modal is open; opening always starts with an
// empty field.
type BookingWorkflow struct {
	Phase         WorkflowPhase
	LotID         int
	VehicleNumber string
}

func (w *BookingWorkflow) open(lotID int) {
	w.Phase = PhaseOpen
	w.LotID = lotID
	w.VehicleNumber = ""
}

func (w *BookingWorkflow) close() {
	*w = BookingWorkflow{}
}

// VacateWorkflow is the vacate modal's state. Reservation is the Active
// reservation being released; FinalCost and VacatedAt are filled from
// the backend's response when the workflow reaches Confirmed and must
// be shown exactly as received.
type VacateWorkflow struct {
	Phase       WorkflowPhase
	Reservation model.Reservation
	FinalCost   float64
	VacatedAt   time.Time
}

func (w *VacateWorkflow) open(r model.Reservation) {
	*w = VacateWorkflow{Phase: PhaseOpen, Reservation: r}
}

func (w *VacateWorkflow) confirm(res model.VacateResult) {
	w.Phase = PhaseConfirmed
	w.FinalCost = res.FinalCost
	w.VacatedAt = res.VacatedAt
}

func (w *VacateWorkflow) close() {
	*w = VacateWorkflow{}
}

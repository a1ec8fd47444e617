// Command dashboard is the interactive terminal front-end of the
// parking reservation system. It logs a user in against the configured
// backend, mounts the dashboard controller for their role and maps menu
// commands onto the controller's operations. All state transitions live
// in internal/dashboard; this file is only prompt-and-print glue.
package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/iliyamo/parking-reservation-dashboard/internal/api"
	"github.com/iliyamo/parking-reservation-dashboard/internal/config"
	"github.com/iliyamo/parking-reservation-dashboard/internal/dashboard"
	"github.com/iliyamo/parking-reservation-dashboard/internal/model"
	"github.com/iliyamo/parking-reservation-dashboard/internal/session"
)

type app struct {
	in       *bufio.Scanner
	client   *api.Client
	sessions session.Store
	alert    api.Alerter
}

func main() {
	cfg := config.Load()
	sessions := session.NewFileStore(cfg.SessionFile)
	alert := api.AlerterFunc(func(msg string) { fmt.Println("! " + msg) })
	client := api.New(cfg.APIBaseURL, sessions, alert)

	a := &app{
		in:       bufio.NewScanner(os.Stdin),
		client:   client,
		sessions: sessions,
		alert:    alert,
	}
	ctx := context.Background()

	for {
		ctrl := dashboard.New(client, sessions, alert)
		err := ctrl.Mount(ctx)
		if errors.Is(err, session.ErrUnauthenticated) {
			if !a.loginScreen(ctx) {
				return
			}
			continue
		}
		if err != nil {
			log.Fatal(err)
		}
		if quit := a.run(ctx, ctrl); quit {
			return
		}
	}
}

// loginScreen runs the unauthenticated menu. It returns false when the
// user chooses to quit, true once a session has been saved.
func (a *app) loginScreen(ctx context.Context) bool {
	for {
		fmt.Println("\n[login] commands: login, register, quit")
		switch a.prompt("> ") {
		case "login":
			email := a.prompt("email: ")
			password := a.prompt("password: ")
			u, err := a.client.Login(ctx, email, password)
			if err != nil {
				continue
			}
			s := session.Session{
				Token: u.AuthenticationToken,
				Email: u.Email,
				Name:  u.Uname,
				Roles: u.Roles,
			}
			if err := a.sessions.Save(s); err != nil {
				log.Fatal(err)
			}
			return true
		case "register":
			req := registerPrompt(a)
			if msg, err := a.client.Register(ctx, req); err == nil {
				fmt.Println(msg)
			}
		case "quit":
			return false
		}
	}
}

func (a *app) run(ctx context.Context, ctrl *dashboard.Controller) bool {
	fmt.Printf("\nWelcome, %s\n", ctrl.Session().Name)
	var quit bool
	if ctrl.Role() == session.RoleAdmin {
		quit = a.adminLoop(ctx, ctrl)
	} else {
		quit = a.userLoop(ctx, ctrl)
	}
	if quit {
		return true
	}
	// Reached on logout: clear the session and fall back to login.
	if err := ctrl.Logout(); err != nil {
		log.Fatal(err)
	}
	return false
}

// ----- admin loop -----

func (a *app) adminLoop(ctx context.Context, ctrl *dashboard.Controller) bool {
	ad := ctrl.Admin()
	for {
		a.printLots(ad)
		a.printRoster(ad)
		fmt.Println("commands: add, edit <id>, del <id>, details <id>, spots <id>, stats, refresh, logout, quit")
		cmd, arg := splitCommand(a.prompt("admin> "))
		switch cmd {
		case "add":
			ad.ShowAddForm()
			ad.NewLot.Location = a.prompt("location: ")
			ad.NewLot.Price = a.promptFloat("price per hour: ")
			ad.NewLot.Address = a.prompt("address: ")
			ad.NewLot.Pin = a.prompt("pin code: ")
			ad.NewLot.Spots = a.promptInt("number of spots: ")
			if err := ad.CreateLot(ctx); err != nil {
				ad.CancelForm()
			}
		case "edit":
			id, ok := parseID(arg)
			if !ok || ad.ShowEditForm(id) != nil {
				fmt.Println("unknown lot")
				continue
			}
			buf := ad.EditBuffer
			buf.Location = a.promptDefault("location", buf.Location)
			buf.Price = a.promptFloatDefault("price per hour", buf.Price)
			buf.Address = a.promptDefault("address", buf.Address)
			buf.Pin = a.promptDefault("pin code", buf.Pin)
			buf.Spots = a.promptIntDefault("number of spots", buf.Spots)
			if a.prompt("save changes? (y/n): ") == "y" {
				if err := ad.UpdateLot(ctx); err != nil {
					ad.CancelForm()
				}
			} else {
				ad.CancelForm()
			}
		case "del":
			id, ok := parseID(arg)
			if !ok {
				continue
			}
			confirmed := a.prompt("delete this parking lot? This cannot be undone. (y/n): ") == "y"
			ad.DeleteLot(ctx, id, confirmed)
		case "details":
			if id, ok := parseID(arg); ok {
				ad.ShowLotDetails(id)
				a.printLotDetails(ad)
				ad.CloseLotDetails()
			}
		case "spots":
			if id, ok := parseID(arg); ok {
				if err := ad.InspectSpots(ctx, id); err == nil {
					a.printSpots(ad)
					ad.CloseSpots()
				}
			}
		case "stats":
			if err := ad.OpenStats(ctx); err == nil {
				printChart(ad.OccupancySlot.Current())
				printChart(ad.RevenueSlot.Current())
			}
			a.prompt("press enter to close stats")
			ad.CloseStats()
		case "refresh":
			ad.RefreshLots(ctx)
			ad.RefreshRoster(ctx)
		case "logout":
			return false
		case "quit":
			return true
		}
	}
}

// ----- user loop -----

func (a *app) userLoop(ctx context.Context, ctrl *dashboard.Controller) bool {
	us := ctrl.User()
	for {
		a.printReservations(us)
		a.printUserLots(us)
		fmt.Println("commands: book <lotID>, vacate <resID>, pay <resID>, stats, refresh, logout, quit")
		cmd, arg := splitCommand(a.prompt("user> "))
		switch cmd {
		case "book":
			id, ok := parseID(arg)
			if !ok {
				continue
			}
			us.OpenBooking(id)
			if us.Booking.Phase != dashboard.PhaseOpen {
				fmt.Println("Booking is not available for this lot.")
				continue
			}
			us.Booking.VehicleNumber = a.prompt("vehicle number: ")
			if err := us.ConfirmBooking(ctx); err != nil {
				us.CancelBooking()
			}
		case "vacate":
			id, ok := parseID(arg)
			if !ok {
				continue
			}
			us.OpenVacate(id)
			if us.Vacate.Phase != dashboard.PhaseOpen {
				fmt.Println("No active reservation with that id.")
				continue
			}
			r := us.Vacate.Reservation
			fmt.Printf("Spot %d, vehicle %s, parked since %s\n",
				r.SpotID, r.VehicleNumber, dashboard.FormatIST(r.ParkingTimestamp))
			if a.prompt("release the parking spot? (y/n): ") != "y" {
				us.DismissVacate()
				continue
			}
			if err := us.ConfirmVacate(ctx); err == nil {
				fmt.Printf("Total cost: %s, released at %s\n",
					dashboard.FormatMoney(us.Vacate.FinalCost),
					dashboard.FormatIST(us.Vacate.VacatedAt))
				a.prompt("press enter to close")
			}
			us.DismissVacate()
		case "pay":
			if id, ok := parseID(arg); ok {
				us.PayNow(ctx, id)
			}
		case "stats":
			if err := us.OpenStats(ctx); err == nil {
				printChart(us.ReservationsSlot.Current())
				printChart(us.SpentSlot.Current())
			}
			a.prompt("press enter to go back")
			us.BackToBooking()
		case "refresh":
			us.Refresh(ctx)
		case "logout":
			return false
		case "quit":
			return true
		}
	}
}

// ----- rendering -----

func (a *app) printLots(ad *dashboard.AdminState) {
	fmt.Println("\nAll Parking Lots")
	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tLocation\tPrice\tTotal\tAvailable")
	for _, lot := range ad.Lots {
		fmt.Fprintf(w, "%d\t%s\t%s\t%d\t%d\n",
			lot.ID, lot.Location, dashboard.FormatMoney(lot.Price), lot.TotalSpots, lot.AvailableSpots)
	}
	w.Flush()
}

func (a *app) printRoster(ad *dashboard.AdminState) {
	fmt.Println("\nAll Registered Users")
	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "Email\tName\tCurrent Spot\tStatus")
	for _, u := range ad.Roster {
		spot := "-"
		if u.CurrentSpot != nil {
			spot = strconv.Itoa(*u.CurrentSpot)
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", u.Email, u.Uname, spot, u.Status)
	}
	w.Flush()
}

func (a *app) printLotDetails(ad *dashboard.AdminState) {
	lot := ad.SelectedLot
	if lot == nil {
		fmt.Println("unknown lot")
		return
	}
	fmt.Printf("\nLocation: %s\nPrice: %s\nAddress: %s\nPin Code: %s\nTotal Spots: %d\nAvailable Spots: %d\nOccupied Spots: %d\n",
		lot.Location, dashboard.FormatMoney(lot.Price), lot.Address, lot.Pin,
		lot.TotalSpots, lot.AvailableSpots, lot.OccupiedSpots)
}

func (a *app) printSpots(ad *dashboard.AdminState) {
	fmt.Printf("\nParking Spots for %s\n", ad.SpotsLotName)
	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "Spot\tStatus\tVehicle\tUser Email\tParked Since")
	for _, sp := range ad.Spots {
		vehicle, email := sp.VehicleNumber, sp.UserEmail
		if vehicle == "" {
			vehicle = "-"
		}
		if email == "" {
			email = "-"
		}
		fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%s\n",
			sp.ID, sp.Status, vehicle, email, dashboard.FormatISTPtr(sp.ParkedSince))
	}
	w.Flush()
}

func (a *app) printReservations(us *dashboard.UserState) {
	fmt.Println("\nMy Reservations")
	if len(us.Reservations) == 0 {
		fmt.Println("You have no past or active reservations.")
		return
	}
	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tStatus\tParking Lot\tVehicle\tParking Time\tRelease Time\tCost")
	for _, r := range us.Reservations {
		fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%s\t%s\t%s\n",
			r.ReservationID, r.Status, r.LotLocation, r.VehicleNumber,
			dashboard.FormatIST(r.ParkingTimestamp),
			dashboard.FormatISTPtr(r.ReleaseTimestamp),
			dashboard.FormatCostPtr(r.ParkingCost))
	}
	w.Flush()
}

func (a *app) printUserLots(us *dashboard.UserState) {
	fmt.Println("\nAvailable Parking Lots")
	if len(us.Lots) == 0 {
		fmt.Println("No parking lots available at the moment. Please check back later.")
		return
	}
	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tLocation\tPrice/hr\tAvailable\tBookable")
	for _, lot := range us.Lots {
		bookable := "no"
		if us.CanBook(lot) {
			bookable = "yes"
		}
		fmt.Fprintf(w, "%d\t%s\t%s\t%d\t%s\n",
			lot.ID, lot.Location, dashboard.FormatMoney(lot.Price), lot.AvailableSpots, bookable)
	}
	w.Flush()
}

func printChart(c *dashboard.Chart) {
	for _, row := range c.Rows() {
		fmt.Println(row)
	}
	fmt.Println()
}

// ----- prompt helpers -----

func (a *app) prompt(label string) string {
	fmt.Print(label)
	if !a.in.Scan() {
		return "quit"
	}
	return strings.TrimSpace(a.in.Text())
}

func (a *app) promptDefault(label, def string) string {
	v := a.prompt(fmt.Sprintf("%s [%s]: ", label, def))
	if v == "" {
		return def
	}
	return v
}

func (a *app) promptFloat(label string) float64 {
	f, _ := strconv.ParseFloat(a.prompt(label), 64)
	return f
}

func (a *app) promptFloatDefault(label string, def float64) float64 {
	v := a.prompt(fmt.Sprintf("%s [%g]: ", label, def))
	if v == "" {
		return def
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return def
	}
	return f
}

func (a *app) promptInt(label string) int {
	n, _ := strconv.Atoi(a.prompt(label))
	return n
}

func (a *app) promptIntDefault(label string, def int) int {
	v := a.prompt(fmt.Sprintf("%s [%d]: ", label, def))
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return def
	}
	return n
}

func splitCommand(line string) (string, string) {
	parts := strings.Fields(line)
	if len(parts) == 0 {
		return "", ""
	}
	if len(parts) == 1 {
		return parts[0], ""
	}
	return parts[0], parts[1]
}

func parseID(arg string) (int, bool) {
	id, err := strconv.Atoi(arg)
	return id, err == nil && id > 0
}

func registerPrompt(a *app) model.RegisterRequest {
	return model.RegisterRequest{
		Email:    a.prompt("email: "),
		Uname:    a.prompt("username: "),
		Password: a.prompt("password: "),
	}
}

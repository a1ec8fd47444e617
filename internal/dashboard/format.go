package dashboard

import (
	"fmt"
	"time"
)

// ist is the display timezone for every timestamp, matching the
// deployment's audience. LoadLocation needs tzdata on the host; the
// fixed offset fallback keeps formatting working without it.
var ist = func() *time.Location {
	loc, err := time.LoadLocation("Asia/Kolkata")
	if err != nil {
		return time.FixedZone("IST", 5*3600+1800)
	}
	return loc
}()

// FormatIST renders a timestamp in Indian Standard Time.
func FormatIST(t time.Time) string {
	return t.In(ist).Format("02/01/2006, 03:04:05 pm")
}

// FormatISTPtr renders an optional timestamp, "-" when absent.
func FormatISTPtr(t *time.Time) string {
	if t == nil {
		return "-"
	}
	return FormatIST(*t)
}

// FormatMoney renders an amount in rupees.
func FormatMoney(amount float64) string {
	return fmt.Sprintf("₹%.2f", amount)
}

// FormatCostPtr renders an optional cost, "N/A" when the backend has
// not priced the reservation yet.
func FormatCostPtr(cost *float64) string {
	if cost == nil {
		return "N/A"
	}
	return FormatMoney(*cost)
}

// MonthLabel turns a backend "YYYY-MM" month key into a human label
// like "July 2025". Unparseable keys pass through untouched.
func MonthLabel(month string) string {
	t, err := time.Parse("2006-01", month)
	if err != nil {
		return month
	}
	return t.Format("January 2006")
}

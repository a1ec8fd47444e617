package dashboard

import (
	"fmt"
	"strings"
)

// ChartKind selects how a chart is drawn.
type ChartKind string

const (
	ChartDoughnut ChartKind = "doughnut"
	ChartBar      ChartKind = "bar"
)

// Chart is an owned render handle: one dataset bound to one on-screen
// canvas. A handle stays live until Destroy is called; drawing a
// destroyed handle yields nothing.
type Chart struct {
	Kind      ChartKind
	Title     string
	Labels    []string
	Values    []float64
	destroyed bool
}

// Destroy releases the handle. Idempotent.
func (c *Chart) Destroy() { c.destroyed = true }

// Destroyed reports whether the handle has been released.
func (c *Chart) Destroyed() bool { return c.destroyed }

// Rows renders the chart as text lines for the terminal, one label per
// row with a proportional bar. A destroyed chart renders nothing.
func (c *Chart) Rows() []string {
	if c == nil || c.destroyed {
		return nil
	}
	max := 0.0
	for _, v := range c.Values {
		if v > max {
			max = v
		}
	}
	rows := make([]string, 0, len(c.Labels)+1)
	rows = append(rows, c.Title)
	for i, label := range c.Labels {
		v := 0.0
		if i < len(c.Values) {
			v = c.Values[i]
		}
		width := 0
		if max > 0 {
			width = int(v / max * 40)
		}
		rows = append(rows, fmt.Sprintf("%-20s %s %.2f", label, strings.Repeat("#", width), v))
	}
	return rows
}

// ChartSlot owns at most one live chart for one canvas. Every stats view
// re-entry renders through the slot, which destroys the previous handle
// before installing the new one; that ordering is the whole point of the
// type and must never be bypassed by assigning a Chart anywhere else.
type ChartSlot struct {
	current *Chart
}

// Render disposes the slot's current chart, if any, then installs and
// returns a fresh one.
func (s *ChartSlot) Render(kind ChartKind, title string, labels []string, values []float64) *Chart {
	if s.current != nil {
		s.current.Destroy()
	}
	s.current = &Chart{Kind: kind, Title: title, Labels: labels, Values: values}
	return s.current
}

// Current returns the live chart, or nil when nothing has been rendered.
func (s *ChartSlot) Current() *Chart { return s.current }

// Clear destroys and drops the current chart.
func (s *ChartSlot) Clear() {
	if s.current != nil {
		s.current.Destroy()
		s.current = nil
	}
}

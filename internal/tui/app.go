// Package tui renders engine snapshots as a terminal dashboard.
package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/tidemarsh/floodwatch/internal/domain"
	"github.com/tidemarsh/floodwatch/internal/engine"
)

const (
	nameColWidth  = 32
	sparkColWidth = 20
	alertRows     = 5
)

type frameMsg engine.Snapshot

// Model is the bubbletea model. It consumes snapshot frames from the
// engine's subscription channel and renders the latest one.
type Model struct {
	frames <-chan engine.Snapshot

	snap   engine.Snapshot
	seen   bool
	paused bool
	width  int
}

// NewModel creates a TUI model over a snapshot subscription.
func NewModel(frames <-chan engine.Snapshot) Model {
	return Model{frames: frames}
}

func (m Model) Init() tea.Cmd {
	return waitForFrame(m.frames)
}

func waitForFrame(frames <-chan engine.Snapshot) tea.Cmd {
	return func() tea.Msg {
		snap, ok := <-frames
		if !ok {
			return tea.Quit()
		}
		return frameMsg(snap)
	}
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		return m, nil

	case frameMsg:
		// Keep draining while paused so the engine never sees a stalled
		// subscriber; only the display freezes.
		if !m.paused {
			m.snap = engine.Snapshot(msg)
			m.seen = true
		}
		return m, waitForFrame(m.frames)

	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		case "a":
			m.paused = !m.paused
		}
	}
	return m, nil
}

func (m Model) View() string {
	if !m.seen {
		return "\n  " + labelStyle.Render("waiting for the first cycle...") + "\n"
	}

	var b strings.Builder
	b.WriteString(m.renderHeader())
	b.WriteString("\n\n")
	b.WriteString(m.renderStations())
	b.WriteString("\n")
	b.WriteString(m.renderAlerts())
	b.WriteString("\n")
	b.WriteString(helpStyle.Render("q quit · a pause"))
	if m.paused {
		b.WriteString("  " + watchStyle.Render("PAUSED"))
	}
	b.WriteString("\n")
	return b.String()
}

func (m Model) renderHeader() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("floodwatch"))
	b.WriteString(labelStyle.Render(" · live water levels"))
	b.WriteString(labelStyle.Render(fmt.Sprintf("    updated %s", m.snap.LastUpdated.Format("15:04:05"))))
	b.WriteString("\n")
	b.WriteString(valueStyle.Render(fmt.Sprintf("%d stations", m.snap.TotalStations)))
	b.WriteString(labelStyle.Render(" · "))
	b.WriteString(valueStyle.Render(fmt.Sprintf("%d online", m.snap.OnlineCount)))
	b.WriteString(labelStyle.Render(" · "))
	b.WriteString(valueStyle.Render(fmt.Sprintf("%d logged alerts", m.snap.AlertLogSize)))
	return b.String()
}

// nameWidth shrinks the station column on narrow terminals.
func (m Model) nameWidth() int {
	if m.width > 0 && m.width < 92 {
		return 20
	}
	return nameColWidth
}

func (m Model) renderStations() string {
	nameW := m.nameWidth()

	var b strings.Builder
	b.WriteString(labelStyle.Render(fmt.Sprintf("%-8s%-*s%7s%8s  %-*s%s",
		"ID", nameW, "STATION", "LEVEL", "Δ", sparkColWidth, "TREND", "STATUS")))
	b.WriteString("\n")

	for _, st := range m.snap.Stations {
		delta := st.Level - st.PrevLevel

		var trendVals []float64
		for _, p := range m.snap.Series[st.ID] {
			trendVals = append(trendVals, p.Value)
		}
		trend := sparkline(trendVals, sparkColWidth)

		b.WriteString(fmt.Sprintf("%-8s", st.ID))
		b.WriteString(fmt.Sprintf("%-*s", nameW, truncate(st.Name, nameW-1)))
		b.WriteString(fmt.Sprintf("%7.2f", st.Level))
		b.WriteString(fmt.Sprintf("%+8.2f", delta))
		b.WriteString("  ")
		b.WriteString(statusStyle(st.Status).Render(fmt.Sprintf("%-*s", sparkColWidth, trend)))
		b.WriteString(m.renderStatus(st))
		b.WriteString("\n")
	}
	return b.String()
}

func (m Model) renderStatus(st domain.Station) string {
	if !st.Online {
		return offlineStyle.Render("OFFLINE")
	}
	switch st.Status {
	case domain.StatusAlert:
		return alertStyle.Render("ALERT")
	case domain.StatusWatch:
		return watchStyle.Render("WATCH")
	default:
		return okStyle.Render("OK")
	}
}

func (m Model) renderAlerts() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("recent alerts"))
	b.WriteString("\n")

	if len(m.snap.RecentAlerts) == 0 {
		b.WriteString(labelStyle.Render("(none yet)"))
		b.WriteString("\n")
		return b.String()
	}

	rows := m.snap.RecentAlerts
	if len(rows) > alertRows {
		rows = rows[:alertRows]
	}
	for _, ev := range rows {
		b.WriteString(labelStyle.Render(ev.Timestamp.Format("15:04:05")))
		b.WriteString("  ")
		b.WriteString(statusStyle(ev.Kind).Render(fmt.Sprintf("%-5s", strings.ToUpper(string(ev.Kind)))))
		b.WriteString("  ")
		b.WriteString(valueStyle.Render(fmt.Sprintf("%-*s", nameColWidth, truncate(ev.StationName, nameColWidth-1))))
		b.WriteString(valueStyle.Render(fmt.Sprintf("%.2f", ev.Level)))
		b.WriteString(labelStyle.Render(fmt.Sprintf(" (%+.2f)", ev.Delta)))
		b.WriteString("\n")
	}
	return b.String()
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	if n < 1 {
		return ""
	}
	return s[:n-1] + "…"
}

// SPDX-License-Identifier: GPL-2.0-or-later
// Copyright (c) 2026 Harry Dehix

package cmd

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/harrydehix/vantgo/pkg/realtime"
	"github.com/harrydehix/vantgo/pkg/vantage"
)

var watchInterval time.Duration

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Live dashboard of the console's realtime data",
	Long: `Opens the console and renders a live dashboard that refreshes on
the configured interval. On a Vantage Pro 2 the dashboard shows the merged
LOOP1+LOOP2 record; other models show LOOP1 data.

Press q to quit.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		model, err := vantage.ParseModel(modelName)
		if err != nil {
			return err
		}

		transport, description, err := openTransport()
		if err != nil {
			return err
		}

		container, err := realtime.New(realtime.Settings{
			UpdateInterval: watchInterval,
			OnCreate:       realtime.DoNothing,
		},
			realtime.WithLogger(newLogger()),
			realtime.WithStationFactory(func() (realtime.Station, error) {
				return realtime.NewDeviceStation(vantage.NewDevice(model, transport)), nil
			}),
		)
		if err != nil {
			return err
		}
		defer container.Close()

		events := make(chan watchEvent, 16)
		forward := func(kind realtime.Event) func(error) {
			return func(err error) {
				select {
				case events <- watchEvent{kind: kind, err: err}:
				default:
				}
			}
		}
		container.On(realtime.EventOpen, forward(realtime.EventOpen))
		container.On(realtime.EventUpdate, forward(realtime.EventUpdate))
		container.On(realtime.EventClose, forward(realtime.EventClose))

		if err := container.Open(context.Background()); err != nil {
			return err
		}

		program := tea.NewProgram(newWatchModel(container, description, events))
		_, err = program.Run()
		return err
	},
}

func init() {
	watchCmd.Flags().DurationVarP(&watchInterval, "interval", "i", 10*time.Second, "Refresh interval")
	rootCmd.AddCommand(watchCmd)
}

// ============================================================
// Bubbletea model
// ============================================================

type watchEvent struct {
	kind realtime.Event
	err  error
}

var (
	titleStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("15")).Background(lipgloss.Color("25")).Padding(0, 1)
	labelStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("245")).Width(16)
	valueStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("252"))
	errorStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
	footerStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	boxStyle    = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("238")).Padding(0, 1)
)

type watchModel struct {
	container   *realtime.Container
	description string
	events      chan watchEvent

	spinner   spinner.Model
	connected bool
	lastErr   error
	record    vantage.Record
	updatedAt time.Time
}

func newWatchModel(container *realtime.Container, description string, events chan watchEvent) watchModel {
	s := spinner.New()
	s.Spinner = spinner.Dot
	return watchModel{
		container:   container,
		description: description,
		events:      events,
		spinner:     s,
	}
}

func (m watchModel) nextEvent() tea.Cmd {
	return func() tea.Msg {
		return <-m.events
	}
}

func (m watchModel) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, m.nextEvent())
}

func (m watchModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		}
		return m, nil

	case watchEvent:
		switch msg.kind {
		case realtime.EventOpen:
			m.connected = true
		case realtime.EventUpdate:
			m.lastErr = msg.err
			if msg.err == nil {
				m.record, m.updatedAt = m.container.LatestRecord()
			}
		case realtime.EventClose:
			m.connected = false
		}
		return m, m.nextEvent()

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m watchModel) View() string {
	title := titleStyle.Render("vantctl watch") + "  " + footerStyle.Render(m.description)

	var body string
	switch {
	case m.record == nil && m.lastErr != nil:
		body = errorStyle.Render(fmt.Sprintf("no data yet: %v", m.lastErr))
	case m.record == nil:
		body = m.spinner.View() + " waking the console..."
	default:
		body = m.renderReadings()
	}

	status := ""
	if m.record != nil {
		status = footerStyle.Render(fmt.Sprintf("updated %s", m.updatedAt.Format("15:04:05")))
		if !m.connected {
			status += "  " + m.spinner.View() + errorStyle.Render("reconnecting")
		}
		if m.lastErr != nil {
			status += "  " + errorStyle.Render(fmt.Sprintf("last cycle failed: %v", m.lastErr))
		}
	}

	footer := footerStyle.Render("q: quit")
	return title + "\n\n" + boxStyle.Render(body) + "\n" + status + "\n" + footer + "\n"
}

func (m watchModel) renderReadings() string {
	rec := m.record

	rows := []struct {
		label string
		value string
	}{
		{"Temperature", reading(rec.Child("temperature")["out"], "°F")},
		{"Inside temp", reading(rec.Child("temperature")["in"], "°F")},
		{"Humidity", reading(rec.Child("humidity")["out"], "%")},
		{"Wind", reading(rec.Child("wind")["current"], " mph")},
		{"Wind direction", reading(rec.Child("wind")["direction"], "°")},
		{"Pressure", reading(rec.Child("pressure")["current"], " inHg")},
		{"Rain rate", reading(rec.Child("rain")["rate"], " in/h")},
		{"Rain today", reading(rec.Child("rain")["day"], " in")},
		{"UV index", reading(rec["uv"], "")},
		{"Sunrise", reading(rec["sunrise"], "")},
		{"Sunset", reading(rec["sunset"], "")},
	}

	out := ""
	for _, row := range rows {
		out += labelStyle.Render(row.label) + valueStyle.Render(row.value) + "\n"
	}
	return out
}

// reading formats a record leaf for display, rendering absent sensors as
// dashes.
func reading(v any, unit string) string {
	switch value := v.(type) {
	case nil:
		return "--"
	case float64:
		return fmt.Sprintf("%.2f%s", value, unit)
	case int64:
		return fmt.Sprintf("%d%s", value, unit)
	case string:
		return value + unit
	default:
		return fmt.Sprintf("%v%s", value, unit)
	}
}

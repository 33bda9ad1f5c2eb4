// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/matt-FFFFFF/fanrun/internal/progress"
	"github.com/matt-FFFFFF/fanrun/internal/report"
)

// ItemStatus represents the displayed state of an item.
type ItemStatus int

const (
	// StatusPending means the item is still queued.
	StatusPending ItemStatus = iota
	// StatusRunning means the item occupies a worker slot.
	StatusRunning
	// StatusSuccess means the item completed successfully.
	StatusSuccess
	// StatusFailed means the item failed.
	StatusFailed
)

// String returns a string representation of the item status.
func (s ItemStatus) String() string {
	switch s {
	case StatusPending:
		return "pending"
	case StatusRunning:
		return "running"
	case StatusSuccess:
		return "success"
	case StatusFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// EventMsg wraps a progress event for delivery to the TUI program.
type EventMsg struct {
	Event progress.Event
}

// DoneMsg signals that the run has finished.
type DoneMsg struct {
	Summary *report.Summary
	Err     error
}

var (
	headerStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12"))
	successStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	failedStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
	pendingStyle = lipgloss.NewStyle().Faint(true)
	detailStyle  = lipgloss.NewStyle().Faint(true)
	footerStyle  = lipgloss.NewStyle().MarginTop(1)
)

// Model is the bubbletea model showing one line per item.
type Model struct {
	items   []string
	status  map[string]ItemStatus
	detail  map[string]string
	spinner spinner.Model
	start   time.Time
	done    bool
	summary *report.Summary
}

// NewModel creates a model for the given items, all initially pending.
func NewModel(items []string) *Model {
	sp := spinner.New(spinner.WithSpinner(spinner.Dot))

	status := make(map[string]ItemStatus, len(items))
	for _, item := range items {
		status[item] = StatusPending
	}

	return &Model{
		items:   items,
		status:  status,
		detail:  make(map[string]string, len(items)),
		spinner: sp,
		start:   time.Now(),
	}
}

// Init implements tea.Model.
func (m *Model) Init() tea.Cmd {
	return m.spinner.Tick
}

// Update implements tea.Model.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		}

	case spinner.TickMsg:
		if m.done {
			return m, nil
		}

		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)

		return m, cmd

	case EventMsg:
		m.apply(msg.Event)

		return m, nil

	case DoneMsg:
		m.done = true
		m.summary = msg.Summary

		return m, tea.Quit
	}

	return m, nil
}

func (m *Model) apply(e progress.Event) {
	switch e.Type {
	case progress.EventInitiated:
		m.status[e.Item] = StatusRunning
		m.detail[e.Item] = e.Message
	case progress.EventCompleted:
		m.status[e.Item] = StatusSuccess
	case progress.EventFailed:
		m.status[e.Item] = StatusFailed
		if e.Abnormal {
			m.detail[e.Item] = "abnormal termination"
		}
	}
}

// View implements tea.Model.
func (m *Model) View() string {
	sb := strings.Builder{}
	sb.WriteString(headerStyle.Render("fanrun"))
	sb.WriteString("\n\n")

	for _, item := range m.items {
		switch m.status[item] {
		case StatusPending:
			sb.WriteString(pendingStyle.Render("  • " + item))
		case StatusRunning:
			sb.WriteString("  " + m.spinner.View() + " " + item)
		case StatusSuccess:
			sb.WriteString(successStyle.Render("  ✓ " + item))
		case StatusFailed:
			sb.WriteString(failedStyle.Render("  ✗ " + item))
		}

		if d := m.detail[item]; d != "" && m.status[item] != StatusSuccess {
			sb.WriteString(detailStyle.Render("  " + d))
		}

		sb.WriteString("\n")
	}

	sb.WriteString(footerStyle.Render(m.footer()))
	sb.WriteString("\n")

	return sb.String()
}

func (m *Model) footer() string {
	if m.done && m.summary != nil {
		return "done: " + report.FormatElapsed(m.summary.Elapsed)
	}

	succeeded, failed := 0, 0

	for _, s := range m.status {
		switch s {
		case StatusSuccess:
			succeeded++
		case StatusFailed:
			failed++
		}
	}

	return strings.Join([]string{
		fmt.Sprintf("%d/%d done, %d failed", succeeded+failed, len(m.items), failed),
		"elapsed " + report.FormatElapsed(time.Since(m.start)),
		"press q to abort",
	}, " · ")
}

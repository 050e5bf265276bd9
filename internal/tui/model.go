// Package tui provides the Bubble Tea record browser.
package tui

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/sirupsen/logrus"

	"github.com/verte-zerg/trainlog/internal/journal"
	"github.com/verte-zerg/trainlog/internal/model"
)

type mode int

const (
	modeBrowse mode = iota
	modeAdd
	modeEdit
	modeFilter
	modeConfirmDelete
)

var (
	titleStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#F0F0F0")).Bold(true)
	headerStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#6E6E6E"))
	statusStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#C89A3A"))
	errorStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF4D4F"))
	modalStyle  = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder(), true).
			BorderForeground(lipgloss.Color("#C89A3A")).
			Padding(1, 2)
)

// Model implements the Bubble Tea record browser.
type Model struct {
	journal *journal.Journal
	filter  model.ListFilter
	records model.Collection
	table   table.Model

	mode    mode
	form    form
	editing model.Key

	status string
	errMsg string

	width  int
	height int
}

// NewModel constructs a browser over j showing the records selected by filter.
func NewModel(j *journal.Journal, filter model.ListFilter) *Model {
	m := &Model{
		journal: j,
		filter:  filter,
		table: table.New(
			table.WithColumns(recordColumns(80)),
			table.WithFocused(true),
			table.WithHeight(10),
		),
	}
	m.table.SetStyles(tableStyles())
	m.reload()
	return m
}

// Init implements tea.Model.
func (m *Model) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.updateLayout()
		return m, nil
	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC {
			return m, tea.Quit
		}
		switch m.mode {
		case modeAdd, modeEdit, modeFilter:
			return m.updateForm(msg)
		case modeConfirmDelete:
			return m.updateConfirm(msg)
		}
		return m.updateBrowse(msg)
	}
	return m, nil
}

// View implements tea.Model.
func (m *Model) View() string {
	if m.width == 0 || m.height == 0 {
		return ""
	}
	headerHeight, bodyHeight, footerHeight := m.layoutHeights()
	header := fitLines(m.renderHeader(), m.width, headerHeight)
	body := fitLines(m.renderBody(bodyHeight), m.width, bodyHeight)
	footer := fitLines(m.renderFooter(), m.width, footerHeight)
	return strings.Join([]string{header, body, footer}, "\n")
}

func (m *Model) updateBrowse(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q":
		return m, tea.Quit
	case "a":
		return m.startForm(modeAdd)
	case "e", "enter":
		if _, ok := m.selected(); !ok {
			m.setError(model.ErrNoSelection)
			return m, nil
		}
		return m.startForm(modeEdit)
	case "d", "delete":
		if _, ok := m.selected(); !ok {
			m.setError(model.ErrNoSelection)
			return m, nil
		}
		m.mode = modeConfirmDelete
		return m, nil
	case "/":
		return m.startForm(modeFilter)
	case "c":
		m.filter = model.ListFilter{}
		m.status = "Filter cleared"
		m.reload()
		return m, nil
	case "r":
		m.status = "Reloaded"
		m.reload()
		return m, nil
	}
	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

func (m *Model) updateConfirm(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "y", "Y":
		rec, ok := m.selected()
		m.mode = modeBrowse
		if !ok {
			m.setError(model.ErrNoSelection)
			return m, nil
		}
		removed, err := m.journal.Delete(context.Background(), rec.Key())
		if err != nil {
			m.setError(err)
			return m, nil
		}
		m.status = fmt.Sprintf("Deleted %d record(s)", removed)
		m.errMsg = ""
		m.reload()
	case "n", "N", "esc", "q":
		m.mode = modeBrowse
		m.status = "Delete cancelled"
	}
	return m, nil
}

func (m *Model) startForm(next mode) (tea.Model, tea.Cmd) {
	switch next {
	case modeAdd:
		m.form = newForm("Add record", []string{"Exercise: ", "Weight: ", "Reps: "}, nil)
	case modeEdit:
		rec, _ := m.selected()
		m.editing = rec.Key()
		m.form = newForm("Edit record",
			[]string{"Date: ", "Exercise: ", "Weight: ", "Reps: "},
			[]string{rec.Date, rec.Exercise, rec.Weight, rec.Repetitions})
	case modeFilter:
		m.form = newForm("Filter (empty fields are ignored)",
			[]string{"From (YYYY-MM-DD): ", "To (YYYY-MM-DD): ", "Exercise: "},
			[]string{m.filter.From, m.filter.To, m.filter.Exercise})
	}
	m.mode = next
	m.form.setWidth(modalInnerWidth(m.width))
	return m, m.form.focus(0)
}

func (m *Model) updateForm(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEsc:
		m.mode = modeBrowse
		return m, nil
	case tea.KeyEnter:
		if err := m.submitForm(); err != nil {
			m.form.err = err.Error()
			return m, nil
		}
		m.mode = modeBrowse
		m.errMsg = ""
		m.reload()
		return m, nil
	}
	return m, m.form.update(msg)
}

func (m *Model) submitForm() error {
	values := m.form.values()
	ctx := context.Background()
	switch m.mode {
	case modeAdd:
		rec, err := m.journal.Add(ctx, values[0], values[1], values[2])
		if err != nil {
			return err
		}
		m.status = fmt.Sprintf("Added %s %sx%s", rec.Exercise, rec.Weight, rec.Repetitions)
	case modeEdit:
		for _, v := range values {
			if v == "" {
				return model.ErrEmptyField
			}
		}
		fields := model.Fields{Date: &values[0], Exercise: &values[1], Weight: &values[2], Repetitions: &values[3]}
		rec, err := m.journal.Edit(ctx, m.editing, fields)
		if err != nil {
			return err
		}
		m.status = fmt.Sprintf("Updated %s", rec.Exercise)
	case modeFilter:
		next := model.ListFilter{From: values[0], To: values[1], Exercise: values[2]}
		if _, err := m.journal.List(ctx, next); err != nil {
			return err
		}
		m.filter = next
		m.status = "Filter applied"
	}
	return nil
}

// reload re-reads the filtered records and keeps the cursor in range.
func (m *Model) reload() {
	records, err := m.journal.List(context.Background(), m.filter)
	if err != nil {
		m.setError(err)
		return
	}
	m.records = records
	rows := make([]table.Row, len(records))
	for i, r := range records {
		rows[i] = table.Row{fmt.Sprintf("%d", i+1), r.Date, r.Exercise, r.Weight, r.Repetitions}
	}
	m.table.SetRows(rows)
	if cursor := m.table.Cursor(); cursor >= len(rows) {
		m.table.SetCursor(max(0, len(rows)-1))
	}
}

func (m *Model) selected() (model.Record, bool) {
	idx := m.table.Cursor()
	if idx < 0 || idx >= len(m.records) {
		return model.Record{}, false
	}
	return m.records[idx], true
}

func (m *Model) setError(err error) {
	m.errMsg = err.Error()
	if !errors.Is(err, model.ErrNoSelection) {
		logrus.WithError(err).Warn("browser action failed")
	}
}

func (m *Model) layoutHeights() (headerHeight, bodyHeight, footerHeight int) {
	headerHeight = 2
	footerHeight = 2
	bodyHeight = max(1, m.height-headerHeight-footerHeight)
	return headerHeight, bodyHeight, footerHeight
}

func (m *Model) updateLayout() {
	if m.width <= 0 || m.height <= 0 {
		return
	}
	_, bodyHeight, _ := m.layoutHeights()
	m.table.SetColumns(recordColumns(m.width))
	m.table.SetWidth(m.width)
	m.table.SetHeight(max(1, bodyHeight-1))
	m.form.setWidth(modalInnerWidth(m.width))
}

func (m *Model) renderHeader() string {
	title := titleStyle.Render(fmt.Sprintf("trainlog  %d record(s)", len(m.records)))
	return title + "\n" + headerStyle.Render(truncateLine(m.filterSummary(), m.width))
}

func (m *Model) filterSummary() string {
	from, to, exercise := m.filter.From, m.filter.To, m.filter.Exercise
	if from == "" {
		from = "any"
	}
	if to == "" {
		to = "today"
	}
	if exercise == "" {
		exercise = "any"
	}
	return fmt.Sprintf("Filter: from=%s  to=%s  exercise=%s", from, to, exercise)
}

func (m *Model) renderBody(height int) string {
	switch m.mode {
	case modeAdd, modeEdit, modeFilter:
		return m.renderModal(m.form.view(), height)
	case modeConfirmDelete:
		rec, _ := m.selected()
		prompt := fmt.Sprintf("Delete %s %sx%s from %s?\n\n%s",
			rec.Exercise, rec.Weight, rec.Repetitions, rec.Date,
			headerStyle.Render("y: delete  n/esc: cancel"))
		return m.renderModal(prompt, height)
	}
	if len(m.records) == 0 {
		return "No records found. Press a to add one."
	}
	return m.table.View()
}

func (m *Model) renderModal(content string, height int) string {
	box := modalStyle.Width(modalWidth(m.width)).Render(content)
	return lipgloss.Place(m.width, height, lipgloss.Center, lipgloss.Center, box)
}

func (m *Model) renderFooter() string {
	help := "a: add  e: edit  d: delete  /: filter  c: clear  r: reload  q: quit"
	if m.mode == modeAdd || m.mode == modeEdit || m.mode == modeFilter {
		help = "tab/shift+tab: next field  enter: save  esc: cancel"
	}
	line := headerStyle.Render(truncateLine(help, m.width))
	switch {
	case m.errMsg != "":
		return line + "\n" + errorStyle.Render(truncateLine(m.errMsg, m.width))
	case m.status != "":
		return line + "\n" + statusStyle.Render(truncateLine(m.status, m.width))
	}
	return line
}

func recordColumns(width int) []table.Column {
	const (
		indexWidth  = 5
		dateWidth   = 19
		weightWidth = 8
		repsWidth   = 6
		padding     = 5
	)
	exerciseWidth := max(10, width-indexWidth-dateWidth-weightWidth-repsWidth-padding)
	return []table.Column{
		{Title: "#", Width: indexWidth},
		{Title: "Date", Width: dateWidth},
		{Title: "Exercise", Width: exerciseWidth},
		{Title: "Weight", Width: weightWidth},
		{Title: "Reps", Width: repsWidth},
	}
}

func tableStyles() table.Styles {
	styles := table.DefaultStyles()
	styles.Header = styles.Header.
		Border(lipgloss.NormalBorder(), false, false, true, false).
		BorderForeground(lipgloss.Color("#4A4A4A")).
		Foreground(lipgloss.Color("#C0C0C0")).
		Bold(true).
		PaddingLeft(0)
	styles.Cell = styles.Cell.PaddingLeft(0)
	styles.Selected = styles.Selected.
		Foreground(lipgloss.Color("#F0F0F0")).
		Background(lipgloss.Color("#4A4A4A")).
		Bold(true)
	return styles
}

func modalWidth(width int) int {
	return max(40, min(width-4, 80))
}

func modalInnerWidth(width int) int {
	return max(10, modalWidth(width)-6) // 2 border + 4 padding
}

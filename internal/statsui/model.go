// Package statsui provides the Bubble Tea stats interface.
package statsui

import (
	"bytes"
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/cursor"
	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/verte-zerg/trainlog/internal/model"
	"github.com/verte-zerg/trainlog/internal/query"
	"github.com/verte-zerg/trainlog/internal/stats"
)

const (
	tabOverview = iota
	tabExercises
	tabProgress
)

const defaultPlotHeight = 10

var (
	activeNavStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#F0F0F0")).
			Bold(true).
			Padding(0, 1).
			Border(lipgloss.RoundedBorder(), true).
			BorderForeground(lipgloss.Color("#C89A3A"))
	inactiveNavStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("#B0B0B0")).
				Padding(0, 1).
				Border(lipgloss.RoundedBorder(), true).
				BorderForeground(lipgloss.Color("#4A4A4A"))
	headerStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#6E6E6E"))
	errorStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF4D4F"))
	cardStyle   = lipgloss.NewStyle().
			Padding(0, 1).
			Border(lipgloss.RoundedBorder(), true).
			BorderForeground(lipgloss.Color("#4A4A4A"))
	cardTitleStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#8C8C8C"))
	cardValueStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#F0F0F0")).Bold(true)
	tableMutedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#B8B8B8"))
	modalStyle      = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder(), true).
			BorderForeground(lipgloss.Color("#C89A3A")).
			Padding(1, 2)
)

// Model implements the Bubble Tea stats UI.
type Model struct {
	source     stats.Source
	cfg        model.StatsConfig
	plotHeight int

	report stats.Report
	errMsg string

	tabs          []string
	activeTab     int
	viewports     []viewport.Model
	exerciseTable table.Model

	width  int
	height int

	filterMode   bool
	filterInputs []textinput.Model
	filterIndex  int
	filterError  string

	selected       string
	selectedCustom bool

	pickMode  bool
	pickInput textinput.Model
}

// NewModel constructs a stats UI model. plotHeight <= 0 uses the default.
func NewModel(src stats.Source, cfg model.StatsConfig, plotHeight int) *Model {
	if plotHeight <= 0 {
		plotHeight = defaultPlotHeight
	}
	if cfg.CurveWindow < 1 {
		cfg.CurveWindow = 1
	}
	m := &Model{
		source:     src,
		cfg:        cfg,
		plotHeight: plotHeight,
		tabs:       []string{"Overview", "Exercises", "Progress"},
	}
	m.initInputs()
	m.pickInput = newInput("Exercise: ")
	m.pickInput.Placeholder = "exact name"
	m.exerciseTable = table.New(
		table.WithColumns(exerciseColumns()),
		table.WithHeight(1),
	)
	m.exerciseTable.SetStyles(exerciseTableStyles())
	m.viewports = make([]viewport.Model, len(m.tabs))
	for i := range m.viewports {
		m.viewports[i] = viewport.New(0, 0)
	}
	m.refreshReport()
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
		m.renderTabContents()
		return m, nil
	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC {
			return m, tea.Quit
		}
		if m.filterMode {
			return m.updateFilter(msg)
		}
		if m.pickMode {
			return m.updatePick(msg)
		}
		switch msg.String() {
		case "q":
			return m, tea.Quit
		case "left", "h":
			m.moveTab(-1)
			return m, tea.ClearScreen
		case "right", "l":
			m.moveTab(1)
			return m, tea.ClearScreen
		case "=":
			m.cfg.CurveWindow = nextCurveWindow(m.cfg.CurveWindow)
			m.renderTabContents()
			return m, nil
		case "-":
			m.cfg.CurveWindow = prevCurveWindow(m.cfg.CurveWindow)
			m.renderTabContents()
			return m, nil
		case "/":
			return m.startFilter()
		case "enter":
			switch m.activeTab {
			case tabExercises:
				if row := m.exerciseTable.SelectedRow(); len(row) > 0 {
					m.selectExercise(row[0])
					m.activeTab = tabProgress
					return m, tea.ClearScreen
				}
			case tabProgress:
				return m.startPick()
			}
			return m, nil
		case "g", "home":
			if m.activeTab == tabExercises {
				m.exerciseTable.GotoTop()
			} else {
				m.viewports[m.activeTab].GotoTop()
			}
			return m, nil
		case "G", "end":
			if m.activeTab == tabExercises {
				m.exerciseTable.GotoBottom()
			} else {
				m.viewports[m.activeTab].GotoBottom()
			}
			return m, nil
		}
		var cmd tea.Cmd
		if m.activeTab == tabExercises {
			m.exerciseTable, cmd = m.exerciseTable.Update(msg)
			return m, cmd
		}
		m.viewports[m.activeTab], cmd = m.viewports[m.activeTab].Update(msg)
		return m, cmd
	}
	return m, nil
}

// View implements tea.Model.
func (m *Model) View() string {
	if m.width == 0 || m.height == 0 {
		return ""
	}
	if m.pickMode {
		return fitLines(m.renderPickModal(), m.width, m.height)
	}
	headerHeight, bodyHeight, footerHeight := m.layoutHeights()
	header := fitLines(m.renderHeader(), m.width, headerHeight)
	body := fitLines(m.renderBody(bodyHeight), m.width, bodyHeight)
	footer := fitLines(m.renderFooter(), m.width, footerHeight)
	return strings.Join([]string{header, body, footer}, "\n")
}

func (m *Model) initInputs() {
	m.filterInputs = []textinput.Model{
		newInput("From (YYYY-MM-DD): "),
		newInput("To (YYYY-MM-DD): "),
		newInput("Exercise: "),
		newInput("Curve window: "),
	}
	m.setInputsFromConfig()
}

func newInput(prompt string) textinput.Model {
	input := textinput.New()
	input.Prompt = prompt
	input.CharLimit = 0
	input.Cursor.SetMode(cursor.CursorBlink)
	return input
}

func (m *Model) setInputsFromConfig() {
	m.filterInputs[0].SetValue(m.cfg.From)
	m.filterInputs[1].SetValue(m.cfg.To)
	m.filterInputs[2].SetValue(m.cfg.Exercise)
	m.filterInputs[3].SetValue(strconv.Itoa(m.cfg.CurveWindow))
}

func (m *Model) layoutHeights() (headerHeight, bodyHeight, footerHeight int) {
	tabsHeight := max(1, lipgloss.Height(activeNavStyle.Render("X")))
	headerHeight = tabsHeight + 1
	footerHeight = 1
	if !m.filterMode && m.errMsg != "" {
		footerHeight++
	}
	bodyHeight = max(1, m.height-headerHeight-footerHeight)
	return headerHeight, bodyHeight, footerHeight
}

func (m *Model) updateLayout() {
	if m.width <= 0 || m.height <= 0 {
		return
	}
	_, bodyHeight, _ := m.layoutHeights()
	for i := range m.viewports {
		m.viewports[i].Width = m.width
		m.viewports[i].Height = bodyHeight
	}
	m.exerciseTable.SetWidth(m.width)
	m.exerciseTable.SetHeight(max(1, bodyHeight-1))
	for i := range m.filterInputs {
		promptWidth := lipgloss.Width(m.filterInputs[i].Prompt)
		m.filterInputs[i].Width = max(10, m.width-promptWidth-2)
	}
	m.pickInput.Width = max(10, modalInnerWidth(m.width)-lipgloss.Width(m.pickInput.Prompt))
}

func (m *Model) moveTab(delta int) {
	count := len(m.tabs)
	m.activeTab = (m.activeTab + delta + count) % count
	if m.activeTab == tabExercises {
		m.exerciseTable.Focus()
	} else {
		m.exerciseTable.Blur()
	}
}

func (m *Model) renderTabs() string {
	parts := make([]string, 0, len(m.tabs))
	for i, tab := range m.tabs {
		if i == m.activeTab {
			parts = append(parts, activeNavStyle.Render(tab))
		} else {
			parts = append(parts, inactiveNavStyle.Render(tab))
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, parts...)
}

func (m *Model) renderHeader() string {
	return padLines(m.renderTabs(), m.width) + "\n" + padLines(m.renderFilterSummary(), m.width)
}

func (m *Model) renderFilterSummary() string {
	from, to, exercise := orDefault(m.cfg.From, "any"), orDefault(m.cfg.To, "today"), orDefault(m.cfg.Exercise, "any")
	summary := fmt.Sprintf("Filter: from=%s  to=%s  exercise=%s  window=%d", from, to, exercise, m.cfg.CurveWindow)
	return headerStyle.Render(truncateLine(summary, m.width))
}

func (m *Model) renderHelp() string {
	help := "Nav: left/right  Scroll: up/down/pgup/pgdn  Window: -/=  Filter: /  Quit: q"
	switch m.activeTab {
	case tabExercises:
		help = "Nav: left/right  Select: up/down  Chart: enter  Filter: /  Quit: q"
	case tabProgress:
		help = "Nav: left/right  Pick exercise: enter  Window: -/=  Filter: /  Quit: q"
	}
	return headerStyle.Render(truncateLine(help, m.width))
}

func (m *Model) renderFooter() string {
	if m.filterMode {
		return headerStyle.Render("tab/shift+tab: next field  enter: apply  esc: cancel")
	}
	if m.errMsg != "" {
		return m.renderHelp() + "\n" + errorStyle.Render(truncateLine(m.errMsg, m.width))
	}
	return m.renderHelp()
}

func (m *Model) renderFilterForm() string {
	lines := []string{"Filter (enter to apply, esc to cancel)"}
	for _, input := range m.filterInputs {
		lines = append(lines, input.View())
	}
	if m.filterError != "" {
		lines = append(lines, errorStyle.Render(m.filterError))
	}
	return strings.Join(lines, "\n")
}

func (m *Model) renderBody(height int) string {
	if m.filterMode {
		return m.renderFilterForm()
	}
	if m.activeTab == tabExercises {
		if len(m.report.Exercises) == 0 {
			return "No exercises found."
		}
		return tableMutedStyle.Render(m.exerciseTable.View())
	}
	return m.viewports[m.activeTab].View()
}

func (m *Model) refreshReport() {
	report, err := stats.BuildReport(context.Background(), m.source, m.cfg)
	if err != nil {
		m.errMsg = err.Error()
		for i := range m.viewports {
			m.viewports[i].SetContent("Failed to load stats.")
		}
		return
	}
	m.errMsg = ""
	m.report = report
	if _, ok := report.Summary(m.selected); !ok || !m.selectedCustom {
		m.selected = ""
		m.selectedCustom = false
		if top := stats.TopExercisesByVolume(report.Exercises, 1); len(top) > 0 {
			m.selected = top[0]
		}
	}
	m.exerciseTable.SetRows(exerciseRows(report.Exercises))
	m.exerciseTable.SetCursor(0)
	m.renderTabContents()
}

func (m *Model) selectExercise(name string) {
	m.selected = name
	m.selectedCustom = true
	m.renderTabContents()
}

func (m *Model) renderTabContents() {
	if m.errMsg != "" {
		return
	}
	width := m.width
	if width <= 0 {
		width = 80
	}
	m.viewports[tabOverview].SetContent(renderOverview(m.report, width))
	m.viewports[tabProgress].SetContent(m.renderProgress(width))
}

func renderOverview(report stats.Report, width int) string {
	if len(report.Records) == 0 {
		return "No records found."
	}
	cards := []string{
		metricCard("Records", strconv.Itoa(len(report.Records))),
		metricCard("Exercises", strconv.Itoa(len(report.Exercises))),
		metricCard("Sets", strconv.Itoa(report.TotalSets())),
		metricCard("Volume", strconv.Itoa(report.TotalVolume())),
	}
	if report.Skipped > 0 {
		cards = append(cards, metricCard("Skipped", strconv.Itoa(report.Skipped)))
	}
	var summary string
	if width < 80 {
		summary = strings.Join(cards, "\n")
	} else {
		summary = lipgloss.JoinHorizontal(lipgloss.Top, cards...)
	}

	var buf bytes.Buffer
	if err := stats.RenderTotals(&buf, report.Totals); err != nil {
		return fmt.Sprintf("Failed to render totals: %v", err)
	}
	if err := stats.RenderBests(&buf, stats.PersonalBests(report.Records)); err != nil {
		return fmt.Sprintf("Failed to render bests: %v", err)
	}
	return strings.TrimRight(summary+"\n\nWeight by exercise\n"+buf.String(), "\n")
}

func metricCard(label, value string) string {
	content := fmt.Sprintf("%s\n%s", cardTitleStyle.Render(label), cardValueStyle.Render(value))
	return cardStyle.Render(content)
}

func (m *Model) renderProgress(width int) string {
	if m.selected == "" {
		return "No exercise selected. Press Enter to pick one."
	}
	points, err := query.SeriesForExercise(m.report.Records, m.selected)
	if err != nil {
		return fmt.Sprintf("Failed to load progress for %s: %v", m.selected, err)
	}
	var buf bytes.Buffer
	if err := stats.RenderProgressWithSize(&buf, m.selected, points, m.cfg.CurveWindow, width, m.plotHeight, true); err != nil {
		return fmt.Sprintf("Failed to render progress: %v", err)
	}
	return strings.TrimRight(buf.String(), "\n")
}

func exerciseColumns() []table.Column {
	return []table.Column{
		{Title: "Exercise", Width: 24},
		{Title: "Sets", Width: 5},
		{Title: "Reps", Width: 6},
		{Title: "Max", Width: 6},
		{Title: "Volume", Width: 9},
		{Title: "Last", Width: 10},
		{Title: "Trend", Width: 12},
	}
}

func exerciseRows(summaries []stats.ExerciseSummary) []table.Row {
	rows := make([]table.Row, 0, len(summaries))
	for _, s := range summaries {
		weights := s.Weights
		if len(weights) > 12 {
			weights = weights[len(weights)-12:]
		}
		rows = append(rows, table.Row{
			s.Exercise,
			strconv.Itoa(s.Sets),
			strconv.Itoa(s.Repetitions),
			strconv.Itoa(s.MaxWeight),
			strconv.Itoa(s.Volume),
			s.Last.Format(model.DayLayout),
			stats.Sparkline(weights),
		})
	}
	return rows
}

func exerciseTableStyles() table.Styles {
	styles := table.DefaultStyles()
	styles.Header = styles.Header.
		Border(lipgloss.NormalBorder(), false, false, true, false).
		BorderForeground(lipgloss.Color("#4A4A4A")).
		Foreground(lipgloss.Color("#C0C0C0")).
		Bold(true).
		Padding(0, 1).
		PaddingLeft(0)
	styles.Cell = styles.Cell.
		Padding(0, 1).
		PaddingLeft(0)
	styles.Selected = styles.Cell.
		Foreground(lipgloss.Color("#F0F0F0")).
		Bold(true)
	return styles
}

func (m *Model) startFilter() (tea.Model, tea.Cmd) {
	m.filterMode = true
	m.filterError = ""
	m.setInputsFromConfig()
	return m, m.setFilterIndex(0)
}

func (m *Model) updateFilter(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEsc:
		m.filterMode = false
		m.filterError = ""
		return m, nil
	case tea.KeyEnter:
		if err := m.applyFilter(); err != nil {
			m.filterError = err.Error()
			return m, nil
		}
		m.filterMode = false
		m.filterError = ""
		m.refreshReport()
		m.updateLayout()
		return m, nil
	case tea.KeyTab:
		return m, m.setFilterIndex(m.filterIndex + 1)
	case tea.KeyShiftTab:
		return m, m.setFilterIndex(m.filterIndex - 1)
	}
	var cmd tea.Cmd
	m.filterInputs[m.filterIndex], cmd = m.filterInputs[m.filterIndex].Update(msg)
	return m, cmd
}

func (m *Model) setFilterIndex(idx int) tea.Cmd {
	count := len(m.filterInputs)
	m.filterIndex = (idx + count) % count
	var cmd tea.Cmd
	for i := range m.filterInputs {
		if i == m.filterIndex {
			cmd = m.filterInputs[i].Focus()
		} else {
			m.filterInputs[i].Blur()
		}
	}
	return cmd
}

func (m *Model) applyFilter() error {
	from := strings.TrimSpace(m.filterInputs[0].Value())
	to := strings.TrimSpace(m.filterInputs[1].Value())
	if from != "" {
		if _, err := query.ParseDay(from); err != nil {
			return err
		}
	}
	if to != "" {
		if _, err := query.ParseDay(to); err != nil {
			return err
		}
		if from == "" {
			return model.ErrMissingStartDate
		}
	}

	window := 1
	if input := strings.TrimSpace(m.filterInputs[3].Value()); input != "" {
		parsed, err := strconv.Atoi(input)
		if err != nil || parsed < 1 {
			return fmt.Errorf("invalid curve window (use integer >= 1)")
		}
		window = parsed
	}

	m.cfg = model.StatsConfig{
		From:        from,
		To:          to,
		Exercise:    strings.TrimSpace(m.filterInputs[2].Value()),
		CurveWindow: window,
	}
	return nil
}

func (m *Model) startPick() (tea.Model, tea.Cmd) {
	m.pickMode = true
	m.pickInput.SetValue(m.selected)
	return m, m.pickInput.Focus()
}

func (m *Model) updatePick(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEsc:
		m.pickMode = false
		return m, nil
	case tea.KeyEnter:
		m.pickMode = false
		name := strings.TrimSpace(m.pickInput.Value())
		if name == "" {
			m.selectedCustom = false
			m.refreshReport()
			return m, nil
		}
		m.selectExercise(name)
		return m, nil
	}
	var cmd tea.Cmd
	m.pickInput, cmd = m.pickInput.Update(msg)
	return m, cmd
}

func (m *Model) renderPickModal() string {
	body := []string{
		cardValueStyle.Render("Select Exercise"),
		m.pickInput.View(),
		headerStyle.Render("Names match exactly. Empty picks the exercise with the most volume."),
		headerStyle.Render("Enter to apply / Esc to cancel"),
	}
	box := modalStyle.Width(modalWidth(m.width)).Render(strings.Join(body, "\n"))
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, box)
}

func orDefault(value, fallback string) string {
	if value == "" {
		return fallback
	}
	return value
}

func nextCurveWindow(n int) int {
	if n < 5 {
		return 5
	}
	return (n/5 + 1) * 5
}

func prevCurveWindow(n int) int {
	if n <= 5 {
		return 1
	}
	if n%5 == 0 {
		return n - 5
	}
	return (n / 5) * 5
}

func modalWidth(width int) int {
	return max(40, min(width-4, 80))
}

func modalInnerWidth(width int) int {
	return max(10, modalWidth(width)-6) // 2 border + 4 padding
}

func padLines(s string, width int) string {
	if width <= 0 || s == "" {
		return s
	}
	lines := strings.Split(s, "\n")
	for i, line := range lines {
		lines[i] = padLine(line, width)
	}
	return strings.Join(lines, "\n")
}

func padLine(line string, width int) string {
	lineWidth := lipgloss.Width(line)
	if lineWidth < width {
		return line + strings.Repeat(" ", width-lineWidth)
	}
	return line
}

func fitLines(s string, width, height int) string {
	if width <= 0 || height <= 0 {
		return s
	}
	lines := strings.Split(s, "\n")
	if len(lines) > height {
		lines = lines[:height]
	}
	for i, line := range lines {
		lines[i] = padLine(line, width)
	}
	for len(lines) < height {
		lines = append(lines, strings.Repeat(" ", width))
	}
	return strings.Join(lines, "\n")
}

func truncateLine(s string, width int) string {
	if width <= 0 {
		return s
	}
	runes := []rune(s)
	if len(runes) <= width {
		return s
	}
	if width <= 3 {
		return string(runes[:width])
	}
	return string(runes[:width-3]) + "..."
}

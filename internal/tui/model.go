// Package tui provides the Bubble Tea password generator interface.
package tui

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/verte-zerg/tuipass/internal/generator"
	"github.com/verte-zerg/tuipass/internal/model"
	"github.com/verte-zerg/tuipass/internal/sink"
	"github.com/verte-zerg/tuipass/internal/strength"
)

const (
	msgNoSettings    = "No settings selected."
	msgNotANumber    = "ERROR. Please enter a number."
	msgNotPositive   = "ERROR. Please enter a number greater than 0."
	progressBarWidth = 50
	maxBatchPrealloc = 1024
)

type step int

const (
	stepMenu step = iota
	stepNumbers
	stepLetters
	stepSpecial
	stepBothCases
	stepLength
	stepCount
	stepBatch
	stepCopy
	stepSave
	stepNotice
)

type batchStepMsg struct{}

// Recorder persists generation metadata.
type Recorder interface {
	InsertGenerations(ctx context.Context, records []model.GenerationRecord) error
}

// Deps bundles the collaborators used by the interactive session.
type Deps struct {
	Generator *generator.Generator
	Clipboard sink.Clipboard
	Recorder  Recorder
	SaveDir   string
	Now       func() time.Time
}

// Model implements the Bubble Tea password generator UI.
type Model struct {
	deps     Deps
	defaults model.Config

	step     step
	batch    bool
	sel      model.FeatureSelection
	count    int
	quitting bool

	input    textinput.Model
	inputErr string
	bar      progress.Model

	passwords []string
	result    strength.Result
	notice    string
	status    []string

	width int
}

var (
	titleStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#3B82F6")).Bold(true)
	optionStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#22D3EE")).Bold(true).Align(lipgloss.Right)
	descStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#52C41A")).Bold(true)
	headerStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#C0C0C0")).Bold(true)
	promptStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#F0F0F0"))
	mutedStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#6E6E6E"))
	statusStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#52C41A")).Bold(true)
	adviceStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#3B82F6"))
	plainStyle   = lipgloss.NewStyle()
	letterStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#F0F0F0"))
	digitStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#22D3EE"))
	specialStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#C89A3A"))

	tierColors = map[string]lipgloss.Color{
		"green":  lipgloss.Color("#52C41A"),
		"yellow": lipgloss.Color("#FAAD14"),
		"red":    lipgloss.Color("#FF4D4F"),
	}
)

// NewModel constructs the interactive generator model. defaults supplies the
// length and count offered when the user accepts a prompt's default.
func NewModel(deps Deps, defaults model.Config) *Model {
	if deps.Now == nil {
		deps.Now = time.Now
	}
	input := textinput.New()
	input.CharLimit = 9
	input.Prompt = "> "
	return &Model{
		deps:     deps,
		defaults: defaults,
		input:    input,
		bar:      progress.New(progress.WithDefaultGradient(), progress.WithWidth(progressBarWidth)),
	}
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
		return m, nil
	case batchStepMsg:
		return m.advanceBatch()
	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC {
			m.quitting = true
			return m, tea.Quit
		}
		switch m.step {
		case stepMenu:
			return m.updateMenu(msg)
		case stepLength, stepCount:
			return m.updateInput(msg)
		case stepNotice:
			m.step = stepMenu
			return m, nil
		case stepBatch:
			return m, nil
		default:
			return m.updateQuestion(msg)
		}
	}
	return m, nil
}

// View implements tea.Model.
func (m *Model) View() string {
	if m.quitting {
		return panel("Goodbye!", lipgloss.Color("#FF4D4F"), "Goodbye, friend!") + "\n"
	}
	var sections []string
	switch m.step {
	case stepMenu:
		sections = append(sections, renderMenu())
		sections = append(sections, m.renderStatus()...)
		sections = append(sections, mutedStyle.Render("Choose an action [1/2/3]"))
	case stepNumbers, stepLetters, stepSpecial, stepBothCases:
		sections = append(sections, m.renderCreateHeader(), m.renderQuestion())
	case stepLength, stepCount:
		sections = append(sections, m.renderCreateHeader(), m.renderQuestion(), m.input.View())
		if m.inputErr != "" {
			sections = append(sections, panel("Error", tierColors["red"], m.inputErr))
		}
	case stepBatch:
		sections = append(sections, m.renderProgress())
	case stepCopy, stepSave:
		sections = append(sections, m.renderResult()...)
		sections = append(sections, m.renderStatus()...)
		sections = append(sections, m.renderQuestion())
	case stepNotice:
		sections = append(sections,
			panel("Error", tierColors["red"], m.notice),
			mutedStyle.Render("Press any key to continue."))
	}
	return strings.Join(sections, "\n") + "\n"
}

func (m *Model) updateMenu(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "1":
		m.startRound(false)
	case "3":
		m.startRound(true)
	case "2", "q", "esc":
		m.quitting = true
		return m, tea.Quit
	}
	return m, nil
}

func (m *Model) startRound(batch bool) {
	m.batch = batch
	m.sel = model.FeatureSelection{}
	m.count = 0
	m.passwords = nil
	m.result = strength.Result{}
	m.status = nil
	m.step = stepNumbers
}

func (m *Model) updateQuestion(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	answer, ok := parseAnswer(msg)
	if !ok {
		return m, nil
	}
	switch m.step {
	case stepNumbers:
		m.sel.Numbers = answer
		m.step = stepLetters
	case stepLetters:
		m.sel.Letters = answer
		m.step = stepSpecial
	case stepSpecial:
		m.sel.Special = answer
		if m.sel.Letters {
			m.step = stepBothCases
			return m, nil
		}
		return m, m.beginInput(stepLength)
	case stepBothCases:
		m.sel.BothCases = answer
		return m, m.beginInput(stepLength)
	case stepCopy:
		if answer {
			m.copyFirst()
		}
		m.step = stepSave
	case stepSave:
		if answer {
			m.save()
		}
		m.step = stepMenu
	}
	return m, nil
}

// parseAnswer maps y/n keys to a boolean; Enter accepts the default (yes).
func parseAnswer(msg tea.KeyMsg) (bool, bool) {
	if msg.Type == tea.KeyEnter {
		return true, true
	}
	switch msg.String() {
	case "y", "Y":
		return true, true
	case "n", "N":
		return false, true
	}
	return false, false
}

func (m *Model) beginInput(next step) tea.Cmd {
	m.step = next
	m.inputErr = ""
	m.input.Reset()
	if next == stepLength {
		m.input.Placeholder = strconv.Itoa(m.defaults.Selection.Length)
	} else {
		m.input.Placeholder = strconv.Itoa(m.defaults.Count)
	}
	return m.input.Focus()
}

func (m *Model) updateInput(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.Type != tea.KeyEnter {
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		return m, cmd
	}
	value, err := m.parseInput()
	if err != "" {
		m.inputErr = err
		m.input.Reset()
		return m, nil
	}
	m.input.Blur()
	m.inputErr = ""

	if m.step == stepLength {
		m.sel.Length = value
		if m.batch {
			return m, m.beginInput(stepCount)
		}
		m.generateSingle()
		return m, nil
	}

	m.count = value
	if !m.sel.HasClass() {
		m.showNotice(msgNoSettings)
		return m, nil
	}
	m.passwords = make([]string, 0, min(m.count, maxBatchPrealloc))
	m.step = stepBatch
	return m, nextBatchStep
}

func (m *Model) parseInput() (int, string) {
	raw := strings.TrimSpace(m.input.Value())
	if raw == "" {
		if m.step == stepLength {
			return m.defaults.Selection.Length, ""
		}
		return m.defaults.Count, ""
	}
	value, err := strconv.Atoi(raw)
	if err != nil {
		return 0, msgNotANumber
	}
	if m.step == stepCount && value <= 0 {
		return 0, msgNotPositive
	}
	return value, ""
}

func (m *Model) generateSingle() {
	password, ok := m.deps.Generator.Generate(m.sel)
	if !ok {
		m.showNotice(msgNoSettings)
		return
	}
	m.passwords = []string{password}
	m.result = strength.Evaluate(password)
	m.record(model.ModeSingle)
	m.step = stepCopy
}

func nextBatchStep() tea.Msg {
	return batchStepMsg{}
}

func (m *Model) advanceBatch() (tea.Model, tea.Cmd) {
	if m.step != stepBatch {
		return m, nil
	}
	password, ok := m.deps.Generator.Generate(m.sel)
	if !ok {
		m.showNotice(msgNoSettings)
		return m, nil
	}
	m.passwords = append(m.passwords, password)
	if len(m.passwords) < m.count {
		return m, nextBatchStep
	}
	m.result = strength.Evaluate(m.passwords[0])
	m.record(model.ModeBatch)
	m.step = stepCopy
	return m, nil
}

func (m *Model) showNotice(text string) {
	m.notice = text
	m.step = stepNotice
}

func (m *Model) record(mode string) {
	if m.deps.Recorder == nil {
		return
	}
	records := model.NewGenerationRecords(m.sel, mode, m.passwords, m.deps.Now())
	if err := m.deps.Recorder.InsertGenerations(context.Background(), records); err != nil {
		m.status = append(m.status, fmt.Sprintf("History not saved: %v", err))
	}
}

func (m *Model) copyFirst() {
	if len(m.passwords) == 0 || m.deps.Clipboard == nil {
		return
	}
	if err := m.deps.Clipboard.WriteAll(m.passwords[0]); err != nil {
		m.status = append(m.status, fmt.Sprintf("Failed to copy password: %v", err))
		return
	}
	m.status = append(m.status, "Password copied to clipboard!")
}

func (m *Model) save() {
	if len(m.passwords) == 0 {
		return
	}
	path := sink.SinglePath(m.deps.SaveDir)
	if m.batch {
		path = sink.BatchPath(m.deps.SaveDir, m.count)
	}
	if err := sink.AppendLines(path, m.passwords); err != nil {
		m.status = append(m.status, fmt.Sprintf("Failed to save password: %v", err))
		return
	}
	m.status = append(m.status, fmt.Sprintf("Password saved in %s!", path))
}

func (m *Model) renderCreateHeader() string {
	title := "Generating password"
	if m.batch {
		title = "Generating multiple passwords"
	}
	return panel("Create", tierColors["green"], title)
}

func (m *Model) renderQuestion() string {
	var q string
	switch m.step {
	case stepNumbers:
		q = "Do you want to include numbers? [Y/n]"
	case stepLetters:
		q = "Do you want to include letters? [Y/n]"
	case stepSpecial:
		q = "Do you want to include special characters? [Y/n]"
	case stepBothCases:
		q = "Do you want to include both uppercase and lowercase letters? [Y/n]"
	case stepLength:
		q = fmt.Sprintf("Enter the password length (%d):", m.defaults.Selection.Length)
	case stepCount:
		q = fmt.Sprintf("Enter the number of passwords you want to generate (%d):", m.defaults.Count)
	case stepCopy:
		if m.batch {
			q = "Do you want to copy the first password to the clipboard? [Y/n]"
		} else {
			q = "Do you want to copy the password to the clipboard? [Y/n]"
		}
	case stepSave:
		if m.batch {
			q = "Do you want to save all the passwords? [Y/n]"
		} else {
			q = "Do you want to save the password? [Y/n]"
		}
	}
	return promptStyle.Render(q)
}

func (m *Model) renderProgress() string {
	done := len(m.passwords)
	pct := 0.0
	if m.count > 0 {
		pct = float64(done) / float64(m.count)
	}
	return fmt.Sprintf("Generating passwords: %s %d/%d", m.bar.ViewAs(pct), done, m.count)
}

func (m *Model) renderResult() []string {
	color := tierColors[m.result.Tier.Color()]
	tierText := lipgloss.NewStyle().Foreground(color).Render("Password strength: " + m.result.Tier.Label())
	width := m.contentWidth()
	var sections []string
	if m.batch {
		body := renderPasswords(m.passwords, width) + "\n" + tierText + mutedStyle.Render(" (first password)")
		sections = append(sections, panel(fmt.Sprintf("Generated %d passwords", len(m.passwords)), tierColors["green"], body))
	} else {
		body := renderPasswords(m.passwords, width) + "\n" + tierText
		sections = append(sections, panel("Generated Password", tierColors["green"], body))
	}
	if len(m.result.Recommendations) > 0 {
		advice := adviceStyle.Render(strings.Join(m.result.Recommendations, "\n"))
		sections = append(sections, panel("Recommendations", tierColors["green"], advice))
	}
	return sections
}

func (m *Model) renderStatus() []string {
	out := make([]string, 0, len(m.status))
	for _, line := range m.status {
		out = append(out, statusStyle.Render(line))
	}
	return out
}

func (m *Model) contentWidth() int {
	if m.width <= 0 {
		return 0
	}
	w := m.width - 4
	if w < 1 {
		w = 1
	}
	return w
}

func renderMenu() string {
	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(mutedStyle).
		Headers("Option", "Description").
		Row("1", "Generate a password").
		Row("2", "Exit").
		Row("3", "Generate multiple passwords").
		StyleFunc(func(row, col int) lipgloss.Style {
			switch {
			case row == table.HeaderRow:
				return headerStyle.Padding(0, 1)
			case col == 0:
				return optionStyle.Padding(0, 1)
			default:
				return descStyle.Padding(0, 1)
			}
		})
	return titleStyle.Render("Password Generator") + "\n" + t.Render()
}

func panel(title string, border lipgloss.Color, body string) string {
	style := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder(), true).
		BorderForeground(border).
		Padding(0, 1)
	return style.Render(titleStyle.Render(title) + "\n" + body)
}

// internal/tui/app.go
//
// This is the staffing dashboard. It uses bubbletea, which follows The Elm
// Architecture:
//
// 1. Model: the current parameters, caps and the last projection
// 2. Update: key presses adjust a slider or edit a cap, then recompute
// 3. View: sliders, chart, phase cards and notes rendered to a string
//
// Every accepted change recomputes the whole projection. Rejected input
// leaves the previous values and chart untouched.

package tui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/kingrea/devcorp/internal/config"
	"github.com/kingrea/devcorp/internal/logbook"
	"github.com/kingrea/devcorp/internal/staffing"
)

const (
	defaultWidth   = 110
	controlsWidth  = 36
	chartHeight    = 14
	logPanelLines  = 5
	windowTitle    = "Development Corporation Dashboard"
	thresholdChars = 3
)

// controlKind tells which input a focusable control edits.
type controlKind int

const (
	controlScale controlKind = iota
	controlComplexity
	controlSkill
	controlThreshold
)

type control struct {
	kind  controlKind
	skill staffing.Category
	phase staffing.PhaseName
}

// AppOption customizes App construction for tests and alternate runtimes.
type AppOption func(*App)

// WithConfig supplies an already loaded configuration.
func WithConfig(cfg *config.Config) AppOption {
	return func(a *App) {
		if cfg != nil {
			a.config = cfg
		}
	}
}

// WithLogbook overrides the logbook used for activity tracking.
func WithLogbook(lb *logbook.Logbook) AppOption {
	return func(a *App) {
		if lb != nil {
			a.logbook = lb
		}
	}
}

// App is the main application model. In bubbletea, this holds ALL your state.
type App struct {
	config  *config.Config
	logbook *logbook.Logbook

	params     staffing.ProjectParameters
	thresholds staffing.Thresholds
	options    staffing.Options
	projection staffing.Projection

	controls []control
	focus    int
	inputs   map[staffing.PhaseName]textinput.Model

	keys      keyMap
	help      help.Model
	statusMsg string
	err       error

	width  int
	height int
}

// NewApp creates the dashboard for workDir using .devcorp/config.yaml.
func NewApp(workDir string, opts ...AppOption) (*App, error) {
	app := &App{
		keys: defaultKeyMap(),
		help: help.New(),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(app)
		}
	}
	if app.config == nil {
		cfg, err := config.NewConfig(workDir)
		if err != nil {
			return nil, err
		}
		app.config = cfg
	}
	if app.logbook == nil {
		lb, err := logbook.New(app.config.LogPath())
		if err != nil {
			return nil, err
		}
		app.logbook = lb
	}

	app.params = withAllSkills(app.config.Parameters())
	app.thresholds = app.config.Thresholds()
	app.options = app.config.Options()
	app.inputs = make(map[staffing.PhaseName]textinput.Model, len(staffing.CappedPhases()))
	for _, phase := range staffing.CappedPhases() {
		app.inputs[phase] = newThresholdInput(app.capFor(phase))
	}
	app.rebuildControls()
	app.recompute()
	app.logInfo("Session opened · %s · scale %d · caps %d/%d/%d",
		app.params.Variant, app.params.Scale,
		app.thresholds.Feasibility, app.thresholds.InterimVehicle, app.thresholds.Delivery)
	return app, nil
}

func newThresholdInput(value int) textinput.Model {
	in := textinput.New()
	in.Prompt = ""
	in.CharLimit = thresholdChars
	in.Width = thresholdChars + 1
	in.SetValue(strconv.Itoa(value))
	in.CursorEnd()
	return in
}

// withAllSkills fills missing per-skill complexities from the unified value
// so every detailed slider has a position.
func withAllSkills(p staffing.ProjectParameters) staffing.ProjectParameters {
	for _, skill := range staffing.VariantDetailed.Specialists() {
		if _, ok := p.ComplexityBySkill[skill]; !ok {
			p = p.WithSkill(skill, p.Complexity)
		}
	}
	return p
}

func (a *App) rebuildControls() {
	controls := []control{{kind: controlScale}}
	if a.params.Variant == staffing.VariantDetailed {
		for _, skill := range staffing.VariantDetailed.Specialists() {
			controls = append(controls, control{kind: controlSkill, skill: skill})
		}
	} else {
		controls = append(controls, control{kind: controlComplexity})
	}
	for _, phase := range staffing.CappedPhases() {
		controls = append(controls, control{kind: controlThreshold, phase: phase})
	}
	a.controls = controls
	if a.focus >= len(controls) {
		a.focus = len(controls) - 1
	}
	a.syncInputFocus()
}

func (a *App) focused() control {
	return a.controls[a.focus]
}

func (a *App) capFor(phase staffing.PhaseName) int {
	limit, _ := a.thresholds.CapFor(phase)
	return limit
}

// recompute regenerates the full projection from the current inputs.
func (a *App) recompute() {
	a.projection = staffing.Project(a.params, a.thresholds, a.options)
	if err := a.config.Apply(a.params, a.thresholds, a.options.StrictCaps); err != nil {
		a.logError("config out of sync: %v", err)
	}
}

func (a *App) logInfo(format string, args ...any) {
	if a.logbook == nil {
		return
	}
	a.logbook.Info(format, args...)
}

func (a *App) logWarn(format string, args ...any) {
	if a.logbook == nil {
		return
	}
	a.logbook.Warn(format, args...)
}

func (a *App) logError(format string, args ...any) {
	if a.logbook == nil {
		return
	}
	a.logbook.Error(format, args...)
}

// Init is called once when the program starts.
func (a *App) Init() tea.Cmd {
	return tea.SetWindowTitle(windowTitle)
}

// Update is called when a message is received.
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		a.help.Width = msg.Width
		return a, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, a.keys.Quit):
			return a, tea.Quit
		case key.Matches(msg, a.keys.Next):
			a.moveFocus(1)
			return a, nil
		case key.Matches(msg, a.keys.Prev):
			a.moveFocus(-1)
			return a, nil
		case key.Matches(msg, a.keys.Increase):
			a.adjust(1)
			return a, nil
		case key.Matches(msg, a.keys.Decrease):
			a.adjust(-1)
			return a, nil
		case key.Matches(msg, a.keys.Commit):
			if c := a.focused(); c.kind == controlThreshold {
				a.commitThreshold(c.phase)
			}
			return a, nil
		case key.Matches(msg, a.keys.Revert):
			if c := a.focused(); c.kind == controlThreshold {
				a.resetInput(c.phase)
				a.statusMsg = "Edit discarded"
			}
			return a, nil
		case key.Matches(msg, a.keys.Variant):
			a.toggleVariant()
			return a, nil
		case key.Matches(msg, a.keys.Strict):
			a.toggleStrict()
			return a, nil
		case key.Matches(msg, a.keys.Save):
			a.save()
			return a, nil
		case key.Matches(msg, a.keys.Reset):
			a.reset()
			return a, nil
		case key.Matches(msg, a.keys.Help):
			a.help.ShowAll = !a.help.ShowAll
			return a, nil
		}
		if c := a.focused(); c.kind == controlThreshold && editsNumber(msg) {
			in := a.inputs[c.phase]
			var cmd tea.Cmd
			in, cmd = in.Update(msg)
			a.inputs[c.phase] = in
			return a, cmd
		}
	}
	return a, nil
}

// editsNumber accepts digits and the keys that delete them.
func editsNumber(msg tea.KeyMsg) bool {
	switch msg.Type {
	case tea.KeyBackspace, tea.KeyDelete, tea.KeyHome, tea.KeyEnd:
		return true
	case tea.KeyRunes:
		for _, r := range msg.Runes {
			if r < '0' || r > '9' {
				return false
			}
		}
		return len(msg.Runes) > 0
	}
	return false
}

func (a *App) moveFocus(delta int) {
	if c := a.focused(); c.kind == controlThreshold {
		a.commitThreshold(c.phase)
	}
	n := len(a.controls)
	a.focus = ((a.focus+delta)%n + n) % n
	a.syncInputFocus()
}

func (a *App) syncInputFocus() {
	for phase, in := range a.inputs {
		if c := a.focused(); c.kind == controlThreshold && c.phase == phase {
			in.Focus()
			in.CursorEnd()
		} else {
			in.Blur()
		}
		a.inputs[phase] = in
	}
}

// adjust moves the focused slider or cap by delta, clamped to its range.
func (a *App) adjust(delta int) {
	c := a.focused()
	next := a.params
	switch c.kind {
	case controlScale:
		next.Scale = staffing.ClampLevel(next.Scale + delta)
	case controlComplexity:
		next.Complexity = staffing.ClampLevel(next.Complexity + delta)
	case controlSkill:
		current := int(next.ComplexityFor(c.skill))
		next = next.WithSkill(c.skill, staffing.ClampLevel(current+delta))
	case controlThreshold:
		bounds, _ := staffing.BoundsFor(c.phase)
		value := a.capFor(c.phase)
		if typed, err := strconv.Atoi(strings.TrimSpace(a.inputs[c.phase].Value())); err == nil {
			value = typed
		}
		value = max(bounds.Min, min(bounds.Max, value+delta))
		a.applyThreshold(c.phase, value)
		return
	}
	a.setParameters(next, a.describe(c))
}

func (a *App) describe(c control) string {
	switch c.kind {
	case controlScale:
		return "scale"
	case controlComplexity:
		return "complexity"
	case controlSkill:
		return strings.ToLower(c.skill.Label()) + " complexity"
	}
	return strings.ToLower(string(c.phase)) + " cap"
}

func (a *App) setParameters(next staffing.ProjectParameters, what string) {
	if err := staffing.Validate(next); err != nil {
		a.reject(what, err)
		return
	}
	before := a.params
	a.params = next
	a.err = nil
	a.recompute()
	a.statusMsg = fmt.Sprintf("Updated %s", what)
	a.logInfo("%s changed · %s", what, summarizeChange(before, next))
}

func summarizeChange(before, after staffing.ProjectParameters) string {
	var parts []string
	if before.Scale != after.Scale {
		parts = append(parts, fmt.Sprintf("scale %d→%d", before.Scale, after.Scale))
	}
	if before.Complexity != after.Complexity {
		parts = append(parts, fmt.Sprintf("complexity %d→%d", before.Complexity, after.Complexity))
	}
	for _, skill := range staffing.VariantDetailed.Specialists() {
		if b, c := before.ComplexityBySkill[skill], after.ComplexityBySkill[skill]; b != c {
			parts = append(parts, fmt.Sprintf("%s %d→%d", skill, b, c))
		}
	}
	if len(parts) == 0 {
		return "no change"
	}
	return strings.Join(parts, ", ")
}

// commitThreshold applies the typed value of a cap field. Non-numeric or
// out-of-range entries are rejected and the field reverts.
func (a *App) commitThreshold(phase staffing.PhaseName) {
	raw := strings.TrimSpace(a.inputs[phase].Value())
	if raw == strconv.Itoa(a.capFor(phase)) {
		return
	}
	value, err := strconv.Atoi(raw)
	if err != nil {
		a.reject(strings.ToLower(string(phase))+" cap", fmt.Errorf("%w: %q is not a whole number", staffing.ErrInvalidParameter, raw))
		a.resetInput(phase)
		return
	}
	a.applyThreshold(phase, value)
}

func (a *App) applyThreshold(phase staffing.PhaseName, value int) {
	what := strings.ToLower(string(phase)) + " cap"
	next, err := a.thresholds.With(phase, value)
	if err != nil {
		a.reject(what, err)
		a.resetInput(phase)
		return
	}
	before := a.capFor(phase)
	a.thresholds = next
	a.err = nil
	a.resetInput(phase)
	a.recompute()
	a.statusMsg = fmt.Sprintf("Updated %s to %d", what, value)
	a.logInfo("%s changed · %d→%d", what, before, value)
}

func (a *App) resetInput(phase staffing.PhaseName) {
	in := a.inputs[phase]
	in.SetValue(strconv.Itoa(a.capFor(phase)))
	in.CursorEnd()
	a.inputs[phase] = in
}

func (a *App) reject(what string, err error) {
	a.err = err
	a.statusMsg = fmt.Sprintf("Rejected %s: %v", what, err)
	a.logWarn("rejected %s: %v", what, err)
}

func (a *App) toggleVariant() {
	next := a.params
	next.Variant = next.Variant.Next()
	a.params = withAllSkills(next)
	a.err = nil
	a.rebuildControls()
	a.recompute()
	a.statusMsg = "Variant: " + a.params.Variant.Title()
	a.logInfo("variant switched to %s", a.params.Variant)
}

func (a *App) toggleStrict() {
	a.options.StrictCaps = !a.options.StrictCaps
	a.recompute()
	mode := "rounded up per category"
	if a.options.StrictCaps {
		mode = "strict"
	}
	a.statusMsg = "Cap clamping: " + mode
	a.logInfo("cap clamping set to %s", mode)
}

func (a *App) save() {
	if err := a.config.Save(); err != nil {
		a.err = err
		a.statusMsg = fmt.Sprintf("Save failed: %v", err)
		a.logError("save failed: %v", err)
		return
	}
	a.err = nil
	a.statusMsg = "Saved defaults to " + a.config.ConfigPath()
	a.logInfo("saved defaults to %s", a.config.ConfigPath())
}

func (a *App) reset() {
	variant := a.params.Variant
	a.params = withAllSkills(staffing.DefaultParameters())
	a.params.Variant = variant
	a.thresholds = staffing.DefaultThresholds()
	a.options.StrictCaps = false
	for _, phase := range staffing.CappedPhases() {
		a.resetInput(phase)
	}
	a.err = nil
	a.recompute()
	a.statusMsg = "Reset sliders, caps and clamping to defaults"
	a.logInfo("reset to defaults")
}

// View renders the dashboard.
func (a *App) View() string {
	width := a.width
	if width <= 0 {
		width = defaultWidth
	}
	header := titleStyle.Render("⬡ DEVELOPMENT CORPORATION RESOURCE REQUIREMENTS") +
		mutedStyle.Render("  "+a.params.Variant.Title())

	left := panelStyle.Width(controlsWidth).Render(a.renderControls())
	chartW := max(40, width-controlsWidth-8)
	right := panelStyle.Width(chartW).Render(lipgloss.JoinVertical(lipgloss.Left,
		headingStyle.Render("Number of Staff"),
		renderChart(a.projection, chartW-2, chartHeight),
		renderLegend(a.projection),
	))
	top := lipgloss.JoinHorizontal(lipgloss.Top, left, right)

	cards := renderPhaseCards(a.projection, width-2)
	halfW := max(30, width/2-4)
	notes := lipgloss.JoinHorizontal(lipgloss.Top,
		renderAbout(a.projection, halfW),
		renderLogPanel(a.logbook.Entries(logPanelLines), halfW),
	)

	return lipgloss.JoinVertical(lipgloss.Left,
		header,
		top,
		cards,
		notes,
		a.renderStatus(),
		a.help.View(a.keys),
	)
}

func (a *App) renderControls() string {
	sliderW := controlsWidth - 4
	var blocks []string
	blocks = append(blocks, headingStyle.Render("Parameters"))
	for i, c := range a.controls {
		focused := i == a.focus
		switch c.kind {
		case controlScale:
			blocks = append(blocks, renderSlider("Project Scale", a.params.Scale, [3]string{"Small", "Medium", "Large"}, sliderW, focused))
		case controlComplexity:
			blocks = append(blocks, renderSlider("Project Complexity", a.params.Complexity, [3]string{"Simple", "Average", "Complex"}, sliderW, focused))
		case controlSkill:
			value := int(a.params.ComplexityFor(c.skill))
			blocks = append(blocks, renderSlider(c.skill.Label(), value, [3]string{"Simple", "Average", "Complex"}, sliderW, focused))
		case controlThreshold:
			if c.phase == staffing.CappedPhases()[0] {
				blocks = append(blocks, headingStyle.Render("Phase Caps"))
			}
			blocks = append(blocks, a.renderThreshold(c.phase, focused))
		}
	}
	mode := "ceil per category"
	if a.options.StrictCaps {
		mode = "strict"
	}
	blocks = append(blocks, mutedStyle.Render("Clamping: "+mode))
	return strings.Join(blocks, "\n")
}

func (a *App) renderThreshold(phase staffing.PhaseName, focused bool) string {
	bounds, _ := staffing.BoundsFor(phase)
	marker := "  "
	label := subtleStyle
	if focused {
		marker = titleStyle.Render("▸ ")
		label = lipgloss.NewStyle().Bold(true)
	}
	field := a.inputs[phase].View()
	return fmt.Sprintf("%s%s [%s]", marker, label.Render(fmt.Sprintf("%-16s (%d-%d)", string(phase), bounds.Min, bounds.Max)), field)
}

func (a *App) renderStatus() string {
	if a.statusMsg == "" {
		return mutedStyle.Render("Adjust a slider or cap to recompute the projection.")
	}
	if a.err != nil {
		return errorStyle.Render(a.statusMsg)
	}
	return subtleStyle.Render(a.statusMsg)
}

// Projection exposes the last computed projection.
func (a *App) Projection() staffing.Projection {
	return a.projection
}

package tui

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/google/go-cmp/cmp"

	"github.com/kingrea/devcorp/internal/config"
	"github.com/kingrea/devcorp/internal/logbook"
	"github.com/kingrea/devcorp/internal/staffing"
)

func newTestApp(t *testing.T) *App {
	t.Helper()
	dir := t.TempDir()
	if err := config.InitStateDir(dir); err != nil {
		t.Fatalf("init state dir: %v", err)
	}
	cfg, err := config.NewConfig(dir)
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	lb, err := logbook.New(cfg.LogPath())
	if err != nil {
		t.Fatalf("open logbook: %v", err)
	}
	app, err := NewApp(dir, WithConfig(cfg), WithLogbook(lb))
	if err != nil {
		t.Fatalf("new app: %v", err)
	}
	return app
}

func press(t *testing.T, app *App, msgs ...tea.KeyMsg) {
	t.Helper()
	for _, msg := range msgs {
		model, _ := app.Update(msg)
		next, ok := model.(*App)
		if !ok {
			t.Fatalf("update returned %T", model)
		}
		app = next
	}
}

func keyOf(kind tea.KeyType) tea.KeyMsg { return tea.KeyMsg{Type: kind} }

func runes(s string) tea.KeyMsg { return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)} }

func focusThreshold(t *testing.T, app *App, phase staffing.PhaseName) {
	t.Helper()
	for i := 0; i < len(app.controls); i++ {
		if c := app.focused(); c.kind == controlThreshold && c.phase == phase {
			return
		}
		press(t, app, keyOf(tea.KeyTab))
	}
	t.Fatalf("could not focus %s", phase)
}

func TestNewAppUsesConfigDefaults(t *testing.T) {
	app := newTestApp(t)
	if app.params.Variant != staffing.VariantClassic {
		t.Fatalf("expected classic variant, got %s", app.params.Variant)
	}
	if app.params.Scale != 5 || app.params.Complexity != 5 {
		t.Fatalf("expected 5/5 sliders, got %d/%d", app.params.Scale, app.params.Complexity)
	}
	if got := app.Projection().MaxTotal(); got != 45 {
		t.Fatalf("expected max total 45 at defaults, got %d", got)
	}
	if len(app.controls) != 5 {
		t.Fatalf("classic dashboard should have 5 controls, got %d", len(app.controls))
	}
	if _, total := app.logbook.Tail(10); total == 0 {
		t.Fatalf("expected session entry in logbook")
	}
}

func TestSliderChangeRecomputesProjection(t *testing.T) {
	app := newTestApp(t)
	press(t, app, keyOf(tea.KeyRight))
	if app.params.Scale != 6 {
		t.Fatalf("expected scale 6, got %d", app.params.Scale)
	}
	want := staffing.Project(staffing.ProjectParameters{Variant: staffing.VariantClassic, Scale: 6, Complexity: 5},
		staffing.DefaultThresholds(), staffing.Options{})
	if diff := cmp.Diff(want.Points, app.Projection().Points); diff != "" {
		t.Fatalf("projection mismatch (-want +got):\n%s", diff)
	}
	if !strings.Contains(app.statusMsg, "scale") {
		t.Fatalf("status should mention scale, got %q", app.statusMsg)
	}
	if app.config.Project.Parameters.Scale != 6 {
		t.Fatalf("config should track the slider, got %d", app.config.Project.Parameters.Scale)
	}
}

func TestSliderClampsAtRange(t *testing.T) {
	app := newTestApp(t)
	for i := 0; i < 8; i++ {
		press(t, app, keyOf(tea.KeyRight))
	}
	if app.params.Scale != staffing.MaxLevel {
		t.Fatalf("expected scale clamped to %d, got %d", staffing.MaxLevel, app.params.Scale)
	}
	press(t, app, keyOf(tea.KeyTab))
	for i := 0; i < 12; i++ {
		press(t, app, keyOf(tea.KeyLeft))
	}
	if app.params.Complexity != staffing.MinLevel {
		t.Fatalf("expected complexity clamped to %d, got %d", staffing.MinLevel, app.params.Complexity)
	}
}

func TestInvalidThresholdKeepsPreviousValue(t *testing.T) {
	app := newTestApp(t)
	before := app.Projection()
	focusThreshold(t, app, staffing.PhaseDelivery)
	press(t, app, keyOf(tea.KeyBackspace), keyOf(tea.KeyBackspace), runes("5"), runes("0"), runes("0"), keyOf(tea.KeyEnter))

	if app.thresholds.Delivery != 90 {
		t.Fatalf("expected delivery cap to stay 90, got %d", app.thresholds.Delivery)
	}
	if app.err == nil || !strings.Contains(app.statusMsg, "invalid parameter") {
		t.Fatalf("expected rejection status, got %q", app.statusMsg)
	}
	if got := app.inputs[staffing.PhaseDelivery].Value(); got != "90" {
		t.Fatalf("expected field to revert to 90, got %q", got)
	}
	if diff := cmp.Diff(before.Points, app.Projection().Points); diff != "" {
		t.Fatalf("projection changed after rejected input:\n%s", diff)
	}
	entries := app.logbook.Entries(1)
	if len(entries) != 1 || entries[0].Level != logbook.LevelWarn {
		t.Fatalf("expected warning logged, got %+v", entries)
	}
}

func TestValidThresholdIsApplied(t *testing.T) {
	app := newTestApp(t)
	focusThreshold(t, app, staffing.PhaseDelivery)
	press(t, app, keyOf(tea.KeyBackspace), keyOf(tea.KeyBackspace), runes("120"), keyOf(tea.KeyEnter))
	if app.thresholds.Delivery != 120 {
		t.Fatalf("expected delivery cap 120, got %d", app.thresholds.Delivery)
	}
	if app.Projection().Thresholds.Delivery != 120 {
		t.Fatalf("projection should use the new cap")
	}
	if app.err != nil {
		t.Fatalf("unexpected error: %v", app.err)
	}
}

func TestNonNumericRunesAreIgnored(t *testing.T) {
	app := newTestApp(t)
	focusThreshold(t, app, staffing.PhaseFeasibility)
	press(t, app, runes("x"))
	if got := app.inputs[staffing.PhaseFeasibility].Value(); got != "15" {
		t.Fatalf("expected field unchanged, got %q", got)
	}
}

func TestArrowKeysNudgeThreshold(t *testing.T) {
	app := newTestApp(t)
	focusThreshold(t, app, staffing.PhaseFeasibility)
	press(t, app, keyOf(tea.KeyRight))
	if app.thresholds.Feasibility != 16 {
		t.Fatalf("expected feasibility cap 16, got %d", app.thresholds.Feasibility)
	}
	for i := 0; i < 20; i++ {
		press(t, app, keyOf(tea.KeyLeft))
	}
	if app.thresholds.Feasibility != 5 {
		t.Fatalf("expected feasibility cap held at lower bound 5, got %d", app.thresholds.Feasibility)
	}
}

func TestEscRevertsPendingEdit(t *testing.T) {
	app := newTestApp(t)
	focusThreshold(t, app, staffing.PhaseInterimVehicle)
	press(t, app, keyOf(tea.KeyBackspace), keyOf(tea.KeyEsc))
	if got := app.inputs[staffing.PhaseInterimVehicle].Value(); got != "35" {
		t.Fatalf("expected field reverted to 35, got %q", got)
	}
}

func TestVariantToggle(t *testing.T) {
	app := newTestApp(t)
	press(t, app, runes("v"))
	p := app.Projection()
	if p.Variant != staffing.VariantDetailed {
		t.Fatalf("expected detailed variant, got %s", p.Variant)
	}
	if len(p.Categories) != 4 {
		t.Fatalf("expected 4 categories, got %d", len(p.Categories))
	}
	skills := 0
	for _, c := range app.controls {
		if c.kind == controlSkill {
			skills++
		}
	}
	if skills != 3 {
		t.Fatalf("expected 3 skill sliders, got %d", skills)
	}
	press(t, app, runes("v"))
	if app.Projection().Variant != staffing.VariantClassic || len(app.controls) != 5 {
		t.Fatalf("expected classic dashboard after second toggle")
	}
}

func TestSkillSliderOnlyMovesOneSkill(t *testing.T) {
	app := newTestApp(t)
	press(t, app, runes("v"), keyOf(tea.KeyTab), keyOf(tea.KeyRight))
	if got := app.params.ComplexityBySkill[staffing.CategoryPlanning]; got != 6 {
		t.Fatalf("expected planning complexity 6, got %d", got)
	}
	if got := app.params.ComplexityBySkill[staffing.CategoryDevelopment]; got != 5 {
		t.Fatalf("expected development complexity unchanged, got %d", got)
	}
}

func TestStrictToggleHoldsCapsExactly(t *testing.T) {
	app := newTestApp(t)
	for i := 0; i < 5; i++ {
		press(t, app, keyOf(tea.KeyRight))
	}
	press(t, app, keyOf(tea.KeyTab))
	for i := 0; i < 5; i++ {
		press(t, app, keyOf(tea.KeyRight))
	}
	press(t, app, runes("s"))
	if !app.options.StrictCaps {
		t.Fatalf("expected strict caps enabled")
	}
	for _, point := range app.Projection().Points {
		if limit, ok := app.thresholds.CapFor(point.Phase); ok && point.Total > limit {
			t.Fatalf("month %d total %d exceeds cap %d", point.Month, point.Total, limit)
		}
	}
}

func TestResetRestoresDefaults(t *testing.T) {
	app := newTestApp(t)
	press(t, app, keyOf(tea.KeyRight), keyOf(tea.KeyRight))
	focusThreshold(t, app, staffing.PhaseDelivery)
	press(t, app, keyOf(tea.KeyRight), runes("s"), runes("r"))
	if app.params.Scale != 5 || app.thresholds != staffing.DefaultThresholds() {
		t.Fatalf("expected defaults, got scale %d caps %+v", app.params.Scale, app.thresholds)
	}
	if app.options.StrictCaps || app.config.Options().StrictCaps {
		t.Fatalf("expected strict caps cleared by reset")
	}
	want := staffing.Project(app.params, staffing.DefaultThresholds(), staffing.Options{})
	if diff := cmp.Diff(want.Points, app.Projection().Points); diff != "" {
		t.Fatalf("projection after reset (-want +got):\n%s", diff)
	}
}

func TestSaveWritesConfig(t *testing.T) {
	app := newTestApp(t)
	press(t, app, keyOf(tea.KeyRight), runes("w"))
	if app.err != nil {
		t.Fatalf("save failed: %v", app.err)
	}
	data, err := os.ReadFile(app.config.ConfigPath())
	if err != nil {
		t.Fatalf("read config: %v", err)
	}
	if !strings.Contains(string(data), "scale: 6") {
		t.Fatalf("expected saved scale in config, got:\n%s", data)
	}
	reloaded, err := config.NewConfig(filepath.Dir(app.config.StateDir))
	if err != nil {
		t.Fatalf("reload config: %v", err)
	}
	if reloaded.Parameters().Scale != 6 {
		t.Fatalf("expected reloaded scale 6, got %d", reloaded.Parameters().Scale)
	}
}

func TestQuitKey(t *testing.T) {
	app := newTestApp(t)
	_, cmd := app.Update(runes("q"))
	if cmd == nil {
		t.Fatalf("expected quit command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Fatalf("expected tea.QuitMsg")
	}
}

func TestViewRendersDashboard(t *testing.T) {
	app := newTestApp(t)
	app.Update(tea.WindowSizeMsg{Width: 140, Height: 50})
	view := app.View()
	for _, want := range []string{
		"Feasibility",
		"Interim Vehicle",
		"Delivery",
		"Wind Down",
		"About This Model",
		"Specialist Skills",
		"Corporate Services",
		"Project Scale",
	} {
		if !strings.Contains(view, want) {
			t.Fatalf("view missing %q", want)
		}
	}
}

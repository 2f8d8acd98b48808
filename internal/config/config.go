// internal/config/config.go
//
// This package handles configuration and the .devcorp directory structure.
// Every directory the dashboard runs in gets a .devcorp/ folder holding the
// last saved slider positions and the dashboard log.

package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	"github.com/kingrea/devcorp/internal/staffing"
)

const (
	// StateDir is the name of the directory we create in each working directory
	StateDir = ".devcorp"

	configFileName = "config.yaml"
	logFileName    = "dashboard.log"
)

const defaultConfigYAML = `# development corporation dashboard configuration
version: 1

# classic: one complexity slider, specialist skills + corporate services
# detailed: planning, land assembly and development each get a complexity
variant: classic

parameters:
  scale: 5
  complexity: 5
  complexity_by_skill:
    planning: 5
    land_assembly: 5
    development: 5

# Phase staffing caps. Wind Down is never capped.
thresholds:
  feasibility: 15      # 5-50
  interim_vehicle: 35  # 10-100
  delivery: 90         # 20-200

sampling:
  step_months: 6
  # strict_caps distributes the cap by largest remainder instead of rounding
  # every category up, so totals never exceed the cap.
  strict_caps: false
`

// ParametersConfig holds the slider positions.
type ParametersConfig struct {
	Scale             int            `yaml:"scale"`
	Complexity        int            `yaml:"complexity"`
	ComplexityBySkill map[string]int `yaml:"complexity_by_skill,omitempty"`
}

// ThresholdsConfig holds the editable phase caps.
type ThresholdsConfig struct {
	Feasibility    int `yaml:"feasibility"`
	InterimVehicle int `yaml:"interim_vehicle"`
	Delivery       int `yaml:"delivery"`
}

// SamplingConfig controls how the projection is sampled.
type SamplingConfig struct {
	StepMonths int  `yaml:"step_months" validate:"min=1,max=60"`
	StrictCaps bool `yaml:"strict_caps"`
}

// ProjectConfig models .devcorp/config.yaml.
type ProjectConfig struct {
	Version    int              `yaml:"version" validate:"min=1"`
	Variant    string           `yaml:"variant"`
	Parameters ParametersConfig `yaml:"parameters"`
	Thresholds ThresholdsConfig `yaml:"thresholds"`
	Sampling   SamplingConfig   `yaml:"sampling"`
}

// Config holds the runtime configuration for the dashboard.
type Config struct {
	// WorkDir is the directory where the user ran `devcorp` from
	WorkDir string

	// StateDir is WorkDir/.devcorp
	StateDir string

	Project ProjectConfig
}

var validate = validator.New(validator.WithRequiredStructEnabled())

// InitStateDir creates the .devcorp directory structure in workDir.
//
// Structure created:
// .devcorp/
// ├── config.yaml   <- Slider defaults and phase caps
// └── logs/         <- Dashboard logbook
func InitStateDir(workDir string) error {
	stateDir := filepath.Join(workDir, StateDir)
	if err := os.MkdirAll(filepath.Join(stateDir, "logs"), 0o755); err != nil {
		return fmt.Errorf("config: ensure state dir: %w", err)
	}
	return ensureConfigFile(filepath.Join(stateDir, configFileName))
}

// NewConfig loads .devcorp/config.yaml from workDir. A missing file yields
// the built-in defaults; nothing is written to disk.
func NewConfig(workDir string) (*Config, error) {
	cfg := &Config{
		WorkDir:  workDir,
		StateDir: filepath.Join(workDir, StateDir),
		Project:  defaultProjectConfig(),
	}
	if err := cfg.load(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Default returns an in-memory configuration with built-in values.
func Default(workDir string) *Config {
	return &Config{
		WorkDir:  workDir,
		StateDir: filepath.Join(workDir, StateDir),
		Project:  defaultProjectConfig(),
	}
}

// ConfigPath returns the on-disk location for the config file.
func (c *Config) ConfigPath() string {
	return filepath.Join(c.StateDir, configFileName)
}

// LogPath returns the path to the dashboard logbook.
func (c *Config) LogPath() string {
	return filepath.Join(c.StateDir, "logs", logFileName)
}

// Parameters converts the stored slider positions for the projection engine.
func (c *Config) Parameters() staffing.ProjectParameters {
	variant, err := staffing.ParseVariant(c.Project.Variant)
	if err != nil {
		variant = staffing.VariantClassic
	}
	params := staffing.ProjectParameters{
		Variant:    variant,
		Scale:      c.Project.Parameters.Scale,
		Complexity: c.Project.Parameters.Complexity,
	}
	if len(c.Project.Parameters.ComplexityBySkill) > 0 {
		params.ComplexityBySkill = make(map[staffing.Category]int, len(c.Project.Parameters.ComplexityBySkill))
		for skill, v := range c.Project.Parameters.ComplexityBySkill {
			params.ComplexityBySkill[staffing.Category(skill)] = v
		}
	}
	return params
}

// Thresholds converts the stored caps for the projection engine.
func (c *Config) Thresholds() staffing.Thresholds {
	return staffing.Thresholds{
		Feasibility:    c.Project.Thresholds.Feasibility,
		InterimVehicle: c.Project.Thresholds.InterimVehicle,
		Delivery:       c.Project.Thresholds.Delivery,
	}
}

// Options converts the sampling section for the projection engine.
func (c *Config) Options() staffing.Options {
	return staffing.Options{
		StepMonths: c.Project.Sampling.StepMonths,
		StrictCaps: c.Project.Sampling.StrictCaps,
	}
}

// Apply stores validated dashboard values in memory. Invalid values are
// rejected and the previous configuration is kept.
func (c *Config) Apply(params staffing.ProjectParameters, thresholds staffing.Thresholds, strict bool) error {
	if c == nil {
		return fmt.Errorf("config: nil receiver")
	}
	if err := staffing.Validate(params); err != nil {
		return fmt.Errorf("config: %w", err)
	}
	if err := thresholds.Validate(); err != nil {
		return fmt.Errorf("config: %w", err)
	}
	next := c.Project
	next.Variant = params.Variant.String()
	next.Parameters = ParametersConfig{
		Scale:      params.Scale,
		Complexity: params.Complexity,
	}
	if len(params.ComplexityBySkill) > 0 {
		next.Parameters.ComplexityBySkill = make(map[string]int, len(params.ComplexityBySkill))
		for skill, v := range params.ComplexityBySkill {
			next.Parameters.ComplexityBySkill[string(skill)] = v
		}
	}
	next.Thresholds = ThresholdsConfig{
		Feasibility:    thresholds.Feasibility,
		InterimVehicle: thresholds.InterimVehicle,
		Delivery:       thresholds.Delivery,
	}
	next.Sampling.StrictCaps = strict
	c.Project = next
	return nil
}

// Save persists the current configuration back to .devcorp/config.yaml.
func (c *Config) Save() error {
	if c == nil {
		return fmt.Errorf("config: nil receiver")
	}
	c.Project.applyDefaults()
	c.Project.normalize()
	if err := c.Project.validate(); err != nil {
		return fmt.Errorf("config: %w", err)
	}
	if err := os.MkdirAll(c.StateDir, 0o755); err != nil {
		return fmt.Errorf("config: ensure state dir: %w", err)
	}
	data, err := yaml.Marshal(c.Project)
	if err != nil {
		return fmt.Errorf("config: encode config: %w", err)
	}
	if err := os.WriteFile(c.ConfigPath(), data, 0o644); err != nil {
		return fmt.Errorf("config: write config: %w", err)
	}
	return nil
}

func (c *Config) load() error {
	path := c.ConfigPath()
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("config: read %s: %w", path, err)
	}

	var parsed ProjectConfig
	if err := yaml.Unmarshal(data, &parsed); err != nil {
		return fmt.Errorf("config: parse %s: %w", path, err)
	}

	parsed.applyDefaults()
	parsed.normalize()
	if err := parsed.validate(); err != nil {
		return fmt.Errorf("config: %s: %w", path, err)
	}

	c.Project = parsed
	return nil
}

func defaultProjectConfig() ProjectConfig {
	defaults := staffing.DefaultThresholds()
	return ProjectConfig{
		Version: 1,
		Variant: string(staffing.VariantClassic),
		Parameters: ParametersConfig{
			Scale:      staffing.DefaultLevel,
			Complexity: staffing.DefaultLevel,
		},
		Thresholds: ThresholdsConfig{
			Feasibility:    defaults.Feasibility,
			InterimVehicle: defaults.InterimVehicle,
			Delivery:       defaults.Delivery,
		},
		Sampling: SamplingConfig{StepMonths: staffing.DefaultStepMonths},
	}
}

// applyDefaults fills sections left out of the file. Zero means "not set"
// for every numeric field since none of them accept zero.
func (pc *ProjectConfig) applyDefaults() {
	defaults := defaultProjectConfig()
	if pc.Version == 0 {
		pc.Version = defaults.Version
	}
	if pc.Parameters.Scale == 0 {
		pc.Parameters.Scale = defaults.Parameters.Scale
	}
	if pc.Parameters.Complexity == 0 {
		pc.Parameters.Complexity = defaults.Parameters.Complexity
	}
	if pc.Thresholds.Feasibility == 0 {
		pc.Thresholds.Feasibility = defaults.Thresholds.Feasibility
	}
	if pc.Thresholds.InterimVehicle == 0 {
		pc.Thresholds.InterimVehicle = defaults.Thresholds.InterimVehicle
	}
	if pc.Thresholds.Delivery == 0 {
		pc.Thresholds.Delivery = defaults.Thresholds.Delivery
	}
	if pc.Sampling.StepMonths == 0 {
		pc.Sampling.StepMonths = defaults.Sampling.StepMonths
	}
}

func (pc *ProjectConfig) normalize() {
	pc.Variant = strings.ToLower(strings.TrimSpace(pc.Variant))
	if pc.Variant == "" {
		pc.Variant = string(staffing.VariantClassic)
	}
	if len(pc.Parameters.ComplexityBySkill) == 0 {
		return
	}
	skills := make(map[string]int, len(pc.Parameters.ComplexityBySkill))
	for skill, v := range pc.Parameters.ComplexityBySkill {
		key := strings.ReplaceAll(strings.ToLower(strings.TrimSpace(skill)), "-", "_")
		skills[key] = v
	}
	pc.Parameters.ComplexityBySkill = skills
}

func (pc *ProjectConfig) validate() error {
	if err := validate.Struct(pc); err != nil {
		return err
	}
	if step := pc.Sampling.StepMonths; staffing.HorizonMonths%step != 0 {
		return fmt.Errorf("sampling: step_months=%d must divide %d", step, staffing.HorizonMonths)
	}
	variant, err := staffing.ParseVariant(pc.Variant)
	if err != nil {
		return err
	}
	cfg := Config{Project: *pc}
	params := cfg.Parameters()
	params.Variant = variant
	if err := staffing.Validate(params); err != nil {
		return fmt.Errorf("parameters: %w", err)
	}
	if err := cfg.Thresholds().Validate(); err != nil {
		return fmt.Errorf("thresholds: %w", err)
	}
	return nil
}

func ensureConfigFile(path string) error {
	if _, err := os.Stat(path); err == nil {
		return nil
	} else if !errors.Is(err, fs.ErrNotExist) {
		return err
	}
	return os.WriteFile(path, []byte(defaultConfigYAML), 0o644)
}

package harness

import (
	"bytes"
	"fmt"
	"os"
	"sort"

	"gopkg.in/yaml.v3"

	"github.com/roach88/tennis/internal/engine"
)

// PresetCustom starts rule resolution from zero values instead of a preset.
const PresetCustom = "custom"

// Scenario defines a scripted match and the checks to run on it.
type Scenario struct {
	// Name uniquely identifies this scenario. Golden files are keyed by it.
	Name string `yaml:"name"`

	// Description explains what this scenario validates.
	Description string `yaml:"description"`

	// Rules selects the match rules.
	Rules RulesConfig `yaml:"rules"`

	// Flow contains the steps to execute, in order.
	Flow []FlowStep `yaml:"flow"`

	// Assertions validate the final state and trace.
	Assertions []Assertion `yaml:"assertions"`

	// MatchID is an optional fixed match id. Defaults to
	// testutil.DefaultMatchID.
	MatchID string `yaml:"match_id,omitempty"`
}

// RulesConfig is a preset plus optional per-field overrides.
type RulesConfig struct {
	Preset           string `yaml:"preset,omitempty"`
	SetsToWin        *uint8 `yaml:"sets_to_win,omitempty"`
	TiebreakPoints   *uint8 `yaml:"tiebreak_points,omitempty"`
	FinalSetTiebreak *bool  `yaml:"final_set_tiebreak,omitempty"`
	NoAdScoring      *bool  `yaml:"no_ad_scoring,omitempty"`

	MatchType  *engine.MatchType  `yaml:"match_type,omitempty"`
	ServeOrder []engine.ServeSlot `yaml:"serve_order,omitempty"`
}

// Resolve applies the overrides to the preset and validates the result.
func (s RulesConfig) Resolve() (engine.Rules, error) {
	var rules engine.Rules
	if s.Preset != PresetCustom {
		var err error
		if rules, err = engine.PresetRules(s.Preset); err != nil {
			return engine.Rules{}, err
		}
	}
	if s.SetsToWin != nil {
		rules.SetsToWin = *s.SetsToWin
	}
	if s.TiebreakPoints != nil {
		rules.TiebreakPoints = *s.TiebreakPoints
	}
	if s.FinalSetTiebreak != nil {
		rules.FinalSetTiebreak = *s.FinalSetTiebreak
	}
	if s.NoAdScoring != nil {
		rules.NoAdScoring = *s.NoAdScoring
	}
	if s.MatchType != nil {
		rules.MatchType = *s.MatchType
	}
	if len(s.ServeOrder) > 0 {
		rules.ServeOrder = s.ServeOrder
	}
	if err := rules.Validate(); err != nil {
		return engine.Rules{}, err
	}
	return rules, nil
}

// FlowStep is either a point (Score) or an undo.
type FlowStep struct {
	// Score names the scorer: p1, p2, 1, 2, player1 or player2.
	Score string `yaml:"score,omitempty"`

	// Undo reverts the last point.
	Undo bool `yaml:"undo,omitempty"`

	// Repeat runs the step this many times. Zero means once.
	Repeat int `yaml:"repeat,omitempty"`

	// Expect is checked after the step. If nil, rejections are tolerated
	// and nothing is checked.
	Expect *ExpectClause `yaml:"expect,omitempty"`
}

// Times returns how often the step runs.
func (f FlowStep) Times() int {
	if f.Repeat < 1 {
		return 1
	}
	return f.Repeat
}

// ExpectClause specifies the expected outcome of a step.
type ExpectClause struct {
	// OK is the expected accept/reject outcome of every repetition.
	OK *bool `yaml:"ok,omitempty"`

	// Score is a subset of score fields expected after the last repetition.
	Score map[string]any `yaml:"score,omitempty"`
}

// Assertion validates the final state or the trace.
type Assertion struct {
	// Type is one of the Assert* constants.
	Type string `yaml:"type"`

	// Expect holds expected score fields (final_score).
	Expect map[string]any `yaml:"expect,omitempty"`

	// Value is the expected boolean (can_undo).
	Value *bool `yaml:"value,omitempty"`

	// Count is the expected number (point_count, trace_count) or serve
	// rotation position (current_server).
	Count int `yaml:"count,omitempty"`

	// Sets are the expected completed sets (set_scores).
	Sets []string `yaml:"sets,omitempty"`

	// Action is the step kind to count (trace_count).
	Action string `yaml:"action,omitempty"`
}

// Assertion type constants.
const (
	AssertFinalScore       = "final_score"
	AssertCanUndo          = "can_undo"
	AssertPointCount       = "point_count"
	AssertSetScores        = "set_scores"
	AssertTraceCount       = "trace_count"
	AssertReplayConsistent = "replay_consistent"
	AssertCurrentServer    = "current_server"
)

// scoreFields lists the keys accepted in score expectations.
var scoreFields = func() map[string]bool {
	keys := make(map[string]bool)
	for k := range (engine.State{}).Fields() {
		keys[k] = true
	}
	return keys
}()

// LoadScenario reads and parses a scenario YAML file.
// Returns an error if the file doesn't exist, is malformed,
// contains unknown fields, or is missing required fields.
func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read scenario file: %w", err)
	}
	return ParseScenario(data)
}

// ParseScenario parses and validates scenario YAML.
func ParseScenario(data []byte) (*Scenario, error) {
	var scenario Scenario
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&scenario); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	if err := validateScenario(&scenario); err != nil {
		return nil, fmt.Errorf("invalid scenario: %w", err)
	}
	return &scenario, nil
}

// validateScenario checks that required fields are present and valid.
func validateScenario(s *Scenario) error {
	if s.Name == "" {
		return fmt.Errorf("name is required")
	}

	if s.Description == "" {
		return fmt.Errorf("description is required")
	}

	if len(s.Flow) == 0 {
		return fmt.Errorf("flow list is required and must be non-empty")
	}

	if len(s.Assertions) == 0 {
		return fmt.Errorf("assertions list is required and must be non-empty")
	}

	if _, err := s.Rules.Resolve(); err != nil {
		return fmt.Errorf("rules: %w", err)
	}

	for i, step := range s.Flow {
		if err := validateStep(i, step); err != nil {
			return err
		}
	}

	for i, assertion := range s.Assertions {
		if err := validateAssertion(i, &assertion); err != nil {
			return err
		}
	}

	return nil
}

func validateStep(index int, step FlowStep) error {
	switch {
	case step.Score != "" && step.Undo:
		return fmt.Errorf("flow[%d]: score and undo are mutually exclusive", index)
	case step.Score == "" && !step.Undo:
		return fmt.Errorf("flow[%d]: one of score or undo is required", index)
	}

	if step.Score != "" {
		if _, err := engine.ParsePlayer(step.Score); err != nil {
			return fmt.Errorf("flow[%d]: %w", index, err)
		}
	}

	if step.Repeat < 0 {
		return fmt.Errorf("flow[%d]: repeat must be non-negative", index)
	}

	if step.Expect != nil {
		if err := validateScoreKeys(step.Expect.Score); err != nil {
			return fmt.Errorf("flow[%d].expect: %w", index, err)
		}
	}
	return nil
}

func validateScoreKeys(fields map[string]any) error {
	keys := make([]string, 0, len(fields))
	for k := range fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	for _, k := range keys {
		if !scoreFields[k] {
			return fmt.Errorf("unknown score field %q", k)
		}
	}
	return nil
}

// validateAssertion validates a single assertion based on its type.
func validateAssertion(index int, a *Assertion) error {
	if a.Type == "" {
		return fmt.Errorf("assertions[%d]: type is required", index)
	}

	switch a.Type {
	case AssertFinalScore:
		if len(a.Expect) == 0 {
			return fmt.Errorf("assertions[%d]: expect is required for final_score", index)
		}
		if err := validateScoreKeys(a.Expect); err != nil {
			return fmt.Errorf("assertions[%d]: %w", index, err)
		}
	case AssertCanUndo:
		if a.Value == nil {
			return fmt.Errorf("assertions[%d]: value is required for can_undo", index)
		}
	case AssertPointCount:
		if a.Count < 0 {
			return fmt.Errorf("assertions[%d]: count must be non-negative for point_count", index)
		}
	case AssertSetScores:
		// An empty list asserts that no set has been completed.
	case AssertTraceCount:
		if a.Action != ActionScore && a.Action != ActionUndo {
			return fmt.Errorf("assertions[%d]: action must be %q or %q for trace_count", index, ActionScore, ActionUndo)
		}
		if a.Count < 0 {
			return fmt.Errorf("assertions[%d]: count must be non-negative for trace_count", index)
		}
	case AssertReplayConsistent:
	case AssertCurrentServer:
		if a.Count < 0 {
			return fmt.Errorf("assertions[%d]: count must be non-negative for current_server", index)
		}
	default:
		return fmt.Errorf("assertions[%d]: unknown assertion type %q", index, a.Type)
	}

	return nil
}

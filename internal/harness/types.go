package harness

import "github.com/roach88/tennis/internal/engine"

// Trace actions.
const (
	ActionScore = "score"
	ActionUndo  = "undo"
)

// TraceEvent records one executed step.
type TraceEvent struct {
	Seq    int64          `json:"seq"`
	Action string         `json:"action"`           // "score" or "undo"
	Player string         `json:"player,omitempty"` // scorer, for score steps
	OK     bool           `json:"ok"`
	Score  map[string]any `json:"score"` // State.Fields after the step
}

// Result is the outcome of a scenario execution.
type Result struct {
	// Pass is true when every expect clause and assertion held.
	Pass bool `json:"pass"`

	// Trace contains one event per executed step, in order.
	Trace []TraceEvent `json:"trace"`

	// Errors contains expectation and assertion failures.
	Errors []string `json:"errors,omitempty"`

	// Rules are the resolved rules the match ran under.
	Rules engine.Rules `json:"rules"`

	// Final is the score after the last step.
	Final engine.State `json:"final"`

	// Sets are the completed sets after the last step.
	Sets []engine.SetScore `json:"sets"`

	match *engine.Match
}

// NewResult creates a new passing result.
func NewResult() *Result {
	return &Result{
		Pass:   true,
		Trace:  []TraceEvent{},
		Errors: []string{},
		Sets:   []engine.SetScore{},
	}
}

// AddError adds a failure message and marks the result as failed.
func (r *Result) AddError(err string) {
	r.Errors = append(r.Errors, err)
	r.Pass = false
}

// AddTrace appends a step to the trace.
func (r *Result) AddTrace(seq int64, action string, player engine.Player, ok bool, score engine.State) {
	ev := TraceEvent{
		Seq:    seq,
		Action: action,
		OK:     ok,
		Score:  score.Fields(),
	}
	if action == ActionScore {
		ev.Player = player.String()
	}
	r.Trace = append(r.Trace, ev)
}

// Match returns the match the scenario ran on.
func (r *Result) Match() *engine.Match {
	return r.match
}

package trustgate

import (
	"fmt"
	"sort"

	"github.com/gabisponciano/secure-ai-model/internal/configs"
)

// State tracks the gate through its startup sequence. Any check failure
// lands in the terminal Aborted state.
type State int

const (
	StateInit State = iota
	StateIntegrityChecked
	StateDebuggerChecked
	StateInstrumentationChecked
	StateReady
	StateAborted
)

func (s State) String() string {
	switch s {
	case StateInit:
		return "init"
	case StateIntegrityChecked:
		return "integrity-checked"
	case StateDebuggerChecked:
		return "debugger-checked"
	case StateInstrumentationChecked:
		return "instrumentation-checked"
	case StateReady:
		return "ready"
	case StateAborted:
		return "aborted"
	default:
		return "unknown"
	}
}

// Gate holds the read-only trust policy and the startup state machine.
type Gate struct {
	policy *configs.TrustPolicy
	state  State
}

func New(policy *configs.TrustPolicy) *Gate {
	return &Gate{policy: policy, state: StateInit}
}

func (g *Gate) State() State {
	return g.state
}

func (g *Gate) Ready() bool {
	return g.state == StateReady
}

// Startup runs the full check sequence: integrity for every manifest entry,
// then anti-debug, then anti-instrumentation. The assets map takes each
// manifest asset id to its on-disk path; a manifest entry with no mapping is
// an integrity violation (the file is unavailable).
//
// The returned error is the typed abort reason. Startup never terminates
// the process itself; the caller decides how to react. A gate that has
// already run, in either direction, refuses to run again.
func (g *Gate) Startup(assets map[string]string) error {
	if g.state != StateInit {
		return fmt.Errorf("trust gate already ran (state %s)", g.state)
	}

	// Deterministic order so the first diagnostic is stable.
	ids := make([]string, 0, len(g.policy.IntegrityManifest))
	for id := range g.policy.IntegrityManifest {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	for _, id := range ids {
		path, ok := assets[id]
		if !ok {
			path = id
		}
		if err := VerifyIntegrity(id, path, g.policy); err != nil {
			g.state = StateAborted
			return err
		}
	}
	g.state = StateIntegrityChecked

	if err := DetectDebugger(g.policy); err != nil {
		g.state = StateAborted
		return err
	}
	g.state = StateDebuggerChecked

	if err := DetectInstrumentation(g.policy); err != nil {
		g.state = StateAborted
		return err
	}
	g.state = StateInstrumentationChecked

	g.state = StateReady
	return nil
}

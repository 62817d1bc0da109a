package bench

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/gabisponciano/secure-ai-model/internal/model"
	"github.com/gabisponciano/secure-ai-model/internal/unwrap"
)

// Run holds the stage timings of a single pipeline pass. Stages that
// did not execute in a pass stay zero.
type Run struct {
	UnwrapKeyTime time.Duration
	DecryptTime   time.Duration
	LoadTime      time.Duration
	InferenceTime time.Duration
	TotalTime     time.Duration
}

// Session collects the runs of one benchmark invocation. Setup is
// non-nil when the decrypt and load stages ran once up front instead
// of on every run.
type Session struct {
	ID    string
	Setup *Run
	Runs  []Run
}

// Mean averages the stage timings over all runs. An empty session
// returns a zero Run.
func (s *Session) Mean() Run {
	var mean Run
	if len(s.Runs) == 0 {
		return mean
	}
	for _, r := range s.Runs {
		mean.UnwrapKeyTime += r.UnwrapKeyTime
		mean.DecryptTime += r.DecryptTime
		mean.LoadTime += r.LoadTime
		mean.InferenceTime += r.InferenceTime
		mean.TotalTime += r.TotalTime
	}
	n := time.Duration(len(s.Runs))
	mean.UnwrapKeyTime /= n
	mean.DecryptTime /= n
	mean.LoadTime /= n
	mean.InferenceTime /= n
	mean.TotalTime /= n
	return mean
}

// Harness drives the pipeline through injected stage functions so the
// timing logic stays independent of key material on disk.
type Harness struct {
	// WrappedKey and Asset supply the encrypted inputs for each pass.
	WrappedKey func() ([]byte, error)
	Asset      func() ([]byte, error)

	Unwrap  func(wrapped []byte) ([]byte, error)
	Decrypt func(key, blob []byte) ([]byte, error)
	Load    func(plaintext []byte) (*model.Network, error)
	Infer   func(net *model.Network) error
}

// RunOnce executes the full pipeline a single time. Unwrapped key and
// decrypted plaintext are wiped before returning.
func (h *Harness) RunOnce() (Run, error) {
	var run Run
	start := time.Now()

	wrapped, err := h.WrappedKey()
	if err != nil {
		return run, fmt.Errorf("failed to read wrapped key: %w", err)
	}
	blob, err := h.Asset()
	if err != nil {
		return run, fmt.Errorf("failed to read encrypted asset: %w", err)
	}

	stage := time.Now()
	key, err := h.Unwrap(wrapped)
	if err != nil {
		return run, err
	}
	defer unwrap.Zeroize(key)
	run.UnwrapKeyTime = time.Since(stage)

	stage = time.Now()
	plaintext, err := h.Decrypt(key, blob)
	if err != nil {
		return run, err
	}
	defer unwrap.Zeroize(plaintext)
	run.DecryptTime = time.Since(stage)

	stage = time.Now()
	net, err := h.Load(plaintext)
	if err != nil {
		return run, err
	}
	run.LoadTime = time.Since(stage)

	stage = time.Now()
	if err := h.Infer(net); err != nil {
		return run, err
	}
	run.InferenceTime = time.Since(stage)

	run.TotalTime = time.Since(start)
	return run, nil
}

// Run executes the full pipeline n times. The first stage error
// aborts the session.
func (h *Harness) Run(n int) (*Session, error) {
	session := &Session{ID: uuid.NewString()}
	for i := 0; i < n; i++ {
		run, err := h.RunOnce()
		if err != nil {
			return nil, fmt.Errorf("run %d: %w", i+1, err)
		}
		session.Runs = append(session.Runs, run)
	}
	return session, nil
}

// RunShared unwraps, decrypts and loads once, then times only the
// inference stage n times. The setup timings land in Session.Setup.
func (h *Harness) RunShared(n int) (*Session, error) {
	session := &Session{ID: uuid.NewString()}

	setup, net, err := h.setup()
	if err != nil {
		return nil, err
	}
	session.Setup = setup

	for i := 0; i < n; i++ {
		var run Run
		stage := time.Now()
		if err := h.Infer(net); err != nil {
			return nil, fmt.Errorf("run %d: %w", i+1, err)
		}
		run.InferenceTime = time.Since(stage)
		run.TotalTime = run.InferenceTime
		session.Runs = append(session.Runs, run)
	}
	return session, nil
}

func (h *Harness) setup() (*Run, *model.Network, error) {
	var run Run
	start := time.Now()

	wrapped, err := h.WrappedKey()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to read wrapped key: %w", err)
	}
	blob, err := h.Asset()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to read encrypted asset: %w", err)
	}

	stage := time.Now()
	key, err := h.Unwrap(wrapped)
	if err != nil {
		return nil, nil, err
	}
	defer unwrap.Zeroize(key)
	run.UnwrapKeyTime = time.Since(stage)

	stage = time.Now()
	plaintext, err := h.Decrypt(key, blob)
	if err != nil {
		return nil, nil, err
	}
	defer unwrap.Zeroize(plaintext)
	run.DecryptTime = time.Since(stage)

	stage = time.Now()
	net, err := h.Load(plaintext)
	if err != nil {
		return nil, nil, err
	}
	run.LoadTime = time.Since(stage)

	run.TotalTime = time.Since(start)
	return &run, net, nil
}

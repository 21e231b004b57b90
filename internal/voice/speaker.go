package voice

import (
	"context"
	"log/slog"
	"os/exec"
	"sync"
)

// Task tracks one asynchronous utterance. Cancel stops it early; Done
// closes when it finishes for any reason.
type Task struct {
	done   chan struct{}
	cancel context.CancelFunc

	mu  sync.Mutex
	err error
}

// Done returns a channel closed when the utterance has finished.
func (t *Task) Done() <-chan struct{} { return t.done }

// Err returns the utterance's outcome once Done is closed.
func (t *Task) Err() error {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.err
}

// Cancel stops the utterance. Safe to call at any time.
func (t *Task) Cancel() { t.cancel() }

func completedTask(err error) *Task {
	t := &Task{done: make(chan struct{}), cancel: func() {}, err: err}
	close(t.done)
	return t
}

// synthesizer backends probed in order.
var synthBackends = []struct {
	bin  string
	args func(language, text string) []string
}{
	{"say", func(_, text string) []string { return []string{text} }},
	{"espeak-ng", func(language, text string) []string { return []string{"-v", language, text} }},
	{"espeak", func(language, text string) []string { return []string{"-v", language, text} }},
}

// Speaker narrates text through a local synthesizer binary. Starting a
// new utterance cancels the one in flight, matching how a human
// interviewer moves on rather than talking over themselves.
type Speaker struct {
	logger *slog.Logger

	mu      sync.Mutex
	bin     string
	argsFor func(language, text string) []string
	current *Task

	// lookPath and startCmd are swappable in tests.
	lookPath func(string) (string, error)
	startCmd func(ctx context.Context, bin string, args []string) error
}

// NewSpeaker probes the host for a synthesizer binary. A host with
// none yields a permanently disabled speaker; Speak then degrades to
// a completed no-op.
func NewSpeaker(logger *slog.Logger) *Speaker {
	if logger == nil {
		logger = slog.Default()
	}
	s := &Speaker{
		logger:   logger,
		lookPath: exec.LookPath,
		startCmd: runCmd,
	}
	s.probe()
	return s
}

func (s *Speaker) probe() {
	for _, backend := range synthBackends {
		if path, err := s.lookPath(backend.bin); err == nil {
			s.bin = path
			s.argsFor = backend.args
			s.logger.Debug("speech synthesizer found", "binary", path)
			return
		}
	}
	s.logger.Debug("no speech synthesizer on host, narration disabled")
}

// Enabled reports whether a synthesizer backend was found.
func (s *Speaker) Enabled() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.bin != ""
}

// Speak starts narrating text in the given language, cancelling any
// in-flight utterance first. It never blocks on the narration itself.
// With no backend it returns an already-completed task carrying
// ErrUnavailable.
func (s *Speaker) Speak(text, language string) *Task {
	if text == "" {
		return completedTask(nil)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.bin == "" {
		return completedTask(ErrUnavailable)
	}
	if s.current != nil {
		s.current.cancel()
	}

	ctx, cancel := context.WithCancel(context.Background())
	task := &Task{done: make(chan struct{}), cancel: cancel}
	s.current = task

	bin, args := s.bin, s.argsFor(language, text)
	go func() {
		err := s.startCmd(ctx, bin, args)
		task.mu.Lock()
		task.err = err
		task.mu.Unlock()
		close(task.done)
		if err != nil && ctx.Err() == nil {
			s.logger.Warn("narration failed", "error", err)
		}
	}()
	return task
}

// Stop cancels the in-flight utterance, if any.
func (s *Speaker) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.current != nil {
		s.current.cancel()
		s.current = nil
	}
}

func runCmd(ctx context.Context, bin string, args []string) error {
	return exec.CommandContext(ctx, bin, args...).Run()
}

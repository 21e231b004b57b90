// Package voice is the boundary to the host's speech and camera
// capabilities: narration of questions, speech capture for subjective
// answers, and the camera preview used by face-to-face mode. Every
// capability degrades to a silent no-op when the host lacks it; the
// interview itself never depends on any of them succeeding.
package voice

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/rahulj/mockmate/internal/bank"
)

// ErrUnavailable reports that the host lacks the requested capability.
var ErrUnavailable = errors.New("capability unavailable on this host")

// NarrationText composes the spoken form of a question: its ordinal,
// the text, and the numbered options when it has any.
func NarrationText(ordinal int, q bank.Question) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Question %d. %s.", ordinal, strings.TrimSuffix(q.Text, "."))
	if len(q.Options) > 0 {
		b.WriteString(" Your options are:")
		for i, opt := range q.Options {
			if i > 0 {
				b.WriteString(".")
			}
			fmt.Fprintf(&b, " Option %d: %s", i+1, opt)
		}
	}
	return b.String()
}

// Narrator speaks text aloud. *Speaker is the host-backed
// implementation; screens depend on the interface so narration can be
// observed in tests.
type Narrator interface {
	// Enabled reports whether narration can ever be heard.
	Enabled() bool

	// Speak starts narrating text, cancelling any in-flight utterance
	// first. It never blocks on the narration itself.
	Speak(text, language string) *Task

	// Stop cancels the in-flight utterance, if any.
	Stop()
}

// Recognizer captures one spoken answer and returns its transcript.
type Recognizer interface {
	// Listen blocks until an utterance is transcribed, the context is
	// cancelled, or the capability fails. Implementations without a
	// host backend return ErrUnavailable immediately.
	Listen(ctx context.Context, language string) (string, error)

	// Available reports whether Listen can ever succeed.
	Available() bool
}

// Camera controls the face-to-face preview.
type Camera interface {
	// Start opens the preview. A failed start is non-fatal: callers
	// leave the preview blank and continue.
	Start() error
	Stop()
	Available() bool
}

package voice

import "context"

// NoRecognizer is the speech-capture boundary on hosts without a
// recognition backend. Listen fails immediately with ErrUnavailable
// and the interview falls back to typed answers.
type NoRecognizer struct{}

func (NoRecognizer) Listen(ctx context.Context, language string) (string, error) {
	return "", ErrUnavailable
}

func (NoRecognizer) Available() bool { return false }

// NoCamera is the camera boundary on hosts without video capture.
// Start fails non-fatally and the preview stays blank.
type NoCamera struct{}

func (NoCamera) Start() error    { return ErrUnavailable }
func (NoCamera) Stop()           {}
func (NoCamera) Available() bool { return false }

package session

// Mode selects how the interview is conducted.
type Mode string

const (
	// ModeStandard is the plain question-and-answer flow.
	ModeStandard Mode = "standard"
	// ModeFaceToFace adds camera preview and voice capture.
	ModeFaceToFace Mode = "face-to-face"
)

// Setup is the session context chosen before an interview starts.
// It is an explicit value passed into the engine rather than ambient
// state; engine calls never read configuration from anywhere else.
type Setup struct {
	Domain     string
	Role       string
	Position   string
	Skills     []string
	Categories []string // aptitude-only sub-category filter; empty means no restriction
	Mode       Mode
	Language   string // BCP 47 tag for narration and capture
	Count      int    // requested question count
}

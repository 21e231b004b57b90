// Package roadmap builds a phased preparation plan from a scored
// attempt: three phases spread over the chosen horizon, focused on the
// attempt's weak topics or the domain's preset focus areas.
package roadmap

import (
	"fmt"
	"sort"
	"strings"

	"github.com/rahulj/mockmate/internal/scoring"
)

// Horizon is how long the candidate commits to preparing.
type Horizon string

const (
	HorizonOneMonth    Horizon = "1m"
	HorizonTwoMonths   Horizon = "2m"
	HorizonThreeMonths Horizon = "3m"
)

// Weeks returns the plan length for the horizon. Unknown horizons get
// a middle-of-the-road six weeks.
func (h Horizon) Weeks() int {
	switch h {
	case HorizonOneMonth:
		return 4
	case HorizonTwoMonths:
		return 8
	case HorizonThreeMonths:
		return 12
	default:
		return 6
	}
}

// ParseHorizon validates a horizon string from flags or UI input.
func ParseHorizon(s string) (Horizon, error) {
	switch Horizon(s) {
	case HorizonOneMonth, HorizonTwoMonths, HorizonThreeMonths:
		return Horizon(s), nil
	}
	return "", fmt.Errorf("unknown horizon %q (want 1m, 2m, or 3m)", s)
}

// Phase is one band of the plan.
type Phase struct {
	Label       string   `json:"label"`
	Description string   `json:"description"`
	StartWeek   int      `json:"start_week"`
	EndWeek     int      `json:"end_week"`
	Focus       []string `json:"focus"`
}

// Window formats the phase's week range for display.
func (p Phase) Window() string {
	return fmt.Sprintf("Weeks %d-%d", p.StartWeek, p.EndWeek)
}

type preset struct {
	focus  []string
	phases [3]string // Foundations, Deep Practice, Simulation
}

var phaseLabels = [3]string{"Foundations", "Deep Practice", "Simulation"}

var presets = map[string]preset{
	"Computer / IT": {
		focus: []string{"DSA", "System Design", "Language & Frameworks"},
		phases: [3]string{
			"Rebuild core CS foundations: data structures, algorithms, and language fundamentals for your chosen tech stack.",
			"Solve varied coding problems, build 1-2 focused projects that mirror your target role (frontend, backend, etc.).",
			"Run mock interviews on platforms, system design discussions, and timed coding rounds close to company patterns.",
		},
	},
	"Mechanical Engineering": {
		focus: []string{"Mechanics of Materials", "Machine Design", "Thermal / HVAC"},
		phases: [3]string{
			"Refresh strength of materials, theory of machines, and thermodynamics with numerical problems and past exam/company questions.",
			"Work on design calculations for shafts, beams, gear trains, plus 3D modelling exercises in CAD tools relevant to your role.",
			"Prepare detailed case studies (e.g. a complete component or system) and walk through them verbally as in a design review.",
		},
	},
	"Civil Engineering": {
		focus: []string{"Structural Analysis", "Concrete & Steel Design", "Geotechnical / Foundations"},
		phases: [3]string{
			"Revisit structural analysis basics, load combinations, and soil mechanics fundamentals with hand-calculation practice.",
			"Design example beams, slabs, columns and foundations using relevant codes; practice quantity estimation and drawings.",
			"Simulate site-style interviews: explain design decisions, safety margins, and how you would handle real project constraints.",
		},
	},
	"Electrical Engineering": {
		focus: []string{"Circuits & Machines", "Power Systems", "Control / Protection"},
		phases: [3]string{
			"Strengthen basic circuit theory, AC analysis, and machine principles with solved problems and derivations.",
			"Analyze power flow, fault levels, and protection schemes; solve numerical problems similar to utility / core company interviews.",
			"Practice explaining single-line diagrams and control strategies on a whiteboard as if in a panel technical round.",
		},
	},
	"Electronics & Communication": {
		focus: []string{"Signals & Systems", "Analog/Digital Electronics", "Communication Systems"},
		phases: [3]string{
			"Revise signals, systems, and network theory with emphasis on frequency response, filters, and basic device characteristics.",
			"Design small circuits, work through modulation/demodulation problems, and timing/logic design examples.",
			"Explain block diagrams of real-world communication links or embedded systems as you would in an EC core interview.",
		},
	},
	"Chemical Engineering": {
		focus: []string{"Fluid Mechanics", "Heat & Mass Transfer", "Reaction Engineering"},
		phases: [3]string{
			"Rebuild fundamentals: dimensionless numbers, basic reactor types, and transfer operations through numerical practice.",
			"Solve design and rating problems for exchangers, columns, and reactors similar to process design interview questions.",
			"Walk through full process flowsheets and safety considerations for a plant-style problem in mock interviews.",
		},
	},
}

const fallbackPresetDomain = "Computer / IT"

// Build derives the phased plan from a scored attempt. Weak topics
// from the attempt take priority as focus areas; a clean attempt falls
// back to the domain preset's focus list. Week bands partition the
// horizon contiguously across the three phases.
func Build(res scoring.Result, horizon Horizon) []Phase {
	p, ok := presets[res.Domain]
	if !ok {
		p = presets[fallbackPresetDomain]
	}
	focus := weakTopicList(res.WeakTopics)
	if len(focus) == 0 {
		focus = p.focus
	}

	weeks := horizon.Weeks()
	phases := make([]Phase, len(phaseLabels))
	for i, label := range phaseLabels {
		phases[i] = Phase{
			Label:       label,
			Description: p.phases[i],
			StartWeek:   i*weeks/len(phaseLabels) + 1,
			EndWeek:     (i + 1) * weeks / len(phaseLabels),
			Focus:       focus,
		}
	}
	return phases
}

// Summary writes the one-paragraph result narration shown above the
// plan.
func Summary(res scoring.Result) string {
	topics := weakTopicList(res.WeakTopics)
	weakSummary := "You showed balanced strength across the topics asked."
	if len(topics) > 0 {
		weakSummary = "Your weaker areas were " + strings.Join(topics, ", ") + "."
	}
	role := res.Role
	if role == "" {
		role = "selected"
	}
	position := res.Position
	if position == "" {
		position = "your chosen"
	}
	streamText := ""
	if res.Domain != "" {
		streamText = " in " + res.Domain
	}
	return fmt.Sprintf("For the %s role%s at %s level, you scored %d%% and currently stand at %s level. %s",
		role, streamText, position, res.ScorePercent, res.Level, weakSummary)
}

// weakTopicList returns the weak-topic names in deterministic order,
// most-missed first and alphabetical within a tie.
func weakTopicList(weak map[string]int) []string {
	topics := make([]string, 0, len(weak))
	for topic := range weak {
		topics = append(topics, topic)
	}
	sort.Slice(topics, func(i, j int) bool {
		if weak[topics[i]] != weak[topics[j]] {
			return weak[topics[i]] > weak[topics[j]]
		}
		return topics[i] < topics[j]
	})
	return topics
}

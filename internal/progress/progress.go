// Package progress aggregates stored attempt results into the
// dashboard overview: totals, averages, per-domain breakdown, and the
// most recent attempts.
package progress

import (
	"math"

	"github.com/rahulj/mockmate/internal/scoring"
)

// fallbackDomain labels attempts that predate domain tracking.
const fallbackDomain = "General"

// RecentLimit is how many attempts the overview keeps in Recent.
const RecentLimit = 5

// DomainStat is the per-domain aggregate.
type DomainStat struct {
	Count    int `json:"count"`
	AvgScore int `json:"avg_score"`
}

// Overview is the computed progress summary for one user's history.
type Overview struct {
	TotalAttempts  int                   `json:"total_attempts"`
	TotalQuestions int                   `json:"total_questions"`
	AverageScore   int                   `json:"average_score"`
	BestScore      int                   `json:"best_score"`
	ByDomain       map[string]DomainStat `json:"by_domain"`
	Recent         []scoring.Result      `json:"recent"`
}

// Compute builds the overview from the attempt history. The history is
// expected most-recent-first, as the store returns it; Recent is the
// leading RecentLimit entries. An empty history yields all zeros and an
// empty (non-nil) domain map.
func Compute(history []scoring.Result) Overview {
	ov := Overview{ByDomain: make(map[string]DomainStat)}
	ov.TotalAttempts = len(history)
	if len(history) == 0 {
		return ov
	}

	scoreSum := 0
	domainSums := make(map[string]int)
	for _, r := range history {
		ov.TotalQuestions += r.Total
		scoreSum += r.ScorePercent
		if r.ScorePercent > ov.BestScore {
			ov.BestScore = r.ScorePercent
		}
		domain := r.Domain
		if domain == "" {
			domain = fallbackDomain
		}
		stat := ov.ByDomain[domain]
		stat.Count++
		ov.ByDomain[domain] = stat
		domainSums[domain] += r.ScorePercent
	}
	ov.AverageScore = roundedAvg(scoreSum, len(history))
	for domain, stat := range ov.ByDomain {
		stat.AvgScore = roundedAvg(domainSums[domain], stat.Count)
		ov.ByDomain[domain] = stat
	}

	n := min(RecentLimit, len(history))
	ov.Recent = history[:n]
	return ov
}

func roundedAvg(sum, n int) int {
	return int(math.Round(float64(sum) / float64(n)))
}

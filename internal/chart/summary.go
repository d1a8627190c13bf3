package chart

import (
	"gonum.org/v1/gonum/stat"

	"github.com/opencode-ai/studymind/internal/models"
)

// Summary aggregates the study session history.
type Summary struct {
	Sessions        int     `json:"sessions"`
	Completed       int     `json:"completed"`
	TotalMinutes    int     `json:"total_minutes"`
	MeanScore       float64 `json:"mean_score"`
	ScoreStdDev     float64 `json:"score_stddev"`
	CompletionRatio float64 `json:"completion_ratio"`
	MeanProgress    float64 `json:"mean_progress"`
}

// Summarize computes summary statistics. Sessions without a score are
// excluded from the score figures.
func Summarize(snapshot *models.Snapshot) Summary {
	var sum Summary
	if snapshot == nil {
		return sum
	}

	var scores []float64
	for _, s := range snapshot.StudySessions {
		sum.Sessions++
		sum.TotalMinutes += s.Duration
		if s.Completed {
			sum.Completed++
		}
		if s.Score != nil {
			scores = append(scores, float64(*s.Score))
		}
	}
	if len(scores) > 0 {
		sum.MeanScore = stat.Mean(scores, nil)
	}
	if len(scores) > 1 {
		sum.ScoreStdDev = stat.StdDev(scores, nil)
	}
	if sum.Sessions > 0 {
		sum.CompletionRatio = float64(sum.Completed) / float64(sum.Sessions)
	}

	progress := make([]float64, 0, len(snapshot.Subjects))
	weights := make([]float64, 0, len(snapshot.Subjects))
	for _, s := range snapshot.Subjects {
		progress = append(progress, float64(s.Progress))
		weights = append(weights, float64(s.HoursAllocated))
	}
	if len(progress) > 0 && !allZero(weights) {
		sum.MeanProgress = stat.Mean(progress, weights)
	} else if len(progress) > 0 {
		sum.MeanProgress = stat.Mean(progress, nil)
	}
	return sum
}

func allZero(values []float64) bool {
	for _, v := range values {
		if v != 0 {
			return false
		}
	}
	return true
}

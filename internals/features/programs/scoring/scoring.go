// Package scoring holds the two behaviour-derived metrics: the 1-5 work-program
// performance rating frozen on completed enrollments, and the 0-100 rehabilitation
// score shown in reports. They use different inputs and scales and are kept apart.
package scoring

import (
	"math"

	behaviorModel "prisonsphere_backend/internals/features/programs/behavior_logs/model"
)

const (
	DefaultPerformanceRating = 3
	MinPerformanceRating     = 1
	MaxPerformanceRating     = 5

	incidentPenalty = 5.0
)

// Ratings is one behaviour snapshot.
type Ratings struct {
	WorkEthic       int
	Cooperation     int
	SocialSkills    int
	IncidentReports int
}

func FromBehaviorLogs(logs []behaviorModel.BehaviorLogModel) []Ratings {
	out := make([]Ratings, 0, len(logs))
	for _, l := range logs {
		out = append(out, Ratings{
			WorkEthic:       l.BehaviorLogWorkEthic,
			Cooperation:     l.BehaviorLogCooperation,
			SocialSkills:    l.BehaviorLogSocialSkills,
			IncidentReports: l.BehaviorLogIncidentReports,
		})
	}
	return out
}

/* =========================
   Performance rating (1-5)
========================= */

// PerformanceRating averages (we + coop + ss + (5 - incidents)) / 4 over all logs,
// clamps to [1,5] and rounds half away from zero. No logs gives 3.
func PerformanceRating(logs []Ratings) int {
	if len(logs) == 0 {
		return DefaultPerformanceRating
	}
	var sum float64
	for _, r := range logs {
		sum += float64(r.WorkEthic+r.Cooperation+r.SocialSkills+(5-r.IncidentReports)) / 4
	}
	avg := clamp(sum/float64(len(logs)), MinPerformanceRating, MaxPerformanceRating)
	return int(math.Round(avg))
}

func PerformanceLabel(rating int) string {
	switch {
	case rating >= 5:
		return "Excellent"
	case rating == 4:
		return "Good"
	case rating == 3:
		return "Average"
	case rating == 2:
		return "Poor"
	default:
		return "Very Poor"
	}
}

/* =========================
   Rehabilitation score (0-100)
========================= */

type RehabResult struct {
	Score          float64 `json:"score"`
	Label          string  `json:"label"`
	AvgWorkEthic   float64 `json:"avg_work_ethic"`
	AvgCooperation float64 `json:"avg_cooperation"`
	TotalIncidents int     `json:"total_incidents"`
	LogCount       int     `json:"log_count"`
}

// RehabScore is ((avg work ethic + avg cooperation) / 10) * 100 minus 5 per
// reported incident, floored at 0. No logs gives 0.
func RehabScore(logs []Ratings) RehabResult {
	res := RehabResult{LogCount: len(logs)}
	if len(logs) == 0 {
		res.Label = RehabLabel(0)
		return res
	}

	var we, coop float64
	for _, r := range logs {
		we += float64(r.WorkEthic)
		coop += float64(r.Cooperation)
		res.TotalIncidents += r.IncidentReports
	}
	n := float64(len(logs))
	res.AvgWorkEthic = we / n
	res.AvgCooperation = coop / n

	score := ((res.AvgWorkEthic+res.AvgCooperation)/10)*100 - incidentPenalty*float64(res.TotalIncidents)
	if score < 0 {
		score = 0
	}
	res.Score = math.Round(score*100) / 100
	res.Label = RehabLabel(res.Score)
	return res
}

func RehabLabel(score float64) string {
	switch {
	case score >= 80:
		return "Highly Rehabilitated"
	case score >= 60:
		return "Moderately Rehabilitated"
	case score >= 40:
		return "Partially Rehabilitated"
	default:
		return "Needs More Rehabilitation"
	}
}

func clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}

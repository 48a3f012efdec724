package service

import (
	"time"

	"gorm.io/gorm"

	inmateModel "prisonsphere_backend/internals/features/inmates/inmates/model"
	paroleModel "prisonsphere_backend/internals/features/inmates/paroles/model"
	visitorModel "prisonsphere_backend/internals/features/inmates/visitors/model"
	activityService "prisonsphere_backend/internals/features/programs/activity_logs/service"
	behaviorModel "prisonsphere_backend/internals/features/programs/behavior_logs/model"
	workModel "prisonsphere_backend/internals/features/programs/work_programs/model"
	"prisonsphere_backend/internals/helpers/dbtime"
)

const AnalyticsMonths = 12

type Stats struct {
	TotalInmates      int64 `json:"total_inmates"`
	Incarcerated      int64 `json:"incarcerated"`
	OnParole          int64 `json:"on_parole"`
	Released          int64 `json:"released"`
	PendingParoles    int64 `json:"pending_paroles"`
	UpcomingHearings  int64 `json:"upcoming_hearings"`
	ActiveEnrollments int64 `json:"active_enrollments"`
	VisitsToday       int64 `json:"visits_today"`
	TotalVisits       int64 `json:"total_visits"`
}

// LoadStats counts the headline numbers shown on the dashboard.
func LoadStats(db *gorm.DB, now time.Time) (*Stats, error) {
	var byStatus []struct {
		Status string
		Total  int64
	}
	if err := db.Model(&inmateModel.InmateModel{}).
		Select("inmate_status AS status, COUNT(*) AS total").
		Group("inmate_status").
		Scan(&byStatus).Error; err != nil {
		return nil, err
	}

	s := &Stats{}
	for _, r := range byStatus {
		s.TotalInmates += r.Total
		switch r.Status {
		case inmateModel.StatusIncarcerated:
			s.Incarcerated = r.Total
		case inmateModel.StatusParole:
			s.OnParole = r.Total
		case inmateModel.StatusReleased:
			s.Released = r.Total
		}
	}

	day := dbtime.StartOfDay(now)
	counts := []struct {
		dst   *int64
		query *gorm.DB
	}{
		{&s.PendingParoles, db.Model(&paroleModel.ParoleModel{}).
			Where("parole_status = ?", paroleModel.ParolePending)},
		{&s.UpcomingHearings, db.Model(&paroleModel.ParoleModel{}).
			Where("parole_status = ? AND parole_hearing_date >= ?", paroleModel.ParolePending, now.UTC())},
		{&s.ActiveEnrollments, db.Model(&workModel.WorkProgramEnrollmentModel{}).
			Where("enrollment_status = ?", workModel.EnrollmentActive)},
		{&s.VisitsToday, db.Model(&visitorModel.VisitorModel{}).
			Where("visitor_visit_at >= ? AND visitor_visit_at < ?", day, day.AddDate(0, 0, 1))},
		{&s.TotalVisits, db.Model(&visitorModel.VisitorModel{})},
	}
	for _, c := range counts {
		if err := c.query.Count(c.dst).Error; err != nil {
			return nil, err
		}
	}
	return s, nil
}

type MonthCount struct {
	Month string `json:"month"`
	Count int64  `json:"count"`
}

type BehaviorAverages struct {
	WorkEthic       float64 `json:"work_ethic"`
	Cooperation     float64 `json:"cooperation"`
	SocialSkills    float64 `json:"social_skills"`
	IncidentReports float64 `json:"incident_reports"`
	LogCount        int64   `json:"log_count"`
}

type Analytics struct {
	MonthlyAdmissions    []MonthCount     `json:"monthly_admissions"`
	ParoleOutcomes       map[string]int64 `json:"parole_outcomes"`
	ActivityDistribution map[string]int64 `json:"activity_distribution"`
	BehaviorAverages     BehaviorAverages `json:"behavior_averages"`
}

// LoadAnalytics builds the chart data: admissions per month for the last
// twelve months including the current one, parole outcomes, activity types
// and average behavior ratings.
func LoadAnalytics(db *gorm.DB, now time.Time) (*Analytics, error) {
	months := monthBuckets(now, AnalyticsMonths)

	var admitted []time.Time
	if err := db.Model(&inmateModel.InmateModel{}).
		Where("inmate_admission_date >= ?", months[0]).
		Pluck("inmate_admission_date", &admitted).Error; err != nil {
		return nil, err
	}

	out := &Analytics{
		MonthlyAdmissions: bucketByMonth(admitted, months),
		ParoleOutcomes: map[string]int64{
			paroleModel.ParolePending:  0,
			paroleModel.ParoleApproved: 0,
			paroleModel.ParoleDenied:   0,
		},
	}

	var outcomes []struct {
		Status string
		Total  int64
	}
	if err := db.Model(&paroleModel.ParoleModel{}).
		Select("parole_status AS status, COUNT(*) AS total").
		Group("parole_status").
		Scan(&outcomes).Error; err != nil {
		return nil, err
	}
	for _, o := range outcomes {
		out.ParoleOutcomes[o.Status] = o.Total
	}

	dist, err := activityService.TypeCounts(db)
	if err != nil {
		return nil, err
	}
	out.ActivityDistribution = dist

	var avg struct {
		WorkEthic       *float64
		Cooperation     *float64
		SocialSkills    *float64
		IncidentReports *float64
		LogCount        int64
	}
	if err := db.Model(&behaviorModel.BehaviorLogModel{}).
		Select(`AVG(behavior_log_work_ethic) AS work_ethic,
			AVG(behavior_log_cooperation) AS cooperation,
			AVG(behavior_log_social_skills) AS social_skills,
			AVG(behavior_log_incident_reports) AS incident_reports,
			COUNT(*) AS log_count`).
		Scan(&avg).Error; err != nil {
		return nil, err
	}
	out.BehaviorAverages = BehaviorAverages{
		WorkEthic:       round2(avg.WorkEthic),
		Cooperation:     round2(avg.Cooperation),
		SocialSkills:    round2(avg.SocialSkills),
		IncidentReports: round2(avg.IncidentReports),
		LogCount:        avg.LogCount,
	}
	return out, nil
}

// monthBuckets returns the first instant of each of the n months ending with
// the month containing now, oldest first.
func monthBuckets(now time.Time, n int) []time.Time {
	y, m, _ := now.UTC().Date()
	current := time.Date(y, m, 1, 0, 0, 0, 0, time.UTC)
	out := make([]time.Time, n)
	for i := 0; i < n; i++ {
		out[i] = current.AddDate(0, i-(n-1), 0)
	}
	return out
}

func bucketByMonth(dates []time.Time, months []time.Time) []MonthCount {
	index := make(map[string]int, len(months))
	out := make([]MonthCount, len(months))
	for i, m := range months {
		key := m.Format("2006-01")
		index[key] = i
		out[i] = MonthCount{Month: key}
	}
	for _, d := range dates {
		if i, ok := index[d.UTC().Format("2006-01")]; ok {
			out[i].Count++
		}
	}
	return out
}

func round2(v *float64) float64 {
	if v == nil {
		return 0
	}
	return float64(int64(*v*100+0.5)) / 100
}

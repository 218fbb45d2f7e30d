package kpi

import (
	"math"

	"github.com/cmlabs-hris/hotel-performance-backend/internal/domain/attendance"
	"github.com/cmlabs-hris/hotel-performance-backend/internal/domain/kpi"
	"github.com/cmlabs-hris/hotel-performance-backend/internal/domain/schedule"
	"github.com/cmlabs-hris/hotel-performance-backend/internal/pkg/calendar"
	"github.com/shopspring/decimal"
)

// AttendanceTally holds the monthly violation counts.
type AttendanceTally struct {
	Late     int
	Missing  int
	Absent   int
	Attended int
}

// Clean reports a month without late, missing or absent days.
func (t AttendanceTally) Clean() bool {
	return t.Late == 0 && t.Missing == 0 && t.Absent == 0
}

// TallyAttendance counts late and missing checkout records of the month and
// infers absences: a workday among the first elapsedDays days with no record
// at all. Non-workdays never count as absences.
func TallyAttendance(records []attendance.Attendance, sched schedule.EmployeeSchedule, month calendar.Month, elapsedDays int) AttendanceTally {
	var t AttendanceTally
	recorded := make(map[string]bool, len(records))

	for _, r := range records {
		if !month.Contains(r.Date) {
			continue
		}
		recorded[r.Date] = true

		switch r.AbsenceType {
		case attendance.AbsenceTypeLate:
			t.Late++
		case attendance.AbsenceTypeMissingCheckout:
			t.Missing++
		}
		if r.CheckIn != nil {
			t.Attended++
		}
	}

	if elapsedDays > month.Days() {
		elapsedDays = month.Days()
	}
	for day := 1; day <= elapsedDays; day++ {
		if sched.ExpectsWork(month, day) && !recorded[month.DateKey(day)] {
			t.Absent++
		}
	}

	return t
}

// BaseAttendanceScore floors the score at the minimum on any absence,
// otherwise takes half a point per late day and a point per missing checkout.
func BaseAttendanceScore(t AttendanceTally) float64 {
	if t.Absent > 0 {
		return kpi.MinScore
	}
	score := kpi.MaxScore - float64(t.Late)/2 - float64(t.Missing)
	return math.Max(kpi.MinScore, score)
}

// BonusCandidate reports whether the streak bonus must be checked against the
// two previous months: the score is below the maximum while the month itself
// is clean.
func BonusCandidate(score float64, t AttendanceTally) bool {
	return score < kpi.MaxScore && t.Clean()
}

// HasNoLateRecords reports whether none of the records is classified late.
func HasNoLateRecords(records []attendance.Attendance) bool {
	for _, r := range records {
		if r.AbsenceType == attendance.AbsenceTypeLate {
			return false
		}
	}
	return true
}

// RoundScore rounds half up to one decimal place.
func RoundScore(v float64) float64 {
	return decimal.NewFromFloat(v).Round(1).InexactFloat64()
}

// ApplyStreakBonus adds one point, capped at the maximum, when the score is
// a bonus candidate and both preceding months had no late records.
// priorMonthsClean is only called for candidates.
func ApplyStreakBonus(score float64, t AttendanceTally, priorMonthsClean func() (bool, error)) (float64, bool, error) {
	if !BonusCandidate(score, t) {
		return score, false, nil
	}
	clean, err := priorMonthsClean()
	if err != nil {
		return score, false, err
	}
	if !clean {
		return score, false, nil
	}
	return math.Min(kpi.MaxScore, score+1), true, nil
}

// ScoreAttendance turns a tally into the monthly attendance score.
func ScoreAttendance(employeeID string, month calendar.Month, t AttendanceTally, priorMonthsClean func() (bool, error)) (kpi.AttendanceScore, error) {
	score, bonus, err := ApplyStreakBonus(BaseAttendanceScore(t), t, priorMonthsClean)
	if err != nil {
		return kpi.AttendanceScore{}, err
	}

	return kpi.AttendanceScore{
		EmployeeID:   employeeID,
		Month:        month.String(),
		LateCount:    t.Late,
		MissingCount: t.Missing,
		AbsentCount:  t.Absent,
		FinalScore:   RoundScore(score),
		BonusApplied: bonus,
	}, nil
}

// CalculateOverallScore blends manual scores of the month with the attendance
// score into a 0-100 value. Each contribution is (score/5)*weight. The weight
// total is capped at 100 as the divisor only; the weighted sum is not
// rescaled.
func CalculateOverallScore(scores []kpi.Score, defs []kpi.Kpi, month string, attendanceScore *kpi.AttendanceScore) kpi.OverallScore {
	byID := make(map[string]kpi.Kpi, len(defs))
	for _, d := range defs {
		if _, ok := byID[d.ID]; !ok {
			byID[d.ID] = d
		}
	}

	var weightedSum float64
	totalWeight := 0

	for _, s := range scores {
		if s.Month != month {
			continue
		}
		def, ok := byID[s.KpiID]
		if !ok || def.IsAttendance() {
			continue
		}
		weightedSum += float64(s.Score) / kpi.MaxScore * float64(def.Weight)
		totalWeight += def.Weight
	}

	if def, ok := byID[kpi.AttendanceKpiID]; ok && attendanceScore != nil {
		weightedSum += attendanceScore.FinalScore / kpi.MaxScore * float64(def.Weight)
		totalWeight += def.Weight
	}

	if totalWeight > kpi.MaxWeight {
		totalWeight = kpi.MaxWeight
	}
	if totalWeight <= 0 {
		return kpi.OverallScore{}
	}

	return kpi.OverallScore{
		Score:     weightedSum / float64(totalWeight) * 100,
		Evaluated: true,
	}
}

package kpi

import (
	"errors"
	"testing"
	"time"

	"github.com/cmlabs-hris/hotel-performance-backend/internal/domain/attendance"
	"github.com/cmlabs-hris/hotel-performance-backend/internal/domain/kpi"
	"github.com/cmlabs-hris/hotel-performance-backend/internal/domain/schedule"
	"github.com/cmlabs-hris/hotel-performance-backend/internal/pkg/calendar"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// June 2024 starts on a Saturday and has 20 weekdays.
var june2024 = calendar.Month{Year: 2024, Month: time.June}

func record(date string, t attendance.AbsenceType) attendance.Attendance {
	in := time.Date(2024, time.June, 1, 2, 0, 0, 0, time.UTC)
	return attendance.Attendance{EmployeeID: "E101", Date: date, CheckIn: &in, AbsenceType: t}
}

func workdayRecords(m calendar.Month, sched schedule.EmployeeSchedule) []attendance.Attendance {
	var records []attendance.Attendance
	for d := 1; d <= m.Days(); d++ {
		if sched.ExpectsWork(m, d) {
			records = append(records, record(m.DateKey(d), attendance.AbsenceTypePresent))
		}
	}
	return records
}

func neverCalled(t *testing.T) func() (bool, error) {
	return func() (bool, error) {
		t.Fatal("prior months must not be checked")
		return false, nil
	}
}

func TestTallyAttendance_AbsentCountsElapsedWorkdays(t *testing.T) {
	sched := schedule.GenerateDefault("E101", june2024)

	tests := []struct {
		name    string
		elapsed int
		want    int
	}{
		{"whole month", 30, 20},
		{"first ten days", 10, 6},
		{"weekend only", 2, 0},
		{"future month", 0, 0},
		{"elapsed beyond month length", 45, 20},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tally := TallyAttendance(nil, sched, june2024, tt.elapsed)
			assert.Equal(t, tt.want, tally.Absent)
			assert.Zero(t, tally.Attended)
		})
	}
}

func TestTallyAttendance_CountsRecordsOfTheMonthOnly(t *testing.T) {
	sched := schedule.GenerateDefault("E101", june2024)
	records := workdayRecords(june2024, sched)
	records[0].AbsenceType = attendance.AbsenceTypeLate
	records[1].AbsenceType = attendance.AbsenceTypeLate
	records[2].AbsenceType = attendance.AbsenceTypeMissingCheckout
	records = append(records, record("2024-05-31", attendance.AbsenceTypeLate))

	tally := TallyAttendance(records, sched, june2024, 30)

	assert.Equal(t, AttendanceTally{Late: 2, Missing: 1, Absent: 0, Attended: 20}, tally)
}

func TestTallyAttendance_NonWorkdaysNeverAbsent(t *testing.T) {
	sched := schedule.GenerateDefault("E101", june2024)
	sched.Days["03"] = schedule.Off(schedule.StatusOnLeave)
	sched.Days["04"] = schedule.Off(schedule.StatusDayOff)

	tally := TallyAttendance(nil, sched, june2024, 30)

	assert.Equal(t, 18, tally.Absent)
}

func TestTallyAttendance_RecordWithoutCheckInIsNotAbsent(t *testing.T) {
	sched := schedule.GenerateDefault("E101", june2024)
	records := workdayRecords(june2024, sched)
	records[0].CheckIn = nil
	records[0].AbsenceType = attendance.AbsenceTypeOnLeave

	tally := TallyAttendance(records, sched, june2024, 30)

	assert.Zero(t, tally.Absent)
	assert.Equal(t, 19, tally.Attended)
}

func TestBaseAttendanceScore(t *testing.T) {
	tests := []struct {
		name  string
		tally AttendanceTally
		want  float64
	}{
		{"clean month", AttendanceTally{}, 5},
		{"two late days", AttendanceTally{Late: 2}, 4},
		{"three late days", AttendanceTally{Late: 3}, 3.5},
		{"late and missing", AttendanceTally{Late: 1, Missing: 1}, 3.5},
		{"floored at minimum", AttendanceTally{Late: 10, Missing: 3}, 1},
		{"any absence", AttendanceTally{Absent: 1}, 1},
		{"absence wins over clean record", AttendanceTally{Absent: 2, Attended: 18}, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, BaseAttendanceScore(tt.tally))
		})
	}
}

func TestScoreAttendance_CleanMonthScoresMaxWithoutBonus(t *testing.T) {
	got, err := ScoreAttendance("E101", june2024, AttendanceTally{Attended: 20}, neverCalled(t))

	require.NoError(t, err)
	assert.Equal(t, 5.0, got.FinalScore)
	assert.False(t, got.BonusApplied)
	assert.Equal(t, "2024-06", got.Month)
}

func TestScoreAttendance_LateMonthSkipsBonusCheck(t *testing.T) {
	got, err := ScoreAttendance("E101", june2024, AttendanceTally{Late: 2}, neverCalled(t))

	require.NoError(t, err)
	assert.Equal(t, 4.0, got.FinalScore)
	assert.Equal(t, 2, got.LateCount)
	assert.False(t, got.BonusApplied)
}

func TestScoreAttendance_AbsentMonthScoresMinimum(t *testing.T) {
	got, err := ScoreAttendance("E101", june2024, AttendanceTally{Absent: 1}, neverCalled(t))

	require.NoError(t, err)
	assert.Equal(t, 1.0, got.FinalScore)
	assert.Equal(t, 1, got.AbsentCount)
}

func TestScoreAttendance_Idempotent(t *testing.T) {
	tally := AttendanceTally{Late: 3, Missing: 1}

	first, err := ScoreAttendance("E101", june2024, tally, neverCalled(t))
	require.NoError(t, err)
	second, err := ScoreAttendance("E101", june2024, tally, neverCalled(t))
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

// A clean tally always scores the maximum, so the bonus only ever fires for
// a score handed in below it.
func TestApplyStreakBonus_FiresOnlyBelowMaxWithCleanMonthAndHistory(t *testing.T) {
	clean := func() (bool, error) { return true, nil }
	dirty := func() (bool, error) { return false, nil }

	score, applied, err := ApplyStreakBonus(4, AttendanceTally{}, clean)
	require.NoError(t, err)
	assert.True(t, applied)
	assert.Equal(t, 5.0, score)

	score, applied, err = ApplyStreakBonus(4.5, AttendanceTally{}, clean)
	require.NoError(t, err)
	assert.True(t, applied)
	assert.Equal(t, 5.0, score, "bonus is capped at the maximum")

	score, applied, err = ApplyStreakBonus(4, AttendanceTally{}, dirty)
	require.NoError(t, err)
	assert.False(t, applied)
	assert.Equal(t, 4.0, score)

	score, applied, err = ApplyStreakBonus(4, AttendanceTally{Late: 2}, neverCalled(t))
	require.NoError(t, err)
	assert.False(t, applied)
	assert.Equal(t, 4.0, score)

	score, applied, err = ApplyStreakBonus(5, AttendanceTally{}, neverCalled(t))
	require.NoError(t, err)
	assert.False(t, applied)
	assert.Equal(t, 5.0, score)
}

func TestApplyStreakBonus_PropagatesLookupError(t *testing.T) {
	boom := errors.New("boom")

	_, _, err := ApplyStreakBonus(4, AttendanceTally{}, func() (bool, error) { return false, boom })

	assert.ErrorIs(t, err, boom)
}

func TestHasNoLateRecords(t *testing.T) {
	assert.True(t, HasNoLateRecords(nil))
	assert.True(t, HasNoLateRecords([]attendance.Attendance{record("2024-06-03", attendance.AbsenceTypeMissingCheckout)}))
	assert.False(t, HasNoLateRecords([]attendance.Attendance{
		record("2024-06-03", attendance.AbsenceTypePresent),
		record("2024-06-04", attendance.AbsenceTypeLate),
	}))
}

func TestRoundScore(t *testing.T) {
	assert.Equal(t, 3.3, RoundScore(3.25))
	assert.Equal(t, 4.0, RoundScore(4.04))
	assert.Equal(t, 2.5, RoundScore(2.5))
}

var frontOfficeDefs = []kpi.Kpi{
	{ID: kpi.AttendanceKpiID, Department: kpi.DepartmentAll, Weight: 10},
	{ID: "K01", Department: "Front Office", Weight: 40},
	{ID: "K02", Department: "Front Office", Weight: 20},
}

func TestCalculateOverallScore_BlendsManualAndAttendance(t *testing.T) {
	scores := []kpi.Score{{KpiID: "K01", Month: "2024-06", Score: 5}}
	att := &kpi.AttendanceScore{FinalScore: 5}

	got := CalculateOverallScore(scores, frontOfficeDefs, "2024-06", att)

	assert.True(t, got.Evaluated)
	assert.InDelta(t, 100.0, got.Score, 1e-9)
}

func TestCalculateOverallScore_PartialScores(t *testing.T) {
	scores := []kpi.Score{{KpiID: "K01", Month: "2024-06", Score: 3}}
	att := &kpi.AttendanceScore{FinalScore: 4}

	got := CalculateOverallScore(scores, frontOfficeDefs, "2024-06", att)

	// (24 + 8) / 50
	assert.InDelta(t, 64.0, got.Score, 1e-9)
}

func TestCalculateOverallScore_CapsDivisorOnly(t *testing.T) {
	defs := []kpi.Kpi{
		{ID: kpi.AttendanceKpiID, Department: kpi.DepartmentAll, Weight: 10},
		{ID: "K01", Department: "Front Office", Weight: 60},
		{ID: "K02", Department: "Front Office", Weight: 40},
	}
	scores := []kpi.Score{
		{KpiID: "K01", Month: "2024-06", Score: 5},
		{KpiID: "K02", Month: "2024-06", Score: 5},
	}

	got := CalculateOverallScore(scores, defs, "2024-06", &kpi.AttendanceScore{FinalScore: 5})

	assert.True(t, got.Evaluated)
	assert.InDelta(t, 110.0, got.Score, 1e-9)
}

func TestCalculateOverallScore_NoWeightIsNotEvaluated(t *testing.T) {
	got := CalculateOverallScore(nil, nil, "2024-06", &kpi.AttendanceScore{FinalScore: 5})

	assert.Equal(t, kpi.OverallScore{}, got)
}

func TestCalculateOverallScore_IgnoresForeignEntries(t *testing.T) {
	scores := []kpi.Score{
		{KpiID: "K01", Month: "2024-05", Score: 1},
		{KpiID: "K99", Month: "2024-06", Score: 1},
		{KpiID: kpi.AttendanceKpiID, Month: "2024-06", Score: 1},
		{KpiID: "K02", Month: "2024-06", Score: 5},
	}

	got := CalculateOverallScore(scores, frontOfficeDefs, "2024-06", nil)

	assert.True(t, got.Evaluated)
	assert.InDelta(t, 100.0, got.Score, 1e-9)
}

func TestCalculateOverallScore_AttendanceNeedsDefinition(t *testing.T) {
	defs := []kpi.Kpi{{ID: "K01", Department: "Front Office", Weight: 40}}
	scores := []kpi.Score{{KpiID: "K01", Month: "2024-06", Score: 4}}

	got := CalculateOverallScore(scores, defs, "2024-06", &kpi.AttendanceScore{FinalScore: 1})

	assert.InDelta(t, 80.0, got.Score, 1e-9)
}

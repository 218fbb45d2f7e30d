package kpi

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/cmlabs-hris/hotel-performance-backend/internal/domain/attendance"
	"github.com/cmlabs-hris/hotel-performance-backend/internal/domain/employee"
	"github.com/cmlabs-hris/hotel-performance-backend/internal/domain/kpi"
	"github.com/cmlabs-hris/hotel-performance-backend/internal/domain/schedule"
	"github.com/cmlabs-hris/hotel-performance-backend/internal/pkg/calendar"
	"github.com/cmlabs-hris/hotel-performance-backend/internal/pkg/validator"
	"github.com/google/uuid"
)

// bonusLookbackMonths is how many preceding months must be free of late
// records for the streak bonus.
const bonusLookbackMonths = 2

type KpiServiceImpl struct {
	kpiRepo        kpi.KpiRepository
	scoreRepo      kpi.ScoreRepository
	attendanceRepo attendance.AttendanceRepository
	scheduleRepo   schedule.ScheduleRepository
	employeeRepo   employee.EmployeeRepository
	loc            *time.Location
	now            func() time.Time
}

func NewKpiService(
	kpiRepo kpi.KpiRepository,
	scoreRepo kpi.ScoreRepository,
	attendanceRepo attendance.AttendanceRepository,
	scheduleRepo schedule.ScheduleRepository,
	employeeRepo employee.EmployeeRepository,
	loc *time.Location,
) kpi.KpiService {
	return &KpiServiceImpl{
		kpiRepo:        kpiRepo,
		scoreRepo:      scoreRepo,
		attendanceRepo: attendanceRepo,
		scheduleRepo:   scheduleRepo,
		employeeRepo:   employeeRepo,
		loc:            loc,
		now:            time.Now,
	}
}

// parseMonth parses YYYY-MM, defaulting to the current month.
func (s *KpiServiceImpl) parseMonth(month string) (calendar.Month, error) {
	if month == "" {
		return calendar.MonthOf(s.now().In(s.loc)), nil
	}
	return validator.MonthParam("month", month)
}

// ListKpis implements kpi.KpiService.
func (s *KpiServiceImpl) ListKpis(ctx context.Context, department string) ([]kpi.KpiResponse, error) {
	var (
		kpis []kpi.Kpi
		err  error
	)
	if department == "" {
		kpis, err = s.kpiRepo.List(ctx)
	} else {
		kpis, err = s.kpiRepo.ListByDepartment(ctx, department)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to list kpis: %w", err)
	}

	resp := make([]kpi.KpiResponse, 0, len(kpis))
	for _, k := range kpis {
		resp = append(resp, kpi.NewKpiResponse(k))
	}
	return resp, nil
}

// CreateKpi implements kpi.KpiService.
func (s *KpiServiceImpl) CreateKpi(ctx context.Context, req kpi.CreateKpiRequest) (kpi.KpiResponse, error) {
	if err := req.Validate(); err != nil {
		return kpi.KpiResponse{}, err
	}

	id := req.ID
	if id == "" {
		id = "K_" + strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", "")[:8])
	}

	candidate := kpi.Kpi{
		ID:          id,
		Department:  req.Department,
		Name:        req.Name,
		Description: req.Description,
		Weight:      req.Weight,
	}
	if candidate.IsAttendance() && candidate.Department != kpi.DepartmentAll {
		return kpi.KpiResponse{}, kpi.ErrAttendanceKpiScope
	}

	if _, err := s.kpiRepo.GetByID(ctx, id); err == nil {
		return kpi.KpiResponse{}, kpi.ErrKpiExists
	} else if !errors.Is(err, kpi.ErrKpiNotFound) {
		return kpi.KpiResponse{}, fmt.Errorf("failed to get kpi: %w", err)
	}

	if err := s.checkWeights(ctx, candidate); err != nil {
		return kpi.KpiResponse{}, err
	}

	created, err := s.kpiRepo.Create(ctx, candidate)
	if err != nil {
		return kpi.KpiResponse{}, fmt.Errorf("failed to create kpi: %w", err)
	}

	return kpi.NewKpiResponse(created), nil
}

// UpdateKpi implements kpi.KpiService.
func (s *KpiServiceImpl) UpdateKpi(ctx context.Context, req kpi.UpdateKpiRequest) (kpi.KpiResponse, error) {
	if err := req.Validate(); err != nil {
		return kpi.KpiResponse{}, err
	}

	existing, err := s.kpiRepo.GetByID(ctx, req.ID)
	if err != nil {
		if errors.Is(err, kpi.ErrKpiNotFound) {
			return kpi.KpiResponse{}, err
		}
		return kpi.KpiResponse{}, fmt.Errorf("failed to get kpi: %w", err)
	}

	existing.Department = req.Department
	existing.Name = req.Name
	existing.Description = req.Description
	existing.Weight = req.Weight

	if existing.IsAttendance() && existing.Department != kpi.DepartmentAll {
		return kpi.KpiResponse{}, kpi.ErrAttendanceKpiScope
	}
	if err := s.checkWeights(ctx, existing); err != nil {
		return kpi.KpiResponse{}, err
	}

	updated, err := s.kpiRepo.Update(ctx, existing)
	if err != nil {
		return kpi.KpiResponse{}, fmt.Errorf("failed to update kpi: %w", err)
	}

	return kpi.NewKpiResponse(updated), nil
}

// checkWeights rejects a KPI set in which the weights applicable to any one
// department would exceed 100 once candidate is stored.
func (s *KpiServiceImpl) checkWeights(ctx context.Context, candidate kpi.Kpi) error {
	all, err := s.kpiRepo.List(ctx)
	if err != nil {
		return fmt.Errorf("failed to list kpis: %w", err)
	}

	kpis := make([]kpi.Kpi, 0, len(all)+1)
	for _, k := range all {
		if k.ID != candidate.ID {
			kpis = append(kpis, k)
		}
	}
	kpis = append(kpis, candidate)

	departments := make(map[string]bool)
	if candidate.Department == kpi.DepartmentAll {
		for _, k := range kpis {
			departments[k.Department] = true
		}
		known, err := s.employeeRepo.ListDepartments(ctx)
		if err != nil {
			return fmt.Errorf("failed to list departments: %w", err)
		}
		for _, d := range known {
			departments[d] = true
		}
	} else {
		departments[candidate.Department] = true
	}

	for department := range departments {
		total := 0
		for _, k := range kpis {
			if k.AppliesTo(department) {
				total += k.Weight
			}
		}
		if total > kpi.MaxWeight {
			return fmt.Errorf("%w: %s totals %d", kpi.ErrWeightExceeded, department, total)
		}
	}

	return nil
}

// SubmitScores implements kpi.KpiService.
func (s *KpiServiceImpl) SubmitScores(ctx context.Context, req kpi.SubmitScoresRequest) ([]kpi.ScoreResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	emp, err := s.employeeRepo.GetByID(ctx, req.EmployeeID)
	if err != nil {
		return nil, err
	}

	applicable, err := s.kpiRepo.ListByDepartment(ctx, emp.Department)
	if err != nil {
		return nil, fmt.Errorf("failed to list kpis: %w", err)
	}
	byID := make(map[string]kpi.Kpi, len(applicable))
	for _, k := range applicable {
		byID[k.ID] = k
	}

	scores := make([]kpi.Score, 0, len(req.Scores))
	for _, in := range req.Scores {
		if in.Score == 0 {
			continue
		}
		if in.KpiID == kpi.AttendanceKpiID {
			return nil, kpi.ErrAttendanceKpiNotScored
		}
		if _, ok := byID[in.KpiID]; !ok {
			if _, err := s.kpiRepo.GetByID(ctx, in.KpiID); err != nil {
				return nil, fmt.Errorf("%w: %s", err, in.KpiID)
			}
			return nil, fmt.Errorf("%w: %s", kpi.ErrKpiNotApplicable, in.KpiID)
		}

		scores = append(scores, kpi.Score{
			EmployeeID:  req.EmployeeID,
			Month:       req.Month,
			KpiID:       in.KpiID,
			Score:       in.Score,
			Notes:       strings.TrimSpace(in.Notes),
			EvaluatedBy: req.EvaluatorID,
		})
	}

	if err := s.scoreRepo.ReplaceForMonth(ctx, req.EmployeeID, req.Month, scores); err != nil {
		return nil, fmt.Errorf("failed to save kpi scores: %w", err)
	}

	slog.Info("KPI scores submitted",
		"employee_id", req.EmployeeID,
		"month", req.Month,
		"evaluated_by", req.EvaluatorID,
		"count", len(scores),
	)

	return s.GetScores(ctx, req.EmployeeID, req.Month)
}

// GetScores implements kpi.KpiService. An empty month lists every month.
func (s *KpiServiceImpl) GetScores(ctx context.Context, employeeID, month string) ([]kpi.ScoreResponse, error) {
	var (
		scores []kpi.Score
		err    error
	)
	if month == "" {
		scores, err = s.scoreRepo.ListByEmployee(ctx, employeeID)
	} else {
		if _, err := validator.MonthParam("month", month); err != nil {
			return nil, err
		}
		scores, err = s.scoreRepo.ListByEmployeeAndMonth(ctx, employeeID, month)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to list kpi scores: %w", err)
	}

	resp := make([]kpi.ScoreResponse, 0, len(scores))
	for _, sc := range scores {
		resp = append(resp, kpi.NewScoreResponse(sc))
	}
	return resp, nil
}

// ComputeAttendanceKpi implements kpi.KpiService.
func (s *KpiServiceImpl) ComputeAttendanceKpi(ctx context.Context, employeeID, month string) (kpi.AttendanceScore, error) {
	m, err := s.parseMonth(month)
	if err != nil {
		return kpi.AttendanceScore{}, err
	}
	if _, err := s.employeeRepo.GetByID(ctx, employeeID); err != nil {
		return kpi.AttendanceScore{}, err
	}

	score, _, err := s.computeAttendance(ctx, employeeID, m)
	return score, err
}

func (s *KpiServiceImpl) computeAttendance(ctx context.Context, employeeID string, m calendar.Month) (kpi.AttendanceScore, AttendanceTally, error) {
	records, err := s.attendanceRepo.ListByEmployeeAndMonth(ctx, employeeID, m.String())
	if err != nil {
		return kpi.AttendanceScore{}, AttendanceTally{}, fmt.Errorf("failed to list attendance: %w", err)
	}

	sched, err := schedule.Resolve(ctx, s.scheduleRepo, employeeID, m)
	if err != nil {
		return kpi.AttendanceScore{}, AttendanceTally{}, err
	}

	today := s.now().In(s.loc)
	tally := TallyAttendance(records, sched, m, m.ElapsedDays(today))

	priorMonthsClean := func() (bool, error) {
		for i := 1; i <= bonusLookbackMonths; i++ {
			prev := m.AddMonths(-i)
			prior, err := s.attendanceRepo.ListByEmployeeAndMonth(ctx, employeeID, prev.String())
			if err != nil {
				return false, fmt.Errorf("failed to list attendance for %s: %w", prev, err)
			}
			if !HasNoLateRecords(prior) {
				return false, nil
			}
		}
		return true, nil
	}

	score, err := ScoreAttendance(employeeID, m, tally, priorMonthsClean)
	if err != nil {
		return kpi.AttendanceScore{}, AttendanceTally{}, err
	}
	return score, tally, nil
}

// Evaluate implements kpi.KpiService.
func (s *KpiServiceImpl) Evaluate(ctx context.Context, employeeID, month string) (kpi.EvaluationResponse, error) {
	m, err := s.parseMonth(month)
	if err != nil {
		return kpi.EvaluationResponse{}, err
	}

	emp, err := s.employeeRepo.GetByID(ctx, employeeID)
	if err != nil {
		return kpi.EvaluationResponse{}, err
	}

	attendanceScore, tally, err := s.computeAttendance(ctx, employeeID, m)
	if err != nil {
		return kpi.EvaluationResponse{}, err
	}

	defs, err := s.kpiRepo.ListByDepartment(ctx, emp.Department)
	if err != nil {
		return kpi.EvaluationResponse{}, fmt.Errorf("failed to list kpis: %w", err)
	}

	scores, err := s.scoreRepo.ListByEmployeeAndMonth(ctx, employeeID, m.String())
	if err != nil {
		return kpi.EvaluationResponse{}, fmt.Errorf("failed to list kpi scores: %w", err)
	}

	resp := kpi.EvaluationResponse{
		EmployeeID:   employeeID,
		Department:   emp.Department,
		Month:        m.String(),
		Attendance:   attendanceScore,
		Overall:      CalculateOverallScore(scores, defs, m.String(), &attendanceScore),
		AttendedDays: tally.Attended,
		Scores:       make([]kpi.ScoreResponse, 0, len(scores)),
	}
	for _, sc := range scores {
		resp.Scores = append(resp.Scores, kpi.NewScoreResponse(sc))
	}

	return resp, nil
}

// Package repository opens the configured storage backend and hands out its
// repositories.
package repository

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/cmlabs-hris/hotel-performance-backend/internal/config"
	"github.com/cmlabs-hris/hotel-performance-backend/internal/domain/assessment"
	"github.com/cmlabs-hris/hotel-performance-backend/internal/domain/attendance"
	"github.com/cmlabs-hris/hotel-performance-backend/internal/domain/department"
	"github.com/cmlabs-hris/hotel-performance-backend/internal/domain/employee"
	"github.com/cmlabs-hris/hotel-performance-backend/internal/domain/feedback"
	"github.com/cmlabs-hris/hotel-performance-backend/internal/domain/kpi"
	"github.com/cmlabs-hris/hotel-performance-backend/internal/domain/schedule"
	"github.com/cmlabs-hris/hotel-performance-backend/internal/pkg/database"
	"github.com/cmlabs-hris/hotel-performance-backend/internal/repository/memory"
	"github.com/cmlabs-hris/hotel-performance-backend/internal/repository/postgresql"
)

type Repositories struct {
	Employee       employee.EmployeeRepository
	Department     department.DepartmentRepository
	Attendance     attendance.AttendanceRepository
	Schedule       schedule.ScheduleRepository
	Kpi            kpi.KpiRepository
	Score          kpi.ScoreRepository
	Feedback       feedback.FeedbackRepository
	SelfAssessment assessment.SelfAssessmentRepository
	Transactor     database.Transactor
}

// Open builds the repositories for cfg.App.Storage. The returned func
// releases the backend.
func Open(ctx context.Context, cfg *config.Config) (Repositories, func(), error) {
	if cfg.App.Storage == config.StorageMemory {
		store := memory.NewStore()
		memory.Seed(store)
		slog.Warn("Using in-memory storage, data is lost on restart")
		return Repositories{
			Employee:       memory.NewEmployeeRepository(store),
			Department:     memory.NewDepartmentRepository(store),
			Attendance:     memory.NewAttendanceRepository(store),
			Schedule:       memory.NewScheduleRepository(store),
			Kpi:            memory.NewKpiRepository(store),
			Score:          memory.NewScoreRepository(store),
			Feedback:       memory.NewFeedbackRepository(store),
			SelfAssessment: memory.NewSelfAssessmentRepository(store),
			Transactor:     memory.NewTransactor(store),
		}, func() {}, nil
	}

	db, err := database.NewPostgreSQLDB(ctx, cfg.DatabaseURL(), cfg.Database.MaxConns)
	if err != nil {
		return Repositories{}, nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	if cfg.Database.AutoMigrate {
		if err := database.Migrate(ctx, db); err != nil {
			db.Close()
			return Repositories{}, nil, err
		}
	}

	return Repositories{
		Employee:       postgresql.NewEmployeeRepository(db),
		Department:     postgresql.NewDepartmentRepository(db),
		Attendance:     postgresql.NewAttendanceRepository(db),
		Schedule:       postgresql.NewScheduleRepository(db),
		Kpi:            postgresql.NewKpiRepository(db),
		Score:          postgresql.NewKpiScoreRepository(db),
		Feedback:       postgresql.NewFeedbackRepository(db),
		SelfAssessment: postgresql.NewSelfAssessmentRepository(db),
		Transactor:     postgresql.NewTransactor(db),
	}, db.Close, nil
}

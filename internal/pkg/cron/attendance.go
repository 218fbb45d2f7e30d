package cron

import (
	"context"
	"log/slog"
	"time"

	"github.com/cmlabs-hris/hotel-performance-backend/internal/domain/attendance"
)

type AttendanceJobs struct {
	attendanceService attendance.AttendanceService
	sweepInterval     time.Duration
}

func NewAttendanceJobs(attendanceService attendance.AttendanceService, sweepInterval time.Duration) *AttendanceJobs {
	return &AttendanceJobs{
		attendanceService: attendanceService,
		sweepInterval:     sweepInterval,
	}
}

func (j *AttendanceJobs) RegisterJobs(scheduler *Scheduler) {
	scheduler.AddJob("flag_missing_checkouts", j.sweepInterval, j.FlagMissingCheckouts)
}

// FlagMissingCheckouts closes the books on past days: every record still open
// after its date has passed becomes a missing checkout.
func (j *AttendanceJobs) FlagMissingCheckouts(ctx context.Context) error {
	flagged, err := j.attendanceService.FlagMissingCheckouts(ctx)
	if err != nil {
		return err
	}

	slog.Info("Cron: Missing checkout sweep finished", "flagged", flagged)
	return nil
}

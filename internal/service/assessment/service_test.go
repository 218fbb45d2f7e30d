package assessment

import (
	"context"
	"testing"
	"time"

	"github.com/cmlabs-hris/hotel-performance-backend/internal/domain/assessment"
	"github.com/cmlabs-hris/hotel-performance-backend/internal/domain/employee"
	"github.com/cmlabs-hris/hotel-performance-backend/internal/pkg/validator"
	"github.com/cmlabs-hris/hotel-performance-backend/internal/repository/memory"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var wib = time.FixedZone("WIB", 7*60*60)

func setupSelfAssessmentService(t *testing.T) *SelfAssessmentServiceImpl {
	t.Helper()

	store := memory.NewStore()
	memory.Seed(store)

	svc := NewSelfAssessmentService(memory.NewSelfAssessmentRepository(store), memory.NewEmployeeRepository(store), wib).(*SelfAssessmentServiceImpl)
	svc.now = func() time.Time { return time.Date(2024, time.June, 30, 23, 30, 0, 0, wib) }
	return svc
}

func TestSelfAssessmentService_SubmitReplacesMonth(t *testing.T) {
	svc := setupSelfAssessmentService(t)
	ctx := context.Background()

	first, err := svc.Submit(ctx, assessment.SubmitSelfAssessmentRequest{
		EmployeeID: "E101", Month: "2024-06", Strengths: "Guest rapport", Weaknesses: "Night audit",
	})
	require.NoError(t, err)

	second, err := svc.Submit(ctx, assessment.SubmitSelfAssessmentRequest{
		EmployeeID: "E101", Month: "2024-06", Strengths: " Guest rapport ", Weaknesses: "Upselling",
	})
	require.NoError(t, err)
	assert.Equal(t, first.ID, second.ID)

	got, err := svc.Get(ctx, "E101", "")
	require.NoError(t, err)
	assert.Equal(t, "2024-06", got.Month)
	assert.Equal(t, "Guest rapport", got.Strengths)
	assert.Equal(t, "Upselling", got.Weaknesses)
}

func TestSelfAssessmentService_Errors(t *testing.T) {
	svc := setupSelfAssessmentService(t)
	ctx := context.Background()

	_, err := svc.Submit(ctx, assessment.SubmitSelfAssessmentRequest{
		EmployeeID: "E101", Month: "2024-07", Strengths: "a", Weaknesses: "b",
	})
	assert.ErrorIs(t, err, assessment.ErrFutureMonth)

	_, err = svc.Submit(ctx, assessment.SubmitSelfAssessmentRequest{
		EmployeeID: "E999", Month: "2024-06", Strengths: "a", Weaknesses: "b",
	})
	assert.ErrorIs(t, err, employee.ErrEmployeeNotFound)

	_, err = svc.Submit(ctx, assessment.SubmitSelfAssessmentRequest{EmployeeID: "E101", Month: "2024-06", Strengths: "a"})
	var verrs validator.ValidationErrors
	require.ErrorAs(t, err, &verrs)
	assert.Equal(t, "weaknesses", verrs[0].Field)

	_, err = svc.Get(ctx, "E101", "2024-05")
	assert.ErrorIs(t, err, assessment.ErrSelfAssessmentNotFound)
}

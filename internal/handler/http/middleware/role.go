package middleware

import (
	"context"
	"net/http"
	"slices"

	"github.com/cmlabs-hris/hotel-performance-backend/internal/domain/employee"
	"github.com/cmlabs-hris/hotel-performance-backend/internal/handler/http/response"
	"github.com/cmlabs-hris/hotel-performance-backend/internal/pkg/jwt"
	"github.com/go-chi/chi/v5"
)

// RequireRole allows only callers holding one of roles.
func RequireRole(roles ...employee.Role) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			identity, err := jwt.IdentityFromContext(r.Context())
			if err != nil {
				response.HandleError(w, err)
				return
			}

			if !slices.Contains(roles, identity.Role) {
				response.HandleError(w, employee.ErrInsufficientRole)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// EmployeeScope restricts department heads to employees of their own
// department on routes carrying an {employeeID} parameter.
func EmployeeScope(repo employee.EmployeeRepository) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			identity, err := jwt.IdentityFromContext(r.Context())
			if err != nil {
				response.HandleError(w, err)
				return
			}

			if err := CheckEmployeeScope(r.Context(), repo, identity, chi.URLParam(r, "employeeID")); err != nil {
				response.HandleError(w, err)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// CheckEmployeeScope returns employee.ErrOutsideDepartment when a department
// head targets an employee of another department. Admins and self access
// always pass.
func CheckEmployeeScope(ctx context.Context, repo employee.EmployeeRepository, identity jwt.Identity, employeeID string) error {
	if identity.IsAdmin() || employeeID == identity.EmployeeID {
		return nil
	}

	target, err := repo.GetByID(ctx, employeeID)
	if err != nil {
		return err
	}
	if target.Department != identity.Department {
		return employee.ErrOutsideDepartment
	}
	return nil
}

// CheckDepartmentScope returns employee.ErrOutsideDepartment when a
// department head asks for another department.
func CheckDepartmentScope(identity jwt.Identity, department string) error {
	if identity.IsAdmin() || department == identity.Department {
		return nil
	}
	return employee.ErrOutsideDepartment
}

// CheckTeamScope guards writes about another employee: scores, schedules and
// feedback. Admins pass; a department head may only target employees of their
// own department, never themselves.
func CheckTeamScope(ctx context.Context, repo employee.EmployeeRepository, identity jwt.Identity, employeeID string) error {
	if identity.IsAdmin() {
		return nil
	}
	if employeeID == identity.EmployeeID {
		return employee.ErrOwnRecord
	}

	target, err := repo.GetByID(ctx, employeeID)
	if err != nil {
		return err
	}
	if target.Department != identity.Department {
		return employee.ErrOutsideDepartment
	}
	if target.Role != employee.RoleEmployee {
		return employee.ErrNotTeamMember
	}
	return nil
}

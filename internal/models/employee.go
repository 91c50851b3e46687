package models

import "time"

// Departments accepted when strict department checking is enabled.
const (
	DepartmentIT        = "IT"
	DepartmentMarketing = "Marketing"
	DepartmentUIUX      = "UI/UX"
)

var Departments = []string{DepartmentIT, DepartmentMarketing, DepartmentUIUX}

// Employee is the stored employee record. JSON names match the dashboard client.
type Employee struct {
	ID          string    `json:"_id" db:"id"`
	Name        string    `json:"name" db:"name"`
	Email       string    `json:"email" db:"email"`
	Phone       string    `json:"phone" db:"phone"`
	Designation string    `json:"designation" db:"designation"`
	Department  string    `json:"department" db:"department"`
	Salary      float64   `json:"salary" db:"salary"`
	JoiningDate time.Time `json:"joiningDate" db:"joining_date"`
	CreatedAt   time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt   time.Time `json:"updatedAt" db:"updated_at"`
}

// CreateEmployeeDTO is the POST /create payload. Pointer fields let the
// handler tell a missing value from a zero one.
type CreateEmployeeDTO struct {
	Name        *string    `json:"name"`
	Email       *string    `json:"email"`
	Phone       *string    `json:"phone"`
	Designation *string    `json:"designation"`
	Department  *string    `json:"department"`
	Salary      *float64   `json:"salary"`
	JoiningDate *time.Time `json:"joiningDate"`
}

// UpdateEmployeeDTO is the PUT /edit payload. A nil field keeps the stored value.
type UpdateEmployeeDTO struct {
	ID          string   `json:"id"`
	Name        *string  `json:"name"`
	Email       *string  `json:"email"`
	Phone       *string  `json:"phone"`
	Designation *string  `json:"designation"`
	Department  *string  `json:"department"`
	Salary      *float64 `json:"salary"`
}

// EmployeePatch is the set of field changes applied by an edit.
type EmployeePatch struct {
	Name        *string
	Email       *string
	Phone       *string
	Designation *string
	Department  *string
	Salary      *float64
}

// Patch extracts the mutable fields of the payload.
func (in UpdateEmployeeDTO) Patch() EmployeePatch {
	return EmployeePatch{
		Name:        in.Name,
		Email:       in.Email,
		Phone:       in.Phone,
		Designation: in.Designation,
		Department:  in.Department,
		Salary:      in.Salary,
	}
}

// Apply copies every present field of p onto e.
func (p EmployeePatch) Apply(e *Employee) {
	if p.Name != nil {
		e.Name = *p.Name
	}
	if p.Email != nil {
		e.Email = *p.Email
	}
	if p.Phone != nil {
		e.Phone = *p.Phone
	}
	if p.Designation != nil {
		e.Designation = *p.Designation
	}
	if p.Department != nil {
		e.Department = *p.Department
	}
	if p.Salary != nil {
		e.Salary = *p.Salary
	}
}

// Package validation normalizes and checks employee payloads before they
// reach the record store. Every failure is an apperror Validation error.
package validation

import (
	"errors"
	"regexp"
	"slices"
	"strings"

	"employee-management/internal/apperror"
	"employee-management/internal/models"

	"github.com/go-playground/validator/v10"
)

const (
	MsgMissingFields = "All required fields must be provided"
	MsgMissingID     = "Employee id is required"
)

var phonePattern = regexp.MustCompile(`^\d{10}$`)

// Rules toggles the checks that differ between deployments.
type Rules struct {
	// StrictDepartments limits department to models.Departments.
	StrictDepartments bool
}

type fieldRule struct {
	field    string
	label    string
	tag      string
	messages map[string]string
}

// Checked in this order; the first failure is reported.
var fieldRules = []fieldRule{
	{field: "name", label: "Name", tag: "required"},
	{field: "email", label: "Email", tag: "required,email",
		messages: map[string]string{"email": "Please enter a valid email address"}},
	{field: "phone", label: "Phone number", tag: "required,phone10",
		messages: map[string]string{"phone10": "Please enter a valid 10-digit phone number"}},
	{field: "designation", label: "Designation", tag: "required"},
	{field: "department", label: "Department", tag: "required,department",
		messages: map[string]string{"department": "Department must be one of " + strings.Join(models.Departments, ", ")}},
	{field: "salary", label: "Salary", tag: "gte=0",
		messages: map[string]string{"gte": "Salary must be positive"}},
}

type Validator struct {
	validate *validator.Validate
}

func New(rules Rules) *Validator {
	v := validator.New()
	_ = v.RegisterValidation("phone10", func(fl validator.FieldLevel) bool {
		return phonePattern.MatchString(fl.Field().String())
	})
	_ = v.RegisterValidation("department", func(fl validator.FieldLevel) bool {
		if !rules.StrictDepartments {
			return true
		}
		return slices.Contains(models.Departments, fl.Field().String())
	})
	return &Validator{validate: v}
}

// Create checks a create payload and returns the normalized record without
// identity or timestamps. A zero salary counts as missing on create.
func (v *Validator) Create(in models.CreateEmployeeDTO) (*models.Employee, error) {
	if blank(in.Name) || blank(in.Email) || blank(in.Phone) ||
		blank(in.Designation) || blank(in.Department) || in.Salary == nil || *in.Salary == 0 {
		return nil, apperror.NewValidation(MsgMissingFields)
	}

	e := &models.Employee{
		Name:        strings.TrimSpace(*in.Name),
		Email:       normalizeEmail(*in.Email),
		Phone:       strings.TrimSpace(*in.Phone),
		Designation: strings.TrimSpace(*in.Designation),
		Department:  strings.TrimSpace(*in.Department),
		Salary:      *in.Salary,
	}
	if in.JoiningDate != nil {
		e.JoiningDate = *in.JoiningDate
	}

	values := map[string]any{
		"name":        e.Name,
		"email":       e.Email,
		"phone":       e.Phone,
		"designation": e.Designation,
		"department":  e.Department,
		"salary":      e.Salary,
	}
	if err := v.check(values); err != nil {
		return nil, err
	}
	return e, nil
}

// Update checks an edit payload. Absent fields stay absent in the returned
// patch; present ones are normalized and must satisfy the same rules as on
// create.
func (v *Validator) Update(in models.UpdateEmployeeDTO) (string, models.EmployeePatch, error) {
	id := strings.TrimSpace(in.ID)
	if id == "" {
		return "", models.EmployeePatch{}, apperror.NewValidation(MsgMissingID)
	}

	patch := in.Patch()
	values := map[string]any{}
	trim := func(field string, p **string, norm func(string) string) {
		if *p == nil {
			return
		}
		s := norm(**p)
		*p = &s
		values[field] = s
	}
	trim("name", &patch.Name, strings.TrimSpace)
	trim("email", &patch.Email, normalizeEmail)
	trim("phone", &patch.Phone, strings.TrimSpace)
	trim("designation", &patch.Designation, strings.TrimSpace)
	trim("department", &patch.Department, strings.TrimSpace)
	if patch.Salary != nil {
		values["salary"] = *patch.Salary
	}

	if err := v.check(values); err != nil {
		return "", models.EmployeePatch{}, err
	}
	return id, patch, nil
}

func (v *Validator) check(values map[string]any) error {
	for _, r := range fieldRules {
		val, ok := values[r.field]
		if !ok {
			continue
		}
		if err := v.validate.Var(val, r.tag); err != nil {
			return apperror.NewValidation(r.message(err))
		}
	}
	return nil
}

func (r fieldRule) message(err error) string {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		tag := verrs[0].Tag()
		if tag == "required" {
			return r.label + " is required"
		}
		if msg, ok := r.messages[tag]; ok {
			return msg
		}
	}
	return "Invalid " + strings.ToLower(r.label)
}

func blank(s *string) bool {
	return s == nil || strings.TrimSpace(*s) == ""
}

func normalizeEmail(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

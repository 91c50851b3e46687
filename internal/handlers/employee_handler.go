package handlers

import (
	"errors"
	"net/http"

	"employee-management/internal/apperror"
	"employee-management/internal/db"
	"employee-management/internal/models"
	"employee-management/internal/validation"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const (
	msgCreated   = "Employee successfully created"
	msgRetrieved = "Employees retrieved successfully"
	msgUpdated   = "Employee successfully updated"
	msgDeleted   = "Employee deleted successfully"

	msgNotFound     = "Employee not found"
	msgNoEmployees  = "No employees found"
	msgDuplicate    = "Email already exists"
	msgInvalidBody  = "Invalid request body"
	msgStoreFailure = "Internal server error"
)

// EmployeeResponse is the body of create and edit responses.
type EmployeeResponse struct {
	Message  string           `json:"message"`
	Employee *models.Employee `json:"employee"`
}

type EmployeeListResponse struct {
	Message   string            `json:"message"`
	Employees []models.Employee `json:"employees"`
}

type MessageResponse struct {
	Message string `json:"message"`
}

type EmployeeHandler struct {
	store     db.EmployeeStore
	validator *validation.Validator
	logger    *zap.Logger

	// emptyListNotFound answers GET /all with 404 when no records exist.
	emptyListNotFound bool
}

func NewEmployeeHandler(store db.EmployeeStore, v *validation.Validator, logger *zap.Logger, emptyListNotFound bool) *EmployeeHandler {
	return &EmployeeHandler{
		store:             store,
		validator:         v,
		logger:            logger,
		emptyListNotFound: emptyListNotFound,
	}
}

// POST /create
func (h *EmployeeHandler) CreateEmployee(c *gin.Context) {
	var in models.CreateEmployeeDTO
	if err := c.ShouldBindJSON(&in); err != nil {
		_ = c.Error(apperror.Wrap(apperror.Validation, msgInvalidBody, err))
		return
	}

	e, err := h.validator.Create(in)
	if err != nil {
		_ = c.Error(err)
		return
	}

	if err := h.store.Insert(c.Request.Context(), e); err != nil {
		_ = c.Error(storeError(err))
		return
	}

	h.logger.Info("employee created", zap.String("id", e.ID))
	c.JSON(http.StatusCreated, EmployeeResponse{Message: msgCreated, Employee: e})
}

// GET /all
func (h *EmployeeHandler) ListEmployees(c *gin.Context) {
	list, err := h.store.Find(c.Request.Context())
	if err != nil {
		_ = c.Error(storeError(err))
		return
	}
	if len(list) == 0 && h.emptyListNotFound {
		_ = c.Error(apperror.NewNotFound(msgNoEmployees))
		return
	}
	if list == nil {
		list = []models.Employee{}
	}

	c.JSON(http.StatusOK, EmployeeListResponse{Message: msgRetrieved, Employees: list})
}

// PUT /edit
// The record is named by "id" in the body; fields left out keep their values.
func (h *EmployeeHandler) EditEmployee(c *gin.Context) {
	var in models.UpdateEmployeeDTO
	if err := c.ShouldBindJSON(&in); err != nil {
		_ = c.Error(apperror.Wrap(apperror.Validation, msgInvalidBody, err))
		return
	}

	id, patch, err := h.validator.Update(in)
	if err != nil {
		_ = c.Error(err)
		return
	}

	e, err := h.store.Update(c.Request.Context(), id, patch)
	if err != nil {
		_ = c.Error(storeError(err))
		return
	}

	h.logger.Info("employee updated", zap.String("id", id))
	c.JSON(http.StatusOK, EmployeeResponse{Message: msgUpdated, Employee: e})
}

// DELETE /delete/:employeeId
func (h *EmployeeHandler) DeleteEmployee(c *gin.Context) {
	id := c.Param("employeeId")

	if err := h.store.Delete(c.Request.Context(), id); err != nil {
		_ = c.Error(storeError(err))
		return
	}

	h.logger.Info("employee deleted", zap.String("id", id))
	c.JSON(http.StatusOK, MessageResponse{Message: msgDeleted})
}

// storeError classifies a record store failure.
func storeError(err error) error {
	switch {
	case errors.Is(err, db.ErrNotFound):
		return apperror.NewNotFound(msgNotFound)
	case errors.Is(err, db.ErrDuplicateEmail):
		return apperror.Wrap(apperror.Validation, msgDuplicate, err)
	default:
		return apperror.NewInternal(msgStoreFailure, err)
	}
}

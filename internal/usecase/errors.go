package usecase

import (
	"errors"
	"fmt"
	"strings"

	"github.com/xavierca1/machinecare-leads/internal/entity"
)

const (
	CodeValidation        = "VALIDATION_ERROR"
	CodeInvalidAmount     = "INVALID_AMOUNT"
	CodeInvalidStatus     = "INVALID_STATUS"
	CodeInvalidPriority   = "INVALID_PRIORITY"
	CodeInvalidTransition = "INVALID_TRANSITION"
	CodeInvalidPayment    = "INVALID_PAYMENT"
	CodeInvalidCapture    = "INVALID_CAPTURE_STEP"
	CodeNotFound          = "LEAD_NOT_FOUND"
	CodeStore             = "STORE_ERROR"
)

// FieldError aponta o campo do formulário que falhou.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

func (e FieldError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ValidationError: entrada malformada, barrada antes de chegar na store.
type ValidationError struct {
	Code    string
	Message string
	Fields  []FieldError
}

func (e *ValidationError) Error() string {
	return e.Message
}

func newValidationError(code, message string) *ValidationError {
	return &ValidationError{Code: code, Message: message}
}

func newFieldsError(fields []FieldError) *ValidationError {
	parts := make([]string, 0, len(fields))
	for _, f := range fields {
		parts = append(parts, f.Field+" ("+f.Message+")")
	}
	return &ValidationError{
		Code:    CodeValidation,
		Message: "validation failed: " + strings.Join(parts, ", "),
		Fields:  fields,
	}
}

// NotFoundError: o lead não existe no momento da mutação.
type NotFoundError struct {
	LeadID string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("lead %s not found", e.LeadID)
}

// StoreError: a chamada à store falhou por qualquer motivo.
type StoreError struct {
	Op  string
	Err error
}

func (e *StoreError) Error() string {
	return fmt.Sprintf("failed to %s", e.Op)
}

func (e *StoreError) Unwrap() error {
	return e.Err
}

func IsValidationError(err error) bool {
	var target *ValidationError
	return errors.As(err, &target)
}

func IsNotFoundError(err error) bool {
	var target *NotFoundError
	return errors.As(err, &target)
}

func IsStoreError(err error) bool {
	var target *StoreError
	return errors.As(err, &target)
}

// ErrorCode devolve o código da taxonomia para qualquer erro de use case.
func ErrorCode(err error) string {
	var verr *ValidationError
	if errors.As(err, &verr) {
		return verr.Code
	}
	if IsNotFoundError(err) {
		return CodeNotFound
	}
	return CodeStore
}

// storeFailure traduz erros de repositório para a taxonomia.
func storeFailure(op, leadID string, err error) error {
	if errors.Is(err, entity.ErrLeadNotFound) {
		return &NotFoundError{LeadID: leadID}
	}
	return &StoreError{Op: op, Err: err}
}

// domainFailure traduz erros das regras da entidade.
func domainFailure(err error) error {
	var terr *entity.TransitionError
	switch {
	case errors.As(err, &terr):
		return newValidationError(CodeInvalidTransition, terr.Error())
	case errors.Is(err, entity.ErrUnknownStatus):
		return newValidationError(CodeInvalidStatus, err.Error())
	case errors.Is(err, entity.ErrUnknownPriority):
		return newValidationError(CodeInvalidPriority, err.Error())
	case errors.Is(err, entity.ErrInvalidPaymentAmount):
		return newValidationError(CodeInvalidAmount, err.Error())
	case errors.Is(err, entity.ErrInvalidPaymentMethod), errors.Is(err, entity.ErrMissingLeadID):
		return newValidationError(CodeInvalidPayment, err.Error())
	}
	return newValidationError(CodeValidation, err.Error())
}

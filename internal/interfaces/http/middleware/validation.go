package middleware

import (
	"errors"
	"net/http"
	"reflect"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"

	"github.com/orderpad/backend/internal/domain/access"
	"github.com/orderpad/backend/internal/domain/catalog"
	"github.com/orderpad/backend/internal/interfaces/http/dto"
)

// SetupValidator reports fields by their JSON names and registers the
// "daytype" and "gate" tags. Call it once before serving.
func SetupValidator() error {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return errors.New("gin validator engine is not go-playground/validator")
	}
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	if err := v.RegisterValidation("daytype", func(fl validator.FieldLevel) bool {
		_, ok := catalog.ParseDayType(fl.Field().String())
		return ok
	}); err != nil {
		return err
	}
	return v.RegisterValidation("gate", func(fl validator.FieldLevel) bool {
		return access.Gate(fl.Field().String()).IsValid()
	})
}

// FormatValidationErrors formats validation errors into a standard response
func FormatValidationErrors(err error, requestID string) dto.Response {
	var details []dto.ValidationDetail
	var validationErrors validator.ValidationErrors
	if errors.As(err, &validationErrors) {
		for _, e := range validationErrors {
			details = append(details, dto.ValidationDetail{
				Field:   e.Field(),
				Message: validationMessage(e),
			})
		}
	}
	return dto.NewValidationErrorResponse("Request validation failed", requestID, details)
}

// HandleValidationError answers 400 with the field details of err
func HandleValidationError(c *gin.Context, err error) {
	c.AbortWithStatusJSON(http.StatusBadRequest, FormatValidationErrors(err, GetRequestID(c)))
}

func validationMessage(e validator.FieldError) string {
	switch e.Tag() {
	case "required":
		return "This field is required"
	case "min":
		if e.Kind() == reflect.String {
			return "Must be at least " + e.Param() + " characters"
		}
		return "Must be at least " + e.Param()
	case "max":
		if e.Kind() == reflect.String {
			return "Must be at most " + e.Param() + " characters"
		}
		return "Must be at most " + e.Param()
	case "daytype":
		return "Must be one of: WEEKDAYS, WEEKENDS, LONG WEEKENDS"
	case "gate":
		return "Must be one of: " + string(access.GateSetup) + ", " + string(access.GateFullInventoryExport)
	default:
		return "Invalid value"
	}
}

package response

import (
	"errors"
	"fmt"
	"net/http"
	"reflect"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"

	"motomap-api/internal/service"
)

// Body is the JSON shape of every error response.
type Body struct {
	Message string               `json:"message"`
	Fields  []service.FieldError `json:"fields,omitempty"`
}

// WriteError maps a service error onto its HTTP status; anything else
// becomes an opaque 500 so internals never leak to the caller.
func WriteError(c *gin.Context, err error) {
	var se *service.Error
	if errors.As(err, &se) {
		c.JSON(se.Status, Body{Message: se.Message, Fields: se.Fields})
		return
	}
	_ = c.Error(err)
	c.JSON(http.StatusInternalServerError, Body{Message: "internal error"})
}

// WriteBindingError turns a gin binding failure into a 400 listing every
// failed field, not just the first.
func WriteBindingError(c *gin.Context, err error) {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		c.JSON(http.StatusBadRequest, Body{Message: err.Error()})
		return
	}
	fields := make([]service.FieldError, 0, len(verrs))
	for _, fe := range verrs {
		fields = append(fields, service.FieldError{
			Field:   fe.Field(),
			Message: fieldMessage(fe),
		})
	}
	c.JSON(http.StatusBadRequest, Body{Message: "validation failed", Fields: fields})
}

func fieldMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "max":
		return fmt.Sprintf("must be at most %s characters", fe.Param())
	case "min":
		return fmt.Sprintf("must be at least %s", fe.Param())
	case "gt":
		return fmt.Sprintf("must be greater than %s", fe.Param())
	default:
		return fmt.Sprintf("failed %q validation", fe.Tag())
	}
}

// RegisterTagNames makes validator report json field names instead of Go
// struct field names. Call once before mounting routes.
func RegisterTagNames() {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return
	}
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" || name == "" {
			return fld.Name
		}
		return name
	})
}

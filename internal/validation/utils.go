package validation

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"math"
	"reflect"
	"strconv"
	"strings"

	"github.com/4GeeksAcademy/Elroro23-StarWars-REST-API/internal/errs"
	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

// Validatable is implemented by request payload types that know how to validate themselves.
//
// Typical pattern:
// - Define a request struct with validator tags (`validate:"required,email"`)
// - Implement Validate() error that calls validation.Struct(req)
type Validatable interface {
	Validate() error
}

// BodyPayload is implemented by payloads decoded from a JSON object body.
// Payloads that do not implement it only read path parameters.
type BodyPayload interface {
	RequiresBody() bool
}

// MaxBodyBytes caps the size of a request body.
const MaxBodyBytes = 1 << 20

// ErrBodyNotObject is the message returned for a missing or non-object body.
const ErrBodyNotObject = "request body must be a JSON object"

// BindAndValidate binds request data into payload and validates it.
//
// Flow:
//  1. Path parameters are checked to be unsigned integers and bound through
//     echo's `param` tags.
//  2. If the payload needs a body, the body must be a JSON object and is
//     decoded into the payload.
//  3. payload.Validate() applies validation rules. Only the first failing
//     field, in declaration order, is reported; a value of the wrong type
//     counts as failing at its own position.
func BindAndValidate(c echo.Context, payload Validatable) error {
	for _, name := range c.ParamNames() {
		if _, err := strconv.ParseUint(c.Param(name), 10, 64); err != nil {
			return errs.NewBadRequestError(fmt.Sprintf("%s must be a non-negative integer", name), true, nil, []errs.FieldError{
				{Field: name, Error: "must be a non-negative integer"},
			})
		}
	}

	if err := (&echo.DefaultBinder{}).BindPathParams(c, payload); err != nil {
		return errs.NewBadRequestError("invalid path parameters", true, nil, nil)
	}

	var typeErr *json.UnmarshalTypeError
	if bp, ok := payload.(BodyPayload); ok && bp.RequiresBody() {
		var err error
		if typeErr, err = decodeBody(c.Request().Body, payload); err != nil {
			return err
		}
	}

	msg, fieldErrors := validateStruct(payload)
	if typeErr != nil && (len(fieldErrors) == 0 || fieldOrder(payload, typeErr.Field) <= fieldOrder(payload, fieldErrors[0].Field)) {
		kind := jsonKind(typeErr.Type)
		return errs.NewBadRequestError(fmt.Sprintf("%s must be %s", typeErr.Field, kind), true, nil, []errs.FieldError{
			{Field: typeErr.Field, Error: "must be " + kind},
		})
	}
	if fieldErrors != nil {
		return errs.NewBadRequestError(msg, true, nil, fieldErrors)
	}

	return nil
}

// decodeBody reads a JSON object into payload. A value of the wrong type is
// returned as typeErr; the rest of the object is still decoded so it can be
// checked against fields declared earlier.
func decodeBody(body io.Reader, payload any) (typeErr *json.UnmarshalTypeError, err error) {
	if body == nil {
		return nil, errs.NewBadRequestError(ErrBodyNotObject, true, nil, nil)
	}

	raw, err := io.ReadAll(io.LimitReader(body, MaxBodyBytes))
	if err != nil {
		return nil, errors.Wrap(err, "reading request body")
	}

	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || raw[0] != '{' || !json.Valid(raw) {
		return nil, errs.NewBadRequestError(ErrBodyNotObject, true, nil, nil)
	}

	if err := json.Unmarshal(raw, payload); err != nil {
		if errors.As(err, &typeErr) && typeErr.Field != "" {
			return typeErr, nil
		}
		return nil, errs.NewBadRequestError(ErrBodyNotObject, true, nil, nil)
	}

	return nil, nil
}

// fieldOrder is the declaration index of the field with the given JSON key.
func fieldOrder(payload any, key string) int {
	t := reflect.TypeOf(payload)
	for t.Kind() == reflect.Ptr {
		t = t.Elem()
	}
	if t.Kind() != reflect.Struct {
		return math.MaxInt
	}

	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)
		name := strings.SplitN(field.Tag.Get("json"), ",", 2)[0]
		if name == "" {
			name = field.Name
		}
		if name == key {
			return i
		}
	}

	return math.MaxInt
}

// jsonKind names the JSON type a Go type decodes from.
func jsonKind(t reflect.Type) string {
	for t.Kind() == reflect.Ptr {
		t = t.Elem()
	}

	switch t.Kind() {
	case reflect.String:
		return "a string"
	case reflect.Bool:
		return "a boolean"
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return "an integer"
	case reflect.Float32, reflect.Float64:
		return "a number"
	default:
		return "a valid value"
	}
}

// validateStruct calls v.Validate() and extracts field errors if validation fails.
func validateStruct(v Validatable) (string, []errs.FieldError) {
	if err := v.Validate(); err != nil {
		return extractValidationError(err)
	}
	return "", nil
}

// extractValidationError keeps the first failing field only, so clients fix
// one field per round trip.
func extractValidationError(err error) (string, []errs.FieldError) {
	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) || len(validationErrors) == 0 {
		return err.Error(), []errs.FieldError{}
	}

	fe := validationErrors[0]
	field := fe.Field()
	var msg string

	switch fe.Tag() {
	case "required":
		msg = "is required"

	case "min":
		// strings: minimum length, numbers: minimum value
		if fe.Kind() == reflect.String {
			msg = fmt.Sprintf("must be at least %s characters", fe.Param())
		} else {
			msg = fmt.Sprintf("must be at least %s", fe.Param())
		}

	case "max":
		if fe.Kind() == reflect.String {
			msg = fmt.Sprintf("must not exceed %s characters", fe.Param())
		} else {
			msg = fmt.Sprintf("must not exceed %s", fe.Param())
		}

	case "oneof":
		msg = fmt.Sprintf("must be one of: %s", fe.Param())

	case "email":
		msg = "must be a valid email address"

	default:
		if fe.Param() != "" {
			msg = fmt.Sprintf("failed %s:%s", fe.Tag(), fe.Param())
		} else {
			msg = fmt.Sprintf("failed %s", fe.Tag())
		}
	}

	return field + " " + msg, []errs.FieldError{{Field: field, Error: msg}}
}

package http

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"reflect"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"

	"myflix-api/internal/domain"
)

var errInvalidDate = errors.New("invalid date")

type registerRequest struct {
	Username string    `json:"Username" binding:"required,alphanum"`
	Password string    `json:"Password" binding:"required,min=8,max=72"`
	Email    string    `json:"Email" binding:"required,email"`
	Birthday *jsonDate `json:"Birthday"`
}

type updateUserRequest struct {
	Email    *string   `json:"Email" binding:"omitnil,email"`
	Password *string   `json:"Password" binding:"omitnil,min=8,max=72"`
	Birthday *jsonDate `json:"Birthday"`
}

type loginRequest struct {
	Username string `form:"Username" json:"Username" binding:"required"`
	Password string `form:"Password" json:"Password" binding:"required"`
}

// jsonDate accepts YYYY-MM-DD as well as RFC 3339 timestamps.
type jsonDate struct {
	time.Time
}

func (d *jsonDate) UnmarshalJSON(data []byte) error {
	var raw string
	if err := json.Unmarshal(data, &raw); err != nil {
		return errInvalidDate
	}
	t, err := domain.ParseDate(raw)
	if err != nil {
		return errInvalidDate
	}
	d.Time = t
	return nil
}

func (d *jsonDate) timePtr() *time.Time {
	if d == nil {
		return nil
	}
	t := d.Time
	return &t
}

type fieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

var validationMessages = map[string]string{
	"Username.required": "Username is required",
	"Username.alphanum": "Username contains non alphanumeric characters - not allowed.",
	"Password.required": "Password is required",
	"Password.min":      "Password must be at least 8 characters long",
	"Password.max":      "Password must be at most 72 characters long",
	"Email.required":    "Email is required",
	"Email.email":       "Email does not appear to be valid",
}

// decodeJSON strictly decodes the request body into dst and validates it. An empty
// body decodes as an empty object; anything after the first JSON value is rejected.
func decodeJSON(c *gin.Context, dst any) []fieldError {
	if c.Request.Body != nil {
		dec := json.NewDecoder(c.Request.Body)
		dec.DisallowUnknownFields()

		err := dec.Decode(dst)
		switch {
		case errors.Is(err, io.EOF):
		case err != nil:
			return []fieldError{decodeError(err)}
		default:
			if err := dec.Decode(&struct{}{}); !errors.Is(err, io.EOF) {
				return []fieldError{{Field: "body", Message: "request body must contain a single JSON object"}}
			}
		}
	}
	return validateStruct(dst)
}

func decodeError(err error) fieldError {
	var (
		syntaxErr *json.SyntaxError
		typeErr   *json.UnmarshalTypeError
	)
	switch {
	case errors.Is(err, errInvalidDate):
		return fieldError{Field: "Birthday", Message: "Birthday must be a date (YYYY-MM-DD)"}
	case errors.As(err, &typeErr):
		if typeErr.Field == "" {
			return fieldError{Field: "body", Message: "request body must be a JSON object"}
		}
		return fieldError{Field: typeErr.Field, Message: fmt.Sprintf("%s must be a %s", typeErr.Field, jsonKind(typeErr.Type))}
	case errors.As(err, &syntaxErr), errors.Is(err, io.ErrUnexpectedEOF):
		return fieldError{Field: "body", Message: "request body is not valid JSON"}
	}

	if name, ok := strings.CutPrefix(err.Error(), "json: unknown field "); ok {
		name = strings.Trim(name, `"`)
		return fieldError{Field: name, Message: fmt.Sprintf("%s is not an allowed field", name)}
	}
	return fieldError{Field: "body", Message: err.Error()}
}

func jsonKind(t reflect.Type) string {
	for t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	switch t.Kind() {
	case reflect.String:
		return "string"
	case reflect.Bool:
		return "boolean"
	case reflect.Slice, reflect.Array:
		return "array"
	case reflect.Struct, reflect.Map:
		return "object"
	default:
		return "number"
	}
}

// validateStruct runs every rule of each field's binding tag on its own, so a field
// reports all the rules it breaks and not only the first.
func validateStruct(dst any) []fieldError {
	engine, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		if err := binding.Validator.ValidateStruct(dst); err != nil {
			return validationErrors(err)
		}
		return nil
	}

	v := reflect.Indirect(reflect.ValueOf(dst))
	t := v.Type()
	var out []fieldError
	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)
		tag := field.Tag.Get("binding")
		if tag == "" {
			continue
		}

		value := v.Field(i)
		rules := strings.Split(tag, ",")
		if rules[0] == "omitnil" {
			if value.IsNil() {
				continue
			}
			rules = rules[1:]
		}
		value = reflect.Indirect(value)

		for _, rule := range rules {
			if err := engine.Var(value.Interface(), rule); err != nil {
				out = append(out, fieldError{Field: field.Name, Message: ruleMessage(field.Name, rule)})
			}
		}
	}
	return out
}

func ruleMessage(field, rule string) string {
	name, _, _ := strings.Cut(rule, "=")
	if msg, ok := validationMessages[field+"."+name]; ok {
		return msg
	}
	return fmt.Sprintf("%s failed the %s check", field, name)
}

func validationErrors(err error) []fieldError {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return []fieldError{{Field: "body", Message: err.Error()}}
	}

	out := make([]fieldError, 0, len(verrs))
	for _, fe := range verrs {
		out = append(out, fieldError{Field: fe.Field(), Message: ruleMessage(fe.Field(), fe.Tag())})
	}
	return out
}

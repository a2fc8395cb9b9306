package news

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	"newsdesk/internal/domain/entity"
	"newsdesk/internal/handler/http/respond"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	// report JSON names instead of Go field names
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	// length bounds come from the entity so the limits live in one place
	v.RegisterAlias("news_title", fmt.Sprintf("min=1,max=%d", entity.MaxTitleLength))
	v.RegisterAlias("news_summary", fmt.Sprintf("max=%d", entity.MaxSummaryLength))
	v.RegisterAlias("news_cover_url", fmt.Sprintf("max=%d", entity.MaxCoverURLLength))
	return v
}

// errMalformedBody marks bodies that are not a single JSON object.
var errMalformedBody = errors.New("invalid request body")

// requestError carries field-level problems found while decoding or validating.
type requestError struct {
	fields []respond.FieldError
}

func (e *requestError) Error() string {
	return fmt.Sprintf("validation failed on %d field(s)", len(e.fields))
}

// decode reads exactly one JSON object into dst and validates it.
// Unknown fields and type mismatches are reported per field.
func decode(r *http.Request, dst any) error {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()

	if err := dec.Decode(dst); err != nil {
		var typeErr *json.UnmarshalTypeError
		switch {
		case errors.As(err, &typeErr) && typeErr.Field != "":
			return &requestError{fields: []respond.FieldError{{
				Field:   typeErr.Field,
				Message: "must be a " + jsonType(typeErr.Type),
			}}}
		case strings.HasPrefix(err.Error(), "json: unknown field "):
			field := strings.Trim(strings.TrimPrefix(err.Error(), "json: unknown field "), `"`)
			return &requestError{fields: []respond.FieldError{{Field: field, Message: "unknown field"}}}
		default:
			return fmt.Errorf("%w: %w", errMalformedBody, err)
		}
	}
	if err := dec.Decode(&struct{}{}); !errors.Is(err, io.EOF) {
		return fmt.Errorf("%w: body must contain a single JSON object", errMalformedBody)
	}

	if err := validate.Struct(dst); err != nil {
		var ve validator.ValidationErrors
		if !errors.As(err, &ve) {
			return err
		}
		fields := make([]respond.FieldError, 0, len(ve))
		for _, fe := range ve {
			fields = append(fields, respond.FieldError{Field: fe.Field(), Message: message(fe)})
		}
		return &requestError{fields: fields}
	}
	return nil
}

func message(fe validator.FieldError) string {
	switch fe.ActualTag() {
	case "required":
		return "is required"
	case "min":
		return "must be at least " + fe.Param() + " characters"
	case "max":
		return "must be at most " + fe.Param() + " characters"
	case "oneof":
		return "must be one of " + strings.Join(strings.Fields(fe.Param()), ", ")
	}
	return "is invalid"
}

func jsonType(t reflect.Type) string {
	switch t.Kind() {
	case reflect.String:
		return "string"
	case reflect.Ptr:
		return jsonType(t.Elem())
	case reflect.Bool:
		return "boolean"
	case reflect.Struct, reflect.Map:
		return "object"
	case reflect.Slice, reflect.Array:
		return "array"
	}
	return "number"
}

// parseScope converts an already validated scope value.
func parseScope(raw *string) (*entity.NewsScope, error) {
	if raw == nil {
		return nil, nil
	}
	s, err := entity.ParseNewsScope(*raw)
	if err != nil {
		return nil, err
	}
	return &s, nil
}

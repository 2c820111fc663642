package validation

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	validatorv10 "github.com/go-playground/validator/v10"
)

// Field error kinds.
const (
	KindMissing     = "missing"
	KindOutOfRange  = "out_of_range"
	KindTooShort    = "too_short"
	KindWrongType   = "wrong_type"
	KindInvalidBody = "invalid_body"
)

// FieldError describes one rejected field. Field uses the validator's path,
// e.g. "items[0].quantity". A wrong-typed field that the validator does not
// also flag keeps the decoder's path, which has no slice indexes
// ("items.item_id").
type FieldError struct {
	Field   string `json:"field"`
	Type    string `json:"type"`
	Message string `json:"message"`
}

// BindAndValidate binds the JSON body into out and validates it.
// On failure it writes a 422 with every violated field and returns the error;
// the handler must return without touching the store.
func BindAndValidate(c *gin.Context, out interface{}, v *validatorv10.Validate) error {
	// encoding/json keeps filling the remaining fields after a type error, so
	// the struct is still validated and both reports are merged.
	var typeErr *json.UnmarshalTypeError
	if err := c.ShouldBindBodyWith(out, binding.JSON); err != nil && !errors.As(err, &typeErr) {
		c.AbortWithStatusJSON(http.StatusUnprocessableEntity, gin.H{"detail": invalidBody(err)})
		return err
	}

	if err := singleValue(c); err != nil {
		c.AbortWithStatusJSON(http.StatusUnprocessableEntity, gin.H{"detail": invalidBody(err)})
		return err
	}

	verr := v.Struct(out)
	if typeErr == nil && verr == nil {
		return nil
	}

	var errs []FieldError
	if verr != nil {
		errs = FieldErrors(verr)
	}
	if typeErr != nil {
		errs = mergeTypeError(errs, typeErr)
		verr = errors.Join(typeErr, verr)
	}

	c.AbortWithStatusJSON(http.StatusUnprocessableEntity, gin.H{"detail": errs})
	return verr
}

// FieldErrors flattens a validator error into one entry per violated field.
func FieldErrors(err error) []FieldError {
	var ve validatorv10.ValidationErrors
	if !errors.As(err, &ve) {
		return invalidBody(err)
	}

	out := make([]FieldError, 0, len(ve))
	for _, fe := range ve {
		out = append(out, FieldError{
			Field:   fieldPath(fe.Namespace()),
			Type:    kindOf(fe.Tag()),
			Message: messageOf(fe),
		})
	}
	return out
}

// singleValue rejects bodies with data after the first JSON value, which the
// streaming decoder used by gin ignores.
func singleValue(c *gin.Context) error {
	raw, ok := c.Get(gin.BodyBytesKey)
	if !ok {
		return nil
	}
	body, ok := raw.([]byte)
	if !ok {
		return nil
	}
	var msg json.RawMessage
	return json.Unmarshal(body, &msg)
}

func invalidBody(err error) []FieldError {
	return []FieldError{{Field: "body", Type: KindInvalidBody, Message: err.Error()}}
}

// mergeTypeError replaces the first validator entry on the wrong-typed field
// (the decoder leaves it zero, so it usually fails "required" or a range
// check) and takes over its indexed path. Otherwise the entry is appended.
func mergeTypeError(errs []FieldError, te *json.UnmarshalTypeError) []FieldError {
	wrong := FieldError{
		Field:   te.Field,
		Type:    KindWrongType,
		Message: fmt.Sprintf("expected %s, got %s", te.Type, te.Value),
	}
	if wrong.Field == "" {
		wrong.Field = "body"
	}

	for i, fe := range errs {
		if stripIndexes(fe.Field) == te.Field {
			wrong.Field = fe.Field
			errs[i] = wrong
			return errs
		}
	}
	return append(errs, wrong)
}

// fieldPath drops the root struct name: "OrderRequest.items[0].quantity"
// becomes "items[0].quantity".
func fieldPath(ns string) string {
	if _, rest, ok := strings.Cut(ns, "."); ok {
		return rest
	}
	return ns
}

// stripIndexes turns "items[0].quantity" into "items.quantity".
func stripIndexes(path string) string {
	var b strings.Builder
	depth := 0
	for _, r := range path {
		switch {
		case r == '[':
			depth++
		case r == ']':
			depth--
		case depth == 0:
			b.WriteRune(r)
		}
	}
	return b.String()
}

func kindOf(tag string) string {
	switch tag {
	case "required":
		return KindMissing
	case "gt", "gte", "lt", "lte":
		return KindOutOfRange
	case "min":
		return KindTooShort
	case "bool":
		return KindWrongType
	default:
		return tag
	}
}

func messageOf(fe validatorv10.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "field required"
	case "gt":
		return "must be greater than " + fe.Param()
	case "gte":
		return "must be greater than or equal to " + fe.Param()
	case "lt":
		return "must be less than " + fe.Param()
	case "lte":
		return "must be less than or equal to " + fe.Param()
	case "min":
		return "must have at least " + fe.Param() + " character(s)"
	case "bool":
		return "must be a boolean"
	default:
		return fe.Error()
	}
}

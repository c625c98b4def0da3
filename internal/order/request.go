package order

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

const (
	MinQuantity = 1
	MaxQuantity = 5
)

var validate *validator.Validate

func init() {
	validate = validator.New()
	validate.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	validate.RegisterValidation("notblank", func(fl validator.FieldLevel) bool {
		return strings.TrimSpace(fl.Field().String()) != ""
	})
}

// OrderRequest is the body of POST /orders. Quantity is a pointer so that a
// missing quantity can be told apart from zero.
type OrderRequest struct {
	ISBN     string `json:"isbn" validate:"notblank"`
	Quantity *int   `json:"quantity" validate:"required,min=1,max=5"`
}

// NewOrderRequest builds a request and validates it.
func NewOrderRequest(isbn string, quantity *int) (OrderRequest, error) {
	req := OrderRequest{ISBN: isbn, Quantity: quantity}
	if err := req.Validate(); err != nil {
		return OrderRequest{}, err
	}
	return req, nil
}

// DecodeOrderRequest reads a JSON order request. Malformed JSON is returned
// as-is; a well-formed but invalid request yields a *ValidationError.
func DecodeOrderRequest(r io.Reader) (OrderRequest, error) {
	var req OrderRequest
	if err := json.NewDecoder(r).Decode(&req); err != nil {
		return OrderRequest{}, fmt.Errorf("decode order request: %w", err)
	}
	if err := req.Validate(); err != nil {
		return OrderRequest{}, err
	}
	return req, nil
}

// Qty returns the validated quantity.
func (r OrderRequest) Qty() int {
	if r.Quantity == nil {
		return 0
	}
	return *r.Quantity
}

// Violation is one failed constraint on one field.
type Violation struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidationError lists every violated constraint of a request.
type ValidationError struct {
	Violations []Violation
}

func (e *ValidationError) Error() string {
	msgs := make([]string, len(e.Violations))
	for i, v := range e.Violations {
		msgs[i] = v.Field + ": " + v.Message
	}
	return "invalid order request: " + strings.Join(msgs, "; ")
}

var messages = map[string]string{
	"isbn.notblank":     "The book ISBN must be defined.",
	"quantity.required": "The book quantity must be defined.",
	"quantity.min":      fmt.Sprintf("You must order at least %d item.", MinQuantity),
	"quantity.max":      fmt.Sprintf("You cannot order more than %d items.", MaxQuantity),
}

// Validate checks every field and returns a *ValidationError holding all
// violations, or nil.
func (r OrderRequest) Validate() error {
	err := validate.Struct(r)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return err
	}

	violations := make([]Violation, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		msg, ok := messages[fe.Field()+"."+fe.Tag()]
		if !ok {
			msg = fmt.Sprintf("%s is invalid", fe.Field())
		}
		violations = append(violations, Violation{Field: fe.Field(), Message: msg})
	}
	return &ValidationError{Violations: violations}
}

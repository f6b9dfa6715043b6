// Package validation declares the named request schemas and checks incoming
// data against them. A failed check yields a single InvalidInput domain
// error carrying the first violation encountered, never an aggregate.
package validation

import (
	"fmt"
	"reflect"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	"go.mongodb.org/mongo-driver/bson/primitive"

	apperrors "blogapi/internal/errors"
)

// SignupRequest is the registration schema.
type SignupRequest struct {
	Name            string `json:"name" validate:"required,min=3"`
	Email           string `json:"email" validate:"required,email"`
	Password        string `json:"password" validate:"required,min=6"`
	ConfirmPassword string `json:"confirmPassword" validate:"required,min=6,eqfield=Password"`
}

// LoginRequest is the login schema.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
}

// CreatePostRequest is the post creation schema.
type CreatePostRequest struct {
	Title string `json:"title" validate:"required,min=4"`
	Body  string `json:"body" validate:"required,min=10"`
}

// UpdatePostRequest is the post update schema. Both fields are omittable,
// but when present they must satisfy the same length rules as creation.
type UpdatePostRequest struct {
	Title *string `json:"title" validate:"omitempty,min=4"`
	Body  *string `json:"body" validate:"omitempty,min=10"`
}

// ListQuery holds normalized pagination and ordering parameters.
type ListQuery struct {
	Page    int
	Limit   int
	OrderBy string
	Order   string
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	// Report fields by their json names so messages match the wire format.
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// Validate checks a schema struct and returns nil or an InvalidInput error
// with the first violation's message.
func Validate(req interface{}) error {
	err := validate.Struct(req)
	if err == nil {
		return nil
	}
	violations, ok := err.(validator.ValidationErrors)
	if !ok || len(violations) == 0 {
		return apperrors.InvalidInput("Invalid request")
	}
	return apperrors.InvalidInput(message(violations[0]))
}

func message(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", fe.Field())
	case "min":
		return fmt.Sprintf("%s must be at least %s characters long", fe.Field(), fe.Param())
	case "email":
		return "email must be a valid email"
	case "eqfield":
		if fe.Field() == "confirmPassword" {
			return "Confirm password does not match password."
		}
		return fmt.Sprintf("%s does not match %s", fe.Field(), fe.Param())
	default:
		return fmt.Sprintf("%s is invalid", fe.Field())
	}
}

// PostID validates a postId path parameter: it must be a 24-character
// hexadecimal document id.
func PostID(raw string) (primitive.ObjectID, error) {
	id, err := primitive.ObjectIDFromHex(raw)
	if err != nil {
		return primitive.NilObjectID, apperrors.InvalidInput("Invalid Id")
	}
	return id, nil
}

// ParseListQuery coerces and bounds the list query parameters, applying
// defaults for anything omitted.
func ParseListQuery(page, limit, orderBy, order string) (*ListQuery, error) {
	q := &ListQuery{Page: 1, Limit: 5, OrderBy: "createdAt", Order: "desc"}

	if page != "" {
		n, err := strconv.Atoi(page)
		if err != nil || n < 1 {
			return nil, apperrors.InvalidInput("page must be an integer greater than or equal to 1")
		}
		q.Page = n
	}
	if limit != "" {
		n, err := strconv.Atoi(limit)
		if err != nil || n < 1 || n > 50 {
			return nil, apperrors.InvalidInput("limit must be an integer between 1 and 50")
		}
		q.Limit = n
	}
	if orderBy != "" {
		switch orderBy {
		case "createdAt", "title", "name":
			q.OrderBy = orderBy
		default:
			return nil, apperrors.InvalidInput("orderBy must be one of createdAt, title, name")
		}
	}
	if order != "" {
		switch order {
		case "asc", "desc":
			q.Order = order
		default:
			return nil, apperrors.InvalidInput("order must be one of asc, desc")
		}
	}
	return q, nil
}

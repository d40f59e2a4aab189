package http

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"reflect"
	"strings"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"

	"github.com/mrlokans/digital-library/internal/entities"
)

// Record names used in validation messages.
const (
	bookRecord   = "Book"
	memberRecord = "Member"
	staffRecord  = "Staff"
)

// dateLayouts lists the accepted date formats, tried in order.
var dateLayouts = []string{time.RFC3339Nano, "2006-01-02"}

var registerJSONNames sync.Once

// useJSONFieldNames makes validation errors report JSON field names.
func useJSONFieldNames() {
	registerJSONNames.Do(func() {
		v, ok := binding.Validator.Engine().(*validator.Validate)
		if !ok {
			return
		}
		v.RegisterTagNameFunc(func(fld reflect.StructField) string {
			name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
			if name == "-" {
				return ""
			}
			return name
		})
	})
}

// requestError describes a rejected request body. Malformed bodies are
// always answered with 400; invalid ones use the controller's error status.
type requestError struct {
	malformed bool
	message   string
}

func (e *requestError) Error() string {
	return e.message
}

// fieldError is a single invalid field found after binding.
type fieldError struct {
	field  string
	reason string
}

func (e *fieldError) Error() string {
	return e.field + ": " + e.reason
}

// decodeBody binds the JSON body into obj and runs its binding rules.
// An empty body is treated as an empty object.
func decodeBody(c *gin.Context, record string, obj any) *requestError {
	err := c.ShouldBindWith(obj, binding.JSON)
	if errors.Is(err, io.EOF) {
		err = binding.Validator.ValidateStruct(obj)
	}
	if err == nil {
		return nil
	}

	var syntaxErr *json.SyntaxError
	var typeErr *json.UnmarshalTypeError
	switch {
	case errors.As(err, &syntaxErr), errors.Is(err, io.ErrUnexpectedEOF):
		return &requestError{malformed: true, message: "malformed JSON body: " + err.Error()}
	case errors.As(err, &typeErr) && typeErr.Field == "":
		return &requestError{malformed: true, message: "request body must be a JSON object"}
	}
	return &requestError{message: validationMessage(record, err)}
}

func invalidRequest(record string, err error) *requestError {
	return &requestError{message: validationMessage(record, err)}
}

func respondRequestError(c *gin.Context, reqErr *requestError, errStatus int) {
	status := errStatus
	if reqErr.malformed {
		status = http.StatusBadRequest
	}
	respondError(c, status, reqErr.message)
}

// validationMessage renders "<record> validation failed: <field>: <reason>, ...".
func validationMessage(record string, err error) string {
	var fieldErrs validator.ValidationErrors
	var typeErr *json.UnmarshalTypeError
	var fieldErr *fieldError

	var parts []string
	switch {
	case errors.As(err, &fieldErrs):
		for _, fe := range fieldErrs {
			parts = append(parts, fe.Field()+": "+describeRule(fe))
		}
	case errors.As(err, &typeErr):
		parts = append(parts, typeErr.Field+": must be "+jsonKind(typeErr.Type))
	case errors.As(err, &fieldErr):
		parts = append(parts, fieldErr.Error())
	default:
		parts = append(parts, err.Error())
	}
	return fmt.Sprintf("%s validation failed: %s", record, strings.Join(parts, ", "))
}

func describeRule(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	default:
		return fmt.Sprintf("failed on the '%s' rule", fe.Tag())
	}
}

func jsonKind(t reflect.Type) string {
	if t == nil {
		return "a valid value"
	}
	for t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	switch t.Kind() {
	case reflect.String:
		return "a string"
	case reflect.Bool:
		return "a boolean"
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64, reflect.Float32, reflect.Float64:
		return "a number"
	default:
		return "a " + t.Kind().String()
	}
}

func parseDate(field, value string) (time.Time, error) {
	value = strings.TrimSpace(value)
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			return t.UTC(), nil
		}
	}
	return time.Time{}, &fieldError{field: field, reason: fmt.Sprintf("invalid date %q, expected RFC 3339 or YYYY-MM-DD", value)}
}

func parseOptionalDate(field string, value *string) (*time.Time, error) {
	if value == nil {
		return nil, nil
	}
	t, err := parseDate(field, *value)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

// --- Books ---

type createBookRequest struct {
	Title     string `json:"title" binding:"required"`
	Author    string `json:"author" binding:"required"`
	Genre     string `json:"genre" binding:"required"`
	IsFiction *bool  `json:"isFiction" binding:"required"`
}

func (r createBookRequest) toEntity() entities.Book {
	return entities.Book{
		Title:     r.Title,
		Author:    r.Author,
		Genre:     r.Genre,
		IsFiction: *r.IsFiction,
	}
}

type updateBookRequest struct {
	Title     *string `json:"title"`
	Author    *string `json:"author"`
	Genre     *string `json:"genre"`
	IsFiction *bool   `json:"isFiction"`
}

func (r updateBookRequest) toUpdate() entities.BookUpdate {
	return entities.BookUpdate{
		Title:     r.Title,
		Author:    r.Author,
		Genre:     r.Genre,
		IsFiction: r.IsFiction,
	}
}

// --- Members ---

type createMemberRequest struct {
	Name           string `json:"name" binding:"required"`
	MembershipType string `json:"membershipType" binding:"required"`
	Email          string `json:"email" binding:"required"`
	JoinDate       string `json:"joinDate" binding:"required"`
}

func (r createMemberRequest) toEntity() (entities.Member, error) {
	joined, err := parseDate("joinDate", r.JoinDate)
	if err != nil {
		return entities.Member{}, err
	}
	return entities.Member{
		Name:           r.Name,
		MembershipType: r.MembershipType,
		Email:          r.Email,
		JoinDate:       joined,
	}, nil
}

type updateMemberRequest struct {
	Name           *string `json:"name"`
	MembershipType *string `json:"membershipType"`
	Email          *string `json:"email"`
	JoinDate       *string `json:"joinDate"`
}

func (r updateMemberRequest) toUpdate() (entities.MemberUpdate, error) {
	joined, err := parseOptionalDate("joinDate", r.JoinDate)
	if err != nil {
		return entities.MemberUpdate{}, err
	}
	return entities.MemberUpdate{
		Name:           r.Name,
		MembershipType: r.MembershipType,
		Email:          r.Email,
		JoinDate:       joined,
	}, nil
}

// --- Staff ---

type createStaffRequest struct {
	Name     string `json:"name" binding:"required"`
	Position string `json:"position" binding:"required"`
	Email    string `json:"email" binding:"required"`
	HireDate string `json:"hireDate" binding:"required"`
}

func (r createStaffRequest) toEntity() (entities.Staff, error) {
	hired, err := parseDate("hireDate", r.HireDate)
	if err != nil {
		return entities.Staff{}, err
	}
	return entities.Staff{
		Name:     r.Name,
		Position: r.Position,
		Email:    r.Email,
		HireDate: hired,
	}, nil
}

type updateStaffRequest struct {
	Name     *string `json:"name"`
	Position *string `json:"position"`
	Email    *string `json:"email"`
	HireDate *string `json:"hireDate"`
}

func (r updateStaffRequest) toUpdate() (entities.StaffUpdate, error) {
	hired, err := parseOptionalDate("hireDate", r.HireDate)
	if err != nil {
		return entities.StaffUpdate{}, err
	}
	return entities.StaffUpdate{
		Name:     r.Name,
		Position: r.Position,
		Email:    r.Email,
		HireDate: hired,
	}, nil
}

package validator

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type registerRequest struct {
	Name     string `json:"name" validate:"required,max=255"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
	Nights   int    `json:"nights,omitempty" validate:"gte=0,lte=30"`
	Photo    string `json:"photo_url,omitempty" validate:"omitempty,http_url"`
}

func TestValidate_Success(t *testing.T) {
	err := Validate(registerRequest{Name: "Ada", Email: "ada@example.com", Password: "correct horse"})
	assert.NoError(t, err)
}

func TestValidate_FieldsUseJSONNames(t *testing.T) {
	err := Validate(registerRequest{Email: "not-an-email", Password: "short", Nights: 31, Photo: "nope"})
	require.Error(t, err)

	var valErr *ValidationError
	require.ErrorAs(t, err, &valErr)
	assert.Equal(t, map[string]string{
		"name":      "is required",
		"email":     "must be a valid email address",
		"password":  "must be at least 8 characters",
		"nights":    "must be less than or equal to 30",
		"photo_url": "must be a valid URL",
	}, valErr.Fields())
}

func TestValidationError_ErrorString(t *testing.T) {
	err := Validate(registerRequest{Name: "Ada", Email: "ada@example.com"})
	require.Error(t, err)
	assert.Equal(t, "field 'password' is required", err.Error())
}

func decode(body string) (registerRequest, error) {
	var dst registerRequest
	req := httptest.NewRequest(http.MethodPost, "/api/v1/users", strings.NewReader(body))
	err := DecodeAndValidate(httptest.NewRecorder(), req, &dst)
	return dst, err
}

func TestDecodeAndValidate(t *testing.T) {
	dst, err := decode(`{"name":"Ada","email":"ada@example.com","password":"correct horse"}`)
	require.NoError(t, err)
	assert.Equal(t, "Ada", dst.Name)

	tests := map[string]string{
		"invalid json":     `{"name":`,
		"unknown field":    `{"name":"Ada","email":"ada@example.com","password":"correct horse","admin":true}`,
		"trailing data":    `{"name":"Ada","email":"ada@example.com","password":"correct horse"} {}`,
		"fails validation": `{"name":"Ada","email":"ada@example.com"}`,
	}
	for name, body := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := decode(body)
			assert.Error(t, err)
		})
	}
}

func TestDecodeAndValidate_BodyTooLarge(t *testing.T) {
	body := `{"name":"` + strings.Repeat("a", MaxBodyBytes) + `"}`
	_, err := decode(body)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "decode request body")
}

package request_test

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gocats/internal/api/request"
	"gocats/internal/domain"
	apperror "gocats/internal/errors"
)

func newReq(body string) *http.Request {
	return httptest.NewRequest(http.MethodPost, "/auth/register", strings.NewReader(body))
}

func TestDecodeAndValidate_Success(t *testing.T) {
	d := request.NewDecoder()
	var reg domain.UserRegistration

	err := d.DecodeAndValidate(newReq(`{"name":"Axe","email":"axe@g.com","password":"123","role":"Admin"}`), &reg)

	require.NoError(t, err)
	assert.Equal(t, domain.RoleAdmin, reg.Role)
}

func TestDecodeAndValidate_Failures(t *testing.T) {
	tests := []struct {
		name    string
		body    string
		wantMsg string
	}{
		{"corpo vazio", ``, "request body must not be empty"},
		{"json malformado", `{"name":`, "malformed JSON body"},
		{"email inválido", `{"name":"Axe","email":"axe","password":"1","role":"Admin"}`, "email must be an email"},
		{"papel desconhecido", `{"name":"Axe","email":"axe@g.com","password":"1","role":"Root"}`, "role must be one of the following values: Admin, User"},
		{"nome ausente", `{"email":"axe@g.com","password":"1","role":"User"}`, "name should not be empty"},
		{"senha longa", `{"name":"Axe","email":"axe@g.com","password":"` + strings.Repeat("x", 73) + `","role":"User"}`, "password must be shorter than or equal to 72 bytes"},
		{"senha multibyte acima de 72 bytes", `{"name":"Axe","email":"axe@g.com","password":"` + strings.Repeat("é", 72) + `","role":"User"}`, "password must be shorter than or equal to 72 bytes"},
		{"nome acima da coluna", `{"name":"` + strings.Repeat("a", 256) + `","email":"axe@g.com","password":"1","role":"User"}`, "name must be shorter than or equal to 255 characters"},
		{"email acima da coluna", `{"name":"Axe","email":"` + strings.Repeat("a", 250) + `@g.com","password":"1","role":"User"}`, "email must be shorter than or equal to 255 characters"},
	}

	d := request.NewDecoder()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var reg domain.UserRegistration
			err := d.DecodeAndValidate(newReq(tt.body), &reg)

			require.Error(t, err)
			assert.IsType(t, &apperror.ValidationError{}, err)
			assert.Contains(t, err.(apperror.AppError).Message(), tt.wantMsg)
		})
	}
}

func TestValidate_CatAge(t *testing.T) {
	d := request.NewDecoder()
	negative := -2.0

	err := d.Validate(&domain.CatRequest{Name: "Tom", Age: &negative})

	require.Error(t, err)
	assert.Contains(t, err.(apperror.AppError).Message(), "age must not be less than 0")
	assert.NoError(t, d.Validate(&domain.CatRequest{Name: "Tom"}))

	tooOld := 1000.0
	err = d.Validate(&domain.CatRequest{Name: "Tom", Age: &tooOld})
	require.Error(t, err)
	assert.Contains(t, err.(apperror.AppError).Message(), "age must be less than 1000")
}

func TestValidate_PasswordByteLimit(t *testing.T) {
	d := request.NewDecoder()
	reg := domain.UserRegistration{Name: "Axe", Email: "axe@g.com", Role: domain.RoleUser}

	reg.Password = strings.Repeat("x", 72)
	assert.NoError(t, d.Validate(&reg))

	// 36 caracteres de dois bytes cabem; 37 não.
	reg.Password = strings.Repeat("é", 36)
	assert.NoError(t, d.Validate(&reg))

	reg.Password = strings.Repeat("é", 37)
	assert.IsType(t, &apperror.ValidationError{}, d.Validate(&reg))
}

func TestValidate_CatColumnLimits(t *testing.T) {
	d := request.NewDecoder()

	err := d.Validate(&domain.CatRequest{Name: strings.Repeat("t", 256)})
	require.Error(t, err)
	assert.Contains(t, err.(apperror.AppError).Message(), "name must be shorter than or equal to 255 characters")

	err = d.Validate(&domain.CatRequest{Name: "Tom", Breed: strings.Repeat("b", 300)})
	require.Error(t, err)
	assert.Contains(t, err.(apperror.AppError).Message(), "breed must be shorter than or equal to 255 characters")

	assert.NoError(t, d.Validate(&domain.CatRequest{Name: strings.Repeat("t", 255), Breed: strings.Repeat("b", 255)}))
}

package request

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	apperror "gocats/internal/errors"
	"gocats/internal/pkg/password"
)

// maxBodyBytes limita o corpo JSON aceito pelos handlers.
const maxBodyBytes = 1 << 20

// Decoder lê e valida payloads JSON. É seguro para uso concorrente.
type Decoder struct {
	validate *validator.Validate
}

// NewDecoder cria o Decoder; as mensagens de erro usam os nomes dos campos JSON.
func NewDecoder() *Decoder {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	// max conta caracteres; o bcrypt limita bytes.
	_ = v.RegisterValidation("bcryptmax", func(fl validator.FieldLevel) bool {
		return len(fl.Field().String()) <= password.MaxBytes
	})
	return &Decoder{validate: v}
}

// DecodeAndValidate preenche dst com o corpo da requisição e aplica as tags validate.
// Qualquer falha vira ValidationError (400).
func (d *Decoder) DecodeAndValidate(r *http.Request, dst interface{}) error {
	dec := json.NewDecoder(io.LimitReader(r.Body, maxBodyBytes))
	if err := dec.Decode(dst); err != nil {
		if errors.Is(err, io.EOF) {
			return apperror.NewValidationError("request body must not be empty")
		}
		return apperror.NewValidationError("malformed JSON body")
	}
	return d.Validate(dst)
}

// Validate aplica as tags validate em uma struct já preenchida.
func (d *Decoder) Validate(v interface{}) error {
	err := d.validate.Struct(v)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return apperror.NewValidationError("invalid request")
	}

	msgs := make([]string, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		msgs = append(msgs, describe(fe))
	}
	return apperror.NewValidationError(strings.Join(msgs, "; "))
}

func describe(fe validator.FieldError) string {
	field := fe.Field()
	switch fe.Tag() {
	case "required":
		return field + " should not be empty"
	case "email":
		return field + " must be an email"
	case "max":
		return fmt.Sprintf("%s must be shorter than or equal to %s characters", field, fe.Param())
	case "bcryptmax":
		return fmt.Sprintf("%s must be shorter than or equal to %d bytes", field, password.MaxBytes)
	case "oneof":
		return fmt.Sprintf("%s must be one of the following values: %s", field, strings.ReplaceAll(fe.Param(), " ", ", "))
	case "lt":
		return fmt.Sprintf("%s must be less than %s", field, fe.Param())
	case "gte":
		return fmt.Sprintf("%s must not be less than %s", field, fe.Param())
	default:
		return field + " is invalid"
	}
}

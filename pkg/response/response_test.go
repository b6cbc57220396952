package response

import (
	"errors"
	"reflect"
	"strings"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
)

func TestError(t *testing.T) {
	got := Error("url not found")

	assert.Equal(t, ErrorResponse{Status: StatusError, Message: "url not found"}, got)
	assert.Nil(t, got.Errors)
}

func TestValidation(t *testing.T) {
	type req struct {
		Name string `json:"name" validate:"required"`
		URL  string `json:"url" validate:"required,url"`
	}

	validate := validator.New()

	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	tests := []struct {
		name string
		err  error
		want []ValidationError
	}{
		{
			name: "not validation error",
			err:  errors.New("unknown error"),
		},
		{
			name: "one error",
			err:  validate.Struct(req{Name: "", URL: "https://example.com"}),
			want: []ValidationError{
				{Field: "name", Message: "this field is required"},
			},
		},
		{
			name: "two errors",
			err:  validate.Struct(req{Name: "", URL: "not url"}),
			want: []ValidationError{
				{Field: "name", Message: "this field is required"},
				{Field: "url", Message: "invalid url"},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Validation(tt.err)

			assert.Equal(t, StatusError, got.Status)
			assert.Equal(t, "validation error", got.Message)
			assert.Equal(t, tt.want, got.Errors)
		})
	}
}

func TestMessageForTag(t *testing.T) {
	tests := []struct {
		tag  string
		want string
	}{
		{tag: "required", want: "this field is required"},
		{tag: "url", want: "invalid url"},
		{tag: "http_url", want: "invalid url"},
		{tag: "max", want: "value is too long"},
		{tag: "email", want: "invalid value"},
	}

	for _, tt := range tests {
		t.Run(tt.tag, func(t *testing.T) {
			assert.Equal(t, tt.want, messageForTag(tt.tag))
		})
	}
}

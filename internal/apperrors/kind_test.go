package apperrors

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestKindOf(t *testing.T) {
	cause := errors.New("connection refused")

	tests := []struct {
		name string
		err  error
		want Kind
	}{
		{name: "broker", err: Broker(cause), want: KindBroker},
		{name: "wrapped broker", err: fmt.Errorf("submit: %w", Broker(cause)), want: KindBroker},
		{name: "config", err: Config("failed to read secret", cause), want: KindConfig},
		{name: "validation", err: &ValidationError{}, want: KindValidation},
		{name: "plain", err: cause, want: KindInternal},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, KindOf(tt.err))
		})
	}
}

func TestHTTPStatus(t *testing.T) {
	assert.Equal(t, http.StatusUnprocessableEntity, HTTPStatus(KindValidation))
	assert.Equal(t, http.StatusInternalServerError, HTTPStatus(KindBroker))
	assert.Equal(t, http.StatusInternalServerError, HTTPStatus(KindInternal))
}

func TestErrorMessage(t *testing.T) {
	cause := errors.New("no such file")

	assert.Equal(t, "no such file", Broker(cause).Error())
	assert.Equal(t, "failed to read secret: no such file", Config("failed to read secret", cause).Error())
	assert.ErrorIs(t, Config("x", cause), cause)
}

func TestValidationError(t *testing.T) {
	err := &ValidationError{Fields: []FieldError{
		{Loc: []string{"body", "age"}, Msg: "value is not a valid integer", Type: "type_error.integer"},
		{Loc: []string{"body", "id"}, Msg: "field required", Type: "value_error.missing"},
	}}

	assert.Equal(t, "validation failed: body.age: value is not a valid integer; body.id: field required", err.Error())
}

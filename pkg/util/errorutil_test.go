package util

import (
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidationErrorsKeepTheirMessage(t *testing.T) {
	err := NewValidationError("invalid submission: field 'name' is required")

	domainErr := ToDomainError(err)
	assert.Equal(t, KindValidation, domainErr.Kind)
	assert.Equal(t, http.StatusBadRequest, domainErr.HTTPStatus)
	assert.Equal(t, "invalid submission: field 'name' is required", domainErr.ExternalMessage())
}

func TestNonValidationErrorsCollapseToGenericMessage(t *testing.T) {
	cause := errors.New("pq: connection refused")

	for name, err := range map[string]error{
		"persistence":  NewPersistenceError("could not create ticket", cause),
		"notification": NewNotificationError(cause),
		"internal":     NewInternalError(cause),
	} {
		t.Run(name, func(t *testing.T) {
			domainErr := ToDomainError(err)
			assert.Equal(t, GenericMessage, domainErr.ExternalMessage())
			assert.Equal(t, http.StatusInternalServerError, domainErr.HTTPStatus)
		})
	}
}

func TestToDomainErrorWrapsUnknownErrors(t *testing.T) {
	domainErr := ToDomainError(errors.New("boom"))

	assert.Equal(t, KindInternal, domainErr.Kind)
	assert.Equal(t, http.StatusInternalServerError, domainErr.HTTPStatus)
	assert.Equal(t, GenericMessage, domainErr.ExternalMessage())
}

func TestUnwrapExposesTheCause(t *testing.T) {
	cause := errors.New("disk full")
	err := NewPersistenceError("could not store attachment", cause)

	require.ErrorIs(t, err, cause)
	assert.Contains(t, err.Error(), "disk full")
}

func TestMethodNotAllowed(t *testing.T) {
	domainErr := ToDomainError(NewMethodNotAllowed())

	assert.Equal(t, http.StatusMethodNotAllowed, domainErr.HTTPStatus)
	assert.Equal(t, "method not allowed, use POST", domainErr.ExternalMessage())
}

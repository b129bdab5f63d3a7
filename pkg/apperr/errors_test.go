package apperr

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStatusOf(t *testing.T) {
	assert.Equal(t, http.StatusBadRequest, StatusOf(Validation("bad input")))
	assert.Equal(t, http.StatusUnauthorized, StatusOf(Unauthorized("no session")))
	assert.Equal(t, http.StatusForbidden, StatusOf(Forbidden("wrong role")))
	assert.Equal(t, http.StatusNotFound, StatusOf(NotFound("missing")))
	assert.Equal(t, http.StatusBadRequest, StatusOf(Conflict("duplicate")))
	assert.Equal(t, http.StatusInternalServerError, StatusOf(Dependency("db down", errors.New("conn refused"))))
	assert.Equal(t, http.StatusInternalServerError, StatusOf(errors.New("unclassified")))
}

func TestMessageOfRedactsUnclassified(t *testing.T) {
	assert.Equal(t, "internal server error", MessageOf(errors.New("pq: relation does not exist")))
	assert.Equal(t, "db down", MessageOf(Dependency("db down", errors.New("conn refused"))))
}

func TestStatusOfWrappedError(t *testing.T) {
	wrapped := fmt.Errorf("handler: %w", NotFound("missing"))
	assert.Equal(t, http.StatusNotFound, StatusOf(wrapped))
	assert.Equal(t, "missing", MessageOf(wrapped))
}

func TestDependencyKeepsCauseOutOfMessage(t *testing.T) {
	err := Dependency("failed to send email", errors.New("mailgun 500"))
	assert.Contains(t, err.Error(), "mailgun 500")
	assert.Equal(t, "failed to send email", MessageOf(err))
	assert.ErrorContains(t, errors.Unwrap(err), "mailgun 500")
}

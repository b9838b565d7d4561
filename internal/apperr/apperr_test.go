package apperr

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestError_IsMatchesSentinelByKind(t *testing.T) {
	err := NotFound("application not found")

	assert.ErrorIs(t, err, ErrNotFound)
	assert.NotErrorIs(t, err, ErrForbidden)

	wrapped := fmt.Errorf("load: %w", err)
	assert.ErrorIs(t, wrapped, ErrNotFound)
	assert.Equal(t, KindNotFound, KindOf(wrapped))
	assert.Equal(t, "application not found", MessageOf(wrapped))
}

func TestError_MessagesDoNotMatchEachOther(t *testing.T) {
	a := NotEligible("job is not available for application")
	b := NotEligible("application deadline has passed")

	assert.NotErrorIs(t, a, b)
	assert.ErrorIs(t, a, ErrNotEligible)
	assert.ErrorIs(t, b, ErrNotEligible)
}

func TestError_UnwrapAndMessage(t *testing.T) {
	cause := errors.New("connection refused")
	err := Persistence("failed to create application", cause)

	assert.ErrorIs(t, err, cause)
	assert.Equal(t, "failed to create application: connection refused", err.Error())
	assert.Equal(t, "NOT_FOUND", ErrNotFound.Error())
}

func TestKindOf_PlainError(t *testing.T) {
	assert.Equal(t, Kind(""), KindOf(errors.New("boom")))
	assert.Equal(t, "", MessageOf(errors.New("boom")))
}

package errs

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestErrorIs_MatchesKindThroughWrapping(t *testing.T) {
	err := fmt.Errorf("creating show: %w", MissingReference("venue", 7))

	assert.True(t, errors.Is(err, ErrReferential))
	assert.True(t, errors.Is(err, &Error{Kind: KindReferential, Entity: "venue"}))
	assert.False(t, errors.Is(err, &Error{Kind: KindReferential, Entity: "artist"}))
	assert.False(t, errors.Is(err, ErrNotFound))
	assert.False(t, errors.Is(err, ErrValidation))
}

func TestStorageUnwrapsCause(t *testing.T) {
	cause := errors.New("connection reset")
	err := Storage("commit transaction", cause)

	assert.True(t, errors.Is(err, ErrStorage))
	assert.True(t, errors.Is(err, cause))
	assert.Equal(t, "commit transaction: connection reset", err.Error())
}

func TestToHTTPError(t *testing.T) {
	cases := []struct {
		name   string
		err    *Error
		status int
		code   string
	}{
		{"validation", Invalid("venue", "Venue could not be listed", FieldError{Field: "name", Error: "is required"}), http.StatusBadRequest, "VENUE_INVALID"},
		{"referential", MissingReference("artist", 3), http.StatusBadRequest, "ARTIST_NOT_FOUND"},
		{"dangling", DanglingReference("venue", 3, "show", 9), http.StatusInternalServerError, "INTEGRITY_ERROR"},
		{"not found", NotFound("venue", 42), http.StatusNotFound, "VENUE_NOT_FOUND"},
		{"storage", Storage("begin transaction", errors.New("boom")), http.StatusInternalServerError, "INTERNAL_SERVER_ERROR"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			httpErr := ToHTTPError(tc.err)
			assert.Equal(t, tc.status, httpErr.Status)
			assert.Equal(t, tc.code, httpErr.Code)
		})
	}
}

func TestToHTTPError_KeepsFieldErrors(t *testing.T) {
	httpErr := ToHTTPError(Invalid("artist", "bad", FieldError{Field: "name", Error: "is required"}))
	require.Len(t, httpErr.Errors, 1)
	assert.Equal(t, "name", httpErr.Errors[0].Field)
}

func TestNotFoundMessage(t *testing.T) {
	assert.Equal(t, "Venue 42 not found", NotFound("venue", 42).Error())
}

func TestMakeUpperCaseWithUnderscores(t *testing.T) {
	assert.Equal(t, "BAD_REQUEST", MakeUpperCaseWithUnderscores("Bad Request"))
}

func TestWriteFailed_SurfacesEntityMessage(t *testing.T) {
	err := WriteFailed("venue", "The Musical Hop", errors.New("disk full"))
	assert.True(t, errors.Is(err, ErrStorage))

	httpErr := ToHTTPError(err)
	assert.Equal(t, http.StatusInternalServerError, httpErr.Status)
	assert.Equal(t, "An error occurred. Venue 'The Musical Hop' could not be listed.", httpErr.Message)

	generic := ToHTTPError(Storage("commit transaction", errors.New("boom")))
	assert.Equal(t, http.StatusText(http.StatusInternalServerError), generic.Message)
}

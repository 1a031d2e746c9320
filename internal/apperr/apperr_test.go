package apperr

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestKindOf(t *testing.T) {
	err := New(NotFound, "post not found")
	assert.Equal(t, NotFound, KindOf(err))
}

func TestKindOf_Wrapped(t *testing.T) {
	inner := Wrap(Storage, "upload rejected", errors.New("connection reset"))
	outer := fmt.Errorf("create post: %w", inner)

	assert.Equal(t, Storage, KindOf(outer))
}

func TestKindOf_PlainError(t *testing.T) {
	assert.Equal(t, Unknown, KindOf(errors.New("boom")))
}

func TestError_Message(t *testing.T) {
	err := Wrap(Persistence, "insert failed", errors.New("constraint violation"))
	assert.Equal(t, "insert failed: constraint violation", err.Error())

	bare := New(Forbidden, "not the owner")
	assert.Equal(t, "not the owner", bare.Error())
}

func TestUnwrap(t *testing.T) {
	cause := errors.New("disk full")
	err := Wrap(Staging, "copy failed", cause)

	assert.True(t, errors.Is(err, cause))
}

package apperrors

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCategory(t *testing.T) {
	dup := fmt.Errorf("%w: email already registered", ErrValidation)
	assert.Equal(t, ErrValidation, Category(dup))
	assert.Equal(t, ErrNotFound, Category(fmt.Errorf("lookup: %w", ErrNotFound)))
	assert.Nil(t, Category(errors.New("connection refused")))
}

func TestMessage(t *testing.T) {
	assert.Equal(t, "Email already registered", Message(fmt.Errorf("%w: email already registered", ErrValidation)))
	assert.Equal(t, "Not found", Message(ErrNotFound))
	assert.Equal(t, "Connection refused", Message(errors.New("connection refused")))
}

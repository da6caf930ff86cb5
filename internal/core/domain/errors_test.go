package domain

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

// TestErrors_Existence tests that all error variables exist and are not nil
func TestErrors_Existence(t *testing.T) {
	tests := []struct {
		name string
		err  error
	}{
		{"ErrNotFound", ErrNotFound},
		{"ErrInvalidInput", ErrInvalidInput},
		{"ErrNoImages", ErrNoImages},
		{"ErrNoPages", ErrNoPages},
		{"ErrNoFolderSelected", ErrNoFolderSelected},
		{"ErrWrongPassword", ErrWrongPassword},
		{"ErrAlreadyEncrypted", ErrAlreadyEncrypted},
		{"ErrRendererNotFound", ErrRendererNotFound},
		{"ErrUnsupportedFormat", ErrUnsupportedFormat},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.NotNil(t, tt.err)
			assert.NotEmpty(t, tt.err.Error())
		})
	}
}

func TestErrNoFolderSelected(t *testing.T) {
	assert.Equal(t, "no folder selected", ErrNoFolderSelected.Error())
}

func TestOpError_Error(t *testing.T) {
	err := NewOpError(OpConvert, KindItem, "/tmp/a.png", errors.New("bad header"))
	assert.Equal(t, "images_to_pdf: item /tmp/a.png: bad header", err.Error())

	err = NewOpError(OpEncrypt, KindInput, "", ErrInvalidInput)
	assert.Equal(t, "encrypt: input: invalid input", err.Error())
}

func TestOpError_Unwrap(t *testing.T) {
	err := NewOpError(OpDecrypt, KindAuthorization, "in.pdf", ErrWrongPassword)
	wrapped := fmt.Errorf("decrypt failed: %w", err)

	assert.True(t, errors.Is(wrapped, ErrWrongPassword))

	var opErr *OpError
	assert.True(t, errors.As(wrapped, &opErr))
	assert.Equal(t, KindAuthorization, opErr.Kind)
	assert.Equal(t, "in.pdf", opErr.Path)
}

func TestKindOf(t *testing.T) {
	assert.Equal(t, KindRenderer, KindOf(NewOpError(OpExtract, KindRenderer, "", ErrRendererNotFound)))
	assert.Equal(t, KindWrite, KindOf(fmt.Errorf("outer: %w", NewOpError(OpConvert, KindWrite, "x", errors.New("disk full")))))
	assert.Equal(t, ErrorKind(""), KindOf(errors.New("plain")))
	assert.Equal(t, ErrorKind(""), KindOf(nil))
}

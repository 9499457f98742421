package docsearch_test

import (
	"fmt"
	"testing"

	"github.com/fwojciec/docsearch"
	"github.com/stretchr/testify/assert"
)

func TestErrorf(t *testing.T) {
	t.Parallel()

	err := docsearch.Errorf(docsearch.ENOTFOUND, "index %q not found", "test")

	assert.Equal(t, docsearch.ENOTFOUND, docsearch.ErrorCode(err))
	assert.Equal(t, "index \"test\" not found", docsearch.ErrorMessage(err))
}

func TestErrorCode_NilError(t *testing.T) {
	t.Parallel()

	assert.Empty(t, docsearch.ErrorCode(nil))
}

func TestErrorMessage_NilError(t *testing.T) {
	t.Parallel()

	assert.Empty(t, docsearch.ErrorMessage(nil))
}

func TestErrorCode_UnwrapsWrappedErrors(t *testing.T) {
	t.Parallel()

	err := fmt.Errorf("load index: %w", docsearch.Errorf(docsearch.EUNAVAILABLE, "HTTP 503"))

	assert.Equal(t, docsearch.EUNAVAILABLE, docsearch.ErrorCode(err))
	assert.Equal(t, "HTTP 503", docsearch.ErrorMessage(err))
}

func TestErrorCode_PlainErrorIsInternal(t *testing.T) {
	t.Parallel()

	err := fmt.Errorf("boom")

	assert.Equal(t, docsearch.EINTERNAL, docsearch.ErrorCode(err))
	assert.Equal(t, "Internal error.", docsearch.ErrorMessage(err))
}

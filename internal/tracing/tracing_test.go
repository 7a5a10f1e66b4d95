package tracing

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewFileProvider_WritesEndedSpans(t *testing.T) {
	var buf bytes.Buffer
	provider, err := NewFileProvider(&buf, "reporter-test")
	require.NoError(t, err)

	_, span := provider.Tracer("test").Start(context.Background(), "activity build")
	span.End()
	require.NoError(t, provider.Shutdown(context.Background()))

	assert.Contains(t, buf.String(), `"Name":"activity build"`)
	assert.Contains(t, buf.String(), "reporter-test")
}

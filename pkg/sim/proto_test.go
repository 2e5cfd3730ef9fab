package sim

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCompileSchema(t *testing.T) {
	schema, err := CompileSchema(context.Background())
	require.NoError(t, err)
	require.NotNil(t, schema)

	assert.Equal(t, registrationServiceName, string(schema.Service().FullName()))
	assert.Equal(t,
		[]string{"RegisterService", "RegisterModule", "ListServices", "ListModules"},
		schema.MethodNames(),
	)
}

func TestSchemaStreamingFlags(t *testing.T) {
	schema, err := CompileSchema(context.Background())
	require.NoError(t, err)

	tests := []struct {
		method    string
		streaming bool
	}{
		{"RegisterService", true},
		{"RegisterModule", true},
		{"ListServices", false},
		{"ListModules", false},
	}

	for _, tt := range tests {
		t.Run(tt.method, func(t *testing.T) {
			m, err := schema.Method(tt.method)
			require.NoError(t, err)
			assert.Equal(t, tt.streaming, m.IsStreamingServer())
			assert.False(t, m.IsStreamingClient())
		})
	}
}

func TestSchemaMethodNotFound(t *testing.T) {
	schema, err := CompileSchema(context.Background())
	require.NoError(t, err)

	_, err = schema.Method("DeregisterService")
	assert.ErrorIs(t, err, ErrMethodNotFound)
}

func TestEveryStreamingMethodHasKind(t *testing.T) {
	schema, err := CompileSchema(context.Background())
	require.NoError(t, err)

	methods := schema.Service().Methods()
	for i := 0; i < methods.Len(); i++ {
		m := methods.Get(i)
		if !m.IsStreamingServer() {
			continue
		}
		_, ok := methodKinds[string(m.Name())]
		assert.True(t, ok, "streaming method %s has no operation kind", m.Name())
	}
}

package sim

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name    string
		config  Config
		wantErr error
	}{
		{
			name:    "defaults are valid",
			config:  *DefaultConfig(),
			wantErr: nil,
		},
		{
			name:    "port zero means OS-assigned",
			config:  Config{Port: 0, DelayScale: 1.0},
			wantErr: nil,
		},
		{
			name:    "negative port",
			config:  Config{Port: -1, DelayScale: 1.0},
			wantErr: ErrInvalidPort,
		},
		{
			name:    "port too large",
			config:  Config{Port: 70000, DelayScale: 1.0},
			wantErr: ErrInvalidPort,
		},
		{
			name:    "zero delay scale",
			config:  Config{Port: 50105, DelayScale: 0},
			wantErr: ErrInvalidDelayScale,
		},
		{
			name:    "negative delay scale",
			config:  Config{Port: 50105, DelayScale: -0.5},
			wantErr: ErrInvalidDelayScale,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.config.Validate()
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	assert.Equal(t, DefaultPort, cfg.Port)
	assert.Equal(t, 1.0, cfg.DelayScale)
	assert.True(t, cfg.Reflection)
}

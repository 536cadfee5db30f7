package timex

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func TestDuration_UnmarshalJSON(t *testing.T) {
	tests := []struct {
		name    string
		in      string
		want    time.Duration
		wantErr bool
	}{
		{name: "string", in: `"600ms"`, want: 600 * time.Millisecond},
		{name: "nanoseconds", in: `400000000`, want: 400 * time.Millisecond},
		{name: "bad string", in: `"soon"`, wantErr: true},
		{name: "bool", in: `true`, wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var d Duration
			err := json.Unmarshal([]byte(tt.in), &d)
			if tt.wantErr {
				require.ErrorIs(t, err, ErrInvalidDuration)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, d.Duration)
		})
	}
}

func TestDuration_UnmarshalYAML(t *testing.T) {
	var cfg struct {
		Single Duration `yaml:"single"`
		Batch  Duration `yaml:"batch"`
	}
	err := yaml.Unmarshal([]byte("single: 1.5s\nbatch: 250000000\n"), &cfg)
	require.NoError(t, err)
	assert.Equal(t, 1500*time.Millisecond, cfg.Single.Duration)
	assert.Equal(t, 250*time.Millisecond, cfg.Batch.Duration)
}

func TestDuration_MarshalJSON(t *testing.T) {
	b, err := json.Marshal(Duration{Duration: 600 * time.Millisecond})
	require.NoError(t, err)
	assert.JSONEq(t, `"600ms"`, string(b))
}

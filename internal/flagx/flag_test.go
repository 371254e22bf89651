package flagx

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFilterArgs(t *testing.T) {
	tests := []struct {
		name  string
		args  []string
		names []string
		want  []string
	}{
		{
			name:  "short flag with separate value",
			args:  []string{"-c", "conf.json", "-a", "localhost"},
			names: []string{"c", "config"},
			want:  []string{"-c", "conf.json"},
		},
		{
			name:  "long flag with equals",
			args:  []string{"--config=alt.json", "-a", "localhost"},
			names: []string{"c", "config"},
			want:  []string{"--config=alt.json"},
		},
		{
			name:  "single and double dash both match",
			args:  []string{"-config", "first.json", "--c", "second.json"},
			names: []string{"c", "config"},
			want:  []string{"-config", "first.json", "--c", "second.json"},
		},
		{
			name:  "unknown flags and positionals ignored",
			args:  []string{"-x", "1", "--y=2", "positional"},
			names: []string{"c"},
			want:  []string{},
		},
		{
			name:  "flag without value at end is kept as-is",
			args:  []string{"-c"},
			names: []string{"c"},
			want:  []string{"-c"},
		},
		{
			name:  "next dash-starting token is not a value",
			args:  []string{"-c", "-a", "x"},
			names: []string{"c"},
			want:  []string{"-c"},
		},
		{
			name:  "equals value that looks like a flag",
			args:  []string{"--config=--weird.json"},
			names: []string{"config"},
			want:  []string{"--config=--weird.json"},
		},
		{
			name:  "multiple allowed flags kept in order",
			args:  []string{"-a", ":50051", "-c", "conf.json", "--other", "x", "-d", "dsn"},
			names: []string{"a", "d"},
			want:  []string{"-a", ":50051", "-d", "dsn"},
		},
		{
			name:  "empty args",
			args:  []string{},
			names: []string{"c"},
			want:  []string{},
		},
		{
			name:  "lone dash is not a flag",
			args:  []string{"-", "-c", "x"},
			names: []string{"c"},
			want:  []string{"-c", "x"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, FilterArgs(tt.args, tt.names...))
		})
	}
}

func TestConfigPath(t *testing.T) {
	assert.Equal(t, "a.json", ConfigPath([]string{"-a", ":1", "-c", "a.json"}))
	assert.Equal(t, "b.json", ConfigPath([]string{"--config=b.json"}))
	assert.Equal(t, "", ConfigPath([]string{"-a", ":1"}))
	assert.Equal(t, "", ConfigPath(nil))
}

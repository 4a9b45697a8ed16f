package flagx

import (
	"os"
	"reflect"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFilterArgs(t *testing.T) {
	tests := []struct {
		name         string
		args         []string
		allowedFlags []string
		want         []string
	}{
		{
			name:         "keeps flag with separate value",
			args:         []string{"-d", "postgres://portal", "-a", ":8080"},
			allowedFlags: []string{"-d"},
			want:         []string{"-d", "postgres://portal"},
		},
		{
			name:         "keeps equals form",
			args:         []string{"--config=portal.json", "-s", "secret"},
			allowedFlags: []string{"-c", "--config"},
			want:         []string{"--config=portal.json"},
		},
		{
			name:         "drops everything else",
			args:         []string{"-x", "1", "--y=2", "positional"},
			allowedFlags: []string{"-c", "--config"},
			want:         []string{},
		},
		{
			name:         "several allowed flags keep their order",
			args:         []string{"-a", ":9090", "-n", "production", "--other", "x"},
			allowedFlags: []string{"-a", "-n"},
			want:         []string{"-a", ":9090", "-n", "production"},
		},
		{
			name:         "trailing flag without value survives",
			args:         []string{"-c"},
			allowedFlags: []string{"-c"},
			want:         []string{"-c"},
		},
		{
			name:         "a following flag is not consumed as a value",
			args:         []string{"-c", "-notvalue"},
			allowedFlags: []string{"-c"},
			want:         []string{"-c"},
		},
		{
			name:         "repeated flag kept both times",
			args:         []string{"-c", "one.json", "-c", "two.json"},
			allowedFlags: []string{"-c"},
			want:         []string{"-c", "one.json", "-c", "two.json"},
		},
		{
			name:         "empty input",
			args:         []string{},
			allowedFlags: []string{"-c"},
			want:         []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := FilterArgs(tt.args, tt.allowedFlags)
			if !reflect.DeepEqual(got, tt.want) {
				t.Fatalf("FilterArgs() = %#v, want %#v", got, tt.want)
			}
		})
	}
}

func TestJsonConfigFlags(t *testing.T) {
	origArgs := os.Args
	t.Cleanup(func() { os.Args = origArgs })

	t.Run("short form", func(t *testing.T) {
		os.Args = []string{"testbin", "-c", "/etc/portal/short.json"}
		assert.Equal(t, "/etc/portal/short.json", JsonConfigFlags())
	})

	t.Run("long form", func(t *testing.T) {
		os.Args = []string{"testbin", "-config", "/etc/portal/long.json"}
		assert.Equal(t, "/etc/portal/long.json", JsonConfigFlags())
	})

	t.Run("absent", func(t *testing.T) {
		os.Args = []string{"testbin", "-x", "1"}
		assert.Empty(t, JsonConfigFlags())
	})

	t.Run("last occurrence wins", func(t *testing.T) {
		os.Args = []string{"testbin", "-c", "/etc/portal/1.json", "-config", "/etc/portal/2.json"}
		assert.Equal(t, "/etc/portal/2.json", JsonConfigFlags())
	})
}

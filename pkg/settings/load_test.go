package settings

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	tests := []struct {
		name    string
		raw     string
		want    Config
		wantErr bool
	}{
		{
			name: "full",
			raw: `
logger:
  log_level: debug
  file_log_name: ./logs/queue.log
  max_backups: 3
  max_age: 7
  max_size: 10
  compress: true
queue:
  capacity: 128
`,
			want: Config{
				Logger: Logger{
					LogLevel:    "debug",
					FileLogName: "./logs/queue.log",
					MaxBackups:  3,
					MaxAge:      7,
					MaxSize:     10,
					Compress:    true,
				},
				Queue: Queue{Capacity: 128},
			},
		},
		{
			name: "empty_is_unbounded_nop",
			raw:  ``,
			want: Config{},
		},
		{
			name:    "negative_capacity",
			raw:     "queue:\n  capacity: -1\n",
			wantErr: true,
		},
		{
			name:    "unknown_level",
			raw:     "logger:\n  log_level: verbose\n",
			wantErr: true,
		},
		{
			name:    "malformed",
			raw:     "queue: [",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Parse([]byte(tt.raw))
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, *got)
		})
	}
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("queue:\n  capacity: 4\n"), 0o600))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 4, cfg.Queue.Capacity)
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.True(t, errors.Is(err, os.ErrNotExist), "got %v", err)
}

func TestValidate(t *testing.T) {
	assert.NoError(t, Validate(Queue{Capacity: 0}))

	err := Validate(Queue{Capacity: -5})
	require.Error(t, err)

	var verrs validator.ValidationErrors
	require.True(t, errors.As(err, &verrs))
	assert.Equal(t, "Capacity", verrs[0].Field())
}

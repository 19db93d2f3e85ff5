package config_test

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"testing"

	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/gt"

	"github.com/m-mizutani/relflow/pkg/cli/config"
	"github.com/m-mizutani/relflow/pkg/domain/types"
)

func TestLogger_Configure(t *testing.T) {
	tests := []struct {
		name    string
		level   string
		wantErr bool
	}{
		{name: "debug", level: "debug"},
		{name: "DEBUG (case insensitive)", level: "DEBUG"},
		{name: "info", level: "info"},
		{name: "Warn", level: "Warn"},
		{name: "error", level: "error"},
		{name: "invalid", level: "invalid", wantErr: true},
		{name: "empty string", level: "", wantErr: true},
		{name: "numeric", level: "4", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			logger := &config.Logger{Level: tt.level}

			result, err := logger.Configure()
			if tt.wantErr {
				gt.Error(t, err)
				gt.True(t, goerr.HasTag(err, types.ErrTagConfig))
				return
			}
			gt.NoError(t, err)
			gt.Value(t, result).NotNil()
		})
	}
}

func TestLogger_Level(t *testing.T) {
	var buf bytes.Buffer
	logger, err := config.BuildLogger(&config.Logger{Level: "warn", JSON: true}, &buf)
	gt.NoError(t, err)

	logger.Info("hidden message")
	logger.Warn("shown message")

	gt.Equal(t, bytes.Contains(buf.Bytes(), []byte("hidden message")), false)
	gt.String(t, buf.String()).Contains("shown message")
}

func TestLogger_RedactsSecrets(t *testing.T) {
	var buf bytes.Buffer
	logger, err := config.BuildLogger(&config.Logger{Level: "info", JSON: true}, &buf)
	gt.NoError(t, err)

	logger.Info("configured",
		slog.Any("github", config.GitHub{User: "alice", Token: "ghp_secret_value"}),
		slog.Any("jira", config.Jira{User: "alice", Token: "jira_secret_value"}),
	)

	gt.Equal(t, bytes.Contains(buf.Bytes(), []byte("ghp_secret_value")), false)
	gt.Equal(t, bytes.Contains(buf.Bytes(), []byte("jira_secret_value")), false)
	gt.String(t, buf.String()).Contains("alice")

	var record map[string]any
	gt.NoError(t, json.Unmarshal(buf.Bytes(), &record))
	gt.Equal(t, record["msg"], any("configured"))
}

func TestLogger_Console(t *testing.T) {
	var buf bytes.Buffer
	logger, err := config.BuildLogger(&config.Logger{Level: "debug"}, &buf)
	gt.NoError(t, err)

	logger.Debug("console message", "branch", "release-2024.12.0.01")
	gt.String(t, buf.String()).Contains("console message")
}

func TestLogger_Flags(t *testing.T) {
	logger := &config.Logger{}
	flags := logger.Flags()
	gt.Equal(t, len(flags), 2)

	names := map[string]bool{}
	for _, flag := range flags {
		names[flag.Names()[0]] = true
	}
	gt.True(t, names["log-level"])
	gt.True(t, names["log-json"])
}

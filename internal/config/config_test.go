package config

import (
	"errors"
	"log/slog"
	"testing"
)

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		wantErr error
	}{
		{
			name: "valid defaults",
			cfg:  Config{OutputDir: "/tmp/icons"},
		},
		{
			name:    "empty output dir",
			cfg:     Config{},
			wantErr: ErrInvalidOutputDir,
		},
		{
			name:    "negative capacity",
			cfg:     Config{OutputDir: "/tmp/icons", SessionCapacity: -1},
			wantErr: ErrInvalidSessionCapacity,
		},
		{
			name:    "negative ttl",
			cfg:     Config{OutputDir: "/tmp/icons", SessionTTLMinutes: -5},
			wantErr: ErrInvalidSessionTTL,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if tt.wantErr == nil {
				if err != nil {
					t.Errorf("Validate() error: %v", err)
				}
				return
			}
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("Validate() = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestLevel(t *testing.T) {
	tests := []struct {
		in   string
		want slog.Level
	}{
		{"debug", slog.LevelDebug},
		{"info", slog.LevelInfo},
		{"warn", slog.LevelWarn},
		{"error", slog.LevelError},
		{"", slog.LevelInfo},
		{"bogus", slog.LevelInfo},
	}
	for _, tt := range tests {
		if got := (&Config{LogLevel: tt.in}).Level(); got != tt.want {
			t.Errorf("Level(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

package logging

import (
	"bytes"
	"strings"
	"testing"
)

func TestNewWithWriter_Level(t *testing.T) {
	tests := []struct {
		name      string
		level     string
		wantDebug bool
		wantInfo  bool
	}{
		{"debug", "debug", true, true},
		{"info", "info", false, true},
		{"warn", "warn", false, false},
		{"empty defaults to info", "", false, true},
		{"garbage defaults to info", "loud", false, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			log := NewWithWriter(&buf, tt.level, false)

			log.Debug().Msg("debug-line")
			log.Info().Msg("info-line")

			out := buf.String()
			if got := strings.Contains(out, "debug-line"); got != tt.wantDebug {
				t.Errorf("debug logged = %v, want %v", got, tt.wantDebug)
			}
			if got := strings.Contains(out, "info-line"); got != tt.wantInfo {
				t.Errorf("info logged = %v, want %v", got, tt.wantInfo)
			}
		})
	}
}

func TestNewWithWriter_ServiceField(t *testing.T) {
	var buf bytes.Buffer
	log := NewWithWriter(&buf, "info", false)
	log.Info().Msg("hello")

	if !strings.Contains(buf.String(), `"service":"seodash"`) {
		t.Errorf("output %q missing service field", buf.String())
	}
}

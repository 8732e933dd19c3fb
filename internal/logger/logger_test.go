package logger

import (
	"bytes"
	"encoding/json"
	"errors"
	"strings"
	"testing"
	"time"
)

func TestLoggerLevels(t *testing.T) {
	tests := []struct {
		name    string
		min     Level
		level   Level
		message string
		err     error
		want    bool // should produce output
	}{
		{name: "info at info", min: LevelInfo, level: LevelInfo, message: "fetched page", want: true},
		{name: "debug below info", min: LevelInfo, level: LevelDebug, message: "oldest date", want: false},
		{name: "debug at debug", min: LevelDebug, level: LevelDebug, message: "oldest date", want: true},
		{name: "warn at info", min: LevelInfo, level: LevelWarn, message: "no dates on page", want: true},
		{name: "error with err", min: LevelInfo, level: LevelError, message: "fetch failed", err: errors.New("boom"), want: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			l := New(tt.min, &buf)

			l.log(tt.level, tt.message, Fields{"page": 3}, tt.err)

			if got := buf.Len() > 0; got != tt.want {
				t.Fatalf("logged = %v, want %v", got, tt.want)
			}
			if !tt.want {
				return
			}

			var e entry
			if err := json.Unmarshal(buf.Bytes(), &e); err != nil {
				t.Fatalf("output is not one JSON object: %v", err)
			}
			if e.Message != tt.message {
				t.Errorf("message = %q, want %q", e.Message, tt.message)
			}
			if e.Level != string(tt.level) {
				t.Errorf("level = %q, want %q", e.Level, tt.level)
			}
			if tt.err != nil && e.Error != tt.err.Error() {
				t.Errorf("error = %q, want %q", e.Error, tt.err)
			}
		})
	}
}

func TestLoggerFields(t *testing.T) {
	var buf bytes.Buffer
	l := New(LevelDebug, &buf)

	l.Debug("fetched page", Fields{"page": 2, "url": "https://example.com?page=2"})

	out := buf.String()
	if !strings.Contains(out, `"page":2`) {
		t.Errorf("output missing page field: %s", out)
	}
	if !strings.Contains(out, `"url":"https://example.com?page=2"`) {
		t.Errorf("output missing url field: %s", out)
	}
}

func TestLoggerMarshalFallback(t *testing.T) {
	var buf bytes.Buffer
	l := New(LevelInfo, &buf)

	// A channel cannot be marshaled; the message must still come through.
	l.Info("still logged", Fields{"bad": make(chan int)})

	out := buf.String()
	if !strings.Contains(out, "still logged") {
		t.Errorf("fallback output missing message: %s", out)
	}
	if !strings.Contains(out, "marshal error") {
		t.Errorf("fallback output missing marshal note: %s", out)
	}
}

func TestMetricsCounters(t *testing.T) {
	m := NewMetrics()
	m.IncrCounter("pages.fetched")
	m.IncrCounter("pages.fetched")
	m.IncrCounter("rows.parsed")

	snap := m.Snapshot()
	counters := snap["counters"].(map[string]int64)
	if counters["pages.fetched"] != 2 {
		t.Errorf("pages.fetched = %d, want 2", counters["pages.fetched"])
	}
	if counters["rows.parsed"] != 1 {
		t.Errorf("rows.parsed = %d, want 1", counters["rows.parsed"])
	}
}

func TestMetricsTimings(t *testing.T) {
	m := NewMetrics()
	m.RecordTiming("page.fetch", 100*time.Millisecond)
	m.RecordTiming("page.fetch", 300*time.Millisecond)

	snap := m.Snapshot()
	timings := snap["timings"].(map[string]map[string]interface{})
	stats, ok := timings["page.fetch"]
	if !ok {
		t.Fatal("page.fetch timing missing from snapshot")
	}
	if stats["count"] != 2 {
		t.Errorf("count = %v, want 2", stats["count"])
	}
	if stats["min"] != "100ms" {
		t.Errorf("min = %v, want 100ms", stats["min"])
	}
	if stats["max"] != "300ms" {
		t.Errorf("max = %v, want 300ms", stats["max"])
	}
	if stats["average"] != "200ms" {
		t.Errorf("average = %v, want 200ms", stats["average"])
	}
}

func TestSnapshotIsACopy(t *testing.T) {
	m := NewMetrics()
	m.IncrCounter("pages.fetched")

	snap := m.Snapshot()
	snap["counters"].(map[string]int64)["pages.fetched"] = 99

	again := m.Snapshot()
	if got := again["counters"].(map[string]int64)["pages.fetched"]; got != 1 {
		t.Errorf("snapshot mutation leaked into tracker: %d", got)
	}
}

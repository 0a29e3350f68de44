package log

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func TestCustomFileEncoderLayout(t *testing.T) {
	enc := &customFileEncoder{Encoder: zapcore.NewConsoleEncoder(zapcore.EncoderConfig{})}
	entry := zapcore.Entry{
		Level:   zapcore.InfoLevel,
		Time:    time.Date(2024, 3, 1, 10, 4, 5, 0, time.UTC),
		Message: "Chart generated successfully",
	}

	buf, err := enc.EncodeEntry(entry, []zapcore.Field{
		zap.String("path", "out.png"),
		zap.Int64("fileSize", 1234),
		zap.Bool("tight", true),
		zap.Float64("dpi", 150),
		zap.Error(errors.New("boom")),
	})
	if err != nil {
		t.Fatalf("EncodeEntry: %v", err)
	}
	line := buf.String()

	if !strings.HasPrefix(line, "2024-03-01 10:04:05     INFO Chart generated successfully\t") {
		t.Fatalf("unexpected prefix: %q", line)
	}
	for _, want := range []string{`"path":"out.png"`, `"fileSize":1234`, `"tight":true`, `"dpi":150`, `"error":"boom"`} {
		if !strings.Contains(line, want) {
			t.Errorf("line %q missing %s", line, want)
		}
	}
	if !strings.HasSuffix(line, "\n") {
		t.Errorf("line must end with newline")
	}
}

func TestExtractDuration(t *testing.T) {
	if got := extractDuration([]zap.Field{zap.String("a", "b"), zap.Int64("duration_ms", 42)}); got != 42 {
		t.Fatalf("extractDuration = %d, want 42", got)
	}
	if got := extractDuration([]zap.Field{zap.Int32("duration_ms", 42)}); got != 0 {
		t.Fatalf("extractDuration on int32 field = %d, want 0", got)
	}
}

func TestGenerateRunID(t *testing.T) {
	a, b := GenerateRunID(), GenerateRunID()
	if len(a) != 16 {
		t.Fatalf("run id length = %d, want 16", len(a))
	}
	if a == b {
		t.Fatalf("run ids should differ: %s", a)
	}
}

func TestInitWritesFileLog(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "logs")
	if err := Init(dir); err != nil {
		t.Fatalf("Init: %v", err)
	}

	LogInfo("render started", zap.String("kind", "line"))
	LogDelivery("abc", "telegram:1", false, 12)
	Sync()

	data, err := os.ReadFile(filepath.Join(dir, "sales-chart.log"))
	if err != nil {
		t.Fatalf("read log: %v", err)
	}
	content := string(data)
	if !strings.Contains(content, "INFO render started") {
		t.Errorf("log missing info line: %q", content)
	}
	if !strings.Contains(content, "ERROR Delivery") || !strings.Contains(content, `"target":"telegram:1"`) {
		t.Errorf("log missing delivery line: %q", content)
	}
}

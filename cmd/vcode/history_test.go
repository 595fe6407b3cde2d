package main

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/jask/vcode/internal/journal"
)

func TestWriteHistory(t *testing.T) {
	var buf bytes.Buffer
	writeHistory(&buf, nil)
	if strings.TrimSpace(buf.String()) != "no entries" {
		t.Fatalf("unexpected output %q", buf.String())
	}

	buf.Reset()
	at := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	writeHistory(&buf, []journal.Entry{
		{SessionID: "0123456789abcdef", Kind: journal.KindSubmit, Length: 4, Value: "1234", CreatedAt: at},
		{SessionID: "short", Kind: journal.KindComplete, Length: 6, Masked: true, CreatedAt: at},
	})
	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 2 {
		t.Fatalf("expected 2 lines, got %q", buf.String())
	}
	if !strings.Contains(lines[0], "1234") || !strings.Contains(lines[0], "01234567") || strings.Contains(lines[0], "89abcdef") {
		t.Fatalf("unexpected first line %q", lines[0])
	}
	if !strings.Contains(lines[1], "••••••") || !strings.Contains(lines[1], "short") {
		t.Fatalf("unexpected masked line %q", lines[1])
	}
}

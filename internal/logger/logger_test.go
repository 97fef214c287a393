package logger

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func fixedClock() time.Time {
	return time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
}

func TestLog_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "sim.txt")
	l := New(path)
	l.now = fixedClock
	l.Log("seeded 256 bodies")
	l.Logf("tick %d: %d merges", 3, 2)

	want := []string{
		"[2026-01-02 03:04:05] seeded 256 bodies",
		"[2026-01-02 03:04:05] tick 3: 2 merges",
	}
	got := l.Lines()
	if len(got) != len(want) {
		t.Fatalf("Lines() = %q", got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("line %d = %q, want %q", i, got[i], want[i])
		}
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != strings.Join(want, "\n")+"\n" {
		t.Errorf("file contents = %q", data)
	}
}

func TestLog_MemoryOnly(t *testing.T) {
	l := New("")
	l.Log("hello")
	if l.Path() != "" {
		t.Errorf("Path() = %q", l.Path())
	}
	if lines := l.Lines(); len(lines) != 1 || !strings.HasSuffix(lines[0], "] hello") {
		t.Errorf("Lines() = %q", lines)
	}
}

func TestTail(t *testing.T) {
	l := New("")
	for i := 0; i < maxLines+10; i++ {
		l.Log(fmt.Sprint(i))
	}
	if n := len(l.Lines()); n != maxLines {
		t.Errorf("kept %d lines, want %d", n, maxLines)
	}
	tail := l.Tail(2)
	if len(tail) != 2 || !strings.HasSuffix(tail[1], fmt.Sprintf("] %d", maxLines+9)) {
		t.Errorf("Tail(2) = %q", tail)
	}
	if got := l.Tail(1000); len(got) != maxLines {
		t.Errorf("Tail(1000) returned %d lines", len(got))
	}
}

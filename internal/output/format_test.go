package output

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"todo/internal/service"
	"todo/internal/testutil"
	"todo/internal/todolist"
)

func sampleSnapshot() todolist.Snapshot {
	base := time.Date(2024, 1, 1, 9, 0, 0, 0, time.UTC)
	return todolist.Snapshot{
		Tasks: []service.Task{
			{ID: "t2", Text: "wash car", CreatedAt: base.Add(time.Second)},
			{ID: "t1", Text: "buy milk", Completed: true, CreatedAt: base},
		},
		RemainingCount: 1,
	}
}

func TestFormatTask(t *testing.T) {
	tests := []struct {
		name string
		num  int
		task service.Task
		want string
	}{
		{"open", 1, service.Task{Text: "buy milk"}, "   1  [ ] buy milk\n"},
		{"completed", 12, service.Task{Text: "wash car", Completed: true}, "  12  [x] wash car\n"},
		{"multiline", 3, service.Task{Text: "line one\nline two"}, "   3  [ ] line one line two\n"},
		{"crlf", 4, service.Task{Text: "a\r\nb"}, "   4  [ ] a  b\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			FormatTask(&buf, tt.num, tt.task)
			if buf.String() != tt.want {
				t.Errorf("expected %q, got %q", tt.want, buf.String())
			}
		})
	}
}

func TestRemaining(t *testing.T) {
	if got := Remaining(0); got != "0 task(s) remaining" {
		t.Errorf("expected %q, got %q", "0 task(s) remaining", got)
	}
	var buf bytes.Buffer
	FormatRemaining(&buf, 2)
	if buf.String() != "2 task(s) remaining\n" {
		t.Errorf("expected %q, got %q", "2 task(s) remaining\n", buf.String())
	}
}

func TestParseFormat(t *testing.T) {
	tests := []struct {
		in      string
		want    Format
		wantErr bool
	}{
		{"", FormatText, false},
		{"text", FormatText, false},
		{"JSON", FormatJSON, false},
		{" yaml ", FormatYAML, false},
		{"xml", "", true},
	}
	for _, tt := range tests {
		got, err := ParseFormat(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseFormat(%q): unexpected error state %v", tt.in, err)
			continue
		}
		if got != tt.want {
			t.Errorf("ParseFormat(%q): expected %q, got %q", tt.in, tt.want, got)
		}
	}
}

func TestWriteSnapshot_Text(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteSnapshot(&buf, sampleSnapshot(), FormatText); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	testutil.Golden(t, "snapshot_text", buf.Bytes())
}

func TestWriteSnapshot_JSON(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteSnapshot(&buf, sampleSnapshot(), FormatJSON); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	testutil.Golden(t, "snapshot_json", buf.Bytes())
}

func TestWriteSnapshot_EmptyJSON(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteSnapshot(&buf, todolist.Snapshot{}, FormatJSON); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := "{\n  \"tasks\": [],\n  \"remainingCount\": 0\n}\n"
	if buf.String() != want {
		t.Errorf("expected %q, got %q", want, buf.String())
	}
}

func TestWriteSnapshot_YAML(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteSnapshot(&buf, sampleSnapshot(), FormatYAML); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	out := buf.String()
	for _, want := range []string{
		"tasks:\n",
		"  - id: t2\n",
		"    text: wash car\n",
		"    completed: true\n",
		"remainingCount: 1\n",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("expected yaml to contain %q, got:\n%s", want, out)
		}
	}
}

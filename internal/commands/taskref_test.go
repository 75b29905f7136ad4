package commands

import (
	"errors"
	"strings"
	"testing"

	"todo/internal/service"
)

func TestParseTaskRef_Number(t *testing.T) {
	ref, err := ParseTaskRef([]string{"5"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ref.Num != 5 {
		t.Errorf("expected Num 5, got %d", ref.Num)
	}
	if ref.ID != "" {
		t.Errorf("expected empty ID, got %q", ref.ID)
	}
	if ref.String() != "5" {
		t.Errorf("expected %q, got %q", "5", ref.String())
	}
}

func TestParseTaskRef_ID(t *testing.T) {
	ref, err := ParseTaskRef([]string{"id:3f2c-uuid"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ref.ID != "3f2c-uuid" {
		t.Errorf("expected ID %q, got %q", "3f2c-uuid", ref.ID)
	}
	if ref.String() != "id:3f2c-uuid" {
		t.Errorf("expected %q, got %q", "id:3f2c-uuid", ref.String())
	}
}

func TestParseTaskRef_NumericID(t *testing.T) {
	ref, err := ParseTaskRef([]string{"id:42"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ref.ID != "42" || ref.Num != 0 {
		t.Errorf("expected ID-only reference, got %+v", ref)
	}
}

func TestParseTaskRef_Required(t *testing.T) {
	_, err := ParseTaskRef(nil)
	if !errors.Is(err, ErrTaskRefRequired) {
		t.Errorf("expected ErrTaskRefRequired, got %v", err)
	}
}

func TestParseTaskRef_Invalid(t *testing.T) {
	tests := []struct {
		args []string
		want string
	}{
		{[]string{"a1"}, "invalid task reference: a1"},
		{[]string{"-1"}, "invalid task reference: -1"},
		{[]string{"id:"}, "invalid task reference: id:"},
		{[]string{"id:  "}, "invalid task reference: id:  "},
		{[]string{"99999999999999999999999"}, "invalid task reference: 99999999999999999999999"},
		{[]string{"1", "2"}, "unexpected argument: 2"},
	}
	for _, tt := range tests {
		_, err := ParseTaskRef(tt.args)
		if err == nil {
			t.Errorf("ParseTaskRef(%q): expected error", tt.args)
			continue
		}
		if err.Error() != tt.want {
			t.Errorf("ParseTaskRef(%q): expected %q, got %q", tt.args, tt.want, err.Error())
		}
	}
}

func TestResolveTaskRef(t *testing.T) {
	tasks := []service.Task{
		{ID: "b", Text: "wash car"},
		{ID: "a", Text: "buy milk"},
	}

	task, err := resolveTaskRef(tasks, TaskRef{Num: 2})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if task.ID != "a" {
		t.Errorf("expected task a, got %q", task.ID)
	}

	task, err = resolveTaskRef(tasks, TaskRef{ID: "b"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if task.Text != "wash car" {
		t.Errorf("expected %q, got %q", "wash car", task.Text)
	}
}

func TestResolveTaskRef_NotFound(t *testing.T) {
	tasks := []service.Task{{ID: "a", Text: "buy milk"}}

	tests := []struct {
		ref  TaskRef
		want string
	}{
		{TaskRef{Num: 0}, "task not found: task number out of range: 0"},
		{TaskRef{Num: 2}, "task not found: task number out of range: 2"},
		{TaskRef{ID: "zzz"}, "task not found: id:zzz"},
	}
	for _, tt := range tests {
		_, err := resolveTaskRef(tasks, tt.ref)
		if !errors.Is(err, ErrTaskNotFound) {
			t.Errorf("resolveTaskRef(%v): expected ErrTaskNotFound, got %v", tt.ref, err)
			continue
		}
		if err.Error() != tt.want {
			t.Errorf("resolveTaskRef(%v): expected %q, got %q", tt.ref, tt.want, err.Error())
		}
	}
}

func TestRegistry_RejectsDuplicateNames(t *testing.T) {
	r := NewRegistry()
	if err := r.Register(&AddCmd{}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := r.Register(&AddCmd{}); err == nil {
		t.Error("expected error registering add twice")
	}

	cmd, ok := r.Find("create")
	if !ok {
		t.Fatal("expected alias create to resolve")
	}
	if cmd.Name() != "add" {
		t.Errorf("expected add, got %q", cmd.Name())
	}
	if len(r.All()) != 1 {
		t.Errorf("expected 1 command, got %d", len(r.All()))
	}
}

func TestHelpText_ListsEveryCommand(t *testing.T) {
	text := helpText(DefaultRegistry)
	for _, cmd := range DefaultRegistry.All() {
		if !strings.Contains(text, cmd.Usage()) {
			t.Errorf("help text missing %q", cmd.Usage())
		}
	}
}

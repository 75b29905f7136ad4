package commands

import (
	"errors"
	"fmt"

	"todo/internal/service"
)

// ErrTaskNotFound is returned when a reference matches no task.
var ErrTaskNotFound = errors.New("task not found")

// resolveTaskRef finds the task ref points at in tasks, which must be in
// the order `todo list` prints them.
func resolveTaskRef(tasks []service.Task, ref TaskRef) (service.Task, error) {
	if ref.ID != "" {
		for _, t := range tasks {
			if t.ID == ref.ID {
				return t, nil
			}
		}
		return service.Task{}, fmt.Errorf("%w: %s", ErrTaskNotFound, ref)
	}
	if ref.Num < 1 || ref.Num > len(tasks) {
		return service.Task{}, fmt.Errorf("%w: task number out of range: %d", ErrTaskNotFound, ref.Num)
	}
	return tasks[ref.Num-1], nil
}

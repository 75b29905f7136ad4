package commands

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"unicode"
)

// idPrefix marks a reference by backend id instead of list position.
const idPrefix = "id:"

// TaskRef is a parsed task reference: either a 1-based position in the
// output of `todo list` or a backend id.
type TaskRef struct {
	Num int
	ID  string
}

// ErrTaskRefRequired indicates no task reference was provided.
var ErrTaskRefRequired = errors.New("task reference required")

// ParseTaskRef parses the single task reference in args.
//
//	3        third task as printed by `todo list`
//	id:<id>  the task whose backend id is <id>
func ParseTaskRef(args []string) (TaskRef, error) {
	if len(args) == 0 {
		return TaskRef{}, ErrTaskRefRequired
	}
	if len(args) > 1 {
		return TaskRef{}, fmt.Errorf("unexpected argument: %s", args[1])
	}

	arg := args[0]
	if id, ok := strings.CutPrefix(arg, idPrefix); ok {
		if strings.TrimSpace(id) == "" {
			return TaskRef{}, fmt.Errorf("invalid task reference: %s", arg)
		}
		return TaskRef{ID: id}, nil
	}

	if !isAllDigits(arg) {
		return TaskRef{}, fmt.Errorf("invalid task reference: %s", arg)
	}
	num, err := strconv.Atoi(arg)
	if err != nil {
		return TaskRef{}, fmt.Errorf("invalid task reference: %s", arg)
	}
	return TaskRef{Num: num}, nil
}

// String renders the reference the way the user typed it.
func (r TaskRef) String() string {
	if r.ID != "" {
		return idPrefix + r.ID
	}
	return strconv.Itoa(r.Num)
}

// isAllDigits returns true if s is non-empty and only digits.
func isAllDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if !unicode.IsDigit(r) {
			return false
		}
	}
	return true
}

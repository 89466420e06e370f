// Package task defines the todo item value type and the error kinds shared by the store.
package task

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Serialized field names. They are part of the data file format.
const (
	KeyID        = "id"
	KeyText      = "text"
	KeyCompleted = "completed"
)

// Task is a single todo item.
// Values are never modified in place; use WithCompleted or Toggled to derive a new one.
type Task struct {
	ID        int64
	Text      string
	Completed bool
}

// New creates a pending task with the given id.
// The text is trimmed; empty or whitespace-only text is rejected.
func New(id int64, text string) (Task, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return Task{}, &ValidationError{Field: KeyText, Reason: "must not be empty"}
	}
	return Task{ID: id, Text: text}, nil
}

// WithCompleted returns a copy of t with the completion flag set to done.
func (t Task) WithCompleted(done bool) Task {
	t.Completed = done
	return t
}

// Toggled returns a copy of t with the completion flag flipped.
func (t Task) Toggled() Task {
	return t.WithCompleted(!t.Completed)
}

func (t Task) String() string {
	mark := " "
	if t.Completed {
		mark = "x"
	}
	return fmt.Sprintf("[%s] %s (ID: %d)", mark, t.Text, t.ID)
}

// ToMap returns the serializable form of t.
func (t Task) ToMap() map[string]any {
	return map[string]any{
		KeyID:        t.ID,
		KeyText:      t.Text,
		KeyCompleted: t.Completed,
	}
}

// FromMap rebuilds a task from its serialized form.
// Unknown keys are ignored. Missing or mistyped fields yield a *DeserializationError.
func FromMap(m map[string]any) (Task, error) {
	rawID, ok := m[KeyID]
	if !ok {
		return Task{}, missingField(KeyID)
	}
	id, err := parseID(rawID)
	if err != nil {
		return Task{}, &DeserializationError{Path: KeyID, Err: err}
	}

	rawText, ok := m[KeyText]
	if !ok {
		return Task{}, missingField(KeyText)
	}
	text, ok := rawText.(string)
	if !ok {
		return Task{}, wrongType(KeyText, "string", rawText)
	}
	if strings.TrimSpace(text) == "" {
		return Task{}, &DeserializationError{Path: KeyText, Err: fmt.Errorf("must not be empty")}
	}

	rawDone, ok := m[KeyCompleted]
	if !ok {
		return Task{}, missingField(KeyCompleted)
	}
	done, ok := rawDone.(bool)
	if !ok {
		return Task{}, wrongType(KeyCompleted, "boolean", rawDone)
	}

	return Task{ID: id, Text: text, Completed: done}, nil
}

// parseID accepts positive integral JSON numbers and strings holding a
// positive base-10 integer.
func parseID(v any) (int64, error) {
	var id int64
	switch raw := v.(type) {
	case int:
		id = int64(raw)
	case int64:
		id = raw
	case float64:
		n, err := integralFloat(raw)
		if err != nil {
			return 0, err
		}
		id = n
	case json.Number:
		n, err := raw.Int64()
		if err != nil {
			// 1.0 and 1e3 are integers too
			f, ferr := raw.Float64()
			if ferr != nil {
				return 0, fmt.Errorf("not an integer: %s", raw)
			}
			if n, err = integralFloat(f); err != nil {
				return 0, err
			}
		}
		id = n
	case string:
		n, err := strconv.ParseInt(strings.TrimSpace(raw), 10, 64)
		if err != nil {
			return 0, fmt.Errorf("not an integer: %q", raw)
		}
		id = n
	default:
		return 0, fmt.Errorf("expected number or string, got %s", typeName(v))
	}
	if id < 1 {
		return 0, fmt.Errorf("must be at least 1, got %d", id)
	}
	return id, nil
}

func integralFloat(f float64) (int64, error) {
	if f != math.Trunc(f) || f < math.MinInt64 || f >= math.MaxInt64 {
		return 0, fmt.Errorf("not an integer: %v", f)
	}
	return int64(f), nil
}

func missingField(key string) error {
	return &DeserializationError{Path: key, Err: fmt.Errorf("missing required field")}
}

func wrongType(key, want string, got any) error {
	return &DeserializationError{Path: key, Err: fmt.Errorf("expected %s, got %s", want, typeName(got))}
}

func typeName(v any) string {
	switch v.(type) {
	case nil:
		return "null"
	case bool:
		return "boolean"
	case string:
		return "string"
	case float64, json.Number, int, int64:
		return "number"
	case []any:
		return "array"
	case map[string]any:
		return "object"
	default:
		return fmt.Sprintf("%T", v)
	}
}

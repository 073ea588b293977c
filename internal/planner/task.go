package planner

import (
	"bytes"
	"encoding/json"
	"fmt"
	"time"

	"github.com/Tiliavir/planner-time-tracker/internal/hours"
)

// Task is a remote Planner task as returned by the tasks endpoint.
type Task struct {
	ID                string        `json:"id"`
	Title             string        `json:"title"`
	PlanID            string        `json:"planId"`
	BucketID          string        `json:"bucketId"`
	Priority          int           `json:"priority"`
	PercentComplete   int           `json:"percentComplete"`
	CreatedAt         time.Time     `json:"createdDateTime"`
	DueAt             *time.Time    `json:"dueDateTime"`
	StartAt           *time.Time    `json:"startDateTime"`
	CompletedAt       *time.Time    `json:"completedDateTime"`
	AppliedCategories CategoryFlags `json:"appliedCategories"`
	// ETag is the opaque concurrency token the server requires on
	// updates and deletes (If-Match).
	ETag string `json:"@odata.etag"`
}

// Bucket is a task container with a display name.
type Bucket struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	PlanID string `json:"planId"`
}

// CategoryFlags is a task's applied-category mapping. The wire format
// is a JSON object, but the object's key order is part of the label
// decoding contract, so it is kept as an ordered slice rather than a
// Go map.
type CategoryFlags []hours.Flag

// UnmarshalJSON decodes the object token by token to preserve the key
// order the server returned.
func (c *CategoryFlags) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	tok, err := dec.Token()
	if err != nil {
		return fmt.Errorf("appliedCategories: %w", err)
	}
	if tok == nil { // JSON null
		*c = nil
		return nil
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return fmt.Errorf("appliedCategories: expected object, got %v", tok)
	}
	var flags []hours.Flag
	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return fmt.Errorf("appliedCategories: %w", err)
		}
		key, ok := keyTok.(string)
		if !ok {
			return fmt.Errorf("appliedCategories: expected string key, got %v", keyTok)
		}
		var applied bool
		if err := dec.Decode(&applied); err != nil {
			return fmt.Errorf("appliedCategories[%s]: %w", key, err)
		}
		flags = append(flags, hours.Flag{ID: key, Applied: applied})
	}
	if _, err := dec.Token(); err != nil {
		return fmt.Errorf("appliedCategories: %w", err)
	}
	*c = flags
	return nil
}

// MarshalJSON writes the flags back as an object in slice order.
func (c CategoryFlags) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, f := range c {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(f.ID)
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		if f.Applied {
			buf.WriteString("true")
		} else {
			buf.WriteString("false")
		}
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// TaskSpec describes a task to create.
type TaskSpec struct {
	PlanID            string        `json:"planId"`
	BucketID          string        `json:"bucketId,omitempty"`
	Title             string        `json:"title"`
	DueAt             *time.Time    `json:"dueDateTime,omitempty"`
	AppliedCategories CategoryFlags `json:"appliedCategories,omitempty"`
}

// TaskPatch describes a partial update. Nil fields are left untouched
// on the server.
type TaskPatch struct {
	Title             *string       `json:"title,omitempty"`
	BucketID          *string       `json:"bucketId,omitempty"`
	Priority          *int          `json:"priority,omitempty"`
	PercentComplete   *int          `json:"percentComplete,omitempty"`
	DueAt             *time.Time    `json:"dueDateTime,omitempty"`
	AppliedCategories CategoryFlags `json:"appliedCategories,omitempty"`
}

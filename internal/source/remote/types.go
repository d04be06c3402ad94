package remote

import (
	"bytes"
	"encoding/json"
	"fmt"
	"time"
)

// listDateLayout is the format of the date query parameter of GET /tasks.
const listDateLayout = "2006-01-02 15:04:05"

// timeLayouts are tried in order when decoding timestamps from the service.
// The zone-less layouts are interpreted in local time.
var timeLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// TaskDTO is a task as served by GET /tasks.
type TaskDTO struct {
	ID         ID         `json:"id"`
	Desc       string     `json:"desc"`
	EstimateAt Timestamp  `json:"estimateAt"`
	DoneAt     *Timestamp `json:"doneAt"`
}

// CreateTaskRequest is the body of POST /tasks.
type CreateTaskRequest struct {
	Desc       string    `json:"desc"`
	EstimateAt time.Time `json:"estimateAt"`
}

// ErrorResponse is the error body format of the service. Data usually holds
// a message string.
type ErrorResponse struct {
	Data interface{} `json:"data"`
}

// ID accepts both JSON numbers and strings and keeps the textual form.
type ID string

// UnmarshalJSON implements json.Unmarshaler.
func (id *ID) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*id = ID(s)
		return nil
	}

	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("task id must be a string or number: %w", err)
	}
	*id = ID(n.String())
	return nil
}

// Timestamp decodes RFC 3339 timestamps as well as plain dates.
type Timestamp struct {
	time.Time
}

// UnmarshalJSON implements json.Unmarshaler.
func (ts *Timestamp) UnmarshalJSON(data []byte) error {
	if string(bytes.TrimSpace(data)) == "null" {
		ts.Time = time.Time{}
		return nil
	}

	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("timestamp must be a string: %w", err)
	}

	for _, layout := range timeLayouts {
		t, err := time.ParseInLocation(layout, s, time.Local)
		if err == nil {
			ts.Time = t
			return nil
		}
	}
	return fmt.Errorf("unrecognized timestamp %q", s)
}

package clinicplan

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"
)

// StatusChange records a single status transition of a plan treatment
type StatusChange struct {
	From      string    `json:"from"`
	To        string    `json:"to"`
	ChangedAt time.Time `json:"changed_at"`
}

// StatusHistory is the ordered list of status transitions, stored as a
// JSON column
type StatusHistory []StatusChange

// Value implements driver.Valuer for database storage
func (h StatusHistory) Value() (driver.Value, error) {
	if h == nil {
		h = StatusHistory{}
	}
	return json.Marshal(h)
}

// Scan implements sql.Scanner for database retrieval
func (h *StatusHistory) Scan(value interface{}) error {
	if value == nil {
		*h = StatusHistory{}
		return nil
	}

	switch v := value.(type) {
	case []byte:
		return json.Unmarshal(v, h)
	case string:
		return json.Unmarshal([]byte(v), h)
	default:
		return fmt.Errorf("cannot scan %T into StatusHistory", value)
	}
}

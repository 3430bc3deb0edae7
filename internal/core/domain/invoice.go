package domain

import (
	"encoding/json"
	"time"
)

// Payload is the caller-defined invoice document. It is never interpreted,
// only checked to be well-formed JSON before it is stored.
type Payload = json.RawMessage

// Invoice is a single document owned by exactly one user.
type Invoice struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	Data      Payload   `json:"data"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

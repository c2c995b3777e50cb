package history

import "time"

// Entry is one persisted question/answer exchange. Entries are append-only:
// exactly one row per successful ask, never mutated or deleted.
type Entry struct {
	ID        int64     `json:"id"`
	UserID    string    `json:"userId"`
	Question  string    `json:"question"`
	Answer    string    `json:"answer"`
	CreatedAt time.Time `json:"createdAt"`
}

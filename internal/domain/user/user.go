package user

import "time"

// Board is the user's curriculum/exam system (CBSE, ICSE, a state board...).
// It is free text and is interpolated into the tutoring prompt.
type User struct {
	ID           string    `json:"id"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"` // never expose hash in JSON
	Board        string    `json:"board"`
	Token        *string   `json:"-"` // opaque API token, nullable, single active value
	CreatedAt    time.Time `json:"createdAt"`
}

package stub

import "time"

type NoteRequest struct {
	Body    string `json:"body" binding:"required"`
	Private bool   `json:"private"`
}

type Note struct {
	ID        string    `json:"id"`
	EntryID   string    `json:"entry_id"`
	Body      string    `json:"body"`
	Private   bool      `json:"private"`
	RequestID string    `json:"request_id,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

type NotesResponse struct {
	Notes []Note `json:"notes"`
	Count int    `json:"count"`
}

package models

// Note is a markdown annotation, optionally attached to a security.
type Note struct {
	ID        string `json:"id"`
	Symbol    string `json:"symbol,omitempty"`
	BodyMD    string `json:"body_md"`
	CreatedAt string `json:"created_at"`
	UpdatedAt string `json:"updated_at,omitempty"`
}

// NotePage is a paginated slice of notes.
type NotePage struct {
	Items      []Note `json:"items"`
	Total      int    `json:"total,omitempty"`
	NextOffset *int   `json:"nextOffset,omitempty"`
}

package models

import "time"

// Личная заметка. Видна и изменяема только владельцем.
type Note struct {
	ID        int
	Title     string
	Content   string
	OwnerID   int
	Owner     string // username владельца, для отдачи наружу
	CreatedAt time.Time
	UpdatedAt time.Time
}

// В ответе владелец — отображаемая строка, а не внутренний id.
type NoteResponse struct {
	ID        int       `json:"id"`
	Title     string    `json:"title"`
	Content   string    `json:"content"`
	Owner     string    `json:"owner"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type NoteRequest struct {
	Title   string `json:"title"`
	Content string `json:"content"`
}

func NoteToResponse(n Note) NoteResponse {
	return NoteResponse{
		ID:        n.ID,
		Title:     n.Title,
		Content:   n.Content,
		Owner:     n.Owner,
		CreatedAt: n.CreatedAt,
		UpdatedAt: n.UpdatedAt,
	}
}

package models

import "time"

// Отзыв пользователя. Читается всеми, правится владельцем,
// удаляется владельцем или модератором.
type Feedback struct {
	ID        int
	Title     string
	Content   string
	OwnerID   int
	Owner     string
	CreatedAt time.Time
}

type FeedbackResponse struct {
	ID        int       `json:"id"`
	Title     string    `json:"title"`
	Content   string    `json:"content"`
	Owner     string    `json:"owner"`
	CreatedAt time.Time `json:"created_at"`
}

type FeedbackRequest struct {
	Title   string `json:"title"`
	Content string `json:"content"`
}

func FeedbackToResponse(f Feedback) FeedbackResponse {
	return FeedbackResponse{
		ID:        f.ID,
		Title:     f.Title,
		Content:   f.Content,
		Owner:     f.Owner,
		CreatedAt: f.CreatedAt,
	}
}

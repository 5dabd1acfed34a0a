package models

import "time"

// Комментарий к статье. Имя и email — свободный текст, к аккаунту не
// привязаны. Флаг active — тумблер модерации.
type Comment struct {
	ID           int
	ArticleID    int
	ArticleTitle string
	Name         string
	Email        string
	Content      string
	CreatedAt    time.Time
	Active       bool
}

type CommentResponse struct {
	ID           int       `json:"id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	Content      string    `json:"content"`
	CreatedAt    time.Time `json:"created_at"`
	Active       bool      `json:"active"`
	Article      int       `json:"article"`
	ArticleTitle string    `json:"article_title"`
}

type CommentRequest struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Content string `json:"content"`
	Article int    `json:"article"`
}

func CommentToResponse(c Comment) CommentResponse {
	return CommentResponse{
		ID:           c.ID,
		Name:         c.Name,
		Email:        c.Email,
		Content:      c.Content,
		CreatedAt:    c.CreatedAt,
		Active:       c.Active,
		Article:      c.ArticleID,
		ArticleTitle: c.ArticleTitle,
	}
}

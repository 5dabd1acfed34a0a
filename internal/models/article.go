package models

import "time"

type Category struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

// Статья из таблицы articles. created_at выставляется один раз при вставке
// и при обновлениях не трогается.
type Article struct {
	ID         int
	Title      string
	Content    string
	CreatedAt  time.Time
	CategoryID int
}

// Ответ API: категория отдаётся вложенным объектом.
type ArticleResponse struct {
	ID        int       `json:"id"`
	Title     string    `json:"title"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"created_at"`
	Category  Category  `json:"category"`
}

type ArticleRequest struct {
	Title    string `json:"title"`
	Content  string `json:"content"`
	Category int    `json:"category"`
}

func ArticleToResponse(a Article, c Category) ArticleResponse {
	return ArticleResponse{
		ID:        a.ID,
		Title:     a.Title,
		Content:   a.Content,
		CreatedAt: a.CreatedAt,
		Category:  c,
	}
}

package models

import "time"

// Книга из таблицы books. Всегда принадлежит ровно одному автору.
type Book struct {
	ID          int
	Title       string
	ReleaseDate time.Time
	AuthorID    int
}

// Ответ API: автор отдаётся как id (вложенный объект — только у автора).
type BookResponse struct {
	ID          int    `json:"id"`
	Title       string `json:"title"`
	ReleaseDate string `json:"release_date"`
	Author      int    `json:"author"`
}

type BookRequest struct {
	Title       string `json:"title"`
	ReleaseDate string `json:"release_date"`
	Author      int    `json:"author"`
}

func BookToResponse(b Book) BookResponse {
	return BookResponse{
		ID:          b.ID,
		Title:       b.Title,
		ReleaseDate: b.ReleaseDate.Format(DateLayout),
		Author:      b.AuthorID,
	}
}

package models

import "time"

// Даты в API гоняем строками формата YYYY-MM-DD (колонки DATE в БД).
const DateLayout = "2006-01-02"

// Auteur из таблицы authors.
type Author struct {
	ID        int
	Name      string
	BirthDate time.Time
}

// Ответ API: автор вместе со вложенным списком его книг.
type AuthorResponse struct {
	ID        int            `json:"id"`
	Name      string         `json:"name"`
	BirthDate string         `json:"birth_date"`
	Books     []BookResponse `json:"books"`
}

// Запрос на создание/обновление автора.
type AuthorRequest struct {
	Name      string `json:"name"`
	BirthDate string `json:"birth_date"`
}

func AuthorToResponse(a Author, books []BookResponse) AuthorResponse {
	if books == nil {
		books = []BookResponse{}
	}
	return AuthorResponse{
		ID:        a.ID,
		Name:      a.Name,
		BirthDate: a.BirthDate.Format(DateLayout),
		Books:     books,
	}
}

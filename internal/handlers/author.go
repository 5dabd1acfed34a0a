package handlers

import (
	"Bibliotheque/internal/authz"
	"Bibliotheque/internal/db"
	mw "Bibliotheque/internal/middleware"
	"Bibliotheque/internal/models"
	"database/sql"
	"encoding/json"
	"net/http"
	"strconv"
	"time"
)

// Ресурс авторов целиком закрыт для всех, кроме staff (см. authz.CanAuthor).

func GetAuthors(w http.ResponseWriter, r *http.Request) {
	actor := mw.ActorFrom(r)
	if !authz.CanAuthor(actor, r.Method) {
		deny(w, actor)
		return
	}

	// Фильтр ?year=N — авторы, родившиеся строго позже года N
	where := ""
	args := []any{}
	if y := r.URL.Query().Get("year"); y != "" {
		year, err := strconv.Atoi(y)
		if err != nil {
			jsonError(w, http.StatusBadRequest, "Некорректный параметр year")
			return
		}
		where = ` WHERE date_part('year', birth_date) > $1`
		args = append(args, year)
	}

	var count int
	if err := db.DB.QueryRow(`SELECT COUNT(*) FROM authors`+where, args...).Scan(&count); err != nil {
		jsonError(w, http.StatusInternalServerError, "Ошибка БД")
		return
	}

	limit, offset := pageParams(r)
	n := len(args)
	args = append(args, limit, offset)
	rows, err := db.DB.Query(`
		SELECT id, name, birth_date FROM authors`+where+`
		ORDER BY name
		LIMIT $`+strconv.Itoa(n+1)+` OFFSET $`+strconv.Itoa(n+2), args...)
	if err != nil {
		jsonError(w, http.StatusInternalServerError, "Ошибка БД")
		return
	}
	defer rows.Close()

	out := make([]models.AuthorResponse, 0, limit)
	for rows.Next() {
		var a models.Author
		if err := rows.Scan(&a.ID, &a.Name, &a.BirthDate); err != nil {
			jsonError(w, http.StatusInternalServerError, "Ошибка чтения строк")
			return
		}
		books, err := booksForAuthor(a.ID)
		if err != nil {
			jsonError(w, http.StatusInternalServerError, "Ошибка БД")
			return
		}
		out = append(out, models.AuthorToResponse(a, books))
	}
	if err := rows.Err(); err != nil {
		jsonError(w, http.StatusInternalServerError, "Ошибка БД")
		return
	}

	writePage(w, count, out)
}

func GetAuthorByID(w http.ResponseWriter, r *http.Request) {
	actor := mw.ActorFrom(r)
	if !authz.CanAuthor(actor, r.Method) {
		deny(w, actor)
		return
	}

	id, ok := parseID(r)
	if !ok {
		jsonError(w, http.StatusBadRequest, "Некорректный ID")
		return
	}

	var a models.Author
	err := db.DB.QueryRow(`SELECT id, name, birth_date FROM authors WHERE id = $1`, id).
		Scan(&a.ID, &a.Name, &a.BirthDate)
	if err == sql.ErrNoRows {
		jsonError(w, http.StatusNotFound, "Автор не найден")
		return
	} else if err != nil {
		jsonError(w, http.StatusInternalServerError, "Ошибка БД")
		return
	}

	books, err := booksForAuthor(a.ID)
	if err != nil {
		jsonError(w, http.StatusInternalServerError, "Ошибка БД")
		return
	}
	writeJSON(w, http.StatusOK, models.AuthorToResponse(a, books))
}

// GetAuthorTitles — GET /api/authors/{id}/titles: плоский список названий
// книг автора, без остальных полей.
func GetAuthorTitles(w http.ResponseWriter, r *http.Request) {
	actor := mw.ActorFrom(r)
	if !authz.CanAuthor(actor, r.Method) {
		deny(w, actor)
		return
	}

	id, ok := parseID(r)
	if !ok {
		jsonError(w, http.StatusBadRequest, "Некорректный ID")
		return
	}

	var exists bool
	if err := db.DB.QueryRow(`SELECT EXISTS(SELECT 1 FROM authors WHERE id = $1)`, id).Scan(&exists); err != nil {
		jsonError(w, http.StatusInternalServerError, "Ошибка БД")
		return
	}
	if !exists {
		jsonError(w, http.StatusNotFound, "Автор не найден")
		return
	}

	rows, err := db.DB.Query(`SELECT title FROM books WHERE author_id = $1 ORDER BY title`, id)
	if err != nil {
		jsonError(w, http.StatusInternalServerError, "Ошибка БД")
		return
	}
	defer rows.Close()

	titles := make([]string, 0, 8)
	for rows.Next() {
		var t string
		if err := rows.Scan(&t); err != nil {
			jsonError(w, http.StatusInternalServerError, "Ошибка чтения строк")
			return
		}
		titles = append(titles, t)
	}
	if err := rows.Err(); err != nil {
		jsonError(w, http.StatusInternalServerError, "Ошибка БД")
		return
	}

	writeJSON(w, http.StatusOK, map[string][]string{"titles": titles})
}

func CreateAuthor(w http.ResponseWriter, r *http.Request) {
	actor := mw.ActorFrom(r)
	if !authz.CanAuthor(actor, r.Method) {
		deny(w, actor)
		return
	}

	in, ok := decodeAuthor(w, r)
	if !ok {
		return
	}
	birth, _ := time.Parse(models.DateLayout, in.BirthDate)

	var id int
	if err := db.DB.QueryRow(
		`INSERT INTO authors (name, birth_date) VALUES ($1, $2) RETURNING id`,
		in.Name, birth,
	).Scan(&id); err != nil {
		jsonError(w, http.StatusInternalServerError, "Ошибка вставки")
		return
	}

	writeJSON(w, http.StatusCreated, models.AuthorToResponse(models.Author{
		ID: id, Name: in.Name, BirthDate: birth,
	}, nil))
}

func UpdateAuthor(w http.ResponseWriter, r *http.Request) {
	actor := mw.ActorFrom(r)
	if !authz.CanAuthor(actor, r.Method) {
		deny(w, actor)
		return
	}

	id, ok := parseID(r)
	if !ok {
		jsonError(w, http.StatusBadRequest, "Некорректный ID")
		return
	}
	in, ok := decodeAuthor(w, r)
	if !ok {
		return
	}
	birth, _ := time.Parse(models.DateLayout, in.BirthDate)

	res, err := db.DB.Exec(`UPDATE authors SET name = $1, birth_date = $2 WHERE id = $3`, in.Name, birth, id)
	if err != nil {
		jsonError(w, http.StatusInternalServerError, "Ошибка обновления")
		return
	}
	if n, _ := res.RowsAffected(); n == 0 {
		jsonError(w, http.StatusNotFound, "Автор не найден")
		return
	}

	books, err := booksForAuthor(id)
	if err != nil {
		jsonError(w, http.StatusInternalServerError, "Ошибка БД")
		return
	}
	writeJSON(w, http.StatusOK, models.AuthorToResponse(models.Author{
		ID: id, Name: in.Name, BirthDate: birth,
	}, books))
}

// DeleteAuthor удаляет автора; его книги уходят каскадом на уровне БД.
func DeleteAuthor(w http.ResponseWriter, r *http.Request) {
	actor := mw.ActorFrom(r)
	if !authz.CanAuthor(actor, r.Method) {
		deny(w, actor)
		return
	}

	id, ok := parseID(r)
	if !ok {
		jsonError(w, http.StatusBadRequest, "Некорректный ID")
		return
	}

	res, err := db.DB.Exec(`DELETE FROM authors WHERE id = $1`, id)
	if err != nil {
		jsonError(w, http.StatusInternalServerError, "Ошибка удаления")
		return
	}
	if n, _ := res.RowsAffected(); n == 0 {
		jsonError(w, http.StatusNotFound, "Автор не найден")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func decodeAuthor(w http.ResponseWriter, r *http.Request) (models.AuthorRequest, bool) {
	var in models.AuthorRequest
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		jsonError(w, http.StatusBadRequest, "Неверный JSON: "+err.Error())
		return in, false
	}
	if in.Name == "" {
		jsonError(w, http.StatusBadRequest, "Поле 'name' обязательно")
		return in, false
	}
	if _, err := time.Parse(models.DateLayout, in.BirthDate); err != nil {
		jsonError(w, http.StatusBadRequest, "Некорректная дата рождения (ожидается YYYY-MM-DD)")
		return in, false
	}
	return in, true
}

func booksForAuthor(authorID int) ([]models.BookResponse, error) {
	rows, err := db.DB.Query(`
		SELECT id, title, release_date, author_id
		FROM books
		WHERE author_id = $1
		ORDER BY title`, authorID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]models.BookResponse, 0, 8)
	for rows.Next() {
		var b models.Book
		if err := rows.Scan(&b.ID, &b.Title, &b.ReleaseDate, &b.AuthorID); err != nil {
			return nil, err
		}
		out = append(out, models.BookToResponse(b))
	}
	return out, rows.Err()
}

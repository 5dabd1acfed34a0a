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

// Книги читают все, пишут аутентифицированные (authz.CanBook).

func GetBooks(w http.ResponseWriter, r *http.Request) {
	actor := mw.ActorFrom(r)
	if !authz.CanBook(actor, r.Method) {
		deny(w, actor)
		return
	}

	// Фильтр ?search=foo — подстрока в названии без учёта регистра
	where := ""
	args := []any{}
	if s := r.URL.Query().Get("search"); s != "" {
		where = ` WHERE title ILIKE '%' || $1 || '%'`
		args = append(args, s)
	}

	var count int
	if err := db.DB.QueryRow(`SELECT COUNT(*) FROM books`+where, args...).Scan(&count); err != nil {
		jsonError(w, http.StatusInternalServerError, "Ошибка БД")
		return
	}

	limit, offset := pageParams(r)
	n := len(args)
	args = append(args, limit, offset)
	rows, err := db.DB.Query(`
		SELECT id, title, release_date, author_id FROM books`+where+`
		ORDER BY title
		LIMIT $`+strconv.Itoa(n+1)+` OFFSET $`+strconv.Itoa(n+2), args...)
	if err != nil {
		jsonError(w, http.StatusInternalServerError, "Ошибка БД")
		return
	}
	defer rows.Close()

	out := make([]models.BookResponse, 0, limit)
	for rows.Next() {
		var b models.Book
		if err := rows.Scan(&b.ID, &b.Title, &b.ReleaseDate, &b.AuthorID); err != nil {
			jsonError(w, http.StatusInternalServerError, "Ошибка чтения строк")
			return
		}
		out = append(out, models.BookToResponse(b))
	}
	if err := rows.Err(); err != nil {
		jsonError(w, http.StatusInternalServerError, "Ошибка БД")
		return
	}

	writePage(w, count, out)
}

func GetBookByID(w http.ResponseWriter, r *http.Request) {
	actor := mw.ActorFrom(r)
	if !authz.CanBook(actor, r.Method) {
		deny(w, actor)
		return
	}

	id, ok := parseID(r)
	if !ok {
		jsonError(w, http.StatusBadRequest, "Некорректный ID")
		return
	}

	var b models.Book
	err := db.DB.QueryRow(`SELECT id, title, release_date, author_id FROM books WHERE id = $1`, id).
		Scan(&b.ID, &b.Title, &b.ReleaseDate, &b.AuthorID)
	if err == sql.ErrNoRows {
		jsonError(w, http.StatusNotFound, "Книга не найдена")
		return
	} else if err != nil {
		jsonError(w, http.StatusInternalServerError, "Ошибка БД")
		return
	}

	writeJSON(w, http.StatusOK, models.BookToResponse(b))
}

func CreateBook(w http.ResponseWriter, r *http.Request) {
	actor := mw.ActorFrom(r)
	if !authz.CanBook(actor, r.Method) {
		deny(w, actor)
		return
	}

	in, release, ok := decodeBook(w, r)
	if !ok {
		return
	}

	var id int
	if err := db.DB.QueryRow(
		`INSERT INTO books (title, release_date, author_id) VALUES ($1, $2, $3) RETURNING id`,
		in.Title, release, in.Author,
	).Scan(&id); err != nil {
		jsonError(w, http.StatusInternalServerError, "Ошибка вставки")
		return
	}

	writeJSON(w, http.StatusCreated, models.BookToResponse(models.Book{
		ID: id, Title: in.Title, ReleaseDate: release, AuthorID: in.Author,
	}))
}

func UpdateBook(w http.ResponseWriter, r *http.Request) {
	actor := mw.ActorFrom(r)
	if !authz.CanBook(actor, r.Method) {
		deny(w, actor)
		return
	}

	id, ok := parseID(r)
	if !ok {
		jsonError(w, http.StatusBadRequest, "Некорректный ID")
		return
	}
	in, release, ok := decodeBook(w, r)
	if !ok {
		return
	}

	res, err := db.DB.Exec(
		`UPDATE books SET title = $1, release_date = $2, author_id = $3 WHERE id = $4`,
		in.Title, release, in.Author, id,
	)
	if err != nil {
		jsonError(w, http.StatusInternalServerError, "Ошибка обновления")
		return
	}
	if n, _ := res.RowsAffected(); n == 0 {
		jsonError(w, http.StatusNotFound, "Книга не найдена")
		return
	}

	writeJSON(w, http.StatusOK, models.BookToResponse(models.Book{
		ID: id, Title: in.Title, ReleaseDate: release, AuthorID: in.Author,
	}))
}

func DeleteBook(w http.ResponseWriter, r *http.Request) {
	actor := mw.ActorFrom(r)
	if !authz.CanBook(actor, r.Method) {
		deny(w, actor)
		return
	}

	id, ok := parseID(r)
	if !ok {
		jsonError(w, http.StatusBadRequest, "Некорректный ID")
		return
	}

	res, err := db.DB.Exec(`DELETE FROM books WHERE id = $1`, id)
	if err != nil {
		jsonError(w, http.StatusInternalServerError, "Ошибка удаления")
		return
	}
	if n, _ := res.RowsAffected(); n == 0 {
		jsonError(w, http.StatusNotFound, "Книга не найдена")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// decodeBook валидирует тело запроса, включая существование автора:
// книга без автора жить не может.
func decodeBook(w http.ResponseWriter, r *http.Request) (models.BookRequest, time.Time, bool) {
	var in models.BookRequest
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		jsonError(w, http.StatusBadRequest, "Неверный JSON: "+err.Error())
		return in, time.Time{}, false
	}
	if in.Title == "" {
		jsonError(w, http.StatusBadRequest, "Поле 'title' обязательно")
		return in, time.Time{}, false
	}
	release, err := time.Parse(models.DateLayout, in.ReleaseDate)
	if err != nil {
		jsonError(w, http.StatusBadRequest, "Некорректная дата выхода (ожидается YYYY-MM-DD)")
		return in, time.Time{}, false
	}

	var exists bool
	if err := db.DB.QueryRow(`SELECT EXISTS(SELECT 1 FROM authors WHERE id = $1)`, in.Author).Scan(&exists); err != nil {
		jsonError(w, http.StatusInternalServerError, "Ошибка БД")
		return in, time.Time{}, false
	}
	if !exists {
		jsonError(w, http.StatusBadRequest, "Автор не найден")
		return in, time.Time{}, false
	}
	return in, release, true
}

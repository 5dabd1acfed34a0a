package handlers

import (
	"Bibliotheque/internal/authz"
	"Bibliotheque/internal/db"
	mw "Bibliotheque/internal/middleware"
	"Bibliotheque/internal/models"
	"database/sql"
	"encoding/json"
	"net/http"
	"regexp"
	"time"
)

var emailRe = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// Скрытые модерацией комментарии видят только модераторы и staff —
// им же их и разгребать.
func canSeeInactive(a authz.Actor) bool {
	return a.Staff || authz.GroupCheck(authz.ModeratorGroup)(a)
}

func GetComments(w http.ResponseWriter, r *http.Request) {
	actor := mw.ActorFrom(r)
	if !authz.CanComment(actor, r.Method) {
		deny(w, actor)
		return
	}

	where := ""
	if !canSeeInactive(actor) {
		where = ` WHERE c.active`
	}

	var count int
	if err := db.DB.QueryRow(`SELECT COUNT(*) FROM comments c` + where).Scan(&count); err != nil {
		jsonError(w, http.StatusInternalServerError, "Ошибка БД")
		return
	}

	limit, offset := pageParams(r)
	rows, err := db.DB.Query(`
		SELECT c.id, c.article_id, a.title, c.name, c.email, c.content, c.created_at, c.active
		FROM comments c
		JOIN articles a ON a.id = c.article_id`+where+`
		ORDER BY c.created_at
		LIMIT $1 OFFSET $2`, limit, offset)
	if err != nil {
		jsonError(w, http.StatusInternalServerError, "Ошибка БД")
		return
	}
	defer rows.Close()

	out := make([]models.CommentResponse, 0, limit)
	for rows.Next() {
		var c models.Comment
		if err := rows.Scan(&c.ID, &c.ArticleID, &c.ArticleTitle, &c.Name, &c.Email, &c.Content, &c.CreatedAt, &c.Active); err != nil {
			jsonError(w, http.StatusInternalServerError, "Ошибка чтения строк")
			return
		}
		out = append(out, models.CommentToResponse(c))
	}
	if err := rows.Err(); err != nil {
		jsonError(w, http.StatusInternalServerError, "Ошибка БД")
		return
	}

	writePage(w, count, out)
}

func GetCommentByID(w http.ResponseWriter, r *http.Request) {
	actor := mw.ActorFrom(r)
	if !authz.CanComment(actor, r.Method) {
		deny(w, actor)
		return
	}

	id, ok := parseID(r)
	if !ok {
		jsonError(w, http.StatusBadRequest, "Некорректный ID")
		return
	}

	c, err := commentByID(id)
	if err == sql.ErrNoRows {
		jsonError(w, http.StatusNotFound, "Комментарий не найден")
		return
	} else if err != nil {
		jsonError(w, http.StatusInternalServerError, "Ошибка БД")
		return
	}
	// скрытый комментарий для обычного актора неотличим от отсутствующего
	if !c.Active && !canSeeInactive(actor) {
		jsonError(w, http.StatusNotFound, "Комментарий не найден")
		return
	}
	writeJSON(w, http.StatusOK, models.CommentToResponse(c))
}

func CreateComment(w http.ResponseWriter, r *http.Request) {
	actor := mw.ActorFrom(r)
	if !authz.CanComment(actor, r.Method) {
		deny(w, actor)
		return
	}

	in, ok := decodeComment(w, r)
	if !ok {
		return
	}

	var id int
	if err := db.DB.QueryRow(
		`INSERT INTO comments (article_id, name, email, content, created_at, active)
		 VALUES ($1, $2, $3, $4, $5, TRUE) RETURNING id`,
		in.Article, in.Name, in.Email, in.Content, time.Now(),
	).Scan(&id); err != nil {
		jsonError(w, http.StatusInternalServerError, "Ошибка вставки")
		return
	}

	c, err := commentByID(id)
	if err != nil {
		jsonError(w, http.StatusInternalServerError, "Ошибка БД")
		return
	}
	writeJSON(w, http.StatusCreated, models.CommentToResponse(c))
}

func UpdateComment(w http.ResponseWriter, r *http.Request) {
	actor := mw.ActorFrom(r)
	if !authz.CanComment(actor, r.Method) {
		deny(w, actor)
		return
	}

	id, ok := parseID(r)
	if !ok {
		jsonError(w, http.StatusBadRequest, "Некорректный ID")
		return
	}

	cur, err := commentByID(id)
	if err == sql.ErrNoRows {
		jsonError(w, http.StatusNotFound, "Комментарий не найден")
		return
	} else if err != nil {
		jsonError(w, http.StatusInternalServerError, "Ошибка БД")
		return
	}

	var in struct {
		models.CommentRequest
		Active *bool `json:"active"`
	}
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		jsonError(w, http.StatusBadRequest, "Неверный JSON: "+err.Error())
		return
	}
	if !validComment(w, in.CommentRequest) {
		return
	}

	// Тумблер active доступен только модераторам/staff, остальным — игнор
	active := cur.Active
	if in.Active != nil && canSeeInactive(actor) {
		active = *in.Active
	}

	if _, err := db.DB.Exec(
		`UPDATE comments SET article_id = $1, name = $2, email = $3, content = $4, active = $5 WHERE id = $6`,
		in.Article, in.Name, in.Email, in.Content, active, id,
	); err != nil {
		jsonError(w, http.StatusInternalServerError, "Ошибка обновления")
		return
	}

	c, err := commentByID(id)
	if err != nil {
		jsonError(w, http.StatusInternalServerError, "Ошибка БД")
		return
	}
	writeJSON(w, http.StatusOK, models.CommentToResponse(c))
}

func DeleteComment(w http.ResponseWriter, r *http.Request) {
	actor := mw.ActorFrom(r)
	if !authz.CanComment(actor, r.Method) {
		deny(w, actor)
		return
	}

	id, ok := parseID(r)
	if !ok {
		jsonError(w, http.StatusBadRequest, "Некорректный ID")
		return
	}

	res, err := db.DB.Exec(`DELETE FROM comments WHERE id = $1`, id)
	if err != nil {
		jsonError(w, http.StatusInternalServerError, "Ошибка удаления")
		return
	}
	if n, _ := res.RowsAffected(); n == 0 {
		jsonError(w, http.StatusNotFound, "Комментарий не найден")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func commentByID(id int) (models.Comment, error) {
	var c models.Comment
	err := db.DB.QueryRow(`
		SELECT c.id, c.article_id, a.title, c.name, c.email, c.content, c.created_at, c.active
		FROM comments c
		JOIN articles a ON a.id = c.article_id
		WHERE c.id = $1`, id).
		Scan(&c.ID, &c.ArticleID, &c.ArticleTitle, &c.Name, &c.Email, &c.Content, &c.CreatedAt, &c.Active)
	return c, err
}

func decodeComment(w http.ResponseWriter, r *http.Request) (models.CommentRequest, bool) {
	var in models.CommentRequest
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		jsonError(w, http.StatusBadRequest, "Неверный JSON: "+err.Error())
		return in, false
	}
	return in, validComment(w, in)
}

func validComment(w http.ResponseWriter, in models.CommentRequest) bool {
	if in.Name == "" || in.Content == "" {
		jsonError(w, http.StatusBadRequest, "Поля 'name' и 'content' обязательны")
		return false
	}
	if !emailRe.MatchString(in.Email) {
		jsonError(w, http.StatusBadRequest, "Некорректный email")
		return false
	}

	var exists bool
	if err := db.DB.QueryRow(`SELECT EXISTS(SELECT 1 FROM articles WHERE id = $1)`, in.Article).Scan(&exists); err != nil {
		jsonError(w, http.StatusInternalServerError, "Ошибка БД")
		return false
	}
	if !exists {
		jsonError(w, http.StatusBadRequest, "Статья не найдена")
		return false
	}
	return true
}

package handlers

import (
	"Bibliotheque/internal/authz"
	"Bibliotheque/internal/db"
	mw "Bibliotheque/internal/middleware"
	"Bibliotheque/internal/models"
	"Bibliotheque/internal/throttle"
	"database/sql"
	"encoding/json"
	"net"
	"net/http"
	"time"
)

// Лимит на создание отзывов: 20 в сутки на актора. Остальные действия
// и ресурсы лимитер не трогают.
var FeedbackThrottle = throttle.New(20, 24*time.Hour)

const feedbackScope = "feedback_create"

func GetFeedbacks(w http.ResponseWriter, r *http.Request) {
	actor := mw.ActorFrom(r)
	if !authz.CanFeedback(actor, r.Method, 0) {
		deny(w, actor)
		return
	}

	var count int
	if err := db.DB.QueryRow(`SELECT COUNT(*) FROM feedbacks`).Scan(&count); err != nil {
		jsonError(w, http.StatusInternalServerError, "Ошибка БД")
		return
	}

	limit, offset := pageParams(r)
	rows, err := db.DB.Query(`
		SELECT f.id, f.title, f.content, f.owner_id, u.username, f.created_at
		FROM feedbacks f
		JOIN users u ON u.id = f.owner_id
		ORDER BY f.created_at DESC
		LIMIT $1 OFFSET $2`, limit, offset)
	if err != nil {
		jsonError(w, http.StatusInternalServerError, "Ошибка БД")
		return
	}
	defer rows.Close()

	out := make([]models.FeedbackResponse, 0, limit)
	for rows.Next() {
		var f models.Feedback
		if err := rows.Scan(&f.ID, &f.Title, &f.Content, &f.OwnerID, &f.Owner, &f.CreatedAt); err != nil {
			jsonError(w, http.StatusInternalServerError, "Ошибка чтения строк")
			return
		}
		out = append(out, models.FeedbackToResponse(f))
	}
	if err := rows.Err(); err != nil {
		jsonError(w, http.StatusInternalServerError, "Ошибка БД")
		return
	}

	writePage(w, count, out)
}

func GetFeedbackByID(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(r)
	if !ok {
		jsonError(w, http.StatusBadRequest, "Некорректный ID")
		return
	}

	f, err := feedbackByID(id)
	if err == sql.ErrNoRows {
		jsonError(w, http.StatusNotFound, "Отзыв не найден")
		return
	} else if err != nil {
		jsonError(w, http.StatusInternalServerError, "Ошибка БД")
		return
	}
	writeJSON(w, http.StatusOK, models.FeedbackToResponse(f))
}

func CreateFeedback(w http.ResponseWriter, r *http.Request) {
	actor := mw.ActorFrom(r)
	// сначала авторизация: аноним получает 401, а не 429
	if !authz.CanCreateFeedback(actor) {
		deny(w, actor)
		return
	}

	in, ok := decodeFeedback(w, r)
	if !ok {
		return
	}

	// лимитер — строго до записи в базу: отклонённый запрос не оставляет следов
	if !FeedbackThrottle.Allow(throttleKey(actor, r)) {
		jsonError(w, http.StatusTooManyRequests, "Превышен лимит: не более 20 отзывов в сутки")
		return
	}

	now := time.Now()
	var id int
	if err := db.DB.QueryRow(
		`INSERT INTO feedbacks (title, content, owner_id, created_at) VALUES ($1, $2, $3, $4) RETURNING id`,
		in.Title, in.Content, actor.ID, now,
	).Scan(&id); err != nil {
		jsonError(w, http.StatusInternalServerError, "Ошибка вставки")
		return
	}

	writeJSON(w, http.StatusCreated, models.FeedbackToResponse(models.Feedback{
		ID: id, Title: in.Title, Content: in.Content,
		OwnerID: actor.ID, Owner: actor.Username, CreatedAt: now,
	}))
}

func UpdateFeedback(w http.ResponseWriter, r *http.Request) {
	actor := mw.ActorFrom(r)

	id, ok := parseID(r)
	if !ok {
		jsonError(w, http.StatusBadRequest, "Некорректный ID")
		return
	}

	f, err := feedbackByID(id)
	if err == sql.ErrNoRows {
		jsonError(w, http.StatusNotFound, "Отзыв не найден")
		return
	} else if err != nil {
		jsonError(w, http.StatusInternalServerError, "Ошибка БД")
		return
	}
	if !authz.CanFeedback(actor, r.Method, f.OwnerID) {
		deny(w, actor)
		return
	}

	in, ok := decodeFeedback(w, r)
	if !ok {
		return
	}

	if _, err := db.DB.Exec(
		`UPDATE feedbacks SET title = $1, content = $2 WHERE id = $3`,
		in.Title, in.Content, id,
	); err != nil {
		jsonError(w, http.StatusInternalServerError, "Ошибка обновления")
		return
	}

	f.Title = in.Title
	f.Content = in.Content
	writeJSON(w, http.StatusOK, models.FeedbackToResponse(f))
}

func DeleteFeedback(w http.ResponseWriter, r *http.Request) {
	actor := mw.ActorFrom(r)

	id, ok := parseID(r)
	if !ok {
		jsonError(w, http.StatusBadRequest, "Некорректный ID")
		return
	}

	f, err := feedbackByID(id)
	if err == sql.ErrNoRows {
		jsonError(w, http.StatusNotFound, "Отзыв не найден")
		return
	} else if err != nil {
		jsonError(w, http.StatusInternalServerError, "Ошибка БД")
		return
	}
	if !authz.CanFeedback(actor, r.Method, f.OwnerID) {
		deny(w, actor)
		return
	}

	if _, err := db.DB.Exec(`DELETE FROM feedbacks WHERE id = $1`, id); err != nil {
		jsonError(w, http.StatusInternalServerError, "Ошибка удаления")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func feedbackByID(id int) (models.Feedback, error) {
	var f models.Feedback
	err := db.DB.QueryRow(`
		SELECT f.id, f.title, f.content, f.owner_id, u.username, f.created_at
		FROM feedbacks f
		JOIN users u ON u.id = f.owner_id
		WHERE f.id = $1`, id).
		Scan(&f.ID, &f.Title, &f.Content, &f.OwnerID, &f.Owner, &f.CreatedAt)
	return f, err
}

// Аутентифицированных считаем по id аккаунта, анонимов — по адресу
// (RemoteAddr после chi RealIP).
func throttleKey(actor authz.Actor, r *http.Request) string {
	if actor.Authenticated {
		return throttle.UserKey(feedbackScope, actor.ID)
	}
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		host = r.RemoteAddr
	}
	return throttle.AnonKey(feedbackScope, host)
}

func decodeFeedback(w http.ResponseWriter, r *http.Request) (models.FeedbackRequest, bool) {
	var in models.FeedbackRequest
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		jsonError(w, http.StatusBadRequest, "Неверный JSON: "+err.Error())
		return in, false
	}
	if in.Title == "" || in.Content == "" {
		jsonError(w, http.StatusBadRequest, "Поля 'title' и 'content' обязательны")
		return in, false
	}
	return in, true
}

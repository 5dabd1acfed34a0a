package handlers

import (
	"Bibliotheque/internal/authz"
	"Bibliotheque/internal/db"
	mw "Bibliotheque/internal/middleware"
	"Bibliotheque/internal/models"
	"database/sql"
	"encoding/json"
	"net/http"
	"time"
)

// Заметки приватны: список всегда отфильтрован до своих, чужая заметка
// по id выглядит как отсутствующая (404), а не как запрещённая.

func GetNotes(w http.ResponseWriter, r *http.Request) {
	actor := mw.ActorFrom(r)

	out := make([]models.NoteResponse, 0, defaultPageSize)
	if !actor.Authenticated {
		// аноним получает пустую коллекцию, а не отказ
		writePage(w, 0, out)
		return
	}

	var count int
	if err := db.DB.QueryRow(`SELECT COUNT(*) FROM notes WHERE owner_id = $1`, actor.ID).Scan(&count); err != nil {
		jsonError(w, http.StatusInternalServerError, "Ошибка БД")
		return
	}

	limit, offset := pageParams(r)
	rows, err := db.DB.Query(`
		SELECT n.id, n.title, n.content, n.owner_id, u.username, n.created_at, n.updated_at
		FROM notes n
		JOIN users u ON u.id = n.owner_id
		WHERE n.owner_id = $1
		ORDER BY n.updated_at DESC
		LIMIT $2 OFFSET $3`, actor.ID, limit, offset)
	if err != nil {
		jsonError(w, http.StatusInternalServerError, "Ошибка БД")
		return
	}
	defer rows.Close()

	for rows.Next() {
		var n models.Note
		if err := rows.Scan(&n.ID, &n.Title, &n.Content, &n.OwnerID, &n.Owner, &n.CreatedAt, &n.UpdatedAt); err != nil {
			jsonError(w, http.StatusInternalServerError, "Ошибка чтения строк")
			return
		}
		out = append(out, models.NoteToResponse(n))
	}
	if err := rows.Err(); err != nil {
		jsonError(w, http.StatusInternalServerError, "Ошибка БД")
		return
	}

	writePage(w, count, out)
}

func GetNoteByID(w http.ResponseWriter, r *http.Request) {
	actor := mw.ActorFrom(r)

	id, ok := parseID(r)
	if !ok {
		jsonError(w, http.StatusBadRequest, "Некорректный ID")
		return
	}

	n, err := noteByID(id)
	if err == sql.ErrNoRows {
		jsonError(w, http.StatusNotFound, "Заметка не найдена")
		return
	} else if err != nil {
		jsonError(w, http.StatusInternalServerError, "Ошибка БД")
		return
	}
	if !authz.CanNote(actor, r.Method, n.OwnerID) {
		// чужая заметка не раскрывается даже фактом существования
		jsonError(w, http.StatusNotFound, "Заметка не найдена")
		return
	}
	writeJSON(w, http.StatusOK, models.NoteToResponse(n))
}

func CreateNote(w http.ResponseWriter, r *http.Request) {
	actor := mw.ActorFrom(r)
	if !authz.CanCreateNote(actor) {
		deny(w, actor)
		return
	}

	in, ok := decodeNote(w, r)
	if !ok {
		return
	}

	// владельца проставляем сами; что бы клиент ни прислал — игнорируем
	now := time.Now()
	var id int
	if err := db.DB.QueryRow(
		`INSERT INTO notes (title, content, owner_id, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $4) RETURNING id`,
		in.Title, in.Content, actor.ID, now,
	).Scan(&id); err != nil {
		jsonError(w, http.StatusInternalServerError, "Ошибка вставки")
		return
	}

	writeJSON(w, http.StatusCreated, models.NoteToResponse(models.Note{
		ID: id, Title: in.Title, Content: in.Content,
		OwnerID: actor.ID, Owner: actor.Username,
		CreatedAt: now, UpdatedAt: now,
	}))
}

func UpdateNote(w http.ResponseWriter, r *http.Request) {
	actor := mw.ActorFrom(r)

	id, ok := parseID(r)
	if !ok {
		jsonError(w, http.StatusBadRequest, "Некорректный ID")
		return
	}

	n, err := noteByID(id)
	if err == sql.ErrNoRows {
		jsonError(w, http.StatusNotFound, "Заметка не найдена")
		return
	} else if err != nil {
		jsonError(w, http.StatusInternalServerError, "Ошибка БД")
		return
	}
	if !authz.CanNote(actor, r.Method, n.OwnerID) {
		deny(w, actor)
		return
	}

	in, ok := decodeNote(w, r)
	if !ok {
		return
	}

	now := time.Now()
	if _, err := db.DB.Exec(
		`UPDATE notes SET title = $1, content = $2, updated_at = $3 WHERE id = $4`,
		in.Title, in.Content, now, id,
	); err != nil {
		jsonError(w, http.StatusInternalServerError, "Ошибка обновления")
		return
	}

	n.Title = in.Title
	n.Content = in.Content
	n.UpdatedAt = now
	writeJSON(w, http.StatusOK, models.NoteToResponse(n))
}

func DeleteNote(w http.ResponseWriter, r *http.Request) {
	actor := mw.ActorFrom(r)

	id, ok := parseID(r)
	if !ok {
		jsonError(w, http.StatusBadRequest, "Некорректный ID")
		return
	}

	n, err := noteByID(id)
	if err == sql.ErrNoRows {
		jsonError(w, http.StatusNotFound, "Заметка не найдена")
		return
	} else if err != nil {
		jsonError(w, http.StatusInternalServerError, "Ошибка БД")
		return
	}
	if !authz.CanNote(actor, r.Method, n.OwnerID) {
		deny(w, actor)
		return
	}

	if _, err := db.DB.Exec(`DELETE FROM notes WHERE id = $1`, id); err != nil {
		jsonError(w, http.StatusInternalServerError, "Ошибка удаления")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func noteByID(id int) (models.Note, error) {
	var n models.Note
	err := db.DB.QueryRow(`
		SELECT n.id, n.title, n.content, n.owner_id, u.username, n.created_at, n.updated_at
		FROM notes n
		JOIN users u ON u.id = n.owner_id
		WHERE n.id = $1`, id).
		Scan(&n.ID, &n.Title, &n.Content, &n.OwnerID, &n.Owner, &n.CreatedAt, &n.UpdatedAt)
	return n, err
}

func decodeNote(w http.ResponseWriter, r *http.Request) (models.NoteRequest, bool) {
	var in models.NoteRequest
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

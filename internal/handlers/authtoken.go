package handlers

import (
	"Bibliotheque/internal/db"
	"database/sql"
	"encoding/json"
	"net/http"
	"strings"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

type tokenRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// HandleToken — POST /api/token: обмен логина и пароля на API-токен.
// Токен один на аккаунт; повторный логин возвращает тот же ключ.
func HandleToken(w http.ResponseWriter, r *http.Request) {
	var in tokenRequest
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		jsonError(w, http.StatusBadRequest, "Неверный JSON: "+err.Error())
		return
	}

	username := strings.TrimSpace(in.Username)
	if username == "" || in.Password == "" {
		jsonError(w, http.StatusBadRequest, "Укажите логин и пароль")
		return
	}

	var userID int
	var passwordHash string
	err := db.DB.QueryRow(`SELECT id, password_hash FROM users WHERE username = $1`, username).
		Scan(&userID, &passwordHash)
	if err == sql.ErrNoRows {
		jsonError(w, http.StatusBadRequest, "Неверный логин или пароль")
		return
	} else if err != nil {
		jsonError(w, http.StatusInternalServerError, "Ошибка БД")
		return
	}

	if bcrypt.CompareHashAndPassword([]byte(passwordHash), []byte(in.Password)) != nil {
		jsonError(w, http.StatusBadRequest, "Неверный логин или пароль")
		return
	}

	var key string
	err = db.DB.QueryRow(`SELECT key FROM tokens WHERE user_id = $1`, userID).Scan(&key)
	if err == sql.ErrNoRows {
		key = uuid.NewString()
		if _, err := db.DB.Exec(`INSERT INTO tokens (key, user_id) VALUES ($1, $2)`, key, userID); err != nil {
			jsonError(w, http.StatusInternalServerError, "Ошибка БД")
			return
		}
	} else if err != nil {
		jsonError(w, http.StatusInternalServerError, "Ошибка БД")
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"token": key})
}

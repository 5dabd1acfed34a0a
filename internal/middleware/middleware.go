package middleware

import (
	"Bibliotheque/internal/authz"
	"Bibliotheque/internal/db"
	"context"
	"database/sql"
	"net/http"
	"strings"
)

type ctxKey int

const actorKey ctxKey = 0

// Identity разбирает заголовок Authorization и кладёт актора в контекст
// запроса. Нет заголовка — аноним. Битый токен — сразу 401.
// Дальше хендлеры достают актора через ActorFrom и передают его
// в предикаты authz явно.
func Identity(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		key, ok := tokenKey(r.Header.Get("Authorization"))
		if !ok {
			next.ServeHTTP(w, r.WithContext(withActor(r.Context(), authz.Anonymous())))
			return
		}

		actor, err := resolveToken(key)
		if err == sql.ErrNoRows {
			w.Header().Set("Content-Type", "application/json; charset=utf-8")
			http.Error(w, `{"error":"Недействительный токен"}`, http.StatusUnauthorized)
			return
		} else if err != nil {
			http.Error(w, `{"error":"db error"}`, http.StatusInternalServerError)
			return
		}

		next.ServeHTTP(w, r.WithContext(withActor(r.Context(), actor)))
	})
}

// ActorFrom возвращает актора текущего запроса (аноним, если Identity
// не отработала — например в тестах отдельного хендлера).
func ActorFrom(r *http.Request) authz.Actor {
	if a, ok := r.Context().Value(actorKey).(authz.Actor); ok {
		return a
	}
	return authz.Anonymous()
}

func withActor(ctx context.Context, a authz.Actor) context.Context {
	return context.WithValue(ctx, actorKey, a)
}

// Принимаем схему Bearer (основная) и Token (наследие старых клиентов).
func tokenKey(header string) (string, bool) {
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 {
		return "", false
	}
	scheme := strings.ToLower(parts[0])
	if scheme != "bearer" && scheme != "token" {
		return "", false
	}
	key := strings.TrimSpace(parts[1])
	return key, key != ""
}

func resolveToken(key string) (authz.Actor, error) {
	var a authz.Actor
	err := db.DB.QueryRow(`
		SELECT u.id, u.username, u.is_staff
		FROM tokens t
		JOIN users u ON u.id = t.user_id
		WHERE t.key = $1`, key).
		Scan(&a.ID, &a.Username, &a.Staff)
	if err != nil {
		return authz.Anonymous(), err
	}
	a.Authenticated = true

	rows, err := db.DB.Query(`SELECT name FROM user_groups WHERE user_id = $1`, a.ID)
	if err != nil {
		return authz.Anonymous(), err
	}
	defer rows.Close()
	for rows.Next() {
		var g string
		if err := rows.Scan(&g); err != nil {
			return authz.Anonymous(), err
		}
		a.Groups = append(a.Groups, g)
	}
	return a, rows.Err()
}

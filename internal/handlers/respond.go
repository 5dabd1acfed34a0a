package handlers

import (
	"Bibliotheque/internal/authz"
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
)

const (
	defaultPageSize = 20
	maxPageSize     = 100
)

func jsonError(w http.ResponseWriter, code int, msg string) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(map[string]any{
		"error": msg,
	})
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

// deny — единая развязка отказа: анониму 401, остальным 403.
func deny(w http.ResponseWriter, actor authz.Actor) {
	if !actor.Authenticated {
		jsonError(w, http.StatusUnauthorized, "Требуется аутентификация")
		return
	}
	jsonError(w, http.StatusForbidden, "Доступ запрещён")
}

func parseID(r *http.Request) (int, bool) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	return id, err == nil && id > 0
}

// Пагинация списков: ?page=N&page_size=M, по умолчанию 20, максимум 100.
func pageParams(r *http.Request) (limit, offset int) {
	page := 1
	if v, err := strconv.Atoi(r.URL.Query().Get("page")); err == nil && v > 0 {
		page = v
	}
	size := defaultPageSize
	if v, err := strconv.Atoi(r.URL.Query().Get("page_size")); err == nil && v > 0 {
		size = v
		if size > maxPageSize {
			size = maxPageSize
		}
	}
	return size, (page - 1) * size
}

// Конверт списка в духе {"count": N, "results": [...]}.
func writePage(w http.ResponseWriter, count int, results any) {
	writeJSON(w, http.StatusOK, map[string]any{
		"count":   count,
		"results": results,
	})
}

package handlers

import (
	"Bibliotheque/internal/db"
	"Bibliotheque/internal/models"
	"database/sql"
	"encoding/json"
	"net/http"
	"time"
)

// Статьи и категории — полностью открытый ресурс, проверки доступа нет.

func GetCategories(w http.ResponseWriter, r *http.Request) {
	var count int
	if err := db.DB.QueryRow(`SELECT COUNT(*) FROM categories`).Scan(&count); err != nil {
		jsonError(w, http.StatusInternalServerError, "Ошибка БД")
		return
	}

	limit, offset := pageParams(r)
	rows, err := db.DB.Query(`SELECT id, name FROM categories ORDER BY name LIMIT $1 OFFSET $2`, limit, offset)
	if err != nil {
		jsonError(w, http.StatusInternalServerError, "Ошибка БД")
		return
	}
	defer rows.Close()

	out := make([]models.Category, 0, limit)
	for rows.Next() {
		var c models.Category
		if err := rows.Scan(&c.ID, &c.Name); err != nil {
			jsonError(w, http.StatusInternalServerError, "Ошибка чтения строк")
			return
		}
		out = append(out, c)
	}
	if err := rows.Err(); err != nil {
		jsonError(w, http.StatusInternalServerError, "Ошибка БД")
		return
	}

	writePage(w, count, out)
}

func GetCategoryByID(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(r)
	if !ok {
		jsonError(w, http.StatusBadRequest, "Некорректный ID")
		return
	}

	var c models.Category
	err := db.DB.QueryRow(`SELECT id, name FROM categories WHERE id = $1`, id).Scan(&c.ID, &c.Name)
	if err == sql.ErrNoRows {
		jsonError(w, http.StatusNotFound, "Категория не найдена")
		return
	} else if err != nil {
		jsonError(w, http.StatusInternalServerError, "Ошибка БД")
		return
	}
	writeJSON(w, http.StatusOK, c)
}

func GetArticles(w http.ResponseWriter, r *http.Request) {
	var count int
	if err := db.DB.QueryRow(`SELECT COUNT(*) FROM articles`).Scan(&count); err != nil {
		jsonError(w, http.StatusInternalServerError, "Ошибка БД")
		return
	}

	limit, offset := pageParams(r)
	rows, err := db.DB.Query(`
		SELECT a.id, a.title, a.content, a.created_at, c.id, c.name
		FROM articles a
		JOIN categories c ON c.id = a.category_id
		ORDER BY a.created_at DESC
		LIMIT $1 OFFSET $2`, limit, offset)
	if err != nil {
		jsonError(w, http.StatusInternalServerError, "Ошибка БД")
		return
	}
	defer rows.Close()

	out := make([]models.ArticleResponse, 0, limit)
	for rows.Next() {
		var a models.Article
		var c models.Category
		if err := rows.Scan(&a.ID, &a.Title, &a.Content, &a.CreatedAt, &c.ID, &c.Name); err != nil {
			jsonError(w, http.StatusInternalServerError, "Ошибка чтения строк")
			return
		}
		out = append(out, models.ArticleToResponse(a, c))
	}
	if err := rows.Err(); err != nil {
		jsonError(w, http.StatusInternalServerError, "Ошибка БД")
		return
	}

	writePage(w, count, out)
}

func GetArticleByID(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(r)
	if !ok {
		jsonError(w, http.StatusBadRequest, "Некорректный ID")
		return
	}

	a, c, err := articleByID(id)
	if err == sql.ErrNoRows {
		jsonError(w, http.StatusNotFound, "Статья не найдена")
		return
	} else if err != nil {
		jsonError(w, http.StatusInternalServerError, "Ошибка БД")
		return
	}
	writeJSON(w, http.StatusOK, models.ArticleToResponse(a, c))
}

func CreateArticle(w http.ResponseWriter, r *http.Request) {
	in, ok := decodeArticle(w, r)
	if !ok {
		return
	}

	// created_at проставляем здесь и больше никогда не трогаем
	now := time.Now()
	var id int
	if err := db.DB.QueryRow(
		`INSERT INTO articles (title, content, created_at, category_id) VALUES ($1, $2, $3, $4) RETURNING id`,
		in.Title, in.Content, now, in.Category,
	).Scan(&id); err != nil {
		jsonError(w, http.StatusInternalServerError, "Ошибка вставки")
		return
	}

	a, c, err := articleByID(id)
	if err != nil {
		jsonError(w, http.StatusInternalServerError, "Ошибка БД")
		return
	}
	writeJSON(w, http.StatusCreated, models.ArticleToResponse(a, c))
}

func UpdateArticle(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(r)
	if !ok {
		jsonError(w, http.StatusBadRequest, "Некорректный ID")
		return
	}
	in, ok := decodeArticle(w, r)
	if !ok {
		return
	}

	// created_at не входит в SET — поле неизменяемое
	res, err := db.DB.Exec(
		`UPDATE articles SET title = $1, content = $2, category_id = $3 WHERE id = $4`,
		in.Title, in.Content, in.Category, id,
	)
	if err != nil {
		jsonError(w, http.StatusInternalServerError, "Ошибка обновления")
		return
	}
	if n, _ := res.RowsAffected(); n == 0 {
		jsonError(w, http.StatusNotFound, "Статья не найдена")
		return
	}

	a, c, err := articleByID(id)
	if err != nil {
		jsonError(w, http.StatusInternalServerError, "Ошибка БД")
		return
	}
	writeJSON(w, http.StatusOK, models.ArticleToResponse(a, c))
}

// DeleteArticle удаляет статью; комментарии уходят каскадом на уровне БД.
func DeleteArticle(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(r)
	if !ok {
		jsonError(w, http.StatusBadRequest, "Некорректный ID")
		return
	}

	res, err := db.DB.Exec(`DELETE FROM articles WHERE id = $1`, id)
	if err != nil {
		jsonError(w, http.StatusInternalServerError, "Ошибка удаления")
		return
	}
	if n, _ := res.RowsAffected(); n == 0 {
		jsonError(w, http.StatusNotFound, "Статья не найдена")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func articleByID(id int) (models.Article, models.Category, error) {
	var a models.Article
	var c models.Category
	err := db.DB.QueryRow(`
		SELECT a.id, a.title, a.content, a.created_at, c.id, c.name
		FROM articles a
		JOIN categories c ON c.id = a.category_id
		WHERE a.id = $1`, id).
		Scan(&a.ID, &a.Title, &a.Content, &a.CreatedAt, &c.ID, &c.Name)
	return a, c, err
}

func decodeArticle(w http.ResponseWriter, r *http.Request) (models.ArticleRequest, bool) {
	var in models.ArticleRequest
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		jsonError(w, http.StatusBadRequest, "Неверный JSON: "+err.Error())
		return in, false
	}
	if in.Title == "" || in.Content == "" {
		jsonError(w, http.StatusBadRequest, "Поля 'title' и 'content' обязательны")
		return in, false
	}

	var exists bool
	if err := db.DB.QueryRow(`SELECT EXISTS(SELECT 1 FROM categories WHERE id = $1)`, in.Category).Scan(&exists); err != nil {
		jsonError(w, http.StatusInternalServerError, "Ошибка БД")
		return in, false
	}
	if !exists {
		jsonError(w, http.StatusBadRequest, "Категория не найдена")
		return in, false
	}
	return in, true
}

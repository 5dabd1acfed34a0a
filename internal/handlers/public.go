package handlers

import (
	"Bibliotheque/internal/db"
	"Bibliotheque/internal/models"
	"Bibliotheque/internal/sessions"
	"database/sql"
	"fmt"
	"html/template"
	"net/http"
	"strconv"
	"strings"
	"time"
)

/* ========= ВСПОМОГАТЕЛЬНОЕ ========= */

// Единый рендер: сам прокидывает флеш-сообщения и год во все шаблоны
func render(w http.ResponseWriter, r *http.Request, files []string, data map[string]any) {
	if data == nil {
		data = map[string]any{}
	}
	data["Flashes"] = sessions.Flashes(w, r)
	data["Year"] = time.Now().Year()

	tmpl, err := template.ParseFiles(files...)
	if err != nil {
		http.Error(w, "Ошибка шаблона: "+err.Error(), http.StatusInternalServerError)
		return
	}
	_ = tmpl.ExecuteTemplate(w, "base", data)
}

func firstN(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n]) + "…"
}

/* ========= ПУБЛИЧНЫЕ СТРАНИЦЫ ========= */

// ShowHomePage — главная со статистикой библиотеки.
func ShowHomePage(w http.ResponseWriter, r *http.Request) {
	var authors, books, categories, articles, comments int
	err := db.DB.QueryRow(`
		SELECT
			(SELECT COUNT(*) FROM authors),
			(SELECT COUNT(*) FROM books),
			(SELECT COUNT(*) FROM categories),
			(SELECT COUNT(*) FROM articles),
			(SELECT COUNT(*) FROM comments)`).
		Scan(&authors, &books, &categories, &articles, &comments)
	if err != nil {
		http.Error(w, "Ошибка БД", http.StatusInternalServerError)
		return
	}

	render(w, r,
		[]string{"web/templates/base.html", "web/templates/index.html"},
		map[string]any{
			"Title":          "Главная",
			"TotalAuthors":   authors,
			"TotalBooks":     books,
			"TotalCategories": categories,
			"TotalArticles":  articles,
			"TotalComments":  comments,
		},
	)
}

// ShowNowPage — текущие дата и время, без шаблона.
func ShowNowPage(w http.ResponseWriter, r *http.Request) {
	now := time.Now()
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	fmt.Fprintf(w, "<html><body><h1>Сейчас %s</h1></body></html>",
		now.Format("02.01.2006 15:04:05"))
}

type articleItem struct {
	ID        int
	Title     string
	Excerpt   string
	CreatedAt time.Time
	Category  string
}

const articlesPerPage = 5

// ShowArticlesPage — список статей, 5 на страницу, новые сверху.
func ShowArticlesPage(w http.ResponseWriter, r *http.Request) {
	page := 1
	if v, err := strconv.Atoi(r.URL.Query().Get("page")); err == nil && v > 0 {
		page = v
	}

	var count int
	if err := db.DB.QueryRow(`SELECT COUNT(*) FROM articles`).Scan(&count); err != nil {
		http.Error(w, "Ошибка БД", http.StatusInternalServerError)
		return
	}
	totalPages := (count + articlesPerPage - 1) / articlesPerPage
	if totalPages == 0 {
		totalPages = 1
	}
	if page > totalPages {
		page = totalPages
	}

	rows, err := db.DB.Query(`
		SELECT a.id, a.title, a.content, a.created_at, c.name
		FROM articles a
		JOIN categories c ON c.id = a.category_id
		ORDER BY a.created_at DESC
		LIMIT $1 OFFSET $2`, articlesPerPage, (page-1)*articlesPerPage)
	if err != nil {
		http.Error(w, "Ошибка БД", http.StatusInternalServerError)
		return
	}
	defer rows.Close()

	var list []articleItem
	for rows.Next() {
		var a articleItem
		var content string
		if err := rows.Scan(&a.ID, &a.Title, &content, &a.CreatedAt, &a.Category); err != nil {
			http.Error(w, "Ошибка чтения БД", http.StatusInternalServerError)
			return
		}
		a.Excerpt = firstN(content, 200)
		list = append(list, a)
	}

	categories, err := allCategories()
	if err != nil {
		http.Error(w, "Ошибка БД", http.StatusInternalServerError)
		return
	}

	render(w, r,
		[]string{"web/templates/base.html", "web/templates/articles.html"},
		map[string]any{
			"Title":      "Статьи",
			"Articles":   list,
			"Categories": categories,
			"Page":       page,
			"TotalPages": totalPages,
			"HasPrev":    page > 1,
			"HasNext":    page < totalPages,
			"PrevPage":   page - 1,
			"NextPage":   page + 1,
		},
	)
}

type commentItem struct {
	Name      string
	Content   string
	CreatedAt time.Time
}

// ShowArticlePage — статья с активными комментариями и формой отправки.
func ShowArticlePage(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(r)
	if !ok {
		http.NotFound(w, r)
		return
	}

	a, c, err := articleByID(id)
	if err == sql.ErrNoRows {
		http.NotFound(w, r)
		return
	} else if err != nil {
		http.Error(w, "Ошибка БД", http.StatusInternalServerError)
		return
	}

	// на странице показываем только прошедшие модерацию, старые сверху
	rows, err := db.DB.Query(`
		SELECT name, content, created_at
		FROM comments
		WHERE article_id = $1 AND active
		ORDER BY created_at`, id)
	if err != nil {
		http.Error(w, "Ошибка БД", http.StatusInternalServerError)
		return
	}
	defer rows.Close()

	var comments []commentItem
	for rows.Next() {
		var cm commentItem
		if err := rows.Scan(&cm.Name, &cm.Content, &cm.CreatedAt); err != nil {
			http.Error(w, "Ошибка чтения БД", http.StatusInternalServerError)
			return
		}
		comments = append(comments, cm)
	}

	render(w, r,
		[]string{"web/templates/base.html", "web/templates/article.html"},
		map[string]any{
			"Title":    a.Title,
			"Article":  models.ArticleToResponse(a, c),
			"Comments": comments,
		},
	)
}

// SubmitComment — приём формы комментария со страницы статьи.
func SubmitComment(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(r)
	if !ok {
		http.NotFound(w, r)
		return
	}

	var exists bool
	if err := db.DB.QueryRow(`SELECT EXISTS(SELECT 1 FROM articles WHERE id = $1)`, id).Scan(&exists); err != nil || !exists {
		http.NotFound(w, r)
		return
	}

	if err := r.ParseForm(); err != nil {
		http.Error(w, "Ошибка формы", http.StatusBadRequest)
		return
	}
	name := strings.TrimSpace(r.FormValue("name"))
	email := strings.TrimSpace(r.FormValue("email"))
	content := strings.TrimSpace(r.FormValue("content"))

	back := fmt.Sprintf("/articles/%d", id)
	if name == "" || content == "" || !emailRe.MatchString(email) {
		_ = sessions.AddFlash(w, r, "Ошибка в форме комментария.")
		http.Redirect(w, r, back, http.StatusFound)
		return
	}

	if _, err := db.DB.Exec(
		`INSERT INTO comments (article_id, name, email, content, created_at, active)
		 VALUES ($1, $2, $3, $4, $5, TRUE)`,
		id, name, email, content, time.Now(),
	); err != nil {
		http.Error(w, "Ошибка БД", http.StatusInternalServerError)
		return
	}

	_ = sessions.AddFlash(w, r, "Ваш комментарий успешно добавлен!")
	http.Redirect(w, r, back, http.StatusFound)
}

// ShowArticleForm — форма создания статьи.
func ShowArticleForm(w http.ResponseWriter, r *http.Request) {
	categories, err := allCategories()
	if err != nil {
		http.Error(w, "Ошибка БД", http.StatusInternalServerError)
		return
	}

	render(w, r,
		[]string{"web/templates/base.html", "web/templates/article_form.html"},
		map[string]any{
			"Title":      "Новая статья",
			"Categories": categories,
		},
	)
}

// SubmitArticleForm — приём формы создания статьи.
func SubmitArticleForm(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "Ошибка формы", http.StatusBadRequest)
		return
	}
	title := strings.TrimSpace(r.FormValue("title"))
	content := strings.TrimSpace(r.FormValue("content"))
	categoryID, err := strconv.Atoi(r.FormValue("category"))

	if title == "" || content == "" || err != nil {
		_ = sessions.AddFlash(w, r, "Заполните все поля формы.")
		http.Redirect(w, r, "/articles/new", http.StatusFound)
		return
	}

	var exists bool
	if err := db.DB.QueryRow(`SELECT EXISTS(SELECT 1 FROM categories WHERE id = $1)`, categoryID).Scan(&exists); err != nil || !exists {
		_ = sessions.AddFlash(w, r, "Выберите существующую категорию.")
		http.Redirect(w, r, "/articles/new", http.StatusFound)
		return
	}

	if _, err := db.DB.Exec(
		`INSERT INTO articles (title, content, created_at, category_id) VALUES ($1, $2, $3, $4)`,
		title, content, time.Now(), categoryID,
	); err != nil {
		http.Error(w, "Ошибка БД", http.StatusInternalServerError)
		return
	}

	_ = sessions.AddFlash(w, r, "Статья успешно создана!")
	http.Redirect(w, r, "/articles", http.StatusFound)
}

func allCategories() ([]models.Category, error) {
	rows, err := db.DB.Query(`SELECT id, name FROM categories ORDER BY name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []models.Category
	for rows.Next() {
		var c models.Category
		if err := rows.Scan(&c.ID, &c.Name); err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

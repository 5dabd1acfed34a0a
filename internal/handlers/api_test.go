package handlers

// Интеграционные тесты поверх настоящего PostgreSQL.
// Запускаются только при заданном TEST_DATABASE_URL, иначе скипаются:
//
//	TEST_DATABASE_URL="host=127.0.0.1 user=postgres dbname=bibliotheque_test sslmode=disable" go test ./...

import (
	"Bibliotheque/internal/db"
	mw "Bibliotheque/internal/middleware"
	"Bibliotheque/internal/throttle"
	"bytes"
	"database/sql"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"sync"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

var (
	testOnce  sync.Once
	testReady bool

	user1ID, user2ID, modID, staffID int
	tokUser1, tokUser2, tokMod, tokStaff string
)

const testPassword = "password123"

func requireDB(t *testing.T) http.Handler {
	t.Helper()
	dsn := os.Getenv("TEST_DATABASE_URL")
	if dsn == "" {
		t.Skip("TEST_DATABASE_URL не задан — пропускаем интеграционные тесты")
	}
	testOnce.Do(func() { setupTestDB(dsn) })
	if !testReady {
		t.Fatal("не удалось подготовить тестовую базу")
	}
	cleanTables(t)
	return testRouter()
}

func setupTestDB(dsn string) {
	conn, err := sql.Open("postgres", dsn)
	if err != nil {
		return
	}
	if err := conn.Ping(); err != nil {
		return
	}
	db.DB = conn
	db.EnsureSchema()

	// users чистим каскадом: уходят и токены, и заметки, и отзывы
	if _, err := db.DB.Exec(`TRUNCATE users RESTART IDENTITY CASCADE`); err != nil {
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(testPassword), bcrypt.MinCost)
	if err != nil {
		return
	}

	newUser := func(username string, staff bool) int {
		var id int
		err := db.DB.QueryRow(
			`INSERT INTO users (username, password_hash, is_staff) VALUES ($1, $2, $3) RETURNING id`,
			username, string(hash), staff,
		).Scan(&id)
		if err != nil {
			panic(err)
		}
		return id
	}
	newToken := func(userID int) string {
		key := uuid.NewString()
		if _, err := db.DB.Exec(`INSERT INTO tokens (key, user_id) VALUES ($1, $2)`, key, userID); err != nil {
			panic(err)
		}
		return key
	}

	user1ID = newUser("user1", false)
	user2ID = newUser("user2", false)
	modID = newUser("moderator", false)
	staffID = newUser("staffadmin", true)

	if _, err := db.DB.Exec(`INSERT INTO user_groups (user_id, name) VALUES ($1, 'moderator')`, modID); err != nil {
		panic(err)
	}

	tokUser1 = newToken(user1ID)
	tokUser2 = newToken(user2ID)
	tokMod = newToken(modID)
	tokStaff = newToken(staffID)

	testReady = true
}

func cleanTables(t *testing.T) {
	t.Helper()
	_, err := db.DB.Exec(`TRUNCATE authors, categories, notes, feedbacks RESTART IDENTITY CASCADE`)
	require.NoError(t, err)
}

// Повторяет API-часть роутера из cmd/main.go.
func testRouter() http.Handler {
	r := chi.NewRouter()
	r.Use(mw.Identity)
	r.Route("/api", func(api chi.Router) {
		api.Post("/token", HandleToken)

		api.Get("/authors", GetAuthors)
		api.Post("/authors", CreateAuthor)
		api.Get("/authors/{id}", GetAuthorByID)
		api.Put("/authors/{id}", UpdateAuthor)
		api.Delete("/authors/{id}", DeleteAuthor)
		api.Get("/authors/{id}/titles", GetAuthorTitles)

		api.Get("/books", GetBooks)
		api.Post("/books", CreateBook)
		api.Get("/books/{id}", GetBookByID)
		api.Put("/books/{id}", UpdateBook)
		api.Delete("/books/{id}", DeleteBook)

		api.Get("/categories", GetCategories)
		api.Get("/categories/{id}", GetCategoryByID)

		api.Get("/articles", GetArticles)
		api.Post("/articles", CreateArticle)
		api.Get("/articles/{id}", GetArticleByID)
		api.Put("/articles/{id}", UpdateArticle)
		api.Delete("/articles/{id}", DeleteArticle)

		api.Get("/comments", GetComments)
		api.Post("/comments", CreateComment)
		api.Get("/comments/{id}", GetCommentByID)
		api.Put("/comments/{id}", UpdateComment)
		api.Delete("/comments/{id}", DeleteComment)

		api.Get("/notes", GetNotes)
		api.Post("/notes", CreateNote)
		api.Get("/notes/{id}", GetNoteByID)
		api.Put("/notes/{id}", UpdateNote)
		api.Delete("/notes/{id}", DeleteNote)

		api.Get("/feedbacks", GetFeedbacks)
		api.Post("/feedbacks", CreateFeedback)
		api.Get("/feedbacks/{id}", GetFeedbackByID)
		api.Put("/feedbacks/{id}", UpdateFeedback)
		api.Delete("/feedbacks/{id}", DeleteFeedback)
	})
	return r
}

func doReq(t *testing.T, h http.Handler, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var rd io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		require.NoError(t, err)
		rd = bytes.NewReader(b)
	}
	req := httptest.NewRequest(method, path, rd)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	return w
}

type pageEnvelope struct {
	Count   int               `json:"count"`
	Results []json.RawMessage `json:"results"`
}

func decodePage(t *testing.T, w *httptest.ResponseRecorder) pageEnvelope {
	t.Helper()
	var p pageEnvelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &p))
	return p
}

/* ========= фикстуры прямыми INSERT ========= */

func insertAuthor(t *testing.T, name, birth string) int {
	t.Helper()
	var id int
	require.NoError(t, db.DB.QueryRow(
		`INSERT INTO authors (name, birth_date) VALUES ($1, $2) RETURNING id`, name, birth,
	).Scan(&id))
	return id
}

func insertBook(t *testing.T, title, release string, authorID int) int {
	t.Helper()
	var id int
	require.NoError(t, db.DB.QueryRow(
		`INSERT INTO books (title, release_date, author_id) VALUES ($1, $2, $3) RETURNING id`,
		title, release, authorID,
	).Scan(&id))
	return id
}

func insertCategory(t *testing.T, name string) int {
	t.Helper()
	var id int
	require.NoError(t, db.DB.QueryRow(
		`INSERT INTO categories (name) VALUES ($1) RETURNING id`, name,
	).Scan(&id))
	return id
}

func insertArticle(t *testing.T, title string, categoryID int) int {
	t.Helper()
	var id int
	require.NoError(t, db.DB.QueryRow(
		`INSERT INTO articles (title, content, created_at, category_id) VALUES ($1, 'текст', $2, $3) RETURNING id`,
		title, time.Now(), categoryID,
	).Scan(&id))
	return id
}

func insertComment(t *testing.T, articleID int, active bool) int {
	t.Helper()
	var id int
	require.NoError(t, db.DB.QueryRow(
		`INSERT INTO comments (article_id, name, email, content, created_at, active)
		 VALUES ($1, 'Гость', 'guest@test.com', 'комментарий', $2, $3) RETURNING id`,
		articleID, time.Now(), active,
	).Scan(&id))
	return id
}

func insertNote(t *testing.T, title string, ownerID int) int {
	t.Helper()
	var id int
	require.NoError(t, db.DB.QueryRow(
		`INSERT INTO notes (title, content, owner_id, created_at, updated_at)
		 VALUES ($1, 'текст', $2, $3, $3) RETURNING id`,
		title, ownerID, time.Now(),
	).Scan(&id))
	return id
}

func insertFeedback(t *testing.T, title string, ownerID int) int {
	t.Helper()
	var id int
	require.NoError(t, db.DB.QueryRow(
		`INSERT INTO feedbacks (title, content, owner_id, created_at) VALUES ($1, 'текст', $2, $3) RETURNING id`,
		title, ownerID, time.Now(),
	).Scan(&id))
	return id
}

/* ========= токены ========= */

func TestTokenEndpoint(t *testing.T) {
	h := requireDB(t)

	// правильный пароль -> уже выданный ключ
	w := doReq(t, h, http.MethodPost, "/api/token", "", map[string]string{
		"username": "user1", "password": testPassword,
	})
	require.Equal(t, http.StatusOK, w.Code)
	var resp map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, tokUser1, resp["token"])

	// неправильный пароль -> 400
	w = doReq(t, h, http.MethodPost, "/api/token", "", map[string]string{
		"username": "user1", "password": "wrong",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestInvalidTokenRejected(t *testing.T) {
	h := requireDB(t)
	w := doReq(t, h, http.MethodGet, "/api/books", "no-such-token", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

/* ========= матрица прав ========= */

func TestAuthorsRequireStaff(t *testing.T) {
	h := requireDB(t)
	insertAuthor(t, "Лев Толстой", "1828-09-09")

	// даже чтение закрыто: анониму 401, обычному пользователю 403
	assert.Equal(t, http.StatusUnauthorized, doReq(t, h, http.MethodGet, "/api/authors", "", nil).Code)
	assert.Equal(t, http.StatusForbidden, doReq(t, h, http.MethodGet, "/api/authors", tokUser1, nil).Code)
	assert.Equal(t, http.StatusForbidden, doReq(t, h, http.MethodGet, "/api/authors", tokMod, nil).Code)

	w := doReq(t, h, http.MethodGet, "/api/authors", tokStaff, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 1, decodePage(t, w).Count)
}

func TestBooksReadOnlyForAnonymous(t *testing.T) {
	h := requireDB(t)
	authorID := insertAuthor(t, "Автор", "1950-01-01")

	assert.Equal(t, http.StatusOK, doReq(t, h, http.MethodGet, "/api/books", "", nil).Code)

	body := map[string]any{"title": "Книга", "release_date": "2020-05-01", "author": authorID}
	assert.Equal(t, http.StatusUnauthorized, doReq(t, h, http.MethodPost, "/api/books", "", body).Code)
	assert.Equal(t, http.StatusCreated, doReq(t, h, http.MethodPost, "/api/books", tokUser1, body).Code)
}

func TestArticlesPublicAccess(t *testing.T) {
	h := requireDB(t)
	catID := insertCategory(t, "Проза")

	assert.Equal(t, http.StatusOK, doReq(t, h, http.MethodGet, "/api/articles", "", nil).Code)

	w := doReq(t, h, http.MethodPost, "/api/articles", "", map[string]any{
		"title": "Аноним пишет", "content": "текст", "category": catID,
	})
	require.Equal(t, http.StatusCreated, w.Code)

	// категория вложена объектом
	var resp struct {
		Category struct {
			Name string `json:"name"`
		} `json:"category"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "Проза", resp.Category.Name)
}

/* ========= фильтры и подресурс ========= */

func TestBookSearchFilter(t *testing.T) {
	h := requireDB(t)
	authorID := insertAuthor(t, "Author", "1950-01-01")
	insertBook(t, "Go in Action", "2015-11-01", authorID)
	insertBook(t, "The GO Programming Language", "2015-10-26", authorID)
	insertBook(t, "Rust 101", "2021-01-01", authorID)

	w := doReq(t, h, http.MethodGet, "/api/books?search=go", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 2, decodePage(t, w).Count)
}

func TestAuthorYearFilter(t *testing.T) {
	h := requireDB(t)
	insertAuthor(t, "Старший", "1985-03-03")
	insertAuthor(t, "Младший", "1995-07-07")

	w := doReq(t, h, http.MethodGet, "/api/authors?year=1990", tokStaff, nil)
	require.Equal(t, http.StatusOK, w.Code)
	p := decodePage(t, w)
	require.Equal(t, 1, p.Count)

	var a struct {
		Name string `json:"name"`
	}
	require.NoError(t, json.Unmarshal(p.Results[0], &a))
	assert.Equal(t, "Младший", a.Name)
}

func TestAuthorTitles(t *testing.T) {
	h := requireDB(t)
	authorID := insertAuthor(t, "Автор", "1950-01-01")
	insertBook(t, "Вторая книга", "2001-01-01", authorID)
	insertBook(t, "Первая книга", "2000-01-01", authorID)

	w := doReq(t, h, http.MethodGet, fmt.Sprintf("/api/authors/%d/titles", authorID), tokStaff, nil)
	require.Equal(t, http.StatusOK, w.Code)

	var resp map[string][]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, []string{"Вторая книга", "Первая книга"}, resp["titles"])
}

/* ========= отзывы: лимит и права ========= */

func TestAnonymousFeedbackCreateIs401(t *testing.T) {
	h := requireDB(t)
	w := doReq(t, h, http.MethodPost, "/api/feedbacks", "", map[string]string{
		"title": "Аноним", "content": "текст",
	})
	// именно 401, а не 429 и не 201
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	var count int
	require.NoError(t, db.DB.QueryRow(`SELECT COUNT(*) FROM feedbacks`).Scan(&count))
	assert.Equal(t, 0, count)
}

func TestFeedbackThrottle(t *testing.T) {
	h := requireDB(t)
	FeedbackThrottle.Reset(throttle.UserKey(feedbackScope, user1ID))

	for i := 0; i < 20; i++ {
		w := doReq(t, h, http.MethodPost, "/api/feedbacks", tokUser1, map[string]string{
			"title": fmt.Sprintf("Отзыв %d", i), "content": "текст",
		})
		require.Equal(t, http.StatusCreated, w.Code, "отзыв %d должен создаться", i+1)
	}

	// 21-й упирается в лимит и не оставляет следов в базе
	w := doReq(t, h, http.MethodPost, "/api/feedbacks", tokUser1, map[string]string{
		"title": "Лишний", "content": "текст",
	})
	require.Equal(t, http.StatusTooManyRequests, w.Code)

	var count int
	require.NoError(t, db.DB.QueryRow(`SELECT COUNT(*) FROM feedbacks WHERE owner_id = $1`, user1ID).Scan(&count))
	assert.Equal(t, 20, count)

	// лимит персональный: второй пользователь создаёт спокойно
	FeedbackThrottle.Reset(throttle.UserKey(feedbackScope, user2ID))
	w = doReq(t, h, http.MethodPost, "/api/feedbacks", tokUser2, map[string]string{
		"title": "Другой пользователь", "content": "текст",
	})
	assert.Equal(t, http.StatusCreated, w.Code)
}

func TestFeedbackOwnerRendering(t *testing.T) {
	h := requireDB(t)
	fbID := insertFeedback(t, "Отзыв", user1ID)

	w := doReq(t, h, http.MethodGet, fmt.Sprintf("/api/feedbacks/%d", fbID), "", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var resp map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	// владелец — отображаемая строка, а не внутренний id
	assert.Equal(t, "user1", resp["owner"])
}

func TestNonOwnerCannotUpdateFeedback(t *testing.T) {
	h := requireDB(t)
	fbID := insertFeedback(t, "Исходный", user1ID)

	w := doReq(t, h, http.MethodPut, fmt.Sprintf("/api/feedbacks/%d", fbID), tokUser2, map[string]string{
		"title": "Взлом", "content": "текст",
	})
	require.Equal(t, http.StatusForbidden, w.Code)

	var title string
	require.NoError(t, db.DB.QueryRow(`SELECT title FROM feedbacks WHERE id = $1`, fbID).Scan(&title))
	assert.Equal(t, "Исходный", title)
}

func TestFeedbackDeleteRights(t *testing.T) {
	h := requireDB(t)

	// чужой пользователь — нет; staff без группы — нет
	fbID := insertFeedback(t, "Отзыв", user1ID)
	assert.Equal(t, http.StatusForbidden, doReq(t, h, http.MethodDelete, fmt.Sprintf("/api/feedbacks/%d", fbID), tokUser2, nil).Code)
	assert.Equal(t, http.StatusForbidden, doReq(t, h, http.MethodDelete, fmt.Sprintf("/api/feedbacks/%d", fbID), tokStaff, nil).Code)

	// владелец — да
	assert.Equal(t, http.StatusNoContent, doReq(t, h, http.MethodDelete, fmt.Sprintf("/api/feedbacks/%d", fbID), tokUser1, nil).Code)

	// модератор удаляет чужой
	fbID = insertFeedback(t, "Ещё отзыв", user1ID)
	assert.Equal(t, http.StatusNoContent, doReq(t, h, http.MethodDelete, fmt.Sprintf("/api/feedbacks/%d", fbID), tokMod, nil).Code)

	var count int
	require.NoError(t, db.DB.QueryRow(`SELECT COUNT(*) FROM feedbacks`).Scan(&count))
	assert.Equal(t, 0, count)
}

/* ========= заметки ========= */

func TestNoteIsolation(t *testing.T) {
	h := requireDB(t)
	insertNote(t, "Моя заметка", user1ID)
	otherID := insertNote(t, "Чужая заметка", user2ID)

	// в списке только свои
	w := doReq(t, h, http.MethodGet, "/api/notes", tokUser1, nil)
	require.Equal(t, http.StatusOK, w.Code)
	p := decodePage(t, w)
	require.Equal(t, 1, p.Count)
	var n struct {
		Title string `json:"title"`
		Owner string `json:"owner"`
	}
	require.NoError(t, json.Unmarshal(p.Results[0], &n))
	assert.Equal(t, "Моя заметка", n.Title)
	assert.Equal(t, "user1", n.Owner)

	// аноним получает пустую коллекцию, а не отказ
	w = doReq(t, h, http.MethodGet, "/api/notes", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 0, decodePage(t, w).Count)

	// чужая заметка по id выглядит отсутствующей
	assert.Equal(t, http.StatusNotFound, doReq(t, h, http.MethodGet, fmt.Sprintf("/api/notes/%d", otherID), tokUser1, nil).Code)
}

func TestNonOwnerCannotUpdateNote(t *testing.T) {
	h := requireDB(t)
	noteID := insertNote(t, "Исходная", user1ID)

	w := doReq(t, h, http.MethodPut, fmt.Sprintf("/api/notes/%d", noteID), tokUser2, map[string]string{
		"title": "Взлом", "content": "текст",
	})
	require.Equal(t, http.StatusForbidden, w.Code)

	var title string
	require.NoError(t, db.DB.QueryRow(`SELECT title FROM notes WHERE id = $1`, noteID).Scan(&title))
	assert.Equal(t, "Исходная", title)
}

func TestNoteOwnerStampedServerSide(t *testing.T) {
	h := requireDB(t)

	// клиентский owner игнорируется: в теле его просто нет в контракте
	w := doReq(t, h, http.MethodPost, "/api/notes", tokUser1, map[string]any{
		"title": "Заметка", "content": "текст", "owner": "user2",
	})
	require.Equal(t, http.StatusCreated, w.Code)

	var ownerID int
	require.NoError(t, db.DB.QueryRow(`SELECT owner_id FROM notes ORDER BY id DESC LIMIT 1`).Scan(&ownerID))
	assert.Equal(t, user1ID, ownerID)
}

/* ========= комментарии ========= */

func TestModeratorDeletesComments(t *testing.T) {
	h := requireDB(t)
	catID := insertCategory(t, "Категория")
	artID := insertArticle(t, "Статья", catID)
	cmtID := insertComment(t, artID, true)

	path := fmt.Sprintf("/api/comments/%d", cmtID)
	assert.Equal(t, http.StatusUnauthorized, doReq(t, h, http.MethodDelete, path, "", nil).Code)
	assert.Equal(t, http.StatusForbidden, doReq(t, h, http.MethodDelete, path, tokUser1, nil).Code)
	assert.Equal(t, http.StatusForbidden, doReq(t, h, http.MethodDelete, path, tokStaff, nil).Code)
	assert.Equal(t, http.StatusNoContent, doReq(t, h, http.MethodDelete, path, tokMod, nil).Code)
}

func TestInactiveCommentsHidden(t *testing.T) {
	h := requireDB(t)
	catID := insertCategory(t, "Категория")
	artID := insertArticle(t, "Статья", catID)
	insertComment(t, artID, true)
	hiddenID := insertComment(t, artID, false)

	// обычный актор видит только активные
	w := doReq(t, h, http.MethodGet, "/api/comments", tokUser1, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 1, decodePage(t, w).Count)

	// модератору видно всё
	w = doReq(t, h, http.MethodGet, "/api/comments", tokMod, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 2, decodePage(t, w).Count)

	// скрытый комментарий по id неотличим от отсутствующего
	path := fmt.Sprintf("/api/comments/%d", hiddenID)
	assert.Equal(t, http.StatusNotFound, doReq(t, h, http.MethodGet, path, "", nil).Code)
	assert.Equal(t, http.StatusOK, doReq(t, h, http.MethodGet, path, tokMod, nil).Code)
}

/* ========= каскады ========= */

func TestAuthorDeleteCascadesToBooks(t *testing.T) {
	h := requireDB(t)
	authorID := insertAuthor(t, "Автор", "1950-01-01")
	insertBook(t, "Книга 1", "2000-01-01", authorID)
	insertBook(t, "Книга 2", "2001-01-01", authorID)

	w := doReq(t, h, http.MethodDelete, fmt.Sprintf("/api/authors/%d", authorID), tokStaff, nil)
	require.Equal(t, http.StatusNoContent, w.Code)

	var count int
	require.NoError(t, db.DB.QueryRow(`SELECT COUNT(*) FROM books WHERE author_id = $1`, authorID).Scan(&count))
	assert.Equal(t, 0, count)
}

func TestArticleDeleteCascadesToComments(t *testing.T) {
	h := requireDB(t)
	catID := insertCategory(t, "Категория")
	artID := insertArticle(t, "Статья", catID)
	insertComment(t, artID, true)
	insertComment(t, artID, false)

	w := doReq(t, h, http.MethodDelete, fmt.Sprintf("/api/articles/%d", artID), "", nil)
	require.Equal(t, http.StatusNoContent, w.Code)

	var count int
	require.NoError(t, db.DB.QueryRow(`SELECT COUNT(*) FROM comments WHERE article_id = $1`, artID).Scan(&count))
	assert.Equal(t, 0, count)
}

func TestCategoryDeleteCascadesTransitively(t *testing.T) {
	requireDB(t)
	catID := insertCategory(t, "Категория")
	artID := insertArticle(t, "Статья", catID)
	insertComment(t, artID, true)

	// у категорий нет DELETE-эндпоинта, каскад проверяем на уровне БД
	_, err := db.DB.Exec(`DELETE FROM categories WHERE id = $1`, catID)
	require.NoError(t, err)

	var articles, comments int
	require.NoError(t, db.DB.QueryRow(`SELECT COUNT(*) FROM articles`).Scan(&articles))
	require.NoError(t, db.DB.QueryRow(`SELECT COUNT(*) FROM comments`).Scan(&comments))
	assert.Equal(t, 0, articles)
	assert.Equal(t, 0, comments)
}

/* ========= валидация ========= */

func TestValidationErrors(t *testing.T) {
	h := requireDB(t)
	authorID := insertAuthor(t, "Автор", "1950-01-01")

	// книга без названия
	w := doReq(t, h, http.MethodPost, "/api/books", tokUser1, map[string]any{
		"title": "", "release_date": "2020-01-01", "author": authorID,
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	// книга с несуществующим автором
	w = doReq(t, h, http.MethodPost, "/api/books", tokUser1, map[string]any{
		"title": "Книга", "release_date": "2020-01-01", "author": 99999,
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	// кривая дата
	w = doReq(t, h, http.MethodPost, "/api/books", tokUser1, map[string]any{
		"title": "Книга", "release_date": "вчера", "author": authorID,
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	// отзыв без текста
	w = doReq(t, h, http.MethodPost, "/api/feedbacks", tokUser2, map[string]string{
		"title": "Только заголовок",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

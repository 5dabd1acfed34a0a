package main

import (
	"Bibliotheque/internal/db"
	"Bibliotheque/internal/handlers"
	mw "Bibliotheque/internal/middleware"
	"log"
	"net/http"
	"os"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

func main() {
	log.Println("Boot: calling db.InitDB()")
	db.InitDB()
	db.EnsureSchema()
	db.EnsureAdmin()

	r := chi.NewRouter()

	// базовые middleware
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(30 * time.Second))
	r.Use(middleware.RedirectSlashes) // /path/ -> /path

	// токен из Authorization -> актор в контексте (для страниц безвреден)
	r.Use(mw.Identity)

	// статика
	r.Handle("/static/*", http.StripPrefix("/static/", http.FileServer(http.Dir("web/static"))))

	// ---------- Публичные HTML-страницы ----------
	r.Get("/", handlers.ShowHomePage)
	r.Get("/now", handlers.ShowNowPage)
	r.Get("/articles", handlers.ShowArticlesPage)
	r.Get("/articles/new", handlers.ShowArticleForm)
	r.Post("/articles/new", handlers.SubmitArticleForm)
	r.Get("/articles/{id}", handlers.ShowArticlePage)
	r.Post("/articles/{id}", handlers.SubmitComment)

	// ---------- JSON API ----------
	r.Route("/api", func(api chi.Router) {
		api.Post("/token", handlers.HandleToken)

		// авторы: доступ только staff, права проверяет сам хендлер
		api.Get("/authors", handlers.GetAuthors)
		api.Post("/authors", handlers.CreateAuthor)
		api.Get("/authors/{id}", handlers.GetAuthorByID)
		api.Put("/authors/{id}", handlers.UpdateAuthor)
		api.Delete("/authors/{id}", handlers.DeleteAuthor)
		api.Get("/authors/{id}/titles", handlers.GetAuthorTitles)

		api.Get("/books", handlers.GetBooks)
		api.Post("/books", handlers.CreateBook)
		api.Get("/books/{id}", handlers.GetBookByID)
		api.Put("/books/{id}", handlers.UpdateBook)
		api.Delete("/books/{id}", handlers.DeleteBook)

		api.Get("/categories", handlers.GetCategories)
		api.Get("/categories/{id}", handlers.GetCategoryByID)

		api.Get("/articles", handlers.GetArticles)
		api.Post("/articles", handlers.CreateArticle)
		api.Get("/articles/{id}", handlers.GetArticleByID)
		api.Put("/articles/{id}", handlers.UpdateArticle)
		api.Delete("/articles/{id}", handlers.DeleteArticle)

		api.Get("/comments", handlers.GetComments)
		api.Post("/comments", handlers.CreateComment)
		api.Get("/comments/{id}", handlers.GetCommentByID)
		api.Put("/comments/{id}", handlers.UpdateComment)
		api.Delete("/comments/{id}", handlers.DeleteComment)

		api.Get("/notes", handlers.GetNotes)
		api.Post("/notes", handlers.CreateNote)
		api.Get("/notes/{id}", handlers.GetNoteByID)
		api.Put("/notes/{id}", handlers.UpdateNote)
		api.Delete("/notes/{id}", handlers.DeleteNote)

		api.Get("/feedbacks", handlers.GetFeedbacks)
		api.Post("/feedbacks", handlers.CreateFeedback)
		api.Get("/feedbacks/{id}", handlers.GetFeedbackByID)
		api.Put("/feedbacks/{id}", handlers.UpdateFeedback)
		api.Delete("/feedbacks/{id}", handlers.DeleteFeedback)
	})

	// ---------- Старт сервера ----------
	host := getenv("HOST", "127.0.0.1")
	addr := host + ":" + getenv("PORT", "8080")
	log.Printf("listening on %s", addr)
	if err := http.ListenAndServe(addr, r); err != nil {
		log.Fatal(err)
	}
}

func getenv(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}

package db

import (
	"database/sql"
	"log"

	"golang.org/x/crypto/bcrypt"
)

// Таймстемпы намеренно без DEFAULT: created_at/updated_at проставляет
// прикладной код при записи, а не база.
var schemaStatements = []string{
	`CREATE TABLE IF NOT EXISTS users (
		id            SERIAL PRIMARY KEY,
		username      TEXT NOT NULL UNIQUE,
		password_hash TEXT NOT NULL,
		is_staff      BOOLEAN NOT NULL DEFAULT FALSE
	)`,
	`CREATE TABLE IF NOT EXISTS tokens (
		key     TEXT PRIMARY KEY,
		user_id INTEGER NOT NULL REFERENCES users(id) ON DELETE CASCADE
	)`,
	`CREATE TABLE IF NOT EXISTS user_groups (
		user_id INTEGER NOT NULL REFERENCES users(id) ON DELETE CASCADE,
		name    TEXT NOT NULL,
		PRIMARY KEY (user_id, name)
	)`,
	`CREATE TABLE IF NOT EXISTS authors (
		id         SERIAL PRIMARY KEY,
		name       TEXT NOT NULL,
		birth_date DATE NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS books (
		id           SERIAL PRIMARY KEY,
		title        TEXT NOT NULL,
		release_date DATE NOT NULL,
		author_id    INTEGER NOT NULL REFERENCES authors(id) ON DELETE CASCADE
	)`,
	`CREATE TABLE IF NOT EXISTS categories (
		id   SERIAL PRIMARY KEY,
		name TEXT NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS articles (
		id          SERIAL PRIMARY KEY,
		title       TEXT NOT NULL,
		content     TEXT NOT NULL,
		created_at  TIMESTAMPTZ NOT NULL,
		category_id INTEGER NOT NULL REFERENCES categories(id) ON DELETE CASCADE
	)`,
	`CREATE TABLE IF NOT EXISTS comments (
		id         SERIAL PRIMARY KEY,
		article_id INTEGER NOT NULL REFERENCES articles(id) ON DELETE CASCADE,
		name       TEXT NOT NULL,
		email      TEXT NOT NULL,
		content    TEXT NOT NULL,
		created_at TIMESTAMPTZ NOT NULL,
		active     BOOLEAN NOT NULL DEFAULT TRUE
	)`,
	`CREATE TABLE IF NOT EXISTS notes (
		id         SERIAL PRIMARY KEY,
		title      TEXT NOT NULL,
		content    TEXT NOT NULL,
		owner_id   INTEGER NOT NULL REFERENCES users(id) ON DELETE CASCADE,
		created_at TIMESTAMPTZ NOT NULL,
		updated_at TIMESTAMPTZ NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS feedbacks (
		id         SERIAL PRIMARY KEY,
		title      TEXT NOT NULL,
		content    TEXT NOT NULL,
		owner_id   INTEGER NOT NULL REFERENCES users(id) ON DELETE CASCADE,
		created_at TIMESTAMPTZ NOT NULL
	)`,
}

// EnsureSchema создаёт недостающие таблицы. Идемпотентно.
func EnsureSchema() {
	for _, stmt := range schemaStatements {
		if _, err := DB.Exec(stmt); err != nil {
			log.Fatalf("db: schema init failed: %v", err)
		}
	}
}

// EnsureAdmin заводит staff-аккаунт admin, если его ещё нет.
// Пароль берём из ADMIN_PASSWORD (по умолчанию admin123 — смени в проде).
func EnsureAdmin() {
	var id int
	err := DB.QueryRow(`SELECT id FROM users WHERE username = 'admin'`).Scan(&id)
	if err == nil {
		return
	}
	if err != sql.ErrNoRows {
		log.Fatalf("db: admin lookup failed: %v", err)
	}

	password := getenv("ADMIN_PASSWORD", "admin123")
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		log.Fatalf("db: bcrypt failed: %v", err)
	}

	if _, err := DB.Exec(
		`INSERT INTO users (username, password_hash, is_staff) VALUES ('admin', $1, TRUE)`,
		string(hash),
	); err != nil {
		log.Fatalf("db: admin seed failed: %v", err)
	}
	log.Println("db: admin account created (username=admin)")
}

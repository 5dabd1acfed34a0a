package db

import (
	"context"
	"database/sql"
	"log"
	"os"
	"strings"
	"time"

	_ "github.com/lib/pq"
)

var DB *sql.DB

func InitDB() {
	// Конфиг из окружения: DATABASE_URL > POSTGRES_DSN > отдельные переменные
	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		dsn = os.Getenv("POSTGRES_DSN")
	}
	if dsn == "" {
		host := getenv("POSTGRES_HOST", "127.0.0.1")
		port := getenv("POSTGRES_PORT", "5432")
		user := getenv("POSTGRES_USER", "postgres")
		pass := os.Getenv("POSTGRES_PASSWORD")
		name := getenv("POSTGRES_DB", "bibliotheque")
		sslm := getenv("POSTGRES_SSLMODE", "disable")

		// lib/pq key=value формат; пароль в логи не попадает
		parts := []string{
			"host=" + host,
			"port=" + port,
			"user=" + user,
			"dbname=" + name,
			"sslmode=" + sslm,
		}
		if pass != "" {
			parts = append(parts, "password="+pass)
		}
		dsn = strings.Join(parts, " ")
	}

	var err error
	DB, err = sql.Open("postgres", dsn)
	if err != nil {
		log.Fatalf("db: open failed: %v", err)
	}

	// Пул коннектов
	DB.SetMaxOpenConns(10)
	DB.SetMaxIdleConns(5)
	DB.SetConnMaxLifetime(30 * time.Minute)
	DB.SetConnMaxIdleTime(5 * time.Minute)

	// Ping с таймаутом, чтобы не зависнуть на недоступной базе
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := DB.PingContext(ctx); err != nil {
		log.Fatalf("db: ping failed: %v", err)
	}

	logSafeDSN()
}

func getenv(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}

func logSafeDSN() {
	// Логируем только «куда», без секретов
	host := getenv("POSTGRES_HOST", "")
	user := getenv("POSTGRES_USER", "")
	dbn := getenv("POSTGRES_DB", "")
	if host == "" && user == "" && dbn == "" {
		if os.Getenv("DATABASE_URL") != "" {
			log.Println("db: connected (DATABASE_URL provided)")
			return
		}
	}
	log.Printf("db: connected (host=%s user=%s db=%s)", host, user, dbn)
}

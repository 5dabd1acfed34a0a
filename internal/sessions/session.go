package sessions

import (
	"crypto/sha256"
	"net/http"
	"os"

	"github.com/gorilla/sessions"
)

var store *sessions.CookieStore

const sessionName = "bibliotheque_session"

func init() {
	secret := os.Getenv("SESSION_SECRET")
	if secret == "" {
		// без секрета работать нельзя; этот — только для локальной разработки
		secret = "dev-insecure-secret-change-me-now"
	}

	// Два ключа: подпись + шифрование (устойчивее, чем только подпись).
	h := sha256.Sum256([]byte("auth:" + secret))
	e := sha256.Sum256([]byte("enc:" + secret))

	store = sessions.NewCookieStore(h[:], e[:])
	store.Options = &sessions.Options{
		Path:     "/",
		MaxAge:   24 * 60 * 60,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
		Secure:   os.Getenv("APP_HTTPS") == "1",
	}
}

// AddFlash кладёт одноразовое сообщение для следующей страницы
// (подтверждение «комментарий добавлен» и т.п.).
func AddFlash(w http.ResponseWriter, r *http.Request, msg string) error {
	s, err := store.Get(r, sessionName)
	if err != nil {
		return err
	}
	s.AddFlash(msg)
	return s.Save(r, w)
}

// Flashes забирает накопленные сообщения и сразу их гасит.
func Flashes(w http.ResponseWriter, r *http.Request) []string {
	s, err := store.Get(r, sessionName)
	if err != nil {
		return nil
	}
	raw := s.Flashes()
	if len(raw) == 0 {
		return nil
	}
	_ = s.Save(r, w) // перезаписываем куку уже без сообщений

	out := make([]string, 0, len(raw))
	for _, f := range raw {
		if msg, ok := f.(string); ok {
			out = append(out, msg)
		}
	}
	return out
}

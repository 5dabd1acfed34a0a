package models

// Аккаунт из таблицы users. Пароль храним только bcrypt-хэшем.
// Staff — полный доступ к ресурсу авторов; группы дают точечные права
// (сейчас используется только группа "moderator").
type User struct {
	ID           int
	Username     string
	PasswordHash string
	Staff        bool
	Groups       []string
}

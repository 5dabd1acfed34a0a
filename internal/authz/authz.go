// Package authz — чистые предикаты доступа: (actor, метод, ресурс) -> да/нет.
// Никакого I/O, вся политика в одном месте. Отказ превращается в 401 или 403
// уже на уровне хендлеров (смотрим, аутентифицирован ли актор).
package authz

import "net/http"

// Имя группы с расширенными правами на удаление комментариев и отзывов.
const ModeratorGroup = "moderator"

// Actor — кто делает запрос. Нулевое значение = аноним.
type Actor struct {
	ID            int
	Username      string
	Authenticated bool
	Staff         bool
	Groups        []string
}

// Anonymous возвращает анонимного актора (без аккаунта и групп).
func Anonymous() Actor { return Actor{} }

func (a Actor) InGroup(name string) bool {
	for _, g := range a.Groups {
		if g == name {
			return true
		}
	}
	return false
}

// GroupCheck — фабрика предикатов «состоит в группе».
// Аноним не состоит ни в одной группе.
func GroupCheck(name string) func(Actor) bool {
	return func(a Actor) bool {
		return a.Authenticated && a.InGroup(name)
	}
}

var isModerator = GroupCheck(ModeratorGroup)

// Чтение — безопасные методы, остальное считаем записью.
func safeMethod(method string) bool {
	return method == http.MethodGet || method == http.MethodHead || method == http.MethodOptions
}

// Авторы: весь ресурс целиком только для staff, включая чтение.
func CanAuthor(a Actor, method string) bool {
	return a.Staff
}

// Книги: читают все, пишет любой аутентифицированный.
func CanBook(a Actor, method string) bool {
	if safeMethod(method) {
		return true
	}
	return a.Authenticated
}

// Статьи и категории открыты полностью.
func CanArticle(Actor, string) bool { return true }

// Комментарии: читают все, создаёт/правит аутентифицированный,
// удаляет только модератор.
func CanComment(a Actor, method string) bool {
	if safeMethod(method) {
		return true
	}
	if method == http.MethodDelete {
		return isModerator(a)
	}
	return a.Authenticated
}

// Заметки: создаёт любой аутентифицированный (владелец проставляется
// сервером), всё остальное — строго владелец.
func CanCreateNote(a Actor) bool { return a.Authenticated }

func CanNote(a Actor, method string, ownerID int) bool {
	return a.Authenticated && a.ID == ownerID
}

// Отзывы: читают все, создаёт аутентифицированный, правит владелец,
// удаляет владелец или модератор.
func CanCreateFeedback(a Actor) bool { return a.Authenticated }

func CanFeedback(a Actor, method string, ownerID int) bool {
	if safeMethod(method) {
		return true
	}
	owner := a.Authenticated && a.ID == ownerID
	if method == http.MethodDelete {
		return owner || isModerator(a)
	}
	return owner
}

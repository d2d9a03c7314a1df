// Package iocli абстрагирует терминальный ввод-вывод CLI клиента,
// чтобы команды можно было тестировать без реального терминала.
package iocli

// IO описывает поверхность терминала, которую используют команды:
// печать, шаблонный вывод (Write) и чтение ввода пользователя.
// ReadPassword читает без эха.
type IO interface {
	Println(a ...any)
	Printf(format string, a ...any)
	ReadInput(prompt string) (string, error)
	ReadPassword(prompt string) (string, error)
	Write(p []byte) (n int, err error)
}

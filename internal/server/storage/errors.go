package storage

import "errors"

// Сентинельные ошибки серверного хранилища
var (
	ErrUserNotFound      = errors.New("user not found")
	ErrUserAlreadyExists = errors.New("user already exists")
	ErrCoinNotFound      = errors.New("collection record not found")
)

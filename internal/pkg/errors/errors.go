package errors

import "errors"

// Общие ошибки приложения
var (
	// ErrNotFound используется, когда запись или ресурс не найдены,
	// а также когда корректный запрос вернул пустой результат.
	ErrNotFound = errors.New("record not found")

	// ErrValidation используется для ошибок валидации входных данных.
	ErrValidation = errors.New("validation failed")

	// ErrUnprocessable используется, когда корректный запрос нельзя выполнить
	// над текущим состоянием (например, удаление уже исчезнувшего вопроса).
	ErrUnprocessable = errors.New("unprocessable")

	// ErrInvalidArgument используется для недопустимых параметров запроса (page <= 0 и т.п.).
	ErrInvalidArgument = errors.New("invalid argument")

	// ErrMethodNotAllowed используется роутингом, когда метод не поддерживается для пути.
	ErrMethodNotAllowed = errors.New("method not allowed")
)

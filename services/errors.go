package services

import "errors"

// Ошибки ядра политики. Контроллеры сопоставляют их с HTTP-статусами
// через errors.Is.
var (
	// ErrValidation некорректный вход, отклоняется до любых изменений состояния
	ErrValidation = errors.New("validation error")

	// ErrNotFound запрошенная сущность не существует
	ErrNotFound = errors.New("not found")

	// ErrInvalidState операция над сущностью не в ожидаемом статусе
	ErrInvalidState = errors.New("invalid state")

	// ErrDuplicateRequest для пары (ребенок, приложение) уже есть ожидающий запрос
	ErrDuplicateRequest = errors.New("pending request already exists")

	// ErrIngestionFailed сбой записи окна синхронизации; окно можно
	// безопасно повторить целиком
	ErrIngestionFailed = errors.New("ingestion failed")
)

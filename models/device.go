package models

// Роли пользователей в семье
const (
	RoleParent = "parent"
	RoleChild  = "child"
)

// DeviceRegistration привязка устройства пользователя к семье.
// Используется для адресации push-уведомлений: запрос ребенка уходит
// родителям его семьи, решение родителя — устройству ребенка.
type DeviceRegistration struct {
	ID          uint   `json:"id" gorm:"primaryKey"`
	UserID      string `json:"user_id" gorm:"uniqueIndex"` // Firebase UID пользователя
	FamilyID    string `json:"family_id" gorm:"index"`
	Role        string `json:"role"`
	DeviceToken string `json:"device_token"`
	Lang        string `json:"lang"`
}

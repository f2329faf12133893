package models

import "time"

// Статусы запроса на дополнительное время. Оба ответа родителя терминальны.
const (
	RequestStatusPending = "pending"
	RequestStatusGranted = "granted"
	RequestStatusDenied  = "denied"
)

// Статусы временного разрешения
const (
	OverrideStatusActive  = "active"
	OverrideStatusExpired = "expired"
	OverrideStatusRevoked = "revoked"
)

// OverrideRequest запрос ребенка на временный доступ к приложению.
// Для пары (child_id, package_name) может существовать не более одного
// запроса в статусе pending.
type OverrideRequest struct {
	ID                uint       `json:"id" gorm:"primaryKey"`
	ChildID           string     `json:"child_id" gorm:"index:idx_override_request_child"`
	PackageName       string     `json:"package_name"`
	AppName           string     `json:"app_name"`
	RequestedAt       time.Time  `json:"requested_at"`
	Status            string     `json:"status"`
	GrantedByParentID *string    `json:"granted_by_parent_id,omitempty"`
	RespondedAt       *time.Time `json:"responded_at,omitempty"`
	ResponseNote      string     `json:"response_note,omitempty"`
}

// AppAccessOverride действующее временное разрешение, созданное
// одобрением запроса. Для пары (child_id, package_name) в любой момент
// существует не более одной записи в статусе active; новое разрешение
// атомарно вытесняет предыдущее.
type AppAccessOverride struct {
	ID                uint      `json:"id" gorm:"primaryKey"`
	ChildID           string    `json:"child_id" gorm:"index:idx_override_child_pkg"`
	PackageName       string    `json:"package_name" gorm:"index:idx_override_child_pkg"`
	GrantedByParentID string    `json:"granted_by_parent_id"`
	GrantedAt         time.Time `json:"granted_at"`
	ExpiresAt         time.Time `json:"expires_at"`
	DurationMinutes   int       `json:"duration_minutes"`
	Status            string    `json:"status"`
	Reason            string    `json:"reason,omitempty"`
}

// IsActiveAt проверяет, действует ли разрешение в указанный момент.
// Истечение срока учитывается лениво: запись со статусом active, у
// которой expires_at уже прошел, считается неактивной независимо от
// того, успел ли фоновый обход переключить статус.
func (o *AppAccessOverride) IsActiveAt(now time.Time) bool {
	return o.Status == OverrideStatusActive && now.Before(o.ExpiresAt)
}

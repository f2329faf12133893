package models

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// DailyLimitSettings общий дневной лимит экранного времени для ребенка.
// LimitSeconds == 0 означает "лимит не настроен", а не нулевое время.
type DailyLimitSettings struct {
	ID                  uint   `json:"id" gorm:"primaryKey"`
	ChildID             string `json:"child_id" gorm:"uniqueIndex"`
	LimitSeconds        int    `json:"limit_seconds"`
	WeekendBonusSeconds int    `json:"weekend_bonus_seconds"` // Добавка к лимиту в субботу и воскресенье
}

// Validate проверяет настройки перед сохранением
func (s *DailyLimitSettings) Validate() error {
	if s.ChildID == "" {
		return errors.New("child_id is required")
	}
	if s.LimitSeconds < 0 {
		return fmt.Errorf("limit_seconds must be non-negative, got %d", s.LimitSeconds)
	}
	if s.WeekendBonusSeconds < 0 {
		return fmt.Errorf("weekend_bonus_seconds must be non-negative, got %d", s.WeekendBonusSeconds)
	}
	return nil
}

// AppLimit дневной лимит для конкретного приложения ребенка.
//
// Если флаг дня недели для текущей даты снят, приложение в этот день
// НЕ ограничено (лимит отсутствует, а не равен нулю) — поведение
// унаследовано от исходного дизайна и может быть контринтуитивным
// для интерфейса "в какие дни действует лимит".
type AppLimit struct {
	ID          uint   `json:"id" gorm:"primaryKey"`
	ChildID     string `json:"child_id" gorm:"uniqueIndex:idx_app_limit_key"`
	PackageName string `json:"package_name" gorm:"uniqueIndex:idx_app_limit_key"`

	LimitSeconds int    `json:"limit_seconds"`
	AppliesDays  string `json:"applies_days"` // Дни недели в формате "0,1,2" (0 - воскресенье)

	// Бонусное время за серию дней в рамках лимита
	BonusEnabled          bool `json:"bonus_enabled"`
	BonusSeconds          int  `json:"bonus_seconds"`
	BonusStreakTargetDays int  `json:"bonus_streak_target_days"`
	StreakDays            int  `json:"streak_days"` // Текущая серия дней подряд в рамках лимита
}

// AppliesOn сообщает, действует ли лимит в указанный день недели (0 - воскресенье)
func (l *AppLimit) AppliesOn(weekday int) bool {
	for _, part := range strings.Split(l.AppliesDays, ",") {
		day, err := strconv.Atoi(strings.TrimSpace(part))
		if err != nil {
			continue
		}
		if day == weekday {
			return true
		}
	}
	return false
}

// EffectiveLimitSeconds возвращает действующий бюджет с учетом бонуса
func (l *AppLimit) EffectiveLimitSeconds() int {
	if l.BonusEnabled {
		return l.LimitSeconds + l.BonusSeconds
	}
	return l.LimitSeconds
}

// Validate проверяет лимит перед сохранением
func (l *AppLimit) Validate() error {
	if l.ChildID == "" {
		return errors.New("child_id is required")
	}
	if l.PackageName == "" {
		return errors.New("package_name is required")
	}
	if l.LimitSeconds < 0 {
		return fmt.Errorf("limit_seconds must be non-negative, got %d", l.LimitSeconds)
	}
	if l.BonusSeconds < 0 {
		return fmt.Errorf("bonus_seconds must be non-negative, got %d", l.BonusSeconds)
	}
	if l.BonusStreakTargetDays <= 0 {
		return fmt.Errorf("bonus_streak_target_days must be positive, got %d", l.BonusStreakTargetDays)
	}
	for _, part := range strings.Split(l.AppliesDays, ",") {
		day, err := strconv.Atoi(strings.TrimSpace(part))
		if err != nil || day < 0 || day > 6 {
			return fmt.Errorf("invalid day of week: %q", part)
		}
	}
	return nil
}

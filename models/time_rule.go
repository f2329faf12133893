package models

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// Типы временных правил
const (
	RuleTypeBedtime = "bedtime" // Ночной режим (сон)
	RuleTypeFocus   = "focus"   // Режим концентрации (учеба), только будние дни
)

// SecondsPerDay количество секунд в сутках, границы окна лежат в [0, 86399]
const SecondsPerDay = 86400

// TimeRule представляет временное правило блокировки для ребенка.
// Окно задается в секундах от местной полуночи; если EndSeconds < StartSeconds,
// окно переходит через полночь и захватывает начало следующего дня.
type TimeRule struct {
	ID           uint   `json:"id" gorm:"primaryKey"`
	ChildID      string `json:"child_id" gorm:"index"`
	RuleType     string `json:"rule_type"`
	StartSeconds int    `json:"start_seconds"`
	EndSeconds   int    `json:"end_seconds"`
	DaysOfWeek   string `json:"days_of_week"` // Дни недели в формате "0,1,2" (0 - воскресенье, 6 - суббота)
}

// ParseDays возвращает дни недели правила как множество.
// Некорректные элементы пропускаются, чтобы испорченная запись
// означала "правило не совпадает", а не падение оценки.
func (r *TimeRule) ParseDays() map[int]bool {
	days := make(map[int]bool)
	for _, part := range strings.Split(r.DaysOfWeek, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		day, err := strconv.Atoi(part)
		if err != nil || day < 0 || day > 6 {
			continue
		}
		days[day] = true
	}
	return days
}

// Validate проверяет правило перед сохранением. Правила проверяются
// на записи, а не на оценке: оценщик полагается на валидный вход.
func (r *TimeRule) Validate() error {
	if r.ChildID == "" {
		return errors.New("child_id is required")
	}
	if r.RuleType != RuleTypeBedtime && r.RuleType != RuleTypeFocus {
		return fmt.Errorf("unknown rule type: %s", r.RuleType)
	}
	if r.StartSeconds < 0 || r.StartSeconds >= SecondsPerDay {
		return fmt.Errorf("start_seconds out of range: %d", r.StartSeconds)
	}
	if r.EndSeconds < 0 || r.EndSeconds >= SecondsPerDay {
		return fmt.Errorf("end_seconds out of range: %d", r.EndSeconds)
	}

	if r.DaysOfWeek == "" {
		return errors.New("days_of_week is required")
	}
	for _, part := range strings.Split(r.DaysOfWeek, ",") {
		day, err := strconv.Atoi(strings.TrimSpace(part))
		if err != nil || day < 0 || day > 6 {
			return fmt.Errorf("invalid day of week: %q", part)
		}
		// Focus-правила существуют только для будних дней
		if r.RuleType == RuleTypeFocus && (day < 1 || day > 5) {
			return fmt.Errorf("focus rule cannot apply to day %d: weekdays only", day)
		}
	}

	return nil
}

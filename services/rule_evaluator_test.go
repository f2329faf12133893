package services

import (
	"PinguinPolicy/models"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

// 2025-06-02 - понедельник, 2025-06-07 - суббота
func mondayAt(hour, min int) time.Time {
	return time.Date(2025, 6, 2, hour, min, 0, 0, time.UTC)
}

func saturdayAt(hour, min int) time.Time {
	return time.Date(2025, 6, 7, hour, min, 0, 0, time.UTC)
}

func TestIsRuleActiveNowCrossesMidnight(t *testing.T) {
	// Ночной режим 22:00-07:00 в понедельник
	rule := models.TimeRule{
		RuleType:     models.RuleTypeBedtime,
		StartSeconds: 22 * 3600,
		EndSeconds:   7 * 3600,
		DaysOfWeek:   "1",
	}

	// Тестовые случаи вокруг границ окна
	testCases := []struct {
		name     string
		now      time.Time
		expected bool
	}{
		{
			name:     "До начала окна в понедельник",
			now:      mondayAt(21, 0),
			expected: false,
		},
		{
			name:     "Ровно в начале окна",
			now:      mondayAt(22, 0),
			expected: true,
		},
		{
			name:     "Ночью в понедельник",
			now:      mondayAt(23, 30),
			expected: true,
		},
		{
			name:     "Хвост окна ранним утром вторника",
			now:      time.Date(2025, 6, 3, 6, 30, 0, 0, time.UTC),
			expected: true,
		},
		{
			name:     "Окно закрылось во вторник утром",
			now:      time.Date(2025, 6, 3, 7, 0, 0, 0, time.UTC),
			expected: false,
		},
		{
			name:     "Вечер вторника не в наборе дней",
			now:      time.Date(2025, 6, 3, 23, 0, 0, 0, time.UTC),
			expected: false,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, IsRuleActiveNow(rule, tc.now))
		})
	}
}

func TestIsRuleActiveNowRegularWindow(t *testing.T) {
	// Обычное окно 13:00-18:00 в будни
	rule := models.TimeRule{
		RuleType:     models.RuleTypeFocus,
		StartSeconds: 13 * 3600,
		EndSeconds:   18 * 3600,
		DaysOfWeek:   "1,2,3,4,5",
	}

	assert.True(t, IsRuleActiveNow(rule, mondayAt(13, 0)))
	assert.True(t, IsRuleActiveNow(rule, mondayAt(17, 59)))
	// Конец окна исключается
	assert.False(t, IsRuleActiveNow(rule, mondayAt(18, 0)))
	assert.False(t, IsRuleActiveNow(rule, mondayAt(12, 59)))
}

func TestIsRuleActiveNowZeroWidthWindow(t *testing.T) {
	// Start == End дает окно нулевой ширины, правило никогда не активно
	rule := models.TimeRule{
		RuleType:     models.RuleTypeBedtime,
		StartSeconds: 13 * 3600,
		EndSeconds:   13 * 3600,
		DaysOfWeek:   "1",
	}

	assert.False(t, IsRuleActiveNow(rule, mondayAt(13, 0)))
}

func TestFocusRuleInertOnWeekends(t *testing.T) {
	// Focus-правило инертно в субботу и воскресенье, даже если дни
	// недели в записи испорчены и содержат выходной
	rule := models.TimeRule{
		RuleType:     models.RuleTypeFocus,
		StartSeconds: 13 * 3600,
		EndSeconds:   18 * 3600,
		DaysOfWeek:   "1,2,3,4,5,6",
	}

	assert.False(t, IsRuleActiveNow(rule, saturdayAt(14, 0)))
	assert.False(t, IsRuleActiveNow(rule, time.Date(2025, 6, 8, 14, 0, 0, 0, time.UTC)))

	// Bedtime-правило с теми же параметрами в субботу работает
	rule.RuleType = models.RuleTypeBedtime
	assert.True(t, IsRuleActiveNow(rule, saturdayAt(14, 0)))
}

func TestParseDaysSkipsMalformedTokens(t *testing.T) {
	// Испорченные элементы пропускаются, валидные остаются
	rule := models.TimeRule{DaysOfWeek: "1, x, 9, 2,"}

	days := rule.ParseDays()
	assert.Equal(t, map[int]bool{1: true, 2: true}, days)
}

func TestEffectiveDailyLimitSeconds(t *testing.T) {
	settings := models.DailyLimitSettings{
		LimitSeconds:        3600,
		WeekendBonusSeconds: 900,
	}

	// В будни бонус не действует
	assert.Equal(t, 3600, EffectiveDailyLimitSeconds(settings, mondayAt(12, 0)))
	// В субботу лимит увеличен на бонус
	assert.Equal(t, 4500, EffectiveDailyLimitSeconds(settings, saturdayAt(12, 0)))

	// Ноль означает "лимит не настроен", бонус не превращает его в лимит
	unset := models.DailyLimitSettings{LimitSeconds: 0, WeekendBonusSeconds: 900}
	assert.Equal(t, 0, EffectiveDailyLimitSeconds(unset, saturdayAt(12, 0)))
}

func TestDailyUsedSecondsExcludesSystemPackages(t *testing.T) {
	usage := map[string]int{
		"com.instagram.android": 1200,
		"com.android.settings":  600,
		"com.android.dialer":    300,
		"com.example.game":      800,
	}

	// Системные пакеты не съедают время ребенка
	assert.Equal(t, 2000, DailyUsedSeconds(usage))
}

func TestGetDailyTimeRemainingNeverNegative(t *testing.T) {
	settings := models.DailyLimitSettings{LimitSeconds: 1000}
	usage := map[string]int{"com.example.game": 1500}

	remaining, ok := GetDailyTimeRemaining(settings, usage, mondayAt(12, 0))
	assert.True(t, ok)
	assert.Equal(t, 0, remaining)

	// Без настроенного лимита остатка нет
	_, ok = GetDailyTimeRemaining(models.DailyLimitSettings{}, usage, mondayAt(12, 0))
	assert.False(t, ok)
}

func TestGetAppTimeRemaining(t *testing.T) {
	limit := &models.AppLimit{
		PackageName:           "com.example.game",
		LimitSeconds:          1800,
		AppliesDays:           "1,2,3,4,5",
		BonusStreakTargetDays: 5,
	}
	usage := map[string]int{"com.example.game": 700}

	remaining, ok := GetAppTimeRemaining(limit, usage, mondayAt(12, 0))
	assert.True(t, ok)
	assert.Equal(t, 1100, remaining)

	// В субботу флаг дня снят, лимит не действует
	_, ok = GetAppTimeRemaining(limit, usage, saturdayAt(12, 0))
	assert.False(t, ok)

	// Заработанный бонус расширяет бюджет
	limit.BonusEnabled = true
	limit.BonusSeconds = 600
	remaining, ok = GetAppTimeRemaining(limit, usage, mondayAt(12, 0))
	assert.True(t, ok)
	assert.Equal(t, 1700, remaining)
}

func TestEvaluateConstraintsPriorityOrder(t *testing.T) {
	// В 22:10 понедельника активны и ночной режим, и focus-окно,
	// и оба лимита исчерпаны: выигрывает bedtime
	rules := []models.TimeRule{
		{RuleType: models.RuleTypeFocus, StartSeconds: 20 * 3600, EndSeconds: 23 * 3600, DaysOfWeek: "1,2,3,4,5"},
		{RuleType: models.RuleTypeBedtime, StartSeconds: 22 * 3600, EndSeconds: 7 * 3600, DaysOfWeek: "1"},
	}
	dailyLimit := models.DailyLimitSettings{LimitSeconds: 600}
	appLimit := &models.AppLimit{
		PackageName:           "com.example.game",
		LimitSeconds:          300,
		AppliesDays:           "1",
		BonusStreakTargetDays: 5,
	}
	usage := map[string]int{"com.example.game": 900}
	now := mondayAt(22, 10)

	constraint := EvaluateConstraints(rules, dailyLimit, appLimit, usage, "com.example.game", now)
	assert.Equal(t, ConstraintBedtime, constraint.Type)

	// Без bedtime верх берет focus
	constraint = EvaluateConstraints(rules[:1], dailyLimit, appLimit, usage, "com.example.game", now)
	assert.Equal(t, ConstraintFocus, constraint.Type)

	// Без правил решает дневной лимит
	constraint = EvaluateConstraints(nil, dailyLimit, appLimit, usage, "com.example.game", now)
	assert.Equal(t, ConstraintDailyLimit, constraint.Type)

	// Без дневного лимита остается лимит приложения
	constraint = EvaluateConstraints(nil, models.DailyLimitSettings{}, appLimit, usage, "com.example.game", now)
	assert.Equal(t, ConstraintAppLimit, constraint.Type)
	assert.Equal(t, "com.example.game", constraint.PackageName)
}

func TestEvaluateConstraintsInclusiveExceed(t *testing.T) {
	// Достижение лимита ровно уже считается превышением
	dailyLimit := models.DailyLimitSettings{LimitSeconds: 1000}
	usage := map[string]int{"com.example.game": 1000}

	constraint := EvaluateConstraints(nil, dailyLimit, nil, usage, "com.example.game", mondayAt(12, 0))
	assert.Equal(t, ConstraintDailyLimit, constraint.Type)

	// На секунду меньше - доступ открыт
	usage["com.example.game"] = 999
	constraint = EvaluateConstraints(nil, dailyLimit, nil, usage, "com.example.game", mondayAt(12, 0))
	assert.Equal(t, ConstraintNone, constraint.Type)
}

func TestEvaluateConstraintsAppLimitNotApplicableDay(t *testing.T) {
	// Флаг субботы снят: приложение в субботу не ограничено вовсе
	appLimit := &models.AppLimit{
		PackageName:           "com.example.game",
		LimitSeconds:          300,
		AppliesDays:           "1,2,3,4,5",
		BonusStreakTargetDays: 5,
	}
	usage := map[string]int{"com.example.game": 5000}

	constraint := EvaluateConstraints(nil, models.DailyLimitSettings{}, appLimit, usage, "com.example.game", saturdayAt(12, 0))
	assert.Equal(t, ConstraintNone, constraint.Type)

	// Нулевой лимит означает "без лимита", а не мгновенную блокировку
	appLimit.LimitSeconds = 0
	constraint = EvaluateConstraints(nil, models.DailyLimitSettings{}, appLimit, usage, "com.example.game", mondayAt(12, 0))
	assert.Equal(t, ConstraintNone, constraint.Type)
}

func TestEvaluateConstraintsLimitOfOtherPackage(t *testing.T) {
	// Лимит чужого пакета не блокирует запрошенный
	appLimit := &models.AppLimit{
		PackageName:           "com.example.other",
		LimitSeconds:          300,
		AppliesDays:           "1",
		BonusStreakTargetDays: 5,
	}
	usage := map[string]int{"com.example.other": 5000}

	constraint := EvaluateConstraints(nil, models.DailyLimitSettings{}, appLimit, usage, "com.example.game", mondayAt(12, 0))
	assert.Equal(t, ConstraintNone, constraint.Type)
}

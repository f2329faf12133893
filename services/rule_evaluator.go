package services

import (
	"time"

	"PinguinPolicy/models"
)

// Тип ограничения, из-за которого приложение заблокировано.
// Приоритет: bedtime > focus > daily_limit > app_limit.
type ConstraintType string

const (
	ConstraintNone       ConstraintType = "none"
	ConstraintBedtime    ConstraintType = "bedtime"
	ConstraintFocus      ConstraintType = "focus"
	ConstraintDailyLimit ConstraintType = "daily_limit"
	ConstraintAppLimit   ConstraintType = "app_limit"
)

// Constraint результат оценки правил для одного приложения в один момент
type Constraint struct {
	Type        ConstraintType
	PackageName string // Заполнен для ConstraintAppLimit
}

// systemAllowlist пакеты, которые не учитываются в дневном лимите:
// неизбежное системное взаимодействие не должно съедать время ребенка.
var systemAllowlist = map[string]bool{
	"com.android.dialer":     true,
	"com.android.phone":      true,
	"com.android.settings":   true,
	"com.android.systemui":   true,
	"com.android.launcher":   true,
	"com.pinguin.mobile.kid": true, // Собственное приложение ребенка
}

// Оценка чистая: "сейчас" всегда передается параметром, глобальные
// часы внутри не читаются.

// IsRuleActiveNow проверяет, действует ли правило в указанный момент.
// Окно с EndSeconds < StartSeconds переходит через полночь: оно активно
// после StartSeconds в день из набора и до EndSeconds на следующее утро.
func IsRuleActiveNow(rule models.TimeRule, now time.Time) bool {
	dow := int(now.Weekday())
	nowSec := now.Hour()*3600 + now.Minute()*60 + now.Second()

	// Focus-правила инертны в выходные, что бы ни лежало в days
	if rule.RuleType == models.RuleTypeFocus && (dow == 0 || dow == 6) {
		return false
	}

	days := rule.ParseDays()

	if rule.EndSeconds >= rule.StartSeconds {
		// Обычное окно; StartSeconds == EndSeconds дает нулевую ширину
		return days[dow] && nowSec >= rule.StartSeconds && nowSec < rule.EndSeconds
	}

	// Переход через полночь: либо окно началось сегодня,
	// либо еще открыт хвост окна, начавшегося вчера
	if days[dow] && nowSec >= rule.StartSeconds {
		return true
	}
	yesterday := (dow + 6) % 7
	return days[yesterday] && nowSec < rule.EndSeconds
}

// IsWeekend сообщает, приходится ли момент на субботу или воскресенье
func IsWeekend(now time.Time) bool {
	wd := now.Weekday()
	return wd == time.Saturday || wd == time.Sunday
}

// EffectiveDailyLimitSeconds действующий дневной лимит с учетом бонуса
// выходного дня. Ноль означает, что лимит не настроен.
func EffectiveDailyLimitSeconds(settings models.DailyLimitSettings, now time.Time) int {
	if settings.LimitSeconds == 0 {
		return 0
	}
	if IsWeekend(now) {
		return settings.LimitSeconds + settings.WeekendBonusSeconds
	}
	return settings.LimitSeconds
}

// DailyUsedSeconds суммирует сегодняшнее использование без системных пакетов
func DailyUsedSeconds(usageToday map[string]int) int {
	total := 0
	for pkg, seconds := range usageToday {
		if systemAllowlist[pkg] {
			continue
		}
		total += seconds
	}
	return total
}

// GetDailyTimeRemaining остаток дневного лимита; никогда не отрицателен.
// Второй результат false, если лимит не настроен.
func GetDailyTimeRemaining(settings models.DailyLimitSettings, usageToday map[string]int, now time.Time) (int, bool) {
	limit := EffectiveDailyLimitSeconds(settings, now)
	if limit == 0 {
		return 0, false
	}
	remaining := limit - DailyUsedSeconds(usageToday)
	if remaining < 0 {
		remaining = 0
	}
	return remaining, true
}

// GetAppTimeRemaining остаток лимита приложения; никогда не отрицателен.
// Второй результат false, если лимит в этот день не действует.
func GetAppTimeRemaining(limit *models.AppLimit, usageToday map[string]int, now time.Time) (int, bool) {
	if limit == nil || limit.LimitSeconds == 0 || !limit.AppliesOn(int(now.Weekday())) {
		return 0, false
	}
	remaining := limit.EffectiveLimitSeconds() - usageToday[limit.PackageName]
	if remaining < 0 {
		remaining = 0
	}
	return remaining, true
}

// EvaluateConstraints решает, какое ограничение блокирует приложение в
// момент now. Первое совпадение по приоритету выигрывает; лимит
// приложения проверяется только для запрошенного пакета.
func EvaluateConstraints(
	rules []models.TimeRule,
	dailyLimit models.DailyLimitSettings,
	appLimit *models.AppLimit,
	usageToday map[string]int,
	packageName string,
	now time.Time,
) Constraint {
	// Сначала bedtime, затем focus: порядок прохода задает приоритет
	for _, rule := range rules {
		if rule.RuleType == models.RuleTypeBedtime && IsRuleActiveNow(rule, now) {
			return Constraint{Type: ConstraintBedtime}
		}
	}
	for _, rule := range rules {
		if rule.RuleType == models.RuleTypeFocus && IsRuleActiveNow(rule, now) {
			return Constraint{Type: ConstraintFocus}
		}
	}

	// Дневной лимит: достижение лимита ровно тоже считается превышением
	if limit := EffectiveDailyLimitSeconds(dailyLimit, now); limit > 0 {
		if DailyUsedSeconds(usageToday) >= limit {
			return Constraint{Type: ConstraintDailyLimit}
		}
	}

	// Лимит приложения. Если флаг дня недели снят, приложение в этот
	// день не ограничено (не "нулевой лимит") — поведение исходного
	// дизайна, см. AppLimit.
	if appLimit != nil && appLimit.PackageName == packageName &&
		appLimit.LimitSeconds > 0 && appLimit.AppliesOn(int(now.Weekday())) {
		if usageToday[packageName] >= appLimit.EffectiveLimitSeconds() {
			return Constraint{Type: ConstraintAppLimit, PackageName: packageName}
		}
	}

	return Constraint{Type: ConstraintNone}
}

package services

import (
	"errors"
	"time"

	"PinguinPolicy/models"
	"PinguinPolicy/repositories"

	"gorm.io/gorm"
)

// ReasonOverridden причина решения при действующем временном разрешении
const ReasonOverridden = "overridden"

// AccessDecision ответ точки принуждения: пускать приложение или нет
type AccessDecision struct {
	Allowed           bool       `json:"allowed"`
	Reason            string     `json:"reason"`
	PackageName       string     `json:"package_name"`
	RemainingSeconds  *int       `json:"remaining_seconds,omitempty"`
	OverrideExpiresAt *time.Time `json:"override_expires_at,omitempty"`
}

// PolicyService единая точка решения "заблокировано ли приложение
// сейчас". Ее вызывает механизм принуждения на устройстве ребенка
// перед выводом приложения на передний план.
type PolicyService struct {
	RuleRepo  repositories.TimeRuleRepository
	LimitRepo repositories.LimitRepository
	UsageRepo repositories.UsageRepository
	Overrides *OverrideService
}

func NewPolicyService(
	ruleRepo repositories.TimeRuleRepository,
	limitRepo repositories.LimitRepository,
	usageRepo repositories.UsageRepository,
	overrides *OverrideService,
) *PolicyService {
	return &PolicyService{
		RuleRepo:  ruleRepo,
		LimitRepo: limitRepo,
		UsageRepo: usageRepo,
		Overrides: overrides,
	}
}

// Decide выносит решение для приложения в момент now. Действующее
// разрешение перекрывает все правила, включая ночной режим; иначе
// решает оценщик ограничений.
func (s *PolicyService) Decide(childID, packageName string, now time.Time) (AccessDecision, error) {
	overridden, override, err := s.Overrides.IsCurrentlyOverridden(childID, packageName, now)
	if err != nil {
		return AccessDecision{}, err
	}
	if overridden {
		expiresAt := override.ExpiresAt
		return AccessDecision{
			Allowed:           true,
			Reason:            ReasonOverridden,
			PackageName:       packageName,
			OverrideExpiresAt: &expiresAt,
		}, nil
	}

	rules, err := s.RuleRepo.FindByChildID(childID)
	if err != nil {
		return AccessDecision{}, err
	}

	dailyLimit, err := s.LimitRepo.FindDailyLimit(childID)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return AccessDecision{}, err
	}

	var appLimit *models.AppLimit
	limit, err := s.LimitRepo.FindAppLimit(childID, packageName)
	if err == nil {
		appLimit = &limit
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return AccessDecision{}, err
	}

	usageRows, err := s.UsageRepo.FindUsageForDate(childID, now.Format(models.UsageDateFormat))
	if err != nil {
		return AccessDecision{}, err
	}
	usageToday := make(map[string]int, len(usageRows))
	for _, row := range usageRows {
		usageToday[row.PackageName] = row.TotalSeconds
	}

	constraint := EvaluateConstraints(rules, dailyLimit, appLimit, usageToday, packageName, now)

	decision := AccessDecision{
		Allowed:     constraint.Type == ConstraintNone,
		Reason:      string(constraint.Type),
		PackageName: packageName,
	}

	// Для лимитов сообщаем остаток, чтобы устройство могло показать его
	switch constraint.Type {
	case ConstraintNone, ConstraintDailyLimit:
		if remaining, ok := GetDailyTimeRemaining(dailyLimit, usageToday, now); ok {
			decision.RemainingSeconds = &remaining
		}
	case ConstraintAppLimit:
		if remaining, ok := GetAppTimeRemaining(appLimit, usageToday, now); ok {
			decision.RemainingSeconds = &remaining
		}
	}

	return decision, nil
}

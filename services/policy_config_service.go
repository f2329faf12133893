package services

import (
	"errors"
	"fmt"

	"PinguinPolicy/models"
	"PinguinPolicy/repositories"

	"gorm.io/gorm"
)

// PolicyConfigService операции родителя над правилами и лимитами.
// Некорректные определения отклоняются здесь, на записи: оценщик
// ограничений работает только с проверенным входом.
type PolicyConfigService struct {
	RuleRepo   repositories.TimeRuleRepository
	LimitRepo  repositories.LimitRepository
	Hub        FamilyBroadcaster // Может быть nil
	DeviceRepo repositories.DeviceRepository
}

func NewPolicyConfigService(
	ruleRepo repositories.TimeRuleRepository,
	limitRepo repositories.LimitRepository,
	hub FamilyBroadcaster,
	deviceRepo repositories.DeviceRepository,
) *PolicyConfigService {
	return &PolicyConfigService{RuleRepo: ruleRepo, LimitRepo: limitRepo, Hub: hub, DeviceRepo: deviceRepo}
}

func (s *PolicyConfigService) notifyPolicyChanged(childID, packageName string) {
	if s.Hub == nil {
		return
	}
	registration, err := s.DeviceRepo.FindByUserID(childID)
	if err != nil {
		return
	}
	s.Hub.BroadcastToFamily(registration.FamilyID, "policy_changed", childID, packageName, nil)
}

// CreateTimeRule сохраняет новое временное правило
func (s *PolicyConfigService) CreateTimeRule(rule models.TimeRule) (models.TimeRule, error) {
	if err := rule.Validate(); err != nil {
		return models.TimeRule{}, fmt.Errorf("%w: %v", ErrValidation, err)
	}
	if err := s.RuleRepo.Save(&rule); err != nil {
		return models.TimeRule{}, err
	}
	s.notifyPolicyChanged(rule.ChildID, "")
	return rule, nil
}

// ListTimeRules возвращает правила ребенка
func (s *PolicyConfigService) ListTimeRules(childID string) ([]models.TimeRule, error) {
	return s.RuleRepo.FindByChildID(childID)
}

// DeleteTimeRule удаляет правило
func (s *PolicyConfigService) DeleteTimeRule(ruleID uint) error {
	rule, err := s.RuleRepo.FindByID(ruleID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return err
	}
	if err := s.RuleRepo.DeleteByID(ruleID); err != nil {
		return err
	}
	s.notifyPolicyChanged(rule.ChildID, "")
	return nil
}

// SetDailyLimit сохраняет общий дневной лимит ребенка
func (s *PolicyConfigService) SetDailyLimit(settings models.DailyLimitSettings) (models.DailyLimitSettings, error) {
	if err := settings.Validate(); err != nil {
		return models.DailyLimitSettings{}, fmt.Errorf("%w: %v", ErrValidation, err)
	}
	if err := s.LimitRepo.SaveDailyLimit(&settings); err != nil {
		return models.DailyLimitSettings{}, err
	}
	s.notifyPolicyChanged(settings.ChildID, "")
	return settings, nil
}

// SetAppLimit сохраняет лимит приложения. Перезапись лимита сбрасывает
// текущую серию бонусного времени.
func (s *PolicyConfigService) SetAppLimit(limit models.AppLimit) (models.AppLimit, error) {
	if err := limit.Validate(); err != nil {
		return models.AppLimit{}, fmt.Errorf("%w: %v", ErrValidation, err)
	}
	if err := s.LimitRepo.SaveAppLimit(&limit); err != nil {
		return models.AppLimit{}, err
	}
	s.notifyPolicyChanged(limit.ChildID, limit.PackageName)
	return limit, nil
}

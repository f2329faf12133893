package services

import (
	"errors"
	"log"
	"time"

	"PinguinPolicy/models"
	"PinguinPolicy/repositories"

	"gorm.io/gorm"
)

// StreakService начисляет бонусное время за серии дней в рамках лимита.
// День с использованием ниже базового лимита удлиняет серию; достижение
// целевой длины включает бонус на следующие дни. День с достигнутым или
// превышенным лимитом сбрасывает серию и выключает бонус.
type StreakService struct {
	LimitRepo repositories.LimitRepository
	UsageRepo repositories.UsageRepository
}

func NewStreakService(limitRepo repositories.LimitRepository, usageRepo repositories.UsageRepository) *StreakService {
	return &StreakService{LimitRepo: limitRepo, UsageRepo: usageRepo}
}

// ReconcileStreaks пересчитывает серии ребенка по итогам прожитого дня.
// Вызывается ночным обходом за вчерашнюю дату. Дни, в которые лимит не
// действует, серию не меняют.
func (s *StreakService) ReconcileStreaks(childID string, day time.Time) error {
	limits, err := s.LimitRepo.FindAppLimits(childID)
	if err != nil {
		return err
	}

	usageDate := day.Format(models.UsageDateFormat)
	weekday := int(day.Weekday())

	for i := range limits {
		limit := &limits[i]
		if limit.LimitSeconds == 0 || !limit.AppliesOn(weekday) {
			continue
		}

		used := 0
		row, err := s.UsageRepo.FindUsageForPackage(childID, limit.PackageName, usageDate)
		if err == nil {
			used = row.TotalSeconds
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}

		// Сравнение с базовым лимитом: бонусные секунды не учитываются,
		// иначе серия подпитывала бы сама себя
		if used < limit.LimitSeconds {
			limit.StreakDays++
			if limit.StreakDays >= limit.BonusStreakTargetDays {
				limit.BonusEnabled = true
			}
		} else {
			limit.StreakDays = 0
			limit.BonusEnabled = false
		}

		if err := s.LimitRepo.SaveAppLimit(limit); err != nil {
			return err
		}
		log.Printf("[STREAK] child=%s pkg=%s used=%d streak=%d bonus=%v",
			childID, limit.PackageName, used, limit.StreakDays, limit.BonusEnabled)
	}

	return nil
}

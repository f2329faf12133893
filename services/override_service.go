package services

import (
	"errors"
	"fmt"
	"time"

	"PinguinPolicy/models"
	"PinguinPolicy/repositories"

	"gorm.io/gorm"
)

// PolicyEventSink получает события жизненного цикла запросов и
// разрешений для доставки на устройства. Доставка всегда best-effort
// и не влияет на исход операции.
type PolicyEventSink interface {
	RequestCreated(req models.OverrideRequest)
	RequestGranted(req models.OverrideRequest, override models.AppAccessOverride)
	RequestDenied(req models.OverrideRequest)
	OverrideRevoked(override models.AppAccessOverride)
}

// OverrideService машина состояний запросов на дополнительное время и
// временных разрешений: Pending -> {Granted, Denied},
// Active -> {Expired, Revoked}.
type OverrideService struct {
	OverrideRepo repositories.OverrideRepository
	Events       PolicyEventSink // Может быть nil
	Now          func() time.Time
}

func NewOverrideService(overrideRepo repositories.OverrideRepository, events PolicyEventSink) *OverrideService {
	return &OverrideService{OverrideRepo: overrideRepo, Events: events, Now: time.Now}
}

// CreateRequest создает запрос ребенка на дополнительное время.
// Повторный запрос при уже ожидающем отклоняется, чтобы перезапрос с
// устройства не сбрасывал позицию в очереди родителя.
func (s *OverrideService) CreateRequest(childID, packageName, appName string) (models.OverrideRequest, error) {
	if childID == "" || packageName == "" {
		return models.OverrideRequest{}, fmt.Errorf("%w: child_id and package_name are required", ErrValidation)
	}

	_, err := s.OverrideRepo.FindPendingRequest(childID, packageName)
	if err == nil {
		return models.OverrideRequest{}, ErrDuplicateRequest
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return models.OverrideRequest{}, err
	}

	req := models.OverrideRequest{
		ChildID:     childID,
		PackageName: packageName,
		AppName:     appName,
		RequestedAt: s.Now(),
		Status:      models.RequestStatusPending,
	}
	if err := s.OverrideRepo.CreateRequest(&req); err != nil {
		return models.OverrideRequest{}, err
	}

	if s.Events != nil {
		s.Events.RequestCreated(req)
	}
	return req, nil
}

// Grant одобряет ожидающий запрос и создает временное разрешение на
// durationMinutes от текущего момента. Существующее активное разрешение
// той же пары вытесняется в той же транзакции. Вариант "до конца дня"
// вызывающая сторона заранее переводит в минуты до местной полуночи.
func (s *OverrideService) Grant(requestID uint, parentUID string, durationMinutes int, note string) (models.OverrideRequest, models.AppAccessOverride, error) {
	if durationMinutes <= 0 {
		return models.OverrideRequest{}, models.AppAccessOverride{}, fmt.Errorf("%w: duration must be a positive number of minutes", ErrValidation)
	}

	req, err := s.OverrideRepo.FindRequestByID(requestID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.OverrideRequest{}, models.AppAccessOverride{}, ErrNotFound
		}
		return models.OverrideRequest{}, models.AppAccessOverride{}, err
	}
	if req.Status != models.RequestStatusPending {
		return models.OverrideRequest{}, models.AppAccessOverride{}, fmt.Errorf("%w: request is %s, expected pending", ErrInvalidState, req.Status)
	}

	now := s.Now()
	req.Status = models.RequestStatusGranted
	req.GrantedByParentID = &parentUID
	req.RespondedAt = &now
	req.ResponseNote = note

	override := models.AppAccessOverride{
		ChildID:           req.ChildID,
		PackageName:       req.PackageName,
		GrantedByParentID: parentUID,
		GrantedAt:         now,
		ExpiresAt:         now.Add(time.Duration(durationMinutes) * time.Minute),
		DurationMinutes:   durationMinutes,
		Status:            models.OverrideStatusActive,
		Reason:            note,
	}

	if err := s.OverrideRepo.GrantWithOverride(&req, &override); err != nil {
		return models.OverrideRequest{}, models.AppAccessOverride{}, err
	}

	if s.Events != nil {
		s.Events.RequestGranted(req, override)
	}
	return req, override, nil
}

// Deny отклоняет ожидающий запрос. Разрешение не создается.
func (s *OverrideService) Deny(requestID uint, parentUID string, note string) (models.OverrideRequest, error) {
	req, err := s.OverrideRepo.FindRequestByID(requestID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.OverrideRequest{}, ErrNotFound
		}
		return models.OverrideRequest{}, err
	}
	if req.Status != models.RequestStatusPending {
		return models.OverrideRequest{}, fmt.Errorf("%w: request is %s, expected pending", ErrInvalidState, req.Status)
	}

	// GrantedByParentID не заполняется: поле атрибутирует выдачу,
	// а не любой ответ. Факт и время отказа фиксируют RespondedAt и
	// примечание.
	now := s.Now()
	req.Status = models.RequestStatusDenied
	req.RespondedAt = &now
	req.ResponseNote = note

	if err := s.OverrideRepo.SaveRequest(&req); err != nil {
		return models.OverrideRequest{}, err
	}

	if s.Events != nil {
		s.Events.RequestDenied(req)
	}
	return req, nil
}

// Revoke досрочно отзывает активное разрешение. Доступ закрывается на
// следующей же оценке.
func (s *OverrideService) Revoke(overrideID uint, parentUID string) (models.AppAccessOverride, error) {
	override, err := s.OverrideRepo.FindOverrideByID(overrideID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.AppAccessOverride{}, ErrNotFound
		}
		return models.AppAccessOverride{}, err
	}
	if override.Status != models.OverrideStatusActive {
		return models.AppAccessOverride{}, fmt.Errorf("%w: override is %s, expected active", ErrInvalidState, override.Status)
	}

	override.Status = models.OverrideStatusRevoked
	if err := s.OverrideRepo.SaveOverride(&override); err != nil {
		return models.AppAccessOverride{}, err
	}

	if s.Events != nil {
		s.Events.OverrideRevoked(override)
	}
	return override, nil
}

// IsCurrentlyOverridden проверяет наличие действующего разрешения.
// Истечение срока учитывается лениво: запись active с прошедшим
// expires_at считается неактивной, не дожидаясь фонового обхода.
func (s *OverrideService) IsCurrentlyOverridden(childID, packageName string, now time.Time) (bool, models.AppAccessOverride, error) {
	override, err := s.OverrideRepo.FindActiveOverride(childID, packageName)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return false, models.AppAccessOverride{}, nil
		}
		return false, models.AppAccessOverride{}, err
	}
	if !override.IsActiveAt(now) {
		return false, models.AppAccessOverride{}, nil
	}
	return true, override, nil
}

// ActiveOverrides возвращает действующие разрешения ребенка с ленивой
// фильтрацией просроченных записей.
func (s *OverrideService) ActiveOverrides(childID string, now time.Time) ([]models.AppAccessOverride, error) {
	overrides, err := s.OverrideRepo.FindActiveOverrides(childID)
	if err != nil {
		return nil, err
	}
	active := make([]models.AppAccessOverride, 0, len(overrides))
	for _, override := range overrides {
		if override.IsActiveAt(now) {
			active = append(active, override)
		}
	}
	return active, nil
}

// PendingRequests очередь ожидающих запросов ребенка для родителя
func (s *OverrideService) PendingRequests(childID string) ([]models.OverrideRequest, error) {
	return s.OverrideRepo.FindPendingRequests(childID)
}

// ExpireStaleOverrides переводит просроченные active-записи в expired.
// Чистый учет: корректность чтения от этого обхода не зависит.
func (s *OverrideService) ExpireStaleOverrides() (int64, error) {
	return s.OverrideRepo.ExpireStale(s.Now())
}

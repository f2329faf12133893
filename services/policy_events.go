package services

import (
	"log"
	"strconv"
	"time"

	"PinguinPolicy/models"
	"PinguinPolicy/repositories"
)

// FamilyBroadcaster рассылает событие политики всем подключенным
// устройствам семьи (websocket-хаб).
type FamilyBroadcaster interface {
	BroadcastToFamily(familyID, eventType, childID, packageName string, data map[string]string)
}

// PolicyEventService доставляет события жизненного цикла на устройства:
// push-уведомления через FCM и realtime-события через websocket-хаб,
// чтобы устройство ребенка переоценило блокировку сразу, не дожидаясь
// следующего опроса. Вся доставка best-effort.
type PolicyEventService struct {
	Notifications *NotificationService // Может быть nil
	Hub           FamilyBroadcaster    // Может быть nil
	DeviceRepo    repositories.DeviceRepository
}

func NewPolicyEventService(notifications *NotificationService, hub FamilyBroadcaster, deviceRepo repositories.DeviceRepository) *PolicyEventService {
	return &PolicyEventService{Notifications: notifications, Hub: hub, DeviceRepo: deviceRepo}
}

func (s *PolicyEventService) familyID(childID string) string {
	registration, err := s.DeviceRepo.FindByUserID(childID)
	if err != nil {
		log.Printf("[EVENTS] Family lookup failed for child %s: %v", childID, err)
		return ""
	}
	return registration.FamilyID
}

func (s *PolicyEventService) broadcast(childID, eventType, packageName string, data map[string]string) {
	if s.Hub == nil {
		return
	}
	familyID := s.familyID(childID)
	if familyID == "" {
		return
	}
	s.Hub.BroadcastToFamily(familyID, eventType, childID, packageName, data)
}

// RequestCreated уведомляет родителей о новом запросе ребенка
func (s *PolicyEventService) RequestCreated(req models.OverrideRequest) {
	data := map[string]string{
		"request_id":   strconv.FormatUint(uint64(req.ID), 10),
		"package_name": req.PackageName,
		"app_name":     req.AppName,
	}
	if s.Notifications != nil {
		err := s.Notifications.NotifyFamilyParents(req.ChildID,
			"time_request_title", req.AppName, data)
		if err != nil {
			log.Printf("[EVENTS] Parent notification failed for request %d: %v", req.ID, err)
		}
	}
	s.broadcast(req.ChildID, "override_request", req.PackageName, data)
}

// RequestGranted уведомляет устройство ребенка о выданном разрешении
func (s *PolicyEventService) RequestGranted(req models.OverrideRequest, override models.AppAccessOverride) {
	data := map[string]string{
		"package_name": req.PackageName,
		"expires_at":   override.ExpiresAt.Format(time.RFC3339),
	}
	if s.Notifications != nil {
		if err := s.Notifications.NotifyUser(req.ChildID, "time_granted_title", req.AppName, data); err != nil {
			log.Printf("[EVENTS] Child notification failed for request %d: %v", req.ID, err)
		}
	}
	s.broadcast(req.ChildID, "policy_changed", req.PackageName, data)
}

// RequestDenied уведомляет устройство ребенка об отказе
func (s *PolicyEventService) RequestDenied(req models.OverrideRequest) {
	data := map[string]string{"package_name": req.PackageName}
	if s.Notifications != nil {
		if err := s.Notifications.NotifyUser(req.ChildID, "time_denied_title", req.AppName, data); err != nil {
			log.Printf("[EVENTS] Child notification failed for request %d: %v", req.ID, err)
		}
	}
	s.broadcast(req.ChildID, "override_denied", req.PackageName, data)
}

// OverrideRevoked уведомляет устройство ребенка об отзыве разрешения
func (s *PolicyEventService) OverrideRevoked(override models.AppAccessOverride) {
	data := map[string]string{"package_name": override.PackageName}
	if s.Notifications != nil {
		if err := s.Notifications.NotifyUser(override.ChildID, "time_revoked_title", override.PackageName, data); err != nil {
			log.Printf("[EVENTS] Child notification failed for override %d: %v", override.ID, err)
		}
	}
	s.broadcast(override.ChildID, "policy_changed", override.PackageName, data)
}

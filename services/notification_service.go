package services

import (
	"context"
	"fmt"
	"log"

	"PinguinPolicy/repositories"

	firebase "firebase.google.com/go/v4"
	"firebase.google.com/go/v4/messaging"
)

// NotificationService сервис для работы с push-уведомлениями
type NotificationService struct {
	FCMClient  *messaging.Client
	DeviceRepo repositories.DeviceRepository
}

// NewNotificationService создает новый сервис уведомлений
func NewNotificationService(app *firebase.App, deviceRepo repositories.DeviceRepository) (*NotificationService, error) {
	ctx := context.Background()
	client, err := app.Messaging(ctx)
	if err != nil {
		return nil, fmt.Errorf("error initializing FCM client: %w", err)
	}

	return &NotificationService{FCMClient: client, DeviceRepo: deviceRepo}, nil
}

// SendNotification отправляет push-уведомление на устройство
func (s *NotificationService) SendNotification(deviceToken, title, body string, data map[string]string) error {
	if deviceToken == "" {
		return fmt.Errorf("device token is empty")
	}

	message := &messaging.Message{
		Notification: &messaging.Notification{
			Title: title,
			Body:  body,
		},
		Data:  data,
		Token: deviceToken,
	}

	ctx := context.Background()
	resp, err := s.FCMClient.Send(ctx, message)
	if err != nil {
		log.Printf("[FCM] Ошибка отправки уведомления: %v", err)
		return err
	}

	log.Printf("[FCM] Уведомление успешно отправлено. ID: %s, Title: %s", resp, title)
	return nil
}

// NotifyUser отправляет уведомление пользователю по его UID
func (s *NotificationService) NotifyUser(userID, title, body string, data map[string]string) error {
	registration, err := s.DeviceRepo.FindByUserID(userID)
	if err != nil {
		return fmt.Errorf("device registration not found: %w", err)
	}
	if registration.DeviceToken == "" {
		return nil // Пропускаем отправку, если нет токена устройства
	}
	return s.SendNotification(registration.DeviceToken, title, body, data)
}

// NotifyFamilyParents отправляет уведомление всем родителям семьи ребенка
func (s *NotificationService) NotifyFamilyParents(childID, title, body string, data map[string]string) error {
	child, err := s.DeviceRepo.FindByUserID(childID)
	if err != nil {
		return fmt.Errorf("child registration not found: %w", err)
	}

	parents, err := s.DeviceRepo.FindParentsByFamilyID(child.FamilyID)
	if err != nil {
		return err
	}

	for _, parent := range parents {
		if parent.DeviceToken == "" {
			continue
		}
		if err := s.SendNotification(parent.DeviceToken, title, body, data); err != nil {
			log.Printf("[FCM] Error sending notification to parent %s: %v", parent.UserID, err)
		}
	}
	return nil
}

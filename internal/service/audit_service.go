package service

import (
	"context"

	"mindcare-backend/internal/domain/entity"
	"mindcare-backend/internal/domain/repository"

	"github.com/sirupsen/logrus"
)

// AuditService records lifecycle and security events.
// Writes are best-effort: a failed insert is logged and never reaches the caller.
type AuditService interface {
	LogCreate(ctx context.Context, actor entity.Actor, action string, entityName string, entityID string, newValue interface{})
	LogUpdate(ctx context.Context, actor entity.Actor, action string, entityName string, entityID string, oldValue, newValue interface{})
	LogDelete(ctx context.Context, actor entity.Actor, action string, entityName string, entityID string, oldValue interface{})
	LogForbidden(ctx context.Context, actor entity.Actor, entityName string, entityID string, reason string)
}

type auditService struct {
	log       *logrus.Logger
	auditRepo repository.AuditLogRepository
}

func NewAuditService(log *logrus.Logger, auditRepo repository.AuditLogRepository) AuditService {
	return &auditService{
		log:       log,
		auditRepo: auditRepo,
	}
}

// LogCreate logs a create action
func (s *auditService) LogCreate(ctx context.Context, actor entity.Actor, action string, entityName string, entityID string, newValue interface{}) {
	s.write(ctx, actor, action, entity.JSON{
		"entity":    entityName,
		"entity_id": entityID,
		"old_value": nil,
		"new_value": newValue,
	})
}

// LogUpdate logs an update action with old and new values
func (s *auditService) LogUpdate(ctx context.Context, actor entity.Actor, action string, entityName string, entityID string, oldValue, newValue interface{}) {
	s.write(ctx, actor, action, entity.JSON{
		"entity":    entityName,
		"entity_id": entityID,
		"old_value": oldValue,
		"new_value": newValue,
	})
}

// LogDelete logs a delete action with old value
func (s *auditService) LogDelete(ctx context.Context, actor entity.Actor, action string, entityName string, entityID string, oldValue interface{}) {
	s.write(ctx, actor, action, entity.JSON{
		"entity":    entityName,
		"entity_id": entityID,
		"old_value": oldValue,
		"new_value": nil,
	})
}

// LogForbidden records an access attempt that failed the ownership check
func (s *auditService) LogForbidden(ctx context.Context, actor entity.Actor, entityName string, entityID string, reason string) {
	s.log.WithFields(logrus.Fields{
		"user_id":   actor.UserID,
		"user_type": actor.UserType,
		"entity":    entityName,
		"entity_id": entityID,
	}).Warn(reason)

	s.write(ctx, actor, entity.AuditActionForbidden, entity.JSON{
		"entity":    entityName,
		"entity_id": entityID,
		"reason":    reason,
	})
}

func (s *auditService) write(ctx context.Context, actor entity.Actor, action string, metadata entity.JSON) {
	auditLog := &entity.AuditLog{
		UserType: actor.UserType,
		Action:   action,
		Metadata: metadata,
	}
	if actor.UserID != "" {
		userID := actor.UserID
		auditLog.UserID = &userID
	}

	if err := s.auditRepo.Create(ctx, auditLog); err != nil {
		s.log.Warnf("Failed to create audit log: %+v", err)
	}
}

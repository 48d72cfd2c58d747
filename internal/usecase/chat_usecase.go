package usecase

import (
	"context"
	"fmt"
	"time"

	"mindcare-backend/internal/converter"
	"mindcare-backend/internal/delivery/dto"
	"mindcare-backend/internal/domain/entity"
	"mindcare-backend/internal/domain/repository"
	"mindcare-backend/internal/service"
	"mindcare-backend/pkg/apperror"

	"github.com/sirupsen/logrus"
)

var (
	ErrChatSessionNotFound = apperror.NotFound("chat session not found")
	ErrChatSessionAccess   = apperror.Forbidden("you do not have access to this chat session")
	ErrChatPatientOnly     = apperror.Forbidden("only patients can start chat sessions")
)

type ChatUsecase interface {
	CreateSession(ctx context.Context, actor entity.Actor, req *dto.CreateChatSessionRequest) (*dto.ChatSessionResponse, error)
	ListSessions(ctx context.Context, actor entity.Actor) (*dto.ChatSessionListResponse, error)
	GetSession(ctx context.Context, sessionID string, actor entity.Actor) (*dto.ChatSessionResponse, error)
	SendMessage(ctx context.Context, sessionID string, actor entity.Actor, req *dto.SendChatMessageRequest) (*dto.ChatReplyResponse, error)
}

type chatUsecase struct {
	log          *logrus.Logger
	chatRepo     repository.ChatSessionRepository
	alertRepo    repository.AlertRepository
	assistant    *service.AssistantService
	auditService service.AuditService
	now          func() time.Time
}

func NewChatUsecase(
	log *logrus.Logger,
	chatRepo repository.ChatSessionRepository,
	alertRepo repository.AlertRepository,
	assistant *service.AssistantService,
	auditService service.AuditService,
) ChatUsecase {
	return &chatUsecase{
		log:          log,
		chatRepo:     chatRepo,
		alertRepo:    alertRepo,
		assistant:    assistant,
		auditService: auditService,
		now:          time.Now,
	}
}

// CreateSession opens a session seeded with the assistant's greeting
func (u *chatUsecase) CreateSession(ctx context.Context, actor entity.Actor, req *dto.CreateChatSessionRequest) (*dto.ChatSessionResponse, error) {
	if !actor.IsPatient() {
		return nil, ErrChatPatientOnly
	}

	now := u.now().UTC()
	title := req.Title
	if title == "" {
		title = "Chat session " + now.Format(entity.DateLayout)
	}

	greeting := u.assistant.Greeting()
	opening := entity.NewChatMessage(entity.ChatSenderAI, greeting.Text, now)
	opening.Options = greeting.Options

	session := &entity.ChatSession{
		PatientID: actor.UserID,
		Title:     title,
		Messages:  entity.ChatMessages{opening},
		Status:    entity.ChatSessionStatusActive,
	}
	if req.DoctorID != "" {
		doctorID := req.DoctorID
		session.DoctorID = &doctorID
	}

	if err := u.chatRepo.Create(ctx, session); err != nil {
		u.log.Warnf("Failed to create chat session: %+v", err)
		return nil, err
	}

	return converter.ChatSessionToResponse(session), nil
}

func (u *chatUsecase) ListSessions(ctx context.Context, actor entity.Actor) (*dto.ChatSessionListResponse, error) {
	sessions, err := u.chatRepo.FindByPatientID(ctx, actor.UserID)
	if err != nil {
		u.log.Warnf("Failed to list chat sessions for %s: %+v", actor.UserID, err)
		return nil, err
	}

	return &dto.ChatSessionListResponse{
		Sessions: converter.ChatSessionsToResponses(sessions),
		Total:    len(sessions),
	}, nil
}

func (u *chatUsecase) GetSession(ctx context.Context, sessionID string, actor entity.Actor) (*dto.ChatSessionResponse, error) {
	session, err := u.ownedSession(ctx, sessionID, actor)
	if err != nil {
		return nil, err
	}
	return converter.ChatSessionToResponse(session), nil
}

// SendMessage appends the patient's message and the assistant's reply.
// Crisis language also raises a high-priority emergency alert for the session's doctor.
func (u *chatUsecase) SendMessage(ctx context.Context, sessionID string, actor entity.Actor, req *dto.SendChatMessageRequest) (*dto.ChatReplyResponse, error) {
	session, err := u.ownedSession(ctx, sessionID, actor)
	if err != nil {
		return nil, err
	}
	if session.Status != entity.ChatSessionStatusActive {
		return nil, apperror.InvalidState("chat session is closed", string(session.Status))
	}

	now := u.now().UTC()
	reply := u.assistant.Respond(req.Content)

	userMessage := entity.NewChatMessage(entity.ChatSenderUser, req.Content, now)
	userMessage.Metadata = &entity.ChatMessageMetadata{Emotion: reply.Topic, RiskLevel: reply.RiskLevel}

	aiMessage := entity.NewChatMessage(entity.ChatSenderAI, reply.Text, now)
	aiMessage.Options = reply.Options

	session.Messages = append(session.Messages, userMessage, aiMessage)
	if err := u.chatRepo.Save(ctx, session); err != nil {
		u.log.Warnf("Failed to save chat session %s: %+v", sessionID, err)
		return nil, err
	}

	if reply.RiskLevel == entity.RiskLevelHigh {
		u.raiseCrisisAlert(ctx, session, actor)
	}

	return &dto.ChatReplyResponse{
		UserMessage: converter.ChatMessageToResponse(userMessage),
		Reply:       converter.ChatMessageToResponse(aiMessage),
	}, nil
}

func (u *chatUsecase) raiseCrisisAlert(ctx context.Context, session *entity.ChatSession, actor entity.Actor) {
	u.log.WithFields(logrus.Fields{
		"session_id": session.ID,
		"patient_id": session.PatientID,
	}).Warn("Crisis language detected in chat session")

	if session.DoctorID == nil {
		return
	}

	name := actor.Name
	if name == "" {
		name = "A patient"
	}
	alert := &entity.Alert{
		DoctorID:    *session.DoctorID,
		PatientID:   session.PatientID,
		PatientName: actor.Name,
		Recipient:   entity.AlertRecipientDoctor,
		Type:        entity.AlertTypeEmergency,
		Message:     fmt.Sprintf("%s used crisis language in a support chat", name),
		Priority:    entity.AlertPriorityHigh,
	}
	if err := u.alertRepo.Create(ctx, alert); err != nil {
		u.log.Warnf("Failed to create crisis alert for session %s: %+v", session.ID, err)
	}
}

func (u *chatUsecase) ownedSession(ctx context.Context, sessionID string, actor entity.Actor) (*entity.ChatSession, error) {
	session, err := u.chatRepo.FindByID(ctx, sessionID)
	if err != nil {
		u.log.Warnf("Failed to find chat session %s: %+v", sessionID, err)
		return nil, err
	}
	if session == nil {
		return nil, ErrChatSessionNotFound
	}
	if session.PatientID != actor.UserID {
		u.auditService.LogForbidden(ctx, actor, "chat_session", sessionID, ErrChatSessionAccess.Message)
		return nil, ErrChatSessionAccess
	}
	return session, nil
}

package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"mindcare-backend/internal/delivery/dto"
	"mindcare-backend/internal/domain/entity"
	"mindcare-backend/internal/domain/repository/repotest"
	"mindcare-backend/internal/service"
	"mindcare-backend/pkg/apperror"
)

func newChatFixture(t *testing.T) (*chatUsecase, *repotest.ChatSessionRepo, *repotest.AlertRepo) {
	t.Helper()
	log := quietLogger()
	chats := repotest.NewChatSessionRepo()
	alerts := repotest.NewAlertRepo()
	uc := NewChatUsecase(log, chats, alerts, service.NewAssistantService(), service.NewAuditService(log, repotest.NewAuditLogRepo())).(*chatUsecase)
	at := mustTime(t, "2025-03-01 10:00")
	uc.now = func() time.Time { return at }
	return uc, chats, alerts
}

func TestChat_CreateSessionSeedsGreeting(t *testing.T) {
	uc, _, _ := newChatFixture(t)

	got, err := uc.CreateSession(context.Background(), patientActor, &dto.CreateChatSessionRequest{})
	if err != nil {
		t.Fatal(err)
	}
	if got.Title != "Chat session 2025-03-01" || got.Status != "active" {
		t.Errorf("session = %+v", got)
	}
	if len(got.Messages) != 1 || got.Messages[0].Sender != "ai" || len(got.Messages[0].Options) == 0 {
		t.Errorf("messages = %+v", got.Messages)
	}

	if _, err := uc.CreateSession(context.Background(), doctorActor, &dto.CreateChatSessionRequest{}); !errors.Is(err, ErrChatPatientOnly) {
		t.Errorf("doctor err = %v", err)
	}
}

func TestChat_SendMessageAppendsReply(t *testing.T) {
	uc, chats, alerts := newChatFixture(t)
	ctx := context.Background()
	session, err := uc.CreateSession(ctx, patientActor, &dto.CreateChatSessionRequest{DoctorID: "doc-1"})
	if err != nil {
		t.Fatal(err)
	}

	reply, err := uc.SendMessage(ctx, session.ID, patientActor, &dto.SendChatMessageRequest{Content: "I have been so anxious about work lately"})
	if err != nil {
		t.Fatal(err)
	}
	if reply.UserMessage.Emotion != service.TopicAnxiety || reply.UserMessage.RiskLevel != "medium" {
		t.Errorf("user message = %+v", reply.UserMessage)
	}
	if reply.Reply.Sender != "ai" {
		t.Errorf("reply sender = %s", reply.Reply.Sender)
	}
	if n := len(chats.Sessions[session.ID].Messages); n != 3 {
		t.Errorf("stored messages = %d, want 3", n)
	}
	if len(alerts.Alerts) != 0 {
		t.Errorf("alerts = %d, want none", len(alerts.Alerts))
	}

	if _, err := uc.SendMessage(ctx, session.ID, otherPatient, &dto.SendChatMessageRequest{Content: "hello there"}); !errors.Is(err, ErrChatSessionAccess) {
		t.Errorf("other patient err = %v", err)
	}
}

func TestChat_CrisisRaisesEmergencyAlert(t *testing.T) {
	uc, _, alerts := newChatFixture(t)
	ctx := context.Background()
	session, err := uc.CreateSession(ctx, patientActor, &dto.CreateChatSessionRequest{DoctorID: "doc-1"})
	if err != nil {
		t.Fatal(err)
	}

	reply, err := uc.SendMessage(ctx, session.ID, patientActor, &dto.SendChatMessageRequest{Content: "Sometimes I think about self harm"})
	if err != nil {
		t.Fatal(err)
	}
	if reply.UserMessage.RiskLevel != "high" {
		t.Errorf("risk = %s, want high", reply.UserMessage.RiskLevel)
	}

	got := alerts.Unread(entity.AlertRecipientDoctor)
	if len(got) != 1 || got[0].Type != entity.AlertTypeEmergency || got[0].Priority != entity.AlertPriorityHigh || got[0].DoctorID != "doc-1" {
		t.Errorf("alerts = %+v", got)
	}
}

func TestChat_ClosedSession(t *testing.T) {
	uc, chats, _ := newChatFixture(t)
	chats.Sessions["closed"] = &entity.ChatSession{ID: "closed", PatientID: "pat-1", Status: entity.ChatSessionStatusCompleted}

	_, err := uc.SendMessage(context.Background(), "closed", patientActor, &dto.SendChatMessageRequest{Content: "hello again"})
	if apperror.KindOf(err) != apperror.KindInvalidState {
		t.Errorf("err = %v, want invalid state", err)
	}
	if _, err := uc.GetSession(context.Background(), "missing", patientActor); !errors.Is(err, ErrChatSessionNotFound) {
		t.Errorf("missing err = %v", err)
	}
}

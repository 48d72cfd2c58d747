package usecase

import (
	"context"
	"errors"
	"testing"

	"mindcare-backend/internal/delivery/dto"
	"mindcare-backend/internal/domain/entity"
	"mindcare-backend/internal/domain/repository/repotest"
	"mindcare-backend/internal/service"
)

func TestMessages_SendListMarkRead(t *testing.T) {
	log := quietLogger()
	messages := repotest.NewMessageRepo()
	uc := NewMessageUsecase(log, messages, service.NewAuditService(log, repotest.NewAuditLogRepo()))
	ctx := context.Background()

	sent, err := uc.SendMessage(ctx, patientActor, &dto.SendMessageRequest{ReceiverID: "user-doc-1", Content: "See you Monday"})
	if err != nil {
		t.Fatal(err)
	}
	if sent.Type != string(entity.MessageTypeText) || sent.SenderType != "patient" || sent.SenderName != "Jane Roe" {
		t.Errorf("sent = %+v", sent)
	}
	if _, err := uc.SendMessage(ctx, doctorActor, &dto.SendMessageRequest{ReceiverID: "pat-1", Content: "Confirmed", Type: "appointment"}); err != nil {
		t.Fatal(err)
	}
	if _, err := uc.SendMessage(ctx, patientActor, &dto.SendMessageRequest{ReceiverID: "pat-1", Content: "note to self"}); !errors.Is(err, ErrMessageToSelf) {
		t.Errorf("self err = %v", err)
	}

	inbox, err := uc.ListMessages(ctx, doctorActor, "")
	if err != nil || inbox.Total != 1 {
		t.Fatalf("inbox = %+v, %v", inbox, err)
	}
	thread, err := uc.ListMessages(ctx, patientActor, "user-doc-1")
	if err != nil || thread.Total != 2 {
		t.Errorf("thread = %+v, %v", thread, err)
	}

	if err := uc.MarkRead(ctx, patientActor, sent.ID); !errors.Is(err, ErrNotMessageTarget) {
		t.Errorf("sender mark err = %v", err)
	}
	if err := uc.MarkRead(ctx, doctorActor, sent.ID); err != nil {
		t.Fatal(err)
	}
	if n, _ := messages.CountUnread(ctx, "user-doc-1"); n != 0 {
		t.Errorf("unread = %d, want 0", n)
	}
	if err := uc.MarkRead(ctx, doctorActor, "missing"); !errors.Is(err, ErrMessageNotFound) {
		t.Errorf("missing err = %v", err)
	}
}

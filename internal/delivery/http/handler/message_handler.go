package handler

import (
	"net/http"

	"mindcare-backend/internal/delivery/dto"
	"mindcare-backend/internal/usecase"
	"mindcare-backend/pkg/response"
	"mindcare-backend/pkg/validator"

	"github.com/gorilla/mux"
)

type MessageHandler struct {
	messageUsecase usecase.MessageUsecase
	validator      *validator.CustomValidator
}

func NewMessageHandler(messageUsecase usecase.MessageUsecase, validator *validator.CustomValidator) *MessageHandler {
	return &MessageHandler{
		messageUsecase: messageUsecase,
		validator:      validator,
	}
}

func (h *MessageHandler) SendMessage(w http.ResponseWriter, r *http.Request) {
	actor, ok := currentActor(w, r)
	if !ok {
		return
	}

	var req dto.SendMessageRequest
	if !decodeAndValidate(w, r, h.validator, &req) {
		return
	}

	message, err := h.messageUsecase.SendMessage(r.Context(), actor, &req)
	if err != nil {
		response.AppError(w, err)
		return
	}

	response.Success(w, http.StatusCreated, "Message sent", message)
}

func (h *MessageHandler) GetMessages(w http.ResponseWriter, r *http.Request) {
	actor, ok := currentActor(w, r)
	if !ok {
		return
	}

	messages, err := h.messageUsecase.ListMessages(r.Context(), actor, r.URL.Query().Get("conversationWith"))
	if err != nil {
		response.AppError(w, err)
		return
	}

	response.Success(w, http.StatusOK, "Messages retrieved successfully", messages)
}

func (h *MessageHandler) MarkMessageRead(w http.ResponseWriter, r *http.Request) {
	actor, ok := currentActor(w, r)
	if !ok {
		return
	}

	if err := h.messageUsecase.MarkRead(r.Context(), actor, mux.Vars(r)["id"]); err != nil {
		response.AppError(w, err)
		return
	}

	response.Success(w, http.StatusOK, "Message marked as read", nil)
}

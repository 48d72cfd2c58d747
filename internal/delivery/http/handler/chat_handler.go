package handler

import (
	"net/http"

	"mindcare-backend/internal/delivery/dto"
	"mindcare-backend/internal/usecase"
	"mindcare-backend/pkg/response"
	"mindcare-backend/pkg/validator"

	"github.com/gorilla/mux"
)

type ChatHandler struct {
	chatUsecase usecase.ChatUsecase
	validator   *validator.CustomValidator
}

func NewChatHandler(chatUsecase usecase.ChatUsecase, validator *validator.CustomValidator) *ChatHandler {
	return &ChatHandler{
		chatUsecase: chatUsecase,
		validator:   validator,
	}
}

func (h *ChatHandler) CreateSession(w http.ResponseWriter, r *http.Request) {
	actor, ok := currentActor(w, r)
	if !ok {
		return
	}

	var req dto.CreateChatSessionRequest
	if r.ContentLength != 0 && !decodeAndValidate(w, r, h.validator, &req) {
		return
	}

	session, err := h.chatUsecase.CreateSession(r.Context(), actor, &req)
	if err != nil {
		response.AppError(w, err)
		return
	}

	response.Success(w, http.StatusCreated, "Chat session started", session)
}

func (h *ChatHandler) GetSessions(w http.ResponseWriter, r *http.Request) {
	actor, ok := currentActor(w, r)
	if !ok {
		return
	}

	sessions, err := h.chatUsecase.ListSessions(r.Context(), actor)
	if err != nil {
		response.AppError(w, err)
		return
	}

	response.Success(w, http.StatusOK, "Chat sessions retrieved successfully", sessions)
}

func (h *ChatHandler) GetSession(w http.ResponseWriter, r *http.Request) {
	actor, ok := currentActor(w, r)
	if !ok {
		return
	}

	session, err := h.chatUsecase.GetSession(r.Context(), mux.Vars(r)["id"], actor)
	if err != nil {
		response.AppError(w, err)
		return
	}

	response.Success(w, http.StatusOK, "Chat session retrieved successfully", session)
}

func (h *ChatHandler) SendMessage(w http.ResponseWriter, r *http.Request) {
	actor, ok := currentActor(w, r)
	if !ok {
		return
	}

	var req dto.SendChatMessageRequest
	if !decodeAndValidate(w, r, h.validator, &req) {
		return
	}

	reply, err := h.chatUsecase.SendMessage(r.Context(), mux.Vars(r)["id"], actor, &req)
	if err != nil {
		response.AppError(w, err)
		return
	}

	response.Success(w, http.StatusOK, "Message sent", reply)
}

package handler

import (
	"net/http"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	apperrors "advising/internal/errors"
	"advising/internal/model"
)

func TestMessageHandler_Send(t *testing.T) {
	e := newTestEcho()
	svc := new(MockMessageService)
	h := NewMessageHandler(svc)
	session := studentSession()
	advisorID := uuid.New()

	svc.On("Send", mock.Anything, *session, advisorID, "hello").
		Return(&model.Message{Content: "hello", RecipientID: advisorID}, nil)

	rec := call(e, h.Send, http.MethodPost, "/api/student/messages",
		`{"recipientId":"`+advisorID.String()+`","content":"hello"}`, session)

	assert.Equal(t, http.StatusCreated, rec.Code)
	svc.AssertExpectations(t)
}

func TestMessageHandler_Send_Rejected(t *testing.T) {
	e := newTestEcho()
	svc := new(MockMessageService)
	h := NewMessageHandler(svc)
	svc.On("Send", mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		Return(nil, apperrors.Validation("messages are exchanged between students and staff"))

	rec := call(e, h.Send, http.MethodPost, "/api/student/messages",
		`{"recipientId":"`+uuid.NewString()+`","content":"hi"}`, studentSession())

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "VALIDATION_ERROR", decodeError(t, rec).Code)
}

func TestMessageHandler_Conversation(t *testing.T) {
	e := newTestEcho()
	svc := new(MockMessageService)
	h := NewMessageHandler(svc)
	session := studentSession()

	svc.On("Conversation", mock.Anything, uuid.MustParse(session.ID)).Return([]model.Message{{Content: "hi"}}, nil)
	svc.On("Contacts", mock.Anything, *session).Return([]model.User{{Name: "Grace", Role: model.RoleAdvisor}}, nil)

	rec := call(e, h.Conversation, http.MethodGet, "/api/student/messages", "", session)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"content":"hi"`)
	assert.Contains(t, rec.Body.String(), `"name":"Grace"`)
}

func TestMessageHandler_Recent(t *testing.T) {
	e := newTestEcho()
	svc := new(MockMessageService)
	h := NewMessageHandler(svc)
	svc.On("Recent", mock.Anything, 5).Return([]model.Message{}, nil)

	rec := call(e, h.Recent, http.MethodGet, "/api/admin/messages?limit=5", "", adminSession())
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = call(e, h.Recent, http.MethodGet, "/api/admin/messages?limit=lots", "", adminSession())
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

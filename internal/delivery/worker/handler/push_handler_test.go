package handler

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"condor/config"
	"condor/internal/domain/entity"
	"condor/internal/domain/service"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeDeviceRepo struct {
	devices []*entity.UserDevice
	deleted []string
}

func (r *fakeDeviceRepo) Upsert(ctx context.Context, device *entity.UserDevice) error {
	r.devices = append(r.devices, device)

	return nil
}

func (r *fakeDeviceRepo) ListByUser(ctx context.Context, userID int64) ([]*entity.UserDevice, error) {
	var out []*entity.UserDevice
	for _, device := range r.devices {
		if device.UserID == userID {
			out = append(out, device)
		}
	}

	return out, nil
}

func (r *fakeDeviceRepo) DeleteByToken(ctx context.Context, token string) error {
	r.deleted = append(r.deleted, token)

	return nil
}

type fakePushSender struct {
	tokens        []string
	title         string
	body          string
	data          map[string]string
	invalidTokens []string
}

func (s *fakePushSender) SendToTokens(ctx context.Context, tokens []string, title, body string, data map[string]string) (int, int, []string, error) {
	s.tokens = tokens
	s.title = title
	s.body = body
	s.data = data

	return len(tokens) - len(s.invalidTokens), len(s.invalidTokens), s.invalidTokens, nil
}

func newPushRequest(t *testing.T, event *service.PurchaseEvent) *http.Request {
	t.Helper()

	payload, err := json.Marshal(event)
	require.NoError(t, err)

	var msg PubSubMessage
	msg.Message.Data = base64.StdEncoding.EncodeToString(payload)
	msg.Message.MessageID = "1"
	msg.Subscription = "projects/local/subscriptions/purchase-sub"

	body, err := json.Marshal(msg)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, "/push", bytes.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)

	return req
}

func createTestPushHandler(repo *fakeDeviceRepo, sender service.PushSender) *PushHandler {
	return NewPushHandler(PushHandlerParams{
		Config:     &config.Config{},
		Logger:     slog.New(slog.NewTextHandler(io.Discard, nil)),
		DeviceRepo: repo,
		PushSender: sender,
	})
}

func TestPushHandler_HandlePush_DeliversToUserDevices(t *testing.T) {
	repo := &fakeDeviceRepo{devices: []*entity.UserDevice{
		{ID: 1, UserID: 7, FCMToken: "token-a", Platform: "android"},
		{ID: 2, UserID: 7, FCMToken: "token-b", Platform: "ios"},
		{ID: 3, UserID: 9, FCMToken: "token-other", Platform: "ios"},
	}}
	sender := &fakePushSender{invalidTokens: []string{"token-b"}}
	h := createTestPushHandler(repo, sender)

	e := echo.New()
	rec := httptest.NewRecorder()
	c := e.NewContext(newPushRequest(t, &service.PurchaseEvent{
		PurchaseID:     42,
		UserID:         7,
		Total:          22.79,
		CashbackEarned: 1.14,
	}), rec)

	require.NoError(t, h.HandlePush(c))
	assert.Equal(t, http.StatusOK, rec.Code)

	assert.Equal(t, []string{"token-a", "token-b"}, sender.tokens)
	assert.Equal(t, "Compra Confirmada", sender.title)
	assert.Contains(t, sender.body, "R$ 22,79")
	assert.Contains(t, sender.body, "R$ 1,14")
	assert.Equal(t, "42", sender.data["purchase_id"])

	// Dead tokens reported by FCM are pruned.
	assert.Equal(t, []string{"token-b"}, repo.deleted)
}

func TestPushHandler_HandlePush_NoDevicesIsAck(t *testing.T) {
	repo := &fakeDeviceRepo{}
	sender := &fakePushSender{}
	h := createTestPushHandler(repo, sender)

	e := echo.New()
	rec := httptest.NewRecorder()
	c := e.NewContext(newPushRequest(t, &service.PurchaseEvent{PurchaseID: 1, UserID: 5}), rec)

	require.NoError(t, h.HandlePush(c))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Empty(t, sender.tokens)
}

func TestPushHandler_HandlePush_BadPayloadIsDropped(t *testing.T) {
	h := createTestPushHandler(&fakeDeviceRepo{}, &fakePushSender{})

	msg := PubSubMessage{}
	msg.Message.Data = "not-base64!"
	body, err := json.Marshal(msg)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, "/push", bytes.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)

	e := echo.New()
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	require.NoError(t, h.HandlePush(c))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestPushHandler_HandlePush_NoSenderConfigured(t *testing.T) {
	repo := &fakeDeviceRepo{devices: []*entity.UserDevice{
		{ID: 1, UserID: 7, FCMToken: "token-a", Platform: "android"},
	}}
	h := createTestPushHandler(repo, nil)

	e := echo.New()
	rec := httptest.NewRecorder()
	c := e.NewContext(newPushRequest(t, &service.PurchaseEvent{PurchaseID: 1, UserID: 7}), rec)

	// Without a sender the event is acknowledged and dropped, never retried.
	require.NoError(t, h.HandlePush(c))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Empty(t, repo.deleted)
}

package handler

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"condor/config"
	deliverycontext "condor/internal/delivery/context"
	"condor/internal/domain/constants"
	"condor/internal/domain/repository"
	"condor/internal/domain/service"
	"condor/internal/util"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
	"go.uber.org/fx"
	"google.golang.org/api/idtoken"
)

// PubSubMessage represents the structure of a Pub/Sub push message
type PubSubMessage struct {
	Message struct {
		Data        string            `json:"data"`
		Attributes  map[string]string `json:"attributes,omitempty"`
		MessageID   string            `json:"messageId"`
		PublishTime string            `json:"publishTime"`
	} `json:"message"`
	Subscription string `json:"subscription"`
}

// PushHandler consumes purchase events and fans them out as push
// notifications to the buyer's registered devices.
type PushHandler struct {
	verifyPushAuth bool
	logger         *slog.Logger
	deviceRepo     repository.DeviceRepository
	pushSender     service.PushSender
}

// PushHandlerParams holds dependencies for the PushHandler
type PushHandlerParams struct {
	fx.In

	Config     *config.Config
	Logger     *slog.Logger
	DeviceRepo repository.DeviceRepository
	PushSender service.PushSender `optional:"true"`
}

// NewPushHandler creates a new Pub/Sub push handler
func NewPushHandler(params PushHandlerParams) *PushHandler {
	verifyPushAuth := params.Config.PubSub != nil &&
		params.Config.PubSub.Provider == constants.PubSubProviderGoogle &&
		params.Config.PubSub.VerifyPushAuth

	return &PushHandler{
		verifyPushAuth: verifyPushAuth,
		logger:         params.Logger,
		deviceRepo:     params.DeviceRepo,
		pushSender:     params.PushSender,
	}
}

// HandlePush handles incoming Pub/Sub push messages. Pub/Sub retries on
// non-2xx, so unrecoverable payloads return 200 to drop the message.
func (h *PushHandler) HandlePush(c echo.Context) error {
	ctx := c.Request().Context()

	if h.verifyPushAuth {
		if err := verifyPubSubToken(c.Request()); err != nil {
			h.logger.Warn("[Worker] Invalid Pub/Sub token", slog.Any("error", err))

			return c.NoContent(http.StatusUnauthorized)
		}
	}

	var pushMsg PubSubMessage
	if err := c.Bind(&pushMsg); err != nil {
		h.logger.Error("[Worker] Failed to parse push message", slog.Any("error", err))

		return c.NoContent(http.StatusBadRequest)
	}

	data, err := base64.StdEncoding.DecodeString(pushMsg.Message.Data)
	if err != nil {
		h.logger.Error("[Worker] Failed to decode message data", slog.Any("error", err))

		return c.NoContent(http.StatusBadRequest)
	}

	var event service.PurchaseEvent
	if err := json.Unmarshal(data, &event); err != nil {
		h.logger.Error("[Worker] Failed to parse purchase event", slog.Any("error", err))

		return c.NoContent(http.StatusBadRequest)
	}

	requestID := h.extractRequestID(ctx, &pushMsg, &event)
	reqLogger := h.logger.With(slog.String("request_id", requestID))
	ctx = deliverycontext.WithRequestID(ctx, requestID)
	ctx = deliverycontext.WithLogger(ctx, reqLogger)

	reqLogger.Info("[Worker] Processing purchase event",
		slog.Int64("purchase_id", event.PurchaseID),
		slog.Int64("user_id", event.UserID),
	)

	if err := h.processPurchase(ctx, &event); err != nil {
		reqLogger.Error("[Worker] Failed to process purchase event",
			slog.Int64("purchase_id", event.PurchaseID),
			slog.Any("error", err),
		)

		// Ask Pub/Sub to redeliver transient failures.
		return c.NoContent(http.StatusInternalServerError)
	}

	return c.NoContent(http.StatusOK)
}

// extractRequestID resolves the request id for distributed tracing.
// Priority: message attributes > event field > existing context.
func (h *PushHandler) extractRequestID(ctx context.Context, pushMsg *PubSubMessage, event *service.PurchaseEvent) string {
	if requestID, ok := pushMsg.Message.Attributes["request_id"]; ok && requestID != "" {
		return requestID
	}

	if event.RequestID != "" {
		return event.RequestID
	}

	if requestID := deliverycontext.GetRequestIDFromContext(ctx); requestID != "" {
		return requestID
	}

	return uuid.New().String()
}

// processPurchase sends the confirmation push to every device of the buyer
// and prunes tokens Firebase reports as dead.
func (h *PushHandler) processPurchase(ctx context.Context, event *service.PurchaseEvent) error {
	logger := deliverycontext.GetLoggerOrDefault(ctx, h.logger)

	if h.pushSender == nil {
		logger.Warn("[Worker] Push sender not configured, dropping event",
			slog.Int64("purchase_id", event.PurchaseID),
		)

		return nil
	}

	devices, err := h.deviceRepo.ListByUser(ctx, event.UserID)
	if err != nil {
		return errors.WithStack(err)
	}

	if len(devices) == 0 {
		logger.Info("[Worker] No devices registered for user",
			slog.Int64("user_id", event.UserID),
		)

		return nil
	}

	tokens := make([]string, 0, len(devices))
	for _, device := range devices {
		tokens = append(tokens, device.FCMToken)
	}

	title := "Compra Confirmada"
	body := fmt.Sprintf("Sua compra de %s foi confirmada. Você ganhou %s de cashback!",
		util.FormatBRL(event.Total), util.FormatBRL(event.CashbackEarned))
	data := map[string]string{
		"type":        "purchase",
		"purchase_id": strconv.FormatInt(event.PurchaseID, 10),
	}

	sent, failed, invalidTokens, err := h.pushSender.SendToTokens(ctx, tokens, title, body, data)
	if err != nil {
		return errors.WithStack(err)
	}

	for _, token := range invalidTokens {
		if deleteErr := h.deviceRepo.DeleteByToken(ctx, token); deleteErr != nil {
			logger.Warn("[Worker] Failed to prune invalid device token",
				slog.Any("error", deleteErr),
			)
		}
	}

	logger.Info("[Worker] Purchase push delivered",
		slog.Int64("purchase_id", event.PurchaseID),
		slog.Int("sent", sent),
		slog.Int("failed", failed),
		slog.Int("pruned", len(invalidTokens)),
	)

	return nil
}

// verifyPubSubToken verifies the Google-signed OIDC token attached to
// push requests when push auth is enabled.
func verifyPubSubToken(req *http.Request) error {
	authHeader := req.Header.Get("Authorization")
	if authHeader == "" {
		return errors.New("missing authorization header")
	}

	const bearerPrefix = "Bearer "
	if !strings.HasPrefix(authHeader, bearerPrefix) {
		return errors.New("invalid authorization header format")
	}
	token := strings.TrimPrefix(authHeader, bearerPrefix)

	// The audience is the URL of this push endpoint.
	scheme := "https"
	if req.TLS == nil {
		scheme = "http"
	}
	audience := fmt.Sprintf("%s://%s%s", scheme, req.Host, req.URL.Path)

	payload, err := idtoken.Validate(req.Context(), token, audience)
	if err != nil {
		return errors.Wrap(err, "failed to validate token")
	}

	if payload.Issuer != "accounts.google.com" && payload.Issuer != "https://accounts.google.com" {
		return errors.Errorf("invalid issuer: %s", payload.Issuer)
	}

	if emailVerified, ok := payload.Claims["email_verified"].(bool); ok && !emailVerified {
		return errors.New("email not verified")
	}

	return nil
}

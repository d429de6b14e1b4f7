package main

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"encoding/json"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/eventpulse/eventpulse/model"
	"github.com/eventpulse/eventpulse/repository"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// webhookTolerance bounds how old a delivery timestamp may be before it is
// rejected as a replay.
const webhookTolerance = 5 * time.Minute

// WebhookHandler receives identity-provider webhooks and keeps the local
// user table in sync. Authentication itself stays with the provider; this
// endpoint only mirrors user records.
type WebhookHandler struct {
	users  repository.UserRepository
	secret string
	logger *zap.Logger
}

func NewWebhookHandler(users repository.UserRepository, secret string, logger *zap.Logger) *WebhookHandler {
	return &WebhookHandler{
		users:  users,
		secret: secret,
		logger: logger,
	}
}

type webhookEvent struct {
	Type string `json:"type"`
	Data struct {
		ID             string `json:"id"`
		Username       string `json:"username"`
		FirstName      string `json:"first_name"`
		LastName       string `json:"last_name"`
		EmailAddresses []struct {
			EmailAddress string `json:"email_address"`
		} `json:"email_addresses"`
	} `json:"data"`
}

// HandleUserSync verifies the delivery signature and upserts the user on
// user.created and user.updated events. Other event types are
// acknowledged and ignored.
func (h *WebhookHandler) HandleUserSync(c *gin.Context) {
	payload, err := io.ReadAll(c.Request.Body)
	if err != nil {
		c.JSON(http.StatusBadRequest, model.ErrorResponse{
			Error:   "invalid_payload",
			Message: "Failed to read webhook payload",
		})
		return
	}

	msgID := c.GetHeader("svix-id")
	timestamp := c.GetHeader("svix-timestamp")
	signature := c.GetHeader("svix-signature")
	if msgID == "" || timestamp == "" || signature == "" {
		c.JSON(http.StatusBadRequest, model.ErrorResponse{
			Error:   "invalid_signature",
			Message: "Missing webhook signature headers",
		})
		return
	}

	if !h.verifySignature(msgID, timestamp, payload, signature) {
		h.logger.Warn("webhook signature verification failed", zap.String("msg_id", msgID))
		c.JSON(http.StatusBadRequest, model.ErrorResponse{
			Error:   "invalid_signature",
			Message: "Invalid webhook signature",
		})
		return
	}

	var evt webhookEvent
	if err := json.Unmarshal(payload, &evt); err != nil {
		c.JSON(http.StatusBadRequest, model.ErrorResponse{
			Error:   "invalid_payload",
			Message: "Malformed webhook payload",
		})
		return
	}

	if evt.Type != "user.created" && evt.Type != "user.updated" {
		c.JSON(http.StatusOK, model.MessageResponse{Message: "Webhook received"})
		return
	}

	email := ""
	if len(evt.Data.EmailAddresses) > 0 {
		email = evt.Data.EmailAddresses[0].EmailAddress
	}
	if email == "" {
		c.JSON(http.StatusBadRequest, model.ErrorResponse{
			Error:   "invalid_payload",
			Message: "Webhook user has no email address",
		})
		return
	}

	fullName := evt.Data.Username
	if fullName == "" {
		fullName = strings.TrimSpace(evt.Data.FirstName + " " + evt.Data.LastName)
	}
	if fullName == "" {
		fullName = "User"
	}

	user, err := h.users.UpsertUser(model.CreateUserRequest{
		ID:       evt.Data.ID,
		FullName: fullName,
		Email:    email,
		Username: evt.Data.Username,
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, model.ErrorResponse{
			Error:   "internal_error",
			Message: "Failed to sync user",
		})
		return
	}

	h.logger.Info("user synced from webhook",
		zap.String("user_id", user.ID),
		zap.String("email", user.Email))

	c.JSON(http.StatusOK, model.MessageResponse{Message: "Webhook received"})
}

// verifySignature checks the svix scheme: HMAC-SHA256 over
// "{id}.{timestamp}.{payload}" with the base64 secret, compared against
// each "v1,<sig>" entry in the signature header. The timestamp must fall
// within the replay tolerance.
func (h *WebhookHandler) verifySignature(msgID, timestamp string, payload []byte, header string) bool {
	ts, err := strconv.ParseInt(timestamp, 10, 64)
	if err != nil {
		return false
	}
	age := time.Since(time.Unix(ts, 0))
	if age > webhookTolerance || age < -webhookTolerance {
		return false
	}

	secret := strings.TrimPrefix(h.secret, "whsec_")
	key, err := base64.StdEncoding.DecodeString(secret)
	if err != nil {
		// Secrets issued without the base64 envelope are used as-is.
		key = []byte(secret)
	}

	mac := hmac.New(sha256.New, key)
	mac.Write([]byte(msgID + "." + timestamp + "."))
	mac.Write(payload)
	expected := base64.StdEncoding.EncodeToString(mac.Sum(nil))

	for _, part := range strings.Split(header, " ") {
		version, sig, found := strings.Cut(part, ",")
		if !found || version != "v1" {
			continue
		}
		if hmac.Equal([]byte(sig), []byte(expected)) {
			return true
		}
	}
	return false
}

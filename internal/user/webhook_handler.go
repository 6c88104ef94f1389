package user

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"io"
	"net/http"

	"github.com/frahmantamala/timeoff-management/internal/transport"
)

// identityEvent is the inbound payload shape of the identity provider's user
// lifecycle webhook.
type identityEvent struct {
	Type string `json:"type"`
	Data struct {
		ID             string `json:"id"`
		FirstName      string `json:"first_name"`
		LastName       string `json:"last_name"`
		ImageURL       string `json:"image_url"`
		EmailAddresses []struct {
			EmailAddress string `json:"email_address"`
		} `json:"email_addresses"`
	} `json:"data"`
}

type WebhookHandler struct {
	*transport.BaseHandler
	Service ServiceAPI
	secret  string
}

func NewWebhookHandler(base *transport.BaseHandler, service ServiceAPI, secret string) *WebhookHandler {
	return &WebhookHandler{
		BaseHandler: base,
		Service:     service,
		secret:      secret,
	}
}

func (h *WebhookHandler) verifySignature(body []byte, signature string) bool {
	if h.secret == "" {
		return true
	}
	mac := hmac.New(sha256.New, []byte(h.secret))
	mac.Write(body)
	expected := hex.EncodeToString(mac.Sum(nil))
	return hmac.Equal([]byte(expected), []byte(signature))
}

// HandleIdentityEvent handles POST /webhooks/identity. Known user lifecycle
// events upsert a directory user; everything else is acknowledged and ignored.
func (h *WebhookHandler) HandleIdentityEvent(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(r.Body)
	if err != nil {
		h.WriteError(w, http.StatusBadRequest, "failed to read request body")
		return
	}

	if !h.verifySignature(body, r.Header.Get("X-Webhook-Signature")) {
		h.Logger.Warn("HandleIdentityEvent: signature verification failed")
		h.WriteError(w, http.StatusUnauthorized, "invalid webhook signature")
		return
	}

	var event identityEvent
	if err := json.Unmarshal(body, &event); err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid webhook payload")
		return
	}

	if event.Type == "user.created" || event.Type == "user.updated" {
		email := ""
		if len(event.Data.EmailAddresses) > 0 {
			email = event.Data.EmailAddresses[0].EmailAddress
		}

		dto := RegisterUserDTO{
			ExternalID: event.Data.ID,
			Email:      email,
			FirstName:  event.Data.FirstName,
			LastName:   event.Data.LastName,
		}
		if event.Data.ImageURL != "" {
			dto.ImageURL = &event.Data.ImageURL
		}

		if _, err := h.Service.Register(dto); err != nil {
			h.Logger.Error("HandleIdentityEvent: register failed", "error", err, "external_id", event.Data.ID)
			h.WriteError(w, http.StatusInternalServerError, "failed to sync user")
			return
		}

		h.Logger.Info("HandleIdentityEvent: user synced", "event_type", event.Type, "external_id", event.Data.ID)
	} else {
		h.Logger.Debug("HandleIdentityEvent: ignoring event", "event_type", event.Type)
	}

	h.WriteJSON(w, http.StatusOK, map[string]bool{"success": true})
}

package user_test

import (
	"bytes"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/frahmantamala/timeoff-management/internal/transport"
	"github.com/frahmantamala/timeoff-management/internal/user"
)

// Mock service capturing Register calls
type mockUserService struct {
	registered    []user.RegisterUserDTO
	registerError error
}

func (m *mockUserService) Register(dto user.RegisterUserDTO) (*user.User, error) {
	if m.registerError != nil {
		return nil, m.registerError
	}
	if err := dto.Validate(); err != nil {
		return nil, err
	}
	m.registered = append(m.registered, dto)
	return &user.User{ID: 1, ExternalID: dto.ExternalID, Email: dto.Email}, nil
}

func (m *mockUserService) GetByExternalID(externalID string) (*user.User, error) {
	return nil, nil
}

func (m *mockUserService) CompleteOnboarding(userID int64, dto user.OnboardingDTO) (int64, error) {
	return 0, nil
}

func (m *mockUserService) UpdateName(userID int64, dto user.UpdateNameDTO) (int64, error) {
	return 0, nil
}

func (m *mockUserService) UsersByTeam(teamID int64) ([]*user.User, error) {
	return nil, nil
}

func (m *mockUserService) UsersByDepartment(departmentID int64) ([]*user.User, error) {
	return nil, nil
}

func (m *mockUserService) TeamHasManager(teamID int64) (*user.TeamManagerStatus, error) {
	return nil, nil
}

var _ = Describe("WebhookHandler", func() {
	const secret = "webhook-secret"

	var (
		handler     *user.WebhookHandler
		mockService *mockUserService
	)

	sign := func(body []byte) string {
		mac := hmac.New(sha256.New, []byte(secret))
		mac.Write(body)
		return hex.EncodeToString(mac.Sum(nil))
	}

	eventBody := func(eventType, externalID, email string) []byte {
		payload := map[string]interface{}{
			"type": eventType,
			"data": map[string]interface{}{
				"id":         externalID,
				"first_name": "Alice",
				"last_name":  "Smith",
				"image_url":  "https://img.example/alice.png",
				"email_addresses": []map[string]string{
					{"email_address": email},
				},
			},
		}
		body, err := json.Marshal(payload)
		Expect(err).ToNot(HaveOccurred())
		return body
	}

	post := func(body []byte, signature string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodPost, "/webhooks/identity", bytes.NewReader(body))
		if signature != "" {
			req.Header.Set("X-Webhook-Signature", signature)
		}
		w := httptest.NewRecorder()
		handler.HandleIdentityEvent(w, req)
		return w
	}

	BeforeEach(func() {
		mockService = &mockUserService{}
		slogger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
		base := &transport.BaseHandler{Logger: slogger}
		handler = user.NewWebhookHandler(base, mockService, secret)
	})

	It("should register the user on user.created", func() {
		body := eventBody("user.created", "ext-1", "alice@mail.com")

		w := post(body, sign(body))

		Expect(w.Code).To(Equal(http.StatusOK))
		Expect(mockService.registered).To(HaveLen(1))
		Expect(mockService.registered[0].ExternalID).To(Equal("ext-1"))
		Expect(mockService.registered[0].Email).To(Equal("alice@mail.com"))
		Expect(mockService.registered[0].ImageURL).ToNot(BeNil())

		var response map[string]bool
		Expect(json.NewDecoder(w.Body).Decode(&response)).To(Succeed())
		Expect(response["success"]).To(BeTrue())
	})

	It("should register the user on user.updated", func() {
		body := eventBody("user.updated", "ext-1", "alice@mail.com")

		w := post(body, sign(body))

		Expect(w.Code).To(Equal(http.StatusOK))
		Expect(mockService.registered).To(HaveLen(1))
	})

	It("should acknowledge and ignore other event types", func() {
		body := eventBody("session.created", "ext-1", "alice@mail.com")

		w := post(body, sign(body))

		Expect(w.Code).To(Equal(http.StatusOK))
		Expect(mockService.registered).To(BeEmpty())

		var response map[string]bool
		Expect(json.NewDecoder(w.Body).Decode(&response)).To(Succeed())
		Expect(response["success"]).To(BeTrue())
	})

	It("should reject a payload with a bad signature", func() {
		body := eventBody("user.created", "ext-1", "alice@mail.com")

		w := post(body, "deadbeef")

		Expect(w.Code).To(Equal(http.StatusUnauthorized))
		Expect(mockService.registered).To(BeEmpty())
	})

	It("should reject a payload with no signature", func() {
		body := eventBody("user.created", "ext-1", "alice@mail.com")

		w := post(body, "")

		Expect(w.Code).To(Equal(http.StatusUnauthorized))
	})

	It("should reject a malformed payload", func() {
		body := []byte("{not json")

		w := post(body, sign(body))

		Expect(w.Code).To(Equal(http.StatusBadRequest))
	})

	It("should register with an empty email when the payload has no addresses", func() {
		payload := map[string]interface{}{
			"type": "user.created",
			"data": map[string]interface{}{
				"id":         "ext-1",
				"first_name": "Alice",
				"last_name":  "Smith",
			},
		}
		body, err := json.Marshal(payload)
		Expect(err).ToNot(HaveOccurred())

		w := post(body, sign(body))

		// Register rejects the missing email; the webhook surfaces it
		Expect(w.Code).To(Equal(http.StatusInternalServerError))
	})

	Context("when no secret is configured", func() {
		BeforeEach(func() {
			slogger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
			base := &transport.BaseHandler{Logger: slogger}
			handler = user.NewWebhookHandler(base, mockService, "")
		})

		It("should accept unsigned payloads", func() {
			body := eventBody("user.created", "ext-1", "alice@mail.com")

			w := post(body, "")

			Expect(w.Code).To(Equal(http.StatusOK))
			Expect(mockService.registered).To(HaveLen(1))
		})
	})
})

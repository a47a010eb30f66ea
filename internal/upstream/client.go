// Package upstream is the typed boundary to the remote store API that
// owns users, catalog data and checkout sessions.
package upstream

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"atelier/internal/models"

	"github.com/rs/zerolog"
)

// RemoteError is a non-success answer from the store API. Message is
// taken from the response payload when present, otherwise a generic
// localized message so the visitor never sees a blank error.
type RemoteError struct {
	StatusCode int
	Message    string
}

func (e *RemoteError) Error() string {
	return fmt.Sprintf("upstream rejected request (%d): %s", e.StatusCode, e.Message)
}

var genericMessages = map[string]string{
	"pt": "Algo deu errado. Tente novamente.",
	"en": "Something went wrong. Please try again.",
}

// GenericMessage returns the fallback user-visible message for a locale.
func GenericMessage(locale string) string {
	if msg, ok := genericMessages[locale]; ok {
		return msg
	}
	return genericMessages["pt"]
}

type Client struct {
	baseURL string
	locale  string
	http    *http.Client
	logger  zerolog.Logger
}

func NewClient(baseURL, locale string, logger zerolog.Logger) *Client {
	if _, ok := genericMessages[locale]; !ok {
		locale = "pt"
	}
	return &Client{
		baseURL: baseURL,
		locale:  locale,
		http:    &http.Client{Timeout: 15 * time.Second},
		logger:  logger,
	}
}

// Login exchanges credentials for a token/user pair.
func (c *Client) Login(ctx context.Context, req *models.LoginRequest) (*models.Identity, error) {
	var identity models.Identity
	if err := c.do(ctx, http.MethodPost, "/api/login", "", req, &identity); err != nil {
		return nil, err
	}
	return &identity, nil
}

// Register creates an account. Approval happens later through the admin
// workflow, so no token comes back.
func (c *Client) Register(ctx context.Context, req *models.RegisterRequest) error {
	return c.do(ctx, http.MethodPost, "/api/register", "", req, nil)
}

// RequestEvaluation submits an approval-gate application. The record is
// created upstream as pending; the admin workflow takes it from there.
func (c *Client) RequestEvaluation(ctx context.Context, req *models.EvaluationRequest) error {
	payload := struct {
		FullName   string `json:"fullName"`
		Profession string `json:"profession,omitempty"`
		Style      string `json:"style,omitempty"`
		Email      string `json:"email"`
		Phone      string `json:"phone,omitempty"`
		Status     string `json:"status"`
	}{
		FullName:   req.FullName,
		Profession: req.Profession,
		Style:      req.Style,
		Email:      req.Email,
		Phone:      req.Phone,
		Status:     "pending",
	}
	return c.do(ctx, http.MethodPost, "/api/request-evaluation", "", payload, nil)
}

// UpdateProfile sends a partial user record and returns the updated one.
func (c *Client) UpdateProfile(ctx context.Context, token string, req *models.UpdateProfileRequest) (*models.User, error) {
	var user models.User
	if err := c.do(ctx, http.MethodPut, "/api/user/profile", token, req, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

func (c *Client) Collections(ctx context.Context) ([]models.Collection, error) {
	var collections []models.Collection
	if err := c.do(ctx, http.MethodGet, "/api/collections", "", nil, &collections); err != nil {
		return nil, err
	}
	return collections, nil
}

func (c *Client) Products(ctx context.Context) ([]models.Product, error) {
	var products []models.Product
	if err := c.do(ctx, http.MethodGet, "/api/products", "", nil, &products); err != nil {
		return nil, err
	}
	return products, nil
}

// CreateCheckoutSession asks the payment collaborator for a redirect
// URL. A missing or malformed URL in the answer is returned as empty,
// not as an error; checkout then silently does not proceed.
func (c *Client) CreateCheckoutSession(ctx context.Context, req *models.CheckoutRequest) (string, error) {
	var sess models.CheckoutSession
	if err := c.do(ctx, http.MethodPost, "/create-checkout-session", "", req, &sess); err != nil {
		return "", err
	}
	return sess.URL, nil
}

func (c *Client) do(ctx context.Context, method, path, token string, body, out interface{}) error {
	var reqBody bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&reqBody).Encode(body); err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, &reqBody)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		c.logger.Error().Err(err).Str("path", path).Msg("Upstream request failed")
		return fmt.Errorf("upstream %s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return c.rejection(resp, path)
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		c.logger.Error().Err(err).Str("path", path).Msg("Upstream response decode failed")
		return fmt.Errorf("decode upstream response: %w", err)
	}
	return nil
}

func (c *Client) rejection(resp *http.Response, path string) error {
	payload := struct {
		Message string `json:"message"`
		Error   string `json:"error"`
	}{}
	_ = json.NewDecoder(resp.Body).Decode(&payload)

	message := payload.Message
	if message == "" {
		message = payload.Error
	}
	if message == "" {
		message = genericMessages[c.locale]
	}

	c.logger.Warn().Int("status", resp.StatusCode).Str("path", path).Msg("Upstream rejection")
	return &RemoteError{StatusCode: resp.StatusCode, Message: message}
}

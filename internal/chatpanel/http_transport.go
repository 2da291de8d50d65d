package chatpanel

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"kitnetia/internal/domain/entity"
)

// HTTPTransport calls the kitnetia API chatbot endpoints.
type HTTPTransport struct {
	baseURL string
	token   string
	client  *http.Client
}

func NewHTTPTransport(baseURL, token string, timeout time.Duration) *HTTPTransport {
	if timeout <= 0 {
		timeout = 90 * time.Second
	}
	return &HTTPTransport{
		baseURL: strings.TrimRight(baseURL, "/"),
		token:   token,
		client:  &http.Client{Timeout: timeout},
	}
}

type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Error   *struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

// APIError is a non-success envelope returned by the server.
type APIError struct {
	Status  int
	Code    string
	Message string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("api error %d %s: %s", e.Status, e.Code, e.Message)
}

func (t *HTTPTransport) do(ctx context.Context, method, path string, body interface{}, out interface{}) error {
	var reader *bytes.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return err
		}
		reader = bytes.NewReader(payload)
	} else {
		reader = bytes.NewReader(nil)
	}

	req, err := http.NewRequestWithContext(ctx, method, t.baseURL+path, reader)
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	if t.token != "" {
		req.Header.Set("Authorization", "Bearer "+t.token)
	}

	resp, err := t.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	var env envelope
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
		return fmt.Errorf("decode response (status %d): %w", resp.StatusCode, err)
	}
	if !env.Success {
		apiErr := &APIError{Status: resp.StatusCode}
		if env.Error != nil {
			apiErr.Code = env.Error.Code
			apiErr.Message = env.Error.Message
		}
		return apiErr
	}
	return json.Unmarshal(env.Data, out)
}

func (t *HTTPTransport) Welcome(ctx context.Context, propertyID string) (string, error) {
	var out struct {
		Message string `json:"message"`
	}
	if err := t.do(ctx, http.MethodGet, "/v1/chatbot/welcome/"+url.PathEscape(propertyID), nil, &out); err != nil {
		return "", err
	}
	return out.Message, nil
}

type historyEntry struct {
	Role    entity.Role `json:"role"`
	Content string      `json:"content"`
}

func (t *HTTPTransport) Send(ctx context.Context, req Request) (*Reply, error) {
	history := make([]historyEntry, 0, len(req.History))
	for _, turn := range req.History {
		history = append(history, historyEntry{Role: turn.Role, Content: turn.Content})
	}

	body := map[string]interface{}{
		"message":              req.Message,
		"property_id":          req.PropertyID,
		"conversation_history": history,
	}

	var reply Reply
	if err := t.do(ctx, http.MethodPost, "/v1/chatbot/messages", body, &reply); err != nil {
		return nil, err
	}
	return &reply, nil
}

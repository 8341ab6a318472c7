// Package advisor integrates the opaque text-completion service that answers
// free-text questions about the user's finances. The service consumes a
// context string (an aggregated financial summary) plus the question, and
// returns an answer string. Failures are recoverable: callers surface
// FallbackMessage instead of an error page, and the conversation survives.
package advisor

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// FallbackMessage is shown in place of an answer when the service fails.
const FallbackMessage = "Sorry, I couldn't reach the advisor service. Please try again in a moment."

// Advisor is the text-completion collaborator contract.
type Advisor interface {
	// Ask returns a free-text answer to question given the financial context.
	Ask(ctx context.Context, financialContext, question string) (string, error)
}

// HTTPAdvisor calls a remote completion endpoint over JSON.
type HTTPAdvisor struct {
	endpoint string
	apiKey   string
	client   *http.Client
}

// NewHTTPAdvisor returns an advisor posting to endpoint. The timeout bounds
// each request; concurrent requests are independent and never queued.
func NewHTTPAdvisor(endpoint, apiKey string, timeout time.Duration) *HTTPAdvisor {
	return &HTTPAdvisor{
		endpoint: endpoint,
		apiKey:   apiKey,
		client:   &http.Client{Timeout: timeout},
	}
}

type askRequest struct {
	Context  string `json:"context"`
	Question string `json:"question"`
}

type askResponse struct {
	Answer string `json:"answer"`
}

// Ask posts the context and question and decodes the answer.
func (a *HTTPAdvisor) Ask(ctx context.Context, financialContext, question string) (string, error) {
	body, err := json.Marshal(askRequest{Context: financialContext, Question: question})
	if err != nil {
		return "", fmt.Errorf("encode advisor request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, a.endpoint, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("build advisor request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if a.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+a.apiKey)
	}

	resp, err := a.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("advisor request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		// Drain a little for the error message, not the whole body.
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, 256))
		return "", fmt.Errorf("advisor returned status %d: %s", resp.StatusCode, snippet)
	}

	var out askResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return "", fmt.Errorf("decode advisor response: %w", err)
	}
	return out.Answer, nil
}

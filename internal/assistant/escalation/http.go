// internal/assistant/escalation/http.go
package escalation

import (
	"context"
	"fmt"
	"time"

	httpclient "banking-assistant/internal/common/http"
	"banking-assistant/internal/models"
)

// HTTPSink posts escalated questions to an external admin API.
type HTTPSink struct {
	client *httpclient.Client
	url    string
}

func NewHTTPSink(url string, timeout time.Duration) *HTTPSink {
	return &HTTPSink{
		client: httpclient.NewClient(timeout),
		url:    url,
	}
}

func (s *HTTPSink) Save(ctx context.Context, q models.UnansweredQuestion) error {
	payload := map[string]interface{}{
		"mobileNo":   q.MobileNo,
		"question":   q.Question,
		"notifyUser": q.NotifyUser,
		"sessionId":  q.SessionID,
	}
	if err := s.client.PostJSON(ctx, s.url, payload, nil); err != nil {
		return fmt.Errorf("save unanswered question: %w", err)
	}
	return nil
}

// HTTPLookup resolves a session's mobile number from the session API.
type HTTPLookup struct {
	client  *httpclient.Client
	baseURL string
}

func NewHTTPLookup(baseURL string, timeout time.Duration) *HTTPLookup {
	return &HTTPLookup{
		client:  httpclient.NewClient(timeout),
		baseURL: baseURL,
	}
}

func (l *HTTPLookup) MobileNo(ctx context.Context, sessionID string) (string, error) {
	var response struct {
		Session struct {
			User struct {
				MobileNo string `json:"mobileNo"`
			} `json:"user"`
		} `json:"session"`
	}
	if err := l.client.GetJSON(ctx, fmt.Sprintf("%s/%s", l.baseURL, sessionID), &response); err != nil {
		return "", fmt.Errorf("session lookup: %w", err)
	}
	return response.Session.User.MobileNo, nil
}

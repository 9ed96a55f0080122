// Package webhook delivers rendered cost reports to chat integrations.
package webhook

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"terrafin/internal/errors"
)

// Notifier posts reports to a Slack incoming webhook
type Notifier struct {
	webhookURL string
	httpClient *http.Client
}

// NewNotifier creates a Slack notifier
func NewNotifier(webhookURL string) *Notifier {
	return &Notifier{
		webhookURL: webhookURL,
		httpClient: &http.Client{Timeout: 30 * time.Second},
	}
}

type blockText struct {
	Type string `json:"type"`
	Text string `json:"text"`
}

type block struct {
	Type string     `json:"type"`
	Text *blockText `json:"text,omitempty"`
}

type payload struct {
	Text   string  `json:"text"`
	Blocks []block `json:"blocks"`
}

// Send posts a rendered report. Delivery failure is reported to the caller
// but must never fail the calculation run itself.
func (n *Notifier) Send(report string) error {
	p := payload{
		Text: "Terraform Cost Estimation Report",
		Blocks: []block{
			{
				Type: "header",
				Text: &blockText{Type: "plain_text", Text: "Terraform Cost Estimation Report"},
			},
			{
				Type: "section",
				Text: &blockText{Type: "mrkdwn", Text: report},
			},
		},
	}

	body, err := json.Marshal(p)
	if err != nil {
		return errors.Internal("failed to marshal slack payload", err)
	}

	resp, err := n.httpClient.Post(n.webhookURL, "application/json", bytes.NewReader(body))
	if err != nil {
		return errors.Wrap(errors.TypeNetwork, "slack webhook request failed", err)
	}
	defer resp.Body.Close()
	io.Copy(io.Discard, resp.Body)

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return errors.Newf(errors.TypeNetwork,
			"slack webhook returned status %d", resp.StatusCode)
	}
	return nil
}

// String describes the notifier target without leaking the full URL
func (n *Notifier) String() string {
	return fmt.Sprintf("slack-webhook(%d chars)", len(n.webhookURL))
}

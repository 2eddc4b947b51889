// Package notify delivers user-facing notifications for match and claim
// events. An ntfy-compatible HTTP endpoint is used when configured,
// otherwise notifications degrade to a noop.
package notify

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/naveenkumar-devtech/refind/internal/model"
)

const userAgent = "refind/0.1.0"

// Service is the notification surface exposed to the engine.
type Service interface {
	// NotifyMatchesFound tells the owner of a report how many candidates
	// were admitted for it.
	NotifyMatchesFound(ctx context.Context, userID, reportTitle string, count int) error
	// NotifyPotentialMatch tells the owner of a candidate report that
	// someone else's report may refer to the same item.
	NotifyPotentialMatch(ctx context.Context, userID, reportTitle string, score float64) error
	// NotifyClaimSubmitted tells a report owner that a claim is waiting
	// for a decision.
	NotifyClaimSubmitted(ctx context.Context, userID, reportTitle string, score float64) error
	// NotifyClaimDecided tells a claimant the outcome of their claim.
	NotifyClaimDecided(ctx context.Context, userID, reportTitle string, status model.ClaimStatus) error
	Test(ctx context.Context) error
}

// NewService builds a notification service backed by the configured
// endpoint. An empty endpoint yields a noop implementation.
func NewService(cfg model.NotifyConfig, log *slog.Logger) Service {
	endpoint := strings.TrimSpace(cfg.Endpoint)
	if endpoint == "" {
		return noopService{}
	}

	timeout := time.Duration(cfg.Timeout) * time.Second
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	if log == nil {
		log = slog.Default()
	}
	return &ntfyService{
		endpoint: endpoint,
		client:   &http.Client{Timeout: timeout},
		log:      log,
	}
}

type payload struct {
	title    string
	message  string
	tags     []string
	priority string
}

type ntfyService struct {
	endpoint string
	client   *http.Client
	log      *slog.Logger
}

func (n *ntfyService) NotifyMatchesFound(ctx context.Context, userID, reportTitle string, count int) error {
	reportTitle = strings.TrimSpace(reportTitle)
	data := payload{
		title:   "Refind - Matches Found",
		message: fmt.Sprintf("%d potential matches for: %s", count, reportTitle),
		tags:    []string{"refind", "match", userTag(userID)},
	}
	return n.send(ctx, data)
}

func (n *ntfyService) NotifyPotentialMatch(ctx context.Context, userID, reportTitle string, score float64) error {
	reportTitle = strings.TrimSpace(reportTitle)
	data := payload{
		title:   "Refind - Potential Match",
		message: fmt.Sprintf("Your report %q may match another item (score %.2f)", reportTitle, score),
		tags:    []string{"refind", "match", userTag(userID)},
	}
	return n.send(ctx, data)
}

func (n *ntfyService) NotifyClaimSubmitted(ctx context.Context, userID, reportTitle string, score float64) error {
	reportTitle = strings.TrimSpace(reportTitle)
	data := payload{
		title:    "Refind - Claim Submitted",
		message:  fmt.Sprintf("New claim on %q awaiting your decision (note score %.2f)", reportTitle, score),
		tags:     []string{"refind", "claim", userTag(userID)},
		priority: "high",
	}
	return n.send(ctx, data)
}

func (n *ntfyService) NotifyClaimDecided(ctx context.Context, userID, reportTitle string, status model.ClaimStatus) error {
	reportTitle = strings.TrimSpace(reportTitle)
	var title, message string
	switch status {
	case model.ClaimApproved:
		title = "Refind - Claim Approved"
		message = fmt.Sprintf("Your claim on %q was approved. Arrange pickup with the reporter.", reportTitle)
	default:
		title = "Refind - Claim Rejected"
		message = fmt.Sprintf("Your claim on %q was rejected.", reportTitle)
	}
	data := payload{
		title:    title,
		message:  message,
		tags:     []string{"refind", "claim", userTag(userID)},
		priority: "high",
	}
	return n.send(ctx, data)
}

func (n *ntfyService) Test(ctx context.Context) error {
	data := payload{
		title:    "Refind - Test",
		message:  "Notification system test",
		tags:     []string{"refind", "test"},
		priority: "low",
	}
	return n.send(ctx, data)
}

func userTag(userID string) string {
	userID = strings.TrimSpace(userID)
	if userID == "" {
		return "user"
	}
	return "user-" + userID
}

func (n *ntfyService) send(ctx context.Context, data payload) error {
	if n == nil || n.client == nil {
		return nil
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, n.endpoint, strings.NewReader(data.message))
	if err != nil {
		return fmt.Errorf("build notification request: %w", err)
	}
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Content-Type", "text/plain; charset=utf-8")
	if data.title != "" {
		req.Header.Set("Title", data.title)
	}
	if len(data.tags) > 0 {
		req.Header.Set("Tags", strings.Join(data.tags, ","))
	}
	if data.priority != "" && data.priority != "default" {
		req.Header.Set("Priority", data.priority)
	}

	resp, err := n.client.Do(req)
	if err != nil {
		return fmt.Errorf("send notification: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode >= 300 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 2048))
		return fmt.Errorf("notification endpoint returned %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}
	_, _ = io.Copy(io.Discard, resp.Body)
	n.log.Debug("notification sent", "title", data.title)
	return nil
}

type noopService struct{}

func (noopService) NotifyMatchesFound(context.Context, string, string, int) error { return nil }
func (noopService) NotifyPotentialMatch(context.Context, string, string, float64) error {
	return nil
}
func (noopService) NotifyClaimSubmitted(context.Context, string, string, float64) error {
	return nil
}
func (noopService) NotifyClaimDecided(context.Context, string, string, model.ClaimStatus) error {
	return nil
}
func (noopService) Test(context.Context) error { return nil }

package notifications

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"fwarchive/internal/config"
	"fwarchive/internal/ingest"
)

const userAgent = "fwarchive/0.1.0"

// Service defines the notification surface exposed to commands.
type Service interface {
	NotifyRunCompleted(ctx context.Context, kind string, summary ingest.Summary, duration time.Duration) error
	NotifyRunFailed(ctx context.Context, kind string, cause error) error
	TestNotification(ctx context.Context) error
}

// NewService builds a notification service backed by ntfy when
// configured. When no ntfy topic is configured, a noop implementation
// is returned.
func NewService(cfg *config.Config) Service {
	topic := strings.TrimSpace(cfg.Notifications.NtfyTopic)
	if topic == "" {
		return noopService{}
	}

	endpoint := topic
	if !strings.Contains(endpoint, "://") {
		endpoint = "https://ntfy.sh/" + endpoint
	}

	timeout := time.Duration(cfg.Notifications.RequestTimeout) * time.Second
	if timeout <= 0 {
		timeout = 10 * time.Second
	}

	return &ntfyService{
		endpoint:    endpoint,
		client:      &http.Client{Timeout: timeout},
		runComplete: cfg.Notifications.RunComplete,
		errors:      cfg.Notifications.Errors,
	}
}

type payload struct {
	title    string
	message  string
	tags     []string
	priority string
}

type ntfyService struct {
	endpoint    string
	client      *http.Client
	runComplete bool
	errors      bool
}

func (n *ntfyService) NotifyRunCompleted(ctx context.Context, kind string, summary ingest.Summary, duration time.Duration) error {
	if !n.runComplete {
		return nil
	}
	duration = duration.Round(time.Second)
	if duration < 0 {
		duration = 0
	}

	title := "fwarchive - Run Complete"
	if len(summary.Errors) > 0 {
		title = "fwarchive - Run Complete (with errors)"
	}
	message := fmt.Sprintf("%s run finished in %s: %d new, %d updated, %d skipped, %d errors",
		kind, duration, summary.New, summary.Updated, summary.Skipped, len(summary.Errors))

	data := payload{
		title:   title,
		message: message,
		tags:    []string{"fwarchive", kind, "completed"},
	}
	return n.send(ctx, data)
}

func (n *ntfyService) NotifyRunFailed(ctx context.Context, kind string, cause error) error {
	if !n.errors {
		return nil
	}
	detail := "unknown"
	if cause != nil {
		detail = strings.TrimSpace(cause.Error())
	}
	data := payload{
		title:    "fwarchive - Run Failed",
		message:  fmt.Sprintf("%s run failed: %s", kind, detail),
		tags:     []string{"fwarchive", kind, "failed"},
		priority: "high",
	}
	return n.send(ctx, data)
}

func (n *ntfyService) TestNotification(ctx context.Context) error {
	data := payload{
		title:    "fwarchive - Test",
		message:  "Notification system test",
		tags:     []string{"fwarchive", "test"},
		priority: "low",
	}
	return n.send(ctx, data)
}

func (n *ntfyService) send(ctx context.Context, data payload) error {
	if n == nil || n.client == nil {
		return nil
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, n.endpoint, strings.NewReader(data.message))
	if err != nil {
		return fmt.Errorf("build ntfy request: %w", err)
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
		return fmt.Errorf("send ntfy notification: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 2048))
		return fmt.Errorf("ntfy returned %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}
	_, _ = io.Copy(io.Discard, resp.Body)
	return nil
}

type noopService struct{}

func (noopService) NotifyRunCompleted(context.Context, string, ingest.Summary, time.Duration) error {
	return nil
}
func (noopService) NotifyRunFailed(context.Context, string, error) error { return nil }
func (noopService) TestNotification(context.Context) error               { return nil }

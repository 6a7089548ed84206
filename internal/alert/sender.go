package alert

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"time"

	"github.com/tidwall/gjson"

	"github.com/hydepwns/phos-go/internal/logging"
)

// senderTimeout is the fixed per-request webhook POST timeout.
const senderTimeout = 5 * time.Second

// Sender delivers formatted payloads to a webhook URL over HTTP. Send
// errors and non-2xx responses are logged and swallowed: alerts are
// best-effort by design and never abort the stream they're attached to.
type Sender struct {
	client *http.Client
	url    string
	svc    Service
	chatID string
}

// NewSender builds a Sender targeting url, auto-detecting the wire
// format from the URL. telegramChatID is only used if url is detected as
// a Telegram endpoint.
func NewSender(url, telegramChatID string) *Sender {
	return &Sender{
		client: &http.Client{Timeout: senderTimeout},
		url:    url,
		svc:    DetectService(url),
		chatID: telegramChatID,
	}
}

// Send formats and POSTs p. It never returns an error to the caller;
// failures are logged via internal/logging.
func (s *Sender) Send(ctx context.Context, p Payload) {
	formatter := FormatterFor(s.svc, s.chatID)
	body, contentType, err := formatter.Format(p)
	if err != nil {
		logging.Warn().Err(err).Msg("alert: failed to format payload")
		return
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.url, bytes.NewReader(body))
	if err != nil {
		logging.Warn().Err(err).Msg("alert: failed to build webhook request")
		return
	}
	req.Header.Set("Content-Type", contentType)

	resp, err := s.client.Do(req)
	if err != nil {
		logging.Warn().Err(err).Str("url", s.url).Msg("alert: webhook delivery failed")
		return
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		ev := logging.Warn().Int("status", resp.StatusCode).Str("url", s.url)
		if hint := errorHint(resp.Body); hint != "" {
			ev = ev.Str("hint", hint)
		}
		ev.Msg("alert: webhook returned non-2xx")
	}
}

// errorHint extracts a human-readable hint from a webhook error response
// body without needing a typed struct per service: Discord's rate-limit
// responses carry "retry_after", most others carry "message" or "error",
// and gjson lets this reach into whichever field is present, ignoring the
// rest of an otherwise-unknown JSON shape. Returns "" if the body is empty,
// not JSON, or has none of the recognized fields.
func errorHint(body io.Reader) string {
	data, err := io.ReadAll(io.LimitReader(body, 4096))
	if err != nil || len(data) == 0 {
		return ""
	}
	for _, path := range []string{"message", "error", "retry_after", "description"} {
		if r := gjson.GetBytes(data, path); r.Exists() {
			return path + "=" + r.String()
		}
	}
	return ""
}

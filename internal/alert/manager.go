package alert

import (
	"context"
	"time"

	"github.com/hydepwns/phos-go/internal/stats"
)

// defaultGlobalCooldown, defaultPerConditionCooldown, and
// defaultMaxPerHour are the rate limiter defaults used when a Manager is
// built without explicit overrides.
const (
	defaultGlobalCooldown        = 10 * time.Second
	defaultPerConditionCooldown = 5 * time.Minute
	defaultMaxPerHour           = 20
)

// Manager owns the evaluator, rate limiter, and sender for one log
// stream, and the set of conditions it checks per line. One Manager
// belongs to exactly one stream (container, stdin, subprocess); it is
// not safe for concurrent use from multiple goroutines without external
// synchronization (the aggregator wraps it in a Mutex).
type Manager struct {
	conditions []Condition
	evaluator  *Evaluator
	limiter    *RateLimiter
	sender     *Sender
	program    string
}

// CheckLine runs every configured condition against line, given an
// immutable snapshot of the stream's stats at the time the line was
// produced (for threshold/peer/slot conditions), and sends any payload
// whose condition is allowed to fire right now. s is a value type, so
// callers may check a line from a goroutine running concurrently with
// whatever keeps collecting into the live Collector it was taken from.
func (m *Manager) CheckLine(ctx context.Context, line string, s stats.Snapshot) {
	if m == nil || len(m.conditions) == 0 {
		return
	}
	m.evaluator.UpdateState(s)

	now := time.Now()
	var firing []Payload
	for _, c := range m.conditions {
		if !m.limiter.Allow(c.String(), now) {
			continue
		}
		payload, ok := m.evaluator.Evaluate(c, line, s.ErrorCount)
		if !ok {
			continue
		}
		payload = payload.WithProgram(m.program)
		m.limiter.RecordAlert(c.String(), now)
		firing = append(firing, payload)
	}

	for _, p := range firing {
		m.sender.Send(ctx, p)
	}
}

// Reset rearms fire-once conditions, used when a stream restarts.
func (m *Manager) Reset() {
	if m == nil {
		return
	}
	m.evaluator.Reset()
}

// Builder fluently assembles a Manager, the shape consumed by the CLI's
// --alert-webhook/--alert-condition flags and by the streamer's
// per-container AlertConfig.
type Builder struct {
	url                  string
	telegramChatID       string
	conditions           []Condition
	globalCooldown       time.Duration
	perConditionCooldown time.Duration
	maxPerHour           int
	program              string
}

// NewBuilder starts a Builder targeting the given webhook url.
func NewBuilder(url string) *Builder {
	return &Builder{
		url:                  url,
		globalCooldown:       defaultGlobalCooldown,
		perConditionCooldown: defaultPerConditionCooldown,
		maxPerHour:           defaultMaxPerHour,
	}
}

func (b *Builder) WithTelegramChatID(chatID string) *Builder {
	b.telegramChatID = chatID
	return b
}

func (b *Builder) WithCondition(c Condition) *Builder {
	b.conditions = append(b.conditions, c)
	return b
}

func (b *Builder) WithConditions(cs []Condition) *Builder {
	b.conditions = append(b.conditions, cs...)
	return b
}

func (b *Builder) WithCooldown(global, perCondition time.Duration) *Builder {
	b.globalCooldown = global
	b.perConditionCooldown = perCondition
	return b
}

func (b *Builder) WithMaxPerHour(n int) *Builder {
	b.maxPerHour = n
	return b
}

func (b *Builder) WithProgram(program string) *Builder {
	b.program = program
	return b
}

// Build finalizes the Manager. With no conditions configured, it
// defaults to a single Error condition, matching the CLI's documented
// default.
func (b *Builder) Build() *Manager {
	conditions := b.conditions
	if len(conditions) == 0 {
		conditions = []Condition{{Kind: KindError, raw: "error"}}
	}
	return &Manager{
		conditions: conditions,
		evaluator:  NewEvaluator(),
		limiter:    NewRateLimiter(b.globalCooldown, b.perConditionCooldown, b.maxPerHour),
		sender:     NewSender(b.url, b.telegramChatID),
		program:    b.program,
	}
}

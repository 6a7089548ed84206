package alert

// Severity ranks an alert's urgency, used to pick the Discord embed color
// and the tag prefixed to a webhook title.
type Severity int

const (
	Info Severity = iota
	Warning
	Error
	Critical
)

func (s Severity) String() string {
	switch s {
	case Critical:
		return "critical"
	case Error:
		return "error"
	case Warning:
		return "warning"
	case Info:
		return "info"
	default:
		return "unknown"
	}
}

// Tag returns the bracketed prefix used in a formatted alert title, e.g.
// "[CRITICAL]".
func (s Severity) Tag() string {
	switch s {
	case Critical:
		return "[CRITICAL]"
	case Error:
		return "[ERROR]"
	case Warning:
		return "[WARNING]"
	case Info:
		return "[INFO]"
	default:
		return "[ALERT]"
	}
}

// DiscordColor returns the embed color (decimal, as Discord's API
// expects) for this severity.
func (s Severity) DiscordColor() int {
	switch s {
	case Critical:
		return 0xFF0000
	case Error:
		return 0xFF5500
	case Warning:
		return 0xFFAA00
	case Info:
		return 0x55AAFF
	default:
		return 0x888888
	}
}

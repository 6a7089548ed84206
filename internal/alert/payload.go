package alert

import "time"

// Field is one ordered key/value pair attached to a Payload.
type Field struct {
	Name  string
	Value string
}

// Payload is the condition-agnostic content of a fired alert, built by a
// Condition's Evaluate and consumed by a Formatter.
type Payload struct {
	Title     string
	Message   string
	Severity  Severity
	Program   string
	Timestamp time.Time
	Fields    []Field
}

// NewPayload creates a payload stamped with the current time.
func NewPayload(title, message string, severity Severity) Payload {
	return Payload{Title: title, Message: message, Severity: severity, Timestamp: time.Now().UTC()}
}

// WithProgram sets the originating program id and returns the receiver
// for chaining.
func (p Payload) WithProgram(program string) Payload {
	p.Program = program
	return p
}

// WithField appends a field and returns the receiver for chaining.
func (p Payload) WithField(name, value string) Payload {
	p.Fields = append(p.Fields, Field{Name: name, Value: value})
	return p
}

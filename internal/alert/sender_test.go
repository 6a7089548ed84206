package alert

import (
	"strings"
	"testing"

	"gotest.tools/v3/assert"
)

func TestErrorHintExtractsKnownFields(t *testing.T) {
	hint := errorHint(strings.NewReader(`{"message":"rate limited"}`))
	assert.Equal(t, hint, "message=rate limited")
}

func TestErrorHintFallsBackThroughFields(t *testing.T) {
	hint := errorHint(strings.NewReader(`{"retry_after":5}`))
	assert.Equal(t, hint, "retry_after=5")
}

func TestErrorHintEmptyBody(t *testing.T) {
	assert.Equal(t, errorHint(strings.NewReader("")), "")
}

func TestErrorHintNotJSON(t *testing.T) {
	assert.Equal(t, errorHint(strings.NewReader("not json at all")), "")
}

func TestErrorHintNoRecognizedFields(t *testing.T) {
	assert.Equal(t, errorHint(strings.NewReader(`{"unrelated":"field"}`)), "")
}

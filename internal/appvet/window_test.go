package appvet

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func turns(lengths ...int) []ChatTurn {
	out := make([]ChatTurn, len(lengths))
	for i, n := range lengths {
		role := RoleUser
		if i%2 == 1 {
			role = RoleModel
		}
		out[i] = ChatTurn{Role: role, Text: strings.Repeat("x", n)}
	}
	return out
}

func TestTrimWindow(t *testing.T) {
	history := turns(30, 30, 30)

	// 20 reserved + 30 + 30 = 80 < 100; admitting the oldest turn would
	// reach 110, so only the two most recent survive.
	got := TrimWindow(history, strings.Repeat("s", 20), 100)
	assert.Equal(t, history[1:], got)
}

func TestTrimWindow_AllFit(t *testing.T) {
	history := turns(10, 10, 10)
	got := TrimWindow(history, "sys", 100)
	assert.Equal(t, history, got)
}

func TestTrimWindow_EmptyHistory(t *testing.T) {
	got := TrimWindow(nil, "sys", 100)
	assert.Empty(t, got)
}

func TestTrimWindow_NewestTurnOversized(t *testing.T) {
	history := turns(5, 200)
	got := TrimWindow(history, strings.Repeat("s", 20), 100)
	assert.Empty(t, got, "an oversized newest turn is dropped, not an error")
}

func TestTrimWindow_StrictBoundary(t *testing.T) {
	// Exactly reaching the budget excludes the turn: the boundary is <, not <=.
	history := turns(30)
	got := TrimWindow(history, strings.Repeat("s", 70), 100)
	assert.Empty(t, got)

	got = TrimWindow(history, strings.Repeat("s", 69), 100)
	assert.Equal(t, history, got)
}

func TestTrimWindow_NoGapsAfterEviction(t *testing.T) {
	// The third-newest turn alone would fit, but once the fourth-newest is
	// excluded the walk stops; older turns are never skipped over.
	history := turns(5, 80, 30, 30)
	got := TrimWindow(history, strings.Repeat("s", 20), 100)
	assert.Equal(t, history[2:], got)
}

func TestTrimWindow_PreservesOrder(t *testing.T) {
	history := []ChatTurn{
		{Role: RoleUser, Text: "first"},
		{Role: RoleModel, Text: "second"},
		{Role: RoleUser, Text: "third"},
	}
	got := TrimWindow(history, "", 1000)
	assert.Equal(t, history, got)
}

package models

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAddToConversationCapsHistory(t *testing.T) {
	u := &User{}

	for i := 0; i < MaxConversationHistory+5; i++ {
		u.AddToConversation(RoleUser, fmt.Sprintf("message %d", i))
	}

	require.Len(t, u.ConversationHistory, MaxConversationHistory)
	// oldest entries dropped first
	assert.Equal(t, "message 5", u.ConversationHistory[0].Content)
	assert.Equal(t, fmt.Sprintf("message %d", MaxConversationHistory+4),
		u.ConversationHistory[len(u.ConversationHistory)-1].Content)
}

func TestUpdateStreakFirstContact(t *testing.T) {
	u := &User{}
	now := time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)

	u.UpdateStreak(now)

	assert.Equal(t, 1, u.Streak)
	require.NotNil(t, u.LastActiveDate)
}

func TestUpdateStreakSameDayKeeps(t *testing.T) {
	morning := time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)
	evening := time.Date(2026, 3, 10, 21, 0, 0, 0, time.UTC)

	u := &User{Streak: 4, LastActiveDate: &morning}
	u.UpdateStreak(evening)

	assert.Equal(t, 4, u.Streak)
}

func TestUpdateStreakNextDayExtends(t *testing.T) {
	yesterday := time.Date(2026, 3, 10, 23, 0, 0, 0, time.UTC)
	today := time.Date(2026, 3, 11, 1, 0, 0, 0, time.UTC)

	u := &User{Streak: 4, LastActiveDate: &yesterday}
	u.UpdateStreak(today)

	assert.Equal(t, 5, u.Streak)
}

func TestUpdateStreakGapResets(t *testing.T) {
	lastWeek := time.Date(2026, 3, 3, 9, 0, 0, 0, time.UTC)
	today := time.Date(2026, 3, 11, 9, 0, 0, 0, time.UTC)

	u := &User{Streak: 9, LastActiveDate: &lastWeek}
	u.UpdateStreak(today)

	assert.Equal(t, 1, u.Streak)
}

package chat

import (
	"errors"
	"fmt"
	"math/rand"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zhouzirui/skillsetter/backend/internal/model/chat"
)

const greeting = "Namaste! Welcome to SkillSetter."

func TestNewConversationSeedsGreeting(t *testing.T) {
	conv := NewConversation(greeting)

	messages := conv.Snapshot()
	require.Len(t, messages, 1)
	assert.Equal(t, chat.SpeakerAdvisor, messages[0].Speaker)
	assert.Equal(t, greeting, messages[0].Text)
	assert.NotEmpty(t, messages[0].ID)
	assert.False(t, messages[0].CreatedAt.IsZero())
}

func TestAppendCountsMatchSnapshotLength(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	conv := NewConversation(greeting)

	appends := 0
	for i := 0; i < 50; i++ {
		if rng.Intn(2) == 0 {
			_, err := conv.AppendUserMessage(fmt.Sprintf("question %d", i))
			require.NoError(t, err)
		} else {
			conv.AppendAdvisorMessage(fmt.Sprintf("answer %d", i))
		}
		appends++
		require.Len(t, conv.Snapshot(), appends+1)
	}
}

func TestAppendUserMessageRejectsBlankText(t *testing.T) {
	conv := NewConversation(greeting)

	for _, text := range []string{"", "   ", "\n\t"} {
		messages, err := conv.AppendUserMessage(text)
		assert.True(t, errors.Is(err, ErrInvalidInput))
		assert.Nil(t, messages)
		assert.Equal(t, 1, conv.Len())
	}
}

func TestAppendAdvisorMessageAllowsEmptyText(t *testing.T) {
	conv := NewConversation(greeting)

	messages := conv.AppendAdvisorMessage("")
	require.Len(t, messages, 2)
	assert.Equal(t, chat.SpeakerAdvisor, messages[1].Speaker)
	assert.Equal(t, "", messages[1].Text)
}

func TestSnapshotIsDefensiveCopy(t *testing.T) {
	conv := NewConversation(greeting)
	_, err := conv.AppendUserMessage("hi")
	require.NoError(t, err)

	snapshot := conv.Snapshot()
	snapshot[0].Text = "tampered"
	snapshot = append(snapshot, chat.Message{Text: "injected"})

	fresh := conv.Snapshot()
	assert.Len(t, fresh, 2)
	assert.Equal(t, greeting, fresh[0].Text)
}

func TestTimestampsNeverGoBackwards(t *testing.T) {
	base := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	ticks := []time.Time{base, base.Add(time.Minute), base.Add(-time.Hour), base.Add(2 * time.Minute)}
	i := 0
	clock := func() time.Time {
		tick := ticks[i]
		i++
		return tick
	}

	conv := NewConversation(greeting, WithClock(clock))
	_, err := conv.AppendUserMessage("one")
	require.NoError(t, err)
	conv.AppendAdvisorMessage("two")
	_, err = conv.AppendUserMessage("three")
	require.NoError(t, err)

	messages := conv.Snapshot()
	for j := 1; j < len(messages); j++ {
		assert.False(t, messages[j].CreatedAt.Before(messages[j-1].CreatedAt), "message %d went backwards", j)
	}
	assert.Equal(t, base.Add(time.Minute), messages[2].CreatedAt)
}

func TestMessageIDsAreUnique(t *testing.T) {
	conv := NewConversation(greeting)
	for i := 0; i < 20; i++ {
		conv.AppendAdvisorMessage("x")
	}

	seen := make(map[string]bool)
	for _, msg := range conv.Snapshot() {
		assert.False(t, seen[msg.ID], "duplicate id %s", msg.ID)
		seen[msg.ID] = true
	}
}

func TestWithIDGenerator(t *testing.T) {
	n := 0
	conv := NewConversation(greeting, WithIDGenerator(func() string {
		n++
		return fmt.Sprintf("m%d", n)
	}))
	messages, err := conv.AppendUserMessage("hello")
	require.NoError(t, err)
	assert.Equal(t, "m1", messages[0].ID)
	assert.Equal(t, "m2", messages[1].ID)
}

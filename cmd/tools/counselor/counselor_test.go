package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zhouzirui/skillsetter/backend/internal/model/catalog"
	chatModel "github.com/zhouzirui/skillsetter/backend/internal/model/chat"
	"github.com/zhouzirui/skillsetter/backend/internal/model/learner"
	"github.com/zhouzirui/skillsetter/backend/internal/model/path"
	"github.com/zhouzirui/skillsetter/backend/internal/service/advice"
	"github.com/zhouzirui/skillsetter/backend/internal/service/chat"
)

type cannedAdviser struct {
	calls atomic.Int32
	text  string
}

func (c *cannedAdviser) RequestAdvice(_ context.Context, _ []chatModel.Message, _, _ string) advice.Reply {
	c.calls.Add(1)
	return advice.Reply{Text: c.text}
}

type noPath struct{}

func (noPath) GenerateLearningPath(context.Context, learner.Profile) (path.Path, bool) {
	return nil, false
}

func TestChatLoopSkipsBlankLinesAndQuits(t *testing.T) {
	adviser := &cannedAdviser{text: "Focus on SQL next."}
	svc := chat.NewService(adviser, chat.WithGreeting("Namaste!"))

	in := strings.NewReader("\n   \nWhat should I learn?\n/quit\nnever asked\n")
	var out bytes.Buffer

	err := chatLoop(context.Background(), svc, "Setu", catalog.Default().DefaultProfile(), in, &out)
	require.NoError(t, err)

	assert.Equal(t, int32(1), adviser.calls.Load())
	assert.Contains(t, out.String(), "Setu: Namaste!")
	assert.Contains(t, out.String(), "Setu: Focus on SQL next.")
}

func TestChatLoopEndsAtEOF(t *testing.T) {
	adviser := &cannedAdviser{text: "ok"}
	svc := chat.NewService(adviser)

	err := chatLoop(context.Background(), svc, "Setu", learner.Profile{}, strings.NewReader("hello"), &bytes.Buffer{})
	require.NoError(t, err)
	assert.Equal(t, int32(1), adviser.calls.Load())
}

func TestPrintPathFallsBackToDefault(t *testing.T) {
	seed := catalog.Default()
	var out bytes.Buffer
	require.NoError(t, printPath(context.Background(), noPath{}, seed.DefaultPath, seed.DefaultProfile(), &out))

	text := out.String()
	assert.Contains(t, text, "Learning path (default)")
	for _, node := range seed.DefaultPath() {
		assert.Contains(t, text, node.Title)
	}
	assert.Contains(t, text, "Total:")
}

func TestLoadProfile(t *testing.T) {
	fallback := func() learner.Profile { return learner.Profile{UserID: "fallback"} }

	t.Run("empty path uses fallback", func(t *testing.T) {
		p, err := loadProfile("", fallback)
		require.NoError(t, err)
		assert.Equal(t, "fallback", p.UserID)
	})

	t.Run("reads yaml", func(t *testing.T) {
		file := filepath.Join(t.TempDir(), "me.yaml")
		data := `user_id: asha
skills:
  - name: Python
    proficiency: 60
aspirations:
  - title: Data Analyst
learning_styles:
  - Visual
`
		require.NoError(t, os.WriteFile(file, []byte(data), 0o600))

		p, err := loadProfile(file, fallback)
		require.NoError(t, err)
		assert.Equal(t, "asha", p.UserID)
		require.Len(t, p.Skills, 1)
		assert.Equal(t, "Python", p.Skills[0].Name)
		assert.Equal(t, []learner.LearningStyle{learner.Visual}, p.LearningStyles)
	})

	t.Run("rejects unknown style", func(t *testing.T) {
		file := filepath.Join(t.TempDir(), "bad.yaml")
		require.NoError(t, os.WriteFile(file, []byte("learning_styles: [Telepathic]\n"), 0o600))

		_, err := loadProfile(file, fallback)
		assert.ErrorIs(t, err, learner.ErrInvalidProfile)
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := loadProfile(filepath.Join(t.TempDir(), "nope.yaml"), fallback)
		assert.Error(t, err)
	})
}

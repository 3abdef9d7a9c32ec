package catalog

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zhouzirui/skillsetter/backend/internal/model/learner"
	"github.com/zhouzirui/skillsetter/backend/internal/model/path"
)

func TestDefaultCatalogLoads(t *testing.T) {
	c := Default()

	assert.Len(t, c.Roles(), 4)
	assert.Len(t, c.Skills(), 4)

	profile := c.DefaultProfile()
	require.Len(t, profile.Aspirations, 1)
	assert.Equal(t, "AI Data Engineer", profile.Aspirations[0].Title)
	assert.Empty(t, profile.LearningStyles)

	p := c.DefaultPath()
	require.Len(t, p, 5)
	assert.Equal(t, path.Completed, p[0].Status)
	assert.Equal(t, path.Active, p[1].Status)
	assert.Equal(t, path.Assessment, p[4].Type)
}

func TestDefaultPathIsACopy(t *testing.T) {
	c := Default()
	p := c.DefaultPath()
	p[0].Title = "changed"

	assert.Equal(t, "Python Fundamentals for Data", c.DefaultPath()[0].Title)
}

func TestParseRejectsUnknownReferences(t *testing.T) {
	_, err := Parse([]byte("skills: []\ndefault_profile:\n  skills: [ghost]\n"))
	require.Error(t, err)

	_, err = Parse([]byte("roles: []\ndefault_profile:\n  aspirations: [\"9\"]\n"))
	require.Error(t, err)
}

func TestOnboardReplacesStylesAndRole(t *testing.T) {
	c := Default()

	profile, err := c.Onboard(c.DefaultProfile(), []learner.LearningStyle{learner.Visual, learner.Kinesthetic}, "3")
	require.NoError(t, err)

	require.Len(t, profile.Aspirations, 1)
	assert.Equal(t, "Full Stack Developer", profile.Aspirations[0].Title)
	assert.Equal(t, []learner.LearningStyle{learner.Visual, learner.Kinesthetic}, profile.LearningStyles)
	assert.Len(t, profile.Skills, 4)
}

func TestOnboardRejectsUnknownRole(t *testing.T) {
	_, err := Default().Onboard(learner.Profile{}, nil, "42")
	require.Error(t, err)
	assert.True(t, errors.Is(err, learner.ErrInvalidProfile))
}

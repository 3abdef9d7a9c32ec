package catalog

import (
	_ "embed"
	"fmt"
	"sync"

	"gopkg.in/yaml.v3"

	"github.com/zhouzirui/skillsetter/backend/internal/model/learner"
	"github.com/zhouzirui/skillsetter/backend/internal/model/path"
)

//go:embed catalog.yaml
var seedYAML []byte

// Catalog holds the seed data every view starts from: job roles, skills and the static path.
type Catalog struct {
	roles       []learner.Aspiration
	skills      []learner.Skill
	profile     learner.Profile
	defaultPath path.Path
}

type document struct {
	Roles          []learner.Aspiration `yaml:"roles"`
	Skills         []learner.Skill      `yaml:"skills"`
	DefaultProfile struct {
		UserID         string                  `yaml:"user_id"`
		Skills         []string                `yaml:"skills"`
		Aspirations    []string                `yaml:"aspirations"`
		LearningStyles []learner.LearningStyle `yaml:"learning_styles"`
	} `yaml:"default_profile"`
	DefaultPath path.Path `yaml:"default_path"`
}

// Parse builds a catalog from YAML, resolving the default profile's skill and role ids.
func Parse(data []byte) (*Catalog, error) {
	var doc document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("decode catalog: %w", err)
	}

	c := &Catalog{
		roles:       doc.Roles,
		skills:      doc.Skills,
		defaultPath: doc.DefaultPath,
	}

	profile := learner.Profile{
		UserID:         doc.DefaultProfile.UserID,
		Skills:         make([]learner.Skill, 0, len(doc.DefaultProfile.Skills)),
		Aspirations:    make([]learner.Aspiration, 0, len(doc.DefaultProfile.Aspirations)),
		LearningStyles: append([]learner.LearningStyle{}, doc.DefaultProfile.LearningStyles...),
	}
	for _, id := range doc.DefaultProfile.Skills {
		skill, ok := c.SkillByID(id)
		if !ok {
			return nil, fmt.Errorf("default profile references unknown skill %q", id)
		}
		profile.Skills = append(profile.Skills, skill)
	}
	for _, id := range doc.DefaultProfile.Aspirations {
		role, ok := c.RoleByID(id)
		if !ok {
			return nil, fmt.Errorf("default profile references unknown role %q", id)
		}
		profile.Aspirations = append(profile.Aspirations, role)
	}
	if err := profile.Validate(); err != nil {
		return nil, err
	}
	c.profile = profile

	if len(c.defaultPath) > 0 {
		if err := path.Validate(c.defaultPath); err != nil {
			return nil, fmt.Errorf("default path: %w", err)
		}
	}
	return c, nil
}

var (
	defaultOnce sync.Once
	defaultCat  *Catalog
)

// Default returns the catalog compiled into the binary.
func Default() *Catalog {
	defaultOnce.Do(func() {
		c, err := Parse(seedYAML)
		if err != nil {
			panic(fmt.Sprintf("embedded catalog is invalid: %v", err))
		}
		defaultCat = c
	})
	return defaultCat
}

// Roles lists the known job roles.
func (c *Catalog) Roles() []learner.Aspiration {
	return append([]learner.Aspiration(nil), c.roles...)
}

// Skills lists the known skills.
func (c *Catalog) Skills() []learner.Skill {
	return append([]learner.Skill(nil), c.skills...)
}

// RoleByID looks up a job role by identifier.
func (c *Catalog) RoleByID(id string) (learner.Aspiration, bool) {
	for _, role := range c.roles {
		if role.ID == id {
			return role, true
		}
	}
	return learner.Aspiration{}, false
}

// SkillByID looks up a skill by identifier.
func (c *Catalog) SkillByID(id string) (learner.Skill, bool) {
	for _, skill := range c.skills {
		if skill.ID == id {
			return skill, true
		}
	}
	return learner.Skill{}, false
}

// DefaultProfile is the profile a session starts with before onboarding completes.
func (c *Catalog) DefaultProfile() learner.Profile {
	return c.profile.Clone()
}

// DefaultPath is the static path shown when no generated path is available.
func (c *Catalog) DefaultPath() path.Path {
	return c.defaultPath.Clone()
}

// Onboard merges onboarding answers into a profile: the chosen styles and role replace the old ones.
func (c *Catalog) Onboard(base learner.Profile, styles []learner.LearningStyle, roleID string) (learner.Profile, error) {
	out := base.Clone()
	out.LearningStyles = append([]learner.LearningStyle{}, styles...)
	out.Aspirations = []learner.Aspiration{}
	if roleID != "" {
		role, ok := c.RoleByID(roleID)
		if !ok {
			return learner.Profile{}, fmt.Errorf("%w: unknown role %q", learner.ErrInvalidProfile, roleID)
		}
		out.Aspirations = append(out.Aspirations, role)
	}
	if err := out.Validate(); err != nil {
		return learner.Profile{}, err
	}
	return out, nil
}

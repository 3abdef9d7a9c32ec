package learner

import (
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"
)

// ErrInvalidProfile is returned when a profile fails schema validation.
var ErrInvalidProfile = errors.New("invalid learner profile")

// LearningStyle labels how a learner prefers to take in material.
type LearningStyle string

const (
	Visual      LearningStyle = "Visual"
	Auditory    LearningStyle = "Auditory"
	Kinesthetic LearningStyle = "Kinesthetic"
	Reading     LearningStyle = "Reading/Writing"
)

// Styles lists every supported learning style in display order.
func Styles() []LearningStyle {
	return []LearningStyle{Visual, Auditory, Kinesthetic, Reading}
}

// Skill is a named competency with a 0-100 proficiency score.
type Skill struct {
	ID          string `json:"id,omitempty" yaml:"id"`
	Name        string `json:"name" yaml:"name" validate:"required"`
	Proficiency int    `json:"proficiency" yaml:"proficiency" validate:"gte=0,lte=100"`
	NSQFLevel   int    `json:"nsqfLevel,omitempty" yaml:"nsqf_level,omitempty" validate:"omitempty,gte=1,lte=10"`
}

// Aspiration is a target job role.
type Aspiration struct {
	ID             string   `json:"id,omitempty" yaml:"id"`
	Title          string   `json:"title" yaml:"title" validate:"required"`
	DemandScore    int      `json:"demandScore,omitempty" yaml:"demand_score,omitempty" validate:"gte=0,lte=100"`
	SalaryTrend    string   `json:"salaryTrend,omitempty" yaml:"salary_trend,omitempty" validate:"omitempty,oneof=up stable down"`
	RequiredSkills []string `json:"requiredSkills,omitempty" yaml:"required_skills,omitempty"`
}

// Profile is the read-only view of a learner that grounds advice and path generation.
// Every list may be empty.
type Profile struct {
	UserID         string          `json:"userId,omitempty" yaml:"user_id,omitempty"`
	Skills         []Skill         `json:"skills" yaml:"skills" validate:"dive"`
	Aspirations    []Aspiration    `json:"aspirations" yaml:"aspirations" validate:"dive"`
	LearningStyles []LearningStyle `json:"learningStyles" yaml:"learning_styles" validate:"dive,oneof=Visual Auditory Kinesthetic Reading/Writing"`
}

var validate = validator.New()

// Validate checks the profile against its schema.
func (p Profile) Validate() error {
	if err := validate.Struct(p); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidProfile, err)
	}
	return nil
}

// Clone returns a deep copy so callers cannot share backing arrays.
func (p Profile) Clone() Profile {
	out := Profile{UserID: p.UserID}
	if p.Skills != nil {
		out.Skills = append([]Skill(nil), p.Skills...)
	}
	if p.Aspirations != nil {
		out.Aspirations = make([]Aspiration, len(p.Aspirations))
		for i, a := range p.Aspirations {
			a.RequiredSkills = append([]string(nil), a.RequiredSkills...)
			out.Aspirations[i] = a
		}
	}
	if p.LearningStyles != nil {
		out.LearningStyles = append([]LearningStyle(nil), p.LearningStyles...)
	}
	return out
}

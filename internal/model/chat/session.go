package chat

import (
	"time"

	"github.com/zhouzirui/skillsetter/backend/internal/model/learner"
)

// Session captures a transient anonymous counselling session and the learner it advises.
type Session struct {
	ID        string          `json:"id"`
	Profile   learner.Profile `json:"profile"`
	CreatedAt time.Time       `json:"createdAt"`
}

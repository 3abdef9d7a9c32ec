package advice

import (
	"context"

	"github.com/zhouzirui/skillsetter/backend/internal/model/learner"
	"github.com/zhouzirui/skillsetter/backend/internal/model/path"
)

// Path sources reported by ResolvePath.
const (
	SourceGenerated = "generated"
	SourceDefault   = "default"
)

// PathGenerator produces a personalised learning path, or false when none is usable.
type PathGenerator interface {
	GenerateLearningPath(ctx context.Context, profile learner.Profile) (path.Path, bool)
}

// PathResult is a learning path and where it came from.
type PathResult struct {
	Source     string    `json:"source"`
	Nodes      path.Path `json:"nodes"`
	TotalHours float64   `json:"totalHours"`
}

// ResolvePath returns the generated path for profile, falling back to fallback() when generation yields nothing.
func ResolvePath(ctx context.Context, generator PathGenerator, profile learner.Profile, fallback func() path.Path) PathResult {
	if nodes, ok := generator.GenerateLearningPath(ctx, profile); ok {
		return PathResult{Source: SourceGenerated, Nodes: nodes, TotalHours: nodes.TotalHours()}
	}
	nodes := fallback()
	return PathResult{Source: SourceDefault, Nodes: nodes, TotalHours: nodes.TotalHours()}
}

package path

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

const (
	MinNodes = 4
	MaxNodes = 6
)

var (
	ErrNoPayload  = errors.New("no json array in payload")
	ErrNodeCount  = fmt.Errorf("path must contain %d to %d nodes", MinNodes, MaxNodes)
	ErrNodeFormat = errors.New("path node does not match the expected shape")
)

var validate = validator.New()

// Path is an ordered list of nodes.
type Path []Node

// Clone returns an independent copy.
func (p Path) Clone() Path {
	if p == nil {
		return nil
	}
	return append(Path(nil), p...)
}

// Parse decodes a generated payload into a path and checks its shape.
// The payload may wrap the array in prose or code fences.
func Parse(payload string) (Path, error) {
	trimmed := strings.TrimSpace(payload)
	start := strings.Index(trimmed, "[")
	end := strings.LastIndex(trimmed, "]")
	if start == -1 || end == -1 || end <= start {
		return nil, ErrNoPayload
	}

	var nodes Path
	if err := json.Unmarshal([]byte(trimmed[start:end+1]), &nodes); err != nil {
		return nil, fmt.Errorf("decode path: %w", err)
	}

	if err := Validate(nodes); err != nil {
		return nil, err
	}
	return nodes, nil
}

// Validate checks node count and every node's fields.
func Validate(nodes Path) error {
	if len(nodes) < MinNodes || len(nodes) > MaxNodes {
		return fmt.Errorf("%w: got %d", ErrNodeCount, len(nodes))
	}
	for i, node := range nodes {
		if err := validate.Struct(node); err != nil {
			return fmt.Errorf("%w: node %d: %v", ErrNodeFormat, i, err)
		}
	}
	return nil
}

// WithProgress marks the first node active and the rest locked.
func WithProgress(nodes Path) Path {
	out := nodes.Clone()
	for i := range out {
		if i == 0 {
			out[i].Status = Active
		} else {
			out[i].Status = Locked
		}
	}
	return out
}

// TotalHours sums node durations.
func (p Path) TotalHours() float64 {
	var total float64
	for _, node := range p {
		total += node.DurationHours
	}
	return total
}

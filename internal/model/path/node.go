package path

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// NodeType is the closed set of learning-path entry kinds.
type NodeType string

const (
	Course     NodeType = "course"
	Assessment NodeType = "assessment"
	Project    NodeType = "project"
)

// NodeStatus tracks a learner's progress through a node.
type NodeStatus string

const (
	Locked    NodeStatus = "locked"
	Active    NodeStatus = "active"
	Completed NodeStatus = "completed"
)

// NodeID accepts both JSON strings and numbers, since generated payloads use either.
type NodeID string

// UnmarshalJSON implements json.Unmarshaler.
func (id *NodeID) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*id = NodeID(s)
		return nil
	}

	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("node id must be a string or number: %w", err)
	}
	*id = NodeID(n.String())
	return nil
}

// Node is one step of a learning path.
type Node struct {
	ID            NodeID     `json:"id" yaml:"id" validate:"required"`
	Title         string     `json:"title" yaml:"title" validate:"required"`
	Type          NodeType   `json:"type" yaml:"type" validate:"oneof=course assessment project"`
	DurationHours float64    `json:"duration_hours" yaml:"duration_hours" validate:"gt=0"`
	Status        NodeStatus `json:"status,omitempty" yaml:"status,omitempty" validate:"omitempty,oneof=locked active completed"`
	Description   string     `json:"description" yaml:"description" validate:"required"`
}

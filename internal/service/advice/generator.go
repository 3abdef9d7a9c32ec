package advice

import "context"

// Role is the remote service's turn vocabulary.
type Role string

const (
	RoleUser  Role = "user"
	RoleModel Role = "model"
)

// Turn is one role-tagged entry of an outbound request.
type Turn struct {
	Role Role
	Text string
}

// Request is a single outbound generation call.
type Request struct {
	SystemInstruction string
	Turns             []Turn
	// Temperature is left nil to use the provider default.
	Temperature *float32
	// ResponseMIMEType asks for a structured payload, e.g. "application/json".
	ResponseMIMEType string
}

// Generator performs exactly one call to a remote text-generation service.
type Generator interface {
	Generate(ctx context.Context, req Request) (string, error)
}

// GeneratorFunc adapts a function to Generator.
type GeneratorFunc func(ctx context.Context, req Request) (string, error)

// Generate implements Generator.
func (f GeneratorFunc) Generate(ctx context.Context, req Request) (string, error) {
	return f(ctx, req)
}

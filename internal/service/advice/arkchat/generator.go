package arkchat

import (
	"context"
	"fmt"
	"strings"

	"github.com/cloudwego/eino/components/model"
	"github.com/cloudwego/eino/components/prompt"
	"github.com/cloudwego/eino/compose"
	"github.com/cloudwego/eino/schema"

	"github.com/zhouzirui/skillsetter/backend/internal/service/advice"
)

const jsonOnlyHint = "Respond with a single JSON value and no other text."

// Generator runs advice requests through an eino chain backed by an Ark chat model.
type Generator struct {
	chain compose.Runnable[map[string]any, *schema.Message]
}

// New compiles the chain around chatModel.
func New(ctx context.Context, chatModel model.ChatModel) (*Generator, error) {
	if chatModel == nil {
		return nil, fmt.Errorf("chat model is required")
	}

	promptTemplate := prompt.FromMessages(
		schema.FString,
		schema.MessagesPlaceholder("history", false),
	)

	chain := compose.NewChain[map[string]any, *schema.Message]()
	chain.AppendChatTemplate(promptTemplate)
	chain.AppendChatModel(chatModel)

	runnable, err := chain.Compile(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to compile advice chain: %w", err)
	}

	return &Generator{chain: runnable}, nil
}

// Generate implements advice.Generator.
func (g *Generator) Generate(ctx context.Context, req advice.Request) (string, error) {
	var opts []compose.Option
	if req.Temperature != nil {
		opts = append(opts, compose.WithChatModelOption(model.WithTemperature(*req.Temperature)))
	}

	response, err := g.chain.Invoke(ctx, map[string]any{"history": toMessages(req)}, opts...)
	if err != nil {
		return "", fmt.Errorf("failed to run advice chain: %w", err)
	}
	if response == nil {
		return "", nil
	}
	return response.Content, nil
}

// toMessages maps the request onto eino's role vocabulary. Ark has no response
// MIME hint, so structured requests get an extra system instruction instead.
func toMessages(req advice.Request) []*schema.Message {
	system := req.SystemInstruction
	if strings.Contains(req.ResponseMIMEType, "json") {
		if system != "" {
			system += "\n\n"
		}
		system += jsonOnlyHint
	}

	messages := make([]*schema.Message, 0, len(req.Turns)+1)
	if system != "" {
		messages = append(messages, schema.SystemMessage(system))
	}
	for _, turn := range req.Turns {
		switch turn.Role {
		case advice.RoleModel:
			messages = append(messages, schema.AssistantMessage(turn.Text, nil))
		default:
			messages = append(messages, schema.UserMessage(turn.Text))
		}
	}
	return messages
}

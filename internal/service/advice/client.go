package advice

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/zhouzirui/skillsetter/backend/internal/model/chat"
	"github.com/zhouzirui/skillsetter/backend/internal/model/learner"
	"github.com/zhouzirui/skillsetter/backend/internal/model/path"
	"github.com/zhouzirui/skillsetter/backend/internal/model/persona"
)

// Fallback sentinels delivered as advisor text when no real advice is available.
const (
	UnavailableText = "AI Service Unavailable: Please configure API Key."
	TroubleText     = "I'm having trouble connecting to the career database right now. Please try again."
)

// DefaultTemperature is used for free-text advice.
const DefaultTemperature float32 = 0.7

var (
	ErrMissingCredential = errors.New("advice service credential not configured")
	ErrTransport         = errors.New("advice service call failed")
	ErrMalformedResponse = errors.New("advice service returned no usable text")
)

// Reply is the outcome of one advice request. Text is always safe to show;
// Err records why a fallback sentinel was substituted.
type Reply struct {
	Text string
	Err  error
}

// Fallback reports whether Text is a sentinel rather than generated advice.
func (r Reply) Fallback() bool {
	return r.Err != nil
}

// Client turns transcripts into advice requests. It keeps no per-call state.
type Client struct {
	generator   Generator
	advisor     persona.Advisor
	temperature float32
	log         logrus.FieldLogger
}

// Option customises a Client.
type Option func(*Client)

// WithPersona overrides the advisor persona.
func WithPersona(advisor persona.Advisor) Option {
	return func(c *Client) { c.advisor = advisor }
}

// WithTemperature overrides the advice temperature.
func WithTemperature(temperature float32) Option {
	return func(c *Client) { c.temperature = temperature }
}

// WithLogger sets the diagnostic logger.
func WithLogger(log logrus.FieldLogger) Option {
	return func(c *Client) { c.log = log }
}

// NewClient creates a client. A nil generator means no credential was configured,
// which is permanent for the client's lifetime.
func NewClient(generator Generator, opts ...Option) *Client {
	c := &Client{
		generator:   generator,
		advisor:     persona.Default(),
		temperature: DefaultTemperature,
		log:         logrus.StandardLogger(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Available reports whether a remote service is configured.
func (c *Client) Available() bool {
	return c.generator != nil
}

// Persona returns the advisor persona used in requests.
func (c *Client) Persona() persona.Advisor {
	return c.advisor
}

// RequestAdvice sends the prior transcript plus utterance in one call and returns the reply.
// It never fails: every error becomes one of the fallback sentinels.
func (c *Client) RequestAdvice(ctx context.Context, transcript []chat.Message, contextSummary, utterance string) Reply {
	if !c.Available() {
		return Reply{Text: UnavailableText, Err: ErrMissingCredential}
	}

	temperature := c.temperature
	req := Request{
		SystemInstruction: buildSystemInstruction(c.advisor, contextSummary),
		Turns:             buildTurns(transcript, utterance),
		Temperature:       &temperature,
	}

	text, err := c.generator.Generate(ctx, req)
	if err != nil {
		err = fmt.Errorf("%w: %v", ErrTransport, err)
		c.log.WithError(err).WithField("turns", len(req.Turns)).Warn("[advice] generation failed")
		return Reply{Text: TroubleText, Err: err}
	}
	if strings.TrimSpace(text) == "" {
		c.log.WithField("turns", len(req.Turns)).Warn("[advice] empty response")
		return Reply{Text: TroubleText, Err: ErrMalformedResponse}
	}

	c.log.WithFields(logrus.Fields{"turns": len(req.Turns), "length": len(text)}).Debug("[advice] generated response")
	return Reply{Text: text}
}

// GenerateLearningPath asks for a structured path. The boolean is false when no
// usable path came back; callers should then show the default path.
func (c *Client) GenerateLearningPath(ctx context.Context, profile learner.Profile) (path.Path, bool) {
	if !c.Available() {
		return nil, false
	}
	if err := profile.Validate(); err != nil {
		c.log.WithError(err).Warn("[advice] refusing to forward invalid profile")
		return nil, false
	}

	prompt, err := buildPathPrompt(profile)
	if err != nil {
		c.log.WithError(err).Warn("[advice] path prompt failed")
		return nil, false
	}

	payload, err := c.generator.Generate(ctx, Request{
		Turns:            []Turn{{Role: RoleUser, Text: prompt}},
		ResponseMIMEType: jsonMIMEType,
	})
	if err != nil {
		c.log.WithError(fmt.Errorf("%w: %v", ErrTransport, err)).Warn("[advice] path generation failed")
		return nil, false
	}

	nodes, err := path.Parse(payload)
	if err != nil {
		c.log.WithError(fmt.Errorf("%w: %v", ErrMalformedResponse, err)).Warn("[advice] path payload rejected")
		return nil, false
	}

	c.log.WithField("nodes", len(nodes)).Debug("[advice] generated learning path")
	return path.WithProgress(nodes), true
}

package agent

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"
	"sync"

	"github.com/anthropics/anthropic-sdk-go"
)

const (
	defaultModel     = "claude-sonnet-4-5-20250929"
	defaultMaxTokens = 4096

	// Upper bound on tool round-trips within a single user turn.
	maxTurnIterations = 8
)

// TranscriptAppender persists conversation turns. Optional; a nil appender
// disables transcript logging.
type TranscriptAppender interface {
	Append(ctx context.Context, role, content string) error
}

// Options configures a Bridge.
type Options struct {
	Model      string
	MaxTokens  int
	Transcript TranscriptAppender
	Logger     *slog.Logger
}

// Bridge owns the conversation with the model. One turn runs at a time; the
// UI serializes turns behind its busy state, and the mutex keeps history
// consistent even if a caller does not.
type Bridge struct {
	client    anthropic.Client
	model     anthropic.Model
	maxTokens int64

	tools  []Tool
	byName map[string]Tool

	events     chan Event
	transcript TranscriptAppender
	log        *slog.Logger

	mu      sync.Mutex
	history []anthropic.MessageParam
}

// New builds a bridge using the environment's ANTHROPIC_API_KEY.
func New(opts Options) *Bridge {
	model := opts.Model
	if model == "" {
		model = defaultModel
	}
	maxTokens := opts.MaxTokens
	if maxTokens <= 0 {
		maxTokens = defaultMaxTokens
	}
	log := opts.Logger
	if log == nil {
		log = slog.Default()
	}

	b := &Bridge{
		client:     anthropic.NewClient(),
		model:      anthropic.Model(model),
		maxTokens:  int64(maxTokens),
		events:     make(chan Event, 64),
		transcript: opts.Transcript,
		log:        log,
		byName:     map[string]Tool{},
	}
	b.tools = []Tool{
		b.renderCardTool(),
		b.deleteCardTool(),
		b.setThemeTool(),
		companyDataTool(),
		weatherDataTool(),
		proverbsTool(),
	}
	for _, t := range b.tools {
		b.byName[t.Name()] = t
	}
	return b
}

// Events is the bridge-to-UI channel. The UI must keep draining it while a
// turn is in flight.
func (b *Bridge) Events() <-chan Event { return b.events }

func (b *Bridge) emit(ev Event) { b.events <- ev }

// SendUser runs one full conversation turn: user text in, tool round-trips
// until the model stops asking for tools. Blocking; callers run it off the
// UI goroutine. Always ends with TurnDoneEvent.
func (b *Bridge) SendUser(ctx context.Context, text string) {
	defer b.emit(TurnDoneEvent{})

	b.mu.Lock()
	defer b.mu.Unlock()

	b.appendTranscript(ctx, "user", text)
	msgs := append(b.history, anthropic.NewUserMessage(anthropic.NewTextBlock(text)))

	for i := 0; i < maxTurnIterations; i++ {
		resp, err := b.client.Messages.New(ctx, anthropic.MessageNewParams{
			Model:     b.model,
			MaxTokens: b.maxTokens,
			Messages:  msgs,
			System:    []anthropic.TextBlockParam{{Type: "text", Text: systemPrompt}},
			Tools:     b.anthropicTools(),
		})
		if err != nil {
			b.log.Error("turn failed", "err", err)
			b.emit(ErrorEvent{Err: err})
			b.history = msgs
			return
		}

		var assistant []anthropic.ContentBlockParamUnion
		var results []anthropic.ContentBlockParamUnion
		for _, blk := range resp.Content {
			switch v := blk.AsAny().(type) {
			case anthropic.TextBlock:
				if t := strings.TrimSpace(v.Text); t != "" {
					b.emit(TextEvent{Text: t})
					b.appendTranscript(ctx, "assistant", t)
				}
				assistant = append(assistant, anthropic.NewTextBlock(v.Text))
			case anthropic.ToolUseBlock:
				assistant = append(assistant, anthropic.NewToolUseBlock(v.ID, v.Input, v.Name))
				out, isErr := b.execTool(ctx, v.Name, v.Input)
				results = append(results, anthropic.NewToolResultBlock(v.ID, out, isErr))
			}
		}
		if len(assistant) > 0 {
			msgs = append(msgs, anthropic.MessageParam{
				Role:    anthropic.MessageParamRoleAssistant,
				Content: assistant,
			})
		}

		if resp.StopReason != anthropic.StopReasonToolUse || len(results) == 0 {
			break
		}
		msgs = append(msgs, anthropic.MessageParam{
			Role:    anthropic.MessageParamRoleUser,
			Content: results,
		})
	}

	b.history = msgs
}

// SendSubmission forwards a form submission as a structured user turn. The
// system prompt tells the model to expect this exact shape.
func (b *Bridge) SendSubmission(ctx context.Context, sub Submission) {
	b.SendUser(ctx, FormatSubmission(sub))
}

// FormatSubmission renders the canonical textual description of a form
// submission.
func FormatSubmission(sub Submission) string {
	data, err := json.MarshalIndent(sub.Payload, "", "  ")
	if err != nil {
		data = []byte("{}")
	}
	return fmt.Sprintf("[Form Submitted: %s]\nAction: %s\nData: %s", sub.CardTitle, sub.Action, data)
}

func (b *Bridge) execTool(ctx context.Context, name string, input json.RawMessage) (string, bool) {
	t, ok := b.byName[name]
	if !ok {
		return fmt.Sprintf("unknown tool %q", name), true
	}
	b.log.Info("tool call", "tool", name)
	out, err := t.Execute(ctx, input)
	if err != nil {
		b.log.Warn("tool error", "tool", name, "err", err)
		return err.Error(), true
	}
	return out, false
}

func (b *Bridge) anthropicTools() []anthropic.ToolUnionParam {
	tools := make([]anthropic.ToolUnionParam, 0, len(b.tools))
	for _, t := range b.tools {
		schema := t.InputSchema()
		inputSchema := anthropic.ToolInputSchemaParam{
			Type:       "object",
			Properties: propertiesToMap(schema.Properties),
		}
		if len(schema.Required) > 0 {
			inputSchema.Required = schema.Required
		}
		toolParam := anthropic.ToolParam{
			Name:        t.Name(),
			Description: anthropic.String(t.Description()),
			InputSchema: inputSchema,
		}
		tools = append(tools, anthropic.ToolUnionParam{OfTool: &toolParam})
	}
	return tools
}

func propertiesToMap(props map[string]Property) map[string]any {
	out := make(map[string]any, len(props))
	for name, p := range props {
		raw, err := json.Marshal(p)
		if err != nil {
			continue
		}
		var m map[string]any
		if err := json.Unmarshal(raw, &m); err != nil {
			continue
		}
		out[name] = m
	}
	return out
}

func (b *Bridge) appendTranscript(ctx context.Context, role, content string) {
	if b.transcript == nil {
		return
	}
	if err := b.transcript.Append(ctx, role, content); err != nil {
		b.log.Warn("transcript append failed", "err", err)
	}
}

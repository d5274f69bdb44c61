package tool

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
	contractx "github.com/tanpawarit/Slate-ADHD-Assistant/agent/contract"
	storex "github.com/tanpawarit/Slate-ADHD-Assistant/agent/store"
)

// Gateway dispatches tool actions against the persisted store. Dispatch is
// an exhaustive switch over contract.ActionKind; an unrecognized kind is an
// error result, not a fault.
type Gateway struct {
	store storex.Store
	now   func() time.Time
}

type GatewayOption func(*Gateway)

func WithNow(now func() time.Time) GatewayOption {
	return func(g *Gateway) {
		if now != nil {
			g.now = now
		}
	}
}

func NewGateway(store storex.Store, opts ...GatewayOption) (*Gateway, error) {
	if store == nil {
		return nil, errors.New("store is required")
	}
	g := &Gateway{
		store: store,
		now:   time.Now,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(g)
		}
	}

	names := make([]string, 0, len(Catalog()))
	for _, info := range Catalog() {
		names = append(names, info.Name)
	}
	log.Debug().Strs("tools", names).Msg("tool gateway ready")

	return g, nil
}

var _ contractx.ToolGateway = (*Gateway)(nil)

// Execute runs actions independently and in order. A failing action yields
// an error result in its slot; later actions still run.
func (g *Gateway) Execute(ctx context.Context, actions []contractx.ToolAction) []contractx.ToolResult {
	results := make([]contractx.ToolResult, 0, len(actions))
	for _, action := range actions {
		result := g.executeOne(ctx, action)
		if result.Status == contractx.StatusError {
			log.Debug().
				Str("kind", string(action.Kind)).
				Str("details", result.Details).
				Msg("tool action failed")
		}
		results = append(results, result)
	}
	return results
}

func (g *Gateway) executeOne(ctx context.Context, action contractx.ToolAction) contractx.ToolResult {
	switch action.Kind {
	case contractx.ActionGetUserContext:
		return g.getUserContext(ctx, action.Payload)
	case contractx.ActionScheduleEvent:
		return g.scheduleEvent(ctx, action.Payload)
	case contractx.ActionSetReminder:
		return g.setReminder(ctx, action.Payload)
	default:
		return contractx.ToolResult{
			Status:  contractx.StatusError,
			Details: fmt.Sprintf("Unknown tool: %s", action.Kind),
		}
	}
}

func (g *Gateway) getUserContext(ctx context.Context, payload map[string]any) contractx.ToolResult {
	userID := stringArg(payload, "user_id")
	log.Debug().Str("user_id", userID).Msg("reading user profile")

	profile, err := g.store.LoadProfile(ctx)
	if err != nil {
		if errors.Is(err, storex.ErrProfileNotFound) {
			// No stored profile is not a failure: the turn proceeds with
			// default preferences.
			return contractx.ToolResult{
				Status: contractx.StatusSuccess,
				Context: &contractx.ContextBundle{
					Status:  contractx.StatusSuccess,
					Context: preferencesContext(&storex.Profile{}),
				},
			}
		}
		return contractx.ToolResult{
			Status:  contractx.StatusError,
			Details: err.Error(),
			Context: &contractx.ContextBundle{Status: contractx.StatusError},
		}
	}

	return contractx.ToolResult{
		Status: contractx.StatusSuccess,
		Context: &contractx.ContextBundle{
			Status:  contractx.StatusSuccess,
			Context: preferencesContext(profile),
		},
	}
}

func (g *Gateway) scheduleEvent(ctx context.Context, payload map[string]any) contractx.ToolResult {
	description := stringArg(payload, "task_description")
	dueDate := stringArg(payload, "due_date")
	if description == "" || dueDate == "" {
		return contractx.ToolResult{
			Status:  contractx.StatusError,
			Details: "task_description and due_date are required",
		}
	}
	priority := stringArg(payload, "priority")
	if priority == "" {
		priority = defaultPriority
	}

	events, err := g.store.Events(ctx)
	if err != nil {
		return contractx.ToolResult{Status: contractx.StatusError, Details: err.Error()}
	}

	ev := &storex.CalendarEvent{
		ID:        fmt.Sprintf("evt_%d", len(events)+1),
		Title:     description,
		Due:       dueDate,
		Priority:  priority,
		Status:    "scheduled",
		CreatedAt: g.now(),
	}
	if err := g.store.AppendEvent(ctx, ev); err != nil {
		return contractx.ToolResult{Status: contractx.StatusError, Details: err.Error()}
	}

	log.Info().Str("event_id", ev.ID).Str("due", dueDate).Msg("event scheduled")
	return contractx.ToolResult{
		Status:  contractx.StatusSuccess,
		EventID: ev.ID,
		Details: fmt.Sprintf("Scheduled '%s' for %s. Total events: %d", description, dueDate, len(events)+1),
	}
}

func (g *Gateway) setReminder(ctx context.Context, payload map[string]any) contractx.ToolResult {
	description := stringArg(payload, "task_description")
	remindAt := stringArg(payload, "remind_at")
	if description == "" || remindAt == "" {
		return contractx.ToolResult{
			Status:  contractx.StatusError,
			Details: "task_description and remind_at are required",
		}
	}

	events, err := g.store.Events(ctx)
	if err != nil {
		return contractx.ToolResult{Status: contractx.StatusError, Details: err.Error()}
	}

	ev := &storex.CalendarEvent{
		ID:        fmt.Sprintf("rem_%d", len(events)+1),
		Title:     "REMINDER: " + description,
		Due:       remindAt,
		Type:      "notification",
		CreatedAt: g.now(),
	}
	if err := g.store.AppendEvent(ctx, ev); err != nil {
		return contractx.ToolResult{Status: contractx.StatusError, Details: err.Error()}
	}

	log.Info().Str("reminder_id", ev.ID).Str("remind_at", remindAt).Msg("reminder set")
	return contractx.ToolResult{
		Status:     contractx.StatusSuccess,
		ReminderID: ev.ID,
		Details:    fmt.Sprintf("Reminder set for '%s' at %s", description, remindAt),
	}
}

// preferencesContext flattens a profile into the one-line preference string
// the planner prompt consumes.
func preferencesContext(p *storex.Profile) contractx.TurnContext {
	name := p.Name
	if name == "" {
		name = "Unknown"
	}
	focusTime := p.Preferences.FocusTime
	if focusTime == "" {
		focusTime = "Unknown"
	}
	style := p.Preferences.CommunicationStyle
	if style == "" {
		style = "Standard"
	}

	raw := map[string]any{
		"name":  p.Name,
		"goals": p.Goals,
		"preferences": map[string]any{
			"focus_time":          p.Preferences.FocusTime,
			"communication_style": p.Preferences.CommunicationStyle,
		},
	}

	return contractx.TurnContext{
		UserPreferences: fmt.Sprintf(
			"User Name: %s. Focus Time: %s. Style: %s. Current Goals: %s.",
			name, focusTime, style, strings.Join(p.Goals, ", "),
		),
		RawProfile: raw,
	}
}

func stringArg(payload map[string]any, key string) string {
	if payload == nil {
		return ""
	}
	v, ok := payload[key]
	if !ok {
		return ""
	}
	s, ok := v.(string)
	if !ok {
		return ""
	}
	return strings.TrimSpace(s)
}

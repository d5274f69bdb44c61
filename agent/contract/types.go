package contract

// TaskItem is one atomic unit of work extracted from a brain dump.
type TaskItem struct {
	Description string   `json:"description"`
	Status      string   `json:"status"`
	Due         string   `json:"due,omitempty"`
	Priority    string   `json:"priority,omitempty"`
	Conflicts   []string `json:"conflicts,omitempty"`
}

const TaskStatusPending = "pending"

// NewTaskItem builds a pending task.
func NewTaskItem(description string) TaskItem {
	return TaskItem{
		Description: description,
		Status:      TaskStatusPending,
	}
}

// TaskPlan is the aggregate output of one decomposition call.
type TaskPlan struct {
	Tasks         []TaskItem `json:"tasks"`
	Encouragement string     `json:"encouragement,omitempty"`
	Conflicts     []string   `json:"conflicts,omitempty"`
}

// ActionKind is the closed set of side-effecting operations.
type ActionKind string

const (
	ActionScheduleEvent  ActionKind = "schedule_event"
	ActionSetReminder    ActionKind = "set_reminder"
	ActionGetUserContext ActionKind = "get_user_context"
)

// ToolAction is a deferred, not-yet-executed operation. Description is the
// human-readable confirmation line shown to the user; it carries no logic.
type ToolAction struct {
	Kind        ActionKind     `json:"kind"`
	Payload     map[string]any `json:"payload,omitempty"`
	Description string         `json:"description"`
}

const (
	StatusSuccess = "success"
	StatusError   = "error"
)

// ToolResult reports one executed action. Status is always set; the
// remaining fields depend on the action kind.
type ToolResult struct {
	Status     string         `json:"status"`
	Details    string         `json:"details,omitempty"`
	EventID    string         `json:"event_id,omitempty"`
	ReminderID string         `json:"reminder_id,omitempty"`
	Context    *ContextBundle `json:"context,omitempty"`
}

// ContextBundle is what get_user_context returns for a user id.
type ContextBundle struct {
	Status  string      `json:"status"`
	Context TurnContext `json:"context"`
}

// TurnContext is the per-turn user context handed to the planner.
type TurnContext struct {
	UserPreferences       string         `json:"user_preferences"`
	RawProfile            map[string]any `json:"raw_profile,omitempty"`
	EncouragementOverride string         `json:"encouragement_override,omitempty"`
}

// AgentTurn is the response envelope for one user message. It is terminal:
// the orchestrator builds it once and never mutates it afterwards.
type AgentTurn struct {
	UserFacingMessage    string       `json:"user_facing_message"`
	Tasks                []TaskItem   `json:"tasks,omitempty"`
	PendingActions       []ToolAction `json:"pending_actions,omitempty"`
	RequiresConfirmation bool         `json:"requires_confirmation"`
}

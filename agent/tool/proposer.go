package tool

import (
	"fmt"
	"strings"

	contractx "github.com/tanpawarit/Slate-ADHD-Assistant/agent/contract"
)

// ProposalPolicy selects how many actions a task yields.
type ProposalPolicy string

const (
	// PolicyAlwaysRemind emits a reminder for every task, plus a schedule
	// when the task has a due date. This is the default.
	PolicyAlwaysRemind ProposalPolicy = "always_remind"
	// PolicyScheduleOrRemind emits exactly one action per task: a schedule
	// when due is set, otherwise a reminder.
	PolicyScheduleOrRemind ProposalPolicy = "schedule_or_remind"
)

const (
	defaultRemindAt = "1 hour from now"
	defaultPriority = "normal"
)

// Proposer derives deferred tool actions from a task list. Output order
// follows input task order; when a task yields both a schedule and a
// reminder they are contiguous, schedule first.
type Proposer struct {
	policy ProposalPolicy
}

type ProposerOption func(*Proposer)

func WithPolicy(policy ProposalPolicy) ProposerOption {
	return func(p *Proposer) {
		switch policy {
		case PolicyAlwaysRemind, PolicyScheduleOrRemind:
			p.policy = policy
		}
	}
}

func NewProposer(opts ...ProposerOption) *Proposer {
	p := &Proposer{policy: PolicyAlwaysRemind}
	for _, opt := range opts {
		if opt != nil {
			opt(p)
		}
	}
	return p
}

func (p *Proposer) Propose(tasks []contractx.TaskItem) []contractx.ToolAction {
	actions := make([]contractx.ToolAction, 0, 2*len(tasks))
	for _, task := range tasks {
		due := strings.TrimSpace(task.Due)
		if due != "" {
			actions = append(actions, scheduleAction(task, due))
			if p.policy == PolicyScheduleOrRemind {
				continue
			}
		}

		remindAt := due
		if remindAt == "" {
			remindAt = defaultRemindAt
		}
		actions = append(actions, reminderAction(task, remindAt))
	}
	return actions
}

func scheduleAction(task contractx.TaskItem, due string) contractx.ToolAction {
	priority := strings.TrimSpace(task.Priority)
	if priority == "" {
		priority = defaultPriority
	}
	return contractx.ToolAction{
		Kind: contractx.ActionScheduleEvent,
		Payload: map[string]any{
			"task_description": task.Description,
			"due_date":         due,
			"priority":         priority,
		},
		Description: fmt.Sprintf("✅ Schedule '%s' for %s", task.Description, due),
	}
}

func reminderAction(task contractx.TaskItem, remindAt string) contractx.ToolAction {
	return contractx.ToolAction{
		Kind: contractx.ActionSetReminder,
		Payload: map[string]any{
			"task_description": task.Description,
			"remind_at":        remindAt,
		},
		Description: fmt.Sprintf("🔔 Set reminder for '%s' at %s", task.Description, remindAt),
	}
}

// ContextAction builds the get_user_context action the orchestrator runs at
// the start of every turn.
func ContextAction(userID string) contractx.ToolAction {
	return contractx.ToolAction{
		Kind: contractx.ActionGetUserContext,
		Payload: map[string]any{
			"user_id": userID,
		},
		Description: "Fetching user context.",
	}
}

package orchestratornode

import (
	"errors"
	"strings"

	contractx "github.com/tanpawarit/Slate-ADHD-Assistant/agent/contract"
)

var ErrInvalidMessage = errors.New("message is empty")

const DefaultUserID = "default_user"

// GraphInput is one turn invocation.
type GraphInput struct {
	UserID      string
	Text        string
	AutoConfirm bool
}

// GraphState flows through the turn graph. Exactly one instance exists per
// invocation; no node retains it after the turn completes.
type GraphState struct {
	UserID      string
	Text        string
	AutoConfirm bool

	Context contractx.TurnContext
	Plan    contractx.TaskPlan
	Pending []contractx.ToolAction
	Results []contractx.ToolResult
}

func ValidateRequest(in GraphInput) (*GraphState, error) {
	text := strings.TrimSpace(in.Text)
	if text == "" {
		return nil, ErrInvalidMessage
	}

	userID := strings.TrimSpace(in.UserID)
	if userID == "" {
		userID = DefaultUserID
	}

	return &GraphState{
		UserID:      userID,
		Text:        text,
		AutoConfirm: in.AutoConfirm,
	}, nil
}

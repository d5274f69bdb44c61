package orchestratornode

import (
	"fmt"
	"strings"

	contractx "github.com/tanpawarit/Slate-ADHD-Assistant/agent/contract"
)

// AssembleReply builds the terminal AgentTurn. Message sections appear in
// fixed order: encouragement, task list (or a clarification request),
// conflicts, then pending-action confirmation when the gate is still open.
func AssembleReply(in *GraphState) (contractx.AgentTurn, error) {
	if in == nil {
		return contractx.AgentTurn{}, fmt.Errorf("%w: graph state is nil", contractx.ErrValidation)
	}

	requiresConfirmation := !in.AutoConfirm

	var parts []string
	if enc := strings.TrimSpace(in.Plan.Encouragement); enc != "" {
		parts = append(parts, enc)
	}

	if len(in.Plan.Tasks) > 0 {
		parts = append(parts, "\nHere's what I've broken down for you:")
		for i, task := range in.Plan.Tasks {
			line := fmt.Sprintf("%d. %s", i+1, task.Description)
			if task.Due != "" {
				line += fmt.Sprintf(" (Due: %s)", task.Due)
			}
			if task.Priority != "" {
				line += fmt.Sprintf(" (Priority: %s)", task.Priority)
			}
			parts = append(parts, line)
		}
	} else {
		parts = append(parts, "I couldn't find any specific tasks to list. Could you rephrase?")
	}

	if len(in.Plan.Conflicts) > 0 {
		parts = append(parts, "\nPotential conflicts:")
		for _, conflict := range in.Plan.Conflicts {
			parts = append(parts, "- "+conflict)
		}
	}

	if requiresConfirmation && len(in.Pending) > 0 {
		parts = append(parts, "\nI'll set these up for you:")
		for _, action := range in.Pending {
			parts = append(parts, "- "+action.Description)
		}
		parts = append(parts, "\nSound good?")
	}

	return contractx.AgentTurn{
		UserFacingMessage:    strings.Join(parts, "\n"),
		Tasks:                in.Plan.Tasks,
		PendingActions:       in.Pending,
		RequiresConfirmation: requiresConfirmation,
	}, nil
}

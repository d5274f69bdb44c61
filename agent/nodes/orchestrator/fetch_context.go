package orchestratornode

import (
	"context"
	"fmt"
	"strings"

	"github.com/rs/zerolog/log"
	contractx "github.com/tanpawarit/Slate-ADHD-Assistant/agent/contract"
	toolx "github.com/tanpawarit/Slate-ADHD-Assistant/agent/tool"
)

// FetchContext resolves the user id to a context bundle through the tool
// gateway. A context-fetch failure never blocks the turn; the planner just
// runs with no known preferences.
func FetchContext(
	ctx context.Context,
	in *GraphState,
	tools contractx.ToolGateway,
	encouragementOverride string,
) (*GraphState, error) {
	if in == nil {
		return nil, fmt.Errorf("%w: graph state is nil", contractx.ErrValidation)
	}

	results := tools.Execute(ctx, []contractx.ToolAction{toolx.ContextAction(in.UserID)})
	if len(results) == 1 && results[0].Status == contractx.StatusSuccess && results[0].Context != nil {
		in.Context = results[0].Context.Context
	} else {
		log.Debug().Str("user_id", in.UserID).Msg("context fetch failed, continuing without preferences")
	}

	if override := strings.TrimSpace(encouragementOverride); override != "" {
		in.Context.EncouragementOverride = override
	}
	return in, nil
}

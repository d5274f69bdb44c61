package tool

import (
	"github.com/cloudwego/eino/schema"
	contractx "github.com/tanpawarit/Slate-ADHD-Assistant/agent/contract"
)

// Catalog describes the closed tool surface. The infos are metadata only;
// dispatch happens on contract.ActionKind in the gateway.
func Catalog() []*schema.ToolInfo {
	return []*schema.ToolInfo{
		{
			Name: string(contractx.ActionGetUserContext),
			Desc: "Retrieve the user's stored profile and preference summary.",
			ParamsOneOf: schema.NewParamsOneOfByParams(map[string]*schema.ParameterInfo{
				"user_id": {Type: schema.String, Desc: "User identifier", Required: true},
			}),
		},
		{
			Name: string(contractx.ActionScheduleEvent),
			Desc: "Add a task to the persistent calendar with a due date.",
			ParamsOneOf: schema.NewParamsOneOfByParams(map[string]*schema.ParameterInfo{
				"task_description": {Type: schema.String, Desc: "What to schedule", Required: true},
				"due_date":         {Type: schema.String, Desc: "When it is due", Required: true},
				"priority":         {Type: schema.String, Desc: "low/medium/high, defaults to normal"},
			}),
		},
		{
			Name: string(contractx.ActionSetReminder),
			Desc: "Log a reminder notification for a task.",
			ParamsOneOf: schema.NewParamsOneOfByParams(map[string]*schema.ParameterInfo{
				"task_description": {Type: schema.String, Desc: "What to be reminded of", Required: true},
				"remind_at":        {Type: schema.String, Desc: "When to remind", Required: true},
			}),
		},
	}
}

package main

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/rs/zerolog/log"
	decomposerx "github.com/tanpawarit/Slate-ADHD-Assistant/agent/agents/decomposer"
	orchestratorx "github.com/tanpawarit/Slate-ADHD-Assistant/agent/agents/orchestrator"
	contractx "github.com/tanpawarit/Slate-ADHD-Assistant/agent/contract"
	llmx "github.com/tanpawarit/Slate-ADHD-Assistant/agent/llm"
	promptx "github.com/tanpawarit/Slate-ADHD-Assistant/agent/prompt"
	storex "github.com/tanpawarit/Slate-ADHD-Assistant/agent/store"
	toolx "github.com/tanpawarit/Slate-ADHD-Assistant/agent/tool"
	configx "github.com/tanpawarit/Slate-ADHD-Assistant/pkg/config"
	_ "github.com/tanpawarit/Slate-ADHD-Assistant/pkg/logger/autoload"
	openrouterx "github.com/tanpawarit/Slate-ADHD-Assistant/pkg/openrouter"
)

type AppConfig struct {
	UserID                string `envconfig:"USER_ID" split_words:"true" default:"default_user"`
	AutoConfirm           bool   `envconfig:"AUTO_CONFIRM" split_words:"true" default:"false"`
	EncouragementOverride string `envconfig:"ENCOURAGEMENT_OVERRIDE" split_words:"true"`
	ProposalPolicy        string `envconfig:"PROPOSAL_POLICY" split_words:"true" default:"always_remind"`
}

func main() {
	ctx := context.Background()

	appCfg := configx.MustNew[AppConfig]("ASSISTANT")
	llmCfg := configx.MustNew[llmx.Config]("OPENROUTER")
	if err := llmCfg.Validate(); err != nil {
		log.Fatal().Err(err).Msg("invalid llm config")
	}

	storeCfg := configx.MustNew[storex.FileStoreConfig]("STORE")
	st, err := storex.NewFileStore(*storeCfg)
	if err != nil {
		log.Fatal().Err(err).Msg("create file store")
	}

	gateway, err := toolx.NewGateway(st)
	if err != nil {
		log.Fatal().Err(err).Msg("create tool gateway")
	}

	modelCfg := llmCfg.OpenRouterFor(llmx.RoleDecomposer)

	pingCtx, cancel := context.WithTimeout(ctx, modelCfg.Timeout)
	if err := openrouterx.Ping(pingCtx, modelCfg); err != nil {
		log.Warn().Err(err).Msg("openrouter unreachable, turns will fall back to degraded plans")
	}
	cancel()

	chatModel, err := modelCfg.New(ctx)
	if err != nil {
		log.Fatal().Err(err).Msg("create chat model")
	}

	prompts := promptx.LoadPromptSet()
	planner, err := decomposerx.New(ctx, chatModel, prompts.Decomposer)
	if err != nil {
		log.Fatal().Err(err).Msg("create decomposer")
	}

	proposer := toolx.NewProposer(toolx.WithPolicy(toolx.ProposalPolicy(appCfg.ProposalPolicy)))

	orch, err := orchestratorx.New(planner, proposer, gateway, orchestratorx.Config{
		EncouragementOverride: appCfg.EncouragementOverride,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("create orchestrator")
	}

	runREPL(ctx, orch, appCfg)
}

func runREPL(ctx context.Context, orch *orchestratorx.Orchestrator, cfg *AppConfig) {
	fmt.Println("Slate assistant ready. Type a brain dump, or 'quit' to exit.")

	scanner := bufio.NewScanner(os.Stdin)
	for {
		fmt.Print("> ")
		if !scanner.Scan() {
			return
		}
		text := strings.TrimSpace(scanner.Text())
		if text == "" {
			continue
		}
		if text == "quit" || text == "exit" {
			return
		}

		turn, err := orch.HandleMessage(ctx, cfg.UserID, text, cfg.AutoConfirm)
		if err != nil {
			log.Error().Err(err).Msg("turn failed")
			continue
		}

		fmt.Println(turn.UserFacingMessage)

		if turn.RequiresConfirmation && len(turn.PendingActions) > 0 {
			fmt.Print("[y/N] ")
			if !scanner.Scan() {
				return
			}
			answer := strings.ToLower(strings.TrimSpace(scanner.Text()))
			if answer != "y" && answer != "yes" {
				fmt.Println("Okay, nothing was scheduled.")
				continue
			}
			reportResults(orch.Confirm(ctx, turn.PendingActions))
		}
	}
}

func reportResults(results []contractx.ToolResult) {
	for _, result := range results {
		if result.Status == contractx.StatusSuccess {
			fmt.Println("✔ " + result.Details)
		} else {
			fmt.Println("✘ " + result.Details)
		}
	}
}

package llm

import (
	"fmt"
	"strings"
	"time"

	contractx "github.com/tanpawarit/Slate-ADHD-Assistant/agent/contract"
	openrouterx "github.com/tanpawarit/Slate-ADHD-Assistant/pkg/openrouter"
)

// Role selects which model a component gets. The decomposer runs at low
// temperature to bias toward deterministic structured output; the judge can
// run a different model entirely.
type Role string

const (
	RoleDecomposer Role = "decomposer"
	RoleJudge      Role = "judge"
)

type Config struct {
	BaseURL            string        `envconfig:"BASE_URL" split_words:"true" default:"https://openrouter.ai/api/v1"`
	APIKey             string        `envconfig:"API_KEY" split_words:"true" required:"true"`
	Model              string        `envconfig:"MODEL" split_words:"true" required:"true"`
	MaxCompletionToken int           `envconfig:"MAX_COMPLETION_TOKEN" split_words:"true" default:"2000"`
	Temperature        float32       `envconfig:"TEMPERATURE" split_words:"true" default:"0.2"`
	Timeout            time.Duration `envconfig:"TIMEOUT" split_words:"true" default:"30s"`
	SiteURL            string        `envconfig:"SITE_URL" split_words:"true"`
	SiteName           string        `envconfig:"SITE_NAME" split_words:"true"`

	JudgeModel       string  `envconfig:"JUDGE_MODEL" split_words:"true"`
	JudgeTemperature float32 `envconfig:"JUDGE_TEMPERATURE" split_words:"true" default:"-1"`
}

func (c Config) Validate() error {
	if strings.TrimSpace(c.APIKey) == "" {
		return fmt.Errorf("%w: openrouter api key is required", contractx.ErrValidation)
	}
	if strings.TrimSpace(c.Model) == "" {
		return fmt.Errorf("%w: default model is required", contractx.ErrValidation)
	}
	return nil
}

func (c Config) OpenRouterFor(role Role) openrouterx.Config {
	modelName := strings.TrimSpace(c.Model)
	temp := c.Temperature

	if role == RoleJudge {
		if v := strings.TrimSpace(c.JudgeModel); v != "" {
			modelName = v
		}
		if c.JudgeTemperature >= 0 {
			temp = c.JudgeTemperature
		}
	}

	maxCompletionToken := c.MaxCompletionToken
	return openrouterx.Config{
		BaseURL:            strings.TrimSpace(c.BaseURL),
		APIKey:             strings.TrimSpace(c.APIKey),
		Model:              modelName,
		MaxCompletionToken: &maxCompletionToken,
		Temperature:        temp,
		Timeout:            c.Timeout,
		SiteURL:            strings.TrimSpace(c.SiteURL),
		SiteName:           strings.TrimSpace(c.SiteName),
	}
}

package llm

import (
	"fmt"
	"strconv"

	"github.com/AlecAivazis/survey/v2"

	"github.com/genum-ai/genum/internal/config"
	"github.com/genum-ai/genum/internal/provider"
	"github.com/genum-ai/genum/internal/theme"
)

// askOne is swapped in tests
var askOne = survey.AskOne

// ConfigureLLM asks for the default vendor and model, vendor API keys and generation defaults
func ConfigureLLM(themeManager *theme.Manager, cfg *config.Config) error {
	themeManager.GetCurrentTheme().Info().Println("\n🤖 Configure vendors")

	providers := GetSupportedLLMProviders()

	var names []string
	defaultProviderName := providers[0].Name
	for _, p := range providers {
		names = append(names, p.Name)
		if p.ID == cfg.Defaults.Vendor {
			defaultProviderName = p.Name
		}
	}

	var selectedProvider string
	if err := askOne(&survey.Select{
		Message: "Choose the default vendor:",
		Options: names,
		Default: defaultProviderName,
	}, &selectedProvider); err != nil {
		return err
	}

	var chosen *Provider
	for _, p := range providers {
		if p.Name == selectedProvider {
			chosen = &p
			break
		}
	}
	if chosen == nil {
		return fmt.Errorf("no valid vendor selected")
	}
	if len(chosen.Models) == 0 {
		return fmt.Errorf("no models available for the selected vendor")
	}

	modelOptions := make([]string, 0, len(chosen.Models))
	defaultModel := chosen.Models[0].ModelID
	for _, m := range chosen.Models {
		modelOptions = append(modelOptions, m.ModelID)
		if m.ModelID == cfg.Defaults.Model {
			defaultModel = m.ModelID
		}
	}

	var selectedModel string
	if err := askOne(&survey.Select{
		Message: "Select the default model:",
		Options: modelOptions,
		Default: defaultModel,
	}, &selectedModel); err != nil {
		return err
	}

	if cfg.Vendors == nil {
		cfg.Vendors = map[provider.Vendor]config.VendorConfig{}
	}

	for _, p := range providers {
		if err := configureAPIKey(themeManager, cfg, p, p.ID == chosen.ID); err != nil {
			return err
		}
	}

	maxTokens := strconv.FormatInt(cfg.Defaults.MaxTokens, 10)
	if err := askOne(&survey.Input{
		Message: "Default maximum output tokens (0 uses the vendor default):",
		Default: maxTokens,
		Help:    "Defines the maximum length of the generated response.",
	}, &maxTokens, survey.WithValidator(isNonNegativeInt)); err != nil {
		return err
	}
	parsedMaxTokens, err := strconv.ParseInt(maxTokens, 10, 64)
	if err != nil {
		return fmt.Errorf("invalid max tokens %q: %w", maxTokens, err)
	}

	storeEnabled := cfg.Store.Enabled
	if err := askOne(&survey.Confirm{
		Message: "Record runs in the local usage ledger?",
		Default: storeEnabled,
		Help:    "Stores tokens, cost and latency of every run in a SQLite file under the app directory.",
	}, &storeEnabled); err != nil {
		return err
	}

	cfg.Defaults.Vendor = chosen.ID
	cfg.Defaults.Model = selectedModel
	cfg.Defaults.MaxTokens = parsedMaxTokens
	cfg.Store.Enabled = storeEnabled

	return nil
}

func configureAPIKey(themeManager *theme.Manager, cfg *config.Config, p Provider, required bool) error {
	current := cfg.Vendors[p.ID]

	if current.APIKey != "" {
		themeManager.GetCurrentTheme().Warning().Printf("%s API key is already set. Press Enter to keep it.\n", p.Name)
	}

	var apiKey string
	if err := askOne(&survey.Password{
		Message: fmt.Sprintf("%s API key:", p.Name),
		Help:    fmt.Sprintf("Leave empty to skip. %s in the environment overrides this value.", config.EnvKeys[p.ID]),
	}, &apiKey); err != nil {
		return err
	}

	if apiKey == "" {
		if required && current.APIKey == "" {
			themeManager.GetCurrentTheme().Warning().Printf("No key stored for the default vendor. Set %s before running prompts.\n", config.EnvKeys[p.ID])
		}
		return nil
	}

	current.APIKey = apiKey
	cfg.Vendors[p.ID] = current
	return nil
}

func isNonNegativeInt(ans interface{}) error {
	s, ok := ans.(string)
	if !ok {
		return fmt.Errorf("expected a number")
	}
	n, err := strconv.ParseInt(s, 10, 64)
	if err != nil || n < 0 {
		return fmt.Errorf("%q is not a non-negative integer", s)
	}
	return nil
}

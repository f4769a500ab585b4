// In file: internal/llm/models.go
package llm

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// DefaultModelID is used whenever a request names no model or an unknown
// one; an unrecognized model id is not an error.
const DefaultModelID = "meta-llama/Llama-3.3-70B-Instruct-Turbo-Free"

// reasoningModelID identifies the model that expects explicit step-by-step
// reasoning markers and the special prompt wrapping that goes with them.
const reasoningModelID = "deepseek-ai/DeepSeek-R1-Distill-Llama-70B-free"

// ModelSettings is one row of the static model configuration table.
//
// Together API constraint: prompt tokens + MaxTokens must stay under the
// 8193 total context window. Do not raise MaxTokens above 8192 unless the
// provider raises the ceiling.
type ModelSettings struct {
	ID                string  `yaml:"id"`
	Name              string  `yaml:"name"`
	Temperature       float64 `yaml:"temperature"`
	MaxTokens         int     `yaml:"max_tokens"`
	MaxTokensQuick    int     `yaml:"max_tokens_quick"`
	TopP              float64 `yaml:"top_p"`
	SupportsFunctions bool    `yaml:"supports_functions"`
}

// validModels is the built-in table, in stable listing order. Read-only
// after startup.
var validModels = []ModelSettings{
	{
		ID:                DefaultModelID,
		Name:              "Llama 3.3 70B",
		Temperature:       0.7,
		MaxTokens:         2048,
		MaxTokensQuick:    256,
		TopP:              0.9,
		SupportsFunctions: true,
	},
	{
		ID:                reasoningModelID,
		Name:              "DeepSeek R1",
		Temperature:       0.6,
		MaxTokens:         2048,
		MaxTokensQuick:    256,
		TopP:              0.95,
		SupportsFunctions: false,
	},
}

// LookupModel finds a model's settings by id.
func LookupModel(id string) (ModelSettings, bool) {
	for _, m := range validModels {
		if m.ID == id {
			return m, true
		}
	}
	return ModelSettings{}, false
}

// ResolveModel returns the settings for id, silently falling back to the
// default model when id is unknown.
func ResolveModel(id string) ModelSettings {
	if m, ok := LookupModel(id); ok {
		return m
	}
	def, _ := LookupModel(DefaultModelID)
	return def
}

// ModelCatalog returns a copy of the table for the /models listing.
func ModelCatalog() []ModelSettings {
	out := make([]ModelSettings, len(validModels))
	copy(out, validModels)
	return out
}

// IsReasoningModel reports whether the model expects reasoning-style
// prompt wrapping.
func IsReasoningModel(id string) bool {
	return id == reasoningModelID
}

// LoadModelOverrides merges a models.yaml file over the built-in table,
// matching entries by id. Overrides may not push MaxTokens past the
// provider ceiling.
func LoadModelOverrides(path string) error {
	raw, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read model overrides: %w", err)
	}

	var file struct {
		Models []ModelSettings `yaml:"models"`
	}
	if err := yaml.Unmarshal(raw, &file); err != nil {
		return fmt.Errorf("failed to parse model overrides: %w", err)
	}

	for _, override := range file.Models {
		if override.MaxTokens > 8192 || override.MaxTokensQuick > 8192 {
			return fmt.Errorf("model %q: max_tokens exceeds the provider's 8193 context ceiling", override.ID)
		}
		for i := range validModels {
			if validModels[i].ID == override.ID {
				validModels[i] = override
			}
		}
	}
	return nil
}

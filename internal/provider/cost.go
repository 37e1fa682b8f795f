package provider

const tokensPerPriceUnit = 1_000_000

// Prices are USD per million tokens
type Prices struct {
	Prompt     float64 `json:"prompt"`
	Completion float64 `json:"completion"`
}

// Cost is the USD cost of one call
type Cost struct {
	Prompt     float64 `json:"prompt"`
	Completion float64 `json:"completion"`
	Total      float64 `json:"total"`
}

// CalculateCost prices a call. No rounding is applied.
func CalculateCost(tokens Tokens, prices Prices) Cost {
	prompt := float64(tokens.Prompt) / tokensPerPriceUnit * prices.Prompt
	completion := float64(tokens.Completion) / tokensPerPriceUnit * prices.Completion
	return Cost{
		Prompt:     prompt,
		Completion: completion,
		Total:      prompt + completion,
	}
}

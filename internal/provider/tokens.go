package provider

// NewTokens applies the token policy shared by every adapter: the vendor-reported total
// wins when positive, otherwise prompt and completion are summed.
func NewTokens(prompt, completion, reported int64) Tokens {
	total := reported
	if total <= 0 {
		total = prompt + completion
	}
	return Tokens{Prompt: prompt, Completion: completion, Total: total}
}

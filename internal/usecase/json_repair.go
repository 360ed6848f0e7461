package usecase

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/wishbee-dev/wishbee-ai/internal/domain"
)

// RecoverJSON extracts the embedded JSON object from generation output.
// Models wrap results in markdown fences or surround them with prose even
// when told not to, so the text is de-fenced and sliced between the first
// '{' and last '}' before decoding into target.
func RecoverJSON(text string, target interface{}) error {
	cleaned := strings.TrimSpace(text)
	cleaned = strings.ReplaceAll(cleaned, "```json", "")
	cleaned = strings.ReplaceAll(cleaned, "```", "")

	start := strings.Index(cleaned, "{")
	end := strings.LastIndex(cleaned, "}")
	if start == -1 || end == -1 || end < start {
		return fmt.Errorf("%w: no JSON object found", domain.ErrMalformedResponse)
	}
	cleaned = cleaned[start : end+1]

	if err := json.Unmarshal([]byte(cleaned), target); err != nil {
		return fmt.Errorf("%w: %v", domain.ErrMalformedResponse, err)
	}

	return nil
}

package videogen

import "strings"

// ParsedArgs is the structured form of a /video invocation.
type ParsedArgs struct {
	// Prompt is the free-form generation prompt.
	Prompt string
	// Model overrides the configured model when non-empty.
	Model string
	// Duration overrides the configured duration when non-empty.
	Duration string
	// Aspect overrides the configured aspect ratio when non-empty.
	Aspect string
}

// ParseArgs scans command tokens left to right. The flags --model, --duration
// and --aspect each consume exactly one following token; a flag in the final
// position with no value is treated as prose and joins the prompt. All other
// tokens join the prompt with single spaces, in original order.
func ParseArgs(tokens []string) ParsedArgs {
	var parsed ParsedArgs
	var promptTokens []string

	for index := 0; index < len(tokens); index++ {
		token := tokens[index]
		hasValue := index+1 < len(tokens)
		switch token {
		case "--model":
			if hasValue {
				parsed.Model = tokens[index+1]
				index++
				continue
			}
		case "--duration":
			if hasValue {
				parsed.Duration = tokens[index+1]
				index++
				continue
			}
		case "--aspect":
			if hasValue {
				parsed.Aspect = tokens[index+1]
				index++
				continue
			}
		default:
			promptTokens = append(promptTokens, token)
			continue
		}
		// A trailing flag with no value falls through to plain text.
		promptTokens = append(promptTokens, token)
	}

	parsed.Prompt = strings.Join(promptTokens, " ")
	return parsed
}

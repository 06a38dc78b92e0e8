// Package llm integrates an optional local language model for answer
// generation.
package llm

import "context"

// Provider is an external text-generation service. Generate may take
// seconds; callers control cancellation through the context.
type Provider interface {
	Generate(ctx context.Context, prompt string) (string, error)
	Name() string
}

// BuildPrompt assembles a grounded question-answering prompt from retrieved
// document context.
func BuildPrompt(question, context string) string {
	if context == "" {
		context = "No specific context available."
	}
	return "You are a helpful assistant answering questions about a document.\n" +
		"Answer using only the provided context. If the context does not contain " +
		"the answer, say so briefly.\n\n" +
		"CONTEXT:\n" + context + "\n\n" +
		"QUESTION:\n" + question + "\n\n" +
		"ANSWER:\n"
}

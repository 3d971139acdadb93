// Package llm holds what the text generator adapters share: the prompt that
// turns a job description and a résumé into a cover letter.
//
// Adapters live in the ollama and openai subpackages.
package llm

import (
	"fmt"
	"strings"
)

// SystemPrompt instructs the model to write a cover letter.
const SystemPrompt = `You write concise, specific cover letters.
Use only facts present in the candidate's resume. Do not invent employers, dates or skills.
Address the requirements of the job description directly. Write plain text without a subject line.`

// maxInputChars caps each input so a pasted posting cannot exhaust the context window.
const maxInputChars = 12000

// UserPrompt builds the user message from the job description and the
// requirement text (the chosen résumé).
func UserPrompt(jobDescription, requirements string) string {
	return fmt.Sprintf("Job description:\n%s\n\nCandidate resume:\n%s\n\nWrite the cover letter.",
		truncate(strings.TrimSpace(jobDescription)), truncate(strings.TrimSpace(requirements)))
}

func truncate(s string) string {
	r := []rune(s)
	if len(r) <= maxInputChars {
		return s
	}
	return string(r[:maxInputChars])
}

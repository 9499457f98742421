package docsearch

import (
	"fmt"
	"strings"
)

// SystemPrompt instructs a language model to answer from the supplied
// documentation only.
const SystemPrompt = "You are a helpful assistant answering questions about product documentation. " +
	"Answer based only on the documentation provided. If the answer is not in the documentation, say so. " +
	"Cite the sources you used by their URL."

// BuildUserPrompt renders an answer request as the user turn of a model call.
func BuildUserPrompt(req *AnswerRequest) string {
	var sb strings.Builder
	sb.WriteString("<documentation>\n")
	sb.WriteString(req.Context)
	sb.WriteString("\n</documentation>\n\n")
	if len(req.Sources) > 0 {
		sb.WriteString("<sources>\n")
		for i, src := range req.Sources {
			fmt.Fprintf(&sb, "%d. %s (%s)\n", i+1, src.Title, src.URL)
		}
		sb.WriteString("</sources>\n\n")
	}
	fmt.Fprintf(&sb, "Question: %s", req.Question)
	return sb.String()
}

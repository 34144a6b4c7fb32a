package gemini

import "fmt"

// buildPrompt concatenates instructions and document content into explicitly
// delimited sections and directs the model to answer only from the content.
func buildPrompt(query, content string) string {
	return fmt.Sprintf(`You are an AI assistant specialized in analyzing and exploring document content.

INSTRUCTIONS:
%s

DOCUMENT CONTENT:
%s

Respond directly to the instructions above based solely on the document content provided.
Be concise and accurate. If the answer is not in the document, say so clearly.`, query, content)
}

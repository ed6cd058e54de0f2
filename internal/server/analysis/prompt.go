package analysis

import (
	"fmt"

	"github.com/medassist/symptomchecker/internal/server/symptomchecks"
)

// systemInstruction is sent with every analysis request and fixes the shape
// of the assessment the provider is asked to produce.
const systemInstruction = `You are a medical AI assistant. Analyze the provided symptoms and give a professional medical assessment.
Always include:
1. Possible conditions based on symptoms
2. Severity assessment
3. Recommended next steps
4. When to seek immediate medical attention

IMPORTANT: This is for informational purposes only and should not replace professional medical advice.`

// fallbackText is substituted when the provider is unavailable after all
// retries. It is returned as a successful analysis result so every persisted
// record carries non-empty text.
const fallbackText = `I apologize, but I'm currently unable to analyze your symptoms due to a technical issue.

Please consider:
1. Contacting a healthcare provider for professional medical advice
2. Visiting an emergency room if symptoms are severe
3. Trying again later

This is for informational purposes only and should not replace professional medical advice.`

// buildPrompt renders the deterministic user prompt for a submission. Absent
// notes are replaced by an explicit "None" placeholder.
func buildPrompt(s symptomchecks.Submission) string {
	notes := s.AdditionalNotes
	if notes == "" {
		notes = "None"
	}

	return fmt.Sprintf(`Please analyze the following patient symptoms:

Patient Information:
- Age: %d years
- Sex: %s
- Symptoms: %s
- Duration: %s
- Severity (1-10): %d
- Additional Notes: %s

Please provide a comprehensive analysis including:
1. Possible medical conditions
2. Severity assessment
3. Recommended next steps
4. When to seek immediate medical attention
5. General health recommendations

Format your response in a clear, structured manner.`,
		s.Age, s.Sex, s.Symptoms, s.Duration, s.Severity, notes)
}

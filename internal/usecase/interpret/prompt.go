package interpret

import (
	"fmt"

	"github.com/kailas-cloud/hrsearch/internal/domain"
)

const promptTemplate = `You are an HR specialist. Analyze a request to find an employee and extract metadata about the required and adjacent skills.
For example, the request "Looking for a Python backend developer" implies someone who knows FastAPI, Django, SQL and so on.

Request: %q

Extract and return as JSON:
- "skills": list of skills
- "grade": required level, one of: Junior, Middle, Senior, Lead. If the level cannot be determined from the request, use Middle.

Examples:
- "Нужен Python разработчик" -> {"skills": ["Django", "SQL"], "grade": "Middle"}
- "Ищем Senior Data Scientist" -> {"skills": ["PyTorch", "TensorFlow", "Математическая статистика"], "grade": "Senior"}

Return only JSON with no additional text.`

func buildRequest(raw string, maxTokens int, temperature float32) domain.CompletionRequest {
	return domain.CompletionRequest{
		Messages: []domain.Message{
			{Role: domain.RoleUser, Content: fmt.Sprintf(promptTemplate, raw)},
		},
		MaxTokens:   maxTokens,
		Temperature: temperature,
	}
}

// internal/rerank/models.go
package rerank

// Judgment is the external model's opinion of a single candidate.
type Judgment struct {
	Score     float64 `json:"score"`
	Rationale string  `json:"rationale"`
}

type chatRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	Temperature float64       `json:"temperature"`
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatResponse struct {
	Choices []struct {
		Message chatMessage `json:"message"`
	} `json:"choices"`
}

type candidateJudgment struct {
	ID        string  `json:"id"`
	Score     float64 `json:"score"`
	Rationale string  `json:"rationale"`
}

package llm

import (
	"encoding/json"
	"fmt"
	"strings"
)

func cleanJSONResponse(content string) string {
	content = strings.TrimSpace(content)
	content = strings.TrimPrefix(content, "```json")
	content = strings.TrimPrefix(content, "```")
	content = strings.TrimSuffix(content, "```")
	content = strings.TrimSpace(content)

	// Some model responses include extra prose around JSON.
	start := strings.Index(content, "{")
	end := strings.LastIndex(content, "}")
	if start >= 0 && end > start {
		content = content[start : end+1]
	}
	return content
}

// parseTopStories decodes the ranking model's response and enforces the
// topN cap. Out-of-range story numbers make the whole response malformed:
// the caller cannot resolve them back to a source article.
func parseTopStories(content string, poolSize, topN int) ([]RankedStory, error) {
	cleaned := cleanJSONResponse(content)

	var parsed struct {
		TopStories []RankedStory `json:"topStories"`
	}
	if err := json.Unmarshal([]byte(cleaned), &parsed); err != nil {
		return nil, fmt.Errorf("failed to parse ranking response: %w, content: %s", err, content)
	}

	if len(parsed.TopStories) == 0 {
		return nil, fmt.Errorf("no top stories in ranking response, content: %s", content)
	}

	for _, story := range parsed.TopStories {
		if story.StoryNumber < 1 || story.StoryNumber > poolSize {
			return nil, fmt.Errorf("story number %d out of range 1-%d, content: %s",
				story.StoryNumber, poolSize, content)
		}
	}

	if len(parsed.TopStories) > topN {
		parsed.TopStories = parsed.TopStories[:topN]
	}

	return parsed.TopStories, nil
}

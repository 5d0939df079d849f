package curation

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"curator/internal/logging"
	"curator/internal/services"
	"curator/internal/services/llm"
)

const decomposeSystemPrompt = `Sen bir eğitim içeriği planlayıcısısın. Verilen konuyu öğrenmek için izlenmesi gereken alt başlıkları mantıklı bir sırayla listelersin.`

const decomposePromptTemplate = `Konu: %s

Bu konuyu öğrenmek isteyen biri için 3 ile 8 arasında alt başlık belirle.
Alt başlıkları öğrenme sırasına göre diz.
Yanıtı yalnızca JSON dizisi olarak ver, örnek: ["Alt başlık 1", "Alt başlık 2"]`

// LLMDecomposer splits a topic into ordered sub-topics using a language model.
type LLMDecomposer struct {
	completer llm.Completer
	logger    *slog.Logger
}

// NewLLMDecomposer wraps completer.
func NewLLMDecomposer(completer llm.Completer, logger *slog.Logger) *LLMDecomposer {
	return &LLMDecomposer{
		completer: completer,
		logger:    logging.NewComponentLogger(logger, "decomposer"),
	}
}

// Decompose returns the sub-topics of topic in model order.
func (d *LLMDecomposer) Decompose(ctx context.Context, topic string) ([]string, error) {
	topic = strings.TrimSpace(topic)
	if topic == "" {
		return nil, services.Wrap(services.ErrValidation, "decomposer", "decompose", "topic is empty", nil)
	}
	if d.completer == nil {
		return nil, services.Wrap(services.ErrConfiguration, "decomposer", "decompose", "no language model configured", nil)
	}
	reply, err := d.completer.Complete(ctx, decomposeSystemPrompt, fmt.Sprintf(decomposePromptTemplate, topic))
	if err != nil {
		return nil, err
	}
	subtopics := ParseSubtopics(reply)
	d.logger.InfoContext(ctx, "topic decomposed",
		logging.String(logging.FieldTopic, topic),
		logging.Int("subtopic_count", len(subtopics)),
	)
	if len(subtopics) == 0 {
		return nil, services.Wrap(services.ErrExternalTool, "decomposer", "decompose",
			"model returned no sub-topics: "+llm.SummarizePayload(reply), nil)
	}
	return subtopics, nil
}

// ParseSubtopics reads a model reply as a JSON string array, falling back to
// one title per line with list numbering and bullets removed. Titles are
// trimmed and de-duplicated case-insensitively in first-seen order.
func ParseSubtopics(reply string) []string {
	var items []string
	if err := llm.DecodeLLMJSON(reply, &items); err != nil {
		items = splitListLines(reply)
	}
	seen := make(map[string]struct{}, len(items))
	out := make([]string, 0, len(items))
	for _, item := range items {
		item = strings.TrimSpace(item)
		if item == "" {
			continue
		}
		key := strings.ToLower(item)
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, item)
	}
	return out
}

func splitListLines(reply string) []string {
	var items []string
	for _, line := range strings.Split(strings.ReplaceAll(reply, "\r\n", "\n"), "\n") {
		line = strings.TrimSpace(line)
		if strings.HasPrefix(line, "```") {
			continue
		}
		line = strings.TrimLeft(line, "0123456789.-*) \t")
		line = strings.Trim(line, "\"'`,[] \t")
		if line != "" {
			items = append(items, line)
		}
	}
	return items
}

package scoring

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"curator/internal/logging"
	"curator/internal/services"
	"curator/internal/services/llm"
	"curator/internal/textutil"
)

// DefaultMaxTranscriptChars bounds the transcript prefix sent to the judge.
const DefaultMaxTranscriptChars = 2000

const systemPrompt = `Sen eğitim içeriklerini değerlendiren bir uzmansın. Verilen YouTube video transkriptini belirtilen konuya uygunluk açısından değerlendirirsin. Yanıtını yalnızca istenen JSON nesnesi olarak ver; açıklama, markdown veya ek metin yazma.`

const userPromptTemplate = `Aşağıda bir YouTube videosunun transkripti verilmiştir. Lütfen bu transkripti analiz ederek, videonun belirtilen konuya ne kadar uygun olduğunu çok boyutlu olarak değerlendir.

---

## Konu:
"%s"

## Video Transkripti:
%s

---

Her alanı 0 ile 10 arasında bir tam sayı ile puanla:
- kapsam_uyumu: videonun konuyu ne kadar kapsadığı
- bilgi_derinligi: verilen bilginin derinliği ve doğruluğu
- anlatim_tarzi: anlatımın açıklığı ve akıcılığı
- hedef_kitle: konuyu öğrenmek isteyen biri için uygunluğu
- yapisal_tutarlilik: içeriğin düzeni ve tutarlılığı
- genel_puan: tüm boyutları dikkate alan genel puan

Yanıtı sadece aşağıdaki JSON formatında ver:
{
  "kapsam_uyumu": int,
  "bilgi_derinligi": int,
  "anlatim_tarzi": int,
  "hedef_kitle": int,
  "yapisal_tutarlilik": int,
  "genel_puan": int,
  "yorum": "kısa bir genel yorum"
}`

// Scorer judges transcripts against a topic.
type Scorer struct {
	judge    llm.Completer
	maxChars int
	logger   *slog.Logger
}

// NewScorer builds a Scorer. maxChars of zero or less uses DefaultMaxTranscriptChars.
func NewScorer(judge llm.Completer, maxChars int, logger *slog.Logger) *Scorer {
	if maxChars <= 0 {
		maxChars = DefaultMaxTranscriptChars
	}
	return &Scorer{
		judge:    judge,
		maxChars: maxChars,
		logger:   logging.NewComponentLogger(logger, "scorer"),
	}
}

// BuildPrompt returns the user prompt for a transcript and topic, with the
// transcript truncated to maxChars runes.
func BuildPrompt(transcriptText, topic string, maxChars int) string {
	return fmt.Sprintf(userPromptTemplate, strings.TrimSpace(topic), textutil.Truncate(strings.TrimSpace(transcriptText), maxChars))
}

// Score always returns a record. Judge failures and unparsable replies yield
// the neutral record with Degraded set.
func (s *Scorer) Score(ctx context.Context, transcriptText, topic string) Record {
	if s.judge == nil {
		return Neutral()
	}
	started := time.Now()
	reply, err := s.judge.Complete(ctx, systemPrompt, BuildPrompt(transcriptText, topic, s.maxChars))
	if err != nil {
		logging.WarnWithContext(ctx, s.logger, "judge call failed; using neutral score", "score_judge_failed",
			logging.String(logging.FieldErrorHint, "check llm.api_key, llm.base_url and provider status"),
			logging.String(logging.FieldImpact, "candidate competes with a zero score"),
			logging.String("reason", services.Classify(err)),
			logging.Error(err),
		)
		return Neutral()
	}

	rec, ok := ParseResponse(reply)
	if !ok {
		logging.WarnWithContext(ctx, s.logger, "judge reply had no usable score; using neutral score", "score_parse_failed",
			logging.String(logging.FieldErrorHint, "the model did not return the requested JSON object"),
			logging.String(logging.FieldImpact, "candidate competes with a zero score"),
			logging.String("reply", llm.SummarizePayload(reply)),
		)
		return rec
	}
	s.logger.InfoContext(ctx, "transcript scored",
		logging.Int("genel_puan", rec.GenelPuan),
		logging.Duration("elapsed", time.Since(started)),
	)
	return rec
}

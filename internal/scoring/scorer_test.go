package scoring

import (
	"context"
	"errors"
	"strings"
	"testing"
	"unicode/utf8"

	"curator/internal/logging"
)

type fakeJudge struct {
	reply  string
	err    error
	system string
	user   string
	calls  int
}

func (f *fakeJudge) Complete(_ context.Context, system, user string) (string, error) {
	f.calls++
	f.system = system
	f.user = user
	return f.reply, f.err
}

func TestParseResponseExtractsFromProse(t *testing.T) {
	replies := []string{
		`Elbette! İşte değerlendirmem: {"kapsam_uyumu": 9, "bilgi_derinligi": 7, "anlatim_tarzi": 8, "hedef_kitle": 6, "yapisal_tutarlilik": 5, "genel_puan": 8, "yorum": "İyi bir giriş"} Umarım yardımcı olur.`,
		"```json\n{\"kapsam_uyumu\": 9, \"bilgi_derinligi\": 7, \"anlatim_tarzi\": 8, \"hedef_kitle\": 6, \"yapisal_tutarlilik\": 5, \"genel_puan\": 8, \"yorum\": \"İyi bir giriş\"}\n```",
	}
	for _, reply := range replies {
		rec, ok := ParseResponse(reply)
		if !ok {
			t.Fatalf("expected parse success for %q", reply)
		}
		want := Record{KapsamUyumu: 9, BilgiDerinligi: 7, AnlatimTarzi: 8, HedefKitle: 6, YapisalTutarlilik: 5, GenelPuan: 8, Yorum: "İyi bir giriş"}
		if rec != want {
			t.Fatalf("ParseResponse = %+v, want %+v", rec, want)
		}
	}
}

func TestParseResponseNeutralOnFailure(t *testing.T) {
	replies := []string{
		"",
		"Bu videoyu değerlendiremiyorum.",
		`{"kapsam_uyumu": 9, "genel_puan": }`,
		`{"kapsam_uyumu": 9, "yorum": "genel puan yok"}`,
		`{"genel_puan": "yüksek"}`,
	}
	for _, reply := range replies {
		rec, ok := ParseResponse(reply)
		if ok {
			t.Fatalf("expected failure for %q", reply)
		}
		if rec.GenelPuan != 0 || rec.Yorum != NeutralComment || !rec.Degraded {
			t.Fatalf("expected neutral record for %q, got %+v", reply, rec)
		}
	}
}

func TestParseResponseCoercesAndClamps(t *testing.T) {
	rec, ok := ParseResponse(`{"kapsam_uyumu": "7", "bilgi_derinligi": 12, "anlatim_tarzi": -3, "hedef_kitle": 6.6, "yapisal_tutarlilik": "8/10", "genel_puan": "9.4", "yorum": 42}`)
	if !ok {
		t.Fatal("expected parse success")
	}
	if rec.KapsamUyumu != 7 || rec.BilgiDerinligi != 10 || rec.AnlatimTarzi != 0 || rec.HedefKitle != 7 || rec.YapisalTutarlilik != 8 || rec.GenelPuan != 9 {
		t.Fatalf("unexpected axes %+v", rec)
	}
	if rec.Yorum != "42" {
		t.Fatalf("unexpected comment %q", rec.Yorum)
	}
}

func TestParseResponseClampsOutOfRangeNumbers(t *testing.T) {
	cases := []struct {
		raw  string
		want int
	}{
		{`{"genel_puan": 1e20}`, 10},
		{`{"genel_puan": -1e20}`, 0},
		{`{"genel_puan": 95}`, 10},
		{`{"genel_puan": "Infinity"}`, 0},
	}
	for _, tc := range cases {
		rec, _ := ParseResponse(tc.raw)
		if rec.GenelPuan != tc.want {
			t.Fatalf("ParseResponse(%s) genel_puan = %d, want %d", tc.raw, rec.GenelPuan, tc.want)
		}
	}
}

func TestParseResponseNestedObjectFallsBack(t *testing.T) {
	rec, ok := ParseResponse(`{"genel_puan": 6, "detay": {"not": "iç içe"}}`)
	if !ok || rec.GenelPuan != 6 {
		t.Fatalf("expected fallback decode, got %+v ok=%v", rec, ok)
	}
}

func TestScoreTruncatesTranscript(t *testing.T) {
	judge := &fakeJudge{reply: `{"genel_puan": 7}`}
	scorer := NewScorer(judge, 10, logging.NewNop())
	rec := scorer.Score(context.Background(), "çççççççççç-bu kısım gönderilmez", "Döngüler")
	if rec.GenelPuan != 7 || rec.Degraded {
		t.Fatalf("unexpected record %+v", rec)
	}
	if !strings.Contains(judge.user, "çççççççççç\n") || strings.Contains(judge.user, "gönderilmez") {
		t.Fatalf("expected transcript truncated to 10 runes, prompt:\n%s", judge.user)
	}
	if !strings.Contains(judge.user, `"Döngüler"`) || judge.system == "" {
		t.Fatal("expected topic in prompt and a system prompt")
	}
}

func TestScoreNeverFails(t *testing.T) {
	judge := &fakeJudge{err: errors.New("connection refused")}
	rec := NewScorer(judge, 0, nil).Score(context.Background(), "metin", "konu")
	if rec != Neutral() {
		t.Fatalf("expected neutral record, got %+v", rec)
	}

	judge = &fakeJudge{reply: "Üzgünüm, puan veremem."}
	rec = NewScorer(judge, 0, nil).Score(context.Background(), "metin", "konu")
	if !rec.Degraded || rec.GenelPuan != 0 {
		t.Fatalf("expected degraded record, got %+v", rec)
	}

	if rec := NewScorer(nil, 0, nil).Score(context.Background(), "metin", "konu"); !rec.Degraded {
		t.Fatal("expected neutral record without a judge")
	}
}

func TestBuildPromptDefaultLimit(t *testing.T) {
	long := strings.Repeat("ж", 3000)
	prompt := BuildPrompt(long, "Python", DefaultMaxTranscriptChars)
	if got := strings.Count(prompt, "ж"); got != DefaultMaxTranscriptChars {
		t.Fatalf("expected %d transcript runes, got %d", DefaultMaxTranscriptChars, got)
	}
	if !utf8.ValidString(prompt) {
		t.Fatal("prompt must stay valid UTF-8")
	}
}

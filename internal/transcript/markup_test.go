package transcript

import "testing"

func TestStripMarkupWebVTT(t *testing.T) {
	payload := "WEBVTT\nKind: captions\nLanguage: tr\n\nNOTE generated\nby asr\n\n" +
		"00:00:00.000 --> 00:00:02.000 align:start position:0%\nmerhaba<00:00:00.500><c> arkadaşlar</c>\n\n" +
		"00:00:02.000 --> 00:00:04.000\nmerhaba arkadaşlar\nbugün &amp; yarın\n"
	got := StripMarkup(payload)
	want := "merhaba arkadaşlar bugün & yarın"
	if got != want {
		t.Fatalf("StripMarkup = %q, want %q", got, want)
	}
}

func TestStripMarkupSRT(t *testing.T) {
	payload := "1\r\n00:00:01,000 --> 00:00:02,000\r\n<i>Hello</i> there\r\n\r\n2\r\n00:00:02,000 --> 00:00:03,000\r\nGeneral Kenobi\r\n"
	if got := StripMarkup(payload); got != "Hello there General Kenobi" {
		t.Fatalf("unexpected text %q", got)
	}
}

func TestStripMarkupTimedTextXML(t *testing.T) {
	payload := `<?xml version="1.0" encoding="utf-8" ?><transcript><text start="0" dur="1">Döngüler</text><text start="1" dur="2">for &#39;ile&#39; kurulur</text></transcript>`
	if got := StripMarkup(payload); got != "Döngüler for 'ile' kurulur" {
		t.Fatalf("unexpected text %q", got)
	}
}

func TestStripMarkupEmpty(t *testing.T) {
	if got := StripMarkup("\ufeff  \n"); got != "" {
		t.Fatalf("expected empty text, got %q", got)
	}
}

package scoring

import (
	"encoding/json"
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"

	"curator/internal/services/llm"
)

// flatObjectPattern finds the first brace-delimited object without nested braces.
var flatObjectPattern = regexp.MustCompile(`\{[^{}]*\}`)

const (
	keyKapsamUyumu       = "kapsam_uyumu"
	keyBilgiDerinligi    = "bilgi_derinligi"
	keyAnlatimTarzi      = "anlatim_tarzi"
	keyHedefKitle        = "hedef_kitle"
	keyYapisalTutarlilik = "yapisal_tutarlilik"
	keyGenelPuan         = "genel_puan"
	keyYorum             = "yorum"
)

// ParseResponse extracts a Record from a judge reply. The first flat JSON
// object is tried first, then the whole reply with code fences and
// surrounding prose removed. Axis values may be numbers or numeric strings
// and are rounded and clamped to 0-10. Returns the neutral record and false
// when no object with genel_puan can be decoded.
func ParseResponse(raw string) (Record, bool) {
	if match := flatObjectPattern.FindString(raw); match != "" {
		var fields map[string]json.RawMessage
		if err := json.Unmarshal([]byte(match), &fields); err == nil {
			if rec, ok := recordFromFields(fields); ok {
				return rec, true
			}
		}
	}
	var fields map[string]json.RawMessage
	if err := llm.DecodeLLMJSON(raw, &fields); err == nil {
		if rec, ok := recordFromFields(fields); ok {
			return rec, true
		}
	}
	return Neutral(), false
}

func recordFromFields(fields map[string]json.RawMessage) (Record, bool) {
	overall, ok := axisValue(fields[keyGenelPuan])
	if !ok {
		return Record{}, false
	}
	rec := Record{GenelPuan: overall}
	rec.KapsamUyumu, _ = axisValue(fields[keyKapsamUyumu])
	rec.BilgiDerinligi, _ = axisValue(fields[keyBilgiDerinligi])
	rec.AnlatimTarzi, _ = axisValue(fields[keyAnlatimTarzi])
	rec.HedefKitle, _ = axisValue(fields[keyHedefKitle])
	rec.YapisalTutarlilik, _ = axisValue(fields[keyYapisalTutarlilik])
	rec.Yorum = commentValue(fields[keyYorum])
	return rec, true
}

func axisValue(raw json.RawMessage) (int, bool) {
	if len(raw) == 0 {
		return 0, false
	}
	var number float64
	if err := json.Unmarshal(raw, &number); err != nil {
		var text string
		if err := json.Unmarshal(raw, &text); err != nil {
			return 0, false
		}
		text = strings.TrimSpace(strings.TrimSuffix(strings.TrimSpace(text), "/10"))
		parsed, err := strconv.ParseFloat(strings.Replace(text, ",", ".", 1), 64)
		if err != nil {
			return 0, false
		}
		number = parsed
	}
	if math.IsNaN(number) || math.IsInf(number, 0) {
		return 0, false
	}
	return int(math.Round(clamp(number))), true
}

// clamp bounds value to the axis range before any integer conversion.
func clamp(value float64) float64 {
	switch {
	case value < 0:
		return 0
	case value > MaxAxisScore:
		return MaxAxisScore
	default:
		return value
	}
}

func commentValue(raw json.RawMessage) string {
	if len(raw) == 0 {
		return ""
	}
	var text string
	if err := json.Unmarshal(raw, &text); err == nil {
		return strings.TrimSpace(text)
	}
	var value any
	if err := json.Unmarshal(raw, &value); err == nil && value != nil {
		return fmt.Sprint(value)
	}
	return ""
}

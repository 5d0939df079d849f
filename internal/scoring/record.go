package scoring

// NeutralComment is the commentary of a record produced when judging failed.
const NeutralComment = "evaluation not possible"

// MaxAxisScore is the upper bound of every rubric axis.
const MaxAxisScore = 10

// Record holds the six rubric axes (0-10) and the judge's commentary.
// GenelPuan is the overall score used for ranking.
type Record struct {
	VideoID           string `json:"-"`
	KapsamUyumu       int    `json:"kapsam_uyumu"`
	BilgiDerinligi    int    `json:"bilgi_derinligi"`
	AnlatimTarzi      int    `json:"anlatim_tarzi"`
	HedefKitle        int    `json:"hedef_kitle"`
	YapisalTutarlilik int    `json:"yapisal_tutarlilik"`
	GenelPuan         int    `json:"genel_puan"`
	Yorum             string `json:"yorum"`
	// Degraded marks a neutral record substituted for an unusable judgment.
	Degraded bool `json:"-"`
}

// Neutral returns the all-zero record used when a judgment is unusable.
func Neutral() Record {
	return Record{Yorum: NeutralComment, Degraded: true}
}

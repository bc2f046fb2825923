package advisor

// Tier is the discrete severity classification of a single SOC value.
type Tier string

const (
	TierCritical Tier = "critical"
	TierLow      Tier = "low"
	TierNormal   Tier = "normal"
	TierGood     Tier = "good"
	TierFull     Tier = "full"
)

// Advisory is the classifier output: a tier with its fixed guidance text
// and a display style tag consumed only by the presentation layer.
type Advisory struct {
	Tier        Tier   `json:"tier"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Style       string `json:"style"`
}

type tierText struct {
	title       string
	description string
}

var advisoryEnglish = map[Tier]tierText{
	TierCritical: {"Critical", "Battery almost empty. Reduce load immediately and switch to the grid or a generator."},
	TierLow:      {"Low", "Watch consumption. Avoid non-essential loads and prepare a backup source."},
	TierNormal:   {"Normal", "Nominal operation. Current load can be maintained, but keep an eye on solar conditions."},
	TierGood:     {"Good", "Comfortable level. Load can be increased slightly if needed."},
	TierFull:     {"Full", "Battery almost full. Intensive loads can be scheduled, or excess energy stored."},
}

var advisoryFrench = map[Tier]tierText{
	TierCritical: {"Critique", "Batterie presque vide. Réduisez immédiatement la charge et basculez sur le réseau ou groupe."},
	TierLow:      {"Faible", "Surveillez la consommation. Évitez les charges non essentielles et préparez une source de secours."},
	TierNormal:   {"Normal", "Fonctionnement nominal. Vous pouvez maintenir la charge actuelle, mais surveillez la météo solaire."},
	TierGood:     {"Bon", "Niveau confortable. Possibilité d'augmenter légèrement la charge si nécessaire."},
	TierFull:     {"Plein", "Batterie presque pleine. Vous pouvez planifier des charges intensives ou stocker l'excès d'énergie."},
}

var tierStyles = map[Tier]string{
	TierCritical: "red",
	TierLow:      "orange",
	TierNormal:   "yellow",
	TierGood:     "emerald",
	TierFull:     "green",
}

// Classify maps a SOC percentage to its advisory tier. Boundaries are
// evaluated in order with inclusive lower bounds: <5 critical, <20 low,
// <60 normal, <90 good, else full. Input is not clamped: any finite value
// resolves to the nearest tier (negative to critical, above 100 to full).
func Classify(socPct float64, lang Language) Advisory {
	tier := tierOf(socPct)

	texts := advisoryEnglish
	if lang == LangFrench {
		texts = advisoryFrench
	}
	txt := texts[tier]

	return Advisory{
		Tier:        tier,
		Title:       txt.title,
		Description: txt.description,
		Style:       tierStyles[tier],
	}
}

func tierOf(socPct float64) Tier {
	switch {
	case socPct < 5:
		return TierCritical
	case socPct < 20:
		return TierLow
	case socPct < 60:
		return TierNormal
	case socPct < 90:
		return TierGood
	default:
		return TierFull
	}
}

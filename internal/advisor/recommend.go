package advisor

// catalog holds one language's recommendation texts, keyed by rule.
type catalog struct {
	socCritical    string
	socEssential   string
	socLow         string
	socFull        string
	sunHigh        string
	sunLow         string
	loadDischarge  string
	loadDeferTip   string
	solarSurplus   string
	trendDischarge string
	allNormal      string
}

var english = catalog{
	socCritical:    "🔴 CRITICAL ALERT: Battery level critically low. Immediately reduce non-essential loads.",
	socEssential:   "⚡ Recommendation: Essential loads only.",
	socLow:         "🟠 WARNING: Battery low. Consider reducing consumption or adding power source.",
	socFull:        "🟢 Battery full. Consider increasing load or storing excess energy.",
	sunHigh:        "☀️ High solar production detected - optimal conditions. Use power-hungry appliances now.",
	sunLow:         "☁️ Low irradiance. Solar recharge will be limited. Prepare for battery consumption.",
	loadDischarge:  "⚠️ High load vs solar production - rapid discharge possible.",
	loadDeferTip:   "💡 Tip: Defer non-urgent tasks to peak solar production times.",
	solarSurplus:   "✅ Solar surplus detected. Perfect time to fully charge the battery.",
	trendDischarge: "📉 Discharge trend detected. Prepare backup solutions.",
	allNormal:      "✅ System operating normally. No action required.",
}

var french = catalog{
	socCritical:    "🔴 ALERTE: Niveau de batterie critique. Réduisez immédiatement la charge non essentielle.",
	socEssential:   "⚡ Recommandation: Priorité aux charges essentielles uniquement.",
	socLow:         "🟠 ATTENTION: Batterie faible. Envisagez de réduire la consommation ou d'ajouter une source d'énergie.",
	socFull:        "🟢 Batterie pleine. Envisagez d'augmenter la charge ou de stocker l'énergie excédentaire.",
	sunHigh:        "☀️ Production solaire élevée détectée - conditions optimales. Utilisez les appareils gourmands maintenant.",
	sunLow:         "☁️ Faible irradiance. La recharge solaire sera limitée. Préparez-vous à consommer depuis la batterie.",
	loadDischarge:  "⚠️ Charge élevée par rapport à la production solaire - décharge rapide possible.",
	loadDeferTip:   "💡 Conseil: Reportez les tâches non urgentes à un moment où la production solaire est plus élevée.",
	solarSurplus:   "✅ Surplus d'énergie solaire. C'est le moment idéal pour recharger complètement la batterie.",
	trendDischarge: "📉 Tendance de décharge détectée. Préparez les solutions de secours.",
	allNormal:      "✅ Système en bon fonctionnement. Aucune action requise.",
}

func messagesFor(lang Language) catalog {
	// Any unrecognized tag falls back to English rather than failing:
	// the engine stays a total function over its inputs.
	if lang == LangFrench {
		return french
	}
	return english
}

// Recommend evaluates the rule set against the state and returns the
// advice that fires, in fixed rule order. Pure and deterministic; calling
// it twice with the same arguments yields identical output.
//
// Rule order: the mutually exclusive SOC tier chain, then irradiance,
// then load-versus-generation, then trend. Independent rules may all fire
// in one call. When nothing fires the result is a single "operating
// normally" entry.
func Recommend(state State, lang Language) []Advice {
	m := messagesFor(lang)
	var out []Advice

	// SOC tier chain: first match wins.
	switch {
	case state.SocPct < 20:
		out = append(out,
			Advice{Severity: SeverityCritical, Text: m.socCritical},
			Advice{Severity: SeverityCritical, Text: m.socEssential},
		)
	case state.SocPct < 40:
		out = append(out, Advice{Severity: SeverityWarning, Text: m.socLow})
	case state.SocPct > 95:
		out = append(out, Advice{Severity: SeveritySuccess, Text: m.socFull})
	}

	// Irradiance, independent of the tier chain.
	if state.IrradianceWm2 > 800 {
		out = append(out, Advice{Severity: SeverityInfo, Text: m.sunHigh})
	} else if state.IrradianceWm2 < 200 {
		out = append(out, Advice{Severity: SeverityInfo, Text: m.sunLow})
	}

	// Load versus generation.
	if state.LoadPowerW > state.SolarPowerW && state.SocPct < 60 {
		out = append(out,
			Advice{Severity: SeverityWarning, Text: m.loadDischarge},
			Advice{Severity: SeverityInfo, Text: m.loadDeferTip},
		)
	} else if state.SolarPowerW > state.LoadPowerW*1.5 && state.SocPct < 80 {
		out = append(out, Advice{Severity: SeveritySuccess, Text: m.solarSurplus})
	}

	// Trend.
	if state.Trend == TrendDecreasing && state.SocPct < 50 {
		out = append(out, Advice{Severity: SeverityWarning, Text: m.trendDischarge})
	}

	if len(out) == 0 {
		return []Advice{{Severity: SeveritySuccess, Text: m.allNormal}}
	}
	return out
}

package health

// bracketAdvice is the fixed advisory content attached to one alert level
type bracketAdvice struct {
	recommendations []string
	atRiskGroups    []string
	activity        string
}

var bracketAdvisories = map[AlertLevel]bracketAdvice{
	AlertLevelLow: {
		recommendations: []string{
			"✅ La qualité de l'air est excellente. Profitez des activités en plein air!",
		},
		activity: "Course à pied, vélo, sports extérieurs",
	},
	AlertLevelModerate: {
		recommendations: []string{
			"⚠️ La qualité de l'air est acceptable. La plupart des personnes peuvent sortir.",
			"Les personnes sensibles devraient limiter les efforts prolongés en extérieur.",
		},
		atRiskGroups: []string{"Personnes asthmatiques"},
		activity:     "Activités modérées en extérieur",
	},
	AlertLevelHigh: {
		recommendations: []string{
			"⚠️ Qualité de l'air préoccupante pour les groupes sensibles.",
			"Limitez les activités extérieures intenses et prolongées.",
		},
		atRiskGroups: []string{"Enfants", "Personnes âgées", "Personnes asthmatiques"},
		activity:     "Activités légères en extérieur, privilégier l'intérieur",
	},
	AlertLevelVeryHigh: {
		recommendations: []string{
			"🚨 Qualité de l'air mauvaise. Tout le monde peut ressentir des effets.",
			"Évitez les activités extérieures intenses.",
			"Portez un masque si vous devez sortir.",
		},
		atRiskGroups: []string{"Tout le monde", "Surtout: enfants, personnes âgées, malades chroniques"},
		activity:     "Activités en intérieur uniquement",
	},
	AlertLevelExtreme: {
		recommendations: []string{
			"🆘 ALERTE: Qualité de l'air dangereuse!",
			"Restez à l'intérieur et gardez les fenêtres fermées.",
			"Portez un masque N95 si vous devez absolument sortir.",
		},
		atRiskGroups: []string{"Toute la population"},
		activity:     "Restez à l'intérieur",
	},
}

// Weather advisories, appended after the air-quality block
const (
	HeatAdvisory     = "🌡️ Température élevée: Hydratez-vous régulièrement."
	ColdAdvisory     = "❄️ Température basse: Couvrez-vous bien."
	HumidityAdvisory = "💧 Humidité élevée: Peut aggraver les problèmes respiratoires."
)

package sentiment

import "strings"

// Analyzer scores text with a weighted keyword lexicon. It exists because the
// news provider returns no per-article sentiment; scores land in [-1, 1].
type Analyzer struct {
	positive map[string]float64
	negative map[string]float64
}

func NewAnalyzer() *Analyzer {
	return &Analyzer{
		positive: positiveWords(),
		negative: negativeWords(),
	}
}

// Score returns the normalized sentiment of text, clamped to [-1, 1]. Text
// with no lexicon hits scores exactly zero.
func (a *Analyzer) Score(text string) float64 {
	if text == "" {
		return 0
	}
	words := strings.Fields(strings.ToLower(text))
	if len(words) == 0 {
		return 0
	}

	var score float64
	matches := 0
	for _, w := range words {
		w = strings.Trim(w, ".,!?;:'\"()")
		if weight, ok := a.positive[w]; ok {
			score += weight
			matches++
		}
		if weight, ok := a.negative[w]; ok {
			score -= weight
			matches++
		}
	}
	if matches == 0 {
		return 0
	}

	normalized := score / float64(len(words))
	// Keyword hits are sparse relative to article length; stretch so a few
	// strong words still register.
	normalized *= 4
	if normalized > 1 {
		normalized = 1
	} else if normalized < -1 {
		normalized = -1
	}
	return normalized
}

func positiveWords() map[string]float64 {
	return map[string]float64{
		"rally":        0.9,
		"surge":        0.8,
		"soar":         0.8,
		"bullish":      1.0,
		"gain":         0.6,
		"gains":        0.6,
		"record":       0.6,
		"high":         0.4,
		"beat":         0.7,
		"beats":        0.7,
		"upgrade":      0.6,
		"upgraded":     0.6,
		"growth":       0.5,
		"strong":       0.5,
		"profit":       0.6,
		"profits":      0.6,
		"rebound":      0.6,
		"recovery":     0.5,
		"optimism":     0.5,
		"outperform":   0.6,
		"rise":         0.5,
		"rises":        0.5,
		"climb":        0.5,
		"climbs":       0.5,
		"jump":         0.6,
		"jumps":        0.6,
		"boom":         0.7,
		"demand":       0.3,
		"breakthrough": 0.6,
	}
}

func negativeWords() map[string]float64 {
	return map[string]float64{
		"crash":      1.0,
		"plunge":     0.9,
		"plunges":    0.9,
		"bearish":    1.0,
		"slump":      0.8,
		"slumps":     0.8,
		"loss":       0.6,
		"losses":     0.6,
		"miss":       0.6,
		"misses":     0.6,
		"downgrade":  0.6,
		"downgraded": 0.6,
		"weak":       0.5,
		"recession":  0.8,
		"selloff":    0.8,
		"fear":       0.6,
		"fears":      0.6,
		"drop":       0.5,
		"drops":      0.5,
		"fall":       0.5,
		"falls":      0.5,
		"decline":    0.5,
		"declines":   0.5,
		"tumble":     0.7,
		"tumbles":    0.7,
		"warning":    0.5,
		"cut":        0.4,
		"cuts":       0.4,
		"glut":       0.6,
		"oversupply": 0.6,
	}
}

package recommendation

import (
	"fmt"
	"sort"
	"strings"
)

// MaxReasons caps the justifications attached to a scored candidate.
const MaxReasons = 3

var vibeDescriptions = map[string]string{
	"Noir Velours":  "profond et résineux — ton univers.",
	"Or Solaire":    "chaud et lumineux, comme tu le souhaitais.",
	"Bleu Minéral":  "frais et précis, ton accord de prédilection.",
	"Ivoire Propre": "musc propre et délicat, une seconde peau.",
	"Rouge Épicé":   "épicé et sensuel, une présence assumée.",
}

const vibeFallbackDescription = "en accord avec ton profil."

type metricDiff struct {
	label string
	diff  int
	value int
}

// Reasons explains, in at most three sentences, why a candidate matched the profile.
func Reasons(c ProductCandidate, p UserProfile) []string {
	reasons := make([]string, 0, MaxReasons+1)

	for _, uv := range p.Vibes {
		if _, found := c.vibe(uv.Label); found {
			reasons = append(reasons, fmt.Sprintf("Ambiance %s : %s", uv.Label, describeVibe(uv.Label)))
			break
		}
	}

	if p.hasFamily(c.Family) {
		reasons = append(reasons, fmt.Sprintf("Famille %s — celle que tu as sélectionnée.", c.Family))
	}

	matched := make([]string, 0, len(p.LikedNotes))
	for _, liked := range p.LikedNotes {
		if _, found := findNote(c.Notes, liked); found {
			matched = append(matched, liked)
		}
	}
	if len(matched) > 0 {
		shown := matched
		if len(shown) > 2 {
			shown = shown[:2]
		}
		verb := "est présente"
		if len(matched) > 1 {
			verb = "sont présentes"
		}
		reasons = append(reasons, fmt.Sprintf("%s %s dans cette composition.", strings.Join(shown, " et "), verb))
	}

	diffs := []metricDiff{
		{label: "Intensité", diff: absInt(c.Intensity - p.Intensity), value: c.Intensity},
		{label: "Tenue", diff: absInt(c.Tenue - p.Tenue), value: c.Tenue},
		{label: "Sillage", diff: absInt(c.Sillage - p.Sillage), value: c.Sillage},
	}
	sort.SliceStable(diffs, func(i, j int) bool { return diffs[i].diff < diffs[j].diff })
	if closest := diffs[0]; closest.diff <= 1 {
		reasons = append(reasons, fmt.Sprintf("%s de %d/5 — très proche de ton attente.", closest.label, closest.value))
	}

	if len(reasons) > MaxReasons {
		reasons = reasons[:MaxReasons]
	}
	return reasons
}

func describeVibe(label string) string {
	if d, ok := vibeDescriptions[label]; ok {
		return d
	}
	return vibeFallbackDescription
}

func absInt(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

package conversation

import (
	"strings"

	"scent-advisor-be/pkg/advisor/recommendation"
)

// Role is the author of a conversation turn.
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Turn is one persisted message of a conversation. StepKey is the wire key of the
// step active when the turn was produced; it may be empty or unknown.
type Turn struct {
	Role    Role
	Content string
	StepKey string
}

type intensityLevel struct {
	intensity int
	sillage   int
}

var intensityLevels = map[string]intensityLevel{
	chipDiscreet:   {intensity: 2, sillage: 2},
	chipBalanced:   {intensity: 3, sillage: 3},
	chipPronounced: {intensity: 5, sillage: 4},
}

// BuildProfile folds the user turns of a conversation, in order, into a profile.
// It starts from the zero-value profile every time and never fails: unknown step
// keys and unrecognized labels are ignored.
func BuildProfile(turns []Turn) recommendation.UserProfile {
	profile := recommendation.NewUserProfile()

	for _, turn := range turns {
		if turn.Role != RoleUser {
			continue
		}
		step, ok := ParseStep(turn.StepKey)
		if !ok {
			continue
		}
		applyTurn(&profile, step, strings.TrimSpace(turn.Content))
	}

	return profile
}

func applyTurn(profile *recommendation.UserProfile, step Step, value string) {
	switch step {
	case StepVibe:
		// vibes accumulate across turns
		for _, label := range splitList(value) {
			if !hasVibe(profile.Vibes, label) {
				profile.Vibes = append(profile.Vibes, recommendation.Vibe{Label: label, Weight: 5})
			}
		}
	case StepFamily:
		// a single family; last answer wins
		if value != ChipDontKnow {
			profile.Families = []string{strings.ToLower(value)}
		}
	case StepNotesLiked:
		if value != ChipSkip {
			profile.LikedNotes = splitList(value)
		}
	case StepNotesAvoid:
		if value != ChipSkip {
			profile.AvoidNotes = splitList(value)
		}
	case StepIntensity:
		if level, ok := intensityLevels[value]; ok {
			profile.Intensity = level.intensity
			profile.Sillage = level.sillage
		}
	case StepOccasion:
		moments := splitList(value)
		for i, m := range moments {
			moments[i] = strings.ToLower(m)
		}
		profile.Moments = moments
	}
}

// splitList splits a comma separated answer into trimmed, non-empty tokens.
func splitList(value string) []string {
	parts := strings.Split(value, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

func hasVibe(vibes []recommendation.Vibe, label string) bool {
	for _, v := range vibes {
		if v.Label == label {
			return true
		}
	}
	return false
}

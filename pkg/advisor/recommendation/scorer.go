package recommendation

import (
	"math"
	"strings"
)

const (
	vibeWeight        = 40.0
	familyMatchBonus  = 30.0
	familyOpenBonus   = 10.0
	likedNoteWeight   = 8.0
	metricWeight      = 10.0
	metricMaxDistance = 4.0
	contextBonus      = 5.0
)

// positionMultiplier weights a liked note by where it sits in the pyramid.
// Heart notes carry the lived-in character of a scent.
func positionMultiplier(t NoteType) float64 {
	switch t {
	case NoteHeart:
		return 1.0
	case NoteBase:
		return 0.85
	default:
		return 0.7
	}
}

// Excluded reports whether the candidate carries a note the profile avoids.
func Excluded(c ProductCandidate, p UserProfile) bool {
	for _, avoid := range p.AvoidNotes {
		if _, ok := findNote(c.Notes, avoid); ok {
			return true
		}
	}
	return false
}

// Score computes the affinity of a candidate for a profile.
// ok is false when the candidate is vetoed by an avoided note; the score is then meaningless.
func Score(c ProductCandidate, p UserProfile) (score int, ok bool) {
	if Excluded(c, p) {
		return 0, false
	}

	total := 0.0

	for _, uv := range p.Vibes {
		if cv, found := c.vibe(uv.Label); found {
			total += vibeWeight * (float64(uv.Weight) / 5) * (float64(cv.Weight) / 5)
		}
	}

	if len(p.Families) == 0 {
		total += familyOpenBonus
	} else if p.hasFamily(c.Family) {
		total += familyMatchBonus
	}

	for _, liked := range p.LikedNotes {
		if n, found := findNote(c.Notes, liked); found {
			total += likedNoteWeight * (float64(n.Weight) / 5) * positionMultiplier(n.Type)
		}
	}

	total += metricProximity(c.Intensity, p.Intensity)
	total += metricProximity(c.Tenue, p.Tenue)
	total += metricProximity(c.Sillage, p.Sillage)

	if len(p.Seasons) > 0 && sharesAny(c.Seasons, p.Seasons) {
		total += contextBonus
	}
	if len(p.Moments) > 0 && sharesAny(c.Moments, p.Moments) {
		total += contextBonus
	}

	return int(math.Round(total)), true
}

func metricProximity(candidate, wanted int) float64 {
	proximity := 1 - math.Abs(float64(candidate-wanted))/metricMaxDistance
	return math.Max(0, proximity*metricWeight)
}

// findNote matches a note name case-insensitively and returns the first hit.
func findNote(notes []Note, name string) (Note, bool) {
	for _, n := range notes {
		if strings.EqualFold(n.Name, name) {
			return n, true
		}
	}
	return Note{}, false
}

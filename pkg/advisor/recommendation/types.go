package recommendation

// NoteType is the position of a note in the olfactory pyramid.
type NoteType string

const (
	NoteTop   NoteType = "TOP"
	NoteHeart NoteType = "HEART"
	NoteBase  NoteType = "BASE"
)

// Metric bounds shared by profiles and candidates.
const (
	MetricMin     = 1
	MetricMax     = 5
	MetricDefault = 3
)

type Note struct {
	Name   string   `json:"name"`
	Type   NoteType `json:"type"`
	Weight int      `json:"weight"`
}

type Vibe struct {
	Label  string `json:"label"`
	Weight int    `json:"weight"`
}

// ProductCandidate is a catalog entry as seen by the scorer.
type ProductCandidate struct {
	Slug           string   `json:"slug"`
	Name           string   `json:"name"`
	Concentration  string   `json:"concentration"`
	PriceFromCents int64    `json:"price_from_cents"`
	Family         string   `json:"family"`
	Intensity      int      `json:"intensity"`
	Tenue          int      `json:"tenue"`
	Sillage        int      `json:"sillage"`
	Seasons        []string `json:"seasons"`
	Moments        []string `json:"moments"`
	Vibes          []Vibe   `json:"vibes"`
	Notes          []Note   `json:"notes"`
}

// UserProfile is the preference state folded from a conversation.
type UserProfile struct {
	Vibes      []Vibe   `json:"vibes"`
	Families   []string `json:"families"`
	LikedNotes []string `json:"liked_notes"`
	AvoidNotes []string `json:"avoid_notes"`
	Intensity  int      `json:"intensity"`
	Tenue      int      `json:"tenue"`
	Sillage    int      `json:"sillage"`
	Seasons    []string `json:"seasons"`
	Moments    []string `json:"moments"`
}

// NewUserProfile returns the zero-value profile: empty lists and every metric at 3.
func NewUserProfile() UserProfile {
	return UserProfile{
		Vibes:      []Vibe{},
		Families:   []string{},
		LikedNotes: []string{},
		AvoidNotes: []string{},
		Intensity:  MetricDefault,
		Tenue:      MetricDefault,
		Sillage:    MetricDefault,
		Seasons:    []string{},
		Moments:    []string{},
	}
}

func (p UserProfile) hasVibe(label string) bool {
	for _, v := range p.Vibes {
		if v.Label == label {
			return true
		}
	}
	return false
}

func (p UserProfile) hasFamily(family string) bool {
	return containsString(p.Families, family)
}

// ScoredCandidate is a candidate that survived scoring, with its justifications.
type ScoredCandidate struct {
	ProductCandidate
	Score   int      `json:"score"`
	Reasons []string `json:"reasons"`
}

func (c ProductCandidate) vibe(label string) (Vibe, bool) {
	for _, v := range c.Vibes {
		if v.Label == label {
			return v, true
		}
	}
	return Vibe{}, false
}

func (c ProductCandidate) hasAnyVibe(labels []string) bool {
	for _, v := range c.Vibes {
		if containsString(labels, v.Label) {
			return true
		}
	}
	return false
}

func containsString(list []string, s string) bool {
	for _, item := range list {
		if item == s {
			return true
		}
	}
	return false
}

func sharesAny(a, b []string) bool {
	for _, s := range a {
		if containsString(b, s) {
			return true
		}
	}
	return false
}

// Package conversation drives the guided dialogue: the fixed sequence of steps,
// their prompts and chips, and the fold from conversation turns to a profile.
package conversation

import "fmt"

// Step is one stage of the guided dialogue.
type Step uint8

const (
	StepInit Step = iota
	StepVibe
	StepFamily
	StepNotesLiked
	StepNotesAvoid
	StepIntensity
	StepOccasion
	StepDone

	stepCount
)

const (
	ChipStart      = "Commencer →"
	ChipSkip       = "Passer →"
	ChipDontKnow   = "Je ne sais pas"
	ChipFresher    = "Affiner : plus frais"
	ChipDarker     = "Affiner : plus sombre"
	ChipRestart    = "Recommencer"
	chipDiscreet   = "Discret"
	chipBalanced   = "Équilibré"
	chipPronounced = "Présent"
)

// RefineChips are offered at the terminal step when recommendations exist.
var RefineChips = []string{ChipFresher, ChipDarker, ChipRestart}

// RestartChips are offered at the terminal step when nothing matched.
var RestartChips = []string{ChipRestart}

// NoMatchMessage closes a dialogue whose profile excluded every creation.
const NoMatchMessage = "Je n'ai pas trouvé de création correspondant exactement à tes préférences. Essaie d'affiner ou de réinitialiser."

type definition struct {
	key    string
	next   Step
	prompt string
	chips  []string
}

var steps = [stepCount]definition{
	StepInit: {
		key:    "init",
		next:   StepVibe,
		prompt: "Bienvenue. Je suis le Conseiller Maison.\nJe vais te recommander une création en quelques questions.",
		chips:  []string{ChipStart},
	},
	StepVibe: {
		key:    "vibe",
		next:   StepFamily,
		prompt: "Quelle ambiance te ressemble aujourd'hui ?",
		chips:  []string{"Noir Velours", "Or Solaire", "Bleu Minéral", "Ivoire Propre", "Rouge Épicé"},
	},
	StepFamily: {
		key:    "family",
		next:   StepNotesLiked,
		prompt: "Tu tends vers quelle famille olfactive ?",
		chips:  []string{"Boisé", "Ambré", "Floral", "Hespéridé", "Musqué", "Gourmand", ChipDontKnow},
	},
	StepNotesLiked: {
		key:    "notes_liked",
		next:   StepNotesAvoid,
		prompt: "Trois notes que tu adores, si tu en as ? (sélectionne ou passe)",
		chips:  []string{"Bergamote", "Rose", "Oud", "Musc blanc", "Vétiver", "Iris", "Ambre", "Cèdre", "Poivre", "Jasmin"},
	},
	StepNotesAvoid: {
		key:    "notes_avoid",
		next:   StepIntensity,
		prompt: "Et des notes que tu préfères éviter ?",
		chips:  []string{ChipSkip},
	},
	StepIntensity: {
		key:    "intensity",
		next:   StepOccasion,
		prompt: "Tu veux un parfum plutôt…",
		chips:  []string{chipDiscreet, chipBalanced, chipPronounced},
	},
	StepOccasion: {
		key:    "occasion",
		next:   StepDone,
		prompt: "Pour quel moment ?",
		chips:  []string{"Journée", "Bureau", "Soirée", "Rendez-vous"},
	},
	StepDone: {
		key:   "done",
		next:  StepDone,
		chips: RefineChips,
	},
}

// Steps lists every step in dialogue order.
func Steps() []Step {
	out := make([]Step, 0, stepCount)
	for s := StepInit; s < stepCount; s++ {
		out = append(out, s)
	}
	return out
}

// ParseStep decodes a wire key such as "notes_liked".
func ParseStep(key string) (Step, bool) {
	for s := StepInit; s < stepCount; s++ {
		if steps[s].key == key {
			return s, true
		}
	}
	return 0, false
}

func (s Step) valid() bool {
	return s < stepCount
}

// Key is the wire name of the step, stored as the step key of each turn.
func (s Step) Key() string {
	if !s.valid() {
		return ""
	}
	return steps[s].key
}

func (s Step) String() string {
	return s.Key()
}

// Next returns the successor step. Done is absorbing.
func (s Step) Next() Step {
	if !s.valid() {
		return StepDone
	}
	return steps[s].next
}

// Prompt returns the assistant question asked when entering the step.
func (s Step) Prompt() string {
	if !s.valid() {
		return ""
	}
	return steps[s].prompt
}

// Chips returns a copy of the selectable options of the step.
func (s Step) Chips() []string {
	if !s.valid() {
		return []string{}
	}
	out := make([]string, len(steps[s].chips))
	copy(out, steps[s].chips)
	return out
}

func (s Step) IsTerminal() bool {
	return s == StepDone
}

// MarshalText lets steps travel as their wire key in JSON.
func (s Step) MarshalText() ([]byte, error) {
	return []byte(s.Key()), nil
}

// TerminalChips returns the options offered once the dialogue is done.
func TerminalChips(matched bool) []string {
	src := RestartChips
	if matched {
		src = RefineChips
	}
	out := make([]string, len(src))
	copy(out, src)
	return out
}

// TerminalMessage is the assistant's closing line for topCount matched creations.
func TerminalMessage(topCount int) string {
	if topCount <= 0 {
		return NoMatchMessage
	}
	plural := ""
	if topCount > 1 {
		plural = "s"
	}
	return fmt.Sprintf("Je te recommande %d création%s qui correspondent à ton profil :", topCount, plural)
}

const contextualPrompt = "Tu explores un parfum de la Maison. Dans quelle direction veux-tu affiner ?"

var contextualChips = []string{"Plus frais", "Plus doux", "Plus puissant", "Plus discret", "Plus sombre"}

// Welcome is the opening assistant turn. A conversation started from a
// product page opens on refinement directions instead of the init prompt.
func Welcome(contextual bool) (prompt string, chips []string) {
	if !contextual {
		return StepInit.Prompt(), StepInit.Chips()
	}
	out := make([]string, len(contextualChips))
	copy(out, contextualChips)
	return contextualPrompt, out
}

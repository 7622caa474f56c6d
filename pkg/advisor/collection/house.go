// Package collection holds the house's reference creations.
package collection

import "scent-advisor-be/pkg/advisor/recommendation"

// House returns the six signature creations, in catalog order.
func House() []recommendation.ProductCandidate {
	return []recommendation.ProductCandidate{
		{
			Slug: "noir-velours", Name: "Noir Velours", Concentration: "Extrait", PriceFromCents: 22000,
			Family: "boisé", Intensity: 5, Tenue: 5, Sillage: 4,
			Seasons: []string{"hiver", "mi-saison"}, Moments: []string{"soirée", "rendez-vous"},
			Vibes: []recommendation.Vibe{{Label: "Noir Velours", Weight: 5}, {Label: "Rouge Épicé", Weight: 2}},
			Notes: []recommendation.Note{
				{Name: "Poivre noir", Type: recommendation.NoteTop, Weight: 4},
				{Name: "Rose fumée", Type: recommendation.NoteHeart, Weight: 5},
				{Name: "Oud", Type: recommendation.NoteHeart, Weight: 4},
				{Name: "Benjoin", Type: recommendation.NoteBase, Weight: 5},
				{Name: "Vétiver", Type: recommendation.NoteBase, Weight: 4},
			},
		},
		{
			Slug: "bleu-mineral", Name: "Bleu Minéral", Concentration: "EDP", PriceFromCents: 16000,
			Family: "hespéridé", Intensity: 3, Tenue: 4, Sillage: 3,
			Seasons: []string{"été", "mi-saison"}, Moments: []string{"jour", "bureau"},
			Vibes: []recommendation.Vibe{{Label: "Bleu Minéral", Weight: 5}},
			Notes: []recommendation.Note{
				{Name: "Bergamote", Type: recommendation.NoteTop, Weight: 5},
				{Name: "Musc blanc", Type: recommendation.NoteHeart, Weight: 5},
				{Name: "Iris", Type: recommendation.NoteHeart, Weight: 3},
				{Name: "Cèdre", Type: recommendation.NoteBase, Weight: 4},
			},
		},
		{
			Slug: "or-solaire", Name: "Or Solaire", Concentration: "EDP", PriceFromCents: 18000,
			Family: "ambré", Intensity: 4, Tenue: 4, Sillage: 4,
			Seasons: []string{"été", "mi-saison"}, Moments: []string{"soirée", "rendez-vous"},
			Vibes: []recommendation.Vibe{{Label: "Or Solaire", Weight: 5}},
			Notes: []recommendation.Note{
				{Name: "Bergamote", Type: recommendation.NoteTop, Weight: 3},
				{Name: "Rose", Type: recommendation.NoteHeart, Weight: 4},
				{Name: "Ambre", Type: recommendation.NoteBase, Weight: 5},
			},
		},
		{
			Slug: "iris-blanc", Name: "Iris Blanc", Concentration: "Extrait", PriceFromCents: 26000,
			Family: "floral", Intensity: 3, Tenue: 5, Sillage: 2,
			Seasons: []string{"mi-saison", "hiver"}, Moments: []string{"bureau", "rendez-vous"},
			Vibes: []recommendation.Vibe{{Label: "Ivoire Propre", Weight: 5}},
			Notes: []recommendation.Note{
				{Name: "Iris", Type: recommendation.NoteTop, Weight: 5},
				{Name: "Rose", Type: recommendation.NoteHeart, Weight: 3},
				{Name: "Cèdre", Type: recommendation.NoteBase, Weight: 4},
			},
		},
		{
			Slug: "rouge-epice", Name: "Rouge Épicé", Concentration: "EDP", PriceFromCents: 19000,
			Family: "ambré", Intensity: 5, Tenue: 4, Sillage: 5,
			Seasons: []string{"hiver"}, Moments: []string{"soirée"},
			Vibes: []recommendation.Vibe{{Label: "Rouge Épicé", Weight: 5}, {Label: "Noir Velours", Weight: 3}},
			Notes: []recommendation.Note{
				{Name: "Poivre", Type: recommendation.NoteTop, Weight: 5},
				{Name: "Jasmin", Type: recommendation.NoteHeart, Weight: 4},
				{Name: "Ambre", Type: recommendation.NoteBase, Weight: 5},
			},
		},
		{
			Slug: "musc-silencieux", Name: "Musc Silencieux", Concentration: "EDP", PriceFromCents: 17000,
			Family: "musqué", Intensity: 2, Tenue: 4, Sillage: 2,
			Seasons: []string{"toute saison"}, Moments: []string{"bureau", "jour"},
			Vibes: []recommendation.Vibe{{Label: "Ivoire Propre", Weight: 4}},
			Notes: []recommendation.Note{
				{Name: "Musc blanc", Type: recommendation.NoteTop, Weight: 5},
				{Name: "Iris", Type: recommendation.NoteHeart, Weight: 4},
				{Name: "Ambre gris", Type: recommendation.NoteBase, Weight: 3},
			},
		},
	}
}

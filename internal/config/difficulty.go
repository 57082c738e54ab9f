package config

import "sort"

// DifficultyScale maps a learner's level to a difficulty description used
// when asking the provider for questions.
type DifficultyScale struct {
	bands []DifficultyBand
}

// NewDifficultyScale creates a scale from bands in any order.
func NewDifficultyScale(bands []DifficultyBand) *DifficultyScale {
	sorted := make([]DifficultyBand, len(bands))
	copy(sorted, bands)
	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i].MaxLevel < sorted[j].MaxLevel
	})
	return &DifficultyScale{bands: sorted}
}

// Describe returns the band text for level. Levels beyond the last band use
// the last band; an empty scale returns a generic description.
func (d *DifficultyScale) Describe(level int) string {
	if len(d.bands) == 0 {
		return "Age-appropriate difficulty."
	}
	for _, b := range d.bands {
		if level <= b.MaxLevel {
			return b.Description
		}
	}
	return d.bands[len(d.bands)-1].Description
}

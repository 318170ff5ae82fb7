package model

// Sentinel trait labels returned instead of errors
const (
	TraitUnknown      = "Unknown"      // reference table missing or empty
	TraitUnclassified = "Unclassified" // no keyword hit at all
)

// TraitDefinition is one record of the external trait reference table
type TraitDefinition struct {
	Trait             string   `json:"trait" bson:"trait"`
	Keywords          []string `json:"keywords" bson:"keywords"`
	DopamineBoosters  []string `json:"dopamine_boosters,omitempty" bson:"dopamineBoosters,omitempty"`
	MotivationHooks   []string `json:"motivation_hooks,omitempty" bson:"motivationHooks,omitempty"`
	DemotivationHooks []string `json:"demotivation_hooks,omitempty" bson:"demotivationHooks,omitempty"`
}

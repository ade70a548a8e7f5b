package jobs

// Variant is one of the fixed emotion presets driving a distinct prompt to
// the generation provider.
type Variant string

const (
	VariantHappy Variant = "happy"
	VariantSad   Variant = "sad"
	VariantAngry Variant = "angry"
)

// Variants returns the fixed processing order. Videos are attempted in
// exactly this order, one at a time per job.
func Variants() []Variant {
	return []Variant{VariantHappy, VariantSad, VariantAngry}
}

var prompts = map[Variant]string{
	VariantHappy: "The subject is happy and jumping JOYFULLY",
	VariantSad:   "The subject is CRYING VERY MUCH and is in AGONY, TEARS rolling out",
	VariantAngry: "The subject is EXTREMELY angry and is looking for a fight",
}

// PromptFor returns the generation prompt for a variant. The variant list is
// fixed and closed, so unknown variants are not reachable.
func PromptFor(v Variant) string {
	return prompts[v]
}

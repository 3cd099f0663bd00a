package matching

// Scoring weights. A candidate whose offering matches what I am looking for
// is the strongest signal; region and language matter less than fit.
const (
	weightTheirOfferMyNeed = 5.0
	weightMyOfferTheirNeed = 3.0
	weightIndustry         = 3.0
	weightRegion           = 2.0
	weightLanguage         = 1.5
)

// Profile holds the token sets of one actor's matching-relevant fields.
type Profile struct {
	LookingFor []string
	Offering   []string
	Industries []string
	Regions    []string
	Languages  []string
}

// NewProfile tokenizes the raw free-text fields of an actor.
func NewProfile(lookingFor, offering, industries, regions, languages string) Profile {
	return Profile{
		LookingFor: Tokenize(lookingFor),
		Offering:   Tokenize(offering),
		Industries: Tokenize(industries),
		Regions:    Tokenize(regions),
		Languages:  TokenizeLanguages(languages),
	}
}

// Score ranks other against me by mutual fit. It is not symmetric:
// Score(a, b) and Score(b, a) weight the need/offer directions differently
// so each actor sees a ranking personalized to their own needs.
func Score(me, other Profile) float64 {
	return weightTheirOfferMyNeed*float64(Overlap(me.LookingFor, other.Offering)) +
		weightMyOfferTheirNeed*float64(Overlap(me.Offering, other.LookingFor)) +
		weightIndustry*float64(Overlap(me.Industries, other.Industries)) +
		weightRegion*float64(Overlap(me.Regions, other.Regions)) +
		weightLanguage*float64(Overlap(me.Languages, other.Languages))
}

package types

// Profile is the four-card persona profile synthesized from foundation
// answers and examples. The four cards are versioned as one atomic unit:
// a profile either exists completely under one version or not at all.
//
// The JSON shape (exactly the four card keys, nothing else) is also the
// output contract for the external generator; synthesis rejects any object
// that deviates from it.
type Profile struct {
	Version     int          `json:"version"`
	Voice       VoiceCard    `json:"voiceCard"`
	Audience    AudienceCard `json:"audienceCard"`
	Offer       OfferCard    `json:"offerCard"`
	Constraints Constraints  `json:"constraints"`
}

// VoiceCard captures how the owner sounds.
type VoiceCard struct {
	Tone             string   `json:"tone,omitempty"`
	Formality        string   `json:"formality,omitempty"`
	Energy           string   `json:"energy,omitempty"`
	Persona          string   `json:"persona,omitempty"`
	StyleRules       []string `json:"styleRules,omitempty"`
	Language         string   `json:"language,omitempty"`
	Dos              []string `json:"dos,omitempty"`
	Donts            []string `json:"donts,omitempty"`
	ExampleFragments []string `json:"exampleFragments,omitempty"`
}

// AudienceCard captures who the content is for.
type AudienceCard struct {
	Segments        []string `json:"segments,omitempty"`
	PrimaryRole     string   `json:"primaryRole,omitempty"`
	CompanyTypes    []string `json:"companyTypes,omitempty"`
	Situation       string   `json:"situation,omitempty"`
	Goals           []string `json:"goals,omitempty"`
	Objections      []string `json:"objections,omitempty"`
	DecisionFactors []string `json:"decisionFactors,omitempty"`
}

// OfferCard captures what the owner sells and why it matters.
type OfferCard struct {
	CoreOffer        string   `json:"coreOffer,omitempty"`
	ProblemNarrative string   `json:"problemNarrative,omitempty"`
	Promise          string   `json:"promise,omitempty"`
	Outcomes         []string `json:"outcomes,omitempty"`
	BeforeAfter      string   `json:"beforeAfter,omitempty"`
	Mechanism        string   `json:"mechanism,omitempty"`
	Fit              []string `json:"fit,omitempty"`
	AntiFit          []string `json:"antiFit,omitempty"`
	Differentiators  []string `json:"differentiators,omitempty"`
	PricePositioning string   `json:"pricePositioning,omitempty"`
	ProofPoints      []string `json:"proofPoints,omitempty"`
}

// Constraints is the sole authority the quality gate consults. Missing
// fields are treated as empty collections, never as an error.
type Constraints struct {
	BannedPhrases  []string `json:"bannedPhrases,omitempty"`
	BannedTopics   []string `json:"bannedTopics,omitempty"`
	CTAStyle       CTAStyle `json:"ctaStyle"`
	ToneHardLimits []string `json:"toneHardLimits,omitempty"`
}

// CTAStyle describes how calls to action may be phrased.
type CTAStyle struct {
	Level             string   `json:"level,omitempty"`
	ExampleCTAs       []string `json:"exampleCtas,omitempty"`
	BannedCTAPatterns []string `json:"bannedCtaPatterns,omitempty"`
}

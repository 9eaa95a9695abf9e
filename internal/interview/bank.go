// Package interview provides the fixed foundation question catalog and the
// engine that walks an owner through it.
package interview

// AnswerType describes how a question is answered in the UI.
type AnswerType string

// Answer types
const (
	AnswerText     AnswerType = "text"
	AnswerLongText AnswerType = "longtext"
	AnswerSelect   AnswerType = "select"
)

// Question is one foundation question with its answer-type metadata.
type Question struct {
	Key        string     `json:"key"`
	Text       string     `json:"text"`
	AnswerType AnswerType `json:"answer_type"`
	Options    []string   `json:"options,omitempty"`
}

// questionBank is the canonical ordered catalog of foundation questions.
// Keys are immutable; the order defines interview order. Rule lists and
// catalogs are data, not code, so they can change without touching the
// engine.
var questionBank = []Question{
	{
		Key:        "foundations.business_description",
		Text:       "Describe your business in a few sentences. What do you do, and for whom?",
		AnswerType: AnswerLongText,
	},
	{
		Key:        "foundations.target_audience",
		Text:       "Who is your ideal customer? Be as specific as you can about role, company type and situation.",
		AnswerType: AnswerLongText,
	},
	{
		Key:        "foundations.customer_situation",
		Text:       "What situation is your ideal customer typically in when they start looking for you?",
		AnswerType: AnswerLongText,
	},
	{
		Key:        "foundations.customer_goals",
		Text:       "What do your customers want to achieve? List their most important goals.",
		AnswerType: AnswerLongText,
	},
	{
		Key:        "foundations.customer_objections",
		Text:       "What hesitations or objections do prospects raise before buying?",
		AnswerType: AnswerLongText,
	},
	{
		Key:        "foundations.core_offer",
		Text:       "What is your core offer? Name the product or service you want to be known for.",
		AnswerType: AnswerLongText,
	},
	{
		Key:        "foundations.problem",
		Text:       "What problem does your offer solve? Describe it the way your customer would.",
		AnswerType: AnswerLongText,
	},
	{
		Key:        "foundations.promise",
		Text:       "What concrete result can a customer expect, and on what timescale?",
		AnswerType: AnswerLongText,
	},
	{
		Key:        "foundations.mechanism",
		Text:       "How does your approach work? What makes the result happen?",
		AnswerType: AnswerLongText,
	},
	{
		Key:        "foundations.differentiators",
		Text:       "Why do customers choose you over the alternatives?",
		AnswerType: AnswerLongText,
	},
	{
		Key:        "foundations.proof",
		Text:       "What proof do you have? Results, numbers, client names, reviews.",
		AnswerType: AnswerLongText,
	},
	{
		Key:        "foundations.price_positioning",
		Text:       "How is your offer positioned on price?",
		AnswerType: AnswerSelect,
		Options:    []string{"budget", "mid-market", "premium"},
	},
	{
		Key:        "foundations.tone_of_voice",
		Text:       "How do you want to sound? Pick the closest match.",
		AnswerType: AnswerSelect,
		Options:    []string{"direct and no-nonsense", "warm and personal", "expert and formal", "playful and bold"},
	},
	{
		Key:        "foundations.language",
		Text:       "In which language should your content be written?",
		AnswerType: AnswerSelect,
		Options:    []string{"nl", "en", "de"},
	},
	{
		Key:        "foundations.banned_words",
		Text:       "Are there words or phrases you never want to see in your content?",
		AnswerType: AnswerLongText,
	},
}

// Bank returns the canonical ordered question catalog.
func Bank() []Question {
	out := make([]Question, len(questionBank))
	copy(out, questionBank)
	return out
}

// Lookup returns the question for a key, if the key is in the bank.
func Lookup(key string) (Question, bool) {
	for _, q := range questionBank {
		if q.Key == key {
			return q, true
		}
	}
	return Question{}, false
}

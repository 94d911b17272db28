package taxonomy

import (
	"strings"
	"unicode/utf8"
)

var traits = map[string]Trait{
	"A": {
		Code: "A", Name: "Ambitious",
		Description: "You intend to succeed. You want to rise to the top and be admired by others, indeed perhaps be in charge of them too.",
	},
	"B": {
		Code: "B", Name: "Modest",
		Description: "You are undemanding. You do not aspire to power or fame: maybe you lack self confidence, or maybe you are simply comfortable as you are.",
	},
	"C": {
		Code: "C", Name: "Conservative/Sceptical",
		Description: "You worry all the time. You approach anything new or different with scepticism, you stay out of danger, and you dislike adventures or risk. Reserved and unforthcoming, you are mistrustful of others, keeping your distance or shutting them out entirely.",
	},
	"D": {
		Code: "D", Name: "Progressive/Open-hearted",
		Description: "You love a challenge. You are optimistic about the future and approach situations energetically. You have no trouble trusting other people; you are generous in your interactions, welcoming everyone, even strangers, with open arms.",
	},
	"E": {
		Code: "E", Name: "Primitive",
		Description: "You have a tendency to be boorish and coarse, and don't always manage to strike the right tone.",
	},
	"F": {
		Code: "F", Name: "Cultivated",
		Description: "You have a very sensitive, sophisticated, cultured and generally distinguished character. You set high aesthetic standards and you fulfil them.",
	},
	"G": {
		Code: "G", Name: "Traditional",
		Description: "You avoid change wherever possible and wish for everything to remain the same.",
	},
	"H": {
		Code: "H", Name: "Metamorphic",
		Description: "You make sweeping changes without hesitation. You are happy to throw out the old to make room for the new.",
	},
	"I": {
		Code: "I", Name: "Robust",
		Description: "You are not intimidated by difficult, complicated or fraught situations. You rise to all challenges; you may even enjoy them.",
	},
	"K": {
		Code: "K", Name: "Fair",
		Description: "You dislike chaos, confusion and messiness. You want things to be clear, open and upfront.",
	},
	"L": {
		Code: "L", Name: "Regal/Energetic",
		Description: "You are strong, robust and resilient. You find positive solutions to problems and have plenty of stamina. Dignity and self-possession are important to you; you cultivate inner calm and like to maintain a broad overview. You aren't interested in petty rivalries and power struggles. Most of the time you enjoy being above it all.",
	},
	"M": {
		Code: "M", Name: "Asthenic/Subordinate",
		Description: "You tend to be fragile, powerless and timid. You tire quickly, you are often clumsy and careless, lack a strong will, and generally need protection and support. You rely on having a solid roof over your head.",
	},
	"N": {
		Code: "N", Name: "Phlegmatic",
		Description: "You are easy-going and enjoy things. Nothing gets you in a flap, and you seldom lose your cool. You stay calm, take your time and like to relax.",
	},
	"O": {
		Code: "O", Name: "Active",
		Description: "You are bursting with energy, dynamic and quick to act. You get things moving.",
	},
	"P": {
		Code: "P", Name: "Hostile",
		Description: "You are rancorous, resentful and antagonistic. You tend to compete with others and sometimes come to blows. Everyone is a potential enemy for you.",
	},
	"Q": {
		Code: "Q", Name: "Amicable",
		Description: "You are well disposed towards others. You respect their achievements, never begrudge them their success and you are happy to help when you can.",
	},
	"R": {
		Code: "R", Name: "Elegant",
		Description: "You express your feelings, desires and frustrations in brilliant, elegant and playful ways, whether in how you communicate with others or in creative and artistic pursuits.",
	},
	"S": {
		Code: "S", Name: "Primal",
		Description: "You do not always have the ability or concentration to channel your emotions and desires in ways that other people accept or expect. Your analysis of situations lacks nuance and your responses are simplistic. This may be a result of your present circumstances or your current frame of mind.",
	},
	"T": {
		Code: "T", Name: "Homogenous",
		Description: "You are consistent and dependable in your preferences; you know what you want. You may be somewhat one-sided or blinkered in your opinions, but you know your own mind.",
	},
	"U": {
		Code: "U", Name: "Heterogeneous",
		Description: "You have varied tastes, you are open to new experiences and are flexible in your outlook.",
	},
	"V": {
		Code: "V", Name: "Affective",
		Description: "You wear your heart on your sleeve and express your feelings openly or even effusively, perhaps excessively so. Color plays an important role for you; you seek to make dark or drab environments blossom. This could be your way of banishing boredom or shuffling out negative thoughts.",
	},
	"W": {
		Code: "W", Name: "Rational",
		Description: "You approach most things logically and objectively and tend to keep your feelings in check. You like things to be systematic and orderly. The uncertainty of emotions makes you nervous.",
	},
	Joint: {
		Code: Joint, Name: "Affective / Rational",
		Description: "You usually maintain a balance between emotion and logic. You express your feelings adequately and you are able to integrate them into your judgements and decisions. Consequently your opinions and positions seem reasonable and fair.",
	},
}

// Lookup returns the trait for a single letter or the joint marker.
// Lookup is case-insensitive.
func Lookup(code string) (Trait, bool) {
	t, ok := traits[strings.ToUpper(code)]
	return t, ok
}

// Tokens splits a result code into its unique tokens in order of
// first occurrence. The joint marker is kept as one token wherever
// it appears; every other rune is a token of its own.
func Tokens(code string) []string {
	seen := make(map[string]bool)
	var tokens []string
	for i := 0; i < len(code); {
		_, size := utf8.DecodeRuneInString(code[i:])
		tok := code[i : i+size]
		if strings.HasPrefix(code[i:], Joint) {
			tok = Joint
		}
		i += len(tok)
		if seen[tok] {
			continue
		}
		seen[tok] = true
		tokens = append(tokens, tok)
	}
	return tokens
}

// Describe resolves each unique token of code to its trait.
// Tokens without an entry are skipped. The result is never nil.
func Describe(code string) []Trait {
	out := make([]Trait, 0, len(code))
	for _, tok := range Tokens(code) {
		if t, ok := Lookup(tok); ok {
			out = append(out, t)
		}
	}
	return out
}

// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package extract

// stopwords are never kept as concepts and never appear inside a kept
// bigram. The list combines common English function words with lecture
// filler nouns that carry no domain meaning (R2.3).
var stopwords = map[string]bool{
	// Function words.
	"a": true, "an": true, "and": true, "are": true, "as": true, "at": true,
	"be": true, "been": true, "but": true, "by": true, "can": true,
	"could": true, "did": true, "do": true, "does": true, "for": true,
	"from": true, "had": true, "has": true, "have": true, "he": true,
	"her": true, "his": true, "how": true, "if": true, "in": true,
	"into": true, "is": true, "it": true, "its": true, "just": true,
	"me": true, "more": true, "most": true, "my": true, "no": true,
	"not": true, "now": true, "of": true, "on": true, "one": true,
	"or": true, "our": true, "out": true, "she": true, "should": true,
	"so": true, "some": true, "than": true, "that": true, "the": true,
	"their": true, "them": true, "then": true, "there": true, "these": true,
	"they": true, "this": true, "those": true, "to": true, "up": true,
	"us": true, "was": true, "we": true, "were": true, "what": true,
	"when": true, "where": true, "which": true, "who": true, "will": true,
	"with": true, "would": true, "you": true, "your": true,

	// Lecture filler nouns.
	"thing": true, "things": true, "stuff": true, "way": true, "lot": true,
	"bit": true, "example": true, "time": true, "people": true,
	"person": true, "video": true, "guys": true, "today": true,
	"going": true, "want": true, "need": true, "make": true, "look": true,
	"let": true, "say": true, "see": true, "use": true, "get": true,
	"take": true, "come": true, "know": true, "think": true, "good": true,
	"great": true, "really": true, "much": true, "many": true,
	"first": true, "last": true, "next": true, "new": true,
	"something": true, "everything": true, "nothing": true, "anyone": true,
	"everyone": true, "someone": true, "part": true, "course": true,
	"tutorial": true, "chapter": true, "section": true, "minute": true,
	"second": true, "hour": true, "day": true, "year": true,
	"number": true, "step": true, "point": true, "kind": true,
}

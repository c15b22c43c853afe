package extractor

// Small english word tables. They cover common cases only,
// larger vocabularies belong into word lists.
var (
	malePronouns   = set("he", "him", "his", "himself")
	femalePronouns = set("she", "her", "hers", "herself")
	neuterPronouns = set("it", "its", "itself")

	singularPronouns = set("he", "him", "his", "himself", "she", "her", "hers", "herself", "it", "its", "itself", "i", "me", "my", "mine", "myself")
	pluralPronouns   = set("they", "them", "their", "theirs", "themselves", "we", "us", "our", "ours", "ourselves")

	firstPersonPronouns  = set("i", "me", "my", "mine", "myself", "we", "us", "our", "ours", "ourselves")
	secondPersonPronouns = set("you", "your", "yours", "yourself", "yourselves")

	maleTitles   = set("mr", "sir", "lord", "king", "prince")
	femaleTitles = set("mrs", "ms", "miss", "lady", "queen", "princess")
	titles       = set("mr", "mrs", "ms", "miss", "dr", "sir", "lord", "lady", "king", "queen", "prince", "princess",
		"president", "minister", "senator", "governor", "mayor", "judge", "general", "chairman", "secretary", "professor")

	maleFirstNames   = set("john", "james", "robert", "michael", "william", "david", "richard", "thomas", "jim", "bob", "george", "paul", "peter", "mark")
	femaleFirstNames = set("mary", "jane", "patricia", "jennifer", "linda", "elizabeth", "susan", "sarah", "anna", "emma", "margaret", "alice")

	maleNouns   = set("man", "boy", "father", "son", "husband", "brother", "uncle", "king", "gentleman")
	femaleNouns = set("woman", "girl", "mother", "daughter", "wife", "sister", "aunt", "queen", "lady")

	irregularPlurals = set("people", "men", "women", "children", "police")

	nameSuffixes     = set("jr", "sr", "ii", "iii", "iv")
	acronymStopwords = set("of", "the", "and", "for", "de", "&")
)

func set(words ...string) map[string]bool {
	m := make(map[string]bool, len(words))
	for _, w := range words {
		m[w] = true
	}
	return m
}

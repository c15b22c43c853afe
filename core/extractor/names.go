package extractor

// Extractor names and feature keys shared by constraints, mergers and rulesets
const (
	String              = "string"
	StringKeyNormalized = "normalized"
	StringKeyCanonical  = "canonical"

	Head            = "head"
	HeadKeyWord     = "word"
	HeadKeyDescWord = "desc-word"

	Name         = "name"
	NameKeyParts = "parts"

	LastName         = "last-name"
	LastNameKeyValue = "value"

	Acronym            = "acronym"
	AcronymKeyInitials = "initials"
	AcronymKeyForm     = "form"

	Gender         = "gender"
	GenderKeyGuess = "guess"

	Number         = "number"
	NumberKeyGuess = "guess"

	GPE               = "gpe"
	GPEKeyModifier    = "modifier"
	GPEKeyAffiliation = "affiliation"

	Speaker            = "speaker"
	SpeakerKeyPerson   = "person"
	SpeakerKeyRefersTo = "refers-to"

	Title          = "title"
	TitleKeyTarget = "target"

	Copula               = "copula"
	CopulaKeyProposition = "proposition"

	Syntax              = "syntax"
	SyntaxKeyNode       = "node"
	SyntaxKeyAppositive = "appositive-of"
	SyntaxKeyNestedIn   = "nested-in"

	Operator          = "operator"
	OperatorKeyEmail  = "email"
	OperatorKeyPhone  = "phone"
	OperatorKeyHandle = "handle"

	NamePair           = "name-pair"
	NamePairKeyClash   = "clash"
	NamePairKeyOverlap = "overlap"

	Distance             = "distance"
	DistanceKeySentences = "sentences"
)

// Gender and number guesses
const (
	GenderMale     = "male"
	GenderFemale   = "female"
	GenderNeuter   = "neuter"
	NumberSingular = "singular"
	NumberPlural   = "plural"
)

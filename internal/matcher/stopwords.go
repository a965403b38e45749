package matcher

// stopWords never contribute to keyword scoring: question words, pronouns,
// prepositions, particles and polite filler that every support question
// carries.
var stopWords = map[string]struct{}{
	"а": {}, "без": {}, "бы": {}, "в": {}, "вам": {}, "вас": {}, "весь": {}, "во": {},
	"вот": {}, "все": {}, "вы": {}, "где": {}, "да": {}, "для": {}, "до": {},
	"его": {}, "ее": {}, "если": {}, "есть": {}, "еще": {}, "же": {}, "за": {}, "здравствуйте": {},
	"и": {}, "из": {}, "или": {}, "им": {}, "их": {}, "к": {}, "как": {}, "какая": {},
	"какие": {}, "какой": {}, "ко": {}, "когда": {}, "кто": {}, "ли": {}, "либо": {}, "меня": {},
	"мне": {}, "мной": {}, "могу": {}, "может": {}, "мой": {}, "моя": {}, "мое": {}, "мои": {}, "моего": {}, "моей": {},
	"можно": {}, "мы": {}, "на": {}, "над": {}, "нам": {}, "нас": {}, "не": {}, "нет": {},
	"надо": {}, "ни": {}, "но": {}, "ну": {}, "нужно": {}, "о": {}, "об": {}, "от": {}, "очень": {}, "по": {},
	"под": {}, "подскажите": {}, "пожалуйста": {}, "почему": {}, "при": {}, "привет": {}, "про": {}, "с": {},
	"со": {}, "спасибо": {}, "так": {}, "также": {}, "там": {}, "то": {}, "тоже": {}, "только": {},
	"ты": {}, "у": {}, "уже": {}, "хочу": {}, "что": {}, "чтобы": {}, "это": {}, "этот": {},
	"я": {},
	"a": {}, "an": {}, "and": {}, "how": {}, "i": {}, "is": {}, "my": {}, "the": {},
	"to": {}, "what": {}, "where": {},
}

// IsStopWord reports whether a normalized token is ignored by scoring.
func IsStopWord(token string) bool {
	_, ok := stopWords[token]
	return ok
}

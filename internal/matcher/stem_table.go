package matcher

// russianSuffixes are inflectional endings of nouns, adjectives and verbs.
// NewStemmer sorts them longest first.
var russianSuffixes = []string{
	"ениями", "аниями", "ениях", "ением", "анием",
	"ения", "ение", "ении", "ания", "ание", "ании",
	"остью", "остей", "ость", "ости",
	"ается", "яется", "ться", "ется", "ются", "ится", "ятся",
	"ами", "ями", "ого", "его", "ому", "ему", "ыми", "ими",
	"ать", "ять", "ить", "еть", "уть", "ешь", "ишь",
	"ает", "яет", "ают", "яют",
	"ала", "ало", "али", "ила", "ило", "или", "ела", "ели",
	"ой", "ей", "ий", "ый", "ая", "яя", "ое", "ее", "ые", "ие", "ых", "их",
	"ую", "юю", "ом", "ем", "ам", "ям", "ах", "ях", "ов", "ев",
	"ут", "ют", "ат", "ят", "ит", "ет", "ть", "ию", "ия",
	"а", "я", "ы", "и", "у", "ю", "е", "о", "ь",
}

// stemTable maps surface forms that suffix stripping gets wrong (fleeting
// vowels, past tense, slang synonyms) onto the stem their regular forms
// reduce to. Keys are normalized.
var stemTable = map[string]string{
	// fleeting vowels in genitive plural
	"денег":    "деньг",
	"поездок":  "поездк",
	"скидок":   "скидк",
	"ошибок":   "ошибк",
	"наценок":  "наценк",
	"заявок":   "заявк",
	"посылок":  "посылк",
	"доставок": "доставк",
	"ребенок":  "ребенк",
	"детей":    "ребенк",
	"дети":     "ребенк",

	// past tense and short forms
	"заказал":   "заказ",
	"заказала":  "заказ",
	"заказали":  "заказ",
	"оплатил":   "оплат",
	"отменил":   "отмен",
	"отменила":  "отмен",
	"отменили":  "отмен",
	"списал":    "спис",
	"списала":   "спис",
	"приехал":   "приех",
	"приехала":  "приех",
	"приехали":  "приех",
	"забыл":     "забы",
	"забыла":    "забы",
	"забыли":    "забы",
	"потерял":   "потер",
	"потеряла":  "потер",
	"потеряли":  "потер",
	"опоздал":   "опозд",
	"опоздала":  "опозд",
	"жду":       "жд",
	"ждать":     "жд",
	"ждет":      "жд",
	"ждал":      "жд",
	"ждала":     "жд",
	"стоит":     "стоим",
	"стоить":    "стоим",
	"пришел":    "приход",
	"пришла":    "приход",
	"приходит":  "приход",

	// colloquial synonyms
	"таксист":   "водител",
	"таксиста":  "водител",
	"таксисту":  "водител",
	"таксистом": "водител",
	"шофер":     "водител",
	"шофера":    "водител",
	"водила":    "водител",
	"карточка":  "карт",
	"карточки":  "карт",
	"карточку":  "карт",
	"карточкой": "карт",
	"наличка":   "наличн",
	"наличку":   "наличн",
	"наличкой":  "наличн",
	"налом":     "наличн",
	"прога":     "прилож",
	"приложуха": "прилож",
	"апп":       "прилож",
	"вернуть":   "возврат",
	"верните":   "возврат",
	"вернули":   "возврат",
	"вернут":    "возврат",
}

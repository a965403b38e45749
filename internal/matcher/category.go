package matcher

import (
	"strings"

	"taxi-faq/internal/models"
)

type categoryRule struct {
	category models.Category
	markers  []string
}

// categoryRules are checked in order; the first category with a marker in the
// query wins. Markers are matched at the start of a word so "цен" does not
// fire on "оценка".
var categoryRules = []categoryRule{
	{models.CategoryComplaint, []string{"жалоб", "пожаловат", "претензи", "недоволен", "недовольн", "хамств", "хам", "грубо", "грубил", "complain"}},
	{models.CategoryCancellation, []string{"отмен", "отказ от поездк", "отказаться", "cancel"}},
	{models.CategoryPayment, []string{"оплат", "заплат", "карт", "баланс", "пополн", "списа", "списыва", "чек", "возврат", "вернут", "деньг", "денег", "налич", "pay"}},
	{models.CategoryPricing, []string{"цен", "стоимост", "тариф", "наценк", "сколько стоит", "коэффициент", "дорог", "скидк", "промокод", "price"}},
	{models.CategoryDriver, []string{"водител", "таксист", "шофер", "машин", "автомобил", "driver"}},
	{models.CategoryDelivery, []string{"доставк", "доставить", "курьер", "посылк", "груз", "delivery"}},
	{models.CategoryBooking, []string{"заказ", "вызвать", "вызов", "такси", "поездк", "бронир", "предзаказ", "book"}},
	{models.CategoryTechnical, []string{"приложени", "ошибк", "не работает", "вылет", "завис", "обновлени", "смс", "код подтвержд", "вход", "войти", "аккаунт", "app"}},
}

// Classify maps a free-text query onto a category. Queries without any
// marker are general.
func Classify(query string) models.Category {
	q := " " + Normalize(query)
	if q == " " {
		return models.CategoryGeneral
	}

	for _, rule := range categoryRules {
		for _, marker := range rule.markers {
			if strings.Contains(q, " "+marker) {
				return rule.category
			}
		}
	}
	return models.CategoryGeneral
}

// CategoryPriority returns the order in which Classify tries categories,
// ending with the general default.
func CategoryPriority() []models.Category {
	out := make([]models.Category, 0, len(categoryRules)+1)
	for _, rule := range categoryRules {
		out = append(out, rule.category)
	}
	return append(out, models.CategoryGeneral)
}

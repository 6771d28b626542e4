package domain

// DateFormat slot date layout (YYYY-MM-DD)
const DateFormat = "2006-01-02"

// Business validation constants
const (
	MinNumberOfPeople      = 1
	MaxCustomerNameLength  = 255
	MaxCustomerEmailLength = 255
	MaxCustomerPhoneLength = 32
	MaxPromoCodeLength     = 32
)

// MoneyPlaces количество знаков после запятой для денежных сумм
const MoneyPlaces = 2

// AllCategories значение фильтра категории, означающее "без фильтра"
const AllCategories = "All"

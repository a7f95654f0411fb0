package domain

import "regexp"

// ServiceType тип услуги
type ServiceType string

const (
	ServiceHaircut      ServiceType = "haircut"
	ServiceBeardTrim    ServiceType = "beard-trim"
	ServiceHaircutBeard ServiceType = "haircut-beard"
	ServiceShampoo      ServiceType = "shampoo"
	ServiceStyling      ServiceType = "styling"
)

// ValidServiceTypes все допустимые услуги
var ValidServiceTypes = []ServiceType{
	ServiceHaircut,
	ServiceBeardTrim,
	ServiceHaircutBeard,
	ServiceShampoo,
	ServiceStyling,
}

// IsValidServiceType проверяет, что услуга входит в фиксированный перечень
func IsValidServiceType(s ServiceType) bool {
	for _, valid := range ValidServiceTypes {
		if s == valid {
			return true
		}
	}
	return false
}

// serviceNamesArabic локализованные названия услуг
var serviceNamesArabic = map[ServiceType]string{
	ServiceHaircut:      "قص شعر",
	ServiceBeardTrim:    "قص لحية",
	ServiceHaircutBeard: "قص شعر + لحية",
	ServiceShampoo:      "غسيل شعر",
	ServiceStyling:      "تسريحة",
}

// statusNamesArabic локализованные названия статусов
var statusNamesArabic = map[TurnStatus]string{
	StatusWaiting:   "في الانتظار",
	StatusConfirmed: "مؤكد",
	StatusCompleted: "مكتمل",
	StatusCancelled: "ملغي",
}

// ActiveStatuses статусы, при которых талон занимает место в очереди.
// На один номер телефона допускается не больше одного активного талона.
var ActiveStatuses = []TurnStatus{
	StatusWaiting,
	StatusConfirmed,
}

// Ограничения на входные данные
const (
	MinCustomerNameLength = 2
	MaxCustomerNameLength = 50
	MinMobileNumberLength = 8
	MaxMobileNumberLength = 15
	MaxNotesLength        = 500

	MinUsernameLength = 3
	MaxUsernameLength = 30
	MinPasswordLength = 6
)

// MobileNumberPattern допустимые символы номера телефона
var MobileNumberPattern = regexp.MustCompile(`^[0-9+\-\s()]+$`)

// EstimatedMinutesPerCustomer оценка времени обслуживания одного клиента,
// используется для estimatedWaitTime в статистике
const EstimatedMinutesPerCustomer = 15

// Пагинация административного списка
const (
	DefaultPageLimit = 10
	MaxPageLimit     = 100
)

package create_turn

import (
	"fmt"
	"strings"

	"github.com/m04kA/SMC-TurnService/internal/domain"
)

// normalizeRequest убирает краевые пробелы из пользовательского ввода
func normalizeRequest(req *Request) {
	req.CustomerName = strings.TrimSpace(req.CustomerName)
	req.MobileNumber = strings.TrimSpace(req.MobileNumber)
	req.ServiceType = strings.TrimSpace(req.ServiceType)
}

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	nameLen := len([]rune(req.CustomerName))
	if nameLen < domain.MinCustomerNameLength || nameLen > domain.MaxCustomerNameLength {
		return fmt.Errorf("%w: name must be %d-%d characters",
			ErrInvalidCustomerName, domain.MinCustomerNameLength, domain.MaxCustomerNameLength)
	}

	mobileLen := len(req.MobileNumber)
	if mobileLen < domain.MinMobileNumberLength || mobileLen > domain.MaxMobileNumberLength {
		return fmt.Errorf("%w: mobile number must be %d-%d characters",
			ErrInvalidMobileNumber, domain.MinMobileNumberLength, domain.MaxMobileNumberLength)
	}
	if !domain.MobileNumberPattern.MatchString(req.MobileNumber) {
		return fmt.Errorf("%w: mobile number contains invalid characters", ErrInvalidMobileNumber)
	}

	if !domain.IsValidServiceType(domain.ServiceType(req.ServiceType)) {
		return fmt.Errorf("%w: unknown service %q", ErrInvalidServiceType, req.ServiceType)
	}

	return nil
}

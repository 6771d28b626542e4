package create_booking

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/MoNiLBaRiYa/BookIt/internal/domain"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(field reflect.StructField) string {
		if name := field.Tag.Get("name"); name != "" {
			return name
		}
		return field.Name
	})

	// лимиты полей берутся из доменных констант
	v.RegisterAlias("customer_name", fmt.Sprintf("required,max=%d", domain.MaxCustomerNameLength))
	v.RegisterAlias("customer_email", fmt.Sprintf("required,email,max=%d", domain.MaxCustomerEmailLength))
	v.RegisterAlias("customer_phone", fmt.Sprintf("required,max=%d", domain.MaxCustomerPhoneLength))
	v.RegisterAlias("promo_code", fmt.Sprintf("max=%d", domain.MaxPromoCodeLength))
	v.RegisterAlias("people", fmt.Sprintf("gte=%d", domain.MinNumberOfPeople))
	return v
}

// normalizeRequest убирает пробелы по краям строковых полей; пустой промокод считается отсутствующим
func normalizeRequest(req *Request) {
	req.CustomerName = strings.TrimSpace(req.CustomerName)
	req.CustomerEmail = strings.TrimSpace(req.CustomerEmail)
	req.CustomerPhone = strings.TrimSpace(req.CustomerPhone)

	if req.PromoCode != nil {
		code := strings.TrimSpace(*req.PromoCode)
		if code == "" {
			req.PromoCode = nil
		} else {
			req.PromoCode = &code
		}
	}
}

// validateRequest валидирует входные данные запроса до обращения к хранилищу
func validateRequest(req *Request) error {
	if req == nil {
		return fmt.Errorf("%w: request is required", ErrInvalidInput)
	}

	err := validate.Struct(req)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	// первой ошибки достаточно, чтобы пользователь понял, что исправить
	return fmt.Errorf("%w: %s", ErrInvalidInput, describeFieldError(fieldErrs[0]))
}

func describeFieldError(fe validator.FieldError) string {
	// для алиасов Tag() возвращает имя алиаса, ActualTag() сработавшее правило
	switch fe.ActualTag() {
	case "required":
		return fe.Field() + " is required"
	case "email":
		return fe.Field() + " must be a valid email address"
	case "gt":
		return fe.Field() + " must be positive"
	case "gte":
		return fmt.Sprintf("%s must be at least %s", fe.Field(), fe.Param())
	case "max":
		return fmt.Sprintf("%s must be at most %s characters", fe.Field(), fe.Param())
	default:
		return fmt.Sprintf("%s failed %s validation", fe.Field(), fe.ActualTag())
	}
}

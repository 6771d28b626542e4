package promotions

import "github.com/MoNiLBaRiYa/BookIt/internal/domain"

// RuleProvider источник правил промокодов (только чтение)
type RuleProvider interface {
	Lookup(code string) (domain.PromotionRule, bool)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

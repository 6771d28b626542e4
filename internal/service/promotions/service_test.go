package promotions

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MoNiLBaRiYa/BookIt/internal/domain"
	"github.com/MoNiLBaRiYa/BookIt/internal/service/promotions/models"
	"github.com/MoNiLBaRiYa/BookIt/pkg/logger"
)

func defaultTable(t *testing.T) *Table {
	t.Helper()
	table, err := NewTable(DefaultRules())
	require.NoError(t, err)
	return table
}

func TestNewTable_RejectsDuplicates(t *testing.T) {
	rules := []domain.PromotionRule{
		{Code: "SAVE10", Kind: domain.PromotionPercentage, Value: decimal.NewFromInt(10)},
		{Code: "save10", Kind: domain.PromotionFixed, Value: decimal.NewFromInt(5)},
	}

	_, err := NewTable(rules)
	require.ErrorIs(t, err, ErrDuplicateCode)
}

func TestNewTable_RejectsInvalidRule(t *testing.T) {
	_, err := NewTable([]domain.PromotionRule{{Code: "BAD", Kind: domain.PromotionPercentage, Value: decimal.NewFromInt(150)}})
	require.ErrorIs(t, err, domain.ErrInvalidPromotion)
}

func TestTable_LookupIsCaseInsensitive(t *testing.T) {
	table := defaultTable(t)

	rule, ok := table.Lookup(" save10 ")
	require.True(t, ok)
	assert.Equal(t, "SAVE10", rule.Code)
	assert.Equal(t, 4, table.Len())

	_, ok = table.Lookup("NOPE")
	assert.False(t, ok)
}

func TestResolver_Resolve(t *testing.T) {
	resolver := NewResolver(defaultTable(t))

	discount, ok := resolver.Resolve("SAVE10", decimal.NewFromInt(3000))
	require.True(t, ok)
	assert.True(t, decimal.NewFromInt(300).Equal(discount))

	discount, ok = resolver.Resolve("FLAT100", decimal.NewFromInt(40))
	require.True(t, ok)
	assert.True(t, decimal.NewFromInt(40).Equal(discount))

	discount, ok = resolver.Resolve("NOPE", decimal.NewFromInt(1000))
	assert.False(t, ok)
	assert.True(t, discount.IsZero())
}

func TestResolver_IsIdempotent(t *testing.T) {
	table := defaultTable(t)
	resolver := NewResolver(table)

	first, ok1 := resolver.Resolve("WELCOME20", decimal.NewFromInt(1234))
	second, ok2 := resolver.Resolve("WELCOME20", decimal.NewFromInt(1234))

	assert.Equal(t, ok1, ok2)
	assert.True(t, first.Equal(second))

	rule, _ := table.Lookup("WELCOME20")
	assert.True(t, decimal.NewFromInt(20).Equal(rule.Value))
	assert.Equal(t, 4, table.Len())
}

func TestService_Validate(t *testing.T) {
	svc := NewService(defaultTable(t), logger.Discard())

	resp, err := svc.Validate(context.Background(), &models.ValidateRequest{Code: "save10", Amount: decimal.NewFromInt(2500)})
	require.NoError(t, err)
	assert.Equal(t, "SAVE10", resp.Code)
	assert.Equal(t, "Save 10% on your booking", resp.Description)
	assert.True(t, decimal.NewFromInt(250).Equal(resp.Discount))
	assert.True(t, decimal.NewFromInt(2500).Equal(resp.OriginalAmount))
	assert.True(t, decimal.NewFromInt(2250).Equal(resp.FinalAmount))
}

func TestService_Validate_Errors(t *testing.T) {
	svc := NewService(defaultTable(t), logger.Discard())

	tests := []struct {
		name    string
		req     *models.ValidateRequest
		wantErr error
	}{
		{name: "missing code", req: &models.ValidateRequest{Amount: decimal.NewFromInt(100)}, wantErr: ErrInvalidInput},
		{name: "zero amount", req: &models.ValidateRequest{Code: "SAVE10"}, wantErr: ErrInvalidInput},
		{name: "negative amount", req: &models.ValidateRequest{Code: "SAVE10", Amount: decimal.NewFromInt(-5)}, wantErr: ErrInvalidInput},
		{name: "unknown code", req: &models.ValidateRequest{Code: "NOPE", Amount: decimal.NewFromInt(100)}, wantErr: ErrInvalidCode},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Validate(context.Background(), tt.req)
			require.ErrorIs(t, err, tt.wantErr)
		})
	}
}

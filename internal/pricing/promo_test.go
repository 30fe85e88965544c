package pricing

import (
	"errors"
	"testing"

	"github.com/google/uuid"
)

func promoRule(code string, mutate func(*Rule)) Rule {
	limit := 100
	r := Rule{
		ID:       uuid.New(),
		Name:     "promo " + code,
		Priority: 1,
		Active:   true,
		Payload:  PromoCode{Code: code, Percentage: decPtr("10"), UsageCount: 0, UsageLimit: &limit},
	}
	if mutate != nil {
		mutate(&r)
	}
	return r
}

func TestValidatePromo(t *testing.T) {
	client := uuid.New()
	other := uuid.New()

	tests := []struct {
		name    string
		rule    Rule
		code    string
		wantErr error
	}{
		{"valid code no scope restrictions", promoRule("WELCOME", nil), "WELCOME", nil},
		{"unknown code", promoRule("WELCOME", nil), "NOPE", ErrPromoNotFound},
		{"inactive rule", promoRule("WELCOME", func(r *Rule) { r.Active = false }), "WELCOME", ErrPromoNotFound},
		{"exhausted usage limit", promoRule("WELCOME", func(r *Rule) {
			limit := 3
			r.Payload = PromoCode{Code: "WELCOME", UsageCount: 3, UsageLimit: &limit}
		}), "WELCOME", ErrPromoExhausted},
		{"usage below limit", promoRule("WELCOME", func(r *Rule) {
			limit := 3
			r.Payload = PromoCode{Code: "WELCOME", UsageCount: 2, UsageLimit: &limit}
		}), "WELCOME", nil},
		{"no usage limit", promoRule("WELCOME", func(r *Rule) {
			r.Payload = PromoCode{Code: "WELCOME", UsageCount: 9999}
		}), "WELCOME", nil},
		{"available to all overrides exclusion", promoRule("WELCOME", func(r *Rule) {
			r.AvailableToAll = true
			r.ExcludedClients = []uuid.UUID{client}
		}), "WELCOME", nil},
		{"specific allow-list contains client", promoRule("WELCOME", func(r *Rule) {
			r.SpecificClients = []uuid.UUID{client}
		}), "WELCOME", nil},
		{"specific allow-list without client", promoRule("WELCOME", func(r *Rule) {
			r.SpecificClients = []uuid.UUID{other}
		}), "WELCOME", ErrPromoNotEligible},
		{"exclusion list contains client", promoRule("WELCOME", func(r *Rule) {
			r.ExcludedClients = []uuid.UUID{client}
		}), "WELCOME", ErrPromoNotEligible},
		{"exclusion list without client", promoRule("WELCOME", func(r *Rule) {
			r.ExcludedClients = []uuid.UUID{other}
		}), "WELCOME", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			promo, err := ValidatePromo([]Rule{tt.rule}, tt.code, client)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("err = %v, want %v", err, tt.wantErr)
			}
			if tt.wantErr == nil && promo == nil {
				t.Fatal("expected a promo payload on success")
			}
		})
	}
}

func TestApplyPromo(t *testing.T) {
	tests := []struct {
		name   string
		tariff string
		promo  PromoCode
		want   string
	}{
		{"percentage only", "100", PromoCode{Percentage: decPtr("25")}, "75.00"},
		{"fixed only", "100", PromoCode{FixedAmount: decPtr("15")}, "85.00"},
		{"percentage then fixed", "100", PromoCode{Percentage: decPtr("10"), FixedAmount: decPtr("5")}, "85.00"},
		{"floors at zero", "10", PromoCode{FixedAmount: decPtr("50")}, "0.00"},
		{"empty promo leaves tariff", "42.42", PromoCode{}, "42.42"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ApplyPromo(dec(tt.tariff), tt.promo)
			if got.StringFixed(2) != tt.want {
				t.Errorf("ApplyPromo = %s, want %s", got.StringFixed(2), tt.want)
			}
		})
	}
}

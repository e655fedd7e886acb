package payment

import (
	"testing"

	"zela/models"

	"github.com/stretchr/testify/assert"
)

func TestValidateRequest(t *testing.T) {
	valid := models.PaymentRequest{
		UserID: "user-1",
		Amount: 5000,
		Method: models.PaymentMethodCard,
	}
	assert.NoError(t, validateRequest(valid))

	tests := []struct {
		name   string
		mutate func(*models.PaymentRequest)
	}{
		{"zero amount", func(r *models.PaymentRequest) { r.Amount = 0 }},
		{"negative amount", func(r *models.PaymentRequest) { r.Amount = -100 }},
		{"missing user", func(r *models.PaymentRequest) { r.UserID = "" }},
		{"unsupported method", func(r *models.PaymentRequest) { r.Method = "barter" }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := valid
			tt.mutate(&req)
			assert.Error(t, validateRequest(req))
		})
	}

	t.Run("cash is accepted", func(t *testing.T) {
		req := valid
		req.Method = models.PaymentMethodCash
		assert.NoError(t, validateRequest(req))
	})
}

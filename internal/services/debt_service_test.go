package services

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/savezra/whatsapp-bot/internal/models"
)

func rate(v float64) *float64 { return &v }

func TestClassifyDebt(t *testing.T) {
	assert.Equal(t, models.DebtUnknown, ClassifyDebt(nil))
	assert.Equal(t, models.DebtToxic, ClassifyDebt(rate(36)))
	assert.Equal(t, models.DebtToxic, ClassifyDebt(rate(20)))
	assert.Equal(t, models.DebtNeutral, ClassifyDebt(rate(19.99)))
	assert.Equal(t, models.DebtNeutral, ClassifyDebt(rate(10)))
	assert.Equal(t, models.DebtPotentiallyGood, ClassifyDebt(rate(9.99)))
	assert.Equal(t, models.DebtPotentiallyGood, ClassifyDebt(rate(0)))
}

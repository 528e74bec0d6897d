package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"

	"github.com/sammywachtel/harmonia-api/internal/analysis/interpretation"
)

func TestHistoryService_DisabledIsNoOp(t *testing.T) {
	service := NewHistoryService(nil)
	assert.False(t, service.Enabled())

	err := service.Record([]string{"C", "G"}, interpretation.Options{}, &interpretation.Result{})
	assert.NoError(t, err)

	records, err := service.List(10)
	assert.NoError(t, err)
	assert.Nil(t, records)

	_, err = service.Get("any-id")
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

package models_test

import (
	"testing"

	"github.com/chrisdamba/custgen/internal/models"
	"github.com/stretchr/testify/assert"
)

func TestCustomerString(t *testing.T) {
	c := models.Customer{ID: 12, Class: 1, ArrivalTime: 7, ServiceTime: 3}
	assert.Equal(t, "12:1,7,3", c.String())
}

func TestCustomerCSVRecord(t *testing.T) {
	c := models.Customer{ID: 1, Class: 0, ArrivalTime: 5, ServiceTime: 2}
	assert.Equal(t, []string{"1", "0", "5", "2"}, c.CSVRecord())
	assert.Len(t, models.CustomerCSVHeader, len(c.CSVRecord()))
}

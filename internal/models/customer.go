package models

import (
	"fmt"
	"strconv"
)

// Customer is one generated arrival for the downstream queueing simulator.
type Customer struct {
	ID          int `json:"id"`
	Class       int `json:"class"`
	ArrivalTime int `json:"arrival_time"`
	ServiceTime int `json:"service_time"`
}

// String renders the customer in the customers.txt line format, without the newline.
func (c Customer) String() string {
	return fmt.Sprintf("%d:%d,%d,%d", c.ID, c.Class, c.ArrivalTime, c.ServiceTime)
}

// CSVRecord returns the customer as a csv row matching CustomerCSVHeader.
func (c Customer) CSVRecord() []string {
	return []string{
		strconv.Itoa(c.ID),
		strconv.Itoa(c.Class),
		strconv.Itoa(c.ArrivalTime),
		strconv.Itoa(c.ServiceTime),
	}
}

var CustomerCSVHeader = []string{"id", "class", "arrival_time", "service_time"}

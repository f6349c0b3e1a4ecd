package factories

import (
	"math/rand"
	"time"

	"github.com/chrisdamba/custgen/internal/models"
	"github.com/jaswdr/faker"
)

// Sampler draws a uniformly distributed integer from the inclusive range [min, max].
type Sampler interface {
	IntBetween(min, max int) int
}

// NewSampler returns a faker-backed sampler. A zero seed means seed from the clock.
func NewSampler(seed int64) Sampler {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return faker.NewWithSeed(rand.NewSource(seed))
}

type CustomerFactory struct {
	Sampler Sampler
}

// CreateCustomer draws class, arrival time and service time, in that order.
func (cf *CustomerFactory) CreateCustomer(config *models.Config, id int) models.Customer {
	return models.Customer{
		ID:          id,
		Class:       cf.Sampler.IntBetween(0, config.ClassNum-1),
		ArrivalTime: cf.Sampler.IntBetween(config.MinArrival, config.MaxArrival),
		ServiceTime: cf.Sampler.IntBetween(config.MinService, config.MaxService),
	}
}

package factories

import (
	"strings"

	"github.com/dan1d/clover-sandbox-simulator/internal/models"
	"github.com/lucsky/cuid"
)

type CustomerFactory struct{}

// CreateCustomer generates a customer whose email is derived from the
// generated name so seeded records look coherent when browsed in the
// merchant dashboard.
func (cf *CustomerFactory) CreateCustomer() *models.Customer {
	first := fake.Person().FirstName()
	last := fake.Person().LastName()
	return &models.Customer{
		ID:        cuid.New(),
		FirstName: first,
		LastName:  last,
		Email:     strings.ToLower(first + "." + last + "@" + fake.Internet().Domain()),
		Phone:     fake.Phone().Number(),
	}
}

func (cf *CustomerFactory) CreateCustomers(count int) []*models.Customer {
	customers := make([]*models.Customer, count)
	for i := range customers {
		customers[i] = cf.CreateCustomer()
	}
	return customers
}

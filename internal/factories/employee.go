package factories

import (
	"fmt"
	"math/rand"

	"github.com/dan1d/clover-sandbox-simulator/internal/models"
	"github.com/jaswdr/faker"
	"github.com/lucsky/cuid"
)

var fake = faker.New()

var employeeRoles = []string{"MANAGER", "SERVER", "SERVER", "SERVER", "CASHIER", "BARTENDER"}

type EmployeeFactory struct{}

// CreateEmployee generates a staff member with a unique 4-digit PIN. Roles
// skew toward servers the way a real floor roster does.
func (ef *EmployeeFactory) CreateEmployee() *models.Employee {
	return &models.Employee{
		ID:   cuid.New(),
		Name: fake.Person().Name(),
		Role: employeeRoles[rand.Intn(len(employeeRoles))],
		PIN:  fmt.Sprintf("%04d", fake.IntBetween(1000, 9999)),
	}
}

// CreateRoster generates count employees with at least one manager so the
// merchant always has someone who can void and refund.
func (ef *EmployeeFactory) CreateRoster(count int) []*models.Employee {
	if count < 1 {
		count = 1
	}
	roster := make([]*models.Employee, count)
	for i := range roster {
		roster[i] = ef.CreateEmployee()
	}
	roster[0].Role = "MANAGER"
	return roster
}

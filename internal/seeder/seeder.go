package seeder

import (
	"context"
	"fmt"
	"log"
	"strings"

	"github.com/dan1d/clover-sandbox-simulator/internal/factories"
	"github.com/dan1d/clover-sandbox-simulator/internal/gateways"
	"github.com/dan1d/clover-sandbox-simulator/internal/models"
)

// Seeder provisions a sandbox merchant with the catalog the simulator needs:
// categories, menu items, modifier groups, a tax rate, discounts, staff,
// customers and order types. Seeding is idempotent by name; re-running
// against an already seeded merchant creates nothing.
type Seeder struct {
	reader gateways.CatalogProvider
	writer gateways.CatalogWriter

	catalog   factories.CatalogFactory
	discounts factories.DiscountFactory
	employees factories.EmployeeFactory
	customers factories.CustomerFactory

	EmployeeCount int
	CustomerCount int
}

func New(reader gateways.CatalogProvider, writer gateways.CatalogWriter) *Seeder {
	return &Seeder{
		reader:        reader,
		writer:        writer,
		EmployeeCount: 8,
		CustomerCount: 25,
	}
}

// Run seeds every entity class in dependency order: tax rate and modifier
// groups before items, categories before both items and discounts.
func (s *Seeder) Run(ctx context.Context) error {
	taxRate, err := s.seedTaxRate(ctx)
	if err != nil {
		return fmt.Errorf("seed tax rate: %w", err)
	}
	groups, err := s.seedModifierGroups(ctx)
	if err != nil {
		return fmt.Errorf("seed modifier groups: %w", err)
	}
	categories, err := s.seedCategories(ctx)
	if err != nil {
		return fmt.Errorf("seed categories: %w", err)
	}
	if err := s.seedItems(ctx, categories, groups, taxRate); err != nil {
		return fmt.Errorf("seed items: %w", err)
	}
	if err := s.seedDiscounts(ctx, categories); err != nil {
		return fmt.Errorf("seed discounts: %w", err)
	}
	if err := s.seedOrderTypes(ctx); err != nil {
		return fmt.Errorf("seed order types: %w", err)
	}
	if err := s.seedEmployees(ctx); err != nil {
		return fmt.Errorf("seed employees: %w", err)
	}
	if err := s.seedCustomers(ctx); err != nil {
		return fmt.Errorf("seed customers: %w", err)
	}
	log.Printf("Merchant seeding complete")
	return nil
}

func (s *Seeder) seedTaxRate(ctx context.Context) (*models.TaxRate, error) {
	existing, err := s.reader.TaxRates(ctx)
	if err != nil {
		return nil, err
	}
	for _, rate := range existing {
		if rate.IsDefault {
			return rate, nil
		}
	}
	if len(existing) > 0 {
		return existing[0], nil
	}

	rate := s.catalog.CreateTaxRate()
	if err := s.writer.CreateTaxRate(ctx, rate); err != nil {
		return nil, err
	}
	log.Printf("Created tax rate %q", rate.Name)
	return rate, nil
}

func (s *Seeder) seedModifierGroups(ctx context.Context) ([]*models.ModifierGroup, error) {
	existing, err := s.reader.ModifierGroups(ctx)
	if err != nil {
		return nil, err
	}
	byName := make(map[string]*models.ModifierGroup, len(existing))
	for _, g := range existing {
		byName[strings.ToLower(g.Name)] = g
	}

	var groups []*models.ModifierGroup
	for _, group := range s.catalog.CreateModifierGroups() {
		if found, ok := byName[strings.ToLower(group.Name)]; ok {
			groups = append(groups, found)
			continue
		}
		if err := s.writer.CreateModifierGroup(ctx, group); err != nil {
			return nil, err
		}
		log.Printf("Created modifier group %q", group.Name)
		groups = append(groups, group)
	}
	return groups, nil
}

func (s *Seeder) seedCategories(ctx context.Context) ([]*models.Category, error) {
	existing, err := s.reader.Categories(ctx)
	if err != nil {
		return nil, err
	}
	byName := make(map[string]*models.Category, len(existing))
	for _, c := range existing {
		byName[strings.ToLower(c.Name)] = c
	}

	var categories []*models.Category
	for _, category := range s.catalog.CreateCategories() {
		if found, ok := byName[strings.ToLower(category.Name)]; ok {
			categories = append(categories, found)
			continue
		}
		if err := s.writer.CreateCategory(ctx, category); err != nil {
			return nil, err
		}
		log.Printf("Created category %q", category.Name)
		categories = append(categories, category)
	}
	return categories, nil
}

func (s *Seeder) seedItems(ctx context.Context, categories []*models.Category, groups []*models.ModifierGroup, taxRate *models.TaxRate) error {
	existing, err := s.reader.Items(ctx)
	if err != nil {
		return err
	}
	byName := make(map[string]bool, len(existing))
	for _, item := range existing {
		byName[strings.ToLower(item.Name)] = true
	}

	created := 0
	for _, item := range s.catalog.CreateItems(categories, groups, taxRate) {
		if byName[strings.ToLower(item.Name)] {
			continue
		}
		if err := s.writer.CreateItem(ctx, item); err != nil {
			return err
		}
		created++
	}
	log.Printf("Created %d menu items (%d already present)", created, len(existing))
	return nil
}

func (s *Seeder) seedDiscounts(ctx context.Context, categories []*models.Category) error {
	existing, err := s.reader.Discounts(ctx)
	if err != nil {
		return err
	}
	byName := make(map[string]bool, len(existing))
	for _, d := range existing {
		byName[strings.ToLower(d.Name)] = true
	}

	dessertID := ""
	for _, c := range categories {
		if c.Name == "Desserts" {
			dessertID = c.ID
		}
	}

	created := 0
	for _, discount := range s.discounts.CreateDiscounts(dessertID) {
		if byName[strings.ToLower(discount.Name)] {
			continue
		}
		if err := s.writer.CreateDiscount(ctx, discount); err != nil {
			return err
		}
		created++
	}
	log.Printf("Created %d discounts (%d already present)", created, len(existing))
	return nil
}

func (s *Seeder) seedOrderTypes(ctx context.Context) error {
	existing, err := s.reader.OrderTypes(ctx)
	if err != nil {
		return err
	}
	byLabel := make(map[string]bool, len(existing))
	for _, ot := range existing {
		byLabel[strings.ToLower(ot.Label)] = true
	}

	for _, orderType := range s.catalog.CreateOrderTypes() {
		if byLabel[strings.ToLower(orderType.Label)] {
			continue
		}
		if err := s.writer.CreateOrderType(ctx, orderType); err != nil {
			return err
		}
		log.Printf("Created order type %q", orderType.Label)
	}
	return nil
}

// seedEmployees tops the roster up to EmployeeCount rather than matching by
// name; generated staff names are random so name matching would re-create
// them forever.
func (s *Seeder) seedEmployees(ctx context.Context) error {
	existing, err := s.reader.Employees(ctx)
	if err != nil {
		return err
	}
	missing := s.EmployeeCount - len(existing)
	if missing <= 0 {
		return nil
	}
	for _, employee := range s.employees.CreateRoster(missing) {
		if err := s.writer.CreateEmployee(ctx, employee); err != nil {
			return err
		}
	}
	log.Printf("Created %d employees (%d already present)", missing, len(existing))
	return nil
}

func (s *Seeder) seedCustomers(ctx context.Context) error {
	existing, err := s.reader.Customers(ctx)
	if err != nil {
		return err
	}
	missing := s.CustomerCount - len(existing)
	if missing <= 0 {
		return nil
	}
	for _, customer := range s.customers.CreateCustomers(missing) {
		if err := s.writer.CreateCustomer(ctx, customer); err != nil {
			return err
		}
	}
	log.Printf("Created %d customers (%d already present)", missing, len(existing))
	return nil
}

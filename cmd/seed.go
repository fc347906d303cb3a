package cmd

import (
	"context"
	"fmt"
	"os"

	"restaurant/internal/core/application/usecases/commands"
	"restaurant/internal/core/application/usecases/queries"
	"restaurant/internal/core/domain/model/kernel"
	"restaurant/internal/pkg/errs"

	"gopkg.in/yaml.v3"
)

// SeedFile describes restaurants to create, as read from YAML:
//
//	tenants:
//	  - name: Spice Garden
//	    domain: spice.example.com
//	    tables: [1, 2, 3]
//	    menu:
//	      - {name: Paneer Tikka, price: 24900, category: Starters, prepMinutes: 15}
//	    devices:
//	      - {role: waiter, pushToken: fcm-token}
type SeedFile struct {
	Tenants []SeedTenant `yaml:"tenants"`
}

type SeedTenant struct {
	Name    string         `yaml:"name"`
	Domain  string         `yaml:"domain"`
	Tables  []int          `yaml:"tables"`
	Menu    []SeedMenuItem `yaml:"menu"`
	Devices []SeedDevice   `yaml:"devices"`
}

type SeedMenuItem struct {
	Name        string `yaml:"name"`
	Description string `yaml:"description"`
	Price       int64  `yaml:"price"`
	Category    string `yaml:"category"`
	PrepMinutes int    `yaml:"prepMinutes"`
	// Available defaults to true.
	Available *bool `yaml:"available"`
}

type SeedDevice struct {
	Role      string `yaml:"role"`
	PushToken string `yaml:"pushToken"`
}

// SeededTenant reports what Seed created for one tenant.
type SeededTenant struct {
	ID     kernel.UUID
	Name   string
	Tables []queries.TableView
}

// LoadSeedFile reads and decodes a seed file. Unknown keys are rejected.
func LoadSeedFile(path string) (SeedFile, error) {
	f, err := os.Open(path)
	if err != nil {
		return SeedFile{}, err
	}
	defer f.Close()

	var seed SeedFile
	decoder := yaml.NewDecoder(f)
	decoder.KnownFields(true)
	if err = decoder.Decode(&seed); err != nil {
		return SeedFile{}, errs.NewValueIsInvalidErrorWithCause("seed file "+path, err)
	}
	if len(seed.Tenants) == 0 {
		return SeedFile{}, errs.NewValueIsRequiredError("tenants")
	}
	return seed, nil
}

// Seed creates the tenants of the seed file through the admin commands. Each row is
// its own transaction; the first failure stops seeding.
func (c *CompositionRoot) Seed(ctx context.Context, seed SeedFile) ([]SeededTenant, error) {
	createTenant := c.CreateCreateTenantCommandHandler()
	createTable := c.CreateCreateTableCommandHandler()
	createMenuItem := c.CreateCreateMenuItemCommandHandler()
	setAvailability := c.CreateSetMenuItemAvailabilityCommandHandler()
	registerDevice := c.CreateRegisterDeviceCommandHandler()
	getTables := c.CreateGetTablesQueryHandler()

	seeded := make([]SeededTenant, 0, len(seed.Tenants))
	for _, t := range seed.Tenants {
		tenantID := kernel.NewUUID()
		cmd, err := commands.NewCreateTenantCommand(tenantID, t.Name, t.Domain)
		if err != nil {
			return seeded, fmt.Errorf("tenant %q: %w", t.Name, err)
		}
		if err = createTenant.Handle(ctx, cmd); err != nil {
			return seeded, fmt.Errorf("tenant %q: %w", t.Name, err)
		}

		for _, number := range t.Tables {
			cmd, err := commands.NewCreateTableCommand(kernel.NewUUID(), tenantID, number)
			if err == nil {
				err = createTable.Handle(ctx, cmd)
			}
			if err != nil {
				return seeded, fmt.Errorf("tenant %q table %d: %w", t.Name, number, err)
			}
		}

		for _, item := range t.Menu {
			if err = seedMenuItem(ctx, createMenuItem, setAvailability, tenantID, item); err != nil {
				return seeded, fmt.Errorf("tenant %q menu item %q: %w", t.Name, item.Name, err)
			}
		}

		for _, d := range t.Devices {
			if err = seedDevice(ctx, registerDevice, tenantID, d); err != nil {
				return seeded, fmt.Errorf("tenant %q device: %w", t.Name, err)
			}
		}

		query, err := queries.NewGetTablesQuery(tenantID, c.config.PublicBaseURL)
		if err != nil {
			return seeded, err
		}
		tables, err := getTables.Handle(ctx, query)
		if err != nil {
			return seeded, err
		}

		c.logger.InfoContext(ctx, "Tenant seeded", "tenant", t.Name, "tables", len(tables), "menu_items", len(t.Menu))
		seeded = append(seeded, SeededTenant{ID: tenantID, Name: t.Name, Tables: tables})
	}

	return seeded, nil
}

func seedMenuItem(
	ctx context.Context,
	create commands.CreateMenuItemCommandHandler,
	setAvailability commands.SetMenuItemAvailabilityCommandHandler,
	tenantID kernel.UUID,
	item SeedMenuItem,
) error {
	itemID := kernel.NewUUID()
	cmd, err := commands.NewCreateMenuItemCommand(itemID, tenantID, item.Name, item.Description, item.Price, item.Category, item.PrepMinutes)
	if err != nil {
		return err
	}
	if err = create.Handle(ctx, cmd); err != nil {
		return err
	}

	if item.Available == nil || *item.Available {
		return nil
	}
	availability, err := commands.NewSetMenuItemAvailabilityCommand(tenantID, itemID, false)
	if err != nil {
		return err
	}
	return setAvailability.Handle(ctx, availability)
}

func seedDevice(ctx context.Context, register commands.RegisterDeviceCommandHandler, tenantID kernel.UUID, d SeedDevice) error {
	role, err := kernel.ParseRole(d.Role)
	if err != nil {
		return err
	}
	cmd, err := commands.NewRegisterDeviceCommand(kernel.NewUUID(), tenantID, role, d.PushToken)
	if err != nil {
		return err
	}
	return register.Handle(ctx, cmd)
}

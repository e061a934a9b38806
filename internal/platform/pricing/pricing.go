// Package pricing holds the fixed tariff of paid actions and subscription plan allotments.
package pricing

import (
	_ "embed"
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
	"github.com/bilgisen/bookshall-sub000/internal/core/domain"
)

//go:embed default_pricing.toml
var defaultPricing []byte

// Table is the immutable price list. It is safe for concurrent use.
type Table struct {
	actions map[domain.PaidAction]int64
	plans   map[string]int64
}

type tableFile struct {
	Actions map[string]int64 `toml:"actions"`
	Plans   map[string]int64 `toml:"plans"`
}

// Default returns the built-in price list.
func Default() *Table {
	t, err := Parse(defaultPricing)
	if err != nil {
		panic(fmt.Sprintf("embedded pricing table is invalid: %v", err))
	}
	return t
}

// Load reads a TOML price list from path. Entries missing from the file fall back to the defaults.
func Load(path string) (*Table, error) {
	if path == "" {
		return Default(), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read pricing file %s: %w", path, err)
	}
	override, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("failed to parse pricing file %s: %w", path, err)
	}

	merged := Default()
	for action, cost := range override.actions {
		merged.actions[action] = cost
	}
	for plan, credits := range override.plans {
		merged.plans[plan] = credits
	}
	return merged, nil
}

// Parse decodes a TOML price list. Action costs must be positive; plan allotments must not be negative.
func Parse(data []byte) (*Table, error) {
	var f tableFile
	if _, err := toml.Decode(string(data), &f); err != nil {
		return nil, err
	}

	t := &Table{
		actions: make(map[domain.PaidAction]int64, len(f.Actions)),
		plans:   make(map[string]int64, len(f.Plans)),
	}
	for name, cost := range f.Actions {
		if cost <= 0 {
			return nil, fmt.Errorf("action %s: cost must be positive, got %d", name, cost)
		}
		t.actions[domain.PaidAction(name)] = cost
	}
	for plan, credits := range f.Plans {
		if credits < 0 {
			return nil, fmt.Errorf("plan %s: allotment must not be negative, got %d", plan, credits)
		}
		t.plans[plan] = credits
	}
	return t, nil
}

// Cost returns the credit cost of an action.
func (t *Table) Cost(action domain.PaidAction) (int64, bool) {
	cost, ok := t.actions[action]
	return cost, ok
}

// PlanAllotment returns the credits granted for one billing period of a plan.
func (t *Table) PlanAllotment(planID string) (int64, bool) {
	credits, ok := t.plans[planID]
	return credits, ok
}

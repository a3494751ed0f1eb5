package orchestration

import (
	"github.com/agbru/bigfact/internal/factorial"
)

// GetCalculatorsToRun determines which calculators should be executed based
// on the selected algorithm name. "all" returns every registered strategy in
// alphabetically sorted order for consistent, reproducible behavior.
//
// Parameters:
//   - algo: The algorithm selection ("all" or a registered name).
//   - factory: The calculator factory to retrieve implementations from.
//
// Returns:
//   - []factorial.Calculator: A slice of calculators to execute.
func GetCalculatorsToRun(algo string, factory factorial.CalculatorFactory) []factorial.Calculator {
	if algo == "all" {
		keys := factory.List() // List() returns sorted keys
		calculators := make([]factorial.Calculator, 0, len(keys))
		for _, k := range keys {
			if calc, err := factory.Get(k); err == nil {
				calculators = append(calculators, calc)
			}
		}
		return calculators
	}
	if calc, err := factory.Get(algo); err == nil {
		return []factorial.Calculator{calc}
	}
	return nil
}

package config

import (
	"fmt"
	"os"

	"github.com/tidwall/gjson"

	"abtest/domain/experiment"
	"abtest/internal/errors"
)

// LoadScenarios reads a scenario list from a JSON file of the form
//
//	{"scenarios": [{"name": "reject", "title": "...", "rate_a": 0.2, "rate_b": 0.23, "expect": "reject"}]}
//
// An empty path yields nil so callers fall back to the built-in scenarios.
func LoadScenarios(path string) ([]experiment.Scenario, error) {
	if path == "" {
		return nil, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to read scenarios file %s", path)
	}
	return ParseScenarios(data)
}

// ParseScenarios decodes and validates a scenario document
func ParseScenarios(data []byte) ([]experiment.Scenario, error) {
	if !gjson.ValidBytes(data) {
		return nil, errors.ConfigInvalid("scenarios document is not valid JSON")
	}

	list := gjson.GetBytes(data, "scenarios")
	items := list.Array()
	if !list.IsArray() || len(items) == 0 {
		return nil, errors.ConfigInvalid("scenarios document needs a non-empty \"scenarios\" array")
	}

	scenarios := make([]experiment.Scenario, 0, len(items))
	seen := make(map[string]bool)
	for idx, value := range items {
		name := value.Get("name").String()
		if name == "" {
			return nil, errors.ConfigInvalid(fmt.Sprintf("scenario %d has no name", idx))
		}
		if seen[name] {
			return nil, errors.ConfigInvalid("duplicate scenario name " + name)
		}
		seen[name] = true

		rateA, rateB := value.Get("rate_a"), value.Get("rate_b")
		if rateA.Type != gjson.Number || rateB.Type != gjson.Number {
			return nil, errors.ConfigInvalid("scenario " + name + " needs numeric rate_a and rate_b")
		}

		var expect experiment.Outcome
		if raw := value.Get("expect").String(); raw != "" {
			out, err := experiment.ParseOutcome(raw)
			if err != nil {
				return nil, errors.ConfigInvalid(fmt.Sprintf("scenario %s: %v", name, err))
			}
			expect = out
		}

		scenarios = append(scenarios, experiment.Scenario{
			Name:   name,
			Title:  value.Get("title").String(),
			RateA:  rateA.Float(),
			RateB:  rateB.Float(),
			Expect: expect,

			DecisionOnly: value.Get("decision_only").Bool(),
		})
	}

	return scenarios, nil
}

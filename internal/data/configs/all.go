package configs

import "github.com/yungbote/yoshkaflow-backend/internal/data/schema"

// All is the static registrant list. New aggregates add their unit here.
func All() []schema.Configuration {
	return []schema.Configuration{
		UserConfiguration{},
		ProductConfiguration{},
		ResearchConfiguration{},
	}
}

// Definition applies All and returns the merged registry.
func Definition() (schema.Definition, error) {
	return schema.Apply(All()...)
}

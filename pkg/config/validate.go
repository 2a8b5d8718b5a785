package config

import (
	// blank import for embeds
	_ "embed"
	"fmt"
	"strings"

	"github.com/xeipuuv/gojsonschema"

	"github.com/insanefusion/fusionenv/pkg/global"
)

const errorString = `There is a problem in your %s file.
%s`

//go:embed data/config_schema_v1.0.json
var schemaV1 []byte

// ValidateConfig checks a parsed config against the embedded schema and
// the semantic rules.
func ValidateConfig(cfg *Config) error {
	schemaLoader := gojsonschema.NewBytesLoader(schemaV1)
	dataLoader := gojsonschema.NewGoLoader(cfg)
	if err := validateSchema(schemaLoader, dataLoader); err != nil {
		return err
	}
	return validateModels(cfg)
}

func validateSchema(schemaLoader, dataLoader gojsonschema.JSONLoader) error {
	result, err := gojsonschema.Validate(schemaLoader, dataLoader)
	if err != nil {
		return err
	}
	if !result.Valid() {
		problems := make([]string, 0, len(result.Errors()))
		for _, e := range result.Errors() {
			problems = append(problems, "- "+e.String())
		}
		return fmt.Errorf(errorString, global.ConfigFilename, strings.Join(problems, "\n"))
	}
	return nil
}

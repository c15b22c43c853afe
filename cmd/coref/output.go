package main

import (
	"encoding/json"
	"io"

	"github.com/siherrmann/coref/helper"
	"github.com/siherrmann/coref/model"
	"gopkg.in/yaml.v3"
)

// writeEntitySet encodes set as indented JSON or as a YAML document
func writeEntitySet(w io.Writer, set *model.EntitySet, format string) error {
	switch format {
	case "yaml":
		encoder := yaml.NewEncoder(w)
		encoder.SetIndent(2)
		if err := encoder.Encode(set); err != nil {
			return helper.NewError("encode yaml", err)
		}
		return encoder.Close()
	default:
		encoder := json.NewEncoder(w)
		encoder.SetIndent("", "  ")
		if err := encoder.Encode(set); err != nil {
			return helper.NewError("encode json", err)
		}
		return nil
	}
}

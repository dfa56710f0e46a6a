package main

import (
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/codyseavey/mtga-ko/internal/models"
	"github.com/codyseavey/mtga-ko/internal/services"
)

type annotationDump struct {
	Cores []*models.AnnotationCore `yaml:"cores"`
}

// Run executes the annotations command.
func (c *AnnotationsCmd) Run(deps *Dependencies) error {
	dict := services.NewExportPipeline(services.ExportOptions{InputDir: c.InputDir}).LoadDictionary()

	var w io.Writer = deps.Stdout
	if c.Out != "-" {
		f, err := os.Create(c.Out)
		if err != nil {
			return fmt.Errorf("failed to create %s: %w", c.Out, err)
		}
		defer f.Close()
		w = f
	}

	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(annotationDump{Cores: dict.Cores()}); err != nil {
		return fmt.Errorf("failed to encode annotations: %w", err)
	}
	return enc.Close()
}

package chart

import (
	_ "embed"
	"fmt"
	"os"
	"time"

	"github.com/couchcryptid/covid-case-report/internal/domain"
	"gopkg.in/yaml.v3"
)

//go:embed annotations.yaml
var defaultAnnotations []byte

// AnnotationPoint marks one date on a chart.
type AnnotationPoint struct {
	Label string `yaml:"label"`
	Date  string `yaml:"date"`

	day time.Time
}

// Day returns the parsed date.
func (p AnnotationPoint) Day() time.Time { return p.day }

// AnnotationSet holds the annotated dates of both charts.
type AnnotationSet struct {
	Cumulative []AnnotationPoint `yaml:"cumulative"`
	Daily      []AnnotationPoint `yaml:"daily"`
}

// DefaultAnnotations returns the embedded annotation set.
func DefaultAnnotations() AnnotationSet {
	set, err := ParseAnnotations(defaultAnnotations)
	if err != nil {
		panic(fmt.Sprintf("embedded annotations: %v", err))
	}
	return set
}

// LoadAnnotations reads an annotation set from path, or returns the
// embedded defaults when path is empty.
func LoadAnnotations(path string) (AnnotationSet, error) {
	if path == "" {
		return DefaultAnnotations(), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return AnnotationSet{}, fmt.Errorf("read annotations: %w", err)
	}
	set, err := ParseAnnotations(data)
	if err != nil {
		return AnnotationSet{}, fmt.Errorf("%s: %w", path, err)
	}
	return set, nil
}

// ParseAnnotations decodes YAML and parses every date. Empty labels default
// to the date string.
func ParseAnnotations(data []byte) (AnnotationSet, error) {
	var set AnnotationSet
	if err := yaml.Unmarshal(data, &set); err != nil {
		return AnnotationSet{}, fmt.Errorf("parse annotations: %w", err)
	}
	if err := resolve(set.Cumulative); err != nil {
		return AnnotationSet{}, fmt.Errorf("cumulative annotations: %w", err)
	}
	if err := resolve(set.Daily); err != nil {
		return AnnotationSet{}, fmt.Errorf("daily annotations: %w", err)
	}
	return set, nil
}

func resolve(points []AnnotationPoint) error {
	for i := range points {
		day, err := domain.ParseSeriesDate(points[i].Date)
		if err != nil {
			return err
		}
		points[i].day = day
		if points[i].Label == "" {
			points[i].Label = points[i].Date
		}
	}
	return nil
}

// Package calendar answers whether a date falls inside a school term, so
// presentation can pick between in-term and holiday label variants.
package calendar

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

const dateLayout = "2006-01-02"

// Term is one school term with inclusive start and end dates.
type Term struct {
	Term  int    `yaml:"term"`
	Start string `yaml:"start"`
	End   string `yaml:"end"`
}

// Calendar holds term tables keyed by year.
type Calendar struct {
	Terms map[string][]Term `yaml:"terms"`
}

// Status describes where a date falls. Term is nil outside any term or
// when the year has no table.
type Status struct {
	InTerm bool   `json:"inTerm"`
	Term   *int   `json:"term"`
	Year   string `json:"year"`
}

// Load reads and parses a calendar document, validating the date formats
// up front.
func Load(path string) (*Calendar, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read calendar: %w", err)
	}

	var c Calendar
	if err := yaml.Unmarshal(data, &c); err != nil {
		return nil, fmt.Errorf("parse calendar: %w", err)
	}

	for year, terms := range c.Terms {
		for _, term := range terms {
			if _, err := time.Parse(dateLayout, term.Start); err != nil {
				return nil, fmt.Errorf("calendar %s term %d: bad start date: %w", year, term.Term, err)
			}
			if _, err := time.Parse(dateLayout, term.End); err != nil {
				return nil, fmt.Errorf("calendar %s term %d: bad end date: %w", year, term.Term, err)
			}
		}
	}
	return &c, nil
}

// StatusAt resolves the term status for a date. A year with no table is
// treated as in-term: missing configuration means "assume the default
// state", not an error.
func (c *Calendar) StatusAt(date time.Time) Status {
	year := strconv.Itoa(date.Year())
	day := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, time.UTC)

	terms, ok := c.Terms[year]
	if !ok {
		return Status{InTerm: true, Year: year}
	}

	for _, term := range terms {
		start, _ := time.Parse(dateLayout, term.Start)
		end, _ := time.Parse(dateLayout, term.End)
		if !day.Before(start) && !day.After(end) {
			t := term.Term
			return Status{InTerm: true, Term: &t, Year: year}
		}
	}

	return Status{InTerm: false, Year: year}
}

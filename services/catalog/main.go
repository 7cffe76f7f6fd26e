package catalog

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"snpit/models"
	"snpit/services/readers"

	"github.com/ahmetb/go-linq"
	"github.com/labstack/gommon/log"
)

// Catalog is the registry of lineages and their diagnostic panels.
// It is built once (load, add snps, seed reference) and is read-only
// afterwards, so it can be shared by concurrent classifications.
type Catalog struct {
	Lineages []*models.Lineage

	byName  map[string]*models.Lineage
	missing map[string]bool

	// reference genome base at every diagnostic position, per lineage
	seeds map[string]map[int]string
	// diagnostic position -> names of the lineages carrying it
	positions map[int][]string
}

func New(lineages []*models.Lineage) (*Catalog, error) {
	c := &Catalog{
		Lineages: lineages,
		byName:   make(map[string]*models.Lineage, len(lineages)),
		missing:  map[string]bool{},
	}
	for _, l := range lineages {
		if _, exists := c.byName[l.Name]; exists {
			return nil, fmt.Errorf("%w: %s", models.ErrDuplicateLineage, l.Name)
		}
		c.byName[l.Name] = l
	}
	return c, nil
}

// Load reads the catalog, every lineage panel and the reference
// sequence from the configured library directory.
func Load(cfg *models.Config) (*Catalog, error) {
	dir := cfg.Library.Directory

	f, err := os.Open(filepath.Join(dir, cfg.Library.CatalogFile))
	if err != nil {
		return nil, err
	}
	defer f.Close()

	lineages, err := LoadLineagesFromCsv(f)
	if err != nil {
		return nil, err
	}

	c, err := New(lineages)
	if err != nil {
		return nil, err
	}
	if err := c.AddSnpsToAllLineages(dir); err != nil {
		return nil, err
	}

	reference, err := readers.ReadReference(filepath.Join(dir, cfg.Library.ReferenceFile))
	if err != nil {
		return nil, err
	}
	if err := c.SeedReference(reference); err != nil {
		return nil, err
	}

	log.Infof("Loaded %d lineages (%d classifiable) from %s", len(c.Lineages), len(c.Classifiable()), dir)
	return c, nil
}

// LoadLineagesFromCsv reads the catalog rows in file order. Columns are
// matched by header name; absent columns default to empty strings.
func LoadLineagesFromCsv(r io.Reader) ([]*models.Lineage, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	headers, err := reader.Read()
	if errors.Is(err, io.EOF) {
		return nil, models.ErrEmptyCatalog
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %v", models.ErrMalformedCatalog, err)
	}
	for i, header := range headers {
		headers[i] = strings.ToLower(strings.TrimSpace(strings.TrimPrefix(header, "\ufeff")))
	}

	lineages := []*models.Lineage{}
	for row := 2; ; row++ {
		fields, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("%w: %v", models.ErrMalformedCatalog, err)
		}

		entry := make(map[string]string, len(headers))
		for i, value := range fields {
			if i < len(headers) {
				entry[headers[i]] = strings.TrimSpace(value)
			}
		}

		lineage, err := models.LineageFromCsvEntry(entry)
		if err != nil {
			return nil, err
		}
		if lineage.Name == "" {
			return nil, fmt.Errorf("%w: row %d has no name", models.ErrMalformedCatalog, row)
		}
		lineages = append(lineages, lineage)
	}

	if len(lineages) == 0 {
		return nil, models.ErrEmptyCatalog
	}
	return lineages, nil
}

// AddSnpsToAllLineages reads <dir>/<name> for every lineage. A missing
// panel is reported and leaves the lineage out of classification.
func (c *Catalog) AddSnpsToAllLineages(dir string) error {
	for _, lineage := range c.Lineages {
		lineageVariantsFile := filepath.Join(dir, lineage.Name)

		f, err := os.Open(lineageVariantsFile)
		if errors.Is(err, os.ErrNotExist) {
			log.Warnf("%v: %s for lineage %s", models.ErrMissingLineagePanel, lineageVariantsFile, lineage.Name)
			c.missing[lineage.Name] = true
			continue
		}
		if err != nil {
			return err
		}

		err = lineage.AddSnps(f)
		f.Close()
		if err != nil {
			return err
		}
		if len(lineage.Snps) == 0 {
			log.Debugf("%v: %s", models.ErrDivisionGuard, lineage.Name)
		}
	}
	return nil
}

// SeedReference records the reference base at each lineage's diagnostic
// positions. The reference is 1-based, the slice 0-based.
func (c *Catalog) SeedReference(reference []byte) error {
	c.seeds = map[string]map[int]string{}
	c.positions = map[int][]string{}

	for _, lineage := range c.Classifiable() {
		seed := make(map[int]string, len(lineage.Snps))
		for pos := range lineage.Snps {
			if pos < 1 || pos > len(reference) {
				return fmt.Errorf("%w: lineage %s position %d, reference length %d",
					models.ErrPositionOutOfRange, lineage.Name, pos, len(reference))
			}
			seed[pos] = string(reference[pos-1])
			c.positions[pos] = append(c.positions[pos], lineage.Name)
		}
		c.seeds[lineage.Name] = seed
	}

	for pos := range c.positions {
		sort.Strings(c.positions[pos])
	}
	return nil
}

// Classifiable lists, in catalog order, the lineages with a non-empty
// panel. Lineages without a panel file or with zero positions are left
// out.
func (c *Catalog) Classifiable() []*models.Lineage {
	var classifiable []*models.Lineage
	linq.From(c.Lineages).
		WhereT(func(l *models.Lineage) bool {
			return !c.missing[l.Name] && l.SnpsAdded() && len(l.Snps) > 0
		}).
		ToSlice(&classifiable)
	return classifiable
}

func (c *Catalog) IsClassifiable(name string) bool {
	l, ok := c.byName[name]
	return ok && !c.missing[name] && l.SnpsAdded() && len(l.Snps) > 0
}

func (c *Catalog) IsMissingPanel(name string) bool {
	return c.missing[name]
}

func (c *Catalog) Get(name string) (*models.Lineage, bool) {
	l, ok := c.byName[name]
	return l, ok
}

// ReferenceSeed returns the reference bases for a lineage's positions.
// The map is shared; callers must copy before mutating.
func (c *Catalog) ReferenceSeed(name string) map[int]string {
	return c.seeds[name]
}

// LineagesAt returns the names of the lineages with a diagnostic
// position at pos.
func (c *Catalog) LineagesAt(pos int) []string {
	return c.positions[pos]
}

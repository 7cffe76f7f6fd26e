package common

import (
	"bytes"
	"compress/gzip"
	"fmt"
	"io"
	"os"
	"path"
	"path/filepath"
	"runtime"
	"strings"
	"testing"

	"snpit/models"

	"github.com/stretchr/testify/require"
	yaml "gopkg.in/yaml.v2"
)

const (
	ScenarioSpecies = "M. tuberculosis"

	// reference length used by the fixture libraries
	ReferenceLength = 400
)

// LibraryLineage describes one catalog row and its panel. A nil Snps
// leaves the panel file out of the library.
type LibraryLineage struct {
	Name       string
	Species    string
	Lineage    string
	Sublineage string
	Snps       map[int]string
}

func InitConfig() *models.Config {
	var cfg models.Config

	// get this file's path
	_, filename, _, _ := runtime.Caller(0)
	folderpath := path.Dir(filename)

	// retrieve common's test.config
	f, err := os.Open(fmt.Sprintf("%s/test.config.yml", folderpath))
	if err != nil {
		processError(err)
	}
	defer f.Close()

	decoder := yaml.NewDecoder(f)
	err = decoder.Decode(&cfg)
	if err != nil {
		processError(err)
	}

	return &cfg
}

func processError(err error) {
	fmt.Println(err)
	os.Exit(2)
}

// Reference builds a sequence of 'T's with the given 1-based overrides.
func Reference(length int, bases map[int]byte) []byte {
	ref := bytes.Repeat([]byte("T"), length)
	for pos, base := range bases {
		ref[pos-1] = base
	}
	return ref
}

// ScenarioLineages is the two-lineage catalog used across the tests:
// lin1 expects C at 200, lin2 expects G.
func ScenarioLineages() []LibraryLineage {
	return []LibraryLineage{
		{Name: "lin1", Species: ScenarioSpecies, Lineage: "Lineage 1", Snps: map[int]string{100: "A", 200: "C"}},
		{Name: "lin2", Species: ScenarioSpecies, Lineage: "Lineage 2", Snps: map[int]string{100: "A", 200: "G"}},
	}
}

// ScenarioReference carries A at 100 and C at 200.
func ScenarioReference() []byte {
	return Reference(ReferenceLength, map[int]byte{100: 'A', 200: 'C'})
}

// WriteLibrary lays out a library directory (catalog, panels and a FASTA
// reference) and returns a config pointing at it.
func WriteLibrary(t *testing.T, lineages []LibraryLineage, reference []byte) *models.Config {
	t.Helper()
	dir := t.TempDir()

	var catalog strings.Builder
	catalog.WriteString("name,species,lineage,sublineage\n")
	for _, l := range lineages {
		fmt.Fprintf(&catalog, "%s,%s,%s,%s\n", l.Name, l.Species, l.Lineage, l.Sublineage)
		if l.Snps == nil {
			continue
		}
		WriteFile(t, filepath.Join(dir, l.Name), Panel(l.Snps))
	}
	WriteFile(t, filepath.Join(dir, "library.csv"), catalog.String())
	WriteFile(t, filepath.Join(dir, "reference.fasta"), Fasta("reference", reference))

	cfg := InitConfig()
	cfg.Library.Directory = dir
	cfg.Library.CatalogFile = "library.csv"
	cfg.Library.ReferenceFile = "reference.fasta"
	cfg.Api.SamplePath = t.TempDir()
	return cfg
}

// Panel renders a tab separated panel file.
func Panel(snps map[int]string) string {
	var b strings.Builder
	for pos, base := range snps {
		fmt.Fprintf(&b, "%d\t%s\n", pos, base)
	}
	return b.String()
}

// Fasta renders a single record wrapped at 60 columns.
func Fasta(id string, seq []byte) string {
	var b strings.Builder
	fmt.Fprintf(&b, ">%s\n", id)
	for i := 0; i < len(seq); i += 60 {
		end := i + 60
		if end > len(seq) {
			end = len(seq)
		}
		b.Write(seq[i:end])
		b.WriteByte('\n')
	}
	return b.String()
}

// Vcf renders a single-sample VCF; each row is "POS REF ALT FILTER GT".
func Vcf(sample string, rows ...[5]string) string {
	var b strings.Builder
	b.WriteString("##fileformat=VCFv4.2\n")
	b.WriteString("##FORMAT=<ID=GT,Number=1,Type=String,Description=\"Genotype\">\n")
	fmt.Fprintf(&b, "#CHROM\tPOS\tID\tREF\tALT\tQUAL\tFILTER\tINFO\tFORMAT\t%s\n", sample)
	for _, r := range rows {
		fmt.Fprintf(&b, "NC_000962.3\t%s\t.\t%s\t%s\t50\t%s\t.\tGT\t%s\n", r[0], r[1], r[2], r[3], r[4])
	}
	return b.String()
}

// ScenarioVcf holds one homozygous alternate G at position 200.
func ScenarioVcf() string {
	return Vcf("sample1", [5]string{"200", "C", "G", "PASS", "1/1"})
}

func WriteFile(t *testing.T, path string, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

func Gzip(t *testing.T, content string) []byte {
	t.Helper()
	var buf bytes.Buffer
	zw := gzip.NewWriter(&buf)
	_, err := zw.Write([]byte(content))
	require.NoError(t, err)
	require.NoError(t, zw.Close())
	return buf.Bytes()
}

// RecordSource replays a fixed list of records.
type RecordSource struct {
	Records []*models.VariantRecord
	next    int
}

func (s *RecordSource) Read() (*models.VariantRecord, error) {
	if s.next >= len(s.Records) {
		return nil, io.EOF
	}
	record := s.Records[s.next]
	s.next++
	return record, nil
}

// Record builds a single-sample, passing record.
func Record(pos int, ref string, alt []string, gt string) *models.VariantRecord {
	return &models.VariantRecord{
		Chrom:   "NC_000962.3",
		Pos:     pos,
		Id:      ".",
		Ref:     ref,
		Alt:     alt,
		Filter:  "PASS",
		Samples: []models.Sample{{Id: "sample1", Genotype: gt}},
	}
}

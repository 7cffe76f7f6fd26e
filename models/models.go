package models

var VcfHeaders = []string{"chrom", "pos", "id", "ref", "alt", "qual", "filter", "info", "format"}

type VariantRecord struct {
	Chrom  string   `json:"chrom"`
	Pos    int      `json:"pos"`
	Id     string   `json:"id"`
	Ref    string   `json:"ref"`
	Alt    []string `json:"alt"`
	Filter string   `json:"filter"`

	Samples []Sample `json:"samples"`
}

type Sample struct {
	Id       string `json:"id"`
	Genotype string `json:"genotype"`
}

// Passed reports whether the record cleared the caller's filters.
// Records with no filters applied (".") count as passed.
func (v *VariantRecord) Passed() bool {
	return v.Filter == "PASS" || v.Filter == "." || v.Filter == ""
}

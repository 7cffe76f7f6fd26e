package genotypeCall

import (
	"snpit/models/constants"
)

const (
	Unknown constants.GenotypeCall = iota

	Reference
	Heterozygous
	Null
	Alternate
)

func IsKnown(value int) bool {
	return value > int(Unknown) && value <= int(Alternate)
}

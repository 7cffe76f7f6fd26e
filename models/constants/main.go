package constants

/*
	Defines a set of base level
	constants and enums to be used
	throughout snpit and it's
	associated services.
*/
type GenotypeCall int

type InputFormat string
type Compression string

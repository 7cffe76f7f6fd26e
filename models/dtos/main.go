package dtos

import (
	"time"

	"snpit/models"
)

type GeneralErrorResponseDto struct {
	Code      int            `json:"code"`
	Message   string         `json:"message"`
	Timestamp time.Time      `json:"timestamp"`
	Errors    []GeneralError `json:"errors"`
}
type GeneralError struct {
	Message string `json:"message"`
}

// ClassificationResultDto reports an unknown sample with null
// species, lineage, sublineage and percentage.
type ClassificationResultDto struct {
	Filename   string           `json:"filename"`
	Species    *string          `json:"species"`
	Lineage    *string          `json:"lineage"`
	Sublineage *string          `json:"sublineage"`
	Name       *string          `json:"name"`
	Percentage *float64         `json:"percentage"`
	Rankings   []models.Ranking `json:"rankings,omitempty"`
}

func NewClassificationResultDto(filename string, result *models.Result, includeRankings bool) ClassificationResultDto {
	dto := ClassificationResultDto{Filename: filename}
	if result == nil {
		return dto
	}
	if includeRankings {
		dto.Rankings = result.Rankings
	}
	if !result.Known {
		return dto
	}

	species, lineage, sublineage, name, percentage :=
		result.Species, result.Lineage, result.Sublineage, result.Name, result.Percentage
	dto.Species = &species
	dto.Lineage = &lineage
	dto.Sublineage = &sublineage
	dto.Name = &name
	dto.Percentage = &percentage
	return dto
}

type LineageDto struct {
	Name         string `json:"name"`
	Species      string `json:"species"`
	Lineage      string `json:"lineage"`
	Sublineage   string `json:"sublineage"`
	PanelSize    int    `json:"panelSize"`
	Classifiable bool   `json:"classifiable"`
	MissingPanel bool   `json:"missingPanel"`
}

type LineagesResponseDTO struct {
	Status  int          `json:"status"`
	Message string       `json:"message"`
	Count   int          `json:"count"`
	Results []LineageDto `json:"results"`
}

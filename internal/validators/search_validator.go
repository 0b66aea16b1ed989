package validators

import (
	"fmt"

	"costasight-comparables/internal/models"
)

type searchValidator struct{}

// SearchValidator checks comparable search requests before they reach the
// matcher.
type SearchValidator interface {
	ValidateCriteria(criteria *models.SearchCriteria) error
	ValidateResolve(frags *models.AddressFragments, hint string) error
}

func NewSearchValidator() SearchValidator {
	return &searchValidator{}
}

func (v *searchValidator) ValidateCriteria(criteria *models.SearchCriteria) error {
	if criteria.City == "" {
		return fmt.Errorf("city is required")
	}
	if criteria.PropertyType == "" {
		return fmt.Errorf("property type is required")
	}
	if criteria.Price <= 0 {
		return fmt.Errorf("a positive price is required")
	}
	if criteria.BuildArea <= 0 {
		return fmt.Errorf("a positive build area is required")
	}
	if criteria.Bedrooms < 0 || criteria.Bathrooms < 0 {
		return fmt.Errorf("bedrooms and bathrooms must not be negative")
	}
	return nil
}

func (v *searchValidator) ValidateResolve(frags *models.AddressFragments, hint string) error {
	if hint == "" && frags.Street == "" && frags.Urbanization == "" && frags.Area == "" && frags.City == "" {
		return fmt.Errorf("an address fragment or location hint is required")
	}
	return nil
}

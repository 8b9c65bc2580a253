package enums

import "fmt"

// FundingType classifies a funding option.
type FundingType string

const (
	FundingTypeNSFAS       FundingType = "nsfas"
	FundingTypeBursary     FundingType = "bursary"
	FundingTypeScholarship FundingType = "scholarship"
	FundingTypeLearnership FundingType = "learnership"
)

var validFundingTypes = []FundingType{
	FundingTypeNSFAS,
	FundingTypeBursary,
	FundingTypeScholarship,
	FundingTypeLearnership,
}

// String implements fmt.Stringer.
func (f FundingType) String() string {
	return string(f)
}

// IsValid reports whether the value is a known FundingType.
func (f FundingType) IsValid() bool {
	for _, candidate := range validFundingTypes {
		if candidate == f {
			return true
		}
	}
	return false
}

// ParseFundingType converts raw input into a FundingType.
func ParseFundingType(value string) (FundingType, error) {
	for _, candidate := range validFundingTypes {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid funding type %q", value)
}

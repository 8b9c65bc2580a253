package enums

import "fmt"

// InstitutionType classifies a tertiary institution.
type InstitutionType string

const (
	InstitutionTypeUniversity             InstitutionType = "university"
	InstitutionTypeUniversityOfTechnology InstitutionType = "university_of_technology"
	InstitutionTypeTVET                   InstitutionType = "tvet"
)

var validInstitutionTypes = []InstitutionType{
	InstitutionTypeUniversity,
	InstitutionTypeUniversityOfTechnology,
	InstitutionTypeTVET,
}

// String implements fmt.Stringer.
func (i InstitutionType) String() string {
	return string(i)
}

// IsValid reports whether the value is a known InstitutionType.
func (i InstitutionType) IsValid() bool {
	for _, candidate := range validInstitutionTypes {
		if candidate == i {
			return true
		}
	}
	return false
}

// ParseInstitutionType converts raw input into an InstitutionType.
func ParseInstitutionType(value string) (InstitutionType, error) {
	for _, candidate := range validInstitutionTypes {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid institution type %q", value)
}

package ussd

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"edufair/internal/domain"
)

// MaxListed is how many schools fit on one USSD screen.
const MaxListed = 9

// DefaultSchools is used when no school file is configured.
func DefaultSchools() []domain.School {
	return []domain.School{
		{ID: 1, Name: "Wamy High School", Location: "South B, Nairobi"},
		{ID: 2, Name: "Kenya Muslim Academy", Location: "Park Road, Nairobi"},
		{ID: 3, Name: "Nairobi Muslim Academy", Location: "Eastleigh, Nairobi"},
		{ID: 4, Name: "Islamic Foundation Academy", Location: "Parklands, Nairobi"},
		{ID: 5, Name: "Nakuru Islamic School", Location: "Nakuru"},
		{ID: 6, Name: "Mombasa Islamic School", Location: "Mombasa"},
		{ID: 7, Name: "Kisumu Islamic Academy", Location: "Kisumu"},
		{ID: 8, Name: "Eldoret Muslim Institute", Location: "Eldoret"},
		{ID: 9, Name: "Nyeri Islamic Academy", Location: "Nyeri"},
	}
}

type schoolFile struct {
	Schools []domain.School `yaml:"schools"`
}

// LoadSchools reads a YAML file of the form
//
//	schools:
//	  - id: 1
//	    name: Wamy High School
//	    location: South B, Nairobi
func LoadSchools(path string) ([]domain.School, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var f schoolFile
	if err := yaml.Unmarshal(b, &f); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	if len(f.Schools) == 0 {
		return nil, errors.New("school list is empty")
	}
	for i, s := range f.Schools {
		if s.Name == "" {
			return nil, fmt.Errorf("school %d has no name", i+1)
		}
		if s.ID == 0 {
			f.Schools[i].ID = i + 1
		}
	}
	return f.Schools, nil
}

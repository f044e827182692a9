package domain

import "time"

// Booth is one numbered position in the fair layout.
type Booth struct {
	Number   int
	Name     string
	Location string
}

// Marker is a booth that could be placed on the interactive map.
type Marker struct {
	Name string  `json:"name"`
	Lat  float64 `json:"lat"`
	Lng  float64 `json:"lng"`
	Link string  `json:"link"`
}

// Slot is a presentation slot assigned to an exhibitor.
type Slot struct {
	Index int
	Name  string
	Start time.Time
	End   time.Time
}

// RegistrationType distinguishes attendees registering over USSD.
type RegistrationType string

const (
	RegistrationStudent RegistrationType = "student"
	RegistrationTeacher RegistrationType = "teacher"
)

// Label is the human form shown on the handset.
func (t RegistrationType) Label() string {
	if t == RegistrationTeacher {
		return "Teacher/Chaperone"
	}
	return "Student"
}

// School is an entry of the USSD school picker.
type School struct {
	ID       int    `json:"id" yaml:"id"`
	Name     string `json:"name" yaml:"name"`
	Location string `json:"location,omitempty" yaml:"location"`
}

// Registration is a confirmed USSD sign-up.
type Registration struct {
	ID        string           `json:"id"`
	Phone     string           `json:"phoneNumber"`
	FullName  string           `json:"fullName"`
	Type      RegistrationType `json:"registrationType"`
	School    string           `json:"school"`
	CreatedAt time.Time        `json:"registrationDate"`
	Status    string           `json:"status"`
	EventDate string           `json:"eventDate"`
}

// Stats summarises stored registrations.
type Stats struct {
	Total    int            `json:"totalRegistrations"`
	Students int            `json:"studentRegistrations"`
	Teachers int            `json:"teacherRegistrations"`
	Schools  map[string]int `json:"schoolBreakdown"`
	Hourly   map[int]int    `json:"hourlyRegistrations"`
}

// Email is a single outbound message.
type Email struct {
	From    string
	To      string
	Subject string
	Body    string
}

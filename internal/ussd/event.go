package ussd

import (
	"fmt"
	"time"
)

// Event describes the fair the menu registers people for.
type Event struct {
	Name       string
	Date       string // YYYY-MM-DD
	Hours      string
	Venue      string
	Code       string // USSD short code
	Hotline    string
	IDPrefix   string
	Highlights []string
	Organiser  []string // lines of the "Contact Us" screen
}

// DefaultEvent is the 2024 Kenya Islamic Education Fair.
func DefaultEvent() Event {
	return Event{
		Name:     "Kenya Islamic Education Fair",
		Date:     "2024-09-14",
		Hours:    "9:00 AM - 2:00 PM",
		Venue:    "Kenya Muslim Academy, Park Road, Nairobi",
		Code:     "*386*55#",
		Hotline:  "0731838387",
		IDPrefix: "KEF",
		Highlights: []string{
			"15+ Islamic Universities",
			"Scholarship Information",
			"Career Guidance",
			"FREE Attendance",
		},
		Organiser: []string{
			"Elimuhub Education Consultants",
			"elimuhubconsultant@gmail.com",
			"0731838387 / 0721922836",
			"",
			"Office:",
			"Muhoho Avenue, South C",
			"P.O. Box 10765-00100, Nairobi",
		},
	}
}

// DateLabel renders Date as "September 14th, 2024". An unparseable date is
// returned as is.
func (e Event) DateLabel() string {
	d, err := time.Parse(time.DateOnly, e.Date)
	if err != nil {
		return e.Date
	}
	return fmt.Sprintf("%s %d%s, %d", d.Month(), d.Day(), ordinal(d.Day()), d.Year())
}

func ordinal(day int) string {
	if day%100 >= 11 && day%100 <= 13 {
		return "th"
	}
	switch day % 10 {
	case 1:
		return "st"
	case 2:
		return "nd"
	case 3:
		return "rd"
	}
	return "th"
}

// DialInstructions is the text given to someone asking how to register.
func (e Event) DialInstructions(phone string) string {
	return fmt.Sprintf("To register, dial %s on your phone (%s).\nRegistration instructions sent.", e.Code, phone)
}

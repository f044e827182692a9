package ussd

import (
	"fmt"
	"strings"

	"edufair/internal/domain"
)

// Response is what the gateway shows on the handset.
type Response struct {
	Text string
	End  bool
}

// String renders the gateway wire form with its CON/END prefix.
func (r Response) String() string {
	if r.End {
		return "END " + r.Text
	}
	return "CON " + r.Text
}

func con(format string, args ...any) Response {
	return Response{Text: fmt.Sprintf(format, args...)}
}

func end(format string, args ...any) Response {
	return Response{Text: fmt.Sprintf(format, args...), End: true}
}

func (s *Service) mainMenu() Response {
	return con(`Welcome to %s Registration

%s
%s

Choose option:
1. Student Registration
2. Teacher/Chaperone Registration
3. Event Information
4. Contact Us
0. Exit`, s.event.Name, s.event.DateLabel(), s.event.Venue)
}

func namePrompt(kind domain.RegistrationType) Response {
	example := "Ahmed Mohamed Ali"
	if kind == domain.RegistrationTeacher {
		example = "Fatima Hassan Mohamed"
	}
	return con(`%s Registration

Please enter your full name:
(Example: %s)`, kind.Label(), example)
}

func invalidNamePrompt() Response {
	return con("Invalid name. Please enter your full name:\n(Minimum 3 characters)")
}

func (s *Service) schoolMenu() Response {
	var b strings.Builder
	for i, sc := range s.listed() {
		fmt.Fprintf(&b, "%d. %s\n", i+1, sc.Name)
	}
	return con("Select your school:\n\n%s0. My school is not listed", b.String())
}

func customSchoolPrompt() Response {
	return con("Enter your school name:\n(Please type the full name of your school)")
}

func (s *Service) summary(sess *Session) Response {
	return con(`Registration Summary:

Name: %s
Type: %s
School: %s
Phone: %s

Event: %s
Date: %s
Venue: %s

1. Confirm Registration
2. Edit Information
0. Cancel`, sess.draft.name, sess.draft.kind.Label(), sess.draft.school, sess.Phone,
		s.event.Name, s.event.DateLabel(), s.event.Venue)
}

func (s *Service) confirmed(r domain.Registration) Response {
	return end(`Registration Successful!

Registration ID: %s
Name: %s
Event: %s
Date: %s
Venue: %s

A confirmation SMS will be sent shortly.
For inquiries: %s

Thank you for registering!`, r.ID, r.FullName, s.event.Name, s.event.DateLabel(), s.event.Venue, s.event.Hotline)
}

func (s *Service) eventInfo() Response {
	return end(`%s

Date: %s
Time: %s
Venue: %s

%s

Registration: Dial %s
Info: %s

Thank you!`, s.event.Name, s.event.DateLabel(), s.event.Hours, s.event.Venue,
		strings.Join(s.event.Highlights, "\n"), s.event.Code, s.event.Hotline)
}

func (s *Service) contactInfo() Response {
	return end(`Contact Information

%s

For event inquiries, call or WhatsApp:
%s

Thank you!`, strings.Join(s.event.Organiser, "\n"), s.event.Hotline)
}

func (s *Service) goodbye() Response {
	return end(`Thank you for your interest in the %s.

To register later: Dial %s
For information: %s`, s.event.Name, s.event.Code, s.event.Hotline)
}

func (s *Service) tooManyAttempts() Response {
	return end("Too many invalid attempts.\nPlease dial %s to start again.\n\nFor assistance: %s", s.event.Code, s.event.Hotline)
}

func (s *Service) systemError() Response {
	return end("System error occurred.\nPlease try again later.\n\nFor assistance: %s", s.event.Hotline)
}

func (s *Service) confirmationSMS(r domain.Registration) string {
	return fmt.Sprintf(`Dear %s,

Your registration for %s is confirmed!

Registration ID: %s
Date: %s
Venue: %s
Time: %s

Please bring this SMS as confirmation.

For inquiries: %s`, r.FullName, s.event.Name, r.ID, s.event.DateLabel(), s.event.Venue, s.event.Hours, s.event.Hotline)
}

package ussd

import "edufair/internal/domain"

// ComputeStats counts registrations by type, school and local hour of day.
func ComputeStats(regs []domain.Registration) domain.Stats {
	st := domain.Stats{
		Total:   len(regs),
		Schools: make(map[string]int),
		Hourly:  make(map[int]int),
	}
	for _, r := range regs {
		switch r.Type {
		case domain.RegistrationStudent:
			st.Students++
		case domain.RegistrationTeacher:
			st.Teachers++
		}
		st.Schools[r.School]++
		st.Hourly[r.CreatedAt.Local().Hour()]++
	}
	return st
}

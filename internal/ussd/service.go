package ussd

import (
	"context"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"

	"go.uber.org/zap"

	"edufair/internal/domain"
)

// Request is one gateway hop.
type Request struct {
	SessionID string
	Phone     string
	Text      string // cumulative "*"-joined input, empty on the first hop
}

// Config tunes the menu.
type Config struct {
	Event          Event
	Schools        []domain.School
	SessionTimeout time.Duration
	MaxAttempts    int
}

// Service answers gateway hops and records confirmed registrations.
type Service struct {
	event       Event
	schools     []domain.School
	maxAttempts int

	sessions *Sessions
	store    domain.RegistrationStore
	sms      domain.SMSSender // optional
	log      *zap.Logger

	now   func() time.Time
	newID func(prefix string, now time.Time) string
}

// New builds a Service. sms may be nil, in which case confirmations are only
// logged.
func New(cfg Config, store domain.RegistrationStore, sms domain.SMSSender, log *zap.Logger) *Service {
	if cfg.SessionTimeout <= 0 {
		cfg.SessionTimeout = 5 * time.Minute
	}
	if cfg.MaxAttempts <= 0 {
		cfg.MaxAttempts = 3
	}
	if len(cfg.Schools) == 0 {
		cfg.Schools = DefaultSchools()
	}
	if cfg.Event.Name == "" {
		cfg.Event = DefaultEvent()
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &Service{
		event:       cfg.Event,
		schools:     cfg.Schools,
		maxAttempts: cfg.MaxAttempts,
		sessions:    NewSessions(cfg.SessionTimeout),
		store:       store,
		sms:         sms,
		log:         log,
		now:         time.Now,
		newID:       NewRegistrationID,
	}
}

// Sessions exposes the live session table, mainly for the janitor.
func (s *Service) Sessions() *Sessions { return s.sessions }

// Event returns the configured event.
func (s *Service) Event() Event { return s.event }

// Handle processes one hop and returns the screen to show.
func (s *Service) Handle(ctx context.Context, req Request) Response {
	now := s.now()
	if resp, ok := s.sessions.Ended(req.SessionID, now); ok {
		return resp
	}
	sess := s.sessions.Acquire(req.SessionID, req.Phone, now)
	sess.mu.Lock()
	defer sess.mu.Unlock()
	// A concurrent hop may have ended the session while this one waited.
	if resp, ok := s.sessions.Ended(req.SessionID, now); ok {
		return resp
	}

	inputs := splitInput(req.Text)
	if len(inputs) < sess.consumed {
		// The gateway started over under the same id.
		s.reset(sess)
	}
	pending := inputs[sess.consumed:]
	if len(pending) == 0 {
		return s.current(sess)
	}

	var resp Response
	for _, in := range pending {
		sess.consumed++
		resp = s.step(ctx, sess, in)
		if resp.End {
			s.sessions.End(sess.ID, resp, now)
			break
		}
	}
	return resp
}

func splitInput(text string) []string {
	if text == "" {
		return nil
	}
	return strings.Split(text, "*")
}

func (s *Service) reset(sess *Session) {
	sess.state = stateMenu
	sess.consumed = 0
	sess.attempts = 0
	sess.draft = draft{}
}

// current re-shows the prompt for the session's state.
func (s *Service) current(sess *Session) Response {
	switch sess.state {
	case stateName:
		return namePrompt(sess.draft.kind)
	case stateSchool:
		return s.schoolMenu()
	case stateCustomSchool:
		return customSchoolPrompt()
	case stateConfirm:
		return s.summary(sess)
	default:
		return s.mainMenu()
	}
}

func (s *Service) step(ctx context.Context, sess *Session, input string) Response {
	input = strings.TrimSpace(input)
	switch sess.state {
	case stateMenu:
		switch input {
		case "1":
			sess.draft.kind = domain.RegistrationStudent
			sess.state = stateName
			return namePrompt(sess.draft.kind)
		case "2":
			sess.draft.kind = domain.RegistrationTeacher
			sess.state = stateName
			return namePrompt(sess.draft.kind)
		case "3":
			return s.eventInfo()
		case "4":
			return s.contactInfo()
		case "0":
			return s.goodbye()
		}
		return s.invalid(sess, s.mainMenu())

	case stateName:
		if utf8.RuneCountInString(input) < 3 {
			return s.invalid(sess, invalidNamePrompt())
		}
		sess.draft.name = input
		sess.state = stateSchool
		return s.schoolMenu()

	case stateSchool:
		if input == "0" {
			sess.state = stateCustomSchool
			return customSchoolPrompt()
		}
		n, err := strconv.Atoi(input)
		listed := s.listed()
		if err != nil || n < 1 || n > len(listed) {
			return s.invalid(sess, s.schoolMenu())
		}
		sess.draft.school = listed[n-1].Name
		sess.state = stateConfirm
		return s.summary(sess)

	case stateCustomSchool:
		if input == "" {
			return s.invalid(sess, customSchoolPrompt())
		}
		sess.draft.school = input
		sess.state = stateConfirm
		return s.summary(sess)

	case stateConfirm:
		switch input {
		case "1":
			return s.confirm(ctx, sess)
		case "2":
			sess.draft = draft{}
			sess.state = stateMenu
			return s.mainMenu()
		case "0":
			return s.goodbye()
		}
		return s.invalid(sess, s.summary(sess))
	}

	s.log.Error("ussd session in unknown state", zap.String("session", sess.ID), zap.Int("state", int(sess.state)))
	return s.systemError()
}

func (s *Service) listed() []domain.School {
	if len(s.schools) > MaxListed {
		return s.schools[:MaxListed]
	}
	return s.schools
}

func (s *Service) invalid(sess *Session, retry Response) Response {
	sess.attempts++
	if sess.attempts >= s.maxAttempts {
		return s.tooManyAttempts()
	}
	return con("Invalid input. Please try again.\n(Attempt %d/%d)\n\n%s", sess.attempts, s.maxAttempts, retry.Text)
}

func (s *Service) confirm(ctx context.Context, sess *Session) Response {
	now := s.now()
	reg := domain.Registration{
		ID:        s.newID(s.event.IDPrefix, now),
		Phone:     sess.Phone,
		FullName:  sess.draft.name,
		Type:      sess.draft.kind,
		School:    sess.draft.school,
		CreatedAt: now,
		Status:    "confirmed",
		EventDate: s.event.Date,
	}
	if err := s.store.Save(ctx, reg); err != nil {
		s.log.Error("save registration", zap.String("session", sess.ID), zap.Error(err))
		return s.systemError()
	}
	s.log.Info("registration confirmed",
		zap.String("id", reg.ID),
		zap.String("type", string(reg.Type)),
		zap.String("school", reg.School))

	body := s.confirmationSMS(reg)
	if s.sms == nil {
		s.log.Info("confirmation sms not sent, no sender configured", zap.String("phone", reg.Phone))
	} else if err := s.sms.SendSMS(ctx, reg.Phone, body); err != nil {
		s.log.Warn("send confirmation sms", zap.String("phone", reg.Phone), zap.Error(err))
	}
	return s.confirmed(reg)
}

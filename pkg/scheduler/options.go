package scheduler

// Option configures a Scheduler.
type Option func(*Scheduler)

// WithLeadCap overrides the lifetime cap for lead-role employees.
// Non-positive values keep the default.
func WithLeadCap(n int) Option {
	return func(s *Scheduler) {
		if n > 0 {
			s.maxLead = n
		}
	}
}

// WithOtherCap overrides the lifetime cap for everyone else.
// Non-positive values keep the default.
func WithOtherCap(n int) Option {
	return func(s *Scheduler) {
		if n > 0 {
			s.maxOther = n
		}
	}
}

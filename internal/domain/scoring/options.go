package scoring

// Option applies a configuration option to the Session.
type Option func(*Session)

// WithJudgeNumber tags the session with the judge label it scores for,
// e.g. "Judge 1". Penalty entry is only allowed on the Judge 1 sheet.
func WithJudgeNumber(judge string) Option {
	return func(s *Session) {
		s.judge = judge
	}
}

// WithValues seeds the session with previously entered scores, used by
// the edit path to reopen a submitted sheet.
func WithValues(values map[string]Value) Option {
	return func(s *Session) {
		for k, v := range values {
			s.values[k] = v
		}
	}
}

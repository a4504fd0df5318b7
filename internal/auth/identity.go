package auth

// Identity is the logged-in user as the rest of the client sees it.
type Identity struct {
	UserID    string
	Email     string
	FirstName string
	LastName  string
}

// Store holds the process-wide logged-in identity. It is set on successful
// login or registration, read at session start and submit time, and cleared
// on logout.
type Store struct {
	current *Identity
}

func NewStore() *Store {
	return &Store{}
}

func (s *Store) Set(id Identity) {
	s.current = &id
}

func (s *Store) Current() (Identity, bool) {
	if s.current == nil {
		return Identity{}, false
	}
	return *s.current, true
}

func (s *Store) Clear() {
	s.current = nil
}

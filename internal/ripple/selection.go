package ripple

// Selection holds at most one selected clip id.
type Selection struct {
	id  int
	set bool
}

func (s *Selection) Select(id int) {
	s.id = id
	s.set = true
}

func (s *Selection) Clear() {
	s.id = 0
	s.set = false
}

// ID returns the selected clip id, if any.
func (s Selection) ID() (int, bool) {
	return s.id, s.set
}

func (s Selection) Is(id int) bool {
	return s.set && s.id == id
}

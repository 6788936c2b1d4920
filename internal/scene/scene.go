package scene

// Scene is an ordered collection of mobjects; later mobjects draw on top.
type Scene struct {
	mobjects []*Mobject
}

func New() *Scene {
	return &Scene{}
}

// Add appends mobjects. A mobject whose ID is already present replaces the
// existing one and moves to the top.
func (s *Scene) Add(ms ...*Mobject) {
	for _, m := range ms {
		s.Remove(m.ID)
		s.mobjects = append(s.mobjects, m)
	}
}

// Remove drops the mobject with the given ID and reports whether it existed.
func (s *Scene) Remove(id string) bool {
	for i, m := range s.mobjects {
		if m.ID == id {
			s.mobjects = append(s.mobjects[:i], s.mobjects[i+1:]...)
			return true
		}
	}
	return false
}

func (s *Scene) Get(id string) (*Mobject, bool) {
	for _, m := range s.mobjects {
		if m.ID == id {
			return m, true
		}
	}
	return nil, false
}

func (s *Scene) Has(id string) bool {
	_, ok := s.Get(id)
	return ok
}

// Replace swaps the mobject with m.ID in place, keeping its draw order. It
// appends m when no such mobject exists.
func (s *Scene) Replace(m *Mobject) {
	for i, cur := range s.mobjects {
		if cur.ID == m.ID {
			s.mobjects[i] = m
			return
		}
	}
	s.mobjects = append(s.mobjects, m)
}

// Mobjects returns the draw list. Callers must not modify it.
func (s *Scene) Mobjects() []*Mobject { return s.mobjects }

func (s *Scene) Len() int { return len(s.mobjects) }

// IDs lists mobject IDs in draw order.
func (s *Scene) IDs() []string {
	ids := make([]string, len(s.mobjects))
	for i, m := range s.mobjects {
		ids[i] = m.ID
	}
	return ids
}

// Visible counts mobjects with non-zero opacity and reveal.
func (s *Scene) Visible() int {
	n := 0
	for _, m := range s.mobjects {
		if m.Opacity > 0 && m.Reveal > 0 {
			n++
		}
	}
	return n
}

// Clone deep-copies the scene.
func (s *Scene) Clone() *Scene {
	c := &Scene{mobjects: make([]*Mobject, len(s.mobjects))}
	for i, m := range s.mobjects {
		c.mobjects[i] = m.Clone()
	}
	return c
}

// FirstPlot returns the topmost plot mobject, if any.
func (s *Scene) FirstPlot() (*Mobject, bool) {
	for i := len(s.mobjects) - 1; i >= 0; i-- {
		if m := s.mobjects[i]; m.Plot != nil && m.Opacity > 0 {
			return m, true
		}
	}
	return nil, false
}

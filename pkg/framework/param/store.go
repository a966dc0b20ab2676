package param

// Store maps parameter indices to parameters. The table is fixed at
// construction, so lookups take no lock; each value is an atomic word.
//
// Every accessor is permissive about the index: hosts probe indices
// speculatively, so an out-of-range index reads as zero/empty and writes are dropped.
type Store struct {
	params []*Parameter
}

// NewStore creates a store whose index i addresses params[i].
func NewStore(params ...*Parameter) *Store {
	table := make([]*Parameter, len(params))
	copy(table, params)
	return &Store{params: table}
}

// At returns the parameter at index, or nil.
func (s *Store) At(index int32) *Parameter {
	if index < 0 || int(index) >= len(s.params) {
		return nil
	}
	return s.params[index]
}

// Count returns the number of parameters.
func (s *Store) Count() int32 {
	return int32(len(s.params))
}

// Get returns the current plain value of a parameter.
func (s *Store) Get(index int32) float32 {
	if p := s.At(index); p != nil {
		return p.GetValue()
	}
	return 0
}

// Set stores a plain value.
func (s *Store) Set(index int32, value float32) {
	if p := s.At(index); p != nil {
		p.SetValue(value)
	}
}

// Name returns the parameter name.
func (s *Store) Name(index int32) string {
	if p := s.At(index); p != nil {
		return p.Name
	}
	return ""
}

// Label returns the unit label.
func (s *Store) Label(index int32) string {
	if p := s.At(index); p != nil {
		return p.Unit
	}
	return ""
}

// DisplayText returns the formatted current value.
func (s *Store) DisplayText(index int32) string {
	if p := s.At(index); p != nil {
		return p.Text()
	}
	return ""
}

// Automatable reports whether the host may automate the parameter.
func (s *Store) Automatable(index int32) bool {
	if p := s.At(index); p != nil {
		return p.CanAutomate()
	}
	return false
}

// Reset restores every parameter to its default.
func (s *Store) Reset() {
	for _, p := range s.params {
		p.Reset()
	}
}

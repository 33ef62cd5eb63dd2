package template

// Store exposes canned replies by intent.
type Store interface {
	List() []Template
	FindByIntent(intent string) (Template, bool)
}

// MemoryStore implements Store with an in-memory slice.
type MemoryStore struct {
	items []Template
}

// NewMemoryStore returns a MemoryStore preloaded with the supplied templates.
func NewMemoryStore(items []Template) *MemoryStore {
	return &MemoryStore{items: append([]Template(nil), items...)}
}

// List returns every template.
func (s *MemoryStore) List() []Template {
	return append([]Template(nil), s.items...)
}

// FindByIntent looks up the template for intent.
func (s *MemoryStore) FindByIntent(intent string) (Template, bool) {
	for _, item := range s.items {
		if item.Intent == intent {
			return item, true
		}
	}
	return Template{}, false
}

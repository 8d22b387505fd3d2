package domain

// Service is a product offered by the cooperative, referenced from tickets
// but not owned by them.
type Service struct {
	ID          int64
	Name        string
	Description string
	Active      bool
}

// NewService builds an active service. The ID is assigned by the engine.
func NewService(name, description string) *Service {
	return &Service{Name: name, Description: description, Active: true}
}

func (s *Service) Activate() {
	s.Active = true
}

func (s *Service) Deactivate() {
	s.Active = false
}

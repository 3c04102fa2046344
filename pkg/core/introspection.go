package core

import (
	"github.com/aretw0/introspection"
)

// ServiceState exposes internal state for observability.
type ServiceState struct {
	EventBufferSize int    `json:"event_buffer_size"`
	RepositoryType  string `json:"repository_type"`
	SettingsType    string `json:"settings_type"`
}

// State implements introspection.Introspectable.
func (s *Service) State() any {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return ServiceState{
		EventBufferSize: s.eventBufferSize,
		RepositoryType:  componentType(s.repo),
		SettingsType:    componentType(s.settings),
	}
}

func componentType(v any) string {
	if v == nil {
		return "none"
	}
	if comp, ok := v.(introspection.Component); ok {
		return comp.ComponentType()
	}
	return "repository"
}

// ComponentType implements introspection.Component.
func (s *Service) ComponentType() string {
	return "service"
}

var _ introspection.Introspectable = (*Service)(nil)
var _ introspection.Component = (*Service)(nil)

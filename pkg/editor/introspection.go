package editor

import (
	"github.com/aretw0/introspection"
)

// EditorState exposes internal state for observability.
type EditorState struct {
	Runes       int       `json:"runes"`
	Selection   Selection `json:"selection"`
	Ranges      int       `json:"ranges"`
	BulletLines []int     `json:"bullet_lines,omitempty"`
	BulletMode  bool      `json:"bullet_mode"`
	Sticky      Style     `json:"sticky"`
}

// State implements introspection.Introspectable.
func (e *Editor) State() any {
	return EditorState{
		Runes:       len(e.text),
		Selection:   e.sel,
		Ranges:      len(e.ranges),
		BulletLines: e.BulletLines(),
		BulletMode:  e.bulletMode,
		Sticky:      e.sticky,
	}
}

// ComponentType implements introspection.Component.
func (e *Editor) ComponentType() string {
	return "editor"
}

var _ introspection.Introspectable = (*Editor)(nil)
var _ introspection.Component = (*Editor)(nil)

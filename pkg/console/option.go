// pkg/console/option.go

package console

import (
	"fmt"

	"github.com/wastevision/visionctl/pkg/vision_io"
)

// Option binds a visible label to an Action. Enabled and Visible are
// independent: a hidden option can still execute when driven
// programmatically, and a visible one can be disabled.
type Option struct {
	Name        string
	Description string
	Action      Action
	enabled     bool
	visible     bool
}

func NewOption(name, description string, action Action) *Option {
	return &Option{
		Name:        name,
		Description: description,
		Action:      action,
		enabled:     true,
		visible:     true,
	}
}

func (o *Option) Enabled() bool { return o.enabled }
func (o *Option) Visible() bool { return o.visible }

func (o *Option) SetEnabled(enabled bool) { o.enabled = enabled }
func (o *Option) SetVisible(visible bool) { o.visible = visible }

// Execute runs the option's action. Enabled-ness is checked on every
// call; disabled options fail regardless of visibility.
func (o *Option) Execute(rc *vision_io.RuntimeContext) (interface{}, error) {
	if !o.enabled {
		return nil, &DisabledOptionError{Name: o.Name}
	}
	if o.Action == nil {
		return nil, nil
	}
	return o.Action.Execute(rc)
}

func (o *Option) String() string {
	rendered := fmt.Sprintf("%s: %s", o.Name, o.Description)
	if !o.enabled {
		rendered += " (disabled)"
	}
	return rendered
}

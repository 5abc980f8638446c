// pkg/console/menu.go
//
// Menu navigation runs on an explicit frame stack instead of recursive
// calls: selecting an option whose action returns a *Menu pushes a
// frame, "back" pops one, and "0" unwinds everything. The stack makes
// "exit the whole program from any depth" a single return instead of a
// sentinel threaded through recursion.

package console

import (
	"errors"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/uptrace/opentelemetry-go-extra/otelzap"
	"go.uber.org/zap"

	"github.com/wastevision/visionctl/pkg/vision_err"
	"github.com/wastevision/visionctl/pkg/vision_io"
)

const (
	exitToken = "0"
	backToken = "back"
)

// Menu is one level of the interactive console. Options are rendered
// in insertion order and numbered from 1 on every pass, so numbering
// tracks the currently visible set rather than staying stable across
// renders.
type Menu struct {
	Title  string
	Header string
	Footer string

	options []*Option
	parent  *Menu
	exit    *Option
	back    *Option
}

// NewMenu builds a top-level menu. The exit entry is synthesized here
// and always rendered under the fixed key "0".
func NewMenu(title string) *Menu {
	return &Menu{
		Title: title,
		exit:  NewOption(exitToken, "Exit program", nil),
	}
}

// Submenu builds a child menu linked back to m. The back entry is only
// synthesized for children; a parentless menu never recognizes the
// "back" token.
func (m *Menu) Submenu(title string) *Menu {
	sub := NewMenu(title)
	sub.parent = m
	sub.back = NewOption(backToken, "Return to previous menu", nil)
	return sub
}

// Add appends options in render order.
func (m *Menu) Add(options ...*Option) {
	m.options = append(m.options, options...)
}

// Parent returns the menu this one backs out to, or nil for a root.
func (m *Menu) Parent() *Menu {
	return m.parent
}

func (m *Menu) visibleOptions() []*Option {
	visible := make([]*Option, 0, len(m.options))
	for _, opt := range m.options {
		if opt.Visible() {
			visible = append(visible, opt)
		}
	}
	return visible
}

func (m *Menu) render(term *vision_io.Terminal, visible []*Option) {
	term.ClearScreen()

	term.Printf("\n%s\n", m.Title)
	term.Print(strings.Repeat("=", utf8.RuneCountInString(m.Title)) + "\n")
	if m.Header != "" {
		term.Printf("\n%s\n", m.Header)
	}

	for i, opt := range visible {
		term.Printf("%d. %s\n", i+1, opt)
	}

	if m.Footer != "" {
		term.Printf("\n%s\n", m.Footer)
	}
	term.Printf("\n%s. %s\n", m.exit.Name, m.exit.Description)
	if m.parent != nil && m.back != nil {
		term.Printf("%s. %s\n", m.back.Name, m.back.Description)
	}
}

// Run drives the navigation loop until the user exits, an option on
// the starting menu produces a result, or a read fails. The returned
// value is nil for a plain exit. Results produced inside nested menus
// are discarded when their frame pops; only the starting menu's frame
// can yield one to the caller.
//
// Read errors, including interrupts, abort the loop unhandled. Action
// failures are reported, acknowledged and survived.
func (m *Menu) Run(rc *vision_io.RuntimeContext) (interface{}, error) {
	logger := otelzap.Ctx(rc.Ctx)
	stack := []*Menu{m}

	for len(stack) > 0 {
		cur := stack[len(stack)-1]
		visible := cur.visibleOptions()
		cur.render(rc.Term, visible)

		line, err := rc.Term.ReadLine(rc.Ctx, "\nEnter your choice: ")
		if err != nil {
			return nil, err
		}
		choice := strings.ToLower(line)

		if choice == exitToken {
			rc.Term.Print("\nExiting program...\n")
			logger.Debug("Exit requested", zap.String("menu", cur.Title), zap.Int("depth", len(stack)))
			return nil, nil
		}
		if choice == backToken && cur.parent != nil {
			rc.Term.Print("\nReturning to previous menu...\n")
			stack = stack[:len(stack)-1]
			continue
		}

		index, convErr := strconv.Atoi(choice)
		if convErr != nil {
			rc.Term.Print("\nPlease enter a number corresponding to your choice.\n")
			continue
		}
		if index < 1 || index > len(visible) {
			rc.Term.Print("\nInvalid choice. Please enter a valid number.\n")
			continue
		}
		selected := visible[index-1]

		if !selected.Enabled() {
			rc.Term.Print("\nThis option is currently disabled.\n")
			if ackErr := rc.Term.Acknowledge(rc.Ctx); ackErr != nil {
				return nil, ackErr
			}
			continue
		}

		rc.Term.Printf("\nExecuting: %s...\n", selected.Description)
		logger.Debug("Dispatching option",
			zap.String("menu", cur.Title),
			zap.String("option", selected.Name))

		result, execErr := selected.Execute(rc)
		if execErr != nil {
			if vision_err.IsInterrupt(execErr) {
				return nil, execErr
			}
			var disabled *DisabledOptionError
			if errors.As(execErr, &disabled) {
				rc.Term.Print("\nThis option is currently disabled.\n")
			} else {
				rc.Term.Errorf("\nError executing option: %v\n", execErr)
			}
			logger.Warn("Option failed",
				zap.String("menu", cur.Title),
				zap.String("option", selected.Name),
				zap.Error(execErr))
			if ackErr := rc.Term.Acknowledge(rc.Ctx); ackErr != nil {
				return nil, ackErr
			}
			continue
		}

		if sub, ok := result.(*Menu); ok {
			stack = append(stack, sub)
			continue
		}
		if result != nil {
			if len(stack) == 1 {
				logger.Debug("Menu produced result", zap.String("menu", cur.Title))
				return result, nil
			}
			// Results from nested frames are dropped on purpose.
			logger.Debug("Discarding nested menu result", zap.String("menu", cur.Title))
			stack = stack[:len(stack)-1]
			continue
		}

		if ackErr := rc.Term.Acknowledge(rc.Ctx); ackErr != nil {
			return nil, ackErr
		}
	}

	return nil, nil
}

// RunLoop re-enters the menu after each produced result, so the
// console keeps serving until the user exits or a read fails. Suits a
// root menu run as the program's main surface.
func (m *Menu) RunLoop(rc *vision_io.RuntimeContext) error {
	logger := otelzap.Ctx(rc.Ctx)
	for {
		result, err := m.Run(rc)
		if err != nil {
			return err
		}
		if result == nil {
			return nil
		}
		logger.Info("Menu result handled", zap.Any("result", result))
	}
}

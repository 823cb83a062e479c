package themes

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/pkheisig/lexiflow/pkg/printers"
	"github.com/pkheisig/lexiflow/pkg/store"
	"github.com/pkheisig/lexiflow/pkg/tui/theme"
)

// Themes prints the available themes, or persists a new selection when Name
// is set.
type Themes struct {
	Settings store.Settings
	Name     string
}

func (r *Themes) Do(ctx context.Context) error {
	if r.Settings == nil {
		return errors.New("theme: no settings store")
	}

	if r.Name != "" {
		if !theme.Valid(r.Name) {
			return fmt.Errorf("theme: unknown theme %q, pick one of: %s",
				r.Name, strings.Join(theme.Names(), ", "))
		}
		return r.Settings.SetTheme(r.Name)
	}

	current := r.Settings.Theme()
	if current == "" || !theme.Valid(current) {
		current = theme.DefaultName
	}

	pp := printers.PrettyPrint{}
	fmt.Println("")
	pp.Title("Themes")
	pp.Themes(current, theme.Names())
	return nil
}

package helpers

import (
	"context"
	"io"

	"github.com/a-h/templ"

	"github.com/iota-uz/iota-projects/modules/projects/domain/entities/version"
)

// VersionOptions renders VersionOptionsForSelect as a component.
func VersionOptions(versions []version.Version, selected *version.Version) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		_, err := io.WriteString(w, VersionOptionsForSelect(versions, selected))
		return err
	})
}


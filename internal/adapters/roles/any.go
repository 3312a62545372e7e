package roles

import (
	"context"
	"errors"

	rolesport "maintenance-inspections/internal/ports/roles"
)

// anyDirectory es admin si cualquiera de los directorios lo dice.
type anyDirectory []rolesport.Directory

// Any combina directorios. Los errores solo se devuelven si ninguno
// confirmó el rol.
func Any(dirs ...rolesport.Directory) rolesport.Directory {
	out := make(anyDirectory, 0, len(dirs))
	for _, d := range dirs {
		if d != nil {
			out = append(out, d)
		}
	}
	return out
}

func (a anyDirectory) IsAdmin(ctx context.Context, userID string) (bool, error) {
	var errs []error
	for _, d := range a {
		ok, err := d.IsAdmin(ctx, userID)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		if ok {
			return true, nil
		}
	}
	return false, errors.Join(errs...)
}

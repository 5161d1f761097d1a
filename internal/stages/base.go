package stages

import (
	"errors"

	"github.com/0xa1bed0/dloenv/internal/provision"
)

// Base pins the OS base image and the locale bindings every later stage
// sees. No other stage may change the base afterwards.
func Base() provision.Stage {
	return provision.Stage{
		ID:          StageBase,
		Description: "Pin the OS base image and locales",
		Apply: func(cfg provision.Config, st *provision.State) error {
			if cfg.BaseImage == "" {
				return errors.New("base image required")
			}
			st.BaseImage = cfg.BaseImage
			st.SetEnv("LC_ALL", cfg.Locale)
			st.SetEnv("LANG", cfg.Locale)
			return nil
		},
		Check: func(st *provision.State) error {
			if st.BaseImage == "" {
				return errors.New("base image not set")
			}
			return nil
		},
	}
}

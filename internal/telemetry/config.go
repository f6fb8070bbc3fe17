package telemetry

import "codeberg.org/veska/keywatch/internal/errors"

const defaultDirPerm = 0o755

type Config struct {
	DBPath  string
	Enabled bool
}

func (c Config) Validate() error {
	errFactory := errors.New()
	if c.Enabled && c.DBPath == "" {
		return errFactory.New(ErrInvalidDBPath)
	}
	return nil
}

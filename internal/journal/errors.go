package journal

import "codeberg.org/veska/keywatch/internal/errors"

const (
	ErrInvalidDir  = errors.ErrorCode("journal_invalid_dir")
	ErrDirInit     = errors.ErrorCode("journal_dir_init_failed")
	ErrSaveFailed  = errors.ErrorCode("journal_save_failed")
	ErrLoadFailed  = errors.ErrorCode("journal_load_failed")
	ErrBadDocument = errors.ErrorCode("journal_bad_document")
)

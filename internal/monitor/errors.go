package monitor

import "codeberg.org/veska/keywatch/internal/errors"

const (
	ErrCaptureUnavailable = errors.ErrorCode("monitor_capture_unavailable")
	ErrReportFailed       = errors.ErrorCode("monitor_report_failed")
)

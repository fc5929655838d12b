package notification

import "errors"

var ErrSettingNotFound = errors.New("notification setting not found")

package notification

// SettingResponse represents notification preferences in API responses
type SettingResponse struct {
	EmailNotif bool `json:"email_notif"`
	PushNotif  bool `json:"push_notif"`
}

func NewSettingResponse(s Setting) SettingResponse {
	return SettingResponse{
		EmailNotif: s.EmailNotif,
		PushNotif:  s.PushNotif,
	}
}

// UpdateSettingRequest toggles notification preferences; omitted fields
// keep their current value.
type UpdateSettingRequest struct {
	EmailNotif *bool `json:"email_notif,omitempty"`
	PushNotif  *bool `json:"push_notif,omitempty"`
}

package models

// Profile holds the backend-owned profile fields of a user.
type Profile struct {
	ID           int64  `json:"id"`
	Name         string `json:"name"`
	Email        string `json:"email,omitempty"`
	Phone        string `json:"phone"`
	ProfileImage string `json:"profile_image,omitempty"`
	IsApproved   bool   `json:"is_approved,omitempty"`
}

// UserRecord is the unified current-user record: identity-provider fields
// (UID, Email, DisplayName, provider token) merged with the backend-issued
// session token and profile. At most one record exists per session; backend
// fields, when present, take precedence for display.
type UserRecord struct {
	UID           string   `json:"uid"`
	Email         string   `json:"email"`
	DisplayName   string   `json:"displayName,omitempty"`
	ProviderToken string   `json:"providerToken,omitempty"`
	Token         string   `json:"token,omitempty"`
	Profile       *Profile `json:"user,omitempty"`
}

// Name returns the display name, preferring the backend profile name.
func (u *UserRecord) Name() string {
	if u.Profile != nil && u.Profile.Name != "" {
		return u.Profile.Name
	}
	return u.DisplayName
}

// Phone returns the backend profile phone, if any.
func (u *UserRecord) Phone() string {
	if u.Profile != nil {
		return u.Profile.Phone
	}
	return ""
}

// ProfilePatch is a shallow-merge update applied to the backend profile
// fields of the current user. Nil fields are left untouched.
type ProfilePatch struct {
	Name         *string `json:"name,omitempty"`
	Phone        *string `json:"phone,omitempty"`
	ProfileImage *string `json:"profile_image,omitempty"`
}

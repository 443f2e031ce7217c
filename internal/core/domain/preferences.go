package domain

// Preferences is the fixed set of user toggles the UI exposes.
type Preferences struct {
	NotificationsEnabled  bool `json:"notificationsEnabled" yaml:"notificationsEnabled"`
	EmailRemindersEnabled bool `json:"emailRemindersEnabled" yaml:"emailRemindersEnabled"`
	DarkMode              bool `json:"darkMode" yaml:"darkMode"`
}

func DefaultPreferences() Preferences {
	return Preferences{
		NotificationsEnabled:  true,
		EmailRemindersEnabled: false,
		DarkMode:              false,
	}
}

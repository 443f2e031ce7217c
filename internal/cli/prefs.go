package cli

import (
	"fmt"
	"strings"
)

// PrefsCmd shows preferences, or updates the ones given as on/off.
type PrefsCmd struct {
	Notifications  string `help:"Enable notifications (on|off)."`
	EmailReminders string `help:"Enable email reminders (on|off)."`
	DarkMode       string `help:"Enable dark mode (on|off)."`
}

func parseSwitch(name, value string) (bool, error) {
	switch strings.ToLower(value) {
	case "on", "true", "yes":
		return true, nil
	case "off", "false", "no":
		return false, nil
	}
	return false, fmt.Errorf("--%s must be on or off, got %q", name, value)
}

func (c *PrefsCmd) Validate() error {
	for name, v := range map[string]string{
		"notifications":   c.Notifications,
		"email-reminders": c.EmailReminders,
		"dark-mode":       c.DarkMode,
	} {
		if v == "" {
			continue
		}
		if _, err := parseSwitch(name, v); err != nil {
			return err
		}
	}
	return nil
}

func (c *PrefsCmd) Run(ctx *Context) error {
	if c.Notifications != "" {
		on, _ := parseSwitch("notifications", c.Notifications)
		ctx.Store.SetNotificationsEnabled(on)
	}
	if c.EmailReminders != "" {
		on, _ := parseSwitch("email-reminders", c.EmailReminders)
		ctx.Store.SetEmailRemindersEnabled(on)
	}
	if c.DarkMode != "" {
		on, _ := parseSwitch("dark-mode", c.DarkMode)
		ctx.Store.SetDarkMode(on)
	}

	p := ctx.Store.Preferences()
	ctx.printf("%s\n", headerStyle.Render("Preferences"))
	ctx.printf("  notifications    %s\n", onOff(p.NotificationsEnabled))
	ctx.printf("  email reminders  %s\n", onOff(p.EmailRemindersEnabled))
	ctx.printf("  dark mode        %s\n", onOff(p.DarkMode))
	return nil
}

func onOff(b bool) string {
	if b {
		return "on"
	}
	return "off"
}

package models

// Settings represents application-wide settings
type Settings struct {
	WindowStart      string `json:"window_start"`        // earliest activity start, e.g. "06:00"
	WindowEnd        string `json:"window_end"`          // latest activity end, e.g. "22:00"
	BreakMin         int    `json:"break_min"`           // mandatory gap after events and sessions, in minutes
	DailyActivityCap int    `json:"daily_activity_cap"`  // per-day ceiling on ACTIVITY minutes
	Timezone         string `json:"timezone"`            // IANA timezone name, or "Local" for the system timezone
}

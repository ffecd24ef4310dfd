package common

// ScheduleParams starts a new schedule. For countdown mode DurationSec
// carries the relative delay in whole seconds; for scheduled mode At
// carries a 24-hour HH:MM clock time resolved to the next occurrence.
type ScheduleParams struct {
	Action      string `json:"action"`
	Mode        string `json:"mode"`
	DurationSec int64  `json:"duration_sec,omitempty"`
	At          string `json:"at,omitempty"`
}

// StatusDetail is the full schedule snapshot returned by most methods.
type StatusDetail struct {
	State         State  `json:"state"`
	Action        Action `json:"action,omitempty"`
	Mode          Mode   `json:"mode,omitempty"`
	TargetUnix    int64  `json:"target_unix,omitempty"`
	RemainingSec  int64  `json:"remaining_sec"`
	Text          string `json:"text"`
	DispatchError string `json:"dispatch_error,omitempty"`
}

// TickingUpdate is pushed to attached connections once per tick and on
// terminal transitions.
type TickingUpdate struct {
	Event        TickingEvent `json:"event"`
	State        State        `json:"state"`
	Action       Action       `json:"action"`
	TargetUnix   int64        `json:"target_unix"`
	RemainingSec int64        `json:"remaining_sec"`
	Text         string       `json:"text"`
	Error        string       `json:"error,omitempty"`
}

// ActionInfo reports platform support for a single action.
type ActionInfo struct {
	Action    Action `json:"action"`
	Supported bool   `json:"supported"`
	Reason    string `json:"reason,omitempty"`
}

// ActionsResponse lists platform support for every action.
type ActionsResponse struct {
	Actions []ActionInfo `json:"actions"`
}

// VersionResponse identifies the daemon build.
type VersionResponse struct {
	Version   string `json:"version"`
	Commit    string `json:"commit,omitempty"`
	BuildType string `json:"build_type,omitempty"`
}

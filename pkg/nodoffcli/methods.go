package nodoffcli

import (
	"encoding/json"

	"github.com/nodoff/nodoff/common"
)

func invoke[T any](c *Client, method common.UpdateType, message any) (*T, error) {
	resp, err := c.invoke(method, message)
	if err != nil {
		return nil, err
	}
	var d T
	return &d, json.Unmarshal(resp, &d)
}

// ScheduleOpts carries the optional knobs of a schedule request. Either
// DurationSec or At is set, matching the requested mode.
type ScheduleOpts struct {
	DurationSec int64  `json:"duration_sec,omitempty"`
	At          string `json:"at,omitempty"`
}

// Schedule starts a countdown or clock-time schedule for the given
// action and returns the resulting status snapshot.
func (c *Client) Schedule(action, mode string, opts *ScheduleOpts) (*common.StatusDetail, error) {
	if opts == nil {
		opts = &ScheduleOpts{}
	}
	return invoke[common.StatusDetail](c, common.UPDATE_SCHEDULE, &common.ScheduleParams{
		Action:      action,
		Mode:        mode,
		DurationSec: opts.DurationSec,
		At:          opts.At,
	})
}

// Cancel cancels the active schedule.
func (c *Client) Cancel() (*common.StatusDetail, error) {
	return invoke[common.StatusDetail](c, common.UPDATE_CANCEL, nil)
}

// Status returns the current schedule snapshot.
func (c *Client) Status() (*common.StatusDetail, error) {
	return invoke[common.StatusDetail](c, common.UPDATE_STATUS, nil)
}

// Reset clears a finished schedule back to standby.
func (c *Client) Reset() (*common.StatusDetail, error) {
	return invoke[common.StatusDetail](c, common.UPDATE_RESET, nil)
}

// Actions reports which power actions the platform supports.
func (c *Client) Actions() (*common.ActionsResponse, error) {
	return invoke[common.ActionsResponse](c, common.UPDATE_ACTIONS, nil)
}

// Attach subscribes this connection to ticking updates and returns the
// current snapshot. Follow up with AddHandler and Listen to receive the
// stream.
func (c *Client) Attach() (*common.StatusDetail, error) {
	return invoke[common.StatusDetail](c, common.UPDATE_ATTACH, nil)
}

// Detach unsubscribes this connection from ticking updates.
func (c *Client) Detach() (bool, error) {
	_, err := c.invoke(common.UPDATE_DETACH, nil)
	return err == nil, err
}

// GetDaemonVersion returns the daemon build information.
func (c *Client) GetDaemonVersion() (*common.VersionResponse, error) {
	return invoke[common.VersionResponse](c, common.UPDATE_VERSION, nil)
}

// StopDaemon asks the daemon to shut down.
func (c *Client) StopDaemon() (bool, error) {
	_, err := c.invoke(common.UPDATE_STOP, nil)
	return err == nil, err
}

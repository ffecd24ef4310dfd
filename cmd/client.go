package cmd

import (
	"fmt"
	"time"

	"github.com/vbauerster/mpb/v8"
	"github.com/vbauerster/mpb/v8/decor"
	"github.com/nodoff/nodoff/common"
	"github.com/nodoff/nodoff/pkg/nodoffcli"
)

// watchResult captures the terminal line of a watch session once the
// ticking stream ends.
type watchResult struct {
	text string
}

func tickingProgress(bar *mpb.Bar, total int64) func(u *common.TickingUpdate) error {
	return func(u *common.TickingUpdate) error {
		cur := total - u.RemainingSec
		if cur < 0 {
			cur = 0
		}
		bar.SetCurrent(cur)
		return nil
	}
}

func tickingFired(bar *mpb.Bar, total int64, res *watchResult) func(u *common.TickingUpdate) error {
	return func(u *common.TickingUpdate) error {
		res.text = u.Text
		if u.Error != "" {
			res.text = fmt.Sprintf("%s: %s", u.Text, u.Error)
		}
		if !bar.Completed() {
			bar.SetCurrent(total)
		}
		return nodoffcli.ErrDisconnect
	}
}

func tickingCancelled(bar *mpb.Bar, res *watchResult) func(u *common.TickingUpdate) error {
	return func(u *common.TickingUpdate) error {
		res.text = u.Text
		bar.Abort(false)
		return nodoffcli.ErrDisconnect
	}
}

func initCountdownBar(p *mpb.Progress, d *common.StatusDetail) *mpb.Bar {
	barStyle := mpb.BarStyle().Lbound("╢").Filler("█").Tip("█").Padding("░").Rbound("╟")

	name := string(d.Action)
	bar := p.New(0,
		barStyle,
		mpb.PrependDecorators(
			decor.Name(name, decor.WC{W: len(name) + 1, C: decor.DindentRight}),
			decor.OnComplete(
				decor.Any(func(s decor.Statistics) string {
					left := s.Total - s.Current
					return common.FormatRemaining(time.Duration(left) * time.Second)
				}, decor.WC{W: 8}), "imminent",
			),
		),
		mpb.AppendDecorators(
			decor.Percentage(decor.WC{W: 5}),
		),
	)
	total := d.RemainingSec
	if total <= 0 {
		total = 1
	}
	bar.SetTotal(total, false)
	bar.EnableTriggerComplete()
	return bar
}

func registerWatchHandlers(client *nodoffcli.Client, d *common.StatusDetail) (*watchResult, *mpb.Progress) {
	rr := time.Millisecond * 120
	p := mpb.New(mpb.WithWidth(64), mpb.WithRefreshRate(rr))
	bar := initCountdownBar(p, d)
	total := d.RemainingSec
	if total <= 0 {
		total = 1
	}
	res := &watchResult{}
	client.AddHandler(
		common.UPDATE_TICKING,
		nodoffcli.NewTickingHandler(common.TickProgress, tickingProgress(bar, total)),
	)
	client.AddHandler(
		common.UPDATE_TICKING,
		nodoffcli.NewTickingHandler(common.TickFired, tickingFired(bar, total, res)),
	)
	client.AddHandler(
		common.UPDATE_TICKING,
		nodoffcli.NewTickingHandler(common.TickCancelled, tickingCancelled(bar, res)),
	)
	return res, p
}

package main

import (
	"fmt"
	"io"
	"time"

	"github.com/schollz/progressbar/v3"

	"eyeset/internal/dataset"
)

// copyProgress draws one bar per subset while files are copied.
type copyProgress struct {
	out     io.Writer
	current dataset.Subset
	bar     *progressbar.ProgressBar
}

func newCopyProgress(out io.Writer) *copyProgress {
	return &copyProgress{out: out}
}

func (p *copyProgress) update(subset dataset.Subset, copied, total int) {
	if p.bar == nil || subset != p.current {
		p.finish()
		p.current = subset
		p.bar = progressbar.NewOptions(total,
			progressbar.OptionSetWriter(p.out),
			progressbar.OptionSetDescription(fmt.Sprintf("copying %-5s", subset)),
			progressbar.OptionShowCount(),
			progressbar.OptionSetWidth(30),
			progressbar.OptionThrottle(100*time.Millisecond),
			progressbar.OptionClearOnFinish(),
		)
	}
	_ = p.bar.Set(copied)
	if copied >= total {
		p.finish()
	}
}

func (p *copyProgress) finish() {
	if p.bar == nil {
		return
	}
	_ = p.bar.Finish()
	p.bar = nil
}

package cli

import (
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"

	"github.com/llehouerou/sound/internal/errmsg"
	"github.com/llehouerou/sound/internal/ipc"
)

// DaemonHint follows every transport failure.
const DaemonHint = "Please make sure that daemon is running."

var (
	successColor = lipgloss.Color("12") // blue
	failureColor = lipgloss.Color("9")  // red
)

// printer renders responses with colors suited to its writer.
type printer struct {
	w       io.Writer
	success lipgloss.Style
	failure lipgloss.Style
}

func newPrinter(w io.Writer) *printer {
	r := lipgloss.NewRenderer(w)
	return &printer{
		w:       w,
		success: r.NewStyle().Foreground(successColor),
		failure: r.NewStyle().Foreground(failureColor),
	}
}

func (p *printer) response(resp ipc.Response) {
	if resp.Status {
		p.ok(resp.Message)
	} else {
		p.fail(resp.Message)
	}
}

func (p *printer) ok(msg string) {
	fmt.Fprintln(p.w, p.success.Render(msg))
}

func (p *printer) fail(msg string) {
	fmt.Fprintln(p.w, p.failure.Render(msg))
}

func (p *printer) unreachable(err error) {
	p.fail(errmsg.Format(errmsg.OpRequestSend, err))
	p.fail(DaemonHint)
}

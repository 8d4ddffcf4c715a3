package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os/signal"
	"sort"
	"strings"
	"syscall"
	"time"

	"github.com/fatih/color"
	"github.com/jzelinskie/cobrautil/v2"
	"github.com/spf13/cobra"

	v1 "github.com/testcloud/grid-proxy/api/v1"
	"github.com/testcloud/grid-proxy/internal/config"
	"github.com/testcloud/grid-proxy/internal/models"
	"github.com/testcloud/grid-proxy/pkg/poller"
	"github.com/testcloud/grid-proxy/pkg/proxyclient"
)

var (
	watchProxyURL    string
	watchInterval    time.Duration
	watchTimeout     time.Duration
	watchNoAutoFresh bool
	watchLogLevel    string
)

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Watch grid sessions through a running proxy",
	Long: `Poll a running grid proxy and print nodes and sessions on every refresh.

Commands read from stdin:
  k <session-id>   kill a session and refresh
  r                refresh now
  p                pause or resume auto refresh
  q                quit`,
	PreRunE: cobrautil.CommandStack(
		cobrautil.SyncViperPreRunE(envPrefix),
	),
	RunE: runWatch,
}

func init() {
	rootCmd.AddCommand(watchCmd)

	fs := watchCmd.Flags()
	fs.StringVar(&watchProxyURL, "proxy-url", "http://localhost:31590/api/selenium-grid", "base url of the grid proxy routes")
	fs.DurationVar(&watchInterval, "interval", poller.DefaultInterval, "refresh interval")
	fs.DurationVar(&watchTimeout, "timeout", proxyclient.DefaultTimeout, "timeout of a single proxy call")
	fs.BoolVar(&watchNoAutoFresh, "no-auto-refresh", false, "only refresh on demand")
	fs.StringVar(&watchLogLevel, "log-level", "warn", "log level: debug, info, warn, error")
}

func runWatch(cmd *cobra.Command, _ []string) error {
	flush, err := setupLogger(config.LogFormatConsole, watchLogLevel)
	if err != nil {
		return err
	}
	defer flush()

	client, err := proxyclient.NewProxyClient(watchProxyURL, watchTimeout)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	p := poller.NewPoller(client, func(u poller.Update) { render(out, u) },
		poller.WithInterval(watchInterval),
		poller.WithAutoRefresh(!watchNoAutoFresh),
	)

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := p.Start(ctx); err != nil {
		return err
	}
	defer p.Stop()

	lines := make(chan string)
	go func() {
		defer close(lines)
		scanner := bufio.NewScanner(cmd.InOrStdin())
		for scanner.Scan() {
			lines <- scanner.Text()
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return nil
		case line, ok := <-lines:
			if !ok {
				<-ctx.Done()
				return nil
			}
			if quit := handleCommand(ctx, out, p, line); quit {
				return nil
			}
		}
	}
}

func handleCommand(ctx context.Context, out io.Writer, p *poller.Poller, line string) bool {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return false
	}

	switch fields[0] {
	case "q", "quit":
		return true
	case "r", "refresh":
		_, _ = p.Refresh(ctx)
	case "p", "pause":
		p.SetAutoRefresh(!p.AutoRefresh())
		if p.AutoRefresh() {
			fmt.Fprintln(out, color.GreenString("auto refresh on (every %s)", p.Interval()))
		} else {
			fmt.Fprintln(out, color.YellowString("auto refresh paused"))
		}
	case "k", "kill":
		if len(fields) < 2 {
			fmt.Fprintln(out, color.RedString("usage: k <session-id>"))
			return false
		}
		msg, err := p.Kill(ctx, fields[1])
		if err == nil {
			fmt.Fprintln(out, color.GreenString("%s", msg))
		}
	default:
		fmt.Fprintln(out, color.RedString("unknown command %q", fields[0]))
	}
	return false
}

// render prints one update. A failed refresh keeps the last rendered snapshot on screen.
func render(out io.Writer, u poller.Update) {
	stamp := u.At.Format(time.TimeOnly)
	if u.Err != nil {
		fmt.Fprintf(out, "%s %s\n", stamp, color.RedString("error: %v", u.Err))
		return
	}

	s := u.Status
	fmt.Fprintf(out, "%s %s %s\n", stamp, color.New(color.Bold).Sprint("grid"), s.GridURL)
	fmt.Fprintf(out, "  nodes %d  slots %d  active %s  available %s\n",
		s.Statistics.TotalNodes,
		s.Statistics.TotalSlots,
		color.CyanString("%d", s.Statistics.ActiveSessions),
		color.GreenString("%d", s.Statistics.AvailableSlots))

	for _, n := range s.Nodes {
		fmt.Fprintf(out, "  %s %s %s\n", availability(n.Availability), n.ID, n.URI)
	}

	sessions := append([]v1.Session(nil), s.Sessions...)
	sort.Slice(sessions, func(i, j int) bool { return sessions[i].SessionID < sessions[j].SessionID })
	for _, sess := range sessions {
		fmt.Fprintf(out, "  %s %-10v %s\n", color.CyanString(sess.SessionID), sess.Capabilities["browserName"], sess.NodeURI)
	}
}

func availability(a string) string {
	switch a {
	case string(models.AvailabilityUp):
		return color.GreenString("%-8s", a)
	case string(models.AvailabilityDraining):
		return color.YellowString("%-8s", a)
	default:
		return color.RedString("%-8s", a)
	}
}

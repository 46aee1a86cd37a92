package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/spf13/cobra"

	"github.com/job-scalper/internal/controller"
	"github.com/job-scalper/internal/models"
	"github.com/job-scalper/internal/render"
	"github.com/job-scalper/internal/view"
)

var ErrExitRequested = errors.New("exit requested")

const sessionHelp = `Commands:
  q <text>         set the search query
  intern on|off    internship flag (switches to intern mode)
  levels 17,18     seniority codes (switches to levels mode, see 'scalper levels')
  url <link>       seed URL (switches to url mode)
  mode intern|levels|url
  go               submit the search in the background
  wait             wait for running searches to finish
  f [text]         set or clear the title filter
  show             print the current results
  help             this text
  exit             leave`

// Session is an interactive search form on a line based terminal. Searches
// run in the background so the filter can change while one is in flight.
type Session struct {
	ctrl     *controller.Controller
	renderer *render.TextRenderer
	in       *bufio.Scanner
	out      io.Writer

	outMu sync.Mutex
	wg    sync.WaitGroup

	form models.Criteria
}

func NewSession(ctrl *controller.Controller, renderer *render.TextRenderer, in io.Reader, out io.Writer) *Session {
	s := &Session{
		ctrl:     ctrl,
		renderer: renderer,
		in:       bufio.NewScanner(in),
		out:      out,
	}
	ctrl.Subscribe(s.render)
	return s
}

func newInteractiveCmd(opts *globalOptions) *cobra.Command {
	return &cobra.Command{
		Use:     "interactive",
		Aliases: []string{"i"},
		Short:   "Interactive search session",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(opts)
			if err != nil {
				return err
			}
			session := NewSession(a.newController(), a.textRenderer(), cmd.InOrStdin(), cmd.OutOrStdout())
			return session.Run(cmd.Context())
		},
	}
}

// Run reads commands until exit or end of input. Searches still running at
// that point are abandoned.
func (s *Session) Run(ctx context.Context) error {
	ctx, cancel := context.WithCancel(ctx)
	defer func() {
		s.ctrl.Close()
		cancel()
	}()

	s.println("Job Scalper interactive session, type 'help' for commands.")
	for {
		s.print("> ")
		if !s.in.Scan() {
			break
		}

		if err := s.handle(ctx, strings.TrimLeft(s.in.Text(), " \t")); err != nil {
			if errors.Is(err, ErrExitRequested) {
				return nil
			}
			s.println("Error: " + err.Error())
		}
	}
	return s.in.Err()
}

func (s *Session) handle(ctx context.Context, line string) error {
	if line == "" {
		return nil
	}
	command, raw, _ := strings.Cut(line, " ")
	arg := strings.TrimSpace(raw)

	switch strings.ToLower(strings.TrimSpace(command)) {
	case "q", "query":
		s.form.Query = arg
	case "intern":
		switch strings.ToLower(arg) {
		case "on", "yes", "true", "1":
			s.form.IsIntern = true
		case "off", "no", "false", "0":
			s.form.IsIntern = false
		default:
			return fmt.Errorf("expected 'intern on' or 'intern off'")
		}
		s.form.Kind = models.KindIntern
	case "levels", "level":
		codes, err := models.ParseLevelCodes(arg)
		if err != nil {
			return err
		}
		s.form.LevelCodes = codes
		s.form.Kind = models.KindLevels
	case "url":
		s.form.SeedURL = arg
		s.form.Kind = models.KindSeedURL
	case "mode":
		kind, err := models.ParseKind(arg)
		if err != nil {
			return err
		}
		s.form.Kind = kind
	case "go", "search":
		s.submit(ctx)
	case "wait":
		s.wg.Wait()
	case "f", "filter":
		// matched verbatim, surrounding spaces included
		s.ctrl.SetFilter(raw)
	case "show":
		s.render(s.ctrl.State())
	case "help", "?":
		s.println(sessionHelp)
	case "exit", "quit":
		return ErrExitRequested
	default:
		return fmt.Errorf("unknown command %q, type 'help'", command)
	}
	return nil
}

// submit snapshots the form so later edits do not change the running search.
func (s *Session) submit(ctx context.Context) {
	criteria := s.form
	criteria.LevelCodes = append([]int(nil), s.form.LevelCodes...)

	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		_, _ = s.ctrl.Submit(ctx, criteria)
	}()
}

func (s *Session) render(state view.State) {
	s.outMu.Lock()
	defer s.outMu.Unlock()
	_ = s.renderer.Render(s.out, state)
}

func (s *Session) print(text string) {
	s.outMu.Lock()
	defer s.outMu.Unlock()
	fmt.Fprint(s.out, text)
}

func (s *Session) println(text string) {
	s.print(text + "\n")
}

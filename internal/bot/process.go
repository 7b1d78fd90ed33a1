package bot

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"os/exec"
	"path/filepath"
	"strings"
	"sync"

	"animal-chess/internal/config"
	"animal-chess/internal/game"

	"github.com/sirupsen/logrus"
)

// Process asks an external program for moves. Each request is one JSON line on the program's
// stdin:
//
//	{"id":1,"color":"red","board":[...],"moves":[{"from":-1,"to":3,"flip":true},...]}
//
// A "weights" object is added when the game sets its own heuristic weights. The program answers
// with one JSON line carrying the same id:
//
//	{"id":1,"move":{"from":-1,"to":3,"flip":true},"rationale":"..."}
//
// Lines that are not JSON, or answer an older id, are skipped. The program is started on
// first use and kept running until Close.
type Process struct {
	Name string
	Path string
	Args []string
	Env  []string

	mu     sync.Mutex
	cmd    *exec.Cmd
	writer *bufio.Writer
	out    *output
	seq    int
}

// output carries the lines read from one running program. err is set before lines is closed.
type output struct {
	lines chan string
	err   error
}

func NewProcess(path string, args ...string) *Process {
	return &Process{
		Name: filepath.Base(path),
		Path: path,
		Args: args,
	}
}

type processRequest struct {
	ID    int         `json:"id"`
	Color game.Color  `json:"color"`
	Board []game.Cell `json:"board"`
	Moves []game.Move `json:"moves"`

	Weights *config.Weights `json:"weights,omitempty"`
}

type processReply struct {
	ID        int        `json:"id"`
	Move      *game.Move `json:"move"`
	Rationale string     `json:"rationale"`
}

func (p *Process) start() error {
	cmd := exec.Command(p.Path, p.Args...)
	cmd.Env = p.Env

	stdin, err := cmd.StdinPipe()
	if err != nil {
		return err
	}
	stdout, err := cmd.StdoutPipe()
	if err != nil {
		return err
	}
	if err := cmd.Start(); err != nil {
		return err
	}

	out := &output{lines: make(chan string)}
	p.cmd = cmd
	p.writer = bufio.NewWriter(stdin)
	p.out = out

	reader := bufio.NewReader(stdout)
	go func() {
		for {
			line, err := reader.ReadString('\n')
			if err != nil {
				out.err = err
				close(out.lines)
				return
			}
			line = strings.TrimSpace(line)
			logrus.Debugf("(%s)> %s", p.Name, line)
			out.lines <- line
		}
	}()
	return nil
}

func (p *Process) Suggest(ctx context.Context, v View) (Suggestion, error) {
	if len(v.Legal) == 0 {
		return Suggestion{}, ErrNoLegalMoves
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	if p.cmd == nil {
		if err := p.start(); err != nil {
			return Suggestion{}, fmt.Errorf("%w: start %s: %v", ErrSuggestion, p.Name, err)
		}
	}

	p.seq++
	data, err := json.Marshal(processRequest{
		ID:    p.seq,
		Color: v.Color,
		Board: v.Board[:],
		Moves: v.Legal,

		Weights: v.Weights,
	})
	if err != nil {
		return Suggestion{}, err
	}

	logrus.Debugf("(%s)< %s", p.Name, data)
	if _, err := p.writer.Write(append(data, '\n')); err != nil {
		return Suggestion{}, p.broken(err)
	}
	if err := p.writer.Flush(); err != nil {
		return Suggestion{}, p.broken(err)
	}

	for {
		select {
		case <-ctx.Done():
			return Suggestion{}, ctx.Err()

		case line, ok := <-p.out.lines:
			if !ok {
				return Suggestion{}, p.broken(p.out.err)
			}

			var rep processReply
			if err := json.Unmarshal([]byte(line), &rep); err != nil || rep.ID != p.seq {
				continue
			}
			if rep.Move == nil {
				return Suggestion{}, fmt.Errorf("%w: %s answered without a move", ErrSuggestion, p.Name)
			}
			return Suggestion{Move: *rep.Move, Rationale: rep.Rationale}, nil
		}
	}
}

// broken tears the process down so the next request starts a fresh one.
func (p *Process) broken(err error) error {
	p.stop()
	return fmt.Errorf("%w: %s: %v", ErrSuggestion, p.Name, err)
}

func (p *Process) stop() error {
	if p.cmd == nil {
		return nil
	}
	cmd := p.cmd
	p.cmd = nil
	_ = cmd.Process.Kill()
	// Drain so the reader goroutine can exit.
	go func(out *output) {
		for range out.lines {
		}
	}(p.out)
	_ = cmd.Wait()
	return nil
}

// Close stops the external program if it is running.
func (p *Process) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.stop()
}

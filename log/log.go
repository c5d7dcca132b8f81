// Copyright 2019 The Nuclear Core Authors
// Copyright 2014 The go-ethereum Authors
// This file is part of the Nuclear Core library.
//
// The Nuclear Core library is free software: you can redistribute it and/or modify
// it under the terms of the GNU Lesser General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// The Nuclear Core library is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE. See the
// GNU Lesser General Public License for more details.
//
// You should have received a copy of the GNU Lesser General Public License
// along with the Nuclear Core library. If not, see <http://www.gnu.org/licenses/>.

// Package log is a leveled, structured logger in the style of
// go-ethereum's historic `log` package, the one the teacher imports as
// `nuclear/core/nuclear/log` and drives with
// `log.Root().SetHandler(log.StdoutHandler)` and
// `log.Error(msg, "k", v, ...)`. Every package in this module logs
// through here rather than fmt.Println or the standard library's log.
package log

import (
	"fmt"
	"os"
	"sync"
	"time"

	"github.com/go-stack/stack"
	"github.com/mattn/go-colorable"
	"github.com/mattn/go-isatty"
)

// Lvl is a logging severity, ordered from most to least severe.
type Lvl int

const (
	LvlCrit Lvl = iota
	LvlError
	LvlWarn
	LvlInfo
	LvlDebug
	LvlTrace
)

func (l Lvl) String() string {
	switch l {
	case LvlCrit:
		return "CRIT"
	case LvlError:
		return "ERROR"
	case LvlWarn:
		return "WARN"
	case LvlInfo:
		return "INFO"
	case LvlDebug:
		return "DEBUG"
	default:
		return "TRACE"
	}
}

// Record is a single emitted log line: a level, a message, a call site,
// and the flattened key/value context.
type Record struct {
	Time    time.Time
	Lvl     Lvl
	Msg     string
	Ctx     []interface{}
	Call    stack.Call
}

// Handler processes a Record, e.g. by formatting and writing it somewhere.
type Handler interface {
	Log(r *Record) error
}

// HandlerFunc is a Handler backed by a plain function.
type HandlerFunc func(r *Record) error

func (f HandlerFunc) Log(r *Record) error { return f(r) }

// Logger emits Records carrying a fixed context prefix to a Handler.
type Logger interface {
	New(ctx ...interface{}) Logger
	SetHandler(h Handler)

	Trace(msg string, ctx ...interface{})
	Debug(msg string, ctx ...interface{})
	Info(msg string, ctx ...interface{})
	Warn(msg string, ctx ...interface{})
	Error(msg string, ctx ...interface{})
	Crit(msg string, ctx ...interface{})
}

type logger struct {
	ctx []interface{}
	h   *swapHandler
}

// swapHandler lets SetHandler be called after children of this logger
// already exist, exactly as go-ethereum's Root().SetHandler works.
type swapHandler struct {
	mu sync.RWMutex
	h  Handler
}

func (s *swapHandler) Log(r *Record) error {
	s.mu.RLock()
	h := s.h
	s.mu.RUnlock()
	if h == nil {
		return nil
	}
	return h.Log(r)
}

func (s *swapHandler) Swap(h Handler) {
	s.mu.Lock()
	s.h = h
	s.mu.Unlock()
}

func (l *logger) New(ctx ...interface{}) Logger {
	return &logger{ctx: append(append([]interface{}{}, l.ctx...), ctx...), h: l.h}
}

func (l *logger) SetHandler(h Handler) { l.h.Swap(h) }

func (l *logger) write(lvl Lvl, msg string, ctx []interface{}) {
	r := &Record{
		Time: time.Now(),
		Lvl:  lvl,
		Msg:  msg,
		Ctx:  append(append([]interface{}{}, l.ctx...), ctx...),
		Call: stack.Caller(2),
	}
	l.h.Log(r)
}

func (l *logger) Trace(msg string, ctx ...interface{}) { l.write(LvlTrace, msg, ctx) }
func (l *logger) Debug(msg string, ctx ...interface{}) { l.write(LvlDebug, msg, ctx) }
func (l *logger) Info(msg string, ctx ...interface{})  { l.write(LvlInfo, msg, ctx) }
func (l *logger) Warn(msg string, ctx ...interface{})  { l.write(LvlWarn, msg, ctx) }
func (l *logger) Error(msg string, ctx ...interface{}) { l.write(LvlError, msg, ctx) }
func (l *logger) Crit(msg string, ctx ...interface{}) {
	l.write(LvlCrit, msg, ctx)
	os.Exit(1)
}

var root = &logger{h: new(swapHandler)}

func init() {
	root.SetHandler(StdoutHandler)
}

// Root returns the root logger every package-level convenience function
// (Info, Error, ...) writes through.
func Root() Logger { return root }

// New creates a child of the root logger carrying the given context.
func New(ctx ...interface{}) Logger { return root.New(ctx...) }

func Trace(msg string, ctx ...interface{}) { root.write(LvlTrace, msg, ctx) }
func Debug(msg string, ctx ...interface{}) { root.write(LvlDebug, msg, ctx) }
func Info(msg string, ctx ...interface{})  { root.write(LvlInfo, msg, ctx) }
func Warn(msg string, ctx ...interface{})  { root.write(LvlWarn, msg, ctx) }
func Error(msg string, ctx ...interface{}) { root.write(LvlError, msg, ctx) }
func Crit(msg string, ctx ...interface{}) {
	root.write(LvlCrit, msg, ctx)
	os.Exit(1)
}

// terminalFormat renders a Record the way a developer's terminal sees
// it: level, message, then "k=v" pairs, colorized when useColor is set.
func terminalFormat(r *Record, useColor bool) []byte {
	var color = 0
	if useColor {
		switch r.Lvl {
		case LvlCrit:
			color = 35
		case LvlError:
			color = 31
		case LvlWarn:
			color = 33
		case LvlInfo:
			color = 32
		case LvlDebug, LvlTrace:
			color = 36
		}
	}
	b := new(fmtBuffer)
	if color != 0 {
		fmt.Fprintf(b, "\x1b[%dm%-5s\x1b[0m[%s] %s", color, r.Lvl.String(), r.Time.Format("01-02|15:04:05.000"), r.Msg)
	} else {
		fmt.Fprintf(b, "%-5s[%s] %s", r.Lvl.String(), r.Time.Format("01-02|15:04:05.000"), r.Msg)
	}
	for i := 0; i < len(r.Ctx)-1; i += 2 {
		fmt.Fprintf(b, " %v=%v", r.Ctx[i], r.Ctx[i+1])
	}
	b.WriteByte('\n')
	return b.Bytes()
}

type fmtBuffer struct{ buf []byte }

func (b *fmtBuffer) Write(p []byte) (int, error) { b.buf = append(b.buf, p...); return len(p), nil }
func (b *fmtBuffer) WriteByte(c byte) error       { b.buf = append(b.buf, c); return nil }
func (b *fmtBuffer) Bytes() []byte                { return b.buf }

// StreamHandler writes colorized or plain terminal-formatted records to
// w, auto-detecting color support the way go-ethereum's own
// StreamHandler does via go-isatty.
func StreamHandler(w *os.File) Handler {
	useColor := isatty.IsTerminal(w.Fd())
	cw := colorable.NewColorable(w)
	return HandlerFunc(func(r *Record) error {
		_, err := cw.Write(terminalFormat(r, useColor))
		return err
	})
}

// StdoutHandler is the default root handler: colorized terminal output
// to stdout when attached to a tty, plain otherwise.
var StdoutHandler = StreamHandler(os.Stdout)

// LvlFilterHandler wraps h so records above maxLvl are dropped.
func LvlFilterHandler(maxLvl Lvl, h Handler) Handler {
	return HandlerFunc(func(r *Record) error {
		if r.Lvl > maxLvl {
			return nil
		}
		return h.Log(r)
	})
}

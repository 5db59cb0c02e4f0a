// Package scenario provides a line-oriented stimulus language for driving
// a μBridge machine: feeding inbound bytes, stalling the link, blocking
// the transmitter, and checking the transmitted bytes.
//
// Scripts support '#' comments, ".equ NAME VALUE" equates, and $(...)
// compile-time starlark expression evaluation over the machine defines.
package scenario

import (
	"bufio"
	"fmt"
	"io"
	"iter"
	"log"
	"maps"
	"regexp"
	"slices"
	"strconv"
	"strings"

	"go.starlark.net/starlark"
	"go.starlark.net/syntax"

	"github.com/ezrec/ubridge/emulator"
)

// Verb is a scenario step type.
type Verb int

const (
	VERB_FEED    = Verb(0) // feed
	VERB_TICK    = Verb(1) // tick
	VERB_HOLD    = Verb(2) // hold
	VERB_RELEASE = Verb(3) // release
	VERB_RUN     = Verb(4) // run
	VERB_EXPECT  = Verb(5) // expect
	VERB_RESET   = Verb(6) // reset
)

var verbMap = map[string]Verb{
	"feed":    VERB_FEED,
	"tick":    VERB_TICK,
	"hold":    VERB_HOLD,
	"release": VERB_RELEASE,
	"run":     VERB_RUN,
	"expect":  VERB_EXPECT,
	"reset":   VERB_RESET,
}

// Step is a single parsed scenario action.
type Step struct {
	LineNo int
	Verb   Verb
	Args   []uint32
}

// Scenario is a parsed stimulus script.
type Scenario struct {
	Verbose bool   // If set, verbosely logs scenario actions.
	Steps   []Step // Parsed steps, in script order.

	Equate    map[string]string // Map of equates.
	predefine map[string]string // Predefines.

	expectAt int // Cursor into the transmit record.
}

// Predefine defines a new equate or redefines an existing equate.
func (sc *Scenario) Predefine(equ string, value string) {
	if sc.predefine == nil {
		sc.predefine = map[string]string{equ: value}
	} else {
		sc.predefine[equ] = value
	}
}

// PredefineAll loads an iterator of defines, such as Machine.Defines.
func (sc *Scenario) PredefineAll(defines iter.Seq2[string, string]) {
	for key, value := range defines {
		sc.Predefine(key, value)
	}
}

// valueOf returns the value of a simple word.
func (sc *Scenario) valueOf(word string) (value uint32, err error) {
	value64, err := strconv.ParseUint(word, 0, 32)
	if err != nil {
		err = ErrParseNumber(word)
		return
	}
	value = uint32(value64)
	return
}

// parenEval does parse-time $(...) evaluations.
func (sc *Scenario) parenEval(expr string) (value uint32, err error) {
	thread := starlark.Thread{}
	opts := syntax.FileOptions{}
	pred := starlark.StringDict{}
	for key, str := range sc.Equate {
		var value32 uint32
		value32, err = sc.valueOf(str)
		if err != nil {
			// Ignore non-integer equates.
			continue
		}
		pred[key] = starlark.MakeInt(int(value32))
	}
	prog := "rc=" + expr + "\n"
	dict, err := starlark.ExecFileOptions(&opts, &thread, "expr", prog, pred)
	if err != nil {
		return
	}
	st_rc, ok := dict["rc"]
	if !ok {
		err = ErrParseExpression(expr)
		return
	}
	st_int, ok := st_rc.(starlark.Int)
	if !ok {
		err = ErrParseExpression(expr)
		return
	}
	st_int64, ok := st_int.Int64()
	if !ok {
		err = ErrParseExpression(expr)
		return
	}
	value = uint32(st_int64)
	return
}

// parseLine parses a single line into a step, or into nothing for
// comments, blank lines, and equates.
func (sc *Scenario) parseLine(line string, lineno int) (err error) {
	// Strip comments.
	if n := strings.IndexByte(line, '#'); n >= 0 {
		line = line[:n]
	}

	// Do $() evaluations
	re := regexp.MustCompile(`\$\([^\$]*\)`)
	line = re.ReplaceAllStringFunc(line, func(str string) string {
		value, _err := sc.parenEval(str[2 : len(str)-1])
		if _err != nil {
			err = _err
		}
		return fmt.Sprintf("%#v", value)
	})
	if err != nil {
		return
	}

	words := slices.DeleteFunc(strings.Fields(line), func(a string) bool { return len(a) == 0 })

	if len(words) == 0 {
		return
	}

	// .equ CONST VALUE
	if words[0] == ".equ" {
		if len(words) != 3 {
			err = ErrEquateSyntax
			return
		}
		_, ok := sc.Equate[words[1]]
		if ok {
			err = ErrEquateDuplicate
			return
		}
		sc.Equate[words[1]] = words[2]
		return
	}

	// Equate substitution.
	for n, word := range words {
		equate, ok := sc.Equate[word]
		if ok {
			words[n] = equate
		}
	}

	verb, ok := verbMap[words[0]]
	if !ok {
		err = ErrVerbUnknown
		return
	}

	var args []uint32
	for _, word := range words[1:] {
		var value uint32
		value, err = sc.valueOf(word)
		if err != nil {
			return
		}
		args = append(args, value)
	}

	switch verb {
	case VERB_FEED, VERB_EXPECT:
		if len(args) == 0 {
			err = ErrArgMissing
			return
		}
	case VERB_TICK, VERB_RUN:
		if len(args) > 1 {
			err = ErrArgExtra
			return
		}
	case VERB_HOLD, VERB_RELEASE, VERB_RESET:
		if len(args) != 0 {
			err = ErrArgExtra
			return
		}
	}

	sc.Steps = append(sc.Steps, Step{LineNo: lineno, Verb: verb, Args: args})

	return
}

// Parse reads a stimulus script. Parsed steps replace any prior ones.
func (sc *Scenario) Parse(reader io.Reader) (err error) {
	sc.Steps = nil
	sc.Equate = maps.Clone(sc.predefine)
	if sc.Equate == nil {
		sc.Equate = map[string]string{}
	}

	scanner := bufio.NewScanner(reader)
	lineno := 0
	for scanner.Scan() {
		lineno++
		line := scanner.Text()
		err = sc.parseLine(line, lineno)
		if err != nil {
			err = ErrSyntax{LineNo: lineno, Line: line, Err: err}
			return
		}
	}

	err = scanner.Err()

	return
}

// play executes a single step against the machine.
func (sc *Scenario) play(m *emulator.Machine, step Step) (err error) {
	if sc.Verbose {
		log.Printf("scenario: line %d: %v %v", step.LineNo, step.Verb, step.Args)
	}

	switch step.Verb {
	case VERB_FEED:
		fifo := m.Fifo()
		if fifo == nil {
			err = ErrNoFifo
			return
		}
		for _, value := range step.Args {
			err = fifo.Push(value)
			if err != nil {
				return
			}
		}
	case VERB_TICK:
		count := 1
		if len(step.Args) == 1 {
			count = int(step.Args[0])
		}
		for range count {
			err = m.Tick()
			if err != nil {
				return
			}
		}
	case VERB_HOLD, VERB_RELEASE:
		tx := m.Transmitter()
		if tx == nil {
			err = ErrNoTransmitter
			return
		}
		tx.Hold = step.Verb == VERB_HOLD
	case VERB_RUN:
		limit := 0
		if len(step.Args) == 1 {
			limit = int(step.Args[0])
		}
		err = m.Run(limit)
	case VERB_EXPECT:
		tx := m.Transmitter()
		if tx == nil {
			err = ErrNoTransmitter
			return
		}
		for _, want := range step.Args {
			index := sc.expectAt
			sc.expectAt++
			if index >= len(tx.Sent) {
				err = ErrExpect{Index: index, Want: want}
				return
			}
			if tx.Sent[index] != want {
				err = ErrExpect{Index: index, Got: tx.Sent[index], Want: want, Sent: true}
				return
			}
		}
	case VERB_RESET:
		m.Reset()
		sc.expectAt = 0
	}

	return
}

// Play executes the parsed steps against the machine, in order.
func (sc *Scenario) Play(m *emulator.Machine) (err error) {
	sc.expectAt = 0

	for _, step := range sc.Steps {
		err = sc.play(m, step)
		if err != nil {
			err = ErrStep{LineNo: step.LineNo, Err: err}
			return
		}
	}

	return
}

var _verb_names = map[Verb]string{
	VERB_FEED:    "feed",
	VERB_TICK:    "tick",
	VERB_HOLD:    "hold",
	VERB_RELEASE: "release",
	VERB_RUN:     "run",
	VERB_EXPECT:  "expect",
	VERB_RESET:   "reset",
}

// String returns the verb name.
func (vb Verb) String() (text string) {
	text, ok := _verb_names[vb]
	if !ok {
		text = fmt.Sprintf("verb(%d)", int(vb))
	}
	return
}

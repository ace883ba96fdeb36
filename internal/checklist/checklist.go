// Package checklist holds an ordered list of markdown checkbox tasks and the
// operations that edit it. Every index the package exposes is 1-based.
package checklist

import (
	"fmt"
	"regexp"
	"strings"
)

// Task is one checklist line.
type Task struct {
	Done bool   `json:"done" yaml:"done"`
	Text string `json:"text" yaml:"text"`
}

// Line renders the task in its document form.
func (t Task) Line() string {
	if t.Done {
		return "- [x] " + t.Text
	}
	return "- [ ] " + t.Text
}

// Checklist is an ordered sequence of tasks. It is not safe for concurrent use.
type Checklist struct {
	tasks []Task
}

// ParseError reports a document line that is not a checkbox line.
type ParseError struct {
	Line int // 1-based line number
	Text string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("line %d: not a checklist item: %q", e.Line, e.Text)
}

var lineRe = regexp.MustCompile(`^- \[([ xX])\](?: (.*))?$`)

// New returns an empty checklist.
func New() *Checklist {
	return &Checklist{}
}

// Parse builds a checklist from a newline-delimited document. Blank lines are
// skipped; any other line that does not match the checkbox grammar fails the
// whole parse.
func Parse(text string) (*Checklist, error) {
	c := New()
	if text == "" {
		return c, nil
	}
	for i, raw := range strings.Split(text, "\n") {
		line := strings.TrimSuffix(raw, "\r")
		if strings.TrimSpace(line) == "" {
			continue
		}
		m := lineRe.FindStringSubmatch(line)
		if m == nil {
			return nil, &ParseError{Line: i + 1, Text: line}
		}
		c.tasks = append(c.tasks, Task{Done: m[1] != " ", Text: m[2]})
	}
	return c, nil
}

// Serialize renders the checklist as newline-joined task lines with no
// trailing newline.
func (c *Checklist) Serialize() string {
	lines := make([]string, len(c.tasks))
	for i, t := range c.tasks {
		lines[i] = t.Line()
	}
	return strings.Join(lines, "\n")
}

func (c *Checklist) String() string {
	return c.Serialize()
}

// Len returns the number of tasks.
func (c *Checklist) Len() int {
	return len(c.tasks)
}

// Tasks returns a copy of the tasks in order.
func (c *Checklist) Tasks() []Task {
	out := make([]Task, len(c.tasks))
	copy(out, c.tasks)
	return out
}

// Task returns the task at the clamped 1-based index. ok is false only when
// the checklist is empty.
func (c *Checklist) Task(index int) (Task, bool) {
	if len(c.tasks) == 0 {
		return Task{}, false
	}
	return c.tasks[clamp(index, len(c.tasks))-1], true
}

// Add appends a pending task and returns its index.
func (c *Checklist) Add(text string) int {
	c.tasks = append(c.tasks, Task{Text: text})
	return len(c.tasks)
}

// AddAt inserts a pending task at index, shifting later tasks down. An index
// past the end appends instead of padding; an index below 1 inserts first.
// It returns the index the task landed at.
func (c *Checklist) AddAt(text string, index int) int {
	if index > len(c.tasks) {
		return c.Add(text)
	}
	if index < 1 {
		index = 1
	}
	c.tasks = append(c.tasks, Task{})
	copy(c.tasks[index:], c.tasks[index-1:])
	c.tasks[index-1] = Task{Text: text}
	return index
}

// Do marks every selected task done.
func (c *Checklist) Do(sel Selection) *Checklist {
	return c.setDone(sel, true)
}

// Undo marks every selected task pending.
func (c *Checklist) Undo(sel Selection) *Checklist {
	return c.setDone(sel, false)
}

func (c *Checklist) setDone(sel Selection, done bool) *Checklist {
	for _, idx := range sel.Resolve(len(c.tasks)) {
		c.tasks[idx-1].Done = done
	}
	return c
}

// Remove deletes every selected task. Indices are resolved once against the
// current length so earlier deletions never shift later targets.
func (c *Checklist) Remove(sel Selection) *Checklist {
	targets := sel.Resolve(len(c.tasks))
	if len(targets) == 0 {
		return c
	}
	drop := make(map[int]struct{}, len(targets))
	for _, idx := range targets {
		drop[idx] = struct{}{}
	}
	kept := c.tasks[:0]
	for i, t := range c.tasks {
		if _, ok := drop[i+1]; ok {
			continue
		}
		kept = append(kept, t)
	}
	clear(c.tasks[len(kept):])
	c.tasks = kept
	return c
}

// Move relocates the task at from to position to. Both indices are clamped
// to the list bounds first.
func (c *Checklist) Move(from, to int) *Checklist {
	n := len(c.tasks)
	if n == 0 {
		return c
	}
	from, to = clamp(from, n)-1, clamp(to, n)-1
	if from == to {
		return c
	}
	t := c.tasks[from]
	if from < to {
		copy(c.tasks[from:to], c.tasks[from+1:to+1])
	} else {
		copy(c.tasks[to+1:from+1], c.tasks[to:from])
	}
	c.tasks[to] = t
	return c
}

func clamp(idx, n int) int {
	if idx < 1 {
		return 1
	}
	if idx > n {
		return n
	}
	return idx
}

package query

import (
	"context"
	"fmt"
	"regexp"
	"strings"

	"github.com/Holastor/AION-2-Localization/pkg/interchange"
)

// Engine evaluates field queries by scanning entries in order
type Engine struct {
	extractor FieldExtractor
}

var _ Executor = (*Engine)(nil)

// NewEngine creates a query engine. A nil extractor reads the standard fields.
func NewEngine(extractor FieldExtractor) *Engine {
	if extractor == nil {
		extractor = EntryFieldExtractor{}
	}
	return &Engine{extractor: extractor}
}

// condition is a compiled FieldQuery
type condition struct {
	field string
	match func(string) bool
}

// Execute returns the entries matching every query. With no queries all
// entries match.
func (e *Engine) Execute(ctx context.Context, entries []interchange.Entry, queries ...FieldQuery) (Iterator, error) {
	conds := make([]condition, 0, len(queries))
	for _, q := range queries {
		if err := q.Validate(); err != nil {
			return nil, fmt.Errorf("invalid query: %w", err)
		}
		// probe the field once so a typo fails up front
		if _, err := e.extractor.Extract(interchange.Entry{}, q.Field); err != nil {
			return nil, fmt.Errorf("invalid query: %w", err)
		}
		m, err := compile(q)
		if err != nil {
			return nil, err
		}
		conds = append(conds, condition{field: q.Field, match: m})
	}

	return &scanIterator{
		ctx:       ctx,
		entries:   entries,
		conds:     conds,
		extractor: e.extractor,
		pos:       -1,
	}, nil
}

func compile(q FieldQuery) (func(string) bool, error) {
	v := q.Value
	switch q.Operator {
	case OpEqual:
		return func(s string) bool { return s == v }, nil
	case OpNotEqual:
		return func(s string) bool { return s != v }, nil
	case OpPrefix:
		return func(s string) bool { return strings.HasPrefix(s, v) }, nil
	case OpSuffix:
		return func(s string) bool { return strings.HasSuffix(s, v) }, nil
	case OpContains:
		return func(s string) bool { return strings.Contains(s, v) }, nil
	case OpMatch:
		re, err := regexp.Compile(v)
		if err != nil {
			return nil, fmt.Errorf("invalid pattern: %w", err)
		}
		return re.MatchString, nil
	default:
		return nil, fmt.Errorf("unsupported operator: %s", q.Operator)
	}
}

// scanIterator walks entries lazily and yields those matching all conditions
type scanIterator struct {
	ctx       context.Context
	entries   []interchange.Entry
	conds     []condition
	extractor FieldExtractor
	pos       int
	err       error
	closed    bool
}

func (it *scanIterator) Next() bool {
	if it.closed || it.err != nil {
		return false
	}
	for it.pos+1 < len(it.entries) {
		it.pos++
		if err := it.ctx.Err(); err != nil {
			it.err = err
			return false
		}
		ok, err := it.matches(it.entries[it.pos])
		if err != nil {
			it.err = err
			return false
		}
		if ok {
			return true
		}
	}
	it.pos = len(it.entries)
	return false
}

func (it *scanIterator) matches(e interchange.Entry) (bool, error) {
	for _, c := range it.conds {
		v, err := it.extractor.Extract(e, c.field)
		if err != nil {
			return false, err
		}
		if !c.match(v) {
			return false, nil
		}
	}
	return true, nil
}

func (it *scanIterator) Result() Result {
	if it.pos >= 0 && it.pos < len(it.entries) {
		return Result{Index: it.pos, Entry: it.entries[it.pos]}
	}
	return Result{}
}

func (it *scanIterator) Err() error {
	return it.err
}

func (it *scanIterator) Close() error {
	it.closed = true
	return nil
}

// Collect drains it into a slice, stopping after limit results when limit > 0
func Collect(it Iterator, limit int) ([]Result, error) {
	defer it.Close()

	var results []Result
	for it.Next() {
		results = append(results, it.Result())
		if limit > 0 && len(results) >= limit {
			break
		}
	}
	if err := it.Err(); err != nil {
		return nil, err
	}
	return results, nil
}

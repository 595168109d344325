// Package expr implements the date-math expression language: lexer, parser,
// AST, and evaluator. Expressions combine an optional anchor date with
// signed calendar duration terms, e.g. "dec 30, 2021 + 2 weeks + 1 day".
package expr

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/marcus/datemath/internal/calendar"
)

// Parser parses tokenized date-math expressions into an AST.
type Parser struct {
	input  string
	tokens []Token
	pos    int
}

// Parse parses an expression string. The input must contain an anchor date
// or at least one duration term; blank input fails with KindEmptyInput.
func Parse(input string) (Expr, error) {
	trimmed := strings.TrimSpace(input)
	if trimmed == "" {
		return nil, &Error{Kind: KindEmptyInput, Message: "expression is empty"}
	}

	tokens, err := NewLexer(trimmed).Tokenize()
	if err != nil {
		return nil, err
	}

	p := &Parser{input: trimmed, tokens: tokens}
	e, err := p.parseExpression()
	if err != nil {
		return nil, err
	}
	if !p.atEnd() {
		tok := p.current()
		return nil, &Error{
			Kind:     KindTrailingGarbage,
			Message:  "unconsumed input after expression",
			Fragment: trimmed[tok.Pos:],
			Pos:      tok.Pos,
		}
	}
	return e, nil
}

func (p *Parser) parseExpression() (Expr, error) {
	anchor, found, err := p.tryAnchor()
	if err != nil {
		return nil, err
	}
	if found {
		// "date - date" is a day-difference expression; the minus reads
		// as a separator only when an anchor (not a count) follows.
		if p.check(TokenMinus) && p.separatorSpaced() && p.anchorStarts(p.peekAt(p.pos+1)) {
			p.advance()
			to, ok, err := p.tryAnchor()
			if err != nil {
				return nil, err
			}
			if !ok {
				tok := p.current()
				return nil, &Error{
					Kind:     KindMalformedDate,
					Message:  "expected a date after \"-\"",
					Fragment: p.fragmentFrom(tok),
					Pos:      tok.Pos,
				}
			}
			return &Diff{From: anchor, To: to}, nil
		}

		terms, err := p.parseOperatorChain(nil)
		if err != nil {
			return nil, err
		}
		return &Offset{Anchor: &anchor, Terms: terms}, nil
	}

	first, err := p.parseLeadingTerm()
	if err != nil {
		return nil, err
	}

	// Natural phrasing: "2 weeks and 1 day ago", "3 days from jan 15, 2021".
	if p.check(TokenComma) || p.checkIdent("and") || p.relationNext() {
		return p.parseRelative(first)
	}

	terms, err := p.parseOperatorChain([]Term{first})
	if err != nil {
		return nil, err
	}
	return &Offset{Terms: terms}, nil
}

// parseLeadingTerm parses the first term of an anchorless expression. A
// sign glued to the count ("-3 days") is accepted; a detached sign is not.
func (p *Parser) parseLeadingTerm() (Term, error) {
	negative := false
	if p.check(TokenPlus) || p.check(TokenMinus) {
		sign := p.current()
		next := p.peekAt(p.pos + 1)
		if next.Type != TokenNumber || next.Spaced {
			return Term{}, &Error{
				Kind:     KindMalformedTerm,
				Message:  "expected a count directly after leading sign",
				Fragment: p.fragmentFrom(sign),
				Pos:      sign.Pos,
			}
		}
		negative = sign.Type == TokenMinus
		p.advance()
	}

	term, err := p.parseTerm()
	if err != nil {
		return Term{}, err
	}
	if negative {
		term.Count = -term.Count
	}
	return term, nil
}

// parseTerm parses "<integer> <unit>".
func (p *Parser) parseTerm() (Term, error) {
	tok := p.current()
	if tok.Type != TokenNumber {
		return Term{}, &Error{
			Kind:     KindMalformedTerm,
			Message:  fmt.Sprintf("expected a count, got %s", tok),
			Fragment: p.fragmentFrom(tok),
			Pos:      tok.Pos,
		}
	}
	count, err := strconv.Atoi(tok.Value)
	if err != nil {
		return Term{}, &Error{
			Kind:     KindMalformedTerm,
			Message:  fmt.Sprintf("count %q is not a valid integer", tok.Value),
			Fragment: tok.Value,
			Pos:      tok.Pos,
		}
	}
	p.advance()

	unitTok := p.current()
	if unitTok.Type != TokenIdent {
		return Term{}, &Error{
			Kind:     KindMalformedTerm,
			Message:  fmt.Sprintf("expected a unit after %q, got %s", tok.Value, unitTok),
			Fragment: p.fragmentFrom(unitTok),
			Pos:      unitTok.Pos,
		}
	}
	unit, ok := LookupUnit(unitTok.Value)
	if !ok {
		return Term{}, &Error{
			Kind:     KindUnknownUnit,
			Message:  fmt.Sprintf("%q is not a unit (use day, week, month, or year)", unitTok.Value),
			Fragment: unitTok.Value,
			Pos:      unitTok.Pos,
		}
	}
	p.advance()

	return Term{Count: count, Unit: unit}, nil
}

// parseOperatorChain parses zero or more "+ term" / "- term" continuations.
// Operators separate terms only with whitespace on both sides; a glued
// operator ends the chain and surfaces as trailing garbage in Parse.
func (p *Parser) parseOperatorChain(terms []Term) ([]Term, error) {
	for p.check(TokenPlus) || p.check(TokenMinus) {
		if !p.separatorSpaced() {
			break
		}
		op := p.advance()
		term, err := p.parseTerm()
		if err != nil {
			return nil, err
		}
		if op.Type == TokenMinus {
			term.Count = -term.Count
		}
		terms = append(terms, term)
	}
	return terms, nil
}

// parseRelative parses natural phrasing after the first term: a comma/"and"
// separated term list followed by "ago", "from", "after", or "before".
func (p *Parser) parseRelative(first Term) (Expr, error) {
	terms := []Term{first}
	for {
		if p.check(TokenComma) {
			p.advance()
			if p.checkIdent("and") {
				p.advance()
			}
		} else if p.checkIdent("and") {
			p.advance()
		} else {
			break
		}
		term, err := p.parseTerm()
		if err != nil {
			return nil, err
		}
		terms = append(terms, term)
	}

	tok := p.current()
	if tok.Type != TokenIdent {
		return nil, &Error{
			Kind:     KindMalformedTerm,
			Message:  "expected \"ago\", \"from\", \"after\", or \"before\" after durations",
			Fragment: p.fragmentFrom(tok),
			Pos:      tok.Pos,
		}
	}

	var anchor Anchor
	negate := false
	switch strings.ToLower(tok.Value) {
	case "ago":
		p.advance()
		anchor = Anchor{Kind: AnchorToday}
		negate = true
	case "from", "after":
		p.advance()
		a, err := p.requireAnchor(tok.Value)
		if err != nil {
			return nil, err
		}
		anchor = a
	case "before":
		p.advance()
		a, err := p.requireAnchor(tok.Value)
		if err != nil {
			return nil, err
		}
		anchor = a
		negate = true
	default:
		return nil, &Error{
			Kind:     KindMalformedTerm,
			Message:  fmt.Sprintf("expected \"ago\", \"from\", \"after\", or \"before\", got %q", tok.Value),
			Fragment: p.fragmentFrom(tok),
			Pos:      tok.Pos,
		}
	}

	if negate {
		for i := range terms {
			terms[i].Count = -terms[i].Count
		}
	}
	return &Offset{Anchor: &anchor, Terms: terms}, nil
}

func (p *Parser) requireAnchor(after string) (Anchor, error) {
	anchor, ok, err := p.tryAnchor()
	if err != nil {
		return Anchor{}, err
	}
	if !ok {
		tok := p.current()
		return Anchor{}, &Error{
			Kind:     KindMalformedDate,
			Message:  fmt.Sprintf("expected a date after %q", after),
			Fragment: p.fragmentFrom(tok),
			Pos:      tok.Pos,
		}
	}
	return anchor, nil
}

// tryAnchor parses an anchor date if one starts at the current position.
// Returns found=false without consuming input when the position does not
// start a date; a date-looking prefix that fails validation is an error.
func (p *Parser) tryAnchor() (Anchor, bool, error) {
	tok := p.current()
	switch tok.Type {
	case TokenDate:
		date, err := parseDateToken(tok)
		if err != nil {
			return Anchor{}, false, err
		}
		p.advance()
		return Anchor{Kind: AnchorDate, Date: date}, true, nil
	case TokenIdent:
		switch strings.ToLower(tok.Value) {
		case "today", "now":
			p.advance()
			return Anchor{Kind: AnchorToday}, true, nil
		case "yesterday":
			p.advance()
			return Anchor{Kind: AnchorYesterday}, true, nil
		case "tomorrow":
			p.advance()
			return Anchor{Kind: AnchorTomorrow}, true, nil
		}
		if month, ok := LookupMonth(tok.Value); ok {
			anchor, err := p.parseMonthDate(month)
			if err != nil {
				return Anchor{}, false, err
			}
			return anchor, true, nil
		}
	}
	return Anchor{}, false, nil
}

// parseMonthDate parses the remainder of "month_name day [, year]" after
// the month name has been recognized. Once a month name is seen the date
// form is committed: failures are malformed dates, not terms.
func (p *Parser) parseMonthDate(month time.Month) (Anchor, error) {
	nameTok := p.advance()

	dayTok := p.current()
	if dayTok.Type != TokenNumber {
		return Anchor{}, &Error{
			Kind:     KindMalformedDate,
			Message:  fmt.Sprintf("expected a day after %q", nameTok.Value),
			Fragment: p.fragmentFrom(nameTok),
			Pos:      nameTok.Pos,
		}
	}
	day, err := strconv.Atoi(dayTok.Value)
	if err != nil || day < 1 || day > 31 {
		return Anchor{}, &Error{
			Kind:     KindMalformedDate,
			Message:  fmt.Sprintf("day %q out of range 1-31", dayTok.Value),
			Fragment: dayTok.Value,
			Pos:      dayTok.Pos,
		}
	}
	p.advance()

	// Year is optional; without it the anchor resolves against the
	// injected today's year at evaluation time.
	if !p.check(TokenComma) {
		return Anchor{Kind: AnchorMonthDay, Month: month, Day: day}, nil
	}
	p.advance()

	yearTok := p.current()
	if yearTok.Type != TokenNumber || len(yearTok.Value) < 4 {
		return Anchor{}, &Error{
			Kind:     KindMalformedDate,
			Message:  "expected a 4-digit year after \",\"",
			Fragment: p.fragmentFrom(yearTok),
			Pos:      yearTok.Pos,
		}
	}
	year, err := strconv.Atoi(yearTok.Value)
	if err != nil {
		return Anchor{}, &Error{
			Kind:     KindMalformedDate,
			Message:  fmt.Sprintf("year %q is not a valid integer", yearTok.Value),
			Fragment: yearTok.Value,
			Pos:      yearTok.Pos,
		}
	}
	p.advance()

	date, err := calendar.New(year, month, day)
	if err != nil {
		return Anchor{}, &Error{
			Kind:     KindMalformedDate,
			Message:  err.Error(),
			Fragment: p.input[nameTok.Pos : yearTok.Pos+len(yearTok.Value)],
			Pos:      nameTok.Pos,
		}
	}
	return Anchor{Kind: AnchorDate, Date: date}, nil
}

// parseDateToken converts a DATE token (2021-12-30 or 12/30/2021) into a
// validated calendar date.
func parseDateToken(tok Token) (calendar.Date, error) {
	var year, month, day int
	var err error
	if strings.Contains(tok.Value, "-") {
		parts := strings.Split(tok.Value, "-")
		year, month, day, err = atoi3(parts[0], parts[1], parts[2])
	} else {
		parts := strings.Split(tok.Value, "/")
		month, day, year, err = atoi3(parts[0], parts[1], parts[2])
	}
	if err != nil {
		return calendar.Date{}, &Error{
			Kind:     KindMalformedDate,
			Message:  err.Error(),
			Fragment: tok.Value,
			Pos:      tok.Pos,
		}
	}
	date, err := calendar.New(year, time.Month(month), day)
	if err != nil {
		return calendar.Date{}, &Error{
			Kind:     KindMalformedDate,
			Message:  err.Error(),
			Fragment: tok.Value,
			Pos:      tok.Pos,
		}
	}
	return date, nil
}

func atoi3(a, b, c string) (int, int, int, error) {
	x, err := strconv.Atoi(a)
	if err != nil {
		return 0, 0, 0, err
	}
	y, err := strconv.Atoi(b)
	if err != nil {
		return 0, 0, 0, err
	}
	z, err := strconv.Atoi(c)
	if err != nil {
		return 0, 0, 0, err
	}
	return x, y, z, nil
}

// separatorSpaced reports whether the operator at the current position has
// whitespace on both sides, as required for it to separate terms.
func (p *Parser) separatorSpaced() bool {
	return p.current().Spaced && p.peekAt(p.pos+1).Spaced
}

// anchorStarts reports whether tok can begin an anchor date.
func (p *Parser) anchorStarts(tok Token) bool {
	switch tok.Type {
	case TokenDate:
		return true
	case TokenIdent:
		switch strings.ToLower(tok.Value) {
		case "today", "now", "yesterday", "tomorrow":
			return true
		}
		_, ok := LookupMonth(tok.Value)
		return ok
	}
	return false
}

func (p *Parser) relationNext() bool {
	if !p.check(TokenIdent) {
		return false
	}
	switch strings.ToLower(p.current().Value) {
	case "ago", "from", "after", "before":
		return true
	}
	return false
}

func (p *Parser) current() Token {
	return p.peekAt(p.pos)
}

func (p *Parser) peekAt(i int) Token {
	if i < len(p.tokens) {
		return p.tokens[i]
	}
	return p.tokens[len(p.tokens)-1] // EOF
}

func (p *Parser) advance() Token {
	tok := p.current()
	if p.pos < len(p.tokens)-1 {
		p.pos++
	}
	return tok
}

func (p *Parser) check(t TokenType) bool {
	return p.current().Type == t
}

func (p *Parser) checkIdent(word string) bool {
	return p.check(TokenIdent) && strings.EqualFold(p.current().Value, word)
}

func (p *Parser) atEnd() bool {
	return p.check(TokenEOF)
}

// fragmentFrom returns the unconsumed input starting at tok, for error
// reporting. At EOF it falls back to the token's own rendering.
func (p *Parser) fragmentFrom(tok Token) string {
	if tok.Type == TokenEOF {
		return ""
	}
	return p.input[tok.Pos:]
}

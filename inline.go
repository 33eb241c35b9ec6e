// Copyright 2023 Ross Light
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//		 https://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.
//
// SPDX-License-Identifier: Apache-2.0

package mmark

import (
	"strings"
	"unicode/utf8"
)

// charClass is the "last-character class" of the grammar: the
// classification of the most recently consumed inline character, used to
// evaluate delimiter flanking.
type charClass int

const (
	classSpace charClass = iota
	classLeftFlank
	classRightFlank
	classOther
)

// inlineConfig is the inline parser's configuration. All
// fields default to true at the document root; nested contexts disable
// one field at a time (link labels disable AllowLinks, image descriptions
// disable AllowImages, emphasis-class frames disable AllowEmpty).
type inlineConfig struct {
	allowEmpty  bool
	allowLinks  bool
	allowImages bool
}

func defaultInlineConfig() inlineConfig {
	return inlineConfig{allowEmpty: true, allowLinks: true, allowImages: true}
}

// inlineParser tokenizes a single Isp payload into a tree of [Inline]
// nodes. Its state (text position and last-character class) is local to
// one payload: each Isp gets a freshly constructed inlineParser, with
// the last-character class reset to SpaceChar. Position tracking is
// delegated to pt, a tracker seeded from the payload's start position.
type inlineParser struct {
	text      string
	i         int
	pt        tracker
	cfg       inlineConfig
	lastClass charClass
}

type inlineMark struct {
	i         int
	pos       Position
	lastClass charClass
}

func (p *inlineParser) mark() inlineMark {
	return inlineMark{i: p.i, pos: p.pt.at(), lastClass: p.lastClass}
}

func (p *inlineParser) reset(m inlineMark) {
	p.i, p.lastClass = m.i, m.lastClass
	p.pt.pos = m.pos
}

func (p *inlineParser) eof() bool {
	return p.i >= len(p.text)
}

func (p *inlineParser) peekByte() byte {
	if p.eof() {
		return 0
	}
	return p.text[p.i]
}

func (p *inlineParser) peekRune() (rune, int) {
	if p.eof() {
		return 0, 0
	}
	return utf8.DecodeRuneInString(p.text[p.i:])
}

// advanceBytes consumes n bytes, updating the position tracker. A
// payload's text is always the product of joining original source lines
// with '\n' (see assembleParagraph/assembleCodeBlock), so '\n' is the
// only line-break byte that ever appears here; tracker.advance's "\r"
// handling is simply never exercised on this path.
func (p *inlineParser) advanceBytes(n int) {
	p.pt.advance(p.text[p.i : p.i+n])
	p.i += n
}

// parseInline runs the inline parser over isp under cfg
func parseInline(isp *Isp, cfg inlineConfig) ([]*Inline, *ParseError) {
	if isp.Raw == "" {
		if cfg.allowEmpty {
			return []*Inline{{kind: PlainKind, pos: isp.Pos}}, nil
		}
		return nil, eofErr(isp.Pos, "inline content")
	}
	p := &inlineParser{text: isp.Raw, pt: tracker{pos: isp.Pos}, cfg: cfg, lastClass: classSpace}
	var out []*Inline
	for !p.eof() {
		in, err := p.nextToken()
		if err != nil {
			return nil, err
		}
		out = append(out, in)
	}
	return out, nil
}

// nextToken dispatches to the alternative order given in the grammar:
// code span; inline link; image; angle-bracketed autolink; enclosed
// inline (emphasis family); hard line break; plain text.
func (p *inlineParser) nextToken() (*Inline, *ParseError) {
	if in, err, ok := p.tryCodeSpan(); ok {
		return in, err
	}
	if p.cfg.allowLinks {
		if in, err, ok := p.tryLink(); ok {
			return in, err
		}
	}
	if p.cfg.allowImages {
		if in, err, ok := p.tryImage(); ok {
			return in, err
		}
	}
	if p.cfg.allowLinks {
		if in, err, ok := p.tryAutolink(); ok {
			return in, err
		}
	}
	if in, err, ok := p.tryEnclosed(); ok {
		return in, err
	}
	if in, err, ok := p.tryHardBreak(); ok {
		return in, err
	}
	return p.parsePlain()
}

// ---- code spans ----

func (p *inlineParser) tryCodeSpan() (*Inline, *ParseError, bool) {
	if p.peekByte() != '`' {
		return nil, nil, false
	}
	start := p.mark()
	n := 0
	for !p.eof() && p.peekByte() == '`' {
		n++
		p.advanceBytes(1)
	}
	contentStart := p.i

	for !p.eof() {
		if p.peekByte() == '`' {
			runStart := p.i
			k := 0
			for !p.eof() && p.peekByte() == '`' {
				k++
				p.advanceBytes(1)
			}
			if k == n {
				content := p.text[contentStart:runStart]
				p.lastClass = classOther
				return &Inline{kind: CodeSpanKind, pos: start.pos, text: collapseWhitespace(content)}, nil, true
			}
			continue
		}
		_, size := p.peekRune()
		p.advanceBytes(size)
	}

	// No closing run of the same length: this wasn't a code span after
	// all. Back out so the opener run is reprocessed as ordinary text.
	p.reset(start)
	return nil, nil, false
}

// ---- links and images ----

// parseBracketed parses a bracketed inline sequence (a link label or an
// image description) up to an unescaped ']', under cfg. The caller has
// already consumed the opening '['.
func (p *inlineParser) parseBracketed(cfg inlineConfig) ([]*Inline, *ParseError, bool) {
	saved := p.cfg
	p.cfg = cfg
	defer func() { p.cfg = saved }()

	contentPos := p.pt.at()
	var out []*Inline
	for {
		if p.eof() {
			return nil, nil, false
		}
		if p.peekByte() == ']' {
			p.advanceBytes(1)
			if len(out) == 0 {
				return nil, trivialErr(contentPos, "']'", "label text"), true
			}
			return out, nil, true
		}
		in, err := p.nextToken()
		if err != nil {
			return nil, err, true
		}
		out = append(out, in)
	}
}

// parseLinkTail parses the "(" destination [title] ")" suffix shared by
// inline links and images. The caller has confirmed the next byte is '('.
func (p *inlineParser) parseLinkTail() (URI, *string, *ParseError) {
	p.advanceBytes(1) // '('
	p.skipOptionalSpace()
	dest, derr := p.parseDestination()
	if derr != nil {
		return URI{}, nil, derr
	}
	p.skipOptionalSpace()

	var titlePtr *string
	if title, terr, ok := p.parseTitle(); terr != nil {
		return URI{}, nil, terr
	} else if ok {
		titlePtr = &title
		p.skipOptionalSpace()
	}

	if p.eof() || p.peekByte() != ')' {
		return URI{}, nil, trivialErr(p.pt.at(), "character", "')'")
	}
	p.advanceBytes(1)
	return dest, titlePtr, nil
}

func (p *inlineParser) skipOptionalSpace() {
	for !p.eof() {
		b := p.peekByte()
		if b == ' ' || b == '\t' || b == '\n' {
			p.advanceBytes(1)
			continue
		}
		break
	}
}

func (p *inlineParser) parseDestination() (URI, *ParseError) {
	if p.eof() {
		return URI{}, eofErr(p.pt.at(), "URI")
	}
	if p.peekByte() == '<' {
		p.advanceBytes(1)
		start := p.i
		for {
			if p.eof() {
				return URI{}, withEOFLabel(eofErr(p.pt.at(), "'>'"), "end of URI literal")
			}
			b := p.peekByte()
			if b == '\\' && p.i+1 < len(p.text) {
				p.advanceBytes(2)
				continue
			}
			if b == '>' {
				break
			}
			if b == '\n' {
				return URI{}, trivialErr(p.pt.at(), "line break", "'>'")
			}
			p.advanceBytes(1)
		}
		raw := p.text[start:p.i]
		p.advanceBytes(1)
		uri, err := parseURI(decodeEscapes(raw))
		if err != nil {
			return URI{}, fancyErr(p.pt.at(), err)
		}
		return uri, nil
	}

	start := p.i
	for !p.eof() {
		b := p.peekByte()
		if b == '\\' && p.i+1 < len(p.text) {
			p.advanceBytes(2)
			continue
		}
		if b == ' ' || b == '\t' || b == '\n' || b == ')' {
			break
		}
		p.advanceBytes(1)
	}
	if p.i == start {
		return URI{}, trivialErr(p.pt.at(), "')'", "URI")
	}
	raw := p.text[start:p.i]
	uri, err := parseURI(decodeEscapes(raw))
	if err != nil {
		return URI{}, fancyErr(p.pt.at(), err)
	}
	return uri, nil
}

func (p *inlineParser) parseTitle() (string, *ParseError, bool) {
	if p.eof() {
		return "", nil, false
	}
	var closeCh byte
	switch p.peekByte() {
	case '"':
		closeCh = '"'
	case '\'':
		closeCh = '\''
	case '(':
		closeCh = ')'
	default:
		return "", nil, false
	}
	p.advanceBytes(1)
	start := p.i
	for {
		if p.eof() {
			return "", eofErr(p.pt.at(), string(closeCh)), true
		}
		b := p.peekByte()
		if b == '\\' && p.i+1 < len(p.text) {
			p.advanceBytes(2)
			continue
		}
		if b == closeCh {
			break
		}
		p.advanceBytes(1)
	}
	raw := p.text[start:p.i]
	p.advanceBytes(1)
	return decodeEscapes(raw), nil, true
}

func (p *inlineParser) tryLink() (*Inline, *ParseError, bool) {
	if p.peekByte() != '[' {
		return nil, nil, false
	}
	start := p.mark()
	p.advanceBytes(1)

	labelCfg := p.cfg
	labelCfg.allowLinks = false
	label, err, closed := p.parseBracketed(labelCfg)
	if err != nil {
		return nil, err, true
	}
	if !closed || p.eof() || p.peekByte() != '(' {
		p.reset(start)
		return nil, nil, false
	}

	dest, title, terr := p.parseLinkTail()
	if terr != nil {
		return nil, terr, true
	}
	p.lastClass = classOther
	return &Inline{kind: LinkKind, pos: start.pos, children: label, dest: dest, title: title}, nil, true
}

func (p *inlineParser) tryImage() (*Inline, *ParseError, bool) {
	if p.peekByte() != '!' || p.i+1 >= len(p.text) || p.text[p.i+1] != '[' {
		return nil, nil, false
	}
	start := p.mark()
	p.advanceBytes(2)

	var desc []*Inline
	if !p.eof() && p.peekByte() == ']' {
		p.advanceBytes(1)
		desc = []*Inline{{kind: PlainKind, pos: start.pos}}
	} else {
		descCfg := p.cfg
		descCfg.allowImages = false
		d, err, closed := p.parseBracketed(descCfg)
		if err != nil {
			return nil, err, true
		}
		if !closed {
			p.reset(start)
			return nil, nil, false
		}
		desc = d
	}

	if p.eof() || p.peekByte() != '(' {
		p.reset(start)
		return nil, nil, false
	}
	dest, title, terr := p.parseLinkTail()
	if terr != nil {
		return nil, terr, true
	}
	p.lastClass = classOther
	return &Inline{kind: ImageKind, pos: start.pos, children: desc, dest: dest, title: title}, nil, true
}

// ---- autolinks ----

// peekAutolink reports, without consuming any input, whether the text at
// the current position parses as "<uri>".
func (p *inlineParser) peekAutolink() bool {
	if p.peekByte() != '<' {
		return false
	}
	rest := p.text[p.i+1:]
	end := strings.IndexAny(rest, ">\n<")
	if end < 0 || rest[end] != '>' {
		return false
	}
	_, err := parseURI(rest[:end])
	return err == nil
}

func (p *inlineParser) tryAutolink() (*Inline, *ParseError, bool) {
	if !p.peekAutolink() {
		return nil, nil, false
	}
	start := p.mark()
	p.advanceBytes(1)
	contentStart := p.i
	for p.peekByte() != '>' {
		_, size := p.peekRune()
		p.advanceBytes(size)
	}
	raw := p.text[contentStart:p.i]
	p.advanceBytes(1)

	uri, uerr := parseURI(raw)
	if uerr != nil {
		p.reset(start)
		return nil, nil, false
	}

	if uri.Scheme() == "" || uri.Scheme() == "mailto" {
		candidate := raw
		if uri.Scheme() == "mailto" {
			candidate = uri.Opaque()
		}
		if isValidEmail(candidate) {
			mailURI := makeAbsolute(makeScheme("mailto"), uri)
			p.lastClass = classOther
			return &Inline{
				kind:     LinkKind,
				pos:      start.pos,
				children: []*Inline{{kind: PlainKind, pos: start.pos, text: candidate}},
				dest:     mailURI,
			}, nil, true
		}
	}
	p.lastClass = classOther
	return &Inline{
		kind:     LinkKind,
		pos:      start.pos,
		children: []*Inline{{kind: PlainKind, pos: start.pos, text: uri.String()}},
		dest:     uri,
	}, nil, true
}

// ---- emphasis-class delimiter runs ----

type delimChar struct {
	singleKind InlineKind
	doubleKind InlineKind
	hasDouble  bool
}

var delimTable = map[byte]delimChar{
	'*': {singleKind: EmphasisKind, doubleKind: StrongKind, hasDouble: true},
	'_': {singleKind: EmphasisKind, doubleKind: StrongKind, hasDouble: true},
	'~': {singleKind: SubscriptKind, doubleKind: StrikeoutKind, hasDouble: true},
	'^': {singleKind: SuperscriptKind},
}

// isLeftFlanking implements the opener-flanking check of the grammar:
// the character to the right of the delimiter run must exist and not be
// transparent, and beforeClass (the last-character class as of just
// before the opener) must be SpaceChar or LeftFlankingDel. after is the
// absolute byte offset into p.text immediately following the delimiter
// run, since the check runs before the run itself is consumed.
func (p *inlineParser) isLeftFlanking(beforeClass charClass, after int) bool {
	if after >= len(p.text) {
		return false
	}
	r, _ := utf8.DecodeRuneInString(p.text[after:])
	if isTransparent(r) {
		return false
	}
	return beforeClass == classSpace || beforeClass == classLeftFlank
}

// isRightFlanking implements the closer-flanking check for delimiter
// delim at the current position.
func (p *inlineParser) isRightFlanking(delim string) bool {
	if p.lastClass == classSpace || p.lastClass == classLeftFlank {
		return false
	}
	if !strings.HasPrefix(p.text[p.i:], delim) {
		return false
	}
	after := p.i + len(delim)
	if after >= len(p.text) {
		return true
	}
	r, _ := utf8.DecodeRuneInString(p.text[after:])
	return isTransparent(r) || isMarkupChar(r)
}

func (p *inlineParser) tryEnclosed() (*Inline, *ParseError, bool) {
	b := p.peekByte()
	dc, ok := delimTable[b]
	if !ok {
		return nil, nil, false
	}
	start := p.mark()
	run := 0
	for !p.eof() && p.peekByte() == b {
		run++
		p.advanceBytes(1)
	}

	if dc.hasDouble && run >= 3 {
		p.reset(start)
		return p.openDoublePairFrame(start, dc, b)
	}
	if dc.hasDouble && run == 2 {
		p.reset(start)
		return p.openSingleFrame(start, dc.doubleKind, strings.Repeat(string(b), 2))
	}
	// run == 1 (or a '^' run with no double form): open exactly one
	// delimiter char; any extra run length is left for the next token.
	p.reset(start)
	return p.openSingleFrame(start, dc.singleKind, string(b))
}

func (p *inlineParser) openSingleFrame(start inlineMark, kind InlineKind, delim string) (*Inline, *ParseError, bool) {
	if !p.isLeftFlanking(start.lastClass, start.i+len(delim)) {
		p.reset(start)
		p.advanceBytes(len(delim))
		return nil, fancyErr(start.pos, NonFlankingDelimiterRun{Delims: delim}), true
	}
	p.advanceBytes(len(delim))
	p.lastClass = classLeftFlank

	saved := p.cfg
	p.cfg.allowEmpty = false
	children, err := p.parseUntilCloser(start.pos, delim)
	p.cfg = saved
	if err != nil {
		return nil, err, true
	}
	return &Inline{kind: kind, pos: start.pos, children: children}, nil, true
}

// openDoublePairFrame opens the combined double-frame case reached by a
// run of 3 or more of the same delimiter character (the grammar's
// "***"-style combined openers). The inner frame (dc.singleKind) is
// always tried as the closer first; mmark does not model the case where
// the outer (double) delimiter happens to close before the inner one,
// which this leaves unspecified for runs longer than 3 — see
// DESIGN.md.
func (p *inlineParser) openDoublePairFrame(start inlineMark, dc delimChar, ch byte) (*Inline, *ParseError, bool) {
	single := string(ch)
	double := strings.Repeat(string(ch), 2)
	triple := strings.Repeat(string(ch), 3)

	if !p.isLeftFlanking(start.lastClass, start.i+3) {
		p.reset(start)
		p.advanceBytes(3)
		return nil, fancyErr(start.pos, NonFlankingDelimiterRun{Delims: triple}), true
	}
	p.advanceBytes(3)
	p.lastClass = classLeftFlank

	saved := p.cfg
	p.cfg.allowEmpty = false
	inlines0, err := p.parseUntilCloser(start.pos, single)
	if err != nil {
		p.cfg = saved
		return nil, err, true
	}

	this := &Inline{kind: dc.singleKind, pos: start.pos, children: inlines0}

	if p.isRightFlanking(double) {
		p.advanceBytes(len(double))
		p.lastClass = classRightFlank
		p.cfg = saved
		return &Inline{kind: dc.doubleKind, pos: start.pos, children: []*Inline{this}}, nil, true
	}

	inlines1, err := p.parseUntilCloser(start.pos, double)
	p.cfg = saved
	if err != nil {
		return nil, err, true
	}
	children := append([]*Inline{this}, inlines1...)
	return &Inline{kind: dc.doubleKind, pos: start.pos, children: children}, nil, true
}

// parseUntilCloser consumes inline tokens until delim closes at the
// current position, returning the accumulated children. If input is
// exhausted first, the frame never closed, and mmark reports that with
// the same NonFlankingDelimiterRun kind used for a rejected opener: for
// input like "a *b", closing never occurring is reported at the opening
// delimiter's position, the same way as a non-flanking opener.
func (p *inlineParser) parseUntilCloser(openPos Position, delim string) ([]*Inline, *ParseError) {
	var out []*Inline
	for {
		if !p.eof() && p.isRightFlanking(delim) {
			p.advanceBytes(len(delim))
			p.lastClass = classRightFlank
			return out, nil
		}
		if p.eof() {
			return nil, fancyErr(openPos, NonFlankingDelimiterRun{Delims: delim})
		}
		in, err := p.nextToken()
		if err != nil {
			return nil, err
		}
		out = append(out, in)
	}
}

// ---- hard line breaks ----

func (p *inlineParser) tryHardBreak() (*Inline, *ParseError, bool) {
	if p.peekByte() != '\\' || p.i+1 >= len(p.text) || p.text[p.i+1] != '\n' {
		return nil, nil, false
	}
	pos := p.pt.at()
	p.advanceBytes(2)
	for !p.eof() && (p.peekByte() == ' ' || p.peekByte() == '\t') {
		p.advanceBytes(1)
	}
	p.lastClass = classSpace
	return &Inline{kind: LineBreakKind, pos: pos}, nil, true
}

// ---- plain text ----

// looksLikeToken reports whether the parser is positioned at something a
// higher-priority construct would claim, so that parsePlain knows where
// to stop a merged run of plain text.
func (p *inlineParser) looksLikeToken() bool {
	if p.eof() {
		return true
	}
	switch p.peekByte() {
	case '`', ']':
		return true
	case '[':
		return p.cfg.allowLinks
	case '!':
		return p.cfg.allowImages && p.i+1 < len(p.text) && p.text[p.i+1] == '['
	case '*', '_', '~', '^':
		return true
	case '<':
		return p.cfg.allowLinks && p.peekAutolink()
	case '\\':
		return p.i+1 < len(p.text) && p.text[p.i+1] == '\n'
	default:
		return false
	}
}

// parsePlain assembles a run of plain text, stopping at the next markup
// character or autolink delimiter. It always succeeds: even a markup
// character that no higher-priority construct claimed (an unmatched
// code-span backtick, an unmatched '[') is emitted as literal text so the
// parser always makes progress, which a catch-all rule that simply
// excludes markup characters would not by itself guarantee — see
// DESIGN.md.
func (p *inlineParser) parsePlain() (*Inline, *ParseError) {
	start := p.mark()
	var b strings.Builder
	for !p.looksLikeToken() {
		r, size := p.peekRune()
		switch {
		case r == '\\' && p.i+1 < len(p.text):
			nr, nsize := utf8.DecodeRuneInString(p.text[p.i+1:])
			if isEscapable(nr) {
				b.WriteRune(nr)
				p.advanceBytes(1 + nsize)
			} else {
				b.WriteByte('\\')
				p.advanceBytes(1)
			}
			p.lastClass = classOther
		case r == '\n':
			trimTrailingSpace(&b)
			b.WriteByte(' ')
			p.advanceBytes(size)
			for !p.eof() && (p.peekByte() == ' ' || p.peekByte() == '\t') {
				p.advanceBytes(1)
			}
			p.lastClass = classSpace
		case r == '!':
			b.WriteByte('!')
			p.advanceBytes(size)
			p.lastClass = classSpace
		case r == '<':
			b.WriteByte('<')
			p.advanceBytes(size)
			p.lastClass = classOther
		case isSpace(r):
			b.WriteRune(r)
			p.advanceBytes(size)
			p.lastClass = classSpace
		case isTransparentPunctuation(r):
			b.WriteRune(r)
			p.advanceBytes(size)
			p.lastClass = classSpace
		default:
			b.WriteRune(r)
			p.advanceBytes(size)
			p.lastClass = classOther
		}
	}
	if b.Len() == 0 {
		r, size := p.peekRune()
		b.WriteRune(r)
		p.advanceBytes(size)
		p.lastClass = classOther
	}
	return &Inline{kind: PlainKind, pos: start.pos, text: b.String()}, nil
}

func trimTrailingSpace(b *strings.Builder) {
	s := b.String()
	trimmed := strings.TrimRight(s, " \t")
	if len(trimmed) == len(s) {
		return
	}
	b.Reset()
	b.WriteString(trimmed)
}

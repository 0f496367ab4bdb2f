package ui

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/tdewolff/parse/v2"
	"github.com/tdewolff/parse/v2/css"
)

// ParseCSS parses a stylesheet. Only simple .class and #id selectors are kept (a comma-separated
// list yields one rule per selector); at-rules and other selectors are skipped.
// Later rules override earlier ones for the same property.
func ParseCSS(content string) (*Stylesheet, error) {
	sheet := &Stylesheet{}
	p := css.NewParser(parse.NewInput(bytes.NewBufferString(content)), false)

	var current []int // indices into sheet.Rules for the open ruleset
	atDepth := 0
	for {
		gt, _, data := p.Next()
		switch gt {
		case css.ErrorGrammar:
			if err := p.Err(); err != nil && !errors.Is(err, io.EOF) {
				return nil, fmt.Errorf("css: %w", err)
			}
			return sheet, nil
		case css.BeginAtRuleGrammar:
			atDepth++
		case css.EndAtRuleGrammar:
			if atDepth > 0 {
				atDepth--
			}
		case css.BeginRulesetGrammar:
			current = current[:0]
			if atDepth > 0 {
				continue
			}
			for _, sel := range splitSelectors(joinTokens(data, p.Values())) {
				sheet.Rules = append(sheet.Rules, Rule{Selector: sel, Props: make(map[string]string)})
				current = append(current, len(sheet.Rules)-1)
			}
		case css.DeclarationGrammar, css.CustomPropertyGrammar:
			if len(current) == 0 {
				continue
			}
			key := strings.ToLower(strings.TrimSpace(string(data)))
			val := strings.TrimSpace(joinTokens(nil, p.Values()))
			for _, i := range current {
				sheet.Rules[i].Props[key] = val
			}
		case css.EndRulesetGrammar:
			current = current[:0]
		}
	}
}

func joinTokens(head []byte, vals []css.Token) string {
	var b strings.Builder
	b.Write(head)
	for _, v := range vals {
		b.Write(v.Data)
	}
	return b.String()
}

// splitSelectors returns the simple selectors (".name" or "#name") of a selector list.
func splitSelectors(s string) []string {
	var out []string
	for _, sel := range strings.Split(s, ",") {
		sel = strings.TrimSpace(sel)
		if len(sel) < 2 || (sel[0] != '.' && sel[0] != '#') {
			continue
		}
		if strings.ContainsAny(sel[1:], " .#:>+~[") {
			continue
		}
		out = append(out, sel)
	}
	return out
}

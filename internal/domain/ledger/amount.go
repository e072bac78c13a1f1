package ledger

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/contafacil/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// Amount fields accept localized numeric notation (period as thousands
// separator, comma as decimal separator) and optionally a small arithmetic
// expression over + - * / and parentheses, e.g. "1.200,00+350,50*2".
//
// ParseAmount preserves the historical form-input behavior: anything that
// cannot be evaluated (malformed literals, disallowed characters, division
// by zero) coerces silently to zero. ParseAmountStrict is the typed
// alternative for callers that want to reject instead of coerce.

// amountCharset is the safety gate applied to normalized expressions before
// evaluation. Rejection is silent by contract, not a user-facing parse error.
var amountCharset = regexp.MustCompile(`^[0-9+\-*/().\s]*$`)

// maxAmount bounds results to what the DECIMAL(15,2) storage columns hold.
var maxAmount = decimal.New(1, 13)

// ParseAmount evaluates a user-entered amount string, coercing every failure
// to zero. The result is rounded to cents half-away-from-zero.
func ParseAmount(raw string) decimal.Decimal {
	v, err := ParseAmountStrict(raw)
	if err != nil {
		return decimal.Zero
	}
	return v
}

// ParseAmountStrict evaluates a user-entered amount string and surfaces
// failures as domain errors instead of coercing them to zero.
// An empty or blank input is defined as zero, not an error.
func ParseAmountStrict(raw string) (decimal.Decimal, error) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return decimal.Zero, nil
	}

	// Localized notation: strip thousands separators, then promote the
	// decimal comma. The same normalization applies to whole expressions.
	normalized := strings.ReplaceAll(s, ".", "")
	normalized = strings.ReplaceAll(normalized, ",", ".")

	if !strings.ContainsAny(s, "+-*/") {
		d, err := decimal.NewFromString(normalized)
		if err != nil {
			return decimal.Zero, shared.NewDomainError("MALFORMED_AMOUNT",
				fmt.Sprintf("Amount %q is not a valid localized number", raw))
		}
		return boundAmount(d.Round(2))
	}

	if !amountCharset.MatchString(normalized) {
		return decimal.Zero, shared.NewDomainError("MALFORMED_AMOUNT",
			fmt.Sprintf("Amount expression %q contains disallowed characters", raw))
	}

	p := &amountParser{input: normalized}
	v, err := p.parseExpression()
	if err != nil {
		return decimal.Zero, err
	}
	p.skipSpaces()
	if p.pos != len(p.input) {
		return decimal.Zero, shared.NewDomainError("MALFORMED_AMOUNT",
			fmt.Sprintf("Amount expression %q has trailing input", raw))
	}
	return boundAmount(v.Round(2))
}

func boundAmount(v decimal.Decimal) (decimal.Decimal, error) {
	if v.Abs().GreaterThanOrEqual(maxAmount) {
		return decimal.Zero, shared.ErrAmountOutOfRange
	}
	return v, nil
}

// amountParser is a recursive-descent evaluator with standard operator
// precedence over decimal values. It operates on the normalized form only.
type amountParser struct {
	input string
	pos   int
}

func (p *amountParser) parseExpression() (decimal.Decimal, error) {
	left, err := p.parseTerm()
	if err != nil {
		return decimal.Zero, err
	}
	for {
		p.skipSpaces()
		switch p.peek() {
		case '+':
			p.pos++
			right, err := p.parseTerm()
			if err != nil {
				return decimal.Zero, err
			}
			left = left.Add(right)
		case '-':
			p.pos++
			right, err := p.parseTerm()
			if err != nil {
				return decimal.Zero, err
			}
			left = left.Sub(right)
		default:
			return left, nil
		}
	}
}

func (p *amountParser) parseTerm() (decimal.Decimal, error) {
	left, err := p.parseUnary()
	if err != nil {
		return decimal.Zero, err
	}
	for {
		p.skipSpaces()
		switch p.peek() {
		case '*':
			p.pos++
			right, err := p.parseUnary()
			if err != nil {
				return decimal.Zero, err
			}
			left = left.Mul(right)
		case '/':
			p.pos++
			right, err := p.parseUnary()
			if err != nil {
				return decimal.Zero, err
			}
			if right.IsZero() {
				return decimal.Zero, shared.NewDomainError("DIVISION_BY_ZERO",
					"Amount expression divides by zero")
			}
			left = left.Div(right)
		default:
			return left, nil
		}
	}
}

func (p *amountParser) parseUnary() (decimal.Decimal, error) {
	p.skipSpaces()
	switch p.peek() {
	case '+':
		p.pos++
		return p.parseUnary()
	case '-':
		p.pos++
		v, err := p.parseUnary()
		if err != nil {
			return decimal.Zero, err
		}
		return v.Neg(), nil
	default:
		return p.parsePrimary()
	}
}

func (p *amountParser) parsePrimary() (decimal.Decimal, error) {
	p.skipSpaces()
	if p.peek() == '(' {
		p.pos++
		v, err := p.parseExpression()
		if err != nil {
			return decimal.Zero, err
		}
		p.skipSpaces()
		if p.peek() != ')' {
			return decimal.Zero, shared.NewDomainError("MALFORMED_AMOUNT",
				"Amount expression has an unclosed parenthesis")
		}
		p.pos++
		return v, nil
	}
	return p.parseNumber()
}

func (p *amountParser) parseNumber() (decimal.Decimal, error) {
	start := p.pos
	for p.pos < len(p.input) {
		c := p.input[p.pos]
		if (c >= '0' && c <= '9') || c == '.' {
			p.pos++
			continue
		}
		break
	}
	if p.pos == start {
		return decimal.Zero, shared.NewDomainError("MALFORMED_AMOUNT",
			"Amount expression is missing a number")
	}
	d, err := decimal.NewFromString(p.input[start:p.pos])
	if err != nil {
		return decimal.Zero, shared.NewDomainError("MALFORMED_AMOUNT",
			fmt.Sprintf("Amount expression has an invalid number %q", p.input[start:p.pos]))
	}
	return d, nil
}

func (p *amountParser) peek() byte {
	if p.pos >= len(p.input) {
		return 0
	}
	return p.input[p.pos]
}

func (p *amountParser) skipSpaces() {
	for p.pos < len(p.input) {
		c := p.input[p.pos]
		if c != ' ' && c != '\t' && c != '\n' && c != '\r' {
			break
		}
		p.pos++
	}
}

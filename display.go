package polyrat

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

// ============================================================
// Display — read-only projections of a value
// ============================================================

func (p Poly) String() string {
	terms := p.Terms()
	if len(terms) == 0 {
		return "0"
	}
	var b strings.Builder
	for i, t := range terms {
		neg := t.Coeff.Sign() < 0
		switch {
		case i == 0 && neg:
			b.WriteString("-")
		case i > 0 && neg:
			b.WriteString(" - ")
		case i > 0:
			b.WriteString(" + ")
		}
		c := t.Coeff.Abs()
		switch {
		case t.Degree == 0:
			b.WriteString(c.String())
		case c.IsOne():
		case c.IsInt():
			b.WriteString(c.String())
		default:
			b.WriteString("(" + c.String() + ")")
		}
		b.WriteString(power(p.Symbol(), t.Degree, "^%d"))
	}
	return b.String()
}

func power(symbol string, deg int, format string) string {
	switch deg {
	case 0:
		return ""
	case 1:
		return symbol
	}
	return symbol + fmt.Sprintf(format, deg)
}

// operandString wraps multi-term or negative operands in parentheses. A
// denominator monomial is also wrapped unless its coefficient is 1, so that
// 1/(2x) does not read as (1/2)x.
func operandString(p Poly, den bool) string {
	s := p.String()
	lc := p.LeadingCoeff()
	switch {
	case len(p.Terms()) > 1, lc.Sign() < 0, strings.Contains(s, "/"):
		return "(" + s + ")"
	case den && p.Degree() > 0 && !lc.IsOne():
		return "(" + s + ")"
	}
	return s
}

func (f Fraction) String() string {
	if f.IsZero() {
		return "0"
	}
	den := f.Denominator()
	if den.IsConstant() && den.Coeff(0).IsOne() {
		return f.num.String()
	}
	if len(f.num.Terms()) == 1 && f.num.LeadingCoeff().Sign() < 0 {
		return "-" + f.Neg().String()
	}
	return operandString(f.num, false) + "/" + operandString(den, true)
}

func (v Value) String() string {
	if v.rem.IsZero() {
		return v.poly.String()
	}
	if v.poly.IsZero() {
		return v.rem.String()
	}
	if len(v.rem.num.Terms()) == 1 && v.rem.num.LeadingCoeff().Sign() < 0 {
		return v.poly.String() + " - " + v.rem.Neg().String()
	}
	return v.poly.String() + " + " + v.rem.String()
}

// Terms lists the polynomial part by descending degree; the remainder is
// available separately through Remainder.
func (v Value) Terms() []Term { return v.poly.Terms() }

func latexRat(r Rat) string {
	if r.IsInt() {
		return r.String()
	}
	sign := ""
	if r.Sign() < 0 {
		sign = "-"
		r = r.Abs()
	}
	return fmt.Sprintf("%s\\frac{%s}{%s}", sign, r.Num().String(), r.Den().String())
}

func (p Poly) LaTeX() string {
	terms := p.Terms()
	if len(terms) == 0 {
		return "0"
	}
	parts := make([]string, 0, len(terms))
	for i, t := range terms {
		c := t.Coeff
		sign := ""
		if i > 0 {
			sign = " + "
			if c.Sign() < 0 {
				sign = " - "
				c = c.Abs()
			}
		}
		coeff := latexRat(c)
		if t.Degree > 0 {
			switch {
			case c.IsOne():
				coeff = ""
			case c.Neg().IsOne():
				coeff = "-"
			}
		}
		parts = append(parts, sign+coeff+power(p.Symbol(), t.Degree, "^{%d}"))
	}
	return strings.Join(parts, "")
}

func (f Fraction) LaTeX() string {
	if f.IsZero() {
		return "0"
	}
	return fmt.Sprintf("\\frac{%s}{%s}", f.num.LaTeX(), f.Denominator().LaTeX())
}

func (v Value) LaTeX() string {
	switch {
	case v.rem.IsZero():
		return v.poly.LaTeX()
	case v.poly.IsZero():
		return v.rem.LaTeX()
	}
	return v.poly.LaTeX() + " + " + v.rem.LaTeX()
}

// ============================================================
// Pretty — multi-line rendering with fraction bars
// ============================================================

// block is three aligned rows: numerator, middle line, denominator.
type block struct {
	top, mid, bot string
}

func width(s string) int { return utf8.RuneCountInString(s) }

func pad(s string, n int) string {
	if w := width(s); w < n {
		return s + strings.Repeat(" ", n-w)
	}
	return s
}

func center(s string, n int) string {
	gap := n - width(s)
	if gap <= 0 {
		return s
	}
	return strings.Repeat(" ", gap/2) + s + strings.Repeat(" ", gap-gap/2)
}

func stacked(num, den string) block {
	n := width(num)
	if width(den) > n {
		n = width(den)
	}
	return block{top: center(num, n), mid: strings.Repeat("─", n), bot: center(den, n)}
}

func flat(s string) block {
	blank := strings.Repeat(" ", width(s))
	return block{top: blank, mid: s, bot: blank}
}

func (b block) append(o block) block {
	n := width(b.mid)
	return block{top: pad(b.top, n) + o.top, mid: b.mid + o.mid, bot: pad(b.bot, n) + o.bot}
}

// Pretty renders v with rational coefficients and the remainder drawn as
// stacked fractions. Values without any fraction render on one line.
func (v Value) Pretty() string {
	out := block{}
	stackedAny := false
	for i, t := range v.poly.Terms() {
		sign := ""
		switch {
		case i == 0 && t.Coeff.Sign() < 0:
			sign = "-"
		case i > 0 && t.Coeff.Sign() < 0:
			sign = " - "
		case i > 0:
			sign = " + "
		}
		out = out.append(flat(sign))
		c := t.Coeff.Abs()
		switch {
		case t.Degree > 0 && c.IsOne():
		case c.IsInt():
			out = out.append(flat(c.String()))
		default:
			stackedAny = true
			out = out.append(stacked(c.Num().String(), c.Den().String()))
		}
		out = out.append(flat(power(v.poly.Symbol(), t.Degree, "^%d")))
	}
	if !v.rem.IsZero() {
		stackedAny = true
		if width(out.mid) > 0 {
			out = out.append(flat(" + "))
		}
		out = out.append(stacked(v.rem.num.String(), v.rem.Denominator().String()))
	}
	if width(out.mid) == 0 {
		return "0"
	}
	if !stackedAny {
		return out.mid
	}
	return strings.Join([]string{out.top, out.mid, out.bot}, "\n")
}

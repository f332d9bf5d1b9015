package expr

import (
	"github.com/pkg/errors"
)

// Parse builds an expression tree from a token sequence produced by
// Tokenize. The whole sequence must be consumed up to KindEOF.
//
// Grammar, lowest precedence first:
//
//	expr         := term (('+' | '-') term)*
//	term         := factor (('*' | '/') factor)*
//	factor       := signed_power
//	signed_power := ('+' | '-')? power
//	power        := primary ('^' INTEGER)?
//	primary      := INTEGER | VARIABLE | FUNCTION '(' expr (',' expr)* ')' | '(' expr ')'
func Parse(tokens []Token) (Node, error) {
	if len(tokens) == 0 || tokens[len(tokens)-1].Kind != KindEOF {
		return nil, errors.Wrap(ErrUnexpectedToken, "token stream is not terminated by EOF")
	}
	p := &parser{tokens: tokens}
	node, err := p.expr()
	if err != nil {
		return nil, err
	}
	if tok := p.peek(); tok.Kind != KindEOF {
		return nil, errors.Wrapf(ErrTrailingTokens, "%s at offset %d", tok, tok.Pos)
	}
	return node, nil
}

// ParseString tokenizes and parses s. It does not sanitize.
func ParseString(s string) (Node, error) {
	tokens, err := Tokenize(s)
	if err != nil {
		return nil, err
	}
	return Parse(tokens)
}

type parser struct {
	tokens []Token
	i      int
}

func (p *parser) peek() Token {
	return p.tokens[p.i]
}

// eat consumes the next token, which must be of kind k.
func (p *parser) eat(k Kind) (Token, error) {
	tok := p.peek()
	if tok.Kind != k {
		return tok, errors.Wrapf(ErrUnexpectedToken, "expected %s, got %s at offset %d", k, tok, tok.Pos)
	}
	if tok.Kind != KindEOF {
		p.i++
	}
	return tok, nil
}

func (p *parser) expr() (Node, error) {
	node, err := p.term()
	if err != nil {
		return nil, err
	}
	for {
		var op BinaryOp
		switch p.peek().Kind {
		case KindAdd:
			op = OpAdd
		case KindSub:
			op = OpSub
		default:
			return node, nil
		}
		p.i++
		rhs, err := p.term()
		if err != nil {
			return nil, err
		}
		node = &BinaryNode{Op: op, Left: node, Right: rhs}
	}
}

func (p *parser) term() (Node, error) {
	node, err := p.factor()
	if err != nil {
		return nil, err
	}
	for {
		var op BinaryOp
		switch p.peek().Kind {
		case KindMul:
			op = OpMul
		case KindDiv:
			op = OpDiv
		default:
			return node, nil
		}
		p.i++
		rhs, err := p.factor()
		if err != nil {
			return nil, err
		}
		node = &BinaryNode{Op: op, Left: node, Right: rhs}
	}
}

func (p *parser) factor() (Node, error) {
	return p.signedPower()
}

// signedPower binds a leading sign looser than '^', so -n^2 is -(n^2).
func (p *parser) signedPower() (Node, error) {
	var op UnaryOp
	switch p.peek().Kind {
	case KindAdd:
		op = OpPos
	case KindSub:
		op = OpNeg
	default:
		return p.power()
	}
	p.i++
	operand, err := p.power()
	if err != nil {
		return nil, err
	}
	return &UnaryNode{Op: op, Operand: operand}, nil
}

func (p *parser) power() (Node, error) {
	node, err := p.primary()
	if err != nil {
		return nil, err
	}
	if p.peek().Kind != KindPow {
		return node, nil
	}
	p.i++
	exp, err := p.eat(KindInteger)
	if err != nil {
		return nil, err
	}
	return &BinaryNode{Op: OpPow, Left: node, Right: &NumberNode{Val: exp.Int}}, nil
}

func (p *parser) primary() (Node, error) {
	tok := p.peek()
	switch tok.Kind {
	case KindInteger:
		p.i++
		return &NumberNode{Val: tok.Int}, nil

	case KindVariable:
		p.i++
		return &VarNode{}, nil

	case KindFunction:
		p.i++
		if _, err := p.eat(KindLParen); err != nil {
			return nil, err
		}
		arg, err := p.expr()
		if err != nil {
			return nil, err
		}
		args := []Node{arg}
		for p.peek().Kind == KindComma {
			p.i++
			arg, err := p.expr()
			if err != nil {
				return nil, err
			}
			args = append(args, arg)
		}
		if _, err := p.eat(KindRParen); err != nil {
			return nil, err
		}
		return &FuncNode{Func: tok.Func, Args: args}, nil

	case KindLParen:
		p.i++
		node, err := p.expr()
		if err != nil {
			return nil, err
		}
		if _, err := p.eat(KindRParen); err != nil {
			return nil, err
		}
		return node, nil
	}
	return nil, errors.Wrapf(ErrUnexpectedToken, "expected primary expression, got %s at offset %d", tok, tok.Pos)
}

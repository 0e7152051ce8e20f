package jsonv

import "fmt"

// Parser is a recursive-descent parser driven by one token of
// lookahead from a Scanner.
//
//	value  -> number | string | bool | null | array | object
//	array  -> '[' (value (',' value)*)? ']'
//	object -> '{' (string ':' value (',' string ':' value)*)? '}'
type Parser struct {
	sc  *Scanner
	tok Token
}

// NewParser returns a parser over data, bounded to the first limit
// bytes (0 means "all of data").
func NewParser(data []byte, limit int) *Parser {
	return &Parser{sc: NewScanner(data, limit)}
}

// Parse parses exactly one top-level value. Trailing non-whitespace
// after it is an error.
func (p *Parser) Parse() (Value, error) {
	if err := p.advance(); err != nil {
		return Value{}, err
	}
	v, err := p.parseValue()
	if err != nil {
		return Value{}, err
	}
	if p.tok.Kind != TokEOF {
		return Value{}, fmt.Errorf("jsonv: trailing data after value at offset %d", p.sc.Pos())
	}
	return v, nil
}

// Parse decodes data (in full) as a single top-level JSON value.
func Parse(data []byte) (Value, error) {
	return NewParser(data, len(data)).Parse()
}

func (p *Parser) advance() error {
	tok, err := p.sc.Next()
	if err != nil {
		return err
	}
	p.tok = tok
	return nil
}

func (p *Parser) expect(kind TokenKind) error {
	if p.tok.Kind != kind {
		return fmt.Errorf("jsonv: expected %s, got %s at offset %d", kind, p.tok.Kind, p.sc.Pos())
	}
	return p.advance()
}

func (p *Parser) parseValue() (Value, error) {
	switch p.tok.Kind {
	case TokNumber:
		v := Number(p.tok.Number)
		return v, p.advance()
	case TokString:
		v := String(p.tok.Str)
		return v, p.advance()
	case TokBool:
		v := Bool(p.tok.Bool)
		return v, p.advance()
	case TokNull:
		return Null(), p.advance()
	case TokLBracket:
		return p.parseArray()
	case TokLBrace:
		return p.parseObject()
	default:
		return Value{}, fmt.Errorf("jsonv: expected value, got %s at offset %d", p.tok.Kind, p.sc.Pos())
	}
}

func (p *Parser) parseArray() (Value, error) {
	if err := p.advance(); err != nil { // consume '['
		return Value{}, err
	}
	arr := Array()
	if p.tok.Kind == TokRBracket {
		return arr, p.advance()
	}
	var items []Value
	for {
		v, err := p.parseValue()
		if err != nil {
			return Value{}, err
		}
		items = append(items, v)
		if p.tok.Kind == TokComma {
			if err := p.advance(); err != nil {
				return Value{}, err
			}
			continue
		}
		break
	}
	if err := p.expect(TokRBracket); err != nil {
		return Value{}, err
	}
	return Array(items...), nil
}

func (p *Parser) parseObject() (Value, error) {
	if err := p.advance(); err != nil { // consume '{'
		return Value{}, err
	}
	obj := NewObject()
	if p.tok.Kind == TokRBrace {
		return obj, p.advance()
	}
	for {
		if p.tok.Kind != TokString {
			return Value{}, fmt.Errorf("jsonv: expected %s, got %s at offset %d", TokString, p.tok.Kind, p.sc.Pos())
		}
		key := p.tok.Str
		if err := p.advance(); err != nil {
			return Value{}, err
		}
		if err := p.expect(TokColon); err != nil {
			return Value{}, err
		}
		val, err := p.parseValue()
		if err != nil {
			return Value{}, err
		}
		obj = obj.Set(key, val)
		if p.tok.Kind == TokComma {
			if err := p.advance(); err != nil {
				return Value{}, err
			}
			continue
		}
		break
	}
	if err := p.expect(TokRBrace); err != nil {
		return Value{}, err
	}
	return obj, nil
}

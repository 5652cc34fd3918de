// Package printop implements the Print sink: it pulls tuples from a child
// operator and formats each one as a comma-separated line.
package printop

import (
	"fmt"
	"io"

	"voltano/pkg/operator"
	"voltano/pkg/register"
	"voltano/pkg/tuple"
)

// Print is a sink operator. Each Advance pulls one tuple from its child,
// writes it as comma-separated fields terminated by a line-feed, and
// discards it — Output always returns an empty tuple, since there is
// nothing downstream to consume.
type Print struct {
	unary *operator.Unary
	base  *operator.Base
	w     io.Writer
	empty *tuple.Tuple
}

// New builds a Print sink over child, writing formatted lines to w.
func New(child operator.Operator, w io.Writer) (*Print, error) {
	u, err := operator.NewUnary(child)
	if err != nil {
		return nil, err
	}
	p := &Print{unary: u, w: w, empty: tuple.New()}
	p.base = operator.NewBase("Print", p.readNext)
	return p, nil
}

func formatField(r register.Register) string {
	switch r.Kind() {
	case register.Int64:
		return fmt.Sprintf("%d", r.Int64())
	case register.Char16:
		return string(r.Bytes())
	default:
		return r.String()
	}
}

func (p *Print) readNext() (*tuple.Tuple, error) {
	t, err := p.unary.FetchChild()
	if err != nil || t == nil {
		return nil, err
	}

	if t.NumFields() == 0 {
		return p.empty, nil
	}

	fields := t.Fields()
	for i, f := range fields {
		if i > 0 {
			if _, err := io.WriteString(p.w, ","); err != nil {
				return nil, err
			}
		}
		if _, err := io.WriteString(p.w, formatField(f)); err != nil {
			return nil, err
		}
	}
	if _, err := io.WriteString(p.w, "\n"); err != nil {
		return nil, err
	}

	return p.empty, nil
}

func (p *Print) Open() error {
	if err := p.unary.OpenChild(); err != nil {
		return err
	}
	p.base.MarkOpened()
	return nil
}

func (p *Print) Advance() (bool, error) { return p.base.Advance() }
func (p *Print) Output() *tuple.Tuple   { return p.base.Output() }

func (p *Print) Close() error {
	err := p.unary.CloseChild()
	p.base.MarkClosed()
	return err
}

func (p *Print) Schema() operator.Schema { return operator.Schema{} }

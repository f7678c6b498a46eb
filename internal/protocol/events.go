package protocol

import (
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/mcoot/piranhas-client/internal/model"
)

// streamRoot encloses everything the server sends, since the session as a
// whole has no single root element
const streamRoot = "stream"

// EventKind distinguishes the callbacks of the XML event source
type EventKind int

const (
	EventStart EventKind = iota
	EventEnd
	EventText
)

// Event is one element start, element end or run of character data
type Event struct {
	Kind  EventKind
	Name  string
	Attrs map[string]string
	Text  string
}

// Start builds an element-start event
func Start(name string, attrs map[string]string) Event {
	return Event{Kind: EventStart, Name: name, Attrs: attrs}
}

// End builds an element-end event
func End(name string) Event {
	return Event{Kind: EventEnd, Name: name}
}

// Text builds a character data event
func Text(text string) Event {
	return Event{Kind: EventText, Text: text}
}

// Attr returns the named attribute
func (e Event) Attr(name string) (string, bool) {
	v, ok := e.Attrs[name]
	return v, ok
}

// Decoder turns the byte stream from the server into events in document order
type Decoder struct {
	xml      *xml.Decoder
	rootSeen bool
}

// NewDecoder reads from r, which may deliver elements split across reads
func NewDecoder(r io.Reader) *Decoder {
	src := io.MultiReader(strings.NewReader("<"+streamRoot+">"), r)
	return &Decoder{xml: xml.NewDecoder(src)}
}

// NewTransportDecoder decodes everything the transport receives
func NewTransportDecoder(t Transport) *Decoder {
	return NewDecoder(&chunkReader{receive: t.Receive})
}

// Next blocks until the next event is available. Malformed input is reported
// as model.ErrProtocol; read failures are returned unchanged.
func (d *Decoder) Next() (Event, error) {
	for {
		tok, err := d.xml.Token()
		if err != nil {
			var syntaxErr *xml.SyntaxError
			if errors.As(err, &syntaxErr) {
				return Event{}, fmt.Errorf("%w: %s", model.ErrProtocol, syntaxErr.Error())
			}
			return Event{}, err
		}

		switch t := tok.(type) {
		case xml.StartElement:
			if !d.rootSeen {
				d.rootSeen = true
				continue
			}
			attrs := make(map[string]string, len(t.Attr))
			for _, a := range t.Attr {
				attrs[a.Name.Local] = a.Value
			}
			return Start(t.Name.Local, attrs), nil
		case xml.EndElement:
			return End(t.Name.Local), nil
		case xml.CharData:
			return Text(string(t)), nil
		}
		// Comments, directives and processing instructions carry nothing
	}
}

// chunkReader adapts a chunked receive function to io.Reader
type chunkReader struct {
	receive func() ([]byte, error)
	buf     []byte
}

func (r *chunkReader) Read(p []byte) (int, error) {
	for len(r.buf) == 0 {
		chunk, err := r.receive()
		if err != nil {
			return 0, err
		}
		r.buf = chunk
	}
	n := copy(p, r.buf)
	r.buf = r.buf[n:]
	return n, nil
}

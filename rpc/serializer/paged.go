package serializer

import (
	"errors"

	"github.com/ValentinKolb/redmine/lib/types"
	"github.com/ValentinKolb/redmine/rpc/serializer/converters"
	"github.com/ValentinKolb/redmine/rpc/serializer/wire"
)

// pagedState is the position of the decoder inside a list envelope
type pagedState uint8

const (
	stateSeeking pagedState = iota
	stateReadingMetadata
	stateReadingItems
	stateDone
)

// String returns the string representation of a pagedState
func (s pagedState) String() string {
	switch s {
	case stateSeeking:
		return "Seeking"
	case stateReadingMetadata:
		return "ReadingMetadata"
	case stateReadingItems:
		return "ReadingItems"
	case stateDone:
		return "Done"
	default:
		return "Unknown"
	}
}

// errCountDone stops a count as soon as the server total is known
var errCountDone = errors.New("count complete")

// pagedDecoder reads one list envelope:
//
//	XML:  <issues total_count="2" offset="0" limit="25" type="array"><issue>..</issue>..</issues>
//	JSON: {"issues":[{..},{..}],"total_count":2,"offset":0,"limit":25}
//
// Metadata and items may come in any order. A bare JSON array, a single XML
// entity and a single JSON object under the singular key are read as one page
// without metadata.
type pagedDecoder[T any] struct {
	s         ISerializer
	conv      converters.IConverter[T]
	data      []byte
	countOnly bool

	r       wire.IReader
	state   pagedState
	page    types.PagedResults[T]
	counted int
}

func newPagedDecoder[T any](s ISerializer, conv converters.IConverter[T], data []byte, countOnly bool) *pagedDecoder[T] {
	return &pagedDecoder[T]{
		s:         s,
		conv:      conv,
		data:      data,
		countOnly: countOnly,
		state:     stateSeeking,
	}
}

// decode runs the decoder to completion and fills page
func (d *pagedDecoder[T]) decode() error {
	key := d.conv.Key()

	var err error
	if d.s.Format() == wire.FormatXML {
		err = d.decodeXML(key)
	} else {
		err = d.decodeJSON(key)
	}
	switch {
	case errors.Is(err, errCountDone):
		// the rest of the document is not read
	case err != nil:
		return err
	default:
		if err := d.r.End(); err != nil {
			return err
		}
	}

	d.finish()
	return nil
}

func (d *pagedDecoder[T]) decodeXML(key converters.Key) error {
	d.r = d.s.NewReader(d.data)
	err := d.r.Root(key.Plural)
	if err == nil {
		if key.Plural == key.Singular && d.r.Kind() != wire.KindArray {
			d.transition(stateReadingItems)
			return d.readItem()
		}
		return d.readEnvelope(key)
	}
	if !errors.Is(err, wire.ErrUnexpectedRoot) {
		return err
	}

	// not a list, maybe a single entity
	d.r = d.s.NewReader(d.data)
	if err := d.r.Root(key.Singular); err != nil {
		return err
	}
	d.transition(stateReadingItems)
	return d.readItem()
}

func (d *pagedDecoder[T]) decodeJSON(key converters.Key) error {
	d.r = d.s.NewReader(d.data)
	if err := d.r.Root(); err != nil {
		return err
	}
	if d.r.Kind() == wire.KindArray {
		d.transition(stateReadingItems)
		return d.readItems()
	}
	return d.readEnvelope(key)
}

// readEnvelope reads the fields of the envelope. In XML the metadata are
// attributes of the root element and the items its children.
func (d *pagedDecoder[T]) readEnvelope(key converters.Key) error {
	return d.r.ReadObject(func(field string) error {
		switch field {
		case "total_count", "offset", "limit":
			d.transition(stateReadingMetadata)
			n, err := wire.ReadInt(d.r)
			if err != nil {
				return err
			}
			switch field {
			case "total_count":
				d.page.TotalItems = n
			case "offset":
				d.page.Offset = n
			case "limit":
				d.page.Limit = n
			}
			if d.countOnly && d.page.TotalItems > 0 {
				return errCountDone
			}
		case key.Plural, key.Singular:
			d.transition(stateReadingItems)
			if d.r.Kind() == wire.KindArray {
				return d.readItems()
			}
			return d.readItem()
		}
		return nil
	})
}

func (d *pagedDecoder[T]) readItems() error {
	return d.r.ReadArray(d.readItem)
}

func (d *pagedDecoder[T]) readItem() error {
	if d.countOnly {
		if d.r.Kind() != wire.KindNull {
			d.counted++
		}
		return d.r.Skip()
	}

	v, err := d.conv.Read(d.r)
	if err != nil {
		return err
	}
	if v != nil {
		d.page.Items = append(d.page.Items, *v)
	}
	return nil
}

// finish applies the total count fallback: a page with items but without a
// server total reports the number of items read
func (d *pagedDecoder[T]) finish() {
	n := len(d.page.Items)
	if d.countOnly {
		n = d.counted
	}
	if d.page.TotalItems == 0 && n > 0 {
		d.page.TotalItems = n
	}
	d.transition(stateDone)
}

func (d *pagedDecoder[T]) transition(next pagedState) {
	if d.state == next {
		return
	}
	Logger.Debugf("paged %s decoder: %s -> %s", d.conv.Type(), d.state, next)
	d.state = next
}

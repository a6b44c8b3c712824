package chronofold

import (
	"encoding/json"

	"github.com/pkg/errors"
)

// wireTimestamp and wireOp are the JSON-serializable shapes of Timestamp and
// Op. Op's wire model is exactly the variant spec §6 names: id plus a
// payload tagged by kind, with reference/value present only where the kind
// calls for them. Persistence or transport is explicitly out of scope (spec
// §5 "CLI / env / persisted state: none"), but a collaborator that wants to
// serialize ops needs a stable shape to serialize to — this is that shape.
type wireTimestamp[A Author] struct {
	Index  AuthorIndex `json:"index"`
	Author A           `json:"author"`
}

type wireOp[A Author, T any] struct {
	ID        wireTimestamp[A]  `json:"id"`
	Kind      OpKind            `json:"kind"`
	Reference *wireTimestamp[A] `json:"reference,omitempty"`
	Value     *T                `json:"value,omitempty"`
}

// MarshalJSON implements json.Marshaler for Timestamp.
func (ts Timestamp[A]) MarshalJSON() ([]byte, error) {
	data, err := json.Marshal(wireTimestamp[A]{Index: ts.Index, Author: ts.Author})
	if err != nil {
		return nil, errors.Wrap(err, "marshal timestamp")
	}
	return data, nil
}

// UnmarshalJSON implements json.Unmarshaler for Timestamp.
func (ts *Timestamp[A]) UnmarshalJSON(data []byte) error {
	var w wireTimestamp[A]
	if err := json.Unmarshal(data, &w); err != nil {
		return errors.Wrap(err, "unmarshal timestamp")
	}
	ts.Index = w.Index
	ts.Author = w.Author
	return nil
}

// MarshalJSON implements json.Marshaler for Op.
func (op Op[A, T]) MarshalJSON() ([]byte, error) {
	w := wireOp[A, T]{
		ID:        wireTimestamp[A]{Index: op.ID.Index, Author: op.ID.Author},
		Kind:      op.Payload.Kind,
		Reference: wireTimestampPtr(op.Payload.Reference),
	}
	if op.Payload.Kind == OpInsert {
		w.Value = &op.Payload.Value
	}
	data, err := json.Marshal(w)
	if err != nil {
		return nil, errors.Wrap(err, "marshal op")
	}
	return data, nil
}

// UnmarshalJSON implements json.Unmarshaler for Op.
func (op *Op[A, T]) UnmarshalJSON(data []byte) error {
	var w wireOp[A, T]
	if err := json.Unmarshal(data, &w); err != nil {
		return errors.Wrap(err, "unmarshal op")
	}
	op.ID = Timestamp[A]{Index: w.ID.Index, Author: w.ID.Author}
	op.Payload = OpPayload[A, T]{Kind: w.Kind, Reference: timestampPtr(w.Reference)}
	if w.Value != nil {
		op.Payload.Value = *w.Value
	}
	return nil
}

func wireTimestampPtr[A Author](ts *Timestamp[A]) *wireTimestamp[A] {
	if ts == nil {
		return nil
	}
	return &wireTimestamp[A]{Index: ts.Index, Author: ts.Author}
}

func timestampPtr[A Author](w *wireTimestamp[A]) *Timestamp[A] {
	if w == nil {
		return nil
	}
	return &Timestamp[A]{Index: w.Index, Author: w.Author}
}

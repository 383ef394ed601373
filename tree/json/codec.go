package json

import (
	"encoding/json"
	"fmt"

	"github.com/pbanos/sapling/tree"
)

/*
EncodeDecoder is an interface for objects
that allow encoding tree snapshots into slices of
bytes and decoding them back to snapshots.
*/
type EncodeDecoder interface {

	//Encode receives a *tree.Snapshot
	//and returns a slice of bytes with the snapshot
	//encoded or an error if the encoding could not
	//be performed for some reason.
	Encode(*tree.Snapshot) ([]byte, error)

	//Decode receives a slice of bytes
	//and returns a *tree.Snapshot decoded from the
	//slice of bytes or an error if the decoding
	//could not be performed for some reason.
	Decode([]byte) (*tree.Snapshot, error)
}

type jsonEncodeDecoder struct{}

// New returns an EncodeDecoder that marshals and unmarshals
// snapshots into/from slices of bytes as JSON objects.
func New() EncodeDecoder {
	return jsonEncodeDecoder{}
}

func (jsonEncodeDecoder) Encode(s *tree.Snapshot) ([]byte, error) {
	data, err := json.Marshal(s)
	if err != nil {
		return nil, fmt.Errorf("encoding snapshot as json: %v", err)
	}
	return data, nil
}

func (jsonEncodeDecoder) Decode(data []byte) (*tree.Snapshot, error) {
	s := &tree.Snapshot{}
	err := json.Unmarshal(data, s)
	if err != nil {
		return nil, fmt.Errorf("decoding json snapshot: %v", err)
	}
	return s, nil
}

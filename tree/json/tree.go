/*
Package json serializes trees as JSON documents.
*/
package json

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/pbanos/sapling/tree"
)

/*
WriteJSONTree takes a pointer to a tree.Tree and an io.Writer and
serializes the snapshot of the given tree as JSON onto the io.Writer.
A tree is serialized as a JSON object with the following fields:
  - "columns": an array with the "name", "type" and nominal "values"
    of the columns the tree was grown with
  - "labels": an array with the labels the tree predicts
  - "maxDepth" and "actualDepth": the depth limit and reached depth
  - "root": the position of the root node in "nodes", -1 if untrained
  - "nodes": an array with the nodes of the tree in pre-order, their
    children referenced by position
An error is returned if the tree cannot be serialized or written onto the
io.Writer.
*/
func WriteJSONTree(t *tree.Tree, w io.Writer) error {
	enc := json.NewEncoder(w)
	err := enc.Encode(t.Snapshot())
	if err != nil {
		return fmt.Errorf("writing json tree: %v", err)
	}
	return nil
}

/*
ReadJSONTree takes an io.Reader and unmarshals a tree out of the JSON
object it provides, as written by WriteJSONTree. An error is returned if
the JSON cannot be read from the io.Reader or does not describe a valid
tree.
*/
func ReadJSONTree(r io.Reader) (*tree.Tree, error) {
	s := &tree.Snapshot{}
	err := json.NewDecoder(r).Decode(s)
	if err != nil {
		return nil, fmt.Errorf("reading json tree: %v", err)
	}
	return tree.FromSnapshot(s)
}

/*
WriteJSONTreeToFile takes a tree and a filepath and writes the tree as
JSON onto the file, creating or truncating it.
*/
func WriteJSONTreeToFile(t *tree.Tree, filepath string) error {
	f, err := os.Create(filepath)
	if err != nil {
		return fmt.Errorf("creating tree file %s: %v", filepath, err)
	}
	err = WriteJSONTree(t, f)
	if cerr := f.Close(); err == nil && cerr != nil {
		err = fmt.Errorf("closing tree file %s: %v", filepath, cerr)
	}
	return err
}

/*
ReadJSONTreeFromFile takes a filepath and reads a tree from the JSON file
it points to.
*/
func ReadJSONTreeFromFile(filepath string) (*tree.Tree, error) {
	f, err := os.Open(filepath)
	if err != nil {
		return nil, fmt.Errorf("opening tree file %s: %v", filepath, err)
	}
	defer f.Close()
	t, err := ReadJSONTree(f)
	if err != nil {
		err = fmt.Errorf("parsing tree file %s: %v", filepath, err)
	}
	return t, err
}

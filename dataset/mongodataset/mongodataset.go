/*
Package mongodataset reads and writes dataset.Sets from and to
collections of a MongoDB database.

Every row is a document with a field per column. Missing values are
left out of the documents.
*/
package mongodataset

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/pbanos/sapling/dataset"
	"github.com/pbanos/sapling/feature"
	mgo "gopkg.in/mgo.v2"
	"gopkg.in/mgo.v2/bson"
)

/*
Read takes a context, a MongoDB session, the name of a collection on the
session's default database, the columns to read and the name of the
label field, and returns a set with a row per document of the collection.
Documents without the label field are skipped. An empty label returns an
unlabeled set.
*/
func Read(ctx context.Context, session *mgo.Session, collection string, columns []string, label string) (*dataset.Set, error) {
	names := columns
	if label != "" {
		names = append(append([]string(nil), columns...), label)
	}
	for _, name := range names {
		err := checkFieldName(name)
		if err != nil {
			return nil, err
		}
	}
	s := dataset.New(columns)
	if label != "" {
		s.Labels = []string{}
	}
	iter := session.DB("").C(collection).Find(nil).Iter()
	defer iter.Close()
	var doc bson.M
	for iter.Next(&doc) {
		err := ctx.Err()
		if err != nil {
			return nil, err
		}
		row := documentRow(doc, columns)
		if label == "" {
			s.Rows = append(s.Rows, row)
		} else if l, ok := feature.Key(doc[label]); ok {
			s.Append(row, l)
		}
		doc = nil
	}
	if err := iter.Err(); err != nil {
		return nil, fmt.Errorf("reading collection %s: %v", collection, err)
	}
	return s, nil
}

/*
Write takes a context, a MongoDB session, the name of a collection, a set
and the name for its label field, and inserts a document per row of the
set into the collection. The label field is only written for labeled sets
given a non-empty name.
*/
func Write(ctx context.Context, session *mgo.Session, collection string, s *dataset.Set, label string) error {
	labeled := s.Labeled() && label != ""
	for _, name := range s.Header {
		err := checkFieldName(name)
		if err != nil {
			return err
		}
	}
	if labeled {
		err := checkFieldName(label)
		if err != nil {
			return err
		}
	}
	err := ctx.Err()
	if err != nil {
		return err
	}
	docs := make([]interface{}, 0, s.Count())
	for i, row := range s.Rows {
		doc := rowDocument(row, s.Header)
		if labeled {
			doc[label] = s.Labels[i]
		}
		docs = append(docs, doc)
	}
	if len(docs) == 0 {
		return nil
	}
	err = session.DB("").C(collection).Insert(docs...)
	if err != nil {
		return fmt.Errorf("inserting %d documents into %s: %v", len(docs), collection, err)
	}
	return nil
}

func documentRow(doc bson.M, columns []string) []interface{} {
	row := make([]interface{}, len(columns))
	for i, c := range columns {
		row[i] = normalize(doc[c])
	}
	return row
}

func rowDocument(row []interface{}, columns []string) bson.M {
	doc := make(bson.M)
	for i, c := range columns {
		if i < len(row) && !feature.IsMissing(row[i]) {
			doc[c] = row[i]
		}
	}
	return doc
}

func normalize(v interface{}) interface{} {
	switch v := v.(type) {
	case bson.ObjectId:
		return v.Hex()
	case time.Time:
		return v.Format(time.RFC3339)
	case []byte:
		return string(v)
	}
	return v
}

func checkFieldName(name string) error {
	if name == "_id" {
		return fmt.Errorf("invalid field name %q: reserved collection field", "_id")
	}
	if name == "" || strings.ContainsAny(name, ".$") {
		return fmt.Errorf("invalid field name %q: empty or contains reserved characters %q or %q", name, ".", "$")
	}
	return nil
}
